package stt

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
)

// HuggingFaceProvider implements STT using the Hugging Face inference API
type HuggingFaceProvider struct {
	apiKey     string
	url        string
	httpClient *http.Client
}

// NewHuggingFaceProvider creates a new Hugging Face Whisper provider
func NewHuggingFaceProvider(apiKey, url string) *HuggingFaceProvider {
	return &HuggingFaceProvider{
		apiKey:     apiKey,
		url:        url,
		httpClient: &http.Client{Timeout: RequestTimeout},
	}
}

// Name returns the provider name
func (p *HuggingFaceProvider) Name() string {
	return "huggingface"
}

type huggingFaceResponse struct {
	Text  string `json:"text"`
	Error string `json:"error,omitempty"`
}

// Transcribe posts the audio as multipart field "audio" and expects {"text": ...}
func (p *HuggingFaceProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("hugging face API key is not set")
	}
	startTime := time.Now()

	var form bytes.Buffer
	w := multipart.NewWriter(&form)
	part, err := w.CreateFormFile("audio", fileName(mimeType))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := part.Write(audio); err != nil {
		return nil, fmt.Errorf("failed to write audio: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("failed to close form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.url, &form)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", w.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+p.apiKey)

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to send request to Hugging Face: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debugf("[HuggingFace STT] Response preview: %s", preview(body))

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			fmt.Errorf("Hugging Face API returned status %d: %s", resp.StatusCode, preview(body))
	}

	var hfResp huggingFaceResponse
	if err := json.Unmarshal(body, &hfResp); err != nil {
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			fmt.Errorf("failed to parse Hugging Face response: %w", err)
	}
	transcript := strings.TrimSpace(hfResp.Text)
	if transcript == "" {
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			fmt.Errorf("empty transcript returned")
	}

	log.WithField("provider", p.Name()).Infof("[HuggingFace STT] Transcription successful: length=%d, duration=%v",
		len(transcript), time.Since(startTime))

	return &Result{
		Transcript:  transcript,
		Provider:    p.Name(),
		RawResponse: string(body),
	}, nil
}
