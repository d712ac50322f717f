package stt

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// GroqWhisperModel is the Whisper model served by Groq
const GroqWhisperModel = "whisper-large-v3"

// WhisperProvider implements STT against an OpenAI-compatible
// /audio/transcriptions endpoint (OpenAI itself, Groq)
type WhisperProvider struct {
	name   string
	apiKey string
	model  string
	client *openai.Client
}

// NewWhisperProvider creates a provider; an empty baseURL keeps the OpenAI default
func NewWhisperProvider(name, apiKey, baseURL, model string) *WhisperProvider {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: RequestTimeout}

	return &WhisperProvider{
		name:   name,
		apiKey: apiKey,
		model:  model,
		client: openai.NewClientWithConfig(cfg),
	}
}

// NewGroqProvider creates a Whisper provider backed by Groq
func NewGroqProvider(apiKey, baseURL string) *WhisperProvider {
	return NewWhisperProvider("groq", apiKey, baseURL, GroqWhisperModel)
}

// NewOpenAIProvider creates a Whisper provider backed by OpenAI
func NewOpenAIProvider(apiKey string) *WhisperProvider {
	return NewWhisperProvider("openai", apiKey, "", openai.Whisper1)
}

// Name returns the provider name
func (p *WhisperProvider) Name() string {
	return p.name
}

// Transcribe uploads the audio and returns the "text" of the JSON response
func (p *WhisperProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error) {
	if p.apiKey == "" {
		return nil, fmt.Errorf("%s API key is not set", p.name)
	}
	startTime := time.Now()

	resp, err := p.client.CreateTranscription(ctx, openai.AudioRequest{
		Model:    p.model,
		FilePath: fileName(mimeType),
		Reader:   bytes.NewReader(audio),
	})
	if err != nil {
		return &Result{Provider: p.Name()}, fmt.Errorf("%s transcription failed: %w", p.name, err)
	}

	transcript := strings.TrimSpace(resp.Text)
	if transcript == "" {
		return &Result{Provider: p.Name()}, fmt.Errorf("empty transcript returned")
	}

	log.WithField("provider", p.Name()).Infof("[Whisper STT] Transcription successful: model=%s, length=%d, duration=%v",
		p.model, len(transcript), time.Since(startTime))

	return &Result{
		Transcript: transcript,
		Provider:   p.Name(),
	}, nil
}
