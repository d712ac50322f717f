package stt

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	googleSpeechEndpoint = "https://speech.googleapis.com"
	googleCloudScope     = "https://www.googleapis.com/auth/cloud-platform"
)

// GoogleProvider implements STT using Google Cloud Speech-to-Text REST API
type GoogleProvider struct {
	projectID  string
	apiKey     string
	endpoint   string
	httpClient *http.Client
	useAPIKey  bool // true if using API key, false if using service account
}

// isGoogleAPIKey reports whether keyData looks like a Google API key rather than
// service account credentials
func isGoogleAPIKey(keyData string) bool {
	return len(keyData) == 39 && strings.HasPrefix(keyData, "AIzaSy")
}

// NewGoogleProvider creates a new Google STT provider
// keyData can be either:
//   - An API key (39 characters, typically starts with "AIzaSy")
//   - A file path to a JSON key file
//   - A JSON string containing the service account credentials
//   - Empty, to use application default credentials
func NewGoogleProvider(ctx context.Context, projectID, keyData string) (*GoogleProvider, error) {
	keyData = strings.TrimSpace(keyData)

	if isGoogleAPIKey(keyData) {
		return &GoogleProvider{
			projectID:  projectID,
			apiKey:     keyData,
			endpoint:   googleSpeechEndpoint,
			httpClient: &http.Client{Timeout: RequestTimeout},
			useAPIKey:  true,
		}, nil
	}

	if projectID == "" {
		return nil, fmt.Errorf("google project id is required when using service account credentials")
	}

	var creds *google.Credentials
	var err error
	switch {
	case keyData == "":
		creds, err = google.FindDefaultCredentials(ctx, googleCloudScope)
		if err != nil {
			return nil, fmt.Errorf("failed to find default credentials: %w", err)
		}
	default:
		jsonData := []byte(keyData)
		if !strings.HasPrefix(keyData, "{") {
			jsonData, err = os.ReadFile(keyData)
			if err != nil {
				return nil, fmt.Errorf("failed to read key file '%s': %w", keyData, err)
			}
		}
		creds, err = google.CredentialsFromJSON(ctx, jsonData, googleCloudScope)
		if err != nil {
			return nil, fmt.Errorf("failed to create credentials from JSON: %w", err)
		}
	}

	client := oauth2.NewClient(ctx, creds.TokenSource)
	client.Timeout = RequestTimeout

	return &GoogleProvider{
		projectID:  projectID,
		endpoint:   googleSpeechEndpoint,
		httpClient: client,
	}, nil
}

// Name returns the provider name
func (p *GoogleProvider) Name() string {
	return "google"
}

type googleRecognizeRequest struct {
	Config googleRecognitionConfig `json:"config"`
	Audio  googleRecognitionAudio  `json:"audio"`
}

type googleRecognitionConfig struct {
	Encoding                   string `json:"encoding,omitempty"`
	SampleRateHertz            int    `json:"sampleRateHertz,omitempty"`
	LanguageCode               string `json:"languageCode"`
	EnableAutomaticPunctuation bool   `json:"enableAutomaticPunctuation"`
}

type googleRecognitionAudio struct {
	Content string `json:"content"` // Base64 encoded
}

type googleRecognizeResponse struct {
	Results []struct {
		Alternatives []struct {
			Transcript string  `json:"transcript"`
			Confidence float64 `json:"confidence"`
		} `json:"alternatives"`
	} `json:"results"`
	Error *googleAPIError `json:"error,omitempty"`
}

type googleAPIError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Status  string `json:"status"`
}

// Transcribe sends the audio inline to speech:recognize. Results of all
// segments are joined with a space.
func (p *GoogleProvider) Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error) {
	startTime := time.Now()

	encoding, sampleRate := googleAudioConfig(mimeType)
	reqJSON, err := json.Marshal(googleRecognizeRequest{
		Config: googleRecognitionConfig{
			Encoding:                   encoding,
			SampleRateHertz:            sampleRate,
			LanguageCode:               "en-US",
			EnableAutomaticPunctuation: true,
		},
		Audio: googleRecognitionAudio{Content: base64.StdEncoding.EncodeToString(audio)},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	apiURL := p.endpoint + "/v1/speech:recognize"
	if p.useAPIKey {
		apiURL += "?key=" + p.apiKey
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, apiURL, bytes.NewReader(reqJSON))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return &Result{Provider: p.Name()}, fmt.Errorf("failed to send request to Google Speech-to-Text: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	log.Debugf("[Google STT] Response preview: %s", preview(body))

	var sttResp googleRecognizeResponse
	parseErr := json.Unmarshal(body, &sttResp)

	if resp.StatusCode != http.StatusOK {
		if parseErr == nil && sttResp.Error != nil {
			return &Result{Provider: p.Name(), RawResponse: string(body)},
				fmt.Errorf("Google Speech-to-Text API error %s: %s", sttResp.Error.Status, sttResp.Error.Message)
		}
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			fmt.Errorf("Google Speech-to-Text API returned status %d", resp.StatusCode)
	}
	if parseErr != nil {
		return &Result{Provider: p.Name(), RawResponse: string(body)},
			fmt.Errorf("failed to parse Google Speech-to-Text response: %w", parseErr)
	}

	var parts []string
	var confidence float64
	for i, r := range sttResp.Results {
		if len(r.Alternatives) == 0 {
			continue
		}
		if i == 0 {
			confidence = r.Alternatives[0].Confidence
		}
		if t := strings.TrimSpace(r.Alternatives[0].Transcript); t != "" {
			parts = append(parts, t)
		}
	}
	if len(parts) == 0 {
		return &Result{Provider: p.Name(), RawResponse: string(body)}, fmt.Errorf("no speech detected in audio")
	}
	transcript := strings.Join(parts, " ")

	log.WithField("provider", p.Name()).Infof("[Google STT] Transcription successful: confidence=%.2f, length=%d, duration=%v",
		confidence, len(transcript), time.Since(startTime))

	return &Result{
		Transcript:  transcript,
		Confidence:  confidence,
		Provider:    p.Name(),
		RawResponse: string(body),
	}, nil
}

// googleAudioConfig determines encoding and sample rate from the MIME type.
// Empty values let the API read them from the file header.
func googleAudioConfig(mimeType string) (string, int) {
	switch baseMIMEType(mimeType) {
	case "audio/mpeg", "audio/mp3":
		return "MP3", 44100
	case "audio/ogg":
		return "OGG_OPUS", 48000
	case "audio/webm":
		return "WEBM_OPUS", 48000
	default:
		return "", 0
	}
}
