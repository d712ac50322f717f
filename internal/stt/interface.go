package stt

import "context"

// Provider defines the interface for speech-to-text providers
type Provider interface {
	// Transcribe transcribes an audio payload of the given MIME type
	Transcribe(ctx context.Context, audio []byte, mimeType string) (*Result, error)

	// Name returns the name of the provider (e.g., "huggingface", "groq")
	Name() string
}
