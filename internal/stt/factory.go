package stt

import (
	"context"
	"fmt"

	"repurpose/internal/config"

	log "github.com/sirupsen/logrus"
)

// CreateProviders builds the providers named in cfg.TranscriptionProviders, in
// that order. Providers without credentials are skipped.
func CreateProviders(ctx context.Context, cfg *config.Config) ([]Provider, error) {
	var providers []Provider
	seen := map[string]bool{}

	for _, name := range cfg.TranscriptionProviders {
		if seen[name] {
			continue
		}
		seen[name] = true

		p, err := createProvider(ctx, name, cfg)
		if err != nil {
			return nil, err
		}
		if p == nil {
			log.WithField("provider", name).Warn("[STT Factory] Provider not configured, skipping")
			continue
		}
		log.WithField("provider", name).Info("[STT Factory] Provider enabled")
		providers = append(providers, p)
	}
	return providers, nil
}

// createProvider returns nil, nil when the provider lacks credentials
func createProvider(ctx context.Context, name string, cfg *config.Config) (Provider, error) {
	switch name {
	case "huggingface":
		if cfg.HuggingFaceKey == "" {
			return nil, nil
		}
		return NewHuggingFaceProvider(cfg.HuggingFaceKey, cfg.HuggingFaceSTTURL), nil
	case "groq":
		if cfg.GroqKey == "" {
			return nil, nil
		}
		return NewGroqProvider(cfg.GroqKey, cfg.GroqBaseURL), nil
	case "openai":
		if cfg.OpenAIKey == "" {
			return nil, nil
		}
		return NewOpenAIProvider(cfg.OpenAIKey), nil
	case "google":
		if cfg.GoogleKeyData == "" && cfg.GoogleProjectID == "" {
			return nil, nil
		}
		p, err := NewGoogleProvider(ctx, cfg.GoogleProjectID, cfg.GoogleKeyData)
		if err != nil {
			log.WithField("provider", name).Warnf("[STT Factory] Failed to create Google provider: %v", err)
			return nil, nil
		}
		return p, nil
	default:
		return nil, fmt.Errorf("unsupported STT provider: %s. Supported: huggingface, groq, openai, google", name)
	}
}
