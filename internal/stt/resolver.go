package stt

import (
	"context"
	"strings"

	"repurpose/internal/metrics"

	log "github.com/sirupsen/logrus"
)

// DemoTranscript is returned when no provider produced a transcript
const DemoTranscript = `In today's session, we discussed the critical importance of audience alignment in marketing strategy. 
The key takeaway is that successful businesses focus on understanding their customer's pain points deeply before creating solutions. 
We also covered how to develop a competitive advantage through differentiation and unique value proposition. 
Finally, we outlined an action plan for implementing these insights over the next 90 days.`

// ProcessingEstimate is the elapsed-time estimate reported to clients
const ProcessingEstimate = "30-120 seconds depending on audio length"

// DemoProvider names the demo fallback in a Transcription
const DemoProvider = "demo"

// Transcription is what the Resolver hands back to callers
type Transcription struct {
	Transcript     string `json:"transcript"`
	WordCount      int    `json:"wordCount"`
	ProcessingTime string `json:"processingTime"`
	Provider       string `json:"provider"`
}

// Resolver tries providers in priority order and falls back to DemoTranscript
type Resolver struct {
	providers []Provider
	metrics   *metrics.Metrics
}

func NewResolver(providers []Provider, m *metrics.Metrics) *Resolver {
	return &Resolver{providers: providers, metrics: m}
}

// Resolve never fails: the first provider that returns a non-empty transcript
// wins, otherwise the demo transcript is used
func (r *Resolver) Resolve(ctx context.Context, audio []byte, mimeType string) *Transcription {
	for _, p := range r.providers {
		logger := log.WithField("provider", p.Name())
		logger.Infof("[Resolver] Attempting transcription (%d bytes, %s)", len(audio), mimeType)

		callCtx, cancel := context.WithTimeout(ctx, RequestTimeout)
		res, err := p.Transcribe(callCtx, audio, mimeType)
		cancel()

		if err != nil {
			logger.Warnf("[Resolver] Transcription failed: %v", err)
			r.metrics.ObserveTranscription(p.Name(), metrics.OutcomeFailure)
			continue
		}
		if res == nil || strings.TrimSpace(res.Transcript) == "" {
			logger.Warn("[Resolver] Provider returned empty transcript")
			r.metrics.ObserveTranscription(p.Name(), metrics.OutcomeFailure)
			continue
		}

		r.metrics.ObserveTranscription(p.Name(), metrics.OutcomeSuccess)
		return newTranscription(res.Transcript, p.Name())
	}

	log.Warn("[Resolver] Using demo transcript - configure API keys for real transcription")
	r.metrics.ObserveTranscription(DemoProvider, metrics.OutcomeFallback)
	return newTranscription(DemoTranscript, DemoProvider)
}

func newTranscription(text, provider string) *Transcription {
	text = strings.TrimSpace(text)
	return &Transcription{
		Transcript:     text,
		WordCount:      len(strings.Fields(text)),
		ProcessingTime: ProcessingEstimate,
		Provider:       provider,
	}
}
