package ai

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"repurpose/internal/metrics"
	"repurpose/internal/model"

	log "github.com/sirupsen/logrus"
)

// DefaultTone is applied when a request has no tone
const DefaultTone = "professional"

// ErrValidation marks requests that cannot be processed at all
var ErrValidation = errors.New("validation error")

// Request is the input of one generation
type Request struct {
	Transcript string
	Tone       string
	Profession string
	Platforms  []string
}

// Synthesizer turns a transcript into per-platform marketing copy
type Synthesizer struct {
	generator Generator
	metrics   *metrics.Metrics
	now       func() time.Time
}

func NewSynthesizer(g Generator, m *metrics.Metrics) *Synthesizer {
	return &Synthesizer{generator: g, metrics: m, now: time.Now}
}

// Synthesize generates copy for every recognised platform in request order.
// Generation failures are replaced by fallback copy built from the themes;
// only an empty transcript or an empty platform list is an error.
func (s *Synthesizer) Synthesize(ctx context.Context, req Request) (*model.GenerationResult, error) {
	if strings.TrimSpace(req.Transcript) == "" {
		return nil, fmt.Errorf("%w: transcript is required", ErrValidation)
	}
	ids := recognisedPlatforms(req.Platforms)
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: no supported platforms requested", ErrValidation)
	}

	tone := req.Tone
	if tone == "" {
		tone = DefaultTone
	}
	profession := req.Profession
	if profession == "" {
		profession = DefaultProfession
	}

	result := &model.GenerationResult{
		Themes: ExtractThemes(req.Transcript),
		Metadata: model.GenerationMetadata{
			Profession:       profession,
			Tone:             tone,
			TranscriptLength: len([]rune(req.Transcript)),
			GeneratedAt:      s.now().UTC(),
		},
	}

	log.WithFields(log.Fields{"profession": profession, "tone": tone}).
		Infof("[Synthesizer] Generating content for %s (transcript %d chars)", strings.Join(ids, ", "), result.Metadata.TranscriptLength)

	systemPrompt := SystemPrompt(profession, tone)
	for _, id := range ids {
		p := platformIndex[id]
		logger := log.WithField("platform", id)

		text, err := s.generate(ctx, systemPrompt, p.Prompt(profession, req.Transcript))
		if err != nil {
			logger.Warnf("[Synthesizer] Generation failed, using fallback: %v", err)
			s.metrics.ObserveGeneration(id, metrics.OutcomeFallback)
			text = p.Fallback(result.Themes, profession)
		} else {
			logger.Info("[Synthesizer] Generated successfully")
			s.metrics.ObserveGeneration(id, metrics.OutcomeSuccess)
		}
		result.Platforms.Set(id, text)
	}

	return result, nil
}

func (s *Synthesizer) generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if s.generator == nil {
		return "", fmt.Errorf("no generator configured")
	}
	text, err := s.generator.Generate(ctx, systemPrompt, userPrompt)
	if err != nil {
		return "", err
	}
	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("empty generation")
	}
	return text, nil
}

// recognisedPlatforms drops unknown and repeated ids, keeping first-seen order
func recognisedPlatforms(requested []string) []string {
	seen := make(map[string]bool, len(requested))
	res := make([]string, 0, len(requested))
	for _, id := range requested {
		if !IsPlatform(id) || seen[id] {
			continue
		}
		seen[id] = true
		res = append(res, id)
	}
	return res
}
