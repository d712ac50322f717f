// Package content ties generation, profession preferences and the library
// together for one user request.
package content

import (
	"context"
	"time"

	"repurpose/internal/ai"
	"repurpose/internal/model"
	"repurpose/internal/repository"
	"repurpose/internal/state"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
)

// Synthesizer produces platform copy for a transcript
type Synthesizer interface {
	Synthesize(ctx context.Context, req ai.Request) (*model.GenerationResult, error)
}

// GenerateResponse is a GenerationResult tagged with the requesting user
type GenerateResponse struct {
	model.GenerationResult
	UserID string `json:"userId"`
}

type Service struct {
	synth       Synthesizer
	professions *state.Professions
	library     repository.LibraryRepository
	now         func() time.Time
	newID       func() string
}

func NewService(synth Synthesizer, professions *state.Professions, library repository.LibraryRepository) *Service {
	return &Service{
		synth:       synth,
		professions: professions,
		library:     library,
		now:         time.Now,
		newID:       uuid.NewString,
	}
}

// Generate runs the synthesizer with the user's profession and records the
// result in the user's library. A library write failure is logged and the
// result is still returned.
func (s *Service) Generate(ctx context.Context, userID, transcript, tone string, platforms []string) (*GenerateResponse, error) {
	profession := s.professions.Get(userID)

	result, err := s.synth.Synthesize(ctx, ai.Request{
		Transcript: transcript,
		Tone:       tone,
		Profession: profession,
		Platforms:  platforms,
	})
	if err != nil {
		return nil, err
	}

	entry := &model.LibraryEntry{
		ID:               s.newID(),
		Timestamp:        s.now().UTC(),
		Profession:       result.Metadata.Profession,
		Tone:             result.Metadata.Tone,
		Transcript:       model.PreviewTranscript(transcript),
		GeneratedContent: *result,
	}
	if err := s.library.Append(ctx, userID, entry); err != nil {
		log.WithField("user", userID).Errorf("[Library] Failed to save entry: %v", err)
	} else {
		log.WithField("user", userID).Infof("[Library] Saved entry %s", entry.ID)
	}

	return &GenerateResponse{GenerationResult: *result, UserID: userID}, nil
}

// SetProfession stores the user's profession. Unknown ids are rejected.
func (s *Service) SetProfession(userID, profession string) error {
	if !ai.IsProfession(profession) {
		return ErrInvalidProfession
	}
	s.professions.Set(userID, profession)
	return nil
}

func (s *Service) Profession(userID string) string {
	return s.professions.Get(userID)
}

// Library returns the user's entries, newest first
func (s *Service) Library(ctx context.Context, userID string) ([]model.LibraryEntry, error) {
	entries, err := s.library.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	res := make([]model.LibraryEntry, len(entries))
	for i, e := range entries {
		res[len(entries)-1-i] = e
	}
	return res, nil
}

func (s *Service) Entry(ctx context.Context, userID, id string) (*model.LibraryEntry, error) {
	return s.library.GetByID(ctx, userID, id)
}

func (s *Service) DeleteEntry(ctx context.Context, userID, id string) error {
	if err := s.library.Delete(ctx, userID, id); err != nil {
		return err
	}
	log.WithField("user", userID).Infof("[Library] Deleted entry %s", id)
	return nil
}
