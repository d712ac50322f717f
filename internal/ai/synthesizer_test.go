package ai

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeGenerator struct {
	fail    map[string]bool // keyed by a substring of the user prompt
	systems []string
	users   []string
}

func (f *fakeGenerator) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.systems = append(f.systems, systemPrompt)
	f.users = append(f.users, userPrompt)
	for k := range f.fail {
		if strings.Contains(userPrompt, k) {
			return "", errors.New("provider down")
		}
	}
	return "generated: " + userPrompt[:10], nil
}

func newTestSynthesizer(g Generator) *Synthesizer {
	s := NewSynthesizer(g, nil)
	s.now = func() time.Time { return time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC) }
	return s
}

func TestSynthesize_ScenarioDropsUnknown(t *testing.T) {
	g := &fakeGenerator{}
	res, err := newTestSynthesizer(g).Synthesize(context.Background(), Request{
		Transcript: "We focused on strategy and growth this quarter.",
		Tone:       "professional",
		Platforms:  []string{"linkedin", "unknown"},
	})
	require.NoError(t, err)

	assert.Contains(t, res.Themes, "Strategy")
	assert.Contains(t, res.Themes, "Growth")
	assert.Equal(t, []string{"linkedin"}, res.Platforms.Keys())
	assert.Equal(t, "coaching", res.Metadata.Profession)
	assert.Equal(t, "professional", res.Metadata.Tone)
	assert.Equal(t, 47, res.Metadata.TranscriptLength)
	assert.Equal(t, time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC), res.Metadata.GeneratedAt)
	require.Len(t, g.users, 1)
	assert.Contains(t, g.users[0], "LinkedIn post")
	assert.Contains(t, g.systems[0], "professional tone")
}

func TestSynthesize_KeepsRequestOrderAndDedupes(t *testing.T) {
	g := &fakeGenerator{}
	res, err := newTestSynthesizer(g).Synthesize(context.Background(), Request{
		Transcript: "hello",
		Platforms:  []string{"email", "blog", "twitter", "email", "blog"},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"email", "blog", "twitter"}, res.Platforms.Keys())
	assert.Len(t, g.users, 3)
	assert.Equal(t, DefaultTone, res.Metadata.Tone)
}

func TestSynthesize_FallbackPerPlatform(t *testing.T) {
	g := &fakeGenerator{fail: map[string]bool{"Twitter thread": true}}
	res, err := newTestSynthesizer(g).Synthesize(context.Background(), Request{
		Transcript: "Customer value is our breakthrough",
		Profession: "sales",
		Platforms:  []string{"linkedin", "twitter"},
	})
	require.NoError(t, err)

	linkedin, _ := res.Platforms.Get("linkedin")
	assert.True(t, strings.HasPrefix(linkedin, "generated: "))

	twitter, _ := res.Platforms.Get("twitter")
	want, _ := FallbackContent("twitter", res.Themes, "sales")
	assert.Equal(t, want, twitter)
	assert.Equal(t, []string{"Value", "Customer", "Breakthrough"}, res.Themes)
}

func TestSynthesize_NoGeneratorUsesFallbacks(t *testing.T) {
	res, err := newTestSynthesizer(nil).Synthesize(context.Background(), Request{
		Transcript: "plain words",
		Profession: "marketing",
		Platforms:  []string{"tiktok", "youtube"},
	})
	require.NoError(t, err)
	for _, id := range []string{"tiktok", "youtube"} {
		got, ok := res.Platforms.Get(id)
		require.True(t, ok)
		want, _ := FallbackContent(id, DefaultThemes, "marketing")
		assert.Equal(t, want, got)
	}
}

func TestSynthesize_Validation(t *testing.T) {
	s := newTestSynthesizer(&fakeGenerator{})

	_, err := s.Synthesize(context.Background(), Request{Transcript: "", Platforms: []string{"linkedin"}})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Synthesize(context.Background(), Request{Transcript: "", Platforms: nil})
	assert.ErrorIs(t, err, ErrValidation)

	_, err = s.Synthesize(context.Background(), Request{Transcript: "text", Platforms: []string{"myspace"}})
	assert.ErrorIs(t, err, ErrValidation)
}
