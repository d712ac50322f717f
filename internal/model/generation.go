package model

import (
	"bytes"
	"encoding/json"
	"fmt"
	"time"
)

// GenerationMetadata describes how a GenerationResult was produced
type GenerationMetadata struct {
	Profession       string    `json:"profession"`
	Tone             string    `json:"tone"`
	TranscriptLength int       `json:"transcriptLength"`
	GeneratedAt      time.Time `json:"generatedAt"`
}

// GenerationResult is the output of one content generation request
type GenerationResult struct {
	Themes    []string           `json:"themes"`
	Platforms PlatformContent    `json:"platforms"`
	Metadata  GenerationMetadata `json:"metadata"`
}

// PlatformText is the generated copy for a single platform
type PlatformText struct {
	Platform string
	Text     string
}

// PlatformContent maps platform ids to generated text, keeping insertion order.
// It encodes as a JSON object whose keys appear in that order.
type PlatformContent []PlatformText

// Set stores text for platform, replacing an earlier value in place
func (p *PlatformContent) Set(platform, text string) {
	for i := range *p {
		if (*p)[i].Platform == platform {
			(*p)[i].Text = text
			return
		}
	}
	*p = append(*p, PlatformText{Platform: platform, Text: text})
}

func (p PlatformContent) Get(platform string) (string, bool) {
	for _, pt := range p {
		if pt.Platform == platform {
			return pt.Text, true
		}
	}
	return "", false
}

// Keys returns platform ids in insertion order
func (p PlatformContent) Keys() []string {
	keys := make([]string, 0, len(p))
	for _, pt := range p {
		keys = append(keys, pt.Platform)
	}
	return keys
}

func (p PlatformContent) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, pt := range p {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(pt.Platform)
		if err != nil {
			return nil, err
		}
		val, err := json.Marshal(pt.Text)
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.Write(val)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func (p *PlatformContent) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if tok == nil {
		*p = nil
		return nil
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return fmt.Errorf("platform content: expected object, got %v", tok)
	}

	res := PlatformContent{}
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return err
		}
		key, ok := keyTok.(string)
		if !ok {
			return fmt.Errorf("platform content: unexpected key %v", keyTok)
		}
		var text string
		if err := dec.Decode(&text); err != nil {
			return fmt.Errorf("platform content %q: %w", key, err)
		}
		res.Set(key, text)
	}
	if _, err := dec.Token(); err != nil {
		return err
	}
	*p = res
	return nil
}
