package model

import "time"

// TranscriptPreviewLen is the number of transcript characters kept in a library entry
const TranscriptPreviewLen = 300

// LibraryEntry is a persisted record of one completed generation request
type LibraryEntry struct {
	ID               string           `json:"id"`
	Timestamp        time.Time        `json:"timestamp"`
	Profession       string           `json:"profession"`
	Tone             string           `json:"tone"`
	Transcript       string           `json:"transcript"`
	GeneratedContent GenerationResult `json:"generatedContent"`
}

// PreviewTranscript truncates a transcript to TranscriptPreviewLen characters,
// appending an ellipsis when anything was cut
func PreviewTranscript(transcript string) string {
	runes := []rune(transcript)
	if len(runes) <= TranscriptPreviewLen {
		return transcript
	}
	return string(runes[:TranscriptPreviewLen]) + "..."
}
