package stt

import (
	"strings"
	"time"
)

// MaxAudioSize is the largest accepted audio payload
const MaxAudioSize = 50 << 20

// RequestTimeout bounds a single provider call
const RequestTimeout = 120 * time.Second

var audioExtensions = map[string]string{
	"audio/mpeg":  ".mp3",
	"audio/mp3":   ".mp3",
	"audio/wav":   ".wav",
	"audio/x-wav": ".wav",
	"audio/webm":  ".webm",
	"audio/ogg":   ".ogg",
}

// SupportedMIMEType reports whether mimeType is an accepted audio format.
// Parameters such as "; codecs=opus" are ignored.
func SupportedMIMEType(mimeType string) bool {
	_, ok := audioExtensions[baseMIMEType(mimeType)]
	return ok
}

// fileName returns an upload file name whose extension matches mimeType
func fileName(mimeType string) string {
	if ext, ok := audioExtensions[baseMIMEType(mimeType)]; ok {
		return "audio" + ext
	}
	return "audio.wav"
}

func baseMIMEType(mimeType string) string {
	if i := strings.IndexByte(mimeType, ';'); i >= 0 {
		mimeType = mimeType[:i]
	}
	return strings.ToLower(strings.TrimSpace(mimeType))
}

func preview(body []byte) string {
	s := string(body)
	if len(s) > 500 {
		return s[:500] + "..."
	}
	return s
}
