package ai

import (
	"strings"
)

const maxThemes = 5

var themeKeywords = []string{
	"strategy", "challenge", "opportunity", "value", "customer", "growth", "insight",
	"breakthrough", "solution", "results", "innovation", "transformation", "success", "impact",
}

// DefaultThemes is returned when no keyword matches
var DefaultThemes = []string{"Key Insight", "Important Finding", "Action Item"}

// ExtractThemes returns up to five capitalised keywords found in the transcript.
// A keyword matches when any whitespace-separated token contains it, so
// "customers" and "growth," both count.
func ExtractThemes(transcript string) []string {
	words := strings.Fields(strings.ToLower(transcript))

	var themes []string
	for _, kw := range themeKeywords {
		for _, w := range words {
			if strings.Contains(w, kw) {
				themes = append(themes, strings.ToUpper(kw[:1])+kw[1:])
				break
			}
		}
	}

	if len(themes) == 0 {
		return append([]string(nil), DefaultThemes...)
	}
	if len(themes) > maxThemes {
		themes = themes[:maxThemes]
	}
	return themes
}
