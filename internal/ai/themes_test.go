package ai

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractThemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		want []string
	}{
		{name: "scenario", text: "We focused on strategy and growth this quarter.", want: []string{"Strategy", "Growth"}},
		{name: "keyword order", text: "impact before value", want: []string{"Value", "Impact"}},
		{name: "substring in token", text: "Our customers loved the (innovation)!", want: []string{"Customer", "Innovation"}},
		{name: "case insensitive", text: "SUCCESS", want: []string{"Success"}},
		{name: "capped at five", text: "strategy challenge opportunity value customer growth insight",
			want: []string{"Strategy", "Challenge", "Opportunity", "Value", "Customer"}},
		{name: "no match", text: "nothing relevant here", want: []string{"Key Insight", "Important Finding", "Action Item"}},
		{name: "empty", text: "", want: []string{"Key Insight", "Important Finding", "Action Item"}},
		{name: "not across tokens", text: "strat egy", want: []string{"Key Insight", "Important Finding", "Action Item"}},
		{name: "strategizing is not strategy", text: "strategizing", want: []string{"Key Insight", "Important Finding", "Action Item"}},
		{name: "newline separated", text: "growth\nresults", want: []string{"Growth", "Results"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractThemes(tt.text))
		})
	}
}

func TestExtractThemes_Deterministic(t *testing.T) {
	text := "Breakthrough results and transformation drive success"
	assert.Equal(t, ExtractThemes(text), ExtractThemes(text))
}

func TestExtractThemes_DefaultIsCopy(t *testing.T) {
	got := ExtractThemes("")
	got[0] = "changed"
	assert.Equal(t, "Key Insight", DefaultThemes[0])
}
