package ai

import "fmt"

// DefaultProfession is used for users that never chose one
const DefaultProfession = "coaching"

var professionPrompts = map[string]string{
	"coaching":        "You are an expert copywriter specializing in coaching content with a %s tone. Create engaging, inspiring content that resonates with coaching clients and reflects the value of coaching sessions. Focus on transformation, breakthroughs, and actionable insights.",
	"content-creator": "You are an expert copywriter specializing in creator/influencer content with a %s tone. Create viral-worthy, engaging content optimized for social media and audience growth. Use trending hooks and authentic voice.",
	"sales":           "You are an expert sales copywriter with a %s tone. Create persuasive, conversion-focused content that drives sales and leads. Emphasize value proposition and pain point solutions.",
	"marketing":       "You are an expert marketing strategist with a %s tone. Create strategic, data-driven content for brand awareness and engagement. Focus on customer benefits and brand positioning.",
	"education":       "You are an expert educational content creator with a %s tone. Create clear, informative, and engaging educational content that teaches and inspires. Include practical examples and actionable steps.",
}

// Professions maps profession ids to their short labels
var Professions = map[string]string{
	"coaching":        "coach",
	"content-creator": "content-creator",
	"sales":           "sales",
	"marketing":       "marketing",
	"education":       "education",
}

func IsProfession(id string) bool {
	_, ok := Professions[id]
	return ok
}

// SystemPrompt builds the system message for a profession, defaulting to coaching
func SystemPrompt(profession, tone string) string {
	tmpl, ok := professionPrompts[profession]
	if !ok {
		tmpl = professionPrompts[DefaultProfession]
	}
	return fmt.Sprintf(tmpl, tone)
}
