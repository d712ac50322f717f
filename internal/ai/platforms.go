package ai

import (
	"fmt"
	"strings"
)

// platform holds everything needed to produce copy for one channel. Prompt and
// fallback live side by side so every platform has both.
type platform struct {
	ID       string
	Label    string
	Prompt   func(profession, transcript string) string
	Fallback func(themes []string, profession string) string
}

var platforms = []platform{
	{
		ID:    "linkedin",
		Label: "LinkedIn Post",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a professional LinkedIn post (150-300 words) from this %s transcript that drives engagement:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("Great insights from today's session! Key takeaways:\n\n%s\n\n#%s #Growth #Insights",
				strings.Join(themes, "\n• "), hashtag(profession))
		},
	},
	{
		ID:    "twitter",
		Label: "Twitter/X Thread",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a viral Twitter thread (5-7 tweets) from this %s transcript:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("1/ Just documented key insights from today's work\n2/ Topic: %s\n3/ Application: Real-world impact\n4/ Next: Implementation",
				themes[0])
		},
	},
	{
		ID:    "instagram",
		Label: "Instagram Caption",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create an Instagram caption (100-150 words) with relevant hashtags for a %s audience:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("✨ Today's highlights\n\n%s\n\n#insights #growth #%s",
				strings.Join(themes, "\n\n"), hashtag(profession))
		},
	},
	{
		ID:    "tiktok",
		Label: "TikTok Script",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a TikTok script (30-60 seconds) from this %s transcript that hooks viewers in the first 3 seconds:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("[HOOK] Did you know? [BODY] Here's what we discovered: %s... [CTA] Save this!", themes[0])
		},
	},
	{
		ID:    "youtube",
		Label: "YouTube Description",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a YouTube video description (150-300 words) with SEO-optimized keywords for a %s:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("Title: %s - Key Insights\nDescription: Learn about %s. Perfect for %ss.",
				themes[0], strings.Join(themes, ", "), profession)
		},
	},
	{
		ID:    "newsletter",
		Label: "Newsletter Draft",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a newsletter section (3-4 paragraphs) from this %s transcript:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("This Week's Insight:\n%s\n\nWhat we learned: %s",
				themes[0], strings.Join(window(themes, 1, 3), ", "))
		},
	},
	{
		ID:    "blog",
		Label: "Blog Post",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a blog post outline (5-7 sections) from this %s transcript:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("# %s\n\n## Key Points\n- %s\n\n## Takeaway\nPractical insights for %ss",
				themes[0], strings.Join(themes, "\n- "), profession)
		},
	},
	{
		ID:    "email",
		Label: "Email Campaign",
		Prompt: func(profession, transcript string) string {
			return fmt.Sprintf("Create a compelling email campaign subject line and body (150-250 words) for a %s audience:\n\n%s", profession, transcript)
		},
		Fallback: func(themes []string, profession string) string {
			return fmt.Sprintf("Subject: %s\n\nHi there,\n\nI wanted to share today's insights with you: %s\n\nBest regards",
				themes[0], strings.Join(themes, ", "))
		},
	},
}

var platformIndex = func() map[string]*platform {
	m := make(map[string]*platform, len(platforms))
	for i := range platforms {
		m[platforms[i].ID] = &platforms[i]
	}
	return m
}()

// CatalogEntry is a platform id with its display label
type CatalogEntry struct {
	ID    string `json:"id"`
	Label string `json:"label"`
}

// PlatformCatalog lists all supported platforms in display order
func PlatformCatalog() []CatalogEntry {
	res := make([]CatalogEntry, 0, len(platforms))
	for _, p := range platforms {
		res = append(res, CatalogEntry{ID: p.ID, Label: p.Label})
	}
	return res
}

// IsPlatform reports whether id names a supported platform
func IsPlatform(id string) bool {
	_, ok := platformIndex[id]
	return ok
}

// FallbackContent returns the locally built copy used when generation fails.
// themes must not be empty.
func FallbackContent(platformID string, themes []string, profession string) (string, bool) {
	p, ok := platformIndex[platformID]
	if !ok {
		return "", false
	}
	return p.Fallback(themes, profession), true
}

// hashtag strips the first dash, "content-creator" becomes "contentcreator"
func hashtag(profession string) string {
	return strings.Replace(profession, "-", "", 1)
}

func window(s []string, from, to int) []string {
	if from > len(s) {
		return nil
	}
	if to > len(s) {
		to = len(s)
	}
	return s[from:to]
}
