package ai

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"
	log "github.com/sirupsen/logrus"
)

// Sampling policy for platform copy. These are fixed, not request options.
const (
	GenerationModel       = "llama-3.1-8b-instant"
	GenerationTemperature = 0.7
	GenerationTopP        = 0.9
	GenerationMaxTokens   = 1024
	GenerationTimeout     = 30 * time.Second
)

// Generator produces text from a system and a user prompt
type Generator interface {
	Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// ChatClient is a Generator backed by an OpenAI-compatible chat completions API
type ChatClient struct {
	apiKey string
	client *openai.Client
}

// NewChatClient creates a chat client; baseURL points at Groq in production
func NewChatClient(apiKey, baseURL string) *ChatClient {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}
	cfg.HTTPClient = &http.Client{Timeout: GenerationTimeout}

	return &ChatClient{
		apiKey: apiKey,
		client: openai.NewClientWithConfig(cfg),
	}
}

// Generate returns the content of the first choice
func (c *ChatClient) Generate(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("GROQ_API_KEY not configured")
	}

	ctx, cancel := context.WithTimeout(ctx, GenerationTimeout)
	defer cancel()

	resp, err := c.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: GenerationModel,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleSystem,
				Content: systemPrompt,
			},
			{
				Role:    openai.ChatMessageRoleUser,
				Content: userPrompt,
			},
		},
		Temperature: GenerationTemperature,
		TopP:        GenerationTopP,
		MaxTokens:   GenerationMaxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion error: %w", err)
	}

	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("chat completion returned no choices")
	}

	content := resp.Choices[0].Message.Content
	if strings.TrimSpace(content) == "" {
		return "", fmt.Errorf("chat completion returned empty content")
	}

	log.Debugf("[ChatClient] Usage - Prompt tokens: %d, Completion tokens: %d, Total tokens: %d",
		resp.Usage.PromptTokens, resp.Usage.CompletionTokens, resp.Usage.TotalTokens)
	return content, nil
}
