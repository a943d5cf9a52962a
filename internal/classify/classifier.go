package classify

import (
	"context"
	"errors"
	"fmt"
	"strings"

	openai "github.com/sashabaranov/go-openai"

	"claimcheck/internal/search"
)

// Canonical classification labels the model is restricted to.
const (
	VerdictFactual       = "Factual"
	VerdictFalse         = "False / Hallucinated"
	VerdictSatirical     = "Satirical / Joke"
	VerdictControversial = "Controversial"
	VerdictUnclear       = "Unclear / Ambiguous"
)

// Operational outcomes that short-circuit or replace normal classification.
// They are never recorded in the verdict ledger.
const (
	VerdictUnknown      = "Unknown"
	VerdictInputTooLong = "Input too long"
	VerdictLimitReached = "Limit Reached"
)

// DefaultExplanation is returned when the model output cannot be parsed.
const DefaultExplanation = "Could not extract explanation."

// At most this many evidence items are embedded in the prompt.
const maxPromptEvidence = 5

// Config holds OpenAI configuration parameters.
type Config struct {
	APIKey      string
	Model       string
	BaseURL     string
	Temperature float32
	MaxTokens   int
}

// Client requests claim classifications from the OpenAI chat API.
type Client struct {
	api         *openai.Client
	model       string
	temperature float32
	maxTokens   int
}

// ErrMissingCredentials is returned when no API key is configured.
var ErrMissingCredentials = errors.New("classifier missing openai api key")

// NewClient constructs a Client if the supplied configuration is valid.
func NewClient(cfg Config) (*Client, error) {
	if strings.TrimSpace(cfg.APIKey) == "" {
		return nil, ErrMissingCredentials
	}

	model := strings.TrimSpace(cfg.Model)
	if model == "" {
		model = "gpt-4o"
	}

	temp := cfg.Temperature
	if temp <= 0 {
		temp = 0.2
	}

	clientCfg := openai.DefaultConfig(strings.TrimSpace(cfg.APIKey))
	if base := strings.TrimSpace(cfg.BaseURL); base != "" {
		clientCfg.BaseURL = base
	}

	return &Client{
		api:         openai.NewClientWithConfig(clientCfg),
		model:       model,
		temperature: temp,
		maxTokens:   cfg.MaxTokens,
	}, nil
}

// BuildPrompt deterministically formats the claim and up to five evidence
// items into the fixed instruction template.
func BuildPrompt(claim string, evidence []search.Result) string {
	items := evidence
	if len(items) > maxPromptEvidence {
		items = items[:maxPromptEvidence]
	}
	lines := make([]string, 0, len(items))
	for _, item := range items {
		lines = append(lines, fmt.Sprintf("%s: %s (%s)", item.Title, item.Snippet, item.Link))
	}

	builder := &strings.Builder{}
	builder.WriteString("You are a factual reasoning assistant.\n\n")
	builder.WriteString("Given a claim and some web search results, your job is to classify the **factual status** of the claim.\n\n")
	builder.WriteString("Use only the following categories:\n")
	builder.WriteString("- " + VerdictFactual + "\n")
	builder.WriteString("- " + VerdictFalse + "\n")
	builder.WriteString("- " + VerdictSatirical + "\n")
	builder.WriteString("- " + VerdictControversial + "\n")
	builder.WriteString("- " + VerdictUnclear + "\n\n")
	builder.WriteString("You MUST respond in this format:\n")
	builder.WriteString("Classification: <one of the above>\n")
	builder.WriteString("Explanation: <one-sentence reasoning>\n\n")
	builder.WriteString("Claim:\n")
	builder.WriteString(`"""` + claim + `"""` + "\n\n")
	builder.WriteString("Web search results:\n")
	builder.WriteString(`"""` + strings.Join(lines, "\n") + `"""`)
	return builder.String()
}

// Classify sends the claim and evidence to the model and returns the raw
// completion text.
func (c *Client) Classify(ctx context.Context, claim string, evidence []search.Result) (string, error) {
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{
				Role:    openai.ChatMessageRoleUser,
				Content: BuildPrompt(claim, evidence),
			},
		},
		Temperature: c.temperature,
		MaxTokens:   c.maxTokens,
	})
	if err != nil {
		return "", fmt.Errorf("chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("chat completion returned no choices")
	}
	return resp.Choices[0].Message.Content, nil
}

// GPTErrorMessage converts a classifier failure into the sentinel string
// that flows through the pipeline in place of a real completion. The
// sentinel never satisfies Parse, so the request resolves to Unknown.
func GPTErrorMessage(err error) string {
	return "GPT Error: " + err.Error()
}
