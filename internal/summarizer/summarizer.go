package summarizer

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	openai "github.com/sashabaranov/go-openai"
)

const defaultModel = openai.GPT4oMini

const systemPrompt = "You are a cautious, fact-based investment news summarizer."

// Summarizer condenses headline bundles into a short plain-language summary.
// It is strictly optional: with no API key or any API failure it returns a
// notice line instead of an error, so the briefing is never blocked.
type Summarizer struct {
	client *openai.Client
	model  string
	logger zerolog.Logger
}

// New creates a Summarizer. An empty apiKey yields a disabled instance.
func New(apiKey, model string) *Summarizer {
	s := &Summarizer{
		model:  model,
		logger: log.With().Str("component", "summarizer").Logger(),
	}
	if s.model == "" {
		s.model = defaultModel
	}
	if apiKey != "" {
		s.client = openai.NewClient(apiKey)
	}
	return s
}

// Enabled reports whether an API key was configured.
func (s *Summarizer) Enabled() bool { return s.client != nil }

// SummarizeHeadlines summarizes a bundle of "[SRC] title - link" bullets.
func (s *Summarizer) SummarizeHeadlines(ctx context.Context, topic string, bullets []string) string {
	if s.client == nil {
		return "AI summary: (skipped, no API key configured)"
	}
	if len(bullets) == 0 {
		return "AI summary: (no headlines to summarize today)"
	}

	prompt := fmt.Sprintf(
		"Here are the latest news/disclosure headlines about %q.\n"+
			"Summarize them for a beginner investor.\n"+
			"Rules:\n"+
			"- 4 to 6 lines\n"+
			"- include one positive line, one risk line, and one checkpoint for today\n"+
			"- no hype and no definitive predictions, use hedged language\n\n"+
			"Headlines:\n%s",
		topic, strings.Join(bullets, "\n"))

	resp, err := s.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: s.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
	})
	if err != nil {
		s.logger.Warn().Err(err).Str("topic", topic).Msg("summary failed")
		return "AI summary: (skipped due to an API error)"
	}
	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "AI summary: (the model returned nothing usable)"
	}
	return "AI summary:\n" + strings.TrimSpace(resp.Choices[0].Message.Content)
}
