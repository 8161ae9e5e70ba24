package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"go.uber.org/zap"

	"github.com/glimpse-search/glimpse/internal/search"
)

const DefaultModel = "gpt-4o-mini"

// Options configures the Summarizer. BaseURL is only needed when pointing at
// an OpenAI-compatible proxy (or a test server).
type Options struct {
	APIKey  string
	BaseURL string
	Model   string
}

// Summarizer sends a built prompt to the chat-completion provider as a single
// user message and extracts the assistant's text. One request, one turn: no
// tool-calling loop, no streaming consumption at this layer.
type Summarizer struct {
	client openai.Client
	model  string
	log    *zap.Logger
}

func NewSummarizer(opts Options, log *zap.Logger) *Summarizer {
	if log == nil {
		log = zap.NewNop()
	}
	reqOpts := []option.RequestOption{
		option.WithAPIKey(strings.TrimSpace(opts.APIKey)),
		// provider failures surface to the caller; the SDK must not retry
		option.WithMaxRetries(0),
	}
	if baseURL := strings.TrimSpace(opts.BaseURL); baseURL != "" {
		reqOpts = append(reqOpts, option.WithBaseURL(baseURL))
	}
	model := strings.TrimSpace(opts.Model)
	if model == "" {
		model = DefaultModel
	}
	return &Summarizer{
		client: openai.NewClient(reqOpts...),
		model:  model,
		log:    log.Named("summarizer"),
	}
}

// Summarize runs one chat completion over the prompt. The response contract
// requires a single assistant turn; an empty choice list, a non-assistant
// role, or a tool-call turn fails loudly instead of returning partial text.
func (s *Summarizer) Summarize(ctx context.Context, prompt string) (string, error) {
	resp, err := s.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: s.model,
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", search.NewTypedError(search.ErrorTypeNetwork, fmt.Errorf("chat completion failed: %w", err))
	}
	if len(resp.Choices) == 0 {
		return "", search.NewTypedError(search.ErrorTypeContract, fmt.Errorf("chat completion returned no choices"))
	}

	msg := resp.Choices[0].Message
	if role := string(msg.Role); role != "assistant" {
		return "", search.NewTypedError(search.ErrorTypeContract, fmt.Errorf("expected assistant message, got role %q", role))
	}
	if len(msg.ToolCalls) > 0 {
		return "", search.NewTypedError(search.ErrorTypeContract, fmt.Errorf("expected assistant text, got %d tool calls", len(msg.ToolCalls)))
	}

	s.log.Debug("summary produced",
		zap.String("model", s.model),
		zap.Int("chars", len(msg.Content)))
	return msg.Content, nil
}
