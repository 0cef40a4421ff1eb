// Package provider adapts remote chat-completion services to chat.Completer.
package provider

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"

	"github.com/minhyannv/chat-cli/pkg/chat"
	configpkg "github.com/minhyannv/chat-cli/pkg/config"
	loggerpkg "github.com/minhyannv/chat-cli/pkg/logger"
)

// OpenAI completes conversations through an OpenAI-compatible chat completions endpoint.
type OpenAI struct {
	client  openai.Client
	model   openai.ChatModel
	logger  loggerpkg.Logger
	verbose bool
}

var _ chat.Completer = (*OpenAI)(nil)

// New builds an OpenAI adapter from cfg. An empty API key is passed through as-is.
func New(cfg configpkg.Config, opts ...Option) *OpenAI {
	cfg = configpkg.Normalize(cfg)
	deps := providerDeps{logger: loggerpkg.NopLogger{}}
	for _, opt := range opts {
		if opt != nil {
			opt(&deps)
		}
	}

	loggerpkg.Debug(cfg.Verbose, deps.logger, "provider init", map[string]any{
		"model":    cfg.Model,
		"base_url": cfg.BaseURL,
		"has_key":  cfg.APIKey != "",
	})

	return &OpenAI{
		client:  newOpenAIClient(cfg, deps.requestOptions),
		model:   openai.ChatModel(cfg.Model),
		logger:  deps.logger,
		verbose: cfg.Verbose,
	}
}

func newOpenAIClient(cfg configpkg.Config, extra []option.RequestOption) openai.Client {
	opts := []option.RequestOption{}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	if cfg.APIKey != "" {
		opts = append(opts, option.WithAPIKey(cfg.APIKey))
	}
	opts = append(opts, extra...)
	return openai.NewClient(opts...)
}

// Complete sends the whole message sequence and returns the first choice's content.
func (p *OpenAI) Complete(ctx context.Context, messages []chat.Message) (string, error) {
	params, err := toOpenAIMessages(messages)
	if err != nil {
		return "", err
	}
	if ctx == nil {
		ctx = context.Background()
	}

	loggerpkg.Debug(p.verbose, p.logger, "chat completion request", map[string]any{
		"model":    string(p.model),
		"messages": len(params),
	})
	completion, err := p.client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model:    p.model,
		Messages: params,
	})
	if err != nil {
		loggerpkg.Debug(p.verbose, p.logger, "chat completion failed", map[string]any{
			"error": err.Error(),
		})
		return "", err
	}
	if len(completion.Choices) == 0 {
		return "", errors.New("empty completion choices")
	}

	choice := completion.Choices[0]
	loggerpkg.Debug(p.verbose, p.logger, "chat completion received", map[string]any{
		"choices":       len(completion.Choices),
		"finish_reason": choice.FinishReason,
		"bytes":         len(choice.Message.Content),
	})
	return choice.Message.Content, nil
}

func toOpenAIMessages(messages []chat.Message) ([]openai.ChatCompletionMessageParamUnion, error) {
	out := make([]openai.ChatCompletionMessageParamUnion, 0, len(messages))
	for i, msg := range messages {
		if !msg.Role.Valid() {
			return nil, fmt.Errorf("invalid message role at index %d: %q", i, msg.Role)
		}
		switch msg.Role {
		case chat.RoleSystem:
			out = append(out, openai.SystemMessage(msg.Content))
		case chat.RoleUser:
			out = append(out, openai.UserMessage(msg.Content))
		case chat.RoleAssistant:
			out = append(out, openai.AssistantMessage(msg.Content))
		}
	}
	return out, nil
}
