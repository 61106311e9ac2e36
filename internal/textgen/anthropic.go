package textgen

import (
	"context"
	"errors"
	"fmt"

	anthropic "github.com/liushuangls/go-anthropic/v2"

	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

type anthropicProvider struct {
	client *anthropic.Client
	model  anthropic.Model
}

func newAnthropicProvider(cfg Config) (*anthropicProvider, error) {
	model := cfg.Model
	if model == "" {
		model = string(anthropic.ModelClaude3Dot5HaikuLatest)
	}

	var opts []anthropic.ClientOption
	if cfg.BaseURL != "" {
		opts = append(opts, anthropic.WithBaseURL(cfg.BaseURL))
	}

	return &anthropicProvider{
		client: anthropic.NewClient(cfg.APIKey, opts...),
		model:  anthropic.Model(model),
	}, nil
}

func (p *anthropicProvider) Name() string {
	return "anthropic"
}

func (p *anthropicProvider) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}
	temp := req.Temperature

	resp, err := p.client.CreateMessages(ctx, anthropic.MessagesRequest{
		Model:       p.model,
		System:      req.System,
		Messages:    []anthropic.Message{anthropic.NewUserTextMessage(req.Prompt)},
		MaxTokens:   maxTokens,
		Temperature: &temp,
	})
	if err != nil {
		return "", recovery.NewError(Capability, classifyAnthropicError(err),
			fmt.Errorf("anthropic API error: %w", err))
	}

	text := resp.GetFirstContentText()
	if text == "" {
		return "", recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("anthropic returned empty content"))
	}
	return text, nil
}

func classifyAnthropicError(err error) recovery.Kind {
	var apiErr *anthropic.APIError
	if errors.As(err, &apiErr) {
		switch {
		case apiErr.IsAuthenticationErr(), apiErr.IsPermissionErr():
			return recovery.KindAuth
		case apiErr.IsRateLimitErr():
			return recovery.KindQuota
		case apiErr.IsInvalidRequestErr():
			return recovery.KindValidation
		}
	}
	return recovery.KindTransient
}
