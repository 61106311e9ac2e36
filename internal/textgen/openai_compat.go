package textgen

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	openai "github.com/sashabaranov/go-openai"

	"github.com/SarthakNawali/ai-word-generator/internal/recovery"
)

// openAICompatProvider covers any OpenAI-compatible API: Groq, OpenAI,
// Gemini's compat endpoint, and the like.
type openAICompatProvider struct {
	client       *openai.Client
	model        string
	providerName string
}

var openAICompatDefaults = map[string]struct {
	baseURL string
	model   string
}{
	"groq":   {"https://api.groq.com/openai/v1", "gemma2-9b-it"},
	"openai": {"https://api.openai.com/v1", "gpt-4o-mini"},
	"gemini": {"https://generativelanguage.googleapis.com/v1beta/openai", "gemini-2.0-flash"},
}

func newOpenAICompatProvider(cfg Config) (*openAICompatProvider, error) {
	name := cfg.Provider
	if name == "" {
		name = "groq"
	}

	baseURL := cfg.BaseURL
	model := cfg.Model
	if d, ok := openAICompatDefaults[name]; ok {
		if baseURL == "" {
			baseURL = d.baseURL
		}
		if model == "" {
			model = d.model
		}
	}
	if baseURL == "" {
		return nil, fmt.Errorf("unknown provider %q requires an explicit base URL", name)
	}
	if model == "" {
		return nil, fmt.Errorf("provider %q requires an explicit model", name)
	}

	clientCfg := openai.DefaultConfig(cfg.APIKey)
	clientCfg.BaseURL = baseURL

	return &openAICompatProvider{
		client:       openai.NewClientWithConfig(clientCfg),
		model:        model,
		providerName: name,
	}, nil
}

func (p *openAICompatProvider) Name() string {
	return p.providerName
}

func (p *openAICompatProvider) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, openai.ChatCompletionMessage{
			Role:    openai.ChatMessageRoleSystem,
			Content: req.System,
		})
	}
	messages = append(messages, openai.ChatCompletionMessage{
		Role:    openai.ChatMessageRoleUser,
		Content: req.Prompt,
	})

	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = 2000
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:       p.model,
		Messages:    messages,
		MaxTokens:   maxTokens,
		Temperature: req.Temperature,
	})
	if err != nil {
		return "", recovery.NewError(Capability, classifyOpenAIError(err),
			fmt.Errorf("%s API error: %w", p.providerName, err))
	}
	if len(resp.Choices) == 0 {
		return "", recovery.NewError(Capability, recovery.KindValidation,
			fmt.Errorf("%s returned no choices", p.providerName))
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) recovery.Kind {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return kindFromStatus(apiErr.HTTPStatusCode)
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return kindFromStatus(reqErr.HTTPStatusCode)
	}
	return recovery.KindTransient
}

func kindFromStatus(status int) recovery.Kind {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return recovery.KindAuth
	case status == http.StatusTooManyRequests || status == http.StatusPaymentRequired:
		return recovery.KindQuota
	case status >= 400 && status < 500:
		return recovery.KindValidation
	default:
		return recovery.KindTransient
	}
}
