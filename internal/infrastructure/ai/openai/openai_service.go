package openai

import (
	"context"
	"errors"
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	goopenai "github.com/sashabaranov/go-openai"
)

var _ ports.CompletionProvider = (*OpenAIProvider)(nil)

// ChatClient is the part of the go-openai client the provider uses.
type ChatClient interface {
	CreateChatCompletion(ctx context.Context, req goopenai.ChatCompletionRequest) (goopenai.ChatCompletionResponse, error)
}

// OpenAIProvider talks to any OpenAI-compatible chat completion endpoint.
type OpenAIProvider struct {
	client ChatClient
	model  string
}

// NewOpenAIProvider builds a provider from the openai section of cfg.
// An empty BaseURL keeps the public OpenAI endpoint.
func NewOpenAIProvider(cfg config.OpenAIConfig) (*OpenAIProvider, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAIKeyMissing.WithContext("provider", string(config.AIOpenAI))
	}

	clientCfg := goopenai.DefaultConfig(cfg.APIKey)
	if cfg.BaseURL != "" {
		clientCfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")
	}

	return NewOpenAIProviderWithClient(goopenai.NewClientWithConfig(clientCfg), string(cfg.Model)), nil
}

func NewOpenAIProviderWithClient(client ChatClient, model string) *OpenAIProvider {
	if model == "" {
		model = string(config.DefaultModel(config.AIOpenAI))
	}
	return &OpenAIProvider{client: client, model: model}
}

// Complete requests a JSON object answer for req.
func (p *OpenAIProvider) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	log := logger.FromContext(ctx)

	messages := make([]goopenai.ChatCompletionMessage, 0, 2)
	if req.System != "" {
		messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleSystem, Content: req.System})
	}
	messages = append(messages, goopenai.ChatCompletionMessage{Role: goopenai.ChatMessageRoleUser, Content: req.Prompt})

	log.Debug("calling openai",
		"model", p.model,
		"max_tokens", req.MaxTokens,
		"prompt_length", len(req.Prompt))

	resp, err := p.client.CreateChatCompletion(ctx, goopenai.ChatCompletionRequest{
		Model:     p.model,
		Messages:  messages,
		MaxTokens: req.MaxTokens,
		ResponseFormat: &goopenai.ChatCompletionResponseFormat{
			Type: goopenai.ChatCompletionResponseFormatTypeJSONObject,
		},
	})
	if err != nil {
		var apiErr *goopenai.APIError
		if errors.As(err, &apiErr) {
			return "", domainErrors.NewModelError(domainErrors.ErrAIGeneration.Message, err).
				WithContext("status_code", apiErr.HTTPStatusCode).
				WithContext("body", apiErr.Message).
				WithSuggestion(domainErrors.ErrAIGeneration.Suggestion)
		}
		var reqErr *goopenai.RequestError
		if errors.As(err, &reqErr) {
			return "", domainErrors.NewModelError(domainErrors.ErrAIGeneration.Message, err).
				WithContext("status_code", reqErr.HTTPStatusCode)
		}
		return "", domainErrors.NewModelError(domainErrors.ErrAIGeneration.Message, err)
	}

	if len(resp.Choices) == 0 || strings.TrimSpace(resp.Choices[0].Message.Content) == "" {
		return "", domainErrors.ErrEmptyAIResponse.WithContext("model", p.model)
	}

	log.Debug("openai answered",
		"prompt_tokens", resp.Usage.PromptTokens,
		"completion_tokens", resp.Usage.CompletionTokens)

	return resp.Choices[0].Message.Content, nil
}

func (p *OpenAIProvider) Name() string {
	return string(config.AIOpenAI)
}
