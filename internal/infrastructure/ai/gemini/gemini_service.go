package gemini

import (
	"context"
	"strings"

	"github.com/Tomas-vilte/MateRisk/internal/config"
	domainErrors "github.com/Tomas-vilte/MateRisk/internal/domain/errors"
	"github.com/Tomas-vilte/MateRisk/internal/domain/ports"
	"github.com/Tomas-vilte/MateRisk/internal/logger"
	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"
)

var _ ports.CompletionProvider = (*GeminiProvider)(nil)

const (
	jsonMIMEType = "application/json"
	temperature  = 0.3
)

// ContentGenerator is satisfied by *genai.GenerativeModel.
type ContentGenerator interface {
	GenerateContent(ctx context.Context, parts ...genai.Part) (*genai.GenerateContentResponse, error)
}

// ModelFactory returns a generator configured for one request.
type ModelFactory func(req ports.CompletionRequest) ContentGenerator

type GeminiProvider struct {
	client   *genai.Client
	newModel ModelFactory
	model    string
}

func NewGeminiProvider(ctx context.Context, cfg config.GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, domainErrors.ErrAIKeyMissing.WithContext("provider", string(config.AIGemini))
	}

	client, err := genai.NewClient(ctx, option.WithAPIKey(cfg.APIKey))
	if err != nil {
		return nil, domainErrors.NewModelError("failed to create Gemini client", err)
	}

	modelName := string(cfg.Model)
	if modelName == "" {
		modelName = string(config.DefaultModel(config.AIGemini))
	}

	p := &GeminiProvider{client: client, model: modelName}
	p.newModel = func(req ports.CompletionRequest) ContentGenerator {
		model := client.GenerativeModel(modelName)
		model.ResponseMIMEType = jsonMIMEType
		model.SetTemperature(temperature)
		if req.MaxTokens > 0 {
			model.SetMaxOutputTokens(int32(req.MaxTokens))
		}
		if req.System != "" {
			model.SystemInstruction = &genai.Content{Parts: []genai.Part{genai.Text(req.System)}}
		}
		return model
	}
	return p, nil
}

func NewGeminiProviderWithFactory(newModel ModelFactory, model string) *GeminiProvider {
	return &GeminiProvider{newModel: newModel, model: model}
}

// Complete requests a JSON answer for req.
func (p *GeminiProvider) Complete(ctx context.Context, req ports.CompletionRequest) (string, error) {
	logger.Debug(ctx, "calling gemini",
		"model", p.model,
		"max_tokens", req.MaxTokens,
		"prompt_length", len(req.Prompt))

	resp, err := p.newModel(req).GenerateContent(ctx, genai.Text(req.Prompt))
	if err != nil {
		return "", domainErrors.NewModelError(domainErrors.ErrAIGeneration.Message, err).
			WithContext("model", p.model).
			WithSuggestion(domainErrors.ErrAIGeneration.Suggestion)
	}

	text := formatResponse(resp)
	if strings.TrimSpace(text) == "" {
		return "", domainErrors.ErrEmptyAIResponse.WithContext("model", p.model)
	}

	if resp.UsageMetadata != nil {
		logger.Debug(ctx, "gemini answered",
			"prompt_tokens", resp.UsageMetadata.PromptTokenCount,
			"completion_tokens", resp.UsageMetadata.CandidatesTokenCount)
	}
	return text, nil
}

func (p *GeminiProvider) Name() string {
	return string(config.AIGemini)
}

// Close releases the underlying client.
func (p *GeminiProvider) Close() error {
	if p.client == nil {
		return nil
	}
	return p.client.Close()
}

func formatResponse(resp *genai.GenerateContentResponse) string {
	if resp == nil || len(resp.Candidates) == 0 {
		return ""
	}

	var formattedContent strings.Builder
	for _, cand := range resp.Candidates {
		if cand.Content == nil {
			continue
		}
		for _, part := range cand.Content.Parts {
			if text, ok := part.(genai.Text); ok {
				formattedContent.WriteString(string(text))
			}
		}
	}
	return formattedContent.String()
}
