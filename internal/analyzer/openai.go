package analyzer

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	openai "github.com/sashabaranov/go-openai"

	"github.com/BerylCAtieno/happyhour-menu-api/internal/models"
	"github.com/BerylCAtieno/happyhour-menu-api/internal/utils"
)

const imagesMarker = "Here are the images to analyze:"

type Analyzer interface {
	// Analyze returns the model's JSON reply for the page images, unmodified.
	Analyze(ctx context.Context, pages models.PageImageSet) (string, error)
}

type openAIAnalyzer struct {
	client  *openai.Client
	model   string
	variant models.SchemaVariant
	logger  *utils.Logger
}

// NewOpenAIAnalyzer talks to the OpenAI chat completions API, or to any
// compatible gateway when baseURL is set.
func NewOpenAIAnalyzer(apiKey, baseURL, model string, variant models.SchemaVariant, logger *utils.Logger) Analyzer {
	cfg := openai.DefaultConfig(apiKey)
	if baseURL != "" {
		cfg.BaseURL = baseURL
	}

	return &openAIAnalyzer{
		client:  openai.NewClientWithConfig(cfg),
		model:   model,
		variant: variant,
		logger:  logger,
	}
}

func (a *openAIAnalyzer) Analyze(ctx context.Context, pages models.PageImageSet) (string, error) {
	if len(pages) == 0 {
		return "", utils.NewInternalError("No page images to analyze")
	}

	req, err := a.buildRequest(pages)
	if err != nil {
		return "", err
	}

	a.logger.Info("Sending pages to model", "model", a.model, "pages", len(pages), "variant", a.variant)

	resp, err := a.client.CreateChatCompletion(ctx, req)
	if err != nil {
		return "", utils.NewUpstreamError("Error analyzing images", err)
	}

	if len(resp.Choices) == 0 {
		return "", utils.NewUpstreamError("Error analyzing images: no choices in response", nil)
	}

	msg := resp.Choices[0].Message
	if msg.Refusal != "" {
		return "", utils.NewUpstreamError("Error analyzing images: model refused: "+msg.Refusal, nil)
	}

	a.logger.Debug("Model response received",
		"finish_reason", resp.Choices[0].FinishReason,
		"total_tokens", resp.Usage.TotalTokens)

	return msg.Content, nil
}

// buildRequest attaches page images in ascending page order no matter how
// the set was built.
func (a *openAIAnalyzer) buildRequest(pages models.PageImageSet) (openai.ChatCompletionRequest, error) {
	parts := []openai.ChatMessagePart{
		{Type: openai.ChatMessagePartTypeText, Text: imagesMarker},
	}

	for _, page := range pages.Pages() {
		data, err := os.ReadFile(pages[page])
		if err != nil {
			return openai.ChatCompletionRequest{}, utils.NewFilesystemError(fmt.Sprintf("Failed to read image for page %d", page), err)
		}

		a.logger.Debug("Adding image for page", "page", page)
		parts = append(parts, openai.ChatMessagePart{
			Type: openai.ChatMessagePartTypeImageURL,
			ImageURL: &openai.ChatMessageImageURL{
				URL: "data:image/png;base64," + base64.StdEncoding.EncodeToString(data),
			},
		})
	}

	return openai.ChatCompletionRequest{
		Model: a.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: Prompt(a.variant)},
			{Role: openai.ChatMessageRoleUser, MultiContent: parts},
		},
		ResponseFormat: &openai.ChatCompletionResponseFormat{
			Type: openai.ChatCompletionResponseFormatTypeJSONSchema,
			JSONSchema: &openai.ChatCompletionResponseFormatJSONSchema{
				Name:   schemaName,
				Schema: Schema(a.variant),
				Strict: true,
			},
		},
	}, nil
}
