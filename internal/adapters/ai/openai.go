package ai

import (
	"context"
	"fmt"

	openai "github.com/sashabaranov/go-openai"

	"github.com/selivandex/crypto-news/pkg/models"
)

// OpenAIClassifier implements the primary sentiment tier on OpenAI chat
// completions, as an alternative to Claude.
type OpenAIClassifier struct {
	client *openai.Client
	model  string
}

// NewOpenAIClassifier creates new OpenAI classifier
func NewOpenAIClassifier(apiKey, model string) *OpenAIClassifier {
	return &OpenAIClassifier{
		client: openai.NewClient(apiKey),
		model:  model,
	}
}

func (o *OpenAIClassifier) Name() string {
	return "openai"
}

func (o *OpenAIClassifier) Classify(ctx context.Context, title, snippet string) (models.SentimentResult, error) {
	resp, err := o.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model:     o.model,
		MaxTokens: 100,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: buildUserPrompt(title, snippet)},
		},
	})
	if err != nil {
		return models.SentimentResult{}, fmt.Errorf("request failed: %w", err)
	}

	if len(resp.Choices) == 0 {
		return models.SentimentResult{}, fmt.Errorf("no choices in response")
	}

	return parseModelResponse(resp.Choices[0].Message.Content)
}
