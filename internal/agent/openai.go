package agent

import (
	"context"
	"strings"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/azure"
	"github.com/openai/openai-go/option"

	"github.com/sozercan/pixel-ai-mole/internal/config"
)

var SystemPrompt = `You are a vision agent that analyzes images.
Respond with a single JSON object and nothing else. The object must contain a
"status" field, a "result" object with "summary" and a "data" object holding
"sceneDescription", "objectsDetected", "textExtracted", "colorAnalysis" and
"moodAndContext", plus a "metadata" object with "agentName" and "timestamp".
Do not wrap the JSON in prose or markdown.`

// OpenAI client implementation
type OpenAI struct {
	client *openai.Client
	cfg    *config.AgentConfig
}

func NewOpenAI(cfg *config.AgentConfig) (*OpenAI, error) {
	var client *openai.Client

	switch cfg.Provider {
	case "azure":
		client = openai.NewClient(
			azure.WithEndpoint(cfg.APIEndpoint, cfg.APIVersion),
			azure.WithAPIKey(cfg.APIKey),
		)
	default: // "openai"
		client = openai.NewClient(
			option.WithAPIKey(cfg.APIKey),
			option.WithBaseURL(cfg.APIEndpoint),
		)
	}

	return &OpenAI{
		client: client,
		cfg:    cfg,
	}, nil
}

func (o *OpenAI) Invoke(ctx context.Context, prompt string, assetURLs []string, opts ...Option) (*Invocation, error) {
	// Apply options
	options := &Options{
		Model:       o.cfg.Model,
		Temperature: 0,
		MaxTokens:   1000,
	}
	for _, opt := range opts {
		opt(options)
	}

	parts := []openai.ChatCompletionContentPartUnionParam{
		openai.TextPart(prompt),
	}
	for _, url := range assetURLs {
		parts = append(parts, openai.ImagePart(url))
	}

	resp, err := o.client.Chat.Completions.New(
		ctx,
		openai.ChatCompletionNewParams{
			Model: openai.F(options.Model),
			Messages: openai.F([]openai.ChatCompletionMessageParamUnion{
				openai.SystemMessage(SystemPrompt),
				openai.UserMessageParts(parts...),
			}),
			Temperature: openai.F(options.Temperature),
			MaxTokens:   openai.F(options.MaxTokens),
		},
	)
	if err != nil {
		return nil, err
	}

	invocation := &Invocation{
		Usage: Usage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}

	if len(resp.Choices) == 0 || resp.Choices[0].Message.Content == "" {
		invocation.Error = "agent returned no content"
		return invocation, nil
	}

	invocation.Success = true
	invocation.Response = []byte(stripFences(resp.Choices[0].Message.Content))
	return invocation, nil
}

// stripFences removes a markdown code fence if the agent wrapped its JSON in
// one despite the instructions.
func stripFences(s string) string {
	trimmed := strings.TrimSpace(s)
	if !strings.HasPrefix(trimmed, "```") {
		return trimmed
	}
	trimmed = strings.TrimPrefix(trimmed, "```json")
	trimmed = strings.TrimPrefix(trimmed, "```")
	trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
	return strings.TrimSpace(trimmed)
}
