package chat

import (
	"context"
	"errors"
	"fmt"

	"google.golang.org/genai"
)

// DefaultModel is used when no model name is configured.
const DefaultModel = "gemini-2.5-flash"

// ErrEmptyReply is returned when the model answers without any text.
var ErrEmptyReply = errors.New("empty reply")

// GeminiModel generates replies through the Gemini API.
type GeminiModel struct {
	client *genai.Client
	model  string
}

// NewGeminiModel creates a client for the Gemini API.
func NewGeminiModel(ctx context.Context, apiKey, model string) (*GeminiModel, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("Gemini API key is required")
	}
	if model == "" {
		model = DefaultModel
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiModel{client: client, model: model}, nil
}

// Name returns the model name requests are sent to.
func (m *GeminiModel) Name() string { return m.model }

// Generate implements Model.
func (m *GeminiModel) Generate(ctx context.Context, system string, history []Turn, text string) (string, error) {
	resp, err := m.client.Models.GenerateContent(ctx,
		m.model,
		buildContents(history, text),
		buildConfig(system),
	)
	if err != nil {
		return "", fmt.Errorf("generate content: %w", err)
	}

	reply := resp.Text()
	if reply == "" {
		return "", ErrEmptyReply
	}
	return reply, nil
}

func buildContents(history []Turn, text string) []*genai.Content {
	contents := make([]*genai.Content, 0, len(history)+1)
	for _, t := range history {
		var role genai.Role = genai.RoleUser
		if t.Role == RoleModel {
			role = genai.RoleModel
		}
		contents = append(contents, genai.NewContentFromText(t.Text, role))
	}
	return append(contents, genai.NewContentFromText(text, genai.RoleUser))
}

func buildConfig(system string) *genai.GenerateContentConfig {
	if system == "" {
		return nil
	}
	return &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(system, genai.RoleUser),
	}
}
