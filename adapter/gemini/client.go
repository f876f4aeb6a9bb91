package gemini

import (
	"context"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"viralfeed/domain"
)

// Client adapts the Gemini SDK to the Generator port. Every call requests a
// JSON response so the structured-output contract holds.
type Client struct {
	client *genai.Client
	model  string
}

func NewClient(ctx context.Context, apiKey, model string) (*Client, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("generation service API key is required")
	}
	c, err := genai.NewClient(ctx, &genai.ClientConfig{APIKey: apiKey})
	if err != nil {
		return nil, err
	}
	return &Client{client: c, model: model}, nil
}

var _ domain.Generator = (*Client)(nil)

func (c *Client) Generate(ctx context.Context, req domain.GenRequest) (string, error) {
	cfg := &genai.GenerateContentConfig{
		Temperature:      genai.Ptr(req.Temperature),
		MaxOutputTokens:  req.MaxOutputTokens,
		ResponseMIMEType: "application/json",
	}
	if req.System != "" {
		cfg.SystemInstruction = genai.NewContentFromText(req.System, genai.RoleUser)
	}
	result, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(req.User), cfg)
	if err != nil {
		return "", err
	}
	if result == nil || len(result.Candidates) == 0 ||
		result.Candidates[0].Content == nil || len(result.Candidates[0].Content.Parts) == 0 {
		return "", fmt.Errorf("empty response from %s", c.model)
	}
	return CleanJSON(result.Candidates[0].Content.Parts[0].Text), nil
}

// CleanJSON drops the markdown code fence some models wrap around JSON
// payloads even in JSON mode.
func CleanJSON(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
