package summarize

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	cohere "github.com/cohere-ai/cohere-go/v2"
	cohereclient "github.com/cohere-ai/cohere-go/v2/client"
)

// ErrNoAPIKey is returned when no Cohere API key is configured.
var ErrNoAPIKey = errors.New("COHERE_API_KEY is not set")

// CohereChatter implements Chatter using the Cohere chat API.
// Docs: https://docs.cohere.com/reference/chat
// SDK: github.com/cohere-ai/cohere-go/v2
type CohereChatter struct {
	client *cohereclient.Client
	model  string
}

// NewCohereChatter creates a chatter for the given model.
// The API key is read from the COHERE_API_KEY environment variable.
func NewCohereChatter(model string) (*CohereChatter, error) {
	apiKey := os.Getenv("COHERE_API_KEY")
	if apiKey == "" {
		return nil, ErrNoAPIKey
	}

	// Summarization prompts include full abstracts, so responses can take
	// a while; the timeout stays well above the interactive default.
	httpClient := &http.Client{Timeout: 120 * time.Second}

	client := cohereclient.NewClient(
		cohereclient.WithToken(apiKey),
		cohereclient.WithHTTPClient(httpClient),
	)
	return &CohereChatter{client: client, model: model}, nil
}

// Chat sends one user prompt and returns the model's text response.
func (c *CohereChatter) Chat(ctx context.Context, prompt string) (string, error) {
	model := c.model
	resp, err := c.client.Chat(ctx, &cohere.ChatRequest{
		Message: prompt,
		Model:   &model,
	})
	if err != nil {
		return "", fmt.Errorf("cohere chat error: %w", err)
	}
	if resp == nil || resp.Text == "" {
		return "", errors.New("cohere chat returned empty response")
	}
	return resp.Text, nil
}
