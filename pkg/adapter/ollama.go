package adapter

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

const defaultOllamaHost = "http://localhost:11434"

// OllamaAdapter implements the Adapter interface for a local Ollama
// server. Ollama exposes an OpenAI-compatible API under /v1.
type OllamaAdapter struct {
	host       string
	model      string
	httpClient *http.Client
}

// ollamaRequest is the OpenAI-compatible request format.
type ollamaRequest struct {
	Model     string          `json:"model"`
	Messages  []ollamaMessage `json:"messages"`
	MaxTokens int             `json:"max_tokens,omitempty"`
}

// ollamaMessage represents a chat message.
type ollamaMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// ollamaResponse is the OpenAI-compatible response format.
type ollamaResponse struct {
	Model   string `json:"model"`
	Choices []struct {
		Message struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int64 `json:"prompt_tokens"`
		CompletionTokens int64 `json:"completion_tokens"`
	} `json:"usage"`
	Error *struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error,omitempty"`
}

// NewOllamaAdapter creates an adapter for a local OpenAI-compatible
// endpoint. An empty host falls back to the default Ollama address.
func NewOllamaAdapter(host, model string) (*OllamaAdapter, error) {
	if host == "" {
		host = defaultOllamaHost
	}
	if model == "" {
		return nil, fmt.Errorf("ollama model is required")
	}

	return &OllamaAdapter{
		host:       host,
		model:      model,
		httpClient: &http.Client{},
	}, nil
}

// Name returns the adapter identifier.
func (a *OllamaAdapter) Name() string {
	return "ollama"
}

// Models returns the configured model.
func (a *OllamaAdapter) Models() []string {
	return []string{a.model}
}

// Complete sends a system prompt and user input to the local server.
func (a *OllamaAdapter) Complete(ctx context.Context, system, user string) (*Response, error) {
	reqBody := ollamaRequest{
		Model: a.model,
		Messages: []ollamaMessage{
			{Role: "system", Content: system},
			{Role: "user", Content: user},
		},
		MaxTokens: 4096,
	}

	jsonBody, err := json.Marshal(reqBody)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", a.host+"/v1/chat/completions", bytes.NewReader(jsonBody))
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, &AdapterError{Temporary: true, Err: fmt.Errorf("ollama request failed: %w", err)}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &AdapterError{
			Status: resp.StatusCode,
			Err:    fmt.Errorf("ollama returned status %d: %s", resp.StatusCode, string(body)),
		}
	}

	var ollamaResp ollamaResponse
	if err := json.Unmarshal(body, &ollamaResp); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}
	if ollamaResp.Error != nil {
		return nil, fmt.Errorf("ollama API error: %s (type: %s)", ollamaResp.Error.Message, ollamaResp.Error.Type)
	}
	if len(ollamaResp.Choices) == 0 {
		return nil, fmt.Errorf("ollama returned no choices")
	}

	return &Response{
		Content: ollamaResp.Choices[0].Message.Content,
		Usage: &Usage{
			PromptTokens:     ollamaResp.Usage.PromptTokens,
			CompletionTokens: ollamaResp.Usage.CompletionTokens,
		},
	}, nil
}

// RunGeneral delegates the full request to the local model.
func (a *OllamaAdapter) RunGeneral(ctx context.Context, input string) (*Response, error) {
	return a.Complete(ctx, generalSystemPrompt, input)
}
