package adapter

import "context"

// Adapter defines the interface for model provider adapters.
type Adapter interface {
	// Complete sends a system prompt and user input to the model.
	Complete(ctx context.Context, system, user string) (*Response, error)

	// RunGeneral delegates an entire request to the model's single-shot
	// general entry point, used for full fallback.
	RunGeneral(ctx context.Context, input string) (*Response, error)

	// Name returns the adapter's identifier.
	Name() string

	// Models returns the list of supported models.
	Models() []string
}

// Response is the normalized model reply.
type Response struct {
	Content string `json:"content"`
	Usage   *Usage `json:"usage,omitempty"`
}

// Usage captures normalized token usage when the provider reports it.
type Usage struct {
	PromptTokens     int64 `json:"prompt_tokens"`
	CompletionTokens int64 `json:"completion_tokens"`
}

// generalSystemPrompt frames full-fallback delegation for providers whose
// API has no dedicated agent entry point.
const generalSystemPrompt = "You are a capable general-purpose assistant. " +
	"Handle the user's request directly and completely."
