package ports

import (
	"context"
)

// CompletionRequest is one strict-JSON completion asked from a language model.
type CompletionRequest struct {
	System    string
	Prompt    string
	MaxTokens int
}

// CompletionProvider sends a prompt to a language model and returns the raw text answer.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
	// Name retorna el nombre del proveedor (ej: "gemini", "openai")
	Name() string
}
