package llm

import (
	"context"
)

// CompletionRequest carries one chat completion. Model overrides the client's
// configured model when non-empty; zero Temperature and MaxTokens fall back
// to the client's defaults.
type CompletionRequest struct {
	System      string
	User        string
	Model       string
	Temperature float32
	MaxTokens   int
}

// Client is the completion collaborator every pipeline stage talks to.
type Client interface {
	Complete(ctx context.Context, req CompletionRequest) (string, error)
}
