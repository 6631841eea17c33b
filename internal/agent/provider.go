// Package agent invokes the external vision agent. The agent is an
// untrusted, unversioned source of JSON: Invoke hands back whatever it said,
// verbatim, and leaves making sense of it to the reconciliation engine.
package agent

import (
	"context"
	"encoding/json"
)

type Provider interface {
	// Invoke sends the prompt and the uploaded image assets to the agent
	// and returns its raw reply.
	Invoke(ctx context.Context, prompt string, assetURLs []string, opts ...Option) (*Invocation, error)
}

// Invocation is the outcome of one agent call. When Success is false the
// agent itself reported failure; Response still carries whatever it returned
// so callers can keep it for debug display.
type Invocation struct {
	Success  bool
	Response json.RawMessage
	Error    string
	Usage    Usage
}

type Usage struct {
	PromptTokens     int64
	CompletionTokens int64
	TotalTokens      int64
}

type Option func(*Options)

type Options struct {
	Model       string
	MaxTokens   int64
	Temperature float64
}
