package apimodels

// AnalysisRequest carries one image and the instructions for analyzing it.
// The image bytes arrive through the multipart form on the HTTP surface and
// are attached here by the handler.
type AnalysisRequest struct {
	// Prompt is the instruction sent to the vision agent
	Prompt string `json:"prompt"`

	// Optional parameters to control analysis behavior
	Options AnalysisOptions `json:"options,omitempty"`

	// Filename of the uploaded image, used for the asset store
	Filename string `json:"-"`

	// Raw image bytes
	Image []byte `json:"-"`
}

type AnalysisOptions struct {
	// Agent specifies which vision agent to invoke (e.g. "gpt-4o")
	Agent string `json:"agent,omitempty"`

	// MaxTokens limits the agent response length
	MaxTokens int `json:"maxTokens,omitempty"`

	// Temperature controls randomness (0.0-1.0)
	Temperature float32 `json:"temperature,omitempty"`
}
