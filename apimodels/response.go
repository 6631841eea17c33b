package apimodels

import "encoding/json"

type AnalysisResponse struct {
	// The reconciled canonical analysis
	Result *CanonicalAnalysis `json:"result"`

	// Metadata about the call itself
	Metadata ResponseMetadata `json:"metadata"`
}

type ResponseMetadata struct {
	// Time taken for upload, invocation and reconciliation
	Duration string `json:"duration"`

	// Agent used for the analysis
	Agent string `json:"agent"`

	// Asset identifiers returned by the upload
	Assets []string `json:"assets,omitempty"`

	// Tokens used by the agent invocation
	TokensUsed int64 `json:"tokensUsed,omitempty"`
}

// ErrorResponse is the failure surface for both upstream agent failures and
// reconciliation mismatches. RawPayload always carries the agent's response
// verbatim so callers can offer a debug view.
type ErrorResponse struct {
	Error string `json:"error"`

	// Set on shape mismatches: candidate shapes tried, in priority order
	AttemptedShapes []string `json:"attemptedShapes,omitempty"`

	// Set on shape mismatches: top-level keys observed on the payload
	ObservedTopLevelKeys []string `json:"observedTopLevelKeys,omitempty"`

	RawPayload json.RawMessage `json:"rawPayload,omitempty"`
}
