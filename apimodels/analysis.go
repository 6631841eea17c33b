package apimodels

// CanonicalAnalysis is the single canonical schema every agent response is
// reconciled into. Array-typed fields are always non-nil so consumers never
// have to distinguish a missing array from an empty one.
type CanonicalAnalysis struct {
	// Overall status reported by the agent, "success" when absent
	Status string `json:"status"`

	// Top-line human-readable description of the analysis
	Summary string `json:"summary"`

	// Freeform description of the scene
	SceneDescription string `json:"sceneDescription"`

	// Objects recognized in the image, in agent order
	ObjectsDetected []DetectedObject `json:"objectsDetected"`

	// Text found in the image; empty string means no text found
	TextExtracted string `json:"textExtracted"`

	// Dominant colors, in agent order; hex codes are passed through unvalidated
	DominantColors []DominantColor `json:"dominantColors"`

	EmotionalTone     string   `json:"emotionalTone"`
	SuggestedUseCases []string `json:"suggestedUseCases"`

	Metadata AnalysisMetadata `json:"metadata"`
}

type DetectedObject struct {
	Object     string `json:"object"`
	Confidence string `json:"confidence"`
}

type DominantColor struct {
	ColorName string `json:"colorName"`
	HexCode   string `json:"hexCode"`
}

type AnalysisMetadata struct {
	// Name the agent reported for itself, or a fixed fallback label
	AgentName string `json:"agentName"`

	// Timestamp the agent reported, or the reconciliation instant
	Timestamp string `json:"timestamp"`
}
