package reconcile

import (
	"encoding/json"
	"fmt"
	"strings"
)

// ShapeAttempt records one candidate shape that was tried and why it did not
// match.
type ShapeAttempt struct {
	Shape  string `json:"shape"`
	Reason string `json:"reason"`
}

// ShapeMismatchError is returned when a payload matches none of the known
// candidate shapes. It keeps the raw payload so callers can surface it in a
// debug view; a mismatch usually means the agent's contract has drifted.
type ShapeMismatchError struct {
	Attempted            []ShapeAttempt  `json:"attemptedShapes"`
	ObservedTopLevelKeys []string        `json:"observedTopLevelKeys"`
	RawPayload           json.RawMessage `json:"rawPayload"`
}

func (e *ShapeMismatchError) Error() string {
	shapes := make([]string, len(e.Attempted))
	for i, a := range e.Attempted {
		shapes[i] = a.Shape
	}
	return fmt.Sprintf("payload matched none of the known shapes [%s] (observed top-level keys: %s)",
		strings.Join(shapes, ", "), strings.Join(e.ObservedTopLevelKeys, ", "))
}

// AttemptedShapes returns the candidate shape names in the order they were
// tried.
func (e *ShapeMismatchError) AttemptedShapes() []string {
	shapes := make([]string, len(e.Attempted))
	for i, a := range e.Attempted {
		shapes[i] = a.Shape
	}
	return shapes
}

// UpstreamError reports that the agent invocation itself failed before any
// reconciliation could happen. The raw response is retained for debug display.
type UpstreamError struct {
	Message     string          `json:"message"`
	RawResponse json.RawMessage `json:"rawResponse,omitempty"`
}

func (e *UpstreamError) Error() string {
	if e.Message == "" {
		return "agent invocation failed"
	}
	return fmt.Sprintf("agent invocation failed: %s", e.Message)
}
