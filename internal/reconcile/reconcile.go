// Package reconcile maps the semi-structured JSON an external vision agent
// returns into one canonical analysis schema. The agent is untrusted and
// unversioned: the same nominal contract has been observed in several
// different shapes, so reconciliation tries a fixed priority list of
// candidate shapes and commits to the first structural match.
package reconcile

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/tidwall/gjson"

	"github.com/sozercan/pixel-ai-mole/apimodels"
)

const (
	// Fallback agent label when the payload carries no metadata.agentName
	defaultAgentName = "image-analysis-agent"

	// Fallback summary for the flattened shape, which has no summary field
	fallbackSummary = "Image analysis completed"

	defaultStatus = "success"
)

// Reconciler is a pure, stateless engine. The zero-argument New gives one
// backed by the real clock; tests inject a fixed clock via WithClock.
type Reconciler struct {
	now func() time.Time
}

type Option func(*Reconciler)

// WithClock overrides the clock used for the synthesized metadata timestamp.
func WithClock(now func() time.Time) Option {
	return func(r *Reconciler) {
		r.now = now
	}
}

func New(opts ...Option) *Reconciler {
	r := &Reconciler{now: time.Now}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// A candidate is one structural hypothesis about the payload: a predicate
// that decides whether the shape applies, and a mapper that builds the
// canonical analysis once it does. Candidates are tried in slice order and
// the first match wins; adding a newly observed agent shape means adding one
// more entry at the right priority slot.
type candidate struct {
	shape string
	match func(root gjson.Result) (ok bool, reason string)
	build func(r *Reconciler, root gjson.Result) *apimodels.CanonicalAnalysis
}

var candidates = []candidate{
	{shape: "canonical", match: matchCanonical, build: buildCanonical},
	{shape: "flattened", match: matchFlattened, build: buildFlattened},
	{shape: "double-nested", match: matchDoubleNested, build: buildDoubleNested},
}

var defaultReconciler = New()

// Reconcile maps a raw agent payload into the canonical schema using the
// default clock. See Reconciler.Reconcile.
func Reconcile(raw json.RawMessage) (*apimodels.CanonicalAnalysis, error) {
	return defaultReconciler.Reconcile(raw)
}

// Reconcile tries the known candidate shapes in priority order and returns
// the canonical analysis for the first one that matches. When none match it
// returns a *ShapeMismatchError naming every attempted shape and the
// top-level keys actually observed, with the raw payload retained. It never
// fails for any other reason: missing or mistyped fields inside a matched
// shape default per field instead of aborting.
func (r *Reconciler) Reconcile(raw json.RawMessage) (*apimodels.CanonicalAnalysis, error) {
	root := gjson.ParseBytes(raw)

	attempts := make([]ShapeAttempt, 0, len(candidates))
	for _, c := range candidates {
		ok, reason := c.match(root)
		if ok {
			return c.build(r, root), nil
		}
		attempts = append(attempts, ShapeAttempt{Shape: c.shape, Reason: reason})
	}

	return nil, &ShapeMismatchError{
		Attempted:            attempts,
		ObservedTopLevelKeys: topLevelKeys(root),
		RawPayload:           append(json.RawMessage(nil), raw...),
	}
}

// Candidate 1: the payload already carries the full nested shape with the
// domain fields under result.data.
func matchCanonical(root gjson.Result) (bool, string) {
	if !root.Get("result.data").IsObject() {
		return false, "result.data is not an object"
	}
	return true, ""
}

func buildCanonical(r *Reconciler, root gjson.Result) *apimodels.CanonicalAnalysis {
	return r.assemble(root, root.Get("result.data"), str(root.Get("result.summary")))
}

// Markers that identify the flattened shape, where the domain fields sit
// directly on result instead of under result.data.
var flattenedMarkers = []string{
	"sceneDescription",
	"objectsDetected",
	"textExtracted",
	"colorAnalysis",
	"moodAndContext",
}

// Candidate 2: result is an object with no data sub-object but with at least
// one domain field directly on it.
func matchFlattened(root gjson.Result) (bool, string) {
	res := root.Get("result")
	if !res.IsObject() {
		return false, "result is not an object"
	}
	if res.Get("data").IsObject() {
		return false, "result has a data sub-object"
	}
	for _, marker := range flattenedMarkers {
		if res.Get(marker).Exists() {
			return true, ""
		}
	}
	return false, "no analysis fields directly on result"
}

func buildFlattened(r *Reconciler, root gjson.Result) *apimodels.CanonicalAnalysis {
	res := root.Get("result")

	// The flattened shape has no reliable summary: prefer result.summary,
	// then a top-level message, then a fixed literal.
	summary := fallbackSummary
	if v := res.Get("summary"); v.Type == gjson.String {
		summary = v.Str
	} else if v := root.Get("message"); v.Type == gjson.String {
		summary = v.Str
	}

	return r.assemble(root, res, summary)
}

// Candidate 3: the whole canonical result object is nested one level deeper
// than expected; result has both a summary and a data field.
func matchDoubleNested(root gjson.Result) (bool, string) {
	res := root.Get("result")
	if !res.IsObject() {
		return false, "result is not an object"
	}
	if !res.Get("summary").Exists() || !res.Get("data").Exists() {
		return false, "result lacks the summary and data pair"
	}
	return true, ""
}

func buildDoubleNested(r *Reconciler, root gjson.Result) *apimodels.CanonicalAnalysis {
	res := root.Get("result")
	return r.assemble(root, res.Get("data"), str(res.Get("summary")))
}

// assemble applies the shared per-field coercion rules to whatever object a
// candidate selected as the domain data. Absent nested objects behave like
// empty objects, so every subfield extraction takes the same default path.
func (r *Reconciler) assemble(root, data gjson.Result, summary string) *apimodels.CanonicalAnalysis {
	mood := data.Get("moodAndContext")

	return &apimodels.CanonicalAnalysis{
		Status:            strOr(root.Get("status"), defaultStatus),
		Summary:           summary,
		SceneDescription:  str(data.Get("sceneDescription")),
		ObjectsDetected:   detectedObjects(data.Get("objectsDetected")),
		TextExtracted:     str(data.Get("textExtracted")),
		DominantColors:    dominantColors(data.Get("colorAnalysis.dominantColors")),
		EmotionalTone:     str(mood.Get("emotionalTone")),
		SuggestedUseCases: stringSlice(mood.Get("suggestedUseCases")),
		Metadata:          r.metadata(root.Get("metadata")),
	}
}

func (r *Reconciler) metadata(md gjson.Result) apimodels.AnalysisMetadata {
	return apimodels.AnalysisMetadata{
		AgentName: strOr(md.Get("agentName"), defaultAgentName),
		Timestamp: strOr(md.Get("timestamp"), r.now().UTC().Format(time.RFC3339)),
	}
}

func topLevelKeys(root gjson.Result) []string {
	keys := []string{}
	if !root.IsObject() {
		return keys
	}
	root.ForEach(func(key, _ gjson.Result) bool {
		keys = append(keys, key.String())
		return true
	})
	sort.Strings(keys)
	return keys
}
