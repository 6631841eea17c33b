package reconcile

import (
	"github.com/tidwall/gjson"

	"github.com/sozercan/pixel-ai-mole/apimodels"
)

// str returns the value if it is a JSON string and the empty string otherwise.
// Numbers and booleans are never coerced to strings.
func str(v gjson.Result) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return ""
}

func strOr(v gjson.Result, fallback string) string {
	if v.Type == gjson.String {
		return v.Str
	}
	return fallback
}

// detectedObjects maps a raw objectsDetected value. A non-array value yields
// an empty slice; non-object elements inside a valid array are dropped, and
// object elements have their subfields string-coerced individually.
func detectedObjects(v gjson.Result) []apimodels.DetectedObject {
	out := []apimodels.DetectedObject{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, el gjson.Result) bool {
		if !el.IsObject() {
			return true
		}
		out = append(out, apimodels.DetectedObject{
			Object:     str(el.Get("object")),
			Confidence: str(el.Get("confidence")),
		})
		return true
	})
	return out
}

func dominantColors(v gjson.Result) []apimodels.DominantColor {
	out := []apimodels.DominantColor{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, el gjson.Result) bool {
		if !el.IsObject() {
			return true
		}
		out = append(out, apimodels.DominantColor{
			ColorName: str(el.Get("colorName")),
			HexCode:   str(el.Get("hexCode")),
		})
		return true
	})
	return out
}

func stringSlice(v gjson.Result) []string {
	out := []string{}
	if !v.IsArray() {
		return out
	}
	v.ForEach(func(_, el gjson.Result) bool {
		out = append(out, str(el))
		return true
	})
	return out
}
