package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"

	"github.com/sozercan/pixel-ai-mole/apimodels"
	"github.com/sozercan/pixel-ai-mole/internal/reconcile"
)

const maxUploadBytes = 32 << 20

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
		http.Error(w, fmt.Sprintf("Invalid request: %v", err), http.StatusBadRequest)
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		http.Error(w, "Missing image file", http.StatusBadRequest)
		return
	}
	defer file.Close()

	image, err := io.ReadAll(file)
	if err != nil {
		http.Error(w, fmt.Sprintf("Failed to read image: %v", err), http.StatusBadRequest)
		return
	}

	req := apimodels.AnalysisRequest{
		Prompt:   r.FormValue("prompt"),
		Filename: header.Filename,
		Image:    image,
		Options: apimodels.AnalysisOptions{
			Agent: r.FormValue("agent"),
		},
	}

	slog.Debug("Received analysis request", "filename", req.Filename, "prompt", req.Prompt)

	result, err := s.analyzer.Analyze(r.Context(), req)
	if err != nil {
		s.writeAnalysisError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, result)
}

// writeAnalysisError maps the typed reconciliation failures onto the error
// surface. Both carry the raw agent payload so clients can show a debug view;
// anything else is an internal error.
func (s *Server) writeAnalysisError(w http.ResponseWriter, err error) {
	var mismatch *reconcile.ShapeMismatchError
	if errors.As(err, &mismatch) {
		slog.Warn("Agent response did not match any known shape", "observedKeys", mismatch.ObservedTopLevelKeys)
		writeJSON(w, http.StatusUnprocessableEntity, apimodels.ErrorResponse{
			Error:                "could not parse agent response",
			AttemptedShapes:      mismatch.AttemptedShapes(),
			ObservedTopLevelKeys: mismatch.ObservedTopLevelKeys,
			RawPayload:           mismatch.RawPayload,
		})
		return
	}

	var upstream *reconcile.UpstreamError
	if errors.As(err, &upstream) {
		slog.Warn("Agent invocation reported failure", "message", upstream.Message)
		writeJSON(w, http.StatusBadGateway, apimodels.ErrorResponse{
			Error:      upstream.Error(),
			RawPayload: upstream.RawResponse,
		})
		return
	}

	slog.Error("Analysis request failed", "error", err)
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("Failed to encode response", "error", err)
	}
}
