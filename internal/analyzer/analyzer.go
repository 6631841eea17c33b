package analyzer

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/sozercan/pixel-ai-mole/apimodels"
	"github.com/sozercan/pixel-ai-mole/internal/agent"
	"github.com/sozercan/pixel-ai-mole/internal/reconcile"
)

const defaultPrompt = "Analyze this image and describe what you see."

// Uploader stores one binary file and returns the asset identifiers it
// produced.
type Uploader interface {
	Upload(ctx context.Context, filename string, data []byte) ([]string, error)
}

// Analyzer runs one analysis end to end: upload the image, invoke the vision
// agent, reconcile its reply. Retries, if any, belong to the collaborators;
// there is exactly one reconciliation per agent call.
type Analyzer struct {
	uploader     Uploader
	provider     agent.Provider
	reconciler   *reconcile.Reconciler
	assetBaseURL string
}

func New(uploader Uploader, provider agent.Provider, assetBaseURL string) *Analyzer {
	return &Analyzer{
		uploader:     uploader,
		provider:     provider,
		reconciler:   reconcile.New(),
		assetBaseURL: assetBaseURL,
	}
}

func (a *Analyzer) Analyze(ctx context.Context, req apimodels.AnalysisRequest) (*apimodels.AnalysisResponse, error) {
	slog.Info("Starting analysis", "filename", req.Filename, "bytes", len(req.Image))
	startTime := time.Now()

	if len(req.Image) == 0 {
		return nil, fmt.Errorf("no image provided")
	}

	assetIDs, err := a.uploader.Upload(ctx, req.Filename, req.Image)
	if err != nil {
		slog.Error("Upload failed", "error", err)
		return nil, fmt.Errorf("upload failed: %w", err)
	}

	assetURLs := make([]string, len(assetIDs))
	for i, id := range assetIDs {
		assetURLs[i] = a.assetBaseURL + "/" + id
	}

	prompt := req.Prompt
	if prompt == "" {
		prompt = defaultPrompt
	}

	invocation, err := a.provider.Invoke(ctx, prompt, assetURLs,
		func(o *agent.Options) {
			if req.Options.Agent != "" {
				o.Model = req.Options.Agent
			}
			if req.Options.MaxTokens != 0 {
				o.MaxTokens = int64(req.Options.MaxTokens)
			}
			if req.Options.Temperature != 0 {
				o.Temperature = float64(req.Options.Temperature)
			}
		},
	)
	if err != nil {
		slog.Error("Agent invocation failed", "error", err)
		return nil, fmt.Errorf("agent invocation failed: %w", err)
	}

	if !invocation.Success {
		slog.Warn("Agent reported failure", "error", invocation.Error)
		return nil, &reconcile.UpstreamError{
			Message:     invocation.Error,
			RawResponse: invocation.Response,
		}
	}

	analysis, err := a.reconciler.Reconcile(invocation.Response)
	if err != nil {
		// Shape mismatches pass through typed so the presentation layer can
		// offer the raw payload in a debug view.
		slog.Warn("Reconciliation failed", "error", err)
		return nil, err
	}

	slog.Info("Analysis completed", "duration", time.Since(startTime), "assets", assetIDs)
	return &apimodels.AnalysisResponse{
		Result: analysis,
		Metadata: apimodels.ResponseMetadata{
			Duration:   time.Since(startTime).String(),
			Agent:      req.Options.Agent,
			Assets:     assetIDs,
			TokensUsed: invocation.Usage.TotalTokens,
		},
	}, nil
}
