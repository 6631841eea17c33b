// Package assets talks to the asset store the vision agent reads images
// from. Uploads return opaque asset identifiers; everything else about the
// store is its own business.
package assets

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/google/uuid"
)

type Client struct {
	endpoint   string
	httpClient *http.Client
}

func NewClient(endpoint string, timeout time.Duration) (*Client, error) {
	slog.Info("Creating asset store client", "endpoint", endpoint)
	if endpoint == "" {
		return nil, fmt.Errorf("asset store endpoint cannot be empty")
	}
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &Client{
		endpoint: endpoint,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

type uploadResponse struct {
	Assets []struct {
		ID string `json:"id"`
	} `json:"assets"`
}

// Upload sends one binary file to the asset store and returns the asset
// identifiers it minted. An upload that yields no identifiers is an error:
// there is nothing for the agent to analyze.
func (c *Client) Upload(ctx context.Context, filename string, data []byte) ([]string, error) {
	var body bytes.Buffer
	writer := multipart.NewWriter(&body)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload form: %w", err)
	}
	if _, err := part.Write(data); err != nil {
		return nil, fmt.Errorf("failed to write upload form: %w", err)
	}
	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to finalize upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, &body)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload request: %w", err)
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("X-Upload-Request-Id", uuid.NewString())

	slog.Info("Uploading file to asset store", "filename", filename, "bytes", len(data))
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("upload request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("asset store returned status %d: %s", resp.StatusCode, snippet)
	}

	var decoded uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return nil, fmt.Errorf("failed to decode upload response: %w", err)
	}

	ids := make([]string, 0, len(decoded.Assets))
	for _, a := range decoded.Assets {
		if a.ID != "" {
			ids = append(ids, a.ID)
		}
	}
	if len(ids) == 0 {
		return nil, fmt.Errorf("upload returned no asset identifiers")
	}

	slog.Debug("Upload completed", "assets", ids)
	return ids, nil
}
