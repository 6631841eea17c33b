package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sozercan/pixel-ai-mole/apimodels"
	"github.com/sozercan/pixel-ai-mole/internal/agent"
	"github.com/sozercan/pixel-ai-mole/internal/reconcile"
)

type fakeUploader struct {
	ids []string
	err error

	gotFilename string
}

func (f *fakeUploader) Upload(_ context.Context, filename string, _ []byte) ([]string, error) {
	f.gotFilename = filename
	return f.ids, f.err
}

type fakeProvider struct {
	invocation *agent.Invocation
	err        error

	gotPrompt string
	gotURLs   []string
}

func (f *fakeProvider) Invoke(_ context.Context, prompt string, assetURLs []string, _ ...agent.Option) (*agent.Invocation, error) {
	f.gotPrompt = prompt
	f.gotURLs = assetURLs
	return f.invocation, f.err
}

func validRequest() apimodels.AnalysisRequest {
	return apimodels.AnalysisRequest{
		Prompt:   "what is in this picture",
		Filename: "cat.png",
		Image:    []byte("not really a png"),
	}
}

func TestAnalyzeSuccess(t *testing.T) {
	uploader := &fakeUploader{ids: []string{"asset-1"}}
	provider := &fakeProvider{invocation: &agent.Invocation{
		Success:  true,
		Response: json.RawMessage(`{"result": {"summary": "S", "data": {"sceneDescription": "a cat"}}}`),
		Usage:    agent.Usage{TotalTokens: 42},
	}}

	a := New(uploader, provider, "http://assets.local/assets")
	resp, err := a.Analyze(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, "cat.png", uploader.gotFilename)
	assert.Equal(t, []string{"http://assets.local/assets/asset-1"}, provider.gotURLs)
	assert.Equal(t, "what is in this picture", provider.gotPrompt)

	assert.Equal(t, "S", resp.Result.Summary)
	assert.Equal(t, "a cat", resp.Result.SceneDescription)
	assert.Equal(t, []string{"asset-1"}, resp.Metadata.Assets)
	assert.Equal(t, int64(42), resp.Metadata.TokensUsed)
}

func TestAnalyzeDefaultPrompt(t *testing.T) {
	uploader := &fakeUploader{ids: []string{"asset-1"}}
	provider := &fakeProvider{invocation: &agent.Invocation{
		Success:  true,
		Response: json.RawMessage(`{"result": {"summary": "S", "data": {}}}`),
	}}

	req := validRequest()
	req.Prompt = ""
	_, err := New(uploader, provider, "http://assets.local").Analyze(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, defaultPrompt, provider.gotPrompt)
}

func TestAnalyzeNoImage(t *testing.T) {
	a := New(&fakeUploader{}, &fakeProvider{}, "http://assets.local")

	req := validRequest()
	req.Image = nil
	_, err := a.Analyze(context.Background(), req)
	assert.ErrorContains(t, err, "no image")
}

func TestAnalyzeUploadFailure(t *testing.T) {
	uploader := &fakeUploader{err: errors.New("store down")}
	a := New(uploader, &fakeProvider{}, "http://assets.local")

	_, err := a.Analyze(context.Background(), validRequest())
	assert.ErrorContains(t, err, "upload failed")
}

func TestAnalyzeUpstreamFailure(t *testing.T) {
	uploader := &fakeUploader{ids: []string{"asset-1"}}
	provider := &fakeProvider{invocation: &agent.Invocation{
		Success:  false,
		Error:    "model overloaded",
		Response: json.RawMessage(`{"partial": true}`),
	}}

	_, err := New(uploader, provider, "http://assets.local").Analyze(context.Background(), validRequest())
	require.Error(t, err)

	var upstream *reconcile.UpstreamError
	require.ErrorAs(t, err, &upstream)
	assert.Equal(t, "model overloaded", upstream.Message)
	assert.JSONEq(t, `{"partial": true}`, string(upstream.RawResponse))
}

func TestAnalyzeShapeMismatchPassesThrough(t *testing.T) {
	uploader := &fakeUploader{ids: []string{"asset-1"}}
	provider := &fakeProvider{invocation: &agent.Invocation{
		Success:  true,
		Response: json.RawMessage(`{"foo": "bar"}`),
	}}

	_, err := New(uploader, provider, "http://assets.local").Analyze(context.Background(), validRequest())
	require.Error(t, err)

	var mismatch *reconcile.ShapeMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, []string{"foo"}, mismatch.ObservedTopLevelKeys)
}
