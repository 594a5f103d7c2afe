package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/briteco/briteroles/internal/config"
	"github.com/briteco/briteroles/internal/llm"
)

// fakeLLM implements llm.Client for handler tests.
type fakeLLM struct {
	available  bool
	result     *llm.Result
	err        error
	lastPrompt string
	lastSystem string
	lastMax    int
	lastTemp   float64
}

func (f *fakeLLM) Generate(_ context.Context, prompt, systemPrompt string, temperature float64, maxTokens int) (*llm.Result, error) {
	f.lastPrompt = prompt
	f.lastSystem = systemPrompt
	f.lastTemp = temperature
	f.lastMax = maxTokens
	if f.err != nil {
		return nil, f.err
	}
	return f.result, nil
}

func (f *fakeLLM) Available() bool { return f.available }
func (f *fakeLLM) Model() string   { return "claude-sonnet-4-20250514" }

func testConfig() *config.Config {
	return &config.Config{
		Port:               5003,
		AllowedEmailDomain: "brite.co",
		BaseURL:            "http://localhost:5003",
		StaticDir:          "testdata",
	}
}

func newTestServer(llmClient llm.Client, roleStore RoleStore) *Server {
	return New(testConfig(), llmClient, roleStore)
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var resp map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return resp
}

func okResult() *llm.Result {
	return &llm.Result{
		Content:      "## Role Description\nGenerated text.",
		Model:        "claude-sonnet-4-20250514",
		Tokens:       2100,
		CostEstimate: "$0.0171",
		LatencyMS:    1830,
	}
}

func TestGenerateJD_Success(t *testing.T) {
	fake := &fakeLLM{available: true, result: okResult()}
	s := newTestServer(fake, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-jd", map[string]any{
		"title":     "Claims Specialist",
		"is_remote": true,
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "## Role Description\nGenerated text.", resp["job_description"])
	assert.Equal(t, "claude-sonnet-4-20250514", resp["model"])
	assert.Equal(t, float64(2100), resp["tokens"])
	assert.Equal(t, "$0.0171", resp["cost_estimate"])
	assert.Equal(t, float64(1830), resp["latency_ms"])

	assert.Contains(t, fake.lastPrompt, "- Work Type: Fully Remote")
	assert.Contains(t, fake.lastSystem, "BriteCo")
	assert.Equal(t, 0.6, fake.lastTemp)
	assert.Equal(t, 1500, fake.lastMax)
}

func TestGenerateJD_Unavailable(t *testing.T) {
	s := newTestServer(nil, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-jd", map[string]any{"title": "x"})

	require.Equal(t, http.StatusServiceUnavailable, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Claude AI is not available. Check ANTHROPIC_API_KEY.", resp["error"])
}

func TestGenerateJD_MissingBody(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	req := httptest.NewRequest(http.MethodPost, "/api/generate-jd", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Request body is required", decodeBody(t, w)["error"])
}

func TestGenerateJD_MissingTitle(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-jd", map[string]any{
		"department": "Claims",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Job title is required", decodeBody(t, w)["error"])
}

func TestGenerateJD_WhitespaceTitleRejected(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-jd", map[string]any{
		"title": "   ",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Job title is required", decodeBody(t, w)["error"])
}

func TestGenerateJD_UpstreamFailure(t *testing.T) {
	fake := &fakeLLM{available: true, err: fmt.Errorf("claude generation failed: 529 overloaded")}
	s := newTestServer(fake, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/generate-jd", map[string]any{"title": "x"})

	require.Equal(t, http.StatusInternalServerError, w.Code)
	resp := decodeBody(t, w)
	assert.Contains(t, resp["error"], "AI generation failed:")
	assert.Contains(t, resp["error"], "529 overloaded")
}

func TestAdaptJD_Success(t *testing.T) {
	fake := &fakeLLM{available: true, result: okResult()}
	s := newTestServer(fake, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/adapt-jd", map[string]any{
		"title":       "Sales Lead",
		"original_jd": "External JD text.",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "## Role Description\nGenerated text.", resp["job_description"])
	assert.Contains(t, fake.lastPrompt, "External JD text.")
	assert.Equal(t, 1500, fake.lastMax)
}

func TestAdaptJD_MissingOriginalJDReportedFirst(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/adapt-jd", map[string]any{})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Original job description is required", decodeBody(t, w)["error"])
}

func TestAdaptJD_MissingTitle(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/adapt-jd", map[string]any{
		"original_jd": "External JD text.",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Job title is required", decodeBody(t, w)["error"])
}

func TestRewriteSection_Success(t *testing.T) {
	fake := &fakeLLM{available: true, result: &llm.Result{
		Content:      "Rewritten text.",
		Model:        "claude-sonnet-4-20250514",
		Tokens:       640,
		CostEstimate: "$0.0052",
		LatencyMS:    920,
	}}
	s := newTestServer(fake, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/rewrite-section", map[string]any{
		"content": "We want a rock star engineer.",
		"tone":    "more professional",
	})

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "Rewritten text.", resp["rewritten_content"])
	assert.Equal(t, 1000, fake.lastMax)
}

func TestRewriteSection_MissingContent(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/rewrite-section", map[string]any{
		"tone": "casual",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Content is required", decodeBody(t, w)["error"])
}

func TestRewriteSection_MissingTone(t *testing.T) {
	s := newTestServer(&fakeLLM{available: true, result: okResult()}, nil)

	w := doJSON(t, s.Handler(), http.MethodPost, "/api/rewrite-section", map[string]any{
		"content": "Some section.",
	})

	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Tone is required", decodeBody(t, w)["error"])
}

func TestHealthEndpoint(t *testing.T) {
	s := newTestServer(nil, nil)

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	w := httptest.NewRecorder()
	s.Handler().ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Equal(t, "healthy", resp["status"])
	assert.Equal(t, "BriteRoles", resp["app"])
	assert.NotEmpty(t, resp["timestamp"])
}

func TestConfigEndpoint(t *testing.T) {
	s := newTestServer(nil, nil)

	w := doJSON(t, s.Handler(), http.MethodGet, "/api/config", nil)

	require.Equal(t, http.StatusOK, w.Code)
	resp := decodeBody(t, w)
	assert.Contains(t, resp["departments"], "Claims")
	assert.Contains(t, resp["standard_benefits"], "Parental leave")
	assert.Contains(t, resp["company_description"], "BriteCo")

	levels, ok := resp["experience_levels"].([]any)
	require.True(t, ok)
	assert.Len(t, levels, 6)
}
