package httpapi

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/traceleaf/docrag/internal/core/domain"
)

type mockPipeline struct {
	ingestCount int
	ingestErr   error
	loadErr     error
	answer      domain.Answer
	askErr      error

	loadCalls  int
	ingestRoot string
}

func (m *mockPipeline) Ingest(ctx context.Context, root string) (int, error) {
	m.ingestRoot = root
	return m.ingestCount, m.ingestErr
}

func (m *mockPipeline) LoadIndex() error {
	m.loadCalls++
	return m.loadErr
}

func (m *mockPipeline) Ask(ctx context.Context, query string) (domain.Answer, error) {
	return m.answer, m.askErr
}

func doRequest(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	srv := NewServer(&mockPipeline{}, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodGet, "/health", nil)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestIngest_Success(t *testing.T) {
	pipeline := &mockPipeline{ingestCount: 12}
	srv := NewServer(pipeline, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ingest", map[string]string{"path": "/docs"})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "/docs", pipeline.ingestRoot)

	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 12, resp.IndexedChunks)
	assert.Equal(t, "/docs", resp.Path)
}

func TestIngest_MissingDirectoryIsNotFound(t *testing.T) {
	srv := NewServer(&mockPipeline{ingestErr: domain.ErrSourceNotFound}, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ingest", map[string]string{"path": "/missing"})

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestIngest_EmptyCorpusIsBadRequest(t *testing.T) {
	srv := NewServer(&mockPipeline{ingestErr: domain.ErrEmptyIndex}, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ingest", map[string]string{"path": "/docs"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestIngest_OmittedPathDefaults(t *testing.T) {
	pipeline := &mockPipeline{ingestCount: 3}
	srv := NewServer(pipeline, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ingest", map[string]string{})

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "data", pipeline.ingestRoot)

	var resp ingestResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, 3, resp.IndexedChunks)
	assert.Equal(t, "data", resp.Path)
}

func TestAsk_Success(t *testing.T) {
	pipeline := &mockPipeline{
		answer: domain.Answer{
			Query:  "how do I configure retries",
			Answer: "Retries are configured in the client section.",
			Contexts: []domain.AnswerContext{
				{Source: "client.md", ChunkID: "client.md:0", Score: 0.92, Text: "Retries..."},
			},
		},
	}
	srv := NewServer(pipeline, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ask", map[string]string{"query": "how do I configure retries"})

	require.Equal(t, http.StatusOK, rec.Code)

	var answer domain.Answer
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &answer))
	assert.Equal(t, pipeline.answer, answer)
	assert.Equal(t, 1, pipeline.loadCalls, "ask must reload the index first")
}

func TestAsk_MissingIndexIsBadRequest(t *testing.T) {
	srv := NewServer(&mockPipeline{loadErr: domain.ErrIndexNotFound}, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ask", map[string]string{"query": "anything"})

	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp errorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Error, "ingest")
}

func TestAsk_RequiresQuery(t *testing.T) {
	srv := NewServer(&mockPipeline{}, ":0")

	rec := doRequest(t, srv.Handler(), http.MethodPost, "/ask", map[string]string{"query": "   "})

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	srv := NewServer(&mockPipeline{}, ":0")

	for _, path := range []string{"/ingest", "/ask"} {
		rec := doRequest(t, srv.Handler(), http.MethodGet, path, nil)
		assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, path)
	}
	rec := doRequest(t, srv.Handler(), http.MethodPost, "/health", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}
