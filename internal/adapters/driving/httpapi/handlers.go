package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/traceleaf/docrag/internal/core/domain"
	"github.com/traceleaf/docrag/internal/logger"
)

// defaultIngestPath is used when an ingest request omits the path.
const defaultIngestPath = "data"

type ingestRequest struct {
	Path string `json:"path"`
}

type ingestResponse struct {
	IndexedChunks int    `json:"indexed_chunks"`
	Path          string `json:"path"`
}

type askRequest struct {
	Query string `json:"query"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleIngest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req ingestRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	path := strings.TrimSpace(req.Path)
	if path == "" {
		path = defaultIngestPath
	}

	count, err := s.pipeline.Ingest(r.Context(), path)
	if err != nil {
		logger.Error("ingest failed: %v", err)
		switch {
		case errors.Is(err, domain.ErrSourceNotFound):
			writeError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, domain.ErrEmptyIndex), errors.Is(err, domain.ErrInvalidChunkConfig):
			writeError(w, http.StatusBadRequest, err.Error())
		default:
			writeError(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	writeJSON(w, http.StatusOK, ingestResponse{IndexedChunks: count, Path: path})
}

func (s *Server) handleAsk(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req askRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Query) == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}

	// Reload on every ask so answers reflect the latest persisted index.
	if err := s.pipeline.LoadIndex(); err != nil {
		if errors.Is(err, domain.ErrIndexNotFound) {
			writeError(w, http.StatusBadRequest, "index not built, run ingest first")
			return
		}
		logger.Error("index load failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	answer, err := s.pipeline.Ask(r.Context(), req.Query)
	if err != nil {
		logger.Error("ask failed: %v", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, answer)
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logger.Error("response encode failed: %v", err)
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}
