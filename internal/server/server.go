package server

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"github.com/validateme/outreach/internal/models"
)

// Searcher runs keyword searches and exposes its metrics
type Searcher interface {
	Search(ctx context.Context, keywords string) []models.Result
	GetMetrics() string
}

// DraftGenerator produces outreach drafts for a post
type DraftGenerator interface {
	Generate(ctx context.Context, author, title, snippet string) (string, error)
}

type searchRequest struct {
	Keywords string `json:"keywords"`
}

type searchResponse struct {
	Results []models.Result `json:"results"`
}

type draftResponse struct {
	Templates string `json:"dm_templates"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// NewRouter wires the HTTP API around the search and draft services
func NewRouter(searcher Searcher, generator DraftGenerator) *mux.Router {
	router := mux.NewRouter()
	router.Use(requestLogger)

	router.HandleFunc("/health", healthCheckHandler).Methods("GET")
	router.HandleFunc("/metrics", metricsHandler(searcher)).Methods("GET")
	router.HandleFunc("/search", searchHandler(searcher)).Methods("POST")
	router.HandleFunc("/generate-dm", generateDraftHandler(generator)).Methods("POST")

	return router
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339),
	})
}

func metricsHandler(searcher Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		w.Write([]byte(searcher.GetMetrics()))
	}
}

func searchHandler(searcher Searcher) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req searchRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		keywords := strings.TrimSpace(req.Keywords)
		if keywords == "" {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "keywords is required"})
			return
		}

		logrus.Infof("Search request: '%s'", keywords)
		results := searcher.Search(r.Context(), keywords)
		logrus.Infof("Search complete: found %d results for '%s'", len(results), keywords)

		writeJSON(w, http.StatusOK, searchResponse{Results: results})
	}
}

func generateDraftHandler(generator DraftGenerator) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.DraftRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid JSON body"})
			return
		}

		logrus.Infof("Draft generation request for u/%s", req.AuthorHandle)
		templates, err := generator.Generate(r.Context(), req.AuthorHandle, req.Title, req.Snippet)
		if err != nil {
			logrus.Errorf("Draft generation for u/%s failed: %v", req.AuthorHandle, err)
			writeJSON(w, http.StatusBadGateway, errorResponse{Error: err.Error()})
			return
		}

		logrus.Infof("Draft templates generated for u/%s", req.AuthorHandle)
		writeJSON(w, http.StatusOK, draftResponse{Templates: templates})
	}
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		logrus.Errorf("Failed to write response: %v", err)
	}
}
