package handlers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/mux"

	"github.com/pep299/page-summarizer/internal/config"
	"github.com/pep299/page-summarizer/internal/gemini"
	"github.com/pep299/page-summarizer/internal/page"
	"github.com/pep299/page-summarizer/internal/summarize"
)

// Server holds the HTTP server and its dependencies
type Server struct {
	config     *config.Config
	pageClient *page.Client
}

// NewServer creates a new HTTP server
func NewServer(cfg *config.Config) (*Server, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config is required")
	}

	return &Server{
		config:     cfg,
		pageClient: page.NewClient(time.Duration(cfg.FetchTimeout) * time.Second),
	}, nil
}

// SetupRoutes configures HTTP routes
func (s *Server) SetupRoutes() *mux.Router {
	r := mux.NewRouter()

	api := r.PathPrefix("/api/v1").Subrouter()
	api.Use(s.corsMiddleware)
	api.Use(s.loggingMiddleware)

	api.HandleFunc("/health", s.healthHandler).Methods("GET")
	api.HandleFunc("/summarize", s.summarizeHandler).Methods("POST", "OPTIONS")

	return r
}

// healthHandler provides health check endpoint
func (s *Server) healthHandler(w http.ResponseWriter, r *http.Request) {
	response := map[string]interface{}{
		"status":    "ok",
		"timestamp": time.Now().Unix(),
		"version":   "v1.0.0",
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// summarizeRequest is the POST /summarize body. Model, bullets and max_words
// fall back to the configured defaults when omitted.
type summarizeRequest struct {
	URL      string `json:"url"`
	Model    string `json:"model"`
	Bullets  int    `json:"bullets"`
	MaxWords int    `json:"max_words"`
}

// summarizeHandler runs the pipeline for one URL on demand
func (s *Server) summarizeHandler(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req summarizeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	if req.URL == "" {
		http.Error(w, "url is required", http.StatusBadRequest)
		return
	}

	model := req.Model
	if model == "" {
		model = s.config.GeminiModel
	}
	bullets := req.Bullets
	if bullets <= 0 {
		bullets = s.config.Bullets
	}
	maxWords := req.MaxWords
	if maxWords <= 0 {
		maxWords = s.config.MaxWords
	}

	summarizer := summarize.New(s.pageClient, gemini.NewClient(s.config.GeminiAPIKey, model))

	result, err := summarizer.SummarizeURL(ctx, req.URL, bullets, maxWords)
	if err != nil {
		log.Error("summarization failed", "url", req.URL, "err", err)
		http.Error(w, fmt.Sprintf("Error creating summary: %v", err), http.StatusBadGateway)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(result)
}

// corsMiddleware adds CORS headers to responses
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// loggingMiddleware logs each request with its duration
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Info("request", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
