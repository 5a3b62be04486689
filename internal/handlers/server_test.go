package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/pep299/page-summarizer/internal/config"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:         "8080",
		Host:         "127.0.0.1",
		GeminiAPIKey: "test-key",
		GeminiModel:  "gemini-2.5-flash",
		FetchTimeout: 20,
		Bullets:      6,
		MaxWords:     180,
	}
}

func TestNewServer(t *testing.T) {
	server, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	if server.pageClient == nil {
		t.Error("Expected non-nil page client")
	}

	if _, err := NewServer(nil); err == nil {
		t.Error("Expected error for nil config")
	}
}

func TestHealthEndpoint(t *testing.T) {
	server, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	router := server.SetupRoutes()

	req := httptest.NewRequest("GET", "/api/v1/health", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", w.Code)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("Failed to decode health response: %v", err)
	}

	if body["status"] != "ok" {
		t.Errorf("Expected status 'ok', got '%v'", body["status"])
	}
}

func TestSummarizeEndpointBadRequests(t *testing.T) {
	server, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	router := server.SetupRoutes()

	tests := []struct {
		name string
		body string
	}{
		{"invalid JSON", "{not json"},
		{"missing url", `{"bullets": 3}`},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			req := httptest.NewRequest("POST", "/api/v1/summarize", strings.NewReader(test.body))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			if w.Code != http.StatusBadRequest {
				t.Errorf("Expected status 400, got %d", w.Code)
			}
		})
	}
}

func TestCORSPreflights(t *testing.T) {
	server, err := NewServer(testConfig())
	if err != nil {
		t.Fatalf("Failed to create server: %v", err)
	}

	router := server.SetupRoutes()

	req := httptest.NewRequest("OPTIONS", "/api/v1/summarize", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	if got := w.Header().Get("Access-Control-Allow-Origin"); got != "*" {
		t.Errorf("Expected CORS origin '*', got '%s'", got)
	}
}
