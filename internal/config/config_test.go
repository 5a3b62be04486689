package config

import (
	"os"
	"testing"
)

func TestLoadConfig(t *testing.T) {
	// Set some test environment variables
	os.Setenv("GEMINI_API_KEY", "test-key")
	defer os.Unsetenv("GEMINI_API_KEY")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GeminiAPIKey != "test-key" {
		t.Errorf("Expected GeminiAPIKey to be 'test-key', got '%s'", cfg.GeminiAPIKey)
	}

	if cfg.GeminiModel != "gemini-2.5-flash" {
		t.Errorf("Expected GeminiModel to be 'gemini-2.5-flash', got '%s'", cfg.GeminiModel)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected Port to be '8080', got '%s'", cfg.Port)
	}

	if cfg.FetchTimeout != 20 {
		t.Errorf("Expected FetchTimeout to be 20, got %d", cfg.FetchTimeout)
	}

	if cfg.Bullets != 6 {
		t.Errorf("Expected Bullets to be 6, got %d", cfg.Bullets)
	}

	if cfg.MaxWords != 180 {
		t.Errorf("Expected MaxWords to be 180, got %d", cfg.MaxWords)
	}
}

func TestLoadConfigOverrides(t *testing.T) {
	os.Setenv("GEMINI_API_KEY", "test-key")
	os.Setenv("GEMINI_MODEL", "gemini-2.5-pro")
	os.Setenv("SUMMARY_BULLETS", "3")
	defer os.Unsetenv("GEMINI_API_KEY")
	defer os.Unsetenv("GEMINI_MODEL")
	defer os.Unsetenv("SUMMARY_BULLETS")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.GeminiModel != "gemini-2.5-pro" {
		t.Errorf("Expected GeminiModel to be 'gemini-2.5-pro', got '%s'", cfg.GeminiModel)
	}

	if cfg.Bullets != 3 {
		t.Errorf("Expected Bullets to be 3, got %d", cfg.Bullets)
	}
}

func TestConfigValidation(t *testing.T) {
	// Test missing required API key
	os.Unsetenv("GEMINI_API_KEY")

	_, err := Load()
	if err == nil {
		t.Error("Expected validation error for missing API key")
	}

	configErr, ok := err.(*ConfigError)
	if !ok {
		t.Fatalf("Expected *ConfigError, got %T", err)
	}

	if configErr.Field != "GEMINI_API_KEY" {
		t.Errorf("Expected error field 'GEMINI_API_KEY', got '%s'", configErr.Field)
	}
}

func TestGetEnvOrDefaultInt(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected int
	}{
		{"unset", "", 42},
		{"valid", "7", 7},
		{"invalid", "not-a-number", 42},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			os.Unsetenv("TEST_INT_VALUE")
			if test.value != "" {
				os.Setenv("TEST_INT_VALUE", test.value)
				defer os.Unsetenv("TEST_INT_VALUE")
			}

			result := getEnvOrDefaultInt("TEST_INT_VALUE", 42)
			if result != test.expected {
				t.Errorf("Expected %d, got %d", test.expected, result)
			}
		})
	}
}
