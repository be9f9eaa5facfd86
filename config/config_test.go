package config

import (
	"strings"
	"testing"
	"time"
)

// setBaseEnv sets the minimum environment for a valid configuration
func setBaseEnv(t *testing.T) {
	t.Helper()
	for _, key := range GetEnvVars() {
		t.Setenv(key, "")
	}
	t.Setenv("API_KEY", "secret-key")
}

func TestLoadValidConfig(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("PORT", "8002")
	t.Setenv("ADDRESS", "127.0.0.1")
	t.Setenv("ENV", "dev")
	t.Setenv("LOG_LEVEL", "info")
	t.Setenv("UPSTREAM_TIMEOUT", "3s")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8002" {
		t.Errorf("Expected port 8002, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected env dev, got %s", cfg.Env)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("Expected log level info, got %s", cfg.LogLevel)
	}
	if cfg.APIKey != "secret-key" {
		t.Errorf("Expected API key secret-key, got %s", cfg.APIKey)
	}
	if cfg.UpstreamTimeout != 3*time.Second {
		t.Errorf("Expected upstream timeout 3s, got %s", cfg.UpstreamTimeout)
	}
}

func TestLoadWithDefaults(t *testing.T) {
	setBaseEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if cfg.Port != "8000" {
		t.Errorf("Expected default port 8000, got %s", cfg.Port)
	}
	if cfg.Address != "127.0.0.1" {
		t.Errorf("Expected default address 127.0.0.1, got %s", cfg.Address)
	}
	if cfg.Env != EnvDevelopment {
		t.Errorf("Expected default env dev, got %s", cfg.Env)
	}
	if cfg.DatabasePath != "medicines.db" {
		t.Errorf("Expected default database path medicines.db, got %s", cfg.DatabasePath)
	}
	if cfg.FDABaseURL != "https://api.fda.gov" {
		t.Errorf("Expected default FDA base URL, got %s", cfg.FDABaseURL)
	}
	if cfg.RxNavBaseURL != "https://rxnav.nlm.nih.gov" {
		t.Errorf("Expected default RxNav base URL, got %s", cfg.RxNavBaseURL)
	}
	if cfg.GeminiModel != "gemini-1.5-flash" {
		t.Errorf("Expected default Gemini model, got %s", cfg.GeminiModel)
	}
	if cfg.SearchMaxLimit != 100 {
		t.Errorf("Expected default search max limit 100, got %d", cfg.SearchMaxLimit)
	}
	if cfg.SearchCacheTTL != time.Hour {
		t.Errorf("Expected default search cache TTL 1h, got %s", cfg.SearchCacheTTL)
	}
	if cfg.GeminiEnabled() {
		t.Error("Expected Gemini to be disabled without GEMINI_API_KEY")
	}
}

func TestMissingAPIKey(t *testing.T) {
	setBaseEnv(t)
	t.Setenv("API_KEY", "")

	_, err := Load()
	if err == nil {
		t.Fatal("Expected error for missing API_KEY, got nil")
	}
	if !strings.Contains(err.Error(), "API_KEY") {
		t.Errorf("Expected error to mention API_KEY, got %v", err)
	}
}

func TestInvalidValues(t *testing.T) {
	testCases := []struct {
		name     string
		key      string
		value    string
		expected string
	}{
		{"non numeric port", "PORT", "abc", "PORT must be a valid number"},
		{"port zero", "PORT", "0", "PORT must be between 1 and 65535"},
		{"port too high", "PORT", "65536", "PORT must be between 1 and 65535"},
		{"privileged port", "PORT", "80", "PORT 80 is privileged"},
		{"invalid address", "ADDRESS", "invalid", "ADDRESS must be a valid IP address"},
		{"public address", "ADDRESS", "8.8.8.8", "is a public IP"},
		{"invalid env", "ENV", "invalid", "ENV must be one of"},
		{"invalid log level", "LOG_LEVEL", "invalid", "LOG_LEVEL must be one of"},
		{"relative FDA url", "FDA_BASE_URL", "api.fda.gov", "FDA_BASE_URL"},
		{"ftp RxNav url", "RXNAV_BASE_URL", "ftp://rxnav.nlm.nih.gov", "scheme must be http or https"},
		{"search limit too high", "SEARCH_MAX_LIMIT", "5000", "SEARCH_MAX_LIMIT must be between"},
		{"stats interval too short", "STATS_INTERVAL", "10ms", "STATS_INTERVAL must be at least"},
		{"log file too small", "MAX_LOG_FILE_SIZE", "10", "MAX_LOG_FILE_SIZE is too small"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			setBaseEnv(t)
			t.Setenv(tc.key, tc.value)

			_, err := Load()
			if err == nil {
				t.Fatalf("Expected error for %s=%s, got nil", tc.key, tc.value)
			}
			if !strings.Contains(err.Error(), tc.expected) {
				t.Errorf("Expected error containing %q, got %v", tc.expected, err)
			}
		})
	}
}

func TestParseEnvironment(t *testing.T) {
	tests := []struct {
		input    string
		expected Environment
		hasError bool
	}{
		{"dev", EnvDevelopment, false},
		{"development", EnvDevelopment, false},
		{"staging", EnvStaging, false},
		{"prod", EnvProduction, false},
		{"production", EnvProduction, false},
		{"TEST", EnvTest, false},
		{"invalid", EnvDevelopment, true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			env, err := ParseEnvironment(tt.input)
			if tt.hasError {
				if err == nil {
					t.Errorf("Expected error for %s, got none", tt.input)
				}
				return
			}
			if err != nil {
				t.Errorf("Unexpected error for %s: %v", tt.input, err)
			}
			if env != tt.expected {
				t.Errorf("Expected %v, got %v", tt.expected, env)
			}
		})
	}
}

func TestEnvironmentString(t *testing.T) {
	tests := []struct {
		env      Environment
		expected string
	}{
		{EnvDevelopment, "dev"},
		{EnvStaging, "staging"},
		{EnvProduction, "prod"},
		{EnvTest, "test"},
	}

	for _, tt := range tests {
		if got := tt.env.String(); got != tt.expected {
			t.Errorf("Expected %s, got %s", tt.expected, got)
		}
	}
}

func TestValidateAllEnvVars(t *testing.T) {
	t.Setenv("API_KEY", "")
	if err := ValidateAllEnvVars(); err == nil {
		t.Error("Expected error when API_KEY is missing")
	}

	t.Setenv("API_KEY", "present")
	if err := ValidateAllEnvVars(); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
}
