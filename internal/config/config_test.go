package config

import (
	"testing"
	"time"
)

func TestGetEnvOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal string
		expected   string
	}{
		{"uses env value", "TEST_VAR_1", "hello", "default", "hello"},
		{"uses default when empty", "TEST_VAR_2", "", "default", "default"},
		{"uses default when blank", "TEST_VAR_3", "   ", "default", "default"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %q, got %q", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsIntOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		key        string
		envValue   string
		defaultVal int
		expected   int
	}{
		{"parses integer", "TEST_INT_1", "42", 10, 42},
		{"uses default for empty", "TEST_INT_2", "", 10, 10},
		{"uses default for non-numeric", "TEST_INT_3", "abc", 10, 10},
		{"uses default for negative", "TEST_INT_4", "-5", 10, 10},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv(tc.key, tc.envValue)

			result := getEnvAsIntOrDefault(tc.key, tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %d, got %d", tc.expected, result)
			}
		})
	}
}

func TestGetEnvAsBoolOrDefault(t *testing.T) {
	tests := []struct {
		name       string
		envValue   string
		defaultVal bool
		expected   bool
	}{
		{"parses false", "false", true, false},
		{"parses 1", "1", false, true},
		{"uses default for empty", "", true, true},
		{"uses default for garbage", "maybe", true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Setenv("TEST_BOOL", tc.envValue)

			result := getEnvAsBoolOrDefault("TEST_BOOL", tc.defaultVal)
			if result != tc.expected {
				t.Errorf("Expected %v, got %v", tc.expected, result)
			}
		})
	}
}

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PORT", "SHIM_BASE_URL", "SHIM_TIMEOUT_SECONDS", "STRICT_VALIDATION", "RATE_LIMIT_PER_MINUTE", "REDIS_URL"} {
		t.Setenv(key, "")
	}

	cfg := Load()

	if cfg.Port != "3000" {
		t.Errorf("Expected default port 3000, got %q", cfg.Port)
	}
	if cfg.ShimBaseURL != "http://127.0.0.1:8003" {
		t.Errorf("Expected default shim address, got %q", cfg.ShimBaseURL)
	}
	if cfg.ShimTimeout != 0 {
		t.Errorf("Expected no shim timeout by default, got %v", cfg.ShimTimeout)
	}
	if cfg.StrictValidation {
		t.Error("Expected requests to be forwarded unchecked by default")
	}
	if cfg.RateLimitPerMin != 0 || cfg.RedisURL != "" {
		t.Error("Expected rate limiting off by default")
	}
}

func TestLoad_StrictValidationOptIn(t *testing.T) {
	t.Setenv("STRICT_VALIDATION", "true")

	if !Load().StrictValidation {
		t.Error("Expected STRICT_VALIDATION=true to enable validation")
	}
}

func TestLoad_ShimOverrides(t *testing.T) {
	t.Setenv("SHIM_BASE_URL", "http://shim.internal:9000/")
	t.Setenv("SHIM_TIMEOUT_SECONDS", "30")

	cfg := Load()

	if cfg.ShimBaseURL != "http://shim.internal:9000" {
		t.Errorf("Expected trailing slash trimmed, got %q", cfg.ShimBaseURL)
	}
	if cfg.ShimTimeout != 30*time.Second {
		t.Errorf("Expected 30s timeout, got %v", cfg.ShimTimeout)
	}
}
