package config

import (
	"strings"
	"testing"
)

func validConfig() Config {
	return Config{
		HTTP: HTTPConfig{Port: 8080},
		Database: DatabaseConfig{
			Addrs: []string{"localhost:6379"},
		},
		Completion: CompletionConfig{
			Model: "llama-3.3-70b-versatile",
		},
	}
}

func TestValidate_Valid(t *testing.T) {
	cfg := validConfig()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("expected error for port %d", port)
		}
	}
}

func TestValidate_MissingDatabaseAddrs(t *testing.T) {
	cfg := validConfig()
	cfg.Database.Addrs = nil

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing addrs")
	}
	if !strings.Contains(err.Error(), "database.addrs") {
		t.Errorf("error = %q", err)
	}
}

func TestValidate_MissingCompletionModel(t *testing.T) {
	cfg := validConfig()
	cfg.Completion.Model = ""

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing model")
	}
	if !strings.Contains(err.Error(), "completion.model") {
		t.Errorf("error = %q", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := validConfig()
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("ReadTimeoutSec = %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.Completion.Temperature != 0.1 {
		t.Errorf("Temperature = %g", cfg.Completion.Temperature)
	}
	if cfg.Completion.MaxTokens != 500 {
		t.Errorf("MaxTokens = %d", cfg.Completion.MaxTokens)
	}
	if cfg.Completion.TimeoutSec != 30 {
		t.Errorf("TimeoutSec = %d", cfg.Completion.TimeoutSec)
	}
	if cfg.Storage.KeyPrefix != "mentorsearch:" {
		t.Errorf("KeyPrefix = %q", cfg.Storage.KeyPrefix)
	}
	if cfg.Search.ResultLimit != 20 {
		t.Errorf("ResultLimit = %d", cfg.Search.ResultLimit)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := validConfig()
	cfg.Completion.MaxTokens = 1000
	cfg.Search.ResultLimit = 5
	cfg.ApplyDefaults()

	if cfg.Completion.MaxTokens != 1000 {
		t.Errorf("MaxTokens = %d, want 1000", cfg.Completion.MaxTokens)
	}
	if cfg.Search.ResultLimit != 5 {
		t.Errorf("ResultLimit = %d, want 5", cfg.Search.ResultLimit)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("MS_TEST_ADDR", "redis:6379")

	tests := []struct {
		name string
		in   string
		want string
	}{
		{"set variable", "addr: ${MS_TEST_ADDR}", "addr: redis:6379"},
		{"unset variable", "key: ${MS_TEST_UNSET}", "key: "},
		{"unset with default", "key: ${MS_TEST_UNSET:-fallback}", "key: fallback"},
		{"set ignores default", "addr: ${MS_TEST_ADDR:-fallback}", "addr: redis:6379"},
		{"no variables", "plain: value", "plain: value"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := string(expandEnvVars([]byte(tt.in)))
			if got != tt.want {
				t.Errorf("expandEnvVars(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
