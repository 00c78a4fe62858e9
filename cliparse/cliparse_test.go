// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"os"
	"path/filepath"
	"testing"
)

var envVars = []string{
	"PORT", "DATABASE_URL", "DATABASE_TYPE", "TOKEN_SALT",
	"LLM_ENDPOINT", "LLM_API_KEY", "SUGGESTION_COUNT",
	"TIE_BREAK_SEED", "NAME_MIN_LENGTH", "NAME_MAX_LENGTH", "FORBIDDEN_WORDS",
	"CULTURAL_SENSITIVITY", "ONOMATE_CONFIG",
}

// clearEnv blanks every variable ParseFlags reads so the host environment
// cannot leak into a test.
func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range envVars {
		t.Setenv(k, "")
	}
	t.Setenv("LLM_MODEL", "")
}

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestParseFlags_Defaults(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SALT", "salt")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 3318 {
		t.Errorf("expected port 3318, got %d", cfg.Port)
	}
	if cfg.DatabaseType != DatabaseSQLite || cfg.DatabaseURL != "onomate.db" {
		t.Errorf("expected sqlite onomate.db, got %s %s", cfg.DatabaseType, cfg.DatabaseURL)
	}
	if cfg.SuggestionCount != 5 || cfg.TieBreakSeed != 0 {
		t.Errorf("unexpected naming defaults: %d %d", cfg.SuggestionCount, cfg.TieBreakSeed)
	}
	if !cfg.Criteria.CulturalSensitivity {
		t.Error("expected cultural sensitivity on by default")
	}
}

func TestParseFlags_EnvVars(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("DATABASE_TYPE", "postgres")
	t.Setenv("DATABASE_URL", "postgres://test")
	t.Setenv("TOKEN_SALT", "test-salt")
	t.Setenv("TIE_BREAK_SEED", "42")
	t.Setenv("FORBIDDEN_WORDS", "app, ai ,")
	t.Setenv("CULTURAL_SENSITIVITY", "false")

	cfg, err := ParseFlags([]string{})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 9000 {
		t.Errorf("expected port 9000, got %d", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://test" || cfg.TokenSalt != "test-salt" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if cfg.TieBreakSeed != 42 {
		t.Errorf("expected seed 42, got %d", cfg.TieBreakSeed)
	}
	if len(cfg.Criteria.ForbiddenWords) != 2 || cfg.Criteria.ForbiddenWords[1] != "ai" {
		t.Errorf("unexpected forbidden words: %q", cfg.Criteria.ForbiddenWords)
	}
	if cfg.Criteria.CulturalSensitivity {
		t.Error("expected cultural sensitivity off")
	}
}

func TestParseFlags_CLIOverridesEnv(t *testing.T) {
	clearEnv(t)
	t.Setenv("PORT", "9000")
	t.Setenv("TOKEN_SALT", "env-salt")

	cfg, err := ParseFlags([]string{"-p", "8080", "-d", "file:test.db", "-token-salt", "s1", "-max-length", "10"})
	if err != nil {
		t.Fatal(err)
	}

	// CLI should override env
	if cfg.Port != 8080 {
		t.Errorf("CLI should override env: expected 8080, got %d", cfg.Port)
	}
	if cfg.TokenSalt != "s1" {
		t.Errorf("expected salt s1, got %s", cfg.TokenSalt)
	}
	if cfg.Criteria.MaxLength != 10 {
		t.Errorf("expected max length 10, got %d", cfg.Criteria.MaxLength)
	}
}

func TestParseFlags_ConfigFile(t *testing.T) {
	clearEnv(t)
	t.Setenv("TOKEN_SALT", "salt")
	t.Setenv("LLM_ENDPOINT", "http://env-endpoint")

	path := writeFile(t, "onomate.yaml", `
port: 4000
llm:
  endpoint: http://file-endpoint
  model: file-model
naming:
  suggestionCount: 7
  criteria:
    minLength: 4
    forbiddenWords: [corp]
`)

	cfg, err := ParseFlags([]string{"-c", path})
	if err != nil {
		t.Fatal(err)
	}

	if cfg.Port != 4000 || cfg.LLMModel != "file-model" || cfg.SuggestionCount != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	if cfg.LLMEndpoint != "http://env-endpoint" {
		t.Errorf("env should override file: got %s", cfg.LLMEndpoint)
	}
	if cfg.Criteria.MinLength != 4 || len(cfg.Criteria.ForbiddenWords) != 1 {
		t.Errorf("unexpected criteria: %+v", cfg.Criteria)
	}
	if !cfg.Criteria.CulturalSensitivity {
		t.Error("expected default cultural sensitivity kept when the file omits it")
	}
}

func TestParseFlags_DotEnv(t *testing.T) {
	clearEnv(t)
	os.Unsetenv("LLM_MODEL")
	t.Cleanup(func() { os.Unsetenv("LLM_MODEL") })

	path := writeFile(t, ".env", "LLM_MODEL=dotenv-model\n")

	cfg, err := ParseFlags([]string{"-env", path, "-token-salt", "s"})
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LLMModel != "dotenv-model" {
		t.Errorf("expected model from .env, got %q", cfg.LLMModel)
	}
}

func TestParseFlags_Errors(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
		args []string
	}{
		{"missing salt", nil, []string{}},
		{"bad port", map[string]string{"PORT": "abc"}, []string{"-token-salt", "s"}},
		{"postgres without url", nil, []string{"-t", "postgres", "-token-salt", "s"}},
		{"unknown db type", nil, []string{"-t", "mysql", "-token-salt", "s"}},
		{"zero suggestions", nil, []string{"-suggestions", "0", "-token-salt", "s"}},
		{"inverted bounds", nil, []string{"-min-length", "9", "-max-length", "4", "-token-salt", "s"}},
		{"missing config file", nil, []string{"-c", "/nonexistent/onomate.yaml", "-token-salt", "s"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			if _, err := ParseFlags(tt.args); err == nil {
				t.Error("expected an error")
			}
		})
	}
}
