// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/onomate/ranking"
)

// Database types
const (
	DatabaseSQLite   = "sqlite"
	DatabasePostgres = "postgres"
)

const (
	defaultPort            = 3318
	defaultSQLiteURL       = "onomate.db"
	defaultSuggestionCount = 5
)

type Config struct {
	Port         int
	DatabaseURL  string
	DatabaseType string
	TokenSalt    string

	LLMEndpoint string
	LLMModel    string
	LLMAPIKey   string

	SuggestionCount int
	// TieBreakSeed of 0 leaves tie-breaks unseeded.
	TieBreakSeed uint64
	// Criteria is applied to every new session.
	Criteria ranking.Criteria
}

// fileConfig mirrors the optional YAML config file.
type fileConfig struct {
	Port     int `yaml:"port"`
	Database struct {
		Type string `yaml:"type"`
		URL  string `yaml:"url"`
	} `yaml:"database"`
	LLM struct {
		Endpoint string `yaml:"endpoint"`
		Model    string `yaml:"model"`
		APIKey   string `yaml:"apiKey"`
	} `yaml:"llm"`
	Naming struct {
		SuggestionCount int              `yaml:"suggestionCount"`
		TieBreakSeed    uint64           `yaml:"tieBreakSeed"`
		Criteria        ranking.Criteria `yaml:"criteria"`
	} `yaml:"naming"`
}

func defaults() Config {
	return Config{
		Port:            defaultPort,
		DatabaseType:    DatabaseSQLite,
		SuggestionCount: defaultSuggestionCount,
		Criteria:        ranking.Criteria{CulturalSensitivity: true},
	}
}

// ParseFlags builds the config. Precedence is flag, then environment (after
// loading .env), then the YAML file, then defaults.
func ParseFlags(args []string) (Config, error) {
	cfg := defaults()

	fs := flag.NewFlagSet("onomate", flag.ContinueOnError)

	// Network config (can be CLI args or env)
	port := fs.Int("p", 0, "Server port")
	dbURL := fs.String("d", "", "Database URL (sqlite file or postgres DSN)")
	dbType := fs.String("t", "", "Database type (sqlite or postgres)")
	configFile := fs.String("c", "", "YAML config file")
	envFile := fs.String("env", ".env", "dotenv file to load")

	// Secrets (prefer env variables, but allow CLI for dev)
	tokenSalt := fs.String("token-salt", "", "Founder token salt (prefer env)")
	llmKey := fs.String("llm-key", "", "LLM API key (prefer env)")

	llmEndpoint := fs.String("llm-endpoint", "", "Chat completions endpoint")
	llmModel := fs.String("llm-model", "", "LLM model name")
	suggestions := fs.Int("suggestions", 0, "Names requested per generation")
	seed := fs.Uint64("seed", 0, "Tie-break seed (0 = unseeded)")
	minLen := fs.Int("min-length", 0, "Minimum name length")
	maxLen := fs.Int("max-length", 0, "Maximum name length")
	forbidden := fs.String("forbidden", "", "Comma-separated forbidden substrings")
	cultural := fs.Bool("cultural", true, "Reject names with cultural concerns")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if err := godotenv.Load(*envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, fmt.Errorf("load %s: %w", *envFile, err)
	}

	if *configFile == "" {
		*configFile = os.Getenv("ONOMATE_CONFIG")
	}
	if *configFile != "" {
		if err := applyFile(&cfg, *configFile); err != nil {
			return Config{}, err
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	// Only flags given on the command line override env and file values
	set := make(map[string]bool)
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	if set["p"] {
		cfg.Port = *port
	}
	if set["d"] {
		cfg.DatabaseURL = *dbURL
	}
	if set["t"] {
		cfg.DatabaseType = *dbType
	}
	if set["token-salt"] {
		cfg.TokenSalt = *tokenSalt
	}
	if set["llm-key"] {
		cfg.LLMAPIKey = *llmKey
	}
	if set["llm-endpoint"] {
		cfg.LLMEndpoint = *llmEndpoint
	}
	if set["llm-model"] {
		cfg.LLMModel = *llmModel
	}
	if set["suggestions"] {
		cfg.SuggestionCount = *suggestions
	}
	if set["seed"] {
		cfg.TieBreakSeed = *seed
	}
	if set["min-length"] {
		cfg.Criteria.MinLength = *minLen
	}
	if set["max-length"] {
		cfg.Criteria.MaxLength = *maxLen
	}
	if set["forbidden"] {
		cfg.Criteria.ForbiddenWords = splitList(*forbidden)
	}
	if set["cultural"] {
		cfg.Criteria.CulturalSensitivity = *cultural
	}

	if err := cfg.validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	var fc fileConfig
	fc.Naming.Criteria = cfg.Criteria
	if err := yaml.Unmarshal(raw, &fc); err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	if fc.Port != 0 {
		cfg.Port = fc.Port
	}
	if fc.Database.Type != "" {
		cfg.DatabaseType = fc.Database.Type
	}
	if fc.Database.URL != "" {
		cfg.DatabaseURL = fc.Database.URL
	}
	if fc.LLM.Endpoint != "" {
		cfg.LLMEndpoint = fc.LLM.Endpoint
	}
	if fc.LLM.Model != "" {
		cfg.LLMModel = fc.LLM.Model
	}
	if fc.LLM.APIKey != "" {
		cfg.LLMAPIKey = fc.LLM.APIKey
	}
	if fc.Naming.SuggestionCount != 0 {
		cfg.SuggestionCount = fc.Naming.SuggestionCount
	}
	if fc.Naming.TieBreakSeed != 0 {
		cfg.TieBreakSeed = fc.Naming.TieBreakSeed
	}
	cfg.Criteria = fc.Naming.Criteria
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid PORT env variable")
		}
		cfg.Port = port
	}
	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.DatabaseURL = v
	}
	if v := os.Getenv("DATABASE_TYPE"); v != "" {
		cfg.DatabaseType = v
	}
	if v := os.Getenv("TOKEN_SALT"); v != "" {
		cfg.TokenSalt = v
	}
	if v := os.Getenv("LLM_ENDPOINT"); v != "" {
		cfg.LLMEndpoint = v
	}
	if v := os.Getenv("LLM_MODEL"); v != "" {
		cfg.LLMModel = v
	}
	if v := os.Getenv("LLM_API_KEY"); v != "" {
		cfg.LLMAPIKey = v
	}
	if v := os.Getenv("SUGGESTION_COUNT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid SUGGESTION_COUNT env variable")
		}
		cfg.SuggestionCount = n
	}
	if v := os.Getenv("TIE_BREAK_SEED"); v != "" {
		n, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return errors.New("invalid TIE_BREAK_SEED env variable")
		}
		cfg.TieBreakSeed = n
	}
	if v := os.Getenv("NAME_MIN_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid NAME_MIN_LENGTH env variable")
		}
		cfg.Criteria.MinLength = n
	}
	if v := os.Getenv("NAME_MAX_LENGTH"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return errors.New("invalid NAME_MAX_LENGTH env variable")
		}
		cfg.Criteria.MaxLength = n
	}
	if v := os.Getenv("FORBIDDEN_WORDS"); v != "" {
		cfg.Criteria.ForbiddenWords = splitList(v)
	}
	if v := os.Getenv("CULTURAL_SENSITIVITY"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return errors.New("invalid CULTURAL_SENSITIVITY env variable")
		}
		cfg.Criteria.CulturalSensitivity = b
	}
	return nil
}

func (cfg *Config) validate() error {
	switch cfg.DatabaseType {
	case DatabaseSQLite:
		if cfg.DatabaseURL == "" {
			cfg.DatabaseURL = defaultSQLiteURL
		}
	case DatabasePostgres:
		if cfg.DatabaseURL == "" {
			return errors.New("database URL required for postgres (use -d or DATABASE_URL env)")
		}
	default:
		return fmt.Errorf("unknown database type %q (want sqlite or postgres)", cfg.DatabaseType)
	}

	// Secrets - MUST be provided
	if cfg.TokenSalt == "" {
		return errors.New("TOKEN_SALT required")
	}

	if cfg.SuggestionCount <= 0 {
		return errors.New("suggestion count must be positive")
	}
	if cfg.Criteria.MinLength < 0 || cfg.Criteria.MaxLength < 0 {
		return errors.New("name length bounds must not be negative")
	}
	if cfg.Criteria.MaxLength > 0 && cfg.Criteria.MinLength > cfg.Criteria.MaxLength {
		return errors.New("minimum name length exceeds maximum")
	}
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
