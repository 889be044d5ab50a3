// Package config resolves run settings from the environment. Command-line
// flags are applied on top by the cmd package.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"runtime"

	"github.com/agentic-research/grimoire/internal/classify"
	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

// DotEnv is the optional file read before the environment is parsed.
const DotEnv = ".env"

// Config holds every tunable of a conversion run.
type Config struct {
	// Workers is the number of files converted concurrently. Zero means one
	// per CPU.
	Workers int `env:"GRIMOIRE_WORKERS"`
	// Rules is a rule table file replacing the built-in one.
	Rules string `env:"GRIMOIRE_RULES"`
	// DB, when set, is the SQLite compendium rebuilt by each run.
	DB string `env:"GRIMOIRE_DB"`
	// Index, when set, is the search index directory rebuilt by each run.
	Index     string `env:"GRIMOIRE_INDEX"`
	MaxErrors int    `env:"GRIMOIRE_MAX_ERRORS" envDefault:"10"`
	LogLevel  string `env:"GRIMOIRE_LOG_LEVEL" envDefault:"info"`
}

// Load reads dotenv when it exists, then parses the environment. Variables
// already set take precedence over the file.
func Load(dotenv string) (Config, error) {
	var cfg Config
	if dotenv != "" {
		if err := godotenv.Load(dotenv); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return cfg, fmt.Errorf("load %s: %w", dotenv, err)
		}
	}
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	if cfg.Workers < 0 {
		return cfg, fmt.Errorf("workers must not be negative, got %d", cfg.Workers)
	}
	return cfg, nil
}

// WorkerCount resolves the zero value to the number of CPUs.
func (c Config) WorkerCount() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}

// RuleSet loads the configured rule table, or the built-in one.
func (c Config) RuleSet() (*classify.RuleSet, error) {
	if c.Rules == "" {
		return classify.Default()
	}
	if _, err := os.Stat(c.Rules); err != nil {
		return nil, fmt.Errorf("rules file: %w", err)
	}
	return classify.LoadFile(c.Rules)
}
