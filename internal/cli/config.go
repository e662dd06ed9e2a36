package cli

import (
	"fmt"

	"github.com/UtpalJayNadiger/tf-dialect/internal/models"
	"github.com/UtpalJayNadiger/tf-dialect/internal/observability/logging"
	"github.com/UtpalJayNadiger/tf-dialect/internal/policy"
	"github.com/caarlos0/env/v11"
)

// Config collects the environment-driven settings shared by the commands.
// Flags override whatever the environment supplies.
type Config struct {
	PolicyPath string `env:"TFDIALECT_POLICY"`
	LogFormat  string `env:"TFDIALECT_LOG_FORMAT" envDefault:"jsonl"`
	LogLevel   string `env:"TFDIALECT_LOG_LEVEL" envDefault:"info"`
	LogOutput  string `env:"TFDIALECT_LOG_OUTPUT" envDefault:"stderr"`
}

func loadConfig() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// loadPolicy resolves the policy document: explicit flag path first, then the
// environment/conventional resolution, then the embedded default preset.
func loadPolicy(flagPath string) (*models.PolicyDocument, string, error) {
	if flagPath != "" {
		doc, err := policy.Load(flagPath)
		if err != nil {
			return nil, "", err
		}
		return doc, flagPath, nil
	}
	return policy.LoadOrDefault("")
}

func newLogger(cfg Config) (logging.Logger, error) {
	return logging.NewLogger(logging.Config{
		Format: cfg.LogFormat,
		Level:  cfg.LogLevel,
		Output: cfg.LogOutput,
	})
}
