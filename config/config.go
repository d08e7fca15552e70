package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"gopkg.in/yaml.v3"
)

// Config is the full voicedesk configuration.
type Config struct {
	// Company is the business identity spoken in greetings.
	Company CompanyConfig `yaml:"company"`

	// Storage points the agents at their record files and the case database.
	Storage StorageConfig `yaml:"storage"`

	// FAQ entries agents can answer from directly.
	FAQ []FAQEntry `yaml:"faq"`
}

// CompanyConfig identifies the business the agents speak for.
type CompanyConfig struct {
	Name     string `yaml:"name"`
	Greeting string `yaml:"greeting"`
}

// StorageConfig locates the persistent stores.
type StorageConfig struct {
	// DataDir holds the per-agent JSON record files.
	DataDir string `yaml:"data_dir"`
	// CaseDB is the SQLite file with the fraud case table.
	CaseDB string `yaml:"case_db"`
}

// FAQEntry is one canned question/answer pair.
type FAQEntry struct {
	Question string `yaml:"question"`
	Answer   string `yaml:"answer"`
}

// Default returns the configuration written when no file exists yet.
func Default() Config {
	return Config{
		Company: CompanyConfig{
			Name:     "Falcon Cafe",
			Greeting: "Hi, welcome to Falcon Cafe! What can I get started for you?",
		},
		Storage: StorageConfig{
			DataDir: "data",
			CaseDB:  filepath.Join("data", "fraud_cases.db"),
		},
		FAQ: []FAQEntry{
			{Question: "What are your opening hours?", Answer: "We are open 7am to 7pm, every day."},
			{Question: "Do you have dairy-free options?", Answer: "Yes — oat, soy and almond milk are all available."},
		},
	}
}

// Load reads the configuration at path. When the file does not exist, the
// defaults are written back to path and returned; the caller never fails for
// a missing file.
func Load(path string, logger *zap.Logger) (Config, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		cfg := Default()
		if writeErr := write(path, cfg); writeErr != nil {
			return Config{}, writeErr
		}
		logger.Warn("config file missing, wrote defaults", zap.String("path", path))
		return cfg, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}

func write(path string, cfg Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create config dir: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}
