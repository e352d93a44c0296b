package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/joho/godotenv"
	"github.com/meme-bots/go-inspect/types"
	"gopkg.in/yaml.v3"
)

const (
	EnvRPC          = "SOLANA_RPC_URL"
	EnvTokenListURL = "TOKEN_LIST_URL"
	EnvOutputDir    = "INSPECTOR_OUTPUT_DIR"
)

// LoadEnv reads a .env file into the process environment. A missing file
// is not an error.
func LoadEnv(filenames ...string) error {
	if err := godotenv.Load(filenames...); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadConfig reads the YAML file at filename, applies environment overrides
// and fills the remaining gaps with defaults. An empty filename skips the
// file.
func LoadConfig(filename string) (*types.Config, error) {
	var cfg types.Config

	if filename != "" {
		data, err := os.ReadFile(filename)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", filename, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", filename, err)
		}
	}

	applyEnv(&cfg)
	cfg = cfg.WithDefaults()
	return &cfg, nil
}

// SaveConfig writes cfg as YAML.
func SaveConfig(filename string, cfg *types.Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	if err := os.WriteFile(filename, data, 0644); err != nil {
		return fmt.Errorf("write config %s: %w", filename, err)
	}
	return nil
}

func applyEnv(cfg *types.Config) {
	if v := os.Getenv(EnvRPC); v != "" {
		cfg.RPC = v
	}
	if v := os.Getenv(EnvTokenListURL); v != "" {
		cfg.TokenListURL = v
	}
	if v := os.Getenv(EnvOutputDir); v != "" {
		cfg.OutputDir = v
	}
}
