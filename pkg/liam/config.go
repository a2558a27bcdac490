package liam

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/rawbytes"
	"github.com/knadh/koanf/v2"
)

const envPrefix = "LIAM_"

// fileConfig is the on-disk / environment shape of client configuration.
type fileConfig struct {
	APIKey         string  `koanf:"api_key"`
	PrivateKey     string  `koanf:"private_key"`
	PrivateKeyPath string  `koanf:"private_key_path"`
	BaseURL        string  `koanf:"base_url"`
	Timeout        int     `koanf:"timeout"`
	RateLimit      float64 `koanf:"rate_limit"`
}

// LoadConfig builds a Config from an optional YAML file overridden by
// LIAM_* environment variables.
//
// Precedence (highest to lowest):
//  1. Environment variables (LIAM_API_KEY, LIAM_PRIVATE_KEY,
//     LIAM_PRIVATE_KEY_PATH, LIAM_BASE_URL, LIAM_TIMEOUT, LIAM_RATE_LIMIT)
//  2. YAML config file (when configPath is non-empty)
//
// A .env file in the working directory is loaded first as a convenience;
// its absence is not an error. Timeout is in seconds. A missing API key
// returns ErrConfiguration.
func LoadConfig(configPath string) (Config, error) {
	// Convenience for local development; real environments set vars directly.
	_ = godotenv.Load()

	k := koanf.New(".")

	if configPath != "" {
		content, err := os.ReadFile(configPath)
		if err != nil {
			return Config{}, fmt.Errorf("%w: read config file: %v", ErrConfiguration, err)
		}
		if err := k.Load(rawbytes.Provider(content), yaml.Parser()); err != nil {
			return Config{}, fmt.Errorf("%w: parse config file %s: %v", ErrConfiguration, configPath, err)
		}
	}

	// Environment variables map flat: LIAM_API_KEY -> api_key.
	if err := k.Load(env.Provider(envPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, envPrefix))
	}), nil); err != nil {
		return Config{}, fmt.Errorf("%w: load environment: %v", ErrConfiguration, err)
	}

	var fc fileConfig
	if err := k.Unmarshal("", &fc); err != nil {
		return Config{}, fmt.Errorf("%w: unmarshal config: %v", ErrConfiguration, err)
	}

	if fc.APIKey == "" {
		return Config{}, fmt.Errorf("%w: LIAM_API_KEY not set", ErrConfiguration)
	}

	cfg := Config{
		APIKey:         fc.APIKey,
		BaseURL:        fc.BaseURL,
		PrivateKeyPath: fc.PrivateKeyPath,
		RateLimit:      fc.RateLimit,
	}
	if fc.PrivateKey != "" {
		cfg.PrivateKeyPEM = []byte(fc.PrivateKey)
	}
	if fc.Timeout > 0 {
		cfg.Timeout = time.Duration(fc.Timeout) * time.Second
	}
	return cfg, nil
}

// FromEnv constructs a client from LIAM_* environment variables. Missing
// required configuration returns ErrConfiguration; a malformed key
// returns ErrAuthentication. See LoadConfig for the variable surface.
func FromEnv() (*Client, error) {
	cfg, err := LoadConfig("")
	if err != nil {
		return nil, err
	}
	return New(cfg)
}
