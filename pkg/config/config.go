package config

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"sync"

	"github.com/caarlos0/env/v11"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/utils"
)

// Config holds the client settings. Values come from the JSON config file
// overlaid with VOICECLONE_* environment variables.
type Config struct {
	API      APIConfig      `json:"api" label:"Generation API"`
	Identity IdentityConfig `json:"identity" label:"Identity Provider"`
	Log      LogConfig      `json:"log" label:"Logging"`
	mu       sync.RWMutex
}

// APIConfig points at the VoiceClone generation service.
type APIConfig struct {
	BaseURL        string `json:"base_url" label:"Base URL" env:"VOICECLONE_API_BASE_URL"`
	TimeoutSeconds int    `json:"timeout_seconds" label:"HTTP Timeout (s)" env:"VOICECLONE_API_TIMEOUT_SECONDS"`
}

// IdentityConfig points at the auth service that issues session tokens.
type IdentityConfig struct {
	BaseURL string `json:"base_url" label:"Base URL" env:"VOICECLONE_IDENTITY_BASE_URL"`
	AnonKey string `json:"anon_key" label:"Public API Key" env:"VOICECLONE_IDENTITY_ANON_KEY"`
}

type LogConfig struct {
	Level string `json:"level" label:"Level" env:"VOICECLONE_LOG_LEVEL"`
	File  string `json:"file" label:"File" env:"VOICECLONE_LOG_FILE"`
}

func DefaultConfig() *Config {
	return &Config{
		API: APIConfig{
			BaseURL:        "http://localhost:8000",
			TimeoutSeconds: 60,
		},
		Identity: IdentityConfig{
			BaseURL: "http://localhost:9999",
			AnonKey: "",
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			// Env overlay still applies when no file exists.
			if err := env.Parse(cfg); err != nil {
				return nil, err
			}
			return cfg, nil
		}
		return nil, err
	}

	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	if err := env.Parse(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

func SaveConfig(path string, cfg *Config) error {
	cfg.mu.RLock()
	defer cfg.mu.RUnlock()

	data, err := json.MarshalIndent(cfg, "", "  ")
	if err != nil {
		return err
	}
	return utils.WriteFileAtomic(path, data, 0o600, 0o700)
}

// Validate reports configuration that cannot produce working clients.
func (c *Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return fmt.Errorf("api.base_url is required")
	}
	if strings.TrimSpace(c.Identity.BaseURL) == "" {
		return fmt.Errorf("identity.base_url is required")
	}
	if c.API.TimeoutSeconds <= 0 {
		return fmt.Errorf("api.timeout_seconds must be positive")
	}
	return nil
}

func (c *Config) Lock()    { c.mu.Lock() }
func (c *Config) Unlock()  { c.mu.Unlock() }
func (c *Config) RLock()   { c.mu.RLock() }
func (c *Config) RUnlock() { c.mu.RUnlock() }
