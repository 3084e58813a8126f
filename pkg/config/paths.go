package config

import (
	"os"
	"path/filepath"
	"strings"
)

const (
	EnvVoiceCloneConfig = "VOICECLONE_CONFIG"
	EnvVoiceCloneHome   = "VOICECLONE_HOME"
)

// RuntimePaths locates the client's on-disk state. SessionPath holds the
// current auth session (the terminal equivalent of browser local storage).
type RuntimePaths struct {
	HomeDir     string
	ConfigPath  string
	SessionPath string
}

func ResolveRuntimePaths() RuntimePaths {
	if configPath := expandHome(strings.TrimSpace(os.Getenv(EnvVoiceCloneConfig))); configPath != "" {
		return buildRuntimePaths(filepath.Dir(configPath), configPath)
	}

	homeDir := expandHome(strings.TrimSpace(os.Getenv(EnvVoiceCloneHome)))
	if homeDir == "" {
		homeDir = defaultVoiceCloneHome()
	}

	return buildRuntimePaths(homeDir, filepath.Join(homeDir, "config.json"))
}

func defaultVoiceCloneHome() string {
	home, err := os.UserHomeDir()
	if err != nil || home == "" {
		return ".voiceclone"
	}
	return filepath.Join(home, ".voiceclone")
}

func buildRuntimePaths(homeDir, configPath string) RuntimePaths {
	return RuntimePaths{
		HomeDir:     homeDir,
		ConfigPath:  configPath,
		SessionPath: filepath.Join(homeDir, "session.json"),
	}
}

func expandHome(path string) string {
	if path == "" {
		return path
	}
	if path[0] == '~' {
		home, _ := os.UserHomeDir()
		if len(path) > 1 && path[1] == '/' {
			return home + path[1:]
		}
		return home
	}
	return path
}
