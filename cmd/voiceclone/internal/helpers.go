package internal

import (
	"fmt"
	"runtime"
	"time"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/auth"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/config"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/studio"
)

var (
	version   = "dev"
	gitCommit string
	buildTime string
	goVersion string
)

// App bundles the wired client pieces every command needs.
type App struct {
	Cfg   *config.Config
	Paths config.RuntimePaths
	Store *auth.Store
	Guard *auth.Guard
	API   *api.Client
}

// NewApp loads config, configures logging, and wires the session guard
// and the API client.
func NewApp() (*App, error) {
	paths := config.ResolveRuntimePaths()
	cfg, err := config.LoadConfig(paths.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("error loading config: %w", err)
	}

	logger.SetLevel(logger.ParseLevel(cfg.Log.Level))
	if cfg.Log.File != "" {
		if err := logger.EnableFileLogging(cfg.Log.File); err != nil {
			logger.WarnCF("cli", "File logging disabled", map[string]any{"error": err.Error()})
		}
	}

	store := auth.NewStore(paths.SessionPath)
	identity := auth.NewClient(cfg.Identity.BaseURL, cfg.Identity.AnonKey)
	guard := auth.NewGuard(identity, store)
	client := api.NewClient(cfg.API.BaseURL, guard, time.Duration(cfg.API.TimeoutSeconds)*time.Second)

	return &App{
		Cfg:   cfg,
		Paths: paths,
		Store: store,
		Guard: guard,
		API:   client,
	}, nil
}

// Studio builds the coordination core on top of the wired client.
func (a *App) Studio() *studio.Studio {
	return studio.New(a.API, a.Guard)
}

// FormatVersion returns the version string with optional git commit
func FormatVersion() string {
	v := version
	if gitCommit != "" {
		v += fmt.Sprintf(" (git: %s)", gitCommit)
	}
	return v
}

// FormatBuildInfo returns build time and go version info
func FormatBuildInfo() (string, string) {
	build := buildTime
	goVer := goVersion
	if goVer == "" {
		goVer = runtime.Version()
	}
	return build, goVer
}
