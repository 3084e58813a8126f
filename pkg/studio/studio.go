package studio

import (
	"context"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
)

// Studio wires the backend, registry, usage tracker and the two
// orchestrators into one workspace. All frontends (TUI, one-shot CLI)
// drive the same Studio.
type Studio struct {
	Backend    Backend
	Registry   *VoiceRegistry
	Usage      *UsageTracker
	Generation *GenerationOrchestrator
	Uploads    *UploadOrchestrator
}

// New builds a Studio on top of the given backend and token source.
func New(backend Backend, tokens api.TokenSource) *Studio {
	registry := NewVoiceRegistry(backend)
	usage := NewUsageTracker(backend)
	return &Studio{
		Backend:    backend,
		Registry:   registry,
		Usage:      usage,
		Generation: NewGenerationOrchestrator(backend, registry, usage),
		Uploads:    NewUploadOrchestrator(backend, registry, tokens),
	}
}

// Bootstrap loads the voice list and the usage snapshot. Voices are
// required; a failed usage fetch is logged and tolerated so the
// workspace still opens with the counter marked unknown.
func (s *Studio) Bootstrap(ctx context.Context) error {
	if err := s.Registry.Refresh(ctx); err != nil {
		return err
	}
	if err := s.Usage.Refresh(ctx); err != nil {
		logger.WarnCF("studio", "Usage fetch failed during bootstrap", map[string]any{"error": err.Error()})
	}
	return nil
}
