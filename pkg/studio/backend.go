package studio

import (
	"context"
	"io"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
)

// Backend is the slice of the generation service the studio core uses.
// *api.Client satisfies it; tests use scripted fakes.
type Backend interface {
	ListVoices(ctx context.Context) ([]api.VoiceAsset, error)
	Usage(ctx context.Context) (api.UsageSnapshot, error)
	UploadVoice(ctx context.Context, name, filename string, sample io.Reader) (api.VoiceAsset, error)
	Generate(ctx context.Context, voiceID, text string) (api.GenerationResult, error)
	ListGenerations(ctx context.Context) ([]api.GenerationRecord, error)
}

var _ Backend = (*api.Client)(nil)
