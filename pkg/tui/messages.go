package tui

import "github.com/Sumitkumar005/voiceclone-studio/pkg/api"

// bootstrapDoneMsg reports the initial voice and usage load.
type bootstrapDoneMsg struct {
	Err error
}

// refreshDoneMsg reports a manual voice list refresh.
type refreshDoneMsg struct {
	Err error
}

// generateDoneMsg carries the outcome of a generation request.
type generateDoneMsg struct {
	Result *api.GenerationResult
	Err    error
}

// uploadDoneMsg carries the outcome of a voice upload.
type uploadDoneMsg struct {
	Asset *api.VoiceAsset
	Err   error
}
