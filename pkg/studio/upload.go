package studio

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
)

// UploadState is the lifecycle of a voice upload.
type UploadState int

const (
	UploadIdle UploadState = iota
	UploadAwaitingFile
	UploadInFlight
	UploadSucceeded
	UploadFailed
)

func (s UploadState) String() string {
	switch s {
	case UploadIdle:
		return "idle"
	case UploadAwaitingFile:
		return "awaiting_file"
	case UploadInFlight:
		return "uploading"
	case UploadSucceeded:
		return "succeeded"
	case UploadFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// UploadOrchestrator runs the voice upload workflow. The label the user
// typed survives a failed attempt so they can fix the file and retry; it
// is cleared only once an upload succeeds.
type UploadOrchestrator struct {
	backend  Backend
	registry *VoiceRegistry
	tokens   api.TokenSource

	mu    sync.Mutex
	state UploadState
	label string
	err   error
}

func NewUploadOrchestrator(backend Backend, registry *VoiceRegistry, tokens api.TokenSource) *UploadOrchestrator {
	return &UploadOrchestrator{
		backend:  backend,
		registry: registry,
		tokens:   tokens,
	}
}

// Begin records the display name for the voice about to be uploaded. A
// blank label is rejected before anything else happens.
func (u *UploadOrchestrator) Begin(label string) error {
	if strings.TrimSpace(label) == "" {
		return &ValidationError{Reason: "voice name is empty"}
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == UploadInFlight {
		return ErrUploadInFlight
	}
	u.label = strings.TrimSpace(label)
	u.state = UploadAwaitingFile
	u.err = nil
	return nil
}

// ErrUploadInFlight is returned when an upload is requested while another
// is still running.
var ErrUploadInFlight = &ValidationError{Reason: "an upload is already in flight"}

// Upload sends the sample under the label set by Begin. The session is
// checked before any bytes move so an expired login fails fast. On
// success the new voice is registered and activated and the label is
// cleared; on failure the label is kept for the retry.
func (u *UploadOrchestrator) Upload(ctx context.Context, filename string, sample io.Reader) (*api.VoiceAsset, error) {
	u.mu.Lock()
	if u.state == UploadInFlight {
		u.mu.Unlock()
		return nil, ErrUploadInFlight
	}
	label := u.label
	if strings.TrimSpace(label) == "" {
		u.mu.Unlock()
		return nil, &ValidationError{Reason: "voice name is empty"}
	}
	u.state = UploadInFlight
	u.mu.Unlock()

	if _, err := u.tokens.Token(ctx); err != nil {
		u.fail(err)
		return nil, err
	}

	actionID := uuid.New().String()
	logger.InfoCF("studio", "Upload started", map[string]any{
		"action_id": actionID,
		"name":      label,
		"file":      filepath.Base(filename),
	})

	asset, err := u.backend.UploadVoice(ctx, label, filename, sample)
	if err != nil {
		logger.ErrorCF("studio", "Upload failed", map[string]any{
			"action_id": actionID,
			"error":     err.Error(),
		})
		u.fail(err)
		return nil, err
	}

	u.registry.RegisterUploaded(asset)

	u.mu.Lock()
	u.state = UploadSucceeded
	u.label = ""
	u.err = nil
	u.mu.Unlock()

	logger.InfoCF("studio", "Upload succeeded", map[string]any{
		"action_id": actionID,
		"voice_id":  asset.ID,
	})
	return &asset, nil
}

// UploadFromFile is the file-path convenience used by the CLI.
func (u *UploadOrchestrator) UploadFromFile(ctx context.Context, path string) (*api.VoiceAsset, error) {
	f, err := os.Open(path)
	if err != nil {
		verr := &ValidationError{Reason: "cannot read sample file: " + err.Error()}
		u.fail(verr)
		return nil, verr
	}
	defer f.Close()
	return u.Upload(ctx, filepath.Base(path), f)
}

// State returns the current lifecycle state.
func (u *UploadOrchestrator) State() UploadState {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.state
}

// Label returns the pending voice name, empty after a successful upload.
func (u *UploadOrchestrator) Label() string {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.label
}

// LastError returns the error from the most recent failed attempt.
func (u *UploadOrchestrator) LastError() error {
	u.mu.Lock()
	defer u.mu.Unlock()
	return u.err
}

// Reset clears the workflow back to idle, dropping any pending label. It
// is a no-op while an upload is in flight.
func (u *UploadOrchestrator) Reset() {
	u.mu.Lock()
	defer u.mu.Unlock()
	if u.state == UploadInFlight {
		return
	}
	u.state = UploadIdle
	u.label = ""
	u.err = nil
}

func (u *UploadOrchestrator) fail(err error) {
	u.mu.Lock()
	u.state = UploadFailed
	u.err = err
	u.mu.Unlock()
}
