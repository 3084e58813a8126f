package studio

import (
	"context"
	"sync"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
)

// VoiceRegistry caches the user's voice assets and tracks which one is
// active. Server order is treated as stable (newest first). Reads never
// block each other; every mutation is applied atomically so an observer
// can't see a half-updated list.
type VoiceRegistry struct {
	backend Backend

	mu       sync.RWMutex
	voices   []api.VoiceAsset
	activeID string
}

func NewVoiceRegistry(backend Backend) *VoiceRegistry {
	return &VoiceRegistry{backend: backend}
}

// Refresh replaces the cached list with the server's. Selection rules:
// the first voice becomes active when the list goes from empty to
// non-empty; an existing selection is preserved unless its id is gone, in
// which case it resets to none.
func (r *VoiceRegistry) Refresh(ctx context.Context) error {
	voices, err := r.backend.ListVoices(ctx)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	wasEmpty := len(r.voices) == 0
	r.voices = voices

	switch {
	case r.activeID == "" && wasEmpty && len(voices) > 0:
		r.activeID = voices[0].ID
	case r.activeID != "" && !containsVoice(voices, r.activeID):
		logger.DebugCF("studio", "Active voice no longer exists", map[string]any{"voice_id": r.activeID})
		r.activeID = ""
	}
	return nil
}

// RegisterUploaded inserts a freshly uploaded asset without a refetch so
// it is immediately selectable, and makes it the active voice. The server
// lists newest first, so it goes to the front.
func (r *VoiceRegistry) RegisterUploaded(asset api.VoiceAsset) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !containsVoice(r.voices, asset.ID) {
		r.voices = append([]api.VoiceAsset{asset}, r.voices...)
	}
	r.activeID = asset.ID
}

// Select makes the given voice active. The id must be in the cached set.
func (r *VoiceRegistry) Select(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if !containsVoice(r.voices, id) {
		return &ValidationError{Reason: "voice not found"}
	}
	r.activeID = id
	return nil
}

// Voices returns a copy of the cached list in server order.
func (r *VoiceRegistry) Voices() []api.VoiceAsset {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]api.VoiceAsset, len(r.voices))
	copy(out, r.voices)
	return out
}

// ActiveID returns the active voice id, or "" when none is selected.
func (r *VoiceRegistry) ActiveID() string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.activeID
}

// Has reports whether the id is present in the cached set.
func (r *VoiceRegistry) Has(id string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return containsVoice(r.voices, id)
}

// ResolveName maps a display name to a voice id, for the one-shot CLI.
func (r *VoiceRegistry) ResolveName(name string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, v := range r.voices {
		if v.Name == name || v.ID == name {
			return v.ID, true
		}
	}
	return "", false
}

func containsVoice(voices []api.VoiceAsset, id string) bool {
	for _, v := range voices {
		if v.ID == id {
			return true
		}
	}
	return false
}
