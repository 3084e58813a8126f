package studio

import (
	"context"
	"errors"
	"io"
	"sync/atomic"
	"testing"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
)

// fakeBackend scripts responses per call and counts how often each
// operation runs.
type fakeBackend struct {
	voices    []api.VoiceAsset
	voicesErr error

	usage    api.UsageSnapshot
	usageErr error

	uploadAsset api.VoiceAsset
	uploadErr   error

	genResult api.GenerationResult
	genErr    error

	listVoicesCalls int32
	usageCalls      int32
	uploadCalls     int32
	generateCalls   int32
}

func (f *fakeBackend) ListVoices(ctx context.Context) ([]api.VoiceAsset, error) {
	atomic.AddInt32(&f.listVoicesCalls, 1)
	if f.voicesErr != nil {
		return nil, f.voicesErr
	}
	out := make([]api.VoiceAsset, len(f.voices))
	copy(out, f.voices)
	return out, nil
}

func (f *fakeBackend) Usage(ctx context.Context) (api.UsageSnapshot, error) {
	atomic.AddInt32(&f.usageCalls, 1)
	if f.usageErr != nil {
		return api.UsageSnapshot{}, f.usageErr
	}
	return f.usage, nil
}

func (f *fakeBackend) UploadVoice(ctx context.Context, name, filename string, sample io.Reader) (api.VoiceAsset, error) {
	atomic.AddInt32(&f.uploadCalls, 1)
	if f.uploadErr != nil {
		return api.VoiceAsset{}, f.uploadErr
	}
	if f.uploadAsset.ID != "" {
		return f.uploadAsset, nil
	}
	return api.VoiceAsset{ID: "uploaded-id", Name: name}, nil
}

func (f *fakeBackend) Generate(ctx context.Context, voiceID, text string) (api.GenerationResult, error) {
	atomic.AddInt32(&f.generateCalls, 1)
	if f.genErr != nil {
		return api.GenerationResult{}, f.genErr
	}
	if f.genResult.GenerationID != "" {
		return f.genResult, nil
	}
	return api.GenerationResult{GenerationID: "gen-1", DownloadURL: "/dl/gen-1", Text: text, Remaining: 9}, nil
}

func (f *fakeBackend) ListGenerations(ctx context.Context) ([]api.GenerationRecord, error) {
	return nil, nil
}

// okTokens always hands out a token.
type okTokens struct{ calls int32 }

func (t *okTokens) Token(ctx context.Context) (string, error) {
	atomic.AddInt32(&t.calls, 1)
	return "test-token", nil
}

// deniedTokens refuses every request.
type deniedTokens struct{ err error }

func (t *deniedTokens) Token(ctx context.Context) (string, error) {
	return "", t.err
}

func TestStudioBootstrap(t *testing.T) {
	backend := &fakeBackend{
		voices: []api.VoiceAsset{{ID: "v1", Name: "Narrator"}},
		usage:  api.UsageSnapshot{Tier: "free", Used: 2, Limit: 10, Remaining: 8},
	}
	s := New(backend, &okTokens{})

	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if got := s.Registry.ActiveID(); got != "v1" {
		t.Errorf("active voice = %q, want v1", got)
	}
	snap, ok := s.Usage.Snapshot()
	if !ok || snap.Used != 2 {
		t.Errorf("usage snapshot = %+v loaded=%v", snap, ok)
	}
}

func TestStudioBootstrapVoicesRequired(t *testing.T) {
	backend := &fakeBackend{voicesErr: errors.New("boom")}
	s := New(backend, &okTokens{})

	if err := s.Bootstrap(context.Background()); err == nil {
		t.Fatal("expected error when voice list fails")
	}
	if n := atomic.LoadInt32(&backend.usageCalls); n != 0 {
		t.Errorf("usage fetched %d times after voices failed, want 0", n)
	}
}

func TestStudioBootstrapToleratesUsageFailure(t *testing.T) {
	backend := &fakeBackend{
		voices:   []api.VoiceAsset{{ID: "v1", Name: "Narrator"}},
		usageErr: errors.New("boom"),
	}
	s := New(backend, &okTokens{})

	if err := s.Bootstrap(context.Background()); err != nil {
		t.Fatalf("Bootstrap: %v", err)
	}
	if _, ok := s.Usage.Snapshot(); ok {
		t.Error("usage reported loaded after a failed fetch")
	}
}
