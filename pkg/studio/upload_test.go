package studio

import (
	"context"
	"errors"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/auth"
)

func TestUploadBeginRejectsBlankLabel(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, &okTokens{})

	for _, label := range []string{"", "   ", "\t\n"} {
		err := s.Uploads.Begin(label)
		var verr *ValidationError
		if !errors.As(err, &verr) {
			t.Fatalf("Begin(%q) = %v, want ValidationError", label, err)
		}
	}
	if n := atomic.LoadInt32(&backend.uploadCalls); n != 0 {
		t.Errorf("blank label reached the network %d times", n)
	}
	if got := s.Uploads.State(); got != UploadIdle {
		t.Errorf("state = %v, want idle", got)
	}
}

func TestUploadSuccess(t *testing.T) {
	backend := &fakeBackend{
		uploadAsset: api.VoiceAsset{ID: "v9", Name: "Fresh"},
	}
	tokens := &okTokens{}
	s := New(backend, tokens)

	if err := s.Uploads.Begin("  Fresh  "); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if got := s.Uploads.Label(); got != "Fresh" {
		t.Errorf("label = %q, want trimmed", got)
	}
	if got := s.Uploads.State(); got != UploadAwaitingFile {
		t.Errorf("state = %v, want awaiting file", got)
	}

	asset, err := s.Uploads.Upload(context.Background(), "sample.wav", strings.NewReader("RIFF"))
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if asset.ID != "v9" {
		t.Errorf("asset = %+v", asset)
	}
	if got := s.Uploads.State(); got != UploadSucceeded {
		t.Errorf("state = %v, want succeeded", got)
	}
	// The label is consumed by a successful upload.
	if got := s.Uploads.Label(); got != "" {
		t.Errorf("label = %q after success, want cleared", got)
	}
	// The new voice is in the registry and active.
	if !s.Registry.Has("v9") {
		t.Error("uploaded voice missing from registry")
	}
	if got := s.Registry.ActiveID(); got != "v9" {
		t.Errorf("active = %q, want v9", got)
	}
}

func TestUploadFailurePreservesLabel(t *testing.T) {
	backend := &fakeBackend{
		uploadErr: &api.ServiceError{Status: 400, Detail: "Audio sample too short"},
	}
	s := New(backend, &okTokens{})

	if err := s.Uploads.Begin("Fresh"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	_, err := s.Uploads.Upload(context.Background(), "sample.wav", strings.NewReader("RIFF"))
	var serr *api.ServiceError
	if !errors.As(err, &serr) {
		t.Fatalf("err = %v, want ServiceError", err)
	}

	if got := s.Uploads.State(); got != UploadFailed {
		t.Errorf("state = %v, want failed", got)
	}
	if got := s.Uploads.Label(); got != "Fresh" {
		t.Errorf("label = %q after failure, want preserved for retry", got)
	}
	if s.Uploads.LastError() == nil {
		t.Error("LastError() lost the failure")
	}

	// Retry with the same label succeeds without a second Begin.
	backend.uploadErr = nil
	if _, err := s.Uploads.Upload(context.Background(), "sample.wav", strings.NewReader("RIFF")); err != nil {
		t.Fatalf("retry: %v", err)
	}
	if got := s.Uploads.Label(); got != "" {
		t.Errorf("label = %q after retry success, want cleared", got)
	}
}

func TestUploadExpiredSessionFailsBeforeNetwork(t *testing.T) {
	backend := &fakeBackend{}
	tokens := &deniedTokens{err: &auth.AuthError{Detail: "session expired, please sign in again"}}
	s := New(backend, tokens)

	if err := s.Uploads.Begin("Fresh"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	_, err := s.Uploads.Upload(context.Background(), "sample.wav", strings.NewReader("RIFF"))
	var aerr *auth.AuthError
	if !errors.As(err, &aerr) {
		t.Fatalf("err = %v, want AuthError", err)
	}
	if n := atomic.LoadInt32(&backend.uploadCalls); n != 0 {
		t.Errorf("expired session reached the network %d times", n)
	}
	if got := s.Uploads.Label(); got != "Fresh" {
		t.Errorf("label = %q, want preserved", got)
	}
}

func TestUploadWithoutLabel(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, &okTokens{})

	_, err := s.Uploads.Upload(context.Background(), "sample.wav", strings.NewReader("RIFF"))
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if n := atomic.LoadInt32(&backend.uploadCalls); n != 0 {
		t.Errorf("labelless upload reached the network %d times", n)
	}
}

func TestUploadFromFileMissingFile(t *testing.T) {
	backend := &fakeBackend{}
	s := New(backend, &okTokens{})
	if err := s.Uploads.Begin("Fresh"); err != nil {
		t.Fatalf("Begin: %v", err)
	}

	_, err := s.Uploads.UploadFromFile(context.Background(), "/does/not/exist.wav")
	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("err = %v, want ValidationError", err)
	}
	if n := atomic.LoadInt32(&backend.uploadCalls); n != 0 {
		t.Errorf("missing file reached the network %d times", n)
	}
}

func TestUploadReset(t *testing.T) {
	backend := &fakeBackend{uploadErr: errors.New("boom")}
	s := New(backend, &okTokens{})
	if err := s.Uploads.Begin("Fresh"); err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if _, err := s.Uploads.Upload(context.Background(), "sample.wav", strings.NewReader("RIFF")); err == nil {
		t.Fatal("expected upload error")
	}

	s.Uploads.Reset()
	if got := s.Uploads.State(); got != UploadIdle {
		t.Errorf("state = %v, want idle", got)
	}
	if got := s.Uploads.Label(); got != "" {
		t.Errorf("label = %q after reset, want cleared", got)
	}
	if s.Uploads.LastError() != nil {
		t.Error("LastError survived reset")
	}
}
