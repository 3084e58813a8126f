package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/auth"
)

// staticTokens always yields the same bearer token.
type staticTokens struct{ token string }

func (s staticTokens) Token(context.Context) (string, error) { return s.token, nil }

// failingTokens simulates an unavailable session.
type failingTokens struct{}

func (failingTokens) Token(context.Context) (string, error) {
	return "", &auth.AuthError{Detail: "not signed in"}
}

func newTestClient(url string) *Client {
	return NewClient(url, staticTokens{token: "test-token"}, 10*time.Second)
}

func TestClient_ListVoices(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/my-voices" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-token" {
			t.Errorf("auth header = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"voices": []map[string]any{
				{"id": "v2", "name": "Studio", "duration": 21.4},
				{"id": "v1", "name": "My Voice", "duration": 12.0},
			},
		})
	}))
	defer server.Close()

	voices, err := newTestClient(server.URL).ListVoices(context.Background())
	if err != nil {
		t.Fatalf("ListVoices() error: %v", err)
	}
	if len(voices) != 2 {
		t.Fatalf("expected 2 voices, got %d", len(voices))
	}
	// Server order is preserved.
	if voices[0].ID != "v2" || voices[1].ID != "v1" {
		t.Errorf("order not preserved: %+v", voices)
	}
	if voices[0].Duration != 21.4 {
		t.Errorf("duration = %v", voices[0].Duration)
	}
}

func TestClient_Usage(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/usage" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"tier":                  "free",
			"generations_used":      8,
			"generations_limit":     10,
			"generations_remaining": 2,
		})
	}))
	defer server.Close()

	usage, err := newTestClient(server.URL).Usage(context.Background())
	if err != nil {
		t.Fatalf("Usage() error: %v", err)
	}
	if usage.Used != 8 || usage.Limit != 10 || usage.Tier != "free" {
		t.Errorf("unexpected snapshot: %+v", usage)
	}
	if !usage.NearLimit() {
		t.Error("8/10 should be near limit")
	}
	if usage.OverLimit() {
		t.Error("8/10 should not be over limit")
	}
}

func TestClient_UploadVoice(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/upload-voice" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("voice_name"); got != "My Voice" {
			t.Errorf("voice_name = %q", got)
		}
		file, header, err := r.FormFile("file")
		if err != nil {
			t.Fatalf("missing file part: %v", err)
		}
		defer file.Close()
		if header.Filename != "sample.wav" {
			t.Errorf("filename = %q", header.Filename)
		}

		json.NewEncoder(w).Encode(map[string]string{"voice_id": "v-new", "name": "My Voice"})
	}))
	defer server.Close()

	asset, err := newTestClient(server.URL).UploadVoice(
		context.Background(), "My Voice", "sample.wav", strings.NewReader("fake audio"))
	if err != nil {
		t.Fatalf("UploadVoice() error: %v", err)
	}
	if asset.ID != "v-new" || asset.Name != "My Voice" {
		t.Errorf("unexpected asset: %+v", asset)
	}
}

func TestClient_Generate(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/generate" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(10 << 20); err != nil {
			t.Fatalf("failed to parse multipart form: %v", err)
		}
		if got := r.FormValue("voice_id"); got != "v1" {
			t.Errorf("voice_id = %q", got)
		}
		if got := r.FormValue("text"); got != "Hello world" {
			t.Errorf("text = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"generation_id":         "g1",
			"download_url":          "https://storage.example/g1.wav",
			"text":                  "Hello world",
			"generations_remaining": 4,
		})
	}))
	defer server.Close()

	result, err := newTestClient(server.URL).Generate(context.Background(), "v1", "Hello world")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if result.DownloadURL == "" {
		t.Error("expected non-empty download URL")
	}
	if result.Remaining != 4 {
		t.Errorf("Remaining = %d", result.Remaining)
	}
}

func TestClient_Generate_QuotaDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		json.NewEncoder(w).Encode(map[string]string{
			"detail": "Generation limit reached. Upgrade to Pro for more.",
		})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Generate(context.Background(), "v1", "Hello")

	var svcErr *ServiceError
	if !errors.As(err, &svcErr) {
		t.Fatalf("expected *ServiceError, got %v", err)
	}
	if svcErr.Detail != "Generation limit reached. Upgrade to Pro for more." {
		t.Errorf("Detail = %q", svcErr.Detail)
	}
	if svcErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d", svcErr.Status)
	}
}

func TestClient_Unauthorized(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		json.NewEncoder(w).Encode(map[string]string{"detail": "Invalid token"})
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).ListVoices(context.Background())

	var authErr *auth.AuthError
	if !errors.As(err, &authErr) {
		t.Fatalf("expected *auth.AuthError for 401, got %v", err)
	}
}

func TestClient_ServerErrorWithoutDetail(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		w.Write([]byte("<html>bad gateway</html>"))
	}))
	defer server.Close()

	_, err := newTestClient(server.URL).Usage(context.Background())

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
	if tErr.Status != http.StatusBadGateway {
		t.Errorf("Status = %d", tErr.Status)
	}
}

func TestClient_NetworkFailure(t *testing.T) {
	c := NewClient("http://127.0.0.1:1", staticTokens{token: "t"}, time.Second)
	_, err := c.ListVoices(context.Background())

	var tErr *TransportError
	if !errors.As(err, &tErr) {
		t.Fatalf("expected *TransportError, got %v", err)
	}
}

func TestClient_NoTokenAbortsBeforeNetwork(t *testing.T) {
	called := false
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		called = true
	}))
	defer server.Close()

	c := NewClient(server.URL, failingTokens{}, time.Second)

	var authErr *auth.AuthError
	if _, err := c.Generate(context.Background(), "v1", "hi"); !errors.As(err, &authErr) {
		t.Fatalf("expected *auth.AuthError, got %v", err)
	}
	if _, err := c.UploadVoice(context.Background(), "n", "f.wav", strings.NewReader("x")); !errors.As(err, &authErr) {
		t.Fatalf("expected *auth.AuthError, got %v", err)
	}
	if called {
		t.Error("no HTTP request may be issued without a token")
	}
}

func TestClient_Download(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "" {
			t.Error("download must not carry a bearer token")
		}
		w.Write([]byte("RIFF....WAVE"))
	}))
	defer server.Close()

	var buf bytes.Buffer
	n, err := newTestClient(server.URL).Download(context.Background(), server.URL+"/g1.wav", &buf)
	if err != nil {
		t.Fatalf("Download() error: %v", err)
	}
	if n != int64(buf.Len()) || buf.Len() == 0 {
		t.Errorf("downloaded %d bytes, buffer %d", n, buf.Len())
	}
}

func TestClient_ListGenerations(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/voice/my-generations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		json.NewEncoder(w).Encode(map[string]any{
			"generations": []map[string]any{
				{"id": "g2", "voice_id": "v1", "text": "Newest", "download_url": "https://storage.example/g2.wav", "created_at": "2026-02-01T10:00:00Z"},
				{"id": "g1", "voice_id": "v1", "text": "Oldest", "download_url": "https://storage.example/g1.wav", "created_at": "2026-01-01T10:00:00Z"},
			},
		})
	}))
	defer server.Close()

	records, err := newTestClient(server.URL).ListGenerations(context.Background())
	if err != nil {
		t.Fatalf("ListGenerations() error: %v", err)
	}
	if len(records) != 2 || records[0].ID != "g2" {
		t.Errorf("unexpected records: %+v", records)
	}
}
