package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/utils"
)

// TokenSource yields a fresh bearer token for each authenticated call, or
// an error when no valid session exists. auth.Guard satisfies this.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// Client calls the generation service. Every method obtains a token first
// and aborts without touching the network when none is available.
type Client struct {
	baseURL    string
	tokens     TokenSource
	httpClient *http.Client
}

func NewClient(baseURL string, tokens TokenSource, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		tokens:  tokens,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// ListVoices returns the user's voice assets in server order (newest first).
func (c *Client) ListVoices(ctx context.Context) ([]VoiceAsset, error) {
	var out voicesResponse
	if err := c.getJSON(ctx, "/api/voice/my-voices", &out); err != nil {
		return nil, err
	}
	return out.Voices, nil
}

// Usage returns the current-period quota counters.
func (c *Client) Usage(ctx context.Context) (UsageSnapshot, error) {
	var out UsageSnapshot
	if err := c.getJSON(ctx, "/api/voice/usage", &out); err != nil {
		return UsageSnapshot{}, err
	}
	return out, nil
}

// UploadVoice submits a named voice sample and returns the new asset.
// The sample duration is measured server-side and comes back zero here;
// a later list refresh fills it in.
func (c *Client) UploadVoice(ctx context.Context, name, filename string, sample io.Reader) (VoiceAsset, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return VoiceAsset{}, err
	}

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)

	part, err := writer.CreateFormFile("file", filename)
	if err != nil {
		return VoiceAsset{}, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, sample); err != nil {
		return VoiceAsset{}, fmt.Errorf("failed to copy sample content: %w", err)
	}
	if err := writer.WriteField("voice_name", name); err != nil {
		return VoiceAsset{}, fmt.Errorf("failed to write voice_name field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return VoiceAsset{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/voice/upload-voice", &requestBody)
	if err != nil {
		return VoiceAsset{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	logger.DebugCF("api", "Uploading voice sample", map[string]any{
		"voice_name": name,
		"size_bytes": requestBody.Len(),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return VoiceAsset{}, &TransportError{Op: "upload voice", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return VoiceAsset{}, classifyResponse("upload voice", resp)
	}

	var out uploadResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return VoiceAsset{}, fmt.Errorf("failed to decode upload response: %w", err)
	}

	logger.InfoCF("api", "Voice sample uploaded", map[string]any{"voice_id": out.VoiceID})
	return VoiceAsset{ID: out.VoiceID, Name: name}, nil
}

// Generate requests speech synthesis of text with the given voice.
func (c *Client) Generate(ctx context.Context, voiceID, text string) (GenerationResult, error) {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return GenerationResult{}, err
	}

	var requestBody bytes.Buffer
	writer := multipart.NewWriter(&requestBody)
	if err := writer.WriteField("voice_id", voiceID); err != nil {
		return GenerationResult{}, fmt.Errorf("failed to write voice_id field: %w", err)
	}
	if err := writer.WriteField("text", text); err != nil {
		return GenerationResult{}, fmt.Errorf("failed to write text field: %w", err)
	}
	if err := writer.Close(); err != nil {
		return GenerationResult{}, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/api/voice/generate", &requestBody)
	if err != nil {
		return GenerationResult{}, err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)

	logger.InfoCF("api", "Requesting generation", map[string]any{
		"voice_id":     voiceID,
		"text_length":  len(text),
		"text_preview": utils.Truncate(text, 50),
	})

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return GenerationResult{}, &TransportError{Op: "generate speech", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return GenerationResult{}, classifyResponse("generate speech", resp)
	}

	var out GenerationResult
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return GenerationResult{}, fmt.Errorf("failed to decode generation response: %w", err)
	}

	logger.InfoCF("api", "Generation complete", map[string]any{
		"generation_id": out.GenerationID,
		"remaining":     out.Remaining,
	})
	return out, nil
}

// ListGenerations returns the most recent generation records.
func (c *Client) ListGenerations(ctx context.Context) ([]GenerationRecord, error) {
	var out generationsResponse
	if err := c.getJSON(ctx, "/api/voice/my-generations", &out); err != nil {
		return nil, err
	}
	return out.Generations, nil
}

// Download streams the artifact at url into w. The storage URL is public;
// no bearer token is attached.
func (c *Client) Download(ctx context.Context, url string, w io.Writer) (int64, error) {
	req, err := http.NewRequestWithContext(ctx, "GET", url, nil)
	if err != nil {
		return 0, err
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return 0, &TransportError{Op: "download audio", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return 0, &TransportError{Op: "download audio", Status: resp.StatusCode}
	}

	return io.Copy(w, resp.Body)
}

func (c *Client) getJSON(ctx context.Context, path string, out any) error {
	token, err := c.tokens.Token(ctx)
	if err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return &TransportError{Op: "GET " + path, Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return classifyResponse("GET "+path, resp)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response for %s: %w", path, err)
	}
	return nil
}
