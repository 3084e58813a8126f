// Package api is the HTTP client for the VoiceClone generation service:
// voice library, usage counters, uploads, and speech generation.
package api

// VoiceAsset is one cloned-voice sample owned by the user. Immutable once
// created; the server assigns the id and measures the sample duration.
type VoiceAsset struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Duration float64 `json:"duration"`
}

// UsageSnapshot mirrors the server's quota counters for the current period.
// It is replaced wholesale after every mutating call and never computed
// client-side.
type UsageSnapshot struct {
	Tier      string `json:"tier"`
	Used      int    `json:"generations_used"`
	Limit     int    `json:"generations_limit"`
	Remaining int    `json:"generations_remaining"`
}

// NearLimit reports whether usage has reached 80% of the period limit.
// Display only; the server remains the sole enforcement point.
func (u UsageSnapshot) NearLimit() bool {
	if u.Limit <= 0 {
		return false
	}
	return float64(u.Used)/float64(u.Limit) >= 0.8
}

// OverLimit reports whether the period limit is exhausted. Display only.
func (u UsageSnapshot) OverLimit() bool {
	if u.Limit <= 0 {
		return false
	}
	return u.Used >= u.Limit
}

// GenerationResult is the artifact reference returned by a successful
// generation call.
type GenerationResult struct {
	GenerationID string `json:"generation_id"`
	DownloadURL  string `json:"download_url"`
	Text         string `json:"text"`
	Remaining    int    `json:"generations_remaining"`
}

// GenerationRecord is one entry of the generation history.
type GenerationRecord struct {
	ID          string `json:"id"`
	VoiceID     string `json:"voice_id"`
	Text        string `json:"text"`
	DownloadURL string `json:"download_url"`
	CreatedAt   string `json:"created_at"`
}

type voicesResponse struct {
	Voices []VoiceAsset `json:"voices"`
}

type uploadResponse struct {
	VoiceID string `json:"voice_id"`
	Name    string `json:"name"`
}

type generationsResponse struct {
	Generations []GenerationRecord `json:"generations"`
}
