// Package studio holds the client-side coordination core: the voice
// registry, the usage tracker, and the generation and upload state
// machines. Everything here is presentation-agnostic; the TUI and the CLI
// commands are thin layers over this package.
package studio

import "fmt"

// MaxTextLength is the server's per-generation text bound. The input
// surface enforces it up front; text is never silently truncated after the
// fact.
const MaxTextLength = 5000

// RemainingChars returns how many characters may still be typed. Never
// negative, even transiently (paste handling clamps back to the limit).
func RemainingChars(text string) int {
	remaining := MaxTextLength - len([]rune(text))
	if remaining < 0 {
		return 0
	}
	return remaining
}

// ClampText bounds pasted input to MaxTextLength. This is the input-surface
// clamp, applied before the text ever reaches a request.
func ClampText(text string) string {
	runes := []rune(text)
	if len(runes) <= MaxTextLength {
		return text
	}
	return string(runes[:MaxTextLength])
}

// ValidationError is a local precondition failure: no selected voice,
// blank text, blank label. It is surfaced synchronously and never reaches
// the network.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation: %s", e.Reason)
}
