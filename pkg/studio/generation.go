package studio

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"

	"github.com/Sumitkumar005/voiceclone-studio/pkg/api"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/logger"
	"github.com/Sumitkumar005/voiceclone-studio/pkg/utils"
)

// GenerationState is the lifecycle of a single generation request.
type GenerationState int

const (
	GenIdle GenerationState = iota
	GenValidating
	GenInFlight
	GenSucceeded
	GenFailed
)

func (s GenerationState) String() string {
	switch s {
	case GenIdle:
		return "idle"
	case GenValidating:
		return "validating"
	case GenInFlight:
		return "in_flight"
	case GenSucceeded:
		return "succeeded"
	case GenFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// ErrGenerationInFlight is returned when a generation is requested while
// another is still running. The caller should wait, not queue.
var ErrGenerationInFlight = errors.New("a generation is already in flight")

// GenerationOrchestrator runs the generate workflow: validate locally,
// send the request, record the outcome. At most one request is in flight
// at a time. There are no automatic retries; a failure is terminal until
// the user acts again.
type GenerationOrchestrator struct {
	backend  Backend
	registry *VoiceRegistry
	usage    *UsageTracker

	mu     sync.Mutex
	state  GenerationState
	result *api.GenerationResult
	err    error
}

func NewGenerationOrchestrator(backend Backend, registry *VoiceRegistry, usage *UsageTracker) *GenerationOrchestrator {
	return &GenerationOrchestrator{
		backend:  backend,
		registry: registry,
		usage:    usage,
	}
}

// Generate validates the inputs and performs one synchronous generation.
// Validation failures never touch the network. Quota is not checked
// locally; an over-quota request goes to the server, which answers with
// an explanation worth showing verbatim.
func (g *GenerationOrchestrator) Generate(ctx context.Context, text string) (*api.GenerationResult, error) {
	g.mu.Lock()
	if g.state == GenInFlight || g.state == GenValidating {
		g.mu.Unlock()
		return nil, ErrGenerationInFlight
	}
	// A new request discards the previous outcome.
	g.state = GenValidating
	g.result = nil
	g.err = nil
	g.mu.Unlock()

	// A guard-condition violation is not a failed generation: the state
	// machine returns to idle and the error surfaces to the caller.
	voiceID := g.registry.ActiveID()
	if verr := validateGenerationInput(voiceID, text); verr != nil {
		g.setOutcome(GenIdle, nil, verr)
		return nil, verr
	}
	if !g.registry.Has(voiceID) {
		verr := &ValidationError{Reason: "selected voice no longer exists"}
		g.setOutcome(GenIdle, nil, verr)
		return nil, verr
	}

	g.mu.Lock()
	g.state = GenInFlight
	g.mu.Unlock()

	actionID := uuid.New().String()
	logger.InfoCF("studio", "Generation started", map[string]any{
		"action_id": actionID,
		"voice_id":  voiceID,
		"text_len":  len([]rune(text)),
		"preview":   utils.Truncate(text, 48),
	})

	result, err := g.backend.Generate(ctx, voiceID, text)
	if err != nil {
		logger.ErrorCF("studio", "Generation failed", map[string]any{
			"action_id": actionID,
			"error":     err.Error(),
		})
		g.setOutcome(GenFailed, nil, err)
		return nil, err
	}

	g.setOutcome(GenSucceeded, &result, nil)
	logger.InfoCF("studio", "Generation succeeded", map[string]any{
		"action_id":     actionID,
		"generation_id": result.GenerationID,
		"remaining":     result.Remaining,
	})

	// The result carries the fresh remaining count; fold it into the
	// cached usage, then reconcile against the server.
	g.usage.Apply(result)
	if rerr := g.usage.Refresh(ctx); rerr != nil {
		// A stale counter does not invalidate a finished generation.
		logger.WarnCF("studio", "Usage refresh after generation failed", map[string]any{
			"action_id": actionID,
			"error":     rerr.Error(),
		})
	}
	return &result, nil
}

// State returns the current lifecycle state.
func (g *GenerationOrchestrator) State() GenerationState {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.state
}

// Last returns the most recent outcome: the result when the last run
// succeeded, or the error when it failed.
func (g *GenerationOrchestrator) Last() (*api.GenerationResult, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.result, g.err
}

// Reset returns the orchestrator to idle, clearing the last outcome. It
// is a no-op while a request is in flight.
func (g *GenerationOrchestrator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.state == GenInFlight || g.state == GenValidating {
		return
	}
	g.state = GenIdle
	g.result = nil
	g.err = nil
}

func (g *GenerationOrchestrator) setOutcome(state GenerationState, result *api.GenerationResult, err error) {
	g.mu.Lock()
	g.state = state
	g.result = result
	g.err = err
	g.mu.Unlock()
}

func validateGenerationInput(voiceID, text string) *ValidationError {
	if voiceID == "" {
		return &ValidationError{Reason: "no voice selected"}
	}
	if strings.TrimSpace(text) == "" {
		return &ValidationError{Reason: "text is empty"}
	}
	if len([]rune(text)) > MaxTextLength {
		return &ValidationError{Reason: "text exceeds the 5000 character limit"}
	}
	return nil
}
