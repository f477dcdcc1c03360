// Package genai provides the generative content source for Dripfeed.
package genai

import (
	"context"

	"github.com/deepanshuvermaa/dripfeed/internal/model"
)

// ExplainMode selects the depth of a single-shot explanation.
type ExplainMode string

const (
	ExplainSimple ExplainMode = "simple"
	ExplainDeep   ExplainMode = "deep"
)

// Apology is shown when a single-shot explanation fails. Explanation failures
// never affect queue or mode state.
const Apology = "Sorry, the AI couldn't dive deeper on this topic. It might be too obscure or there was a connection issue. Please try another one."

// Source is the interface for generative content providers.
type Source interface {
	// Name returns the provider name (e.g., "gemini")
	Name() string

	// Available returns true if the provider is configured and ready
	Available() bool

	// Generate produces a single drip tailored to the preferences and region.
	Generate(ctx context.Context, prefs []string, region string) (model.Drip, error)

	// Explain produces a single-shot text explanation of a fact.
	Explain(ctx context.Context, fact string, mode ExplainMode) (string, error)
}
