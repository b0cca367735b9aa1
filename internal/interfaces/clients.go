// Package interfaces defines service contracts for the scenario advisor
package interfaces

import "context"

// TextGenerator is the external text-generation collaborator. The
// engine owns retries; implementations perform a single attempt and
// surface network/quota failures as errors (marked transient via
// common.MarkTransient when retryable).
type TextGenerator interface {
	// Generate produces text for the given prompt.
	Generate(ctx context.Context, prompt string) (string, error)
}
