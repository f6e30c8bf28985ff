package summarizer

import (
	"context"

	"energyaudit/internal/domain"
)

// Input describes the payload for a summary request.
type Input struct {
	// Text is the plain text extracted from the audit report.
	Text string
	// Language is the language the human-readable fields should be written in.
	Language domain.Language
}

// Summarizer asks a generative model for an audit summary and returns its raw
// text output. Parsing is left to the caller.
type Summarizer interface {
	Summarize(ctx context.Context, input Input) (string, error)
}

// Func adapts a plain function to Summarizer.
type Func func(ctx context.Context, input Input) (string, error)

func (f Func) Summarize(ctx context.Context, input Input) (string, error) {
	return f(ctx, input)
}
