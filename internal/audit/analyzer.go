// Package audit turns extracted report text into an audit summary by way of
// the summarization model.
package audit

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"energyaudit/internal/domain"
	"energyaudit/internal/metrics"
	"energyaudit/internal/summarizer"
)

const (
	OutcomeParsed   = "parsed"
	OutcomeFallback = "fallback"
	OutcomeError    = "error"
)

var fenceReplacer = strings.NewReplacer("```json", "", "```", "")

// Result is the summary returned to the client. JSON holds the exact bytes to
// send: the model output when it parsed, the marshalled fallback otherwise.
type Result struct {
	JSON     json.RawMessage
	Fallback bool
}

type Analyzer struct {
	summarizer summarizer.Summarizer
	metrics    *metrics.Metrics
	log        *slog.Logger
}

func NewAnalyzer(s summarizer.Summarizer, m *metrics.Metrics, log *slog.Logger) *Analyzer {
	return &Analyzer{
		summarizer: s,
		metrics:    m,
		log:        log,
	}
}

// Analyze asks the model for a summary of text. Output that is not valid JSON
// is replaced by domain.FallbackSummary; a failed model call is returned as an
// error and never falls back.
func (a *Analyzer) Analyze(
	ctx context.Context,
	text string,
	language domain.Language,
) (Result, error) {
	if a.summarizer == nil {
		a.metrics.IncrementSummaryOutcome(OutcomeError)
		return Result{}, errors.New("summarizer is not configured")
	}

	raw, err := a.summarizer.Summarize(ctx, summarizer.Input{
		Text:     text,
		Language: language,
	})
	if err != nil {
		a.metrics.IncrementSummaryOutcome(OutcomeError)
		return Result{}, fmt.Errorf("summarize: %w", err)
	}

	cleaned := CleanOutput(raw)
	if cleaned != "" && json.Valid([]byte(cleaned)) {
		a.metrics.IncrementSummaryOutcome(OutcomeParsed)
		return Result{JSON: json.RawMessage(cleaned)}, nil
	}

	a.log.WarnContext(ctx, "Model output is not valid JSON so fallback is used",
		"outputLength", len(raw),
		"language", string(language))

	fallback, err := json.Marshal(domain.FallbackSummary())
	if err != nil {
		a.metrics.IncrementSummaryOutcome(OutcomeError)
		return Result{}, fmt.Errorf("marshal fallback: %w", err)
	}

	a.metrics.IncrementSummaryOutcome(OutcomeFallback)

	return Result{JSON: fallback, Fallback: true}, nil
}

// CleanOutput strips Markdown code-fence markers and surrounding whitespace.
func CleanOutput(raw string) string {
	return strings.TrimSpace(fenceReplacer.Replace(strings.TrimSpace(raw)))
}
