package report_test

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"energyaudit/internal/domain"
	"energyaudit/internal/report"
)

func sampleSummary() domain.AuditSummary {
	return domain.AuditSummary{
		Summary: "S",
		Attention: []domain.AttentionItem{
			{Area: "A", Issue: "I", Priority: domain.PriorityHigh},
		},
	}
}

func TestLayout(t *testing.T) {
	s := sampleSummary()
	s.Attention = append(s.Attention, domain.AttentionItem{Area: "B", Issue: "J", Priority: domain.PriorityLow})

	got := report.Layout(s)

	want := []report.Line{
		{Text: "Energy Audit Summary Report", Style: "B", Size: 14, X: 40, Y: 40},
		{Text: "S", Style: "", Size: 11, X: 40, Y: 70},
		{Text: "Areas Needing Attention:", Style: "B", Size: 12, X: 40, Y: 110},
		{Text: "- A (High): I", Style: "", Size: 10, X: 40, Y: 130},
		{Text: "- B (Low): J", Style: "", Size: 10, X: 40, Y: 145},
	}
	assert.Equal(t, want, got)
}

func TestLayoutDoesNotPaginate(t *testing.T) {
	s := domain.AuditSummary{Summary: "S"}
	for range 60 {
		s.Attention = append(s.Attention, domain.AttentionItem{Area: "A", Issue: "I", Priority: domain.PriorityMedium})
	}

	lines := report.Layout(s)

	require.Len(t, lines, 63)
	assert.InDelta(t, 130+59*15, lines[len(lines)-1].Y, 0)
}

func TestRenderContainsReportText(t *testing.T) {
	out, err := report.RenderBytes(sampleSummary())
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "(Energy Audit Summary Report) Tj")
	assert.Contains(t, string(out), "(S) Tj")
	assert.Contains(t, string(out), "(Areas Needing Attention:) Tj")
	// Parentheses are escaped inside PDF string literals.
	assert.Contains(t, string(out), `(- A \(High\): I) Tj`)
	assert.Equal(t, 1, strings.Count(string(out), "/Type /Page\n"))
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := report.RenderBytes(sampleSummary())
	require.NoError(t, err)

	second, err := report.RenderBytes(sampleSummary())
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestRenderLongSummaryStaysOnOnePage(t *testing.T) {
	s := sampleSummary()
	s.Summary = strings.Repeat("very long summary ", 200)
	for range 80 {
		s.Attention = append(s.Attention, domain.AttentionItem{Area: "A", Issue: "I", Priority: domain.PriorityLow})
	}

	out, err := report.RenderBytes(s)
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(string(out), "/Type /Page\n"))
}

func TestDecode(t *testing.T) {
	body := `{"summary":"S","attention":[{"area":"A","issue":"I","priority":"High"}],"graph":{"HVAC":40}}`

	got, err := report.Decode(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, sampleSummary(), got)
}

func TestDecodeEmptyAttention(t *testing.T) {
	got, err := report.Decode(strings.NewReader(`{"summary":"","attention":[]}`))
	require.NoError(t, err)

	assert.Empty(t, got.Summary)
	assert.Empty(t, got.Attention)
}

func TestDecodeTrailingWhitespace(t *testing.T) {
	got, err := report.Decode(strings.NewReader("{\"summary\":\"S\",\"attention\":[]}\n\t "))
	require.NoError(t, err)

	assert.Equal(t, "S", got.Summary)
}

func TestDecodeFormatsScalars(t *testing.T) {
	body := `{"summary":42,"attention":[
		{"area":"A","issue":"I","priority":3},
		{"area":true,"issue":false,"priority":null},
		{"area":1.50,"issue":{"k": [1, 2]},"priority":"Low"}
	]}`

	got, err := report.Decode(strings.NewReader(body))
	require.NoError(t, err)

	assert.Equal(t, "42", got.Summary)
	assert.Equal(t, []domain.AttentionItem{
		{Area: "A", Issue: "I", Priority: "3"},
		{Area: "True", Issue: "False", Priority: "None"},
		{Area: "1.50", Issue: `{"k":[1,2]}`, Priority: domain.PriorityLow},
	}, got.Attention)
}

func TestDecodeErrors(t *testing.T) {
	cases := []struct {
		name string
		body string
		want error
	}{
		{name: "not JSON", body: `not json`, want: report.ErrInvalidJSON},
		{name: "empty body", body: ``, want: report.ErrInvalidJSON},
		{name: "missing summary", body: `{"attention":[]}`, want: report.ErrMissingField},
		{name: "missing attention", body: `{"summary":"S"}`, want: report.ErrMissingField},
		{name: "trailing garbage", body: `{"summary":"S","attention":[]} trailing-garbage`, want: report.ErrInvalidJSON},
		{name: "second value", body: `{"summary":"S","attention":[]}{}`, want: report.ErrInvalidJSON},
		{name: "not an object", body: `[]`, want: report.ErrMalformedField},
		{name: "null attention", body: `{"summary":"S","attention":null}`, want: report.ErrMalformedField},
		{name: "attention object", body: `{"summary":"S","attention":{}}`, want: report.ErrMalformedField},
		{name: "null item", body: `{"summary":"S","attention":[null]}`, want: report.ErrMalformedField},
		{name: "string item", body: `{"summary":"S","attention":["A"]}`, want: report.ErrMalformedField},
		{name: "missing area", body: `{"summary":"S","attention":[{"issue":"I","priority":"High"}]}`, want: report.ErrMissingField},
		{name: "missing issue", body: `{"summary":"S","attention":[{"area":"A","priority":"High"}]}`, want: report.ErrMissingField},
		{name: "missing priority", body: `{"summary":"S","attention":[{"area":"A","issue":"I"}]}`, want: report.ErrMissingField},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := report.Decode(strings.NewReader(tc.body))
			require.Error(t, err)
			assert.True(t, errors.Is(err, tc.want), "got %v", err)
		})
	}
}

func TestRenderReplacesRunesOutsideCodePage(t *testing.T) {
	s := sampleSummary()
	s.Summary = "ऊर्जा"

	out, err := report.RenderBytes(s)
	require.NoError(t, err)

	assert.Contains(t, string(out), "(.....) Tj")
}
