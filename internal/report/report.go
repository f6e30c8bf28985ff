// Package report lays out an audit summary as a single-page PDF.
package report

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"

	"energyaudit/internal/domain"
)

const (
	Filename    = "energy_audit_report.pdf"
	ContentType = "application/pdf"

	Title         = "Energy Audit Summary Report"
	SectionHeader = "Areas Needing Attention:"

	marginLeft    = 40.0
	titleY        = 40.0
	titleGap      = 30.0
	summaryGap    = 40.0
	headerGap     = 20.0
	attentionGap  = 15.0
	fontFamily    = "Helvetica"
	styleBold     = "B"
	styleRegular  = ""
	titleSize     = 14.0
	summarySize   = 11.0
	headerSize    = 12.0
	attentionSize = 10.0
	pageSize      = "A4"
	unit          = "pt"
	orientation   = "P"
	codePage      = "cp1252"
)

var (
	ErrInvalidJSON    = errors.New("invalid JSON body")
	ErrMissingField   = errors.New("missing field")
	ErrMalformedField = errors.New("malformed field")
)

// documentDate is written as both creation and modification date so that
// identical input renders to identical bytes.
var documentDate = time.Date(2000, time.January, 1, 0, 0, 0, 0, time.UTC)

// Line is one positioned text run of the report.
type Line struct {
	Text  string
	Style string
	Size  float64
	X     float64
	Y     float64
}

// Layout positions the report lines on the page. Y grows downwards from the
// top edge. Long lines are not wrapped and items are not paginated.
func Layout(s domain.AuditSummary) []Line {
	lines := make([]Line, 0, len(s.Attention)+3)
	y := titleY

	lines = append(lines, Line{Text: Title, Style: styleBold, Size: titleSize, X: marginLeft, Y: y})
	y += titleGap

	lines = append(lines, Line{Text: s.Summary, Style: styleRegular, Size: summarySize, X: marginLeft, Y: y})
	y += summaryGap

	lines = append(lines, Line{Text: SectionHeader, Style: styleBold, Size: headerSize, X: marginLeft, Y: y})
	y += headerGap

	for _, a := range s.Attention {
		lines = append(lines, Line{
			Text:  AttentionLine(a),
			Style: styleRegular,
			Size:  attentionSize,
			X:     marginLeft,
			Y:     y,
		})
		y += attentionGap
	}

	return lines
}

// AttentionLine formats an attention item as "- area (priority): issue".
func AttentionLine(a domain.AttentionItem) string {
	return fmt.Sprintf("- %s (%s): %s", a.Area, a.Priority, a.Issue)
}

// Render writes the one-page PDF for s to w.
func Render(w io.Writer, s domain.AuditSummary) error {
	doc := fpdf.New(orientation, unit, pageSize, "")
	doc.SetCompression(false)
	doc.SetCatalogSort(true)
	doc.SetCreationDate(documentDate)
	doc.SetModificationDate(documentDate)
	doc.SetTitle(Title, true)
	doc.SetAutoPageBreak(false, 0)
	doc.AddPage()

	// Runes outside cp1252 come out as "." since the core fonts cannot show them.
	tr := doc.UnicodeTranslatorFromDescriptor(codePage)
	for _, line := range Layout(s) {
		doc.SetFont(fontFamily, line.Style, line.Size)
		doc.Text(line.X, line.Y, tr(line.Text))
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("output PDF: %w", err)
	}

	return nil
}

// RenderBytes is Render into a fresh buffer.
func RenderBytes(s domain.AuditSummary) ([]byte, error) {
	var buf bytes.Buffer
	if err := Render(&buf, s); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// Decode reads a report request. The summary and attention keys are required,
// and so are all three fields of every attention item. The graph is not
// part of the report and is ignored.
//
// Field values need not be strings: numbers keep their JSON spelling,
// booleans render as True/False and null as None, the way the report was
// always formatted. Anything after the JSON value is rejected.
func Decode(r io.Reader) (domain.AuditSummary, error) {
	dec := json.NewDecoder(r)

	var body json.RawMessage
	if err := dec.Decode(&body); err != nil {
		return domain.AuditSummary{}, fmt.Errorf("%w: %w", ErrInvalidJSON, err)
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return domain.AuditSummary{}, fmt.Errorf("%w: trailing data after JSON value", ErrInvalidJSON)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return domain.AuditSummary{}, fmt.Errorf("%w: body is not an object: %w", ErrMalformedField, err)
	}

	summary, ok := fields["summary"]
	if !ok {
		return domain.AuditSummary{}, fmt.Errorf("%w: summary", ErrMissingField)
	}

	attentionRaw, ok := fields["attention"]
	if !ok {
		return domain.AuditSummary{}, fmt.Errorf("%w: attention", ErrMissingField)
	}

	var attention []json.RawMessage
	if isNull(attentionRaw) {
		return domain.AuditSummary{}, fmt.Errorf("%w: attention is null", ErrMalformedField)
	}
	if err := json.Unmarshal(attentionRaw, &attention); err != nil {
		return domain.AuditSummary{}, fmt.Errorf("%w: attention is not a list: %w", ErrMalformedField, err)
	}

	items := make([]domain.AttentionItem, 0, len(attention))
	for i, raw := range attention {
		var item map[string]json.RawMessage
		if isNull(raw) {
			return domain.AuditSummary{}, fmt.Errorf("%w: attention[%d] is null", ErrMalformedField, i)
		}
		if err := json.Unmarshal(raw, &item); err != nil {
			return domain.AuditSummary{}, fmt.Errorf("%w: attention[%d] is not an object: %w", ErrMalformedField, i, err)
		}

		values := make(map[string]string, len(attentionKeys))
		for _, key := range attentionKeys {
			v, found := item[key]
			if !found {
				return domain.AuditSummary{}, fmt.Errorf("%w: attention[%d].%s", ErrMissingField, i, key)
			}
			values[key] = formatValue(v)
		}

		items = append(items, domain.AttentionItem{
			Area:     values["area"],
			Issue:    values["issue"],
			Priority: domain.Priority(values["priority"]),
		})
	}

	return domain.AuditSummary{
		Summary:   formatValue(summary),
		Attention: items,
	}, nil
}

var attentionKeys = []string{"area", "issue", "priority"}

func isNull(raw json.RawMessage) bool {
	return bytes.Equal(bytes.TrimSpace(raw), []byte("null"))
}

// formatValue renders a JSON value as report text. Strings are used as is;
// objects and arrays keep their compact JSON form.
func formatValue(raw json.RawMessage) string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var v any
	if err := dec.Decode(&v); err != nil {
		return string(raw)
	}

	switch t := v.(type) {
	case string:
		return t
	case json.Number:
		return t.String()
	case bool:
		if t {
			return "True"
		}
		return "False"
	case nil:
		return "None"
	default:
		var b bytes.Buffer
		if err := json.Compact(&b, raw); err != nil {
			return string(raw)
		}
		return b.String()
	}
}
