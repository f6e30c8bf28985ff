// Package extractor pulls plain text out of uploaded PDF documents.
package extractor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor reads text from PDF documents held in memory or on disk.
type Extractor struct{}

func New() *Extractor {
	return &Extractor{}
}

// Extract concatenates the plain text of every page in page order, without
// separators or page markers.
func (e *Extractor) Extract(ctx context.Context, r io.ReaderAt, size int64) (string, error) {
	if size <= 0 {
		return "", errors.New("document is empty")
	}

	reader, err := pdf.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("open PDF: %w", err)
	}

	var b strings.Builder
	numPages := reader.NumPage()

	for i := 1; i <= numPages; i++ {
		if err = ctx.Err(); err != nil {
			return "", err
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}

		text, textErr := page.GetPlainText(nil)
		if textErr != nil {
			return "", fmt.Errorf("get plain text (page = %d): %w", i, textErr)
		}
		b.WriteString(text)
	}

	return b.String(), nil
}
