// Package pdf extracts plain text and page counts from uploaded PDF bytes.
package pdf

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Result is the outcome of one extraction: the trimmed concatenation of all
// extractable page text (possibly empty) plus the page count.
type Result struct {
	Text      string
	PageCount int
}

// Extractor turns raw PDF bytes into text. Implementations must not retain
// the input slice.
type Extractor interface {
	Extract(data []byte) (*Result, error)
}

// TextExtractor is the default Extractor backed by ledongthuc/pdf.
type TextExtractor struct{}

func NewExtractor() *TextExtractor {
	return &TextExtractor{}
}

// Extract reads every page of the document and concatenates the text it can
// pull out. Pages without extractable text are skipped, not fatal; a document
// the parser cannot open at all is.
func (e *TextExtractor) Extract(data []byte) (result *Result, err error) {
	// The parser panics on some malformed files.
	defer func() {
		if r := recover(); r != nil {
			result = nil
			err = fmt.Errorf("pdf parser aborted: %v", r)
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return nil, fmt.Errorf("failed to open pdf: %w", err)
	}

	pageCount := reader.NumPage()
	var sb strings.Builder
	for i := 1; i <= pageCount; i++ {
		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(text)
		sb.WriteString("\n\n")
	}

	return &Result{
		Text:      strings.TrimSpace(sb.String()),
		PageCount: pageCount,
	}, nil
}
