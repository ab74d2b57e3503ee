// Package pdf reads the reference document that grounds question generation.
package pdf

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"quiz-practice/internal/domain"
	"quiz-practice/internal/logger"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// Extractor pulls the plain-text layer out of a PDF.
type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract returns the text of every page joined by newlines. Pages whose
// text cannot be decoded are skipped; a document with no text at all is an
// extraction error.
func (e *Extractor) Extract(ctx context.Context, data []byte) (text string, err error) {
	if !looksLikePDF(data) {
		return "", domain.NewExtractionError("not a PDF document", nil)
	}

	// The reader panics on some malformed cross-reference tables.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.NewExtractionError("failed to parse PDF", fmt.Errorf("%v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		return "", domain.NewExtractionError("failed to open PDF", err)
	}

	var sb strings.Builder
	pageCount := reader.NumPage()
	for i := 1; i <= pageCount; i++ {
		if err := ctx.Err(); err != nil {
			return "", domain.NewExtractionError("extraction cancelled", err)
		}

		page := reader.Page(i)
		if page.V.IsNull() {
			continue
		}
		pageText, err := page.GetPlainText(nil)
		if err != nil {
			logger.Get().Debug("Skipping page without decodable text", zap.Int("page", i), zap.Error(err))
			continue
		}
		pageText = strings.TrimSpace(pageText)
		if pageText == "" {
			continue
		}
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}
		sb.WriteString(pageText)
	}

	if sb.Len() == 0 {
		return "", domain.NewExtractionError("PDF has no extractable text layer", nil)
	}
	return sb.String(), nil
}

func looksLikePDF(data []byte) bool {
	return bytes.HasPrefix(data, []byte("%PDF-"))
}
