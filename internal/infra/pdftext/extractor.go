package pdftext

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/ledongthuc/pdf"
)

// Extractor reads the text layer of PDF files page by page.
type Extractor struct {
	logger *slog.Logger
}

// NewExtractor constructs an Extractor.
func NewExtractor(logger *slog.Logger) *Extractor {
	return &Extractor{logger: logger.With("component", "pdftext.extractor")}
}

// Extract opens the PDF at path and concatenates the text of every page in
// file order, without separators. Pages without extractable text contribute
// an empty string.
func (e *Extractor) Extract(path string) (text string, err error) {
	// ledongthuc/pdf panics on some malformed object graphs.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = fmt.Errorf("parse pdf %s: %v", path, r)
		}
	}()

	f, reader, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("open pdf %s: %w", path, err)
	}
	defer f.Close()

	total := reader.NumPage()
	var builder strings.Builder
	for index := 1; index <= total; index++ {
		builder.WriteString(e.pageText(reader, index, total))
	}
	e.logger.Debug("pdf text extracted", "path", path, "pages", total, "chars", builder.Len())
	return builder.String(), nil
}

// pageText never fails: a page whose text layer cannot be decoded counts as
// empty so the remaining pages are still extracted.
func (e *Extractor) pageText(reader *pdf.Reader, index, total int) (text string) {
	defer func() {
		if r := recover(); r != nil {
			e.logger.Warn("pdf page text unavailable, using empty page", "page", index, "total", total, "error", fmt.Sprint(r))
			text = ""
		}
	}()

	page := reader.Page(index)
	if page.V.IsNull() || page.V.Key("Contents").IsNull() {
		return ""
	}
	text, err := page.GetPlainText(nil)
	if err != nil {
		e.logger.Warn("pdf page text unavailable, using empty page", "page", index, "total", total, "error", err)
		return ""
	}
	return text
}
