package pdftext

import (
	"bytes"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"
	"github.com/stretchr/testify/require"
)

func TestExtractConcatenatesPagesInOrder(t *testing.T) {
	path := writePDF(t, []testPage{textPage("Alpha"), blankPage(), textPage("Gamma")})
	extractor := NewExtractor(newTestLogger())

	got, err := extractor.Extract(path)
	require.NoError(t, err)
	require.Equal(t, "AlphaGamma", got)

	f, reader, err := pdf.Open(path)
	require.NoError(t, err)
	defer f.Close()
	require.Equal(t, 3, reader.NumPage())
	require.Equal(t, "", extractor.pageText(reader, 2, 3))
}

func TestExtractEmptyContentStream(t *testing.T) {
	path := writePDF(t, []testPage{textPage(""), textPage("Only page with text")})

	got, err := NewExtractor(newTestLogger()).Extract(path)
	require.NoError(t, err)
	require.Equal(t, "Only page with text", got)
}

func TestExtractUndecodablePageCountsAsEmpty(t *testing.T) {
	var logs bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&logs, nil))
	path := writePDF(t, []testPage{textPage("Alpha"), undecodablePage("Beta"), textPage("Gamma")})

	got, err := NewExtractor(logger).Extract(path)
	require.NoError(t, err)
	require.Equal(t, "AlphaGamma", got)
	require.Contains(t, logs.String(), "level=WARN")
	require.Contains(t, logs.String(), "page=2")
}

func TestExtractMissingFile(t *testing.T) {
	_, err := NewExtractor(newTestLogger()).Extract(filepath.Join(t.TempDir(), "missing.pdf"))
	require.Error(t, err)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestExtractRejectsNonPDF(t *testing.T) {
	path := filepath.Join(t.TempDir(), "notes.pdf")
	require.NoError(t, os.WriteFile(path, []byte("plain text, not a pdf"), 0o600))

	_, err := NewExtractor(newTestLogger()).Extract(path)
	require.Error(t, err)
}

func TestSpool(t *testing.T) {
	path, cleanup, err := Spool(strings.NewReader("%PDF-1.4 body"), 64)
	require.NoError(t, err)
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Equal(t, "%PDF-1.4 body", string(data))

	cleanup()
	cleanup()
	_, err = os.Stat(path)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestSpoolTooLarge(t *testing.T) {
	_, cleanup, err := Spool(strings.NewReader(strings.Repeat("x", 65)), 64)
	defer cleanup()
	require.ErrorIs(t, err, ErrTooLarge)

	_, cleanup, err = Spool(strings.NewReader(strings.Repeat("x", 64)), 64)
	defer cleanup()
	require.NoError(t, err)
}

// testPage describes one page of a generated PDF. Pages without contents
// have no /Contents key; a filter name is written into the stream dictionary
// without encoding the stream.
type testPage struct {
	text     string
	contents bool
	filter   string
}

func textPage(s string) testPage        { return testPage{text: s, contents: true} }
func blankPage() testPage               { return testPage{} }
func undecodablePage(s string) testPage { return testPage{text: s, contents: true, filter: "BogusDecode"} }

// writePDF builds a minimal single-font PDF.
func writePDF(t *testing.T, pages []testPage) string {
	t.Helper()

	var (
		buf     bytes.Buffer
		offsets []int
	)
	writeObj := func(body string) int {
		offsets = append(offsets, buf.Len())
		id := len(offsets)
		fmt.Fprintf(&buf, "%d 0 obj\n%s\nendobj\n", id, body)
		return id
	}

	// Object ids are assigned in write order: catalog 1, pages 2, font 3,
	// then one page object followed by its optional content stream.
	pageIDs := make([]int, 0, len(pages))
	next := 4
	for _, p := range pages {
		pageIDs = append(pageIDs, next)
		next++
		if p.contents {
			next++
		}
	}
	kids := make([]string, 0, len(pageIDs))
	for _, id := range pageIDs {
		kids = append(kids, fmt.Sprintf("%d 0 R", id))
	}

	buf.WriteString("%PDF-1.4\n")
	writeObj("<< /Type /Catalog /Pages 2 0 R >>")
	writeObj(fmt.Sprintf("<< /Type /Pages /Kids [%s] /Count %d >>", strings.Join(kids, " "), len(pages)))
	writeObj("<< /Type /Font /Subtype /Type1 /BaseFont /Helvetica /Encoding /WinAnsiEncoding >>")
	for i, p := range pages {
		page := "<< /Type /Page /Parent 2 0 R /MediaBox [0 0 612 792] /Resources << /Font << /F1 3 0 R >> >>"
		if !p.contents {
			writeObj(page + " >>")
			continue
		}
		writeObj(fmt.Sprintf("%s /Contents %d 0 R >>", page, pageIDs[i]+1))
		stream := ""
		if p.text != "" {
			stream = fmt.Sprintf("BT /F1 12 Tf 72 712 Td (%s) Tj ET", p.text)
		}
		dict := fmt.Sprintf("/Length %d", len(stream))
		if p.filter != "" {
			dict += " /Filter /" + p.filter
		}
		writeObj(fmt.Sprintf("<< %s >>\nstream\n%s\nendstream", dict, stream))
	}

	xref := buf.Len()
	fmt.Fprintf(&buf, "xref\n0 %d\n", len(offsets)+1)
	buf.WriteString("0000000000 65535 f \n")
	for _, off := range offsets {
		fmt.Fprintf(&buf, "%010d 00000 n \n", off)
	}
	fmt.Fprintf(&buf, "trailer\n<< /Size %d /Root 1 0 R >>\nstartxref\n%d\n%%%%EOF\n", len(offsets)+1, xref)

	path := filepath.Join(t.TempDir(), "report.pdf")
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func newTestLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}
