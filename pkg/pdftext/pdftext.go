// Package pdftext extracts plain text from rulebook PDFs so the full
// official wording can be read or grepped offline.
package pdftext

import (
	"bytes"
	"fmt"
	"regexp"
	"strings"

	"github.com/ledongthuc/pdf"
)

var (
	spacePattern   = regexp.MustCompile(`[ \t]+`)
	paraSepPattern = regexp.MustCompile(`\n\s*\n+`)
)

// ExtractText returns the plain text of the PDF at filePath.
func ExtractText(filePath string) (string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return "", fmt.Errorf("pdftext: open %s: %w", filePath, err)
	}
	defer f.Close()

	b, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("pdftext: extract text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(b); err != nil {
		return "", fmt.Errorf("pdftext: read text: %w", err)
	}
	return buf.String(), nil
}

// ExtractPages returns the plain text of each page separately, so callers
// can cite a page number alongside quoted rule text.
func ExtractPages(filePath string) ([]string, error) {
	f, r, err := pdf.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("pdftext: open %s: %w", filePath, err)
	}
	defer f.Close()

	pages := make([]string, 0, r.NumPage())
	for i := 1; i <= r.NumPage(); i++ {
		page := r.Page(i)
		if page.V.IsNull() {
			pages = append(pages, "")
			continue
		}
		text, err := page.GetPlainText(nil)
		if err != nil {
			return nil, fmt.Errorf("pdftext: extract page %d: %w", i, err)
		}
		pages = append(pages, text)
	}
	return pages, nil
}

// Normalize collapses runs of spaces and tabs and reduces blank-line runs
// to single paragraph breaks. PDF extraction tends to produce both.
func Normalize(text string) string {
	text = spacePattern.ReplaceAllString(text, " ")
	text = paraSepPattern.ReplaceAllString(text, "\n\n")
	lines := strings.Split(text, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}
