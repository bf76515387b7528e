// Package document holds the immutable page-text model the extraction core
// consumes. Text arrives from an external PDF/OCR collaborator; the core
// never touches source media itself.
package document

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Page is one physical page of already-extracted plain text.
type Page struct {
	Index int
	Text  string
}

// Document is an ordered sequence of pages. Immutable input to the core.
type Document struct {
	Name  string
	Pages []Page
}

// New builds a Document from per-page text. Each page is NFC-normalized so
// template keyword matching is stable across OCR engines that emit decomposed
// accents (mmcité and friends).
func New(name string, pageTexts []string) Document {
	pages := make([]Page, 0, len(pageTexts))
	for i, t := range pageTexts {
		pages = append(pages, Page{Index: i, Text: norm.NFC.String(t)})
	}
	return Document{Name: name, Pages: pages}
}

// FullText joins all page texts with newlines, in page order.
func (d Document) FullText() string {
	var b strings.Builder
	for _, p := range d.Pages {
		if p.Text == "" {
			continue
		}
		b.WriteString(p.Text)
		b.WriteString("\n")
	}
	return b.String()
}

// Empty reports whether no page carries extractable text.
func (d Document) Empty() bool {
	for _, p := range d.Pages {
		if strings.TrimSpace(p.Text) != "" {
			return false
		}
	}
	return true
}
