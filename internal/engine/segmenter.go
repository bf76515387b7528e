package engine

import (
	"log/slog"
	"regexp"
	"strings"

	"github.com/devhouston/ocrmill/internal/document"
	"github.com/devhouston/ocrmill/internal/template"
)

// Page-level invoice/project token patterns. These are format markers common
// across the supported supplier families, deliberately independent of the
// selected template: some formats repeat the invoice number on every page
// (good for segmentation) while others state it once per logical invoice and
// rely on the template to recover it from the buffered blob.
var (
	segInvoiceRe = regexp.MustCompile(`(?:Proforma\s+)?[Ii]nvoice\s+(?:[Nn]umber|[Nn]o|[Nn])\.?\s*:?\s*([A-Z0-9][A-Z0-9/-]+)`)
	segProjectRe = regexp.MustCompile(`(?:\d+\.\s*)?[Pp]roject\s*(?:[Nn]\.?)?\s*:?\s*(US\d+[A-Z]\d+)`)
)

// segmenter is the page-by-page multi-invoice state machine. Pages buffer
// until a different invoice-number token appears; the buffer then flushes
// through the selected template and items are tagged with the previous
// segment's tokens.
type segmenter struct {
	tmpl      template.Template
	bolWeight string
	logger    *slog.Logger

	currentInvoice string
	currentProject string
	buffer         []string
	items          []LineItem
}

func newSegmenter(tmpl template.Template, bolWeight string, logger *slog.Logger) *segmenter {
	return &segmenter{tmpl: tmpl, bolWeight: bolWeight, logger: logger}
}

// Step consumes one page.
func (s *segmenter) Step(page document.Page) {
	text := page.Text
	if strings.TrimSpace(text) == "" {
		return
	}

	// Packing-list-only and bill-of-lading pages contribute no line-item text.
	lower := strings.ToLower(text)
	if strings.Contains(lower, "packing list") && !strings.Contains(lower, "invoice") {
		s.logger.Debug("segmenter.page.skipped", "page", page.Index, "reason", "packing list")
		return
	}
	if strings.Contains(lower, "bill of lading") {
		s.logger.Debug("segmenter.page.skipped", "page", page.Index, "reason", "bill of lading")
		return
	}

	var newInvoice, newProject string
	if m := segInvoiceRe.FindStringSubmatch(text); m != nil {
		newInvoice = m[1]
	}
	if m := segProjectRe.FindStringSubmatch(text); m != nil {
		newProject = strings.ToUpper(m[1])
	}

	// A different invoice token closes the current segment: flush the buffer
	// under the previous tokens before this page joins a fresh accumulation.
	if newInvoice != "" && s.currentInvoice != "" && newInvoice != s.currentInvoice {
		s.flush()
	}

	if newInvoice != "" {
		s.currentInvoice = newInvoice
	}
	if newProject != "" {
		s.currentProject = newProject
	}

	s.buffer = append(s.buffer, text)
}

// Finish flushes any remaining buffered pages and returns all items in page
// order.
func (s *segmenter) Finish() []LineItem {
	s.flush()
	return s.items
}

func (s *segmenter) flush() {
	if len(s.buffer) == 0 {
		return
	}
	blob := strings.Join(s.buffer, "\n")
	s.buffer = nil

	derivedInvoice, derivedProject, items := template.ExtractAll(s.tmpl, blob)

	// Fallback order: segmenter-tracked token, template-derived token, UNKNOWN.
	invoice := s.currentInvoice
	if invoice == "" {
		invoice = derivedInvoice
	}
	if invoice == "" {
		invoice = template.Unknown
	}
	project := s.currentProject
	if project == "" {
		project = derivedProject
	}
	if project == "" {
		project = template.Unknown
	}

	s.logger.Info("segmenter.flush", "invoice", invoice, "project", project, "items", len(items))
	s.items = append(s.items, enrichItems(items, invoice, project, s.bolWeight)...)
}
