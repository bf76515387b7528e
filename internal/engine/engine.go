// Package engine drives template selection, bill-of-lading scanning, and
// multi-invoice page segmentation for one document at a time. It is the only
// externally callable surface of the extraction core.
package engine

import (
	"context"
	"log/slog"

	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/common"
	"github.com/devhouston/ocrmill/internal/document"
	"github.com/devhouston/ocrmill/internal/template"
	"github.com/devhouston/ocrmill/internal/template/builtin"
)

// Engine processes documents synchronously, one per call. The registry is
// the only shared mutable state; RefreshTemplates may be called between
// documents at any time.
type Engine struct {
	logger   *slog.Logger
	registry *template.Registry
	settings common.Settings
	bol      builtin.BillOfLading
}

func New(registry *template.Registry, settings common.Settings, logger *slog.Logger) *Engine {
	if logger == nil {
		logger = slog.Default()
	}
	return &Engine{logger: logger, registry: registry, settings: settings}
}

// RefreshTemplates rebuilds the template registry. Callers must not have a
// document in flight.
func (e *Engine) RefreshTemplates() {
	e.registry.Refresh()
}

// ProcessDocument converts one document into enriched line items. All
// expected no-match conditions are reported through Result.Status; the error
// return is reserved for unexpected internal faults and cancellation.
func (e *Engine) ProcessDocument(ctx context.Context, doc document.Document) (Result, error) {
	logger := e.logger.With("document", doc.Name)
	result := Result{Document: doc.Name, Items: []LineItem{}}

	if doc.Empty() {
		logger.Warn("engine.empty")
		result.Status = constants.OutcomeEmptyDocument
		return result, nil
	}

	// The bill-of-lading scan runs regardless of template selection: the
	// shipment weight and the invoice items are independent artifacts that
	// share a physical document. First found wins; remaining pages are never
	// consulted.
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		if !e.bol.CanProcess(page.Text) {
			continue
		}
		logger.Info("engine.bol.page", "page", page.Index)
		if w := e.bol.ExtractGrossWeight(page.Text); w != "" {
			logger.Info("engine.bol.weight", "kg", w)
			result.BOLWeight = w
			break
		}
	}

	fullText := doc.FullText()

	selected, ok := SelectTemplate(e.registry.All(), e.settings, fullText, logger)
	if !ok {
		result.Status = constants.OutcomeNoTemplateMatch
		return result, nil
	}
	result.TemplateName = selected.Template.Info().Name
	result.Score = selected.Score

	if selected.Template.IsPackingList(fullText) {
		logger.Info("engine.packinglist")
		result.Status = constants.OutcomePackingList
		return result, nil
	}

	seg := newSegmenter(selected.Template, result.BOLWeight, logger)
	for _, page := range doc.Pages {
		if err := ctx.Err(); err != nil {
			return result, err
		}
		seg.Step(page)
	}
	result.Items = seg.Finish()
	if result.Items == nil {
		result.Items = []LineItem{}
	}
	result.InvoiceCount = len(result.Invoices())

	if len(result.Items) == 0 {
		// Distinct from NoTemplateMatch: the right template ran but the
		// content produced nothing, which operators triage differently.
		logger.Warn("engine.noitems", "template", result.TemplateName)
		result.Status = constants.OutcomeNoItems
		return result, nil
	}

	result.Status = constants.OutcomeProcessed
	logger.Info("engine.ok",
		"template", result.TemplateName,
		"invoices", result.InvoiceCount,
		"items", len(result.Items),
	)
	return result, nil
}
