// Package template defines the capability contract every supplier-specific
// invoice parser implements, plus the registry that discovers and prioritizes
// the available implementations.
package template

import "github.com/devhouston/ocrmill/constants"

// Unknown is the sentinel returned when no invoice/project pattern matches.
const Unknown = "UNKNOWN"

// RawItem is one extracted invoice line before enrichment: an unordered
// mapping of field name (see constants) to string value.
type RawItem map[string]string

// Clone returns a shallow copy so callers can enrich without aliasing.
func (r RawItem) Clone() RawItem {
	out := make(RawItem, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Key returns the composite deduplication key over the string-normalized
// required fields.
func (r RawItem) Key() string {
	return r[constants.FieldPartNumber] + "_" + r[constants.FieldQuantity] + "_" + r[constants.FieldTotalPrice]
}

// Info carries a template's static metadata.
type Info struct {
	Name         string
	Description  string
	Client       string
	Version      string
	Enabled      bool
	ExtraColumns []string
}

// Template is a supplier-specific parsing strategy. Implementations must be
// stateless with respect to a single document: one instance may be reused
// across documents, and every method is a pure function of its text argument.
// No method may panic on malformed input; absence of a match is represented
// by Unknown or an empty slice, never an error, because the selector and
// segmenter call these methods speculatively on arbitrary text.
type Template interface {
	Info() Info

	// CanProcess is a cheap keyword/structure test.
	CanProcess(text string) bool

	// ConfidenceScore returns a match strength in [0,1]. It must return 0
	// whenever CanProcess(text) is false.
	ConfidenceScore(text string) float64

	ExtractInvoiceNumber(text string) string
	ExtractProjectNumber(text string) string

	// ExtractLineItems tries the template's candidate patterns in fixed
	// priority order and accepts the first family that yields matches.
	ExtractLineItems(text string) []RawItem

	// PostProcessItems deduplicates by the composite item key and may inject
	// template-specific derived fields.
	PostProcessItems(items []RawItem) []RawItem

	// IsPackingList is true only when the text is a packing list and carries
	// no invoice marker.
	IsPackingList(text string) bool
}

// ExtractAll composes the extraction steps: invoice number, project number,
// then line items run through PostProcessItems.
func ExtractAll(t Template, text string) (invoice, project string, items []RawItem) {
	invoice = t.ExtractInvoiceNumber(text)
	project = t.ExtractProjectNumber(text)
	items = t.PostProcessItems(t.ExtractLineItems(text))
	return invoice, project, items
}

// DedupeItems removes repeated extraction matches, keeping first occurrence
// order. Shared by the builtin templates' PostProcessItems implementations.
func DedupeItems(items []RawItem) []RawItem {
	if len(items) == 0 {
		return items
	}
	seen := make(map[string]struct{}, len(items))
	out := make([]RawItem, 0, len(items))
	for _, it := range items {
		key := it.Key()
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, it)
	}
	return out
}
