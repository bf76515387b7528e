package engine

import (
	"github.com/devhouston/ocrmill/constants"
	"github.com/devhouston/ocrmill/internal/template"
)

// LineItem is a RawItem after enrichment: tagged with invoice_number and
// project_number, and carrying bol_gross_weight when a bill-of-lading weight
// was discovered.
type LineItem = template.RawItem

// Result is the outcome of processing one document. Expected "no match"
// conditions are statuses here, never errors.
type Result struct {
	Document     string             `json:"document"`
	Status       constants.Outcome  `json:"status"`
	TemplateName string             `json:"template_name,omitempty"`
	Score        float64            `json:"score,omitempty"`
	BOLWeight    string             `json:"bol_gross_weight,omitempty"`
	InvoiceCount int                `json:"invoice_count"`
	Items        []LineItem         `json:"items"`
}

// Invoices returns the distinct invoice numbers in item order.
func (r Result) Invoices() []string {
	seen := map[string]struct{}{}
	var out []string
	for _, item := range r.Items {
		inv := item[constants.FieldInvoiceNumber]
		if _, ok := seen[inv]; ok {
			continue
		}
		seen[inv] = struct{}{}
		out = append(out, inv)
	}
	return out
}
