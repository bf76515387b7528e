package builtin

import "github.com/devhouston/ocrmill/internal/template"

// Ordered returns the compiled-in templates in registration order. This
// order is the selector's tie-break order: on equal confidence scores the
// earlier entry wins, so the sequence below is a contract, not a convenience.
func Ordered() []template.Entry {
	return []template.Entry{
		{Key: "mmcite", Template: Mmcite{}},
		{Key: "smart_shaanxi_template", Template: Shaanxi{}},
		{Key: "vitech_development_limited", Template: Vitech{}},
	}
}

// Source wraps the compiled-in templates as the registry's primary source.
func Source() template.Source {
	return template.NewStaticSource("builtin", Ordered()...)
}
