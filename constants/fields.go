package constants

// Canonical line-item field keys. Templates emit these exact strings so the
// normalizer and downstream exporters can key on them without translation.
const (
	FieldPartNumber    = "part_number"
	FieldQuantity      = "quantity"
	FieldTotalPrice    = "total_price"
	FieldUnitPrice     = "unit_price"
	FieldDescription   = "description"
	FieldInvoiceNumber = "invoice_number"
	FieldProjectNumber = "project_number"
	FieldPONumber      = "po_number"
	FieldPackages      = "packages"
	FieldHTSCode       = "hts_code"
	FieldCountryOrigin = "country_origin"
	FieldNetWeight     = "net_weight"
	FieldGrossWeight   = "gross_weight"
	FieldDimensions    = "dimensions"
	FieldBOLGrossWt    = "bol_gross_weight"

	FieldSteelPct      = "steel_pct"
	FieldSteelKg       = "steel_kg"
	FieldSteelValue    = "steel_value"
	FieldAluminumPct   = "aluminum_pct"
	FieldAluminumKg    = "aluminum_kg"
	FieldAluminumValue = "aluminum_value"
)
