package template

import "strings"

// NormalizeEuroNumber converts a European-formatted amount to a plain decimal
// string: thousands dots dropped, decimal comma replaced by a point
// ("11.579,04" -> "11579.04", "1.646,70" -> "1646.70").
func NormalizeEuroNumber(s string) string {
	s = strings.TrimSpace(s)
	s = strings.ReplaceAll(s, ".", "")
	s = strings.ReplaceAll(s, ",", ".")
	return s
}

// NormalizeDecimalComma replaces a decimal comma with a point without
// touching dots ("3,00" -> "3.00"). Used for quantities and percentages that
// never carry thousands separators.
func NormalizeDecimalComma(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", ".")
}

// StripThousands removes comma thousands separators from a US-formatted
// amount ("2,177.280" -> "2177.280").
func StripThousands(s string) string {
	return strings.ReplaceAll(strings.TrimSpace(s), ",", "")
}
