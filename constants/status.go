package constants

// Outcome is the canonical per-document result status.
type Outcome string

// Stable values (drivers store these exact strings in result files).
const (
	OutcomeProcessed       Outcome = "PROCESSED"         // items extracted
	OutcomeEmptyDocument   Outcome = "EMPTY_DOCUMENT"    // no extractable text on any page
	OutcomeNoTemplateMatch Outcome = "NO_TEMPLATE_MATCH" // every enabled template scored 0
	OutcomePackingList     Outcome = "PACKING_LIST"      // matched template says packing list only
	OutcomeNoItems         Outcome = "NO_ITEMS"          // template matched but produced zero items
)

// Failed reports whether an outcome should route the source file to the
// failed bucket. Packing lists are an intentional skip, not a failure.
func (o Outcome) Failed() bool {
	switch o {
	case OutcomeEmptyDocument, OutcomeNoTemplateMatch, OutcomeNoItems:
		return true
	}
	return false
}
