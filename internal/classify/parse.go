package classify

import "strings"

const (
	classificationMarker = "Classification:"
	explanationMarker    = "Explanation:"
)

// Parse extracts (classification, explanation) from the raw model output.
// The format check succeeds only when both markers are present; otherwise
// the result degrades to Unknown with the fixed explanation and ok is
// false, which also tells the caller to skip the ledger update.
//
// The classification text is used verbatim; it is not validated against
// the canonical label set.
func Parse(raw string) (classification, explanation string, ok bool) {
	if !strings.Contains(raw, classificationMarker) || !strings.Contains(raw, explanationMarker) {
		return VerdictUnknown, DefaultExplanation, false
	}
	// A repeated marker bounds the explanation: only the text between the
	// first and second occurrence is kept.
	parts := strings.Split(raw, explanationMarker)
	classification = strings.TrimSpace(strings.ReplaceAll(parts[0], classificationMarker, ""))
	explanation = strings.TrimSpace(parts[1])
	return classification, explanation, true
}
