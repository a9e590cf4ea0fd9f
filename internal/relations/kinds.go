package relations

// Relationship kind tags. Typing is one-to-one (a feature has at most one
// type); the rest recorded during extraction are one-to-many.
const (
	KindTyping              = "typing"
	KindSpecialization      = "specialization"
	KindRedefinition        = "redefinition"
	KindSubsetting          = "subsetting"
	KindReferenceSubsetting = "reference_subsetting"
	KindCrossSubsetting     = "cross_subsetting"
)

// kindLabels maps kind tags to the operator-style labels used in hover text.
var kindLabels = map[string]string{
	KindTyping:              "typed by",
	KindSpecialization:      "specializes",
	KindRedefinition:        "redefines",
	KindSubsetting:          "subsets",
	KindReferenceSubsetting: "references",
	KindCrossSubsetting:     "crosses",
}

// Label returns a human-readable label for a relationship kind. Unknown
// kinds fall back to the tag itself.
func Label(kind string) string {
	if label, ok := kindLabels[kind]; ok {
		return label
	}
	return kind
}
