package hierarchy

import "strings"

// Kind labels a node's role in the hierarchy. The set below is what this tool
// creates itself; imported workbooks may carry arbitrary labels, which are
// kept verbatim rather than rejected.
type Kind string

const (
	KindCategory Kind = "category" // top-level chapter
	KindSection  Kind = "section"
	KindTopic    Kind = "topic"
	KindEntry    Kind = "entry" // leaf; the only kind that carries a definition
	KindUnknown  Kind = "unknown"
)

// legacyKinds maps the labels found in the original Arabic workbooks onto the
// canonical kinds. The outline importer of the predecessor tool wrote
// "باب رئيس" at depth zero while the rest of it used "باب رئيسي"; both are
// accepted.
var legacyKinds = map[string]Kind{
	"باب رئيسي": KindCategory,
	"باب رئيس":  KindCategory,
	"فصل":       KindSection,
	"موضوع":     KindTopic,
	"مدخل":      KindEntry,
	"غير معروف": KindUnknown,
}

// ParseKind normalizes a raw kind label. Canonical and legacy labels map to
// their Kind; anything else is kept as-is so that imported data survives a
// round trip unchanged.
func ParseKind(raw string) Kind {
	s := strings.TrimSpace(raw)
	switch Kind(s) {
	case KindCategory, KindSection, KindTopic, KindEntry, KindUnknown:
		return Kind(s)
	}
	if k, ok := legacyKinds[s]; ok {
		return k
	}
	return Kind(s)
}

// Known reports whether the kind is one of the canonical constants.
func (k Kind) Known() bool {
	switch k {
	case KindCategory, KindSection, KindTopic, KindEntry, KindUnknown:
		return true
	}
	return false
}

// IsEntry reports whether the kind denotes a leaf entry. Only entries retain
// an edited definition.
func (k Kind) IsEntry() bool {
	return k == KindEntry
}

// ChildKind returns the kind one level below k, used to infer the kind of a
// node added as a child. Kinds off the ladder default to entry.
func (k Kind) ChildKind() Kind {
	switch k {
	case KindCategory:
		return KindSection
	case KindSection:
		return KindTopic
	case KindTopic:
		return KindEntry
	default:
		return KindEntry
	}
}

// ParentKind returns the kind one level above k. Kinds off the ladder default
// to category.
func (k Kind) ParentKind() Kind {
	switch k {
	case KindEntry:
		return KindTopic
	case KindTopic:
		return KindSection
	case KindSection:
		return KindCategory
	default:
		return KindCategory
	}
}
