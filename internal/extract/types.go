package extract

import "strings"

// Kind selects the rule set used to extract an artifact.
type Kind string

const (
	KindSkill    Kind = "skill"
	KindDocument Kind = "document"
)

// ParseKind maps user input (singular or plural) to a Kind.
func ParseKind(s string) (Kind, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "skill", "skills":
		return KindSkill, true
	case "document", "documents", "doc", "docs":
		return KindDocument, true
	default:
		return "", false
	}
}

// Categories assigned to records.
const (
	CategoryUtility           = "utility"
	CategoryDevelopment       = "development"
	CategorySystem            = "system"
	CategoryCoreDocumentation = "core-documentation"
)

// Sentinel values substituted when extraction finds nothing usable.
const (
	FallbackSkillTitle          = "unknown"
	FallbackSkillDescription    = "no description"
	FallbackDocumentDescription = "document content"
)

const (
	// DefaultDescriptionCap is the cap used by the consolidated builder.
	DefaultDescriptionCap = 200
	// LegacyDescriptionCap is the shorter cap older collections were built with.
	LegacyDescriptionCap = 100
	// MaxKeywords bounds the keyword set of every record.
	MaxKeywords = 10
)

// Record is the normalized metadata of one artifact. The index keeps only
// this, never the artifact content.
type Record struct {
	Kind        Kind
	Title       string
	Description string
	Keywords    []string
	Category    string
	Path        string
	ContentHash string
}

// HasFallbackTitle reports whether no name could be discovered for a skill.
func (r *Record) HasFallbackTitle() bool {
	return r.Kind == KindSkill && r.Title == FallbackSkillTitle
}

// Options tunes extraction.
type Options struct {
	// DescriptionCap is the maximum description length in runes.
	// Zero means DefaultDescriptionCap.
	DescriptionCap int
}

func (o Options) descriptionCap() int {
	if o.DescriptionCap <= 0 {
		return DefaultDescriptionCap
	}
	return o.DescriptionCap
}
