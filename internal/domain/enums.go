package domain

type Level string

const (
	LevelNone     Level = ""
	LevelCollege  Level = "CL"
	LevelAdvanced Level = "ADV"
)

type TermLabel string

const (
	TermNone     TermLabel = ""
	TermFullYear TermLabel = "Full year"
	TermTwoTerms TermLabel = "Two terms"
	TermHalf     TermLabel = "Half course"
	TermSingle   TermLabel = "Term"
)

// IsTermLike reports whether courses with this label share a slot in a TermGroup.
func (l TermLabel) IsTermLike() bool {
	return l == TermSingle || l == TermHalf
}

// GroupSize returns the TermGroup size for a term-like label, or 0.
func (l TermLabel) GroupSize() int {
	switch l {
	case TermSingle:
		return 3
	case TermHalf:
		return 2
	default:
		return 0
	}
}

// Tag values attached to canonical courses.
const (
	TagGESC    = "GESC"
	TagPPR     = "PPR"
	TagCL      = "CL"
	TagADV     = "ADV"
	TagYear    = "YEAR"
	TagTwoTerm = "TWO-TERM"
	TagHalf    = "HALF"
	TagTerm    = "TERM"
)

type Year string

const (
	Freshman  Year = "Freshman"
	Sophomore Year = "Sophomore"
	Junior    Year = "Junior"
	Senior    Year = "Senior"
)

// Years lists the planner's year keys in display order.
var Years = []Year{Freshman, Sophomore, Junior, Senior}

// ParseYear matches a year key case-insensitively. Grade numbers 9-12 are
// accepted as aliases.
func ParseYear(s string) (Year, bool) {
	switch normalizeKey(s) {
	case "freshman", "9", "9th":
		return Freshman, true
	case "sophomore", "10", "10th":
		return Sophomore, true
	case "junior", "11", "11th":
		return Junior, true
	case "senior", "12", "12th":
		return Senior, true
	}
	return "", false
}

// Persisted key names in the key-value store.
const (
	KeyPlannerV2    = "plannerV2"
	KeyPlannerV1    = "plannerV1"
	KeyLegacyPlan   = "plan"
	KeyCatalogPrefs = "catalogPrefs"
)

// PlannerVersion is the envelope version written by this build.
const PlannerVersion = 2

// DefaultSlotsPerYear is used when configuration does not override it.
const DefaultSlotsPerYear = 8
