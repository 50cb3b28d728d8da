package roster

import (
	"strings"
	"unicode"
)

// MatchTier ranks how confidently two names refer to the same person.
// Higher is stronger.
type MatchTier int

const (
	MatchNone MatchTier = iota
	// MatchInitial: same last name and one first name is the other's initial.
	MatchInitial
	// MatchSubstring: one full name contains the other.
	MatchSubstring
	// MatchFirstLast: first and last tokens are equal.
	MatchFirstLast
	// MatchReordered: equal once "Last, First" is read as "First Last".
	MatchReordered
	MatchExact
)

// minSubstringLen keeps single letters and short fragments from matching
// every name on a page.
const minSubstringLen = 4

func (t MatchTier) String() string {
	switch t {
	case MatchInitial:
		return "initial"
	case MatchSubstring:
		return "substring"
	case MatchFirstLast:
		return "first_last"
	case MatchReordered:
		return "reordered"
	case MatchExact:
		return "exact"
	default:
		return "none"
	}
}

// MatchName compares two display names ignoring case and punctuation.
func MatchName(a, b string) MatchTier {
	plainA, plainB := simplifyName(a), simplifyName(b)
	if plainA == "" || plainB == "" {
		return MatchNone
	}
	if plainA == plainB {
		return MatchExact
	}

	orderedA, orderedB := simplifyName(reorderName(a)), simplifyName(reorderName(b))
	if orderedA == orderedB {
		return MatchReordered
	}

	tokensA, tokensB := strings.Fields(orderedA), strings.Fields(orderedB)
	if len(tokensA) >= 2 && len(tokensB) >= 2 &&
		tokensA[0] == tokensB[0] && tokensA[len(tokensA)-1] == tokensB[len(tokensB)-1] {
		return MatchFirstLast
	}

	shorter, longer := orderedA, orderedB
	if len(shorter) > len(longer) {
		shorter, longer = longer, shorter
	}
	if len(shorter) >= minSubstringLen && strings.Contains(longer, shorter) {
		return MatchSubstring
	}

	if len(tokensA) >= 2 && len(tokensB) >= 2 &&
		tokensA[len(tokensA)-1] == tokensB[len(tokensB)-1] &&
		initialOf(tokensA[0], tokensB[0]) {
		return MatchInitial
	}

	return MatchNone
}

func initialOf(a, b string) bool {
	ra, rb := []rune(a), []rune(b)
	if len(ra) == 0 || len(rb) == 0 {
		return false
	}
	if len(ra) != 1 && len(rb) != 1 {
		return false
	}
	return ra[0] == rb[0]
}

// reorderName turns "Garcia, Jose" into "Jose Garcia". Names with more than
// one comma are left alone.
func reorderName(name string) string {
	parts := strings.Split(name, ",")
	if len(parts) != 2 {
		return name
	}
	last, first := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])
	if last == "" || first == "" {
		return name
	}
	return first + " " + last
}

func simplifyName(name string) string {
	var b strings.Builder
	b.Grow(len(name))
	for _, r := range strings.ToLower(CleanText(name)) {
		switch {
		case unicode.IsLetter(r), unicode.IsDigit(r), r == '_':
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
	}
	return strings.Join(strings.Fields(b.String()), " ")
}
