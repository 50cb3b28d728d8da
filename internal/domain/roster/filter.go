package roster

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// Filter narrows a roster query. Empty values and the "All" sentinels put
// no constraint on their dimension; set dimensions are ANDed.
type Filter struct {
	League      string
	Position    string
	Nationality string
	Type        string
}

var allSentinels = map[string]struct{}{
	"all":           {},
	"all positions": {},
	"all leagues":   {},
	"all types":     {},
}

// Normalized trims each dimension and clears the ones that carry a sentinel.
func (f Filter) Normalized() Filter {
	return Filter{
		League:      constraint(f.League),
		Position:    constraint(f.Position),
		Nationality: constraint(f.Nationality),
		Type:        constraint(f.Type),
	}
}

// Applied echoes the active constraints keyed by their query name.
func (f Filter) Applied() map[string]string {
	n := f.Normalized()
	out := make(map[string]string, 4)
	if n.League != "" {
		out["league"] = n.League
	}
	if n.Position != "" {
		out["position"] = n.Position
	}
	if n.Nationality != "" {
		out["nationality"] = n.Nationality
	}
	if n.Type != "" {
		out["type"] = n.Type
	}
	return out
}

// Match reports whether p satisfies every active constraint of f. Callers
// filtering many players should normalize f once and use Apply.
func (f Filter) Match(p Player) bool {
	return newMatcher(f).match(p)
}

// Apply returns the players matching f, preserving order.
func Apply(players []Player, f Filter) []Player {
	m := newMatcher(f)
	out := make([]Player, 0, len(players))
	for _, p := range players {
		if m.match(p) {
			out = append(out, p)
		}
	}
	return out
}

type matcher struct {
	league      string
	position    string
	nationality string
	kind        string
}

func newMatcher(f Filter) matcher {
	n := f.Normalized()
	return matcher{
		league:      FoldLeague(n.League),
		position:    strings.ToLower(n.Position),
		nationality: strings.ToLower(n.Nationality),
		kind:        strings.ToLower(n.Type),
	}
}

func (m matcher) match(p Player) bool {
	if m.league != "" && FoldLeague(p.League) != m.league {
		return false
	}
	if m.position != "" && !strings.Contains(strings.ToLower(p.Position), m.position) {
		return false
	}
	if m.nationality != "" && !strings.Contains(strings.ToLower(p.Nationality), m.nationality) {
		return false
	}
	if m.kind != "" && strings.ToLower(string(p.Type)) != m.kind {
		return false
	}
	return true
}

func constraint(v string) string {
	v = strings.TrimSpace(v)
	if _, ok := allSentinels[strings.ToLower(v)]; ok {
		return ""
	}
	return v
}

// FoldLeague lower-cases a league name and strips diacritics so "Liga MX
// Femenil" and "Liga MX Feménil" compare equal regardless of how the accent
// was encoded upstream.
func FoldLeague(league string) string {
	league = CleanText(league)
	if league == "" {
		return ""
	}
	t := transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
	folded, _, err := transform.String(t, league)
	if err != nil {
		folded = league
	}
	return strings.ToLower(folded)
}
