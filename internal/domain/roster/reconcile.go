package roster

import "strings"

// BestDetail picks the roster-page row for p: an exact name match on the same
// team first, otherwise the strongest fuzzy tier. Ties go to the earliest row.
func BestDetail(p Player, details []Detail) (Detail, MatchTier, bool) {
	for _, d := range details {
		if sameTeam(p.Team, d.Team) && MatchName(p.Name, d.Name) == MatchExact {
			return d, MatchExact, true
		}
	}

	best, bestTier, found := Detail{}, MatchNone, false
	for _, d := range details {
		tier := MatchName(p.Name, d.Name)
		if tier > bestTier {
			best, bestTier, found = d, tier, true
		}
	}
	return best, bestTier, found
}

// Reconcile fills photo, height, weight and hometown from the matching
// detail row. Only fields still at the sentinel are written.
func Reconcile(p Player, details []Detail) (Player, MatchTier) {
	if p.Claimed || !p.missingDetails() {
		return p, MatchNone
	}
	d, tier, ok := BestDetail(p, details)
	if !ok {
		return p, MatchNone
	}
	return mergeDetail(p, d), tier
}

// ReconcileAll applies Reconcile using the detail rows of each player's team.
// detailsByTeam is keyed by TeamKey. It returns the number of players that
// matched a row.
func ReconcileAll(players []Player, detailsByTeam map[string][]Detail) ([]Player, int) {
	out := make([]Player, len(players))
	matched := 0
	for i, p := range players {
		details := detailsByTeam[TeamKey(p.Team)]
		if len(details) == 0 {
			out[i] = p
			continue
		}
		merged, tier := Reconcile(p, details)
		if tier != MatchNone {
			matched++
		}
		out[i] = merged
	}
	return out, matched
}

// TeamKey normalizes a team name for lookups.
func TeamKey(team string) string {
	return strings.ToLower(CleanText(team))
}

func sameTeam(a, b string) bool {
	if IsMissing(b) {
		return true
	}
	return TeamKey(a) == TeamKey(b)
}

func mergeDetail(p Player, d Detail) Player {
	fill := func(dst *string, src string) {
		if !IsMissing(*dst) {
			return
		}
		if v := CleanText(src); !IsMissing(v) {
			*dst = v
		}
	}
	fill(&p.PhotoURL, d.PhotoURL)
	fill(&p.Height, d.Height)
	fill(&p.Weight, d.Weight)
	fill(&p.Hometown, d.Hometown)
	return p
}
