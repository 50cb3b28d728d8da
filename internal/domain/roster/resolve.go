package roster

import (
	"sort"
	"time"
)

// ResolveStats counts what Resolve removed.
type ResolveStats struct {
	Claimed             int
	Unclaimed           int
	SupersededByClaim   int
	CollapsedDuplicates int
	DuplicateClaims     int
}

// Resolve builds the final roster. Claimed players come first, most recent
// claim first, and replace every unclaimed player with the same identity key.
// A claimed player keeps its profile fields but takes the league, type, stats
// and any missing text from the feed record it replaces. Unclaimed players
// sharing a key collapse into the first one seen, which takes any field it is
// missing from the later copies.
func Resolve(claimed, unclaimed []Player) ([]Player, ResolveStats) {
	stats := ResolveStats{}

	ordered := make([]Player, len(claimed))
	copy(ordered, claimed)
	sort.SliceStable(ordered, func(i, j int) bool {
		return claimedAt(ordered[i]).After(claimedAt(ordered[j]))
	})

	out := make([]Player, 0, len(claimed)+len(unclaimed))
	claimedKeys := make(map[string]int, len(ordered))
	for _, p := range ordered {
		if _, dup := claimedKeys[p.IdentityKey]; dup && p.IdentityKey != "" {
			stats.DuplicateClaims++
			continue
		}
		claimedKeys[p.IdentityKey] = len(out)
		p.Claimed = true
		out = append(out, p)
	}
	stats.Claimed = len(out)

	adopted := make(map[string]bool, len(claimedKeys))
	index := make(map[string]int, len(unclaimed))
	for _, p := range unclaimed {
		if pos, ok := claimedKeys[p.IdentityKey]; ok {
			out[pos] = adoptFeedRecord(out[pos], p, adopted)
			stats.SupersededByClaim++
			continue
		}
		if pos, ok := index[p.IdentityKey]; ok {
			out[pos] = backfill(out[pos], p)
			stats.CollapsedDuplicates++
			continue
		}
		p.Claimed = false
		index[p.IdentityKey] = len(out)
		out = append(out, p)
	}
	stats.Unclaimed = len(out) - stats.Claimed

	return out, stats
}

func claimedAt(p Player) time.Time {
	if p.Claim == nil {
		return time.Time{}
	}
	return p.Claim.ClaimedAt
}

// adoptFeedRecord merges the first superseded feed record into a claimed
// player. Profiles carry no league, type or stats, so those come from the
// feed; text the owner supplied is never overwritten.
func adoptFeedRecord(claimed, src Player, adopted map[string]bool) Player {
	if !adopted[claimed.IdentityKey] {
		adopted[claimed.IdentityKey] = true
		if src.Type != "" {
			claimed.Type = src.Type
		}
		if claimed.Stats == (Stats{}) {
			claimed.Stats = src.Stats
		}
	}
	if IsMissing(claimed.Name) && !IsMissing(src.Name) {
		claimed.Name = src.Name
	}
	if IsMissing(claimed.League) && !IsMissing(src.League) {
		claimed.League = src.League
	}
	return backfill(claimed, src)
}

func backfill(dst, src Player) Player {
	fill := func(d *string, s string) {
		if IsMissing(*d) && !IsMissing(s) {
			*d = s
		}
	}
	fill(&dst.Position, src.Position)
	fill(&dst.Nationality, src.Nationality)
	fill(&dst.Height, src.Height)
	fill(&dst.Weight, src.Weight)
	fill(&dst.Hometown, src.Hometown)
	fill(&dst.Year, src.Year)
	fill(&dst.PhotoURL, src.PhotoURL)
	fill(&dst.State, src.State)
	fill(&dst.Commitment, src.Commitment)
	return dst
}
