package roster

import (
	"testing"
	"time"
)

func claimedPlayer(key, name string, at time.Time) Player {
	return Player{
		IdentityKey: key,
		Name:        name,
		Claimed:     true,
		Claim:       &ClaimInfo{ProfileID: "cp-" + key, ClaimedByUserID: "u-" + key, ClaimedAt: at},
	}
}

func TestResolve_ClaimedSupersedesUnclaimed(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claimed := []Player{
		claimedPlayer("7", "Claimed Older", now.Add(-time.Hour)),
		claimedPlayer("9", "Claimed Newer", now),
	}
	unclaimed := []Player{
		{IdentityKey: "1", Name: "Feed One"},
		{IdentityKey: "7", Name: "Feed Seven"},
		{IdentityKey: "9", Name: "Feed Nine"},
	}

	out, stats := Resolve(claimed, unclaimed)

	if len(out) != 3 {
		t.Fatalf("expected 3 players, got %d: %+v", len(out), out)
	}
	if out[0].Name != "Claimed Newer" || out[1].Name != "Claimed Older" {
		t.Fatalf("expected claimed first, most recent first: %q, %q", out[0].Name, out[1].Name)
	}
	if out[2].Name != "Feed One" || out[2].Claimed {
		t.Fatalf("unexpected unclaimed entry: %+v", out[2])
	}
	if stats.SupersededByClaim != 2 || stats.Claimed != 2 || stats.Unclaimed != 1 {
		t.Fatalf("unexpected stats: %+v", stats)
	}

	seen := map[string]int{}
	for _, p := range out {
		seen[p.IdentityKey]++
	}
	for key, n := range seen {
		if n != 1 {
			t.Fatalf("identity key %s appears %d times", key, n)
		}
	}
}

func TestResolve_CollapsesUnclaimedCollisions(t *testing.T) {
	unclaimed := []Player{
		{IdentityKey: "42", Name: "First Copy", Team: "A", Height: NotAvailable, Hometown: "Austin, TX", PhotoURL: NotAvailable},
		{IdentityKey: "5", Name: "Other"},
		{IdentityKey: "42", Name: "Second Copy", Team: "B", Height: "6-0", Hometown: "Boise, ID", PhotoURL: "https://img.local/42.png"},
	}

	out, stats := Resolve(nil, unclaimed)

	if len(out) != 2 {
		t.Fatalf("expected collision collapsed to 2 players, got %d", len(out))
	}
	first := out[0]
	if first.Name != "First Copy" || first.Team != "A" {
		t.Fatalf("first occurrence must win: %+v", first)
	}
	if first.Height != "6-0" || first.PhotoURL != "https://img.local/42.png" {
		t.Fatalf("sentinel fields must be back-filled: %+v", first)
	}
	if first.Hometown != "Austin, TX" {
		t.Fatalf("present fields must be kept, got %q", first.Hometown)
	}
	if stats.CollapsedDuplicates != 1 {
		t.Fatalf("expected one collapsed duplicate, got %+v", stats)
	}
}

func TestResolve_DuplicateClaimsKeepMostRecent(t *testing.T) {
	now := time.Now()
	claimed := []Player{
		claimedPlayer("7", "Older Claim", now.Add(-time.Minute)),
		claimedPlayer("7", "Newer Claim", now),
	}

	out, stats := Resolve(claimed, nil)
	if len(out) != 1 || out[0].Name != "Newer Claim" {
		t.Fatalf("expected only the newest claim, got %+v", out)
	}
	if stats.DuplicateClaims != 1 {
		t.Fatalf("expected duplicate claim counted, got %+v", stats)
	}
}

func TestResolve_DoesNotMutateInput(t *testing.T) {
	claimed := []Player{
		claimedPlayer("a", "A", time.Unix(10, 0)),
		claimedPlayer("b", "B", time.Unix(20, 0)),
	}
	_, _ = Resolve(claimed, nil)
	if claimed[0].Name != "A" {
		t.Fatalf("input order must be preserved")
	}
}

func TestResolve_ClaimedTakesFeedLeagueTypeAndStats(t *testing.T) {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	claimed := claimedPlayer("1", "Ana Ruiz", now)
	claimed.League = NotAvailable
	claimed.Type = TypeTransfer
	claimed.Position = "Centre-Back"
	claimed.Team = "Tyler JC"

	unclaimed := []Player{{
		IdentityKey: "1",
		Name:        "Ana Ruiz",
		Team:        "Tormenta FC",
		League:      "USL League One",
		Position:    "Forward",
		Nationality: "Mexico",
		Type:        TypeHighSchool,
		Stats:       Stats{Games: 12, Goals: 4},
	}}

	out, _ := Resolve([]Player{claimed}, unclaimed)
	if len(out) != 1 || !out[0].Claimed {
		t.Fatalf("expected the claimed player only, got %+v", out)
	}

	got := out[0]
	if got.League != "USL League One" || got.Type != TypeHighSchool || got.Stats.Goals != 4 {
		t.Fatalf("expected feed league, type and stats, got %+v", got)
	}
	if got.Position != "Centre-Back" || got.Team != "Tyler JC" {
		t.Fatalf("profile fields must win, got position=%q team=%q", got.Position, got.Team)
	}
	if got.Nationality != "Mexico" {
		t.Fatalf("expected missing nationality filled from feed, got %q", got.Nationality)
	}

	if n := len(Apply(out, Filter{League: "USL League One"})); n != 1 {
		t.Fatalf("league filter must still find the claimed player, got %d", n)
	}
	if n := len(Apply(out, Filter{Type: "highschool"})); n != 1 {
		t.Fatalf("type filter must still find the claimed player, got %d", n)
	}
}
