package roster

import (
	"context"
	"time"
)

// NotAvailable marks a text field the upstream feed did not provide.
const NotAvailable = "N/A"

type PlayerType string

const (
	TypeTransfer   PlayerType = "transfer"
	TypeHighSchool PlayerType = "highschool"
)

type Stats struct {
	Games        int
	GamesStarted int
	Goals        int
	Assists      int
	Points       int
	Minutes      int
}

// Player is the canonical roster entry. Text fields are never empty: a
// missing value is NotAvailable.
type Player struct {
	IdentityKey string
	Name        string
	Team        string
	League      string
	Position    string
	Nationality string
	Height      string
	Weight      string
	Hometown    string
	Year        string
	PhotoURL    string
	State       string
	Commitment  string
	Type        PlayerType
	Stats       Stats
	Source      string
	Claimed     bool
	Claim       *ClaimInfo
}

// ClaimInfo carries the owner-supplied fields of a claimed player.
type ClaimInfo struct {
	ProfileID                string
	ClaimedByUserID          string
	CurrentSchool            string
	DivisionTransferringFrom string
	YearsOfEligibilityLeft   string
	GPA                      string
	Highlights               string
	FullGameLink             string
	Available                bool
	ClaimedAt                time.Time
}

// Detail is one row scraped from a team roster page.
type Detail struct {
	Name     string
	Team     string
	Position string
	PhotoURL string
	Height   string
	Weight   string
	Hometown string
}

// DetailSource loads roster-page rows for one team.
type DetailSource interface {
	FetchDetails(ctx context.Context, team, pageURL string) ([]Detail, error)
}

func (p Player) missingDetails() bool {
	return IsMissing(p.PhotoURL) || IsMissing(p.Height) || IsMissing(p.Weight) || IsMissing(p.Hometown)
}

// NeedsDetails reports whether reconciliation could still fill a field.
func (p Player) NeedsDetails() bool {
	return !p.Claimed && p.missingDetails()
}

// IsMissing treats empty and NotAvailable as absent.
func IsMissing(v string) bool {
	switch v {
	case "", NotAvailable:
		return true
	default:
		return false
	}
}

func orNA(v string) string {
	if IsMissing(v) {
		return NotAvailable
	}
	return v
}
