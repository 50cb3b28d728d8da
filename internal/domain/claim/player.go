package claim

import (
	"strconv"
	"strings"

	"github.com/riskibarqy/draft-roster/internal/domain/roster"
)

// Player renders a claimed profile as a roster entry keyed by the original
// player id it supersedes.
func (c ClaimedProfile) Player() roster.Player {
	text := func(v string) string {
		if v = roster.CleanText(v); v == "" {
			return roster.NotAvailable
		}
		return v
	}

	return roster.Player{
		IdentityKey: strings.TrimSpace(c.OriginalPlayerID),
		Name:        text(c.Name),
		Team:        text(c.CurrentSchool),
		League:      text(c.League),
		Position:    text(c.Position),
		Nationality: text(c.Nationality),
		Height:      text(c.Height),
		Weight:      text(c.Weight),
		Hometown:    text(c.Hometown),
		Year:        text(c.YearOfBirth),
		PhotoURL:    text(c.PhotoURL),
		State:       roster.NotAvailable,
		Commitment:  roster.NotAvailable,
		Type:        roster.TypeTransfer,
		Source:      "claimed_profiles",
		Claimed:     true,
		Claim: &roster.ClaimInfo{
			ProfileID:                c.ID,
			ClaimedByUserID:          c.ClaimedByUserID,
			CurrentSchool:            c.CurrentSchool,
			DivisionTransferringFrom: c.DivisionTransferringFrom,
			YearsOfEligibilityLeft:   c.YearsOfEligibilityLeft,
			GPA:                      formatGPA(c.GPA),
			Highlights:               c.Highlights,
			FullGameLink:             c.FullGameLink,
			Available:                c.Available,
			ClaimedAt:                c.ClaimedAt,
		},
	}
}

func formatGPA(v *float64) string {
	if v == nil {
		return ""
	}
	return strconv.FormatFloat(*v, 'f', 2, 64)
}
