package httpapi

import (
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	"github.com/riskibarqy/draft-roster/internal/domain/roster"
	"github.com/riskibarqy/draft-roster/internal/usecase"
)

type healthDTO struct {
	Status       string `json:"status"`
	RosterCached bool   `json:"roster_cached"`
	Players      int    `json:"players"`
}

type statsDTO struct {
	Games        int `json:"games"`
	GamesStarted int `json:"games_started"`
	Goals        int `json:"goals"`
	Assists      int `json:"assists"`
	Points       int `json:"points"`
	Minutes      int `json:"minutes"`
}

type claimInfoDTO struct {
	ProfileID                string    `json:"profile_id"`
	ClaimedByUserID          string    `json:"claimed_by_user_id"`
	CurrentSchool            string    `json:"current_school"`
	DivisionTransferringFrom string    `json:"division_transferring_from"`
	YearsOfEligibilityLeft   string    `json:"years_of_eligibility_left,omitempty"`
	GPA                      string    `json:"gpa,omitempty"`
	Highlights               string    `json:"highlights,omitempty"`
	FullGameLink             string    `json:"full_game_link,omitempty"`
	Available                bool      `json:"available"`
	ClaimedAt                time.Time `json:"claimed_at"`
}

type playerDTO struct {
	ID          string        `json:"id"`
	Name        string        `json:"name"`
	Team        string        `json:"team"`
	League      string        `json:"league"`
	Position    string        `json:"position"`
	Nationality string        `json:"nationality"`
	Height      string        `json:"height"`
	Weight      string        `json:"weight"`
	Hometown    string        `json:"hometown"`
	Year        string        `json:"year"`
	PhotoURL    string        `json:"photo_url"`
	State       string        `json:"state"`
	Commitment  string        `json:"commitment"`
	Type        string        `json:"type"`
	Source      string        `json:"source"`
	Claimed     bool          `json:"claimed"`
	Stats       statsDTO      `json:"stats"`
	Claim       *claimInfoDTO `json:"claim,omitempty"`
}

type playerListDTO struct {
	Players        []playerDTO       `json:"players"`
	Total          int               `json:"total"`
	FiltersApplied map[string]string `json:"filters_applied"`
}

// claimedProfileDTO is the public view of an owned profile. The contact
// email is not exposed.
type claimedProfileDTO struct {
	ID                       string    `json:"id"`
	OriginalPlayerID         string    `json:"original_player_id"`
	ClaimedByUserID          string    `json:"claimed_by_user_id"`
	ClaimedAt                time.Time `json:"claimed_at"`
	UpdatedAt                time.Time `json:"updated_at"`
	Name                     string    `json:"name"`
	Position                 string    `json:"position"`
	CurrentSchool            string    `json:"current_school"`
	DivisionTransferringFrom string    `json:"division_transferring_from"`
	Nationality              string    `json:"nationality,omitempty"`
	YearOfBirth              string    `json:"year_of_birth,omitempty"`
	Height                   string    `json:"height,omitempty"`
	Weight                   string    `json:"weight,omitempty"`
	Hometown                 string    `json:"hometown,omitempty"`
	League                   string    `json:"league,omitempty"`
	PhotoURL                 string    `json:"photo_url,omitempty"`
	GPA                      *float64  `json:"gpa,omitempty"`
	CreditHoursTaken         string    `json:"credit_hours_taken,omitempty"`
	Finances                 string    `json:"finances,omitempty"`
	Available                bool      `json:"available"`
	YearsOfEligibilityLeft   string    `json:"years_of_eligibility_left,omitempty"`
	IndividualAwards         string    `json:"individual_awards,omitempty"`
	CollegeAccolades         string    `json:"college_accolades,omitempty"`
	Highlights               string    `json:"highlights,omitempty"`
	FullGameLink             string    `json:"full_game_link,omitempty"`
	WhyTransferring          string    `json:"why_player_is_transferring,omitempty"`
}

type pendingClaimDTO struct {
	ID               string    `json:"id"`
	OriginalPlayerID string    `json:"original_player_id"`
	SubmittedAt      time.Time `json:"submitted_at"`
}

type submitResultDTO struct {
	Status  string             `json:"status"`
	Pending *pendingClaimDTO   `json:"pending_claim,omitempty"`
	Profile *claimedProfileDTO `json:"profile,omitempty"`
}

type migrateResultDTO struct {
	Migrated int `json:"migrated"`
}

type unclaimResultDTO struct {
	ProfileID string `json:"profile_id"`
	Status    string `json:"status"`
}

type submitClaimRequest struct {
	OriginalPlayerID string `json:"original_player_id"`
	claim.Profile
}

// updateClaimRequest mirrors claim.Updates field for field so it converts
// directly.
type updateClaimRequest struct {
	Name                     *string  `json:"name,omitempty" validate:"omitempty,max=200"`
	Position                 *string  `json:"position,omitempty" validate:"omitempty,max=50"`
	CurrentSchool            *string  `json:"current_school,omitempty" validate:"omitempty,max=200"`
	DivisionTransferringFrom *string  `json:"division_transferring_from,omitempty" validate:"omitempty,max=50"`
	Nationality              *string  `json:"nationality,omitempty"`
	YearOfBirth              *string  `json:"year_of_birth,omitempty"`
	Height                   *string  `json:"height,omitempty"`
	Weight                   *string  `json:"weight,omitempty"`
	Hometown                 *string  `json:"hometown,omitempty"`
	League                   *string  `json:"league,omitempty"`
	PhotoURL                 *string  `json:"photo_url,omitempty"`
	GPA                      *float64 `json:"gpa,omitempty" validate:"omitempty,gte=0,lte=5"`
	CreditHoursTaken         *string  `json:"credit_hours_taken,omitempty"`
	Finances                 *string  `json:"finances,omitempty"`
	Available                *bool    `json:"available,omitempty"`
	YearsOfEligibilityLeft   *string  `json:"years_of_eligibility_left,omitempty"`
	IndividualAwards         *string  `json:"individual_awards,omitempty"`
	CollegeAccolades         *string  `json:"college_accolades,omitempty"`
	Highlights               *string  `json:"highlights,omitempty"`
	FullGameLink             *string  `json:"full_game_link,omitempty"`
	WhyTransferring          *string  `json:"why_player_is_transferring,omitempty"`
}

func playerToDTO(p roster.Player) playerDTO {
	out := playerDTO{
		ID:          p.IdentityKey,
		Name:        p.Name,
		Team:        p.Team,
		League:      p.League,
		Position:    p.Position,
		Nationality: p.Nationality,
		Height:      p.Height,
		Weight:      p.Weight,
		Hometown:    p.Hometown,
		Year:        p.Year,
		PhotoURL:    p.PhotoURL,
		State:       p.State,
		Commitment:  p.Commitment,
		Type:        string(p.Type),
		Source:      p.Source,
		Claimed:     p.Claimed,
		Stats: statsDTO{
			Games:        p.Stats.Games,
			GamesStarted: p.Stats.GamesStarted,
			Goals:        p.Stats.Goals,
			Assists:      p.Stats.Assists,
			Points:       p.Stats.Points,
			Minutes:      p.Stats.Minutes,
		},
	}
	if c := p.Claim; c != nil {
		out.Claim = &claimInfoDTO{
			ProfileID:                c.ProfileID,
			ClaimedByUserID:          c.ClaimedByUserID,
			CurrentSchool:            c.CurrentSchool,
			DivisionTransferringFrom: c.DivisionTransferringFrom,
			YearsOfEligibilityLeft:   c.YearsOfEligibilityLeft,
			GPA:                      c.GPA,
			Highlights:               c.Highlights,
			FullGameLink:             c.FullGameLink,
			Available:                c.Available,
			ClaimedAt:                c.ClaimedAt,
		}
	}
	return out
}

func claimedProfileToDTO(c claim.ClaimedProfile) claimedProfileDTO {
	return claimedProfileDTO{
		ID:                       c.ID,
		OriginalPlayerID:         c.OriginalPlayerID,
		ClaimedByUserID:          c.ClaimedByUserID,
		ClaimedAt:                c.ClaimedAt,
		UpdatedAt:                c.UpdatedAt,
		Name:                     c.Name,
		Position:                 c.Position,
		CurrentSchool:            c.CurrentSchool,
		DivisionTransferringFrom: c.DivisionTransferringFrom,
		Nationality:              c.Nationality,
		YearOfBirth:              c.YearOfBirth,
		Height:                   c.Height,
		Weight:                   c.Weight,
		Hometown:                 c.Hometown,
		League:                   c.League,
		PhotoURL:                 c.PhotoURL,
		GPA:                      c.GPA,
		CreditHoursTaken:         c.CreditHoursTaken,
		Finances:                 c.Finances,
		Available:                c.Available,
		YearsOfEligibilityLeft:   c.YearsOfEligibilityLeft,
		IndividualAwards:         c.IndividualAwards,
		CollegeAccolades:         c.CollegeAccolades,
		Highlights:               c.Highlights,
		FullGameLink:             c.FullGameLink,
		WhyTransferring:          c.WhyTransferring,
	}
}

func submitResultToDTO(r usecase.SubmitClaimResult) submitResultDTO {
	out := submitResultDTO{Status: string(r.Status)}
	if r.Pending != nil {
		out.Pending = &pendingClaimDTO{
			ID:               r.Pending.ID,
			OriginalPlayerID: r.Pending.OriginalPlayerID,
			SubmittedAt:      r.Pending.SubmittedAt,
		}
	}
	if r.Profile != nil {
		profile := claimedProfileToDTO(*r.Profile)
		out.Profile = &profile
	}
	return out
}
