package claim

import (
	"strings"
	"time"
)

// Status is the lifecycle state of a player record from the owner's view.
type Status string

const (
	StatusUnclaimed Status = "unclaimed"
	StatusPending   Status = "pending_claim"
	StatusClaimed   Status = "claimed"
)

// UserTypePlayer is the user_type stamped on user profiles created by a claim.
const UserTypePlayer = "player"

// Profile holds the fields an athlete supplies when claiming a record. The
// first five are required and are reported in declaration order when missing.
type Profile struct {
	Name                     string   `json:"name" db:"name" validate:"required"`
	Position                 string   `json:"position" db:"position" validate:"required"`
	CurrentSchool            string   `json:"current_school" db:"current_school" validate:"required"`
	DivisionTransferringFrom string   `json:"division_transferring_from" db:"division_transferring_from" validate:"required"`
	Email                    string   `json:"email" db:"email" validate:"required,email"`
	Nationality              string   `json:"nationality,omitempty" db:"nationality"`
	YearOfBirth              string   `json:"year_of_birth,omitempty" db:"year_of_birth"`
	Height                   string   `json:"height,omitempty" db:"height"`
	Weight                   string   `json:"weight,omitempty" db:"weight"`
	Hometown                 string   `json:"hometown,omitempty" db:"hometown"`
	League                   string   `json:"league,omitempty" db:"league"`
	PhotoURL                 string   `json:"photo_url,omitempty" db:"photo_url"`
	GPA                      *float64 `json:"gpa,omitempty" db:"gpa"`
	CreditHoursTaken         string   `json:"credit_hours_taken,omitempty" db:"credit_hours_taken"`
	Finances                 string   `json:"finances,omitempty" db:"finances"`
	Available                bool     `json:"available" db:"available"`
	YearsOfEligibilityLeft   string   `json:"years_of_eligibility_left,omitempty" db:"years_of_eligibility_left"`
	IndividualAwards         string   `json:"individual_awards,omitempty" db:"individual_awards"`
	CollegeAccolades         string   `json:"college_accolades,omitempty" db:"college_accolades"`
	Highlights               string   `json:"highlights,omitempty" db:"highlights"`
	FullGameLink             string   `json:"full_game_link,omitempty" db:"full_game_link"`
	WhyTransferring          string   `json:"why_player_is_transferring,omitempty" db:"why_player_is_transferring"`
}

// Trimmed returns p with surrounding whitespace removed from every text
// field and the email lower-cased.
func (p Profile) Trimmed() Profile {
	for _, f := range p.textFields() {
		*f = strings.TrimSpace(*f)
	}
	p.Email = NormalizeEmail(p.Email)
	return p
}

func (p *Profile) textFields() []*string {
	return []*string{
		&p.Name, &p.Position, &p.CurrentSchool, &p.DivisionTransferringFrom, &p.Email,
		&p.Nationality, &p.YearOfBirth, &p.Height, &p.Weight, &p.Hometown, &p.League,
		&p.PhotoURL, &p.CreditHoursTaken, &p.Finances, &p.YearsOfEligibilityLeft,
		&p.IndividualAwards, &p.CollegeAccolades, &p.Highlights, &p.FullGameLink,
		&p.WhyTransferring,
	}
}

// PendingClaim is an unverified ownership assertion keyed by email. At most
// one exists per (original player, email).
type PendingClaim struct {
	ID               string    `json:"id"`
	OriginalPlayerID string    `json:"original_player_id"`
	SubmittedAt      time.Time `json:"submitted_at"`
	Profile
}

// ClaimedProfile is a verified, owned player record.
type ClaimedProfile struct {
	ID               string    `json:"id"`
	OriginalPlayerID string    `json:"original_player_id"`
	ClaimedByUserID  string    `json:"claimed_by_user_id"`
	ClaimedAt        time.Time `json:"claimed_at"`
	UpdatedAt        time.Time `json:"updated_at"`
	Profile
}

// UserProfile links an account to the profile it claimed.
type UserProfile struct {
	UserID           string    `json:"user_id"`
	Email            string    `json:"email"`
	UserType         string    `json:"user_type"`
	ClaimedProfileID string    `json:"claimed_profile_id"`
	CreatedAt        time.Time `json:"created_at"`
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
