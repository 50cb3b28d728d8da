package postgres

import (
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
)

type pendingClaimTableModel struct {
	ID               string    `db:"id"`
	OriginalPlayerID string    `db:"original_player_id"`
	SubmittedAt      time.Time `db:"submitted_at"`
	claim.Profile
}

type claimedProfileTableModel struct {
	ID               string    `db:"id"`
	OriginalPlayerID string    `db:"original_player_id"`
	ClaimedByUserID  string    `db:"claimed_by_user_id"`
	ClaimedAt        time.Time `db:"claimed_at"`
	UpdatedAt        time.Time `db:"updated_at"`
	claim.Profile
}

type userProfileTableModel struct {
	UserID           string    `db:"user_id"`
	Email            string    `db:"email"`
	UserType         string    `db:"user_type"`
	ClaimedProfileID string    `db:"claimed_profile_id"`
	CreatedAt        time.Time `db:"created_at"`
}

type userProfileInsertModel struct {
	UserID           string `db:"user_id"`
	Email            string `db:"email"`
	UserType         string `db:"user_type"`
	ClaimedProfileID string `db:"claimed_profile_id"`
}

func pendingClaimFromRow(row pendingClaimTableModel) claim.PendingClaim {
	return claim.PendingClaim{
		ID:               row.ID,
		OriginalPlayerID: row.OriginalPlayerID,
		SubmittedAt:      row.SubmittedAt,
		Profile:          row.Profile,
	}
}

func claimedProfileFromRow(row claimedProfileTableModel) claim.ClaimedProfile {
	return claim.ClaimedProfile{
		ID:               row.ID,
		OriginalPlayerID: row.OriginalPlayerID,
		ClaimedByUserID:  row.ClaimedByUserID,
		ClaimedAt:        row.ClaimedAt,
		UpdatedAt:        row.UpdatedAt,
		Profile:          row.Profile,
	}
}

func userProfileFromRow(row userProfileTableModel) claim.UserProfile {
	return claim.UserProfile(row)
}
