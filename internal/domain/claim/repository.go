package claim

import (
	"context"
	"errors"
)

// ErrDuplicateProfile is returned by ProfileRepository.Create when the user
// already holds a claimed profile for the same original player.
var ErrDuplicateProfile = errors.New("claimed profile already exists")

// PendingRepository stores unverified claims.
type PendingRepository interface {
	ListByEmail(ctx context.Context, email string) ([]PendingClaim, error)
	// Upsert replaces any pending claim with the same original player id and
	// email.
	Upsert(ctx context.Context, item PendingClaim) (PendingClaim, error)
	Delete(ctx context.Context, id string) error
}

// ProfileRepository stores verified claimed profiles.
type ProfileRepository interface {
	Create(ctx context.Context, item ClaimedProfile) (ClaimedProfile, error)
	GetByID(ctx context.Context, id string) (ClaimedProfile, bool, error)
	GetByUserID(ctx context.Context, userID string) (ClaimedProfile, bool, error)
	FindByOriginalAndUser(ctx context.Context, originalPlayerID, userID string) (ClaimedProfile, bool, error)
	// List returns every claimed profile, most recent claim first.
	List(ctx context.Context) ([]ClaimedProfile, error)
	Update(ctx context.Context, id string, updates Updates) (ClaimedProfile, bool, error)
	Delete(ctx context.Context, id string) error
}

// UserProfileRepository stores the account companion records.
type UserProfileRepository interface {
	Upsert(ctx context.Context, item UserProfile) (UserProfile, error)
	GetByUserID(ctx context.Context, userID string) (UserProfile, bool, error)
	Delete(ctx context.Context, userID string) error
}
