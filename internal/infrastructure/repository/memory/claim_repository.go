package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
)

// PendingClaimRepository keeps pending claims in process.
type PendingClaimRepository struct {
	mu    sync.RWMutex
	items map[string]claim.PendingClaim
	order []string
}

func NewPendingClaimRepository() *PendingClaimRepository {
	return &PendingClaimRepository{items: make(map[string]claim.PendingClaim)}
}

func (r *PendingClaimRepository) ListByEmail(_ context.Context, email string) ([]claim.PendingClaim, error) {
	email = claim.NormalizeEmail(email)

	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]claim.PendingClaim, 0)
	for _, id := range r.order {
		item := r.items[id]
		if claim.NormalizeEmail(item.Email) == email {
			out = append(out, clonePending(item))
		}
	}
	return out, nil
}

func (r *PendingClaimRepository) Upsert(_ context.Context, item claim.PendingClaim) (claim.PendingClaim, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	email := claim.NormalizeEmail(item.Email)
	for _, id := range r.order {
		existing := r.items[id]
		if existing.OriginalPlayerID == item.OriginalPlayerID && claim.NormalizeEmail(existing.Email) == email {
			item.ID = existing.ID
			r.items[id] = clonePending(item)
			return clonePending(item), nil
		}
	}

	r.items[item.ID] = clonePending(item)
	r.order = append(r.order, item.ID)
	return clonePending(item), nil
}

func (r *PendingClaimRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.items[id]; !ok {
		return nil
	}
	delete(r.items, id)
	for i, existing := range r.order {
		if existing == id {
			r.order = append(r.order[:i], r.order[i+1:]...)
			break
		}
	}
	return nil
}

// ClaimedProfileRepository keeps claimed profiles in process.
type ClaimedProfileRepository struct {
	mu    sync.RWMutex
	items map[string]claim.ClaimedProfile
	now   func() time.Time
}

func NewClaimedProfileRepository() *ClaimedProfileRepository {
	return &ClaimedProfileRepository{
		items: make(map[string]claim.ClaimedProfile),
		now:   time.Now,
	}
}

func (r *ClaimedProfileRepository) Create(_ context.Context, item claim.ClaimedProfile) (claim.ClaimedProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, existing := range r.items {
		if existing.OriginalPlayerID == item.OriginalPlayerID && existing.ClaimedByUserID == item.ClaimedByUserID {
			return claim.ClaimedProfile{}, fmt.Errorf("%w: original_player_id=%s user_id=%s",
				claim.ErrDuplicateProfile, item.OriginalPlayerID, item.ClaimedByUserID)
		}
	}

	r.items[item.ID] = cloneProfile(item)
	return cloneProfile(item), nil
}

func (r *ClaimedProfileRepository) GetByID(_ context.Context, id string) (claim.ClaimedProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[id]
	if !ok {
		return claim.ClaimedProfile{}, false, nil
	}
	return cloneProfile(item), true, nil
}

func (r *ClaimedProfileRepository) GetByUserID(_ context.Context, userID string) (claim.ClaimedProfile, bool, error) {
	for _, item := range r.sorted() {
		if item.ClaimedByUserID == userID {
			return item, true, nil
		}
	}
	return claim.ClaimedProfile{}, false, nil
}

func (r *ClaimedProfileRepository) FindByOriginalAndUser(_ context.Context, originalPlayerID, userID string) (claim.ClaimedProfile, bool, error) {
	for _, item := range r.sorted() {
		if item.OriginalPlayerID == originalPlayerID && item.ClaimedByUserID == userID {
			return item, true, nil
		}
	}
	return claim.ClaimedProfile{}, false, nil
}

func (r *ClaimedProfileRepository) List(_ context.Context) ([]claim.ClaimedProfile, error) {
	return r.sorted(), nil
}

func (r *ClaimedProfileRepository) Update(_ context.Context, id string, updates claim.Updates) (claim.ClaimedProfile, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	item, ok := r.items[id]
	if !ok {
		return claim.ClaimedProfile{}, false, nil
	}
	updates.ApplyTo(&item.Profile)
	item.UpdatedAt = r.now().UTC()
	r.items[id] = item
	return cloneProfile(item), true, nil
}

func (r *ClaimedProfileRepository) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, id)
	return nil
}

func (r *ClaimedProfileRepository) sorted() []claim.ClaimedProfile {
	r.mu.RLock()
	out := make([]claim.ClaimedProfile, 0, len(r.items))
	for _, item := range r.items {
		out = append(out, cloneProfile(item))
	}
	r.mu.RUnlock()

	sort.Slice(out, func(i, j int) bool {
		if !out[i].ClaimedAt.Equal(out[j].ClaimedAt) {
			return out[i].ClaimedAt.After(out[j].ClaimedAt)
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// UserProfileRepository keeps user profile links in process.
type UserProfileRepository struct {
	mu    sync.RWMutex
	items map[string]claim.UserProfile
}

func NewUserProfileRepository() *UserProfileRepository {
	return &UserProfileRepository{items: make(map[string]claim.UserProfile)}
}

func (r *UserProfileRepository) Upsert(_ context.Context, item claim.UserProfile) (claim.UserProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if existing, ok := r.items[item.UserID]; ok && !existing.CreatedAt.IsZero() {
		item.CreatedAt = existing.CreatedAt
	}
	r.items[item.UserID] = item
	return item, nil
}

func (r *UserProfileRepository) GetByUserID(_ context.Context, userID string) (claim.UserProfile, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	item, ok := r.items[userID]
	return item, ok, nil
}

func (r *UserProfileRepository) Delete(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	delete(r.items, userID)
	return nil
}

func clonePending(item claim.PendingClaim) claim.PendingClaim {
	item.Profile = cloneClaimProfile(item.Profile)
	return item
}

func cloneProfile(item claim.ClaimedProfile) claim.ClaimedProfile {
	item.Profile = cloneClaimProfile(item.Profile)
	return item
}

func cloneClaimProfile(p claim.Profile) claim.Profile {
	if p.GPA != nil {
		v := *p.GPA
		p.GPA = &v
	}
	return p
}
