package docstore

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
)

const (
	collectionPending      = "pending_claims"
	collectionProfiles     = "claimed_profiles"
	collectionUserProfiles = "user_profiles"

	preferRepresentation = "return=representation"
	preferMerge          = "resolution=merge-duplicates,return=representation"
)

var (
	_ claim.PendingRepository     = (*PendingClaimRepository)(nil)
	_ claim.ProfileRepository     = (*ClaimedProfileRepository)(nil)
	_ claim.UserProfileRepository = (*UserProfileRepository)(nil)
)

func filters(kv ...string) url.Values {
	v := url.Values{}
	v.Set("select", "*")
	for i := 0; i+1 < len(kv); i += 2 {
		v.Set(kv[i], kv[i+1])
	}
	return v
}

type PendingClaimRepository struct {
	client *Client
}

func NewPendingClaimRepository(client *Client) *PendingClaimRepository {
	return &PendingClaimRepository{client: client}
}

func (r *PendingClaimRepository) ListByEmail(ctx context.Context, email string) ([]claim.PendingClaim, error) {
	var rows []claim.PendingClaim
	err := r.client.do(ctx, request{
		method:     http.MethodGet,
		collection: collectionPending,
		filters:    filters("email", eq(claim.NormalizeEmail(email)), "order", "submitted_at.asc,id.asc"),
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Upsert patches the existing claim for the same player and email, keeping
// its id, or inserts a new row.
func (r *PendingClaimRepository) Upsert(ctx context.Context, item claim.PendingClaim) (claim.PendingClaim, error) {
	item.Email = claim.NormalizeEmail(item.Email)

	var existing []claim.PendingClaim
	err := r.client.do(ctx, request{
		method:     http.MethodGet,
		collection: collectionPending,
		filters:    filters("original_player_id", eq(item.OriginalPlayerID), "email", eq(item.Email), "limit", "1"),
	}, &existing)
	if err != nil {
		return claim.PendingClaim{}, err
	}

	req := request{
		method:     http.MethodPost,
		collection: collectionPending,
		filters:    filters(),
		body:       item,
		prefer:     preferRepresentation,
	}
	if len(existing) > 0 {
		item.ID = existing[0].ID
		req.method = http.MethodPatch
		req.filters = filters("id", eq(item.ID))
		req.body = item
	}

	var rows []claim.PendingClaim
	if err := r.client.do(ctx, req, &rows); err != nil {
		return claim.PendingClaim{}, err
	}
	if len(rows) == 0 {
		return item, nil
	}
	return rows[0], nil
}

func (r *PendingClaimRepository) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, request{
		method:     http.MethodDelete,
		collection: collectionPending,
		filters:    url.Values{"id": {eq(id)}},
	}, nil)
}

type ClaimedProfileRepository struct {
	client *Client
	now    func() time.Time
}

func NewClaimedProfileRepository(client *Client) *ClaimedProfileRepository {
	return &ClaimedProfileRepository{client: client, now: time.Now}
}

func (r *ClaimedProfileRepository) Create(ctx context.Context, item claim.ClaimedProfile) (claim.ClaimedProfile, error) {
	if item.UpdatedAt.IsZero() {
		item.UpdatedAt = item.ClaimedAt
	}

	var rows []claim.ClaimedProfile
	err := r.client.do(ctx, request{
		method:     http.MethodPost,
		collection: collectionProfiles,
		filters:    filters(),
		body:       item,
		prefer:     preferRepresentation,
	}, &rows)
	if errors.Is(err, errDocstoreConflict) {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: original_player_id=%s user_id=%s",
			claim.ErrDuplicateProfile, item.OriginalPlayerID, item.ClaimedByUserID)
	}
	if err != nil {
		return claim.ClaimedProfile{}, err
	}
	if len(rows) == 0 {
		return item, nil
	}
	return rows[0], nil
}

func (r *ClaimedProfileRepository) GetByID(ctx context.Context, id string) (claim.ClaimedProfile, bool, error) {
	return r.first(ctx, filters("id", eq(id), "limit", "1"))
}

// GetByUserID returns the user's most recent claim.
func (r *ClaimedProfileRepository) GetByUserID(ctx context.Context, userID string) (claim.ClaimedProfile, bool, error) {
	return r.first(ctx, filters("claimed_by_user_id", eq(userID), "order", "claimed_at.desc", "limit", "1"))
}

func (r *ClaimedProfileRepository) FindByOriginalAndUser(ctx context.Context, originalPlayerID, userID string) (claim.ClaimedProfile, bool, error) {
	return r.first(ctx, filters(
		"original_player_id", eq(originalPlayerID),
		"claimed_by_user_id", eq(userID),
		"limit", "1",
	))
}

func (r *ClaimedProfileRepository) List(ctx context.Context) ([]claim.ClaimedProfile, error) {
	var rows []claim.ClaimedProfile
	err := r.client.do(ctx, request{
		method:     http.MethodGet,
		collection: collectionProfiles,
		filters:    filters("order", "claimed_at.desc,id.asc"),
	}, &rows)
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *ClaimedProfileRepository) Update(ctx context.Context, id string, updates claim.Updates) (claim.ClaimedProfile, bool, error) {
	body := updates.Columns()
	body["updated_at"] = r.now().UTC()

	var rows []claim.ClaimedProfile
	err := r.client.do(ctx, request{
		method:     http.MethodPatch,
		collection: collectionProfiles,
		filters:    filters("id", eq(id)),
		body:       body,
		prefer:     preferRepresentation,
	}, &rows)
	if err != nil {
		return claim.ClaimedProfile{}, false, err
	}
	if len(rows) == 0 {
		return claim.ClaimedProfile{}, false, nil
	}
	return rows[0], true, nil
}

func (r *ClaimedProfileRepository) Delete(ctx context.Context, id string) error {
	return r.client.do(ctx, request{
		method:     http.MethodDelete,
		collection: collectionProfiles,
		filters:    url.Values{"id": {eq(id)}},
	}, nil)
}

func (r *ClaimedProfileRepository) first(ctx context.Context, q url.Values) (claim.ClaimedProfile, bool, error) {
	var rows []claim.ClaimedProfile
	err := r.client.do(ctx, request{
		method:     http.MethodGet,
		collection: collectionProfiles,
		filters:    q,
	}, &rows)
	if err != nil {
		return claim.ClaimedProfile{}, false, err
	}
	if len(rows) == 0 {
		return claim.ClaimedProfile{}, false, nil
	}
	return rows[0], true, nil
}

// userProfileRow leaves created_at to the store on upsert so an existing
// row keeps its original value.
type userProfileRow struct {
	UserID           string     `json:"user_id"`
	Email            string     `json:"email"`
	UserType         string     `json:"user_type"`
	ClaimedProfileID string     `json:"claimed_profile_id"`
	CreatedAt        *time.Time `json:"created_at,omitempty"`
}

func (r userProfileRow) toDomain() claim.UserProfile {
	out := claim.UserProfile{
		UserID:           r.UserID,
		Email:            r.Email,
		UserType:         r.UserType,
		ClaimedProfileID: r.ClaimedProfileID,
	}
	if r.CreatedAt != nil {
		out.CreatedAt = *r.CreatedAt
	}
	return out
}

type UserProfileRepository struct {
	client *Client
}

func NewUserProfileRepository(client *Client) *UserProfileRepository {
	return &UserProfileRepository{client: client}
}

func (r *UserProfileRepository) Upsert(ctx context.Context, item claim.UserProfile) (claim.UserProfile, error) {
	body := userProfileRow{
		UserID:           strings.TrimSpace(item.UserID),
		Email:            claim.NormalizeEmail(item.Email),
		UserType:         item.UserType,
		ClaimedProfileID: item.ClaimedProfileID,
	}

	var rows []userProfileRow
	err := r.client.do(ctx, request{
		method:     http.MethodPost,
		collection: collectionUserProfiles,
		filters:    url.Values{"on_conflict": {"user_id"}},
		body:       body,
		prefer:     preferMerge,
	}, &rows)
	if err != nil {
		return claim.UserProfile{}, err
	}
	if len(rows) == 0 {
		return item, nil
	}
	return rows[0].toDomain(), nil
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID string) (claim.UserProfile, bool, error) {
	var rows []userProfileRow
	err := r.client.do(ctx, request{
		method:     http.MethodGet,
		collection: collectionUserProfiles,
		filters:    filters("user_id", eq(userID), "limit", "1"),
	}, &rows)
	if err != nil {
		return claim.UserProfile{}, false, err
	}
	if len(rows) == 0 {
		return claim.UserProfile{}, false, nil
	}
	return rows[0].toDomain(), true, nil
}

func (r *UserProfileRepository) Delete(ctx context.Context, userID string) error {
	return r.client.do(ctx, request{
		method:     http.MethodDelete,
		collection: collectionUserProfiles,
		filters:    url.Values{"user_id": {eq(userID)}},
	}, nil)
}
