package postgres

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	qb "github.com/riskibarqy/draft-roster/internal/platform/querybuilder"
)

const (
	tablePendingClaims   = "pending_claims"
	tableClaimedProfiles = "claimed_profiles"
	tableUserProfiles    = "user_profiles"
)

var (
	pendingColumns = mustColumns(pendingClaimTableModel{})
	profileColumns = mustColumns(claimedProfileTableModel{})
	userColumns    = mustColumns(userProfileTableModel{})
	profileFields  = mustColumns(claim.Profile{})
)

var (
	_ claim.PendingRepository     = (*PendingClaimRepository)(nil)
	_ claim.ProfileRepository     = (*ClaimedProfileRepository)(nil)
	_ claim.UserProfileRepository = (*UserProfileRepository)(nil)
)

func mustColumns(model any) []string {
	cols, err := qb.ColumnsOf(model)
	if err != nil {
		panic(err)
	}
	return cols
}

func returning(cols []string) string {
	return "RETURNING " + strings.Join(cols, ", ")
}

type PendingClaimRepository struct {
	db *sqlx.DB
}

func NewPendingClaimRepository(db *sqlx.DB) *PendingClaimRepository {
	return &PendingClaimRepository{db: db}
}

func (r *PendingClaimRepository) ListByEmail(ctx context.Context, email string) ([]claim.PendingClaim, error) {
	query, args, err := qb.Select(pendingColumns...).
		From(tablePendingClaims).
		Where(qb.Eq("email", claim.NormalizeEmail(email))).
		OrderBy("submitted_at ASC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list pending claims query: %w", err)
	}

	var rows []pendingClaimTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list pending claims: %w", err)
	}

	out := make([]claim.PendingClaim, 0, len(rows))
	for _, row := range rows {
		out = append(out, pendingClaimFromRow(row))
	}
	return out, nil
}

func (r *PendingClaimRepository) Upsert(ctx context.Context, item claim.PendingClaim) (claim.PendingClaim, error) {
	query, args, err := pendingUpsertQuery(item)
	if err != nil {
		return claim.PendingClaim{}, fmt.Errorf("build upsert pending claim query: %w", err)
	}

	var row pendingClaimTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return claim.PendingClaim{}, fmt.Errorf("upsert pending claim: %w", err)
	}
	return pendingClaimFromRow(row), nil
}

// pendingUpsertQuery keeps the id of an existing row for the same player and
// email and replaces everything else.
func pendingUpsertQuery(item claim.PendingClaim) (string, []any, error) {
	item.Email = claim.NormalizeEmail(item.Email)
	model := pendingClaimTableModel{
		ID:               strings.TrimSpace(item.ID),
		OriginalPlayerID: strings.TrimSpace(item.OriginalPlayerID),
		SubmittedAt:      item.SubmittedAt,
		Profile:          item.Profile,
	}

	sets := make([]string, 0, len(profileFields)+1)
	sets = append(sets, "submitted_at = EXCLUDED.submitted_at")
	for _, col := range profileFields {
		if col == "email" {
			continue
		}
		sets = append(sets, col+" = EXCLUDED."+col)
	}
	suffix := "ON CONFLICT (original_player_id, email)\nDO UPDATE SET\n    " +
		strings.Join(sets, ",\n    ") + "\n" + returning(pendingColumns)

	return qb.InsertModel(tablePendingClaims, model, suffix)
}

func (r *PendingClaimRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(tablePendingClaims).
		Where(qb.Eq("id", strings.TrimSpace(id))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete pending claim query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete pending claim: %w", err)
	}
	return nil
}

type ClaimedProfileRepository struct {
	db  *sqlx.DB
	now func() time.Time
}

func NewClaimedProfileRepository(db *sqlx.DB) *ClaimedProfileRepository {
	return &ClaimedProfileRepository{db: db, now: time.Now}
}

func (r *ClaimedProfileRepository) Create(ctx context.Context, item claim.ClaimedProfile) (claim.ClaimedProfile, error) {
	model := claimedProfileTableModel{
		ID:               strings.TrimSpace(item.ID),
		OriginalPlayerID: strings.TrimSpace(item.OriginalPlayerID),
		ClaimedByUserID:  strings.TrimSpace(item.ClaimedByUserID),
		ClaimedAt:        item.ClaimedAt,
		UpdatedAt:        item.UpdatedAt,
		Profile:          item.Profile,
	}
	if model.UpdatedAt.IsZero() {
		model.UpdatedAt = model.ClaimedAt
	}

	query, args, err := qb.InsertModel(tableClaimedProfiles, model, returning(profileColumns))
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("build create claimed profile query: %w", err)
	}

	var row claimedProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isUniqueViolation(err) {
			return claim.ClaimedProfile{}, fmt.Errorf("%w: original_player_id=%s user_id=%s",
				claim.ErrDuplicateProfile, model.OriginalPlayerID, model.ClaimedByUserID)
		}
		return claim.ClaimedProfile{}, fmt.Errorf("create claimed profile: %w", err)
	}
	return claimedProfileFromRow(row), nil
}

func (r *ClaimedProfileRepository) GetByID(ctx context.Context, id string) (claim.ClaimedProfile, bool, error) {
	return r.getOne(ctx, "get claimed profile", qb.Eq("id", strings.TrimSpace(id)))
}

func (r *ClaimedProfileRepository) GetByUserID(ctx context.Context, userID string) (claim.ClaimedProfile, bool, error) {
	return r.getOne(ctx, "get claimed profile by user", qb.Eq("claimed_by_user_id", strings.TrimSpace(userID)))
}

func (r *ClaimedProfileRepository) FindByOriginalAndUser(ctx context.Context, originalPlayerID, userID string) (claim.ClaimedProfile, bool, error) {
	return r.getOne(ctx, "find claimed profile",
		qb.Eq("original_player_id", strings.TrimSpace(originalPlayerID)),
		qb.Eq("claimed_by_user_id", strings.TrimSpace(userID)),
	)
}

func (r *ClaimedProfileRepository) getOne(ctx context.Context, op string, conditions ...qb.Condition) (claim.ClaimedProfile, bool, error) {
	query, args, err := qb.Select(profileColumns...).
		From(tableClaimedProfiles).
		Where(conditions...).
		OrderBy("claimed_at DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return claim.ClaimedProfile{}, false, fmt.Errorf("build %s query: %w", op, err)
	}

	var row claimedProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return claim.ClaimedProfile{}, false, nil
		}
		return claim.ClaimedProfile{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return claimedProfileFromRow(row), true, nil
}

func (r *ClaimedProfileRepository) List(ctx context.Context) ([]claim.ClaimedProfile, error) {
	query, args, err := qb.Select(profileColumns...).
		From(tableClaimedProfiles).
		OrderBy("claimed_at DESC", "id ASC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list claimed profiles query: %w", err)
	}

	var rows []claimedProfileTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list claimed profiles: %w", err)
	}

	out := make([]claim.ClaimedProfile, 0, len(rows))
	for _, row := range rows {
		out = append(out, claimedProfileFromRow(row))
	}
	return out, nil
}

func (r *ClaimedProfileRepository) Update(ctx context.Context, id string, updates claim.Updates) (claim.ClaimedProfile, bool, error) {
	query, args, err := profileUpdateQuery(id, updates, r.now().UTC())
	if err != nil {
		return claim.ClaimedProfile{}, false, fmt.Errorf("build update claimed profile query: %w", err)
	}

	var row claimedProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return claim.ClaimedProfile{}, false, nil
		}
		return claim.ClaimedProfile{}, false, fmt.Errorf("update claimed profile: %w", err)
	}
	return claimedProfileFromRow(row), true, nil
}

// profileUpdateQuery sets columns in a stable order so identical updates
// produce identical statements.
func profileUpdateQuery(id string, updates claim.Updates, now time.Time) (string, []any, error) {
	columns := updates.Columns()
	names := make([]string, 0, len(columns))
	for name := range columns {
		names = append(names, name)
	}
	sort.Strings(names)

	builder := qb.Update(tableClaimedProfiles)
	for _, name := range names {
		builder = builder.Set(name, columns[name])
	}
	return builder.
		Set("updated_at", now).
		Where(qb.Eq("id", strings.TrimSpace(id))).
		Suffix(returning(profileColumns)).
		ToSQL()
}

func (r *ClaimedProfileRepository) Delete(ctx context.Context, id string) error {
	query, args, err := qb.DeleteFrom(tableClaimedProfiles).
		Where(qb.Eq("id", strings.TrimSpace(id))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete claimed profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete claimed profile: %w", err)
	}
	return nil
}

type UserProfileRepository struct {
	db *sqlx.DB
}

func NewUserProfileRepository(db *sqlx.DB) *UserProfileRepository {
	return &UserProfileRepository{db: db}
}

func (r *UserProfileRepository) Upsert(ctx context.Context, item claim.UserProfile) (claim.UserProfile, error) {
	insertModel := userProfileInsertModel{
		UserID:           strings.TrimSpace(item.UserID),
		Email:            claim.NormalizeEmail(item.Email),
		UserType:         strings.TrimSpace(item.UserType),
		ClaimedProfileID: strings.TrimSpace(item.ClaimedProfileID),
	}

	query, args, err := qb.InsertModel(tableUserProfiles, insertModel, `ON CONFLICT (user_id)
DO UPDATE SET
    email = EXCLUDED.email,
    user_type = EXCLUDED.user_type,
    claimed_profile_id = EXCLUDED.claimed_profile_id
`+returning(userColumns))
	if err != nil {
		return claim.UserProfile{}, fmt.Errorf("build upsert user profile query: %w", err)
	}

	var row userProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return claim.UserProfile{}, fmt.Errorf("upsert user profile: %w", err)
	}
	return userProfileFromRow(row), nil
}

func (r *UserProfileRepository) GetByUserID(ctx context.Context, userID string) (claim.UserProfile, bool, error) {
	query, args, err := qb.Select(userColumns...).
		From(tableUserProfiles).
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		Limit(1).
		ToSQL()
	if err != nil {
		return claim.UserProfile{}, false, fmt.Errorf("build get user profile query: %w", err)
	}

	var row userProfileTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return claim.UserProfile{}, false, nil
		}
		return claim.UserProfile{}, false, fmt.Errorf("get user profile: %w", err)
	}
	return userProfileFromRow(row), true, nil
}

func (r *UserProfileRepository) Delete(ctx context.Context, userID string) error {
	query, args, err := qb.DeleteFrom(tableUserProfiles).
		Where(qb.Eq("user_id", strings.TrimSpace(userID))).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete user profile query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete user profile: %w", err)
	}
	return nil
}
