package usecase

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	"github.com/riskibarqy/draft-roster/internal/domain/user"
	"github.com/riskibarqy/draft-roster/internal/infrastructure/repository/memory"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
)

type sequenceIDs struct {
	mu sync.Mutex
	n  int
}

func (g *sequenceIDs) NewID() (string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("id-%d", g.n), nil
}

type countingInvalidator struct {
	mu    sync.Mutex
	calls int
}

func (c *countingInvalidator) Invalidate(context.Context) {
	c.mu.Lock()
	c.calls++
	c.mu.Unlock()
}

func (c *countingInvalidator) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.calls
}

type claimFixture struct {
	service     *ClaimService
	pending     *memory.PendingClaimRepository
	profiles    *memory.ClaimedProfileRepository
	users       *memory.UserProfileRepository
	invalidator *countingInvalidator
}

func newClaimFixture() claimFixture {
	f := claimFixture{
		pending:     memory.NewPendingClaimRepository(),
		profiles:    memory.NewClaimedProfileRepository(),
		users:       memory.NewUserProfileRepository(),
		invalidator: &countingInvalidator{},
	}
	f.service = NewClaimService(f.pending, f.profiles, f.users, &sequenceIDs{}, f.invalidator, logging.NewNop())
	f.service.now = func() time.Time { return time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC) }
	return f
}

func validClaimInput() SubmitClaimInput {
	return SubmitClaimInput{
		OriginalPlayerID: "90412",
		Profile: claim.Profile{
			Name:                     "Jose Garcia",
			Position:                 "CB",
			CurrentSchool:            "X",
			DivisionTransferringFrom: "D1",
			Email:                    "a@b.com",
		},
	}
}

func TestClaimService_SubmitClaim_MissingNameIsValidationError(t *testing.T) {
	t.Parallel()

	f := newClaimFixture()
	input := validClaimInput()
	input.Profile.Name = ""

	_, err := f.service.SubmitClaim(context.Background(), input, nil)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("validation error must wrap ErrInvalidInput")
	}
	if !reflect.DeepEqual(verr.FieldNames(), []string{"name"}) {
		t.Fatalf("expected only name reported, got %v", verr.FieldNames())
	}
	if f.invalidator.count() != 0 {
		t.Fatalf("failed submission must not invalidate the roster")
	}
}

func TestClaimService_SubmitClaim_ReportsEveryBlankField(t *testing.T) {
	t.Parallel()

	f := newClaimFixture()
	_, err := f.service.SubmitClaim(context.Background(), SubmitClaimInput{Profile: claim.Profile{Position: " "}}, nil)

	var verr *ValidationError
	if !errors.As(err, &verr) {
		t.Fatalf("expected ValidationError, got %v", err)
	}
	want := []string{"name", "position", "current_school", "division_transferring_from", "email", "original_player_id"}
	if !reflect.DeepEqual(verr.FieldNames(), want) {
		t.Fatalf("got %v want %v", verr.FieldNames(), want)
	}
}

func TestClaimService_PendingThenMigrate(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()

	res, err := f.service.SubmitClaim(ctx, validClaimInput(), nil)
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}
	if res.Status != claim.StatusPending || res.Pending == nil {
		t.Fatalf("expected pending claim, got %+v", res)
	}

	pending, _ := f.pending.ListByEmail(ctx, "a@b.com")
	if len(pending) != 1 {
		t.Fatalf("expected one pending claim, got %d", len(pending))
	}

	migrated, err := f.service.MigratePendingClaims(ctx, "u1", "A@B.com ")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated != 1 {
		t.Fatalf("expected one migrated claim, got %d", migrated)
	}

	profiles, _ := f.profiles.List(ctx)
	if len(profiles) != 1 || profiles[0].ClaimedByUserID != "u1" || profiles[0].OriginalPlayerID != "90412" {
		t.Fatalf("expected exactly one profile bound to u1, got %+v", profiles)
	}
	pending, _ = f.pending.ListByEmail(ctx, "a@b.com")
	if len(pending) != 0 {
		t.Fatalf("expected zero pending claims after migration, got %d", len(pending))
	}
	link, ok, _ := f.users.GetByUserID(ctx, "u1")
	if !ok || link.ClaimedProfileID != profiles[0].ID || link.UserType != claim.UserTypePlayer {
		t.Fatalf("unexpected user profile: %+v ok=%v", link, ok)
	}

	again, err := f.service.MigratePendingClaims(ctx, "u1", "a@b.com")
	if err != nil || again != 0 {
		t.Fatalf("rerun must be a no-op, got %d %v", again, err)
	}
	profiles, _ = f.profiles.List(ctx)
	if len(profiles) != 1 {
		t.Fatalf("rerun must not duplicate profiles, got %d", len(profiles))
	}
	if f.invalidator.count() != 2 {
		t.Fatalf("expected invalidation after submit and migrate, got %d", f.invalidator.count())
	}
}

func TestClaimService_ResubmittedPendingClaimIsReplaced(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()

	first := validClaimInput()
	second := validClaimInput()
	second.Profile.Position = "LB"

	if _, err := f.service.SubmitClaim(ctx, first, nil); err != nil {
		t.Fatalf("first submit: %v", err)
	}
	if _, err := f.service.SubmitClaim(ctx, second, nil); err != nil {
		t.Fatalf("second submit: %v", err)
	}

	pending, _ := f.pending.ListByEmail(ctx, "a@b.com")
	if len(pending) != 1 || pending[0].Position != "LB" {
		t.Fatalf("expected one replaced pending claim, got %+v", pending)
	}
}

func TestClaimService_VerifiedSubmitterClaimsDirectly(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()
	submitter := &user.Principal{UserID: "u1", Email: "a@b.com", EmailVerified: true}

	res, err := f.service.SubmitClaim(ctx, validClaimInput(), submitter)
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}
	if res.Status != claim.StatusClaimed || res.Profile == nil || res.Profile.ClaimedByUserID != "u1" {
		t.Fatalf("expected claimed profile, got %+v", res)
	}
	if pending, _ := f.pending.ListByEmail(ctx, "a@b.com"); len(pending) != 0 {
		t.Fatalf("verified claim must not leave a pending claim")
	}

	again := validClaimInput()
	again.Profile.CurrentSchool = "Navarro College"
	again.Profile.Height = "181cm"
	resubmitted, err := f.service.SubmitClaim(ctx, again, submitter)
	if err != nil {
		t.Fatalf("resubmit: %v", err)
	}
	if profiles, _ := f.profiles.List(ctx); len(profiles) != 1 {
		t.Fatalf("resubmitting must not duplicate the profile, got %d", len(profiles))
	}
	if resubmitted.Profile.ID != res.Profile.ID {
		t.Fatalf("resubmit must keep profile id %s, got %s", res.Profile.ID, resubmitted.Profile.ID)
	}
	stored, _, _ := f.profiles.GetByID(ctx, res.Profile.ID)
	if stored.CurrentSchool != "Navarro College" || stored.Height != "181cm" || stored.Name != "Jose Garcia" {
		t.Fatalf("resubmitted fields must be applied, got %+v", stored.Profile)
	}
}

// staleLookupProfiles misses the first lookups, as a reader racing a
// concurrent claim would.
type staleLookupProfiles struct {
	*memory.ClaimedProfileRepository
	mu     sync.Mutex
	misses int
}

func (r *staleLookupProfiles) FindByOriginalAndUser(ctx context.Context, originalPlayerID, userID string) (claim.ClaimedProfile, bool, error) {
	r.mu.Lock()
	miss := r.misses > 0
	if miss {
		r.misses--
	}
	r.mu.Unlock()
	if miss {
		return claim.ClaimedProfile{}, false, nil
	}
	return r.ClaimedProfileRepository.FindByOriginalAndUser(ctx, originalPlayerID, userID)
}

func TestClaimService_MigrateAdoptsProfileCreatedConcurrently(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()
	profiles := &staleLookupProfiles{ClaimedProfileRepository: f.profiles, misses: 1}
	f.service = NewClaimService(f.pending, profiles, f.users, &sequenceIDs{}, f.invalidator, logging.NewNop())

	if _, err := f.profiles.Create(ctx, claim.ClaimedProfile{ID: "existing", OriginalPlayerID: "90412", ClaimedByUserID: "u1"}); err != nil {
		t.Fatalf("seed profile: %v", err)
	}
	if _, err := f.pending.Upsert(ctx, claim.PendingClaim{ID: "p1", OriginalPlayerID: "90412", Profile: validClaimInput().Profile}); err != nil {
		t.Fatalf("seed pending: %v", err)
	}

	migrated, err := f.service.MigratePendingClaims(ctx, "u1", "a@b.com")
	if err != nil {
		t.Fatalf("migrate: %v", err)
	}
	if migrated != 1 {
		t.Fatalf("expected 1 migrated, got %d", migrated)
	}
	if all, _ := f.profiles.List(ctx); len(all) != 1 {
		t.Fatalf("expected the existing profile only, got %d", len(all))
	}
	up, ok, _ := f.users.GetByUserID(ctx, "u1")
	if !ok || up.ClaimedProfileID != "existing" {
		t.Fatalf("expected user profile linked to existing, got %+v", up)
	}
}

func TestClaimService_ConcurrentMigrationsCreateOneProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()
	if _, err := f.pending.Upsert(ctx, claim.PendingClaim{ID: "p1", OriginalPlayerID: "90412", Profile: validClaimInput().Profile}); err != nil {
		t.Fatalf("seed pending: %v", err)
	}

	var wg sync.WaitGroup
	errs := make([]error, 8)
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, errs[i] = f.service.MigratePendingClaims(ctx, "u1", "a@b.com")
		}(i)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			t.Fatalf("migration %d: %v", i, err)
		}
	}
	if all, _ := f.profiles.List(ctx); len(all) != 1 {
		t.Fatalf("expected exactly one claimed profile, got %d", len(all))
	}
}

func TestClaimService_UnverifiedSubmitterLeavesPendingClaim(t *testing.T) {
	t.Parallel()

	f := newClaimFixture()
	res, err := f.service.SubmitClaim(context.Background(), validClaimInput(), &user.Principal{UserID: "u1", Email: "a@b.com"})
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}
	if res.Status != claim.StatusPending {
		t.Fatalf("expected pending status for unverified email, got %s", res.Status)
	}
}

func TestClaimService_UpdateClaimedProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()
	res, err := f.service.SubmitClaim(ctx, validClaimInput(), &user.Principal{UserID: "u1", EmailVerified: true})
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}
	before := f.invalidator.count()

	highlights := "https://video.local/jg"
	updated, err := f.service.UpdateClaimedProfile(ctx, UpdateClaimedProfileInput{
		ProfileID: res.Profile.ID,
		UserID:    "u1",
		Updates:   claim.Updates{Highlights: &highlights},
	})
	if err != nil {
		t.Fatalf("update: %v", err)
	}
	if updated.Highlights != highlights || updated.Name != "Jose Garcia" {
		t.Fatalf("unexpected updated profile: %+v", updated)
	}
	if f.invalidator.count() != before+1 {
		t.Fatalf("update must invalidate the roster")
	}

	_, err = f.service.UpdateClaimedProfile(ctx, UpdateClaimedProfileInput{ProfileID: "missing", Updates: claim.Updates{Highlights: &highlights}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for unknown profile, got %v", err)
	}

	_, err = f.service.UpdateClaimedProfile(ctx, UpdateClaimedProfileInput{ProfileID: res.Profile.ID, UserID: "intruder", Updates: claim.Updates{Highlights: &highlights}})
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}

	_, err = f.service.UpdateClaimedProfile(ctx, UpdateClaimedProfileInput{ProfileID: res.Profile.ID})
	if !errors.Is(err, ErrInvalidInput) {
		t.Fatalf("expected ErrInvalidInput for empty updates, got %v", err)
	}

	blank := ""
	_, err = f.service.UpdateClaimedProfile(ctx, UpdateClaimedProfileInput{ProfileID: res.Profile.ID, Updates: claim.Updates{Name: &blank}})
	var verr *ValidationError
	if !errors.As(err, &verr) || verr.FieldNames()[0] != "name" {
		t.Fatalf("expected validation error for blank name, got %v", err)
	}
}

func TestClaimService_UnclaimProfile(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()
	res, err := f.service.SubmitClaim(ctx, validClaimInput(), &user.Principal{UserID: "u1", EmailVerified: true})
	if err != nil {
		t.Fatalf("submit claim: %v", err)
	}

	if err := f.service.UnclaimProfile(ctx, res.Profile.ID, "u2"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound for non-owner, got %v", err)
	}
	if err := f.service.UnclaimProfile(ctx, res.Profile.ID, "u1"); err != nil {
		t.Fatalf("unclaim: %v", err)
	}

	if _, err := f.service.GetClaimedProfileByUser(ctx, "u1"); !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected profile gone, got %v", err)
	}
	if _, ok, _ := f.users.GetByUserID(ctx, "u1"); ok {
		t.Fatalf("expected user profile link removed")
	}
}

func TestClaimService_ListClaimedProfilesMostRecentFirst(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	f := newClaimFixture()
	clock := time.Date(2026, 4, 1, 10, 0, 0, 0, time.UTC)
	f.service.now = func() time.Time {
		clock = clock.Add(time.Minute)
		return clock
	}

	for _, uid := range []string{"u1", "u2"} {
		input := validClaimInput()
		input.OriginalPlayerID = "p-" + uid
		if _, err := f.service.SubmitClaim(ctx, input, &user.Principal{UserID: uid, EmailVerified: true}); err != nil {
			t.Fatalf("submit %s: %v", uid, err)
		}
	}

	items, err := f.service.ListClaimedProfiles(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(items) != 2 || items[0].ClaimedByUserID != "u2" {
		t.Fatalf("expected most recent claim first, got %+v", items)
	}
}
