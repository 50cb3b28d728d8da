package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	"github.com/riskibarqy/draft-roster/internal/domain/user"
	"github.com/riskibarqy/draft-roster/internal/platform/id"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
)

type SubmitClaimInput struct {
	OriginalPlayerID string
	Profile          claim.Profile
}

type SubmitClaimResult struct {
	Status  claim.Status
	Pending *claim.PendingClaim
	Profile *claim.ClaimedProfile
}

type UpdateClaimedProfileInput struct {
	ProfileID string
	// UserID, when set, must own the profile.
	UserID  string
	Updates claim.Updates
}

type rosterInvalidator interface {
	Invalidate(ctx context.Context)
}

type noopRosterInvalidator struct{}

func (noopRosterInvalidator) Invalidate(context.Context) {}

type ClaimService struct {
	pending  claim.PendingRepository
	profiles claim.ProfileRepository
	users    claim.UserProfileRepository
	ids      id.Generator
	roster   rosterInvalidator
	logger   *logging.Logger
	now      func() time.Time
}

func NewClaimService(
	pending claim.PendingRepository,
	profiles claim.ProfileRepository,
	users claim.UserProfileRepository,
	ids id.Generator,
	roster rosterInvalidator,
	logger *logging.Logger,
) *ClaimService {
	if ids == nil {
		ids = id.NewUUIDGenerator()
	}
	if roster == nil {
		roster = noopRosterInvalidator{}
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &ClaimService{
		pending:  pending,
		profiles: profiles,
		users:    users,
		ids:      ids,
		roster:   roster,
		logger:   logger.Named("claim"),
		now:      time.Now,
	}
}

// SubmitClaim records a claim on a player. A verified submitter gets an owned
// profile immediately; anyone else leaves a pending claim keyed by the email
// on the form.
func (s *ClaimService) SubmitClaim(ctx context.Context, input SubmitClaimInput, submitter *user.Principal) (SubmitClaimResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClaimService.SubmitClaim")
	defer span.End()

	input.OriginalPlayerID = strings.TrimSpace(input.OriginalPlayerID)
	input.Profile = input.Profile.Trimmed()

	fields, err := claim.ValidateProfile(ctx, input.Profile)
	if err != nil {
		return SubmitClaimResult{}, fmt.Errorf("validate claim: %w", err)
	}
	if input.OriginalPlayerID == "" {
		fields = append(fields, claim.FieldError{Field: "original_player_id", Reason: "missing"})
	}
	if len(fields) > 0 {
		return SubmitClaimResult{}, &ValidationError{Fields: fields}
	}

	if submitter != nil && submitter.EmailVerified && strings.TrimSpace(submitter.UserID) != "" {
		profile, err := s.claimDirect(ctx, input, *submitter)
		if err != nil {
			return SubmitClaimResult{}, err
		}
		s.roster.Invalidate(ctx)
		return SubmitClaimResult{Status: claim.StatusClaimed, Profile: &profile}, nil
	}

	pendingID, err := s.ids.NewID()
	if err != nil {
		return SubmitClaimResult{}, fmt.Errorf("generate pending claim id: %w", err)
	}
	saved, err := s.pending.Upsert(ctx, claim.PendingClaim{
		ID:               pendingID,
		OriginalPlayerID: input.OriginalPlayerID,
		SubmittedAt:      s.now().UTC(),
		Profile:          input.Profile,
	})
	if err != nil {
		return SubmitClaimResult{}, fmt.Errorf("save pending claim: %w", err)
	}
	s.roster.Invalidate(ctx)

	s.logger.InfoContext(ctx, "pending claim saved",
		"pending_claim_id", saved.ID,
		"original_player_id", saved.OriginalPlayerID,
	)
	return SubmitClaimResult{Status: claim.StatusPending, Pending: &saved}, nil
}

func (s *ClaimService) claimDirect(ctx context.Context, input SubmitClaimInput, submitter user.Principal) (claim.ClaimedProfile, error) {
	profile, exists, err := s.profiles.FindByOriginalAndUser(ctx, input.OriginalPlayerID, submitter.UserID)
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("find claimed profile: %w", err)
	}
	if exists {
		profile, err = s.applyResubmit(ctx, profile, input.Profile)
	} else {
		profile, err = s.createProfile(ctx, input.OriginalPlayerID, submitter.UserID, input.Profile)
	}
	if err != nil {
		return claim.ClaimedProfile{}, err
	}

	if _, err := s.users.Upsert(ctx, s.userProfileFor(submitter.UserID, submitter.Email, profile)); err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("save user profile: %w", err)
	}

	s.logger.InfoContext(ctx, "profile claimed",
		"profile_id", profile.ID,
		"original_player_id", profile.OriginalPlayerID,
		"user_id", submitter.UserID,
		"already_claimed", exists,
	)
	return profile, nil
}

// MigratePendingClaims moves every pending claim filed under email onto
// userID. Each claim goes through lookup, create, user profile and delete;
// a rerun after a failure skips the steps that already happened.
func (s *ClaimService) MigratePendingClaims(ctx context.Context, userID, email string) (int, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClaimService.MigratePendingClaims")
	defer span.End()

	userID = strings.TrimSpace(userID)
	email = claim.NormalizeEmail(email)
	if userID == "" {
		return 0, fmt.Errorf("%w: user_id is required", ErrInvalidInput)
	}
	if email == "" {
		return 0, fmt.Errorf("%w: email is required", ErrInvalidInput)
	}

	pending, err := s.pending.ListByEmail(ctx, email)
	if err != nil {
		return 0, fmt.Errorf("list pending claims: %w", err)
	}
	if len(pending) == 0 {
		return 0, nil
	}

	migrated := 0
	wrote := false
	defer func() {
		if wrote {
			s.roster.Invalidate(ctx)
		}
	}()

	for _, item := range pending {
		fail := func(step MigrationStep, err error) (int, error) {
			s.logger.WarnContext(ctx, "pending claim migration stopped",
				"pending_claim_id", item.ID,
				"original_player_id", item.OriginalPlayerID,
				"step", string(step),
				"migrated", migrated,
				"error", err,
			)
			return migrated, &PartialMigrationError{
				PendingClaimID:   item.ID,
				OriginalPlayerID: item.OriginalPlayerID,
				Step:             step,
				Migrated:         migrated,
				Err:              err,
			}
		}

		profile, exists, err := s.profiles.FindByOriginalAndUser(ctx, item.OriginalPlayerID, userID)
		if err != nil {
			return fail(StepLookupProfile, err)
		}
		if !exists {
			profile, err = s.createProfile(ctx, item.OriginalPlayerID, userID, item.Profile)
			if err != nil {
				return fail(StepCreateProfile, err)
			}
			wrote = true
		}

		if _, err := s.users.Upsert(ctx, s.userProfileFor(userID, email, profile)); err != nil {
			return fail(StepUpsertUserProfile, err)
		}
		wrote = true

		if err := s.pending.Delete(ctx, item.ID); err != nil {
			return fail(StepDeletePending, err)
		}
		migrated++
	}

	s.logger.InfoContext(ctx, "pending claims migrated", "user_id", userID, "migrated", migrated)
	return migrated, nil
}

func (s *ClaimService) UpdateClaimedProfile(ctx context.Context, input UpdateClaimedProfileInput) (claim.ClaimedProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClaimService.UpdateClaimedProfile")
	defer span.End()

	input.ProfileID = strings.TrimSpace(input.ProfileID)
	input.UserID = strings.TrimSpace(input.UserID)
	if input.ProfileID == "" {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: profile id is required", ErrInvalidInput)
	}
	if input.Updates.IsEmpty() {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: no fields to update", ErrInvalidInput)
	}
	if cleared := input.Updates.RequiredCleared(); len(cleared) > 0 {
		fields := make([]claim.FieldError, 0, len(cleared))
		for _, name := range cleared {
			fields = append(fields, claim.FieldError{Field: name, Reason: "missing"})
		}
		return claim.ClaimedProfile{}, &ValidationError{Fields: fields}
	}

	if input.UserID != "" {
		if _, err := s.ownedProfile(ctx, input.ProfileID, input.UserID); err != nil {
			return claim.ClaimedProfile{}, err
		}
	}

	updated, exists, err := s.profiles.Update(ctx, input.ProfileID, input.Updates)
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("update claimed profile: %w", err)
	}
	if !exists {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: claimed profile=%s", ErrNotFound, input.ProfileID)
	}
	s.roster.Invalidate(ctx)

	return updated, nil
}

func (s *ClaimService) GetClaimedProfileByUser(ctx context.Context, userID string) (claim.ClaimedProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClaimService.GetClaimedProfileByUser")
	defer span.End()

	userID = strings.TrimSpace(userID)
	if userID == "" {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: user id is required", ErrInvalidInput)
	}

	profile, exists, err := s.profiles.GetByUserID(ctx, userID)
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("get claimed profile by user: %w", err)
	}
	if !exists {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: claimed profile for user=%s", ErrNotFound, userID)
	}
	return profile, nil
}

func (s *ClaimService) ListClaimedProfiles(ctx context.Context) ([]claim.ClaimedProfile, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClaimService.ListClaimedProfiles")
	defer span.End()

	items, err := s.profiles.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list claimed profiles: %w", err)
	}
	return items, nil
}

// UnclaimProfile deletes a profile owned by userID and its user profile link,
// returning the player to the unclaimed roster.
func (s *ClaimService) UnclaimProfile(ctx context.Context, profileID, userID string) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.ClaimService.UnclaimProfile")
	defer span.End()

	profileID = strings.TrimSpace(profileID)
	userID = strings.TrimSpace(userID)
	if profileID == "" || userID == "" {
		return fmt.Errorf("%w: profile id and user id are required", ErrInvalidInput)
	}

	if _, err := s.ownedProfile(ctx, profileID, userID); err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, profileID); err != nil {
		return fmt.Errorf("delete claimed profile: %w", err)
	}
	s.roster.Invalidate(ctx)

	link, exists, err := s.users.GetByUserID(ctx, userID)
	if err != nil {
		return fmt.Errorf("get user profile: %w", err)
	}
	if exists && link.ClaimedProfileID == profileID {
		if err := s.users.Delete(ctx, userID); err != nil {
			return fmt.Errorf("delete user profile: %w", err)
		}
	}

	s.logger.InfoContext(ctx, "profile unclaimed", "profile_id", profileID, "user_id", userID)
	return nil
}

func (s *ClaimService) ownedProfile(ctx context.Context, profileID, userID string) (claim.ClaimedProfile, error) {
	profile, exists, err := s.profiles.GetByID(ctx, profileID)
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("get claimed profile: %w", err)
	}
	if !exists || profile.ClaimedByUserID != userID {
		return claim.ClaimedProfile{}, fmt.Errorf("%w: claimed profile=%s", ErrNotFound, profileID)
	}
	return profile, nil
}

func (s *ClaimService) createProfile(ctx context.Context, originalPlayerID, userID string, profile claim.Profile) (claim.ClaimedProfile, error) {
	profileID, err := s.ids.NewID()
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("generate claimed profile id: %w", err)
	}
	now := s.now().UTC()

	created, err := s.profiles.Create(ctx, claim.ClaimedProfile{
		ID:               profileID,
		OriginalPlayerID: originalPlayerID,
		ClaimedByUserID:  userID,
		ClaimedAt:        now,
		UpdatedAt:        now,
		Profile:          profile,
	})
	if errors.Is(err, claim.ErrDuplicateProfile) {
		existing, found, findErr := s.profiles.FindByOriginalAndUser(ctx, originalPlayerID, userID)
		if findErr != nil {
			return claim.ClaimedProfile{}, fmt.Errorf("find claimed profile after conflict: %w", findErr)
		}
		if found {
			return existing, nil
		}
	}
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("create claimed profile: %w", err)
	}
	return created, nil
}

// applyResubmit writes the changed fields of a repeat claim onto the profile
// the user already owns.
func (s *ClaimService) applyResubmit(ctx context.Context, current claim.ClaimedProfile, next claim.Profile) (claim.ClaimedProfile, error) {
	updates := next.ChangesFrom(current.Profile)
	if updates.IsEmpty() {
		return current, nil
	}
	updated, exists, err := s.profiles.Update(ctx, current.ID, updates)
	if err != nil {
		return claim.ClaimedProfile{}, fmt.Errorf("update claimed profile: %w", err)
	}
	if !exists {
		return s.createProfile(ctx, current.OriginalPlayerID, current.ClaimedByUserID, next)
	}
	return updated, nil
}

func (s *ClaimService) userProfileFor(userID, email string, profile claim.ClaimedProfile) claim.UserProfile {
	email = claim.NormalizeEmail(email)
	if email == "" {
		email = profile.Email
	}
	return claim.UserProfile{
		UserID:           userID,
		Email:            email,
		UserType:         claim.UserTypePlayer,
		ClaimedProfileID: profile.ID,
		CreatedAt:        s.now().UTC(),
	}
}
