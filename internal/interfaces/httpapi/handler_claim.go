package httpapi

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/riskibarqy/draft-roster/internal/domain/claim"
	"github.com/riskibarqy/draft-roster/internal/domain/user"
	"github.com/riskibarqy/draft-roster/internal/usecase"
)

// SubmitClaim accepts a claim from anyone. A bearer token with a verified
// email turns the claim into an owned profile straight away.
func (h *Handler) SubmitClaim(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.SubmitClaim")
	defer span.End()

	var req submitClaimRequest
	if err := h.decodeJSON(ctx, r, &req, false); err != nil {
		writeError(ctx, w, err)
		return
	}

	var submitter *user.Principal
	if principal, ok := principalFromContext(ctx); ok {
		submitter = &principal
	}

	result, err := h.claimService.SubmitClaim(ctx, usecase.SubmitClaimInput{
		OriginalPlayerID: req.OriginalPlayerID,
		Profile:          req.Profile,
	}, submitter)
	if err != nil {
		h.logger.WarnContext(ctx, "submit claim failed", "original_player_id", req.OriginalPlayerID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusCreated, submitResultToDTO(result))
}

// MigrateClaims moves pending claims filed under the caller's email onto the
// caller's account. The email must be verified.
func (h *Handler) MigrateClaims(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.MigrateClaims")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}
	if !principal.EmailVerified || strings.TrimSpace(principal.Email) == "" {
		writeError(ctx, w, fmt.Errorf("%w: email is not verified", usecase.ErrUnauthorized))
		return
	}

	migrated, err := h.claimService.MigratePendingClaims(ctx, principal.UserID, principal.Email)
	if err != nil {
		h.logger.ErrorContext(ctx, "migrate pending claims failed", "user_id", principal.UserID, "migrated", migrated, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, migrateResultDTO{Migrated: migrated})
}

func (h *Handler) ListClaimedProfiles(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.ListClaimedProfiles")
	defer span.End()

	profiles, err := h.claimService.ListClaimedProfiles(ctx)
	if err != nil {
		h.logger.WarnContext(ctx, "list claimed profiles failed", "error", err)
		writeError(ctx, w, err)
		return
	}

	items := make([]claimedProfileDTO, 0, len(profiles))
	for _, p := range profiles {
		items = append(items, claimedProfileToDTO(p))
	}
	writeSuccess(ctx, w, http.StatusOK, items)
}

func (h *Handler) GetClaimedProfileByUser(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.GetClaimedProfileByUser")
	defer span.End()

	userID := strings.TrimSpace(r.PathValue("userID"))
	profile, err := h.claimService.GetClaimedProfileByUser(ctx, userID)
	if err != nil {
		h.logger.WarnContext(ctx, "get claimed profile failed", "user_id", userID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, claimedProfileToDTO(profile))
}

func (h *Handler) UpdateClaimedProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UpdateClaimedProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	var req updateClaimRequest
	if err := h.decodeJSON(ctx, r, &req, true); err != nil {
		writeError(ctx, w, err)
		return
	}
	if err := h.validateRequest(ctx, req); err != nil {
		writeError(ctx, w, err)
		return
	}

	profileID := strings.TrimSpace(r.PathValue("profileID"))
	profile, err := h.claimService.UpdateClaimedProfile(ctx, usecase.UpdateClaimedProfileInput{
		ProfileID: profileID,
		UserID:    principal.UserID,
		Updates:   claim.Updates(req),
	})
	if err != nil {
		h.logger.WarnContext(ctx, "update claimed profile failed", "profile_id", profileID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, claimedProfileToDTO(profile))
}

func (h *Handler) UnclaimProfile(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.UnclaimProfile")
	defer span.End()

	principal, ok := principalFromContext(ctx)
	if !ok {
		writeError(ctx, w, fmt.Errorf("%w: principal is missing from request context", usecase.ErrUnauthorized))
		return
	}

	profileID := strings.TrimSpace(r.PathValue("profileID"))
	if err := h.claimService.UnclaimProfile(ctx, profileID, principal.UserID); err != nil {
		h.logger.WarnContext(ctx, "unclaim profile failed", "profile_id", profileID, "user_id", principal.UserID, "error", err)
		writeError(ctx, w, err)
		return
	}

	writeSuccess(ctx, w, http.StatusOK, unclaimResultDTO{ProfileID: profileID, Status: string(claim.StatusUnclaimed)})
}
