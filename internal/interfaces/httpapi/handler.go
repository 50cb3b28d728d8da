package httpapi

import (
	"context"
	"fmt"
	"io"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"github.com/go-playground/validator/v10"
	"github.com/riskibarqy/draft-roster/internal/platform/logging"
	"github.com/riskibarqy/draft-roster/internal/usecase"
)

const maxRequestBodyBytes = 1 << 20

var (
	lenientJSON = sonic.ConfigDefault
	strictJSON  = sonic.Config{DisallowUnknownFields: true}.Froze()
)

type Handler struct {
	rosterService *usecase.RosterService
	claimService  *usecase.ClaimService
	logger        *logging.Logger
	validator     *validator.Validate
}

func NewHandler(
	rosterService *usecase.RosterService,
	claimService *usecase.ClaimService,
	logger *logging.Logger,
) *Handler {
	if logger == nil {
		logger = logging.Default()
	}

	return &Handler{
		rosterService: rosterService,
		claimService:  claimService,
		logger:        logger.Named("httpapi"),
		validator:     validator.New(),
	}
}

func (h *Handler) Healthz(w http.ResponseWriter, r *http.Request) {
	ctx, span := startSpan(r.Context(), "httpapi.Handler.Healthz")
	defer span.End()

	players, cached := h.rosterService.CachedSize(ctx)
	writeSuccess(ctx, w, http.StatusOK, healthDTO{
		Status:       "ok",
		RosterCached: cached,
		Players:      players,
	})
}

func (h *Handler) decodeJSON(ctx context.Context, r *http.Request, dst any, strict bool) error {
	_, span := startSpan(ctx, "httpapi.Handler.decodeJSON")
	defer span.End()

	raw, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBodyBytes+1))
	if err != nil {
		return fmt.Errorf("%w: read request body: %v", usecase.ErrInvalidInput, err)
	}
	if len(raw) > maxRequestBodyBytes {
		return fmt.Errorf("%w: request body too large", usecase.ErrInvalidInput)
	}
	if len(raw) == 0 {
		return fmt.Errorf("%w: request body is required", usecase.ErrInvalidInput)
	}

	api := lenientJSON
	if strict {
		api = strictJSON
	}
	if err := api.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("%w: invalid JSON payload: %v", usecase.ErrInvalidInput, err)
	}
	return nil
}

func (h *Handler) validateRequest(ctx context.Context, payload any) error {
	ctx, span := startSpan(ctx, "httpapi.Handler.validateRequest")
	defer span.End()

	if err := h.validator.StructCtx(ctx, payload); err != nil {
		return fmt.Errorf("%w: validation failed: %v", usecase.ErrInvalidInput, err)
	}

	return nil
}
