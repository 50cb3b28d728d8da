package httpapi

import "net/http"

func registerSystemRoutes(mux *http.ServeMux, handler *Handler, swaggerEnabled bool) {
	mux.HandleFunc("GET /healthz", handler.Healthz)
	if !swaggerEnabled {
		return
	}

	mux.HandleFunc("GET /openapi.yaml", handler.OpenAPI)
	mux.HandleFunc("GET /docs", handler.SwaggerUI)
	mux.HandleFunc("GET /docs/", handler.SwaggerUI)
}

func registerPublicRosterRoutes(mux *http.ServeMux, handler *Handler) {
	mux.HandleFunc("GET /v1/players", handler.ListPlayers)
	mux.HandleFunc("GET /v1/claims", handler.ListClaimedProfiles)
	mux.HandleFunc("GET /v1/claims/users/{userID}", handler.GetClaimedProfileByUser)
}

func registerClaimRoutes(mux *http.ServeMux, handler *Handler, verifier TokenVerifier) {
	mux.Handle("POST /v1/claims", OptionalAuth(verifier, http.HandlerFunc(handler.SubmitClaim)))
	mux.Handle("POST /v1/claims/migrate", RequireAuth(verifier, http.HandlerFunc(handler.MigrateClaims)))
	mux.Handle("PATCH /v1/claims/{profileID}", RequireAuth(verifier, http.HandlerFunc(handler.UpdateClaimedProfile)))
	mux.Handle("DELETE /v1/claims/{profileID}", RequireAuth(verifier, http.HandlerFunc(handler.UnclaimProfile)))
}

func registerInternalRoutes(mux *http.ServeMux, handler *Handler, internalJobToken string) {
	mux.Handle("POST /v1/internal/roster/invalidate", RequireInternalJobToken(internalJobToken, http.HandlerFunc(handler.InvalidateRoster)))
}
