package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/voyago/travelbook/internal/domain"
	"github.com/voyago/travelbook/internal/http/response"
	"github.com/voyago/travelbook/internal/service"
	"github.com/voyago/travelbook/pkg/auth"
	"github.com/voyago/travelbook/pkg/config"
	"github.com/voyago/travelbook/pkg/logger"
)

type claimsKey struct{}

type Handlers struct {
	authService           service.AuthService
	bookingService        service.BookingService
	walletService         service.WalletService
	reviewService         service.ReviewService
	notificationService   service.NotificationService
	catalogService        service.CatalogService
	recommendationService service.RecommendationService
	config                *config.Config
}

func New(
	authService service.AuthService,
	bookingService service.BookingService,
	walletService service.WalletService,
	reviewService service.ReviewService,
	notificationService service.NotificationService,
	catalogService service.CatalogService,
	recommendationService service.RecommendationService,
	cfg *config.Config,
) *Handlers {
	return &Handlers{
		authService:           authService,
		bookingService:        bookingService,
		walletService:         walletService,
		reviewService:         reviewService,
		notificationService:   notificationService,
		catalogService:        catalogService,
		recommendationService: recommendationService,
		config:                cfg,
	}
}

// RequireJWT authenticates the request and optionally restricts it to a role.
// Admins pass any role gate.
func (h *Handlers) RequireJWT(requiredRole string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if !strings.HasPrefix(authHeader, "Bearer ") {
				response.Unauthorized(w, "Missing or invalid authorization header")
				return
			}

			token := strings.TrimPrefix(authHeader, "Bearer ")
			claims, err := auth.Parse(token, h.config.Auth.JWTSecret)
			if err != nil {
				response.Unauthorized(w, "Invalid token")
				return
			}

			if requiredRole != "" && claims.Role != requiredRole && claims.Role != string(domain.RoleAdmin) {
				response.Forbidden(w, "Insufficient permissions")
				return
			}

			ctx := context.WithValue(r.Context(), logger.UserIDKey, claims.Sub)
			ctx = context.WithValue(ctx, claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func getClaims(r *http.Request) *auth.Claims {
	if claims, ok := r.Context().Value(claimsKey{}).(*auth.Claims); ok {
		return claims
	}
	return nil
}

func callerRole(claims *auth.Claims) domain.Role {
	role, _ := domain.ParseRole(claims.Role)
	return role
}

func writeJSON(w http.ResponseWriter, statusCode int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(data)
}

// serviceError maps domain errors onto HTTP status codes and error codes.
func serviceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrInsufficientFunds):
		response.WriteError(w, http.StatusPaymentRequired, err.Error(), response.CodeInsufficientFunds)
	case errors.Is(err, domain.ErrInvalidDateRange):
		response.WriteError(w, http.StatusBadRequest, err.Error(), response.CodeInvalidDateRange)
	case errors.Is(err, domain.ErrInvalidRating):
		response.WriteError(w, http.StatusBadRequest, err.Error(), response.CodeInvalidRating)
	case errors.Is(err, domain.ErrInvalidAmount), errors.Is(err, domain.ErrInvalidPaymentMethod):
		response.WriteError(w, http.StatusBadRequest, err.Error(), response.CodeInvalidAmount)
	case errors.Is(err, domain.ErrNotFound):
		response.NotFound(w, err.Error())
	case errors.Is(err, domain.ErrNotPartner), errors.Is(err, domain.ErrForbidden):
		response.Forbidden(w, err.Error())
	case errors.Is(err, domain.ErrEmailExists):
		response.WriteError(w, http.StatusConflict, err.Error(), response.CodeEmailExists)
	default:
		response.BadRequest(w, err.Error())
	}
}

func parsePagination(r *http.Request) (limit, offset int) {
	limit = 20
	offset = 0

	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 && n <= 100 {
			limit = n
		}
	}
	if v := r.URL.Query().Get("offset"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			offset = n
		}
	}
	return limit, offset
}

func parseID(s string) (int64, bool) {
	id, err := strconv.ParseInt(s, 10, 64)
	return id, err == nil && id > 0
}
