package apiapp

import (
	"errors"
	"net/http"
	"strings"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

func ApplyMiddlewares(r chiRouter, log *zap.Logger) {
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))
	r.Use(requestLogger(log))
}

// APIKeyMiddleware gates every route behind the shared client key. A missing
// header is 401, a wrong key is 403.
func APIKeyMiddleware(apiKey string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			err := authsvc.CheckAPIKey(apiKey, r.Header.Get(authsvc.APIKeyHeader))
			switch {
			case err == nil:
				next.ServeHTTP(w, r)
			case errors.Is(err, authsvc.ErrUnauthenticated):
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "MISSING_API_KEY",
					Message: "x-api-key header is required",
				})
			case errors.Is(err, authsvc.ErrForbidden):
				httperrors.Write(w, http.StatusForbidden, httperrors.APIError{
					Code:    "INVALID_API_KEY",
					Message: "invalid api key",
				})
			default:
				if log != nil {
					log.Error("api key gate misconfigured", zap.Error(err))
				}
				httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
					Code:    "INTERNAL_ERROR",
					Message: "internal server error",
				})
			}
		})
	}
}

func AuthMiddleware(authService *authsvc.Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if authService == nil {
				httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
					Code:    "AUTH_SERVICE_UNAVAILABLE",
					Message: "auth service is unavailable",
				})
				return
			}

			header := r.Header.Get("Authorization")
			if strings.TrimSpace(header) == "" {
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "MISSING_TOKEN",
					Message: "authorization header is required",
				})
				return
			}

			accessToken, ok := extractBearerToken(header)
			if !ok {
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "MALFORMED_TOKEN",
					Message: "authorization header must be: Bearer <token>",
				})
				return
			}

			identity, err := authService.ValidateAccessToken(r.Context(), accessToken)
			if err != nil {
				if log != nil {
					log.Debug("auth middleware validation failed", zap.Error(err))
				}
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "INVALID_TOKEN",
					Message: "invalid or expired access token",
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(authsvc.WithIdentity(r.Context(), identity)))
		})
	}
}

// AdminMiddleware must run after AuthMiddleware. The admin flag is read from
// the account row on every request, never from the token.
func AdminMiddleware(authService *authsvc.Service, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			identity, ok := authsvc.IdentityFromContext(r.Context())
			if !ok {
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "UNAUTHORIZED",
					Message: "authentication required",
				})
				return
			}

			admin, err := authService.RequireAdmin(r.Context(), identity)
			switch {
			case err == nil:
				next.ServeHTTP(w, r.WithContext(authsvc.WithIdentity(r.Context(), admin)))
			case errors.Is(err, authsvc.ErrNotFound):
				httperrors.Write(w, http.StatusNotFound, httperrors.APIError{
					Code:    "USER_NOT_FOUND",
					Message: "user not found",
				})
			case errors.Is(err, authsvc.ErrForbidden):
				httperrors.Write(w, http.StatusForbidden, httperrors.APIError{
					Code:    "ADMIN_REQUIRED",
					Message: "administrator access required",
				})
			case errors.Is(err, authsvc.ErrUnauthenticated):
				httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{
					Code:    "UNAUTHORIZED",
					Message: "authentication required",
				})
			default:
				if log != nil {
					log.Error("admin check failed", zap.Int64("user_id", identity.UserID), zap.Error(err))
				}
				httperrors.Write(w, http.StatusInternalServerError, httperrors.APIError{
					Code:    "INTERNAL_ERROR",
					Message: "internal server error",
				})
			}
		})
	}
}

func extractBearerToken(value string) (string, bool) {
	parts := strings.SplitN(strings.TrimSpace(value), " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || strings.TrimSpace(parts[1]) == "" {
		return "", false
	}
	return strings.TrimSpace(parts[1]), true
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			if log != nil {
				log.Info("http_request",
					zap.String("request_id", chimiddleware.GetReqID(r.Context())),
					zap.String("method", r.Method),
					zap.String("path", r.URL.Path),
					zap.Int("status", ww.Status()),
					zap.Duration("duration", time.Since(start)),
				)
			}
		})
	}
}

type chiRouter interface {
	Use(middlewares ...func(http.Handler) http.Handler)
}
