package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	"github.com/Rudio1/api-meals/internal/services/content"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

// Failures logs unexpected errors and turns them into 500 responses. With
// Verbose set the error text is echoed back in the detail field.
type Failures struct {
	Log     *zap.Logger
	Verbose bool
}

func (f Failures) Internal(w http.ResponseWriter, r *http.Request, err error) {
	if f.Log != nil {
		f.Log.Error("request failed",
			zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Error(err),
		)
	}

	payload := httperrors.APIError{Code: "INTERNAL_ERROR", Message: "internal server error"}
	if f.Verbose && err != nil {
		payload.Detail = err.Error()
	}
	httperrors.Write(w, http.StatusInternalServerError, payload)
}

// Content maps content service errors; anything unrecognised is a 500.
func (f Failures) Content(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, content.ErrValidation):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, content.ErrNotFound):
		writeNotFound(w, "NOT_FOUND", "resource not found")
	case errors.Is(err, content.ErrForbidden):
		writeForbidden(w, "FORBIDDEN", "only the owner may modify this resource")
	case errors.Is(err, content.ErrConflict):
		writeConflict(w, "CONFLICT", "resource already exists")
	default:
		f.Internal(w, r, err)
	}
}

func decodeJSON(r *http.Request, target any) error {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()
	return decoder.Decode(target)
}

func pathID(r *http.Request, name string) (int64, bool) {
	id, err := strconv.ParseInt(chi.URLParam(r, name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

func queryInt(r *http.Request, name string) int {
	value, err := strconv.Atoi(strings.TrimSpace(r.URL.Query().Get(name)))
	if err != nil {
		return 0
	}
	return value
}

func requireIdentity(w http.ResponseWriter, r *http.Request) (authsvc.Identity, bool) {
	identity, ok := authsvc.IdentityFromContext(r.Context())
	if !ok {
		writeUnauthorized(w, "UNAUTHORIZED", "authentication required")
		return authsvc.Identity{}, false
	}
	return identity, true
}

func expiresIn(at time.Time) int64 {
	return maxInt64(0, int64(time.Until(at).Seconds()))
}

func writeBadRequest(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func writeUnauthorized(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusUnauthorized, httperrors.APIError{Code: code, Message: message})
}

func writeForbidden(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusForbidden, httperrors.APIError{Code: code, Message: message})
}

func writeNotFound(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusNotFound, httperrors.APIError{Code: code, Message: message})
}

// writeConflict reports a uniqueness or in-use clash. Clients have always
// received these as 400 with a distinguishing code.
func writeConflict(w http.ResponseWriter, code, message string) {
	httperrors.Write(w, http.StatusBadRequest, httperrors.APIError{Code: code, Message: message})
}

func maxInt64(a, b int64) int64 {
	if a > b {
		return a
	}
	return b
}
