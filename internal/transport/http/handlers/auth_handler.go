package handlers

import (
	"errors"
	"net/http"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
	"github.com/Rudio1/api-meals/internal/transport/http/dto"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

type AuthHandler struct {
	service  *authsvc.Service
	failures Failures
}

func NewAuthHandler(service *authsvc.Service, failures Failures) *AuthHandler {
	return &AuthHandler{service: service, failures: failures}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	account, err := h.service.Register(r.Context(), authsvc.RegisterInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httperrors.Write(w, http.StatusCreated, dto.RegisterResponse{
		Message: "user created",
		User:    userResponse(account),
	})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}
	if req.Email == "" || req.Password == "" {
		writeBadRequest(w, "VALIDATION_ERROR", "email and password are required")
		return
	}

	res, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.LoginResponse{
		Message:      "login successful",
		AccessToken:  res.AccessToken,
		RefreshToken: res.RefreshToken,
		ExpiresIn:    expiresIn(res.AccessExpires),
		User:         userResponse(res.Account),
	})
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := decodeJSON(r, &req); err != nil {
		writeBadRequest(w, "INVALID_REQUEST", "invalid request body")
		return
	}

	res, err := h.service.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.RefreshResponse{
		AccessToken: res.AccessToken,
		ExpiresIn:   expiresIn(res.AccessExpires),
	})
}

func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := requireIdentity(w, r)
	if !ok {
		return
	}

	account, err := h.service.Me(r.Context(), identity)
	if err != nil {
		h.handleError(w, r, err)
		return
	}

	httperrors.Write(w, http.StatusOK, dto.MeResponse{
		ID:      account.ID,
		Name:    account.Name,
		Email:   account.Email,
		IsAdmin: account.IsAdmin,
	})
}

func (h *AuthHandler) handleError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, authsvc.ErrInvalidInput):
		writeBadRequest(w, "VALIDATION_ERROR", err.Error())
	case errors.Is(err, authsvc.ErrInvalidCredentials):
		writeUnauthorized(w, "INVALID_CREDENTIALS", authsvc.ErrInvalidCredentials.Error())
	case errors.Is(err, authsvc.ErrUnauthenticated):
		writeUnauthorized(w, "INVALID_REFRESH_TOKEN", "refresh token is invalid or expired")
	case errors.Is(err, authsvc.ErrConflict):
		writeConflict(w, "EMAIL_TAKEN", "email is already registered")
	case errors.Is(err, authsvc.ErrNotFound):
		writeNotFound(w, "USER_NOT_FOUND", "user not found")
	default:
		h.failures.Internal(w, r, err)
	}
}

func userResponse(account authsvc.AccountRecord) dto.UserResponse {
	return dto.UserResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	}
}
