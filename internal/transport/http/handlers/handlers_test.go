package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Rudio1/api-meals/internal/services/content"
	httperrors "github.com/Rudio1/api-meals/internal/transport/http/errors"
)

func TestFailuresContentMapping(t *testing.T) {
	tests := []struct {
		err  error
		want int
	}{
		{err: fmt.Errorf("wrap: %w", content.ErrNotFound), want: http.StatusNotFound},
		{err: content.ErrForbidden, want: http.StatusForbidden},
		{err: content.ErrConflict, want: http.StatusBadRequest},
		{err: errors.New("db down"), want: http.StatusInternalServerError},
	}

	for _, tc := range tests {
		rr := httptest.NewRecorder()
		Failures{Log: zap.NewNop()}.Content(rr, httptest.NewRequest(http.MethodGet, "/", nil), tc.err)
		if rr.Code != tc.want {
			t.Fatalf("%v: got %d want %d", tc.err, rr.Code, tc.want)
		}
	}
}

func TestFailuresInternalDetailOnlyWhenVerbose(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	cause := errors.New("connection refused")

	quiet := httptest.NewRecorder()
	Failures{}.Internal(quiet, req, cause)
	var quietBody httperrors.APIError
	if err := json.Unmarshal(quiet.Body.Bytes(), &quietBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if quietBody.Detail != "" {
		t.Fatalf("detail must be hidden, got %q", quietBody.Detail)
	}

	loud := httptest.NewRecorder()
	Failures{Verbose: true}.Internal(loud, req, cause)
	var loudBody httperrors.APIError
	if err := json.Unmarshal(loud.Body.Bytes(), &loudBody); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if loudBody.Detail != "connection refused" {
		t.Fatalf("unexpected detail: %q", loudBody.Detail)
	}
}

func TestHealthReportsFailingCheck(t *testing.T) {
	h := NewHealthHandler(map[string]Check{
		"postgres": func(context.Context) error { return nil },
		"redis":    func(context.Context) error { return errors.New("dial tcp: refused") },
	})

	rr := httptest.NewRecorder()
	h.Health(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusServiceUnavailable {
		t.Fatalf("unexpected status: got %d want %d", rr.Code, http.StatusServiceUnavailable)
	}
	var resp healthResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Status != "degraded" || resp.Checks["postgres"] != "ok" {
		t.Fatalf("unexpected health body: %+v", resp)
	}
}

func TestExpiresInNeverNegative(t *testing.T) {
	if got := expiresIn(time.Now().Add(-time.Minute)); got != 0 {
		t.Fatalf("expired deadline: got %d want 0", got)
	}
	if got := expiresIn(time.Now().Add(time.Hour + time.Second)); got < 3599 || got > 3601 {
		t.Fatalf("unexpected seconds: %d", got)
	}
}
