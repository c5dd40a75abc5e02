package auth

import (
	"errors"
	"strings"
	"testing"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

func TestJWTManagerRoundTrip(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	identity := Identity{UserID: 12, Email: "alice@example.com"}

	access, accessExpires, err := m.GenerateAccessToken(identity)
	if err != nil {
		t.Fatalf("generate access: %v", err)
	}
	refresh, refreshExpires, err := m.GenerateRefreshToken(identity)
	if err != nil {
		t.Fatalf("generate refresh: %v", err)
	}
	if !refreshExpires.After(accessExpires) {
		t.Fatalf("refresh should outlive access: access=%s refresh=%s", accessExpires, refreshExpires)
	}

	claims, err := m.ParseToken(access, TokenKindAccess)
	if err != nil {
		t.Fatalf("parse access: %v", err)
	}
	if claims.UserID != 12 || claims.Email != "alice@example.com" || claims.Kind != TokenKindAccess {
		t.Fatalf("unexpected claims: %+v", claims)
	}

	if _, err := m.ParseToken(refresh, TokenKindRefresh); err != nil {
		t.Fatalf("parse refresh: %v", err)
	}
}

func TestJWTManagerRejectsWrongKind(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, 24*time.Hour)
	identity := Identity{UserID: 1, Email: "a@example.com"}

	access, _, _ := m.GenerateAccessToken(identity)
	refresh, _, _ := m.GenerateRefreshToken(identity)

	if _, err := m.ParseToken(access, TokenKindRefresh); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("access token accepted as refresh: %v", err)
	}
	if _, err := m.ParseToken(refresh, TokenKindAccess); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("refresh token accepted as access: %v", err)
	}
}

func TestJWTManagerRejectsExpired(t *testing.T) {
	m := NewJWTManager("secret", time.Minute, time.Hour)
	issuedAt := time.Now()
	m.now = func() time.Time { return issuedAt }

	token, _, err := m.GenerateAccessToken(Identity{UserID: 1, Email: "a@example.com"})
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	m.now = func() time.Time { return issuedAt.Add(2 * time.Minute) }
	if _, err := m.ParseToken(token, TokenKindAccess); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("expected expired token to be rejected, got %v", err)
	}
}

func TestJWTManagerRejectsForeignSecretAndAlgorithm(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	other := NewJWTManager("other-secret", time.Hour, time.Hour)
	identity := Identity{UserID: 5, Email: "e@example.com"}

	foreign, _, _ := other.GenerateAccessToken(identity)
	if _, err := m.ParseToken(foreign, TokenKindAccess); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("foreign signature accepted: %v", err)
	}

	claims := tokenClaims{
		Email: identity.Email,
		Kind:  TokenKindAccess,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "5",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	hs512, err := jwt.NewWithClaims(jwt.SigningMethodHS512, claims).SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("sign hs512: %v", err)
	}
	if _, err := m.ParseToken(hs512, TokenKindAccess); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unexpected algorithm accepted: %v", err)
	}

	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	if err != nil {
		t.Fatalf("sign none: %v", err)
	}
	if _, err := m.ParseToken(unsigned, TokenKindAccess); !errors.Is(err, ErrUnauthenticated) {
		t.Fatalf("unsigned token accepted: %v", err)
	}
}

func TestJWTManagerRejectsTamperedAndMalformed(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	token, _, _ := m.GenerateAccessToken(Identity{UserID: 9, Email: "x@example.com"})

	parts := strings.Split(token, ".")
	if len(parts) != 3 {
		t.Fatalf("unexpected token shape: %q", token)
	}
	tampered := parts[0] + "." + parts[1] + "." + strings.Repeat("A", len(parts[2]))

	for _, raw := range []string{"", "not-a-jwt", "a.b.c", tampered} {
		if _, err := m.ParseToken(raw, TokenKindAccess); !errors.Is(err, ErrUnauthenticated) {
			t.Fatalf("token %q accepted: %v", raw, err)
		}
	}
}

func TestJWTManagerTokensAreUnique(t *testing.T) {
	m := NewJWTManager("secret", time.Hour, time.Hour)
	fixed := time.Now()
	m.now = func() time.Time { return fixed }
	identity := Identity{UserID: 1, Email: "a@example.com"}

	first, _, _ := m.GenerateRefreshToken(identity)
	second, _, _ := m.GenerateRefreshToken(identity)
	if first == second {
		t.Fatalf("two issuances in the same second produced the same token")
	}
}

func TestJWTManagerWithoutSecret(t *testing.T) {
	m := NewJWTManager("  ", time.Hour, time.Hour)

	if _, _, err := m.GenerateAccessToken(Identity{UserID: 1, Email: "a@example.com"}); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
	if _, err := m.ParseToken("a.b.c", TokenKindAccess); !errors.Is(err, ErrMisconfigured) {
		t.Fatalf("expected ErrMisconfigured, got %v", err)
	}
}
