package auth_test

import (
	"testing"

	authsvc "github.com/Rudio1/api-meals/internal/services/auth"
)

type ownedByID int64

func (o ownedByID) OwnerID() int64 { return int64(o) }

func TestIsOwner(t *testing.T) {
	if !authsvc.IsOwner(authsvc.Identity{UserID: 4}, ownedByID(4)) {
		t.Fatalf("creator must own the resource")
	}
	if authsvc.IsOwner(authsvc.Identity{UserID: 5}, ownedByID(4)) {
		t.Fatalf("other user must not own the resource")
	}
	if authsvc.IsOwner(authsvc.Identity{UserID: 5, IsAdmin: true}, ownedByID(4)) {
		t.Fatalf("admin flag must not grant ownership")
	}
	if authsvc.IsOwner(authsvc.Identity{}, ownedByID(0)) {
		t.Fatalf("anonymous identity must not own anything")
	}
	if authsvc.IsOwner(authsvc.Identity{UserID: 1}, nil) {
		t.Fatalf("nil resource must not be owned")
	}
}
