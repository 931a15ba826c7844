package service

import (
	"testing"

	"github.com/flowstate/api/internal/apperr"
)

func TestRegisterAndAuthenticate(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	user, err := svc.Register("Alice@Example.COM", "hunter22", "Alice")
	if err != nil {
		t.Fatalf("failed to register: %v", err)
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email should be lowercased, got %q", user.Email)
	}
	if user.PasswordHash == "hunter22" {
		t.Error("password must not be stored in the clear")
	}

	got, err := svc.Authenticate("alice@example.com", "hunter22")
	if err != nil {
		t.Fatalf("failed to authenticate: %v", err)
	}
	if got.ID != user.ID {
		t.Errorf("expected user %q, got %q", user.ID, got.ID)
	}
}

func TestAuthenticateWrongPassword(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	if _, err := svc.Register("bob@example.com", "correct-horse", "Bob"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err := svc.Authenticate("bob@example.com", "wrong")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("expected Unauthorized, got %v", err)
	}
}

func TestAuthenticateUnknownEmail(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	// Unknown email and wrong password look identical to the caller.
	_, err := svc.Authenticate("nobody@example.com", "whatever")
	if apperr.KindOf(err) != apperr.KindUnauthorized {
		t.Errorf("expected Unauthorized, got %v", err)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	if _, err := svc.Register("carol@example.com", "pw123456", "Carol"); err != nil {
		t.Fatalf("failed to register: %v", err)
	}

	_, err := svc.Register("CAROL@example.com", "pw123456", "Carol 2")
	if !apperr.IsConflict(err) {
		t.Errorf("expected Conflict for duplicate email, got %v", err)
	}
}

func TestRegisterRequiresCredentials(t *testing.T) {
	store := newTestStore(t)
	svc := NewUserService(store)

	if _, err := svc.Register("", "pw", "x"); apperr.KindOf(err) != apperr.KindInvalid {
		t.Errorf("expected Invalid for missing email, got %v", err)
	}
	if _, err := svc.Register("d@example.com", "", "x"); apperr.KindOf(err) != apperr.KindInvalid {
		t.Errorf("expected Invalid for missing password, got %v", err)
	}
}
