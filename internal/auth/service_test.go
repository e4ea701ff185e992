package auth

import (
	"errors"
	"testing"
	"time"

	"messenger/internal/domain"
)

type memoryUsers struct {
	byName map[string]*domain.User
}

func (m *memoryUsers) FindByUsername(username string) (*domain.User, error) {
	if u, ok := m.byName[username]; ok {
		return u, nil
	}
	return nil, errors.New("user not found")
}

func newTestService(t *testing.T) *Service {
	t.Helper()
	hash, err := HashPassword("pass123")
	if err != nil {
		t.Fatalf("HashPassword() error: %v", err)
	}
	alice, err := domain.NewUser("alice", hash)
	if err != nil {
		t.Fatalf("NewUser() error: %v", err)
	}
	users := &memoryUsers{byName: map[string]*domain.User{"alice": alice}}
	return NewService(users, NewTokenManager("test-secret", time.Minute))
}

func TestLoginAndVerify(t *testing.T) {
	svc := newTestService(t)

	token, err := svc.Login("alice", "pass123")
	if err != nil {
		t.Fatalf("Login() error: %v", err)
	}
	user, err := svc.Verify(token)
	if err != nil {
		t.Fatalf("Verify() error: %v", err)
	}
	if user.Username != "alice" {
		t.Errorf("expected alice, got %q", user.Username)
	}
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc := newTestService(t)

	tests := []struct {
		name     string
		username string
		password string
	}{
		{"wrong password", "alice", "nope"},
		{"unknown user", "mallory", "pass123"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := svc.Login(tt.username, tt.password); !errors.Is(err, ErrInvalidCredentials) {
				t.Errorf("expected ErrInvalidCredentials, got %v", err)
			}
		})
	}
}

func TestVerifyRequiresExistingUser(t *testing.T) {
	svc := newTestService(t)

	// A validly signed token whose subject no longer exists.
	token, err := NewTokenManager("test-secret", time.Minute).Generate("ghost")
	if err != nil {
		t.Fatalf("Generate() error: %v", err)
	}
	if _, err := svc.Verify(token); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken for deleted user, got %v", err)
	}
}
