package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"log"
	"sync"

	"blogify/internal/apperr"
	"blogify/internal/user"
)

// ErrUnauthorized is the only error sign-in and the guards ever surface.
var ErrUnauthorized = apperr.Unauthorized("unauthorized")

// CredentialStore looks up user records for sign-in and the guards.
type CredentialStore interface {
	FindByID(ctx context.Context, id uint) (*user.User, error)
	FindByEmail(ctx context.Context, email string) (*user.User, error)
}

type Service struct {
	users  CredentialStore
	tokens *TokenService
}

func NewService(users CredentialStore, tokens *TokenService) *Service {
	return &Service{users: users, tokens: tokens}
}

// SignIn verifies the credentials and returns a signed access token. Unknown
// emails, wrong passwords and unreadable hashes all yield ErrUnauthorized.
func (s *Service) SignIn(ctx context.Context, email, password string) (string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		if !errors.Is(err, user.ErrNotFound) {
			log.Printf("[Auth] sign-in lookup failed: %v", err)
		}
		// Spend the same Argon2 work as a real comparison.
		_ = user.CheckPassword(dummyHash(), password)
		return "", ErrUnauthorized
	}
	if err := user.CheckPassword(u.PasswordHash, password); err != nil {
		if !errors.Is(err, user.ErrPasswordMismatch) {
			log.Printf("[Auth] stored hash for user %d is unreadable: %v", u.ID, err)
		}
		return "", ErrUnauthorized
	}
	token, err := s.tokens.Issue(Principal{SubjectID: u.ID})
	if err != nil {
		log.Printf("[Auth] failed to sign token for user %d: %v", u.ID, err)
		return "", ErrUnauthorized
	}
	return token, nil
}

var (
	dummyOnce sync.Once
	dummy     string
)

// dummyHash is a valid hash of a random password, compared against when the
// email is unknown.
func dummyHash() string {
	dummyOnce.Do(func() {
		secret := make([]byte, 32)
		_, _ = rand.Read(secret)
		h, err := user.HashPassword(string(secret))
		if err != nil {
			log.Printf("[Auth] failed to build dummy hash: %v", err)
			return
		}
		dummy = h
	})
	return dummy
}
