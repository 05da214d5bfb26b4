package auth

import (
	"context"
	"testing"
	"time"

	"blogify/internal/apperr"
	"blogify/internal/user"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSignInFixture(t *testing.T) (*Service, *TokenService, *memStore) {
	t.Helper()
	keys, _ := testKeys(t)
	hash, err := user.HashPassword("correct-horse")
	require.NoError(t, err)
	store := newMemStore(
		&user.User{ID: 3, Email: "ada@example.com", PasswordHash: hash},
		&user.User{ID: 4, Email: "broken@example.com", PasswordHash: "not-a-phc-string"},
	)
	tokens := NewTokenService(keys, time.Hour)
	return NewService(store, tokens), tokens, store
}

func TestSignIn_Success(t *testing.T) {
	svc, tokens, _ := newSignInFixture(t)

	token, err := svc.SignIn(context.Background(), "ada@example.com", "correct-horse")
	require.NoError(t, err)
	p, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, uint(3), p.SubjectID)
}

func TestSignIn_FailuresLookAlike(t *testing.T) {
	svc, _, store := newSignInFixture(t)
	ctx := context.Background()

	_, unknown := svc.SignIn(ctx, "nobody@example.com", "correct-horse")
	_, wrong := svc.SignIn(ctx, "ada@example.com", "wrong-password")
	_, malformed := svc.SignIn(ctx, "broken@example.com", "anything")
	store.err = errStoreDown
	_, down := svc.SignIn(ctx, "ada@example.com", "correct-horse")

	for _, err := range []error{unknown, wrong, malformed, down} {
		require.Error(t, err)
		assert.Equal(t, ErrUnauthorized, err)
		assert.Equal(t, apperr.KindUnauthorized, apperr.KindOf(err))
		assert.Equal(t, "unauthorized", apperr.PublicMessage(err, "x"))
	}
}

func TestDummyHash_RunsFullComparison(t *testing.T) {
	h := dummyHash()
	require.NotEmpty(t, h)
	assert.Equal(t, h, dummyHash())
	// A parseable hash means unknown emails pay for a real Argon2 comparison.
	assert.ErrorIs(t, user.CheckPassword(h, "correct-horse"), user.ErrPasswordMismatch)
}

type countingStore struct {
	*memStore
	lookups int
}

func (c *countingStore) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	c.lookups++
	return c.memStore.FindByEmail(ctx, email)
}

func TestSignIn_UnknownEmailTakesComparablePath(t *testing.T) {
	keys, _ := testKeys(t)
	store := &countingStore{memStore: newMemStore()}
	svc := NewService(store, NewTokenService(keys, time.Hour))

	start := time.Now()
	_, err := svc.SignIn(context.Background(), "ghost@example.com", "whatever")
	assert.Equal(t, ErrUnauthorized, err)
	assert.Equal(t, 1, store.lookups)
	// Argon2id with 64 MiB and three passes cannot finish in under a millisecond.
	assert.Greater(t, time.Since(start), time.Millisecond)
}
