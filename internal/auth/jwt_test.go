package auth

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIssueAndVerify_RoundTrip(t *testing.T) {
	keys, _ := testKeys(t)
	svc := NewTokenService(keys, time.Hour)

	for _, id := range []uint{1, 42, 1 << 20} {
		token, err := svc.Issue(Principal{SubjectID: id})
		require.NoError(t, err)
		got, err := svc.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, Principal{SubjectID: id}, got)
	}
}

func TestIssue_UsesRS256AndOneDayDefault(t *testing.T) {
	keys, _ := testKeys(t)
	svc := NewTokenService(keys, 0)
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	svc.now = func() time.Time { return fixed }

	token, err := svc.Issue(Principal{SubjectID: 7})
	require.NoError(t, err)

	claims := &jwt.RegisteredClaims{}
	parsed, _, err := jwt.NewParser().ParseUnverified(token, claims)
	require.NoError(t, err)
	assert.Equal(t, "RS256", parsed.Header["alg"])
	assert.Equal(t, "7", claims.Subject)
	assert.True(t, claims.ExpiresAt.Time.Equal(fixed.Add(24*time.Hour)), "expiry %v", claims.ExpiresAt.Time)
}

func TestVerify_ForeignKeyRejected(t *testing.T) {
	keys, other := testKeys(t)
	forged, err := NewTokenService(other, time.Hour).Issue(Principal{SubjectID: 1})
	require.NoError(t, err)

	_, err = NewTokenService(keys, time.Hour).Verify(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_ExpiredRejected(t *testing.T) {
	keys, _ := testKeys(t)
	issuer := NewTokenService(keys, time.Hour)
	issuer.now = func() time.Time { return time.Now().Add(-2 * time.Hour) }
	token, err := issuer.Issue(Principal{SubjectID: 1})
	require.NoError(t, err)

	_, err = NewTokenService(keys, time.Hour).Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify_MalformedAndWrongAlgorithm(t *testing.T) {
	keys, _ := testKeys(t)
	svc := NewTokenService(keys, time.Hour)

	hs, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   "1",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString([]byte("secret"))
	require.NoError(t, err)

	noExp, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{Subject: "1"}).SignedString(keys.Private)
	require.NoError(t, err)

	badSub, err := jwt.NewWithClaims(jwt.SigningMethodRS256, jwt.RegisteredClaims{
		Subject:   "alice",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}).SignedString(keys.Private)
	require.NoError(t, err)

	good, err := svc.Issue(Principal{SubjectID: 1})
	require.NoError(t, err)
	tampered := good[:strings.LastIndex(good, ".")] + ".AAAA"

	for _, token := range []string{"", "this.is.not.a.valid.jwt", hs, noExp, badSub, tampered} {
		_, err := svc.Verify(token)
		assert.ErrorIs(t, err, ErrInvalidToken, token)
	}
}

func TestLoadKeys(t *testing.T) {
	keys, _ := testKeys(t)
	privPEM, pubPEM := pemEncode(keys)
	dir := t.TempDir()
	privPath := filepath.Join(dir, "privateKey.pem")
	pubPath := filepath.Join(dir, "publicKey.pem")
	require.NoError(t, os.WriteFile(privPath, privPEM, 0600))
	require.NoError(t, os.WriteFile(pubPath, pubPEM, 0644))

	loaded, err := LoadKeys(privPath, pubPath)
	require.NoError(t, err)
	assert.True(t, loaded.Public.Equal(keys.Public))

	_, err = LoadKeys(filepath.Join(dir, "missing.pem"), pubPath)
	assert.Error(t, err)
	_, err = LoadKeys(pubPath, pubPath)
	assert.Error(t, err)
}
