package auth

import (
	"context"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"errors"
	"sync"
	"testing"

	"blogify/internal/user"
)

var (
	keysOnce   sync.Once
	sharedKeys *Keys
	otherKeys  *Keys
)

func generateKeys(t *testing.T) *Keys {
	t.Helper()
	priv, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("generate key: %v", err)
	}
	return &Keys{Private: priv, Public: &priv.PublicKey}
}

// testKeys returns two unrelated key pairs, generated once per test binary.
func testKeys(t *testing.T) (*Keys, *Keys) {
	t.Helper()
	keysOnce.Do(func() {
		sharedKeys = generateKeys(t)
		otherKeys = generateKeys(t)
	})
	return sharedKeys, otherKeys
}

func pemEncode(k *Keys) (privPEM, pubPEM []byte) {
	privPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(k.Private)})
	pubPEM = pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(k.Public)})
	return privPEM, pubPEM
}

type memStore struct {
	users map[uint]*user.User
	err   error
}

func newMemStore(users ...*user.User) *memStore {
	s := &memStore{users: map[uint]*user.User{}}
	for _, u := range users {
		s.users[u.ID] = u
	}
	return s
}

func (s *memStore) FindByID(_ context.Context, id uint) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	if u, ok := s.users[id]; ok {
		return u, nil
	}
	return nil, user.ErrNotFound
}

func (s *memStore) FindByEmail(_ context.Context, email string) (*user.User, error) {
	if s.err != nil {
		return nil, s.err
	}
	for _, u := range s.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, user.ErrNotFound
}

var errStoreDown = errors.New("store down")
