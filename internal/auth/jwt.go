package auth

import (
	"errors"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// DefaultTokenTTL is the validity window of an access token.
const DefaultTokenTTL = 24 * time.Hour

// ErrInvalidToken covers every verification failure: bad signature,
// expiry, wrong algorithm or malformed claims.
var ErrInvalidToken = errors.New("invalid token")

// Principal is the identity carried by a verified token.
type Principal struct {
	SubjectID uint
}

type TokenService struct {
	keys *Keys
	ttl  time.Duration
	now  func() time.Time
}

func NewTokenService(keys *Keys, ttl time.Duration) *TokenService {
	if ttl <= 0 {
		ttl = DefaultTokenTTL
	}
	return &TokenService{keys: keys, ttl: ttl, now: time.Now}
}

// Issue signs an RS256 token for p that expires after the service TTL.
func (s *TokenService) Issue(p Principal) (string, error) {
	now := s.now().UTC()
	claims := jwt.RegisteredClaims{
		Subject:   strconv.FormatUint(uint64(p.SubjectID), 10),
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(s.ttl)),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodRS256, claims)
	return token.SignedString(s.keys.Private)
}

// Verify checks tokenStr against the public key and returns its principal.
func (s *TokenService) Verify(tokenStr string) (Principal, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(*jwt.Token) (interface{}, error) {
		return s.keys.Public, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodRS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil || !token.Valid {
		return Principal{}, ErrInvalidToken
	}
	id, err := strconv.ParseUint(claims.Subject, 10, 32)
	if err != nil || id == 0 {
		return Principal{}, ErrInvalidToken
	}
	return Principal{SubjectID: uint(id)}, nil
}
