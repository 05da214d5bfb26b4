package auth

import (
	"crypto/rsa"
	"fmt"
	"os"

	"github.com/golang-jwt/jwt/v5"
)

// Keys is the RSA key pair used to sign and verify access tokens. It is
// loaded once at startup and only read afterwards.
type Keys struct {
	Private *rsa.PrivateKey
	Public  *rsa.PublicKey
}

// LoadKeys reads the PEM-encoded private and public keys from disk.
func LoadKeys(privatePath, publicPath string) (*Keys, error) {
	privPEM, err := os.ReadFile(privatePath)
	if err != nil {
		return nil, fmt.Errorf("read private key: %w", err)
	}
	pubPEM, err := os.ReadFile(publicPath)
	if err != nil {
		return nil, fmt.Errorf("read public key: %w", err)
	}
	return ParseKeys(privPEM, pubPEM)
}

// ParseKeys parses PKCS#1 or PKCS#8 private and PKCS#1 or PKIX public PEM blocks.
func ParseKeys(privPEM, pubPEM []byte) (*Keys, error) {
	priv, err := jwt.ParseRSAPrivateKeyFromPEM(privPEM)
	if err != nil {
		return nil, fmt.Errorf("parse private key: %w", err)
	}
	pub, err := jwt.ParseRSAPublicKeyFromPEM(pubPEM)
	if err != nil {
		return nil, fmt.Errorf("parse public key: %w", err)
	}
	return &Keys{Private: priv, Public: pub}, nil
}
