// Command keygen writes the RSA key pair used to sign access tokens.
package main

import (
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"flag"
	"fmt"
	"os"
	"path/filepath"
)

func main() {
	dir := flag.String("dir", "keys", "output directory")
	bits := flag.Int("bits", 2048, "RSA modulus size")
	flag.Parse()

	if err := generate(*dir, *bits); err != nil {
		fmt.Fprintf(os.Stderr, "keygen error: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("Wrote %s and %s\n", filepath.Join(*dir, "privateKey.pem"), filepath.Join(*dir, "publicKey.pem"))
}

// generate writes PKCS#1 PEM encoded privateKey.pem and publicKey.pem to dir.
func generate(dir string, bits int) error {
	priv, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return fmt.Errorf("generate key: %w", err)
	}
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}
	privPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(priv)})
	if err := os.WriteFile(filepath.Join(dir, "privateKey.pem"), privPEM, 0o600); err != nil {
		return err
	}
	pubPEM := pem.EncodeToMemory(&pem.Block{Type: "RSA PUBLIC KEY", Bytes: x509.MarshalPKCS1PublicKey(&priv.PublicKey)})
	return os.WriteFile(filepath.Join(dir, "publicKey.pem"), pubPEM, 0o644)
}
