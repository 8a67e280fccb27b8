package envcast

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"encoding/pem"
	"testing"
)

func rsaKeyPEM(t *testing.T) (*rsa.PrivateKey, string) {
	t.Helper()
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	block := &pem.Block{Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(key)}
	return key, string(pem.EncodeToMemory(block))
}

func TestRSAPrivateKey(t *testing.T) {
	type config struct {
		SigningKey *rsa.PrivateKey `secret:"SIGNING_KEY"`
	}

	key, pemStr := rsaKeyPEM(t)

	cfg, err := FromPairs[config]([]Pair{{"SIGNING_KEY", pemStr}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	if cfg.SigningKey == nil || !cfg.SigningKey.Equal(key) {
		t.Error("SigningKey does not match the generated key")
	}
}

func TestRSAPrivateKeyPKCS8(t *testing.T) {
	type config struct {
		SigningKey *rsa.PrivateKey `secret:"SIGNING_KEY"`
	}

	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal PKCS#8: %v", err)
	}
	pemStr := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	cfg, err := FromPairs[config]([]Pair{{"SIGNING_KEY", pemStr}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	if cfg.SigningKey == nil || !cfg.SigningKey.Equal(key) {
		t.Error("SigningKey does not match the generated key")
	}
}

func TestECDSAPrivateKey(t *testing.T) {
	type config struct {
		SigningKey *ecdsa.PrivateKey `secret:"SIGNING_KEY"`
	}

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	if err != nil {
		t.Fatalf("failed to generate ECDSA key: %v", err)
	}
	der, err := x509.MarshalECPrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal EC key: %v", err)
	}
	pemStr := string(pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: der}))

	cfg, err := FromPairs[config]([]Pair{{"SIGNING_KEY", pemStr}})
	if err != nil {
		t.Fatalf("FromPairs failed: %v", err)
	}
	if cfg.SigningKey == nil || !cfg.SigningKey.Equal(key) {
		t.Error("SigningKey does not match the generated key")
	}
}

func TestPrivateKeyInvalidPEM(t *testing.T) {
	type config struct {
		SigningKey *rsa.PrivateKey `secret:"SIGNING_KEY"`
	}

	_, err := FromPairs[config]([]Pair{{"SIGNING_KEY", "not PEM at all"}})
	if err == nil {
		t.Error("FromPairs should have failed with invalid PEM")
	}
}

func TestPrivateKeyWrongAlgorithm(t *testing.T) {
	type config struct {
		SigningKey *ecdsa.PrivateKey `secret:"SIGNING_KEY"`
	}

	// An RSA PKCS#8 key offered to an ECDSA field must be rejected.
	key, err := rsa.GenerateKey(rand.Reader, 2048)
	if err != nil {
		t.Fatalf("failed to generate RSA key: %v", err)
	}
	der, err := x509.MarshalPKCS8PrivateKey(key)
	if err != nil {
		t.Fatalf("failed to marshal PKCS#8: %v", err)
	}
	pemStr := string(pem.EncodeToMemory(&pem.Block{Type: "PRIVATE KEY", Bytes: der}))

	_, err = FromPairs[config]([]Pair{{"SIGNING_KEY", pemStr}})
	if err == nil {
		t.Error("FromPairs should have failed with mismatched key algorithm")
	}
}
