// Package signer implements the ECDSA request-signing scheme of the LIAM API.
//
// Requests are signed with a P-256 (secp256r1) private key: the canonical
// JSON body is hashed with SHA-256, signed with ECDSA, and the ASN.1/DER
// signature is base64-encoded into the "signature" transport header. The
// companion public key is registered with the server out of band and never
// travels with a request.
package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"encoding/base64"
	"encoding/pem"
	"errors"
	"fmt"
)

// ErrInvalidKey indicates the private key material could not be parsed or
// is not a P-256 EC key. Returned by Parse; callers are expected to fail
// at construction time, not at first signature.
var ErrInvalidKey = errors.New("invalid private key")

// Signer signs request bodies with a loaded P-256 private key.
type Signer struct {
	key *ecdsa.PrivateKey
}

// Parse loads a PEM-encoded P-256 private key. Both PKCS8 ("PRIVATE KEY")
// and SEC1 ("EC PRIVATE KEY") blocks are accepted, matching the formats
// the key generator and common tooling emit.
func Parse(pemBytes []byte) (*Signer, error) {
	block, _ := pem.Decode(pemBytes)
	if block == nil {
		return nil, fmt.Errorf("%w: no PEM block found", ErrInvalidKey)
	}

	var key *ecdsa.PrivateKey
	switch block.Type {
	case "PRIVATE KEY":
		parsed, err := x509.ParsePKCS8PrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		ecKey, ok := parsed.(*ecdsa.PrivateKey)
		if !ok {
			return nil, fmt.Errorf("%w: not an EC key", ErrInvalidKey)
		}
		key = ecKey
	case "EC PRIVATE KEY":
		parsed, err := x509.ParseECPrivateKey(block.Bytes)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrInvalidKey, err)
		}
		key = parsed
	default:
		return nil, fmt.Errorf("%w: unsupported PEM block %q", ErrInvalidKey, block.Type)
	}

	if key.Curve != elliptic.P256() {
		return nil, fmt.Errorf("%w: curve %s, want P-256", ErrInvalidKey, key.Curve.Params().Name)
	}
	return &Signer{key: key}, nil
}

// Sign computes the base64-encoded ECDSA-SHA256 signature over message.
// The signature is valid for exactly these bytes; any change to the
// message invalidates it.
func (s *Signer) Sign(message []byte) (string, error) {
	digest := sha256.Sum256(message)
	sig, err := ecdsa.SignASN1(rand.Reader, s.key, digest[:])
	if err != nil {
		return "", fmt.Errorf("sign: %w", err)
	}
	return base64.StdEncoding.EncodeToString(sig), nil
}

// PublicKey returns the public half of the loaded key.
func (s *Signer) PublicKey() *ecdsa.PublicKey {
	return &s.key.PublicKey
}

// PublicKeyPEM returns the public key as a PEM-encoded PKIX block,
// the format the server expects during connector registration.
func (s *Signer) PublicKeyPEM() ([]byte, error) {
	der, err := x509.MarshalPKIXPublicKey(&s.key.PublicKey)
	if err != nil {
		return nil, fmt.Errorf("marshal public key: %w", err)
	}
	return pem.EncodeToMemory(&pem.Block{Type: "PUBLIC KEY", Bytes: der}), nil
}

// Verify reports whether signature (base64 ECDSA-SHA256) is valid for
// message under pub. Used by tests and tooling; the client itself never
// verifies, only the server does.
func Verify(pub *ecdsa.PublicKey, message []byte, signature string) bool {
	raw, err := base64.StdEncoding.DecodeString(signature)
	if err != nil {
		return false
	}
	digest := sha256.Sum256(message)
	return ecdsa.VerifyASN1(pub, digest[:], raw)
}
