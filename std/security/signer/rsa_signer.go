package signer

import (
	"crypto"
	"crypto/rand"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
)

// rsaSigner is a signer that uses an RSA key with PKCS#1 v1.5 padding to sign packets.
type rsaSigner struct {
	name enc.Name
	key  *rsa.PrivateKey
}

func (s *rsaSigner) Type() ndn.SigType {
	return ndn.SignatureSha256WithRsa
}

func (s *rsaSigner) KeyName() enc.Name {
	return s.name
}

func (s *rsaSigner) KeyLocator() enc.Name {
	return s.name
}

// EstimateSize returns the RSA signature size, equal to the modulus size in bytes.
func (s *rsaSigner) EstimateSize() uint {
	return uint(s.key.Size())
}

// Sign computes a SHA256 digest of covered and signs it with PKCS#1 v1.5.
func (s *rsaSigner) Sign(covered enc.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		if _, err := h.Write(buf); err != nil {
			return nil, enc.ErrUnexpected{Err: err}
		}
	}
	return rsa.SignPKCS1v15(rand.Reader, s.key, crypto.SHA256, h.Sum(nil))
}

func (s *rsaSigner) Public() ([]byte, error) {
	return x509.MarshalPKIXPublicKey(&s.key.PublicKey)
}

// Secret returns the RSA private key in PKCS#8 encoding.
func (s *rsaSigner) Secret() ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(s.key)
}

// NewRsaSigner creates a signer using an RSA private key.
func NewRsaSigner(name enc.Name, key *rsa.PrivateKey) ndn.Signer {
	return &rsaSigner{name, key}
}

// KeygenRsa creates a signer using a newly generated RSA key of the given bit size.
func KeygenRsa(name enc.Name, bits int) (ndn.Signer, error) {
	key, err := rsa.GenerateKey(rand.Reader, bits)
	if err != nil {
		return nil, err
	}
	return NewRsaSigner(name, key), nil
}

// ParseRsa parses an RSA signer from a PKCS#8-encoded private key.
func ParseRsa(name enc.Name, secret []byte) (ndn.Signer, error) {
	pkey, err := x509.ParsePKCS8PrivateKey(secret)
	if err != nil {
		return nil, err
	}
	key, ok := pkey.(*rsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("invalid key type")
	}
	return NewRsaSigner(name, key), nil
}

// validateRsa verifies the signature with a known RSA public key.
func validateRsa(sigCovered enc.Wire, sig ndn.Signature, pubKey *rsa.PublicKey) bool {
	if sig.SigType() != ndn.SignatureSha256WithRsa {
		return false
	}
	h := sha256.New()
	for _, buf := range sigCovered {
		if _, err := h.Write(buf); err != nil {
			return false
		}
	}
	return rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, h.Sum(nil), sig.SigValue()) == nil
}
