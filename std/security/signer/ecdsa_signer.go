package signer

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/sha256"
	"crypto/x509"
	"fmt"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
)

// ecdsaSigner is a signer that uses an ECDSA key to sign packets.
type ecdsaSigner struct {
	name enc.Name
	key  *ecdsa.PrivateKey
}

func (s *ecdsaSigner) Type() ndn.SigType {
	return ndn.SignatureSha256WithEcdsa
}

func (s *ecdsaSigner) KeyName() enc.Name {
	return s.name
}

func (s *ecdsaSigner) KeyLocator() enc.Name {
	return s.name
}

// EstimateSize returns an upper bound on the DER-encoded ECDSA signature size.
func (s *ecdsaSigner) EstimateSize() uint {
	// ASN.1 DER sequence of two integers, each at most curve byte size + 1, plus
	// tag/length overhead for the sequence and each integer.
	n := (s.key.Curve.Params().BitSize + 7) / 8
	return uint(9 + 2*(n+1))
}

// Sign computes a SHA256 digest of covered and signs it, returning a DER-encoded signature.
func (s *ecdsaSigner) Sign(covered enc.Wire) ([]byte, error) {
	h := sha256.New()
	for _, buf := range covered {
		if _, err := h.Write(buf); err != nil {
			return nil, enc.ErrUnexpected{Err: err}
		}
	}
	return ecdsa.SignASN1(rand.Reader, s.key, h.Sum(nil))
}

func (s *ecdsaSigner) Public() ([]byte, error) {
	return x509.MarshalPKIXPublicKey(&s.key.PublicKey)
}

// Secret returns the ECDSA private key in PKCS#8 encoding.
func (s *ecdsaSigner) Secret() ([]byte, error) {
	return x509.MarshalPKCS8PrivateKey(s.key)
}

// NewEcdsaSigner creates a signer using an ECDSA private key.
func NewEcdsaSigner(name enc.Name, key *ecdsa.PrivateKey) ndn.Signer {
	return &ecdsaSigner{name, key}
}

// KeygenEcdsa creates a signer using a newly generated ECDSA key on the given curve.
func KeygenEcdsa(name enc.Name, curve elliptic.Curve) (ndn.Signer, error) {
	key, err := ecdsa.GenerateKey(curve, rand.Reader)
	if err != nil {
		return nil, err
	}
	return NewEcdsaSigner(name, key), nil
}

// ParseEcdsa parses an ECDSA signer from a PKCS#8-encoded private key.
func ParseEcdsa(name enc.Name, secret []byte) (ndn.Signer, error) {
	pkey, err := x509.ParsePKCS8PrivateKey(secret)
	if err != nil {
		return nil, err
	}
	key, ok := pkey.(*ecdsa.PrivateKey)
	if !ok {
		return nil, fmt.Errorf("invalid key type")
	}
	return NewEcdsaSigner(name, key), nil
}

// validateEcdsa verifies the signature with a known ECDSA public key.
func validateEcdsa(sigCovered enc.Wire, sig ndn.Signature, pubKey *ecdsa.PublicKey) bool {
	if sig.SigType() != ndn.SignatureSha256WithEcdsa {
		return false
	}
	h := sha256.New()
	for _, buf := range sigCovered {
		if _, err := h.Write(buf); err != nil {
			return false
		}
	}
	return ecdsa.VerifyASN1(pubKey, h.Sum(nil), sig.SigValue())
}
