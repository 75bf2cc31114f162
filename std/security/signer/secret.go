package signer

import (
	"fmt"

	"github.com/ndnkit/ndnkit/std/ndn"
)

// secretSigner is implemented by the key-based signers that can export their
// private key material for storage (as opposed to digest/HMAC signers).
type secretSigner interface {
	Secret() ([]byte, error)
}

// GetSecret exports the private key of signer in PKCS#8 encoding, for signers
// backed by asymmetric key material (Ed25519, RSA, ECDSA). Returns an error
// for signers with no exportable key, such as digest or HMAC signers.
func GetSecret(signer ndn.Signer) ([]byte, error) {
	s, ok := signer.(secretSigner)
	if !ok {
		return nil, fmt.Errorf("signer does not support exporting secret key material")
	}
	return s.Secret()
}
