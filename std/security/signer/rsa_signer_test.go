package signer_test

import (
	"crypto"
	"crypto/rsa"
	"crypto/sha256"
	"crypto/x509"
	"testing"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
	sig "github.com/ndnkit/ndnkit/std/security/signer"
	tu "github.com/ndnkit/ndnkit/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func testRsaVerify(t *testing.T, signer ndn.Signer, verifyKey []byte) {
	require.Equal(t, ndn.SignatureSha256WithRsa, signer.Type())
	require.Equal(t, TEST_KEY_NAME, signer.KeyName())

	dataVal := enc.Wire{
		[]byte("\x07\x14\x08\x05local\x08\x03ndn\x08\x06prefix"),
		[]byte("\x14\x03\x18\x01\x00"),
	}
	sigValue := tu.NoErr(signer.Sign(dataVal))
	require.LessOrEqual(t, uint(len(sigValue)), signer.EstimateSize())

	pubKey := tu.NoErr(x509.ParsePKIXPublicKey(verifyKey)).(*rsa.PublicKey)
	h := sha256.Sum256(dataVal.Join())
	require.NoError(t, rsa.VerifyPKCS1v15(pubKey, crypto.SHA256, h[:], sigValue))
}

func TestRsaKeygenAndParse(t *testing.T) {
	tu.SetT(t)

	signer1 := tu.NoErr(sig.KeygenRsa(TEST_KEY_NAME, 2048))
	pub1 := tu.NoErr(signer1.Public())
	testRsaVerify(t, signer1, pub1)

	secret := tu.NoErr(sig.GetSecret(signer1))
	signer2 := tu.NoErr(sig.ParseRsa(TEST_KEY_NAME, secret))
	pub2 := tu.NoErr(signer2.Public())
	require.Equal(t, pub1, pub2)
	testRsaVerify(t, signer2, pub2)
}
