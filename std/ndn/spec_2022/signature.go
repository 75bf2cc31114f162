// Package spec_2022 implements the NDN Packet Format specification (the
// "2022" revision of the TLV wire format): Interest, Data, the NDNLPv2 link
// protocol envelope, and the signed-Interest digest mechanism.
package spec_2022

import (
	"time"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

// TLV type numbers for SignatureInfo/InterestSignatureInfo sub-fields,
// shared between Data and Interest signing.
const (
	tlvSignatureType   = 0x1b
	tlvKeyLocator      = 0x1c
	tlvSignatureValue  = 0x17
	tlvSignatureNonce  = 0x26
	tlvSignatureTime   = 0x28
	tlvSignatureSeqNum = 0x2a
)

// Signature is the parsed view of a SignatureInfo/SignatureValue pair,
// shared by Data and Interest.
type Signature struct {
	SigTypeV   ndn.SigType
	KeyNameV   enc.Name
	SigNonceV  []byte
	SigTimeV   optional.Optional[time.Duration]
	SigSeqNumV optional.Optional[uint64]
	NotBefore  optional.Optional[time.Time]
	NotAfter   optional.Optional[time.Time]
	SigValueV  []byte
}

func (s *Signature) SigType() ndn.SigType {
	if s == nil {
		return ndn.SignatureNone
	}
	return s.SigTypeV
}

func (s *Signature) KeyName() enc.Name {
	if s == nil {
		return nil
	}
	return s.KeyNameV
}

func (s *Signature) SigNonce() []byte {
	if s == nil {
		return nil
	}
	return s.SigNonceV
}

func (s *Signature) SigTime() optional.Optional[time.Duration] {
	if s == nil {
		return optional.None[time.Duration]()
	}
	return s.SigTimeV
}

func (s *Signature) SigSeqNum() optional.Optional[uint64] {
	if s == nil {
		return optional.None[uint64]()
	}
	return s.SigSeqNumV
}

func (s *Signature) Validity() (optional.Optional[time.Time], optional.Optional[time.Time]) {
	if s == nil {
		return optional.None[time.Time](), optional.None[time.Time]()
	}
	return s.NotBefore, s.NotAfter
}

func (s *Signature) SigValue() []byte {
	if s == nil {
		return nil
	}
	return s.SigValueV
}

// encodeSigInfo builds the inner value of a SignatureInfo/InterestSignatureInfo
// TLV: SignatureType, optional KeyLocator, and (for signed Interests) optional
// SignatureNonce/SignatureTime/SignatureSeqNum.
func encodeSigInfo(sigType ndn.SigType, keyLocator enc.Name, nonce []byte, sigTime optional.Optional[time.Duration], sigSeqNum optional.Optional[uint64]) enc.Wire {
	var parts [][]byte

	parts = append(parts, enc.EncodeNatTlv(tlvSignatureType, uint64(sigType)))

	if len(keyLocator) > 0 {
		parts = append(parts, enc.EncodeTlv(tlvKeyLocator, keyLocator.Bytes()))
	}
	if len(nonce) > 0 {
		parts = append(parts, enc.EncodeTlv(tlvSignatureNonce, nonce))
	}
	if sigTime.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvSignatureTime, uint64(sigTime.Unwrap().Milliseconds())))
	}
	if sigSeqNum.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvSignatureSeqNum, sigSeqNum.Unwrap()))
	}

	return enc.ConcatParts(parts)
}

// parseSigInfo decodes the inner value of a SignatureInfo/InterestSignatureInfo
// TLV, where r has already been delegated to exactly that value's range.
func parseSigInfo(r *enc.WireView) (*Signature, error) {
	sig := &Signature{}
	for !r.IsEOF() {
		typ, err := r.ReadTLNum()
		if err != nil {
			return nil, err
		}
		length, err := r.ReadTLNum()
		if err != nil {
			return nil, err
		}
		if int(length) > r.Length()-r.Pos() {
			return nil, enc.ErrBufferOverflow
		}
		switch uint64(typ) {
		case tlvSignatureType:
			v, err := r.ReadNat(int(length))
			if err != nil {
				return nil, err
			}
			sig.SigTypeV = ndn.SigType(v)
		case tlvKeyLocator:
			sub := r.Delegate(int(length))
			name, err := sub.ReadName()
			if err != nil {
				return nil, err
			}
			sig.KeyNameV = name
		case tlvSignatureNonce:
			buf, err := r.ReadBuf(int(length))
			if err != nil {
				return nil, err
			}
			sig.SigNonceV = buf
		case tlvSignatureTime:
			v, err := r.ReadNat(int(length))
			if err != nil {
				return nil, err
			}
			sig.SigTimeV = optional.Some(time.Duration(v) * time.Millisecond)
		case tlvSignatureSeqNum:
			v, err := r.ReadNat(int(length))
			if err != nil {
				return nil, err
			}
			sig.SigSeqNumV = optional.Some(v)
		default:
			if err := r.Skip(int(length)); err != nil {
				return nil, err
			}
		}
	}
	return sig, nil
}
