package spec_2022

import (
	"bytes"
	"crypto/sha256"
	"encoding/binary"
	"time"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

const (
	tlvInterest               = 0x05
	tlvCanBePrefix            = 0x21
	tlvMustBeFresh            = 0x12
	tlvForwardingHint         = 0x1e
	tlvNonce                  = 0x0a
	tlvInterestLifetime       = 0x0c
	tlvHopLimit               = 0x22
	tlvApplicationParameters  = 0x24
	tlvInterestSignatureInfo  = 0x2c
	tlvInterestSignatureValue = 0x2e

	// Selectors and its sub-fields are the legacy (pre-CanBePrefix) Interest
	// selector group: MinSuffixComponents, MaxSuffixComponents, the
	// PublisherPublicKeyLocator (reusing tlvKeyLocator), Exclude, and
	// ChildSelector. Present on the wire iff any of these fields is set.
	tlvSelectors           = 0x09
	tlvMinSuffixComponents = 0x0d
	tlvMaxSuffixComponents = 0x0e
	tlvExclude             = 0x10
	tlvChildSelector       = 0x11
)

// Interest is the parsed (or about-to-be-encoded) representation of an
// Interest packet.
type Interest struct {
	NameV           enc.Name
	CanBePrefixV    bool
	MustBeFreshV    bool
	ForwardingHintV []enc.Name
	NonceV          optional.Optional[uint32]
	LifetimeV       optional.Optional[time.Duration]
	HopLimitV       *uint
	AppParamV       enc.Wire
	SignatureV      *Signature

	MinSuffixComponentsV optional.Optional[uint]
	MaxSuffixComponentsV optional.Optional[uint]
	ExcludeV             enc.Exclude
	ChildSelectorV       optional.Optional[uint]
	KeyLocatorV          enc.Name
}

func (i *Interest) Name() enc.Name                            { return i.NameV }
func (i *Interest) CanBePrefix() bool                         { return i.CanBePrefixV }
func (i *Interest) MustBeFresh() bool                         { return i.MustBeFreshV }
func (i *Interest) ForwardingHint() []enc.Name                { return i.ForwardingHintV }
func (i *Interest) Nonce() optional.Optional[uint32]           { return i.NonceV }
func (i *Interest) Lifetime() optional.Optional[time.Duration] { return i.LifetimeV }
func (i *Interest) HopLimit() *uint                            { return i.HopLimitV }
func (i *Interest) AppParam() enc.Wire                         { return i.AppParamV }
func (i *Interest) Signature() ndn.Signature {
	if i.SignatureV == nil {
		return (*Signature)(nil)
	}
	return i.SignatureV
}

func (i *Interest) MinSuffixComponents() optional.Optional[uint] { return i.MinSuffixComponentsV }
func (i *Interest) MaxSuffixComponents() optional.Optional[uint] { return i.MaxSuffixComponentsV }
func (i *Interest) Exclude() enc.Exclude                         { return i.ExcludeV }
func (i *Interest) ChildSelector() optional.Optional[uint]       { return i.ChildSelectorV }
func (i *Interest) KeyLocator() enc.Name                         { return i.KeyLocatorV }

// MakeInterest constructs an Interest packet. When appParam is non-nil, the
// returned FinalName gains a ParametersSha256Digest component computed over
// the ApplicationParameters TLV, and, if signer is non-nil, the
// InterestSignatureInfo TLV as well. When signer is non-nil the
// InterestSignatureValue covers FinalName + ApplicationParameters +
// InterestSignatureInfo, in that order.
func (Spec) MakeInterest(name enc.Name, config *ndn.InterestConfig, appParam enc.Wire, signer ndn.Signer) (*ndn.EncodedInterest, error) {
	if config == nil {
		config = &ndn.InterestConfig{}
	}

	finalName := name
	var appParamTlv, sigInfoTlv, sigValueTlv enc.Wire

	if appParam != nil {
		appParamTlv = enc.WrapTlv(tlvApplicationParameters, appParam)

		if signer != nil {
			inner := encodeSigInfo(signer.Type(), signer.KeyLocator(), config.SigNonce, config.SigTime, optional.None[uint64]())
			sigInfoTlv = enc.WrapTlv(tlvInterestSignatureInfo, inner)
		}

		var digestInput []byte
		digestInput = append(digestInput, appParamTlv.Join()...)
		digestInput = append(digestInput, sigInfoTlv.Join()...)
		digest := sha256.Sum256(digestInput)

		finalName = name.Append(enc.Component{
			Typ: enc.TypeParametersSha256DigestComponent,
			Val: digest[:],
		})

		if signer != nil {
			covered := make(enc.Wire, 0, 1+len(appParamTlv)+len(sigInfoTlv))
			covered = append(covered, finalName.Bytes())
			covered = append(covered, appParamTlv...)
			covered = append(covered, sigInfoTlv...)

			sigBytes, err := signer.Sign(covered)
			if err != nil {
				return nil, err
			}
			sigValueTlv = enc.WrapTlv(tlvInterestSignatureValue, enc.Wire{sigBytes})
		}
	}

	var selectorsTlv enc.Wire
	hasSelectors := config.MinSuffixComponents.IsSet() || config.MaxSuffixComponents.IsSet() ||
		len(config.Exclude.Entries) > 0 || config.ChildSelector.IsSet() || len(config.KeyLocator) > 0
	if hasSelectors {
		var parts [][]byte
		if config.MinSuffixComponents.IsSet() {
			parts = append(parts, enc.EncodeNatTlv(tlvMinSuffixComponents, uint64(config.MinSuffixComponents.Unwrap())))
		}
		if config.MaxSuffixComponents.IsSet() {
			parts = append(parts, enc.EncodeNatTlv(tlvMaxSuffixComponents, uint64(config.MaxSuffixComponents.Unwrap())))
		}
		if len(config.KeyLocator) > 0 {
			parts = append(parts, enc.EncodeTlv(tlvKeyLocator, config.KeyLocator.Bytes()))
		}
		if len(config.Exclude.Entries) > 0 {
			parts = append(parts, enc.EncodeTlv(tlvExclude, config.Exclude.Bytes()))
		}
		if config.ChildSelector.IsSet() {
			parts = append(parts, enc.EncodeNatTlv(tlvChildSelector, uint64(config.ChildSelector.Unwrap())))
		}
		selectorsTlv = enc.WrapTlv(tlvSelectors, enc.ConcatParts(parts))
	}

	body := make(enc.Wire, 0, 16)
	body = append(body, finalName.Bytes())
	body = append(body, selectorsTlv...)
	if config.CanBePrefix {
		body = append(body, enc.EncodeTlv(tlvCanBePrefix, nil))
	}
	if config.MustBeFresh {
		body = append(body, enc.EncodeTlv(tlvMustBeFresh, nil))
	}
	if len(config.ForwardingHint) > 0 {
		var hint enc.Wire
		for _, n := range config.ForwardingHint {
			hint = append(hint, n.Bytes())
		}
		body = append(body, enc.WrapTlv(tlvForwardingHint, hint)...)
	}
	if config.Nonce.IsSet() {
		nonce := make([]byte, 4)
		binary.BigEndian.PutUint32(nonce, config.Nonce.Unwrap())
		body = append(body, enc.EncodeTlv(tlvNonce, nonce))
	}
	if config.Lifetime.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvInterestLifetime, uint64(config.Lifetime.Unwrap().Milliseconds())))
	}
	if config.HopLimit != nil {
		body = append(body, enc.EncodeTlv(tlvHopLimit, []byte{*config.HopLimit}))
	}
	body = append(body, appParamTlv...)
	body = append(body, sigInfoTlv...)
	body = append(body, sigValueTlv...)

	wire := enc.WrapTlv(tlvInterest, body)
	return &ndn.EncodedInterest{Wire: wire, FinalName: finalName, Config: config}, nil
}

// ReadInterest parses an Interest packet from r, which must be positioned at
// the start of the Interest TLV. The returned wire range is the bytes
// covered by the Interest's signature (FinalName, ApplicationParameters,
// InterestSignatureInfo); it is nil when the Interest carries no
// ApplicationParameters.
func (Spec) ReadInterest(r enc.WireView) (*Interest, enc.Wire, error) {
	typ, err := r.ReadTLNum()
	if err != nil {
		return nil, nil, err
	}
	if uint64(typ) != tlvInterest {
		return nil, nil, enc.ErrFormat{Msg: "not an Interest packet"}
	}
	length, err := r.ReadTLNum()
	if err != nil {
		return nil, nil, err
	}
	if int(length) > r.Length()-r.Pos() {
		return nil, nil, enc.ErrBufferOverflow
	}
	sub := r.Delegate(int(length))
	return readInterestValue(&sub)
}

func readInterestValue(sub *enc.WireView) (*Interest, enc.Wire, error) {
	interest := &Interest{}

	appParamStart, appParamEnd := -1, -1
	sigInfoStart, sigInfoEnd := -1, -1

	for !sub.IsEOF() {
		fieldStart := sub.Pos()
		typ, err := sub.ReadTLNum()
		if err != nil {
			return nil, nil, err
		}
		length, err := sub.ReadTLNum()
		if err != nil {
			return nil, nil, err
		}
		if int(length) > sub.Length()-sub.Pos() {
			return nil, nil, enc.ErrBufferOverflow
		}

		switch uint64(typ) {
		case tlvName:
			nameSub := sub.Delegate(int(length))
			name, err := nameSub.ReadName()
			if err != nil {
				return nil, nil, err
			}
			interest.NameV = name
		case tlvCanBePrefix:
			if err := sub.Skip(int(length)); err != nil {
				return nil, nil, err
			}
			interest.CanBePrefixV = true
		case tlvMustBeFresh:
			if err := sub.Skip(int(length)); err != nil {
				return nil, nil, err
			}
			interest.MustBeFreshV = true
		case tlvSelectors:
			selSub := sub.Delegate(int(length))
			if err := readSelectors(&selSub, interest); err != nil {
				return nil, nil, err
			}
		case tlvForwardingHint:
			hintSub := sub.Delegate(int(length))
			var hints []enc.Name
			for !hintSub.IsEOF() {
				n, err := hintSub.ReadName()
				if err != nil {
					return nil, nil, err
				}
				hints = append(hints, n)
			}
			interest.ForwardingHintV = hints
		case tlvNonce:
			buf, err := sub.ReadBuf(int(length))
			if err != nil {
				return nil, nil, err
			}
			if len(buf) != 4 {
				return nil, nil, enc.ErrFormat{Msg: "invalid Nonce length"}
			}
			interest.NonceV = optional.Some(binary.BigEndian.Uint32(buf))
		case tlvInterestLifetime:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return nil, nil, err
			}
			interest.LifetimeV = optional.Some(time.Duration(v) * time.Millisecond)
		case tlvHopLimit:
			buf, err := sub.ReadBuf(int(length))
			if err != nil {
				return nil, nil, err
			}
			if len(buf) != 1 {
				return nil, nil, enc.ErrFormat{Msg: "invalid HopLimit length"}
			}
			hl := uint(buf[0])
			interest.HopLimitV = &hl
		case tlvApplicationParameters:
			w, err := sub.ReadWire(int(length))
			if err != nil {
				return nil, nil, err
			}
			interest.AppParamV = w
			appParamStart, appParamEnd = fieldStart, sub.Pos()
		case tlvInterestSignatureInfo:
			infoSub := sub.Delegate(int(length))
			sig, err := parseSigInfo(&infoSub)
			if err != nil {
				return nil, nil, err
			}
			interest.SignatureV = sig
			sigInfoStart, sigInfoEnd = fieldStart, sub.Pos()
		case tlvInterestSignatureValue:
			buf, err := sub.ReadBuf(int(length))
			if err != nil {
				return nil, nil, err
			}
			if interest.SignatureV == nil {
				interest.SignatureV = &Signature{}
			}
			interest.SignatureV.SigValueV = buf
		default:
			if err := sub.Skip(int(length)); err != nil {
				return nil, nil, err
			}
		}
	}

	if len(interest.NameV) > 0 {
		last := interest.NameV[len(interest.NameV)-1]
		if last.Typ == enc.TypeParametersSha256DigestComponent {
			if appParamStart < 0 {
				return nil, nil, enc.ErrFormat{Msg: "signed Interest digest without ApplicationParameters"}
			}
			h := sha256.New()
			for _, seg := range sub.Range(appParamStart, appParamEnd) {
				h.Write(seg)
			}
			if sigInfoStart >= 0 {
				for _, seg := range sub.Range(sigInfoStart, sigInfoEnd) {
					h.Write(seg)
				}
			}
			if !bytes.Equal(h.Sum(nil), last.Val) {
				return nil, nil, enc.ErrFormat{Msg: "Interest parameter digest mismatch"}
			}
		}
	}

	var covered enc.Wire
	if appParamStart >= 0 {
		covered = append(covered, interest.NameV.Bytes())
		covered = append(covered, sub.Range(appParamStart, appParamEnd)...)
		if sigInfoStart >= 0 {
			covered = append(covered, sub.Range(sigInfoStart, sigInfoEnd)...)
		}
	}

	return interest, covered, nil
}

// readSelectors decodes the legacy Selectors group nested inside an
// Interest: MinSuffixComponents, MaxSuffixComponents, the
// PublisherPublicKeyLocator, Exclude (rejected if not in canonical order),
// and ChildSelector.
func readSelectors(sub *enc.WireView, interest *Interest) error {
	for !sub.IsEOF() {
		typ, err := sub.ReadTLNum()
		if err != nil {
			return err
		}
		length, err := sub.ReadTLNum()
		if err != nil {
			return err
		}
		if int(length) > sub.Length()-sub.Pos() {
			return enc.ErrBufferOverflow
		}
		switch uint64(typ) {
		case tlvMinSuffixComponents:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return err
			}
			interest.MinSuffixComponentsV = optional.Some(uint(v))
		case tlvMaxSuffixComponents:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return err
			}
			interest.MaxSuffixComponentsV = optional.Some(uint(v))
		case tlvKeyLocator:
			klSub := sub.Delegate(int(length))
			name, err := klSub.ReadName()
			if err != nil {
				return err
			}
			interest.KeyLocatorV = name
		case tlvExclude:
			exSub := sub.Delegate(int(length))
			ex, err := enc.ReadExclude(&exSub)
			if err != nil {
				return err
			}
			interest.ExcludeV = ex
		case tlvChildSelector:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return err
			}
			interest.ChildSelectorV = optional.Some(uint(v))
		default:
			if err := sub.Skip(int(length)); err != nil {
				return err
			}
		}
	}
	return nil
}
