package spec_2022

import (
	"time"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

const (
	tlvData            = 0x06
	tlvName            = 0x07
	tlvMetaInfo        = 0x14
	tlvContent         = 0x15
	tlvSignatureInfo   = 0x16
	tlvContentType     = 0x18
	tlvFreshnessPeriod = 0x19
	tlvFinalBlockId    = 0x1a
)

// Data is the parsed (or about-to-be-encoded) representation of a Data
// packet. Exported V-suffixed fields give zero-cost access to code that
// already holds a concrete *Data, while the method set below implements
// ndn.Data for code that only has the interface.
type Data struct {
	NameV         enc.Name
	ContentTypeV  optional.Optional[ndn.ContentType]
	FreshnessV    optional.Optional[time.Duration]
	FinalBlockIDV optional.Optional[enc.Component]
	ContentV      enc.Wire
	SignatureV    *Signature

	// WireV is the raw wire encoding of the whole Data packet, as read by
	// ReadData. It is the input to the implicit digest in FullName.
	WireV enc.Wire
}

func (d *Data) Name() enc.Name                                   { return d.NameV }
func (d *Data) ContentType() optional.Optional[ndn.ContentType]   { return d.ContentTypeV }
func (d *Data) Freshness() optional.Optional[time.Duration]       { return d.FreshnessV }
func (d *Data) FinalBlockID() optional.Optional[enc.Component]    { return d.FinalBlockIDV }
func (d *Data) Content() enc.Wire                                 { return d.ContentV }
func (d *Data) Signature() ndn.Signature {
	if d.SignatureV == nil {
		return (*Signature)(nil)
	}
	return d.SignatureV
}

// FullName returns the packet's full name, computing the implicit digest
// over WireV if NameV does not already end in a digest component.
func (d *Data) FullName() enc.Name {
	return d.NameV.ToFullName(d.WireV)
}

// MakeData constructs and, if signer is non-nil, signs a Data packet. The
// signed range covers Name, MetaInfo, Content (if present), and
// SignatureInfo, in wire order.
func (Spec) MakeData(name enc.Name, config *ndn.DataConfig, content enc.Wire, signer ndn.Signer) (*ndn.EncodedData, error) {
	if config == nil {
		config = &ndn.DataConfig{}
	}

	nameWire := enc.Wire{name.Bytes()}

	var metaParts [][]byte
	if config.ContentType.IsSet() {
		metaParts = append(metaParts, enc.EncodeNatTlv(tlvContentType, uint64(config.ContentType.Unwrap())))
	}
	if config.Freshness.IsSet() {
		metaParts = append(metaParts, enc.EncodeNatTlv(tlvFreshnessPeriod, uint64(config.Freshness.Unwrap().Milliseconds())))
	}
	if config.FinalBlockID.IsSet() {
		comp := config.FinalBlockID.Unwrap()
		metaParts = append(metaParts, enc.EncodeTlv(tlvFinalBlockId, comp.Bytes()))
	}
	metaWire := enc.WrapTlv(tlvMetaInfo, enc.ConcatParts(metaParts))

	var contentWire enc.Wire
	if content != nil {
		contentWire = enc.WrapTlv(tlvContent, content)
	}

	var sigInfoWire enc.Wire
	if signer != nil {
		inner := encodeSigInfo(signer.Type(), signer.KeyLocator(), nil, optional.None[time.Duration](), optional.None[uint64]())
		sigInfoWire = enc.WrapTlv(tlvSignatureInfo, inner)
	}

	covered := make(enc.Wire, 0, 2+len(contentWire)+len(sigInfoWire))
	covered = append(covered, nameWire...)
	covered = append(covered, metaWire...)
	covered = append(covered, contentWire...)
	covered = append(covered, sigInfoWire...)

	var sigValueWire enc.Wire
	if signer != nil {
		sigBytes, err := signer.Sign(covered)
		if err != nil {
			return nil, err
		}
		if len(sigBytes) > 0 {
			sigValueWire = enc.WrapTlv(tlvSignatureValue, enc.Wire{sigBytes})
		}
	}

	full := make(enc.Wire, 0, len(covered)+len(sigValueWire))
	full = append(full, covered...)
	full = append(full, sigValueWire...)

	wire := enc.WrapTlv(tlvData, full)
	return &ndn.EncodedData{Wire: wire, Name: name}, nil
}

// ReadData parses a Data packet from r, which must be positioned at the
// start of the Data TLV. It returns the parsed packet and the wire range
// covered by its signature (Name, MetaInfo, Content, SignatureInfo).
func (Spec) ReadData(r enc.WireView) (*Data, enc.Wire, error) {
	start := r.Pos()
	typ, err := r.ReadTLNum()
	if err != nil {
		return nil, nil, err
	}
	if uint64(typ) != tlvData {
		return nil, nil, enc.ErrFormat{Msg: "not a Data packet"}
	}
	length, err := r.ReadTLNum()
	if err != nil {
		return nil, nil, err
	}
	if int(length) > r.Length()-r.Pos() {
		return nil, nil, enc.ErrBufferOverflow
	}
	sub := r.Delegate(int(length))
	data, covered, err := readDataValue(&sub)
	if err != nil {
		return nil, nil, err
	}
	data.WireV = r.Range(start, r.Pos())
	return data, covered, nil
}

func readDataValue(sub *enc.WireView) (*Data, enc.Wire, error) {
	data := &Data{}
	sigInfoEnd := -1

	for !sub.IsEOF() {
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
			data.NameV = name
		case tlvMetaInfo:
			metaSub := sub.Delegate(int(length))
			if err := readMetaInfo(&metaSub, data); err != nil {
				return nil, nil, err
			}
		case tlvContent:
			w, err := sub.ReadWire(int(length))
			if err != nil {
				return nil, nil, err
			}
			data.ContentV = w
		case tlvSignatureInfo:
			infoSub := sub.Delegate(int(length))
			sig, err := parseSigInfo(&infoSub)
			if err != nil {
				return nil, nil, err
			}
			data.SignatureV = sig
			sigInfoEnd = sub.Pos()
		case tlvSignatureValue:
			buf, err := sub.ReadBuf(int(length))
			if err != nil {
				return nil, nil, err
			}
			if data.SignatureV == nil {
				data.SignatureV = &Signature{}
			}
			data.SignatureV.SigValueV = buf
		default:
			if err := sub.Skip(int(length)); err != nil {
				return nil, nil, err
			}
		}
	}

	end := sigInfoEnd
	if end < 0 {
		end = sub.Pos()
	}
	covered := sub.Range(0, end)
	return data, covered, nil
}

func readMetaInfo(sub *enc.WireView, data *Data) error {
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
		case tlvContentType:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return err
			}
			data.ContentTypeV = optional.Some(ndn.ContentType(v))
		case tlvFreshnessPeriod:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return err
			}
			data.FreshnessV = optional.Some(time.Duration(v) * time.Millisecond)
		case tlvFinalBlockId:
			compSub := sub.Delegate(int(length))
			comp, err := compSub.ReadComponent()
			if err != nil {
				return err
			}
			data.FinalBlockIDV = optional.Some(comp)
		default:
			if err := sub.Skip(int(length)); err != nil {
				return err
			}
		}
	}
	return nil
}
