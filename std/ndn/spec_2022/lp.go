package spec_2022

import (
	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

// NDNLPv2 link-layer TLV type numbers.
const (
	tlvLpPacket       = 0x64
	tlvFragment       = 0x50
	tlvSequence       = 0x51
	tlvFragIndex      = 0x52
	tlvFragCount      = 0x53
	tlvPitToken       = 0x62
	tlvNack           = 0x320
	tlvNackReason     = 0x321
	tlvIncomingFaceId = 0x32c
	tlvNextHopFaceId  = 0x330
	tlvCongestionMark = 0x340
)

// Nack reason codes, carried in an NDNLPv2 NackReason field.
const (
	NackReasonNone        uint64 = 0
	NackReasonCongestion  uint64 = 50
	NackReasonDuplicate   uint64 = 100
	NackReasonNoRoute     uint64 = 150
)

// NackInfo is the parsed content of an NDNLPv2 Nack field.
type NackInfo struct {
	Reason uint64
}

// LpPacket is the parsed (or about-to-be-encoded) NDNLPv2 link-layer
// envelope wrapping a network-layer Interest or Data fragment.
type LpPacket struct {
	Sequence       optional.Optional[uint64]
	FragIndex      optional.Optional[uint64]
	FragCount      optional.Optional[uint64]
	PitToken       []byte
	Nack           *NackInfo
	IncomingFaceId optional.Optional[uint64]
	NextHopFaceId  optional.Optional[uint64]
	CongestionMark optional.Optional[uint64]
	Fragment       enc.Wire
}

// Packet is the top-level union of what ReadPacket can return: exactly one
// of Interest, Data, LpPacket is non-nil. An LpPacket's Fragment is left as
// raw wire and is not parsed into Interest or Data.
type Packet struct {
	Interest *Interest
	Data     *Data
	LpPacket *LpPacket
}

// InterestContext carries the parse-time context of an Interest returned by
// ReadPacket: the wire range covered by its signature, if signed.
type InterestContext struct {
	sigCovered enc.Wire
}

func (c InterestContext) SigCovered() enc.Wire { return c.sigCovered }

// DataContext carries the parse-time context of a Data packet returned by
// ReadPacket: the wire range covered by its signature.
type DataContext struct {
	sigCovered enc.Wire
}

func (c DataContext) SigCovered() enc.Wire { return c.sigCovered }

// Context is returned alongside a Packet by ReadPacket. Only the field
// matching the parsed packet's type carries useful data.
type Context struct {
	Interest_context InterestContext
	Data_context      DataContext
}

// ReadPacket parses a top-level network or link-layer packet from r: an
// Interest, a Data, or an NDNLPv2 LpPacket wrapping either.
func ReadPacket(r enc.WireView) (*Packet, Context, error) {
	peek := r
	typ, err := peek.ReadTLNum()
	if err != nil {
		return nil, Context{}, err
	}

	switch uint64(typ) {
	case tlvInterest:
		interest, covered, err := (Spec{}).ReadInterest(r)
		if err != nil {
			return nil, Context{}, err
		}
		return &Packet{Interest: interest}, Context{Interest_context: InterestContext{covered}}, nil
	case tlvData:
		data, covered, err := (Spec{}).ReadData(r)
		if err != nil {
			return nil, Context{}, err
		}
		return &Packet{Data: data}, Context{Data_context: DataContext{covered}}, nil
	case tlvLpPacket:
		lp, err := readLpPacket(r)
		if err != nil {
			return nil, Context{}, err
		}
		return &Packet{LpPacket: lp}, Context{}, nil
	default:
		return nil, Context{}, enc.ErrFormat{Msg: "unrecognized top-level packet type"}
	}
}

func readLpPacket(r enc.WireView) (*LpPacket, error) {
	typ, err := r.ReadTLNum()
	if err != nil {
		return nil, err
	}
	if uint64(typ) != tlvLpPacket {
		return nil, enc.ErrFormat{Msg: "not an LpPacket"}
	}
	length, err := r.ReadTLNum()
	if err != nil {
		return nil, err
	}
	if int(length) > r.Length()-r.Pos() {
		return nil, enc.ErrBufferOverflow
	}
	sub := r.Delegate(int(length))

	lp := &LpPacket{}
	for !sub.IsEOF() {
		ftyp, err := sub.ReadTLNum()
		if err != nil {
			return nil, err
		}
		flen, err := sub.ReadTLNum()
		if err != nil {
			return nil, err
		}
		if int(flen) > sub.Length()-sub.Pos() {
			return nil, enc.ErrBufferOverflow
		}

		switch uint64(ftyp) {
		case tlvFragment:
			w, err := sub.ReadWire(int(flen))
			if err != nil {
				return nil, err
			}
			lp.Fragment = w
		case tlvSequence:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			lp.Sequence = optional.Some(v)
		case tlvFragIndex:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			lp.FragIndex = optional.Some(v)
		case tlvFragCount:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			lp.FragCount = optional.Some(v)
		case tlvPitToken:
			buf, err := sub.ReadBuf(int(flen))
			if err != nil {
				return nil, err
			}
			lp.PitToken = buf
		case tlvNack:
			nackSub := sub.Delegate(int(flen))
			nack, err := readNack(&nackSub)
			if err != nil {
				return nil, err
			}
			lp.Nack = nack
		case tlvIncomingFaceId:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			lp.IncomingFaceId = optional.Some(v)
		case tlvNextHopFaceId:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			lp.NextHopFaceId = optional.Some(v)
		case tlvCongestionMark:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			lp.CongestionMark = optional.Some(v)
		default:
			if err := sub.Skip(int(flen)); err != nil {
				return nil, err
			}
		}
	}
	return lp, nil
}

func readNack(sub *enc.WireView) (*NackInfo, error) {
	nack := &NackInfo{Reason: NackReasonNone}
	for !sub.IsEOF() {
		typ, err := sub.ReadTLNum()
		if err != nil {
			return nil, err
		}
		length, err := sub.ReadTLNum()
		if err != nil {
			return nil, err
		}
		if int(length) > sub.Length()-sub.Pos() {
			return nil, enc.ErrBufferOverflow
		}
		switch uint64(typ) {
		case tlvNackReason:
			v, err := sub.ReadNat(int(length))
			if err != nil {
				return nil, err
			}
			nack.Reason = v
		default:
			if err := sub.Skip(int(length)); err != nil {
				return nil, err
			}
		}
	}
	return nack, nil
}

// PacketEncoder encodes a Packet whose LpPacket field is set into its NDNLPv2
// wire form. Interest and Data packets are instead produced directly by
// Spec.MakeInterest/Spec.MakeData, which compute their signatures; Init and
// Encode mirror that two-step shape for link-layer framing of an
// already-encoded fragment.
type PacketEncoder struct {
	pkt *Packet
}

// Init records the packet to be encoded.
func (e *PacketEncoder) Init(pkt *Packet) {
	e.pkt = pkt
}

// Encode returns the wire encoding of pkt's LpPacket, or nil if pkt carries
// no link-layer envelope.
func (e *PacketEncoder) Encode(pkt *Packet) enc.Wire {
	if pkt.LpPacket == nil {
		return nil
	}
	return encodeLpPacket(pkt.LpPacket)
}

func encodeLpPacket(lp *LpPacket) enc.Wire {
	var body enc.Wire
	if lp.Sequence.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvSequence, lp.Sequence.Unwrap()))
	}
	if lp.FragIndex.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvFragIndex, lp.FragIndex.Unwrap()))
	}
	if lp.FragCount.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvFragCount, lp.FragCount.Unwrap()))
	}
	if lp.PitToken != nil {
		body = append(body, enc.EncodeTlv(tlvPitToken, lp.PitToken))
	}
	if lp.Nack != nil {
		inner := enc.EncodeNatTlv(tlvNackReason, lp.Nack.Reason)
		body = append(body, enc.WrapTlv(tlvNack, enc.Wire{inner})...)
	}
	if lp.IncomingFaceId.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvIncomingFaceId, lp.IncomingFaceId.Unwrap()))
	}
	if lp.NextHopFaceId.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvNextHopFaceId, lp.NextHopFaceId.Unwrap()))
	}
	if lp.CongestionMark.IsSet() {
		body = append(body, enc.EncodeNatTlv(tlvCongestionMark, lp.CongestionMark.Unwrap()))
	}
	if lp.Fragment != nil {
		body = append(body, enc.WrapTlv(tlvFragment, lp.Fragment)...)
	}
	return enc.WrapTlv(tlvLpPacket, body)
}

// Spec implements ndn.Spec for the NDN Packet Format "2022" revision.
type Spec struct{}
