package mgmt_2022

import (
	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

// TLV type numbers for the NFD management protocol's ControlParameters and
// ControlResponse structures.
const (
	tlvControlParameters              = 0x68
	tlvFaceId                         = 0x69
	tlvUri                            = 0x72
	tlvLocalUri                       = 0x81
	tlvOrigin                         = 0x6f
	tlvCost                           = 0x6a
	tlvCapacity                       = 0x83
	tlvCount                          = 0x84
	tlvBaseCongestionMarkingInterval  = 0x87
	tlvDefaultCongestionThreshold     = 0x88
	tlvMtu                            = 0x89
	tlvFlags                          = 0x6c
	tlvMask                           = 0x70
	tlvStrategy                       = 0x6b
	tlvExpirationPeriod               = 0x6d
	tlvFacePersistency                = 0x85

	tlvControlResponse = 0x65
	tlvStatusCode      = 0x66
	tlvStatusText      = 0x67
)

// ControlArgs is the NFD ControlParameters structure: the argument and
// result type of every rib/faces/strategy-choice/cs management command.
type ControlArgs struct {
	Name                       enc.Name
	FaceId                     optional.Optional[uint64]
	Uri                        optional.Optional[string]
	LocalUri                   optional.Optional[string]
	Origin                     optional.Optional[uint64]
	Cost                       optional.Optional[uint64]
	Capacity                   optional.Optional[uint64]
	Count                      optional.Optional[uint64]
	BaseCongestionMarkInterval optional.Optional[uint64]
	DefaultCongestionThreshold optional.Optional[uint64]
	Mtu                        optional.Optional[uint64]
	Flags                      optional.Optional[uint64]
	Mask                       optional.Optional[uint64]
	Strategy                   enc.Name
	ExpirationPeriod           optional.Optional[uint64]
	FacePersistency            optional.Optional[uint64]
}

// Encode serializes args as a ControlParameters TLV.
func (args *ControlArgs) Encode() enc.Wire {
	var parts [][]byte
	if len(args.Name) > 0 {
		parts = append(parts, args.Name.Bytes())
	}
	if args.FaceId.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvFaceId, args.FaceId.Unwrap()))
	}
	if args.Uri.IsSet() {
		parts = append(parts, enc.EncodeTlv(tlvUri, []byte(args.Uri.Unwrap())))
	}
	if args.LocalUri.IsSet() {
		parts = append(parts, enc.EncodeTlv(tlvLocalUri, []byte(args.LocalUri.Unwrap())))
	}
	if args.Origin.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvOrigin, args.Origin.Unwrap()))
	}
	if args.Cost.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvCost, args.Cost.Unwrap()))
	}
	if args.Capacity.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvCapacity, args.Capacity.Unwrap()))
	}
	if args.Count.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvCount, args.Count.Unwrap()))
	}
	if args.BaseCongestionMarkInterval.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvBaseCongestionMarkingInterval, args.BaseCongestionMarkInterval.Unwrap()))
	}
	if args.DefaultCongestionThreshold.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvDefaultCongestionThreshold, args.DefaultCongestionThreshold.Unwrap()))
	}
	if args.Mtu.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvMtu, args.Mtu.Unwrap()))
	}
	if args.Flags.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvFlags, args.Flags.Unwrap()))
	}
	if args.Mask.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvMask, args.Mask.Unwrap()))
	}
	if len(args.Strategy) > 0 {
		parts = append(parts, enc.EncodeTlv(tlvStrategy, args.Strategy.Bytes()))
	}
	if args.ExpirationPeriod.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvExpirationPeriod, args.ExpirationPeriod.Unwrap()))
	}
	if args.FacePersistency.IsSet() {
		parts = append(parts, enc.EncodeNatTlv(tlvFacePersistency, args.FacePersistency.Unwrap()))
	}
	return enc.WrapTlv(tlvControlParameters, enc.ConcatParts(parts))
}

// ControlParametersMsg wraps the result of ParseControlParameters: Val is nil
// when r was not a ControlParameters TLV.
type ControlParametersMsg struct {
	Val *ControlArgs
}

// ParseControlParameters decodes a ControlParameters TLV from r. When strict
// is true, r must be fully consumed by the single top-level TLV.
func ParseControlParameters(r enc.WireView, strict bool) (*ControlParametersMsg, error) {
	typ, err := r.ReadTLNum()
	if err != nil {
		return nil, err
	}
	if uint64(typ) != tlvControlParameters {
		return nil, enc.ErrFormat{Msg: "not a ControlParameters TLV"}
	}
	length, err := r.ReadTLNum()
	if err != nil {
		return nil, err
	}
	if int(length) > r.Length()-r.Pos() {
		return nil, enc.ErrBufferOverflow
	}
	sub := r.Delegate(int(length))
	args, err := parseControlParametersValue(&sub)
	if err != nil {
		return nil, err
	}

	if strict && !r.IsEOF() {
		return nil, enc.ErrFormat{Msg: "trailing bytes after ControlParameters"}
	}

	return &ControlParametersMsg{Val: args}, nil
}

func parseControlParametersValue(sub *enc.WireView) (*ControlArgs, error) {
	args := &ControlArgs{}
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
		case 0x07: // Name
			nameSub := sub.Delegate(int(flen))
			name, err := nameSub.ReadName()
			if err != nil {
				return nil, err
			}
			args.Name = name
		case tlvFaceId:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.FaceId = optional.Some(v)
		case tlvUri:
			buf, err := sub.ReadBuf(int(flen))
			if err != nil {
				return nil, err
			}
			args.Uri = optional.Some(string(buf))
		case tlvLocalUri:
			buf, err := sub.ReadBuf(int(flen))
			if err != nil {
				return nil, err
			}
			args.LocalUri = optional.Some(string(buf))
		case tlvOrigin:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Origin = optional.Some(v)
		case tlvCost:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Cost = optional.Some(v)
		case tlvCapacity:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Capacity = optional.Some(v)
		case tlvCount:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Count = optional.Some(v)
		case tlvBaseCongestionMarkingInterval:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.BaseCongestionMarkInterval = optional.Some(v)
		case tlvDefaultCongestionThreshold:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.DefaultCongestionThreshold = optional.Some(v)
		case tlvMtu:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Mtu = optional.Some(v)
		case tlvFlags:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Flags = optional.Some(v)
		case tlvMask:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.Mask = optional.Some(v)
		case tlvStrategy:
			strategySub := sub.Delegate(int(flen))
			name, err := strategySub.ReadName()
			if err != nil {
				return nil, err
			}
			args.Strategy = name
		case tlvExpirationPeriod:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.ExpirationPeriod = optional.Some(v)
		case tlvFacePersistency:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			args.FacePersistency = optional.Some(v)
		default:
			if err := sub.Skip(int(flen)); err != nil {
				return nil, err
			}
		}
	}
	return args, nil
}

// ControlResponseVal is the decoded body of a ControlResponse TLV.
type ControlResponseVal struct {
	StatusCode uint64
	StatusText string
	Params     *ControlArgs
}

// ControlResponse wraps the result of ParseControlResponse: Val is nil when
// r was not a ControlResponse TLV.
type ControlResponse struct {
	Val *ControlResponseVal
}

// EncodeControlResponse serializes a ControlResponse TLV with the given
// status and optional ControlParameters body.
func EncodeControlResponse(statusCode uint64, statusText string, params *ControlArgs) enc.Wire {
	body := enc.Wire{
		enc.EncodeNatTlv(tlvStatusCode, statusCode),
		enc.EncodeTlv(tlvStatusText, []byte(statusText)),
	}
	if params != nil {
		body = append(body, params.Encode()...)
	}
	return enc.WrapTlv(tlvControlResponse, body)
}

// ParseControlResponse decodes a ControlResponse TLV from r. When strict is
// true, r must be fully consumed by the single top-level TLV.
func ParseControlResponse(r enc.WireView, strict bool) (*ControlResponse, error) {
	typ, err := r.ReadTLNum()
	if err != nil {
		return nil, err
	}
	if uint64(typ) != tlvControlResponse {
		return nil, enc.ErrFormat{Msg: "not a ControlResponse TLV"}
	}
	length, err := r.ReadTLNum()
	if err != nil {
		return nil, err
	}
	if int(length) > r.Length()-r.Pos() {
		return nil, enc.ErrBufferOverflow
	}
	sub := r.Delegate(int(length))

	val := &ControlResponseVal{}
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
		case tlvStatusCode:
			v, err := sub.ReadNat(int(flen))
			if err != nil {
				return nil, err
			}
			val.StatusCode = v
		case tlvStatusText:
			buf, err := sub.ReadBuf(int(flen))
			if err != nil {
				return nil, err
			}
			val.StatusText = string(buf)
		case tlvControlParameters:
			paramsSub := sub.Delegate(int(flen))
			params, err := parseControlParametersValue(&paramsSub)
			if err != nil {
				return nil, err
			}
			val.Params = params
		default:
			if err := sub.Skip(int(flen)); err != nil {
				return nil, err
			}
		}
	}

	if strict && !r.IsEOF() {
		return nil, enc.ErrFormat{Msg: "trailing bytes after ControlResponse"}
	}

	return &ControlResponse{Val: val}, nil
}

// MgmtConfig holds the signer and locality used to build NFD management
// command Interests.
type MgmtConfig struct {
	local  bool
	signer ndn.Signer
	spec   ndn.Spec
}

// NewConfig builds an MgmtConfig. local selects the /localhost/nfd command
// prefix; non-local connections use /localhop/nfd instead.
func NewConfig(local bool, signer ndn.Signer, spec ndn.Spec) *MgmtConfig {
	return &MgmtConfig{local: local, signer: signer, spec: spec}
}

// SetSigner replaces the signer used to sign future management commands.
func (c *MgmtConfig) SetSigner(signer ndn.Signer) {
	c.signer = signer
}

// MakeCmd builds a signed command Interest for /<prefix>/nfd/<module>/<cmd>
// carrying args as its ApplicationParameters.
func (c *MgmtConfig) MakeCmd(module string, cmd string, args *ControlArgs, intCfg *ndn.InterestConfig) (*ndn.EncodedInterest, error) {
	root := "localhost"
	if !c.local {
		root = "localhop"
	}
	name := enc.Name{
		enc.NewGenericComponent(root),
		enc.NewGenericComponent("nfd"),
		enc.NewGenericComponent(module),
		enc.NewGenericComponent(cmd),
	}
	return c.spec.MakeInterest(name, intCfg, args.Encode(), c.signer)
}
