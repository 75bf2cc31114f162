// Package ndn defines the interfaces that tie the wire codec, the security
// layer, and the dispatch engine together: the packet data model, the
// face/engine contract, and the signing facade.
package ndn

import (
	"time"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

// SigType identifies the signature algorithm used on a packet.
type SigType int

const (
	// SignatureNone marks the absence of a signature; it is never written to
	// the wire.
	SignatureNone            SigType = -1
	SignatureDigestSha256    SigType = 0
	SignatureSha256WithRsa   SigType = 1
	SignatureSha256WithEcdsa SigType = 3
	SignatureHmacWithSha256  SigType = 4
	SignatureEd25519         SigType = 5
	// SignatureEmptyTest is used by the test signer only.
	SignatureEmptyTest SigType = 200
)

// ContentType identifies the semantics of a Data packet's content.
type ContentType uint64

const (
	ContentTypeBlob      ContentType = 0
	ContentTypeLink      ContentType = 1
	ContentTypeKey       ContentType = 2
	ContentTypeNack      ContentType = 3
	ContentTypeManifest  ContentType = 4
	ContentTypePrefixAnn ContentType = 5
	ContentTypeFlic      ContentType = 1024
)

// Signature exposes the fields of a parsed Interest/Data signature.
type Signature interface {
	SigType() SigType
	KeyName() enc.Name
	SigNonce() []byte
	SigTime() optional.Optional[time.Duration]
	SigSeqNum() optional.Optional[uint64]
	Validity() (notBefore, notAfter optional.Optional[time.Time])
	SigValue() []byte
}

// Signer produces signatures over the wire bytes covered by a packet.
type Signer interface {
	// Type returns the signature type produced by this signer.
	Type() SigType

	// KeyName returns the name of the key used to sign, if any.
	KeyName() enc.Name

	// KeyLocator returns the name to place in the packet's KeyLocator field.
	KeyLocator() enc.Name

	// EstimateSize returns the worst-case size, in bytes, of the produced signature.
	EstimateSize() uint

	// Sign computes the signature over the covered wire.
	Sign(covered enc.Wire) ([]byte, error)

	// Public returns the encoded public key material, if this signer has one.
	Public() ([]byte, error)
}

// SigChecker validates a signature given the bytes it covers.
type SigChecker func(name enc.Name, covered enc.Wire, sig Signature) bool

// Timer abstracts wall-clock access and deferred execution so that tests can
// simulate the passage of time.
type Timer interface {
	// Now returns the current time.
	Now() time.Time
	// Sleep blocks for the given duration.
	Sleep(d time.Duration)
	// Schedule runs f after d and returns a function to cancel it.
	Schedule(d time.Duration, f func()) (cancel func() error)
	// Nonce returns a fresh random nonce.
	Nonce() []byte
}

// InterestConfig carries the parameters used to construct an Interest.
type InterestConfig struct {
	CanBePrefix    bool
	MustBeFresh    bool
	ForwardingHint []enc.Name
	Nonce          optional.Optional[uint32]
	Lifetime       optional.Optional[time.Duration]
	HopLimit       *byte

	// MinSuffixComponents and MaxSuffixComponents bound the number of name
	// components between the Interest's name and a matching Data's full
	// name (the full name always includes the implicit digest component).
	MinSuffixComponents optional.Optional[uint]
	MaxSuffixComponents optional.Optional[uint]

	// Exclude rules out suffix components by explicit value or by an
	// Any-bounded range, evaluated in canonical Component order.
	Exclude enc.Exclude

	// ChildSelector picks among multiple children of the Interest name when
	// more than one satisfies the other selectors: 0 prefers the leftmost
	// (lowest canonical order) child, 1 the rightmost.
	ChildSelector optional.Optional[uint]

	// KeyLocator, set, requires a matching Data to carry a signature whose
	// KeyLocator equals this name.
	KeyLocator enc.Name

	// NextHopId wraps the Interest in an NDNLPv2 header with a NextHopFaceId.
	NextHopId optional.Optional[uint64]

	// SigNonce and SigTime allow constructing signed Interests, used by the
	// management protocol for NFD control commands.
	SigNonce []byte
	SigTime  optional.Optional[time.Duration]
}

// DataConfig carries the parameters used to construct a Data packet.
type DataConfig struct {
	ContentType optional.Optional[ContentType]
	Freshness   optional.Optional[time.Duration]
	FinalBlockID optional.Optional[enc.Component]
}

// EncodedInterest is the result of Spec.MakeInterest: the wire bytes, the
// name under which the Interest should be matched (FinalName, which may
// carry a ParametersSha256Digest or ImplicitSha256Digest component), and the
// configuration used to build it.
type EncodedInterest struct {
	Wire      enc.Wire
	FinalName enc.Name
	Config    *InterestConfig
}

// EncodedData is the result of Spec.MakeData.
type EncodedData struct {
	Wire enc.Wire
	Name enc.Name
}

// Data is the parsed view of a received Data packet.
type Data interface {
	Name() enc.Name
	ContentType() optional.Optional[ContentType]
	Freshness() optional.Optional[time.Duration]
	FinalBlockID() optional.Optional[enc.Component]
	Content() enc.Wire
	Signature() Signature

	// FullName returns the packet's full name: Name extended by an
	// implicit-SHA-256-digest component computed over the packet's own
	// wire encoding, unless Name already ends in a digest component.
	FullName() enc.Name
}

// Interest is the parsed view of a received Interest packet.
type Interest interface {
	Name() enc.Name
	CanBePrefix() bool
	MustBeFresh() bool
	ForwardingHint() []enc.Name
	Nonce() optional.Optional[uint32]
	Lifetime() optional.Optional[time.Duration]
	HopLimit() *uint
	AppParam() enc.Wire
	Signature() Signature

	MinSuffixComponents() optional.Optional[uint]
	MaxSuffixComponents() optional.Optional[uint]
	Exclude() enc.Exclude
	ChildSelector() optional.Optional[uint]
	KeyLocator() enc.Name
}

// Spec encodes and decodes packets on the wire according to a fixed version
// of the NDN packet format.
type Spec interface {
	// MakeData constructs and signs a Data packet.
	MakeData(name enc.Name, config *DataConfig, content enc.Wire, signer Signer) (*EncodedData, error)

	// MakeInterest constructs and optionally signs an Interest packet.
	// appParam may be nil; signer, if non-nil and appParam is non-nil, requests a signed Interest.
	MakeInterest(name enc.Name, config *InterestConfig, appParam enc.Wire, signer Signer) (*EncodedInterest, error)
}

// InterestHandlerArgs is passed to an InterestHandler when a matching
// Interest arrives.
type InterestHandlerArgs struct {
	Interest       Interest
	RawInterest    enc.Wire
	SigCovered     enc.Wire
	PitToken       []byte
	IncomingFaceId optional.Optional[uint64]
	Deadline       time.Time
	Reply          WireReplyFunc
}

// InterestHandler processes an incoming Interest matching a registered prefix.
type InterestHandler func(args InterestHandlerArgs)

// WireReplyFunc sends a pre-encoded Data packet back to its requester.
type WireReplyFunc func(wire enc.Wire) error

// InterestResult describes the outcome of an expressed Interest.
type InterestResult int

const (
	InterestResultNone InterestResult = iota
	InterestResultData
	InterestResultNack
	InterestResultTimeout
	InterestResultError
)

// ExpressCallbackArgs is passed to the callback given to Engine.Express.
type ExpressCallbackArgs struct {
	Result     InterestResult
	Data       Data
	RawData    enc.Wire
	SigCovered enc.Wire
	NackReason uint64
	Error      error
}

// ExpressCallbackFunc is invoked exactly once with the outcome of an
// expressed Interest: matching Data, a Nack, a timeout, or an error.
type ExpressCallbackFunc func(args ExpressCallbackArgs)

// Face is a transport that carries raw NDN packet bytes to and from the
// local or remote forwarder.
type Face interface {
	// Open starts the underlying transport, beginning to invoke the
	// registered OnPacket callback as packets arrive.
	Open() error
	// Close shuts down the underlying transport.
	Close() error
	// Send transmits a single wire-encoded packet.
	Send(pkt enc.Wire) error
	// IsRunning reports whether the face is currently open.
	IsRunning() bool
	// IsLocal reports whether the face connects to a forwarder on the same host.
	IsLocal() bool
	// OnPacket registers the callback invoked for every received packet.
	OnPacket(onPkt func(frame []byte))
	// OnError registers the callback invoked when the transport fails.
	OnError(onError func(err error))
	// OnUp registers a callback invoked when the face transitions to up.
	OnUp(onUp func()) (cancel func())
	// OnDown registers a callback invoked when the face transitions to down.
	OnDown(onDown func()) (cancel func())
	String() string
}

// Engine dispatches Interest/Data traffic over a Face: matching incoming
// Interests to registered handlers, matching incoming Data to pending
// outgoing Interests, and managing prefix registration with the forwarder.
type Engine interface {
	EngineTrait() Engine

	Spec() Spec
	Timer() Timer
	Face() Face

	Start() error
	Stop() error
	IsRunning() bool

	// AttachHandler registers handler to serve Interests matching prefix.
	AttachHandler(prefix enc.Name, handler InterestHandler) error
	// DetachHandler removes the handler previously registered for prefix.
	DetachHandler(prefix enc.Name) error

	// SetInterestFilter attaches handler for Interests matching prefix
	// without registering the prefix with the connected forwarder.
	SetInterestFilter(prefix enc.Name, handler InterestHandler) error
	// RemoveInterestFilter removes a handler set with SetInterestFilter.
	RemoveInterestFilter(prefix enc.Name) error

	// Express sends interest and arranges for callback to be invoked once
	// with the eventual Data, Nack, or timeout.
	Express(interest *EncodedInterest, callback ExpressCallbackFunc) error

	// RegisterRoute asks the connected forwarder to route prefix to this face.
	RegisterRoute(prefix enc.Name) error
	// UnregisterRoute undoes a previous RegisterRoute.
	UnregisterRoute(prefix enc.Name) error

	// SetCmdSec configures the signer and validator used for NFD management commands.
	SetCmdSec(signer Signer, validator SigChecker)

	// Post schedules task to run on the engine's dispatch goroutine.
	Post(task func())
}
