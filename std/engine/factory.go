package engine

import (
	"fmt"
	"net/url"

	"github.com/ndnkit/ndnkit/std/engine/basic"
	"github.com/ndnkit/ndnkit/std/engine/face"
	"github.com/ndnkit/ndnkit/std/ndn"
)

// NewBasicEngine constructs a basic Engine using the given Face and a new Timer.
func NewBasicEngine(face ndn.Face) ndn.Engine {
	return basic.NewEngine(face, basic.NewTimer())
}

// NewUnixFace constructs a face over a Unix domain socket connected to a
// local NDN forwarder, e.g. "/run/nfd/nfd.sock".
func NewUnixFace(addr string) ndn.Face {
	return face.NewStreamFace("unix", addr, true)
}

// NewTcpFace constructs a face over a TCP connection to an NDN forwarder at addr.
func NewTcpFace(addr string) ndn.Face {
	return face.NewStreamFace("tcp", addr, false)
}

// NewUdpFace constructs a face over a connected UDP socket to an NDN forwarder at addr.
func NewUdpFace(addr string) ndn.Face {
	return face.NewPacketFace("udp", addr, false)
}

// NewWebSocketFace constructs a face over a WebSocket connection to url.
func NewWebSocketFace(url string, local bool) ndn.Face {
	return face.NewWebSocketFace(url, local)
}

// NewFace constructs a Face from a transport URI, dispatching on its scheme:
// unix, tcp(4/6), udp(4/6), or ws/wss.
func NewFace(transportUri string) (ndn.Face, error) {
	uri, err := url.Parse(transportUri)
	if err != nil {
		return nil, fmt.Errorf("invalid transport URI %s: %w", transportUri, err)
	}

	switch uri.Scheme {
	case "unix":
		return NewUnixFace(uri.Path), nil
	case "tcp", "tcp4", "tcp6":
		return face.NewStreamFace(uri.Scheme, uri.Host, false), nil
	case "udp", "udp4", "udp6":
		return face.NewPacketFace(uri.Scheme, uri.Host, false), nil
	case "ws", "wss":
		return face.NewWebSocketFace(transportUri, false), nil
	default:
		return nil, fmt.Errorf("unsupported transport URI scheme: %s", uri.Scheme)
	}
}
