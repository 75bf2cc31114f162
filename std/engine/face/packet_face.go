package face

import (
	"fmt"
	"net"

	enc "github.com/ndnkit/ndnkit/std/encoding"
)

// PacketFace is a face that uses a connected datagram socket (UDP), where
// each read/write already corresponds to a single NDN packet rather than a
// byte stream that must be split at TLV boundaries.
type PacketFace struct {
	baseFace
	network string
	addr    string
	conn    net.Conn
	mtu     int
}

// NewPacketFace constructs a datagram-oriented face (typically UDP) dialing
// addr over network. mtu bounds the size of a single received packet.
func NewPacketFace(network string, addr string, local bool) *PacketFace {
	return &PacketFace{
		baseFace: newBaseFace(local),
		network:  network,
		addr:     addr,
		mtu:      8800,
	}
}

// String returns a human-readable description of the face.
func (f *PacketFace) String() string {
	return fmt.Sprintf("packet-face (%s://%s)", f.network, f.addr)
}

// Open dials the configured address and starts the receive loop.
func (f *PacketFace) Open() error {
	if f.IsRunning() {
		return fmt.Errorf("face is already running")
	}

	if f.onError == nil || f.onPkt == nil {
		return fmt.Errorf("face callbacks are not set")
	}

	c, err := net.Dial(f.network, f.addr)
	if err != nil {
		return err
	}

	f.conn = c
	f.setStateUp()
	go f.receive()

	return nil
}

// Close tears down the underlying socket.
func (f *PacketFace) Close() error {
	if f.setStateClosed() {
		if f.conn != nil {
			return f.conn.Close()
		}
	}

	return nil
}

// Send writes pkt as a single datagram. A UDP datagram larger than the path
// MTU is dropped silently by the network, so callers should keep packets
// within f.mtu.
func (f *PacketFace) Send(pkt enc.Wire) error {
	if !f.IsRunning() {
		return fmt.Errorf("face is not running")
	}

	f.sendMut.Lock()
	defer f.sendMut.Unlock()

	_, err := f.conn.Write(pkt.Join())
	return err
}

// receive reads datagrams until the face stops running or the socket errors.
func (f *PacketFace) receive() {
	defer f.setStateDown()

	buf := make([]byte, f.mtu)
	for f.IsRunning() {
		n, err := f.conn.Read(buf)
		if err != nil {
			if f.IsRunning() {
				f.onError(err)
			}
			return
		}
		f.onPkt(buf[:n])
	}
}
