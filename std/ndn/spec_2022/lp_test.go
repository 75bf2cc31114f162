package spec_2022_test

import (
	"testing"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn/spec_2022"
	tu "github.com/ndnkit/ndnkit/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestLpPacketRoundTripFragment(t *testing.T) {
	tu.SetT(t)

	interest := tu.NoErr((spec_2022.Spec{}).MakeInterest(
		tu.NoErr(enc.NameFromStr("/local/ndn/prefix")), nil, nil, nil))

	lp := &spec_2022.LpPacket{
		PitToken: []byte{0x01, 0x02, 0x03, 0x04},
		Fragment: interest.Wire,
	}
	encoder := spec_2022.PacketEncoder{}
	encoder.Init(&spec_2022.Packet{LpPacket: lp})
	wire := encoder.Encode(&spec_2022.Packet{LpPacket: lp})
	require.NotNil(t, wire)

	pkt, _, err := spec_2022.ReadPacket(enc.NewWireView(wire))
	require.NoError(t, err)
	require.NotNil(t, pkt.LpPacket)
	require.Equal(t, []byte{0x01, 0x02, 0x03, 0x04}, pkt.LpPacket.PitToken)
	require.Equal(t, interest.Wire.Join(), pkt.LpPacket.Fragment.Join())
}

func TestLpPacketRoundTripNack(t *testing.T) {
	tu.SetT(t)

	interest := tu.NoErr((spec_2022.Spec{}).MakeInterest(
		tu.NoErr(enc.NameFromStr("/local/ndn/prefix")), nil, nil, nil))

	lp := &spec_2022.LpPacket{
		Nack:     &spec_2022.NackInfo{Reason: spec_2022.NackReasonNoRoute},
		Fragment: interest.Wire,
	}
	encoder := spec_2022.PacketEncoder{}
	encoder.Init(&spec_2022.Packet{LpPacket: lp})
	wire := encoder.Encode(&spec_2022.Packet{LpPacket: lp})

	pkt, _, err := spec_2022.ReadPacket(enc.NewWireView(wire))
	require.NoError(t, err)
	require.NotNil(t, pkt.LpPacket.Nack)
	require.Equal(t, spec_2022.NackReasonNoRoute, pkt.LpPacket.Nack.Reason)
}

func TestReadPacketDispatchesBareInterestAndData(t *testing.T) {
	tu.SetT(t)

	name := tu.NoErr(enc.NameFromStr("/local/ndn/prefix"))
	interest := tu.NoErr((spec_2022.Spec{}).MakeInterest(name, nil, nil, nil))

	pkt, _, err := spec_2022.ReadPacket(enc.NewWireView(interest.Wire))
	require.NoError(t, err)
	require.NotNil(t, pkt.Interest)
	require.Nil(t, pkt.Data)
	require.Nil(t, pkt.LpPacket)
}

func TestEncoderReturnsNilWithoutLpPacket(t *testing.T) {
	tu.SetT(t)

	encoder := spec_2022.PacketEncoder{}
	pkt := &spec_2022.Packet{}
	encoder.Init(pkt)
	require.Nil(t, encoder.Encode(pkt))
}
