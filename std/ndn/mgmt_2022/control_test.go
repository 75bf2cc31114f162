package mgmt_2022_test

import (
	"testing"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/ndn/mgmt_2022"
	"github.com/ndnkit/ndnkit/std/ndn/spec_2022"
	sig "github.com/ndnkit/ndnkit/std/security/signer"
	"github.com/ndnkit/ndnkit/std/types/optional"
	tu "github.com/ndnkit/ndnkit/std/utils/testutils"
	"github.com/stretchr/testify/require"
)

func TestControlParametersRoundTrip(t *testing.T) {
	tu.SetT(t)

	args := &mgmt_2022.ControlArgs{
		Name:   tu.NoErr(enc.NameFromStr("/ndn/prefix")),
		FaceId: optional.Some(uint64(256)),
		Cost:   optional.Some(uint64(10)),
		Flags:  optional.Some(uint64(1)),
	}
	wire := args.Encode()

	msg, err := mgmt_2022.ParseControlParameters(enc.NewWireView(wire), true)
	require.NoError(t, err)
	require.NotNil(t, msg.Val)
	require.Equal(t, args.Name, msg.Val.Name)
	require.Equal(t, uint64(256), msg.Val.FaceId.Unwrap())
	require.Equal(t, uint64(10), msg.Val.Cost.Unwrap())
	require.Equal(t, uint64(1), msg.Val.Flags.Unwrap())
}

func TestControlResponseRoundTrip(t *testing.T) {
	tu.SetT(t)

	params := &mgmt_2022.ControlArgs{
		FaceId: optional.Some(uint64(300)),
	}
	wire := mgmt_2022.EncodeControlResponse(200, "OK", params)

	resp, err := mgmt_2022.ParseControlResponse(enc.NewWireView(wire), true)
	require.NoError(t, err)
	require.Equal(t, uint64(200), resp.Val.StatusCode)
	require.Equal(t, "OK", resp.Val.StatusText)
	require.NotNil(t, resp.Val.Params)
	require.Equal(t, uint64(300), resp.Val.Params.FaceId.Unwrap())
}

func TestMakeCmdUsesLocalhostOrLocalhop(t *testing.T) {
	tu.SetT(t)

	signer := sig.NewSha256Signer()

	local := mgmt_2022.NewConfig(true, signer, spec_2022.Spec{})
	cmd := tu.NoErr(local.MakeCmd("rib", "register", &mgmt_2022.ControlArgs{
		Name: tu.NoErr(enc.NameFromStr("/ndn/prefix")),
	}, &ndn.InterestConfig{}))
	require.Contains(t, cmd.FinalName.String(), "/localhost/nfd/rib/register")

	remote := mgmt_2022.NewConfig(false, signer, spec_2022.Spec{})
	cmd2 := tu.NoErr(remote.MakeCmd("rib", "register", &mgmt_2022.ControlArgs{
		Name: tu.NoErr(enc.NameFromStr("/ndn/prefix")),
	}, &ndn.InterestConfig{}))
	require.Contains(t, cmd2.FinalName.String(), "/localhop/nfd/rib/register")
}
