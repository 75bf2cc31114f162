package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/engine"
	"github.com/ndnkit/ndnkit/std/log"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/security/signer"
	"github.com/ndnkit/ndnkit/std/types/optional"
)

var app ndn.Engine
var keySigner ndn.Signer

// onInterest replies to every Interest for the served prefix with a signed
// "Hello, world!" Data packet.
func onInterest(args ndn.InterestHandlerArgs) {
	interest := args.Interest

	fmt.Printf(">> I: %s\n", interest.Name().String())
	content := []byte("Hello, world!")

	data, err := app.Spec().MakeData(
		interest.Name(),
		&ndn.DataConfig{
			ContentType: optional.Some(ndn.ContentTypeBlob),
			Freshness:   optional.Some(10 * time.Second),
		},
		enc.Wire{content},
		keySigner)
	if err != nil {
		log.Error(nil, "Unable to encode data", "err", err)
		return
	}
	err = args.Reply(data.Wire)
	if err != nil {
		log.Error(nil, "Unable to reply with data", "err", err)
		return
	}
	fmt.Printf("<< D: %s\n", interest.Name().String())
	fmt.Printf("Content: (size: %d)\n", len(content))
	fmt.Printf("\n")
}

func main() {
	face, err := engine.NewFace("unix:///run/nfd/nfd.sock")
	if err != nil {
		log.Fatal(nil, "Unable to construct face", "err", err)
		return
	}

	app = engine.NewBasicEngine(face)
	if err := app.Start(); err != nil {
		log.Fatal(nil, "Unable to start engine", "err", err)
		return
	}
	defer app.Stop()

	keyName, _ := enc.NameFromStr("/example/testApp/KEY/1")
	keySigner, err = signer.KeygenEd25519(keyName)
	if err != nil {
		log.Fatal(nil, "Unable to generate signing key", "err", err)
		return
	}

	prefix, _ := enc.NameFromStr("/example/testApp")
	err = app.AttachHandler(prefix, onInterest)
	if err != nil {
		log.Error(nil, "Unable to register handler", "err", err)
		return
	}
	err = app.RegisterRoute(prefix)
	if err != nil {
		log.Error(nil, "Unable to register route", "err", err)
		return
	}

	fmt.Print("Start serving ...")
	sigChannel := make(chan os.Signal, 1)
	signal.Notify(sigChannel, os.Interrupt, syscall.SIGTERM)
	receivedSig := <-sigChannel
	log.Info(nil, "Received signal - exiting", "signal", receivedSig)
}
