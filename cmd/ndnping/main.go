// Command ndnping sends a sequence of Interests under a name prefix and
// reports round-trip time for each, in the style of ICMP ping.
package main

import (
	"fmt"
	"math/rand"
	"os"
	"os/signal"
	"strconv"
	"sync"
	"syscall"
	"time"

	enc "github.com/ndnkit/ndnkit/std/encoding"
	"github.com/ndnkit/ndnkit/std/engine"
	"github.com/ndnkit/ndnkit/std/log"
	"github.com/ndnkit/ndnkit/std/ndn"
	"github.com/ndnkit/ndnkit/std/types/optional"
	"github.com/ndnkit/ndnkit/std/types/priority_queue"
	"github.com/spf13/cobra"
)

var (
	flagTransport string
	flagCount     int
	flagInterval  time.Duration
	flagTimeout   time.Duration
)

// pendingPing tracks one outstanding ping Interest awaiting either a Data
// reply or its own deadline.
type pendingPing struct {
	seq    uint64
	sentAt time.Time
	done   bool
}

func main() {
	root := &cobra.Command{
		Use:   "ndnping <prefix>",
		Short: "Ping an NDN name prefix",
		Args:  cobra.ExactArgs(1),
		RunE:  runPing,
	}
	root.Flags().StringVar(&flagTransport, "transport", "unix:///run/nfd/nfd.sock", "face transport URI")
	root.Flags().IntVar(&flagCount, "count", 10, "number of pings to send (0 = unlimited)")
	root.Flags().DurationVar(&flagInterval, "interval", time.Second, "interval between pings")
	root.Flags().DurationVar(&flagTimeout, "timeout", 4*time.Second, "per-ping timeout")

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

func runPing(cmd *cobra.Command, args []string) error {
	prefix, err := enc.NameFromStr(args[0])
	if err != nil {
		return fmt.Errorf("invalid name prefix %q: %w", args[0], err)
	}

	face, err := engine.NewFace(flagTransport)
	if err != nil {
		return fmt.Errorf("unable to construct face: %w", err)
	}

	app := engine.NewBasicEngine(face)
	if err := app.Start(); err != nil {
		return fmt.Errorf("unable to start engine: %w", err)
	}
	defer app.Stop()

	var (
		mu        sync.Mutex
		pending   = map[uint64]*pendingPing{}
		deadlines = priority_queue.New[uint64, time.Time]()
		sent      int
		received  int
	)

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	ticker := time.NewTicker(flagInterval)
	defer ticker.Stop()

	deadlineCheck := time.NewTicker(200 * time.Millisecond)
	defer deadlineCheck.Stop()

	checkDeadlines := func() {
		mu.Lock()
		defer mu.Unlock()
		now := time.Now()
		for deadlines.Len() > 0 && !deadlines.PeekPriority().After(now) {
			seq := deadlines.Pop()
			p, ok := pending[seq]
			if !ok || p.done {
				continue
			}
			p.done = true
			fmt.Printf("Timeout from %s: seq=%d\n", prefix, seq)
			delete(pending, seq)
		}
	}

	sendPing := func(seq uint64) {
		name := prefix.Append(enc.NewGenericComponent(strconv.FormatUint(seq, 10)))
		nonce := optional.Some(rand.Uint32())

		cfg := &ndn.InterestConfig{
			MustBeFresh: true,
			Nonce:       nonce,
			Lifetime:    optional.Some(flagTimeout),
		}
		interest, err := app.Spec().MakeInterest(name, cfg, nil, nil)
		if err != nil {
			log.Error(nil, "Unable to encode ping Interest", "err", err)
			return
		}

		sentAt := time.Now()
		mu.Lock()
		pending[seq] = &pendingPing{seq: seq, sentAt: sentAt}
		deadlines.Push(seq, sentAt.Add(flagTimeout))
		sent++
		mu.Unlock()

		err = app.Express(interest, func(cbArgs ndn.ExpressCallbackArgs) {
			mu.Lock()
			p, ok := pending[seq]
			if !ok || p.done {
				mu.Unlock()
				return
			}
			p.done = true
			delete(pending, seq)
			mu.Unlock()

			rtt := time.Since(sentAt)
			switch cbArgs.Result {
			case ndn.InterestResultData:
				received++
				fmt.Printf("Reply from %s: seq=%d time=%s\n", prefix, seq, rtt)
			case ndn.InterestResultNack:
				fmt.Printf("Nack from %s: seq=%d reason=%d\n", prefix, seq, cbArgs.NackReason)
			case ndn.InterestResultTimeout:
				fmt.Printf("Timeout from %s: seq=%d\n", prefix, seq)
			default:
				fmt.Printf("Error pinging %s: seq=%d err=%v\n", prefix, seq, cbArgs.Error)
			}
		})
		if err != nil {
			log.Error(nil, "Unable to express ping Interest", "err", err)
		}
	}

	var seq uint64
	fmt.Printf("PING %s\n", prefix)
	for {
		select {
		case <-ticker.C:
			if flagCount > 0 && int(seq) >= flagCount {
				ticker.Stop()
				continue
			}
			sendPing(seq)
			seq++
		case <-deadlineCheck.C:
			checkDeadlines()
		case <-sigChan:
			fmt.Printf("\n--- %s ping statistics ---\n", prefix)
			fmt.Printf("%d sent, %d received\n", sent, received)
			return nil
		}

		if flagCount > 0 && int(seq) >= flagCount {
			mu.Lock()
			remaining := len(pending)
			mu.Unlock()
			if remaining == 0 {
				fmt.Printf("\n--- %s ping statistics ---\n", prefix)
				fmt.Printf("%d sent, %d received\n", sent, received)
				return nil
			}
		}
	}
}
