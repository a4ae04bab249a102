// Command pokerd runs the poker room server: a websocket gateway in front
// of the RoomManager/GameController pair, grounded on the teacher's own
// cmd/pokersrv (flag-driven bootstrap, logging backend, blocking Serve
// call) with gRPC/SQLite swapped for the stack this module actually wires
// (see DESIGN.md).
package main

import (
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/Hana19951208/pocket-holdem-mvp/internal/game"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/gateway"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/logging"
	"github.com/Hana19951208/pocket-holdem-mvp/internal/room"
)

func main() {
	var (
		addr               string
		debugLevel         string
		smallBlind         int64
		bigBlind           int64
		initialChips       int64
		maxPlayers         int
		turnTimeoutSeconds int
		interHandDelayMs   int
		broadcastQueue     int
		broadcastWorkers   int
		timeoutSweepMs     int
	)
	flag.StringVar(&addr, "addr", ":8080", "address to listen on")
	flag.StringVar(&debugLevel, "debuglevel", "info", "logging level: trace, debug, info, warn, error, critical")
	flag.Int64Var(&smallBlind, "small-blind", 5, "default small blind for newly created rooms")
	flag.Int64Var(&bigBlind, "big-blind", 10, "default big blind for newly created rooms")
	flag.Int64Var(&initialChips, "initial-chips", 1000, "default starting stack for newly created rooms")
	flag.IntVar(&maxPlayers, "max-players", 6, "default max seats for newly created rooms")
	flag.IntVar(&turnTimeoutSeconds, "turn-timeout", 30, "seconds a player has to act before auto-fold/auto-check")
	flag.IntVar(&interHandDelayMs, "inter-hand-delay", 3000, "milliseconds to wait between hands before auto-starting the next")
	flag.IntVar(&broadcastQueue, "broadcast-queue", 1000, "depth of the gateway's broadcast job queue")
	flag.IntVar(&broadcastWorkers, "broadcast-workers", 3, "number of gateway broadcast workers")
	flag.IntVar(&timeoutSweepMs, "timeout-sweep-interval", 500, "milliseconds between sweeps for expired turn timers")
	flag.Parse()

	logBackend := logging.NewStdout(debugLevel)

	// Note: flag-provided blind/chip/seat defaults only take effect on
	// rooms created without an explicit override in CREATE_ROOM's payload;
	// DefaultConfig itself stays fixed so tests don't depend on flags.
	defaultCfg := room.Config{
		InitialChips:       initialChips,
		SmallBlind:         smallBlind,
		BigBlind:           bigBlind,
		MaxPlayers:         maxPlayers,
		TurnTimeoutSeconds: turnTimeoutSeconds,
		InterHandDelay:     time.Duration(interHandDelayMs) * time.Millisecond,
	}

	rooms := room.NewManagerWithDefaultConfig(defaultCfg)
	ctrl := game.NewController(rooms, logBackend.Logger("GAME"))
	hub := gateway.NewHub(rooms, ctrl, logBackend.Logger("GTWY"), broadcastQueue, broadcastWorkers)
	defer hub.Close()

	stopSweep := make(chan struct{})
	go sweepTurnTimeouts(hub, time.Duration(timeoutSweepMs)*time.Millisecond, stopSweep)
	defer close(stopSweep)

	mux := http.NewServeMux()
	mux.Handle("/ws", hub)

	srvLog := logBackend.Logger("HTTP")
	srvLog.Infof("listening on %s", addr)
	if err := http.ListenAndServe(addr, mux); err != nil {
		fmt.Fprintf(os.Stderr, "pokerd: %v\n", err)
		os.Exit(1)
	}
}

// sweepTurnTimeouts periodically checks every room for an elapsed action
// clock and auto-acts on the stalled player's behalf. A single goroutine
// covers every room in the process; Hub.SweepTimeouts itself takes each
// room's lock only for the instant it needs to inspect or act on it.
func sweepTurnTimeouts(hub *gateway.Hub, interval time.Duration, stop <-chan struct{}) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case now := <-ticker.C:
			hub.SweepTimeouts(now)
		case <-stop:
			return
		}
	}
}
