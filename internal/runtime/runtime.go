// Package runtime is the orchestrator (spec.md component E): the single
// goroutine that owns every mutation to a room's game state, modeled
// directly on backend/hub.go's Hub — one run() loop selecting over a
// channel of requests, with the AI search spawned on its own goroutine and
// its result funneled back through the same channel, exactly like
// handleBotMoveRequest/handleBotMoveResult. The difference from the
// teacher is that this server's callers are synchronous HTTP handlers, so
// every request carries a response channel the loop replies on before
// moving to the next request — a request/response-over-channel pattern
// the fire-and-forget websocket teacher never needed.
package runtime

import (
	"context"
	"time"

	"github.com/korjavin/gomoku-arena/internal/ai"
	"github.com/korjavin/gomoku-arena/internal/apierr"
	"github.com/korjavin/gomoku-arena/internal/applog"
	"github.com/korjavin/gomoku-arena/internal/board"
	"github.com/korjavin/gomoku-arena/internal/match"
	"github.com/korjavin/gomoku-arena/internal/registry"
)

// ReapInterval is how often the reaper sweeps idle rooms, per spec.md §4.D
// (mirrors hub.go's cleanupTicker, there fixed at 5 minutes).
const ReapInterval = 5 * time.Minute

type opKind int

const (
	opQuickStart opKind = iota
	opMakeMove
	opGetState
	opReset
	opEndGame
	opAIResult
	opReap
)

// request is one unit of work submitted to the event loop.
type request struct {
	kind       opKind
	roomID     string
	playerID   string
	row, col   int
	preference board.Symbol
	aiResult   ai.Result
	reply      chan response
}

// response is what the event loop sends back for synchronous operations.
// Reap requests carry no reply channel and get no response; the reply to an
// AI-result request only tells the search goroutine its result was handled.
type response struct {
	room *match.Room
	err  *apierr.Error
}

// Runtime is the process-wide orchestrator: one instance owns the
// registry, the AI engine, and the single goroutine that mutates rooms.
type Runtime struct {
	reg         *registry.Registry
	engine      *ai.Engine
	broadcaster Broadcaster
	requests    chan request
	log         *applog.Logger
}

// New constructs a Runtime. Call Run in its own goroutine to start the
// event loop before issuing any operation.
func New(reg *registry.Registry, engine *ai.Engine, broadcaster Broadcaster, log *applog.Logger) *Runtime {
	return &Runtime{
		reg:         reg,
		engine:      engine,
		broadcaster: broadcaster,
		requests:    make(chan request, 64),
		log:         log,
	}
}

// SetBroadcaster replaces rt's event broadcaster. It exists for
// cmd/server's startup sequence, where the socket hub that implements
// Broadcaster needs a reference to the Runtime it broadcasts for, so the
// Runtime must be constructed first with a placeholder and rebound once
// the hub exists.
func SetBroadcaster(rt *Runtime, broadcaster Broadcaster) {
	rt.broadcaster = broadcaster
}

// Run is the event loop. It blocks until ctx is canceled, matching
// hub.go's run() shape but with a context-based exit instead of running
// forever, since this server supports graceful shutdown.
func (rt *Runtime) Run(ctx context.Context) {
	reapTicker := time.NewTicker(ReapInterval)
	defer reapTicker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-reapTicker.C:
			rt.reap()
		case req := <-rt.requests:
			rt.handle(req)
		}
	}
}

func (rt *Runtime) handle(req request) {
	switch req.kind {
	case opQuickStart:
		rt.handleQuickStart(req)
	case opMakeMove:
		rt.handleMakeMove(req)
	case opGetState:
		rt.handleGetState(req)
	case opReset:
		rt.handleReset(req)
	case opEndGame:
		rt.handleEndGame(req)
	case opAIResult:
		rt.handleAIResult(req)
	case opReap:
		rt.reap()
	}
}

func (rt *Runtime) reap() {
	now := time.Now()
	for _, room := range rt.reg.Snapshot() {
		if match.ShouldCleanup(room, now) {
			rt.log.Infof("reaping room %s (status=%s)", room.ID, room.Game.Status)
			rt.reg.Remove(room.ID)
		}
	}
	if rt.engine.Cache.Len() > ai.DefaultCacheCeiling {
		rt.engine.Cache.Clear()
	}
}
