package room

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/HannanLK/code-red-server/internal/dependencies/clock"
	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/gameclock"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/services/validation"
	"github.com/HannanLK/code-red-server/internal/storage"
)

// roomIDAlphabet excludes easily confused characters
const roomIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

const roomIDLength = 6

// retainTerminal is how long a finished room stays addressable before the
// sweep removes it; the summary is already archived by then
const retainTerminal = time.Minute

// EventSink receives room events for fan-out to connected clients
type EventSink interface {
	Publish(roomID model.RoomID, events []model.Event)
}

// Scheduler reacts to room events, typically by queueing bot moves
type Scheduler interface {
	OnEvents(r *Room, events []model.Event)
}

// Registry owns every live room. Room lookup takes the registry lock; room
// mutation takes only the room's own lock, so traffic in one room never
// blocks another.
type Registry struct {
	mu    sync.RWMutex
	rooms map[model.RoomID]*Room

	cfg       Config
	validator validation.ServiceInterface
	scoring   *scoring.Service
	store     storage.Storage
	clk       clock.Clock
	rnd       random.Random
	logger    *slog.Logger

	sink      EventSink
	scheduler Scheduler
}

// NewRegistry creates an empty registry
func NewRegistry(
	cfg Config,
	validator validation.ServiceInterface,
	scoringService *scoring.Service,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Registry {
	return &Registry{
		rooms:     make(map[model.RoomID]*Room),
		cfg:       cfg,
		validator: validator,
		scoring:   scoringService,
		store:     store,
		clk:       clk,
		rnd:       rnd,
		logger:    logger.With(slog.String("component", "registry")),
	}
}

// SetSink wires the broadcast fan-out. Must be called before traffic.
func (g *Registry) SetSink(sink EventSink) {
	g.sink = sink
}

// SetScheduler wires the bot move scheduler. Must be called before traffic.
func (g *Registry) SetScheduler(s Scheduler) {
	g.scheduler = s
}

// Get returns the room with the given id
func (g *Registry) Get(id model.RoomID) (*Room, error) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	r, ok := g.rooms[id]
	if !ok {
		return nil, model.ErrRoomNotFound
	}
	return r, nil
}

// Create makes a new empty room. The board layout and tile distribution come
// from storage, falling back to the built-in defaults if unseeded.
func (g *Registry) Create(ctx context.Context) (*Room, error) {
	boardConfig, err := g.store.GetBoardConfig(ctx, g.cfg.BoardConfigID)
	if err != nil {
		if !errors.Is(err, model.ErrBoardConfigNotFound) {
			return nil, err
		}
		boardConfig = model.DefaultBoardConfig()
	}
	dist, err := g.store.GetTileDistribution(ctx, g.cfg.LangID)
	if err != nil {
		if !errors.Is(err, model.ErrDistributionNotFound) {
			return nil, err
		}
		dist = model.DefaultTileDistribution()
	}

	g.mu.Lock()
	defer g.mu.Unlock()

	var id model.RoomID
	for {
		id = model.RoomID(g.rnd.String(roomIDLength, roomIDAlphabet))
		if _, taken := g.rooms[id]; !taken {
			break
		}
	}

	r := newRoom(id, boardConfig, dist, g.cfg, g.validator, g.scoring, g.store, g.clk, g.rnd, g.logger)
	g.rooms[id] = r

	g.logger.Info("room created", slog.String("room_id", string(id)))
	return r, nil
}

// JoinOrCreate seats the player in a waiting room with an open seat, creating
// a fresh room if none exists. The returned events have already been
// dispatched.
func (g *Registry) JoinOrCreate(ctx context.Context, playerID model.PlayerID, displayName string) (*Room, error) {
	g.mu.RLock()
	var open *Room
	for _, r := range g.rooms {
		if r.Status() == model.RoomStatusWaiting && !r.HasPlayer(playerID) {
			open = r
			break
		}
	}
	g.mu.RUnlock()

	if open != nil {
		events, err := open.Join(ctx, playerID, displayName)
		if err == nil {
			g.Dispatch(open, events)
			return open, nil
		}
		if !errors.Is(err, model.ErrRoomFull) {
			return nil, err
		}
		// Lost the race for the last seat; fall through to a fresh room
	}

	r, err := g.Create(ctx)
	if err != nil {
		return nil, err
	}
	events, err := r.Join(ctx, playerID, displayName)
	if err != nil {
		return nil, err
	}
	g.Dispatch(r, events)
	return r, nil
}

// Remove drops a room from the registry
func (g *Registry) Remove(id model.RoomID) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.rooms, id)
}

// Dispatch forwards room events to the fan-out sink and the bot scheduler
func (g *Registry) Dispatch(r *Room, events []model.Event) {
	if len(events) == 0 {
		return
	}
	if g.sink != nil {
		g.sink.Publish(r.ID(), events)
	}
	if g.scheduler != nil {
		g.scheduler.OnEvents(r, events)
	}
}

// Len returns the number of live rooms
func (g *Registry) Len() int {
	g.mu.RLock()
	defer g.mu.RUnlock()
	return len(g.rooms)
}

// Run drives every room's clock on the sync cadence until ctx is cancelled.
// Each pass ticks all rooms, dispatches whatever they emitted, and sweeps
// rooms that have been terminal past the retention window.
func (g *Registry) Run(ctx context.Context) {
	ticker := time.NewTicker(gameclock.SyncInterval)
	defer ticker.Stop()

	g.logger.Info("registry tick driver started")
	for {
		select {
		case <-ctx.Done():
			g.logger.Info("registry tick driver stopped")
			return
		case <-ticker.C:
			g.tickAll(ctx)
		}
	}
}

func (g *Registry) tickAll(ctx context.Context) {
	g.mu.RLock()
	live := make([]*Room, 0, len(g.rooms))
	for _, r := range g.rooms {
		live = append(live, r)
	}
	g.mu.RUnlock()

	now := g.clk.Now()
	for _, r := range live {
		g.Dispatch(r, r.Tick(ctx))
		if endedAt, terminal := r.EndedAt(); terminal && now.Sub(endedAt) >= retainTerminal {
			g.Remove(r.ID())
			g.logger.Info("room swept", slog.String("room_id", string(r.ID())))
		}
	}
}
