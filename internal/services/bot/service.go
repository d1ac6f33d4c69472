package bot

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/validation"
)

// moveTimeout bounds a single bot move from search to submission
const moveTimeout = 30 * time.Second

// Service schedules and plays automated moves. It listens to room events:
// whenever the turn lands on a bot seat it queues a move after a
// difficulty-dependent think delay. Queued moves carry the room epoch they
// were scheduled against and are dropped if the room has transitioned since,
// so a stale timer can never act on a newer game state.
type Service struct {
	registry   *room.Registry
	strategies map[model.BotDifficulty]Strategy
	rnd        random.Random
	logger     *slog.Logger

	mu      sync.Mutex
	pending map[model.RoomID]pendingMove
}

// pendingMove is one queued think timer and the room epoch it was scheduled
// against. The epoch doubles as the timer's identity: a stale callback may
// only remove its own entry, never a fresh timer queued after a pause/resume
// replaced it.
type pendingMove struct {
	timer *time.Timer
	epoch uint64
}

// New creates the bot service. Wire it into the registry with SetScheduler.
func New(registry *room.Registry, validator validation.ServiceInterface, rnd random.Random, logger *slog.Logger) *Service {
	return &Service{
		registry: registry,
		strategies: map[model.BotDifficulty]Strategy{
			model.BotDifficultyBeginner: NewRandomStrategy(validator, rnd),
			model.BotDifficultyEasy:     NewGreedyStrategy(validator, rnd, model.BotDifficultyEasy),
			model.BotDifficultyMedium:   NewGreedyStrategy(validator, rnd, model.BotDifficultyMedium),
		},
		rnd:     rnd,
		logger:  logger.With(slog.String("component", "bot")),
		pending: make(map[model.RoomID]pendingMove),
	}
}

// OnEvents implements room.Scheduler
func (s *Service) OnEvents(r *room.Room, events []model.Event) {
	for _, ev := range events {
		switch ev.Type {
		case model.EventGameStarted, model.EventTurnChanged, model.EventGameResumed:
			s.scheduleIfBotTurn(r)
		case model.EventGamePaused, model.EventGameCompleted, model.EventGameAbandoned:
			s.cancel(r.ID())
		}
	}
}

func (s *Service) scheduleIfBotTurn(r *room.Room) {
	turn, ok := r.CurrentBotTurn()
	if !ok {
		return
	}

	info, found := Lookup(turn.Player.BotID)
	if !found {
		s.logger.Error("seated bot missing from catalog",
			slog.String("room_id", string(r.ID())),
			slog.String("bot_id", turn.Player.BotID),
		)
		return
	}

	delay := thinkDelay(info.Difficulty)
	wait := s.rnd.Duration(delay.min, delay.max)
	epoch := turn.Epoch

	s.mu.Lock()
	if prev, ok := s.pending[r.ID()]; ok {
		prev.timer.Stop()
	}
	s.pending[r.ID()] = pendingMove{
		timer: time.AfterFunc(wait, func() {
			s.playTurn(r, info, epoch)
		}),
		epoch: epoch,
	}
	s.mu.Unlock()

	s.logger.Debug("bot move queued",
		slog.String("room_id", string(r.ID())),
		slog.String("bot_id", info.ID),
		slog.Duration("delay", wait),
	)
}

func (s *Service) cancel(id model.RoomID) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[id]; ok {
		p.timer.Stop()
		delete(s.pending, id)
	}
}

// release removes the pending entry belonging to the callback scheduled at
// epoch. An entry with a newer epoch is a fresh timer that must keep running.
func (s *Service) release(id model.RoomID, epoch uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if p, ok := s.pending[id]; ok && p.epoch == epoch {
		delete(s.pending, id)
	}
}

// playTurn fires after the think delay: re-read the turn, verify the epoch
// still matches, pick a move and submit it
func (s *Service) playTurn(r *room.Room, info model.BotInfo, epoch uint64) {
	s.release(r.ID(), epoch)

	turn, ok := r.CurrentBotTurn()
	if !ok || turn.Epoch != epoch {
		return
	}

	ctx, cancelCtx := context.WithTimeout(context.Background(), moveTimeout)
	defer cancelCtx()

	mv := s.chooseMove(ctx, turn, info)
	events, err := r.SubmitMove(ctx, turn.Player.ID, mv)
	if err != nil {
		if errors.Is(err, model.ErrGameNotActive) || errors.Is(err, model.ErrNotYourTurn) {
			// The room moved on while the bot was thinking
			s.registry.Dispatch(r, events)
			return
		}
		s.logger.Warn("bot move rejected, passing instead",
			slog.String("room_id", string(r.ID())),
			slog.String("bot_id", info.ID),
			slog.String("error", err.Error()),
		)
		pass := &model.Move{Type: model.MoveTypePass, PlayerID: turn.Player.ID}
		events, err = r.SubmitMove(ctx, turn.Player.ID, pass)
		if err != nil {
			s.registry.Dispatch(r, events)
			return
		}
	}
	s.registry.Dispatch(r, events)
}

// chooseMove picks a play via the difficulty's strategy, falling back to an
// exchange while the bag allows it, and to a pass otherwise
func (s *Service) chooseMove(ctx context.Context, turn *room.BotTurn, info model.BotInfo) *model.Move {
	strategy, ok := s.strategies[info.Difficulty]
	if !ok {
		strategy = s.strategies[model.BotDifficultyBeginner]
	}

	if mv, found := strategy.ChoosePlay(ctx, turn); found {
		return mv
	}

	if turn.BagCount >= validation.MinExchangeBagCount && len(turn.Rack) > 0 {
		n := 3
		if n > len(turn.Rack) {
			n = len(turn.Rack)
		}
		return &model.Move{
			Type:      model.MoveTypeExchange,
			PlayerID:  turn.Player.ID,
			Exchanged: pickTiles(turn.Rack, n, s.rnd),
		}
	}

	return &model.Move{Type: model.MoveTypePass, PlayerID: turn.Player.ID}
}
