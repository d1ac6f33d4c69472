package room

import (
	"context"
	"log/slog"
	"sync"
	"time"
	"unicode"

	"github.com/HannanLK/code-red-server/internal/dependencies/clock"
	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/gameclock"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/services/validation"
	"github.com/HannanLK/code-red-server/internal/storage"
)

// Config holds per-room game settings
type Config struct {
	TimePerPlayer   time.Duration
	DictionaryID    string
	BoardConfigID   string
	LangID          string
	DisconnectGrace time.Duration // Missed heartbeats before the room pauses
	AbandonAfter    time.Duration // Disconnection length that forfeits the game
}

// DefaultConfig returns the standard two-player game settings
func DefaultConfig() Config {
	return Config{
		TimePerPlayer:   gameclock.DefaultTimePerPlayer,
		DictionaryID:    "en",
		BoardConfigID:   "standard",
		LangID:          "en",
		DisconnectGrace: 30 * time.Second,
		AbandonAfter:    2 * time.Minute,
	}
}

// Seat is one of the two player slots
type Seat struct {
	Player   model.Player
	Rack     []model.Tile
	Score    int
	LastSeen time.Time
}

// lastPlay retains what a play move changed so a successful challenge can
// revert it
type lastPlay struct {
	move  model.Move
	drawn []model.Tile
	seat  int
}

// Room is one game instance. It behaves as a single-writer actor: every
// mutating operation (join, move submission, clock tick, heartbeat) takes the
// room mutex, so no two mutations interleave. Rooms are independent; there is
// no cross-room state.
type Room struct {
	mu sync.Mutex

	id        model.RoomID
	status    model.RoomStatus
	board     *model.Board
	bag       *model.TileBag
	dist      model.TileDistribution
	seats     [2]*Seat
	current   int
	passes    int
	moveCount int
	history   []model.Move
	last      *lastPlay
	gclock    *gameclock.GameClock
	winner    model.PlayerID
	endReason model.EndReason
	createdAt time.Time
	endedAt   time.Time
	paused    *int // Seat index the room is paused for, nil otherwise

	// epoch increments on every turn or status transition; pending deferred
	// work (bot think delays) checks it before applying
	epoch uint64

	cfg       Config
	validator validation.ServiceInterface
	scoring   *scoring.Service
	store     storage.Storage
	clk       clock.Clock
	rnd       random.Random
	logger    *slog.Logger
}

func newRoom(
	id model.RoomID,
	boardConfig model.BoardConfig,
	dist model.TileDistribution,
	cfg Config,
	validator validation.ServiceInterface,
	scoringService *scoring.Service,
	store storage.Storage,
	clk clock.Clock,
	rnd random.Random,
	logger *slog.Logger,
) *Room {
	return &Room{
		id:        id,
		status:    model.RoomStatusWaiting,
		board:     model.NewBoard(boardConfig),
		bag:       model.NewTileBag(dist),
		dist:      dist,
		createdAt: clk.Now(),
		cfg:       cfg,
		validator: validator,
		scoring:   scoringService,
		store:     store,
		clk:       clk,
		rnd:       rnd,
		logger:    logger.With(slog.String("room_id", string(id))),
	}
}

// ID returns the room's identifier
func (r *Room) ID() model.RoomID {
	return r.id
}

// Status returns the room's lifecycle status
func (r *Room) Status() model.RoomStatus {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.status
}

// Epoch returns the room's transition counter. Deferred work captures it and
// becomes a no-op if the room has moved on.
func (r *Room) Epoch() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.epoch
}

// Join seats a player. The first join leaves the room waiting; the second
// starts the game with a uniformly random starting side. Joining with an
// already-seated id is a reconnect and resumes a paused room.
func (r *Room) Join(ctx context.Context, playerID model.PlayerID, displayName string) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clk.Now()

	if idx := r.seatIndexLocked(playerID); idx >= 0 {
		return r.reconnectLocked(idx, now), nil
	}

	if r.status.Terminal() {
		return nil, model.ErrGameNotActive
	}
	if r.seats[0] != nil && r.seats[1] != nil {
		return nil, model.ErrRoomFull
	}

	player := model.Player{
		ID:          playerID,
		DisplayName: displayName,
		JoinedAt:    now,
	}
	return r.seatLocked(ctx, player, now)
}

// AttachBot seats an automated opponent. It goes through the same seating
// path as a human join; only the player record differs.
func (r *Room) AttachBot(ctx context.Context, bot model.BotInfo) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status.Terminal() {
		return nil, model.ErrGameNotActive
	}
	if r.seats[0] != nil && r.seats[1] != nil {
		return nil, model.ErrRoomFull
	}

	now := r.clk.Now()
	player := model.Player{
		ID:          model.PlayerID(bot.ID + "-" + r.rnd.String(6, "abcdefghijklmnopqrstuvwxyz0123456789")),
		DisplayName: bot.Name,
		IsBot:       true,
		BotID:       bot.ID,
		JoinedAt:    now,
	}
	return r.seatLocked(ctx, player, now)
}

func (r *Room) seatLocked(ctx context.Context, player model.Player, now time.Time) ([]model.Event, error) {
	idx := 0
	if r.seats[0] != nil {
		idx = 1
	}
	r.seats[idx] = &Seat{Player: player, LastSeen: now}

	events := []model.Event{r.eventLocked(model.EventPlayerJoined, model.PlayerJoinedPayload{
		Player: player,
		Seat:   idx,
	})}

	r.logger.Info("player joined",
		slog.String("player_id", string(player.ID)),
		slog.Int("seat", idx),
		slog.Bool("bot", player.IsBot),
	)

	if r.seats[0] != nil && r.seats[1] != nil {
		events = append(events, r.startLocked(now)...)
	} else {
		events = append(events, r.snapshotEventLocked())
	}
	return events, nil
}

// startLocked transitions waiting -> active: deal racks, pick the starting
// side at random, start the clock
func (r *Room) startLocked(now time.Time) []model.Event {
	r.status = model.RoomStatusActive
	r.epoch++

	for _, seat := range r.seats {
		seat.Rack = r.drawLocked(model.RackSize)
	}

	r.current = r.rnd.Intn(2)
	r.gclock = gameclock.New(r.cfg.TimePerPlayer)
	r.gclock.Start(gameclock.Side(r.current), now)

	r.logger.Info("game started",
		slog.String("starting_player", string(r.seats[r.current].Player.ID)),
		slog.Int("starting_seat", r.current),
	)

	return []model.Event{
		r.eventLocked(model.EventGameStarted, model.GameStartedPayload{
			StartingPlayerID: r.seats[r.current].Player.ID,
		}),
		r.snapshotEventLocked(),
		r.timerSyncEventLocked(),
		r.eventLocked(model.EventTurnChanged, model.TurnChangedPayload{
			PlayerID: r.seats[r.current].Player.ID,
		}),
	}
}

// SubmitMove is the single entry point through which room state mutates.
// Validation and application happen back to back under the room lock, so a
// checked move can never be invalidated by a concurrent writer before it is
// applied. Terminal transitions triggered by the move are included in the
// returned events.
//
// A move can race a timer expiry observed on entry; in that case the expiry
// events are returned together with ErrGameNotActive.
func (r *Room) SubmitMove(ctx context.Context, playerID model.PlayerID, mv *model.Move) ([]model.Event, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clk.Now()

	if r.status != model.RoomStatusActive {
		return nil, model.ErrGameNotActive
	}

	// Apply elapsed time before judging the move; the clock may already be
	// exhausted even if no driver tick has observed it yet
	if expired := r.gclock.Tick(now); expired != gameclock.SideNone {
		events := r.expireLocked(int(expired), now)
		return events, model.ErrGameNotActive
	}

	idx := r.seatIndexLocked(playerID)
	if idx < 0 || idx != r.current {
		return nil, model.ErrNotYourTurn
	}
	if r.current != 0 && r.current != 1 {
		return nil, r.abortLocked("turn cursor out of range", now)
	}

	seat := r.seats[idx]
	keepTurn := false

	switch mv.Type {
	case model.MoveTypePlay:
		if err := r.applyPlayLocked(ctx, seat, idx, mv); err != nil {
			return nil, err
		}
	case model.MoveTypeExchange:
		if err := r.applyExchangeLocked(seat, mv); err != nil {
			return nil, err
		}
	case model.MoveTypePass:
		r.passes++
		r.last = nil
	case model.MoveTypeChallenge:
		reverted, err := r.applyChallengeLocked(ctx, idx, mv)
		if err != nil {
			return nil, err
		}
		// A successful challenge reverts the opponent's play and the
		// challenger keeps the turn
		keepTurn = reverted
	default:
		return nil, model.ErrInvalidPlacement
	}

	r.moveCount++
	mv.PlayerID = playerID
	mv.Number = r.moveCount
	mv.Timestamp = now
	r.history = append(r.history, *mv)

	events := []model.Event{r.eventLocked(model.EventMoveCommitted, model.MoveCommittedPayload{Move: *mv})}

	r.logger.Info("move committed",
		slog.String("player_id", string(playerID)),
		slog.String("type", string(mv.Type)),
		slog.Int("number", mv.Number),
		slog.Int("score", mv.Score),
	)

	if done := r.checkGameEndLocked(mv, seat); done != "" {
		return append(events, r.completeLocked(done, now)...), nil
	}

	if !keepTurn {
		r.current = 1 - r.current
	}
	r.epoch++
	if expired := r.gclock.Switch(now); expired != gameclock.SideNone {
		return append(events, r.expireLocked(int(expired), now)...), nil
	}
	if keepTurn {
		// Switch flipped the running side; flip it back so the clock keeps
		// charging the player who retained the turn
		r.gclock.Switch(now)
	}

	events = append(events,
		r.snapshotEventLocked(),
		r.eventLocked(model.EventTurnChanged, model.TurnChangedPayload{
			PlayerID: r.seats[r.current].Player.ID,
		}),
		r.timerSyncEventLocked(),
	)
	return events, nil
}

// normalizeTileLocked stamps the authoritative point value from the room's
// distribution. Client-supplied points are never trusted; blanks always score
// zero.
func (r *Room) normalizeTileLocked(t model.Tile) model.Tile {
	t.Letter = unicode.ToUpper(t.Letter)
	if t.Blank {
		t.Points = 0
		return t
	}
	if tc, ok := r.dist[t.Letter]; ok {
		t.Points = tc.Points
	}
	return t
}

// unassignBlank strips the assigned letter from a blank heading back to the
// bag or a rack, so it re-enters circulation unlabeled
func unassignBlank(t model.Tile) model.Tile {
	if t.Blank {
		t.Letter = model.BlankRune
		t.Points = 0
	}
	return t
}

func (r *Room) applyPlayLocked(ctx context.Context, seat *Seat, idx int, mv *model.Move) error {
	for i := range mv.Placed {
		mv.Placed[i].Tile = r.normalizeTileLocked(mv.Placed[i].Tile)
	}

	result, err := r.validator.ValidatePlay(ctx, validation.PlayInput{
		Board:        r.board,
		Rack:         seat.Rack,
		Placed:       mv.Placed,
		FirstMove:    !r.board.HasTiles(),
		DictionaryID: r.cfg.DictionaryID,
	})
	if err != nil {
		return err
	}

	for _, pt := range mv.Placed {
		r.board.Place(pt.Pos, pt.Tile)
		rack, ok := model.RemoveFromRack(seat.Rack, pt.Tile)
		if !ok {
			// ValidatePlay already proved the rack holds these tiles
			return &model.InvariantError{RoomID: r.id, Detail: "rack diverged from validated move"}
		}
		seat.Rack = rack
	}

	drawn := r.drawLocked(model.RackSize - len(seat.Rack))
	seat.Rack = append(seat.Rack, drawn...)
	seat.Score += result.Score

	mv.Words = result.WordStrings()
	mv.Score = result.Score
	r.passes = 0
	r.last = &lastPlay{move: *mv, drawn: drawn, seat: idx}
	return nil
}

func (r *Room) applyExchangeLocked(seat *Seat, mv *model.Move) error {
	for i := range mv.Exchanged {
		mv.Exchanged[i] = r.normalizeTileLocked(mv.Exchanged[i])
	}

	if err := r.validator.ValidateExchange(seat.Rack, mv.Exchanged, r.bag.Count()); err != nil {
		return err
	}

	for _, t := range mv.Exchanged {
		seat.Rack, _ = model.RemoveFromRack(seat.Rack, t)
	}
	seat.Rack = append(seat.Rack, r.drawLocked(len(mv.Exchanged))...)
	returned := make([]model.Tile, len(mv.Exchanged))
	for i, t := range mv.Exchanged {
		returned[i] = unassignBlank(t)
	}
	r.bag.Put(returned...)

	mv.Score = 0
	r.passes = 0
	r.last = nil
	return nil
}

// applyChallengeLocked resolves a challenge against the most recent play.
// Returns whether the play was reverted.
func (r *Room) applyChallengeLocked(ctx context.Context, challengerIdx int, mv *model.Move) (bool, error) {
	if r.last == nil || r.last.seat == challengerIdx {
		return false, model.ErrChallengeNotAllowed
	}

	offending, err := r.validator.RevalidateWords(ctx, r.cfg.DictionaryID, r.last.move.Words)
	if err != nil {
		return false, err
	}

	if offending == "" {
		// Challenge failed: the play stands and the challenger forfeits the
		// turn
		r.last = nil
		return false, nil
	}

	// Challenge succeeded: undo the play entirely
	challenged := r.seats[r.last.seat]
	for _, t := range r.last.drawn {
		challenged.Rack, _ = model.RemoveFromRack(challenged.Rack, t)
	}
	r.bag.Put(r.last.drawn...)
	for _, pt := range r.last.move.Placed {
		r.board.Remove(pt.Pos)
		challenged.Rack = append(challenged.Rack, unassignBlank(pt.Tile))
	}
	challenged.Score -= r.last.move.Score

	r.logger.Info("challenge upheld",
		slog.String("challenger", string(mv.PlayerID)),
		slog.String("word", offending),
		slog.Int("reverted_score", r.last.move.Score),
	)

	mv.Words = []string{offending}
	r.last = nil
	return true, nil
}

// checkGameEndLocked returns the end reason the committed move triggered, if
// any
func (r *Room) checkGameEndLocked(mv *model.Move, seat *Seat) model.EndReason {
	if r.passes >= model.ConsecutivePassLimit {
		return model.EndReasonPassLimit
	}
	if mv.Type == model.MoveTypePlay && len(seat.Rack) == 0 && r.bag.Count() == 0 {
		return model.EndReasonBagEmpty
	}
	return ""
}

// Heartbeat records liveness for a seat and resumes a room paused for that
// player
func (r *Room) Heartbeat(playerID model.PlayerID) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx := r.seatIndexLocked(playerID)
	if idx < 0 {
		return nil
	}
	return r.reconnectLocked(idx, r.clk.Now())
}

func (r *Room) reconnectLocked(idx int, now time.Time) []model.Event {
	r.seats[idx].LastSeen = now

	if r.status == model.RoomStatusPaused && r.paused != nil && *r.paused == idx {
		r.status = model.RoomStatusActive
		r.paused = nil
		r.epoch++
		r.gclock.Resume(now)
		r.logger.Info("game resumed", slog.String("player_id", string(r.seats[idx].Player.ID)))
		return []model.Event{
			r.eventLocked(model.EventGameResumed, model.GamePausedPayload{PlayerID: r.seats[idx].Player.ID}),
			r.snapshotEventLocked(),
			r.timerSyncEventLocked(),
		}
	}
	return []model.Event{r.snapshotEventLocked()}
}

// Tick is the periodic driver entry: it applies elapsed clock time, emits the
// timer sync, and handles expiry and disconnect grace transitions. It runs
// under the same lock as SubmitMove, so a tick and a move can never both
// conclude they ended the game.
func (r *Room) Tick(ctx context.Context) []model.Event {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.clk.Now()

	switch r.status {
	case model.RoomStatusActive:
		if expired := r.gclock.Tick(now); expired != gameclock.SideNone {
			return r.expireLocked(int(expired), now)
		}
		if events := r.checkDisconnectsLocked(now); events != nil {
			return events
		}
		return []model.Event{r.timerSyncEventLocked()}

	case model.RoomStatusPaused:
		if events := r.checkDisconnectsLocked(now); events != nil {
			return events
		}
		return nil

	default:
		return nil
	}
}

func (r *Room) checkDisconnectsLocked(now time.Time) []model.Event {
	for idx, seat := range r.seats {
		if seat == nil || seat.Player.IsBot {
			continue
		}
		gone := now.Sub(seat.LastSeen)

		if gone >= r.cfg.AbandonAfter {
			r.logger.Info("player disconnected past abandon window",
				slog.String("player_id", string(seat.Player.ID)),
				slog.Duration("gone", gone),
			)
			return r.abandonLocked(idx, now)
		}

		if gone >= r.cfg.DisconnectGrace && r.status == model.RoomStatusActive {
			r.status = model.RoomStatusPaused
			r.paused = &idx
			r.epoch++
			r.gclock.Pause(now)
			r.logger.Info("game paused for disconnect",
				slog.String("player_id", string(seat.Player.ID)),
			)
			return []model.Event{
				r.eventLocked(model.EventGamePaused, model.GamePausedPayload{PlayerID: seat.Player.ID}),
				r.timerSyncEventLocked(),
			}
		}
	}
	return nil
}

// expireLocked ends the game because side's clock reached zero; that side
// loses regardless of board score
func (r *Room) expireLocked(side int, now time.Time) []model.Event {
	loser := r.seats[side]
	winner := r.seats[1-side]

	r.status = model.RoomStatusCompleted
	r.endReason = model.EndReasonTimeExpired
	r.winner = winner.Player.ID
	r.endedAt = now
	r.epoch++

	r.logger.Info("time expired",
		slog.String("loser", string(loser.Player.ID)),
		slog.Int("seat", side),
	)

	events := []model.Event{
		r.eventLocked(model.EventTimerExpired, model.TimerExpiredPayload{
			PlayerID: loser.Player.ID,
			Seat:     side,
		}),
	}
	return append(events, r.finishLocked(now)...)
}

// abandonLocked ends the game as a forfeit by the seat at idx
func (r *Room) abandonLocked(idx int, now time.Time) []model.Event {
	r.status = model.RoomStatusAbandoned
	r.endReason = model.EndReasonForfeit
	if other := r.seats[1-idx]; other != nil {
		r.winner = other.Player.ID
	}
	r.endedAt = now
	r.epoch++
	if r.gclock != nil {
		r.gclock.Pause(now)
	}

	events := []model.Event{r.eventLocked(model.EventGameAbandoned, model.GamePausedPayload{
		PlayerID: r.seats[idx].Player.ID,
	})}
	return append(events, r.finishLocked(now)...)
}

// completeLocked ends the game by rule (pass limit or bag+rack empty) and
// applies final scoring
func (r *Room) completeLocked(reason model.EndReason, now time.Time) []model.Event {
	finals := []scoring.FinalScore{
		{PlayerID: r.seats[0].Player.ID, Score: r.seats[0].Score, RackValue: model.RackValue(r.seats[0].Rack)},
		{PlayerID: r.seats[1].Player.ID, Score: r.seats[1].Score, RackValue: model.RackValue(r.seats[1].Rack)},
	}
	finals = r.scoring.FinalizeScores(finals)
	for i, fs := range finals {
		r.seats[i].Score = fs.Score
	}

	r.status = model.RoomStatusCompleted
	r.endReason = reason
	r.winner = r.scoring.DetermineWinner(finals)
	r.endedAt = now
	r.epoch++
	r.gclock.Pause(now)

	return r.finishLocked(now)
}

// finishLocked archives the summary and emits the completion event
func (r *Room) finishLocked(now time.Time) []model.Event {
	scores := make(map[model.PlayerID]int, 2)
	for _, seat := range r.seats {
		if seat != nil {
			scores[seat.Player.ID] = seat.Score
		}
	}

	summary := &model.GameSummary{
		RoomID:      r.id,
		Winner:      r.winner,
		Reason:      r.endReason,
		FinalScores: scores,
		Moves:       r.moveCount,
		CompletedAt: now,
	}
	// Archive off the room goroutine: a slow storage backend must not hold
	// the room lock, and the shared tick driver waits on that lock for every
	// room it walks
	go r.archiveSummary(summary)

	r.logger.Info("game over",
		slog.String("winner", string(r.winner)),
		slog.String("reason", string(r.endReason)),
		slog.Int("moves", r.moveCount),
	)

	eventType := model.EventGameCompleted
	if r.status == model.RoomStatusAbandoned {
		eventType = model.EventGameAbandoned
	}
	return []model.Event{
		r.eventLocked(eventType, model.GameCompletedPayload{
			Winner:      r.winner,
			Reason:      r.endReason,
			FinalScores: scores,
		}),
		r.snapshotEventLocked(),
	}
}

func (r *Room) archiveSummary(summary *model.GameSummary) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := r.store.SaveGameSummary(ctx, summary); err != nil {
		r.logger.Error("failed to archive game summary", slog.String("error", err.Error()))
	}
}

// abortLocked handles a fatal internal invariant violation by killing the
// room's session
func (r *Room) abortLocked(detail string, now time.Time) error {
	err := &model.InvariantError{RoomID: r.id, Detail: detail}
	r.logger.Error("room state corrupted, aborting session", slog.String("detail", detail))
	r.status = model.RoomStatusAbandoned
	r.endReason = model.EndReasonForfeit
	r.endedAt = now
	r.epoch++
	return err
}

func (r *Room) drawLocked(n int) []model.Tile {
	var drawn []model.Tile
	for i := 0; i < n && r.bag.Count() > 0; i++ {
		drawn = append(drawn, r.bag.DrawAt(r.rnd.Intn(r.bag.Count())))
	}
	return drawn
}

func (r *Room) seatIndexLocked(playerID model.PlayerID) int {
	for i, seat := range r.seats {
		if seat != nil && seat.Player.ID == playerID {
			return i
		}
	}
	return -1
}

func (r *Room) eventLocked(t model.EventType, payload any) model.Event {
	return model.Event{
		Type:      t,
		RoomID:    r.id,
		Timestamp: r.clk.Now(),
		Payload:   payload,
	}
}
