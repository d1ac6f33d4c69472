package room

import (
	"time"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/gameclock"
)

// Snapshot builds the outward view of the room for one viewer. Rack contents
// are included only for the viewer's own seat.
func (r *Room) Snapshot(forPlayer model.PlayerID) model.RoomSnapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.snapshotLocked(forPlayer)
}

func (r *Room) snapshotLocked(forPlayer model.PlayerID) model.RoomSnapshot {
	now := r.clk.Now()

	snap := model.RoomSnapshot{
		ID:                r.id,
		Status:            r.status,
		BagCount:          r.bag.Count(),
		MoveNumber:        r.moveCount,
		ConsecutivePasses: r.passes,
		Winner:            r.winner,
		EndReason:         r.endReason,
		CreatedAt:         r.createdAt,
	}

	letters := r.board.Letters()
	snap.Board = make([][]string, len(letters))
	for row, rowLetters := range letters {
		snap.Board[row] = make([]string, len(rowLetters))
		for col, letter := range rowLetters {
			if letter != 0 {
				snap.Board[row][col] = string(letter)
			}
		}
	}

	var clockSnap gameclock.Snapshot
	if r.gclock != nil {
		clockSnap = r.gclock.Snapshot(now)
	}

	for idx, seat := range r.seats {
		if seat == nil {
			continue
		}
		view := model.SeatView{
			Player:    seat.Player,
			Score:     seat.Score,
			RackCount: len(seat.Rack),
			Connected: seat.Player.IsBot || now.Sub(seat.LastSeen) < r.cfg.DisconnectGrace,
		}
		if r.gclock != nil {
			view.TimeRemainingMs = clockSnap.Side1Ms
			if idx == 1 {
				view.TimeRemainingMs = clockSnap.Side2Ms
			}
		}
		if seat.Player.ID == forPlayer {
			view.Rack = append([]model.Tile(nil), seat.Rack...)
		}
		snap.Seats = append(snap.Seats, view)
	}

	if r.status == model.RoomStatusActive || r.status == model.RoomStatusPaused {
		snap.CurrentPlayerID = r.seats[r.current].Player.ID
	}
	if len(r.history) > 0 {
		last := r.history[len(r.history)-1]
		snap.LastMove = &last
	}
	return snap
}

// snapshotEventLocked emits the viewer-neutral state snapshot (no racks).
// Transports overlay per-viewer racks via Snapshot.
func (r *Room) snapshotEventLocked() model.Event {
	return r.eventLocked(model.EventStateSnapshot, model.StateSnapshotPayload{
		Snapshot: r.snapshotLocked(""),
	})
}

func (r *Room) timerSyncEventLocked() model.Event {
	snap := r.gclock.Snapshot(r.clk.Now())
	return r.eventLocked(model.EventTimerSync, model.TimerSyncPayload{
		Player1Ms:     snap.Side1Ms,
		Player2Ms:     snap.Side2Ms,
		CurrentPlayer: r.seats[r.current].Player.ID,
		Paused:        snap.Paused,
	})
}

// History returns a copy of the committed move log
func (r *Room) History() []model.Move {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]model.Move(nil), r.history...)
}

// Players returns the currently seated players
func (r *Room) Players() []model.Player {
	r.mu.Lock()
	defer r.mu.Unlock()
	var players []model.Player
	for _, seat := range r.seats {
		if seat != nil {
			players = append(players, seat.Player)
		}
	}
	return players
}

// HasPlayer reports whether the given id holds a seat
func (r *Room) HasPlayer(playerID model.PlayerID) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.seatIndexLocked(playerID) >= 0
}

// EndedAt returns when the room reached a terminal status, zero otherwise
func (r *Room) EndedAt() (time.Time, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.endedAt, r.status.Terminal()
}

// BotTurn describes whose automated move is due. Epoch lets the scheduler
// discard the task if the room has transitioned since.
type BotTurn struct {
	Player       model.Player
	Epoch        uint64
	Board        *model.Board
	Rack         []model.Tile
	BagCount     int
	FirstMove    bool
	DictionaryID string
}

// CurrentBotTurn returns the pending bot turn, if the room is active and the
// turn cursor sits on a bot seat
func (r *Room) CurrentBotTurn() (*BotTurn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.status != model.RoomStatusActive {
		return nil, false
	}
	seat := r.seats[r.current]
	if seat == nil || !seat.Player.IsBot {
		return nil, false
	}
	return &BotTurn{
		Player:       seat.Player,
		Epoch:        r.epoch,
		Board:        r.board.Clone(),
		Rack:         append([]model.Tile(nil), seat.Rack...),
		BagCount:     r.bag.Count(),
		FirstMove:    !r.board.HasTiles(),
		DictionaryID: r.cfg.DictionaryID,
	}, true
}
