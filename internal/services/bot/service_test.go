package bot

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/HannanLK/code-red-server/internal/dependencies/mocks"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/dictionary"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/services/validation"
	"github.com/HannanLK/code-red-server/internal/storage/memory"
	"github.com/HannanLK/code-red-server/internal/testutil"
)

const humanID = model.PlayerID("human-1")

type ServiceSuite struct {
	suite.Suite
	clk     *mocks.MockClock
	rnd     *mocks.MockRandom
	reg     *room.Registry
	service *Service
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	store := memory.New()
	s.clk = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.rnd = mocks.NewMockRandom()
	s.ctx = context.Background()

	dict := dictionary.New(store, testutil.NopLogger())
	err := dict.LoadWords(s.ctx, "en", []string{"CAT", "AT"})
	s.Require().NoError(err)

	scoringService := scoring.New()
	validator := validation.New(dict, scoringService, testutil.NopLogger())

	s.reg = room.NewRegistry(room.DefaultConfig(), validator, scoringService, store, s.clk, s.rnd, testutil.NopLogger())
	s.service = New(s.reg, validator, s.rnd, testutil.NopLogger())
	s.reg.SetScheduler(s.service)
}

// startBotGame seats a human and a bot. The mock random makes the human (seat
// 0) the starting side, so no bot timer is pending afterwards.
func (s *ServiceSuite) startBotGame() *room.Room {
	s.rnd.QueueString("GAME01")
	r, err := s.reg.Create(s.ctx)
	s.Require().NoError(err)

	_, err = r.Join(s.ctx, humanID, "Alice")
	s.Require().NoError(err)

	s.rnd.QueueString("abc123")
	_, err = r.AttachBot(s.ctx, model.BotInfo{ID: "robo-rookie", Name: "Robo Rookie"})
	s.Require().NoError(err)
	s.Require().Equal(model.RoomStatusActive, r.Status())
	return r
}

// passToBot hands the turn to the bot seat
func (s *ServiceSuite) passToBot(r *room.Room) {
	_, err := r.SubmitMove(s.ctx, humanID, &model.Move{Type: model.MoveTypePass})
	s.Require().NoError(err)
	_, ok := r.CurrentBotTurn()
	s.Require().True(ok)
}

func (s *ServiceSuite) pendingCount() int {
	s.service.mu.Lock()
	defer s.service.mu.Unlock()
	return len(s.service.pending)
}

func (s *ServiceSuite) TestNoScheduleOnHumanTurn() {
	r := s.startBotGame()

	s.service.OnEvents(r, []model.Event{{Type: model.EventTurnChanged}})

	s.Equal(0, s.pendingCount())
}

func (s *ServiceSuite) TestTurnChangeToBotQueuesMove() {
	r := s.startBotGame()
	s.passToBot(r)

	s.service.OnEvents(r, []model.Event{{Type: model.EventTurnChanged}})

	s.Equal(1, s.pendingCount())
	s.service.cancel(r.ID())
}

func (s *ServiceSuite) TestTerminalEventCancelsPendingMove() {
	r := s.startBotGame()
	s.passToBot(r)
	s.service.OnEvents(r, []model.Event{{Type: model.EventTurnChanged}})
	s.Require().Equal(1, s.pendingCount())

	s.service.OnEvents(r, []model.Event{{Type: model.EventGameCompleted}})

	s.Equal(0, s.pendingCount())
}

func (s *ServiceSuite) TestStaleCallbackLeavesFreshTimerPending() {
	r := s.startBotGame()
	s.passToBot(r)
	s.service.OnEvents(r, []model.Event{{Type: model.EventTurnChanged}})
	staleEpoch := r.Epoch()
	info, _ := Lookup("robo-rookie")

	// The human misses the grace window: the room pauses and the queued
	// think timer is cancelled
	s.clk.Advance(room.DefaultConfig().DisconnectGrace + time.Second)
	s.service.OnEvents(r, r.Tick(s.ctx))
	s.Require().Equal(0, s.pendingCount())

	// Reconnecting resumes the game and queues a fresh timer
	s.service.OnEvents(r, r.Heartbeat(humanID))
	s.Require().Equal(1, s.pendingCount())

	// The pre-pause callback finally runs. It is stale and must drop itself
	// without taking the fresh timer down with it, or the bot turn would
	// never be played.
	s.service.playTurn(r, info, staleEpoch)

	s.Equal(1, s.pendingCount())
	_, ok := r.CurrentBotTurn()
	s.True(ok)
	s.service.cancel(r.ID())
}

func (s *ServiceSuite) TestStaleEpochMoveDropped() {
	r := s.startBotGame()
	s.passToBot(r)
	info, _ := Lookup("robo-rookie")

	s.service.playTurn(r, info, r.Epoch()-1)

	s.Empty(r.History()[1:])
}

func (s *ServiceSuite) TestPlayTurnSubmitsMove() {
	r := s.startBotGame()
	s.passToBot(r)
	info, _ := Lookup("robo-rookie")

	s.service.playTurn(r, info, r.Epoch())

	history := r.History()
	s.Require().Len(history, 2)
	s.NotEqual(model.MoveTypeChallenge, history[1].Type)

	// The turn went back to the human
	s.Equal(humanID, r.Snapshot("").CurrentPlayerID)
}

func (s *ServiceSuite) TestChooseMoveFallsBackToExchange() {
	turn := &room.BotTurn{
		Player:       model.Player{ID: "bot-1", IsBot: true, BotID: "robo-rookie"},
		Board:        model.NewBoard(model.DefaultBoardConfig()),
		Rack:         []model.Tile{{Letter: 'Q', Points: 10}, {Letter: 'X', Points: 8}, {Letter: 'J', Points: 8}, {Letter: 'K', Points: 5}},
		BagCount:     50,
		FirstMove:    true,
		DictionaryID: "en",
	}
	info, _ := Lookup("robo-rookie")

	mv := s.service.chooseMove(s.ctx, turn, info)

	s.Equal(model.MoveTypeExchange, mv.Type)
	s.Len(mv.Exchanged, 3)
}

func (s *ServiceSuite) TestChooseMovePassesWhenBagLow() {
	turn := &room.BotTurn{
		Player:       model.Player{ID: "bot-1", IsBot: true, BotID: "robo-rookie"},
		Board:        model.NewBoard(model.DefaultBoardConfig()),
		Rack:         []model.Tile{{Letter: 'Q', Points: 10}},
		BagCount:     2,
		FirstMove:    true,
		DictionaryID: "en",
	}
	info, _ := Lookup("robo-rookie")

	mv := s.service.chooseMove(s.ctx, turn, info)

	s.Equal(model.MoveTypePass, mv.Type)
}
