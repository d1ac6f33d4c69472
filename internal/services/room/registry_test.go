package room

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/HannanLK/code-red-server/internal/dependencies/mocks"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/dictionary"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/services/validation"
	"github.com/HannanLK/code-red-server/internal/storage/memory"
	"github.com/HannanLK/code-red-server/internal/testutil"
)

// recordingSink captures everything dispatched to the fan-out
type recordingSink struct {
	published map[model.RoomID][]model.Event
}

func (s *recordingSink) Publish(roomID model.RoomID, events []model.Event) {
	if s.published == nil {
		s.published = make(map[model.RoomID][]model.Event)
	}
	s.published[roomID] = append(s.published[roomID], events...)
}

type RegistrySuite struct {
	suite.Suite
	store *memory.Storage
	clk   *mocks.MockClock
	rnd   *mocks.MockRandom
	sink  *recordingSink
	reg   *Registry
	ctx   context.Context
}

func TestRegistrySuite(t *testing.T) {
	suite.Run(t, new(RegistrySuite))
}

func (s *RegistrySuite) SetupTest() {
	s.store = memory.New()
	s.clk = mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	s.rnd = mocks.NewMockRandom()
	s.sink = &recordingSink{}
	s.ctx = context.Background()

	dict := dictionary.New(s.store, testutil.NopLogger())
	err := dict.LoadWords(s.ctx, "en", []string{"CAT", "AT"})
	s.Require().NoError(err)

	scoringService := scoring.New()
	validator := validation.New(dict, scoringService, testutil.NopLogger())

	s.reg = NewRegistry(DefaultConfig(), validator, scoringService, s.store, s.clk, s.rnd, testutil.NopLogger())
	s.reg.SetSink(s.sink)
}

func (s *RegistrySuite) TestCreateAndGet() {
	s.rnd.QueueString("ROOM01")
	created, err := s.reg.Create(s.ctx)
	s.Require().NoError(err)
	s.Equal(model.RoomID("ROOM01"), created.ID())

	got, err := s.reg.Get("ROOM01")
	s.Require().NoError(err)
	s.Same(created, got)
	s.Equal(1, s.reg.Len())
}

func (s *RegistrySuite) TestGetUnknownRoom() {
	_, err := s.reg.Get("NOSUCH")
	s.True(errors.Is(err, model.ErrRoomNotFound))
}

func (s *RegistrySuite) TestCreateRetriesTakenIDs() {
	s.rnd.QueueString("ROOM01", "ROOM01", "ROOM02")

	first, err := s.reg.Create(s.ctx)
	s.Require().NoError(err)
	second, err := s.reg.Create(s.ctx)
	s.Require().NoError(err)

	s.Equal(model.RoomID("ROOM01"), first.ID())
	s.Equal(model.RoomID("ROOM02"), second.ID())
}

func (s *RegistrySuite) TestCreateUsesSeededBoardAndDistribution() {
	err := s.store.SaveBoardConfig(s.ctx, "standard", model.DefaultBoardConfig())
	s.Require().NoError(err)
	err = s.store.SaveTileDistribution(s.ctx, "en", model.TileDistribution{'A': {Points: 1, Count: 4}})
	s.Require().NoError(err)

	s.rnd.QueueString("ROOM01")
	r, err := s.reg.Create(s.ctx)
	s.Require().NoError(err)

	s.Equal(4, r.Snapshot("").BagCount)
}

func (s *RegistrySuite) TestJoinOrCreatePairsTwoPlayers() {
	s.rnd.QueueString("ROOM01")

	first, err := s.reg.JoinOrCreate(s.ctx, p1, "Alice")
	s.Require().NoError(err)
	s.Equal(model.RoomStatusWaiting, first.Status())

	second, err := s.reg.JoinOrCreate(s.ctx, p2, "Bob")
	s.Require().NoError(err)

	s.Same(first, second)
	s.Equal(model.RoomStatusActive, second.Status())
	s.Equal(1, s.reg.Len())
}

func (s *RegistrySuite) TestJoinOrCreateNeverPairsPlayerWithSelf() {
	s.rnd.QueueString("ROOM01", "ROOM02")

	first, err := s.reg.JoinOrCreate(s.ctx, p1, "Alice")
	s.Require().NoError(err)
	second, err := s.reg.JoinOrCreate(s.ctx, p1, "Alice")
	s.Require().NoError(err)

	s.NotSame(first, second)
	s.Equal(2, s.reg.Len())
}

func (s *RegistrySuite) TestJoinOrCreateDispatchesEvents() {
	s.rnd.QueueString("ROOM01")

	_, err := s.reg.JoinOrCreate(s.ctx, p1, "Alice")
	s.Require().NoError(err)

	s.Require().NotEmpty(s.sink.published["ROOM01"])
	s.Equal(model.EventPlayerJoined, s.sink.published["ROOM01"][0].Type)
}

func (s *RegistrySuite) TestTickAllDispatchesTimerSync() {
	s.rnd.QueueString("ROOM01")
	r, err := s.reg.JoinOrCreate(s.ctx, p1, "Alice")
	s.Require().NoError(err)
	_, err = s.reg.JoinOrCreate(s.ctx, p2, "Bob")
	s.Require().NoError(err)

	s.sink.published = nil
	s.clk.Advance(5 * time.Second)
	r.Heartbeat(p1)
	r.Heartbeat(p2)
	s.reg.tickAll(s.ctx)

	events := s.sink.published["ROOM01"]
	s.Require().NotEmpty(events)
	s.Equal(model.EventTimerSync, events[len(events)-1].Type)
}

func (s *RegistrySuite) TestSweepRemovesTerminalRooms() {
	s.rnd.QueueString("ROOM01")
	r, err := s.reg.JoinOrCreate(s.ctx, p1, "Alice")
	s.Require().NoError(err)
	_, err = s.reg.JoinOrCreate(s.ctx, p2, "Bob")
	s.Require().NoError(err)

	// Forfeit by disconnect, then let the retention window lapse
	s.clk.Advance(DefaultConfig().AbandonAfter + time.Second)
	s.reg.tickAll(s.ctx)
	s.Require().Equal(model.RoomStatusAbandoned, r.Status())
	s.Equal(1, s.reg.Len())

	s.clk.Advance(retainTerminal)
	s.reg.tickAll(s.ctx)

	s.Equal(0, s.reg.Len())
	_, err = s.reg.Get("ROOM01")
	s.True(errors.Is(err, model.ErrRoomNotFound))

	// The archived summary outlives the room; the write happens off the room
	// goroutine
	var summary *model.GameSummary
	s.Require().Eventually(func() bool {
		var err error
		summary, err = s.store.GetGameSummary(s.ctx, "ROOM01")
		return err == nil
	}, time.Second, 5*time.Millisecond)
	s.Equal(model.EndReasonForfeit, summary.Reason)
}
