package ws

import (
	"context"
	"encoding/json"
	"errors"
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

const (
	alice = model.PlayerID("player-1")
	bob   = model.PlayerID("player-2")
)

type HubSuite struct {
	suite.Suite
	reg  *room.Registry
	room *room.Room
	hub  *Hub
	ctx  context.Context
}

func TestHubSuite(t *testing.T) {
	suite.Run(t, new(HubSuite))
}

func (s *HubSuite) SetupTest() {
	store := memory.New()
	clk := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	rnd := mocks.NewMockRandom()
	s.ctx = context.Background()

	dict := dictionary.New(store, testutil.NopLogger())
	err := dict.LoadWords(s.ctx, "en", []string{"CAT", "AT"})
	s.Require().NoError(err)

	scoringService := scoring.New()
	validator := validation.New(dict, scoringService, testutil.NopLogger())
	s.reg = room.NewRegistry(room.DefaultConfig(), validator, scoringService, store, clk, rnd, testutil.NopLogger())

	rnd.QueueString("ROOM01")
	s.room, err = s.reg.Create(s.ctx)
	s.Require().NoError(err)
	_, err = s.room.Join(s.ctx, alice, "Alice")
	s.Require().NoError(err)
	_, err = s.room.Join(s.ctx, bob, "Bob")
	s.Require().NoError(err)

	s.hub = NewHub(s.room, testutil.NopLogger())
	go s.hub.Run()
}

func (s *HubSuite) TearDownTest() {
	s.hub.Close()
}

// fakeClient builds a client without a network connection; only the send
// buffer and identity matter to the hub
func (s *HubSuite) fakeClient(playerID model.PlayerID) *Client {
	c := &Client{
		send:     make(chan []byte, sendBufferSize),
		playerID: playerID,
	}
	want := s.hub.ClientCount() + 1
	s.hub.Register(c)
	s.Require().Eventually(func() bool {
		return s.hub.ClientCount() == want
	}, time.Second, 5*time.Millisecond)
	return c
}

func (s *HubSuite) receive(c *Client) ServerMessage {
	select {
	case data := <-c.send:
		var msg ServerMessage
		s.Require().NoError(json.Unmarshal(data, &msg))
		return msg
	case <-time.After(time.Second):
		s.FailNow("no message received")
		return ServerMessage{}
	}
}

func (s *HubSuite) TestBroadcastEventReachesAllClients() {
	c1 := s.fakeClient(alice)
	c2 := s.fakeClient(bob)

	s.hub.Publish([]model.Event{{
		Type:      model.EventTurnChanged,
		RoomID:    s.room.ID(),
		Payload:   model.TurnChangedPayload{PlayerID: alice},
		Timestamp: time.Now(),
	}})

	for _, c := range []*Client{c1, c2} {
		msg := s.receive(c)
		s.Equal("turn_changed", msg.Type)
		s.Equal("ROOM01", msg.RoomID)
	}
}

func (s *HubSuite) TestStateSnapshotRenderedPerViewer() {
	c1 := s.fakeClient(alice)
	c2 := s.fakeClient(bob)

	s.hub.Publish([]model.Event{{
		Type:      model.EventStateSnapshot,
		RoomID:    s.room.ID(),
		Payload:   model.StateSnapshotPayload{Snapshot: s.room.Snapshot("")},
		Timestamp: time.Now(),
	}})

	racks := make(map[model.PlayerID][2]int)
	for viewer, c := range map[model.PlayerID]*Client{alice: c1, bob: c2} {
		msg := s.receive(c)
		s.Require().Equal("state", msg.Type)

		var payload model.StateSnapshotPayload
		raw, err := json.Marshal(msg.Payload)
		s.Require().NoError(err)
		s.Require().NoError(json.Unmarshal(raw, &payload))

		racks[viewer] = [2]int{
			len(payload.Snapshot.Seats[0].Rack),
			len(payload.Snapshot.Seats[1].Rack),
		}
	}

	// Each viewer sees only their own rack
	s.Equal([2]int{model.RackSize, 0}, racks[alice])
	s.Equal([2]int{0, model.RackSize}, racks[bob])
}

func (s *HubSuite) TestUnregisterClosesSendChannel() {
	c := s.fakeClient(alice)

	s.hub.Unregister(c)

	s.Require().Eventually(func() bool {
		return s.hub.ClientCount() == 0
	}, time.Second, 5*time.Millisecond)

	_, open := <-c.send
	s.False(open)
}

func (s *HubSuite) TestHubManagerRoutesByRoom() {
	m := NewHubManager(s.reg, testutil.NopLogger())

	hub := m.GetOrCreateHub(s.room)
	s.Same(hub, m.GetOrCreateHub(s.room))

	// Publishing to an unknown room is a no-op
	m.Publish("NOSUCH", []model.Event{{Type: model.EventTurnChanged}})

	m.RemoveHub(s.room.ID())
	s.NotSame(hub, m.GetOrCreateHub(s.room))
	m.RemoveHub(s.room.ID())
}

func (s *HubSuite) TestCleanupEmptyHubs() {
	m := NewHubManager(s.reg, testutil.NopLogger())
	m.GetOrCreateHub(s.room)

	m.CleanupEmptyHubs()

	m.mu.RLock()
	defer m.mu.RUnlock()
	s.Empty(m.hubs)
}

func TestWireMoveToModel(t *testing.T) {
	wire := &WireMove{
		Type: "play",
		Placed: []WirePlacedTile{
			{Row: 7, Col: 7, Tile: WireTile{Letter: "C"}},
			{Row: 7, Col: 8, Tile: WireTile{Letter: "A", Blank: true}},
		},
	}

	mv := wire.ToModel("player-1")

	if mv.Type != model.MoveTypePlay {
		t.Errorf("Type = %q, want play", mv.Type)
	}
	if mv.PlayerID != "player-1" {
		t.Errorf("PlayerID = %q, want player-1", mv.PlayerID)
	}
	if mv.Placed[0].Tile.Letter != 'C' || mv.Placed[0].Tile.Blank {
		t.Errorf("Placed[0].Tile = %+v, want letter C non-blank", mv.Placed[0].Tile)
	}
	if mv.Placed[1].Tile.Letter != 'A' || !mv.Placed[1].Tile.Blank {
		t.Errorf("Placed[1].Tile = %+v, want blank played as A", mv.Placed[1].Tile)
	}
}

func TestErrorCodes(t *testing.T) {
	tests := []struct {
		err  error
		code string
	}{
		{model.ErrGameNotActive, "game_not_active"},
		{model.ErrNotYourTurn, "not_your_turn"},
		{model.ErrInvalidPlacement, "invalid_placement"},
		{model.ErrRackMismatch, "rack_mismatch"},
		{model.ErrExchangeNotAllowed, "exchange_not_allowed"},
		{model.ErrChallengeNotAllowed, "challenge_not_allowed"},
		{model.ErrDictionaryUnavailable, "dictionary_unavailable"},
		{&model.InvalidWordError{Word: "QXZ"}, "invalid_word"},
		{errors.New("boom"), "internal_error"},
	}

	for _, tt := range tests {
		if got := errorCode(tt.err); got != tt.code {
			t.Errorf("errorCode(%v) = %q, want %q", tt.err, got, tt.code)
		}
	}
}
