package bot

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/dictionary"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/services/validation"
	"github.com/HannanLK/code-red-server/internal/storage/memory"
	"github.com/HannanLK/code-red-server/internal/testutil"
)

type StrategySuite struct {
	suite.Suite
	rnd       *random.CryptoRandom
	validator *validation.Service
	ctx       context.Context
}

func TestStrategySuite(t *testing.T) {
	suite.Run(t, new(StrategySuite))
}

func (s *StrategySuite) SetupTest() {
	store := memory.New()
	dict := dictionary.New(store, testutil.NopLogger())
	s.ctx = context.Background()

	err := dict.LoadWords(s.ctx, "en", []string{"AT", "TA", "CAT", "TAT", "ATT"})
	s.Require().NoError(err)

	s.rnd = random.New()
	s.validator = validation.New(dict, scoring.New(), testutil.NopLogger())
}

func (s *StrategySuite) tiles(letters string) []model.Tile {
	dist := model.DefaultTileDistribution()
	var out []model.Tile
	for _, l := range letters {
		out = append(out, model.Tile{Letter: l, Points: dist[l].Points})
	}
	return out
}

func (s *StrategySuite) openingTurn(rack string) *room.BotTurn {
	return &room.BotTurn{
		Player:       model.Player{ID: "bot-1", IsBot: true, BotID: "robo-rookie"},
		Board:        model.NewBoard(model.DefaultBoardConfig()),
		Rack:         s.tiles(rack),
		BagCount:     86,
		FirstMove:    true,
		DictionaryID: "en",
	}
}

func (s *StrategySuite) TestAnchorsOnEmptyBoardIsCenter() {
	board := model.NewBoard(model.DefaultBoardConfig())

	s.Equal([]model.Position{board.Center()}, anchors(board, true))
	s.Empty(anchors(board, false))
}

func (s *StrategySuite) TestAnchorsSurroundExistingTiles() {
	board := model.NewBoard(model.DefaultBoardConfig())
	for i, l := range "CAT" {
		board.Place(model.Position{Row: 7, Col: 6 + i}, model.Tile{Letter: l, Points: 1})
	}

	got := anchors(board, false)

	// Three cells above, three below, one on each end
	s.Len(got, 8)
	s.Contains(got, model.Position{Row: 7, Col: 5})
	s.Contains(got, model.Position{Row: 7, Col: 9})
	s.Contains(got, model.Position{Row: 6, Col: 7})
	s.NotContains(got, model.Position{Row: 7, Col: 7})
}

func (s *StrategySuite) TestLayTilesOnEmptyLine() {
	board := model.NewBoard(model.DefaultBoardConfig())

	placed, ok := layTiles(board, model.Position{Row: 7, Col: 7}, true, 1, 3, s.tiles("CAT"))

	s.Require().True(ok)
	s.Equal(model.Position{Row: 7, Col: 6}, placed[0].Pos)
	s.Equal(model.Position{Row: 7, Col: 7}, placed[1].Pos)
	s.Equal(model.Position{Row: 7, Col: 8}, placed[2].Pos)
}

func (s *StrategySuite) TestLayTilesSkipsOccupiedCells() {
	board := model.NewBoard(model.DefaultBoardConfig())
	board.Place(model.Position{Row: 7, Col: 7}, model.Tile{Letter: 'A', Points: 1})

	placed, ok := layTiles(board, model.Position{Row: 7, Col: 6}, true, 0, 2, s.tiles("CT"))

	s.Require().True(ok)
	s.Equal(model.Position{Row: 7, Col: 6}, placed[0].Pos)
	s.Equal(model.Position{Row: 7, Col: 8}, placed[1].Pos)
}

func (s *StrategySuite) TestLayTilesFailsOffBoard() {
	board := model.NewBoard(model.DefaultBoardConfig())

	_, ok := layTiles(board, model.Position{Row: 0, Col: 0}, true, 1, 2, s.tiles("AT"))
	s.False(ok)

	_, ok = layTiles(board, model.Position{Row: 0, Col: 14}, true, 0, 2, s.tiles("AT"))
	s.False(ok)
}

func (s *StrategySuite) TestPickTilesReturnsRackSubset() {
	rack := s.tiles("CATXYZQ")

	picked := pickTiles(rack, 3, s.rnd)

	s.Len(picked, 3)
	remaining := rack
	for _, t := range picked {
		var ok bool
		remaining, ok = model.RemoveFromRack(remaining, t)
		s.True(ok)
	}
}

func (s *StrategySuite) TestPickTilesAssignsBlankLetters() {
	rack := []model.Tile{{Blank: true}, {Blank: true}}

	picked := pickTiles(rack, 2, s.rnd)

	for _, t := range picked {
		s.True(t.Blank)
		s.NotZero(t.Letter)
	}
}

func (s *StrategySuite) TestRandomStrategyFindsOpeningPlay() {
	strategy := NewRandomStrategy(s.validator, s.rnd)

	mv, found := strategy.ChoosePlay(s.ctx, s.openingTurn("ATATATA"))

	s.Require().True(found)
	s.Equal(model.MoveTypePlay, mv.Type)
	s.GreaterOrEqual(len(mv.Placed), 2)

	covered := false
	for _, pt := range mv.Placed {
		if pt.Pos == (model.Position{Row: 7, Col: 7}) {
			covered = true
		}
	}
	s.True(covered)
}

func (s *StrategySuite) TestGreedyStrategyFindsOpeningPlay() {
	strategy := NewGreedyStrategy(s.validator, s.rnd, model.BotDifficultyMedium)

	mv, found := strategy.ChoosePlay(s.ctx, s.openingTurn("ATATATA"))

	s.Require().True(found)
	s.Equal(model.MoveTypePlay, mv.Type)
}

func (s *StrategySuite) TestStrategyGivesUpWithHopelessRack() {
	strategy := NewGreedyStrategy(s.validator, s.rnd, model.BotDifficultyEasy)

	_, found := strategy.ChoosePlay(s.ctx, s.openingTurn("QQQQQQQ"))

	s.False(found)
}

func (s *StrategySuite) TestCatalogLookup() {
	info, ok := Lookup("lexibot")
	s.Require().True(ok)
	s.Equal(model.BotDifficultyMedium, info.Difficulty)

	_, ok = Lookup("nope")
	s.False(ok)
}

func (s *StrategySuite) TestThinkDelayDefaultsToBeginner() {
	s.Equal(thinkDelays[model.BotDifficultyBeginner], thinkDelay("unknown"))
	s.Equal(thinkDelays[model.BotDifficultyMedium], thinkDelay(model.BotDifficultyMedium))
}
