package scoring

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/HannanLK/code-red-server/internal/model"
)

type ServiceSuite struct {
	suite.Suite
	service *Service
	board   *model.Board
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	s.service = New()
	s.board = model.NewBoard(model.DefaultBoardConfig())
}

func (s *ServiceSuite) word(word string, start model.Position, horizontal bool, points []int, newCells []bool) model.FormedWord {
	fw := model.FormedWord{Word: word}
	for i, r := range word {
		pos := start
		if horizontal {
			pos.Col += i
		} else {
			pos.Row += i
		}
		fw.Cells = append(fw.Cells, model.WordCell{
			Pos:  pos,
			Tile: model.Tile{Letter: r, Points: points[i]},
			New:  newCells[i],
		})
	}
	return fw
}

func (s *ServiceSuite) TestOpeningWordOnCenterDoublesScore() {
	// CAT through the center star: (3+1+1) x 2
	fw := s.word("CAT", model.Position{Row: 7, Col: 6}, true,
		[]int{3, 1, 1}, []bool{true, true, true})

	score := s.service.ScorePlay(s.board, []model.FormedWord{fw}, 3)

	s.Equal(10, score)
}

func (s *ServiceSuite) TestLetterPremiumAppliesBeforeWordPremium() {
	// Row 0: TW at col 0, DL at col 3. WORD = [4 + 1 + 1 + 2x2] x 3
	fw := s.word("WORD", model.Position{Row: 0, Col: 0}, true,
		[]int{4, 1, 1, 2}, []bool{true, true, true, true})

	score := s.service.ScorePlay(s.board, []model.FormedWord{fw}, 4)

	s.Equal((4+1+1+2*2)*3, score)
}

func (s *ServiceSuite) TestPremiumIgnoredForExistingTiles() {
	// Same word, but the TW cell's tile was already on the board
	fw := s.word("WORD", model.Position{Row: 0, Col: 0}, true,
		[]int{4, 1, 1, 2}, []bool{false, true, true, true})

	score := s.service.ScorePlay(s.board, []model.FormedWord{fw}, 3)

	s.Equal(4+1+1+2*2, score)
}

func (s *ServiceSuite) TestBingoBonusForSevenTiles() {
	// Seven tiles on plain squares (row 7 cols 1..7 includes DL at col 3 and
	// DW at col 7); keep it simple with row 3 cols 4..10: DW at (3,3) not
	// included, DL at (3,7) col 7 included
	points := []int{1, 1, 1, 1, 1, 1, 1}
	news := []bool{true, true, true, true, true, true, true}
	fw := s.word("AAAAAAA", model.Position{Row: 4, Col: 0}, true, points, news)

	score := s.service.ScorePlay(s.board, []model.FormedWord{fw}, 7)

	// Row 4 has DW at col 4: (7) x 2 plus bingo
	s.Equal(7*2+BingoBonus, score)
}

func (s *ServiceSuite) TestMultipleWordsSum() {
	main := s.word("AT", model.Position{Row: 5, Col: 0}, true,
		[]int{1, 1}, []bool{true, false})
	cross := s.word("AN", model.Position{Row: 5, Col: 0}, false,
		[]int{1, 1}, []bool{true, false})

	// (5,0) is plain, (5,1) is TL but not new, (6,0) is plain
	score := s.service.ScorePlay(s.board, []model.FormedWord{main, cross}, 1)

	s.Equal(4, score)
}

func (s *ServiceSuite) TestBlankScoresZero() {
	fw := s.word("GO", model.Position{Row: 4, Col: 0}, true,
		[]int{0, 1}, []bool{true, true})
	fw.Cells[0].Tile.Blank = true

	score := s.service.ScorePlay(s.board, []model.FormedWord{fw}, 2)

	s.Equal(1, score)
}

func (s *ServiceSuite) TestFinalizeScoresPlayerWentOut() {
	finals := s.service.FinalizeScores([]FinalScore{
		{PlayerID: "p1", Score: 100, RackValue: 0},
		{PlayerID: "p2", Score: 80, RackValue: 7},
	})

	s.Equal(107, finals[0].Score)
	s.Equal(73, finals[1].Score)
}

func (s *ServiceSuite) TestFinalizeScoresBothHoldTiles() {
	finals := s.service.FinalizeScores([]FinalScore{
		{PlayerID: "p1", Score: 50, RackValue: 4},
		{PlayerID: "p2", Score: 60, RackValue: 9},
	})

	s.Equal(46, finals[0].Score)
	s.Equal(51, finals[1].Score)
}

func (s *ServiceSuite) TestFinalizeScoresFloorsAtZero() {
	finals := s.service.FinalizeScores([]FinalScore{
		{PlayerID: "p1", Score: 3, RackValue: 10},
		{PlayerID: "p2", Score: 20, RackValue: 2},
	})

	s.Equal(0, finals[0].Score)
	s.Equal(18, finals[1].Score)
}

func (s *ServiceSuite) TestDetermineWinnerByScore() {
	winner := s.service.DetermineWinner([]FinalScore{
		{PlayerID: "p1", Score: 40, RackValue: 0},
		{PlayerID: "p2", Score: 55, RackValue: 3},
	})

	s.Equal(model.PlayerID("p2"), winner)
}

func (s *ServiceSuite) TestDetermineWinnerTieBreaksOnRackValue() {
	winner := s.service.DetermineWinner([]FinalScore{
		{PlayerID: "p1", Score: 40, RackValue: 5},
		{PlayerID: "p2", Score: 40, RackValue: 2},
	})

	s.Equal(model.PlayerID("p2"), winner)
}

func (s *ServiceSuite) TestDetermineWinnerFullTie() {
	winner := s.service.DetermineWinner([]FinalScore{
		{PlayerID: "p1", Score: 40, RackValue: 2},
		{PlayerID: "p2", Score: 40, RackValue: 2},
	})

	s.Equal(model.PlayerID(""), winner)
}
