package scoring

import (
	"github.com/HannanLK/code-red-server/internal/model"
)

// BingoBonus is awarded for playing all seven rack tiles in one move
const BingoBonus = 50

// Service computes move scores and end-of-game results
type Service struct{}

// New creates a new scoring Service
func New() *Service {
	return &Service{}
}

// ScorePlay computes the total score for a play move from the words it
// formed. Premium multipliers apply only to cells whose tile was placed by
// this move; letter premiums apply before word premiums. A seven-tile play
// earns the bingo bonus on top. The result is never negative.
func (s *Service) ScorePlay(board *model.Board, words []model.FormedWord, tilesPlaced int) int {
	total := 0
	for _, w := range words {
		total += s.scoreWord(board, w)
	}
	if tilesPlaced == model.RackSize {
		total += BingoBonus
	}
	if total < 0 {
		total = 0
	}
	return total
}

func (s *Service) scoreWord(board *model.Board, w model.FormedWord) int {
	wordMultiplier := 1
	score := 0
	for _, cell := range w.Cells {
		letterScore := cell.Tile.Points
		if cell.New {
			switch board.PremiumAt(cell.Pos) {
			case model.PremiumDoubleLetter:
				letterScore *= 2
			case model.PremiumTripleLetter:
				letterScore *= 3
			case model.PremiumDoubleWord:
				wordMultiplier *= 2
			case model.PremiumTripleWord:
				wordMultiplier *= 3
			}
		}
		score += letterScore
	}
	return score * wordMultiplier
}

// FinalScore is one player's end-of-game result after rack adjustment
type FinalScore struct {
	PlayerID  model.PlayerID
	Score     int
	RackValue int
}

// FinalizeScores applies the standard end-game adjustment: the player who
// went out gains the sum of the opponent's rack; a player with leftover tiles
// loses their own rack value. Scores are floored at zero per the data model.
func (s *Service) FinalizeScores(scores []FinalScore) []FinalScore {
	out := make([]FinalScore, len(scores))
	copy(out, scores)

	totalLeft := 0
	for _, fs := range out {
		totalLeft += fs.RackValue
	}

	for i := range out {
		if out[i].RackValue == 0 {
			out[i].Score += totalLeft
		} else {
			out[i].Score -= out[i].RackValue
		}
		if out[i].Score < 0 {
			out[i].Score = 0
		}
	}
	return out
}

// DetermineWinner picks the winner by score, breaking ties by lower remaining
// rack value. Returns empty on a full tie.
func (s *Service) DetermineWinner(scores []FinalScore) model.PlayerID {
	if len(scores) == 0 {
		return ""
	}

	best := scores[0]
	tie := false
	for _, fs := range scores[1:] {
		switch {
		case fs.Score > best.Score:
			best = fs
			tie = false
		case fs.Score == best.Score && fs.RackValue < best.RackValue:
			best = fs
			tie = false
		case fs.Score == best.Score && fs.RackValue == best.RackValue:
			tie = true
		}
	}

	if tie {
		return ""
	}
	return best.PlayerID
}

// Interface for dependency injection
type ServiceInterface interface {
	ScorePlay(board *model.Board, words []model.FormedWord, tilesPlaced int) int
	FinalizeScores(scores []FinalScore) []FinalScore
	DetermineWinner(scores []FinalScore) model.PlayerID
}

var _ ServiceInterface = (*Service)(nil)
