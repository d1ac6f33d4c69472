package bot

import (
	"context"

	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/validation"
)

// GreedyStrategy keeps the highest-scoring play found within its search
// budget. Easy bots search shallower and shorter than medium bots.
type GreedyStrategy struct {
	validator validation.ServiceInterface
	rnd       random.Random
	params    searchParams
}

// NewGreedyStrategy creates a greedy strategy tuned for the given difficulty
func NewGreedyStrategy(validator validation.ServiceInterface, rnd random.Random, difficulty model.BotDifficulty) *GreedyStrategy {
	params := searchParams{maxTiles: 4, budget: 400}
	if difficulty == model.BotDifficultyMedium {
		params = searchParams{maxTiles: 5, budget: 1200}
	}
	return &GreedyStrategy{validator: validator, rnd: rnd, params: params}
}

// ChoosePlay returns the best play found, or false if the search came up
// empty
func (s *GreedyStrategy) ChoosePlay(ctx context.Context, turn *room.BotTurn) (*model.Move, bool) {
	var best []model.PlacedTile
	bestScore := -1

	err := searchPlays(ctx, turn, s.validator, s.rnd, s.params, func(placed []model.PlacedTile, result *validation.PlayResult) bool {
		if result.Score > bestScore {
			bestScore = result.Score
			best = placed
		}
		return true
	})
	if err != nil || best == nil {
		return nil, false
	}

	return &model.Move{
		Type:     model.MoveTypePlay,
		PlayerID: turn.Player.ID,
		Placed:   best,
	}, true
}

var _ Strategy = (*GreedyStrategy)(nil)
