package bot

import (
	"context"

	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/validation"
)

// RandomStrategy plays the first legal word its shuffled search stumbles on.
// Used for the beginner difficulty.
type RandomStrategy struct {
	validator validation.ServiceInterface
	rnd       random.Random
}

// NewRandomStrategy creates a beginner-level strategy
func NewRandomStrategy(validator validation.ServiceInterface, rnd random.Random) *RandomStrategy {
	return &RandomStrategy{validator: validator, rnd: rnd}
}

// ChoosePlay returns the first legal play found, or false if none
func (s *RandomStrategy) ChoosePlay(ctx context.Context, turn *room.BotTurn) (*model.Move, bool) {
	var chosen []model.PlacedTile

	params := searchParams{maxTiles: 3, budget: 250}
	err := searchPlays(ctx, turn, s.validator, s.rnd, params, func(placed []model.PlacedTile, _ *validation.PlayResult) bool {
		chosen = placed
		return false
	})
	if err != nil || chosen == nil {
		return nil, false
	}

	return &model.Move{
		Type:     model.MoveTypePlay,
		PlayerID: turn.Player.ID,
		Placed:   chosen,
	}, true
}

var _ Strategy = (*RandomStrategy)(nil)
