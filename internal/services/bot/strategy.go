package bot

import (
	"context"
	"errors"

	"github.com/HannanLK/code-red-server/internal/dependencies/random"
	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/services/validation"
)

// Strategy chooses a play for a pending bot turn. Returning false means the
// search found no legal play; the scheduler falls back to exchange or pass.
type Strategy interface {
	ChoosePlay(ctx context.Context, turn *room.BotTurn) (*model.Move, bool)
}

// anchors returns the empty cells a new word could legally run through: every
// empty neighbor of an occupied cell, or just the center on the opening move
func anchors(board *model.Board, firstMove bool) []model.Position {
	if firstMove {
		return []model.Position{board.Center()}
	}
	seen := make(map[model.Position]bool)
	var out []model.Position
	for r := 0; r < board.Size; r++ {
		for c := 0; c < board.Size; c++ {
			pos := model.Position{Row: r, Col: c}
			if !board.IsEmpty(pos) || !board.HasNeighbor(pos) || seen[pos] {
				continue
			}
			seen[pos] = true
			out = append(out, pos)
		}
	}
	return out
}

// layTiles places count tiles from rackOrder along dir, starting back empty
// cells before the anchor. Occupied cells are skipped so existing letters join
// the run. Returns false if the line leaves the board.
func layTiles(board *model.Board, anchor model.Position, horizontal bool, back, count int, tiles []model.Tile) ([]model.PlacedTile, bool) {
	dr, dc := 0, 1
	if !horizontal {
		dr, dc = 1, 0
	}

	// Walk backward past `back` empty cells to find where the run starts
	start := anchor
	for skipped := 0; skipped < back; {
		prev := model.Position{Row: start.Row - dr, Col: start.Col - dc}
		if !board.InBounds(prev) {
			return nil, false
		}
		if board.IsEmpty(prev) {
			skipped++
		}
		start = prev
	}

	// Lay tiles forward into successive empty cells
	placed := make([]model.PlacedTile, 0, count)
	pos := start
	for len(placed) < count {
		if !board.InBounds(pos) {
			return nil, false
		}
		if board.IsEmpty(pos) {
			placed = append(placed, model.PlacedTile{Pos: pos, Tile: tiles[len(placed)]})
		}
		pos = model.Position{Row: pos.Row + dr, Col: pos.Col + dc}
	}
	return placed, true
}

// searchParams bound a strategy's candidate search
type searchParams struct {
	maxTiles int // Longest placement attempted
	budget   int // Total candidate placements validated
}

// searchPlays runs a bounded randomized search over anchor positions and rack
// orderings, validating each geometric candidate against the real move
// checks. visit receives every legal play found and returns whether to keep
// searching.
func searchPlays(
	ctx context.Context,
	turn *room.BotTurn,
	validator validation.ServiceInterface,
	rnd random.Random,
	params searchParams,
	visit func(placed []model.PlacedTile, result *validation.PlayResult) bool,
) error {
	anchorList := anchors(turn.Board, turn.FirstMove)
	if len(anchorList) == 0 || len(turn.Rack) == 0 {
		return nil
	}

	maxTiles := params.maxTiles
	if maxTiles > len(turn.Rack) {
		maxTiles = len(turn.Rack)
	}
	minTiles := 1
	if turn.FirstMove {
		// Opening play must put down at least two tiles
		minTiles = 2
	}

	for attempt := 0; attempt < params.budget; attempt++ {
		if err := ctx.Err(); err != nil {
			return err
		}

		anchor := anchorList[rnd.Intn(len(anchorList))]
		horizontal := rnd.Intn(2) == 0
		count := minTiles
		if maxTiles > minTiles {
			count = minTiles + rnd.Intn(maxTiles-minTiles+1)
		}
		if count > len(turn.Rack) {
			continue
		}
		back := rnd.Intn(count)

		tiles := pickTiles(turn.Rack, count, rnd)
		placed, ok := layTiles(turn.Board, anchor, horizontal, back, count, tiles)
		if !ok {
			continue
		}

		result, err := validator.ValidatePlay(ctx, validation.PlayInput{
			Board:        turn.Board,
			Rack:         turn.Rack,
			Placed:       placed,
			FirstMove:    turn.FirstMove,
			DictionaryID: turn.DictionaryID,
		})
		if err != nil {
			if _, invalid := asInvalidMove(err); invalid {
				continue
			}
			return err
		}

		if !visit(placed, result) {
			return nil
		}
	}
	return nil
}

// pickTiles returns count distinct rack tiles in random order. Blanks are
// assigned a random common letter.
func pickTiles(rack []model.Tile, count int, rnd random.Random) []model.Tile {
	idx := make([]int, len(rack))
	for i := range idx {
		idx[i] = i
	}
	for i := len(idx) - 1; i > 0; i-- {
		j := rnd.Intn(i + 1)
		idx[i], idx[j] = idx[j], idx[i]
	}

	tiles := make([]model.Tile, count)
	for i := 0; i < count; i++ {
		t := rack[idx[i]]
		if t.Blank && (t.Letter == 0 || t.Letter == model.BlankRune) {
			const common = "AEIONRST"
			t.Letter = rune(common[rnd.Intn(len(common))])
		}
		tiles[i] = t
	}
	return tiles
}

// asInvalidMove reports whether err is a move rejection rather than an
// infrastructure failure
func asInvalidMove(err error) (error, bool) {
	if err == nil {
		return nil, false
	}
	if errors.Is(err, model.ErrInvalidPlacement) || errors.Is(err, model.ErrRackMismatch) {
		return err, true
	}
	var invalidWord *model.InvalidWordError
	if errors.As(err, &invalidWord) {
		return err, true
	}
	return err, false
}
