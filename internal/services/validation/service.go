package validation

import (
	"context"
	"log/slog"
	"strings"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/dictionary"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
)

// MinExchangeBagCount: exchanges are only legal while the bag holds at least
// a full rack's worth of tiles
const MinExchangeBagCount = 7

// Service validates candidate moves against board geometry, rack contents and
// the word oracle, and computes the score for legal plays. It never mutates
// the board or rack; the room applies a PlayResult under its own lock so
// validation and application cannot be interleaved by another writer.
type Service struct {
	dict    dictionary.ServiceInterface
	scoring *scoring.Service
	logger  *slog.Logger
}

// New creates a new validation Service
func New(dict dictionary.ServiceInterface, scoringService *scoring.Service, logger *slog.Logger) *Service {
	return &Service{
		dict:    dict,
		scoring: scoringService,
		logger:  logger.With(slog.String("component", "validation")),
	}
}

// PlayInput is a candidate play move plus the state it is validated against
type PlayInput struct {
	Board        *model.Board
	Rack         []model.Tile
	Placed       []model.PlacedTile
	FirstMove    bool
	DictionaryID string
}

// PlayResult describes a legal play: the words it forms and its score
type PlayResult struct {
	Words []model.FormedWord
	Score int
}

// WordStrings returns just the words formed, for the move record
func (r *PlayResult) WordStrings() []string {
	words := make([]string, len(r.Words))
	for i, w := range r.Words {
		words[i] = w.Word
	}
	return words
}

// ValidatePlay checks a play move. Checks short-circuit in order: placement
// geometry, rack contents, formed words against the oracle, then scoring.
// A dictionary failure propagates as ErrDictionaryUnavailable, never as a
// silent approval.
func (s *Service) ValidatePlay(ctx context.Context, in PlayInput) (*PlayResult, error) {
	if err := s.checkPlacement(in); err != nil {
		return nil, err
	}

	if err := s.checkRack(in.Rack, in.Placed); err != nil {
		return nil, err
	}

	words := s.formedWords(in.Board, in.Placed)
	if len(words) == 0 {
		// A play must form at least one word of two or more letters
		return nil, model.ErrInvalidPlacement
	}

	for _, w := range words {
		valid, err := s.dict.IsValid(ctx, in.DictionaryID, w.Word)
		if err != nil {
			return nil, err
		}
		if !valid {
			return nil, &model.InvalidWordError{Word: w.Word}
		}
	}

	return &PlayResult{
		Words: words,
		Score: s.scoring.ScorePlay(in.Board, words, len(in.Placed)),
	}, nil
}

// ValidateExchange checks an exchange move: the bag must hold at least seven
// tiles and every exchanged tile must be in the rack
func (s *Service) ValidateExchange(rack []model.Tile, exchanged []model.Tile, bagCount int) error {
	if len(exchanged) == 0 || len(exchanged) > model.RackSize {
		return model.ErrExchangeNotAllowed
	}
	if bagCount < MinExchangeBagCount {
		return model.ErrExchangeNotAllowed
	}

	remaining := rack
	for _, t := range exchanged {
		var ok bool
		remaining, ok = model.RemoveFromRack(remaining, t)
		if !ok {
			return model.ErrExchangeNotAllowed
		}
	}
	return nil
}

// RevalidateWords re-checks previously committed words against the oracle,
// returning the first failing word. Used to resolve challenges.
func (s *Service) RevalidateWords(ctx context.Context, dictionaryID string, words []string) (string, error) {
	for _, w := range words {
		valid, err := s.dict.IsValid(ctx, dictionaryID, w)
		if err != nil {
			return "", err
		}
		if !valid {
			return w, nil
		}
	}
	return "", nil
}

// checkPlacement verifies geometry: tiles land on empty in-bounds cells, form
// one contiguous line, and either cover the center (first move) or connect to
// an existing tile
func (s *Service) checkPlacement(in PlayInput) error {
	placed := in.Placed
	if len(placed) == 0 || len(placed) > model.RackSize {
		return model.ErrInvalidPlacement
	}

	seen := make(map[model.Position]bool, len(placed))
	for _, pt := range placed {
		if !in.Board.InBounds(pt.Pos) || !in.Board.IsEmpty(pt.Pos) {
			return model.ErrInvalidPlacement
		}
		if seen[pt.Pos] {
			return model.ErrInvalidPlacement
		}
		seen[pt.Pos] = true
		if pt.Tile.Blank && pt.Tile.Letter == 0 {
			// Blanks must be played as a specific letter
			return model.ErrInvalidPlacement
		}
	}

	sameRow, sameCol := true, true
	for _, pt := range placed[1:] {
		if pt.Pos.Row != placed[0].Pos.Row {
			sameRow = false
		}
		if pt.Pos.Col != placed[0].Pos.Col {
			sameCol = false
		}
	}
	if !sameRow && !sameCol {
		return model.ErrInvalidPlacement
	}

	// The line from the first to the last placed tile must be fully occupied
	// once the new tiles are counted
	minPos, maxPos := placed[0].Pos, placed[0].Pos
	for _, pt := range placed[1:] {
		if pt.Pos.Row < minPos.Row || pt.Pos.Col < minPos.Col {
			minPos = pt.Pos
		}
		if pt.Pos.Row > maxPos.Row || pt.Pos.Col > maxPos.Col {
			maxPos = pt.Pos
		}
	}
	for pos := minPos; pos.Row <= maxPos.Row && pos.Col <= maxPos.Col; {
		if in.Board.IsEmpty(pos) && !seen[pos] {
			return model.ErrInvalidPlacement
		}
		if sameRow && (maxPos.Col > minPos.Col || !sameCol) {
			pos.Col++
		} else {
			pos.Row++
		}
	}

	if in.FirstMove {
		center := in.Board.Center()
		if !seen[center] {
			return model.ErrInvalidPlacement
		}
		if len(placed) < 2 {
			return model.ErrInvalidPlacement
		}
		return nil
	}

	// Subsequent moves must connect to what's already on the board
	for _, pt := range placed {
		if in.Board.HasNeighbor(pt.Pos) {
			return nil
		}
	}
	return model.ErrInvalidPlacement
}

// checkRack verifies every placed tile is actually held by the player
func (s *Service) checkRack(rack []model.Tile, placed []model.PlacedTile) error {
	remaining := rack
	for _, pt := range placed {
		var ok bool
		remaining, ok = model.RemoveFromRack(remaining, pt.Tile)
		if !ok {
			return model.ErrRackMismatch
		}
	}
	return nil
}

// formedWords collects the main word and every perpendicular cross-word of
// two or more letters
func (s *Service) formedWords(board *model.Board, placed []model.PlacedTile) []model.FormedWord {
	overlay := make(map[model.Position]model.Tile, len(placed))
	for _, pt := range placed {
		overlay[pt.Pos] = pt.Tile
	}

	horizontal := true
	if len(placed) > 1 && placed[0].Pos.Col == placed[1].Pos.Col {
		horizontal = false
	}

	var words []model.FormedWord

	// Main word along the placement line
	if w, ok := s.wordThrough(board, overlay, placed[0].Pos, horizontal); ok {
		words = append(words, w)
	}

	// Cross-words: perpendicular run through each placed tile
	for _, pt := range placed {
		if w, ok := s.wordThrough(board, overlay, pt.Pos, !horizontal); ok {
			words = append(words, w)
		}
	}

	// A single tile can extend a word in either direction; if the main
	// direction produced nothing, the cross pass above already covered the
	// other axis
	return words
}

// wordThrough expands from pos along the given axis across both existing and
// newly placed tiles. Returns false for runs shorter than two letters.
func (s *Service) wordThrough(board *model.Board, overlay map[model.Position]model.Tile, pos model.Position, horizontal bool) (model.FormedWord, bool) {
	dr, dc := 0, 1
	if !horizontal {
		dr, dc = 1, 0
	}

	tileAt := func(p model.Position) (model.Tile, bool, bool) {
		if t, ok := overlay[p]; ok {
			return t, true, true
		}
		if t := board.TileAt(p); t != nil {
			return *t, true, false
		}
		return model.Tile{}, false, false
	}

	start := pos
	for {
		prev := model.Position{Row: start.Row - dr, Col: start.Col - dc}
		if _, ok, _ := tileAt(prev); !ok {
			break
		}
		start = prev
	}

	var sb strings.Builder
	var cells []model.WordCell
	for p := start; ; p = (model.Position{Row: p.Row + dr, Col: p.Col + dc}) {
		t, ok, isNew := tileAt(p)
		if !ok {
			break
		}
		sb.WriteRune(t.Letter)
		cells = append(cells, model.WordCell{Pos: p, Tile: t, New: isNew})
	}

	if len(cells) < 2 {
		return model.FormedWord{}, false
	}
	return model.FormedWord{Word: sb.String(), Cells: cells}, true
}

// Interface for dependency injection
type ServiceInterface interface {
	ValidatePlay(ctx context.Context, in PlayInput) (*PlayResult, error)
	ValidateExchange(rack []model.Tile, exchanged []model.Tile, bagCount int) error
	RevalidateWords(ctx context.Context, dictionaryID string, words []string) (string, error)
}

var _ ServiceInterface = (*Service)(nil)
