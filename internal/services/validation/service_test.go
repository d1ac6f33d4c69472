package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/services/dictionary"
	"github.com/HannanLK/code-red-server/internal/services/scoring"
	"github.com/HannanLK/code-red-server/internal/storage/memory"
	"github.com/HannanLK/code-red-server/internal/testutil"
)

type ServiceSuite struct {
	suite.Suite
	dict    *dictionary.Service
	service *Service
	board   *model.Board
	ctx     context.Context
}

func TestServiceSuite(t *testing.T) {
	suite.Run(t, new(ServiceSuite))
}

func (s *ServiceSuite) SetupTest() {
	store := memory.New()
	s.dict = dictionary.New(store, testutil.NopLogger())
	s.service = New(s.dict, scoring.New(), testutil.NopLogger())
	s.board = model.NewBoard(model.DefaultBoardConfig())
	s.ctx = context.Background()

	err := s.dict.LoadWords(s.ctx, "en", []string{
		"CAT", "CATS", "AT", "TO", "ON", "TON", "NOTE", "SO", "SCATS",
	})
	s.Require().NoError(err)
}

func (s *ServiceSuite) tile(letter rune, points int) model.Tile {
	return model.Tile{Letter: letter, Points: points}
}

func (s *ServiceSuite) place(row, col int, letter rune, points int) model.PlacedTile {
	return model.PlacedTile{
		Pos:  model.Position{Row: row, Col: col},
		Tile: s.tile(letter, points),
	}
}

func (s *ServiceSuite) rack(letters string) []model.Tile {
	var rack []model.Tile
	for _, r := range letters {
		rack = append(rack, s.tile(r, 1))
	}
	return rack
}

func (s *ServiceSuite) TestOpeningPlayThroughCenter() {
	placed := []model.PlacedTile{
		s.place(7, 6, 'C', 3),
		s.place(7, 7, 'A', 1),
		s.place(7, 8, 'T', 1),
	}

	result, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("CATXYZQ"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.Require().NoError(err)
	s.Equal([]string{"CAT"}, result.WordStrings())
	s.Equal(10, result.Score) // (3+1+1) x 2 for the center star
}

func (s *ServiceSuite) TestOpeningPlayMustCoverCenter() {
	placed := []model.PlacedTile{
		s.place(0, 0, 'C', 3),
		s.place(0, 1, 'A', 1),
		s.place(0, 2, 'T', 1),
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("CAT"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) TestOpeningPlayNeedsTwoTiles() {
	placed := []model.PlacedTile{s.place(7, 7, 'A', 1)}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("A"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) seedBoardCAT() {
	// CAT across row 7, cols 6-8
	s.board.Place(model.Position{Row: 7, Col: 6}, s.tile('C', 3))
	s.board.Place(model.Position{Row: 7, Col: 7}, s.tile('A', 1))
	s.board.Place(model.Position{Row: 7, Col: 8}, s.tile('T', 1))
}

func (s *ServiceSuite) TestExtendExistingWord() {
	s.seedBoardCAT()

	// Append S to make CATS
	placed := []model.PlacedTile{s.place(7, 9, 'S', 1)}

	result, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("SXYZ"),
		Placed:       placed,
		FirstMove:    false,
		DictionaryID: "en",
	})

	s.Require().NoError(err)
	s.Equal([]string{"CATS"}, result.WordStrings())
}

func (s *ServiceSuite) TestCrossWordsAreFormedAndChecked() {
	s.seedBoardCAT()

	// TON down from (7,8)'s T: place O and N below it
	placed := []model.PlacedTile{
		s.place(8, 8, 'O', 1),
		s.place(9, 8, 'N', 1),
	}

	result, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("ON"),
		Placed:       placed,
		FirstMove:    false,
		DictionaryID: "en",
	})

	s.Require().NoError(err)
	s.Equal([]string{"TON"}, result.WordStrings())
}

func (s *ServiceSuite) TestInvalidWordRejected() {
	s.seedBoardCAT()

	// CATX is not a word
	placed := []model.PlacedTile{s.place(7, 9, 'X', 8)}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("X"),
		Placed:       placed,
		FirstMove:    false,
		DictionaryID: "en",
	})

	var invalidWord *model.InvalidWordError
	s.Require().True(errors.As(err, &invalidWord))
	s.Equal("CATX", invalidWord.Word)
}

func (s *ServiceSuite) TestDisconnectedPlacementRejected() {
	s.seedBoardCAT()

	placed := []model.PlacedTile{
		s.place(0, 0, 'T', 1),
		s.place(0, 1, 'O', 1),
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("TO"),
		Placed:       placed,
		FirstMove:    false,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) TestNonLinearPlacementRejected() {
	placed := []model.PlacedTile{
		s.place(7, 7, 'C', 3),
		s.place(8, 8, 'A', 1),
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("CA"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) TestGappedPlacementRejected() {
	placed := []model.PlacedTile{
		s.place(7, 6, 'C', 3),
		s.place(7, 7, 'A', 1),
		s.place(7, 9, 'T', 1), // gap at col 8
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("CAT"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) TestGapFilledByExistingTilesAccepted() {
	s.seedBoardCAT()

	// S.A.T.S around the existing CAT: the gap is bridged by board tiles
	placed := []model.PlacedTile{
		s.place(7, 5, 'S', 1),
		s.place(7, 9, 'S', 1),
	}

	result, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("SS"),
		Placed:       placed,
		FirstMove:    false,
		DictionaryID: "en",
	})

	s.Require().NoError(err)
	s.Equal([]string{"SCATS"}, result.WordStrings())
}

func (s *ServiceSuite) TestOccupiedCellRejected() {
	s.seedBoardCAT()

	placed := []model.PlacedTile{s.place(7, 7, 'X', 8)}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("X"),
		Placed:       placed,
		FirstMove:    false,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) TestTilesNotInRackRejected() {
	placed := []model.PlacedTile{
		s.place(7, 7, 'C', 3),
		s.place(7, 8, 'A', 1),
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("XYZ"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrRackMismatch))
}

func (s *ServiceSuite) TestUnassignedBlankRejected() {
	placed := []model.PlacedTile{
		s.place(7, 7, 'C', 3),
		{Pos: model.Position{Row: 7, Col: 8}, Tile: model.Tile{Blank: true}},
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         append(s.rack("C"), model.Tile{Blank: true}),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "en",
	})

	s.True(errors.Is(err, model.ErrInvalidPlacement))
}

func (s *ServiceSuite) TestDictionaryFailureRejectsMove() {
	placed := []model.PlacedTile{
		s.place(7, 7, 'C', 3),
		s.place(7, 8, 'A', 1),
		s.place(7, 9, 'T', 1),
	}

	_, err := s.service.ValidatePlay(s.ctx, PlayInput{
		Board:        s.board,
		Rack:         s.rack("CAT"),
		Placed:       placed,
		FirstMove:    true,
		DictionaryID: "missing",
	})

	s.True(errors.Is(err, model.ErrDictionaryNotFound))
}

func (s *ServiceSuite) TestValidateExchange() {
	rack := s.rack("ABCDEFG")

	s.NoError(s.service.ValidateExchange(rack, s.rack("ABC"), 50))
}

func (s *ServiceSuite) TestExchangeNeedsSevenBagTiles() {
	rack := s.rack("ABCDEFG")

	err := s.service.ValidateExchange(rack, s.rack("A"), 6)
	s.True(errors.Is(err, model.ErrExchangeNotAllowed))

	s.NoError(s.service.ValidateExchange(rack, s.rack("A"), 7))
}

func (s *ServiceSuite) TestExchangeTilesMustBeHeld() {
	rack := s.rack("ABCDEFG")

	err := s.service.ValidateExchange(rack, s.rack("AAZ"), 50)
	s.True(errors.Is(err, model.ErrExchangeNotAllowed))
}

func (s *ServiceSuite) TestExchangeEmptyOrOversized() {
	rack := s.rack("ABCDEFG")

	s.Error(s.service.ValidateExchange(rack, nil, 50))
	s.Error(s.service.ValidateExchange(rack, s.rack("ABCDEFGH"), 50))
}

func (s *ServiceSuite) TestRevalidateWordsFindsOffender() {
	offender, err := s.service.RevalidateWords(s.ctx, "en", []string{"CAT", "QXZ"})
	s.Require().NoError(err)
	s.Equal("QXZ", offender)

	offender, err = s.service.RevalidateWords(s.ctx, "en", []string{"CAT", "TO"})
	s.Require().NoError(err)
	s.Equal("", offender)
}
