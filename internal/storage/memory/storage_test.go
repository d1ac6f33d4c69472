package memory

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/HannanLK/code-red-server/internal/model"
)

type StorageSuite struct {
	suite.Suite
	storage *Storage
	ctx     context.Context
}

func TestStorageSuite(t *testing.T) {
	suite.Run(t, new(StorageSuite))
}

func (s *StorageSuite) SetupTest() {
	s.storage = New()
	s.ctx = context.Background()
}

func (s *StorageSuite) TestSaveAndLookupDictionaryWords() {
	err := s.storage.SaveDictionaryWords(s.ctx, "en", []string{"cat", " DOG "})
	s.Require().NoError(err)

	found, err := s.storage.HasDictionaryWord(s.ctx, "en", "cat")
	s.Require().NoError(err)
	s.True(found)

	found, err = s.storage.HasDictionaryWord(s.ctx, "en", "DOG")
	s.Require().NoError(err)
	s.True(found)

	found, err = s.storage.HasDictionaryWord(s.ctx, "en", "FISH")
	s.Require().NoError(err)
	s.False(found)
}

func (s *StorageSuite) TestLookupMissingDictionary() {
	_, err := s.storage.HasDictionaryWord(s.ctx, "nope", "CAT")
	s.True(errors.Is(err, model.ErrDictionaryNotFound))
}

func (s *StorageSuite) TestDictionaryWordCount() {
	err := s.storage.SaveDictionaryWords(s.ctx, "en", []string{"CAT", "DOG", "CAT"})
	s.Require().NoError(err)

	count, err := s.storage.DictionaryWordCount(s.ctx, "en")
	s.Require().NoError(err)
	s.Equal(2, count)

	_, err = s.storage.DictionaryWordCount(s.ctx, "nope")
	s.True(errors.Is(err, model.ErrDictionaryNotFound))
}

func (s *StorageSuite) TestBoardConfigRoundTrip() {
	err := s.storage.SaveBoardConfig(s.ctx, "standard", model.DefaultBoardConfig())
	s.Require().NoError(err)

	config, err := s.storage.GetBoardConfig(s.ctx, "standard")
	s.Require().NoError(err)
	s.Equal(model.DefaultBoardConfig(), config)

	_, err = s.storage.GetBoardConfig(s.ctx, "nope")
	s.True(errors.Is(err, model.ErrBoardConfigNotFound))
}

func (s *StorageSuite) TestTileDistributionRoundTrip() {
	err := s.storage.SaveTileDistribution(s.ctx, "en", model.DefaultTileDistribution())
	s.Require().NoError(err)

	dist, err := s.storage.GetTileDistribution(s.ctx, "en")
	s.Require().NoError(err)
	s.Equal(model.DefaultTileDistribution(), dist)

	_, err = s.storage.GetTileDistribution(s.ctx, "nope")
	s.True(errors.Is(err, model.ErrDistributionNotFound))
}

func (s *StorageSuite) TestGameSummaryRoundTrip() {
	summary := &model.GameSummary{
		RoomID:      "ROOM01",
		Winner:      "player-1",
		Reason:      model.EndReasonPassLimit,
		FinalScores: map[model.PlayerID]int{"player-1": 42, "player-2": 40},
		Moves:       9,
	}

	err := s.storage.SaveGameSummary(s.ctx, summary)
	s.Require().NoError(err)

	got, err := s.storage.GetGameSummary(s.ctx, "ROOM01")
	s.Require().NoError(err)
	s.Equal(summary, got)

	_, err = s.storage.GetGameSummary(s.ctx, "NOSUCH")
	s.True(errors.Is(err, model.ErrSummaryNotFound))
}
