package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/storage"
)

// Storage is an in-memory implementation of the storage interface
type Storage struct {
	mu sync.RWMutex

	dictionaries  map[string]map[string]struct{}
	boardConfigs  map[string]model.BoardConfig
	distributions map[string]model.TileDistribution
	summaries     map[model.RoomID]*model.GameSummary
}

// New creates a new in-memory storage instance
func New() *Storage {
	return &Storage{
		dictionaries:  make(map[string]map[string]struct{}),
		boardConfigs:  make(map[string]model.BoardConfig),
		distributions: make(map[string]model.TileDistribution),
		summaries:     make(map[model.RoomID]*model.GameSummary),
	}
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dictionary operations

func (s *Storage) HasDictionaryWord(ctx context.Context, dictionaryID, word string) (bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words, ok := s.dictionaries[dictionaryID]
	if !ok {
		return false, model.ErrDictionaryNotFound
	}
	_, ok = words[strings.ToUpper(word)]
	return ok, nil
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, dictionaryID string, words []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	set := make(map[string]struct{}, len(words))
	for _, w := range words {
		set[strings.ToUpper(strings.TrimSpace(w))] = struct{}{}
	}
	s.dictionaries[dictionaryID] = set
	return nil
}

func (s *Storage) DictionaryWordCount(ctx context.Context, dictionaryID string) (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	words, ok := s.dictionaries[dictionaryID]
	if !ok {
		return 0, model.ErrDictionaryNotFound
	}
	return len(words), nil
}

// Board config operations

func (s *Storage) GetBoardConfig(ctx context.Context, configID string) (model.BoardConfig, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	config, ok := s.boardConfigs[configID]
	if !ok {
		return nil, model.ErrBoardConfigNotFound
	}
	return config, nil
}

func (s *Storage) SaveBoardConfig(ctx context.Context, configID string, config model.BoardConfig) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.boardConfigs[configID] = config
	return nil
}

// Tile distribution operations

func (s *Storage) GetTileDistribution(ctx context.Context, langID string) (model.TileDistribution, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	dist, ok := s.distributions[langID]
	if !ok {
		return nil, model.ErrDistributionNotFound
	}
	return dist, nil
}

func (s *Storage) SaveTileDistribution(ctx context.Context, langID string, dist model.TileDistribution) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.distributions[langID] = dist
	return nil
}

// Game summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.summaries[summary.RoomID] = summary
	return nil
}

func (s *Storage) GetGameSummary(ctx context.Context, roomID model.RoomID) (*model.GameSummary, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	summary, ok := s.summaries[roomID]
	if !ok {
		return nil, model.ErrSummaryNotFound
	}
	return summary, nil
}
