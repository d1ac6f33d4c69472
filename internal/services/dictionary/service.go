package dictionary

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"sync"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/storage"
)

// DefaultDictionaryID is the dictionary used when a room doesn't specify one
const DefaultDictionaryID = "en"

// DefaultCacheSize bounds the recent-result cache
const DefaultCacheSize = 4096

// Service is the word oracle: it answers whether a word is playable in a
// given dictionary. Lookups go to the storage collaborator; a bounded
// recent-result cache sits in front purely as an optimization and is safe to
// clear at any time.
type Service struct {
	storage storage.Storage
	logger  *slog.Logger

	mu        sync.Mutex
	cache     map[cacheKey]bool
	order     []cacheKey // insertion order for recency-based eviction
	cacheSize int
}

type cacheKey struct {
	dictionaryID string
	word         string
}

// New creates a new dictionary Service
func New(store storage.Storage, logger *slog.Logger) *Service {
	return &Service{
		storage:   store,
		logger:    logger.With(slog.String("component", "dictionary")),
		cache:     make(map[cacheKey]bool),
		cacheSize: DefaultCacheSize,
	}
}

// IsValid reports whether word exists in the given dictionary. Words shorter
// than 2 letters are never valid. If the lookup collaborator fails, the error
// is ErrDictionaryUnavailable: callers must reject the move rather than guess.
func (s *Service) IsValid(ctx context.Context, dictionaryID, word string) (bool, error) {
	normalized := strings.ToUpper(strings.TrimSpace(word))
	if len(normalized) < 2 {
		return false, nil
	}

	key := cacheKey{dictionaryID: dictionaryID, word: normalized}

	s.mu.Lock()
	if valid, ok := s.cache[key]; ok {
		s.mu.Unlock()
		return valid, nil
	}
	s.mu.Unlock()

	valid, err := s.storage.HasDictionaryWord(ctx, dictionaryID, normalized)
	if err != nil {
		s.logger.Warn("dictionary lookup failed",
			slog.String("dictionary_id", dictionaryID),
			slog.String("word", normalized),
			slog.String("error", err.Error()),
		)
		if errors.Is(err, model.ErrDictionaryNotFound) {
			return false, fmt.Errorf("%w: %s", model.ErrDictionaryNotFound, dictionaryID)
		}
		return false, model.ErrDictionaryUnavailable
	}

	s.mu.Lock()
	s.put(key, valid)
	s.mu.Unlock()

	return valid, nil
}

// put inserts a result, evicting the oldest entries past the size bound.
// Caller holds s.mu.
func (s *Service) put(key cacheKey, valid bool) {
	if _, ok := s.cache[key]; !ok {
		s.order = append(s.order, key)
	}
	s.cache[key] = valid

	for len(s.cache) > s.cacheSize && len(s.order) > 0 {
		oldest := s.order[0]
		s.order = s.order[1:]
		delete(s.cache, oldest)
	}
}

// ClearCache drops all cached results. Validity is unaffected; the next
// lookup for each word goes back to storage.
func (s *Service) ClearCache() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[cacheKey]bool)
	s.order = nil
}

// CacheLen returns the number of cached results
func (s *Service) CacheLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.cache)
}

// LoadFromFile loads a word list (one word per line) into storage under the
// given dictionary id
func (s *Service) LoadFromFile(ctx context.Context, dictionaryID, path string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var words []string
	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		word := strings.TrimSpace(scanner.Text())
		if word != "" {
			words = append(words, word)
		}
	}
	if err := scanner.Err(); err != nil {
		return err
	}

	if err := s.storage.SaveDictionaryWords(ctx, dictionaryID, words); err != nil {
		return err
	}

	s.logger.Info("dictionary loaded",
		slog.String("dictionary_id", dictionaryID),
		slog.String("path", path),
		slog.Int("words", len(words)),
	)

	return nil
}

// LoadWords saves a word slice into storage under the given dictionary id
// (useful for tests and seeding)
func (s *Service) LoadWords(ctx context.Context, dictionaryID string, words []string) error {
	return s.storage.SaveDictionaryWords(ctx, dictionaryID, words)
}

// Interface for dependency injection
type ServiceInterface interface {
	IsValid(ctx context.Context, dictionaryID, word string) (bool, error)
	ClearCache()
	LoadFromFile(ctx context.Context, dictionaryID, path string) error
	LoadWords(ctx context.Context, dictionaryID string, words []string) error
}

var _ ServiceInterface = (*Service)(nil)
