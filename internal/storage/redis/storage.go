package redis

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/HannanLK/code-red-server/internal/model"
	"github.com/HannanLK/code-red-server/internal/storage"
)

// Storage is a Redis-backed implementation of the storage interface
type Storage struct {
	client *redis.Client
	cfg    Config
}

// New creates a new Redis storage instance
func New(cfg Config) (*Storage, error) {
	opts, err := redis.ParseURL(cfg.URL)
	if err != nil {
		return nil, err
	}

	opts.PoolSize = cfg.PoolSize
	opts.MinIdleConns = cfg.MinIdleConns

	client := redis.NewClient(opts)

	// Verify connection
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, err
	}

	return &Storage{
		client: client,
		cfg:    cfg,
	}, nil
}

// NewWithClient creates a Redis storage with an existing client (for testing)
func NewWithClient(client *redis.Client, cfg Config) *Storage {
	return &Storage{
		client: client,
		cfg:    cfg,
	}
}

// Close closes the Redis connection
func (s *Storage) Close() error {
	return s.client.Close()
}

// Ensure Storage implements the interface
var _ storage.Storage = (*Storage)(nil)

// Dictionary operations

func (s *Storage) HasDictionaryWord(ctx context.Context, dictionaryID, word string) (bool, error) {
	lookupCtx := ctx
	if s.cfg.LookupTimeout > 0 {
		var cancel context.CancelFunc
		lookupCtx, cancel = context.WithTimeout(ctx, s.cfg.LookupTimeout)
		defer cancel()
	}

	key := dictionaryKey(dictionaryID)

	exists, err := s.client.Exists(lookupCtx, key).Result()
	if err != nil {
		return false, err
	}
	if exists == 0 {
		return false, model.ErrDictionaryNotFound
	}

	return s.client.SIsMember(lookupCtx, key, strings.ToUpper(word)).Result()
}

func (s *Storage) SaveDictionaryWords(ctx context.Context, dictionaryID string, words []string) error {
	key := dictionaryKey(dictionaryID)

	members := make([]interface{}, 0, len(words))
	for _, w := range words {
		members = append(members, strings.ToUpper(strings.TrimSpace(w)))
	}

	// Replace atomically: delete then re-add in one pipeline
	pipe := s.client.Pipeline()
	pipe.Del(ctx, key)
	// SADD in chunks to keep individual commands bounded
	const chunk = 5000
	for start := 0; start < len(members); start += chunk {
		end := start + chunk
		if end > len(members) {
			end = len(members)
		}
		pipe.SAdd(ctx, key, members[start:end]...)
	}
	_, err := pipe.Exec(ctx)
	return err
}

func (s *Storage) DictionaryWordCount(ctx context.Context, dictionaryID string) (int, error) {
	key := dictionaryKey(dictionaryID)
	count, err := s.client.SCard(ctx, key).Result()
	if err != nil {
		return 0, err
	}
	if count == 0 {
		return 0, model.ErrDictionaryNotFound
	}
	return int(count), nil
}

// Board config operations

func (s *Storage) GetBoardConfig(ctx context.Context, configID string) (model.BoardConfig, error) {
	data, err := s.client.Get(ctx, boardConfigKey(configID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrBoardConfigNotFound
		}
		return nil, err
	}

	var config model.BoardConfig
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, err
	}
	return config, nil
}

func (s *Storage) SaveBoardConfig(ctx context.Context, configID string, config model.BoardConfig) error {
	data, err := json.Marshal(config)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, boardConfigKey(configID), data, 0).Err()
}

// Tile distribution operations

func (s *Storage) GetTileDistribution(ctx context.Context, langID string) (model.TileDistribution, error) {
	data, err := s.client.Get(ctx, distributionKey(langID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrDistributionNotFound
		}
		return nil, err
	}

	var dist model.TileDistribution
	if err := json.Unmarshal(data, &dist); err != nil {
		return nil, err
	}
	return dist, nil
}

func (s *Storage) SaveTileDistribution(ctx context.Context, langID string, dist model.TileDistribution) error {
	data, err := json.Marshal(dist)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, distributionKey(langID), data, 0).Err()
}

// Game summary operations

func (s *Storage) SaveGameSummary(ctx context.Context, summary *model.GameSummary) error {
	data, err := json.Marshal(summary)
	if err != nil {
		return err
	}
	return s.client.Set(ctx, summaryKey(summary.RoomID), data, s.cfg.SummaryTTL).Err()
}

func (s *Storage) GetGameSummary(ctx context.Context, roomID model.RoomID) (*model.GameSummary, error) {
	data, err := s.client.Get(ctx, summaryKey(roomID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, model.ErrSummaryNotFound
		}
		return nil, err
	}

	var summary model.GameSummary
	if err := json.Unmarshal(data, &summary); err != nil {
		return nil, err
	}
	return &summary, nil
}
