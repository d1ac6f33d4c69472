package storage

import (
	"context"

	"github.com/HannanLK/code-red-server/internal/model"
)

// Storage is the persistence collaborator consumed by the engine. The engine
// owns live game state in memory; this interface covers reference data
// (dictionaries, board configs, tile distributions) and archived summaries.
// Schema, migrations and durable move history are the collaborator's problem.
type Storage interface {
	// Dictionary operations
	HasDictionaryWord(ctx context.Context, dictionaryID, word string) (bool, error)
	SaveDictionaryWords(ctx context.Context, dictionaryID string, words []string) error
	DictionaryWordCount(ctx context.Context, dictionaryID string) (int, error)

	// Board config operations
	GetBoardConfig(ctx context.Context, configID string) (model.BoardConfig, error)
	SaveBoardConfig(ctx context.Context, configID string, config model.BoardConfig) error

	// Tile distribution operations
	GetTileDistribution(ctx context.Context, langID string) (model.TileDistribution, error)
	SaveTileDistribution(ctx context.Context, langID string, dist model.TileDistribution) error

	// Game summary operations
	SaveGameSummary(ctx context.Context, summary *model.GameSummary) error
	GetGameSummary(ctx context.Context, roomID model.RoomID) (*model.GameSummary, error)
}
