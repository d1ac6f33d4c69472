package factory

import (
	"context"
	"time"

	"github.com/HannanLK/code-red-server/internal/dependencies/mocks"
	"github.com/HannanLK/code-red-server/internal/services/room"
	"github.com/HannanLK/code-red-server/internal/storage/memory"
)

// TestApp extends App with test-specific helpers
type TestApp struct {
	*App

	// Mocks for test control
	MockClock  *mocks.MockClock
	MockRandom *mocks.MockRandom
}

// NewTestApp creates an App configured for testing with mocked dependencies
func NewTestApp() *TestApp {
	return NewTestAppWithConfig(room.DefaultConfig())
}

// NewTestAppWithConfig creates a test App with custom room settings
func NewTestAppWithConfig(roomCfg room.Config) *TestApp {
	store := memory.New()
	mockClock := mocks.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	mockRandom := mocks.NewMockRandom()

	app := newWithDependencies(store, mockClock, mockRandom, roomCfg, nil)

	return &TestApp{
		App:        app,
		MockClock:  mockClock,
		MockRandom: mockRandom,
	}
}

// LoadTestDictionary loads a small word list for testing
func (t *TestApp) LoadTestDictionary() error {
	words := []string{
		// 2-letter words
		"AT", "BE", "DO", "GO", "HE", "IF", "IN", "IS", "IT", "ME",
		"MY", "NO", "OF", "ON", "OR", "SO", "TO", "UP", "US", "WE",
		// 3-letter words
		"ACT", "AND", "ANT", "ARE", "ARM", "ART", "ATE", "BAT", "BED", "BEE",
		"CAB", "CAN", "CAR", "CAT", "COT", "DOG", "EAR", "EAT", "FAN", "FAR",
		"HAT", "HEN", "HIT", "ICE", "INK", "LOG", "MAN", "MAP", "MAT", "NET",
		"NOT", "OAT", "ONE", "PAN", "PAT", "PEN", "PET", "RAT", "RED", "RUN",
		"SAT", "SEA", "SET", "SIT", "SUN", "TAN", "TAP", "TAR", "TEA", "TEN",
		"TIN", "TOE", "TON", "TOP", "USE", "VAN", "WAR", "WAS", "WET", "WIN",
		// 4-letter words
		"ABLE", "AREA", "BEAR", "BEAT", "CARE", "CASE", "CATS", "DATE", "DEAR", "EACH",
		"EARN", "EAST", "FACE", "FACT", "GAME", "GATE", "HAND", "HEAT", "LANE", "LATE",
		"MATE", "NEAR", "NEAT", "NOTE", "RACE", "RATE", "REAL", "REST", "SEAT", "STAR",
		"TALE", "TEAM", "TEAR", "TENT", "TONE", "TREE", "WEAR", "WEST", "WORD", "ZONE",
		// 5-letter words
		"ABOUT", "ARENA", "CARES", "CRANE", "EARTH", "GAMES", "GREAT", "HEART", "LATER",
		"NOTES", "RATES", "REACT", "SCENE", "STARE", "STONE", "TEARS", "TRACE", "WATER",
	}
	return t.DictionaryService.LoadWords(context.Background(), "en", words)
}
