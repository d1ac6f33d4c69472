package bot

import (
	"time"

	"github.com/HannanLK/code-red-server/internal/model"
)

// Catalog lists the automated opponents players can invite into a room
var Catalog = []model.BotInfo{
	{
		ID:          "robo-rookie",
		Name:        "Robo Rookie",
		Difficulty:  model.BotDifficultyBeginner,
		Avatar:      "🤖",
		Description: "A friendly starter bot that plays simple words",
		WinRate:     0.25,
	},
	{
		ID:          "clevertron",
		Name:        "Clevertron",
		Difficulty:  model.BotDifficultyEasy,
		Avatar:      "🦾",
		Description: "Knows its way around a rack but misses the big plays",
		WinRate:     0.45,
	},
	{
		ID:          "lexibot",
		Name:        "LexiBot",
		Difficulty:  model.BotDifficultyMedium,
		Avatar:      "🧠",
		Description: "Hunts for premium squares and longer words",
		WinRate:     0.65,
	},
}

// Lookup returns the catalog entry with the given id
func Lookup(id string) (model.BotInfo, bool) {
	for _, b := range Catalog {
		if b.ID == id {
			return b, true
		}
	}
	return model.BotInfo{}, false
}

// delayRange is a difficulty's simulated think time
type delayRange struct {
	min, max time.Duration
}

var thinkDelays = map[model.BotDifficulty]delayRange{
	model.BotDifficultyBeginner: {2 * time.Second, 3 * time.Second},
	model.BotDifficultyEasy:     {2500 * time.Millisecond, 4 * time.Second},
	model.BotDifficultyMedium:   {3 * time.Second, 5 * time.Second},
}

// thinkDelay returns the delay bounds for a difficulty, defaulting to the
// beginner range for unknown values
func thinkDelay(d model.BotDifficulty) delayRange {
	if r, ok := thinkDelays[d]; ok {
		return r
	}
	return thinkDelays[model.BotDifficultyBeginner]
}
