package redis

import "github.com/HannanLK/code-red-server/internal/model"

// Key prefixes for all stored data. Dictionaries are Redis sets so word
// lookups are a single SISMEMBER; everything else is a JSON value.
const (
	keyPrefix = "codered:"
)

func dictionaryKey(dictionaryID string) string {
	return keyPrefix + "dict:" + dictionaryID
}

func boardConfigKey(configID string) string {
	return keyPrefix + "board:" + configID
}

func distributionKey(langID string) string {
	return keyPrefix + "tiles:" + langID
}

func summaryKey(roomID model.RoomID) string {
	return keyPrefix + "summary:" + string(roomID)
}
