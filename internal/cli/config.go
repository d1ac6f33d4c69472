package cli

import (
	"os"
)

// Config holds CLI configuration
type Config struct {
	ServerURL string
	PlayerID  string
	Output    string
}

// DefaultConfig returns a Config with default values
func DefaultConfig() *Config {
	return &Config{
		ServerURL: getEnvOrDefault("CODERED_SERVER", "http://localhost:8080"),
		PlayerID:  os.Getenv("CODERED_PLAYER"),
		Output:    "text",
	}
}

func getEnvOrDefault(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
