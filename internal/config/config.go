package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds process-level settings
type Config struct {
	Port         string
	MongoURI     string
	MongoDB      string
	RedisURI     string
	JWTSecret    string
	WordListPath string
	LogLevel     string
	LogFormat    string
	MaxRoomSize  int
	Game         *GameConfig
}

// Load reads .env (when present) and then the environment
func Load() *Config {
	// a missing .env is fine, the environment still applies
	_ = godotenv.Load()

	return &Config{
		Port:         getEnv("PORT", "8080"),
		MongoURI:     getEnv("MONGO_URI", ""),
		MongoDB:      getEnv("MONGO_DB", "drawit"),
		RedisURI:     getEnv("REDIS_URI", ""),
		JWTSecret:    getEnv("JWT_SECRET", "super-secret-key-change-in-production"),
		WordListPath: getEnv("WORDLIST_PATH", "resources/wordlist.txt"),
		LogLevel:     getEnv("LOG_LEVEL", "info"),
		LogFormat:    getEnv("LOG_FORMAT", "console"),
		MaxRoomSize:  getEnvInt("MAX_ROOM_SIZE", 8),
		Game:         DefaultGameConfig(),
	}
}

// RedisAddr strips an optional redis:// prefix
func (c *Config) RedisAddr() string {
	return strings.TrimPrefix(c.RedisURI, "redis://")
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	val := os.Getenv(key)
	if val == "" {
		return defaultVal
	}
	n, err := strconv.Atoi(val)
	if err != nil {
		return defaultVal
	}
	return n
}
