// internal/config/config.go
//
// Application configuration, read from the environment after loading an
// optional .env file.
//
// Environment variables (defaults in brackets):
//   PORT [5175]                 HTTP listen port
//   LOG_LEVEL [info]            zerolog level
//   LOG_FILE []                 terminal player log file (empty: discard)
//   DB_PATH [./data/catalog.db] SQLite puzzle catalog
//   GRID_SIZE [12]              default grid side (at most words.MaxSize)
//   PLACEMENT_ATTEMPTS [100]    random draws per word
//   REGENERATIONS [5]           full grid rebuilds while words stay unplaced
//   WORDS_FILE []               puzzle YAML overriding the built-in puzzles
//   JWT_SECRET [dev_secret_change_me]
//   JWT_EXPIRES_HOURS [24]      game token lifetime
//   DAILY_SALT [local_dev_salt] daily puzzle salt
//   CLIENT_ORIGIN [http://localhost:5173]
//   ADMIN_PASSWORD_HASH []      bcrypt hash guarding POST /puzzles (empty: import disabled)
//   SESSION_IDLE_MINUTES [120]  idle games are evicted after this long
//   APP_ENV []                  "production" marks cookies Secure + SameSite=None

package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"

	"github.com/fareslefou/mots-m-l-s-bourse/internal/words"
)

// Config holds the application configuration.
type Config struct {
	Port              string
	LogLevel          string
	LogFile           string
	DBPath            string
	GridSize          int
	Attempts          int
	Regenerations     int
	WordsFile         string
	JWTSecret         string
	TokenTTL          time.Duration
	DailySalt         string
	ClientOrigin      string
	AdminPasswordHash string
	SessionIdle       time.Duration
	Production        bool
}

// Load reads .env (if present) and the environment.
// Returns an error if a numeric variable does not parse or is out of range.
func Load() (Config, error) {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv reads the environment only.
func FromEnv() (Config, error) {
	c := Config{
		Port:              getEnv("PORT", "5175"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		LogFile:           os.Getenv("LOG_FILE"),
		DBPath:            getEnv("DB_PATH", "./data/catalog.db"),
		WordsFile:         os.Getenv("WORDS_FILE"),
		JWTSecret:         getEnv("JWT_SECRET", "dev_secret_change_me"),
		DailySalt:         getEnv("DAILY_SALT", "local_dev_salt"),
		ClientOrigin:      getEnv("CLIENT_ORIGIN", "http://localhost:5173"),
		AdminPasswordHash: os.Getenv("ADMIN_PASSWORD_HASH"),
		Production:        os.Getenv("APP_ENV") == "production",
	}

	var err error
	if c.GridSize, err = getEnvInt("GRID_SIZE", 12); err != nil {
		return c, err
	}
	if c.GridSize > words.MaxSize {
		return c, fmt.Errorf("config: GRID_SIZE must be at most %d, got %d", words.MaxSize, c.GridSize)
	}
	if c.Attempts, err = getEnvInt("PLACEMENT_ATTEMPTS", 100); err != nil {
		return c, err
	}
	if c.Regenerations, err = getEnvInt("REGENERATIONS", 5); err != nil {
		return c, err
	}
	hours, err := getEnvInt("JWT_EXPIRES_HOURS", 24)
	if err != nil {
		return c, err
	}
	c.TokenTTL = time.Duration(hours) * time.Hour
	minutes, err := getEnvInt("SESSION_IDLE_MINUTES", 120)
	if err != nil {
		return c, err
	}
	c.SessionIdle = time.Duration(minutes) * time.Minute
	return c, nil
}

// getEnv returns the value of k or def if unset/empty.
func getEnv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

// getEnvInt parses k as a positive integer, or returns def if unset.
func getEnvInt(k string, def int) (int, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("config: %s must be an integer: %w", k, err)
	}
	if n < 1 {
		return 0, fmt.Errorf("config: %s must be at least 1, got %d", k, n)
	}
	return n, nil
}
