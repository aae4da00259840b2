package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	Server ServerConfig
	DB     DatabaseConfig
	Redis  RedisConfig
	Auth   AuthConfig
	AI     AIConfig
}

type ServerConfig struct {
	Port              string
	Env               string
	BaseURL           string
	CORSOrigin        string
	AllowRegistration bool
}

type DatabaseConfig struct {
	// DSN is the MySQL connection string. When empty the register falls
	// back to a local SQLite file, the per-device store.
	DSN        string
	SQLitePath string
}

type RedisConfig struct {
	// Addr enables the Redis draft snapshot store when non-empty.
	Addr     string
	Password string
	DB       int
}

type AuthConfig struct {
	JWTSecret string
}

type AIConfig struct {
	GeminiAPIKey string
}

// Load reads .env (if present) and environment variables into a Config.
func Load() *Config {
	_ = godotenv.Load()

	redisDB, _ := strconv.Atoi(getEnv("REDIS_DB", "0"))

	return &Config{
		Server: ServerConfig{
			Port:              getEnv("PORT", "8080"),
			Env:               getEnv("ENV", "development"),
			BaseURL:           getEnv("BASE_URL", "http://localhost:8080"),
			CORSOrigin:        getEnv("CORS_ORIGIN", "http://localhost:5173"),
			AllowRegistration: getEnv("ALLOW_REGISTRATION", "false") == "true",
		},
		DB: DatabaseConfig{
			DSN:        getEnv("DB_DSN", ""),
			SQLitePath: getEnv("SQLITE_PATH", "./e-kasir.db"),
		},
		Redis: RedisConfig{
			Addr:     getEnv("REDIS_ADDR", ""),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       redisDB,
		},
		Auth: AuthConfig{
			JWTSecret: getEnv("JWT_SECRET", "super_secret_key_for_pos_system_2025"),
		},
		AI: AIConfig{
			GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		},
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}
