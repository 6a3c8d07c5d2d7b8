package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort   string
	DBDriver     string
	DatabaseDSN  string
	ResetDB      bool
	RedisAddr    string
	RedisDB      int
	RedisPass    string
	SwaggerHost  string
	CookieSecure bool
}

const defaultMySQLDSN = "user:password@tcp(localhost:3306)/dailydiet?charset=utf8mb4&parseTime=True&loc=UTC"

// Load builds Config from environment with sensible defaults.
// A .env file in the working directory is applied first when present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		DBDriver:     getEnv("DB_DRIVER", "mysql"),
		DatabaseDSN:  getEnv("DATABASE_DSN", getEnv("MYSQL_DSN", defaultMySQLDSN)),
		ResetDB:      getEnvBool("RESET_DB", false),
		RedisAddr:    getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:      getEnvInt("REDIS_DB", 0),
		RedisPass:    os.Getenv("REDIS_PASSWORD"),
		SwaggerHost:  os.Getenv("SWAGGER_HOST"),
		CookieSecure: getEnvBool("COOKIE_SECURE", false),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}

func getEnvBool(key string, def bool) bool {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.ParseBool(v); err == nil {
			return parsed
		}
	}
	return def
}
