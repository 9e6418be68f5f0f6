package config

import (
	"log"
	"os"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort   string
	JWTSecretKey string
	DatabasePath string
	LLMAPIKey    string
	LLMBaseURL   string
	ChatModel    string
	Environment  string
}

// Load reads configuration from environment variables or .env file.
func Load() *Config {
	env := os.Getenv("ENV")
	if strings.ToLower(env) != "production" {
		if err := godotenv.Load(); err != nil {
			log.Println("No .env file found; continuing with environment variables")
		}
	}

	cfg := &Config{
		ServerPort:   getEnv("SERVER_PORT", "8080"),
		JWTSecretKey: getEnv("JWT_SECRET_KEY", ""),
		DatabasePath: getEnv("DATABASE_PATH", "serene.db"),
		LLMAPIKey:    getEnv("LLM_API_KEY", ""),
		LLMBaseURL:   getEnv("LLM_BASE_URL", ""),
		ChatModel:    getEnv("CHAT_MODEL", "gpt-4o-mini"),
		Environment:  env,
	}

	// Validation for production environments
	if strings.ToLower(env) == "production" {
		missing := []string{}
		if cfg.JWTSecretKey == "" {
			missing = append(missing, "JWT_SECRET_KEY")
		}
		if cfg.LLMAPIKey == "" {
			missing = append(missing, "LLM_API_KEY")
		}
		if len(missing) > 0 {
			log.Fatalf("Missing required production environment variables: %v", missing)
		}
	}

	return cfg
}

// getEnv returns the value of an environment variable or a default.
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}
