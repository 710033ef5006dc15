package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App  AppConfig
	Keys APIKeys
	Ai   AIConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	SessionTTLMinutes  int
	EncodeTopic        string
}

type APIKeys struct {
	GoogleGemini string
}

type AIConfig struct {
	Model                  string
	AnalysisTimeoutSeconds int
	CatalogExcerptSize     int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment variables")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "logs/app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			SessionTTLMinutes:  getEnvAsInt("SESSION_TTL_MINUTES", 60),
			EncodeTopic:        getEnv("ENCODE_LAYER_TOPIC_NAME", "ENCODE_LAYER"),
		},
		Keys: APIKeys{
			GoogleGemini: getEnv("GOOGLE_GEMINI_API_KEY", ""),
		},
		Ai: AIConfig{
			Model:                  getEnv("GEMINI_MODEL", "gemini-2.5-flash"),
			AnalysisTimeoutSeconds: getEnvAsInt("ANALYSIS_TIMEOUT_SECONDS", 90),
			CatalogExcerptSize:     getEnvAsInt("CATALOG_EXCERPT_SIZE", 15),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}
