package config

import (
	"log"
	"os"
	"strconv"

	"coachsite-be/internal/pkg/apperrors"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Keys     APIKeys
	Ai       AIConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type APIKeys struct {
	GoogleGemini      string
	JWTSecret         string
	MidtransServerKey string
	MidtransClientKey string
	IngestTopic       string // document ingestion topic
}

type AIConfig struct {
	EmbeddingModel          string
	ChatModel               string
	ChunkSize               int
	EmbeddingMaxConcurrency int
	RetrievalLimit          int
	SimilarityThreshold     float64
	ChatDailyLimit          int
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, using system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "Coaching Site"),
		},
		Keys: APIKeys{
			GoogleGemini:      getEnv("GOOGLE_GEMINI_API_KEY", ""),
			JWTSecret:         getEnv("JWT_SECRET", ""),
			MidtransServerKey: getEnv("MIDTRANS_SERVER_KEY", ""),
			MidtransClientKey: getEnv("MIDTRANS_CLIENT_KEY", ""),
			IngestTopic:       getEnv("INGEST_DOCUMENT_TOPIC_NAME", "INGEST_DOCUMENT"),
		},
		Ai: AIConfig{
			EmbeddingModel:          getEnv("EMBEDDING_MODEL", "text-embedding-004"),
			ChatModel:               getEnv("CHAT_MODEL", "gemini-1.5-flash"),
			ChunkSize:               getEnvAsInt("CHUNK_SIZE", 1000),
			EmbeddingMaxConcurrency: getEnvAsInt("EMBEDDING_MAX_CONCURRENCY", 4),
			RetrievalLimit:          getEnvAsInt("RETRIEVAL_LIMIT", 5),
			SimilarityThreshold:     getEnvAsFloat("SIMILARITY_THRESHOLD", 0.5),
			ChatDailyLimit:          getEnvAsInt("CHAT_DAILY_LIMIT", 50),
		},
	}
}

// ValidateAI checks the credentials the RAG pipeline depends on. Called at
// bootstrap so a missing key is a configuration error, not a runtime surprise
// deep inside a request.
func (c *Config) ValidateAI() error {
	if c.Keys.GoogleGemini == "" {
		return apperrors.Configuration("AI services not configured")
	}
	return nil
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

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
