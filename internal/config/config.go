package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// Config carries every tunable of the service. Values come from the
// environment with the documented defaults; main loads .env beforehand.
type Config struct {
	Server   ServerConfig
	Pipeline PipelineConfig
	History  HistoryConfig
	Gemini   GeminiConfig
	Redis    RedisConfig

	DatabaseURL   string
	SessionSecret string
	FrontendURL   string
}

type ServerConfig struct {
	Port           string
	RequestTimeout time.Duration
}

// PipelineConfig bounds the text-to-quiz pipeline.
type PipelineConfig struct {
	QuestionCount int
	ChunkMedium   int
	ChunkLarge    int
	MinTextLength int
	MaxFileSize   int64
}

type HistoryConfig struct {
	Capacity int
}

type GeminiConfig struct {
	APIKey      string
	Model       string
	Temperature float32
}

type RedisConfig struct {
	Address  string
	Password string
	DB       int
	CacheTTL time.Duration
}

// Load reads the configuration from the environment.
func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("REQUEST_TIMEOUT", 5*time.Minute)
	v.SetDefault("QUESTIONS_COUNT", 5)
	v.SetDefault("CHUNK_MEDIUM", 15_000)
	v.SetDefault("CHUNK_LARGE", 500_000)
	v.SetDefault("MIN_TEXT_LENGTH", 100)
	v.SetDefault("MAX_FILE_SIZE", int64(5*1024*1024))
	v.SetDefault("HISTORY_CAPACITY", 10)
	v.SetDefault("GEMINI_MODEL", "gemini-2.0-flash")
	v.SetDefault("GEMINI_TEMPERATURE", 0.7)
	v.SetDefault("REDIS_DB", 0)
	v.SetDefault("CACHE_TTL", 24*time.Hour)
	v.SetDefault("FRONTEND_URL", "http://localhost:5173")

	cfg := &Config{
		Server: ServerConfig{
			Port:           v.GetString("PORT"),
			RequestTimeout: v.GetDuration("REQUEST_TIMEOUT"),
		},
		Pipeline: PipelineConfig{
			QuestionCount: v.GetInt("QUESTIONS_COUNT"),
			ChunkMedium:   v.GetInt("CHUNK_MEDIUM"),
			ChunkLarge:    v.GetInt("CHUNK_LARGE"),
			MinTextLength: v.GetInt("MIN_TEXT_LENGTH"),
			MaxFileSize:   v.GetInt64("MAX_FILE_SIZE"),
		},
		History: HistoryConfig{
			Capacity: v.GetInt("HISTORY_CAPACITY"),
		},
		Gemini: GeminiConfig{
			APIKey:      v.GetString("GEMINI_API_KEY"),
			Model:       v.GetString("GEMINI_MODEL"),
			Temperature: float32(v.GetFloat64("GEMINI_TEMPERATURE")),
		},
		Redis: RedisConfig{
			Address:  v.GetString("REDIS_ADDR"),
			Password: v.GetString("REDIS_PASSWORD"),
			DB:       v.GetInt("REDIS_DB"),
			CacheTTL: v.GetDuration("CACHE_TTL"),
		},
		DatabaseURL:   v.GetString("DATABASE_URL"),
		SessionSecret: v.GetString("SESSION_SECRET"),
		FrontendURL:   v.GetString("FRONTEND_URL"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects configurations the pipeline cannot run with.
func (c *Config) Validate() error {
	p := c.Pipeline
	if p.QuestionCount <= 0 {
		return fmt.Errorf("QUESTIONS_COUNT must be positive, got %d", p.QuestionCount)
	}
	if p.ChunkMedium <= 0 || p.ChunkLarge <= 0 {
		return fmt.Errorf("chunk bounds must be positive, got medium=%d large=%d", p.ChunkMedium, p.ChunkLarge)
	}
	if p.ChunkMedium >= p.ChunkLarge {
		return fmt.Errorf("CHUNK_MEDIUM (%d) must be below CHUNK_LARGE (%d)", p.ChunkMedium, p.ChunkLarge)
	}
	if p.MinTextLength <= 0 {
		return fmt.Errorf("MIN_TEXT_LENGTH must be positive, got %d", p.MinTextLength)
	}
	if p.MaxFileSize <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE must be positive, got %d", p.MaxFileSize)
	}
	if c.Server.RequestTimeout <= 0 {
		return fmt.Errorf("REQUEST_TIMEOUT must be positive, got %s", c.Server.RequestTimeout)
	}
	if c.History.Capacity <= 0 {
		return fmt.Errorf("HISTORY_CAPACITY must be positive, got %d", c.History.Capacity)
	}
	if c.Gemini.Temperature < 0 || c.Gemini.Temperature > 2 {
		return fmt.Errorf("GEMINI_TEMPERATURE must be in [0,2], got %g", c.Gemini.Temperature)
	}
	return nil
}
