package config

import (
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds all application configuration.
type Config struct {
	Server    ServerConfig
	Log       LogConfig
	CORS      CORSConfig
	Upload    UploadConfig
	Upstage   UpstageConfig
	Session   SessionConfig
	RateLimit RateLimitConfig
	Metrics   MetricsConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port         string        `mapstructure:"port"`
	ReadTimeout  time.Duration `mapstructure:"read_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
	Environment  string        `mapstructure:"environment"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// UploadConfig holds file intake limits.
type UploadConfig struct {
	MaxFileSizeMB int64 `mapstructure:"max_file_size_mb"`
}

// MaxBytes returns the upload limit in bytes.
func (u *UploadConfig) MaxBytes() int64 {
	return u.MaxFileSizeMB * 1024 * 1024
}

// UpstageConfig holds the vendor API settings. The API key has no default.
type UpstageConfig struct {
	APIKey        string  `mapstructure:"api_key"`
	BaseURL       string  `mapstructure:"base_url"`
	ParseModel    string  `mapstructure:"parse_model"`
	ExtractModel  string  `mapstructure:"extract_model"`
	ChatModel     string  `mapstructure:"chat_model"`
	ParseMode     string  `mapstructure:"parse_mode"`
	OCR           string  `mapstructure:"ocr"`
	Coordinates   bool    `mapstructure:"coordinates"`
	OutputFormats string  `mapstructure:"output_formats"`
	Temperature   float64 `mapstructure:"temperature"`
	MaxTokens     int     `mapstructure:"max_tokens"`
	TimeoutSecs   int     `mapstructure:"timeout_secs"`
}

// Configured reports whether an API key is present.
func (u *UpstageConfig) Configured() bool {
	return u.APIKey != ""
}

// MaskedKey returns the first eight characters of the key for display.
func (u *UpstageConfig) MaskedKey() string {
	if u.APIKey == "" {
		return "not configured"
	}
	if len(u.APIKey) <= 8 {
		return u.APIKey[:len(u.APIKey)/2] + "..."
	}
	return u.APIKey[:8] + "..."
}

// SessionConfig selects the conversation store.
type SessionConfig struct {
	Store         string        `mapstructure:"store"` // memory or redis
	TTL           time.Duration `mapstructure:"ttl"`
	RedisAddr     string        `mapstructure:"redis_addr"`
	RedisPassword string        `mapstructure:"redis_password"`
	RedisDB       int           `mapstructure:"redis_db"`
}

// RateLimitConfig holds per-IP request limits for the vendor-backed routes.
type RateLimitConfig struct {
	Requests int           `mapstructure:"requests"`
	Window   time.Duration `mapstructure:"window"`
}

// MetricsConfig toggles the prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `mapstructure:"enabled"`
}

// Load reads configuration from an optional .env file and environment
// variables with the DOCPILOT_ prefix.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config.Load: ignoring .env: %v", err)
	}

	v := viper.New()
	v.SetEnvPrefix("DOCPILOT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Server defaults
	v.SetDefault("server.port", ":8080")
	v.SetDefault("server.read_timeout", "30s")
	v.SetDefault("server.write_timeout", "180s")
	v.SetDefault("server.environment", "development")

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")

	// CORS defaults (localhost origins for development)
	v.SetDefault("cors.allowed_origins", "http://localhost:3000,http://127.0.0.1:3000,http://localhost:5173,http://127.0.0.1:5173")

	// Upload defaults
	v.SetDefault("upload.max_file_size_mb", 50)

	// Upstage defaults
	v.SetDefault("upstage.api_key", "")
	v.SetDefault("upstage.base_url", "https://api.upstage.ai/v1")
	v.SetDefault("upstage.parse_model", "document-parse")
	v.SetDefault("upstage.extract_model", "information-extract")
	v.SetDefault("upstage.chat_model", "solar-pro2-preview")
	v.SetDefault("upstage.parse_mode", "digitize")
	v.SetDefault("upstage.ocr", "auto")
	v.SetDefault("upstage.coordinates", false)
	v.SetDefault("upstage.output_formats", "")
	v.SetDefault("upstage.temperature", 0.1)
	v.SetDefault("upstage.max_tokens", 4000)
	v.SetDefault("upstage.timeout_secs", 120)

	// Session defaults
	v.SetDefault("session.store", "memory")
	v.SetDefault("session.ttl", "24h")
	v.SetDefault("session.redis_addr", "localhost:6379")
	v.SetDefault("session.redis_password", "")
	v.SetDefault("session.redis_db", 0)

	// Rate limit defaults
	v.SetDefault("rate_limit.requests", 60)
	v.SetDefault("rate_limit.window", "1m")

	// Metrics defaults
	v.SetDefault("metrics.enabled", true)

	// Bind environment variables explicitly for nested keys
	envBindings := map[string]string{
		"server.port":             "DOCPILOT_SERVER_PORT",
		"server.read_timeout":     "DOCPILOT_SERVER_READ_TIMEOUT",
		"server.write_timeout":    "DOCPILOT_SERVER_WRITE_TIMEOUT",
		"server.environment":      "DOCPILOT_SERVER_ENVIRONMENT",
		"log.level":               "DOCPILOT_LOG_LEVEL",
		"log.format":              "DOCPILOT_LOG_FORMAT",
		"cors.allowed_origins":    "DOCPILOT_CORS_ALLOWED_ORIGINS",
		"upload.max_file_size_mb": "DOCPILOT_UPLOAD_MAX_FILE_SIZE_MB",
		"upstage.api_key":         "DOCPILOT_UPSTAGE_API_KEY",
		"upstage.base_url":        "DOCPILOT_UPSTAGE_BASE_URL",
		"upstage.parse_model":     "DOCPILOT_UPSTAGE_PARSE_MODEL",
		"upstage.extract_model":   "DOCPILOT_UPSTAGE_EXTRACT_MODEL",
		"upstage.chat_model":      "DOCPILOT_UPSTAGE_CHAT_MODEL",
		"upstage.parse_mode":      "DOCPILOT_UPSTAGE_PARSE_MODE",
		"upstage.ocr":             "DOCPILOT_UPSTAGE_OCR",
		"upstage.coordinates":     "DOCPILOT_UPSTAGE_COORDINATES",
		"upstage.output_formats":  "DOCPILOT_UPSTAGE_OUTPUT_FORMATS",
		"upstage.temperature":     "DOCPILOT_UPSTAGE_TEMPERATURE",
		"upstage.max_tokens":      "DOCPILOT_UPSTAGE_MAX_TOKENS",
		"upstage.timeout_secs":    "DOCPILOT_UPSTAGE_TIMEOUT_SECS",
		"session.store":           "DOCPILOT_SESSION_STORE",
		"session.ttl":             "DOCPILOT_SESSION_TTL",
		"session.redis_addr":      "DOCPILOT_SESSION_REDIS_ADDR",
		"session.redis_password":  "DOCPILOT_SESSION_REDIS_PASSWORD",
		"session.redis_db":        "DOCPILOT_SESSION_REDIS_DB",
		"rate_limit.requests":     "DOCPILOT_RATE_LIMIT_REQUESTS",
		"rate_limit.window":       "DOCPILOT_RATE_LIMIT_WINDOW",
		"metrics.enabled":         "DOCPILOT_METRICS_ENABLED",
	}
	for key, env := range envBindings {
		_ = v.BindEnv(key, env)
	}

	// UPSTAGE_API_KEY is the vendor's conventional variable name.
	if v.GetString("upstage.api_key") == "" {
		if key := os.Getenv("UPSTAGE_API_KEY"); key != "" {
			v.Set("upstage.api_key", key)
		}
	}

	cfg := &Config{}

	// Railway/Heroku/Render set a PORT env var. Use it if DOCPILOT_SERVER_PORT is not explicitly set.
	serverPort := v.GetString("server.port")
	if port := os.Getenv("PORT"); port != "" && os.Getenv("DOCPILOT_SERVER_PORT") == "" {
		serverPort = ":" + port
	}

	cfg.Server = ServerConfig{
		Port:         serverPort,
		ReadTimeout:  v.GetDuration("server.read_timeout"),
		WriteTimeout: v.GetDuration("server.write_timeout"),
		Environment:  v.GetString("server.environment"),
	}
	cfg.Log = LogConfig{
		Level:  v.GetString("log.level"),
		Format: v.GetString("log.format"),
	}
	cfg.CORS = CORSConfig{
		AllowedOrigins: splitCSV(v.GetString("cors.allowed_origins")),
	}
	cfg.Upload = UploadConfig{
		MaxFileSizeMB: v.GetInt64("upload.max_file_size_mb"),
	}
	cfg.Upstage = UpstageConfig{
		APIKey:        v.GetString("upstage.api_key"),
		BaseURL:       strings.TrimRight(v.GetString("upstage.base_url"), "/"),
		ParseModel:    v.GetString("upstage.parse_model"),
		ExtractModel:  v.GetString("upstage.extract_model"),
		ChatModel:     v.GetString("upstage.chat_model"),
		ParseMode:     v.GetString("upstage.parse_mode"),
		OCR:           v.GetString("upstage.ocr"),
		Coordinates:   v.GetBool("upstage.coordinates"),
		OutputFormats: v.GetString("upstage.output_formats"),
		Temperature:   v.GetFloat64("upstage.temperature"),
		MaxTokens:     v.GetInt("upstage.max_tokens"),
		TimeoutSecs:   v.GetInt("upstage.timeout_secs"),
	}
	cfg.Session = SessionConfig{
		Store:         v.GetString("session.store"),
		TTL:           v.GetDuration("session.ttl"),
		RedisAddr:     v.GetString("session.redis_addr"),
		RedisPassword: v.GetString("session.redis_password"),
		RedisDB:       v.GetInt("session.redis_db"),
	}
	cfg.RateLimit = RateLimitConfig{
		Requests: v.GetInt("rate_limit.requests"),
		Window:   v.GetDuration("rate_limit.window"),
	}
	cfg.Metrics = MetricsConfig{
		Enabled: v.GetBool("metrics.enabled"),
	}

	return cfg, nil
}

func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}
