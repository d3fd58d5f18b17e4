package config

import (
	"errors"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	EnvDevelopment = "development"
	EnvProduction  = "production"

	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Redis     RedisConfig
	CORS      CORSConfig
	Log       LogConfig
	Sessions  SessionConfig
	Scheduler SchedulerConfig
	Metrics   MetricsConfig
	Export    ExportConfig
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SessionConfig selects where generated timetables and session memory live.
type SessionConfig struct {
	Backend   string
	TTL       time.Duration
	MemoryTTL time.Duration
}

// SchedulerConfig tunes the placement engine.
type SchedulerConfig struct {
	AttemptsPerSession int
	MaxSuggestions     int
	DefaultSessions    int
	// Seed pins the random source for every run when non-zero.
	Seed int64
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool
}

// ExportConfig controls document rendering.
type ExportConfig struct {
	Title string
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !isMissingFile(err) {
			return nil, err
		}
	}

	return fromViper(v), nil
}

func fromViper(v *viper.Viper) *Config {
	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	backend := strings.ToLower(strings.TrimSpace(v.GetString("SESSION_BACKEND")))
	if backend != SessionBackendRedis {
		backend = SessionBackendMemory
	}
	cfg.Sessions = SessionConfig{
		Backend:   backend,
		TTL:       parseDuration(v.GetString("SESSION_TTL"), 24*time.Hour),
		MemoryTTL: parseDuration(v.GetString("MEMORY_TTL"), 2*time.Hour),
	}

	cfg.Scheduler = SchedulerConfig{
		AttemptsPerSession: v.GetInt("SCHEDULER_ATTEMPTS_PER_SESSION"),
		MaxSuggestions:     v.GetInt("SCHEDULER_MAX_SUGGESTIONS"),
		DefaultSessions:    v.GetInt("SCHEDULER_DEFAULT_SESSIONS"),
		Seed:               v.GetInt64("SCHEDULER_SEED"),
	}

	cfg.Metrics = MetricsConfig{Enabled: v.GetBool("ENABLE_METRICS")}
	cfg.Export = ExportConfig{Title: v.GetString("EXPORT_TITLE")}

	return cfg
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "")

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SESSION_BACKEND", SessionBackendMemory)
	v.SetDefault("SESSION_TTL", "24h")
	v.SetDefault("MEMORY_TTL", "2h")

	v.SetDefault("SCHEDULER_ATTEMPTS_PER_SESSION", 300)
	v.SetDefault("SCHEDULER_MAX_SUGGESTIONS", 5)
	v.SetDefault("SCHEDULER_DEFAULT_SESSIONS", 2)
	v.SetDefault("SCHEDULER_SEED", 0)

	v.SetDefault("ENABLE_METRICS", true)
	v.SetDefault("EXPORT_TITLE", "Unified Weekly Timetable")
}

func isMissingFile(err error) bool {
	return strings.Contains(err.Error(), "no such file or directory")
}

func parseDuration(raw string, fallback time.Duration) time.Duration {
	if raw == "" {
		return fallback
	}

	d, err := time.ParseDuration(raw)
	if err != nil {
		return fallback
	}

	return d
}

func splitAndTrim(raw string) []string {
	if raw == "" {
		return nil
	}

	parts := strings.Split(raw, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		trimmed := strings.TrimSpace(part)
		if trimmed != "" {
			result = append(result, trimmed)
		}
	}

	return result
}
