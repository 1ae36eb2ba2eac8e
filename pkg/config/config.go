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
)

type Config struct {
	Env       string
	Port      int
	APIPrefix string

	Database     DatabaseConfig
	Redis        RedisConfig
	JWT          JWTConfig
	CORS         CORSConfig
	Log          LogConfig
	Analytics    AnalyticsConfig
	Gamification GamificationConfig
	Leaderboard  LeaderboardConfig
	Exports      ExportsConfig
}

type DatabaseConfig struct {
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

type JWTConfig struct {
	Secret            string
	Expiration        time.Duration
	RefreshExpiration time.Duration
	Issuer            string
}

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// AnalyticsConfig tunes report assembly: cache behaviour, ranking limits and
// the caps that bound how much data a single report may pull in.
type AnalyticsConfig struct {
	CacheTTL                 time.Duration
	TopCoursesLimit          int
	TopStudentsLimit         int
	AttentionLimit           int
	AttentionCompletionBelow float64
	AttentionRatingBelow     float64
	MaxCoursesPerReport      int
	MaxEnrollmentsPerCourse  int
}

// GamificationConfig toggles the gamification endpoints.
type GamificationConfig struct {
	Enabled bool
}

// LeaderboardConfig names the cross-instructor comparison set held in Redis.
type LeaderboardConfig struct {
	Enabled  bool
	Category string
}

// ExportsConfig toggles report downloads.
type ExportsConfig struct {
	Enabled bool
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
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}

	cfg.Env = v.GetString("ENV")
	cfg.Port = v.GetInt("PORT")
	cfg.APIPrefix = v.GetString("API_PREFIX")

	cfg.Database = DatabaseConfig{
		Host:         v.GetString("DB_HOST"),
		Port:         v.GetInt("DB_PORT"),
		User:         v.GetString("DB_USER"),
		Password:     v.GetString("DB_PASSWORD"),
		Name:         v.GetString("DB_NAME"),
		SSLMode:      v.GetString("DB_SSL_MODE"),
		MaxOpenConns: v.GetInt("DB_MAX_OPEN_CONNS"),
		MaxIdleConns: v.GetInt("DB_MAX_IDLE_CONNS"),
	}

	cfg.Redis = RedisConfig{
		Host:     v.GetString("REDIS_HOST"),
		Port:     v.GetInt("REDIS_PORT"),
		Password: v.GetString("REDIS_PASSWORD"),
		DB:       v.GetInt("REDIS_DB"),
	}

	cfg.JWT = JWTConfig{
		Secret:            v.GetString("JWT_SECRET"),
		Expiration:        parseDuration(v.GetString("JWT_EXPIRATION"), 24*time.Hour),
		RefreshExpiration: parseDuration(v.GetString("REFRESH_TOKEN_EXPIRATION"), 7*24*time.Hour),
		Issuer:            v.GetString("JWT_ISSUER"),
	}

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Analytics = AnalyticsConfig{
		CacheTTL:                 parseDuration(v.GetString("ANALYTICS_CACHE_TTL"), 10*time.Minute),
		TopCoursesLimit:          v.GetInt("ANALYTICS_TOP_COURSES_LIMIT"),
		TopStudentsLimit:         v.GetInt("ANALYTICS_TOP_STUDENTS_LIMIT"),
		AttentionLimit:           v.GetInt("ANALYTICS_ATTENTION_LIMIT"),
		AttentionCompletionBelow: v.GetFloat64("ANALYTICS_ATTENTION_COMPLETION_BELOW"),
		AttentionRatingBelow:     v.GetFloat64("ANALYTICS_ATTENTION_RATING_BELOW"),
		MaxCoursesPerReport:      v.GetInt("ANALYTICS_MAX_COURSES"),
		MaxEnrollmentsPerCourse:  v.GetInt("ANALYTICS_MAX_ENROLLMENTS_PER_COURSE"),
	}

	cfg.Gamification = GamificationConfig{
		Enabled: v.GetBool("ENABLE_GAMIFICATION"),
	}

	cfg.Leaderboard = LeaderboardConfig{
		Enabled:  v.GetBool("ENABLE_LEADERBOARD"),
		Category: v.GetString("LEADERBOARD_CATEGORY"),
	}

	cfg.Exports = ExportsConfig{
		Enabled: v.GetBool("ENABLE_EXPORTS"),
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("ENV", EnvDevelopment)
	v.SetDefault("PORT", 8080)
	v.SetDefault("API_PREFIX", "/api/v1")

	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", 5432)
	v.SetDefault("DB_USER", "postgres")
	v.SetDefault("DB_PASSWORD", "postgres")
	v.SetDefault("DB_NAME", "coursepulse")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("JWT_SECRET", "dev_secret")
	v.SetDefault("JWT_EXPIRATION", "24h")
	v.SetDefault("REFRESH_TOKEN_EXPIRATION", "168h")
	v.SetDefault("JWT_ISSUER", "coursepulse-api")

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("ANALYTICS_CACHE_TTL", "10m")
	v.SetDefault("ANALYTICS_TOP_COURSES_LIMIT", 5)
	v.SetDefault("ANALYTICS_TOP_STUDENTS_LIMIT", 5)
	v.SetDefault("ANALYTICS_ATTENTION_LIMIT", 5)
	v.SetDefault("ANALYTICS_ATTENTION_COMPLETION_BELOW", 50.0)
	v.SetDefault("ANALYTICS_ATTENTION_RATING_BELOW", 3.5)
	v.SetDefault("ANALYTICS_MAX_COURSES", 200)
	v.SetDefault("ANALYTICS_MAX_ENROLLMENTS_PER_COURSE", 5000)

	v.SetDefault("ENABLE_GAMIFICATION", true)
	v.SetDefault("ENABLE_LEADERBOARD", true)
	v.SetDefault("LEADERBOARD_CATEGORY", "experience")
	v.SetDefault("ENABLE_EXPORTS", true)
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
