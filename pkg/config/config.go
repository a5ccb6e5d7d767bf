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

	Database      DatabaseConfig
	Redis         RedisConfig
	CORS          CORSConfig
	Log           LogConfig
	Scheduler     SchedulerConfig
	Notifications NotificationsConfig
	Exports       ExportsConfig
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

type CORSConfig struct {
	AllowedOrigins []string
}

type LogConfig struct {
	Level  string
	Format string
}

// SchedulerConfig carries every constraint parameter of the shoot scheduler.
// Weekdays are validated English day names; unknown names are dropped.
type SchedulerConfig struct {
	AllowedWeekdays      []time.Weekday
	PreferredWeekdays    []time.Weekday
	MaxShootsPerWeek     int
	MinGapDays           int
	PlanningHorizonWeeks int
	FallbackHorizonWeeks int
	FreezeThreshold      time.Duration
	MinCampaignsPerShoot int
	GalleriaLocations    []string
	AlQanaLocations      []string
	HolidayCacheTTL      time.Duration
}

// NotificationsConfig routes stakeholder alerts to Slack incoming webhooks.
type NotificationsConfig struct {
	Enabled             bool
	ReviewerWebhookURL  string
	HeadOfSalesWebhook  string
	DeliveryTimeout     time.Duration
	WorkerConcurrency   int
	WorkerRetries       int
	WorkerRetryInterval time.Duration
}

// ExportsConfig gates plan export endpoints and tunes file retention.
type ExportsConfig struct {
	Enabled       bool
	Directory     string
	SigningSecret string
	ResultTTL     time.Duration
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

	cfg.CORS = CORSConfig{AllowedOrigins: splitAndTrim(v.GetString("ALLOWED_ORIGINS"))}

	cfg.Log = LogConfig{
		Level:  v.GetString("LOG_LEVEL"),
		Format: v.GetString("LOG_FORMAT"),
	}

	cfg.Scheduler = SchedulerConfig{
		AllowedWeekdays:      parseWeekdays(v.GetString("SCHEDULER_ALLOWED_WEEKDAYS")),
		PreferredWeekdays:    parseWeekdays(v.GetString("SCHEDULER_PREFERRED_WEEKDAYS")),
		MaxShootsPerWeek:     v.GetInt("SCHEDULER_MAX_SHOOTS_PER_WEEK"),
		MinGapDays:           v.GetInt("SCHEDULER_MIN_GAP_DAYS"),
		PlanningHorizonWeeks: v.GetInt("SCHEDULER_PLANNING_HORIZON_WEEKS"),
		FallbackHorizonWeeks: v.GetInt("SCHEDULER_FALLBACK_HORIZON_WEEKS"),
		FreezeThreshold:      parseDuration(v.GetString("SCHEDULER_FREEZE_THRESHOLD"), 48*time.Hour),
		MinCampaignsPerShoot: v.GetInt("SCHEDULER_MIN_CAMPAIGNS_PER_SHOOT"),
		GalleriaLocations:    splitAndTrim(v.GetString("SCHEDULER_GALLERIA_LOCATIONS")),
		AlQanaLocations:      splitAndTrim(v.GetString("SCHEDULER_AL_QANA_LOCATIONS")),
		HolidayCacheTTL:      parseDuration(v.GetString("SCHEDULER_HOLIDAY_CACHE_TTL"), 12*time.Hour),
	}

	cfg.Notifications = NotificationsConfig{
		Enabled:             v.GetBool("NOTIFY_ENABLED"),
		ReviewerWebhookURL:  v.GetString("NOTIFY_REVIEWER_WEBHOOK_URL"),
		HeadOfSalesWebhook:  v.GetString("NOTIFY_HEAD_OF_SALES_WEBHOOK_URL"),
		DeliveryTimeout:     parseDuration(v.GetString("NOTIFY_DELIVERY_TIMEOUT"), 5*time.Second),
		WorkerConcurrency:   v.GetInt("NOTIFY_WORKER_CONCURRENCY"),
		WorkerRetries:       v.GetInt("NOTIFY_WORKER_RETRIES"),
		WorkerRetryInterval: parseDuration(v.GetString("NOTIFY_WORKER_RETRY_INTERVAL"), 2*time.Second),
	}

	cfg.Exports = ExportsConfig{
		Enabled:       v.GetBool("ENABLE_PLAN_EXPORTS"),
		Directory:     v.GetString("EXPORT_DIRECTORY"),
		SigningSecret: v.GetString("EXPORT_SIGNING_SECRET"),
		ResultTTL:     parseDuration(v.GetString("EXPORT_RESULT_TTL"), 24*time.Hour),
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
	v.SetDefault("DB_NAME", "shoot_scheduler")
	v.SetDefault("DB_SSL_MODE", "disable")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)

	v.SetDefault("REDIS_HOST", "localhost")
	v.SetDefault("REDIS_PORT", 6379)
	v.SetDefault("REDIS_PASSWORD", "")
	v.SetDefault("REDIS_DB", 0)

	v.SetDefault("ALLOWED_ORIGINS", "")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "json")

	v.SetDefault("SCHEDULER_ALLOWED_WEEKDAYS", "tuesday,thursday,friday")
	v.SetDefault("SCHEDULER_PREFERRED_WEEKDAYS", "tuesday,friday,thursday")
	v.SetDefault("SCHEDULER_MAX_SHOOTS_PER_WEEK", 2)
	v.SetDefault("SCHEDULER_MIN_GAP_DAYS", 2)
	v.SetDefault("SCHEDULER_PLANNING_HORIZON_WEEKS", 4)
	v.SetDefault("SCHEDULER_FALLBACK_HORIZON_WEEKS", 52)
	v.SetDefault("SCHEDULER_FREEZE_THRESHOLD", "48h")
	v.SetDefault("SCHEDULER_MIN_CAMPAIGNS_PER_SHOOT", 1)
	v.SetDefault("SCHEDULER_GALLERIA_LOCATIONS", "galleria mall,the galleria,galleria al maryah island")
	v.SetDefault("SCHEDULER_AL_QANA_LOCATIONS", "al qana,alqana,al qana marina")
	v.SetDefault("SCHEDULER_HOLIDAY_CACHE_TTL", "12h")

	v.SetDefault("NOTIFY_ENABLED", false)
	v.SetDefault("NOTIFY_REVIEWER_WEBHOOK_URL", "")
	v.SetDefault("NOTIFY_HEAD_OF_SALES_WEBHOOK_URL", "")
	v.SetDefault("NOTIFY_DELIVERY_TIMEOUT", "5s")
	v.SetDefault("NOTIFY_WORKER_CONCURRENCY", 1)
	v.SetDefault("NOTIFY_WORKER_RETRIES", 3)
	v.SetDefault("NOTIFY_WORKER_RETRY_INTERVAL", "2s")

	v.SetDefault("ENABLE_PLAN_EXPORTS", true)
	v.SetDefault("EXPORT_DIRECTORY", "./exports")
	v.SetDefault("EXPORT_SIGNING_SECRET", "")
	v.SetDefault("EXPORT_RESULT_TTL", "24h")
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

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(raw string) []time.Weekday {
	var result []time.Weekday
	seen := make(map[time.Weekday]bool)
	for _, part := range splitAndTrim(raw) {
		day, ok := weekdayNames[strings.ToLower(part)]
		if !ok || seen[day] {
			continue
		}
		result = append(result, day)
		seen[day] = true
	}
	return result
}
