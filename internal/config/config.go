package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Storage   StorageConfig
	Tracing   TracingConfig `mapstructure:"tracing"`
	Redis     RedisConfig
	Log       LogConfig       `mapstructure:"log"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Rewards   RewardsConfig   `mapstructure:"rewards"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int      `mapstructure:"max_requests"`
	WindowMinutes int      `mapstructure:"window_minutes"`
	ExemptPaths   []string `mapstructure:"exempt_paths"`
}

// LogConfig 日志输出与滚动
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Console    bool   `mapstructure:"console"`
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	Charset         string
	ParseTime       bool
	MaxOpenConns    int           `mapstructure:"max_open_conns"`
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`
	SlowThreshold   time.Duration `mapstructure:"slow_threshold"`
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type StorageConfig struct {
	Type          string `mapstructure:"type"`
	LocalPath     string `mapstructure:"local_path"`
	MinioEndpoint string `mapstructure:"minio_endpoint"`
	MinioAccessID string `mapstructure:"minio_access_key"`
	MinioSecret   string `mapstructure:"minio_secret_key"`
	MinioBucket   string `mapstructure:"minio_bucket"`
	MinioUseSSL   bool   `mapstructure:"minio_use_ssl"`
	OSSEndpoint   string `mapstructure:"oss_endpoint"`
	OSSAccessKey  string `mapstructure:"oss_access_key"`
	OSSSecretKey  string `mapstructure:"oss_secret_key"`
	OSSBucket     string `mapstructure:"oss_bucket"`
}

type TracingConfig struct {
	Enabled           bool    `mapstructure:"enabled"`
	CollectorEndpoint string  `mapstructure:"collector_endpoint"`
	SampleRatio       float64 `mapstructure:"sample_ratio"`
}

type RedisConfig struct {
	Host         string
	Port         int
	Password     string
	DB           int
	PoolSize     int           `mapstructure:"pool_size"`
	MinIdleConns int           `mapstructure:"min_idle_conns"`
	DialTimeout  time.Duration `mapstructure:"dial_timeout"`
}

// QuizConfig 每日测验相关配置
type QuizConfig struct {
	ReleaseHour       int           `mapstructure:"release_hour"`
	ReleaseMinute     int           `mapstructure:"release_minute"`
	Timezone          string        `mapstructure:"timezone"`
	TimeLimitMinutes  int           `mapstructure:"time_limit_minutes"`
	QuestionsPerQuiz  int           `mapstructure:"questions_per_quiz"`
	StandingsCacheTTL time.Duration `mapstructure:"standings_cache_ttl"`
}

// RewardsConfig 排名奖励阈值
type RewardsConfig struct {
	TopTierMaxRank      int `mapstructure:"top_tier_max_rank"`
	VoucherMaxRank      int `mapstructure:"voucher_max_rank"`
	VoucherValidityDays int `mapstructure:"voucher_validity_days"`
	DiscountPercent     int `mapstructure:"discount_percent"`
}

// Location 返回测验所在时区，未配置时使用本地时区
func (q QuizConfig) Location() *time.Location {
	if q.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(q.Timezone)
	if err != nil {
		return time.Local
	}
	return loc
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.mode", "debug")
	v.SetDefault("database.charset", "utf8mb4")
	v.SetDefault("database.parsetime", true)
	v.SetDefault("database.max_open_conns", 50)
	v.SetDefault("database.max_idle_conns", 10)
	v.SetDefault("database.conn_max_lifetime", "1h")
	v.SetDefault("database.slow_threshold", "500ms")
	v.SetDefault("jwt.expire_hours", 24)
	v.SetDefault("storage.type", "local")
	v.SetDefault("storage.local_path", "uploads")
	v.SetDefault("rate_limit.max_requests", 600)
	v.SetDefault("rate_limit.window_minutes", 1)
	v.SetDefault("rate_limit.exempt_paths", []string{"/metrics", "/api/health"})
	v.SetDefault("redis.pool_size", 20)
	v.SetDefault("redis.min_idle_conns", 2)
	v.SetDefault("redis.dial_timeout", "3s")
	v.SetDefault("tracing.sample_ratio", 1.0)
	v.SetDefault("log.file", "logs/app.log")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 5)
	v.SetDefault("log.max_age_days", 30)
	v.SetDefault("log.console", true)

	v.SetDefault("quiz.release_hour", 20)
	v.SetDefault("quiz.release_minute", 0)
	v.SetDefault("quiz.time_limit_minutes", 15)
	v.SetDefault("quiz.questions_per_quiz", 25)
	v.SetDefault("quiz.standings_cache_ttl", "30s")

	v.SetDefault("rewards.top_tier_max_rank", 100)
	v.SetDefault("rewards.voucher_max_rank", 10000)
	v.SetDefault("rewards.voucher_validity_days", 30)
	v.SetDefault("rewards.discount_percent", 10)
}

func LoadConfig(path string) (*Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.SetEnvPrefix("SCHOOL_QUIZ")
	v.AutomaticEnv()
	setDefaults(v)

	// Database
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	v.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	v.BindEnv("redis.host", "REDIS_HOST")
	v.BindEnv("redis.port", "REDIS_PORT")
	v.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	v.BindEnv("server.mode", "SERVER_MODE")
	v.BindEnv("log.level", "LOG_LEVEL")

	// Storage / OSS
	v.BindEnv("storage.type", "STORAGE_TYPE")
	v.BindEnv("storage.oss_endpoint", "OSS_ENDPOINT")
	v.BindEnv("storage.oss_access_key", "OSS_ACCESS_KEY")
	v.BindEnv("storage.oss_secret_key", "OSS_SECRET_KEY")
	v.BindEnv("storage.oss_bucket", "OSS_BUCKET")
	v.BindEnv("storage.minio_endpoint", "MINIO_ENDPOINT")
	v.BindEnv("storage.minio_access_key", "MINIO_ACCESS_KEY")
	v.BindEnv("storage.minio_secret_key", "MINIO_SECRET_KEY")
	v.BindEnv("storage.minio_bucket", "MINIO_BUCKET")

	// Tracing
	v.BindEnv("tracing.enabled", "TRACING_ENABLED")
	v.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	// Quiz
	v.BindEnv("quiz.release_hour", "QUIZ_RELEASE_HOUR")
	v.BindEnv("quiz.release_minute", "QUIZ_RELEASE_MINUTE")
	v.BindEnv("quiz.timezone", "QUIZ_TIMEZONE")

	if err := v.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) validate() error {
	// 生产环境校验 JWT Secret 强度
	if c.Server.Mode == "release" && len(c.JWT.Secret) < 32 {
		return fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(c.JWT.Secret))
	}
	if c.Quiz.ReleaseHour < 0 || c.Quiz.ReleaseHour > 23 {
		return fmt.Errorf("quiz.release_hour must be within 0-23, got %d", c.Quiz.ReleaseHour)
	}
	if c.Quiz.ReleaseMinute < 0 || c.Quiz.ReleaseMinute > 59 {
		return fmt.Errorf("quiz.release_minute must be within 0-59, got %d", c.Quiz.ReleaseMinute)
	}
	if c.Quiz.Timezone != "" {
		if _, err := time.LoadLocation(c.Quiz.Timezone); err != nil {
			return fmt.Errorf("invalid quiz.timezone %q: %w", c.Quiz.Timezone, err)
		}
	}
	if c.Rewards.TopTierMaxRank < 0 || c.Rewards.VoucherMaxRank < c.Rewards.TopTierMaxRank {
		return fmt.Errorf("rewards thresholds out of order: top tier %d, voucher %d", c.Rewards.TopTierMaxRank, c.Rewards.VoucherMaxRank)
	}
	return nil
}
