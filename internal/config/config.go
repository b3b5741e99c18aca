package config

import (
	"fmt"
	"sync"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server    ServerConfig
	Database  DatabaseConfig
	JWT       JWTConfig
	Redis     RedisConfig
	Session   SessionConfig   `mapstructure:"session"`
	Quiz      QuizConfig      `mapstructure:"quiz"`
	Tracing   TracingConfig   `mapstructure:"tracing"`
	CORS      CORSConfig      `mapstructure:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit"`

	// 运行时标志（非配置文件，通过命令行参数设置）
	ForceMigrate bool `mapstructure:"-"` // 强制执行数据库迁移
	MigrateOnly  bool `mapstructure:"-"` // 仅迁移模式（迁移后退出）

	// 保护可热更新的字段，请求处理与配置重载并发访问
	mu sync.RWMutex
}

// QuizSettings 返回测验参数的快照。配置热更新和请求处理并发进行，
// 读方必须拿快照而不是直接读字段
func (c *Config) QuizSettings() QuizConfig {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Quiz
}

// SetQuizSettings 整体替换测验参数，用于配置热更新
func (c *Config) SetQuizSettings(q QuizConfig) {
	c.mu.Lock()
	c.Quiz = q
	c.mu.Unlock()
}

type ServerConfig struct {
	Port string
	Mode string
}

type DatabaseConfig struct {
	Host      string
	Port      int
	User      string
	Password  string
	DBName    string
	Charset   string
	ParseTime bool
}

type JWTConfig struct {
	Secret     string        `mapstructure:"secret"`
	ExpireTime time.Duration `mapstructure:"expire_hours"`
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// SessionConfig 会话存储配置。Store 可选 redis / memory，
// TTLHours 为 0 时会话永不过期（过期是部署策略，不属于状态机）
type SessionConfig struct {
	Store    string `mapstructure:"store"`
	TTLHours int    `mapstructure:"ttl_hours"`
}

type QuizConfig struct {
	DefaultRemediationDifficulty string `mapstructure:"default_remediation_difficulty"`
	RemediationRequiredCorrect   int    `mapstructure:"remediation_required_correct"`
	PracticeBatchSize            int    `mapstructure:"practice_batch_size"`
}

type TracingConfig struct {
	Enabled           bool   `mapstructure:"enabled"`
	CollectorEndpoint string `mapstructure:"collector_endpoint"`
}

type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

type RateLimitConfig struct {
	MaxRequests   int `mapstructure:"max_requests"`
	WindowMinutes int `mapstructure:"window_minutes"`
}

func LoadConfig(path string) (*Config, error) {
	viper.AddConfigPath(path)
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")

	viper.SetEnvPrefix("EDU_QUIZ")
	viper.AutomaticEnv()

	// Database
	viper.BindEnv("database.host", "DATABASE_HOST")
	viper.BindEnv("database.port", "DATABASE_PORT")
	viper.BindEnv("database.user", "DATABASE_USER")
	viper.BindEnv("database.password", "DATABASE_PASSWORD")
	viper.BindEnv("database.dbname", "DATABASE_NAME")

	// JWT
	viper.BindEnv("jwt.secret", "JWT_SECRET")

	// Redis
	viper.BindEnv("redis.host", "REDIS_HOST")
	viper.BindEnv("redis.port", "REDIS_PORT")
	viper.BindEnv("redis.password", "REDIS_PASSWORD")

	// Server
	viper.BindEnv("server.mode", "SERVER_MODE")

	// Session
	viper.BindEnv("session.store", "SESSION_STORE")
	viper.BindEnv("session.ttl_hours", "SESSION_TTL_HOURS")

	// Tracing
	viper.BindEnv("tracing.enabled", "TRACING_ENABLED")
	viper.BindEnv("tracing.collector_endpoint", "TRACING_COLLECTOR_ENDPOINT")

	if err := viper.ReadInConfig(); err != nil {
		return nil, err
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	cfg.JWT.ExpireTime = cfg.JWT.ExpireTime * time.Hour

	// 生产环境校验 JWT Secret 强度
	if cfg.Server.Mode == "release" && len(cfg.JWT.Secret) < 32 {
		return nil, fmt.Errorf("JWT secret is too short (%d chars), must be at least 32 characters in release mode", len(cfg.JWT.Secret))
	}

	if cfg.Session.Store == "" {
		cfg.Session.Store = "redis"
	}
	if cfg.Quiz.DefaultRemediationDifficulty == "" {
		cfg.Quiz.DefaultRemediationDifficulty = "standard"
	}
	if cfg.Quiz.RemediationRequiredCorrect <= 0 {
		cfg.Quiz.RemediationRequiredCorrect = 2
	}
	if cfg.Quiz.PracticeBatchSize <= 0 {
		cfg.Quiz.PracticeBatchSize = 5
	}

	return &cfg, nil
}
