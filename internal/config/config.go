package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	pkglogger "github.com/flowhq/approval-backend/pkg/logger"
)

// Config is the full application configuration, loaded from a yaml file
// and overridable per-field by environment variables.
type Config struct {
	App      AppConfig      `yaml:"app"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	JWT      JWTConfig      `yaml:"jwt"`
	CORS     CORSConfig     `yaml:"cors"`
	Storage  StorageConfig  `yaml:"storage"`
	Mail     MailConfig     `yaml:"mail"`
	Approval ApprovalConfig `yaml:"approval"`
}

// AppConfig holds process-level settings
type AppConfig struct {
	Env  string `yaml:"env"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds MySQL connection settings
type DatabaseConfig struct {
	Host            string `yaml:"host"`
	Port            int    `yaml:"port"`
	User            string `yaml:"user"`
	Password        string `yaml:"password"`
	Name            string `yaml:"name"`
	MaxIdleConns    int    `yaml:"max_idle_conns"`
	MaxOpenConns    int    `yaml:"max_open_conns"`
	ConnMaxLifetime int    `yaml:"conn_max_lifetime"`
}

// GetDSN builds the MySQL DSN
func (d DatabaseConfig) GetDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
		d.User, d.Password, d.Host, d.Port, d.Name)
}

// RedisConfig holds Redis connection settings
type RedisConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	PoolSize int    `yaml:"pool_size"`
}

// JWTConfig holds token signing settings. Durations are in hours.
type JWTConfig struct {
	Secret    string `yaml:"secret"`
	ExpiresIn int    `yaml:"expires_in"`
	RefreshIn int    `yaml:"refresh_in"`
}

// CORSConfig holds allowed origins as a comma-separated list
type CORSConfig struct {
	AllowOrigins string `yaml:"allow_origins"`
}

// StorageConfig holds S3-compatible storage settings
type StorageConfig struct {
	Enabled         bool   `yaml:"enabled"`
	Endpoint        string `yaml:"endpoint"`
	Region          string `yaml:"region"`
	AccessKeyID     string `yaml:"access_key_id"`
	SecretAccessKey string `yaml:"secret_access_key"`
	Bucket          string `yaml:"bucket"`
	CDNURL          string `yaml:"cdn_url"`
	BasePath        string `yaml:"base_path"`
	ForcePathStyle  bool   `yaml:"force_path_style"`
}

// MailConfig holds Resend email delivery settings
type MailConfig struct {
	Enabled bool   `yaml:"enabled"`
	APIKey  string `yaml:"api_key"`
	From    string `yaml:"from"`
}

// ApprovalConfig holds workflow tuning knobs
type ApprovalConfig struct {
	SLAHours int `yaml:"sla_hours"`
}

// SLADuration returns the pending-review SLA as a duration (default 48h)
func (a ApprovalConfig) SLADuration() time.Duration {
	hours := a.SLAHours
	if hours <= 0 {
		hours = 48
	}
	return time.Duration(hours) * time.Hour
}

// IsDevelopment reports whether the app runs in a development environment
func (c *Config) IsDevelopment() bool {
	return c.App.Env == "development" || c.App.Env == "dev" || c.App.Env == "local"
}

// Load reads the yaml config at path and applies environment overrides
func Load(path string) (*Config, error) {
	cfg := defaults()

	data, err := os.ReadFile(path)
	if err == nil {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}

	applyEnvOverrides(cfg)

	if cfg.JWT.Secret == "" {
		return nil, fmt.Errorf("jwt secret is required (set JWT_SECRET)")
	}

	return cfg, nil
}

func defaults() *Config {
	return &Config{
		App:      AppConfig{Env: "local", Port: 8080},
		Database: DatabaseConfig{
			Host: "127.0.0.1", Port: 3306, User: "root", Name: "approval",
			MaxIdleConns: 10, MaxOpenConns: 50, ConnMaxLifetime: 300,
		},
		Redis:    RedisConfig{Host: "127.0.0.1", Port: 6379, PoolSize: 10},
		JWT:      JWTConfig{ExpiresIn: 1, RefreshIn: 168},
		Approval: ApprovalConfig{SLAHours: 48},
	}
}

func applyEnvOverrides(cfg *Config) {
	setString(&cfg.App.Env, "APP_ENV")
	setInt(&cfg.App.Port, "APP_PORT")
	setString(&cfg.Database.Host, "DB_HOST")
	setInt(&cfg.Database.Port, "DB_PORT")
	setString(&cfg.Database.User, "DB_USER")
	setString(&cfg.Database.Password, "DB_PASSWORD")
	setString(&cfg.Database.Name, "DB_NAME")
	setString(&cfg.Redis.Host, "REDIS_HOST")
	setInt(&cfg.Redis.Port, "REDIS_PORT")
	setString(&cfg.Redis.Password, "REDIS_PASSWORD")
	setString(&cfg.JWT.Secret, "JWT_SECRET")
	setString(&cfg.CORS.AllowOrigins, "CORS_ALLOW_ORIGINS")
	setString(&cfg.Storage.Endpoint, "STORAGE_ENDPOINT")
	setString(&cfg.Storage.AccessKeyID, "STORAGE_ACCESS_KEY_ID")
	setString(&cfg.Storage.SecretAccessKey, "STORAGE_SECRET_ACCESS_KEY")
	setString(&cfg.Storage.Bucket, "STORAGE_BUCKET")
	setString(&cfg.Mail.APIKey, "RESEND_API_KEY")
	setString(&cfg.Mail.From, "MAIL_FROM")
	setInt(&cfg.Approval.SLAHours, "APPROVAL_SLA_HOURS")
}

func setString(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

// LogResolved logs the effective configuration without secrets
func LogResolved(cfg *Config) {
	pkglogger.Info("config: env=%s port=%d db=%s:%d/%s redis=%s:%d storage=%v mail=%v sla=%dh",
		cfg.App.Env, cfg.App.Port,
		cfg.Database.Host, cfg.Database.Port, cfg.Database.Name,
		cfg.Redis.Host, cfg.Redis.Port,
		cfg.Storage.Enabled, cfg.Mail.Enabled, cfg.Approval.SLAHours)
}
