package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v2"
)

type Config struct {
	Server struct {
		Host              string        `yaml:"host"`
		Port              int           `yaml:"port"`
		Env               string        `yaml:"env"`
		StaticDir         string        `yaml:"static_dir"` // собранный фронтенд (index.html + assets)
		AllowedOrigins    []string      `yaml:"allowed_origins"`
		ReadHeaderTimeout time.Duration `yaml:"read_header_timeout"`
		// ReadTimeout и WriteTimeout покрывают чтение тела, то есть и загрузку файла
		ReadTimeout     time.Duration `yaml:"read_timeout"`
		WriteTimeout    time.Duration `yaml:"write_timeout"`
		IdleTimeout     time.Duration `yaml:"idle_timeout"`
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout"`

		// запросов в минуту с одного IP; отрицательное значение отключает лимит
		RateLimitPerMinute int `yaml:"rate_limit_per_minute"`
	} `yaml:"server"`

	Database struct {
		DSN             string        `yaml:"url"`
		MaxOpenConns    int           `yaml:"max_open_conns"`
		MaxIdleConns    int           `yaml:"max_idle_conns"`
		ConnMaxLifetime time.Duration `yaml:"conn_max_lifetime"`
		AutoMigrate     bool          `yaml:"auto_migrate"`
	} `yaml:"database"`

	Email struct {
		SMTPHost     string `yaml:"smtp_host"`
		SMTPPort     int    `yaml:"smtp_port"`
		SMTPUsername string `yaml:"smtp_user"`
		SMTPPassword string `yaml:"smtp_password"`
		FromEmail    string `yaml:"from_email"`
		FromName     string `yaml:"from_name"`
		AppURL       string `yaml:"app_url"` // для ссылок в письмах
	} `yaml:"email"`

	JWT struct {
		Secret string `yaml:"secret"`
		Issuer string `yaml:"issuer"`
	} `yaml:"jwt"`

	Storage struct {
		Type      string `yaml:"type"`      // local, s3
		BasePath  string `yaml:"base_path"` // For local storage
		BaseURL   string `yaml:"base_url"`  // Public URL base
		Bucket    string `yaml:"bucket"`    // For S3
		Region    string `yaml:"region"`    // For S3
		AccessKey string `yaml:"access_key"`
		SecretKey string `yaml:"secret_key"`
		Endpoint  string `yaml:"endpoint"` // R2, MinIO и прочие S3-совместимые
	} `yaml:"storage"`

	Upload struct {
		MaxSize      int64    `yaml:"max_size"`      // Max file size in bytes
		AllowedTypes []string `yaml:"allowed_types"` // Allowed MIME types
	} `yaml:"upload"`

	Reminders struct {
		Enabled  bool          `yaml:"enabled"`
		Interval time.Duration `yaml:"interval"`
		Window   time.Duration `yaml:"window"` // за сколько до nextSessionAt напоминать
	} `yaml:"reminders"`
}

// DefaultAllowedTypes - разрешенные для загрузки MIME-типы
var DefaultAllowedTypes = []string{
	"image/jpeg",
	"image/png",
	"image/gif",
	"application/pdf",
	"video/mp4",
}

const DefaultMaxUploadSize int64 = 25 * 1024 * 1024 // 25MB

// Load читает .env (если есть), затем YAML (если есть), затем переменные окружения.
// Переменные окружения имеют приоритет над файлом.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "config/config.yaml"
	}

	var cfg Config

	data, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file at %s: %w", path, err)
		}
	case errors.Is(err, os.ErrNotExist):
		log.Printf("Config file %s not found, using environment only", path)
	default:
		return nil, fmt.Errorf("failed to read config file at %s: %w", path, err)
	}

	if err := applyEnv(&cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// MustLoad - Load, который завершает процесс при ошибке
func MustLoad() *Config {
	cfg, err := Load("")
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	return cfg
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v, ok := os.LookupEnv(key); ok && v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v, ok := os.LookupEnv(key)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid %s: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("DATABASE_URL", &cfg.Database.DSN)
	setString("SERVER_HOST", &cfg.Server.Host)
	setString("SERVER_ENV", &cfg.Server.Env)
	setString("STATIC_DIR", &cfg.Server.StaticDir)
	setString("JWT_SECRET", &cfg.JWT.Secret)
	setString("JWT_ISSUER", &cfg.JWT.Issuer)
	setString("UPLOAD_DIR", &cfg.Storage.BasePath)
	setString("STORAGE_TYPE", &cfg.Storage.Type)
	setString("SMTP_HOST", &cfg.Email.SMTPHost)
	setString("SMTP_USER", &cfg.Email.SMTPUsername)
	setString("SMTP_PASSWORD", &cfg.Email.SMTPPassword)
	setString("SMTP_FROM", &cfg.Email.FromEmail)

	if err := setInt("SERVER_PORT", &cfg.Server.Port); err != nil {
		return err
	}
	if err := setInt("SMTP_PORT", &cfg.Email.SMTPPort); err != nil {
		return err
	}
	if err := setInt("RATE_LIMIT_PER_MINUTE", &cfg.Server.RateLimitPerMinute); err != nil {
		return err
	}

	if v := os.Getenv("ALLOWED_ORIGINS"); v != "" {
		cfg.Server.AllowedOrigins = strings.Split(v, ",")
	}
	if v := os.Getenv("UPLOAD_MAX_SIZE"); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid UPLOAD_MAX_SIZE: %w", err)
		}
		cfg.Upload.MaxSize = n
	}
	if v := os.Getenv("REMINDERS_ENABLED"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid REMINDERS_ENABLED: %w", err)
		}
		cfg.Reminders.Enabled = b
	}
	if v := os.Getenv("DB_AUTO_MIGRATE"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("invalid DB_AUTO_MIGRATE: %w", err)
		}
		cfg.Database.AutoMigrate = b
	}
	return nil
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "0.0.0.0"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if cfg.Server.Env == "" {
		cfg.Server.Env = "development"
	}
	if cfg.Server.StaticDir == "" {
		cfg.Server.StaticDir = "./web/dist"
	}
	if cfg.Server.ReadHeaderTimeout == 0 {
		cfg.Server.ReadHeaderTimeout = 10 * time.Second
	}
	if cfg.Server.ReadTimeout == 0 {
		// 25MB при ~400 Кбит/с
		cfg.Server.ReadTimeout = 10 * time.Minute
	}
	if cfg.Server.WriteTimeout == 0 {
		// отсчитывается от конца заголовков, поэтому не меньше ReadTimeout
		cfg.Server.WriteTimeout = 10 * time.Minute
	}
	if cfg.Server.IdleTimeout == 0 {
		cfg.Server.IdleTimeout = 120 * time.Second
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 15 * time.Second
	}
	if cfg.Server.RateLimitPerMinute == 0 {
		cfg.Server.RateLimitPerMinute = 600
	}

	if cfg.Database.MaxOpenConns == 0 {
		cfg.Database.MaxOpenConns = 25
	}
	if cfg.Database.MaxIdleConns == 0 {
		cfg.Database.MaxIdleConns = 5
	}
	if cfg.Database.ConnMaxLifetime == 0 {
		cfg.Database.ConnMaxLifetime = 30 * time.Minute
	}

	if cfg.JWT.Issuer == "" {
		cfg.JWT.Issuer = "skillswap"
	}

	if cfg.Storage.Type == "" {
		cfg.Storage.Type = "local"
	}
	if cfg.Storage.BasePath == "" {
		cfg.Storage.BasePath = "./uploads"
	}
	if cfg.Storage.BaseURL == "" {
		cfg.Storage.BaseURL = "/uploads"
	}

	if cfg.Upload.MaxSize == 0 {
		cfg.Upload.MaxSize = DefaultMaxUploadSize
	}
	if len(cfg.Upload.AllowedTypes) == 0 {
		cfg.Upload.AllowedTypes = append([]string(nil), DefaultAllowedTypes...)
	}

	if cfg.Reminders.Interval == 0 {
		cfg.Reminders.Interval = 15 * time.Minute
	}
	if cfg.Reminders.Window == 0 {
		cfg.Reminders.Window = 24 * time.Hour
	}

	if cfg.Email.SMTPPort == 0 {
		cfg.Email.SMTPPort = 587
	}
	if cfg.Email.FromName == "" {
		cfg.Email.FromName = "SkillSwap"
	}
}

// Validate проверяет обязательные параметры
func (c *Config) Validate() error {
	var problems []string
	if c.Database.DSN == "" {
		problems = append(problems, "database.url (DATABASE_URL) is required")
	}
	if c.JWT.Secret == "" {
		problems = append(problems, "jwt.secret (JWT_SECRET) is required")
	}
	if c.Reminders.Interval < 0 || c.Reminders.Window < 0 {
		problems = append(problems, "reminders.interval and reminders.window must be positive")
	}
	if c.Upload.MaxSize < 0 {
		problems = append(problems, "upload.max_size must be positive")
	}
	switch c.Storage.Type {
	case "local", "s3":
	default:
		problems = append(problems, fmt.Sprintf("unsupported storage.type %q", c.Storage.Type))
	}
	if len(problems) > 0 {
		return errors.New("invalid config: " + strings.Join(problems, "; "))
	}
	return nil
}

// IsProduction - вспомогательный метод для переключения поведения
func (c *Config) IsProduction() bool {
	return c.Server.Env == "production"
}

// SMTPEnabled - настроена ли отправка писем
func (c *Config) SMTPEnabled() bool {
	return c.Email.SMTPHost != "" && c.Email.FromEmail != ""
}
