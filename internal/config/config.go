package config

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"regexp"

	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
)

const (
	defaultBaseURL       = "localhost:8081"
	defaultAuthSecret    = "dev-secret-key"
	defaultMaxAttachment = 10
	dbFileName           = "rgflow.db"
)

var hostPortRe = regexp.MustCompile(`^[A-Za-z0-9\.\-]+:\d{1,5}$`)

type Config struct {
	// Server-side settings
	DatabaseDSN string `env:"DATABASE_URI"`
	AuthSecret  string `env:"AUTH_SECRET"`
	Credentials string `env:"RGFLOW_CREDENTIALS"` // email:bcrypt-hash,...
	DevMode     bool   `env:"RGFLOW_DEV"`

	// Shared settings
	BaseURL         string `env:"BASE_URL"`
	EnableHTTPS     bool   `env:"ENABLE_HTTPS"`
	MaxAttachmentMB int    `env:"MAX_ATTACHMENT_MB"`

	// Client-side settings
	ServerURL string `env:"-"`
	AssumeYes bool   `env:"-"` // подтверждать удаление/выход без вопроса (flag only)
	Version   bool   `env:"-"` // show client version and exit (flag only)
}

func NewConfig() *Config {
	_ = godotenv.Load()

	cfg := &Config{}
	_ = env.Parse(cfg)

	// flags работают ТОЛЬКО если переменные из env не заданы
	// Server flags
	flag.StringVar(&cfg.DatabaseDSN, "d", cfg.DatabaseDSN, "строка подключения к БД (sqlite-файл или postgres://...)")
	flag.StringVar(&cfg.AuthSecret, "auth-secret", cfg.AuthSecret, "секрет для подписи JWT")
	flag.StringVar(&cfg.Credentials, "credentials", cfg.Credentials, "учётные записи: email:bcrypt-hash через запятую")
	flag.BoolVar(&cfg.DevMode, "dev", cfg.DevMode, "включить демо-учётку admin@rgflow.com")
	// Shared flags
	flag.StringVar(&cfg.BaseURL, "base-url", cfg.BaseURL, "address:port of the RGFlow server")
	flag.BoolVar(&cfg.EnableHTTPS, "https", cfg.EnableHTTPS, "enable HTTPS")
	flag.IntVar(&cfg.MaxAttachmentMB, "max-attachment-mb", cfg.MaxAttachmentMB, "лимит размера одного файла, МБ")
	// Client flags
	flag.BoolVar(&cfg.AssumeYes, "y", cfg.AssumeYes, "answer yes to confirmations")
	flag.BoolVar(&cfg.Version, "version", cfg.Version, "Show client version and exit")

	flag.Parse()

	// Defaults
	if cfg.AuthSecret == "" {
		cfg.AuthSecret = defaultAuthSecret
	}
	if cfg.MaxAttachmentMB <= 0 {
		cfg.MaxAttachmentMB = defaultMaxAttachment
	}
	// validate BaseURL: must be in "address:port" (no scheme, no path). Otherwise use default.
	if !hostPortRe.MatchString(cfg.BaseURL) {
		cfg.BaseURL = defaultBaseURL
	}

	if cfg.EnableHTTPS {
		cfg.ServerURL = "https://" + cfg.BaseURL
	} else {
		cfg.ServerURL = "http://" + cfg.BaseURL
	}

	return cfg
}

// MaxAttachmentBytes — лимит файла в байтах.
func (c *Config) MaxAttachmentBytes() int64 {
	return int64(c.MaxAttachmentMB) << 20
}

// ServerDSN — DSN сервера; по умолчанию rgflow.db в текущем каталоге.
func (c *Config) ServerDSN() string {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN
	}
	return dbFileName
}

// ClientDSN — DSN локального клиента; по умолчанию <user config dir>/rgflow/rgflow.db.
func (c *Config) ClientDSN() (string, error) {
	if c.DatabaseDSN != "" {
		return c.DatabaseDSN, nil
	}
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config dir: %w", err)
	}
	dir = filepath.Join(dir, "rgflow")
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return "", fmt.Errorf("create config dir: %w", err)
	}
	return filepath.Join(dir, dbFileName), nil
}
