package config

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

const (
	DefaultServerAddr     = ":8080"
	DefaultBaseURL        = "http://localhost:8080"
	DefaultAPIBaseURL     = "https://api.alquran.cloud/v1"
	DefaultImageBaseURL   = "https://cdn.islamic.network/quran/images"
	DefaultRequestTimeout = 10 * time.Second
	DefaultSessionTTL     = 24 * time.Hour
	DefaultFilePath       = "sessions.json"
	DefaultAuditFilePath  = "audit.log"
	DefaultPprofAddr      = "localhost:6060"
	DefaultLogLevel       = "info"
	DefaultSecretKey      = "guess_me"
)

// Config содержит конфигурацию приложения.
// Приоритет: флаги > переменные окружения (в том числе из .env) > JSON-файл > значения по умолчанию.
type Config struct {
	ServerAddr     string        `json:"server_address" env:"SERVER_ADDRESS"`
	BaseURL        string        `json:"base_url" env:"BASE_URL"`
	GRPCAddr       string        `json:"grpc_address" env:"GRPC_ADDRESS"`
	APIBaseURL     string        `json:"api_base_url" env:"API_BASE_URL"`
	ImageBaseURL   string        `json:"image_base_url" env:"IMAGE_BASE_URL"`
	RequestTimeout time.Duration `json:"request_timeout" env:"REQUEST_TIMEOUT"`
	FilePath       string        `json:"file_storage_path" env:"FILE_STORAGE_PATH"`
	DBurl          string        `json:"database_dsn" env:"DATABASE_DSN"`
	RedisURL       string        `json:"redis_url" env:"REDIS_URL"`
	SessionTTL     time.Duration `json:"session_ttl" env:"SESSION_TTL"`
	SecretKey      string        `json:"-" env:"KEY"`
	AuditFile      string        `json:"audit_file" env:"AUDIT_FILE"`
	AuditURL       string        `json:"audit_url" env:"AUDIT_URL"`
	PprofAddr      string        `json:"pprof_address" env:"PPROF_ADDRESS"`
	TrustedSubnet  string        `json:"trusted_subnet" env:"TRUSTED_SUBNET"`
	LogLevel       string        `json:"log_level" env:"LOG_LEVEL"`
	EnableHTTPS    bool          `json:"enable_https" env:"ENABLE_HTTPS"`
	CertFile       string        `json:"cert_file" env:"CERT_FILE"`
	KeyFile        string        `json:"key_file" env:"KEY_FILE"`
}

// NewConfig собирает конфигурацию из аргументов командной строки процесса
func NewConfig() (*Config, error) {
	return Parse(os.Args[1:])
}

// Parse собирает конфигурацию из переданных аргументов
func Parse(args []string) (*Config, error) {
	c := &Config{
		ServerAddr:     DefaultServerAddr,
		BaseURL:        DefaultBaseURL,
		APIBaseURL:     DefaultAPIBaseURL,
		ImageBaseURL:   DefaultImageBaseURL,
		RequestTimeout: DefaultRequestTimeout,
		SessionTTL:     DefaultSessionTTL,
		FilePath:       DefaultFilePath,
		AuditFile:      DefaultAuditFilePath,
		PprofAddr:      DefaultPprofAddr,
		LogLevel:       DefaultLogLevel,
		SecretKey:      DefaultSecretKey,
	}

	if err := c.loadFromFile(getConfigPath(args)); err != nil {
		return nil, err
	}
	if err := c.getArgsFromEnv(); err != nil {
		return nil, err
	}
	if err := c.getArgsFromCli(args); err != nil {
		return nil, err
	}

	return c, nil
}

func getConfigPath(args []string) string {
	for i, arg := range args {
		if (arg == "-c" || arg == "-config") && i+1 < len(args) {
			return args[i+1]
		}
	}
	return os.Getenv("CONFIG")
}

func (c *Config) loadFromFile(filename string) error {
	if filename == "" {
		return nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return fmt.Errorf("read config file: %w", err)
	}
	if err := json.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}
	return nil
}

func (c *Config) getArgsFromCli(args []string) error {
	flags := flag.NewFlagSet("quranverse", flag.ContinueOnError)

	flags.StringVar(&c.ServerAddr, "a", c.ServerAddr, "server host")
	flags.StringVar(&c.BaseURL, "b", c.BaseURL, "public base url of the form")
	flags.StringVar(&c.GRPCAddr, "g", c.GRPCAddr, "gRPC server address")
	flags.StringVar(&c.APIBaseURL, "api", c.APIBaseURL, "alquran.cloud API base url")
	flags.StringVar(&c.ImageBaseURL, "images", c.ImageBaseURL, "verse images base url")
	flags.DurationVar(&c.RequestTimeout, "timeout", c.RequestTimeout, "translation request timeout")
	flags.StringVar(&c.FilePath, "f", c.FilePath, "file storage path")
	flags.StringVar(&c.DBurl, "d", c.DBurl, "database DSN")
	flags.StringVar(&c.RedisURL, "r", c.RedisURL, "redis URL")
	flags.DurationVar(&c.SessionTTL, "ttl", c.SessionTTL, "session TTL in redis")
	flags.StringVar(&c.SecretKey, "k", c.SecretKey, "secret key")
	flags.StringVar(&c.AuditFile, "audit-file", c.AuditFile, "audit file path")
	flags.StringVar(&c.AuditURL, "audit-url", c.AuditURL, "audit server URL")
	flags.StringVar(&c.PprofAddr, "pprof", c.PprofAddr, "pprof server address")
	flags.StringVar(&c.TrustedSubnet, "t", c.TrustedSubnet, "trusted subnet CIDR")
	flags.StringVar(&c.LogLevel, "l", c.LogLevel, "log level")
	flags.BoolVar(&c.EnableHTTPS, "s", c.EnableHTTPS, "enable HTTPS")
	flags.StringVar(&c.CertFile, "cert", c.CertFile, "TLS certificate file")
	flags.StringVar(&c.KeyFile, "key", c.KeyFile, "TLS key file")
	flags.String("c", "", "config file path")
	flags.String("config", "", "config file path")

	return flags.Parse(args)
}

func (c *Config) getArgsFromEnv() error {
	// .env необязателен
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("load .env: %w", err)
	}
	if err := env.Parse(c); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	return nil
}

func (c Config) GetAddress() string {
	return c.ServerAddr
}

func (c Config) GetBaseURL() string {
	return c.BaseURL
}

func (c Config) GetFilePath() string {
	return c.FilePath
}

func (c Config) GetAuditFile() string {
	return c.AuditFile
}

func (c Config) GetAuditURL() string {
	return c.AuditURL
}
