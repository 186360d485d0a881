package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/spf13/viper"
)

const (
	SessionBackendMemory = "memory"
	SessionBackendRedis  = "redis"
)

type Config struct {
	Server  ServerConfig
	Storage StorageConfig
	Auth    AuthConfig
	Quiz    QuizConfig
	Redis   RedisConfig
	Ingest  IngestConfig
	Logger  LoggerConfig
}

type ServerConfig struct {
	Port         int
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	BodyLimitMB  int
}

// StorageConfig describes the asset storage root. Originals live directly
// under AssetDir, thumbnails under AssetDir/thumbs.
type StorageConfig struct {
	AssetDir       string
	CatalogFile    string
	MaxImagePixels int
}

type AuthConfig struct {
	AdminToken string
}

type QuizConfig struct {
	SessionTTL     time.Duration
	SweepInterval  time.Duration
	SessionBackend string
}

type RedisConfig struct {
	Address  string `yaml:"address"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type IngestConfig struct {
	BulkConcurrency int
}

type LoggerConfig struct {
	Level string
	Env   string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.port", 8090)
	v.SetDefault("server.read_timeout", 20)
	v.SetDefault("server.write_timeout", 20)
	v.SetDefault("server.body_limit_mb", 20)

	v.SetDefault("storage.asset_dir", "./data/assets")
	v.SetDefault("storage.catalog_file", "assets_index.json")
	v.SetDefault("storage.max_image_pixels", 40_000_000)

	v.SetDefault("quiz.session_ttl", "5m")
	v.SetDefault("quiz.sweep_interval", "60s")
	v.SetDefault("quiz.session_backend", SessionBackendMemory)

	v.SetDefault("redis.db", 0)
	v.SetDefault("ingest.bulk_concurrency", 4)

	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.env", "development")
}

func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.AddConfigPath(path)
	}
	if os.Getenv("ENV") == "test" {
		v.AddConfigPath("../../config")
		v.AddConfigPath("../../")
	} else {
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	setDefaults(v)
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if configFile := v.ConfigFileUsed(); configFile != "" {
		absPath, _ := filepath.Abs(configFile)
		fmt.Printf("Using config file: %s\n", absPath)
	}

	config := &Config{
		Server: ServerConfig{
			Port:         v.GetInt("server.port"),
			ReadTimeout:  time.Duration(v.GetInt("server.read_timeout")) * time.Second,
			WriteTimeout: time.Duration(v.GetInt("server.write_timeout")) * time.Second,
			BodyLimitMB:  v.GetInt("server.body_limit_mb"),
		},
		Storage: StorageConfig{
			AssetDir:       v.GetString("storage.asset_dir"),
			CatalogFile:    v.GetString("storage.catalog_file"),
			MaxImagePixels: v.GetInt("storage.max_image_pixels"),
		},
		Auth: AuthConfig{
			AdminToken: v.GetString("auth.admin_token"),
		},
		Quiz: QuizConfig{
			SessionTTL:     v.GetDuration("quiz.session_ttl"),
			SweepInterval:  v.GetDuration("quiz.sweep_interval"),
			SessionBackend: v.GetString("quiz.session_backend"),
		},
		Redis: RedisConfig{
			Address:  v.GetString("redis.address"),
			Password: v.GetString("redis.password"),
			DB:       v.GetInt("redis.db"),
		},
		Ingest: IngestConfig{
			BulkConcurrency: v.GetInt("ingest.bulk_concurrency"),
		},
		Logger: LoggerConfig{
			Level: v.GetString("logger.level"),
			Env:   v.GetString("logger.env"),
		},
	}

	// Override with environment variables if set
	if token := os.Getenv("ADMIN_TOKEN"); token != "" {
		config.Auth.AdminToken = token
	}
	if dir := os.Getenv("ASSET_DIR"); dir != "" {
		config.Storage.AssetDir = dir
	}
	if port := os.Getenv("SERVER_PORT"); port != "" {
		parsed, err := strconv.Atoi(port)
		if err != nil {
			return nil, fmt.Errorf("invalid SERVER_PORT: %w", err)
		}
		config.Server.Port = parsed
	}
	if redisAddress := os.Getenv("REDIS_ADDRESS"); redisAddress != "" {
		config.Redis.Address = redisAddress
	}
	if redisPassword := os.Getenv("REDIS_PASSWORD"); redisPassword != "" {
		config.Redis.Password = redisPassword
	}
	if backend := os.Getenv("SESSION_BACKEND"); backend != "" {
		config.Quiz.SessionBackend = backend
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	if c.Storage.AssetDir == "" {
		return fmt.Errorf("storage.asset_dir must not be empty")
	}
	if c.Storage.CatalogFile == "" || filepath.Base(c.Storage.CatalogFile) != c.Storage.CatalogFile {
		return fmt.Errorf("storage.catalog_file must be a bare file name, got %q", c.Storage.CatalogFile)
	}
	if c.Quiz.SessionTTL <= 0 || c.Quiz.SweepInterval <= 0 {
		return fmt.Errorf("quiz.session_ttl and quiz.sweep_interval must be positive")
	}
	switch c.Quiz.SessionBackend {
	case SessionBackendMemory, SessionBackendRedis:
	default:
		return fmt.Errorf("unsupported quiz.session_backend: %s", c.Quiz.SessionBackend)
	}
	if c.Ingest.BulkConcurrency < 1 {
		c.Ingest.BulkConcurrency = 1
	}
	return nil
}

// CatalogPath returns the absolute location of the persisted asset catalog.
func (c *Config) CatalogPath() string {
	return filepath.Join(c.Storage.AssetDir, c.Storage.CatalogFile)
}
