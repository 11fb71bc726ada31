package config

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendMemory   = "memory"
	BackendPostgres = "postgres"
	BackendLedger   = "ledger"
)

type HTTPServer struct {
	Port string `mapstructure:"port"`
}

type DbServer struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Pass     string `mapstructure:"pass"`
	Name     string `mapstructure:"name"`
	MaxConns int32  `mapstructure:"max_conns"`
}

func (config *DbServer) GetConnectionStr() string {
	return fmt.Sprintf(
		"user=%s password=%s host=%s port=%s dbname=%s sslmode=disable",
		config.User, config.Pass, config.Host, config.Port, config.Name,
	)
}

type Auth struct {
	HeaderName string `mapstructure:"header_name"`
	APIKey     string `mapstructure:"api_key"`
}

type Storage struct {
	Backend string `mapstructure:"backend"`
}

type Ledger struct {
	NodeURL        string `mapstructure:"node_url"`
	AccessKey      string `mapstructure:"access_key"`
	TimeoutSeconds int    `mapstructure:"timeout_seconds"`
}

type Cache struct {
	MaxItems int64 `mapstructure:"max_items"`
}

type Logging struct {
	Level string `mapstructure:"level"`
}

type AppConfig struct {
	HTTPServer HTTPServer `mapstructure:"http_server"`
	DbServer   DbServer   `mapstructure:"db_server"`
	Auth       Auth       `mapstructure:"auth"`
	Storage    Storage    `mapstructure:"storage"`
	Ledger     Ledger     `mapstructure:"ledger"`
	Cache      Cache      `mapstructure:"cache"`
	Logging    Logging    `mapstructure:"logging"`
}

func Init() (*AppConfig, error) {
	var cfg AppConfig

	// .env is optional; env vars may come from the environment itself.
	_ = godotenv.Load()

	viper.SetConfigFile("config.yaml")
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	viper.SetDefault("db_server.max_conns", 10)
	viper.SetDefault("storage.backend", BackendMemory)
	viper.SetDefault("auth.header_name", "api_key")
	viper.SetDefault("ledger.timeout_seconds", 10)
	viper.SetDefault("cache.max_items", 64)
	viper.SetDefault("logging.level", "info")

	// db server env vars
	_ = viper.BindEnv("db_server.host", "DB_HOST")
	_ = viper.BindEnv("db_server.port", "DB_PORT")
	_ = viper.BindEnv("db_server.user", "DB_USER")
	_ = viper.BindEnv("db_server.pass", "DB_PASS")
	_ = viper.BindEnv("db_server.name", "DB_NAME")
	_ = viper.BindEnv("db_server.max_conns", "DB_MAX_CONNS")

	// auth env vars
	_ = viper.BindEnv("auth.header_name", "API_KEY_NAME")
	_ = viper.BindEnv("auth.api_key", "API_KEY_AUTH")

	// storage backend selection
	_ = viper.BindEnv("storage.backend", "STORAGE_BACKEND")

	// ledger env vars
	_ = viper.BindEnv("ledger.node_url", "LEDGER_NODE_URL")
	_ = viper.BindEnv("ledger.access_key", "LEDGER_ACCESS_KEY")
	_ = viper.BindEnv("ledger.timeout_seconds", "LEDGER_TIMEOUT_SECONDS")

	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}

	switch cfg.Storage.Backend {
	case BackendMemory, BackendPostgres, BackendLedger:
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Storage.Backend)
	}
	if cfg.Auth.APIKey == "" {
		return nil, fmt.Errorf("auth api key is required")
	}

	return &cfg, nil
}
