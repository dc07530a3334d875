package config

import (
	"strings"

	"github.com/joho/godotenv"
)

// Config holds application configuration.
type Config struct {
	AppName     string
	AppVersion  string
	Environment string
	HTTPAddr    string

	OTLPEndpoint string

	DBType            string
	DBHost            string
	DBPort            string
	DBName            string
	DBUser            string
	DBPassword        string
	DBSSLMode         string
	DBPath            string
	DBMaxIdleConn     int
	DBMaxOpenConn     int
	DBConnMaxLifetime int
	DBConnMaxIdleTime int

	SnowflakeNode int64

	ExportConfigPath  string
	WatchExportConfig bool

	SeedDemoCatalog bool
}

// Load loads configuration from environment variables and .env file.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		AppName:           Env("APP_SERVICE", "shopdesk"),
		AppVersion:        Env("APP_VERSION", "0.1.0"),
		Environment:       Env("ENVIRONMENT", "development"),
		HTTPAddr:          Env("HTTP_ADDR", ":8080"),
		OTLPEndpoint:      Env("OTLP_ENDPOINT", "localhost:4317"),
		DBType:            EnvLower("DATABASE_TYPE", "sqlite"),
		DBHost:            Env("DATABASE_HOST", "localhost"),
		DBPort:            Env("DATABASE_PORT", "5432"),
		DBName:            Env("DATABASE_NAME", "shopdesk"),
		DBUser:            Env("DATABASE_USER", "postgres"),
		DBPassword:        Env("DATABASE_PASSWORD", ""),
		DBSSLMode:         Env("DATABASE_SSLMODE", "disable"),
		DBPath:            Env("DATABASE_PATH", "shopdesk.db"),
		DBMaxIdleConn:     EnvInt("DATABASE_MAX_IDLE_CONN", 5),
		DBMaxOpenConn:     EnvInt("DATABASE_MAX_OPEN_CONN", 20),
		DBConnMaxLifetime: EnvInt("DATABASE_CONN_MAX_LIFETIME", 300),
		DBConnMaxIdleTime: EnvInt("DATABASE_CONN_MAX_IDLE_TIME", 60),
		SnowflakeNode:     EnvInt64("SNOWFLAKE_NODE", 1),
		ExportConfigPath:  Env("EXPORT_CONFIG_PATH", ""),
		WatchExportConfig: EnvBool("EXPORT_CONFIG_WATCH", true),
		SeedDemoCatalog:   EnvBool("SEED_DEMO_CATALOG", false),
	}
}

func (c Config) IsProduction() bool {
	return strings.EqualFold(strings.TrimSpace(c.Environment), "production")
}
