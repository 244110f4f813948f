package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DriverPostgres stores employees in PostgreSQL.
	DriverPostgres = "postgres"
	// DriverMemory keeps employees in process memory; data is lost on restart.
	DriverMemory = "memory"
	// DriverObjectStore stores employees as JSON objects in an S3-compatible bucket.
	DriverObjectStore = "objectstore"
)

// DatabaseConfig holds PostgreSQL database connection settings.
type DatabaseConfig struct {
	Host               string
	Port               string
	User               string
	Password           string
	Name               string
	SSLMode            string
	AppName            string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeSec int
	PingTimeoutSec     int
	AutoMigrate        bool
	MigrationsDir      string
}

// MinIOConfig holds object storage settings for MinIO.
type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	Prefix    string
	UseSSL    bool
}

// TracingConfig mirrors the standard OTEL_* variables consumed by internal/otel.
type TracingConfig struct {
	Disabled    bool
	ServiceName string
	Protocol    string
	Sampler     string
	SamplerArg  string
}

// AppConfig is the centralized configuration struct for the application.
type AppConfig struct {
	Env           string
	Port          string
	StorageDriver string
	Database      DatabaseConfig
	MinIO         MinIOConfig
	Tracing       TracingConfig
}

// Load reads configuration from environment variables and, when CONFIG_PATH is set,
// from the referenced file. Real environment variables take precedence over the file.
// A .env file can be auto-loaded by importing: _ "github.com/joho/godotenv/autoload"
func Load() (*AppConfig, error) {
	v := viper.New()
	setDefaults(v)

	if path := os.Getenv("CONFIG_PATH"); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	v.AutomaticEnv()

	cfg := &AppConfig{
		Env:           v.GetString("APP_ENV"),
		Port:          v.GetString("PORT"),
		StorageDriver: strings.ToLower(v.GetString("STORAGE_DRIVER")),
		Database: DatabaseConfig{
			Host:               v.GetString("DB_HOST"),
			Port:               v.GetString("DB_PORT"),
			User:               v.GetString("DB_USER"),
			Password:           v.GetString("DB_PASSWORD"),
			Name:               v.GetString("DB_NAME"),
			SSLMode:            v.GetString("DB_SSLMODE"),
			AppName:            v.GetString("DB_APP_NAME"),
			MaxOpenConns:       v.GetInt("DB_MAX_OPEN_CONNS"),
			MaxIdleConns:       v.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetimeSec: v.GetInt("DB_CONN_MAX_LIFETIME_SEC"),
			PingTimeoutSec:     v.GetInt("DB_PING_TIMEOUT_SEC"),
			AutoMigrate:        v.GetBool("DB_AUTO_MIGRATE"),
			MigrationsDir:      v.GetString("MIGRATIONS_DIR"),
		},
		MinIO: MinIOConfig{
			Endpoint:  v.GetString("MINIO_ENDPOINT"),
			AccessKey: v.GetString("MINIO_ACCESS_KEY"),
			SecretKey: v.GetString("MINIO_SECRET_KEY"),
			Bucket:    v.GetString("MINIO_BUCKET"),
			Prefix:    strings.Trim(v.GetString("MINIO_PREFIX"), "/"),
			UseSSL:    v.GetBool("MINIO_USE_SSL"),
		},
		Tracing: TracingConfig{
			Disabled:    v.GetBool("OTEL_SDK_DISABLED"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
			Protocol:    v.GetString("OTEL_EXPORTER_OTLP_PROTOCOL"),
			Sampler:     v.GetString("OTEL_TRACES_SAMPLER"),
			SamplerArg:  v.GetString("OTEL_TRACES_SAMPLER_ARG"),
		},
	}

	switch cfg.StorageDriver {
	case DriverPostgres, DriverMemory, DriverObjectStore:
	default:
		return nil, fmt.Errorf("unsupported STORAGE_DRIVER %q", cfg.StorageDriver)
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("APP_ENV", "local")
	v.SetDefault("PORT", "8080")
	v.SetDefault("STORAGE_DRIVER", DriverPostgres)

	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_APP_NAME", "employeeapi")
	v.SetDefault("DB_MAX_OPEN_CONNS", 10)
	v.SetDefault("DB_MAX_IDLE_CONNS", 5)
	v.SetDefault("DB_CONN_MAX_LIFETIME_SEC", 300)
	v.SetDefault("DB_PING_TIMEOUT_SEC", 5)
	v.SetDefault("DB_AUTO_MIGRATE", false)
	v.SetDefault("MIGRATIONS_DIR", "migrations")

	v.SetDefault("MINIO_PREFIX", "employees")
	v.SetDefault("MINIO_USE_SSL", false)

	v.SetDefault("OTEL_SDK_DISABLED", false)
	v.SetDefault("OTEL_SERVICE_NAME", "employeeapi")
	v.SetDefault("OTEL_EXPORTER_OTLP_PROTOCOL", "grpc")
	v.SetDefault("OTEL_TRACES_SAMPLER", "parentbased_traceidratio")
	v.SetDefault("OTEL_TRACES_SAMPLER_ARG", "1.0")
}
