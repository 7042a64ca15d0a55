package config

import (
	"fmt"
	"net"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory   = "memory"
	StorageRedis    = "redis"
	StoragePostgres = "postgres"
	StorageSQLite   = "sqlite"

	AuthJWT      = "jwt"
	AuthFirebase = "firebase"
)

type Config struct {
	LogLevel     string            `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort     string            `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	Storage      Storage           `yaml:"storage"`
	Postgres     Postgres          `yaml:"postgres"`
	Redis        Redis             `yaml:"redis"`
	SQLite       SQLite            `yaml:"sqlite"`
	Auth         Auth              `yaml:"auth"`
	CORS         CORS              `yaml:"cors"`
	ClientConfig map[string]string `yaml:"client-config"`
}

type Storage struct {
	Driver string `yaml:"driver" env:"STORAGE_DRIVER" env-default:"memory"`
}

type Postgres struct {
	DSN string `yaml:"dsn" env:"POSTGRES_DSN"`
}

type Redis struct {
	Host     string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port     string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	Password string `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int    `yaml:"db" env:"REDIS_DB" env-default:"0"`
}

type SQLite struct {
	Path string `yaml:"path" env:"SQLITE_PATH" env-default:"rooms.db"`
}

type Auth struct {
	Provider          string `yaml:"provider" env:"AUTH_PROVIDER" env-default:"jwt"`
	JWTSecretKey      string `yaml:"jwt-secret-key" env:"JWT_SECRET_KEY"`
	JWTIssuer         string `yaml:"jwt-issuer" env:"JWT_ISSUER"`
	FirebaseAPIKey    string `yaml:"firebase-api-key" env:"FIREBASE_API_KEY"`
	FirebaseLookupURL string `yaml:"firebase-lookup-url" env:"FIREBASE_LOOKUP_URL"`
}

type CORS struct {
	AllowedOrigins []string `yaml:"allowed-origins" env:"CORS_ALLOWED_ORIGINS" env-separator:","`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(err)
	}

	return config
}

// Load - reads path, applies environment overrides and checks the combination of settings.
func Load(path string) (*Config, error) {
	config := &Config{}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return config, nil
}

func (that *Config) Validate() error {
	switch that.Storage.Driver {
	case StorageMemory, StorageRedis, StorageSQLite:
	case StoragePostgres:
		if that.Postgres.DSN == "" {
			return fmt.Errorf("postgres.dsn is required for the %s storage driver", StoragePostgres)
		}
	default:
		return fmt.Errorf("unknown storage driver %q", that.Storage.Driver)
	}

	switch that.Auth.Provider {
	case AuthJWT:
		if that.Auth.JWTSecretKey == "" {
			return fmt.Errorf("auth.jwt-secret-key is required for the %s provider", AuthJWT)
		}
	case AuthFirebase:
	default:
		return fmt.Errorf("unknown auth provider %q", that.Auth.Provider)
	}

	return nil
}

func (that *Redis) GetRedisAddr() string {
	return net.JoinHostPort(that.Host, that.Port)
}
