package config

import (
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const defaultPath = "config/local.yaml"

type Config struct {
	Env             string        `yaml:"env" env:"ENV" env-default:"local"`
	StoragePath     string        `yaml:"storage_path" env:"STORAGE_PATH" env-required:"true"`
	StorageTimeout  time.Duration `yaml:"storage_timeout" env:"STORAGE_TIMEOUT" env-default:"5s"`
	MigrationsTable string        `yaml:"migrations_table" env:"MIGRATIONS_TABLE" env-default:"schema_migrations"`
	HTTP            HTTPConfig    `yaml:"http"`
	Auth            AuthConfig    `yaml:"auth"`
	Notify          NotifyConfig  `yaml:"notify"`
}

type HTTPConfig struct {
	Port           int           `yaml:"port" env:"HTTP_PORT" env-default:"8080"`
	ReadTimeout    time.Duration `yaml:"read_timeout" env:"HTTP_READ_TIMEOUT" env-default:"10s"`
	WriteTimeout   time.Duration `yaml:"write_timeout" env:"HTTP_WRITE_TIMEOUT" env-default:"10s"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"HTTP_ALLOWED_ORIGINS" env-separator:","`
}

// AuthConfig holds the verifying side only. Tokens are issued by the
// external auth service that shares Secret.
type AuthConfig struct {
	Secret string `yaml:"secret" env:"AUTH_SECRET" env-required:"true"`
}

type NotifyConfig struct {
	WebhookURL string        `yaml:"webhook_url" env:"NOTIFY_WEBHOOK_URL"`
	Timeout    time.Duration `yaml:"timeout" env:"NOTIFY_TIMEOUT" env-default:"5s"`
}

// MustLoad reads the config from the path given by the -config flag, the
// CONFIG_PATH env var or config/local.yaml, in that order.
func MustLoad() *Config {
	cfg, err := Load(fetchConfigPath())
	if err != nil {
		log.Fatalf("cannot read config: %s", err)
	}
	return cfg
}

func Load(path string) (*Config, error) {
	if _, err := os.Stat(path); err != nil {
		return nil, fmt.Errorf("config file %q: %w", path, err)
	}

	var config Config
	if err := cleanenv.ReadConfig(path, &config); err != nil {
		return nil, err
	}
	return &config, nil
}

func fetchConfigPath() string {
	var path string

	if f := flag.Lookup("config"); f != nil {
		path = f.Value.String()
	} else {
		flag.StringVar(&path, "config", "", "path to config file")
		flag.Parse()
	}

	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = defaultPath
	}
	return path
}
