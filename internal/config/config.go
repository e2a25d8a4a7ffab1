package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	LogLevel   string `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	SocketPort string `yaml:"socket-port" env:"SOCKET_PORT" env-default:"44322"`
	HTTPPort   string `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	TLS        TLS    `yaml:"tls"`
	Game       Game   `yaml:"game"`
	Redis      Redis  `yaml:"redis"`
}

// TLS - PEM certificate and key for the socket listener; plain TCP when empty.
type TLS struct {
	CertFile string `yaml:"cert-file" env:"TLS_CERT_FILE" env-default:""`
	KeyFile  string `yaml:"key-file" env:"TLS_KEY_FILE" env-default:""`
}

type Game struct {
	Clock time.Duration `yaml:"clock" env:"GAME_CLOCK" env-default:"10m"`
}

type Redis struct {
	Enabled     bool          `yaml:"enabled" env:"REDIS_ENABLED" env-default:"false"`
	Host        string        `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port        string        `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
	SnapshotTTL time.Duration `yaml:"snapshot-ttl" env:"REDIS_SNAPSHOT_TTL" env-default:"1h"`
}

// MustLoad - load all configurations from the config file, or from the environment when the file is absent.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load - reads the config file at path; a missing file falls back to environment variables only.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("unable to read environment: %w", err)
		}

		return config, nil
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("unable to load config file: %w", err)
	}

	return config, nil
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}

func (that *TLS) Enabled() bool {
	return that.CertFile != "" && that.KeyFile != ""
}
