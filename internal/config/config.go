package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	StorageMemory = "memory"
	StorageRedis  = "redis"
)

type Config struct {
	LogLevel   string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info"`
	HTTPPort   string    `yaml:"http-port" env:"HTTP_PORT" env-default:"9090"`
	SocketPort string    `yaml:"socket-port" env:"SOCKET_PORT" env-default:"9091"`
	Storage    string    `yaml:"storage" env:"STORAGE" env-default:"memory"`
	Redis      Redis     `yaml:"redis"`
	Game       Game      `yaml:"game"`
	Telemetry  Telemetry `yaml:"telemetry"`
}

type Redis struct {
	Host string `yaml:"host" env:"REDIS_HOST" env-default:"localhost"`
	Port string `yaml:"port" env:"REDIS_PORT" env-default:"6379"`
}

type Game struct {
	// ComputerDelay is the pause before the computer's move is applied, as a duration string.
	// A zero duration would be replaced by the default, "0s" is not.
	ComputerDelay  string        `yaml:"computer-delay" env:"GAME_COMPUTER_DELAY" env-default:"500ms"`
	SessionTTL     time.Duration `yaml:"session-ttl" env:"GAME_SESSION_TTL" env-default:"1h"`
	DisablePruning bool          `yaml:"disable-pruning" env:"GAME_DISABLE_PRUNING"`
}

type Telemetry struct {
	// Endpoint of the OTLP gRPC collector. Empty disables exporting.
	Endpoint    string `yaml:"endpoint" env:"OTEL_ENDPOINT" env-default:""`
	ServiceName string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tictactoe-engine"`
}

// MustLoad - load all configurations in config.yml file.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config file: %w", err))
	}

	return config
}

// Load reads the yaml file at path overlaid by environment variables.
// A missing file leaves environment variables and defaults only.
func Load(path string) (*Config, error) {
	config := &Config{}

	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		if err = cleanenv.ReadEnv(config); err != nil {
			return nil, fmt.Errorf("failed to read env: %w", err)
		}
		return config, config.validate()
	}

	if err := cleanenv.ReadConfig(path, config); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	return config, config.validate()
}

func (that *Config) validate() error {
	switch that.Storage {
	case StorageMemory, StorageRedis:
	default:
		return fmt.Errorf("unknown storage %q", that.Storage)
	}

	delay, err := time.ParseDuration(that.Game.ComputerDelay)
	if err != nil {
		return fmt.Errorf("invalid computer delay %q: %w", that.Game.ComputerDelay, err)
	}

	if delay < 0 {
		return fmt.Errorf("computer delay must not be negative: %s", delay)
	}

	return nil
}

// Delay returns the parsed computer delay. Load has already rejected malformed values.
func (that Game) Delay() time.Duration {
	delay, _ := time.ParseDuration(that.ComputerDelay)
	return delay
}

func (that *Redis) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", that.Host, that.Port)
}
