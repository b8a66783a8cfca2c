package config

import (
	"errors"
	"fmt"

	"github.com/ilyakaznacheev/cleanenv"

	"github.com/rocketscienceinc/uttt-engine/internal/apperror"
	"github.com/rocketscienceinc/uttt-engine/internal/entity"
)

var ErrUnknownLogLevel = errors.New("unknown log level")

type Config struct {
	LogLevel            string          `yaml:"log-level" env:"UTTT_LOG_LEVEL" env-default:"info"`
	BoardSize           int             `yaml:"board-size" env:"UTTT_BOARD_SIZE" env-default:"3"`
	Players             []entity.Player `yaml:"players"`
	KeepLastMoveOnReset bool            `yaml:"keep-last-move-on-reset" env:"UTTT_KEEP_LAST_MOVE_ON_RESET" env-default:"false"`
	NoColor             bool            `yaml:"no-color" env:"UTTT_NO_COLOR" env-default:"false"`
}

// MustLoad - load configuration, panicking on failure.
func MustLoad(path string) *Config {
	config, err := Load(path)
	if err != nil {
		panic(fmt.Errorf("unable to load config: %w", err))
	}

	return config
}

// Load reads the YAML file at path, or only the environment when path is empty.
func Load(path string) (*Config, error) {
	config := &Config{}

	var err error
	if path == "" {
		err = cleanenv.ReadEnv(config)
	} else {
		err = cleanenv.ReadConfig(path, config)
	}
	if err != nil {
		return nil, fmt.Errorf("unable to read config: %w", err)
	}

	if len(config.Players) == 0 {
		config.Players = append([]entity.Player(nil), entity.DefaultPlayers...)
	}

	if err = config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (that *Config) Validate() error {
	if that.BoardSize < 1 {
		return fmt.Errorf("%w: %d", apperror.ErrInvalidBoardSize, that.BoardSize)
	}

	if err := entity.ValidatePlayers(that.Players); err != nil {
		return fmt.Errorf("invalid players: %w", err)
	}

	switch that.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("%w: %q", ErrUnknownLogLevel, that.LogLevel)
	}

	return nil
}
