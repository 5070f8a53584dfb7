package config

import (
	"errors"
	"fmt"
	"time"

	"ctchen222/tic-tac-toe-solo/internal/bot"
	"ctchen222/tic-tac-toe-solo/internal/game"
	"ctchen222/tic-tac-toe-solo/internal/validator"

	"github.com/ilyakaznacheev/cleanenv"
)

// ErrInvalidConfiguration is returned for a missing or malformed setting.
// The game cannot start without a complete configuration.
var ErrInvalidConfiguration = errors.New("invalid configuration")

type Config struct {
	LogLevel        string    `yaml:"log-level" env:"LOG_LEVEL" env-default:"info" validate:"oneof=debug info warn error"`
	LogFormat       string    `yaml:"log-format" env:"LOG_FORMAT" env-default:"text" validate:"oneof=text json"`
	HTTPAddr        string    `yaml:"http-addr" env:"HTTP_ADDR" env-default:":8080" validate:"required"`
	CornerSelection string    `yaml:"corner-selection" env:"CORNER_SELECTION" env-default:"uniform" validate:"oneof=uniform legacy"`
	Players         Players   `yaml:"players"`
	Levels          Levels    `yaml:"levels"`
	Session         Session   `yaml:"session"`
	Redis           Redis     `yaml:"redis"`
	Telemetry       Telemetry `yaml:"telemetry"`
}

// Players holds the display label of each mark and of a draw.
type Players struct {
	X    string `yaml:"x" validate:"required"`
	O    string `yaml:"o" validate:"required"`
	Draw string `yaml:"cat" validate:"required"`
}

// Levels holds, per difficulty, the probability that the opponent plays its
// heuristic move. Pointers tell a missing entry apart from 0.
type Levels struct {
	Easy   *float64 `yaml:"easy" validate:"required,gte=0,lte=1"`
	Medium *float64 `yaml:"medium" validate:"required,gte=0,lte=1"`
	Hard   *float64 `yaml:"hard" validate:"required,gte=0,lte=1"`
}

type Session struct {
	Store       string        `yaml:"store" env:"SESSION_STORE" env-default:"memory" validate:"oneof=memory redis"`
	TTL         time.Duration `yaml:"ttl" env:"SESSION_TTL" env-default:"2h" validate:"gt=0"`
	TokenSecret string        `yaml:"token-secret" env:"SESSION_TOKEN_SECRET" validate:"required,min=16"`
}

type Redis struct {
	Addr string `yaml:"addr" env:"REDIS_CONNSTRING" env-default:"localhost:6379"`
}

type Telemetry struct {
	Enabled     bool   `yaml:"enabled" env:"OTEL_ENABLED"`
	Endpoint    string `yaml:"endpoint" env:"OTEL_EXPORTER_OTLP_ENDPOINT" env-default:"otel-collector:4317"`
	ServiceName string `yaml:"service-name" env:"OTEL_SERVICE_NAME" env-default:"tic-tac-toe-solo"`
}

// Load reads the YAML file at path, applies environment overrides and
// validates the result.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := cleanenv.ReadConfig(path, cfg); err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrInvalidConfiguration, path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks every setting.
func (c *Config) Validate() error {
	if err := validator.Struct(c); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfiguration, err)
	}
	return nil
}

// Probabilities returns the difficulty table in the analyzer's form.
func (c *Config) Probabilities() bot.Probabilities {
	odds := bot.Probabilities{}
	for level, p := range map[game.Level]*float64{
		game.Easy:   c.Levels.Easy,
		game.Medium: c.Levels.Medium,
		game.Hard:   c.Levels.Hard,
	} {
		if p != nil {
			odds[level] = *p
		}
	}
	return odds
}

// Label returns the display name of a mark, or the draw label for game.Empty.
func (p Players) Label(m game.Mark) string {
	switch m {
	case game.PlayerX:
		return p.X
	case game.PlayerO:
		return p.O
	default:
		return p.Draw
	}
}

func ptr(v float64) *float64 { return &v }

// Default returns the stock configuration: labels You / I / CAT and
// probabilities 0.50 / 0.80 / 0.95.
func Default() *Config {
	return &Config{
		LogLevel:        "info",
		LogFormat:       "text",
		HTTPAddr:        ":8080",
		CornerSelection: "uniform",
		Players:         Players{X: "You", O: "I", Draw: "CAT"},
		Levels: Levels{
			Easy:   ptr(0.50),
			Medium: ptr(0.80),
			Hard:   ptr(0.95),
		},
		Session: Session{
			Store:       "memory",
			TTL:         2 * time.Hour,
			TokenSecret: "change-me-please-0123456789",
		},
		Redis: Redis{Addr: "localhost:6379"},
		Telemetry: Telemetry{
			Endpoint:    "otel-collector:4317",
			ServiceName: "tic-tac-toe-solo",
		},
	}
}
