package config

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"
)

// Default game settings
const (
	DefaultGridSize    = 21
	DefaultStartLength = 3
	DefaultTickMs      = 140
)

// Speed ramp settings: interval = max(RampFloor, RampBase - RampStep*score)
const (
	RampBase  = 300 * time.Millisecond
	RampStep  = 8 * time.Millisecond
	RampFloor = 80 * time.Millisecond
)

// Emoji characters for rendering
const (
	CharEmpty = "  " // Two spaces to match emoji width
	CharWall  = "⬜"
	CharHead  = "🟢"
	CharBody  = "🟩"
	CharFood  = "🔴"
	CharCrash = "💥"
)

// ErrInvalidConfig is wrapped by every validation failure
var ErrInvalidConfig = errors.New("invalid config")

// Config is the immutable configuration of one game instance
type Config struct {
	GridSize    int `json:"gridSize"`
	StartLength int `json:"startLength"`
	TickMs      int `json:"tickMs"`

	// SpeedRamp shortens the tick interval as the score grows
	SpeedRamp bool `json:"speedRamp"`
	// EasyFirstFood puts the first food two cells ahead of the head
	EasyFirstFood bool `json:"easyFirstFood"`
}

// Default returns the standard 21x21 configuration
func Default() Config {
	return Config{
		GridSize:    DefaultGridSize,
		StartLength: DefaultStartLength,
		TickMs:      DefaultTickMs,
	}
}

// TickInterval returns the fixed tick interval
func (c Config) TickInterval() time.Duration {
	return time.Duration(c.TickMs) * time.Millisecond
}

// Validate checks that the initial snake fits on the board and the timer is usable.
func (c Config) Validate() error {
	if c.GridSize <= 0 {
		return fmt.Errorf("grid size %d must be positive: %w", c.GridSize, ErrInvalidConfig)
	}
	if c.StartLength < 1 {
		return fmt.Errorf("start length %d must be at least 1: %w", c.StartLength, ErrInvalidConfig)
	}
	// The snake extends leftward from the middle column.
	if maxLen := c.GridSize/2 + 1; c.StartLength > maxLen {
		return fmt.Errorf("start length %d does not fit a %dx%d grid (max %d): %w",
			c.StartLength, c.GridSize, c.GridSize, maxLen, ErrInvalidConfig)
	}
	if c.TickMs <= 0 {
		return fmt.Errorf("tick interval %dms must be positive: %w", c.TickMs, ErrInvalidConfig)
	}
	return nil
}

// Load reads a JSON config file on top of the defaults.
// Fields missing from the file keep their default value.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
