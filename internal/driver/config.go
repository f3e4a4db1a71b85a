package driver

import (
	"errors"
	"fmt"
	"time"

	"github.com/san-kum/wobble/internal/motion"
)

// DefaultInterval is the tick period used when none is configured.
const DefaultInterval = 50 * time.Millisecond

var (
	ErrAlreadyRunning  = errors.New("driver: already running")
	ErrInvalidInterval = errors.New("driver: interval must be positive")
	ErrUnknownElement  = errors.New("driver: unknown element")
)

type Config struct {
	Interval time.Duration
	Params   motion.Params
	// Seed drives behaviour selection; 0 seeds from the clock.
	Seed int64
	// Behaviors restricts the draw; empty means every registered behaviour.
	Behaviors []string
}

func DefaultConfig() Config {
	return Config{
		Interval: DefaultInterval,
		Params:   motion.DefaultParams(),
	}
}

func (c Config) Validate() error {
	if c.Interval <= 0 {
		return fmt.Errorf("%w, got %v", ErrInvalidInterval, c.Interval)
	}
	return c.Params.Validate()
}
