package cache

import (
	"fmt"
	"log/slog"

	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/internal/options"
)

// DefaultThreshold is the payload size, in bytes, at or below which pixels are
// always stored raw. Compression overhead would exceed any savings.
const DefaultThreshold uint32 = 64

// Config holds the write-side configuration of a CompressedImage.
type Config struct {
	strategy  compress.Strategy
	threshold uint32
	logger    *slog.Logger
}

// NewConfig returns the default configuration: LZ4, DefaultThreshold and slog.Default().
func NewConfig() *Config {
	return &Config{
		strategy:  compress.Default(),
		threshold: DefaultThreshold,
		logger:    slog.Default(),
	}
}

func (c *Config) setStrategy(s compress.Strategy) error {
	if s == nil {
		return ErrNilStrategy
	}
	c.strategy = s

	return nil
}

func (c *Config) setStrategyType(t format.StrategyType, level format.Level) error {
	s, err := compress.CreateStrategy(t, level)
	if err != nil {
		return fmt.Errorf("cache: %w", err)
	}
	c.strategy = s

	return nil
}

func (c *Config) setLogger(l *slog.Logger) {
	if l == nil {
		l = slog.Default()
	}
	c.logger = l
}

// Option represents a functional option for configuring a CompressedImage.
// This is a type alias for the generic Option interface specialized for Config.
type Option = options.Option[*Config]

// WithStrategy sets the strategy used for new writes.
func WithStrategy(s compress.Strategy) Option {
	return options.New(func(c *Config) error {
		return c.setStrategy(s)
	})
}

// WithStrategyType sets the strategy used for new writes by type, at the default level.
func WithStrategyType(t format.StrategyType) Option {
	return options.New(func(c *Config) error {
		return c.setStrategyType(t, format.LevelDefault)
	})
}

// WithStrategyLevel sets the strategy used for new writes by type and encoder effort.
func WithStrategyLevel(t format.StrategyType, level format.Level) Option {
	return options.New(func(c *Config) error {
		return c.setStrategyType(t, level)
	})
}

// WithThreshold sets the raw-storage threshold in bytes.
// Payloads at or below it are never compressed; zero compresses everything.
func WithThreshold(threshold uint32) Option {
	return options.NoError(func(c *Config) {
		c.threshold = threshold
	})
}

// WithLogger sets the logger used for fallback diagnostics. A nil logger
// selects slog.Default().
func WithLogger(l *slog.Logger) Option {
	return options.NoError(func(c *Config) {
		c.setLogger(l)
	})
}
