package options

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

var errNegativeThreshold = errors.New("threshold cannot be negative")

// entryConfig mirrors the shape of a cache entry configuration.
type entryConfig struct {
	Strategy  string
	Threshold int
	Verbose   bool
	Applied   []string
}

func withStrategy(name string) Option[*entryConfig] {
	return NoError(func(c *entryConfig) {
		c.Strategy = name
		c.Applied = append(c.Applied, "strategy")
	})
}

func withThreshold(n int) Option[*entryConfig] {
	return New(func(c *entryConfig) error {
		if n < 0 {
			return errNegativeThreshold
		}
		c.Threshold = n
		c.Applied = append(c.Applied, "threshold")

		return nil
	})
}

func withVerbose() Option[*entryConfig] {
	return NoError(func(c *entryConfig) {
		c.Verbose = true
		c.Applied = append(c.Applied, "verbose")
	})
}

func TestNew(t *testing.T) {
	t.Run("applies valid input", func(t *testing.T) {
		config := &entryConfig{}
		require.NoError(t, withThreshold(128).apply(config))
		require.Equal(t, 128, config.Threshold)
	})

	t.Run("propagates rejection", func(t *testing.T) {
		config := &entryConfig{Threshold: 64}
		err := withThreshold(-1).apply(config)
		require.ErrorIs(t, err, errNegativeThreshold)
		require.Equal(t, 64, config.Threshold, "rejected option must not modify the target")
	})
}

func TestNoError(t *testing.T) {
	config := &entryConfig{}
	require.NoError(t, withStrategy("LZ4").apply(config))
	require.Equal(t, "LZ4", config.Strategy)
}

func TestApply(t *testing.T) {
	tests := []struct {
		name        string
		opts        []Option[*entryConfig]
		wantApplied []string
		wantErr     error
	}{
		{
			name:        "no options",
			wantApplied: nil,
		},
		{
			name:        "in order",
			opts:        []Option[*entryConfig]{withVerbose(), withStrategy("PNG"), withThreshold(10)},
			wantApplied: []string{"verbose", "strategy", "threshold"},
		},
		{
			name:        "nil options are skipped",
			opts:        []Option[*entryConfig]{nil, withStrategy("S2"), nil},
			wantApplied: []string{"strategy"},
		},
		{
			name:        "stops at first error",
			opts:        []Option[*entryConfig]{withStrategy("Zstd"), withThreshold(-5), withVerbose()},
			wantApplied: []string{"strategy"},
			wantErr:     errNegativeThreshold,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			config := &entryConfig{}
			err := Apply(config, tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
			} else {
				require.NoError(t, err)
			}
			require.Equal(t, tt.wantApplied, config.Applied)
		})
	}
}

func TestJoin(t *testing.T) {
	archival := Join(withStrategy("PNG"), withThreshold(4096))

	config := &entryConfig{}
	require.NoError(t, Apply[*entryConfig](config, archival, withStrategy("Zstd")))
	require.Equal(t, "Zstd", config.Strategy, "later options override joined ones")
	require.Equal(t, 4096, config.Threshold)
	require.Equal(t, []string{"strategy", "threshold", "strategy"}, config.Applied)

	broken := Join(withThreshold(-1), withVerbose())
	config = &entryConfig{}
	require.ErrorIs(t, Apply[*entryConfig](config, broken), errNegativeThreshold)
	require.False(t, config.Verbose)
}
