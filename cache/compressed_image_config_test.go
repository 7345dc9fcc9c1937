package cache

import (
	"log/slog"
	"testing"

	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
	"github.com/stretchr/testify/require"
)

func TestOptions(t *testing.T) {
	tests := []struct {
		name      string
		opts      []Option
		wantType  format.StrategyType
		wantLevel format.Level
		wantLimit uint32
		wantErr   error
	}{
		{
			name:      "defaults",
			wantType:  format.StrategyLZ4,
			wantLevel: format.LevelDefault,
			wantLimit: DefaultThreshold,
		},
		{
			name:      "strategy value",
			opts:      []Option{WithStrategy(compress.NewDeflateStrategy(format.LevelBest))},
			wantType:  format.StrategyDeflate,
			wantLevel: format.LevelBest,
			wantLimit: DefaultThreshold,
		},
		{
			name:      "strategy type",
			opts:      []Option{WithStrategyType(format.StrategyPNGGreyscale)},
			wantType:  format.StrategyPNGGreyscale,
			wantLevel: format.LevelDefault,
			wantLimit: DefaultThreshold,
		},
		{
			name:      "strategy type and level",
			opts:      []Option{WithStrategyLevel(format.StrategyZstd, format.LevelFastest), WithThreshold(1024)},
			wantType:  format.StrategyZstd,
			wantLevel: format.LevelFastest,
			wantLimit: 1024,
		},
		{
			name:      "last option wins",
			opts:      []Option{WithStrategyType(format.StrategyGZip), WithStrategyType(format.StrategyS2)},
			wantType:  format.StrategyS2,
			wantLevel: format.LevelDefault,
			wantLimit: DefaultThreshold,
		},
		{
			name:    "nil strategy",
			opts:    []Option{WithStrategy(nil)},
			wantErr: ErrNilStrategy,
		},
		{
			name:    "unknown strategy type",
			opts:    []Option{WithStrategyType(format.StrategyType(0x7F))},
			wantErr: compress.ErrUnsupportedStrategy,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			img, err := New(raster.Gray8(16, 16), tt.opts...)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				require.Nil(t, img)

				return
			}

			require.NoError(t, err)
			require.Equal(t, tt.wantType, img.Compressor().Type())
			require.Equal(t, tt.wantLevel, img.Compressor().Level())
			require.Equal(t, tt.wantLimit, img.Threshold())
		})
	}
}

func TestWithLogger(t *testing.T) {
	custom := slog.New(slog.DiscardHandler)

	img := mustNew(t, raster.Gray8(1, 1), WithLogger(custom))
	require.Same(t, custom, img.logger)

	img = mustNew(t, raster.Gray8(1, 1), WithLogger(nil))
	require.Same(t, slog.Default(), img.logger)
}

func TestNewFromBuffer(t *testing.T) {
	_, err := NewFromBuffer(nil, raster.Rect{})
	require.ErrorIs(t, err, ErrNilBuffer)

	src := testLayer(raster.Gray8(30, 30), 1)
	_, err = NewFromBuffer(src, raster.NewRect(20, 20, 20, 20))
	require.ErrorIs(t, err, ErrROIOutOfBounds)

	_, err = NewFromBuffer(src, raster.Rect{}, WithStrategy(nil))
	require.ErrorIs(t, err, ErrNilStrategy)

	img, err := NewFromBuffer(src, raster.NewRect(5, 5, 20, 20), WithStrategyType(format.StrategyS2))
	require.NoError(t, err)
	require.True(t, img.IsInitialized())
	require.Equal(t, src.Descriptor, img.Descriptor())
}
