package format

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestStrategyType_String(t *testing.T) {
	tests := []struct {
		name     string
		sType    StrategyType
		expected string
	}{
		{name: "none", sType: StrategyNone, expected: "None"},
		{name: "lz4", sType: StrategyLZ4, expected: "LZ4"},
		{name: "deflate", sType: StrategyDeflate, expected: "Deflate"},
		{name: "gzip", sType: StrategyGZip, expected: "GZip"},
		{name: "png", sType: StrategyPNG, expected: "PNG"},
		{name: "png greyscale", sType: StrategyPNGGreyscale, expected: "PNGGreyscale"},
		{name: "zstd", sType: StrategyZstd, expected: "Zstd"},
		{name: "s2", sType: StrategyS2, expected: "S2"},
		{name: "unknown", sType: StrategyType(0xFF), expected: "Unknown"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Equal(t, tt.expected, tt.sType.String())
		})
	}
}

func TestParseStrategyType(t *testing.T) {
	for s := StrategyNone; s <= StrategyS2; s++ {
		parsed, err := ParseStrategyType(s.String())
		require.NoError(t, err)
		require.Equal(t, s, parsed)
		require.True(t, parsed.IsValid())
	}

	_, err := ParseStrategyType("lzma")
	require.Error(t, err)
	require.False(t, StrategyType(0).IsValid())
}

func TestBitDepth(t *testing.T) {
	require.Equal(t, 1, Depth8U.Bytes())
	require.Equal(t, 2, Depth16U.Bytes())
	require.Equal(t, 0, BitDepth(0x9).Bytes())
	require.Equal(t, "8U", Depth8U.String())
	require.Equal(t, "16U", Depth16U.String())
	require.Equal(t, "Unknown", BitDepth(0).String())
}

func TestParseLevel(t *testing.T) {
	for _, l := range []Level{LevelDefault, LevelFastest, LevelBest} {
		parsed, err := ParseLevel(l.String())
		require.NoError(t, err)
		require.Equal(t, l, parsed)
	}

	_, err := ParseLevel("Ultra")
	require.Error(t, err)
}
