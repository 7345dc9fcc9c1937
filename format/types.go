package format

import "fmt"

type (
	StrategyType uint8
	BitDepth     uint8
	Level        int8
)

const (
	StrategyNone         StrategyType = 0x1 // StrategyNone stores pixel bytes verbatim.
	StrategyLZ4          StrategyType = 0x2 // StrategyLZ4 represents LZ4 block compression.
	StrategyDeflate      StrategyType = 0x3 // StrategyDeflate represents raw deflate streams.
	StrategyGZip         StrategyType = 0x4 // StrategyGZip represents gzip streams.
	StrategyPNG          StrategyType = 0x5 // StrategyPNG represents PNG encoding.
	StrategyPNGGreyscale StrategyType = 0x6 // StrategyPNGGreyscale represents PNG decoded as a single channel.
	StrategyZstd         StrategyType = 0x7 // StrategyZstd represents Zstandard compression.
	StrategyS2           StrategyType = 0x8 // StrategyS2 represents S2 compression.
)

const (
	Depth8U  BitDepth = 0x1 // Depth8U represents 8-bit unsigned samples.
	Depth16U BitDepth = 0x2 // Depth16U represents 16-bit unsigned little-endian samples.
)

const (
	LevelDefault Level = 0  // LevelDefault is the codec's balanced setting.
	LevelFastest Level = 1  // LevelFastest favors throughput over ratio.
	LevelBest    Level = 2  // LevelBest favors ratio over throughput.
	levelInvalid Level = -1 // returned by ParseLevel on failure.
)

func (s StrategyType) String() string {
	switch s {
	case StrategyNone:
		return "None"
	case StrategyLZ4:
		return "LZ4"
	case StrategyDeflate:
		return "Deflate"
	case StrategyGZip:
		return "GZip"
	case StrategyPNG:
		return "PNG"
	case StrategyPNGGreyscale:
		return "PNGGreyscale"
	case StrategyZstd:
		return "Zstd"
	case StrategyS2:
		return "S2"
	default:
		return "Unknown"
	}
}

// IsValid reports whether s names a known strategy.
func (s StrategyType) IsValid() bool {
	return s >= StrategyNone && s <= StrategyS2
}

// ParseStrategyType parses the name returned by StrategyType.String, case-sensitively.
func ParseStrategyType(name string) (StrategyType, error) {
	for s := StrategyNone; s <= StrategyS2; s++ {
		if s.String() == name {
			return s, nil
		}
	}

	return 0, fmt.Errorf("unknown strategy type: %q", name)
}

func (d BitDepth) String() string {
	switch d {
	case Depth8U:
		return "8U"
	case Depth16U:
		return "16U"
	default:
		return "Unknown"
	}
}

// Bytes returns the number of bytes per sample, or 0 for unknown depths.
func (d BitDepth) Bytes() int {
	switch d {
	case Depth8U:
		return 1
	case Depth16U:
		return 2
	default:
		return 0
	}
}

func (l Level) String() string {
	switch l {
	case LevelDefault:
		return "Default"
	case LevelFastest:
		return "Fastest"
	case LevelBest:
		return "Best"
	default:
		return "Unknown"
	}
}

// ParseLevel parses the name returned by Level.String.
func ParseLevel(name string) (Level, error) {
	switch name {
	case "Default":
		return LevelDefault, nil
	case "Fastest":
		return LevelFastest, nil
	case "Best":
		return LevelBest, nil
	default:
		return levelInvalid, fmt.Errorf("unknown compression level: %q", name)
	}
}
