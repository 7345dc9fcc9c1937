package compress

import (
	"fmt"

	"github.com/arloliu/pixcache/format"
)

// CreateStrategy is a factory function that creates a Strategy for the given type and level.
//
// Parameters:
//   - strategyType: Algorithm identity (None, LZ4, Deflate, GZip, PNG, PNGGreyscale, Zstd or S2)
//   - level: Encoder effort, interpreted by each strategy
//
// Returns:
//   - Strategy: Strategy instance for the specified type
//   - error: ErrUnsupportedStrategy for unknown types
func CreateStrategy(strategyType format.StrategyType, level format.Level) (Strategy, error) {
	switch strategyType {
	case format.StrategyNone:
		return NewNoOpStrategy(), nil
	case format.StrategyLZ4:
		return NewLZ4Strategy(level), nil
	case format.StrategyDeflate:
		return NewDeflateStrategy(level), nil
	case format.StrategyGZip:
		return NewGZipStrategy(level), nil
	case format.StrategyPNG:
		return NewPNGStrategy(level), nil
	case format.StrategyPNGGreyscale:
		return NewPNGGreyscaleStrategy(level), nil
	case format.StrategyZstd:
		return NewZstdStrategy(level), nil
	case format.StrategyS2:
		return NewS2Strategy(level), nil
	default:
		return nil, fmt.Errorf("%w: %s (0x%02x)", ErrUnsupportedStrategy, strategyType, uint8(strategyType))
	}
}

var builtinStrategies = map[format.StrategyType]Strategy{
	format.StrategyNone:         NewNoOpStrategy(),
	format.StrategyLZ4:          NewLZ4Strategy(format.LevelDefault),
	format.StrategyDeflate:      NewDeflateStrategy(format.LevelDefault),
	format.StrategyGZip:         NewGZipStrategy(format.LevelDefault),
	format.StrategyPNG:          NewPNGStrategy(format.LevelDefault),
	format.StrategyPNGGreyscale: NewPNGGreyscaleStrategy(format.LevelDefault),
	format.StrategyZstd:         NewZstdStrategy(format.LevelDefault),
	format.StrategyS2:           NewS2Strategy(format.LevelDefault),
}

// GetStrategy retrieves the built-in default-level Strategy for the given type.
func GetStrategy(strategyType format.StrategyType) (Strategy, error) {
	if strategy, ok := builtinStrategies[strategyType]; ok {
		return strategy, nil
	}

	return nil, fmt.Errorf("%w: %s (0x%02x)", ErrUnsupportedStrategy, strategyType, uint8(strategyType))
}

// Builtin returns the built-in default-level strategies in StrategyType order.
func Builtin() []Strategy {
	out := make([]Strategy, 0, len(builtinStrategies))
	for t := format.StrategyNone; t <= format.StrategyS2; t++ {
		out = append(out, builtinStrategies[t])
	}

	return out
}

// None returns the no-op strategy used for raw storage.
func None() Strategy {
	return builtinStrategies[format.StrategyNone]
}

// Default returns the default strategy for new cache entries (LZ4).
func Default() Strategy {
	return builtinStrategies[format.StrategyLZ4]
}
