package compress

import (
	"errors"
	"fmt"
	"testing"

	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
)

// generateBenchmarkImage creates a layer image of the given side length.
func generateBenchmarkImage(side uint32, content string) *raster.Buffer {
	d := raster.Gray8(side, side)

	switch content {
	case "blank":
		// All zeros, the common case for the first and last layers
		return raster.New(d)
	case "layer":
		return layerImage(d, 42)
	default:
		return randomImage(d, 42)
	}
}

var benchSides = []uint32{256, 1024, 2048}

func BenchmarkStrategy_Compress(b *testing.B) {
	for _, strategy := range Builtin() {
		for _, content := range []string{"blank", "layer", "random"} {
			for _, side := range benchSides {
				src := generateBenchmarkImage(side, content)

				b.Run(fmt.Sprintf("%s/%s/%dpx", strategy.Type(), content, side), func(b *testing.B) {
					b.SetBytes(int64(src.Len()))
					b.ReportAllocs()

					for b.Loop() {
						_, err := strategy.Compress(src)
						if err != nil && !errors.Is(err, ErrIncompressible) {
							b.Fatal(err)
						}
					}
				})
			}
		}
	}
}

func BenchmarkStrategy_Decompress(b *testing.B) {
	for _, strategy := range Builtin() {
		for _, side := range benchSides {
			src := generateBenchmarkImage(side, "layer")
			payload, err := strategy.Compress(src)
			if err != nil {
				b.Fatal(err)
			}
			dst := raster.New(src.Descriptor)

			b.Run(fmt.Sprintf("%s/%dpx", strategy.Type(), side), func(b *testing.B) {
				b.SetBytes(int64(src.Len()))
				b.ReportAllocs()

				for b.Loop() {
					if err := strategy.Decompress(payload, dst); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkStrategy_Levels(b *testing.B) {
	src := generateBenchmarkImage(1024, "layer")

	for _, st := range []format.StrategyType{format.StrategyLZ4, format.StrategyZstd, format.StrategyPNG} {
		for _, strategy := range allLevels(st) {
			b.Run(fmt.Sprintf("%s/%s", st, strategy.Level()), func(b *testing.B) {
				b.SetBytes(int64(src.Len()))

				var size int
				for b.Loop() {
					payload, err := strategy.Compress(src)
					if err != nil {
						b.Fatal(err)
					}
					size = len(payload)
				}
				b.ReportMetric(float64(src.Len())/float64(size), "ratio")
			})
		}
	}
}

func BenchmarkStrategy_StridedCompress(b *testing.B) {
	parent := generateBenchmarkImage(2048, "layer")
	view, err := parent.Region(raster.NewRect(512, 512, 1024, 1024))
	if err != nil {
		b.Fatal(err)
	}

	for _, strategy := range []Strategy{NewLZ4Strategy(format.LevelDefault), NewDeflateStrategy(format.LevelDefault)} {
		b.Run(strategy.Type().String(), func(b *testing.B) {
			b.SetBytes(int64(view.Len()))
			b.ReportAllocs()

			for b.Loop() {
				if _, err := strategy.Compress(view); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
