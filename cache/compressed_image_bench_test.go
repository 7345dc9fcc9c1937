package cache

import (
	"context"
	"fmt"
	"testing"

	"github.com/arloliu/pixcache/compress"
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/raster"
)

func BenchmarkCompressedImage_Compress(b *testing.B) {
	src := testLayer(raster.Gray8(1920, 1080), 1)

	for _, strategy := range compress.Builtin() {
		b.Run(strategy.Type().String(), func(b *testing.B) {
			img, err := New(src.Descriptor, WithStrategy(strategy))
			if err != nil {
				b.Fatal(err)
			}
			b.SetBytes(int64(src.Len()))
			b.ReportAllocs()

			for b.Loop() {
				if err := img.Compress(src); err != nil {
					b.Fatal(err)
				}
			}
			b.ReportMetric(img.CompressionRatio(), "ratio")
		})
	}
}

func BenchmarkCompressedImage_Decompress(b *testing.B) {
	src := testLayer(raster.Gray8(1920, 1080), 2)

	for _, roi := range []raster.Rect{{}, raster.NewRect(480, 270, 960, 540)} {
		for _, st := range []format.StrategyType{format.StrategyLZ4, format.StrategyS2, format.StrategyPNG} {
			img, err := NewFromBuffer(src, roi, WithStrategyType(st))
			if err != nil {
				b.Fatal(err)
			}

			b.Run(fmt.Sprintf("%s/roi=%t", st, !roi.IsEmpty()), func(b *testing.B) {
				b.SetBytes(int64(src.Len()))
				b.ReportAllocs()

				for b.Loop() {
					if _, err := img.Decompress(); err != nil {
						b.Fatal(err)
					}
				}
			})
		}
	}
}

func BenchmarkCompressedImage_ContentHash(b *testing.B) {
	img, err := NewFromBuffer(testLayer(raster.Gray8(1920, 1080), 3), raster.Rect{})
	if err != nil {
		b.Fatal(err)
	}

	b.Run("memoized", func(b *testing.B) {
		for b.Loop() {
			_ = img.ContentHash()
		}
	})

	b.Run("cold", func(b *testing.B) {
		for b.Loop() {
			img.digest.Store(nil)
			_ = img.ContentHash()
		}
	})
}

func BenchmarkScheduler_CompressBatch(b *testing.B) {
	sources := make([]*raster.Buffer, 64)
	for i := range sources {
		sources[i] = testLayer(raster.Gray8(512, 512), int64(i))
	}
	source := func(_ context.Context, i int) (*raster.Buffer, raster.Rect, error) {
		return sources[i], raster.Rect{}, nil
	}

	for _, workers := range []int{1, 4, 8} {
		b.Run(fmt.Sprintf("workers=%d", workers), func(b *testing.B) {
			s, err := NewScheduler(WithWorkers(workers))
			if err != nil {
				b.Fatal(err)
			}
			defer s.Close()

			imgs := make([]*CompressedImage, len(sources))
			for i := range imgs {
				imgs[i], _ = New(raster.Descriptor{})
			}
			b.SetBytes(int64(len(sources) * sources[0].Len()))

			for b.Loop() {
				if err := s.CompressBatch(context.Background(), imgs, source); err != nil {
					b.Fatal(err)
				}
			}
		})
	}
}
