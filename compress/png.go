package compress

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/arloliu/pixcache/endian"
	"github.com/arloliu/pixcache/format"
	"github.com/arloliu/pixcache/internal/pool"
	"github.com/arloliu/pixcache/raster"
	"github.com/disintegration/imaging"
)

// PNGStrategy encodes pixels as a PNG image.
//
// PNG usually gives the best ratio on layer images with large flat areas, at a
// higher CPU cost than the block codecs. Samples are mapped losslessly:
//   - 1 channel: Gray / Gray16
//   - 2 channels: gray+alpha stored as NRGBA / NRGBA64 (gray replicated)
//   - 3 channels: NRGBA / NRGBA64 with opaque alpha
//   - 4 channels: NRGBA / NRGBA64
//
// The greyscale variant always decodes to a single channel, converting colour
// payloads to luma, and only accepts single-channel images.
type PNGStrategy struct {
	level     format.Level
	greyscale bool
}

var _ Strategy = (*PNGStrategy)(nil)

// NewPNGStrategy creates a PNG strategy with the given encoder effort.
func NewPNGStrategy(level format.Level) PNGStrategy {
	return PNGStrategy{level: level}
}

// NewPNGGreyscaleStrategy creates a PNG strategy that forces single-channel decoding.
func NewPNGGreyscaleStrategy(level format.Level) PNGStrategy {
	return PNGStrategy{level: level, greyscale: true}
}

func (s PNGStrategy) Type() format.StrategyType {
	if s.greyscale {
		return format.StrategyPNGGreyscale
	}

	return format.StrategyPNG
}

func (s PNGStrategy) Level() format.Level { return s.level }

func pngLevel(level format.Level) png.CompressionLevel {
	switch level {
	case format.LevelFastest:
		return png.BestSpeed
	case format.LevelBest:
		return png.BestCompression
	default:
		return png.DefaultCompression
	}
}

// Compress encodes src as PNG.
func (s PNGStrategy) Compress(src *raster.Buffer) ([]byte, error) {
	if s.greyscale && src.Channels != 1 {
		return nil, fmt.Errorf("%w: greyscale png needs 1 channel, got %d", ErrUnsupportedLayout, src.Channels)
	}

	img, err := toImage(src)
	if err != nil {
		return nil, err
	}

	sink := pool.GetCodecBuffer()
	defer pool.PutCodecBuffer(sink)

	if err := imaging.Encode(sink, img, imaging.PNG, imaging.PNGCompressionLevel(pngLevel(s.level))); err != nil {
		return nil, fmt.Errorf("png compress: %w", err)
	}

	return sink.Detach(), nil
}

// Decompress decodes a PNG payload into dst. The decoded image must have
// dst's dimensions.
func (s PNGStrategy) Decompress(data []byte, dst *raster.Buffer) error {
	if s.greyscale && dst.Channels != 1 {
		return fmt.Errorf("%w: greyscale png decodes to 1 channel, destination has %d", ErrUnsupportedLayout, dst.Channels)
	}

	img, err := imaging.Decode(bytes.NewReader(data))
	if err != nil {
		return fmt.Errorf("%w: png: %v", ErrCorruptData, err)
	}

	b := img.Bounds()
	if b.Dx() != int(dst.Width) || b.Dy() != int(dst.Height) {
		return fmt.Errorf("%w: png is %dx%d, expected %dx%d", ErrCorruptData, b.Dx(), b.Dy(), dst.Width, dst.Height)
	}

	return fromImage(img, dst)
}

// toImage wraps or converts src into an image.Image the PNG encoder handles losslessly.
func toImage(src *raster.Buffer) (image.Image, error) {
	w, h := int(src.Width), int(src.Height)
	rect := image.Rect(0, 0, w, h)
	le := endian.GetLittleEndianEngine()
	be := endian.GetBigEndianEngine()

	switch {
	case src.Channels == 1 && src.Depth == format.Depth8U:
		// image.Gray reads strided storage directly.
		return &image.Gray{Pix: src.Pix, Stride: src.Stride, Rect: rect}, nil

	case src.Channels == 1 && src.Depth == format.Depth16U:
		img := image.NewGray16(rect)
		for y := range h {
			endian.ConvertUint16Samples(img.Pix[y*img.Stride:], src.Row(y), le, be)
		}

		return img, nil

	case src.Depth == format.Depth8U:
		img := image.NewNRGBA(rect)
		for y := range h {
			row := src.Row(y)
			out := img.Pix[y*img.Stride:]
			for x := range w {
				expandPixel(out[x*4:x*4+4], row[x*int(src.Channels):], int(src.Channels), 1, 0xFF)
			}
		}

		return img, nil

	case src.Depth == format.Depth16U:
		img := image.NewNRGBA64(rect)
		scratch := make([]byte, src.RowBytes())
		for y := range h {
			endian.ConvertUint16Samples(scratch, src.Row(y), le, be)
			out := img.Pix[y*img.Stride:]
			for x := range w {
				expandPixel(out[x*8:x*8+8], scratch[x*src.PixelSize():], int(src.Channels), 2, 0xFF)
			}
		}

		return img, nil

	default:
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedLayout, src.Descriptor)
	}
}

// expandPixel maps one pixel of channels samples (sampleBytes wide, big-endian)
// to four RGBA samples. Missing alpha is filled with opaque bytes.
func expandPixel(out, in []byte, channels, sampleBytes int, opaque byte) {
	sample := func(c int) []byte { return in[c*sampleBytes : (c+1)*sampleBytes] }
	put := func(c int, v []byte) { copy(out[c*sampleBytes:], v) }

	switch channels {
	case 2:
		put(0, sample(0))
		put(1, sample(0))
		put(2, sample(0))
		put(3, sample(1))
	case 3:
		put(0, sample(0))
		put(1, sample(1))
		put(2, sample(2))
		for i := range sampleBytes {
			out[3*sampleBytes+i] = opaque
		}
	default:
		copy(out[:4*sampleBytes], in[:4*sampleBytes])
	}
}

// collapsePixel is the inverse of expandPixel.
func collapsePixel(out, in []byte, channels, sampleBytes int) {
	switch channels {
	case 2:
		copy(out[:sampleBytes], in[:sampleBytes])
		copy(out[sampleBytes:2*sampleBytes], in[3*sampleBytes:4*sampleBytes])
	default:
		copy(out[:channels*sampleBytes], in[:channels*sampleBytes])
	}
}

// fromImage converts a decoded image into dst's sample layout.
func fromImage(img image.Image, dst *raster.Buffer) error {
	w, h := int(dst.Width), int(dst.Height)
	origin := img.Bounds().Min
	le := endian.GetLittleEndianEngine()
	be := endian.GetBigEndianEngine()

	switch {
	case dst.Channels == 1 && dst.Depth == format.Depth8U:
		gray, ok := img.(*image.Gray)
		if !ok {
			gray = image.NewGray(image.Rect(0, 0, w, h))
			for y := range h {
				for x := range w {
					gray.SetGray(x, y, color.GrayModel.Convert(img.At(origin.X+x, origin.Y+y)).(color.Gray))
				}
			}
			origin = image.Point{}
		}
		for y := range h {
			off := gray.PixOffset(origin.X, origin.Y+y)
			copy(dst.Row(y), gray.Pix[off:off+w])
		}

		return nil

	case dst.Channels == 1 && dst.Depth == format.Depth16U:
		gray, ok := img.(*image.Gray16)
		if !ok {
			gray = image.NewGray16(image.Rect(0, 0, w, h))
			for y := range h {
				for x := range w {
					gray.SetGray16(x, y, color.Gray16Model.Convert(img.At(origin.X+x, origin.Y+y)).(color.Gray16))
				}
			}
			origin = image.Point{}
		}
		for y := range h {
			off := gray.PixOffset(origin.X, origin.Y+y)
			endian.ConvertUint16Samples(dst.Row(y), gray.Pix[off:off+2*w], be, le)
		}

		return nil

	case dst.Depth == format.Depth8U:
		nrgba := imaging.Clone(img)
		channels := int(dst.Channels)
		for y := range h {
			row := dst.Row(y)
			in := nrgba.Pix[y*nrgba.Stride:]
			for x := range w {
				collapsePixel(row[x*channels:], in[x*4:x*4+4], channels, 1)
			}
		}

		return nil

	case dst.Depth == format.Depth16U:
		channels := int(dst.Channels)
		var px [8]byte
		scratch := make([]byte, dst.RowBytes())
		for y := range h {
			for x := range w {
				c := color.NRGBA64Model.Convert(img.At(origin.X+x, origin.Y+y)).(color.NRGBA64)
				be.PutUint16(px[0:], c.R)
				be.PutUint16(px[2:], c.G)
				be.PutUint16(px[4:], c.B)
				be.PutUint16(px[6:], c.A)
				collapsePixel(scratch[x*channels*2:], px[:], channels, 2)
			}
			endian.ConvertUint16Samples(dst.Row(y), scratch, be, le)
		}

		return nil

	default:
		return fmt.Errorf("%w: %s", ErrUnsupportedLayout, dst.Descriptor)
	}
}
