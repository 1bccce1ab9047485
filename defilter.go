package fastpng

import "fmt"

// Filter type, as per the PNG spec.
const (
	ftNone    = 0
	ftSub     = 1
	ftUp      = 2
	ftAverage = 3
	ftPaeth   = 4
)

// Color type, as per the PNG spec.
const (
	ctGrayscale      = 0
	ctTrueColor      = 2
	ctPaletted       = 3
	ctGrayscaleAlpha = 4
	ctTrueColorAlpha = 6
)

// Method codes from the IHDR chunk. Zero is the only value the format defines
// for compression and filter; interlace 1 (Adam7) exists but is unsupported.
const (
	cmDeflate  = 0
	fmAdaptive = 0
	imNone     = 0
)

// channels maps a color type to its channel count.
func channels(colorType uint8) (int, error) {
	switch colorType {
	case ctGrayscale:
		return 1, nil
	case ctTrueColor:
		return 3, nil
	case ctPaletted:
		return 0, UnsupportedError("palette (indexed-color) image")
	case ctGrayscaleAlpha:
		return 2, nil
	case ctTrueColorAlpha:
		return 4, nil
	default:
		return 0, UnsupportedError(fmt.Sprintf("color type %d", colorType))
	}
}

// defilter consumes the decompressed buffer as height filter-tagged scanline
// records and reconstructs the raw pixel grid into rec.Pixels.
func (p *parser) defilter(data []byte) error {
	r := p.rec
	if r.FilterMethod != fmAdaptive {
		return UnsupportedError(fmt.Sprintf("filter method %d", r.FilterMethod))
	}
	if r.InterlaceMethod != imNone {
		return UnsupportedError("Adam7 interlacing")
	}
	nch, err := channels(r.ColorType)
	if err != nil {
		return err
	}
	if r.BitDepth != 8 && r.BitDepth != 16 {
		return UnsupportedError(fmt.Sprintf("bit depth %d", r.BitDepth))
	}
	bpp := nch * int(r.BitDepth) / 8
	bpl := int(r.Width) * bpp
	height := int(r.Height)

	rowSize := 1 + bpl
	if len(data) != height*rowSize {
		return FormatError(fmt.Sprintf("decompressed size %d, want %d rows of %d bytes",
			len(data), height, rowSize))
	}

	pixels := make([]byte, height*bpl)
	// All-zero row above the first scanline, per the format's convention.
	prev := make([]byte, bpl)
	for y := 0; y < height; y++ {
		tag := data[y*rowSize]
		src := data[y*rowSize+1 : (y+1)*rowSize]
		dst := pixels[y*bpl : (y+1)*bpl]
		if err := reconstruct(tag, dst, src, prev, bpp); err != nil {
			return err
		}
		prev = dst
	}
	r.Pixels = pixels
	return nil
}

// reconstruct reverses one scanline's filter. dst and src are one
// bytesPerLine each; prev is the reconstructed row above. Additions wrap
// modulo 256, which uint8 arithmetic gives for free; left neighbors before
// the first pixel count as zero.
func reconstruct(tag byte, dst, src, prev []byte, bpp int) error {
	switch tag {
	case ftNone:
		copy(dst, src)
	case ftSub:
		copy(dst, src[:min(bpp, len(src))])
		for i := bpp; i < len(src); i++ {
			dst[i] = src[i] + dst[i-bpp]
		}
	case ftUp:
		for i, s := range src {
			dst[i] = s + prev[i]
		}
	case ftAverage:
		for i := 0; i < bpp && i < len(src); i++ {
			dst[i] = src[i] + prev[i]/2
		}
		for i := bpp; i < len(src); i++ {
			dst[i] = src[i] + uint8((int(dst[i-bpp])+int(prev[i]))/2)
		}
	case ftPaeth:
		for i := 0; i < bpp && i < len(src); i++ {
			dst[i] = src[i] + paeth(0, prev[i], 0)
		}
		for i := bpp; i < len(src); i++ {
			dst[i] = src[i] + paeth(dst[i-bpp], prev[i], prev[i-bpp])
		}
	default:
		return UnsupportedError(fmt.Sprintf("scanline filter type %d", tag))
	}
	return nil
}

// paeth returns whichever of a (left), b (above), c (above-left) is closest
// to the linear predictor a+b-c, preferring a, then b, on ties.
func paeth(a, b, c uint8) uint8 {
	p := int(a) + int(b) - int(c)
	pa := abs(p - int(a))
	pb := abs(p - int(b))
	pc := abs(p - int(c))
	if pa <= pb && pa <= pc {
		return a
	}
	if pb <= pc {
		return b
	}
	return c
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
