package fastpng

import (
	"fmt"
	"image"
)

// Image wraps the raw pixel buffer in a stdlib image matching the record's
// layout: Gray/NRGBA for 8-bit depth, Gray16/NRGBA64 for 16-bit. RGB without
// alpha and grayscale+alpha have no stdlib equivalent and are widened to the
// NRGBA forms. 16-bit samples are big-endian on both sides, so they copy
// straight through.
func (r *ImageRecord) Image() (image.Image, error) {
	rect := image.Rect(0, 0, int(r.Width), int(r.Height))
	switch {
	case r.ColorType == ctGrayscale && r.BitDepth == 8:
		img := image.NewGray(rect)
		copy(img.Pix, r.Pixels)
		return img, nil
	case r.ColorType == ctGrayscale && r.BitDepth == 16:
		img := image.NewGray16(rect)
		copy(img.Pix, r.Pixels)
		return img, nil
	case r.BitDepth == 8:
		img := image.NewNRGBA(rect)
		widen(img.Pix, r.Pixels, r.ColorType, 1)
		return img, nil
	case r.BitDepth == 16:
		img := image.NewNRGBA64(rect)
		widen(img.Pix, r.Pixels, r.ColorType, 2)
		return img, nil
	}
	return nil, UnsupportedError(fmt.Sprintf("color type %d at bit depth %d", r.ColorType, r.BitDepth))
}

// widen expands RGB and grayscale+alpha samples into NRGBA sample order.
// sw is the sample width in bytes (1 or 2).
func widen(dst, src []byte, colorType uint8, sw int) {
	switch colorType {
	case ctTrueColor:
		di := 0
		for si := 0; si+3*sw <= len(src); si += 3 * sw {
			copy(dst[di:], src[si:si+3*sw])
			for k := 0; k < sw; k++ {
				dst[di+3*sw+k] = 0xff
			}
			di += 4 * sw
		}
	case ctGrayscaleAlpha:
		di := 0
		for si := 0; si+2*sw <= len(src); si += 2 * sw {
			g := src[si : si+sw]
			copy(dst[di:], g)
			copy(dst[di+sw:], g)
			copy(dst[di+2*sw:], g)
			copy(dst[di+3*sw:], src[si+sw:si+2*sw])
			di += 4 * sw
		}
	case ctTrueColorAlpha:
		copy(dst, src)
	}
}
