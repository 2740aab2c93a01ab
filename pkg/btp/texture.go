package btp

import (
	"fmt"
	"image"
	"image/color"
)

// Texture is a decoded texture page: its table entry, the palette it
// references and one palette index per pixel, row-major.
type Texture struct {
	Page    int // position in the container's page table
	Info    PageInfo
	Palette Palette
	Pixels  []byte
}

// NewTexture validates and builds a texture. Every pixel must index a
// populated palette slot.
func NewTexture(info PageInfo, palette Palette, pixels []byte) (*Texture, error) {
	switch {
	case info.Width == 0 && info.Height == 0:
		return nil, fmt.Errorf("%w: width and height are zero", ErrInvalidDimensions)
	case info.Width == 0:
		return nil, fmt.Errorf("%w: width is zero", ErrInvalidDimensions)
	case info.Height == 0:
		return nil, fmt.Errorf("%w: height is zero", ErrInvalidDimensions)
	}

	if palette.Count == 0 {
		return nil, fmt.Errorf("%w: palette %d has no colours", ErrMissingPalette, info.Palette)
	}

	if len(pixels) != info.PixelCount() {
		return nil, fmt.Errorf("%w: have %d pixels, want %dx%d",
			ErrTruncated, len(pixels), info.Width, info.Height)
	}

	for i, px := range pixels {
		if int(px) >= palette.Count {
			return nil, fmt.Errorf("%w: pixel %d uses index %d, palette has %d colours",
				ErrPaletteIndexOutOfBounds, i, px, palette.Count)
		}
	}

	return &Texture{Info: info, Palette: palette, Pixels: pixels}, nil
}

// Width returns the texture width in pixels.
func (t *Texture) Width() int { return int(t.Info.Width) }

// Height returns the texture height in pixels.
func (t *Texture) Height() int { return int(t.Info.Height) }

// ColourAt resolves the pixel at column x, row y through the palette.
// It panics if (x, y) is outside the texture.
func (t *Texture) ColourAt(x, y int) Colour {
	return t.Palette.Colours[t.Pixels[y*t.Width()+x]]
}

// ColorModel implements image.Image.
func (t *Texture) ColorModel() color.Model { return color.NRGBAModel }

// Bounds implements image.Image.
func (t *Texture) Bounds() image.Rectangle {
	return image.Rect(0, 0, t.Width(), t.Height())
}

// At implements image.Image.
func (t *Texture) At(x, y int) color.Color {
	if !image.Pt(x, y).In(t.Bounds()) {
		return color.NRGBA{}
	}
	return t.ColourAt(x, y)
}

// NRGBA expands the texture to a 32-bit image.
func (t *Texture) NRGBA() *image.NRGBA {
	img := image.NewNRGBA(t.Bounds())
	for y := 0; y < t.Height(); y++ {
		for x := 0; x < t.Width(); x++ {
			c := t.ColourAt(x, y)
			i := img.PixOffset(x, y)
			img.Pix[i+0] = c.Red
			img.Pix[i+1] = c.Green
			img.Pix[i+2] = c.Blue
			img.Pix[i+3] = c.Alpha
		}
	}
	return img
}

// Paletted returns the texture as an 8-bit paletted image.
func (t *Texture) Paletted() *image.Paletted {
	img := image.NewPaletted(t.Bounds(), t.Palette.ColorPalette())
	copy(img.Pix, t.Pixels)
	return img
}
