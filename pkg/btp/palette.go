package btp

import "image/color"

// Colour is one palette entry. On disk the channels are stored
// blue, green, red, alpha.
type Colour struct {
	Red   uint8
	Green uint8
	Blue  uint8
	Alpha uint8
}

// ReadColour decodes a BGRA quad.
func ReadColour(b []byte) Colour {
	return Colour{Red: b[2], Green: b[1], Blue: b[0], Alpha: b[3]}
}

// RGBA implements color.Color. The alpha channel is not premultiplied.
func (c Colour) RGBA() (r, g, b, a uint32) {
	return c.NRGBA().RGBA()
}

// NRGBA converts c to the standard library colour type.
func (c Colour) NRGBA() color.NRGBA {
	return color.NRGBA{R: c.Red, G: c.Green, B: c.Blue, A: c.Alpha}
}

// Palette is a 256-entry colour table. Count is the number of entries that
// were present in the container; a table cut short by the end of the
// container has fewer than 256.
type Palette struct {
	Colours [PaletteColours]Colour
	Count   int
}

// Lookup returns the colour at index i, or false if that slot was not
// populated.
func (p *Palette) Lookup(i int) (Colour, bool) {
	if i < 0 || i >= p.Count {
		return Colour{}, false
	}
	return p.Colours[i], true
}

// ColorPalette converts the populated entries to a color.Palette.
func (p *Palette) ColorPalette() color.Palette {
	pal := make(color.Palette, p.Count)
	for i := range pal {
		pal[i] = p.Colours[i].NRGBA()
	}
	return pal
}

// ReadPalette decodes up to 256 colours from data.
func ReadPalette(data []byte) Palette {
	var p Palette
	n := min(len(data)/ColourSize, PaletteColours)
	for i := 0; i < n; i++ {
		p.Colours[i] = ReadColour(data[i*ColourSize:])
	}
	p.Count = n
	return p
}

// ReadPalettes reads the palette table. The result always has
// hdr.NumPalettes entries; palettes past the end of data are empty.
func ReadPalettes(data []byte, hdr *Header) []Palette {
	palettes := make([]Palette, hdr.NumPalettes)
	for i := range palettes {
		start := uint64(hdr.PaletteDataOffset) + uint64(i)*PaletteDataSize
		if start >= uint64(len(data)) {
			break
		}
		end := min(start+PaletteDataSize, uint64(len(data)))
		palettes[i] = ReadPalette(data[start:end])
	}
	return palettes
}
