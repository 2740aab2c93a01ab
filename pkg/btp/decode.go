package btp

import "fmt"

// Container is a parsed BTP container over its raw bytes.
type Container struct {
	Header Header
	data   []byte
}

// Decode reads the container header from data.
func Decode(data []byte) (*Container, error) {
	hdr, err := ReadHeader(data)
	if err != nil {
		return nil, err
	}
	return &Container{Header: *hdr, data: data}, nil
}

// Pages returns the texture page table.
func (c *Container) Pages() []PageInfo {
	return ReadPageInfos(c.data, &c.Header)
}

// Palettes returns the palette table.
func (c *Container) Palettes() []Palette {
	return ReadPalettes(c.data, &c.Header)
}

// Textures decodes every texture page. See ParseTextures.
func (c *Container) Textures() ([]*Texture, []error) {
	return ParseTextures(c.data, &c.Header)
}

// ParseTextures decodes every texture page of the container in data.
//
// Pages are decoded independently: a page that fails is reported as a
// *PageError and the rest still decode. Zero-sized pages are skipped and
// reported with ErrInvalidDimensions. A container without textures or
// without palettes yields nothing.
func ParseTextures(data []byte, hdr *Header) ([]*Texture, []error) {
	if hdr.NumTextures == 0 || hdr.NumPalettes == 0 {
		return nil, nil
	}

	infos := ReadPageInfos(data, hdr)
	palettes := ReadPalettes(data, hdr)

	var (
		textures []*Texture
		errs     []error
	)
	for page := 0; page < int(hdr.NumTextures); page++ {
		tex, err := decodePage(data, hdr, page, infos, palettes)
		if err != nil {
			errs = append(errs, &PageError{Page: page, Err: err})
			continue
		}
		textures = append(textures, tex)
	}
	return textures, errs
}

func decodePage(data []byte, hdr *Header, page int, infos []PageInfo, palettes []Palette) (*Texture, error) {
	if page >= len(infos) {
		return nil, fmt.Errorf("%w: page table entry missing", ErrTruncated)
	}
	info := infos[page]

	if info.Width == 0 || info.Height == 0 {
		return nil, fmt.Errorf("%w: %dx%d page skipped", ErrInvalidDimensions, info.Width, info.Height)
	}

	if uint64(info.Palette) >= uint64(len(palettes)) {
		return nil, fmt.Errorf("%w: palette %d of %d", ErrMissingPalette, info.Palette, len(palettes))
	}

	start := uint64(hdr.TextureDataOffset) + uint64(info.Offset)
	end := start + uint64(info.PixelCount())
	if end > uint64(len(data)) {
		return nil, fmt.Errorf("%w: pixels [%#x, %#x) past container end %#x",
			ErrTruncated, start, end, len(data))
	}

	pixels := make([]byte, end-start)
	copy(pixels, data[start:end])

	tex, err := NewTexture(info, palettes[info.Palette], pixels)
	if err != nil {
		return nil, err
	}
	tex.Page = page
	return tex, nil
}
