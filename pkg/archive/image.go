package archive

import (
	"fmt"
	"image"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	xdraw "golang.org/x/image/draw"

	"github.com/rctools/pkg/btp"
)

// Supported output image formats
const (
	ImageBMP = "bmp"
	ImagePNG = "png"
)

// ParseImageFormat normalises an image format name.
func ParseImageFormat(name string) (string, error) {
	switch f := strings.ToLower(strings.TrimPrefix(name, ".")); f {
	case ImageBMP, ImagePNG:
		return f, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrImageFormat, name)
	}
}

// RenderTexture converts a texture to an RGBA image, enlarged by an
// integer scale factor with nearest-neighbour sampling.
func RenderTexture(tex *btp.Texture, scale int) image.Image {
	src := tex.NRGBA()
	if scale <= 1 {
		return src
	}

	dst := image.NewNRGBA(image.Rect(0, 0, tex.Width()*scale, tex.Height()*scale))
	xdraw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), xdraw.Src, nil)
	return dst
}

// EncodeImage writes img to w in the given format.
func EncodeImage(w io.Writer, img image.Image, imageFormat string) error {
	switch imageFormat {
	case ImageBMP:
		return bmp.Encode(w, img)
	case ImagePNG:
		return png.Encode(w, img)
	default:
		return fmt.Errorf("%w: %q", ErrImageFormat, imageFormat)
	}
}

// WriteImageFile encodes img to path.
func WriteImageFile(path string, img image.Image, imageFormat string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create image file: %w", err)
	}

	if err := EncodeImage(f, img, imageFormat); err != nil {
		f.Close()
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return f.Close()
}

// WriteTextures writes each texture to dir as image_<page>.<format>,
// creating dir first.
func WriteTextures(dir string, textures []*btp.Texture, imageFormat string, scale int) error {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create texture directory: %w", err)
	}

	for _, tex := range textures {
		path := filepath.Join(dir, fmt.Sprintf("image_%d.%s", tex.Page, imageFormat))
		if err := WriteImageFile(path, RenderTexture(tex, scale), imageFormat); err != nil {
			return err
		}
	}
	return nil
}
