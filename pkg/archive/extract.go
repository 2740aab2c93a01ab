package archive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"slices"

	"github.com/apex/log"

	"github.com/rctools/pkg/btp"
	"github.com/rctools/pkg/format"
)

// ExtractOptions configures the extraction process.
type ExtractOptions struct {
	OutputDir   string          // Output directory (default: ".")
	ImageFormat string          // Texture image format: bmp or png (default: bmp)
	Scale       int             // Integer upscale for texture images (default: 1)
	Workers     int             // Decoding goroutines (default: NumCPU)
	Only        []format.Format // Only write assets of these formats (empty: all)
}

// ExtractStats summarises an extraction run.
type ExtractStats struct {
	Assets   int // assets visited
	Written  int // asset files written
	Textures int // texture images written
	Skipped  int // assets filtered out
	Failed   int // assets that could not be decoded
}

// Extractor writes every asset of an archive to disk, converting texture
// containers to images.
type Extractor struct {
	archive *Archive
	opts    ExtractOptions
}

// NewExtractor creates an extractor for an opened archive.
func NewExtractor(a *Archive, opts ExtractOptions) (*Extractor, error) {
	if opts.OutputDir == "" {
		opts.OutputDir = "."
	}
	if opts.ImageFormat == "" {
		opts.ImageFormat = ImageBMP
	}
	imageFormat, err := ParseImageFormat(opts.ImageFormat)
	if err != nil {
		return nil, err
	}
	opts.ImageFormat = imageFormat
	if opts.Scale < 1 {
		opts.Scale = 1
	}
	if opts.Workers < 1 {
		opts.Workers = runtime.NumCPU()
	}

	return &Extractor{archive: a, opts: opts}, nil
}

// Extract decodes and writes all assets. Assets that fail to decode are
// logged and counted; filesystem errors abort the run.
func (e *Extractor) Extract(ctx context.Context) (*ExtractStats, error) {
	if err := os.MkdirAll(e.opts.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	stats := &ExtractStats{}
	total := e.archive.Len()

	err := e.archive.DecodeAll(ctx, e.opts.Workers, func(r *Result) error {
		stats.Assets++
		log.WithField("progress", fmt.Sprintf("%d/%d", stats.Assets, total)).Debug("Extracting")

		if r.Err != nil {
			log.WithField("id", r.ID).Warnf("could not decode: %v", r.Err)
			stats.Failed++
			return nil
		}

		if len(e.opts.Only) > 0 && !slices.Contains(e.opts.Only, r.Asset.Format) {
			stats.Skipped++
			return nil
		}

		return e.writeAsset(r.Asset, stats)
	})
	if err != nil {
		return stats, err
	}
	return stats, nil
}

// writeAsset writes the decoded payload and, for texture containers, one
// image per texture page.
func (e *Extractor) writeAsset(asset *Asset, stats *ExtractStats) error {
	ctx := log.WithFields(log.Fields{
		"id":     asset.ID,
		"format": asset.Format,
	})

	if asset.Format == format.TextureContainer {
		n, err := e.writeTextures(asset, ctx)
		if err != nil {
			return err
		}
		stats.Textures += n
	}

	outPath := filepath.Join(e.opts.OutputDir, asset.FileName())
	ctx.WithField("path", outPath).Debug("Writing asset")
	if err := os.WriteFile(outPath, asset.Data, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", outPath, err)
	}
	stats.Written++
	return nil
}

func (e *Extractor) writeTextures(asset *Asset, ctx log.Interface) (int, error) {
	container, err := asset.Container()
	if err != nil {
		ctx.Warnf("could not read texture container: %v", err)
		return 0, nil
	}

	textures, errs := container.Textures()
	for _, err := range errs {
		if errors.Is(err, btp.ErrInvalidDimensions) {
			ctx.Debugf("skipped %v", err)
			continue
		}
		ctx.Warnf("%v", err)
	}
	if len(textures) == 0 {
		return 0, nil
	}

	dir := filepath.Join(e.opts.OutputDir, asset.Name())
	if err := WriteTextures(dir, textures, e.opts.ImageFormat, e.opts.Scale); err != nil {
		return 0, err
	}
	return len(textures), nil
}
