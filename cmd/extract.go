package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/rctools/pkg/archive"
	"github.com/rctools/pkg/format"
)

var (
	extractOutput  string
	extractImage   string
	extractWorkers int
	extractScale   int
	extractOnly    []string
)

var extractCmd = &cobra.Command{
	Use:   "extract <idx> [img]",
	Short: "Extract assets from IDX/IMG archives",
	Long: `Extract every asset from a Rollcage IDX/IMG archive pair.

The IDX file lists the location of each asset inside the IMG data file.
If the IMG path is omitted, the file with the same name and an .img
extension next to the IDX file is used.

GT20 compressed assets are decompressed before being written. Each asset is
saved as output<id>.<ext>; BTP texture containers additionally get a
directory output<id>/ with one image_<page> image per texture page.

Examples:
  # Extract everything from an archive pair
  rctools extract DATA.IDX DATA.IMG

  # Write PNG textures at double size into extracted/
  rctools extract DATA.IDX -o extracted/ -f png --scale 2

  # Only write texture containers and bitmaps
  rctools extract DATA.IDX --only btp,bmp`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runExtract,
}

func init() {
	rootCmd.AddCommand(extractCmd)

	extractCmd.Flags().StringVarP(&extractOutput, "output", "o", ".",
		"output directory for extracted files")
	extractCmd.Flags().StringVarP(&extractImage, "image-format", "f", archive.ImageBMP,
		"texture image format (bmp or png)")
	extractCmd.Flags().IntVarP(&extractWorkers, "workers", "j", 0,
		"number of decoding goroutines (default: number of CPUs)")
	extractCmd.Flags().IntVar(&extractScale, "scale", 1,
		"integer upscale factor for texture images")
	extractCmd.Flags().StringSliceVar(&extractOnly, "only", nil,
		"only write assets of these formats (btp, bmp, gfxm, unknown)")
}

func runExtract(cmd *cobra.Command, args []string) error {
	idxPath, imgPath, err := archivePaths(args)
	if err != nil {
		return err
	}

	only, err := parseFormats(extractOnly)
	if err != nil {
		return err
	}

	a, err := archive.Open(idxPath, imgPath, archive.Options{CacheSize: archive.DefaultCacheSize})
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	opts := archive.ExtractOptions{
		OutputDir:   extractOutput,
		ImageFormat: extractImage,
		Scale:       extractScale,
		Workers:     extractWorkers,
		Only:        only,
	}

	extractor, err := archive.NewExtractor(a, opts)
	if err != nil {
		return fmt.Errorf("failed to create extractor: %w", err)
	}

	fmt.Printf("Extracting: %s\n", filepath.Base(idxPath))
	fmt.Printf("Data: %s (%d bytes)\n", filepath.Base(imgPath), a.Size())
	fmt.Printf("Assets: %d\n", a.Len())
	if len(only) > 0 {
		fmt.Printf("Only: %s\n", strings.Join(extractOnly, ", "))
	}
	fmt.Println()

	stats, err := extractor.Extract(cmd.Context())
	if err != nil {
		return fmt.Errorf("extraction failed: %w", err)
	}

	log.WithFields(log.Fields{
		"written":  stats.Written,
		"textures": stats.Textures,
		"skipped":  stats.Skipped,
		"failed":   stats.Failed,
	}).Info("Extraction complete")
	return nil
}

// archivePaths resolves the <idx> [img] arguments shared by extract and list.
func archivePaths(args []string) (string, string, error) {
	idxPath, err := filepath.Abs(args[0])
	if err != nil {
		return "", "", fmt.Errorf("failed to resolve path: %w", err)
	}
	if _, err := os.Stat(idxPath); os.IsNotExist(err) {
		return "", "", fmt.Errorf("index not found: %s", args[0])
	}

	imgPath := archive.DefaultImgPath(idxPath)
	if len(args) > 1 {
		imgPath = args[1]
	}
	if _, err := os.Stat(imgPath); os.IsNotExist(err) {
		return "", "", fmt.Errorf("data file not found: %s", imgPath)
	}
	return idxPath, imgPath, nil
}

func parseFormats(names []string) ([]format.Format, error) {
	var formats []format.Format
	for _, name := range names {
		f, ok := format.Parse(name)
		if !ok {
			return nil, fmt.Errorf("unknown format: %q", name)
		}
		formats = append(formats, f)
	}
	return formats, nil
}
