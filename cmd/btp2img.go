package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/rctools/pkg/archive"
	"github.com/rctools/pkg/btp"
	"github.com/rctools/pkg/format"
	"github.com/rctools/pkg/gt"
)

var (
	btp2imgOutput string
	btp2imgImage  string
	btp2imgScale  int
)

var btp2imgCmd = &cobra.Command{
	Use:   "btp2img <input> [output]",
	Short: "Convert BTP textures to images",
	Long: `Convert Rollcage BTP texture containers to BMP or PNG images.

Each texture page is written as image_<page>.<ext> inside the output
directory. GT20 compressed containers are decompressed first.

Examples:
  # Convert single file (writes into textures/)
  rctools btp2img textures.btp

  # Convert with custom output directory and PNG images
  rctools btp2img output12.gt20 out/ -f png

  # Convert directory of BTP and GT20 files
  rctools btp2img extracted/ -o images/ --scale 2`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runBtp2Img,
}

func init() {
	rootCmd.AddCommand(btp2imgCmd)

	btp2imgCmd.Flags().StringVarP(&btp2imgOutput, "output", "o", "",
		"output directory")
	btp2imgCmd.Flags().StringVarP(&btp2imgImage, "image-format", "f", archive.ImageBMP,
		"image format (bmp or png)")
	btp2imgCmd.Flags().IntVar(&btp2imgScale, "scale", 1,
		"integer upscale factor")
}

func runBtp2Img(cmd *cobra.Command, args []string) error {
	input := args[0]

	imageFormat, err := archive.ParseImageFormat(btp2imgImage)
	if err != nil {
		return err
	}

	info, err := os.Stat(input)
	if err != nil {
		return fmt.Errorf("input not found: %s", input)
	}

	if info.IsDir() {
		return convertBtpDirectory(input, btp2imgOutput, imageFormat)
	}

	// Single file
	output := btp2imgOutput
	if output == "" {
		if len(args) > 1 {
			output = args[1]
		} else {
			output = strings.TrimSuffix(input, filepath.Ext(input))
		}
	}

	n, err := convertBtpFile(input, output, imageFormat)
	if err != nil {
		return err
	}
	fmt.Printf("Converted: %s (%d textures)\n", filepath.Base(input), n)
	return nil
}

func convertBtpFile(input, outputDir, imageFormat string) (int, error) {
	log.WithField("path", input).Debug("Converting")

	data, err := os.ReadFile(input)
	if err != nil {
		return 0, fmt.Errorf("failed to read %s: %w", input, err)
	}

	if format.Identify(data) == format.CompressedStream {
		data, err = gt.DecompressData(data)
		if err != nil {
			return 0, fmt.Errorf("failed to decompress %s: %w", input, err)
		}
	}

	container, err := btp.Decode(data)
	if err != nil {
		return 0, fmt.Errorf("failed to decode %s: %w", input, err)
	}

	textures, errs := container.Textures()
	for _, err := range errs {
		if errors.Is(err, btp.ErrInvalidDimensions) {
			log.WithField("path", input).Debugf("skipped %v", err)
			continue
		}
		log.WithField("path", input).Warnf("%v", err)
	}
	if len(textures) == 0 {
		return 0, nil
	}

	if err := archive.WriteTextures(outputDir, textures, imageFormat, btp2imgScale); err != nil {
		return 0, err
	}
	return len(textures), nil
}

func convertBtpDirectory(inputDir, outputDir, imageFormat string) error {
	if outputDir == "" {
		outputDir = inputDir + "_img"
	}

	if err := os.MkdirAll(outputDir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	files, textures := 0, 0
	err := filepath.WalkDir(inputDir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		if ext != ".btp" && ext != ".gt20" {
			return nil
		}

		// Preserve directory structure
		relPath, _ := filepath.Rel(inputDir, path)
		outDir := filepath.Join(outputDir, strings.TrimSuffix(relPath, filepath.Ext(relPath)))

		n, err := convertBtpFile(path, outDir, imageFormat)
		if err != nil {
			log.Warnf("%v", err)
			return nil // Continue with other files
		}

		files++
		textures += n
		return nil
	})

	if err != nil {
		return err
	}

	fmt.Printf("Converted %d files (%d textures)\n", files, textures)
	return nil
}
