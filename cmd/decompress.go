package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/apex/log"
	"github.com/spf13/cobra"

	"github.com/rctools/pkg/format"
	"github.com/rctools/pkg/gt"
)

var decompressCmd = &cobra.Command{
	Use:   "decompress <input> [output]",
	Short: "Decompress a GT20 file",
	Long: `Decompress a GT20 stream to its raw contents.

If no output path is given, the output is written next to the input with
an extension matching the decompressed payload (.btp, .bmp, .gfxm) or .bin.

Examples:
  rctools decompress output12.gt20
  rctools decompress output12.gt20 textures.btp`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDecompress,
}

func init() {
	rootCmd.AddCommand(decompressCmd)
}

func runDecompress(cmd *cobra.Command, args []string) error {
	input := args[0]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	hdr, err := gt.ReadHeader(data)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", input, err)
	}
	log.WithFields(log.Fields{
		"size":    hdr.UncompressedSize,
		"overlap": hdr.Overlap,
		"skip":    hdr.Skip,
	}).Debug("GT20 header")

	out, err := gt.DecompressData(data)
	if err != nil {
		return fmt.Errorf("failed to decompress %s: %w", input, err)
	}

	output := ""
	if len(args) > 1 {
		output = args[1]
	} else {
		ext := format.Identify(out).Extension()
		if ext == "" {
			ext = "bin"
		}
		output = replaceExt(input, ext)
	}

	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Decompressed: %s (%d -> %d bytes)\n", filepath.Base(output), len(data), len(out))
	return nil
}

// replaceExt swaps the extension of path for ext (without the dot). A path
// that already carries ext gets it appended instead.
func replaceExt(path, ext string) string {
	if strings.EqualFold(filepath.Ext(path), "."+ext) {
		return path + "." + ext
	}
	return strings.TrimSuffix(path, filepath.Ext(path)) + "." + ext
}
