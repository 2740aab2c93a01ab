package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/rctools/pkg/gt"
)

var compressCmd = &cobra.Command{
	Use:   "compress <input> [output]",
	Short: "Compress a file to GT20",
	Long: `Compress a file into a GT20 stream readable by the game and by
the decompress command.

Examples:
  rctools compress textures.btp
  rctools compress textures.btp output12.gt20`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runCompress,
}

func init() {
	rootCmd.AddCommand(compressCmd)
}

func runCompress(cmd *cobra.Command, args []string) error {
	input := args[0]

	data, err := os.ReadFile(input)
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	output := replaceExt(input, "gt20")
	if len(args) > 1 {
		output = args[1]
	}

	out := gt.Compress(data)
	if err := os.WriteFile(output, out, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", output, err)
	}

	fmt.Printf("Compressed: %s (%d -> %d bytes)\n", filepath.Base(output), len(data), len(out))
	return nil
}
