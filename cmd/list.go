package cmd

import (
	"fmt"
	"path/filepath"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/rctools/pkg/archive"
	"github.com/rctools/pkg/format"
)

var (
	listDecode bool
	listLimit  int
)

var listCmd = &cobra.Command{
	Use:   "list <idx> [img]",
	Short: "Display IDX/IMG archive structure",
	Long: `Display the records of a Rollcage IDX/IMG archive pair.

Shows:
  - Number of records and size of the data file
  - Offset, stored size and decompressed size of each asset
  - With --decode: the payload format after decompression, the number of
    texture pages in BTP containers and GFXM model header counts

Examples:
  # Display the first 20 records
  rctools list DATA.IDX

  # Display every record with decoded formats
  rctools list DATA.IDX DATA.IMG --decode -n 0`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runList,
}

func init() {
	rootCmd.AddCommand(listCmd)

	listCmd.Flags().BoolVarP(&listDecode, "decode", "d", false,
		"decode each asset and show its format")
	listCmd.Flags().IntVarP(&listLimit, "limit", "n", 20,
		"number of records to show (0 for all)")
}

func runList(cmd *cobra.Command, args []string) error {
	idxPath, imgPath, err := archivePaths(args)
	if err != nil {
		return err
	}

	a, err := archive.Open(idxPath, imgPath, archive.Options{})
	if err != nil {
		return fmt.Errorf("failed to open archive: %w", err)
	}
	defer a.Close()

	fmt.Printf("File: %s\n", filepath.Base(idxPath))
	fmt.Printf("Data: %s (%d bytes)\n", filepath.Base(imgPath), a.Size())
	fmt.Printf("Records: %d total\n", a.Len())
	fmt.Println()

	shown := a.Len()
	if listLimit > 0 && listLimit < shown {
		shown = listLimit
	}

	if !listDecode {
		for id := 0; id < shown; id++ {
			printRecord(a, id)
			fmt.Println()
		}
		printRemainder(a.Len(), shown)
		return nil
	}

	counts := make(map[string]int)
	err = a.DecodeAll(cmd.Context(), runtime.NumCPU(), func(r *archive.Result) error {
		summary := describeAsset(r)
		if r.Err != nil {
			counts["failed"]++
		} else {
			counts[r.Asset.Format.String()]++
		}

		if r.ID < shown {
			printRecord(a, r.ID)
			fmt.Printf(" %s\n", summary)
		}
		return nil
	})
	if err != nil {
		return err
	}
	printRemainder(a.Len(), shown)

	fmt.Println()
	fmt.Println("Formats:")
	for _, name := range []string{"BTP", "BMP", "GFXM", "GT20", "unknown", "failed"} {
		if n, ok := counts[name]; ok {
			fmt.Printf("  %s: %d\n", name, n)
		}
	}
	return nil
}

func printRecord(a *archive.Archive, id int) {
	rec := a.Records[id]
	fmt.Printf("  [%d] offset: 0x%X, size: %d bytes, decompressed: %d bytes",
		id, rec.FileOffset, rec.CompressedLength, rec.DecompressedLength)
}

func printRemainder(total, shown int) {
	if shown < total {
		fmt.Printf("  ... and %d more records\n", total-shown)
	}
}

func describeAsset(r *archive.Result) string {
	if r.Err != nil {
		return fmt.Sprintf("(error: %v)", r.Err)
	}

	asset := r.Asset
	desc := asset.Format.String()
	if asset.Compressed {
		desc += " (GT20)"
	}

	switch asset.Format {
	case format.TextureContainer:
		container, err := asset.Container()
		if err != nil {
			return fmt.Sprintf("%s (error: %v)", desc, err)
		}
		return fmt.Sprintf("%s, textures: %d, palettes: %d",
			desc, container.Header.NumTextures, container.Header.NumPalettes)
	case format.GraphicsModel:
		model, err := asset.Model()
		if err != nil {
			return fmt.Sprintf("%s (error: %v)", desc, err)
		}
		return fmt.Sprintf("%s, coordinates: %d, segments: %d",
			desc, model.NumCoordinates, model.NumSegments)
	}
	return desc
}
