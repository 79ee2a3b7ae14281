package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/brokkr/pkg/codec"
)

// stampCmd represents the stamp command
var stampCmd = &cobra.Command{
	Use:   "stamp <file>",
	Short: "Recompute and store the checksums of a record image",
	Long: `Recompute every checksum a record image carries and write the
stamped image back, in place or to --output. Useful after patching an
image by hand.

Example:
  brokkr stamp patched.bin
  brokkr stamp patched.bin --output fixed.bin`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		img, err := os.ReadFile(args[0])
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", args[0], err)
		}
		record, _ := cmd.Flags().GetString("record")
		kind, err := detectRecord(record, len(img))
		if err != nil {
			return err
		}

		switch kind {
		case kindHeader:
			err = codec.StampHeader(img)
		case kindDevice:
			err = codec.StampDescriptor(img)
		case kindManager:
			err = codec.StampManager(img)
		}
		if err != nil {
			return err
		}

		out, _ := cmd.Flags().GetString("output")
		if out == "" {
			out = args[0]
		}
		if err := os.WriteFile(out, img, 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", out, err)
		}
		fmt.Printf("%s: stamped\n", out)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(stampCmd)
	stampCmd.Flags().StringP("record", "r", "", "Record kind: header, device or manager (default: by file size)")
	stampCmd.Flags().StringP("output", "o", "", "Write the stamped image here instead of in place")
}
