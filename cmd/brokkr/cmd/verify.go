package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/brokkr/pkg/codec"
)

// verifyCmd represents the verify command
var verifyCmd = &cobra.Command{
	Use:   "verify <file>",
	Short: "Check the checksums and structure of a record image",
	Long: `Check every checksum a record image carries — the crc32 of a file
header, the structure checksum of a device descriptor, or all per-slot
checksums of a manager image — then decode it and run structural
validation.

Exits non-zero on any failure, so the command works in scripts.
Warnings (unknown device types, counts over capacity) are printed but
only fail the command with --strict.

Example:
  brokkr verify manager.bin`,
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

		c := codec.NewRecordCodec()
		opts := codec.Options{Strict: cfg.Validation.Strict}

		var ok bool
		var warnings []error
		var invalid error
		switch kind {
		case kindHeader:
			if ok, err = codec.VerifyHeader(img); err != nil {
				return err
			}
			h, err := c.DecodeHeader(img)
			if err != nil {
				return err
			}
			invalid = codec.ValidateHeader(h)
		case kindDevice:
			if ok, err = codec.VerifyDescriptor(img); err != nil {
				return err
			}
			d, err := c.DecodeDescriptor(img)
			if err != nil {
				return err
			}
			warnings, invalid = codec.ValidateDescriptor(d, opts)
		case kindManager:
			if ok, err = codec.VerifyManager(img); err != nil {
				return err
			}
			m, err := c.DecodeManager(img)
			if err != nil {
				return err
			}
			warnings, invalid = codec.ValidateManager(m, opts)
		}

		for _, w := range warnings {
			fmt.Printf("%s: warning: %v\n", args[0], w)
		}
		if !ok {
			return fmt.Errorf("%s: checksum mismatch", args[0])
		}
		if invalid != nil {
			return fmt.Errorf("%s: %w", args[0], invalid)
		}
		fmt.Printf("%s: ok\n", args[0])
		return nil
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	verifyCmd.Flags().StringP("record", "r", "", "Record kind: header, device or manager (default: by file size)")
}
