package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/ssargent/brokkr/pkg/codec"
)

// inspectCmd represents the inspect command
var inspectCmd = &cobra.Command{
	Use:   "inspect <file>",
	Short: "Decode a record image and print its contents",
	Long: `Decode a raw record image and print a human-readable summary,
including the verdict of structural validation.

The record kind is inferred from the file size, or forced with --record.

Example:
  brokkr inspect manager.bin
  brokkr inspect --record header fragment.bin`,
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

		switch kind {
		case kindHeader:
			h, err := c.DecodeHeader(img)
			if err != nil {
				return err
			}
			printHeader(h, "")
		case kindDevice:
			d, err := c.DecodeDescriptor(img)
			if err != nil {
				return err
			}
			printDevice(d, opts, "")
		case kindManager:
			m, err := c.DecodeManager(img)
			if err != nil {
				return err
			}
			printManager(m, opts)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(inspectCmd)
	inspectCmd.Flags().StringP("record", "r", "", "Record kind: header, device or manager (default: by file size)")
}

func printHeader(h *codec.FileHeader, indent string) {
	fmt.Printf("%sFileHeader\n", indent)
	fmt.Printf("%s  magic:    0x%08X\n", indent, h.Magic)
	fmt.Printf("%s  version:  %d.%d\n", indent, h.Version.Major, h.Version.Minor)
	fmt.Printf("%s  flags:    enabled=%t readonly=%t\n", indent, h.Flags.Enabled(), h.Flags.Readonly())
	fmt.Printf("%s  crc32:    0x%08X\n", indent, h.CRC32)
	if err := codec.ValidateHeader(h); err != nil {
		fmt.Printf("%s  INVALID:  %v\n", indent, err)
	}
}

func printDevice(d *codec.ComplexDeviceDescriptor, opts codec.Options, indent string) {
	printHeader(&d.Header, indent)
	fmt.Printf("%sDevice %q\n", indent, d.DeviceNameString())
	fmt.Printf("%s  type:      %s\n", indent, d.DeviceType)
	fmt.Printf("%s  serial:    %s\n", indent, d.SerialNumberString())
	fmt.Printf("%s  firmware:  %s\n", indent, d.FirmwareVersionString())
	fmt.Printf("%s  geometry:  %d cylinders, %d heads, %d sectors/track, %d total sectors\n",
		indent, d.Geometry.Cylinders, d.Geometry.Heads, d.Geometry.SectorsPerTrack, d.Geometry.TotalSectors)
	fmt.Printf("%s  health:    %d%%, %.1f C, %d hours, %d cycles\n",
		indent, d.Health.HealthPercentage, float64(d.Health.Temperature)/10,
		d.Health.PowerStats.PowerOnHours(), d.Health.PowerStats.PowerCycleCount())
	fmt.Printf("%s  sectors:   %d total, %d used, %d bad, %d bytes each\n",
		indent, d.Stats.TotalSectors, d.Stats.UsedSectors, d.Stats.BadSectors, d.Stats.SectorSize)
	fmt.Printf("%s  checksum:  0x%08X\n", indent, d.StructureChecksum)

	n := int(d.PartitionCount)
	if n > codec.MaxPartitions {
		n = codec.MaxPartitions
	}
	fmt.Printf("%s  partitions (%d):\n", indent, d.PartitionCount)
	for i := 0; i < n; i++ {
		p := &d.Partitions[i]
		fmt.Printf("%s    %d: %q type=0x%02X active=%t start=%d count=%d\n",
			indent, i, p.LabelString(), p.Type, p.Active, p.StartSector, p.SectorCount)
	}

	warnings, err := codec.ValidateDescriptor(d, opts)
	for _, w := range warnings {
		fmt.Printf("%s  warning:   %v\n", indent, w)
	}
	if err != nil {
		fmt.Printf("%s  INVALID:   %v\n", indent, err)
	}
}

func printManager(m *codec.DeviceManager, opts codec.Options) {
	fmt.Printf("DeviceManager\n")
	fmt.Printf("  devices:   %d\n", m.DeviceCount)
	fmt.Printf("  capacity:  %d bytes total, %d free\n",
		m.GlobalStats.TotalCapacityBytes, m.GlobalStats.TotalFreeBytes)
	fmt.Printf("  io:        %d reads, %d writes, %.2f ms average\n",
		m.GlobalStats.TotalReadOperations, m.GlobalStats.TotalWriteOperations,
		m.GlobalStats.AverageResponseTimeMs)
	fmt.Printf("  events:    %d logged\n", m.LogCount)

	n := int(m.DeviceCount)
	if n > codec.MaxDevices {
		n = codec.MaxDevices
	}
	for i := 0; i < n; i++ {
		fmt.Printf("  device %d:\n", i)
		printDevice(&m.Devices[i], opts, "    ")
	}

	e := int(m.LogCount)
	if e > codec.MaxLogEntries {
		e = codec.MaxLogEntries
	}
	for i := 0; i < e; i++ {
		entry := &m.EventLog[i]
		fmt.Printf("  event %d: t=%d type=%d device=%d code=0x%04X %q\n",
			i, entry.Timestamp, entry.EventType, entry.DeviceIndex, entry.EventCode,
			entry.DescriptionString())
	}

	warnings, err := codec.ValidateManager(m, opts)
	for _, w := range warnings {
		fmt.Printf("  warning:   %v\n", w)
	}
	if err != nil {
		fmt.Printf("  INVALID:   %v\n", err)
	}
}
