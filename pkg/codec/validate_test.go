package codec

import (
	"errors"
	"testing"
)

func validHeader(t *testing.T) *FileHeader {
	t.Helper()
	c := NewRecordCodec()
	h := &FileHeader{Magic: HeaderMagic, Version: Version{Major: VersionMajor, Minor: VersionMinor}}
	if _, err := c.EncodeHeader(h); err != nil {
		t.Fatal(err)
	}
	return h
}

func TestValidateHeader(t *testing.T) {
	t.Run("valid header passes", func(t *testing.T) {
		if err := ValidateHeader(validHeader(t)); err != nil {
			t.Errorf("ValidateHeader = %v", err)
		}
	})

	t.Run("any minor version is accepted", func(t *testing.T) {
		c := NewRecordCodec()
		h := &FileHeader{Magic: HeaderMagic, Version: Version{Major: VersionMajor, Minor: 9}}
		if _, err := c.EncodeHeader(h); err != nil {
			t.Fatal(err)
		}
		if err := ValidateHeader(h); err != nil {
			t.Errorf("ValidateHeader = %v", err)
		}
	})

	t.Run("wrong magic", func(t *testing.T) {
		h := validHeader(t)
		h.Magic = 0xCAFEBABE
		err := ValidateHeader(h)
		var magic *MagicMismatchError
		if !errors.As(err, &magic) {
			t.Fatalf("ValidateHeader = %v, want MagicMismatchError", err)
		}
		// Magic sits inside the checksummed range, so mutating it after
		// stamping breaks the stored crc too; both failures are reported.
		var crc *ChecksumMismatchError
		if !errors.As(err, &crc) {
			t.Errorf("ValidateHeader = %v, want ChecksumMismatchError too", err)
		}
	})

	t.Run("wrong major version", func(t *testing.T) {
		c := NewRecordCodec()
		h := &FileHeader{Magic: HeaderMagic, Version: Version{Major: 2}}
		if _, err := c.EncodeHeader(h); err != nil {
			t.Fatal(err)
		}
		var version *VersionRangeError
		if err := ValidateHeader(h); !errors.As(err, &version) {
			t.Fatalf("ValidateHeader = %v, want VersionRangeError", err)
		}
	})

	t.Run("stale checksum", func(t *testing.T) {
		h := validHeader(t)
		h.Buffer[0] ^= 0xFF
		var crc *ChecksumMismatchError
		if err := ValidateHeader(h); !errors.As(err, &crc) {
			t.Fatalf("ValidateHeader = %v, want ChecksumMismatchError", err)
		}
	})
}

func TestValidateDescriptor(t *testing.T) {
	c := NewRecordCodec()

	valid := func() *ComplexDeviceDescriptor {
		d := sampleDescriptor(t)
		if _, err := c.EncodeDescriptor(d); err != nil {
			t.Fatal(err)
		}
		return d
	}

	t.Run("valid descriptor passes cleanly", func(t *testing.T) {
		warnings, err := ValidateDescriptor(valid(), Options{})
		if err != nil {
			t.Fatalf("ValidateDescriptor = %v", err)
		}
		if len(warnings) != 0 {
			t.Errorf("warnings = %v", warnings)
		}
	})

	t.Run("stale structure checksum", func(t *testing.T) {
		d := valid()
		d.Stats.BadSectors++
		_, err := ValidateDescriptor(d, Options{})
		var crc *ChecksumMismatchError
		if !errors.As(err, &crc) {
			t.Fatalf("err = %v, want ChecksumMismatchError", err)
		}
		if crc.Record != "ComplexDeviceDescriptor" {
			t.Errorf("Record = %q", crc.Record)
		}
	})

	t.Run("off-list device type warns", func(t *testing.T) {
		d := sampleDescriptor(t)
		d.DeviceType = 0x42
		if _, err := c.EncodeDescriptor(d); err != nil {
			t.Fatal(err)
		}
		warnings, err := ValidateDescriptor(d, Options{})
		if err != nil {
			t.Fatalf("err = %v, want warnings only", err)
		}
		var unknown *UnknownDeviceTypeError
		if len(warnings) != 1 || !errors.As(warnings[0], &unknown) {
			t.Fatalf("warnings = %v, want one UnknownDeviceTypeError", warnings)
		}
	})

	t.Run("unknown sentinel 0xFF is not a warning", func(t *testing.T) {
		d := sampleDescriptor(t)
		d.DeviceType = DeviceTypeUnknown
		if _, err := c.EncodeDescriptor(d); err != nil {
			t.Fatal(err)
		}
		warnings, err := ValidateDescriptor(d, Options{})
		if err != nil || len(warnings) != 0 {
			t.Errorf("ValidateDescriptor = (%v, %v)", warnings, err)
		}
	})

	t.Run("partition count over capacity warns", func(t *testing.T) {
		d := sampleDescriptor(t)
		d.PartitionCount = 5
		if _, err := c.EncodeDescriptor(d); err != nil {
			t.Fatal(err)
		}
		warnings, err := ValidateDescriptor(d, Options{})
		if err != nil {
			t.Fatalf("err = %v, want warnings only", err)
		}
		var capErr *CapacityError
		if len(warnings) != 1 || !errors.As(warnings[0], &capErr) {
			t.Fatalf("warnings = %v, want one CapacityError", warnings)
		}
		if capErr.Field != "partition_count" || capErr.Count != 5 || capErr.Cap != MaxPartitions {
			t.Errorf("CapacityError = %+v", capErr)
		}
	})

	t.Run("strict escalates warnings to rejection", func(t *testing.T) {
		d := sampleDescriptor(t)
		d.PartitionCount = 5
		if _, err := c.EncodeDescriptor(d); err != nil {
			t.Fatal(err)
		}
		warnings, err := ValidateDescriptor(d, Options{Strict: true})
		var capErr *CapacityError
		if !errors.As(err, &capErr) {
			t.Fatalf("strict err = %v, want CapacityError", err)
		}
		if len(warnings) != 0 {
			t.Errorf("strict warnings = %v, want none", warnings)
		}
	})
}

func TestValidateManager(t *testing.T) {
	c := NewRecordCodec()

	valid := func() *DeviceManager {
		m := &DeviceManager{
			DeviceCount: 1,
			ConfigHeader: FileHeader{
				Magic:   HeaderMagic,
				Version: Version{Major: VersionMajor},
			},
		}
		m.Devices[0] = *sampleDescriptor(t)
		if _, err := c.EncodeManager(m); err != nil {
			t.Fatal(err)
		}
		return m
	}

	t.Run("valid manager passes", func(t *testing.T) {
		warnings, err := ValidateManager(valid(), Options{})
		if err != nil || len(warnings) != 0 {
			t.Errorf("ValidateManager = (%v, %v)", warnings, err)
		}
	})

	t.Run("device errors carry their index", func(t *testing.T) {
		m := valid()
		m.Devices[0].Health.Temperature++
		_, err := ValidateManager(m, Options{})
		var crc *ChecksumMismatchError
		if !errors.As(err, &crc) {
			t.Fatalf("err = %v, want ChecksumMismatchError", err)
		}
	})

	t.Run("unused device slots are not inspected", func(t *testing.T) {
		m := valid()
		// Slot 3 is garbage but past DeviceCount.
		m.Devices[3].Header.Magic = 0x12345678
		m.Devices[3].StructureChecksum = 0
		warnings, err := ValidateManager(m, Options{})
		if err != nil || len(warnings) != 0 {
			t.Errorf("ValidateManager = (%v, %v)", warnings, err)
		}
	})

	t.Run("counts over capacity warn", func(t *testing.T) {
		// A count past capacity is clamped for slot inspection, so every
		// slot must hold a valid descriptor for the result to stay
		// warning-only.
		m := &DeviceManager{
			DeviceCount: 1,
			ConfigHeader: FileHeader{
				Magic:   HeaderMagic,
				Version: Version{Major: VersionMajor},
			},
		}
		for i := 0; i < MaxDevices; i++ {
			m.Devices[i] = *sampleDescriptor(t)
		}
		if _, err := c.EncodeManager(m); err != nil {
			t.Fatal(err)
		}
		m.DeviceCount = 9
		m.LogCount = 33
		warnings, err := ValidateManager(m, Options{})
		if err != nil {
			t.Fatalf("err = %v, want warnings only", err)
		}
		if len(warnings) != 2 {
			t.Fatalf("warnings = %v, want two CapacityErrors", warnings)
		}
	})

	t.Run("bad config header is fatal", func(t *testing.T) {
		m := valid()
		m.ConfigHeader.Magic = 0
		_, err := ValidateManager(m, Options{})
		var magic *MagicMismatchError
		if !errors.As(err, &magic) {
			t.Fatalf("err = %v, want MagicMismatchError", err)
		}
	})
}
