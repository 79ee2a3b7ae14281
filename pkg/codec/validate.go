package codec

import (
	"errors"
	"fmt"
)

// Options configures validation. Strict escalates warnings (unknown device
// type, counts over capacity) into errors; the default leaves them for the
// caller to weigh.
type Options struct {
	Strict bool
}

// Validation is a pure check over a decoded record: nothing is mutated and
// nothing is auto-corrected. Checksum fields are verified against the
// record's re-encoded byte image, which is the range the checksums are
// defined over.

// ValidateHeader checks a FileHeader's magic, version and crc32. All three
// checks are fatal; every violation is reported, not just the first.
func ValidateHeader(h *FileHeader) error {
	var errs []error
	if h.Magic != HeaderMagic {
		errs = append(errs, &MagicMismatchError{Got: h.Magic})
	}
	if h.Version.Major != VersionMajor {
		errs = append(errs, &VersionRangeError{Got: h.Version})
	}
	img := make([]byte, FileHeaderSize)
	if err := encodeHeaderInto(img, h); err != nil {
		errs = append(errs, fmt.Errorf("re-encoding header: %w", err))
	} else if want := Checksum(img[:headerCRCOffset]); h.CRC32 != want {
		errs = append(errs, &ChecksumMismatchError{Record: "FileHeader", Stored: h.CRC32, Computed: want})
	}
	return errors.Join(errs...)
}

// ValidateDescriptor checks a ComplexDeviceDescriptor: embedded header,
// structure checksum, device type discriminant and partition count. Header
// and checksum failures are fatal; an off-list device type and a partition
// count over capacity come back as warnings unless opts.Strict.
func ValidateDescriptor(d *ComplexDeviceDescriptor, opts Options) (warnings []error, err error) {
	var errs []error
	if herr := ValidateHeader(&d.Header); herr != nil {
		errs = append(errs, herr)
	}
	img := make([]byte, DeviceDescriptorSize)
	if eerr := encodeDescriptorInto(img, d); eerr != nil {
		errs = append(errs, fmt.Errorf("re-encoding descriptor: %w", eerr))
	} else if want := Checksum(img[:descriptorChecksumOffset]); d.StructureChecksum != want {
		errs = append(errs, &ChecksumMismatchError{Record: "ComplexDeviceDescriptor", Stored: d.StructureChecksum, Computed: want})
	}
	if !d.DeviceType.Known() {
		warnings = append(warnings, &UnknownDeviceTypeError{Got: d.DeviceType})
	}
	if int(d.PartitionCount) > MaxPartitions {
		warnings = append(warnings, &CapacityError{Field: "partition_count", Count: int(d.PartitionCount), Cap: MaxPartitions})
	}
	if opts.Strict {
		errs = append(errs, warnings...)
		warnings = nil
	}
	return warnings, errors.Join(errs...)
}

// ValidateManager checks a DeviceManager: its counts, its config header and
// every logically present device. Device slots past DeviceCount are not
// inspected; the codec carries them verbatim and no invariant binds them.
func ValidateManager(m *DeviceManager, opts Options) (warnings []error, err error) {
	var errs []error
	if int(m.DeviceCount) > MaxDevices {
		warnings = append(warnings, &CapacityError{Field: "device_count", Count: int(m.DeviceCount), Cap: MaxDevices})
	}
	if int(m.LogCount) > MaxLogEntries {
		warnings = append(warnings, &CapacityError{Field: "log_count", Count: int(m.LogCount), Cap: MaxLogEntries})
	}
	n := int(m.DeviceCount)
	if n > MaxDevices {
		n = MaxDevices
	}
	for i := 0; i < n; i++ {
		dw, derr := ValidateDescriptor(&m.Devices[i], Options{})
		for _, w := range dw {
			warnings = append(warnings, fmt.Errorf("device %d: %w", i, w))
		}
		if derr != nil {
			errs = append(errs, fmt.Errorf("device %d: %w", i, derr))
		}
	}
	if herr := ValidateHeader(&m.ConfigHeader); herr != nil {
		errs = append(errs, fmt.Errorf("config header: %w", herr))
	}
	if opts.Strict {
		errs = append(errs, warnings...)
		warnings = nil
	}
	return warnings, errors.Join(errs...)
}
