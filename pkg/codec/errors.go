package codec

import "fmt"

// FieldOverflowError reports a bitfield member value that does not fit its
// declared width.
type FieldOverflowError struct {
	Field string
	Max   uint32
}

func (e *FieldOverflowError) Error() string {
	return fmt.Sprintf("field %q overflows its bit width (max %d)", e.Field, e.Max)
}

// FieldTooLongError reports fixed-array input longer than the slot it must
// occupy. Fixed arrays are zero-padded when short but never silently truncated.
type FieldTooLongError struct {
	Field string
	Max   int
	Got   int
}

func (e *FieldTooLongError) Error() string {
	return fmt.Sprintf("field %q is %d bytes, slot holds %d", e.Field, e.Got, e.Max)
}

// TruncatedInputError reports a decode buffer shorter than the record's fixed
// length.
type TruncatedInputError struct {
	Record string
	Need   int
	Got    int
}

func (e *TruncatedInputError) Error() string {
	return fmt.Sprintf("truncated %s: need %d bytes, got %d", e.Record, e.Need, e.Got)
}

// ChecksumMismatchError reports a stored checksum that does not match the
// recomputed value. It is reported, never auto-corrected.
type ChecksumMismatchError struct {
	Record   string
	Stored   uint32
	Computed uint32
}

func (e *ChecksumMismatchError) Error() string {
	return fmt.Sprintf("%s checksum mismatch: stored 0x%08X, computed 0x%08X", e.Record, e.Stored, e.Computed)
}

// MagicMismatchError reports a header whose magic number is not the expected
// constant.
type MagicMismatchError struct {
	Got uint32
}

func (e *MagicMismatchError) Error() string {
	return fmt.Sprintf("bad header magic 0x%08X, want 0x%08X", e.Got, HeaderMagic)
}

// VersionRangeError reports a header version outside the accepted range.
type VersionRangeError struct {
	Got Version
}

func (e *VersionRangeError) Error() string {
	return fmt.Sprintf("unsupported format version %d.%d, want major %d", e.Got.Major, e.Got.Minor, VersionMajor)
}

// UnknownDeviceTypeError reports a device_type discriminant outside the
// enumerated set. Non-fatal by default: 0xFF is itself a valid "unknown"
// sentinel, so an off-list value signals skew rather than corruption.
type UnknownDeviceTypeError struct {
	Got DeviceType
}

func (e *UnknownDeviceTypeError) Error() string {
	return fmt.Sprintf("unknown device type 0x%02X", uint8(e.Got))
}

// CapacityError reports a logical count field exceeding its array's declared
// capacity.
type CapacityError struct {
	Field string
	Count int
	Cap   int
}

func (e *CapacityError) Error() string {
	return fmt.Sprintf("%s is %d, capacity is %d", e.Field, e.Count, e.Cap)
}
