// Package codec implements the storage-device inventory wire format.
//
// The format is a family of fixed-size, 1-byte-aligned binary records
// originally laid out as pack(1) C structures: a file header, a per-device
// descriptor and a device-manager container. Every multi-byte integer is
// little-endian, no padding is ever inserted, and fixed char arrays travel
// as raw bytes with no NUL guarantee.
//
// # Record Sizes
//
//	FileHeader               139 bytes   magic(4) version(2) flags(1) buffer(128) crc32(4)
//	PartitionInfo             26 bytes
//	SectorStats               68 bytes
//	DeviceHealth              40 bytes
//	ComplexDeviceDescriptor 1352 bytes   embeds a FileHeader, trailing structure_checksum
//	DeviceManager          13294 bytes   8 descriptors, 32-slot event log, trailing FileHeader
//
// # Bitfield Groups
//
// Several fields are C unions of a bitfield struct and a raw unsigned
// integer over the same storage. Allocation is LSB-first: the first declared
// member occupies the low-order bits, each later member the next higher
// bits, and the raw alias is the whole cell read as one little-endian
// unsigned value. Group, the typed flag views in this package and the layout
// tables all describe the same bit positions; writing through the named
// members and writing the raw value produce identical bytes.
//
// # Checksums
//
// Both checksum fields use CRC-32/ISO-HDLC (hash/crc32 IEEE) over every
// encoded byte preceding the field: bytes [0,135) for FileHeader.crc32 and
// bytes [0,1348) for ComplexDeviceDescriptor.structure_checksum, reserved
// bytes included. Encode stamps checksums from the encoded image; Validate
// recomputes and compares them. StampHeader, StampDescriptor and
// StampManager re-stamp raw images in place, and the matching Verify
// functions check them without decoding.
//
// # Layout Tables
//
// Every record type has a package-level Layout listing each field's offset,
// size, kind and, for bitfields, bit positions. The tables are built once at
// package initialization, are never mutated, and drive both encoding and
// decoding; sizes such as FileHeaderSize are derived from them.
//
// # Usage
//
//	c := codec.NewRecordCodec()
//
//	h := &codec.FileHeader{Magic: codec.HeaderMagic,
//		Version: codec.Version{Major: 1, Minor: 0}}
//	img, err := c.EncodeHeader(h) // crc32 stamped into img and h
//	if err != nil {
//		return err
//	}
//
//	back, err := c.DecodeHeader(img)
//	if err != nil {
//		return err
//	}
//	if err := codec.ValidateHeader(back); err != nil {
//		return err // corrupt or foreign data
//	}
//
// # Error Handling
//
// Encode fails with FieldOverflowError when a value does not fit its bit
// width and FieldTooLongError when input overruns a fixed slot; decode fails
// with TruncatedInputError when the buffer is shorter than the record.
// Failed calls return no buffer, so a caller can never mistake a partial
// image for a valid one. Validation reports MagicMismatchError,
// VersionRangeError, ChecksumMismatchError, UnknownDeviceTypeError and
// CapacityError; the last two are warnings unless Options.Strict.
//
// # Thread Safety
//
// The codec is stateless and the layout tables are immutable after package
// initialization, so all operations are safe for concurrent use on disjoint
// buffers.
package codec
