package codec

import "hash/crc32"

// The format uses CRC-32/ISO-HDLC (polynomial 0xEDB88320 reflected, initial
// value 0xFFFFFFFF, final xor 0xFFFFFFFF), which is crc32.IEEE. Both checksum
// fields cover every encoded byte that precedes them and nothing after:
// FileHeader.crc32 covers bytes [0,135) of the header image, structure_checksum
// covers bytes [0,1348) of the descriptor image, reserved bytes included.

// Checksum computes the format's CRC-32 over data.
func Checksum(data []byte) uint32 {
	return crc32.ChecksumIEEE(data)
}

// StampHeader recomputes and stores the crc32 field of a raw FileHeader image.
func StampHeader(img []byte) error {
	if len(img) < FileHeaderSize {
		return &TruncatedInputError{Record: "FileHeader", Need: FileHeaderSize, Got: len(img)}
	}
	WriteU32(img, headerCRCOffset, Checksum(img[:headerCRCOffset]))
	return nil
}

// VerifyHeader reports whether a raw FileHeader image carries a valid crc32.
func VerifyHeader(img []byte) (bool, error) {
	if len(img) < FileHeaderSize {
		return false, &TruncatedInputError{Record: "FileHeader", Need: FileHeaderSize, Got: len(img)}
	}
	return ReadU32(img, headerCRCOffset) == Checksum(img[:headerCRCOffset]), nil
}

// StampDescriptor recomputes and stores both checksums of a raw
// ComplexDeviceDescriptor image: the embedded header's crc32 first, then the
// trailing structure_checksum over everything before it.
func StampDescriptor(img []byte) error {
	if len(img) < DeviceDescriptorSize {
		return &TruncatedInputError{Record: "ComplexDeviceDescriptor", Need: DeviceDescriptorSize, Got: len(img)}
	}
	if err := StampHeader(img[:FileHeaderSize]); err != nil {
		return err
	}
	WriteU32(img, descriptorChecksumOffset, Checksum(img[:descriptorChecksumOffset]))
	return nil
}

// VerifyDescriptor reports whether a raw ComplexDeviceDescriptor image carries
// a valid structure_checksum.
func VerifyDescriptor(img []byte) (bool, error) {
	if len(img) < DeviceDescriptorSize {
		return false, &TruncatedInputError{Record: "ComplexDeviceDescriptor", Need: DeviceDescriptorSize, Got: len(img)}
	}
	return ReadU32(img, descriptorChecksumOffset) == Checksum(img[:descriptorChecksumOffset]), nil
}

// StampManager recomputes every checksum embedded in a raw DeviceManager
// image: both checksums of each of the eight device slots, used or not, and
// the crc32 of the trailing config header.
func StampManager(img []byte) error {
	if len(img) < DeviceManagerSize {
		return &TruncatedInputError{Record: "DeviceManager", Need: DeviceManagerSize, Got: len(img)}
	}
	for i := 0; i < MaxDevices; i++ {
		off := i * DeviceDescriptorSize
		if err := StampDescriptor(img[off : off+DeviceDescriptorSize]); err != nil {
			return err
		}
	}
	return StampHeader(img[managerConfigHeaderOffset : managerConfigHeaderOffset+FileHeaderSize])
}

// VerifyManager reports whether every checksum embedded in a raw
// DeviceManager image is valid.
func VerifyManager(img []byte) (bool, error) {
	if len(img) < DeviceManagerSize {
		return false, &TruncatedInputError{Record: "DeviceManager", Need: DeviceManagerSize, Got: len(img)}
	}
	for i := 0; i < MaxDevices; i++ {
		off := i * DeviceDescriptorSize
		ok, err := VerifyDescriptor(img[off : off+DeviceDescriptorSize])
		if err != nil || !ok {
			return false, err
		}
	}
	return VerifyHeader(img[managerConfigHeaderOffset : managerConfigHeaderOffset+FileHeaderSize])
}
