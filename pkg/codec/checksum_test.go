package codec

import (
	"errors"
	"testing"
)

func TestChecksum_KnownVector(t *testing.T) {
	// The CRC-32/ISO-HDLC check value.
	if got := Checksum([]byte("123456789")); got != 0xCBF43926 {
		t.Fatalf("Checksum = 0x%08X, want 0xCBF43926", got)
	}
	if got := Checksum(nil); got != 0 {
		t.Fatalf("Checksum(nil) = 0x%08X, want 0", got)
	}
}

func TestStampHeader_VerifyHeader(t *testing.T) {
	img := make([]byte, FileHeaderSize)
	WriteU32(img, 0, HeaderMagic)
	img[4] = VersionMajor

	if err := StampHeader(img); err != nil {
		t.Fatalf("StampHeader failed: %v", err)
	}
	if got := ReadU32(img, headerCRCOffset); got != Checksum(img[:headerCRCOffset]) {
		t.Fatalf("stored crc 0x%08X does not cover bytes [0,%d)", got, headerCRCOffset)
	}
	ok, err := VerifyHeader(img)
	if err != nil || !ok {
		t.Fatalf("VerifyHeader = (%v, %v), want (true, nil)", ok, err)
	}
}

func TestVerifyHeader_DetectsEveryCoveredByteFlip(t *testing.T) {
	img := make([]byte, FileHeaderSize)
	for i := range img {
		img[i] = byte(i)
	}
	if err := StampHeader(img); err != nil {
		t.Fatal(err)
	}
	for i := 0; i < headerCRCOffset; i++ {
		img[i] ^= 0x01
		if ok, _ := VerifyHeader(img); ok {
			t.Fatalf("flip of byte %d went undetected", i)
		}
		img[i] ^= 0x01
	}
}

func TestStampDescriptor_CoversEverythingBeforeChecksum(t *testing.T) {
	img := make([]byte, DeviceDescriptorSize)
	for i := range img {
		img[i] = byte(i * 7)
	}
	if err := StampDescriptor(img); err != nil {
		t.Fatalf("StampDescriptor failed: %v", err)
	}
	// The embedded header is stamped first, then the structure checksum over
	// all preceding bytes, reserved included.
	if ok, err := VerifyHeader(img[:FileHeaderSize]); err != nil || !ok {
		t.Fatalf("embedded header not stamped: (%v, %v)", ok, err)
	}
	if got := ReadU32(img, descriptorChecksumOffset); got != Checksum(img[:descriptorChecksumOffset]) {
		t.Fatal("structure checksum does not cover bytes before the field")
	}
	ok, err := VerifyDescriptor(img)
	if err != nil || !ok {
		t.Fatalf("VerifyDescriptor = (%v, %v), want (true, nil)", ok, err)
	}

	// A flip inside the reserved area must be caught: reserved bytes are
	// inside the covered range.
	img[descriptorChecksumOffset-1] ^= 0xFF
	if ok, _ := VerifyDescriptor(img); ok {
		t.Fatal("flip inside reserved bytes went undetected")
	}
}

func TestStampManager_StampsEverySlot(t *testing.T) {
	img := make([]byte, DeviceManagerSize)
	for i := range img {
		img[i] = byte(i * 13)
	}
	if err := StampManager(img); err != nil {
		t.Fatalf("StampManager failed: %v", err)
	}
	for i := 0; i < MaxDevices; i++ {
		off := i * DeviceDescriptorSize
		if ok, err := VerifyDescriptor(img[off : off+DeviceDescriptorSize]); err != nil || !ok {
			t.Fatalf("slot %d not stamped: (%v, %v)", i, ok, err)
		}
	}
	if ok, err := VerifyHeader(img[managerConfigHeaderOffset:]); err != nil || !ok {
		t.Fatalf("config header not stamped: (%v, %v)", ok, err)
	}
	ok, err := VerifyManager(img)
	if err != nil || !ok {
		t.Fatalf("VerifyManager = (%v, %v), want (true, nil)", ok, err)
	}

	// Corrupting any single slot fails the whole image.
	img[3*DeviceDescriptorSize+100] ^= 0xFF
	if ok, _ := VerifyManager(img); ok {
		t.Fatal("corrupted slot went undetected")
	}
	img[3*DeviceDescriptorSize+100] ^= 0xFF

	img[managerConfigHeaderOffset+10] ^= 0xFF
	if ok, _ := VerifyManager(img); ok {
		t.Fatal("corrupted config header went undetected")
	}
}

func TestChecksum_TruncatedImages(t *testing.T) {
	var truncated *TruncatedInputError
	if err := StampHeader(make([]byte, FileHeaderSize-1)); !errors.As(err, &truncated) {
		t.Errorf("StampHeader short buffer error = %v", err)
	}
	if _, err := VerifyHeader(make([]byte, 3)); !errors.As(err, &truncated) {
		t.Errorf("VerifyHeader short buffer error = %v", err)
	}
	if err := StampDescriptor(make([]byte, DeviceDescriptorSize-1)); !errors.As(err, &truncated) {
		t.Errorf("StampDescriptor short buffer error = %v", err)
	}
	if _, err := VerifyDescriptor(nil); !errors.As(err, &truncated) {
		t.Errorf("VerifyDescriptor nil buffer error = %v", err)
	}
	if err := StampManager(make([]byte, DeviceManagerSize-1)); !errors.As(err, &truncated) {
		t.Errorf("StampManager short buffer error = %v", err)
	}
	if _, err := VerifyManager(make([]byte, DeviceDescriptorSize)); !errors.As(err, &truncated) {
		t.Errorf("VerifyManager short buffer error = %v", err)
	}
}
