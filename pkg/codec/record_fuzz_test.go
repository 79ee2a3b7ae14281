//go:build fuzz
// +build fuzz

package codec

import (
	"bytes"
	"testing"
)

// FuzzDecodeHeader_RoundTrip checks that any buffer long enough to decode
// re-encodes to the same covered bytes once restamped.
func FuzzDecodeHeader_RoundTrip(f *testing.F) {
	c := NewRecordCodec()

	f.Add(make([]byte, FileHeaderSize))
	seed := make([]byte, FileHeaderSize)
	WriteU32(seed, 0, HeaderMagic)
	f.Add(seed)
	f.Add(bytes.Repeat([]byte{0xFF}, FileHeaderSize+10))

	f.Fuzz(func(t *testing.T, data []byte) {
		h, err := c.DecodeHeader(data)
		if err != nil {
			if len(data) >= FileHeaderSize {
				t.Fatalf("decode of %d bytes failed: %v", len(data), err)
			}
			return
		}
		img, err := c.EncodeHeader(h)
		if err != nil {
			t.Fatalf("re-encode failed: %v", err)
		}
		// Everything before the crc field must survive byte for byte; the
		// crc itself is restamped.
		if !bytes.Equal(img[:headerCRCOffset], data[:headerCRCOffset]) {
			t.Errorf("covered bytes changed across decode/encode")
		}
	})
}

// FuzzDecodeDescriptor_NoPanic feeds arbitrary buffers through the
// descriptor decoder and the validators.
func FuzzDecodeDescriptor_NoPanic(f *testing.F) {
	c := NewRecordCodec()

	f.Add(make([]byte, DeviceDescriptorSize))
	f.Add([]byte{})
	f.Add(make([]byte, DeviceDescriptorSize-1))
	f.Add(bytes.Repeat([]byte{0xA5}, DeviceDescriptorSize))

	f.Fuzz(func(t *testing.T, data []byte) {
		d, err := c.DecodeDescriptor(data)
		if err != nil {
			return
		}
		// Validation of arbitrary decoded data may fail, but never panics
		// and never mutates the record.
		before := *d
		_, _ = ValidateDescriptor(d, Options{Strict: true})
		if before != *d {
			t.Error("validation mutated the record")
		}
	})
}

// FuzzVerifyDescriptor_CorruptionDetection flips one byte of a stamped image
// and expects verification to notice.
func FuzzVerifyDescriptor_CorruptionDetection(f *testing.F) {
	f.Add(uint(0), byte(0x01))
	f.Add(uint(500), byte(0xFF))
	f.Add(uint(1347), byte(0x80))

	f.Fuzz(func(t *testing.T, pos uint, flip byte) {
		if flip == 0 {
			t.Skip("no-op flip")
		}
		img := make([]byte, DeviceDescriptorSize)
		for i := range img {
			img[i] = byte(i * 3)
		}
		if err := StampDescriptor(img); err != nil {
			t.Fatal(err)
		}
		if int(pos) >= descriptorChecksumOffset {
			t.Skip("position outside the covered range")
		}
		img[pos] ^= flip
		if ok, err := VerifyDescriptor(img); err != nil {
			t.Fatal(err)
		} else if ok {
			t.Errorf("flip of byte %d went undetected", pos)
		}
	})
}
