package codec

import (
	"bytes"
	"errors"
	"testing"
)

func TestPrimitives_LittleEndianAtOffset(t *testing.T) {
	buf := make([]byte, 16)

	WriteU16(buf, 1, 0x1122)
	if got := []byte{0x22, 0x11}; !bytes.Equal(buf[1:3], got) {
		t.Errorf("WriteU16 bytes = % X, want % X", buf[1:3], got)
	}
	if v := ReadU16(buf, 1); v != 0x1122 {
		t.Errorf("ReadU16 = 0x%04X, want 0x1122", v)
	}

	WriteU32(buf, 4, 0xDEADBEEF)
	if got := []byte{0xEF, 0xBE, 0xAD, 0xDE}; !bytes.Equal(buf[4:8], got) {
		t.Errorf("WriteU32 bytes = % X, want % X", buf[4:8], got)
	}
	if v := ReadU32(buf, 4); v != 0xDEADBEEF {
		t.Errorf("ReadU32 = 0x%08X, want 0xDEADBEEF", v)
	}

	WriteU64(buf, 8, 0x0102030405060708)
	if v := ReadU64(buf, 8); v != 0x0102030405060708 {
		t.Errorf("ReadU64 = 0x%016X", v)
	}
}

func TestPrimitives_SignedRoundTrip(t *testing.T) {
	buf := make([]byte, 16)
	for _, v := range []int32{0, 1, -1, -2147483648, 2147483647} {
		WriteI32(buf, 0, v)
		if got := ReadI32(buf, 0); got != v {
			t.Errorf("ReadI32 = %d, want %d", got, v)
		}
	}
	for _, v := range []int64{0, -1, -9223372036854775808, 9223372036854775807} {
		WriteI64(buf, 0, v)
		if got := ReadI64(buf, 0); got != v {
			t.Errorf("ReadI64 = %d, want %d", got, v)
		}
	}
}

func TestPrimitives_FloatRoundTrip(t *testing.T) {
	buf := make([]byte, 8)
	for _, v := range []float64{0, 1.5, -273.15, 123456.789} {
		WriteF64(buf, 0, v)
		if got := ReadF64(buf, 0); got != v {
			t.Errorf("ReadF64 = %v, want %v", got, v)
		}
	}
}

func TestWriteBytes_ZeroPadsShortInput(t *testing.T) {
	buf := bytes.Repeat([]byte{0xAA}, 10)
	if err := WriteBytes(buf, 2, 6, "label", []byte("hi")); err != nil {
		t.Fatalf("WriteBytes failed: %v", err)
	}
	want := []byte{0xAA, 0xAA, 'h', 'i', 0, 0, 0, 0, 0xAA, 0xAA}
	if !bytes.Equal(buf, want) {
		t.Errorf("buf = % X, want % X", buf, want)
	}
}

func TestWriteBytes_RejectsOversizedInput(t *testing.T) {
	buf := make([]byte, 10)
	err := WriteBytes(buf, 0, 4, "label", []byte("too long"))
	var tooLong *FieldTooLongError
	if !errors.As(err, &tooLong) {
		t.Fatalf("WriteBytes error = %v, want FieldTooLongError", err)
	}
	if tooLong.Field != "label" || tooLong.Max != 4 || tooLong.Got != 8 {
		t.Errorf("FieldTooLongError = %+v", tooLong)
	}
}

func TestReadBytes_CopiesSlot(t *testing.T) {
	buf := []byte{1, 2, 3, 4, 5}
	got := ReadBytes(buf, 1, 3)
	if !bytes.Equal(got, []byte{2, 3, 4}) {
		t.Fatalf("ReadBytes = % X", got)
	}
	buf[2] = 0xFF
	if got[1] == 0xFF {
		t.Error("ReadBytes aliases the source buffer")
	}
}
