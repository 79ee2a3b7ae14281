package codec_test

import (
	"fmt"
	"log"

	"github.com/ssargent/brokkr/pkg/codec"
)

// ExampleRecordCodec demonstrates encoding and decoding a file header.
func ExampleRecordCodec() {
	rc := codec.NewRecordCodec()

	h := &codec.FileHeader{
		Magic:   codec.HeaderMagic,
		Version: codec.Version{Major: 1, Minor: 0},
	}
	h.Flags.SetEnabled(true)

	img, err := rc.EncodeHeader(h)
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Encoded %d bytes\n", len(img))

	back, err := rc.DecodeHeader(img)
	if err != nil {
		log.Fatal(err)
	}
	if err := codec.ValidateHeader(back); err != nil {
		log.Fatal(err)
	}
	fmt.Printf("Magic: 0x%08X\n", back.Magic)
	fmt.Printf("Enabled: %v\n", back.Flags.Enabled())

	// Output:
	// Encoded 139 bytes
	// Magic: 0xDEADBEEF
	// Enabled: true
}

// ExampleGroup demonstrates the bitfield group and its raw alias.
func ExampleGroup() {
	g := codec.NewGroup("flags",
		codec.BitField{Name: "readable", Width: 1},
		codec.BitField{Name: "writable", Width: 1},
		codec.BitField{Name: "bootable", Width: 1},
		codec.BitField{Name: "reserved", Width: 5},
	)

	raw, err := g.Pack(map[string]uint32{"readable": 1, "bootable": 1})
	if err != nil {
		log.Fatal(err)
	}
	fmt.Printf("raw: 0b%08b\n", raw)

	members := g.Unpack(raw)
	fmt.Printf("writable: %d\n", members["writable"])
	fmt.Printf("bootable: %d\n", members["bootable"])

	// Output:
	// raw: 0b00000101
	// writable: 0
	// bootable: 1
}

// ExampleLayout shows the layout table driving a field lookup.
func ExampleLayout() {
	f, _ := codec.FileHeaderLayout.Field("crc32")
	fmt.Printf("%s: offset %d, %d bytes, kind %s\n", f.Name, f.Offset, f.Size, f.Kind)

	// Output:
	// crc32: offset 135, 4 bytes, kind uint
}
