package codec

import "testing"

// The wire format is pack(1): every layout's fields must tile its size with
// no gaps and no overlap, and the totals must match the C originals.

func TestLayout_RecordSizes(t *testing.T) {
	cases := []struct {
		layout *Layout
		size   int
	}{
		{VersionLayout, 2},
		{FileHeaderLayout, 139},
		{PartitionInfoLayout, 26},
		{GeometryLayout, 10},
		{PerformanceLayout, 40},
		{SectorStatsLayout, 68},
		{DeviceHealthLayout, 40},
		{InterfaceInfoLayout, 8},
		{CacheConfigLayout, 7},
		{ExtendedAttributeLayout, 38},
		{FirmwareInfoLayout, 137},
		{SecurityInfoLayout, 41},
		{DeviceDescriptorLayout, 1352},
		{GlobalStatsLayout, 32},
		{EventLogEntryLayout, 72},
		{DeviceManagerLayout, 13294},
	}
	for _, tc := range cases {
		if tc.layout.Size != tc.size {
			t.Errorf("%s.Size = %d, want %d", tc.layout.Name, tc.layout.Size, tc.size)
		}
	}
}

func TestLayout_FieldsTileWithoutPadding(t *testing.T) {
	for _, l := range Layouts() {
		off := 0
		for _, f := range l.Fields() {
			if f.Offset != off {
				t.Errorf("%s.%s offset = %d, want %d", l.Name, f.Name, f.Offset, off)
			}
			if f.Size <= 0 {
				t.Errorf("%s.%s size = %d", l.Name, f.Name, f.Size)
			}
			off += f.Size
		}
		if off != l.Size {
			t.Errorf("%s fields sum to %d, size is %d", l.Name, off, l.Size)
		}
	}
}

func TestLayout_KeyOffsets(t *testing.T) {
	cases := []struct {
		layout *Layout
		field  string
		offset int
	}{
		{FileHeaderLayout, "magic", 0},
		{FileHeaderLayout, "version", 4},
		{FileHeaderLayout, "flags", 6},
		{FileHeaderLayout, "buffer", 7},
		{FileHeaderLayout, "crc32", 135},
		{PartitionInfoLayout, "active_type", 0},
		{PartitionInfoLayout, "flags", 9},
		{DeviceHealthLayout, "power_stats", 3},
		{DeviceHealthLayout, "status", 7},
		{DeviceDescriptorLayout, "device_type", 139},
		{DeviceDescriptorLayout, "geometry", 256},
		{DeviceDescriptorLayout, "partitions", 266},
		{DeviceDescriptorLayout, "partition_count", 370},
		{DeviceDescriptorLayout, "features", 479},
		{DeviceDescriptorLayout, "interface_info", 483},
		{DeviceDescriptorLayout, "cache_config", 491},
		{DeviceDescriptorLayout, "extended_attributes", 498},
		{DeviceDescriptorLayout, "firmware_info", 1106},
		{DeviceDescriptorLayout, "security", 1243},
		{DeviceDescriptorLayout, "reserved", 1284},
		{DeviceDescriptorLayout, "structure_checksum", 1348},
		{DeviceManagerLayout, "device_count", 10816},
		{DeviceManagerLayout, "system_flags", 10849},
		{DeviceManagerLayout, "event_log", 10850},
		{DeviceManagerLayout, "log_count", 13154},
		{DeviceManagerLayout, "config_header", 13155},
	}
	for _, tc := range cases {
		f, ok := tc.layout.Field(tc.field)
		if !ok {
			t.Errorf("%s has no field %q", tc.layout.Name, tc.field)
			continue
		}
		if f.Offset != tc.offset {
			t.Errorf("%s.%s offset = %d, want %d", tc.layout.Name, tc.field, f.Offset, tc.offset)
		}
	}
}

func TestLayout_BitfieldMetadata(t *testing.T) {
	f, ok := FileHeaderLayout.Field("flags")
	if !ok || f.Kind != KindBitfield || f.Bits == nil {
		t.Fatalf("FileHeader.flags = %+v", f)
	}
	off, width, ok := f.Bits.Position("readonly")
	if !ok || off != 1 || width != 1 {
		t.Errorf("readonly position = (%d,%d,%v)", off, width, ok)
	}

	f, _ = DeviceDescriptorLayout.Field("features")
	if f.Bits.Bits() != 32 {
		t.Errorf("features group is %d bits", f.Bits.Bits())
	}
	off, width, _ = f.Bits.Position("read_cache_enabled")
	if off != 9 || width != 1 {
		t.Errorf("read_cache_enabled position = (%d,%d)", off, width)
	}
	off, width, _ = f.Bits.Position("reserved")
	if off != 10 || width != 22 {
		t.Errorf("features reserved position = (%d,%d)", off, width)
	}
}

func TestLayout_EnumDiscriminants(t *testing.T) {
	f, ok := DeviceDescriptorLayout.Field("device_type")
	if !ok || f.Kind != KindEnum {
		t.Fatalf("device_type = %+v", f)
	}
	want := []uint64{0x01, 0x02, 0x03, 0x04, 0xFF}
	if len(f.Enum) != len(want) {
		t.Fatalf("device_type discriminants = %v", f.Enum)
	}
	for i, v := range want {
		if f.Enum[i] != v {
			t.Errorf("discriminant[%d] = 0x%02X, want 0x%02X", i, f.Enum[i], v)
		}
	}
}

func TestLayout_UnknownFieldLookups(t *testing.T) {
	if _, ok := FileHeaderLayout.Field("nope"); ok {
		t.Error("Field(nope) = ok")
	}
	defer func() {
		if recover() == nil {
			t.Error("Offset(nope) did not panic")
		}
	}()
	FileHeaderLayout.Offset("nope")
}
