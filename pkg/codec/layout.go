package codec

import "fmt"

// FieldKind classifies a field in a layout table.
type FieldKind int

const (
	KindUint FieldKind = iota
	KindInt
	KindFloat
	KindBytes
	KindEnum
	KindBitfield
	KindRecord
	KindArray
)

func (k FieldKind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindFloat:
		return "float"
	case KindBytes:
		return "bytes"
	case KindEnum:
		return "enum"
	case KindBitfield:
		return "bitfield"
	case KindRecord:
		return "record"
	case KindArray:
		return "array"
	}
	return "unknown"
}

// Field describes one field of a record: absolute byte offset, byte length
// and kind. Bitfield fields carry their Group (bit positions and the raw
// alias width), enum fields their valid discriminants, nested records and
// arrays the element layout.
type Field struct {
	Name   string
	Kind   FieldKind
	Offset int
	Size   int
	Bits   *Group   // KindBitfield
	Enum   []uint64 // KindEnum
	Elem   *Layout  // KindRecord, KindArray
	Count  int      // KindArray
}

// Layout is the field table of one record type. The tables are package-level
// values built once and never mutated; the record codec walks them instead of
// carrying hand-written offsets, so the table is the single source of truth
// for the wire format.
type Layout struct {
	Name   string
	Size   int
	fields []Field
	index  map[string]int
}

// newLayout assigns consecutive offsets to fields in declaration order and
// sums the total size. The format is pack(1): a field's offset is exactly the
// end of the previous field, with no padding anywhere.
func newLayout(name string, fields ...Field) *Layout {
	l := &Layout{Name: name, fields: fields, index: make(map[string]int, len(fields))}
	for i := range l.fields {
		f := &l.fields[i]
		switch f.Kind {
		case KindBitfield:
			f.Size = f.Bits.Size()
		case KindRecord:
			f.Size = f.Elem.Size
		case KindArray:
			f.Size = f.Elem.Size * f.Count
		}
		if f.Size <= 0 {
			panic(fmt.Sprintf("codec: layout %s field %s has size %d", name, f.Name, f.Size))
		}
		if _, dup := l.index[f.Name]; dup {
			panic(fmt.Sprintf("codec: layout %s duplicates field %s", name, f.Name))
		}
		f.Offset = l.Size
		l.index[f.Name] = i
		l.Size += f.Size
	}
	return l
}

// Fields returns the table in declaration order. Callers must not modify the
// returned slice.
func (l *Layout) Fields() []Field { return l.fields }

// Field looks a field up by name.
func (l *Layout) Field(name string) (Field, bool) {
	i, ok := l.index[name]
	if !ok {
		return Field{}, false
	}
	return l.fields[i], true
}

// Offset returns a field's byte offset. An unknown name is a programmer
// error and panics.
func (l *Layout) Offset(name string) int {
	i, ok := l.index[name]
	if !ok {
		panic(fmt.Sprintf("codec: layout %s has no field %q", l.Name, name))
	}
	return l.fields[i].Offset
}

func uintField(name string, size int) Field  { return Field{Name: name, Kind: KindUint, Size: size} }
func floatField(name string) Field           { return Field{Name: name, Kind: KindFloat, Size: 8} }
func bytesField(name string, size int) Field { return Field{Name: name, Kind: KindBytes, Size: size} }

func enumField(name string, size int, values ...uint64) Field {
	return Field{Name: name, Kind: KindEnum, Size: size, Enum: values}
}

func bitsField(g *Group) Field {
	return Field{Name: g.Name(), Kind: KindBitfield, Bits: g}
}

func recordField(name string, elem *Layout) Field {
	return Field{Name: name, Kind: KindRecord, Elem: elem}
}

func arrayField(name string, elem *Layout, count int) Field {
	return Field{Name: name, Kind: KindArray, Elem: elem, Count: count}
}

// Bit groups of the format. Declaration order is allocation order, LSB first.
var (
	headerFlagsGroup = NewGroup("flags",
		BitField{"enabled", 1},
		BitField{"readonly", 1},
		BitField{"reserved", 6},
	)

	partitionTypeGroup = NewGroup("active_type",
		BitField{"active", 1},
		BitField{"type", 7},
	)

	partitionFlagsGroup = NewGroup("flags",
		BitField{"readable", 1},
		BitField{"writable", 1},
		BitField{"bootable", 1},
		BitField{"system", 1},
		BitField{"hidden", 1},
		BitField{"reserved", 3},
	)

	powerStatsGroup = NewGroup("power_stats",
		BitField{"power_on_hours", 16},
		BitField{"power_cycle_count", 16},
	)

	healthStatusGroup = NewGroup("status",
		BitField{"smart_available", 1},
		BitField{"smart_enabled", 1},
		BitField{"self_test_running", 1},
		BitField{"warning_temp", 1},
		BitField{"critical_temp", 1},
		BitField{"failure_predicted", 1},
		BitField{"reserved", 2},
	)

	featureFlagsGroup = NewGroup("features",
		BitField{"trim_supported", 1},
		BitField{"encryption_supported", 1},
		BitField{"smart_supported", 1},
		BitField{"lba48_supported", 1},
		BitField{"dma_supported", 1},
		BitField{"ncq_supported", 1},
		BitField{"hotplug_supported", 1},
		BitField{"power_management", 1},
		BitField{"write_cache_enabled", 1},
		BitField{"read_cache_enabled", 1},
		BitField{"reserved", 22},
	)

	interfaceSelectGroup = NewGroup("interface",
		BitField{"interface_type", 4},
		BitField{"connector_type", 4},
	)

	linkStatusGroup = NewGroup("link_status",
		BitField{"link_speed", 3},
		BitField{"link_width", 3},
		BitField{"link_active", 1},
		BitField{"link_training", 1},
	)

	cacheFlagsGroup = NewGroup("cache_flags",
		BitField{"write_through", 1},
		BitField{"write_back", 1},
		BitField{"read_ahead", 1},
		BitField{"adaptive", 1},
		BitField{"flush_capable", 1},
		BitField{"reserved", 3},
	)

	updateFlagsGroup = NewGroup("update_flags",
		BitField{"update_available", 1},
		BitField{"update_critical", 1},
		BitField{"update_in_progress", 1},
		BitField{"rollback_available", 1},
		BitField{"reserved", 4},
	)

	securityFlagsGroup = NewGroup("security_flags",
		BitField{"password_enabled", 1},
		BitField{"encryption_enabled", 1},
		BitField{"secure_erase_supported", 1},
		BitField{"master_password_capability", 1},
		BitField{"user_password_capability", 1},
		BitField{"frozen", 1},
		BitField{"locked", 1},
		BitField{"security_enabled", 1},
	)

	systemFlagsGroup = NewGroup("system_flags",
		BitField{"auto_mount", 1},
		BitField{"auto_scan", 1},
		BitField{"power_save_mode", 1},
		BitField{"hot_swap_enabled", 1},
		BitField{"raid_enabled", 1},
		BitField{"compression_enabled", 1},
		BitField{"encryption_required", 1},
		BitField{"reserved", 1},
	)
)

// Layout tables. Field order matches the wire format; offsets and totals fall
// out of newLayout.
var (
	VersionLayout = newLayout("Version",
		uintField("major", 1),
		uintField("minor", 1),
	)

	FileHeaderLayout = newLayout("FileHeader",
		uintField("magic", 4),
		recordField("version", VersionLayout),
		bitsField(headerFlagsGroup),
		bytesField("buffer", BufferSize),
		uintField("crc32", 4),
	)

	PartitionInfoLayout = newLayout("PartitionInfo",
		bitsField(partitionTypeGroup),
		uintField("start_sector", 4),
		uintField("sector_count", 4),
		bitsField(partitionFlagsGroup),
		bytesField("label", LabelLen),
	)

	GeometryLayout = newLayout("Geometry",
		uintField("cylinders", 2),
		uintField("heads", 2),
		uintField("sectors_per_track", 2),
		uintField("total_sectors", 4),
	)

	PerformanceLayout = newLayout("Performance",
		floatField("read_speed_mbps"),
		floatField("write_speed_mbps"),
		uintField("read_count", 4),
		uintField("write_count", 4),
		uintField("total_bytes_read", 8),
		uintField("total_bytes_written", 8),
	)

	SectorStatsLayout = newLayout("SectorStats",
		uintField("total_sectors", 8),
		uintField("used_sectors", 8),
		uintField("bad_sectors", 8),
		uintField("sector_size", 4),
		recordField("performance", PerformanceLayout),
	)

	DeviceHealthLayout = newLayout("DeviceHealth",
		uintField("temperature", 2),
		uintField("health_percentage", 1),
		bitsField(powerStatsGroup),
		bitsField(healthStatusGroup),
		bytesField("error_log", ErrorLogLen),
	)

	InterfaceInfoLayout = newLayout("InterfaceInfo",
		bitsField(interfaceSelectGroup),
		uintField("vendor_id", 2),
		uintField("product_id", 2),
		uintField("revision", 2),
		bitsField(linkStatusGroup),
	)

	CacheConfigLayout = newLayout("CacheConfig",
		uintField("cache_size_kb", 4),
		bitsField(cacheFlagsGroup),
		uintField("cache_line_size", 2),
	)

	ExtendedAttributeLayout = newLayout("ExtendedAttribute",
		uintField("attribute_id", 2),
		uintField("value", 4),
		bytesField("description", DescriptionLen),
	)

	FirmwareInfoLayout = newLayout("FirmwareInfo",
		recordField("current_fw_version", VersionLayout),
		recordField("latest_fw_version", VersionLayout),
		bitsField(updateFlagsGroup),
		bytesField("update_url", UpdateURLLen),
		uintField("update_size_bytes", 4),
	)

	SecurityInfoLayout = newLayout("SecurityInfo",
		bitsField(securityFlagsGroup),
		bytesField("password_hash", PasswordHashLen),
		uintField("unlock_count", 4),
		uintField("failed_unlock_count", 4),
	)

	DeviceDescriptorLayout = newLayout("ComplexDeviceDescriptor",
		recordField("header", FileHeaderLayout),
		enumField("device_type", 1,
			uint64(DeviceTypeHDD), uint64(DeviceTypeSSD), uint64(DeviceTypeUSB),
			uint64(DeviceTypeSD), uint64(DeviceTypeUnknown)),
		bytesField("device_name", DeviceNameLen),
		bytesField("serial_number", SerialNumberLen),
		bytesField("firmware_version", FirmwareVersionLen),
		recordField("geometry", GeometryLayout),
		arrayField("partitions", PartitionInfoLayout, MaxPartitions),
		uintField("partition_count", 1),
		recordField("stats", SectorStatsLayout),
		recordField("health", DeviceHealthLayout),
		bitsField(featureFlagsGroup),
		recordField("interface_info", InterfaceInfoLayout),
		recordField("cache_config", CacheConfigLayout),
		arrayField("extended_attributes", ExtendedAttributeLayout, MaxExtendedAttributes),
		recordField("firmware_info", FirmwareInfoLayout),
		recordField("security", SecurityInfoLayout),
		bytesField("reserved", ReservedLen),
		uintField("structure_checksum", 4),
	)

	GlobalStatsLayout = newLayout("GlobalStats",
		uintField("total_capacity_bytes", 8),
		uintField("total_free_bytes", 8),
		uintField("total_read_operations", 4),
		uintField("total_write_operations", 4),
		floatField("average_response_time_ms"),
	)

	EventLogEntryLayout = newLayout("EventLogEntry",
		uintField("timestamp", 4),
		uintField("event_type", 1),
		uintField("device_index", 1),
		uintField("event_code", 2),
		bytesField("description", EventDescLen),
	)

	DeviceManagerLayout = newLayout("DeviceManager",
		arrayField("devices", DeviceDescriptorLayout, MaxDevices),
		uintField("device_count", 1),
		recordField("global_stats", GlobalStatsLayout),
		bitsField(systemFlagsGroup),
		arrayField("event_log", EventLogEntryLayout, MaxLogEntries),
		uintField("log_count", 1),
		recordField("config_header", FileHeaderLayout),
	)
)

// Record sizes and checksum ranges, derived from the tables.
var (
	FileHeaderSize       = FileHeaderLayout.Size
	PartitionInfoSize    = PartitionInfoLayout.Size
	SectorStatsSize      = SectorStatsLayout.Size
	DeviceHealthSize     = DeviceHealthLayout.Size
	DeviceDescriptorSize = DeviceDescriptorLayout.Size
	DeviceManagerSize    = DeviceManagerLayout.Size

	headerCRCOffset           = FileHeaderLayout.Offset("crc32")
	descriptorChecksumOffset  = DeviceDescriptorLayout.Offset("structure_checksum")
	managerConfigHeaderOffset = DeviceManagerLayout.Offset("config_header")
)

// Layouts returns every record table of the format, outermost last. The
// slice is freshly allocated; the tables themselves are shared and immutable.
func Layouts() []*Layout {
	return []*Layout{
		VersionLayout,
		FileHeaderLayout,
		PartitionInfoLayout,
		GeometryLayout,
		PerformanceLayout,
		SectorStatsLayout,
		DeviceHealthLayout,
		InterfaceInfoLayout,
		CacheConfigLayout,
		ExtendedAttributeLayout,
		FirmwareInfoLayout,
		SecurityInfoLayout,
		DeviceDescriptorLayout,
		GlobalStatsLayout,
		EventLogEntryLayout,
		DeviceManagerLayout,
	}
}
