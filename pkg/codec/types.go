package codec

// Layout constants of the inventory format. Sizes of the composite records are
// derived from the layout tables in layout.go, never hand-written.
const (
	// HeaderMagic is the expected value of FileHeader.Magic.
	HeaderMagic uint32 = 0xDEADBEEF

	// VersionMajor and VersionMinor identify the only supported format
	// revision. Minor revisions are additive; Validate accepts any minor
	// under the same major.
	VersionMajor uint8 = 1
	VersionMinor uint8 = 0

	BufferSize         = 128
	DeviceNameLen      = 68
	SerialNumberLen    = 32
	FirmwareVersionLen = 16
	LabelLen           = 16
	ErrorLogLen        = 32
	DescriptionLen     = 32
	UpdateURLLen       = 128
	PasswordHashLen    = 32
	EventDescLen       = 64
	ReservedLen        = 64

	MaxPartitions         = 4
	MaxDevices            = 8
	MaxExtendedAttributes = 16
	MaxLogEntries         = 32
)

// DeviceType is the device_type discriminant.
type DeviceType uint8

const (
	DeviceTypeHDD     DeviceType = 0x01
	DeviceTypeSSD     DeviceType = 0x02
	DeviceTypeUSB     DeviceType = 0x03
	DeviceTypeSD      DeviceType = 0x04
	DeviceTypeUnknown DeviceType = 0xFF
)

// Known reports whether t is one of the enumerated device types.
// DeviceTypeUnknown counts: 0xFF is a valid sentinel, not corruption.
func (t DeviceType) Known() bool {
	switch t {
	case DeviceTypeHDD, DeviceTypeSSD, DeviceTypeUSB, DeviceTypeSD, DeviceTypeUnknown:
		return true
	}
	return false
}

func (t DeviceType) String() string {
	switch t {
	case DeviceTypeHDD:
		return "hdd"
	case DeviceTypeSSD:
		return "ssd"
	case DeviceTypeUSB:
		return "usb"
	case DeviceTypeSD:
		return "sd"
	case DeviceTypeUnknown:
		return "unknown"
	}
	return "invalid"
}

// Version is a major.minor pair, 2 bytes on the wire.
type Version struct {
	Major uint8
	Minor uint8
}

// HeaderFlags is the one-byte flags cell of FileHeader. The named accessors
// and the raw uint8 value alias the same storage, like the C union they map.
type HeaderFlags uint8

func (f HeaderFlags) Enabled() bool  { return getBit(uint32(f), 0) }
func (f HeaderFlags) Readonly() bool { return getBit(uint32(f), 1) }

func (f *HeaderFlags) SetEnabled(on bool)  { *f = HeaderFlags(setBit(uint32(*f), 0, on)) }
func (f *HeaderFlags) SetReadonly(on bool) { *f = HeaderFlags(setBit(uint32(*f), 1, on)) }

// FileHeader is the 139-byte file header. Buffer travels verbatim: it is raw
// bytes, not a NUL-terminated string.
type FileHeader struct {
	Magic   uint32
	Version Version
	Flags   HeaderFlags
	Buffer  [BufferSize]byte
	CRC32   uint32
}

// PartitionFlags is the one-byte flags cell of PartitionInfo.
type PartitionFlags uint8

func (f PartitionFlags) Readable() bool { return getBit(uint32(f), 0) }
func (f PartitionFlags) Writable() bool { return getBit(uint32(f), 1) }
func (f PartitionFlags) Bootable() bool { return getBit(uint32(f), 2) }
func (f PartitionFlags) System() bool   { return getBit(uint32(f), 3) }
func (f PartitionFlags) Hidden() bool   { return getBit(uint32(f), 4) }

func (f *PartitionFlags) SetReadable(on bool) { *f = PartitionFlags(setBit(uint32(*f), 0, on)) }
func (f *PartitionFlags) SetWritable(on bool) { *f = PartitionFlags(setBit(uint32(*f), 1, on)) }
func (f *PartitionFlags) SetBootable(on bool) { *f = PartitionFlags(setBit(uint32(*f), 2, on)) }
func (f *PartitionFlags) SetSystem(on bool)   { *f = PartitionFlags(setBit(uint32(*f), 3, on)) }
func (f *PartitionFlags) SetHidden(on bool)   { *f = PartitionFlags(setBit(uint32(*f), 4, on)) }

// PartitionInfo is one 26-byte partition table slot. Active and Type share the
// first byte: Active is bit 0, Type the seven bits above it, so Type must fit
// in [0,127] or encoding fails with FieldOverflowError.
type PartitionInfo struct {
	Active      bool
	Type        uint8
	StartSector uint32
	SectorCount uint32
	Flags       PartitionFlags
	Label       [LabelLen]byte
}

// Performance is the nested throughput block of SectorStats.
type Performance struct {
	ReadSpeedMbps     float64
	WriteSpeedMbps    float64
	ReadCount         uint32
	WriteCount        uint32
	TotalBytesRead    uint64
	TotalBytesWritten uint64
}

// SectorStats is the 68-byte sector accounting record.
type SectorStats struct {
	TotalSectors uint64
	UsedSectors  uint64
	BadSectors   uint64
	SectorSize   uint32
	Performance  Performance
}

// PowerStats is the four-byte power cell of DeviceHealth: power-on hours in
// the low 16 bits, power cycle count in the high 16, aliased by the raw
// uint32 value.
type PowerStats uint32

func (p PowerStats) PowerOnHours() uint16    { return uint16(getBits(uint32(p), 0, 16)) }
func (p PowerStats) PowerCycleCount() uint16 { return uint16(getBits(uint32(p), 16, 16)) }

func (p *PowerStats) SetPowerOnHours(v uint16) {
	*p = PowerStats(setBits(uint32(*p), 0, 16, uint32(v)))
}

func (p *PowerStats) SetPowerCycleCount(v uint16) {
	*p = PowerStats(setBits(uint32(*p), 16, 16, uint32(v)))
}

// HealthStatus is the one-byte SMART status cell of DeviceHealth.
type HealthStatus uint8

func (s HealthStatus) SmartAvailable() bool   { return getBit(uint32(s), 0) }
func (s HealthStatus) SmartEnabled() bool     { return getBit(uint32(s), 1) }
func (s HealthStatus) SelfTestRunning() bool  { return getBit(uint32(s), 2) }
func (s HealthStatus) WarningTemp() bool      { return getBit(uint32(s), 3) }
func (s HealthStatus) CriticalTemp() bool     { return getBit(uint32(s), 4) }
func (s HealthStatus) FailurePredicted() bool { return getBit(uint32(s), 5) }

func (s *HealthStatus) SetSmartAvailable(on bool)   { *s = HealthStatus(setBit(uint32(*s), 0, on)) }
func (s *HealthStatus) SetSmartEnabled(on bool)     { *s = HealthStatus(setBit(uint32(*s), 1, on)) }
func (s *HealthStatus) SetSelfTestRunning(on bool)  { *s = HealthStatus(setBit(uint32(*s), 2, on)) }
func (s *HealthStatus) SetWarningTemp(on bool)      { *s = HealthStatus(setBit(uint32(*s), 3, on)) }
func (s *HealthStatus) SetCriticalTemp(on bool)     { *s = HealthStatus(setBit(uint32(*s), 4, on)) }
func (s *HealthStatus) SetFailurePredicted(on bool) { *s = HealthStatus(setBit(uint32(*s), 5, on)) }

// DeviceHealth is the 40-byte health telemetry record. Temperature is tenths
// of a degree Celsius.
type DeviceHealth struct {
	Temperature      uint16
	HealthPercentage uint8
	PowerStats       PowerStats
	Status           HealthStatus
	ErrorLog         [ErrorLogLen]byte
}

// Geometry is the physical geometry sub-record of a descriptor.
type Geometry struct {
	Cylinders       uint16
	Heads           uint16
	SectorsPerTrack uint16
	TotalSectors    uint32
}

// FeatureFlags is the four-byte feature cell of a descriptor: ten named bits,
// twenty-two reserved.
type FeatureFlags uint32

func (f FeatureFlags) TrimSupported() bool       { return getBit(uint32(f), 0) }
func (f FeatureFlags) EncryptionSupported() bool { return getBit(uint32(f), 1) }
func (f FeatureFlags) SmartSupported() bool      { return getBit(uint32(f), 2) }
func (f FeatureFlags) LBA48Supported() bool      { return getBit(uint32(f), 3) }
func (f FeatureFlags) DMASupported() bool        { return getBit(uint32(f), 4) }
func (f FeatureFlags) NCQSupported() bool        { return getBit(uint32(f), 5) }
func (f FeatureFlags) HotplugSupported() bool    { return getBit(uint32(f), 6) }
func (f FeatureFlags) PowerManagement() bool     { return getBit(uint32(f), 7) }
func (f FeatureFlags) WriteCacheEnabled() bool   { return getBit(uint32(f), 8) }
func (f FeatureFlags) ReadCacheEnabled() bool    { return getBit(uint32(f), 9) }

func (f *FeatureFlags) SetTrimSupported(on bool)       { *f = FeatureFlags(setBit(uint32(*f), 0, on)) }
func (f *FeatureFlags) SetEncryptionSupported(on bool) { *f = FeatureFlags(setBit(uint32(*f), 1, on)) }
func (f *FeatureFlags) SetSmartSupported(on bool)      { *f = FeatureFlags(setBit(uint32(*f), 2, on)) }
func (f *FeatureFlags) SetLBA48Supported(on bool)      { *f = FeatureFlags(setBit(uint32(*f), 3, on)) }
func (f *FeatureFlags) SetDMASupported(on bool)        { *f = FeatureFlags(setBit(uint32(*f), 4, on)) }
func (f *FeatureFlags) SetNCQSupported(on bool)        { *f = FeatureFlags(setBit(uint32(*f), 5, on)) }
func (f *FeatureFlags) SetHotplugSupported(on bool)    { *f = FeatureFlags(setBit(uint32(*f), 6, on)) }
func (f *FeatureFlags) SetPowerManagement(on bool)     { *f = FeatureFlags(setBit(uint32(*f), 7, on)) }
func (f *FeatureFlags) SetWriteCacheEnabled(on bool)   { *f = FeatureFlags(setBit(uint32(*f), 8, on)) }
func (f *FeatureFlags) SetReadCacheEnabled(on bool)    { *f = FeatureFlags(setBit(uint32(*f), 9, on)) }

// InterfaceSelect is the one-byte interface cell of InterfaceInfo: interface
// type in the low nibble, connector type in the high nibble.
type InterfaceSelect uint8

func (s InterfaceSelect) InterfaceType() uint8 { return uint8(getBits(uint32(s), 0, 4)) }
func (s InterfaceSelect) ConnectorType() uint8 { return uint8(getBits(uint32(s), 4, 4)) }

// SetInterfaceType stores the low nibble; values above 15 fail.
func (s *InterfaceSelect) SetInterfaceType(v uint8) error {
	if v > 0x0F {
		return &FieldOverflowError{Field: "interface_info.interface_type", Max: 0x0F}
	}
	*s = InterfaceSelect(setBits(uint32(*s), 0, 4, uint32(v)))
	return nil
}

// SetConnectorType stores the high nibble; values above 15 fail.
func (s *InterfaceSelect) SetConnectorType(v uint8) error {
	if v > 0x0F {
		return &FieldOverflowError{Field: "interface_info.connector_type", Max: 0x0F}
	}
	*s = InterfaceSelect(setBits(uint32(*s), 4, 4, uint32(v)))
	return nil
}

// LinkStatus is the one-byte link cell of InterfaceInfo: speed in bits 0..2,
// width in bits 3..5, active bit 6, training bit 7.
type LinkStatus uint8

func (l LinkStatus) LinkSpeed() uint8  { return uint8(getBits(uint32(l), 0, 3)) }
func (l LinkStatus) LinkWidth() uint8  { return uint8(getBits(uint32(l), 3, 3)) }
func (l LinkStatus) LinkActive() bool  { return getBit(uint32(l), 6) }
func (l LinkStatus) LinkTraining() bool { return getBit(uint32(l), 7) }

// SetLinkSpeed stores a speed grade; values above 7 fail.
func (l *LinkStatus) SetLinkSpeed(v uint8) error {
	if v > 0x07 {
		return &FieldOverflowError{Field: "interface_info.link_speed", Max: 0x07}
	}
	*l = LinkStatus(setBits(uint32(*l), 0, 3, uint32(v)))
	return nil
}

// SetLinkWidth stores a lane count grade; values above 7 fail.
func (l *LinkStatus) SetLinkWidth(v uint8) error {
	if v > 0x07 {
		return &FieldOverflowError{Field: "interface_info.link_width", Max: 0x07}
	}
	*l = LinkStatus(setBits(uint32(*l), 3, 3, uint32(v)))
	return nil
}

func (l *LinkStatus) SetLinkActive(on bool)   { *l = LinkStatus(setBit(uint32(*l), 6, on)) }
func (l *LinkStatus) SetLinkTraining(on bool) { *l = LinkStatus(setBit(uint32(*l), 7, on)) }

// DeviceIDs is the vendor identity block of InterfaceInfo.
type DeviceIDs struct {
	VendorID  uint16
	ProductID uint16
	Revision  uint16
}

// InterfaceInfo is the 8-byte interface and link state sub-record. The C
// original nests it anonymously; the field path is preserved, the anonymity
// is not.
type InterfaceInfo struct {
	Select InterfaceSelect
	IDs    DeviceIDs
	Link   LinkStatus
}

// CacheFlags is the one-byte policy cell of CacheConfig.
type CacheFlags uint8

func (f CacheFlags) WriteThrough() bool { return getBit(uint32(f), 0) }
func (f CacheFlags) WriteBack() bool    { return getBit(uint32(f), 1) }
func (f CacheFlags) ReadAhead() bool    { return getBit(uint32(f), 2) }
func (f CacheFlags) Adaptive() bool     { return getBit(uint32(f), 3) }
func (f CacheFlags) FlushCapable() bool { return getBit(uint32(f), 4) }

func (f *CacheFlags) SetWriteThrough(on bool) { *f = CacheFlags(setBit(uint32(*f), 0, on)) }
func (f *CacheFlags) SetWriteBack(on bool)    { *f = CacheFlags(setBit(uint32(*f), 1, on)) }
func (f *CacheFlags) SetReadAhead(on bool)    { *f = CacheFlags(setBit(uint32(*f), 2, on)) }
func (f *CacheFlags) SetAdaptive(on bool)     { *f = CacheFlags(setBit(uint32(*f), 3, on)) }
func (f *CacheFlags) SetFlushCapable(on bool) { *f = CacheFlags(setBit(uint32(*f), 4, on)) }

// CacheConfig is the 7-byte cache configuration sub-record.
type CacheConfig struct {
	CacheSizeKB   uint32
	Flags         CacheFlags
	CacheLineSize uint16
}

// ExtendedAttribute is one 38-byte extended attribute slot.
type ExtendedAttribute struct {
	AttributeID uint16
	Value       uint32
	Description [DescriptionLen]byte
}

// UpdateFlags is the one-byte update state cell of FirmwareInfo.
type UpdateFlags uint8

func (f UpdateFlags) UpdateAvailable() bool   { return getBit(uint32(f), 0) }
func (f UpdateFlags) UpdateCritical() bool    { return getBit(uint32(f), 1) }
func (f UpdateFlags) UpdateInProgress() bool  { return getBit(uint32(f), 2) }
func (f UpdateFlags) RollbackAvailable() bool { return getBit(uint32(f), 3) }

func (f *UpdateFlags) SetUpdateAvailable(on bool)   { *f = UpdateFlags(setBit(uint32(*f), 0, on)) }
func (f *UpdateFlags) SetUpdateCritical(on bool)    { *f = UpdateFlags(setBit(uint32(*f), 1, on)) }
func (f *UpdateFlags) SetUpdateInProgress(on bool)  { *f = UpdateFlags(setBit(uint32(*f), 2, on)) }
func (f *UpdateFlags) SetRollbackAvailable(on bool) { *f = UpdateFlags(setBit(uint32(*f), 3, on)) }

// FirmwareInfo is the 137-byte firmware update sub-record.
type FirmwareInfo struct {
	CurrentVersion  Version
	LatestVersion   Version
	Flags           UpdateFlags
	UpdateURL       [UpdateURLLen]byte
	UpdateSizeBytes uint32
}

// SecurityFlags is the one-byte security state cell; all eight bits are named.
type SecurityFlags uint8

func (f SecurityFlags) PasswordEnabled() bool          { return getBit(uint32(f), 0) }
func (f SecurityFlags) EncryptionEnabled() bool        { return getBit(uint32(f), 1) }
func (f SecurityFlags) SecureEraseSupported() bool     { return getBit(uint32(f), 2) }
func (f SecurityFlags) MasterPasswordCapability() bool { return getBit(uint32(f), 3) }
func (f SecurityFlags) UserPasswordCapability() bool   { return getBit(uint32(f), 4) }
func (f SecurityFlags) Frozen() bool                   { return getBit(uint32(f), 5) }
func (f SecurityFlags) Locked() bool                   { return getBit(uint32(f), 6) }
func (f SecurityFlags) SecurityEnabled() bool          { return getBit(uint32(f), 7) }

func (f *SecurityFlags) SetPasswordEnabled(on bool)   { *f = SecurityFlags(setBit(uint32(*f), 0, on)) }
func (f *SecurityFlags) SetEncryptionEnabled(on bool) { *f = SecurityFlags(setBit(uint32(*f), 1, on)) }
func (f *SecurityFlags) SetSecureEraseSupported(on bool) {
	*f = SecurityFlags(setBit(uint32(*f), 2, on))
}
func (f *SecurityFlags) SetMasterPasswordCapability(on bool) {
	*f = SecurityFlags(setBit(uint32(*f), 3, on))
}
func (f *SecurityFlags) SetUserPasswordCapability(on bool) {
	*f = SecurityFlags(setBit(uint32(*f), 4, on))
}
func (f *SecurityFlags) SetFrozen(on bool)          { *f = SecurityFlags(setBit(uint32(*f), 5, on)) }
func (f *SecurityFlags) SetLocked(on bool)          { *f = SecurityFlags(setBit(uint32(*f), 6, on)) }
func (f *SecurityFlags) SetSecurityEnabled(on bool) { *f = SecurityFlags(setBit(uint32(*f), 7, on)) }

// SecurityInfo is the 41-byte security sub-record.
type SecurityInfo struct {
	Flags             SecurityFlags
	PasswordHash      [PasswordHashLen]byte
	UnlockCount       uint32
	FailedUnlockCount uint32
}

// ComplexDeviceDescriptor is the full 1352-byte per-device record. Arrays
// always encode at declared capacity; PartitionCount alone signals the
// logical partition table length and is checked by Validate, not by the
// codec.
type ComplexDeviceDescriptor struct {
	Header             FileHeader
	DeviceType         DeviceType
	DeviceName         [DeviceNameLen]byte
	SerialNumber       [SerialNumberLen]byte
	FirmwareVersion    [FirmwareVersionLen]byte
	Geometry           Geometry
	Partitions         [MaxPartitions]PartitionInfo
	PartitionCount     uint8
	Stats              SectorStats
	Health             DeviceHealth
	Features           FeatureFlags
	Interface          InterfaceInfo
	Cache              CacheConfig
	ExtendedAttributes [MaxExtendedAttributes]ExtendedAttribute
	Firmware           FirmwareInfo
	Security           SecurityInfo
	Reserved           [ReservedLen]byte
	StructureChecksum  uint32
}

// GlobalStats is the aggregate counters block of DeviceManager.
type GlobalStats struct {
	TotalCapacityBytes    uint64
	TotalFreeBytes        uint64
	TotalReadOperations   uint32
	TotalWriteOperations  uint32
	AverageResponseTimeMs float64
}

// SystemFlags is the one-byte system configuration cell of DeviceManager.
type SystemFlags uint8

func (f SystemFlags) AutoMount() bool          { return getBit(uint32(f), 0) }
func (f SystemFlags) AutoScan() bool           { return getBit(uint32(f), 1) }
func (f SystemFlags) PowerSaveMode() bool      { return getBit(uint32(f), 2) }
func (f SystemFlags) HotSwapEnabled() bool     { return getBit(uint32(f), 3) }
func (f SystemFlags) RAIDEnabled() bool        { return getBit(uint32(f), 4) }
func (f SystemFlags) CompressionEnabled() bool { return getBit(uint32(f), 5) }
func (f SystemFlags) EncryptionRequired() bool { return getBit(uint32(f), 6) }

func (f *SystemFlags) SetAutoMount(on bool)          { *f = SystemFlags(setBit(uint32(*f), 0, on)) }
func (f *SystemFlags) SetAutoScan(on bool)           { *f = SystemFlags(setBit(uint32(*f), 1, on)) }
func (f *SystemFlags) SetPowerSaveMode(on bool)      { *f = SystemFlags(setBit(uint32(*f), 2, on)) }
func (f *SystemFlags) SetHotSwapEnabled(on bool)     { *f = SystemFlags(setBit(uint32(*f), 3, on)) }
func (f *SystemFlags) SetRAIDEnabled(on bool)        { *f = SystemFlags(setBit(uint32(*f), 4, on)) }
func (f *SystemFlags) SetCompressionEnabled(on bool) { *f = SystemFlags(setBit(uint32(*f), 5, on)) }
func (f *SystemFlags) SetEncryptionRequired(on bool) { *f = SystemFlags(setBit(uint32(*f), 6, on)) }

// EventLogEntry is one 72-byte event ring slot.
type EventLogEntry struct {
	Timestamp   uint32
	EventType   uint8
	DeviceIndex uint8
	EventCode   uint16
	Description [EventDescLen]byte
}

// DeviceManager is the 13294-byte top-level container: up to eight devices, a
// 32-slot event ring and a trailing configuration header.
type DeviceManager struct {
	Devices      [MaxDevices]ComplexDeviceDescriptor
	DeviceCount  uint8
	GlobalStats  GlobalStats
	SystemFlags  SystemFlags
	EventLog     [MaxLogEntries]EventLogEntry
	LogCount     uint8
	ConfigHeader FileHeader
}
