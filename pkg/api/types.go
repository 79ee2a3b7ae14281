package api

import "github.com/ssargent/brokkr/pkg/codec"

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Port   int
	Bind   string
	Strict bool // escalate validation warnings to errors
}

// HeaderSummary is the decoded view of a FileHeader
type HeaderSummary struct {
	Magic    string   `json:"magic"`
	Version  string   `json:"version"`
	Enabled  bool     `json:"enabled"`
	Readonly bool     `json:"readonly"`
	CRC32    string   `json:"crc32"`
	Valid    bool     `json:"valid"`
	Problems []string `json:"problems,omitempty"`
}

// PartitionSummary is the decoded view of one logical partition slot
type PartitionSummary struct {
	Active      bool   `json:"active"`
	Type        uint8  `json:"type"`
	StartSector uint32 `json:"start_sector"`
	SectorCount uint32 `json:"sector_count"`
	Label       string `json:"label"`
	Bootable    bool   `json:"bootable"`
}

// DeviceSummary is the decoded view of a ComplexDeviceDescriptor
type DeviceSummary struct {
	Header            HeaderSummary      `json:"header"`
	DeviceType        string             `json:"device_type"`
	DeviceName        string             `json:"device_name"`
	SerialNumber      string             `json:"serial_number"`
	FirmwareVersion   string             `json:"firmware_version"`
	PartitionCount    uint8              `json:"partition_count"`
	Partitions        []PartitionSummary `json:"partitions"`
	TemperatureC      float64            `json:"temperature_c"`
	HealthPercentage  uint8              `json:"health_percentage"`
	PowerOnHours      uint16             `json:"power_on_hours"`
	PowerCycleCount   uint16             `json:"power_cycle_count"`
	StructureChecksum string             `json:"structure_checksum"`
	Valid             bool               `json:"valid"`
	Warnings          []string           `json:"warnings,omitempty"`
	Problems          []string           `json:"problems,omitempty"`
}

// ManagerSummary is the decoded view of a DeviceManager
type ManagerSummary struct {
	DeviceCount        uint8           `json:"device_count"`
	Devices            []DeviceSummary `json:"devices"`
	TotalCapacityBytes uint64          `json:"total_capacity_bytes"`
	TotalFreeBytes     uint64          `json:"total_free_bytes"`
	LogCount           uint8           `json:"log_count"`
	Valid              bool            `json:"valid"`
	Warnings           []string        `json:"warnings,omitempty"`
	Problems           []string        `json:"problems,omitempty"`
}

// VerifyResult reports a raw-image checksum verification
type VerifyResult struct {
	Record string `json:"record"`
	OK     bool   `json:"ok"`
}

// LayoutField is one row of a layout table dump
type LayoutField struct {
	Name   string `json:"name"`
	Offset int    `json:"offset"`
	Size   int    `json:"size"`
	Kind   string `json:"kind"`
}

// LayoutSummary is the dump of one record's layout table
type LayoutSummary struct {
	Name   string        `json:"name"`
	Size   int           `json:"size"`
	Fields []LayoutField `json:"fields"`
}

func summarizeHeader(h *codec.FileHeader) HeaderSummary {
	s := HeaderSummary{
		Magic:    hex32(h.Magic),
		Version:  version(h.Version),
		Enabled:  h.Flags.Enabled(),
		Readonly: h.Flags.Readonly(),
		CRC32:    hex32(h.CRC32),
		Valid:    true,
	}
	if err := codec.ValidateHeader(h); err != nil {
		s.Valid = false
		s.Problems = append(s.Problems, err.Error())
	}
	return s
}

func summarizeDevice(d *codec.ComplexDeviceDescriptor, strict bool) DeviceSummary {
	s := DeviceSummary{
		Header:            summarizeHeader(&d.Header),
		DeviceType:        d.DeviceType.String(),
		DeviceName:        d.DeviceNameString(),
		SerialNumber:      d.SerialNumberString(),
		FirmwareVersion:   d.FirmwareVersionString(),
		PartitionCount:    d.PartitionCount,
		TemperatureC:      float64(d.Health.Temperature) / 10,
		HealthPercentage:  d.Health.HealthPercentage,
		PowerOnHours:      d.Health.PowerStats.PowerOnHours(),
		PowerCycleCount:   d.Health.PowerStats.PowerCycleCount(),
		StructureChecksum: hex32(d.StructureChecksum),
		Valid:             true,
	}
	n := int(d.PartitionCount)
	if n > codec.MaxPartitions {
		n = codec.MaxPartitions
	}
	for i := 0; i < n; i++ {
		p := &d.Partitions[i]
		s.Partitions = append(s.Partitions, PartitionSummary{
			Active:      p.Active,
			Type:        p.Type,
			StartSector: p.StartSector,
			SectorCount: p.SectorCount,
			Label:       p.LabelString(),
			Bootable:    p.Flags.Bootable(),
		})
	}
	warnings, err := codec.ValidateDescriptor(d, codec.Options{Strict: strict})
	for _, w := range warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	if err != nil {
		s.Valid = false
		s.Problems = append(s.Problems, err.Error())
	}
	return s
}

func summarizeManager(m *codec.DeviceManager, strict bool) ManagerSummary {
	s := ManagerSummary{
		DeviceCount:        m.DeviceCount,
		TotalCapacityBytes: m.GlobalStats.TotalCapacityBytes,
		TotalFreeBytes:     m.GlobalStats.TotalFreeBytes,
		LogCount:           m.LogCount,
		Valid:              true,
	}
	n := int(m.DeviceCount)
	if n > codec.MaxDevices {
		n = codec.MaxDevices
	}
	for i := 0; i < n; i++ {
		s.Devices = append(s.Devices, summarizeDevice(&m.Devices[i], strict))
	}
	warnings, err := codec.ValidateManager(m, codec.Options{Strict: strict})
	for _, w := range warnings {
		s.Warnings = append(s.Warnings, w.Error())
	}
	if err != nil {
		s.Valid = false
		s.Problems = append(s.Problems, err.Error())
	}
	return s
}

func summarizeLayouts() []LayoutSummary {
	var out []LayoutSummary
	for _, l := range codec.Layouts() {
		ls := LayoutSummary{Name: l.Name, Size: l.Size}
		for _, f := range l.Fields() {
			ls.Fields = append(ls.Fields, LayoutField{
				Name:   f.Name,
				Offset: f.Offset,
				Size:   f.Size,
				Kind:   f.Kind.String(),
			})
		}
		out = append(out, ls)
	}
	return out
}
