package codec

import "bytes"

// Fixed char arrays travel as raw bytes with no NUL guarantee. These helpers
// bridge them to Go strings for callers that treat them as text: setters
// zero-fill and refuse oversized input with FieldTooLongError, getters trim
// at the first NUL the way the original tooling prints them.

func setFixed(dst []byte, field, s string) error {
	return WriteBytes(dst, 0, len(dst), field, []byte(s))
}

func fixedString(src []byte) string {
	if i := bytes.IndexByte(src, 0); i >= 0 {
		return string(src[:i])
	}
	return string(src)
}

// SetLabel stores a partition label.
func (p *PartitionInfo) SetLabel(s string) error {
	return setFixed(p.Label[:], "PartitionInfo.label", s)
}

// LabelString returns the label up to its first NUL.
func (p *PartitionInfo) LabelString() string { return fixedString(p.Label[:]) }

// SetDeviceName stores the device name.
func (d *ComplexDeviceDescriptor) SetDeviceName(s string) error {
	return setFixed(d.DeviceName[:], "ComplexDeviceDescriptor.device_name", s)
}

// DeviceNameString returns the device name up to its first NUL.
func (d *ComplexDeviceDescriptor) DeviceNameString() string { return fixedString(d.DeviceName[:]) }

// SetSerialNumber stores the serial number.
func (d *ComplexDeviceDescriptor) SetSerialNumber(s string) error {
	return setFixed(d.SerialNumber[:], "ComplexDeviceDescriptor.serial_number", s)
}

// SerialNumberString returns the serial number up to its first NUL.
func (d *ComplexDeviceDescriptor) SerialNumberString() string {
	return fixedString(d.SerialNumber[:])
}

// SetFirmwareVersion stores the firmware version string.
func (d *ComplexDeviceDescriptor) SetFirmwareVersion(s string) error {
	return setFixed(d.FirmwareVersion[:], "ComplexDeviceDescriptor.firmware_version", s)
}

// FirmwareVersionString returns the firmware version up to its first NUL.
func (d *ComplexDeviceDescriptor) FirmwareVersionString() string {
	return fixedString(d.FirmwareVersion[:])
}

// SetUpdateURL stores the firmware update URL.
func (f *FirmwareInfo) SetUpdateURL(s string) error {
	return setFixed(f.UpdateURL[:], "FirmwareInfo.update_url", s)
}

// UpdateURLString returns the update URL up to its first NUL.
func (f *FirmwareInfo) UpdateURLString() string { return fixedString(f.UpdateURL[:]) }

// SetDescription stores an attribute description.
func (a *ExtendedAttribute) SetDescription(s string) error {
	return setFixed(a.Description[:], "ExtendedAttribute.description", s)
}

// DescriptionString returns the description up to its first NUL.
func (a *ExtendedAttribute) DescriptionString() string { return fixedString(a.Description[:]) }

// SetDescription stores an event description.
func (e *EventLogEntry) SetDescription(s string) error {
	return setFixed(e.Description[:], "EventLogEntry.description", s)
}

// DescriptionString returns the description up to its first NUL.
func (e *EventLogEntry) DescriptionString() string { return fixedString(e.Description[:]) }
