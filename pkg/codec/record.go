package codec

import "fmt"

// RecordCodec encodes and decodes the inventory records to and from their
// fixed-size byte images. It is stateless and safe for concurrent use; every
// call works on its own buffer and retains nothing afterwards.
//
// Encoding walks the record's layout table with a field cursor, so offsets
// and sizes come from one place. Checksum fields are always stamped from the
// encoded image during Encode, including those inside unused device slots;
// every other byte of an unused array slot travels exactly as the caller
// supplied it. Decoding reads fields back verbatim and performs no semantic
// checks: counts, magic, versions and checksums are the validation layer's
// business.
type RecordCodec struct{}

// NewRecordCodec creates a new record codec instance.
func NewRecordCodec() *RecordCodec {
	return &RecordCodec{}
}

// fieldWriter walks a layout table over a buffer sized exactly to the table.
// Kind or arity mismatches between an encoder and its table are programmer
// errors and panic; data errors (bitfield overflow, oversized input) stick in
// err and abort the remaining writes.
type fieldWriter struct {
	layout *Layout
	buf    []byte
	i      int
	err    error
}

func newFieldWriter(l *Layout, buf []byte) *fieldWriter {
	return &fieldWriter{layout: l, buf: buf}
}

func (w *fieldWriter) next(kinds ...FieldKind) (Field, bool) {
	if w.err != nil {
		return Field{}, false
	}
	if w.i >= len(w.layout.fields) {
		panic(fmt.Sprintf("codec: encoder for %s walked past the last field", w.layout.Name))
	}
	f := w.layout.fields[w.i]
	for _, k := range kinds {
		if f.Kind == k {
			w.i++
			return f, true
		}
	}
	panic(fmt.Sprintf("codec: encoder for %s wrote %v into field %s (%v)", w.layout.Name, kinds, f.Name, f.Kind))
}

func (w *fieldWriter) finish() error {
	if w.err == nil && w.i != len(w.layout.fields) {
		panic(fmt.Sprintf("codec: encoder for %s stopped at field %d of %d", w.layout.Name, w.i, len(w.layout.fields)))
	}
	return w.err
}

func (w *fieldWriter) u8(v uint8) {
	if f, ok := w.next(KindUint, KindEnum); ok {
		WriteU8(w.buf, f.Offset, v)
	}
}

func (w *fieldWriter) u16(v uint16) {
	if f, ok := w.next(KindUint); ok {
		WriteU16(w.buf, f.Offset, v)
	}
}

func (w *fieldWriter) u32(v uint32) {
	if f, ok := w.next(KindUint); ok {
		WriteU32(w.buf, f.Offset, v)
	}
}

func (w *fieldWriter) u64(v uint64) {
	if f, ok := w.next(KindUint); ok {
		WriteU64(w.buf, f.Offset, v)
	}
}

func (w *fieldWriter) f64(v float64) {
	if f, ok := w.next(KindFloat); ok {
		WriteF64(w.buf, f.Offset, v)
	}
}

func (w *fieldWriter) bytes(src []byte) {
	if f, ok := w.next(KindBytes); ok {
		if err := WriteBytes(w.buf, f.Offset, f.Size, w.layout.Name+"."+f.Name, src); err != nil {
			w.err = err
		}
	}
}

// bits writes a bitfield group through its raw alias.
func (w *fieldWriter) bits(raw uint32) {
	if f, ok := w.next(KindBitfield); ok {
		if f.Bits.Size() == 1 {
			WriteU8(w.buf, f.Offset, uint8(raw))
		} else {
			WriteU32(w.buf, f.Offset, raw)
		}
	}
}

// pack writes a bitfield group from named member values.
func (w *fieldWriter) pack(values map[string]uint32) {
	if f, ok := w.next(KindBitfield); ok {
		raw, err := f.Bits.Pack(values)
		if err != nil {
			w.err = err
			return
		}
		if f.Bits.Size() == 1 {
			WriteU8(w.buf, f.Offset, uint8(raw))
		} else {
			WriteU32(w.buf, f.Offset, raw)
		}
	}
}

// sub encodes a nested record into its slot.
func (w *fieldWriter) sub(fn func(buf []byte) error) {
	if f, ok := w.next(KindRecord); ok {
		if err := fn(w.buf[f.Offset : f.Offset+f.Size]); err != nil {
			w.err = err
		}
	}
}

// array encodes every slot of a fixed-capacity array. All Count slots are
// written regardless of any logical count field.
func (w *fieldWriter) array(fn func(i int, buf []byte) error) {
	if f, ok := w.next(KindArray); ok {
		for i := 0; i < f.Count; i++ {
			off := f.Offset + i*f.Elem.Size
			if err := fn(i, w.buf[off:off+f.Elem.Size]); err != nil {
				w.err = err
				return
			}
		}
	}
}

// fieldReader is the decode-side cursor over a layout table. Decoding a
// correctly sized buffer cannot fail, so the reader carries no error state.
type fieldReader struct {
	layout *Layout
	buf    []byte
	i      int
}

func newFieldReader(l *Layout, buf []byte) *fieldReader {
	return &fieldReader{layout: l, buf: buf}
}

func (r *fieldReader) next(kinds ...FieldKind) Field {
	if r.i >= len(r.layout.fields) {
		panic(fmt.Sprintf("codec: decoder for %s walked past the last field", r.layout.Name))
	}
	f := r.layout.fields[r.i]
	for _, k := range kinds {
		if f.Kind == k {
			r.i++
			return f
		}
	}
	panic(fmt.Sprintf("codec: decoder for %s read %v from field %s (%v)", r.layout.Name, kinds, f.Name, f.Kind))
}

func (r *fieldReader) finish() {
	if r.i != len(r.layout.fields) {
		panic(fmt.Sprintf("codec: decoder for %s stopped at field %d of %d", r.layout.Name, r.i, len(r.layout.fields)))
	}
}

func (r *fieldReader) u8() uint8 {
	f := r.next(KindUint, KindEnum)
	return ReadU8(r.buf, f.Offset)
}

func (r *fieldReader) u16() uint16 {
	f := r.next(KindUint)
	return ReadU16(r.buf, f.Offset)
}

func (r *fieldReader) u32() uint32 {
	f := r.next(KindUint)
	return ReadU32(r.buf, f.Offset)
}

func (r *fieldReader) u64() uint64 {
	f := r.next(KindUint)
	return ReadU64(r.buf, f.Offset)
}

func (r *fieldReader) f64() float64 {
	f := r.next(KindFloat)
	return ReadF64(r.buf, f.Offset)
}

func (r *fieldReader) bytes(dst []byte) {
	f := r.next(KindBytes)
	copy(dst, r.buf[f.Offset:f.Offset+f.Size])
}

func (r *fieldReader) bits() uint32 {
	f := r.next(KindBitfield)
	if f.Bits.Size() == 1 {
		return uint32(ReadU8(r.buf, f.Offset))
	}
	return ReadU32(r.buf, f.Offset)
}

func (r *fieldReader) unpack() map[string]uint32 {
	f := r.next(KindBitfield)
	var raw uint32
	if f.Bits.Size() == 1 {
		raw = uint32(ReadU8(r.buf, f.Offset))
	} else {
		raw = ReadU32(r.buf, f.Offset)
	}
	return f.Bits.Unpack(raw)
}

func (r *fieldReader) sub(fn func(buf []byte)) {
	f := r.next(KindRecord)
	fn(r.buf[f.Offset : f.Offset+f.Size])
}

func (r *fieldReader) array(fn func(i int, buf []byte)) {
	f := r.next(KindArray)
	for i := 0; i < f.Count; i++ {
		off := f.Offset + i*f.Elem.Size
		fn(i, r.buf[off:off+f.Elem.Size])
	}
}

// EncodeHeader serializes h into a fresh FileHeaderSize image. The crc32
// field is stamped from the encoded bytes and written back into h.
func (c *RecordCodec) EncodeHeader(h *FileHeader) ([]byte, error) {
	buf := make([]byte, FileHeaderSize)
	if err := encodeHeaderInto(buf, h); err != nil {
		return nil, err
	}
	if err := StampHeader(buf); err != nil {
		return nil, err
	}
	h.CRC32 = ReadU32(buf, headerCRCOffset)
	return buf, nil
}

// DecodeHeader reads a FileHeader from data. Data may carry trailing bytes;
// anything past FileHeaderSize is ignored.
func (c *RecordCodec) DecodeHeader(data []byte) (*FileHeader, error) {
	if len(data) < FileHeaderSize {
		return nil, &TruncatedInputError{Record: "FileHeader", Need: FileHeaderSize, Got: len(data)}
	}
	h := &FileHeader{}
	decodeHeaderFrom(data[:FileHeaderSize], h)
	return h, nil
}

func encodeVersionInto(buf []byte, v *Version) error {
	w := newFieldWriter(VersionLayout, buf)
	w.u8(v.Major)
	w.u8(v.Minor)
	return w.finish()
}

func decodeVersionFrom(buf []byte, v *Version) {
	r := newFieldReader(VersionLayout, buf)
	v.Major = r.u8()
	v.Minor = r.u8()
	r.finish()
}

func encodeHeaderInto(buf []byte, h *FileHeader) error {
	w := newFieldWriter(FileHeaderLayout, buf)
	w.u32(h.Magic)
	w.sub(func(b []byte) error { return encodeVersionInto(b, &h.Version) })
	w.bits(uint32(h.Flags))
	w.bytes(h.Buffer[:])
	w.u32(h.CRC32)
	return w.finish()
}

func decodeHeaderFrom(buf []byte, h *FileHeader) {
	r := newFieldReader(FileHeaderLayout, buf)
	h.Magic = r.u32()
	r.sub(func(b []byte) { decodeVersionFrom(b, &h.Version) })
	h.Flags = HeaderFlags(r.bits())
	r.bytes(h.Buffer[:])
	h.CRC32 = r.u32()
	r.finish()
}

// EncodePartition serializes p into a fresh PartitionInfoSize image. A Type
// above 127 does not fit its seven bits and fails with FieldOverflowError.
func (c *RecordCodec) EncodePartition(p *PartitionInfo) ([]byte, error) {
	buf := make([]byte, PartitionInfoSize)
	if err := encodePartitionInto(buf, p); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodePartition reads a PartitionInfo from data, ignoring trailing bytes.
func (c *RecordCodec) DecodePartition(data []byte) (*PartitionInfo, error) {
	if len(data) < PartitionInfoSize {
		return nil, &TruncatedInputError{Record: "PartitionInfo", Need: PartitionInfoSize, Got: len(data)}
	}
	p := &PartitionInfo{}
	decodePartitionFrom(data[:PartitionInfoSize], p)
	return p, nil
}

func encodePartitionInto(buf []byte, p *PartitionInfo) error {
	w := newFieldWriter(PartitionInfoLayout, buf)
	w.pack(map[string]uint32{
		"active": boolBit(p.Active),
		"type":   uint32(p.Type),
	})
	w.u32(p.StartSector)
	w.u32(p.SectorCount)
	w.bits(uint32(p.Flags))
	w.bytes(p.Label[:])
	return w.finish()
}

func decodePartitionFrom(buf []byte, p *PartitionInfo) {
	r := newFieldReader(PartitionInfoLayout, buf)
	id := r.unpack()
	p.Active = id["active"] == 1
	p.Type = uint8(id["type"])
	p.StartSector = r.u32()
	p.SectorCount = r.u32()
	p.Flags = PartitionFlags(r.bits())
	r.bytes(p.Label[:])
	r.finish()
}

// EncodeSectorStats serializes s into a fresh SectorStatsSize image.
func (c *RecordCodec) EncodeSectorStats(s *SectorStats) ([]byte, error) {
	buf := make([]byte, SectorStatsSize)
	if err := encodeSectorStatsInto(buf, s); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeSectorStats reads a SectorStats from data, ignoring trailing bytes.
func (c *RecordCodec) DecodeSectorStats(data []byte) (*SectorStats, error) {
	if len(data) < SectorStatsSize {
		return nil, &TruncatedInputError{Record: "SectorStats", Need: SectorStatsSize, Got: len(data)}
	}
	s := &SectorStats{}
	decodeSectorStatsFrom(data[:SectorStatsSize], s)
	return s, nil
}

func encodeSectorStatsInto(buf []byte, s *SectorStats) error {
	w := newFieldWriter(SectorStatsLayout, buf)
	w.u64(s.TotalSectors)
	w.u64(s.UsedSectors)
	w.u64(s.BadSectors)
	w.u32(s.SectorSize)
	w.sub(func(b []byte) error { return encodePerformanceInto(b, &s.Performance) })
	return w.finish()
}

func decodeSectorStatsFrom(buf []byte, s *SectorStats) {
	r := newFieldReader(SectorStatsLayout, buf)
	s.TotalSectors = r.u64()
	s.UsedSectors = r.u64()
	s.BadSectors = r.u64()
	s.SectorSize = r.u32()
	r.sub(func(b []byte) { decodePerformanceFrom(b, &s.Performance) })
	r.finish()
}

func encodePerformanceInto(buf []byte, p *Performance) error {
	w := newFieldWriter(PerformanceLayout, buf)
	w.f64(p.ReadSpeedMbps)
	w.f64(p.WriteSpeedMbps)
	w.u32(p.ReadCount)
	w.u32(p.WriteCount)
	w.u64(p.TotalBytesRead)
	w.u64(p.TotalBytesWritten)
	return w.finish()
}

func decodePerformanceFrom(buf []byte, p *Performance) {
	r := newFieldReader(PerformanceLayout, buf)
	p.ReadSpeedMbps = r.f64()
	p.WriteSpeedMbps = r.f64()
	p.ReadCount = r.u32()
	p.WriteCount = r.u32()
	p.TotalBytesRead = r.u64()
	p.TotalBytesWritten = r.u64()
	r.finish()
}

// EncodeHealth serializes h into a fresh DeviceHealthSize image.
func (c *RecordCodec) EncodeHealth(h *DeviceHealth) ([]byte, error) {
	buf := make([]byte, DeviceHealthSize)
	if err := encodeHealthInto(buf, h); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeHealth reads a DeviceHealth from data, ignoring trailing bytes.
func (c *RecordCodec) DecodeHealth(data []byte) (*DeviceHealth, error) {
	if len(data) < DeviceHealthSize {
		return nil, &TruncatedInputError{Record: "DeviceHealth", Need: DeviceHealthSize, Got: len(data)}
	}
	h := &DeviceHealth{}
	decodeHealthFrom(data[:DeviceHealthSize], h)
	return h, nil
}

func encodeHealthInto(buf []byte, h *DeviceHealth) error {
	w := newFieldWriter(DeviceHealthLayout, buf)
	w.u16(h.Temperature)
	w.u8(h.HealthPercentage)
	w.bits(uint32(h.PowerStats))
	w.bits(uint32(h.Status))
	w.bytes(h.ErrorLog[:])
	return w.finish()
}

func decodeHealthFrom(buf []byte, h *DeviceHealth) {
	r := newFieldReader(DeviceHealthLayout, buf)
	h.Temperature = r.u16()
	h.HealthPercentage = r.u8()
	h.PowerStats = PowerStats(r.bits())
	h.Status = HealthStatus(r.bits())
	r.bytes(h.ErrorLog[:])
	r.finish()
}

func encodeGeometryInto(buf []byte, g *Geometry) error {
	w := newFieldWriter(GeometryLayout, buf)
	w.u16(g.Cylinders)
	w.u16(g.Heads)
	w.u16(g.SectorsPerTrack)
	w.u32(g.TotalSectors)
	return w.finish()
}

func decodeGeometryFrom(buf []byte, g *Geometry) {
	r := newFieldReader(GeometryLayout, buf)
	g.Cylinders = r.u16()
	g.Heads = r.u16()
	g.SectorsPerTrack = r.u16()
	g.TotalSectors = r.u32()
	r.finish()
}

func encodeInterfaceInfoInto(buf []byte, ii *InterfaceInfo) error {
	w := newFieldWriter(InterfaceInfoLayout, buf)
	w.bits(uint32(ii.Select))
	w.u16(ii.IDs.VendorID)
	w.u16(ii.IDs.ProductID)
	w.u16(ii.IDs.Revision)
	w.bits(uint32(ii.Link))
	return w.finish()
}

func decodeInterfaceInfoFrom(buf []byte, ii *InterfaceInfo) {
	r := newFieldReader(InterfaceInfoLayout, buf)
	ii.Select = InterfaceSelect(r.bits())
	ii.IDs.VendorID = r.u16()
	ii.IDs.ProductID = r.u16()
	ii.IDs.Revision = r.u16()
	ii.Link = LinkStatus(r.bits())
	r.finish()
}

func encodeCacheConfigInto(buf []byte, cc *CacheConfig) error {
	w := newFieldWriter(CacheConfigLayout, buf)
	w.u32(cc.CacheSizeKB)
	w.bits(uint32(cc.Flags))
	w.u16(cc.CacheLineSize)
	return w.finish()
}

func decodeCacheConfigFrom(buf []byte, cc *CacheConfig) {
	r := newFieldReader(CacheConfigLayout, buf)
	cc.CacheSizeKB = r.u32()
	cc.Flags = CacheFlags(r.bits())
	cc.CacheLineSize = r.u16()
	r.finish()
}

func encodeAttributeInto(buf []byte, a *ExtendedAttribute) error {
	w := newFieldWriter(ExtendedAttributeLayout, buf)
	w.u16(a.AttributeID)
	w.u32(a.Value)
	w.bytes(a.Description[:])
	return w.finish()
}

func decodeAttributeFrom(buf []byte, a *ExtendedAttribute) {
	r := newFieldReader(ExtendedAttributeLayout, buf)
	a.AttributeID = r.u16()
	a.Value = r.u32()
	r.bytes(a.Description[:])
	r.finish()
}

func encodeFirmwareInfoInto(buf []byte, fi *FirmwareInfo) error {
	w := newFieldWriter(FirmwareInfoLayout, buf)
	w.sub(func(b []byte) error { return encodeVersionInto(b, &fi.CurrentVersion) })
	w.sub(func(b []byte) error { return encodeVersionInto(b, &fi.LatestVersion) })
	w.bits(uint32(fi.Flags))
	w.bytes(fi.UpdateURL[:])
	w.u32(fi.UpdateSizeBytes)
	return w.finish()
}

func decodeFirmwareInfoFrom(buf []byte, fi *FirmwareInfo) {
	r := newFieldReader(FirmwareInfoLayout, buf)
	r.sub(func(b []byte) { decodeVersionFrom(b, &fi.CurrentVersion) })
	r.sub(func(b []byte) { decodeVersionFrom(b, &fi.LatestVersion) })
	fi.Flags = UpdateFlags(r.bits())
	r.bytes(fi.UpdateURL[:])
	fi.UpdateSizeBytes = r.u32()
	r.finish()
}

func encodeSecurityInfoInto(buf []byte, si *SecurityInfo) error {
	w := newFieldWriter(SecurityInfoLayout, buf)
	w.bits(uint32(si.Flags))
	w.bytes(si.PasswordHash[:])
	w.u32(si.UnlockCount)
	w.u32(si.FailedUnlockCount)
	return w.finish()
}

func decodeSecurityInfoFrom(buf []byte, si *SecurityInfo) {
	r := newFieldReader(SecurityInfoLayout, buf)
	si.Flags = SecurityFlags(r.bits())
	r.bytes(si.PasswordHash[:])
	si.UnlockCount = r.u32()
	si.FailedUnlockCount = r.u32()
	r.finish()
}

// EncodeDescriptor serializes d into a fresh DeviceDescriptorSize image. Both
// checksums (embedded header crc32, trailing structure_checksum) are stamped
// from the encoded bytes and written back into d.
func (c *RecordCodec) EncodeDescriptor(d *ComplexDeviceDescriptor) ([]byte, error) {
	buf := make([]byte, DeviceDescriptorSize)
	if err := encodeDescriptorInto(buf, d); err != nil {
		return nil, err
	}
	if err := StampDescriptor(buf); err != nil {
		return nil, err
	}
	d.Header.CRC32 = ReadU32(buf, headerCRCOffset)
	d.StructureChecksum = ReadU32(buf, descriptorChecksumOffset)
	return buf, nil
}

// DecodeDescriptor reads a ComplexDeviceDescriptor from data, ignoring
// trailing bytes.
func (c *RecordCodec) DecodeDescriptor(data []byte) (*ComplexDeviceDescriptor, error) {
	if len(data) < DeviceDescriptorSize {
		return nil, &TruncatedInputError{Record: "ComplexDeviceDescriptor", Need: DeviceDescriptorSize, Got: len(data)}
	}
	d := &ComplexDeviceDescriptor{}
	decodeDescriptorFrom(data[:DeviceDescriptorSize], d)
	return d, nil
}

func encodeDescriptorInto(buf []byte, d *ComplexDeviceDescriptor) error {
	w := newFieldWriter(DeviceDescriptorLayout, buf)
	w.sub(func(b []byte) error { return encodeHeaderInto(b, &d.Header) })
	w.u8(uint8(d.DeviceType))
	w.bytes(d.DeviceName[:])
	w.bytes(d.SerialNumber[:])
	w.bytes(d.FirmwareVersion[:])
	w.sub(func(b []byte) error { return encodeGeometryInto(b, &d.Geometry) })
	w.array(func(i int, b []byte) error { return encodePartitionInto(b, &d.Partitions[i]) })
	w.u8(d.PartitionCount)
	w.sub(func(b []byte) error { return encodeSectorStatsInto(b, &d.Stats) })
	w.sub(func(b []byte) error { return encodeHealthInto(b, &d.Health) })
	w.bits(uint32(d.Features))
	w.sub(func(b []byte) error { return encodeInterfaceInfoInto(b, &d.Interface) })
	w.sub(func(b []byte) error { return encodeCacheConfigInto(b, &d.Cache) })
	w.array(func(i int, b []byte) error { return encodeAttributeInto(b, &d.ExtendedAttributes[i]) })
	w.sub(func(b []byte) error { return encodeFirmwareInfoInto(b, &d.Firmware) })
	w.sub(func(b []byte) error { return encodeSecurityInfoInto(b, &d.Security) })
	w.bytes(d.Reserved[:])
	w.u32(d.StructureChecksum)
	return w.finish()
}

func decodeDescriptorFrom(buf []byte, d *ComplexDeviceDescriptor) {
	r := newFieldReader(DeviceDescriptorLayout, buf)
	r.sub(func(b []byte) { decodeHeaderFrom(b, &d.Header) })
	d.DeviceType = DeviceType(r.u8())
	r.bytes(d.DeviceName[:])
	r.bytes(d.SerialNumber[:])
	r.bytes(d.FirmwareVersion[:])
	r.sub(func(b []byte) { decodeGeometryFrom(b, &d.Geometry) })
	r.array(func(i int, b []byte) { decodePartitionFrom(b, &d.Partitions[i]) })
	d.PartitionCount = r.u8()
	r.sub(func(b []byte) { decodeSectorStatsFrom(b, &d.Stats) })
	r.sub(func(b []byte) { decodeHealthFrom(b, &d.Health) })
	d.Features = FeatureFlags(r.bits())
	r.sub(func(b []byte) { decodeInterfaceInfoFrom(b, &d.Interface) })
	r.sub(func(b []byte) { decodeCacheConfigFrom(b, &d.Cache) })
	r.array(func(i int, b []byte) { decodeAttributeFrom(b, &d.ExtendedAttributes[i]) })
	r.sub(func(b []byte) { decodeFirmwareInfoFrom(b, &d.Firmware) })
	r.sub(func(b []byte) { decodeSecurityInfoFrom(b, &d.Security) })
	r.bytes(d.Reserved[:])
	d.StructureChecksum = r.u32()
	r.finish()
}

func encodeGlobalStatsInto(buf []byte, g *GlobalStats) error {
	w := newFieldWriter(GlobalStatsLayout, buf)
	w.u64(g.TotalCapacityBytes)
	w.u64(g.TotalFreeBytes)
	w.u32(g.TotalReadOperations)
	w.u32(g.TotalWriteOperations)
	w.f64(g.AverageResponseTimeMs)
	return w.finish()
}

func decodeGlobalStatsFrom(buf []byte, g *GlobalStats) {
	r := newFieldReader(GlobalStatsLayout, buf)
	g.TotalCapacityBytes = r.u64()
	g.TotalFreeBytes = r.u64()
	g.TotalReadOperations = r.u32()
	g.TotalWriteOperations = r.u32()
	g.AverageResponseTimeMs = r.f64()
	r.finish()
}

func encodeEventInto(buf []byte, e *EventLogEntry) error {
	w := newFieldWriter(EventLogEntryLayout, buf)
	w.u32(e.Timestamp)
	w.u8(e.EventType)
	w.u8(e.DeviceIndex)
	w.u16(e.EventCode)
	w.bytes(e.Description[:])
	return w.finish()
}

func decodeEventFrom(buf []byte, e *EventLogEntry) {
	r := newFieldReader(EventLogEntryLayout, buf)
	e.Timestamp = r.u32()
	e.EventType = r.u8()
	e.DeviceIndex = r.u8()
	e.EventCode = r.u16()
	r.bytes(e.Description[:])
	r.finish()
}

// EncodeManager serializes m into a fresh DeviceManagerSize image. Every
// device slot, used or not, and the trailing config header are stamped; the
// computed checksums are written back into m.
func (c *RecordCodec) EncodeManager(m *DeviceManager) ([]byte, error) {
	buf := make([]byte, DeviceManagerSize)
	w := newFieldWriter(DeviceManagerLayout, buf)
	w.array(func(i int, b []byte) error {
		if err := encodeDescriptorInto(b, &m.Devices[i]); err != nil {
			return err
		}
		if err := StampDescriptor(b); err != nil {
			return err
		}
		m.Devices[i].Header.CRC32 = ReadU32(b, headerCRCOffset)
		m.Devices[i].StructureChecksum = ReadU32(b, descriptorChecksumOffset)
		return nil
	})
	w.u8(m.DeviceCount)
	w.sub(func(b []byte) error { return encodeGlobalStatsInto(b, &m.GlobalStats) })
	w.bits(uint32(m.SystemFlags))
	w.array(func(i int, b []byte) error { return encodeEventInto(b, &m.EventLog[i]) })
	w.u8(m.LogCount)
	w.sub(func(b []byte) error {
		if err := encodeHeaderInto(b, &m.ConfigHeader); err != nil {
			return err
		}
		if err := StampHeader(b); err != nil {
			return err
		}
		m.ConfigHeader.CRC32 = ReadU32(b, headerCRCOffset)
		return nil
	})
	if err := w.finish(); err != nil {
		return nil, err
	}
	return buf, nil
}

// DecodeManager reads a DeviceManager from data, ignoring trailing bytes.
func (c *RecordCodec) DecodeManager(data []byte) (*DeviceManager, error) {
	if len(data) < DeviceManagerSize {
		return nil, &TruncatedInputError{Record: "DeviceManager", Need: DeviceManagerSize, Got: len(data)}
	}
	m := &DeviceManager{}
	r := newFieldReader(DeviceManagerLayout, data[:DeviceManagerSize])
	r.array(func(i int, b []byte) { decodeDescriptorFrom(b, &m.Devices[i]) })
	m.DeviceCount = r.u8()
	r.sub(func(b []byte) { decodeGlobalStatsFrom(b, &m.GlobalStats) })
	m.SystemFlags = SystemFlags(r.bits())
	r.array(func(i int, b []byte) { decodeEventFrom(b, &m.EventLog[i]) })
	m.LogCount = r.u8()
	r.sub(func(b []byte) { decodeHeaderFrom(b, &m.ConfigHeader) })
	r.finish()
	return m, nil
}

func boolBit(b bool) uint32 {
	if b {
		return 1
	}
	return 0
}
