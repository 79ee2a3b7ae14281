package codec

import "fmt"

// BitField is one named member of a bit group.
type BitField struct {
	Name  string
	Width uint
}

// Group packs an ordered list of sub-byte fields into a single storage cell of
// 1 or 4 whole bytes, mirroring a C bitfield-plus-raw union. Allocation is
// LSB-first: the first declared field occupies the low-order bits of the first
// storage byte, each later field the next higher bits. The raw alias is the
// unsigned integer formed by the whole cell with the first field least
// significant, so packing by name and assigning the raw value are two views of
// the same storage.
type Group struct {
	name   string
	fields []BitField
	shifts []uint
	bits   uint
}

// NewGroup builds a bit group. Widths must sum to 8 or 32 bits; in this format
// every group resolves to exactly one or four whole bytes and no member
// crosses a byte boundary. Layout construction treats a malformed group as a
// programmer error and panics.
func NewGroup(name string, fields ...BitField) *Group {
	g := &Group{name: name, fields: fields, shifts: make([]uint, len(fields))}
	for i, f := range fields {
		if f.Width == 0 || f.Width > 32 {
			panic(fmt.Sprintf("codec: group %s field %s has width %d", name, f.Name, f.Width))
		}
		g.shifts[i] = g.bits
		g.bits += f.Width
	}
	if g.bits != 8 && g.bits != 32 {
		panic(fmt.Sprintf("codec: group %s is %d bits, want 8 or 32", name, g.bits))
	}
	return g
}

// Name returns the group's name.
func (g *Group) Name() string { return g.name }

// Bits returns the total width of the group in bits.
func (g *Group) Bits() uint { return g.bits }

// Size returns the storage size of the group in bytes.
func (g *Group) Size() int { return int(g.bits / 8) }

// Fields returns the members in declaration order.
func (g *Group) Fields() []BitField { return g.fields }

// Position reports the bit offset and width of a member within the raw value.
func (g *Group) Position(field string) (offset, width uint, ok bool) {
	for i, f := range g.fields {
		if f.Name == field {
			return g.shifts[i], f.Width, true
		}
	}
	return 0, 0, false
}

// Max returns the largest value a member can hold.
func (g *Group) Max(field string) (uint32, bool) {
	_, width, ok := g.Position(field)
	if !ok {
		return 0, false
	}
	return mask(width), true
}

// Pack assembles the raw value from named member values. Members absent from
// values encode as zero. A value wider than its field fails with
// FieldOverflowError and no partial result.
func (g *Group) Pack(values map[string]uint32) (uint32, error) {
	var raw uint32
	for i, f := range g.fields {
		v := values[f.Name]
		if v > mask(f.Width) {
			return 0, &FieldOverflowError{Field: g.name + "." + f.Name, Max: mask(f.Width)}
		}
		raw |= v << g.shifts[i]
	}
	return raw, nil
}

// Unpack splits a raw value into named member values by shifting and masking.
func (g *Group) Unpack(raw uint32) map[string]uint32 {
	out := make(map[string]uint32, len(g.fields))
	for i, f := range g.fields {
		out[f.Name] = (raw >> g.shifts[i]) & mask(f.Width)
	}
	return out
}

// Get extracts a single member from a raw value.
func (g *Group) Get(raw uint32, field string) (uint32, bool) {
	off, width, ok := g.Position(field)
	if !ok {
		return 0, false
	}
	return (raw >> off) & mask(width), true
}

// Set returns raw with one member replaced. A value wider than the field
// fails with FieldOverflowError.
func (g *Group) Set(raw uint32, field string, v uint32) (uint32, error) {
	off, width, ok := g.Position(field)
	if !ok {
		return 0, fmt.Errorf("codec: group %s has no field %q", g.name, field)
	}
	if v > mask(width) {
		return 0, &FieldOverflowError{Field: g.name + "." + field, Max: mask(width)}
	}
	return raw&^(mask(width)<<off) | v<<off, nil
}

func mask(width uint) uint32 {
	if width >= 32 {
		return ^uint32(0)
	}
	return 1<<width - 1
}

// Bit helpers shared by the typed flag views in types.go. The views and the
// groups address the same bit positions; alias equivalence between the two is
// a tested property of the format.

func getBit(raw uint32, pos uint) bool {
	return raw>>pos&1 == 1
}

func setBit(raw uint32, pos uint, on bool) uint32 {
	if on {
		return raw | 1<<pos
	}
	return raw &^ (1 << pos)
}

func getBits(raw uint32, pos, width uint) uint32 {
	return raw >> pos & mask(width)
}

func setBits(raw uint32, pos, width uint, v uint32) uint32 {
	return raw&^(mask(width)<<pos) | (v&mask(width))<<pos
}
