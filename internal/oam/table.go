package oam

import (
	"encoding/binary"
	"errors"
	"fmt"
)

const (
	// Base is the address of object attribute memory.
	Base = 0x07000000
	// MaxSprites is the number of hardware slots.
	MaxSprites = 128
	// SlotSize is the stride between slots. The last two bytes of each slot
	// belong to the interleaved affine parameter table.
	SlotSize = 8
	// RecordSize is the number of bytes of one Sprite inside a slot.
	RecordSize = 6
)

var (
	ErrCapacity    = errors.New("invalid capacity")
	ErrRegionShort = errors.New("memory region too small")
)

// Table is the live attribute table, backed by a memory region that the
// display hardware scans once per frame. In tests the region is a plain
// byte slice.
type Table struct {
	mem      []byte
	capacity int
	ready    bool
}

// NewTable wraps mem as a table of capacity slots.
func NewTable(mem []byte, capacity int) (*Table, error) {
	if capacity <= 0 || capacity > MaxSprites {
		return nil, fmt.Errorf("oam table: capacity %d: %w", capacity, ErrCapacity)
	}
	if len(mem) < capacity*SlotSize {
		return nil, fmt.Errorf("oam table: %d bytes for %d slots: %w", len(mem), capacity, ErrRegionShort)
	}
	return &Table{mem: mem[:capacity*SlotSize], capacity: capacity}, nil
}

// Capacity returns the number of slots.
func (t *Table) Capacity() int { return t.capacity }

// Initialize hides every slot and clears the interleaved affine words. It
// must run once, before the first Commit.
func (t *Table) Initialize() {
	require(!t.ready, "Initialize", "table already initialized")
	var hidden Sprite
	hidden.Hide()
	for i := 0; i < t.capacity; i++ {
		off := i * SlotSize
		hidden.Encode(t.mem[off : off+RecordSize])
		binary.LittleEndian.PutUint16(t.mem[off+RecordSize:], 0)
	}
	t.ready = true
}

// Commit copies shadow[:count] into slots 0..count-1, in order. Slots past
// count keep what they held; hide them in the shadow buffer first if the
// sprite count shrinks. Call only while the display is not scanning.
func (t *Table) Commit(shadow []Sprite, count int) {
	require(t.ready, "Commit", "table not initialized")
	require(count >= 0 && count <= t.capacity, "Commit", "count %d exceeds capacity %d", count, t.capacity)
	require(count <= len(shadow), "Commit", "count %d exceeds shadow length %d", count, len(shadow))
	for i := range shadow[:count] {
		off := i * SlotSize
		shadow[i].Encode(t.mem[off : off+RecordSize])
	}
}

// Sprite reads back slot i of the live table.
func (t *Table) Sprite(i int) Sprite {
	require(i >= 0 && i < t.capacity, "Sprite", "slot %d out of range", i)
	off := i * SlotSize
	return Decode(t.mem[off : off+RecordSize])
}

// Snapshot reads back the first n slots.
func (t *Table) Snapshot(n int) []Sprite {
	require(n >= 0 && n <= t.capacity, "Snapshot", "count %d exceeds capacity %d", n, t.capacity)
	out := make([]Sprite, n)
	for i := range out {
		out[i] = t.Sprite(i)
	}
	return out
}

// Bytes returns the live region, slot stride included.
func (t *Table) Bytes() []byte { return t.mem }

// Encode writes the three attribute words into b[:RecordSize], little-endian.
func (s *Sprite) Encode(b []byte) {
	_ = b[RecordSize-1]
	binary.LittleEndian.PutUint16(b[0:], s.attr[0])
	binary.LittleEndian.PutUint16(b[2:], s.attr[1])
	binary.LittleEndian.PutUint16(b[4:], s.attr[2])
}

// Decode reads a Sprite from the first RecordSize bytes of b.
func Decode(b []byte) Sprite {
	_ = b[RecordSize-1]
	return Sprite{attr: [3]uint16{
		binary.LittleEndian.Uint16(b[0:]),
		binary.LittleEndian.Uint16(b[2:]),
		binary.LittleEndian.Uint16(b[4:]),
	}}
}

// FromWords builds a Sprite from raw attribute words.
func FromWords(attr0, attr1, attr2 uint16) Sprite {
	return Sprite{attr: [3]uint16{attr0, attr1, attr2}}
}
