package bus

import (
	"encoding/binary"
	"errors"
	"fmt"
)

// Object attribute memory: 1 KiB at 0x07000000, mirrored up to 0x07FFFFFF.
const (
	OAMStart = 0x07000000
	OAMEnd   = 0x07FFFFFF
	OAMSize  = 0x400
)

var ErrUnmapped = errors.New("address range not mapped")

// Bus is the slice of the memory map the sprite layer talks to.
type Bus struct {
	oam [OAMSize]byte
}

// New returns a bus with zeroed OAM.
func New() *Bus {
	return &Bus{}
}

func oamOffset(addr uint32) (uint32, bool) {
	if addr < OAMStart || addr > OAMEnd {
		return 0, false
	}
	return (addr - OAMStart) % OAMSize, true
}

// Read8 reads one byte; unmapped addresses read 0xFF.
func (b *Bus) Read8(addr uint32) byte {
	if off, ok := oamOffset(addr); ok {
		return b.oam[off]
	}
	return 0xFF // unmapped
}

// Write8 is ignored for OAM: the hardware only accepts 16/32-bit writes there.
func (b *Bus) Write8(addr uint32, value byte) {}

// Read16 reads a little-endian halfword, forcing the address even.
func (b *Bus) Read16(addr uint32) uint16 {
	if off, ok := oamOffset(addr &^ 1); ok {
		return binary.LittleEndian.Uint16(b.oam[off:])
	}
	return 0xFFFF
}

// Write16 writes a little-endian halfword, forcing the address even.
func (b *Bus) Write16(addr uint32, value uint16) {
	if off, ok := oamOffset(addr &^ 1); ok {
		binary.LittleEndian.PutUint16(b.oam[off:], value)
	}
}

// Region returns the backing bytes of [base, base+size). The range must be
// halfword aligned and lie inside one copy of OAM.
func (b *Bus) Region(base uint32, size int) ([]byte, error) {
	off, ok := oamOffset(base)
	if !ok || base&1 != 0 || size < 0 || int(off)+size > OAMSize {
		return nil, fmt.Errorf("region %08x+%d: %w", base, size, ErrUnmapped)
	}
	return b.oam[off : int(off)+size], nil
}

// OAM returns the raw object attribute memory; for renderer use only.
func (b *Bus) OAM() []byte { return b.oam[:] }

// --- Save/Load state ---

func (b *Bus) SaveState() []byte {
	return append([]byte(nil), b.oam[:]...)
}

func (b *Bus) LoadState(data []byte) {
	copy(b.oam[:], data)
}
