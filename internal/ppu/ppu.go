package ppu

import (
	"bytes"
	"encoding/gob"
)

// InterruptRequester is a callback signature to request IF bits (0:VBlank, 1:HBlank, 2:VCount).
type InterruptRequester func(bit int)

// Display timing, in CPU cycles.
const (
	CyclesPerLine = 1232
	HDrawCycles   = 960
	VisibleLines  = 160
	TotalLines    = 228
	CyclesFrame   = CyclesPerLine * TotalLines
)

// DISPSTAT bits
const (
	statVBlank      = 1 << 0
	statHBlank      = 1 << 1
	statVCount      = 1 << 2
	statVBlankIRQ   = 1 << 3
	statHBlankIRQ   = 1 << 4
	statVCountIRQ   = 1 << 5
	statWritableLow = statVBlankIRQ | statHBlankIRQ | statVCountIRQ
)

// PPU models the display timing the sprite layer depends on: VCOUNT,
// DISPSTAT and the VBlank interval during which OAM may be rewritten.
type PPU struct {
	dispstat uint16 // 0x04000004 (bits 8-15 hold the VCount setting)
	vcount   int    // 0x04000006
	dot      int    // cycles within current line [0..1231]

	req InterruptRequester

	frames uint64
}

func New(req InterruptRequester) *PPU {
	return &PPU{req: req}
}

// ReadDISPSTAT returns the status register.
func (p *PPU) ReadDISPSTAT() uint16 { return p.dispstat }

// WriteDISPSTAT updates the IRQ enables and the VCount setting; the status
// flags are read-only.
func (p *PPU) WriteDISPSTAT(value uint16) {
	p.dispstat = (p.dispstat & (statVBlank | statHBlank | statVCount)) |
		(value & (statWritableLow | 0xFF00))
	p.updateVCount()
}

func (p *PPU) VCount() int { return p.vcount }

// Frames returns the number of VBlank intervals entered so far.
func (p *PPU) Frames() uint64 { return p.frames }

// InVBlank reports whether the display is between frames, the only time OAM
// can be rewritten without tearing.
func (p *PPU) InVBlank() bool { return p.dispstat&statVBlank != 0 }

// Tick advances PPU state by the given number of cycles.
func (p *PPU) Tick(cycles int) {
	for i := 0; i < cycles; i++ {
		p.dot++
		if p.dot == HDrawCycles {
			p.setFlag(statHBlank, true)
			if p.dispstat&statHBlankIRQ != 0 {
				p.request(1)
			}
		}
		if p.dot < CyclesPerLine {
			continue
		}
		p.dot = 0
		p.setFlag(statHBlank, false)
		p.vcount++
		switch p.vcount {
		case VisibleLines:
			p.frames++
			p.setFlag(statVBlank, true)
			if p.dispstat&statVBlankIRQ != 0 {
				p.request(0)
			}
		case TotalLines - 1:
			// flag drops on the last line
			p.setFlag(statVBlank, false)
		case TotalLines:
			p.vcount = 0
		}
		p.updateVCount()
	}
}

// RunToVBlank ticks until the next VBlank starts and returns the cycles spent.
func (p *PPU) RunToVBlank() int {
	n := 0
	for {
		wasIn := p.InVBlank()
		p.Tick(1)
		n++
		if !wasIn && p.InVBlank() {
			return n
		}
	}
}

func (p *PPU) setFlag(bit uint16, on bool) {
	if on {
		p.dispstat |= bit
	} else {
		p.dispstat &^= bit
	}
}

func (p *PPU) updateVCount() {
	match := p.vcount == int(p.dispstat>>8)
	was := p.dispstat&statVCount != 0
	p.setFlag(statVCount, match)
	if match && !was && p.dispstat&statVCountIRQ != 0 {
		p.request(2)
	}
}

func (p *PPU) request(bit int) {
	if p.req != nil {
		p.req(bit)
	}
}

// --- Save/Load state ---
type ppuState struct {
	DISPSTAT uint16
	VCount   int
	Dot      int
	Frames   uint64
}

func (p *PPU) SaveState() []byte {
	var buf bytes.Buffer
	enc := gob.NewEncoder(&buf)
	_ = enc.Encode(ppuState{DISPSTAT: p.dispstat, VCount: p.vcount, Dot: p.dot, Frames: p.frames})
	return buf.Bytes()
}

func (p *PPU) LoadState(data []byte) {
	var s ppuState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return
	}
	p.dispstat, p.vcount, p.dot, p.frames = s.DISPSTAT, s.VCount, s.Dot, s.Frames
}
