package ppu

import (
	"testing"
)

func TestPPUHBlankWithinLine(t *testing.T) {
	p := New(nil)
	p.Tick(HDrawCycles - 1)
	if p.ReadDISPSTAT()&statHBlank != 0 {
		t.Fatalf("expected HDraw before cycle %d", HDrawCycles)
	}
	p.Tick(1)
	if p.ReadDISPSTAT()&statHBlank == 0 {
		t.Fatalf("expected HBlank at cycle %d", HDrawCycles)
	}
	// End of line -> next line, HBlank cleared
	p.Tick(CyclesPerLine - HDrawCycles)
	if p.VCount() != 1 {
		t.Fatalf("expected VCOUNT=1, got %d", p.VCount())
	}
	if p.ReadDISPSTAT()&statHBlank != 0 {
		t.Fatalf("expected HBlank cleared at new line")
	}
}

func TestPPUVBlankWindow(t *testing.T) {
	var got []int
	p := New(func(bit int) { got = append(got, bit) })
	p.WriteDISPSTAT(statVBlankIRQ)
	p.Tick(VisibleLines*CyclesPerLine - 1)
	if p.InVBlank() {
		t.Fatalf("expected visible area until line %d", VisibleLines)
	}
	p.Tick(1)
	if !p.InVBlank() {
		t.Fatalf("expected VBlank at line %d", VisibleLines)
	}
	if len(got) != 1 || got[0] != 0 {
		t.Fatalf("expected one VBlank IRQ, got %v", got)
	}
	if p.Frames() != 1 {
		t.Fatalf("expected frame count 1, got %d", p.Frames())
	}
	// VBlank flag drops on the last line, VCOUNT wraps after it
	p.Tick((TotalLines - 1 - VisibleLines) * CyclesPerLine)
	if p.InVBlank() {
		t.Fatalf("expected VBlank flag cleared on line %d", TotalLines-1)
	}
	p.Tick(CyclesPerLine)
	if p.VCount() != 0 {
		t.Fatalf("expected VCOUNT to wrap to 0, got %d", p.VCount())
	}
}

func TestPPUVCountMatch(t *testing.T) {
	var got []int
	p := New(func(bit int) { got = append(got, bit) })
	p.WriteDISPSTAT(statVCountIRQ | 2<<8)
	p.Tick(2 * CyclesPerLine)
	if p.ReadDISPSTAT()&statVCount == 0 {
		t.Fatalf("expected VCount flag at line 2")
	}
	if len(got) != 1 || got[0] != 2 {
		t.Fatalf("expected one VCount IRQ, got %v", got)
	}
	p.Tick(CyclesPerLine)
	if p.ReadDISPSTAT()&statVCount != 0 {
		t.Fatalf("expected VCount flag cleared at line 3")
	}
}

func TestPPURunToVBlank(t *testing.T) {
	p := New(nil)
	if n := p.RunToVBlank(); n != VisibleLines*CyclesPerLine {
		t.Fatalf("first VBlank after %d cycles, want %d", n, VisibleLines*CyclesPerLine)
	}
	if n := p.RunToVBlank(); n != CyclesFrame {
		t.Fatalf("next VBlank after %d cycles, want %d", n, CyclesFrame)
	}
}

func TestPPUSaveLoadState(t *testing.T) {
	p := New(nil)
	p.WriteDISPSTAT(statVBlankIRQ)
	p.Tick(12345)
	q := New(nil)
	q.LoadState(p.SaveState())
	if q.VCount() != p.VCount() || q.ReadDISPSTAT() != p.ReadDISPSTAT() {
		t.Fatalf("restored state differs")
	}
}
