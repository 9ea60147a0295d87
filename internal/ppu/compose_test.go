package ppu

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
)

type mockOAM map[uint32]uint16

func (m mockOAM) Read16(addr uint32) uint16 { return m[addr] }

func (m mockOAM) put(slot int, s oam.Sprite) {
	w := s.Words()
	base := uint32(oam.Base + slot*oam.SlotSize)
	m[base], m[base+2], m[base+4] = w[0], w[1], w[2]
}

func TestScanObjectsSkipsHidden(t *testing.T) {
	mem := mockOAM{}
	a := oam.Setup(oam.ShapeSquare, oam.SizeSmall, 0, 0, false, 20, 20, 0)
	b := a
	b.Hide()
	mem.put(0, a)
	mem.put(1, b)
	mem.put(2, a)
	objs := ScanObjects(mem, oam.Base, 3)
	if len(objs) != 2 || objs[0].Index != 0 || objs[1].Index != 2 {
		t.Fatalf("unexpected objects: %+v", objs)
	}
}

func TestComposeSpriteLineFootprint(t *testing.T) {
	s := oam.Setup(oam.ShapeWide, oam.SizeSmall, 0, 4, false, 40, 30, 0) // 16x8 at (32,26)
	line := ComposeSpriteLine([]Object{{Index: 0, Sprite: s}}, 26)
	if line[31].Index != -1 || line[32].Index != 0 || line[47].Index != 0 || line[48].Index != -1 {
		t.Fatalf("unexpected horizontal extent")
	}
	if !line[32].Edge || line[32].Palette != 4 {
		t.Fatalf("expected edge pixel with palette 4: %+v", line[32])
	}
	if out := ComposeSpriteLine([]Object{{Index: 0, Sprite: s}}, 34); out[40].Index != -1 {
		t.Fatalf("line 34 is below the sprite")
	}
}

func TestComposeSpriteLinePriority(t *testing.T) {
	back := oam.Setup(oam.ShapeSquare, oam.SizeSmall, 0, 1, false, 20, 20, 2)
	front := oam.Setup(oam.ShapeSquare, oam.SizeSmall, 0, 2, false, 20, 20, 1)
	// Lower priority value wins regardless of OAM order
	line := ComposeSpriteLine([]Object{{Index: 0, Sprite: back}, {Index: 1, Sprite: front}}, 20)
	if line[20].Index != 1 {
		t.Fatalf("expected priority 1 object to win, got index %d", line[20].Index)
	}
	// Same priority: lower OAM index wins
	line = ComposeSpriteLine([]Object{{Index: 5, Sprite: front}, {Index: 3, Sprite: front}}, 20)
	if line[20].Index != 3 {
		t.Fatalf("expected lower OAM index to win, got %d", line[20].Index)
	}
}

func TestComposeSpriteLineWraps(t *testing.T) {
	// Centre (2, 2) puts the top-left at (-6,-6) = (506, 250)
	s := oam.Setup(oam.ShapeSquare, oam.SizeNormal, 0, 0, false, 2, 2, 0)
	line := ComposeSpriteLine([]Object{{Index: 0, Sprite: s}}, 0)
	if line[0].Index != 0 || line[9].Index != 0 || line[10].Index != -1 {
		t.Fatalf("expected wrapped sprite to cover x 0..9 on line 0")
	}
	if out := ComposeSpriteLine([]Object{{Index: 0, Sprite: s}}, 10); out[0].Index != -1 {
		t.Fatalf("line 10 is past the wrapped sprite")
	}
}

func TestRendererDrawsBankColour(t *testing.T) {
	mem := mockOAM{}
	mem.put(0, oam.Setup(oam.ShapeSquare, oam.SizeNormal, 0, 6, false, 100, 80, 0))
	r := NewRenderer()
	r.Render(mem, oam.Base, 1)
	fb := r.Framebuffer()
	at := func(x, y int) []byte { i := (y*oam.ScreenWidth + x) * 4; return fb[i : i+4] }
	want := bankColors[6]
	if px := at(100, 80); px[0] != want.R || px[1] != want.G || px[2] != want.B {
		t.Fatalf("inside pixel got %v want %v", px, want)
	}
	if px := at(92, 72); px[0] != edgeColour.R || px[1] != edgeColour.G || px[2] != edgeColour.B {
		t.Fatalf("corner pixel should be edge colour, got %v", px)
	}
	if px := at(0, 0); px[0] != backdrop.R || px[1] != backdrop.G || px[2] != backdrop.B {
		t.Fatalf("empty pixel should be backdrop, got %v", px)
	}
}
