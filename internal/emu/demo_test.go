package emu

import (
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
)

func TestDemoUpdateKeepsActorsOnScreen(t *testing.T) {
	d := NewDemo(20, 3)
	shadow := make([]oam.Sprite, oam.MaxSprites)
	for f := uint64(0); f < 600; f++ {
		if n := d.Update(f, shadow); n != 20 {
			t.Fatalf("frame %d: got %d sprites want 20", f, n)
		}
	}
	for i := 0; i < 20; i++ {
		a := d.actors[i]
		if a.x < -64 || a.x > oam.ScreenWidth+64 || a.y < -64 || a.y > oam.ScreenHeight+64 {
			t.Fatalf("actor %d escaped to (%d,%d)", i, a.x, a.y)
		}
	}
}

func TestDemoControls(t *testing.T) {
	d := NewDemo(4, 1)
	shadow := make([]oam.Sprite, 8)
	d.TogglePause()
	d.Update(0, shadow)

	d.ToggleHidden()
	d.Update(1, shadow)
	if !shadow[0].Hidden() {
		t.Fatalf("selected sprite should be hidden")
	}
	d.ToggleHidden()
	d.Update(2, shadow)
	if shadow[0].Hidden() {
		t.Fatalf("selected sprite should be shown again")
	}

	d.actors[0].double = false
	d.ToggleDoubleSize()
	d.Update(3, shadow)
	if !shadow[0].DoubleSize() {
		t.Fatalf("selected sprite should be double-size")
	}
	w, h := shadow[0].Dimensions()
	bw, bh := oam.Footprint(d.actors[0].shape, d.actors[0].size)
	if w != 2*bw || h != 2*bh {
		t.Fatalf("double-size footprint got %dx%d", w, h)
	}
	x, y := shadow[0].TopLeft()
	if x != (d.actors[0].x-w/2)&0x1FF || y != (d.actors[0].y-h/2)&0xFF {
		t.Fatalf("position not re-derived from doubled footprint")
	}

	d.SelectNext()
	if d.Selected() != 1 {
		t.Fatalf("selected got %d want 1", d.Selected())
	}
	d.CyclePalette()
	d.CyclePriority()
	d.Update(4, shadow)
	if shadow[1].Palette() != (1+1)%16 || shadow[1].Priority() != (d.actors[1].prio) {
		t.Fatalf("palette/priority controls not applied")
	}

	d.SetActive(2)
	if n := d.Update(5, shadow); n != 2 {
		t.Fatalf("active got %d want 2", n)
	}
	d.SetActive(99)
	if d.Active() != 4 {
		t.Fatalf("active should clamp to actor count, got %d", d.Active())
	}
}
