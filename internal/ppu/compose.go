package ppu

import "github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"

// oamReader is the view of object attribute memory the composer needs.
type oamReader interface {
	Read16(addr uint32) uint16
}

// Object is a decoded OAM entry that the hardware would draw.
type Object struct {
	Index  int
	Sprite oam.Sprite
}

// Pixel records which object owns a screen pixel after priority
// resolution. Index is -1 where no object covers the pixel.
type Pixel struct {
	Index    int
	Palette  byte
	Priority byte
	EightBPP bool
	Blend    oam.BlendMode
	Edge     bool // on the footprint border
}

// ScanObjects decodes the first count slots and returns the shown ones in
// OAM order. Object-window sprites are left out: they mask, not draw.
func ScanObjects(mem oamReader, base uint32, count int) []Object {
	list := make([]Object, 0, count)
	for i := 0; i < count; i++ {
		addr := base + uint32(i*oam.SlotSize)
		s := oam.FromWords(mem.Read16(addr), mem.Read16(addr+2), mem.Read16(addr+4))
		if s.Hidden() || s.Shape() > oam.ShapeTall || s.BlendMode() == oam.BlendWindow {
			continue
		}
		list = append(list, Object{Index: i, Sprite: s})
	}
	return list
}

// ComposeSpriteLine resolves object ownership for one scanline. Lower
// priority value wins; on a tie the lower OAM index wins. Footprints wrap
// at 512 horizontally and 256 vertically like the position fields.
func ComposeSpriteLine(objs []Object, line int) [oam.ScreenWidth]Pixel {
	var out [oam.ScreenWidth]Pixel
	for x := range out {
		out[x].Index = -1
	}
	for _, o := range objs {
		s := o.Sprite
		left, top := s.TopLeft()
		w, h := s.Dimensions()
		dy := (line - top) & 0xFF
		if dy >= h {
			continue
		}
		prio := byte(s.Priority())
		for x := 0; x < oam.ScreenWidth; x++ {
			dx := (x - left) & 0x1FF
			if dx >= w {
				continue
			}
			cur := &out[x]
			if cur.Index >= 0 && (cur.Priority < prio || (cur.Priority == prio && cur.Index < o.Index)) {
				continue
			}
			*cur = Pixel{
				Index:    o.Index,
				Palette:  byte(s.Palette()),
				Priority: prio,
				EightBPP: s.EightBPP(),
				Blend:    s.BlendMode(),
				Edge:     dx == 0 || dy == 0 || dx == w-1 || dy == h-1,
			}
		}
	}
	return out
}
