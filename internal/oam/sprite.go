// Package oam encodes the Game Boy Advance object attribute records and
// publishes them into the hardware object attribute memory.
//
// A Sprite is the three 16-bit attribute words of one object, laid out
// exactly as the hardware reads them:
//
//	attr0: 0-7 Y, 8-9 object mode, 10-11 gfx mode, 12 mosaic, 13 8bpp, 14-15 shape
//	attr1: 0-8 X, 9-13 affine index (12 hflip, 13 vflip when regular), 14-15 size
//	attr2: 0-9 tile, 10-11 priority, 12-15 palette bank
//
// Setters only touch their own bit range. Sprites live in a caller-owned
// shadow buffer; only Table.Commit writes the live memory.
package oam

// ScreenWidth and ScreenHeight are the visible LCD size in pixels.
const (
	ScreenWidth  = 240
	ScreenHeight = 160
)

// attr0
const (
	a0YMask      = 0x00FF
	a0ModeShift  = 8
	a0ModeMask   = 0x0300
	a0GfxShift   = 10
	a0GfxMask    = 0x0C00
	a0Mosaic     = 1 << 12
	a0EightBPP   = 1 << 13
	a0ShapeShift = 14
	a0ShapeMask  = 0xC000
)

// attr1
const (
	a1XMask     = 0x01FF
	a1AffShift  = 9
	a1AffMask   = 0x3E00
	a1HFlip     = 1 << 12
	a1VFlip     = 1 << 13
	a1SizeShift = 14
	a1SizeMask  = 0xC000
)

// attr2
const (
	a2TileMask     = 0x03FF
	a2PrioShift    = 10
	a2PrioMask     = 0x0C00
	a2PaletteShift = 12
	a2PaletteMask  = 0xF000
)

// Field limits accepted by the setters.
const (
	MaxTile        = a2TileMask
	MaxPalette     = 15
	MaxPriority    = 3
	MaxAffineIndex = 31
)

// Mode is the object mode held in attr0 bits 8-9.
type Mode uint8

const (
	ModeRegular      Mode = 0
	ModeAffine       Mode = 1
	ModeHidden       Mode = 2
	ModeAffineDouble Mode = 3
)

// BlendMode is the graphics mode held in attr0 bits 10-11. It is passed
// through to the hardware untouched.
type BlendMode uint8

const (
	BlendNormal BlendMode = 0
	BlendAlpha  BlendMode = 1
	BlendWindow BlendMode = 2
)

// Sprite is one object attribute record. The zero value is a shown 8x8
// square at the top-left corner using tile 0.
type Sprite struct {
	attr [3]uint16
}

// Setup builds a fresh record. x and y are the sprite centre; the stored
// top-left corner is derived from the footprint of (shape, size).
func Setup(shape Shape, size Size, tile, palette int, eightBPP bool, x, y, priority int) Sprite {
	require(shape <= ShapeTall, "Setup", "prohibited shape %d", shape)
	require(size <= SizeHuge, "Setup", "invalid size %d", size)
	var s Sprite
	s.attr[0] = uint16(shape&3) << a0ShapeShift
	if eightBPP {
		s.attr[0] |= a0EightBPP
	}
	s.attr[1] = uint16(size&3) << a1SizeShift
	s.SetTile(tile)
	s.SetPalette(palette)
	s.SetPriority(priority)
	s.SetPosition(x, y)
	return s
}

// setBits overwrites the bits of mask in w with v (already shifted).
func setBits(w *uint16, v, mask uint16) {
	*w = *w&^mask | v&mask
}

// Shape returns the shape code.
func (s *Sprite) Shape() Shape { return Shape(s.attr[0] >> a0ShapeShift) }

// Size returns the size code.
func (s *Sprite) Size() Size { return Size(s.attr[1] >> a1SizeShift) }

// Mode returns the object mode.
func (s *Sprite) Mode() Mode { return Mode((s.attr[0] & a0ModeMask) >> a0ModeShift) }

func (s *Sprite) setMode(m Mode) {
	setBits(&s.attr[0], uint16(m)<<a0ModeShift, a0ModeMask)
}

// Dimensions returns the effective footprint: the geometry table entry for
// (shape, size), doubled on both axes in affine double-size mode.
func (s *Sprite) Dimensions() (w, h int) {
	w, h = Footprint(s.Shape(), s.Size())
	if s.Mode() == ModeAffineDouble {
		w, h = w*2, h*2
	}
	return w, h
}

// Tile returns the base tile index.
func (s *Sprite) Tile() int { return int(s.attr[2] & a2TileMask) }

// Priority returns the priority against backgrounds.
func (s *Sprite) Priority() int { return int(s.attr[2]&a2PrioMask) >> a2PrioShift }

// Palette returns the palette bank.
func (s *Sprite) Palette() int { return int(s.attr[2]&a2PaletteMask) >> a2PaletteShift }

// EightBPP reports whether the sprite uses 256-colour tiles.
func (s *Sprite) EightBPP() bool {
	return s.attr[0]&a0EightBPP != 0
}

// SetTile sets the base tile index (0..1023).
func (s *Sprite) SetTile(tile int) {
	require(tile >= 0 && tile <= MaxTile, "SetTile", "tile %d out of range", tile)
	setBits(&s.attr[2], uint16(tile), a2TileMask)
}

// SetPalette sets the palette bank (0..15). Ignored by the hardware for
// 8bpp sprites but still stored.
func (s *Sprite) SetPalette(palette int) {
	require(palette >= 0 && palette <= MaxPalette, "SetPalette", "palette %d out of range", palette)
	setBits(&s.attr[2], uint16(palette)<<a2PaletteShift, a2PaletteMask)
}

// SetPriority sets the priority against backgrounds (0 front .. 3 back).
func (s *Sprite) SetPriority(priority int) {
	require(priority >= 0 && priority <= MaxPriority, "SetPriority", "priority %d out of range", priority)
	setBits(&s.attr[2], uint16(priority)<<a2PrioShift, a2PrioMask)
}

// SetPosition places the sprite centre at (x, y). The footprint is read
// again on every call since shape, size or double-size may have changed.
// Coordinates wrap at the field width (X mod 512, Y mod 256).
func (s *Sprite) SetPosition(x, y int) {
	w, h := s.Dimensions()
	left, top := x-w/2, y-h/2
	setBits(&s.attr[1], uint16(left), a1XMask)
	setBits(&s.attr[0], uint16(top), a0YMask)
}

// TopLeft returns the raw position fields: X in 0..511 and Y in 0..255.
func (s *Sprite) TopLeft() (x, y int) {
	return int(s.attr[1] & a1XMask), int(s.attr[0] & a0YMask)
}

// Hide switches the sprite to hidden mode. Position, tile, palette,
// priority and footprint are kept so Show restores it. An affine
// double-size sprite loses its double-size mode: the hardware has no
// hidden variant of it.
func (s *Sprite) Hide() { s.setMode(ModeHidden) }

// Show turns a hidden sprite back into a regular one.
func (s *Sprite) Show() {
	if s.Mode() == ModeHidden {
		s.setMode(ModeRegular)
	}
}

// Hidden reports whether the hardware will skip the sprite.
func (s *Sprite) Hidden() bool { return s.Mode() == ModeHidden }

// DoubleSize reports whether the sprite is in affine double-size mode.
func (s *Sprite) DoubleSize() bool { return s.Mode() == ModeAffineDouble }

// SetDoubleSize switches between affine double-size and plain affine mode.
// Bits 12-13 of attr1 are the affine index from here on, not flips.
func (s *Sprite) SetDoubleSize(on bool) {
	if on {
		s.setMode(ModeAffineDouble)
	} else if s.Mode() == ModeAffineDouble {
		s.setMode(ModeAffine)
	}
}

// SetAffine enables (plain) affine mode, or returns to regular mode.
func (s *Sprite) SetAffine(on bool) {
	switch {
	case on && (s.Mode() == ModeRegular || s.Mode() == ModeHidden):
		s.setMode(ModeAffine)
	case !on && (s.Mode() == ModeAffine || s.Mode() == ModeAffineDouble):
		s.setMode(ModeRegular)
	}
}

// AffineIndex returns the affine matrix selector.
func (s *Sprite) AffineIndex() int { return int(s.attr[1]&a1AffMask) >> a1AffShift }

// SetAffineIndex selects one of the 32 affine matrices.
func (s *Sprite) SetAffineIndex(i int) {
	require(i >= 0 && i <= MaxAffineIndex, "SetAffineIndex", "index %d out of range", i)
	setBits(&s.attr[1], uint16(i)<<a1AffShift, a1AffMask)
}

// HorizontalFlip reads the horizontal flip bit of a regular sprite.
func (s *Sprite) HorizontalFlip() bool { return s.attr[1]&a1HFlip != 0 }

// VerticalFlip reads the vertical flip bit of a regular sprite.
func (s *Sprite) VerticalFlip() bool { return s.attr[1]&a1VFlip != 0 }

// SetHorizontalFlip mirrors a regular sprite horizontally.
func (s *Sprite) SetHorizontalFlip(on bool) {
	require(s.Mode() != ModeAffine && s.Mode() != ModeAffineDouble,
		"SetHorizontalFlip", "flip bits belong to the affine index in affine mode")
	setFlag(&s.attr[1], a1HFlip, on)
}

// SetVerticalFlip mirrors a regular sprite vertically.
func (s *Sprite) SetVerticalFlip(on bool) {
	require(s.Mode() != ModeAffine && s.Mode() != ModeAffineDouble,
		"SetVerticalFlip", "flip bits belong to the affine index in affine mode")
	setFlag(&s.attr[1], a1VFlip, on)
}

// Mosaic reports whether the mosaic effect applies.
func (s *Sprite) Mosaic() bool { return s.attr[0]&a0Mosaic != 0 }

// SetMosaic turns the mosaic effect on or off.
func (s *Sprite) SetMosaic(on bool) { setFlag(&s.attr[0], a0Mosaic, on) }

// BlendMode returns the graphics mode.
func (s *Sprite) BlendMode() BlendMode {
	return BlendMode((s.attr[0] & a0GfxMask) >> a0GfxShift)
}

// SetBlendMode sets the graphics mode. Mode 3 is prohibited.
func (s *Sprite) SetBlendMode(m BlendMode) {
	require(m <= BlendWindow, "SetBlendMode", "prohibited graphics mode %d", m)
	setBits(&s.attr[0], uint16(m)<<a0GfxShift, a0GfxMask)
}

func setFlag(w *uint16, bit uint16, on bool) {
	if on {
		*w |= bit
	} else {
		*w &^= bit
	}
}

// Words returns the three raw attribute words.
func (s *Sprite) Words() [3]uint16 { return s.attr }

// HideAll hides every sprite in sprites. Use it on the tail of a shadow
// buffer before committing fewer sprites than the previous frame.
func HideAll(sprites []Sprite) {
	for i := range sprites {
		sprites[i].Hide()
	}
}
