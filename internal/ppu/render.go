package ppu

import (
	"image/color"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
	"golang.org/x/image/colornames"
)

// bankColors gives each 4bpp palette bank a distinct preview colour.
var bankColors = [16]color.RGBA{
	colornames.Crimson, colornames.Darkorange, colornames.Gold, colornames.Yellowgreen,
	colornames.Seagreen, colornames.Turquoise, colornames.Deepskyblue, colornames.Royalblue,
	colornames.Slateblue, colornames.Mediumorchid, colornames.Hotpink, colornames.Sienna,
	colornames.Olive, colornames.Teal, colornames.Steelblue, colornames.Silver,
}

var (
	backdrop   = colornames.Darkslategray
	eightBPP   = colornames.Lavender
	edgeColour = colornames.White
)

// Renderer draws sprite footprints from OAM into an RGBA framebuffer. It is
// a preview: tiles are not fetched, each object is a filled box coloured by
// its palette bank.
type Renderer struct {
	fb []byte // RGBA 240x160*4
}

func NewRenderer() *Renderer {
	return &Renderer{fb: make([]byte, oam.ScreenWidth*oam.ScreenHeight*4)}
}

// Framebuffer returns the last rendered frame.
func (r *Renderer) Framebuffer() []byte { return r.fb }

// Render composes the first count OAM slots at base.
func (r *Renderer) Render(mem oamReader, base uint32, count int) {
	objs := ScanObjects(mem, base, count)
	for y := 0; y < oam.ScreenHeight; y++ {
		line := ComposeSpriteLine(objs, y)
		for x, px := range line {
			c := backdrop
			if px.Index >= 0 {
				c = pixelColour(px)
			}
			i := (y*oam.ScreenWidth + x) * 4
			r.fb[i+0] = c.R
			r.fb[i+1] = c.G
			r.fb[i+2] = c.B
			r.fb[i+3] = 0xFF
		}
	}
}

func pixelColour(px Pixel) color.RGBA {
	if px.Edge {
		return edgeColour
	}
	c := bankColors[px.Palette&0x0F]
	if px.EightBPP {
		c = eightBPP
	}
	if px.Blend == oam.BlendAlpha {
		c = mix(c, backdrop)
	}
	return c
}

func mix(a, b color.RGBA) color.RGBA {
	return color.RGBA{
		R: uint8((uint16(a.R) + uint16(b.R)) / 2),
		G: uint8((uint16(a.G) + uint16(b.G)) / 2),
		B: uint8((uint16(a.B) + uint16(b.B)) / 2),
		A: 0xFF,
	}
}
