package emu

import "github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"

// Config contains settings that affect the sprite machine.
type Config struct {
	Base     uint32 // address of the attribute table
	Capacity int    // hardware slots behind Base
	Sprites  int    // sprites animated by the demo scene
	Seed     int64  // demo scene RNG seed
	Trace    bool   // log every commit
}

// Defaults fills missing fields with the hardware values.
func (c *Config) Defaults() {
	if c.Base == 0 {
		c.Base = oam.Base
	}
	if c.Capacity <= 0 {
		c.Capacity = oam.MaxSprites
	}
	if c.Sprites <= 0 {
		c.Sprites = 24
	}
	if c.Sprites > c.Capacity {
		c.Sprites = c.Capacity
	}
	if c.Seed == 0 {
		c.Seed = 1
	}
}
