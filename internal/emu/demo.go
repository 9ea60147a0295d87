package emu

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"math/rand"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
)

type actor struct {
	shape   oam.Shape
	size    oam.Size
	x, y    int
	vx, vy  int
	tile    int
	palette int
	prio    int
	double  bool
	hidden  bool
	built   bool
}

// Demo bounces a set of sprites of every shape and size around the screen.
// It is also the target of the interactive controls in the ui.
type Demo struct {
	actors   []actor
	selected int
	paused   bool
	active   int
}

// NewDemo creates n actors from seed.
func NewDemo(n int, seed int64) *Demo {
	r := rand.New(rand.NewSource(seed))
	d := &Demo{actors: make([]actor, n), active: n}
	for i := range d.actors {
		a := &d.actors[i]
		a.shape = oam.Shape(r.Intn(3))
		a.size = oam.Size(r.Intn(3))
		a.x = 16 + r.Intn(oam.ScreenWidth-32)
		a.y = 16 + r.Intn(oam.ScreenHeight-32)
		for a.vx == 0 && a.vy == 0 {
			a.vx, a.vy = r.Intn(5)-2, r.Intn(5)-2
		}
		a.tile = r.Intn(64) * 4
		a.palette = i % 16
		a.prio = r.Intn(4)
		a.double = r.Intn(5) == 0
	}
	return d
}

// Update moves every actor and writes its record into shadow.
func (d *Demo) Update(frame uint64, shadow []oam.Sprite) int {
	n := d.active
	if n > len(shadow) {
		n = len(shadow)
	}
	for i := 0; i < n; i++ {
		a := &d.actors[i]
		s := &shadow[i]
		if !a.built {
			*s = oam.Setup(a.shape, a.size, a.tile, a.palette, false, a.x, a.y, a.prio)
			s.SetDoubleSize(a.double)
			a.built = true
		}
		if !d.paused {
			d.move(a, s)
		}
		// animate through a four tile strip
		s.SetTile(a.tile + int(frame/8)%4)
		s.SetPalette(a.palette)
		s.SetPriority(a.prio)
		if a.hidden {
			s.Hide()
		} else if s.Hidden() {
			s.Show()
			s.SetDoubleSize(a.double)
		}
		s.SetPosition(a.x, a.y)
	}
	return n
}

func (d *Demo) move(a *actor, s *oam.Sprite) {
	w, h := s.Dimensions()
	a.x += a.vx
	a.y += a.vy
	switch {
	case a.x-w/2 < 0:
		a.vx = abs(a.vx)
	case a.x+w/2 > oam.ScreenWidth:
		a.vx = -abs(a.vx)
	}
	switch {
	case a.y-h/2 < 0:
		a.vy = abs(a.vy)
	case a.y+h/2 > oam.ScreenHeight:
		a.vy = -abs(a.vy)
	}
}

// Selected returns the index of the actor the controls act on.
func (d *Demo) Selected() int { return d.selected }

// Active returns the number of sprites submitted per frame.
func (d *Demo) Active() int { return d.active }

// SetActive changes how many sprites are submitted; lowering it exercises
// the hidden-tail commit path.
func (d *Demo) SetActive(n int) {
	if n < 0 {
		n = 0
	}
	if n > len(d.actors) {
		n = len(d.actors)
	}
	d.active = n
	if d.selected >= n && n > 0 {
		d.selected = n - 1
	}
}

func (d *Demo) SelectNext() {
	if d.active > 0 {
		d.selected = (d.selected + 1) % d.active
	}
}

func (d *Demo) TogglePause() { d.paused = !d.paused }

func (d *Demo) ToggleHidden() {
	if len(d.actors) > 0 {
		d.actors[d.selected].hidden = !d.actors[d.selected].hidden
	}
}

func (d *Demo) ToggleDoubleSize() {
	if len(d.actors) == 0 {
		return
	}
	a := &d.actors[d.selected]
	a.double = !a.double
	a.built = false
}

// CycleSize steps the selected actor through the four size codes.
func (d *Demo) CycleSize() {
	if len(d.actors) == 0 {
		return
	}
	a := &d.actors[d.selected]
	a.size = (a.size + 1) % 4
	a.built = false
}

func (d *Demo) CyclePalette() {
	if len(d.actors) > 0 {
		a := &d.actors[d.selected]
		a.palette = (a.palette + 1) % 16
	}
}

func (d *Demo) CyclePriority() {
	if len(d.actors) > 0 {
		a := &d.actors[d.selected]
		a.prio = (a.prio + 1) % 4
	}
}

// Nudge moves the selected actor's centre.
func (d *Demo) Nudge(dx, dy int) {
	if len(d.actors) > 0 {
		a := &d.actors[d.selected]
		a.x += dx
		a.y += dy
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// --- Save/Load state ---
type actorState struct {
	Shape          oam.Shape
	Size           oam.Size
	X, Y, VX, VY   int
	Tile, Palette  int
	Prio           int
	Double, Hidden bool
	Built          bool
}

type demoState struct {
	Actors   []actorState
	Selected int
	Paused   bool
	Active   int
}

func (d *Demo) SaveState() []byte {
	s := demoState{Selected: d.selected, Paused: d.paused, Active: d.active}
	for _, a := range d.actors {
		s.Actors = append(s.Actors, actorState{
			Shape: a.shape, Size: a.size,
			X: a.x, Y: a.y, VX: a.vx, VY: a.vy,
			Tile: a.tile, Palette: a.palette, Prio: a.prio,
			Double: a.double, Hidden: a.hidden, Built: a.built,
		})
	}
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

func (d *Demo) LoadState(data []byte) error {
	var s demoState
	if err := gob.NewDecoder(bytes.NewReader(data)).Decode(&s); err != nil {
		return fmt.Errorf("decode demo state: %w", err)
	}
	if len(s.Actors) != len(d.actors) {
		return fmt.Errorf("state holds %d actors, demo has %d", len(s.Actors), len(d.actors))
	}
	for i, a := range s.Actors {
		d.actors[i] = actor{
			shape: a.Shape, size: a.Size,
			x: a.X, y: a.Y, vx: a.VX, vy: a.VY,
			tile: a.Tile, palette: a.Palette, prio: a.Prio,
			double: a.Double, hidden: a.Hidden, built: a.Built,
		}
	}
	d.selected, d.paused, d.active = s.Selected, s.Paused, s.Active
	return nil
}
