package emu

import (
	"bytes"
	"encoding/gob"
	"fmt"
	"log"
	"os"

	"github.com/cespare/xxhash"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/bus"
	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/ppu"
)

// Scene fills the shadow buffer once per frame and returns how many
// leading records are in use.
type Scene interface {
	Update(frame uint64, shadow []oam.Sprite) int
}

// StateSaver is implemented by scenes that keep state of their own, so a
// loaded machine state does not get overwritten on the next frame.
type StateSaver interface {
	SaveState() []byte
	LoadState(data []byte) error
}

// Machine owns the shadow buffer and plays the part of the frame scheduler:
// the scene mutates the shadow copy, the machine waits for VBlank, commits
// and renders a preview of the live table.
type Machine struct {
	cfg    Config
	bus    *bus.Bus
	ppu    *ppu.PPU
	table  *oam.Table
	render *ppu.Renderer

	scene  Scene
	shadow []oam.Sprite
	count  int // records committed last frame
	frame  uint64
}

func New(cfg Config, scene Scene) (*Machine, error) {
	cfg.Defaults()
	m := &Machine{
		cfg:    cfg,
		bus:    bus.New(),
		render: ppu.NewRenderer(),
		scene:  scene,
		shadow: make([]oam.Sprite, cfg.Capacity),
	}
	m.ppu = ppu.New(nil)
	if err := m.reset(); err != nil {
		return nil, err
	}
	return m, nil
}

func (m *Machine) reset() error {
	region, err := m.bus.Region(m.cfg.Base, m.cfg.Capacity*oam.SlotSize)
	if err != nil {
		return fmt.Errorf("map attribute table: %w", err)
	}
	table, err := oam.NewTable(region, m.cfg.Capacity)
	if err != nil {
		return err
	}
	table.Initialize()
	m.table = table
	oam.HideAll(m.shadow)
	m.count = 0
	return nil
}

// Reset re-initializes the table and clears the shadow buffer.
func (m *Machine) Reset() error {
	if err := m.reset(); err != nil {
		return err
	}
	m.frame = 0
	return nil
}

// StepFrame runs one frame: scene update, wait for VBlank, commit, render.
func (m *Machine) StepFrame() {
	n := 0
	if m.scene != nil {
		n = m.scene.Update(m.frame, m.shadow)
	}
	commitN := n
	if n < m.count {
		// Records the scene dropped still sit in the live table.
		oam.HideAll(m.shadow[n:m.count])
		commitN = m.count
	}

	m.ppu.RunToVBlank()
	m.table.Commit(m.shadow, commitN)
	m.count = n
	m.frame++
	if m.cfg.Trace {
		log.Printf("commit: frame=%d count=%d vcount=%d digest=%016x", m.frame, commitN, m.ppu.VCount(), m.TableDigest())
	}

	m.render.Render(m.bus, m.cfg.Base, m.cfg.Capacity)
}

func (m *Machine) Frame() uint64 { return m.frame }

// Framebuffer returns the RGBA 240x160 preview of the live table.
func (m *Machine) Framebuffer() []byte { return m.render.Framebuffer() }

// Table exposes the live attribute table.
func (m *Machine) Table() *oam.Table { return m.table }

// Shadow exposes the shadow buffer; edits show up on the next StepFrame.
func (m *Machine) Shadow() []oam.Sprite { return m.shadow }

func (m *Machine) Scene() Scene { return m.scene }

// TableDigest hashes the live table, slot stride included.
func (m *Machine) TableDigest() uint64 { return xxhash.Sum64(m.table.Bytes()) }

// --- Save/Load state ---
type machineState struct {
	Bus    []byte
	PPU    []byte
	Shadow [][3]uint16
	Count  int
	Frame  uint64
	Scene  []byte
}

func (m *Machine) SaveState() []byte {
	s := machineState{
		Bus:    m.bus.SaveState(),
		PPU:    m.ppu.SaveState(),
		Shadow: make([][3]uint16, len(m.shadow)),
		Count:  m.count,
		Frame:  m.frame,
	}
	for i := range m.shadow {
		s.Shadow[i] = m.shadow[i].Words()
	}
	if ss, ok := m.scene.(StateSaver); ok {
		s.Scene = ss.SaveState()
	}
	var buf bytes.Buffer
	_ = gob.NewEncoder(&buf).Encode(s)
	return buf.Bytes()
}

func (m *Machine) LoadState(data []byte) error {
	var s machineState
	dec := gob.NewDecoder(bytes.NewReader(data))
	if err := dec.Decode(&s); err != nil {
		return fmt.Errorf("decode state: %w", err)
	}
	if len(s.Shadow) != len(m.shadow) {
		return fmt.Errorf("state holds %d slots, machine has %d", len(s.Shadow), len(m.shadow))
	}
	if ss, ok := m.scene.(StateSaver); ok && len(s.Scene) > 0 {
		if err := ss.LoadState(s.Scene); err != nil {
			return fmt.Errorf("scene state: %w", err)
		}
	}
	m.bus.LoadState(s.Bus)
	m.ppu.LoadState(s.PPU)
	for i, w := range s.Shadow {
		m.shadow[i] = oam.FromWords(w[0], w[1], w[2])
	}
	m.count = s.Count
	m.frame = s.Frame
	m.render.Render(m.bus, m.cfg.Base, m.cfg.Capacity)
	return nil
}

func (m *Machine) SaveStateToFile(path string) error {
	return os.WriteFile(path, m.SaveState(), 0644)
}

func (m *Machine) LoadStateFromFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	return m.LoadState(data)
}
