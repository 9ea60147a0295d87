package ui

import (
	"fmt"
	"image"
	"image/png"
	"os"
	"time"

	"github.com/cespare/xxhash"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
)

type App struct {
	cfg    Config
	m      *emu.Machine
	demo   *emu.Demo // nil when the machine runs another scene
	tex    *ebiten.Image
	texSum uint64
	paused bool

	// overlay/menu
	showMenu    bool
	menuIdx     int
	currentSlot int
	toastMsg    string
	toastUntil  time.Time
}

func NewApp(cfg Config, m *emu.Machine) *App {
	cfg.Defaults()
	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(oam.ScreenWidth*cfg.Scale, oam.ScreenHeight*cfg.Scale)
	a := &App{cfg: cfg, m: m, showMenu: cfg.StartMenu}
	a.demo, _ = m.Scene().(*emu.Demo)
	return a
}

func (a *App) Run() error { return ebiten.RunGame(a) }

func (a *App) Update() error {
	// Toggle menu (Escape)
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		a.showMenu = !a.showMenu
		a.menuIdx = 0
	}
	if a.showMenu {
		return a.updateMenu()
	}

	// Pause toggle (P); frame-step when paused (N)
	if inpututil.IsKeyJustPressed(ebiten.KeyP) {
		a.paused = !a.paused
	}
	if a.paused && inpututil.IsKeyJustPressed(ebiten.KeyN) {
		a.m.StepFrame()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF12) {
		if name, err := a.saveScreenshot(); err == nil {
			a.toast("wrote " + name)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF1) {
		a.cfg.ShowHUD = !a.cfg.ShowHUD
	}

	if a.demo != nil {
		a.updateDemoControls()
	}
	if !a.paused {
		a.m.StepFrame()
	}
	return nil
}

func (a *App) updateDemoControls() {
	d := a.demo
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		d.SelectNext()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		d.TogglePause()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyH) {
		d.ToggleHidden()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyD) {
		d.ToggleDoubleSize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		d.CycleSize()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		d.CyclePalette()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		d.CyclePriority()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		d.SetActive(d.Active() + 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) {
		d.SetActive(d.Active() - 1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowRight) {
		d.Nudge(1, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowLeft) {
		d.Nudge(-1, 0)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowUp) {
		d.Nudge(0, -1)
	}
	if ebiten.IsKeyPressed(ebiten.KeyArrowDown) {
		d.Nudge(0, 1)
	}
}

func (a *App) Draw(screen *ebiten.Image) {
	if a.tex == nil {
		a.tex = ebiten.NewImage(oam.ScreenWidth, oam.ScreenHeight)
	}
	// skip the upload when the frame did not change
	fb := a.m.Framebuffer()
	if sum := xxhash.Sum64(fb); sum != a.texSum {
		a.tex.WritePixels(fb)
		a.texSum = sum
	}
	screen.DrawImage(a.tex, nil)

	if a.cfg.ShowHUD && a.demo != nil {
		i := a.demo.Selected()
		s := a.m.Table().Sprite(i)
		w, h := s.Dimensions()
		x, y := s.TopLeft()
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("#%d %s/%d %dx%d @%d,%d", i, s.Shape(), s.Size(), w, h, x, y), 2, 2)
		ebitenutil.DebugPrintAt(screen, fmt.Sprintf("f%d n=%d %016x", a.m.Frame(), a.demo.Active(), a.m.TableDigest()), 2, 16)
	}
	if a.showMenu {
		a.drawMenu(screen)
	}
	if a.toastMsg != "" && time.Now().Before(a.toastUntil) {
		ebitenutil.DebugPrintAt(screen, a.toastMsg, 2, oam.ScreenHeight-16)
	}
}

func (a *App) Layout(outW, outH int) (int, int) { return oam.ScreenWidth, oam.ScreenHeight }

func (a *App) toast(msg string) {
	a.toastMsg = msg
	a.toastUntil = time.Now().Add(2 * time.Second)
}

func (a *App) saveScreenshot() (string, error) {
	fb := a.m.Framebuffer()
	img := &image.RGBA{
		Pix:    make([]byte, len(fb)),
		Stride: 4 * oam.ScreenWidth,
		Rect:   image.Rect(0, 0, oam.ScreenWidth, oam.ScreenHeight),
	}
	copy(img.Pix, fb)
	ts := time.Now().Format("20060102_150405")
	name := fmt.Sprintf("screenshot_%s.png", ts)
	f, err := os.Create(name)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return name, png.Encode(f, img)
}
