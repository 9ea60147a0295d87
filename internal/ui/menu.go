package ui

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const slotCount = 4

var menuItems = []string{"Save state", "Load state", "Next slot", "Reset table", "Close"}

func (a *App) statePath(slot int) string {
	return filepath.Join(a.cfg.StateDir, fmt.Sprintf("slot%d.oamstate", slot))
}

func (a *App) updateMenu() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) && a.menuIdx > 0 {
		a.menuIdx--
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) && a.menuIdx < len(menuItems)-1 {
		a.menuIdx++
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyBackspace) {
		a.showMenu = false
		return nil
	}
	if !inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		return nil
	}
	switch a.menuIdx {
	case 0:
		if err := a.m.SaveStateToFile(a.statePath(a.currentSlot)); err != nil {
			a.toast("Save failed: " + err.Error())
		} else {
			a.toast(fmt.Sprintf("Saved slot %d", a.currentSlot+1))
		}
	case 1:
		if _, err := os.Stat(a.statePath(a.currentSlot)); err != nil {
			a.toast("Slot is empty")
		} else if err := a.m.LoadStateFromFile(a.statePath(a.currentSlot)); err != nil {
			a.toast("Load failed: " + err.Error())
		} else {
			a.toast(fmt.Sprintf("Loaded slot %d", a.currentSlot+1))
		}
	case 2:
		a.currentSlot = (a.currentSlot + 1) % slotCount
	case 3:
		if err := a.m.Reset(); err != nil {
			return err
		}
		a.toast("Table reset")
	case 4:
		a.showMenu = false
	}
	return nil
}

func (a *App) drawMenu(screen *ebiten.Image) {
	overlay := ebiten.NewImage(screen.Bounds().Dx(), screen.Bounds().Dy())
	overlay.Fill(color.RGBA{0, 0, 0, 160})
	screen.DrawImage(overlay, nil)
	ebitenutil.DebugPrintAt(screen, fmt.Sprintf("Menu (slot %d):", a.currentSlot+1), 10, 10)
	for i, s := range menuItems {
		prefix := "  "
		if i == a.menuIdx {
			prefix = "> "
		}
		ebitenutil.DebugPrintAt(screen, prefix+s, 10, 24+i*14)
	}
}
