package main

import (
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"golang.org/x/image/draw"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/ui"
)

type CLIFlags struct {
	Scale   int
	Title   string
	Trace   bool
	Sprites int
	Seed    int64
	Load    string // start from a saved state

	// headless
	Headless bool
	Frames   int
	PNGOut   string
	SaveOut  string // write the final machine state
	Expect   string // expected table digest (xxhash64 hex)
}

func parseFlags() CLIFlags {
	var f CLIFlags
	flag.IntVar(&f.Scale, "scale", 3, "window scale (also applied to -outpng)")
	flag.StringVar(&f.Title, "title", "oamview", "window title")
	flag.BoolVar(&f.Trace, "trace", false, "log every commit")
	flag.IntVar(&f.Sprites, "sprites", 24, "sprites animated by the demo scene")
	flag.Int64Var(&f.Seed, "seed", 1, "demo scene seed")
	flag.StringVar(&f.Load, "load", "", "load machine state from path before running")

	// headless options
	flag.BoolVar(&f.Headless, "headless", false, "run without a window")
	flag.IntVar(&f.Frames, "frames", 300, "frames to run in headless mode")
	flag.StringVar(&f.PNGOut, "outpng", "", "write last preview frame to PNG at path")
	flag.StringVar(&f.SaveOut, "outstate", "", "write final machine state to path")
	flag.StringVar(&f.Expect, "expect", "", "assert attribute table digest (hex)")
	flag.Parse()
	return f
}

func runHeadless(m *emu.Machine, f CLIFlags) error {
	frames := f.Frames
	if frames <= 0 {
		frames = 1
	}

	start := time.Now()
	for i := 0; i < frames; i++ {
		m.StepFrame()
	}
	dur := time.Since(start)

	digest := m.TableDigest()
	fps := float64(frames) / dur.Seconds()
	log.Printf("headless: frames=%d elapsed=%s fps=%.2f oam_xxh64=%016x",
		frames, dur.Truncate(time.Millisecond), fps, digest)

	if f.PNGOut != "" {
		if err := saveFramePNG(m.Framebuffer(), oam.ScreenWidth, oam.ScreenHeight, f.Scale, f.PNGOut); err != nil {
			return fmt.Errorf("write PNG: %w", err)
		}
		log.Printf("wrote %s", f.PNGOut)
	}
	if f.SaveOut != "" {
		if err := m.SaveStateToFile(f.SaveOut); err != nil {
			return fmt.Errorf("write state: %w", err)
		}
		log.Printf("wrote %s", f.SaveOut)
	}

	if f.Expect != "" {
		// allow with/without 0x, upper/lowercase
		want, err := strconv.ParseUint(strings.TrimPrefix(strings.ToLower(f.Expect), "0x"), 16, 64)
		if err != nil {
			return fmt.Errorf("parse -expect: %w", err)
		}
		if digest != want {
			return fmt.Errorf("digest mismatch: got %016x, want %016x", digest, want)
		}
	}
	return nil
}

func saveFramePNG(pix []byte, w, h, scale int, path string) error {
	src := &image.RGBA{
		Pix:    make([]byte, len(pix)),
		Stride: 4 * w,
		Rect:   image.Rect(0, 0, w, h),
	}
	copy(src.Pix, pix)
	var img image.Image = src
	if scale > 1 {
		dst := image.NewRGBA(image.Rect(0, 0, w*scale, h*scale))
		draw.NearestNeighbor.Scale(dst, dst.Bounds(), src, src.Bounds(), draw.Src, nil)
		img = dst
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}

func main() {
	f := parseFlags()

	cfg := emu.Config{Sprites: f.Sprites, Seed: f.Seed, Trace: f.Trace}
	cfg.Defaults()
	m, err := emu.New(cfg, emu.NewDemo(cfg.Sprites, cfg.Seed))
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	log.Printf("oam: base=%08x slots=%d sprites=%d", cfg.Base, cfg.Capacity, cfg.Sprites)

	if f.Load != "" {
		if err := m.LoadStateFromFile(f.Load); err != nil {
			log.Fatalf("load state: %v", err)
		}
		log.Printf("loaded %s (frame %d)", f.Load, m.Frame())
	}

	if f.Headless {
		if err := runHeadless(m, f); err != nil {
			log.Fatal(err)
		}
		return
	}

	app := ui.NewApp(ui.Config{Title: f.Title, Scale: f.Scale, ShowHUD: true}, m)
	if err := app.Run(); err != nil {
		log.Fatal(err)
	}
}
