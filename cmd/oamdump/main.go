package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/emu"
	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
)

var modeNames = map[oam.Mode]string{
	oam.ModeRegular:      "regular",
	oam.ModeAffine:       "affine",
	oam.ModeHidden:       "hidden",
	oam.ModeAffineDouble: "affine-2x",
}

func main() {
	statePath := flag.String("state", "", "machine state written by oamview -outstate or the menu")
	all := flag.Bool("all", false, "include hidden slots")
	shadow := flag.Bool("shadow", false, "dump the shadow buffer instead of the live table")
	flag.Parse()

	if *statePath == "" {
		log.Fatal("-state is required")
	}
	m, err := emu.New(emu.Config{}, nil)
	if err != nil {
		log.Fatalf("init: %v", err)
	}
	if err := m.LoadStateFromFile(*statePath); err != nil {
		log.Fatalf("load %s: %v", *statePath, err)
	}

	sprites := m.Table().Snapshot(m.Table().Capacity())
	if *shadow {
		sprites = m.Shadow()
	}
	fmt.Printf("frame %d, digest %016x\n", m.Frame(), m.TableDigest())
	if err := dump(os.Stdout, sprites, *all); err != nil {
		log.Fatal(err)
	}
}

func dump(w io.Writer, sprites []oam.Sprite, all bool) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "slot\tattr0\tattr1\tattr2\tmode\tshape\tsize\tdims\tx\ty\ttile\tpal\tprio")
	for i := range sprites {
		s := &sprites[i]
		if s.Hidden() && !all {
			continue
		}
		words := s.Words()
		dims := "-"
		if s.Shape() <= oam.ShapeTall {
			w, h := s.Dimensions()
			dims = fmt.Sprintf("%dx%d", w, h)
		}
		x, y := s.TopLeft()
		fmt.Fprintf(tw, "%d\t%04x\t%04x\t%04x\t%s\t%s\t%d\t%s\t%d\t%d\t%d\t%d\t%d\n",
			i, words[0], words[1], words[2], modeNames[s.Mode()], s.Shape(), s.Size(),
			dims, x, y, s.Tile(), s.Palette(), s.Priority())
	}
	return tw.Flush()
}
