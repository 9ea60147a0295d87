package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/FabianRolfMatthiasNoll/gbasprites/internal/oam"
)

func TestDumpSkipsHiddenUnlessAll(t *testing.T) {
	shown := oam.Setup(oam.ShapeWide, oam.SizeBig, 7, 3, false, 100, 50, 1)
	hidden := shown
	hidden.Hide()

	var buf bytes.Buffer
	if err := dump(&buf, []oam.Sprite{shown, hidden}, false); err != nil {
		t.Fatalf("dump: %v", err)
	}
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	if len(lines) != 2 {
		t.Fatalf("expected header + 1 row, got %d lines:\n%s", len(lines), buf.String())
	}
	if !strings.Contains(lines[1], "32x16") || !strings.Contains(lines[1], "wide") {
		t.Fatalf("row missing geometry: %q", lines[1])
	}

	buf.Reset()
	if err := dump(&buf, []oam.Sprite{shown, hidden}, true); err != nil {
		t.Fatalf("dump: %v", err)
	}
	if !strings.Contains(buf.String(), "hidden") {
		t.Fatalf("expected hidden row with -all:\n%s", buf.String())
	}
}
