//go:build !tinygo

package hal

import (
	"testing"

	"github.com/gdamore/tcell/v2"
)

func TestTermRendererHalfBlocks(t *testing.T) {
	screen := tcell.NewSimulationScreen("UTF-8")
	if err := screen.Init(); err != nil {
		t.Fatalf("Init: %v", err)
	}
	defer screen.Fini()
	screen.SetSize(2, 1)

	fb := newHostFramebuffer(2, 2)
	fb.ClearRGB(0, 0, 0xFF)
	buf := fb.Buffer()
	red := rgb565(0xFF, 0, 0)
	buf[0] = byte(red)
	buf[1] = byte(red >> 8)

	r := newTermRenderer(screen, fb)
	r.draw()
	if mainc, _, _, _ := screen.GetContent(0, 0); mainc == '▀' {
		t.Fatal("expected nothing drawn before the first present")
	}

	if err := fb.Present(); err != nil {
		t.Fatalf("Present: %v", err)
	}
	r.draw()

	mainc, _, style, _ := screen.GetContent(0, 0)
	if mainc != '▀' {
		t.Fatalf("expected half block, got %q", mainc)
	}
	fg, bg, _ := style.Decompose()
	if fr, fg2, fb2 := fg.RGB(); fr != 0xFF || fg2 != 0 || fb2 != 0 {
		t.Fatalf("expected red top pixel, got %d %d %d", fr, fg2, fb2)
	}
	if br, bg2, bb := bg.RGB(); br != 0 || bg2 != 0 || bb != 0xFF {
		t.Fatalf("expected blue bottom pixel, got %d %d %d", br, bg2, bb)
	}
}

func TestTermKey(t *testing.T) {
	cases := []struct {
		ev   *tcell.EventKey
		want KeyCode
	}{
		{tcell.NewEventKey(tcell.KeyUp, 0, tcell.ModNone), KeyUp},
		{tcell.NewEventKey(tcell.KeyDown, 0, tcell.ModNone), KeyDown},
		{tcell.NewEventKey(tcell.KeyEnter, 0, tcell.ModNone), KeyEnter},
		{tcell.NewEventKey(tcell.KeyRune, ' ', tcell.ModNone), KeyEnter},
		{tcell.NewEventKey(tcell.KeyRune, 'q', tcell.ModNone), KeyEscape},
	}
	for _, c := range cases {
		got, ok := termKey(c.ev)
		if !ok || got != c.want {
			t.Fatalf("expected %s, got %s (ok=%v)", c.want, got, ok)
		}
	}
	if _, ok := termKey(tcell.NewEventKey(tcell.KeyRune, 'x', tcell.ModNone)); ok {
		t.Fatal("expected unmapped rune to be ignored")
	}
}
