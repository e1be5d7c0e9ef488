package editor

import (
	"strings"
	"testing"

	"github.com/gdamore/tcell/v2"
)

func newTestScreen(t *testing.T, w, h int) tcell.SimulationScreen {
	t.Helper()
	s := tcell.NewSimulationScreen("UTF-8")
	if err := s.Init(); err != nil {
		t.Fatalf("init screen: %v", err)
	}
	t.Cleanup(s.Fini)
	s.SetSize(w, h)
	return s
}

func runeAt(s tcell.SimulationScreen, x, y int) rune {
	cells, w, _ := s.GetContents()
	cell := cells[y*w+x]
	if len(cell.Runes) == 0 {
		return ' '
	}
	return cell.Runes[0]
}

func rowText(s tcell.SimulationScreen, y int) string {
	_, w, _ := s.GetContents()
	var b strings.Builder
	for x := 0; x < w; x++ {
		b.WriteRune(runeAt(s, x, y))
	}
	return b.String()
}

func assertCursor(t *testing.T, s tcell.SimulationScreen, wantX, wantY int) {
	t.Helper()
	x, y, visible := s.GetCursor()
	if !visible {
		t.Fatalf("cursor not visible")
	}
	if x != wantX || y != wantY {
		t.Fatalf("cursor = (%d,%d), want (%d,%d)", x, y, wantX, wantY)
	}
}

func TestRenderBorderAndText(t *testing.T) {
	e := newTestEditor("ab\ncd")
	s := newTestScreen(t, 30, 6)

	e.Render(s)

	corners := []struct {
		x, y int
		want rune
	}{
		{0, 0, borderTopLeft},
		{29, 0, borderTopRight},
		{0, 5, borderBottomLeft},
		{29, 5, borderBottomRight},
		{0, 2, borderVertical},
		{29, 3, borderVertical},
		{1, 5, borderHorizontal},
	}
	for _, c := range corners {
		if got := runeAt(s, c.x, c.y); got != c.want {
			t.Fatalf("cell (%d,%d) = %q, want %q", c.x, c.y, got, c.want)
		}
	}
	if got := runeAt(s, 1, 1); got != 'a' {
		t.Fatalf("cell (1,1) = %q, want 'a'", got)
	}
	if got := runeAt(s, 2, 2); got != 'd' {
		t.Fatalf("cell (2,2) = %q, want 'd'", got)
	}
	assertCursor(t, s, 1, 1)
}

func TestRenderCursorOffsetByBorder(t *testing.T) {
	e := newTestEditor("ab\ncd")
	e.buf.SetCursor(4)
	s := newTestScreen(t, 30, 6)

	e.Render(s)
	assertCursor(t, s, 2, 2)
}

func TestRenderTextStyle(t *testing.T) {
	e := newTestEditor("abc")
	s := newTestScreen(t, 20, 4)

	e.Render(s)
	cells, w, _ := s.GetContents()
	fg, _, _ := cells[1*w+1].Style.Decompose()
	if fg != tcell.ColorYellow {
		t.Fatalf("text foreground = %v, want yellow", fg)
	}
}

func TestRenderTitleAndHint(t *testing.T) {
	e := newTestEditor("abc")
	e.SetFilename("notes.txt")
	s := newTestScreen(t, 40, 5)

	e.Render(s)
	if top := rowText(s, 0); !strings.Contains(top, " Text Editor: notes.txt ") {
		t.Fatalf("top row = %q, want title", top)
	}
	if bottom := rowText(s, 4); !strings.Contains(bottom, "ctrl+s save") || !strings.Contains(bottom, "esc cancel") {
		t.Fatalf("bottom row = %q, want key hint", bottom)
	}

	e.HandleKey(runeKey('x'))
	e.Render(s)
	if top := rowText(s, 0); !strings.Contains(top, "notes.txt*") {
		t.Fatalf("top row = %q, want dirty marker", top)
	}
}

func TestRenderTitleClippedOnNarrowScreen(t *testing.T) {
	e := newTestEditor("")
	e.SetFilename("a-rather-long-file-name.txt")
	s := newTestScreen(t, 12, 4)

	e.Render(s)
	if got := runeAt(s, 11, 0); got != borderTopRight {
		t.Fatalf("top right = %q, want %q", got, borderTopRight)
	}
}

func TestRenderScrollsVertically(t *testing.T) {
	e := newTestEditor("l0\nl1\nl2\nl3")
	e.buf.SetCursor(e.buf.Len())
	s := newTestScreen(t, 10, 4)

	e.Render(s)
	if got := runeAt(s, 2, 1); got != '2' {
		t.Fatalf("first visible row = %q, want line 2", got)
	}
	if got := runeAt(s, 2, 2); got != '3' {
		t.Fatalf("second visible row = %q, want line 3", got)
	}
	assertCursor(t, s, 3, 2)

	e.buf.SetCursor(0)
	e.Render(s)
	if got := runeAt(s, 2, 1); got != '0' {
		t.Fatalf("first visible row = %q, want line 0", got)
	}
	assertCursor(t, s, 1, 1)
}

func TestRenderScrollsHorizontally(t *testing.T) {
	e := newTestEditor("abcdefghijkl")
	e.buf.SetCursor(12)
	s := newTestScreen(t, 10, 4)

	e.Render(s)
	if got := runeAt(s, 1, 1); got != 'f' {
		t.Fatalf("first visible cell = %q, want 'f'", got)
	}
	assertCursor(t, s, 8, 1)
}

func TestRenderCursorWithTab(t *testing.T) {
	e := newTestEditor("a\tb")
	e.buf.SetCursor(2)
	s := newTestScreen(t, 20, 4)

	e.Render(s)
	if got := runeAt(s, 5, 1); got != 'b' {
		t.Fatalf("cell after tab = %q, want 'b'", got)
	}
	assertCursor(t, s, 5, 1)
}

func TestRenderCursorAfterWideRunes(t *testing.T) {
	e := newTestEditor("日本")
	e.buf.SetCursor(e.buf.Len())
	s := newTestScreen(t, 20, 4)

	e.Render(s)
	if got := runeAt(s, 1, 1); got != '日' {
		t.Fatalf("cell (1,1) = %q, want '日'", got)
	}
	if got := runeAt(s, 3, 1); got != '本' {
		t.Fatalf("cell (3,1) = %q, want '本'", got)
	}
	assertCursor(t, s, 5, 1)
}

func TestRenderTinyScreen(t *testing.T) {
	e := newTestEditor("abc")
	s := newTestScreen(t, 2, 2)

	e.Render(s)
	if got := runeAt(s, 0, 0); got != borderTopLeft {
		t.Fatalf("top left = %q, want %q", got, borderTopLeft)
	}
}

func TestVisualWidth(t *testing.T) {
	tests := []struct {
		in   string
		want int
	}{
		{"", 0},
		{"abc", 3},
		{"\t", 4},
		{"ab\t", 4},
		{"abcd\t", 8},
		{"日本", 4},
		{"é", 1},
	}
	for _, tt := range tests {
		if got := visualWidth(tt.in, 4); got != tt.want {
			t.Fatalf("visualWidth(%q) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
