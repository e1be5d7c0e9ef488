package editor

import (
	"github.com/gdamore/tcell/v2"
	"github.com/rivo/uniseg"
)

const (
	borderHorizontal  = '─'
	borderVertical    = '│'
	borderTopLeft     = '╭'
	borderTopRight    = '╮'
	borderBottomLeft  = '╰'
	borderBottomRight = '╯'
)

// Render draws the bordered text area and places the cursor. The text area
// starts one cell in from each edge.
func (e *Editor) Render(s tcell.Screen) {
	w, h := s.Size()
	if w <= 0 || h <= 0 {
		return
	}
	s.SetStyle(e.styleText)
	s.Clear()
	e.drawBorder(s, w, h)

	innerW, innerH := w-2, h-2
	if innerW <= 0 || innerH <= 0 {
		s.HideCursor()
		s.Show()
		return
	}

	lines := e.buf.Lines()
	loc := e.buf.Location()
	cursorX := visualWidth(prefixRunes(lines[loc.Row], loc.Col), e.tabWidth)
	e.ensureCursorVisible(loc.Row, cursorX, innerW, innerH)

	for y := 0; y < innerH; y++ {
		row := e.scrollY + y
		if row >= len(lines) {
			break
		}
		e.drawLine(s, 1+y, innerW, lines[row])
	}

	s.SetCursorStyle(tcell.CursorStyleSteadyBar)
	s.ShowCursor(1+cursorX-e.scrollX, 1+loc.Row-e.scrollY)
	s.Show()
}

func (e *Editor) ensureCursorVisible(row, x, innerW, innerH int) {
	if row < e.scrollY {
		e.scrollY = row
	} else if row >= e.scrollY+innerH {
		e.scrollY = row - innerH + 1
	}
	if x < e.scrollX {
		e.scrollX = x
	} else if x >= e.scrollX+innerW {
		e.scrollX = x - innerW + 1
	}
}

// drawLine draws one buffer line at screen row y, clipped to the interior.
func (e *Editor) drawLine(s tcell.Screen, y, innerW int, line string) {
	x := 0
	g := uniseg.NewGraphemes(line)
	for g.Next() {
		cluster := g.Str()
		width := clusterWidth(cluster, g.Width(), x, e.tabWidth)
		if x >= e.scrollX+innerW {
			return
		}
		if x >= e.scrollX && x+width <= e.scrollX+innerW {
			screenX := 1 + x - e.scrollX
			if cluster == "\t" {
				for i := 0; i < width; i++ {
					s.SetContent(screenX+i, y, ' ', nil, e.styleText)
				}
			} else if width > 0 {
				runes := g.Runes()
				s.SetContent(screenX, y, runes[0], runes[1:], e.styleText)
			}
		}
		x += width
	}
}

func (e *Editor) drawBorder(s tcell.Screen, w, h int) {
	for x := 1; x < w-1; x++ {
		s.SetContent(x, 0, borderHorizontal, nil, e.styleBorder)
		s.SetContent(x, h-1, borderHorizontal, nil, e.styleBorder)
	}
	for y := 1; y < h-1; y++ {
		s.SetContent(0, y, borderVertical, nil, e.styleBorder)
		s.SetContent(w-1, y, borderVertical, nil, e.styleBorder)
	}
	s.SetContent(0, 0, borderTopLeft, nil, e.styleBorder)
	s.SetContent(w-1, 0, borderTopRight, nil, e.styleBorder)
	s.SetContent(0, h-1, borderBottomLeft, nil, e.styleBorder)
	s.SetContent(w-1, h-1, borderBottomRight, nil, e.styleBorder)

	if h < 2 {
		return
	}
	drawLabel(s, 2, 0, w-4, e.titleText(), e.styleTitle)
	drawLabel(s, 2, h-1, w-4, e.hintText(), e.styleHint)
}

func (e *Editor) titleText() string {
	title := e.title
	if e.filename != "" {
		if title != "" {
			title += ": "
		}
		title += e.filename
	}
	if e.Dirty() {
		title += "*"
	}
	if title == "" {
		return ""
	}
	return " " + title + " "
}

func (e *Editor) hintText() string {
	save, cancel := e.keyFor(actionSave), e.keyFor(actionCancel)
	hint := ""
	if save != "" {
		hint = save + " save"
	}
	if cancel != "" {
		if hint != "" {
			hint += "  "
		}
		hint += cancel + " cancel"
	}
	if hint == "" {
		return ""
	}
	return " " + hint + " "
}

// drawLabel writes text from (x, y), dropping whatever does not fit in limit
// cells.
func drawLabel(s tcell.Screen, x, y, limit int, text string, style tcell.Style) {
	if limit <= 0 || text == "" {
		return
	}
	used := 0
	g := uniseg.NewGraphemes(text)
	for g.Next() {
		width := g.Width()
		if used+width > limit {
			return
		}
		runes := g.Runes()
		s.SetContent(x+used, y, runes[0], runes[1:], style)
		used += width
	}
}

// visualWidth is the number of cells s occupies when drawn from column 0.
func visualWidth(s string, tabWidth int) int {
	x := 0
	g := uniseg.NewGraphemes(s)
	for g.Next() {
		x += clusterWidth(g.Str(), g.Width(), x, tabWidth)
	}
	return x
}

func clusterWidth(cluster string, width, x, tabWidth int) int {
	if cluster == "\t" {
		return tabWidth - x%tabWidth
	}
	return width
}

func prefixRunes(line string, n int) string {
	i := 0
	for off := range line {
		if i == n {
			return line[:off]
		}
		i++
	}
	return line
}
