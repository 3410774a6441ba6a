package viewer

import (
	"fmt"

	"github.com/gdamore/tcell/v2"

	"github.com/ironsheep/invader-radar/internal/detection"
	"github.com/ironsheep/invader-radar/internal/grid"
	"github.com/ironsheep/invader-radar/internal/render"
)

var (
	styleStatus   = tcell.StyleDefault.Foreground(tcell.ColorBlack).Background(tcell.ColorSilver)
	styleField    = tcell.StyleDefault.Foreground(tcell.ColorGray)
	styleMatch    = tcell.StyleDefault.Foreground(tcell.ColorYellow).Bold(true)
	styleSelected = tcell.StyleDefault.Foreground(tcell.ColorRed).Reverse(true)
)

// Viewer draws a radar grid and its matches on a tcell screen.
type Viewer struct {
	screen  tcell.Screen
	grid    grid.Grid
	matches []detection.Match

	selected int
	offsetX  int
	offsetY  int
}

// New creates a viewer. The screen must already be initialized; the caller
// owns it and calls Fini.
func New(screen tcell.Screen, g grid.Grid, matches []detection.Match) *Viewer {
	v := &Viewer{
		screen:  screen,
		grid:    g,
		matches: render.Sorted(matches),
	}
	v.follow()
	return v
}

// Selected returns the currently selected match.
func (v *Viewer) Selected() (detection.Match, bool) {
	if len(v.matches) == 0 {
		return detection.Match{}, false
	}
	return v.matches[v.selected], true
}

// Run draws and handles events until the user quits.
func (v *Viewer) Run() {
	v.Draw()
	for {
		ev := v.screen.PollEvent()
		if ev == nil {
			return
		}
		if !v.HandleEvent(ev) {
			return
		}
		v.Draw()
	}
}

// HandleEvent applies one event and reports whether the viewer should keep
// running.
func (v *Viewer) HandleEvent(ev tcell.Event) bool {
	switch ev := ev.(type) {
	case *tcell.EventKey:
		switch ev.Key() {
		case tcell.KeyEscape, tcell.KeyCtrlC:
			return false
		case tcell.KeyTab, tcell.KeyRight:
			v.step(1)
		case tcell.KeyBacktab, tcell.KeyLeft:
			v.step(-1)
		case tcell.KeyRune:
			switch ev.Rune() {
			case 'q':
				return false
			case 'n':
				v.step(1)
			case 'p':
				v.step(-1)
			case 'h':
				v.scroll(-1, 0)
			case 'l':
				v.scroll(1, 0)
			case 'k':
				v.scroll(0, -1)
			case 'j':
				v.scroll(0, 1)
			}
		}

	case *tcell.EventResize:
		v.follow()
		v.screen.Sync()
	}
	return true
}

func (v *Viewer) step(delta int) {
	if len(v.matches) == 0 {
		return
	}
	v.selected = (v.selected + delta + len(v.matches)) % len(v.matches)
	v.follow()
}

func (v *Viewer) scroll(dx, dy int) {
	w, h := v.fieldSize()
	v.offsetX = clamp(v.offsetX+dx, 0, max(0, v.grid.Width()-w))
	v.offsetY = clamp(v.offsetY+dy, 0, max(0, v.grid.Height()-h))
}

// follow scrolls so the selected match is in view.
func (v *Viewer) follow() {
	m, ok := v.Selected()
	if !ok {
		return
	}
	w, h := v.fieldSize()
	if m.FieldX < v.offsetX || m.FieldX+m.Width > v.offsetX+w {
		v.offsetX = m.FieldX - (w-m.Width)/2
	}
	if m.FieldY < v.offsetY || m.FieldY+m.Height > v.offsetY+h {
		v.offsetY = m.FieldY - (h-m.Height)/2
	}
	v.scroll(0, 0)
}

// fieldSize is the screen area available for the grid.
func (v *Viewer) fieldSize() (int, int) {
	w, h := v.screen.Size()
	return w, max(0, h-1)
}

// Draw renders the status bar and the visible part of the grid.
func (v *Viewer) Draw() {
	v.screen.Clear()
	w, h := v.fieldSize()

	for y := 0; y < min(h, v.grid.Height()-v.offsetY); y++ {
		for x := 0; x < min(w, v.grid.Width()-v.offsetX); x++ {
			gx, gy := x+v.offsetX, y+v.offsetY
			v.screen.SetContent(x, y+1, v.grid.At(gx, gy), nil, v.styleAt(gx, gy))
		}
	}

	v.drawStatus(w)
	v.screen.Show()
}

func (v *Viewer) styleAt(x, y int) tcell.Style {
	style := styleField
	for i, m := range v.matches {
		if !covers(m, x, y) {
			continue
		}
		if i == v.selected {
			return styleSelected
		}
		style = styleMatch
	}
	return style
}

func (v *Viewer) drawStatus(width int) {
	status := fmt.Sprintf(" %d matches", len(v.matches))
	if m, ok := v.Selected(); ok {
		status = fmt.Sprintf(" [%d/%d] %s", v.selected+1, len(v.matches), m)
	}
	status += "  (n/p select, hjkl scroll, q quit)"

	runes := []rune(status)
	for x := 0; x < width; x++ {
		r := ' '
		if x < len(runes) {
			r = runes[x]
		}
		v.screen.SetContent(x, 0, r, nil, styleStatus)
	}
}

func covers(m detection.Match, x, y int) bool {
	return x >= m.FieldX && x < m.FieldX+m.Width && y >= m.FieldY && y < m.FieldY+m.Height
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
