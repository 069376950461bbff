package tui

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sortie/internal/actor"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/raycast"
)

// colorStyles maps core.Color to lipgloss styles.
var colorStyles = map[core.Color]lipgloss.Style{
	core.ColorDefault: lipgloss.NewStyle(),
	core.ColorRed:     lipgloss.NewStyle().Foreground(lipgloss.Color("9")),
	core.ColorGreen:   lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
	core.ColorYellow:  lipgloss.NewStyle().Foreground(lipgloss.Color("11")),
	core.ColorBlue:    lipgloss.NewStyle().Foreground(lipgloss.Color("12")),
	core.ColorMagenta: lipgloss.NewStyle().Foreground(lipgloss.Color("13")),
	core.ColorCyan:    lipgloss.NewStyle().Foreground(lipgloss.Color("14")),
	core.ColorWhite:   lipgloss.NewStyle().Foreground(lipgloss.Color("15")),
	core.ColorOrange:  lipgloss.NewStyle().Foreground(lipgloss.Color("208")),
	core.ColorGray:    lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
}

// RenderScreen converts a Screen buffer to a styled string for display.
// Groups adjacent cells with the same color to minimize ANSI escape sequences.
func RenderScreen(s *core.Screen) string {
	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*s.Height()*2 + s.Height())

	for y := range s.Height() {
		if y > 0 {
			sb.WriteRune('\n')
		}

		// Group consecutive cells with the same color for efficiency
		x := 0
		for x < s.Width() {
			startColor := s.Get(x, y).Color

			var run strings.Builder
			for x < s.Width() {
				cell := s.Get(x, y)
				if cell.Color != startColor {
					break
				}
				run.WriteRune(cell.Rune)
				x++
			}

			style, ok := colorStyles[startColor]
			if !ok {
				style = colorStyles[core.ColorDefault]
			}
			sb.WriteString(style.Render(run.String()))
		}
	}
	return sb.String()
}

// camera returns the world position of the viewport's top-left corner,
// centred on the player and kept inside the mission bounds.
func camera(sc mission.Scene, w, h int) (float64, float64) {
	c := sc.Player.Center()
	cx := c.X - float64(w)/2
	cy := c.Y - float64(h)/2
	cx = core.ClampF(cx, sc.Bounds.X, math.Max(sc.Bounds.X, sc.Bounds.Right()-float64(w)))
	cy = core.ClampF(cy, sc.Bounds.Y, math.Max(sc.Bounds.Y, sc.Bounds.Bottom()-float64(h)))
	return math.Floor(cx), math.Floor(cy)
}

// fillWorld fills every cell a world rectangle touches. Thin rectangles
// still cover at least one cell.
func fillWorld(s *core.Screen, r core.Rect, camX, camY float64, ch rune, c core.Color) {
	x0 := int(math.Floor(r.X - camX))
	y0 := int(math.Floor(r.Y - camY))
	x1 := max(int(math.Ceil(r.Right()-camX)), x0+1)
	y1 := max(int(math.Ceil(r.Bottom()-camY)), y0+1)
	s.FillRect(x0, y0, x1, y1, ch, c)
}

// DrawScene draws a side-scrolling frame, one world unit per cell.
// blink hides an invulnerable player on alternate calls.
func DrawScene(s *core.Screen, sc mission.Scene, blink bool) {
	s.Clear()
	camX, camY := camera(sc, s.Width(), s.Height())

	for _, b := range sc.Beams {
		switch {
		case b.Active:
			fillWorld(s, b.Box, camX, camY, '║', core.ColorRed)
		case b.Warning:
			fillWorld(s, b.Box, camX, camY, ':', core.ColorYellow)
		}
	}
	for _, z := range sc.Zones {
		if z.Active {
			fillWorld(s, z.Box, camX, camY, '^', core.ColorRed)
		} else {
			fillWorld(s, z.Box, camX, camY, '.', core.ColorYellow)
		}
	}
	for _, r := range sc.Solids {
		fillWorld(s, r, camX, camY, '█', core.ColorGray)
	}
	for _, c := range sc.Crushers {
		fillWorld(s, c.Belt, camX, camY, '=', core.ColorGray)
		color := core.ColorMagenta
		if c.Warning {
			color = core.ColorYellow
		}
		fillWorld(s, c.Head, camX, camY, '▼', color)
	}
	if sc.Gate != nil {
		fillWorld(s, *sc.Gate, camX, camY, '▌', core.ColorGreen)
	}
	for _, r := range sc.Crates {
		fillWorld(s, r, camX, camY, '▒', core.ColorOrange)
	}
	for _, r := range sc.Pickups {
		fillWorld(s, r, camX, camY, '+', core.ColorGreen)
	}
	for _, r := range sc.Debris {
		fillWorld(s, r, camX, camY, '*', core.ColorOrange)
	}
	for _, r := range sc.Enemies {
		fillWorld(s, r, camX, camY, 'E', core.ColorRed)
	}
	if sc.Boss != nil {
		fillWorld(s, *sc.Boss, camX, camY, 'B', core.ColorMagenta)
	}
	for _, p := range sc.Shots {
		ch, color := '•', core.ColorCyan
		if p.Owner == actor.SideEnemy {
			ch, color = 'o', core.ColorRed
		}
		if p.Radius >= 0.5 {
			ch = '●'
		}
		s.Set(int(math.Floor(p.Pos.X-camX)), int(math.Floor(p.Pos.Y-camY)), ch, color)
	}

	if sc.Blinking && blink {
		return
	}
	ch := '>'
	if sc.Facing < 0 {
		ch = '<'
	}
	fillWorld(s, sc.Player, camX, camY, '@', core.ColorWhite)
	top := int(math.Floor(sc.Player.Y - camY))
	s.Set(int(math.Floor(sc.Player.Center().X-camX)), top, ch, core.ColorWhite)
}

// wallGlyph shades a wall by distance.
func wallGlyph(depth, maxDepth float64) rune {
	if maxDepth <= 0 {
		maxDepth = 16
	}
	switch f := depth / maxDepth; {
	case f < 0.2:
		return '█'
	case f < 0.4:
		return '▓'
	case f < 0.65:
		return '▒'
	default:
		return '░'
	}
}

// DrawFirstPerson draws depth columns as vertical wall slices and
// projects visible sprites on top of them.
func DrawFirstPerson(s *core.Screen, cols []raycast.Column, v mission.View) {
	s.Clear()
	w, h := s.Width(), s.Height()
	horizon := h / 2

	for x := 0; x < w && x < len(cols); x++ {
		col := cols[x]
		for y := horizon + 1; y < h; y++ {
			s.Set(x, y, '.', core.ColorGray)
		}
		if !col.Wall {
			continue
		}
		half := int(float64(h) / (2 * math.Max(col.Depth, 0.3)))
		color := core.ColorWhite
		if col.Side == raycast.SideY {
			color = core.ColorGray
		}
		s.FillRect(x, horizon-half, x+1, horizon+half+1, wallGlyph(col.Depth, v.MaxDepth), color)
	}

	if v.FOV <= 0 || len(cols) == 0 {
		return
	}
	for _, sp := range v.Sprites {
		d := sp.Pos.Sub(v.Pos)
		dist := d.Len()
		if dist < 0.1 {
			continue
		}
		off := math.Remainder(math.Atan2(d.Y, d.X)-v.Angle, 2*math.Pi)
		if math.Abs(off) > v.FOV/2 {
			continue
		}
		depth := dist * math.Cos(off)
		x := int((off/v.FOV + 0.5) * float64(w))
		if x < 0 || x >= len(cols) || (cols[x].Wall && cols[x].Depth < depth) {
			continue
		}
		ch, color := 'M', core.ColorRed
		switch {
		case sp.Bolt && sp.Owner == actor.SidePlayer:
			ch, color = '•', core.ColorCyan
		case sp.Bolt:
			ch, color = 'o', core.ColorOrange
		case !sp.Hostile:
			color = core.ColorYellow
		}
		half := max(int(float64(h)/(4*depth)), 0)
		if sp.Bolt {
			half = 0
		}
		s.FillRect(x, horizon-half, x+1, horizon+half+1, ch, color)
	}

	s.Set(w/2, horizon, '+', core.ColorGreen)
}

// DrawMinimap draws the grid with the player and sprites at (x0, y0).
func DrawMinimap(s *core.Screen, v mission.View, x0, y0 int) {
	for y, row := range v.Rows {
		for x, r := range row {
			if r == raycast.SymbolWall {
				s.Set(x0+x, y0+y, '#', core.ColorGray)
			} else {
				s.Set(x0+x, y0+y, '·', core.ColorDefault)
			}
		}
	}
	s.Set(x0+int(v.Exit.X), y0+int(v.Exit.Y), 'E', core.ColorGreen)
	for _, sp := range v.Sprites {
		if sp.Bolt {
			continue
		}
		s.Set(x0+int(sp.Pos.X), y0+int(sp.Pos.Y), 'm', core.ColorRed)
	}
	s.Set(x0+int(v.Pos.X), y0+int(v.Pos.Y), headingGlyph(v.Angle), core.ColorCyan)
}

// headingGlyph returns an arrow for the nearest of eight headings.
func headingGlyph(angle float64) rune {
	arrows := []rune{'→', '↘', '↓', '↙', '←', '↖', '↑', '↗'}
	i := int(math.Round(angle/(math.Pi/4))) % len(arrows)
	if i < 0 {
		i += len(arrows)
	}
	return arrows[i]
}
