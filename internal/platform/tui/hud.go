package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sortie/internal/hazard"
	"github.com/vovakirdan/sortie/internal/mission"
)

// hudHeight is the number of rows the HUD takes above the playfield.
const hudHeight = 2

// meter renders a fixed-width bar for value/limit.
func meter(value, limit, width int) string {
	if limit <= 0 || width <= 0 {
		return ""
	}
	filled := max(min(value*width/limit, width), 0)
	return strings.Repeat("■", filled) + strings.Repeat("·", width-filled)
}

// renderHUD renders the status rows above the playfield.
func renderHUD(r *mission.Run, theme Theme, width int, status string) string {
	sep := theme.HUDSeparator.Render(" │ ")
	cfg := r.Config()

	health := r.PlayerHealth()
	healthStyle := theme.HUDValue
	if health*3 <= r.PlayerMaxHealth() {
		healthStyle = theme.HUDDanger
	}
	parts := []string{
		theme.HUDTitle.Render(strings.ToUpper(cfg.Name)),
		"HP " + healthStyle.Render(fmt.Sprintf("%s %d/%d", meter(health, r.PlayerMaxHealth(), 10), health, r.PlayerMaxHealth())),
		"T " + theme.HUDValue.Render(fmt.Sprintf("%.1fs", r.Elapsed())),
	}
	if total := r.EnemiesTotal(); total > 0 {
		parts = append(parts, "FOES "+theme.HUDValue.Render(fmt.Sprintf("%d/%d", r.EnemiesAlive(), total)))
	}
	if charge := r.ChargeLevel(); charge > 0 {
		style := theme.HUDValue
		if charge >= 1 {
			style = theme.HUDWarning
		}
		parts = append(parts, "CHG "+style.Render(meter(int(charge*100), 100, 6)))
	}
	top := strings.Join(parts, sep)

	var cues []string
	if b, ok := r.Boss(); ok {
		line := fmt.Sprintf("BOSS %s P%d %s", meter(b.Health, b.MaxHealth, 12), b.Phase, b.State)
		if b.State == "telegraph" || b.State == "attack" {
			line += ":" + b.Attack
		}
		style := theme.HUDDanger
		if b.Vulnerable {
			style = theme.HUDWarning
			line += " OPEN"
		}
		cues = append(cues, style.Render(line))
	}
	for _, c := range r.HazardCues() {
		switch {
		case c.Active:
			cues = append(cues, theme.HUDDanger.Render(cueLabel(c)))
		case c.Warning:
			cues = append(cues, theme.HUDWarning.Render(cueLabel(c)))
		}
	}
	bottom := strings.Join(cues, sep)
	if status != "" {
		if bottom != "" {
			bottom += sep
		}
		bottom += theme.HUDControls.Render(status)
	}

	return lipgloss.NewStyle().MaxWidth(width).Render(top + "\n" + bottom)
}

func cueLabel(c mission.HazardCue) string {
	state := "warn"
	if c.Active {
		state = "LIVE"
	}
	if c.Kind == hazard.KindDebris {
		state = "fall"
	}
	return fmt.Sprintf("%s#%d %s", c.Kind, c.Index+1, state)
}

// renderOverlay draws a centred box over the given area.
func renderOverlay(theme Theme, width, height int, title string, lines ...string) string {
	body := theme.OverlayTitle.Render(title)
	for _, l := range lines {
		body += "\n" + theme.OverlayText.Render(l)
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, theme.OverlayBorder.Render(body))
}
