package tui

import (
	"math"
	"strings"
	"testing"

	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
)

func flatMission() mission.Config {
	return mission.Config{
		ID:     "flat",
		Name:   "Flat",
		Mode:   mission.ModePlatformer,
		Bounds: core.NewRect(0, 0, 100, 30),
		Spawn:  core.Vec{X: 2, Y: 18},
		Solids: []core.Rect{core.NewRect(0, 20, 100, 2)},
	}
}

func corridorMission() mission.Config {
	return mission.Config{
		ID:   "corridor",
		Name: "Corridor",
		Mode: mission.ModeFirstPerson,
		Grid: []string{
			"#####",
			"#S.E#",
			"#####",
		},
	}
}

func TestRenderScreenKeepsText(t *testing.T) {
	s := core.NewScreen(10, 2)
	s.DrawText(0, 0, "HI", core.ColorRed)
	s.DrawText(3, 0, "there", core.ColorDefault)
	s.DrawText(0, 1, "ok", core.ColorGreen)

	out := RenderScreen(s)
	for _, want := range []string{"HI", "there", "ok"} {
		if !strings.Contains(out, want) {
			t.Errorf("RenderScreen() = %q, expected it to contain %q", out, want)
		}
	}
	if got := strings.Count(out, "\n"); got != 1 {
		t.Errorf("RenderScreen() has %d newlines, expected 1", got)
	}
}

func TestDrawScene(t *testing.T) {
	r := mission.Start(flatMission(), mission.Options{})
	sc, ok := r.Scene()
	if !ok {
		t.Fatal("Scene() not available for a platformer run")
	}

	s := core.NewScreen(40, 12)
	DrawScene(s, sc, false)

	// The camera is clamped to the left edge and centres the player vertically.
	if got := s.Get(2, 5).Rune; got != '>' {
		t.Errorf("player head = %q, expected '>'", got)
	}
	if got := s.Get(2, 6).Rune; got != '@' {
		t.Errorf("player body = %q, expected '@'", got)
	}
	if got := s.Get(10, 7).Rune; got != '█' {
		t.Errorf("floor = %q, expected '█'", got)
	}

	sc.Blinking = true
	DrawScene(s, sc, true)
	if strings.ContainsRune(s.String(), '@') {
		t.Error("blinking player should be hidden")
	}
}

func TestCameraClampsToBounds(t *testing.T) {
	sc := mission.Scene{
		Bounds: core.NewRect(0, 0, 100, 30),
		Player: core.NewRect(98, 18, 1, 2),
	}
	x, y := camera(sc, 40, 12)
	if x != 60 {
		t.Errorf("camera x = %v, expected 60", x)
	}
	if y != 13 {
		t.Errorf("camera y = %v, expected 13", y)
	}

	// A viewport larger than the mission pins to the origin.
	x, y = camera(sc, 200, 50)
	if x != 0 || y != 0 {
		t.Errorf("camera = (%v, %v), expected (0, 0)", x, y)
	}
}

func TestDrawFirstPerson(t *testing.T) {
	r := mission.Start(corridorMission(), mission.Options{Seed: 1})
	v, ok := r.FirstPersonView()
	if !ok {
		t.Fatal("FirstPersonView() not available for a first-person run")
	}

	s := core.NewScreen(40, 20)
	DrawFirstPerson(s, r.DepthColumns(s.Width()), v)

	if got := s.Get(20, 10).Rune; got != '+' {
		t.Errorf("crosshair = %q, expected '+'", got)
	}
	if got := s.Get(20, 9).Rune; !strings.ContainsRune("█▓▒░", got) {
		t.Errorf("centre column above horizon = %q, expected a wall glyph", got)
	}
	if got := s.Get(20, 19).Rune; got != '.' {
		t.Errorf("floor = %q, expected '.'", got)
	}
}

func TestDrawMinimap(t *testing.T) {
	r := mission.Start(corridorMission(), mission.Options{Seed: 1})
	v, _ := r.FirstPersonView()

	s := core.NewScreen(10, 5)
	DrawMinimap(s, v, 0, 0)
	if got := s.Row(0); got != "#####     " {
		t.Errorf("Row(0) = %q", got)
	}
	if got := s.Get(3, 1).Rune; got != 'E' {
		t.Errorf("exit cell = %q, expected 'E'", got)
	}
	if got := s.Get(1, 1).Rune; got != '→' {
		t.Errorf("player cell = %q, expected '→'", got)
	}
}

func TestHeadingGlyph(t *testing.T) {
	tests := []struct {
		angle    float64
		expected rune
	}{
		{0, '→'},
		{math.Pi / 2, '↓'},
		{math.Pi, '←'},
		{-math.Pi / 2, '↑'},
		{-math.Pi / 4, '↗'},
		{2 * math.Pi, '→'},
	}
	for _, tt := range tests {
		if got := headingGlyph(tt.angle); got != tt.expected {
			t.Errorf("headingGlyph(%v) = %q, expected %q", tt.angle, got, tt.expected)
		}
	}
}

func TestWallGlyph(t *testing.T) {
	if got := wallGlyph(1, 16); got != '█' {
		t.Errorf("wallGlyph(near) = %q, expected '█'", got)
	}
	if got := wallGlyph(15, 16); got != '░' {
		t.Errorf("wallGlyph(far) = %q, expected '░'", got)
	}
}

func TestMeter(t *testing.T) {
	tests := []struct {
		value, limit, width int
		expected            string
	}{
		{5, 10, 10, "■■■■■·····"},
		{10, 10, 4, "■■■■"},
		{-1, 10, 3, "···"},
		{12, 10, 2, "■■"},
		{1, 0, 5, ""},
	}
	for _, tt := range tests {
		if got := meter(tt.value, tt.limit, tt.width); got != tt.expected {
			t.Errorf("meter(%d, %d, %d) = %q, expected %q", tt.value, tt.limit, tt.width, got, tt.expected)
		}
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("Relay Station", 6); got != "Relay." {
		t.Errorf("truncate() = %q, expected %q", got, "Relay.")
	}
	if got := truncate("Relay", 6); got != "Relay" {
		t.Errorf("truncate() = %q, expected %q", got, "Relay")
	}
}
