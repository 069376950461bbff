package tui

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/sortie/internal/config"
	"github.com/vovakirdan/sortie/internal/core"
	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/registry"
	"github.com/vovakirdan/sortie/internal/replay"
	"github.com/vovakirdan/sortie/internal/storage"
)

// PlayOptions configures one interactive mission session.
type PlayOptions struct {
	Store      *storage.Store // Optional; results and unlocks are not persisted without it
	TickRate   int
	Run        mission.Options
	Difficulty config.DifficultyPreset
	RecordPath string          // Write a replay here when the run ends; empty disables recording
	Watcher    *config.Watcher // Optional; changed mission files are reloaded in place
	Logger     *log.Logger     // Optional event log
	Embedded   bool            // Quit returns to the caller's menu instead of ending the program
	Theme      Theme           // The zero Theme renders without styling
}

// reloadMsg carries a mission file path reported by the watcher.
type reloadMsg string

// watchErrMsg carries a watcher failure.
type watchErrMsg struct{ err error }

// Model is the Bubble Tea model that drives one mission run.
type Model struct {
	cfg      mission.Config
	run      *mission.Run
	opts     PlayOptions
	keys     *KeyMapper
	screen   *core.Screen
	recorder *replay.Recorder
	width    int
	height   int
	lastTick time.Time
	frame    uint64
	paused   bool
	saved    bool
	status   string
	quitting bool
	back     bool
}

// NewModel creates a play model for the given mission.
func NewModel(cfg mission.Config, opts PlayOptions) Model {
	if opts.TickRate <= 0 {
		opts.TickRate = 60
	}
	if opts.Run.Seed == 0 {
		opts.Run.Seed = time.Now().UnixNano()
	}
	if opts.Logger == nil {
		opts.Logger = log.New(io.Discard)
	}
	m := Model{
		cfg:    cfg,
		run:    mission.Start(cfg, opts.Run),
		opts:   opts,
		keys:   NewKeyMapper(cfg.Mode),
		screen: core.NewScreen(80, 24-hudHeight),
		width:  80,
		height: 24,
	}
	if opts.RecordPath != "" {
		m.recorder = replay.NewRecorder(cfg.ID, string(opts.Difficulty), opts.Run)
	}
	return m
}

// Init starts the tick loop and, when configured, the file watch.
func (m Model) Init() tea.Cmd {
	m.opts.Logger.Info("mission started", "id", m.cfg.ID, "mode", m.cfg.Mode, "difficulty", m.opts.Difficulty)
	if o := m.run.Outcome(); o != mission.OutcomeRunning {
		m.opts.Logger.Error("mission failed to start", "id", m.cfg.ID)
	}
	return tea.Batch(tickCmd(m.opts.TickRate), waitForChange(m.opts.Watcher))
}

// waitForChange blocks on the watcher until a mission file changes.
func waitForChange(w *config.Watcher) tea.Cmd {
	if w == nil {
		return nil
	}
	return func() tea.Msg {
		select {
		case path, ok := <-w.Events:
			if !ok {
				return nil
			}
			return reloadMsg(path)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			return watchErrMsg{err: err}
		}
	}
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		return m.handleResize(msg)

	case TickMsg:
		return m.handleTick(time.Time(msg))

	case reloadMsg:
		return m.handleReload(string(msg))

	case watchErrMsg:
		m.opts.Logger.Warn("mission watcher", "err", msg.err)
		return m, waitForChange(m.opts.Watcher)
	}

	return m, nil
}

// handleKey processes keyboard input.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+s" {
		m.saveScreenshot()
		return m, nil
	}

	switch m.keys.Press(msg, time.Now()) {
	case core.ActionQuit:
		m.finish()
		if m.opts.Embedded {
			m.back = true
			return m, nil
		}
		m.quitting = true
		return m, tea.Quit
	case core.ActionPause:
		if m.run.Outcome() == mission.OutcomeRunning {
			m.paused = !m.paused
			m.lastTick = time.Time{}
		}
	case core.ActionRestart:
		if m.paused || m.run.Outcome() != mission.OutcomeRunning {
			m.restart()
		}
	}
	return m, nil
}

// handleResize processes window resize events. The run is not reset;
// only the viewport changes.
func (m Model) handleResize(msg tea.WindowSizeMsg) (tea.Model, tea.Cmd) {
	m.width = msg.Width
	m.height = msg.Height
	m.screen.Resize(msg.Width, max(msg.Height-hudHeight, 0))
	return m, nil
}

// handleTick feeds the wall-clock delta since the previous tick to the run.
func (m Model) handleTick(now time.Time) (tea.Model, tea.Cmd) {
	next := tickCmd(m.opts.TickRate)
	if m.paused || m.run.Outcome() != mission.OutcomeRunning {
		m.keys.Frame(now)
		m.lastTick = now
		return m, next
	}

	dt := 0.0
	if !m.lastTick.IsZero() {
		dt = now.Sub(m.lastTick).Seconds()
	}
	m.lastTick = now
	m.frame++

	in := m.keys.Frame(now)
	outcome := m.run.Tick(in, dt)
	if m.recorder != nil {
		m.recorder.Record(in, dt)
	}
	m.logEvents(m.run.Events())

	if outcome != mission.OutcomeRunning {
		m.finish()
	}
	return m, next
}

func (m *Model) logEvents(events []mission.Event) {
	for _, e := range events {
		switch e.Kind {
		case mission.EventCleared, mission.EventFailed, mission.EventBossDefeated, mission.EventBossPhase:
			m.opts.Logger.Info(e.Kind.String(), "t", fmt.Sprintf("%.2f", e.Time), "value", e.Value, "detail", e.Detail)
		default:
			m.opts.Logger.Debug(e.Kind.String(), "t", fmt.Sprintf("%.2f", e.Time), "x", e.X, "y", e.Y, "value", e.Value, "detail", e.Detail)
		}
	}
}

// finish persists the result, grants unlocks and writes the replay,
// once per attempt. A run quit before its end is recorded but not saved.
func (m *Model) finish() {
	if m.saved {
		return
	}
	m.saved = true
	outcome := m.run.Outcome()

	if m.recorder != nil && m.recorder.Len() > 0 {
		rec := m.recorder.Finish(m.run.Snapshot())
		if err := replay.Save(m.opts.RecordPath, rec); err != nil {
			m.opts.Logger.Error("cannot save replay", "path", m.opts.RecordPath, "err", err)
		} else {
			m.opts.Logger.Info("replay saved", "path", m.opts.RecordPath, "frames", len(rec.Frames))
		}
	}

	if outcome == mission.OutcomeRunning || m.opts.Store == nil {
		return
	}
	_, err := m.opts.Store.SaveResult(storage.Result{
		MissionID:  m.cfg.ID,
		Outcome:    outcome.String(),
		Elapsed:    m.run.Elapsed(),
		Health:     m.run.PlayerHealth(),
		Difficulty: string(m.opts.Difficulty),
	})
	if err != nil {
		m.opts.Logger.Error("cannot save result", "err", err)
	}
	if outcome != mission.OutcomeCleared {
		return
	}
	granted, err := m.opts.Store.GrantUnlocks(m.cfg.UnlocksOnClear)
	if err != nil {
		m.opts.Logger.Error("cannot grant unlocks", "err", err)
		return
	}
	if len(granted) > 0 {
		m.status = "unlocked: " + strings.Join(granted, ", ")
		m.opts.Logger.Info("unlocked", "flags", granted)
	}
}

func (m *Model) restart() {
	m.run.Restart()
	m.keys.Reset()
	if m.recorder != nil {
		m.recorder.Reset()
	}
	m.paused = false
	m.saved = false
	m.status = ""
	m.lastTick = time.Time{}
	m.opts.Logger.Info("mission restarted", "id", m.cfg.ID)
}

// handleReload swaps in a changed definition of the running mission.
// Other missions are updated in the registry only.
func (m Model) handleReload(path string) (tea.Model, tea.Cmd) {
	next := waitForChange(m.opts.Watcher)
	cfg, err := config.LoadMissionFile(path)
	if err != nil {
		m.status = "reload failed: " + filepath.Base(path)
		m.opts.Logger.Warn("reload failed", "path", path, "err", err)
		return m, next
	}
	registry.Replace(cfg)
	if cfg.ID != m.cfg.ID {
		return m, next
	}
	config.ApplyDifficulty(&cfg, m.opts.Difficulty)

	m.cfg = cfg
	m.run = mission.Start(cfg, m.opts.Run)
	m.keys = NewKeyMapper(cfg.Mode)
	if m.recorder != nil {
		m.recorder = replay.NewRecorder(cfg.ID, string(m.opts.Difficulty), m.opts.Run)
	}
	m.paused = false
	m.saved = false
	m.lastTick = time.Time{}
	m.status = "reloaded " + filepath.Base(path)
	m.opts.Logger.Info("mission reloaded", "id", cfg.ID, "path", path)
	return m, next
}

// draw renders the current run into the screen buffer.
func (m *Model) draw() {
	if sc, ok := m.run.Scene(); ok {
		DrawScene(m.screen, sc, m.frame/6%2 == 0)
		return
	}
	if v, ok := m.run.FirstPersonView(); ok {
		DrawFirstPerson(m.screen, m.run.DepthColumns(m.screen.Width()), v)
		if m.screen.Width() >= 60 {
			DrawMinimap(m.screen, v, 1, 1)
		}
		return
	}
	m.screen.Clear()
}

// saveScreenshot saves the current screen to a file.
func (m *Model) saveScreenshot() {
	m.draw()

	dir := filepath.Join(os.Getenv("HOME"), ".sortie", "screenshots")
	//nolint:errcheck // Best-effort directory creation
	os.MkdirAll(dir, 0o755)

	timestamp := time.Now().Format("20060102_150405")
	path := filepath.Join(dir, fmt.Sprintf("%s_%s.txt", m.cfg.ID, timestamp))

	//nolint:errcheck // Best-effort save, game continues regardless
	os.WriteFile(path, []byte(m.screen.String()), 0o600)
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting || m.back {
		return ""
	}

	hud := renderHUD(m.run, m.opts.Theme, m.width, m.status)
	m.draw()
	field := RenderScreen(m.screen)

	switch {
	case m.run.Outcome() == mission.OutcomeCleared:
		field = renderOverlay(m.opts.Theme, m.screen.Width(), m.screen.Height(),
			"MISSION CLEARED",
			fmt.Sprintf("time %.2fs  health %d", m.run.Elapsed(), m.run.PlayerHealth()),
			m.status,
			"R restart  Q quit")
	case m.run.Outcome() == mission.OutcomeFailed:
		field = renderOverlay(m.opts.Theme, m.screen.Width(), m.screen.Height(),
			"MISSION FAILED",
			fmt.Sprintf("time %.2fs", m.run.Elapsed()),
			"R restart  Q quit")
	case m.paused:
		field = renderOverlay(m.opts.Theme, m.screen.Width(), m.screen.Height(),
			"PAUSED", controlsHelp(m.cfg.Mode), "P resume  R restart  Q quit")
	}
	return hud + "\n" + field
}

// controlsHelp lists the bindings of a mode.
func controlsHelp(mode mission.Mode) string {
	if mode == mission.ModeFirstPerson {
		return "W/S move  A/D turn  Space/F fire"
	}
	return "A/D move  W/Space jump  X dash  F fire  C charge"
}

// BackToMenu reports whether an embedded model was asked to close.
func (m Model) BackToMenu() bool {
	return m.back
}

// Outcome returns the outcome of the current attempt.
func (m Model) Outcome() mission.Outcome {
	return m.run.Outcome()
}

// Run starts the Bubble Tea program for one mission.
func Run(cfg mission.Config, opts PlayOptions) error {
	model := NewModel(cfg, opts)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(), // Use alternate screen buffer
	)

	_, err := p.Run()
	return err
}
