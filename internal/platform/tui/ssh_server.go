package tui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"
	"github.com/charmbracelet/ssh"
	"github.com/charmbracelet/wish"
	"github.com/charmbracelet/wish/bubbletea"
	"github.com/google/uuid"

	"github.com/vovakirdan/sortie/internal/config"
	"github.com/vovakirdan/sortie/internal/mission"
	"github.com/vovakirdan/sortie/internal/registry"
	"github.com/vovakirdan/sortie/internal/storage"
)

// SSHServerConfig holds configuration for the SSH server.
type SSHServerConfig struct {
	// Address is the host:port to listen on (e.g., ":23234").
	Address string

	// HostKeyPath is the path to the host key file.
	// If empty, a key will be auto-generated at ~/.sortie/host_key.
	HostKeyPath string

	// DBPath is the path to the shared profile database.
	DBPath string

	// IdleTimeout is how long to wait before closing idle connections.
	IdleTimeout time.Duration

	// TickRate, MaxDT and Difficulty apply to every session.
	TickRate   int
	MaxDT      float64
	Difficulty config.DifficultyPreset
	Theme      Theme
}

// DefaultSSHServerConfig returns a config with sensible defaults.
func DefaultSSHServerConfig() SSHServerConfig {
	return SSHServerConfig{
		Address:     ":23234",
		DBPath:      "~/.sortie/profile.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    60,
		Difficulty:  config.DifficultyNormal,
		Theme:       DefaultTheme(),
	}
}

// SSHServer wraps a Wish SSH server that hosts mission sessions.
type SSHServer struct {
	config SSHServerConfig
	server *ssh.Server
	store  *storage.Store
	logger *log.Logger
}

// NewSSHServer creates a new SSH server with the given configuration.
func NewSSHServer(cfg SSHServerConfig) (*SSHServer, error) {
	logger := log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "sortie-ssh",
	})

	store, err := storage.Open(cfg.DBPath)
	if err != nil {
		logger.Warn("could not open profile database", "error", err)
		// Continue without persistence
	}

	srv := &SSHServer{
		config: cfg,
		store:  store,
		logger: logger,
	}

	hostKeyPath := cfg.HostKeyPath
	if hostKeyPath == "" {
		home, homeErr := os.UserHomeDir()
		if homeErr != nil {
			return nil, fmt.Errorf("cannot get home directory: %w", homeErr)
		}
		hostKeyPath = filepath.Join(home, ".sortie", "host_key")
	}

	if mkdirErr := os.MkdirAll(filepath.Dir(hostKeyPath), 0o700); mkdirErr != nil {
		return nil, fmt.Errorf("cannot create host key directory: %w", mkdirErr)
	}

	opts := []ssh.Option{
		wish.WithAddress(cfg.Address),
		wish.WithHostKeyPath(hostKeyPath),
		wish.WithIdleTimeout(cfg.IdleTimeout),
		wish.WithMiddleware(
			bubbletea.Middleware(srv.teaHandler),
			srv.loggingMiddleware,
		),
	}

	server, err := wish.NewServer(opts...)
	if err != nil {
		if store != nil {
			store.Close()
		}
		return nil, fmt.Errorf("cannot create SSH server: %w", err)
	}

	srv.server = server
	return srv, nil
}

// teaHandler creates a Bubble Tea program for each SSH session.
func (s *SSHServer) teaHandler(sshSession ssh.Session) (tea.Model, []tea.ProgramOption) {
	pty, _, ok := sshSession.Pty()
	if !ok {
		s.logger.Warn("no PTY requested", "user", sshSession.User())
		return nil, nil
	}

	logger := s.logger.With("user", sshSession.User())
	model := NewSessionModel(s.store, s.config, logger, pty.Window.Width, pty.Window.Height)

	return model, []tea.ProgramOption{
		tea.WithAltScreen(),
	}
}

// loggingMiddleware logs SSH session events.
func (s *SSHServer) loggingMiddleware(next ssh.Handler) ssh.Handler {
	return func(sshSession ssh.Session) {
		s.logger.Info("session started",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
		next(sshSession)
		s.logger.Info("session ended",
			"user", sshSession.User(),
			"remote", sshSession.RemoteAddr().String(),
		)
	}
}

// ListenAndServe starts the SSH server and blocks until shutdown.
func (s *SSHServer) ListenAndServe() error {
	s.logger.Info("starting SSH server", "address", s.config.Address, "missions", len(registry.List()))

	done := make(chan os.Signal, 1)
	signal.Notify(done, os.Interrupt, syscall.SIGTERM)

	go func() {
		if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, ssh.ErrServerClosed) {
			s.logger.Error("server error", "error", err)
		}
	}()

	<-done
	s.logger.Info("shutting down...")
	return s.Shutdown()
}

// Shutdown gracefully stops the server.
func (s *SSHServer) Shutdown() error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if s.store != nil {
		s.store.Close()
	}

	return s.server.Shutdown(ctx)
}

// Addr returns the server's listen address string.
func (s *SSHServer) Addr() string {
	return s.config.Address
}

// sessionView is the screen a session is showing.
type sessionView int

const (
	viewMenu sessionView = iota
	viewRecords
	viewPlay
)

// SessionModel manages the full session flow: menu -> mission -> menu.
// This is the top-level model used for SSH sessions.
type SessionModel struct {
	store    *storage.Store
	config   SSHServerConfig
	logger   *log.Logger
	id       string
	width    int
	height   int
	view     sessionView
	menu     MenuModel
	records  RecordsModel
	play     *Model
	quitting bool
}

// NewSessionModel creates a new session model.
func NewSessionModel(store *storage.Store, cfg SSHServerConfig, logger *log.Logger, width, height int) SessionModel {
	id := uuid.NewString()
	return SessionModel{
		store:  store,
		config: cfg,
		logger: logger.With("session", id[:8]),
		id:     id,
		width:  width,
		height: height,
		menu:   NewMenuModel(store, cfg.Theme, width, height),
	}
}

// Init initializes the session.
func (m SessionModel) Init() tea.Cmd {
	return m.menu.Init()
}

// Update handles messages for the session.
func (m SessionModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if wsm, ok := msg.(tea.WindowSizeMsg); ok {
		m.width = wsm.Width
		m.height = wsm.Height
	}

	switch m.view {
	case viewPlay:
		return m.updatePlay(msg)
	case viewRecords:
		return m.updateRecords(msg)
	default:
		return m.updateMenu(msg)
	}
}

// updateMenu handles updates when in menu mode.
func (m SessionModel) updateMenu(msg tea.Msg) (tea.Model, tea.Cmd) {
	if _, ok := msg.(TickMsg); ok {
		// A stale tick from a closed mission ends its loop here.
		return m, nil
	}
	newMenu, cmd := m.menu.Update(msg)
	if menuModel, ok := newMenu.(MenuModel); ok {
		m.menu = menuModel
	}

	switch {
	case m.menu.IsQuitting():
		m.quitting = true
		return m, tea.Quit

	case m.menu.WantsRecords():
		m.records = NewRecordsModel(m.store, m.width, m.height)
		m.view = viewRecords
		return m, m.records.Init()

	case m.menu.Selected() != nil:
		play, err := m.startMission(m.menu.Selected().ID)
		if err != nil {
			// Shouldn't happen since the menu only lists registered missions
			m.logger.Error("cannot start mission", "err", err)
			m.menu = NewMenuModel(m.store, m.config.Theme, m.width, m.height)
			return m, nil
		}
		m.play = &play
		m.view = viewPlay
		return m, tea.Batch(m.play.Init(), func() tea.Msg {
			return tea.WindowSizeMsg{Width: m.width, Height: m.height}
		})
	}

	// The menu quits its own program when run standalone; swallow that here.
	return m, filterQuit(cmd)
}

// startMission builds a play model for a registered mission.
func (m SessionModel) startMission(id string) (Model, error) {
	cfg, err := registry.Lookup(id)
	if err != nil {
		return Model{}, err
	}
	config.ApplyDifficulty(&cfg, m.config.Difficulty)

	opts := PlayOptions{
		Store:      m.store,
		TickRate:   m.config.TickRate,
		Run:        mission.Options{MaxDT: m.config.MaxDT},
		Difficulty: m.config.Difficulty,
		Logger:     m.logger,
		Theme:      m.config.Theme,
		Embedded:   true,
	}
	if m.store != nil {
		if u, err := m.store.Unlocks(); err == nil {
			opts.Run.Unlocks = u
		}
	}
	return NewModel(cfg, opts), nil
}

// updatePlay handles updates while a mission is running.
func (m SessionModel) updatePlay(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.play.Update(msg)
	if play, ok := newModel.(Model); ok {
		m.play = &play
	}

	if m.play.BackToMenu() {
		m.play = nil
		m.view = viewMenu
		m.menu = NewMenuModel(m.store, m.config.Theme, m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// updateRecords handles updates while the records board is open.
func (m SessionModel) updateRecords(msg tea.Msg) (tea.Model, tea.Cmd) {
	newModel, cmd := m.records.Update(msg)
	if records, ok := newModel.(RecordsModel); ok {
		m.records = records
	}

	switch {
	case m.records.IsQuitting():
		m.quitting = true
		return m, tea.Quit
	case m.records.IsGoingBack():
		m.view = viewMenu
		m.menu = NewMenuModel(m.store, m.config.Theme, m.width, m.height)
		return m, m.menu.Init()
	}
	return m, cmd
}

// filterQuit drops a tea.Quit command so child models cannot end the session.
func filterQuit(cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return func() tea.Msg {
		msg := cmd()
		if _, ok := msg.(tea.QuitMsg); ok {
			return nil
		}
		return msg
	}
}

// View renders the current view.
func (m SessionModel) View() string {
	if m.quitting {
		return ""
	}

	switch m.view {
	case viewPlay:
		if m.play != nil {
			return m.play.View()
		}
	case viewRecords:
		return m.records.View()
	}
	return m.menu.View()
}
