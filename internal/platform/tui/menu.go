package tui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/sortie/internal/registry"
	"github.com/vovakirdan/sortie/internal/storage"
)

// MenuModel is the Bubble Tea model for the mission picker.
type MenuModel struct {
	items       []registry.MissionInfo
	stats       map[string]*storage.MissionStats
	unlocked    []string
	cursor      int
	width       int
	height      int
	theme       Theme
	quitting    bool
	selected    *registry.MissionInfo // Set when user selects a mission
	openRecords bool                  // True if user pressed Tab for records
}

// NewMenuModel creates a new menu model over the registered missions.
func NewMenuModel(store *storage.Store, theme Theme, width, height int) MenuModel {
	m := MenuModel{
		items:  registry.List(),
		width:  width,
		height: height,
		theme:  theme,
	}
	if store != nil {
		if stats, err := store.AllStats(); err == nil {
			m.stats = stats
		}
		if u, err := store.Unlocks(); err == nil {
			m.unlocked = u.Flags()
		}
	}
	return m
}

// Init initializes the menu model.
func (m MenuModel) Init() tea.Cmd {
	return nil
}

// Update handles messages for the menu.
func (m MenuModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}

	return m, nil
}

// handleKey processes keyboard input for menu navigation.
func (m MenuModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch MapKeyToMenuAction(msg) {
	case MenuActionQuit:
		m.quitting = true
		return m, tea.Quit

	case MenuActionUp:
		if m.cursor > 0 {
			m.cursor--
		}

	case MenuActionDown:
		if m.cursor < len(m.items)-1 {
			m.cursor++
		}

	case MenuActionSelect:
		if len(m.items) > 0 {
			selected := m.items[m.cursor]
			m.selected = &selected
			return m, tea.Quit
		}

	case MenuActionRecords:
		m.openRecords = true
		return m, tea.Quit
	}

	return m, nil
}

// View renders the menu.
func (m MenuModel) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuTitle.Render("S O R T I E"), m.width))
	b.WriteString("\n\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Select a mission"), m.width))
	b.WriteString("\n\n")

	if len(m.items) == 0 {
		b.WriteString(centerText(m.theme.MenuItemLocked.Render("No missions loaded."), m.width))
		b.WriteString("\n")
	}

	for i, item := range m.items {
		cursor := "  "
		style := m.theme.MenuItemNormal
		if i == m.cursor {
			cursor = "> "
			style = m.theme.MenuItemActive
		}
		b.WriteString(centerText(style.Render(cursor+m.itemLine(item)), m.width))
		b.WriteString("\n")
	}

	if len(m.items) > 0 {
		b.WriteString("\n")
		b.WriteString(centerText(m.theme.MenuDescription.Render(m.detailLine(m.items[m.cursor])), m.width))
		b.WriteString("\n")
	}

	unlocked := "none"
	if len(m.unlocked) > 0 {
		unlocked = strings.Join(m.unlocked, ", ")
	}
	b.WriteString("\n")
	b.WriteString(centerText(m.theme.MenuDescription.Render("Abilities: "+unlocked), m.width))
	b.WriteString("\n\n")

	controls := "Up/Down: Navigate  |  Enter: Launch  |  Tab: Records  |  Q: Quit"
	b.WriteString(centerText(m.theme.HUDControls.Render(controls), m.width))
	b.WriteString("\n")

	return b.String()
}

func (m MenuModel) itemLine(item registry.MissionInfo) string {
	tag := item.Mode
	if item.HasBoss {
		tag += ", boss"
	}
	line := fmt.Sprintf("%-18s [%s]", item.Name, tag)
	if st := m.stats[item.ID]; st != nil && st.Clears > 0 {
		line += fmt.Sprintf("  best %.1fs", st.BestTime)
	}
	return line
}

func (m MenuModel) detailLine(item registry.MissionInfo) string {
	st := m.stats[item.ID]
	attempts, clears := 0, 0
	if st != nil {
		attempts, clears = st.Attempts, st.Clears
	}
	line := fmt.Sprintf("%d attempts, %d clears", attempts, clears)
	if len(item.Unlocks) > 0 {
		line += "  |  grants " + strings.Join(item.Unlocks, ", ")
	}
	return line
}

// Selected returns the selected mission, or nil if none selected.
func (m MenuModel) Selected() *registry.MissionInfo {
	return m.selected
}

// IsQuitting returns true if user requested to quit.
func (m MenuModel) IsQuitting() bool {
	return m.quitting
}

// WantsRecords returns true if user requested the records board.
func (m MenuModel) WantsRecords() bool {
	return m.openRecords
}

// Size returns the last known terminal size.
func (m MenuModel) Size() (int, int) {
	return m.width, m.height
}

// centerText centers text within given width.
// Width is measured in cells, so styled text is padded correctly.
func centerText(text string, width int) string {
	w := lipgloss.Width(text)
	if w >= width {
		return text
	}
	padding := (width - w) / 2
	return strings.Repeat(" ", padding) + text
}

// MenuResult holds the result of running the menu.
type MenuResult struct {
	MissionID    string
	Width        int
	Height       int
	WantsRecords bool
	Quit         bool
}

// RunMenu runs the menu and returns the selection result.
func RunMenu(store *storage.Store, theme Theme, width, height int) (MenuResult, error) {
	model := NewMenuModel(store, theme, width, height)

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
	)

	finalModel, err := p.Run()
	if err != nil {
		return MenuResult{Width: width, Height: height}, err
	}

	m, ok := finalModel.(MenuModel)
	if !ok {
		return MenuResult{Width: width, Height: height, Quit: true}, nil
	}

	result := MenuResult{}
	result.Width, result.Height = m.Size()

	switch {
	case m.WantsRecords():
		result.WantsRecords = true
	case m.IsQuitting() || m.Selected() == nil:
		result.Quit = true
	default:
		result.MissionID = m.Selected().ID
	}
	return result, nil
}
