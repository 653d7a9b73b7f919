// ABOUTME: Terminal User Interface using bubbletea framework
// ABOUTME: Provides interactive full-screen interface for CRM operations
package tui

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/rs/zerolog"

	"github.com/harperreed/pipeline/filter"
	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/store"
)

// ViewMode represents the current TUI view
type ViewMode int

const (
	ViewList ViewMode = iota
	ViewDetail
	ViewEdit
	ViewGraph
	ViewMoveStage
)

// EntityType is the active tab.
type EntityType int

const (
	EntityDashboard EntityType = iota
	EntityCustomers
	EntityContacts
	EntityDeals
	EntityPipeline
	entityCount
)

var tabNames = []string{"Dashboard", "Customers", "Contacts", "Deals", "Pipeline"}

// Model is the main bubbletea model
type Model struct {
	store       *store.Memory
	fmt         *present.Formatter
	log         zerolog.Logger
	recentLimit int
	now         func() time.Time

	viewMode   ViewMode
	entityType EntityType

	// List view state
	selectedRow int
	criteria    [entityCount]filter.Criteria
	search      textinput.Model
	searching   bool

	// Detail view state
	selectedID string

	// Edit view state
	formInputs []textinput.Model
	focusIndex int

	// Graph view state
	graphDOT string

	// Move stage state
	targetStage models.Stage

	// UI state
	message string
	width   int
	height  int
	err     error
}

// NewModel creates a new TUI model
func NewModel(st *store.Memory, f *present.Formatter, log zerolog.Logger, recentLimit int) Model {
	search := textinput.New()
	search.Placeholder = "Search"
	search.CharLimit = 100

	m := Model{
		store:       st,
		fmt:         f,
		log:         log,
		recentLimit: recentLimit,
		now:         time.Now,
		viewMode:    ViewList,
		entityType:  EntityDashboard,
		search:      search,
		width:       80,
		height:      24,
	}
	for i := range m.criteria {
		m.criteria[i] = m.criteria[i].Clear()
	}
	return m
}

// Run starts the full-screen program and blocks until the user quits.
func Run(m Model) error {
	_, err := tea.NewProgram(m, tea.WithAltScreen()).Run()
	return err
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKeyPress(msg)
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	}
	return m, nil
}

func (m Model) View() string {
	switch m.viewMode {
	case ViewList:
		return m.renderListView()
	case ViewDetail:
		return m.renderDetailView()
	case ViewEdit:
		return m.renderEditView()
	case ViewGraph:
		return m.renderGraphView()
	case ViewMoveStage:
		return m.renderMoveStageView()
	}
	return ""
}

func (m Model) handleKeyPress(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}

	// Text entry owns every other key, including q.
	typing := m.viewMode == ViewEdit || (m.viewMode == ViewList && m.searching)
	if !typing && msg.String() == "q" {
		return m, tea.Quit
	}

	// Delegate to view-specific handlers
	switch m.viewMode {
	case ViewList:
		return m.handleListKeys(msg)
	case ViewDetail:
		return m.handleDetailKeys(msg)
	case ViewEdit:
		return m.handleEditKeys(msg)
	case ViewGraph:
		return m.handleGraphKeys(msg)
	case ViewMoveStage:
		return m.handleMoveStageKeys(msg)
	}

	return m, nil
}

// Styles
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			MarginBottom(1)

	tabActiveStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("170")).
			Background(lipgloss.Color("235")).
			Padding(0, 2)

	tabInactiveStyle = lipgloss.NewStyle().
				Foreground(lipgloss.Color("240")).
				Padding(0, 2)

	helpStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			MarginTop(1)

	messageStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("10"))

	errorStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("9"))
)

// tagColors maps present tag colors onto terminal colors.
var tagColors = map[string]lipgloss.Color{
	"gray":   lipgloss.Color("245"),
	"blue":   lipgloss.Color("33"),
	"yellow": lipgloss.Color("220"),
	"orange": lipgloss.Color("208"),
	"green":  lipgloss.Color("34"),
	"red":    lipgloss.Color("160"),
}

func renderTag(t present.Tag) string {
	return lipgloss.NewStyle().Foreground(tagColors[t.Color]).Render(t.Label)
}

func (m Model) renderStatus() string {
	if m.err != nil {
		return errorStyle.Render("Error: " + m.err.Error())
	}
	if m.message != "" {
		return messageStyle.Render(m.message)
	}
	return ""
}
