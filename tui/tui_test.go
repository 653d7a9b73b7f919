// ABOUTME: Tests for TUI navigation, filtering, forms and the move-stage dialog
// ABOUTME: Drives the model with key messages against the demo data set
package tui

import (
	"errors"
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipeline/models"
	"github.com/harperreed/pipeline/present"
	"github.com/harperreed/pipeline/seed"
	"github.com/harperreed/pipeline/store"
)

func newTestModel(t *testing.T) Model {
	t.Helper()
	data, err := seed.Mock()
	require.NoError(t, err)
	f, err := present.NewFormatter("en-US", "USD")
	require.NoError(t, err)

	m := NewModel(store.New(data.Collections()), f, zerolog.Nop(), 5)
	m.now = func() time.Time { return time.Date(2024, 1, 16, 9, 0, 0, 0, time.UTC) }
	m.width = 160
	m.height = 40
	return m
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...tea.KeyMsg) Model {
	t.Helper()
	for _, k := range keys {
		next, _ := m.Update(k)
		m = next.(Model)
	}
	return m
}

var tab = tea.KeyMsg{Type: tea.KeyTab}

func TestTabsCycle(t *testing.T) {
	m := newTestModel(t)
	assert.Equal(t, EntityDashboard, m.entityType)

	m = press(t, m, tab)
	assert.Equal(t, EntityCustomers, m.entityType)
	assert.Contains(t, m.View(), "Showing 3 of 3 customers")

	m = press(t, m, tab, tab, tab, tab)
	assert.Equal(t, EntityDashboard, m.entityType)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})
	assert.Equal(t, EntityPipeline, m.entityType)
}

func TestDashboardTab(t *testing.T) {
	m := newTestModel(t)
	view := m.View()

	assert.Contains(t, view, "Total Customers")
	assert.Contains(t, view, "Recent Activity")
	assert.Contains(t, view, `New customer "Acme Corp" added`)
}

func TestPipelineTab(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tea.KeyMsg{Type: tea.KeyShiftTab})

	view := m.View()
	assert.Contains(t, view, "Total: $225,000.00")
	assert.Contains(t, view, "Weighted: $112,500.00")
}

func TestStatusAndIndustryFilters(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab)

	m = press(t, m, runes("s"))
	assert.Equal(t, "active", m.criteria[EntityCustomers].Status)
	assert.Len(t, m.customers(), 2)

	m = press(t, m, runes("s"), runes("s"))
	assert.Equal(t, "prospect", m.criteria[EntityCustomers].Status)
	assert.Len(t, m.customers(), 1)

	m = press(t, m, runes("c"))
	assert.Len(t, m.customers(), 3)

	m = press(t, m, runes("i"))
	assert.Equal(t, "Manufacturing", m.criteria[EntityCustomers].Category)
	require.Len(t, m.customers(), 1)
	assert.Equal(t, "Global Manufacturing", m.customers()[0].Name)
}

func TestSearch(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab, runes("/"))
	require.True(t, m.searching)

	m = press(t, m, runes("t"), runes("e"), runes("c"), runes("h"))
	assert.Equal(t, "tech", m.criteria[EntityCustomers].SearchTerm)
	require.Len(t, m.customers(), 1)
	assert.Equal(t, "Tech Solutions Inc", m.customers()[0].Name)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.False(t, m.searching)
	assert.Equal(t, "tech", m.criteria[EntityCustomers].SearchTerm)

	m = press(t, m, runes("/"), tea.KeyMsg{Type: tea.KeyEsc})
	assert.Empty(t, m.criteria[EntityCustomers].SearchTerm)
	assert.Len(t, m.customers(), 3)
}

func TestQuit(t *testing.T) {
	m := newTestModel(t)

	_, cmd := m.Update(runes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())

	m = press(t, m, tab, runes("/"))
	_, cmd = m.Update(runes("q"))
	if cmd != nil {
		if _, quit := cmd().(tea.QuitMsg); quit {
			t.Error("q should not quit while searching")
		}
	}
}

func TestMoveDealStage(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab, tab, tab)
	require.Equal(t, EntityDeals, m.entityType)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.viewMode)
	require.Equal(t, "1", m.selectedID)
	assert.Contains(t, m.View(), "Enterprise Software License")

	m = press(t, m, runes("m"))
	require.Equal(t, ViewMoveStage, m.viewMode)
	assert.Equal(t, models.StageNegotiation, m.targetStage)

	m = press(t, m, tea.KeyMsg{Type: tea.KeyRight}, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewDetail, m.viewMode)
	assert.Contains(t, m.message, "moved to Closed Won")

	deal, err := m.store.Deal("1")
	require.NoError(t, err)
	assert.Equal(t, models.StageClosedWon, deal.Stage)
}

func TestStepStageWraps(t *testing.T) {
	assert.Equal(t, models.StageClosedLost, stepStage(models.StageLead, -1))
	assert.Equal(t, models.StageLead, stepStage(models.StageClosedLost, 1))
	assert.Equal(t, models.StageLead, stepStage("bogus", 1))
}

func TestNewCustomerForm(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab, runes("n"))
	require.Equal(t, ViewEdit, m.viewMode)
	require.Len(t, m.formInputs, 6)

	// Empty form fails validation and stays open.
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewEdit, m.viewMode)
	var verrs models.ValidationErrors
	require.True(t, errors.As(m.err, &verrs))
	assert.NotNil(t, verrs.Field("name"))

	m.formInputs[0].SetValue("Initech")
	m.formInputs[1].SetValue("hello@initech.com")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	assert.Equal(t, ViewList, m.viewMode)
	assert.NoError(t, m.err)
	assert.Len(t, m.store.Customers(), 4)
	assert.True(t, strings.HasPrefix(m.message, "✓ Customer created"))
}

func TestNewDealFormRejectsBadNumbers(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab, tab, tab, runes("n"))
	require.Len(t, m.formInputs, 8)

	m.formInputs[0].SetValue("Support Plan")
	m.formInputs[2].SetValue("lots")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})

	var verrs models.ValidationErrors
	require.True(t, errors.As(m.err, &verrs))
	assert.NotNil(t, verrs.Field("amount"))
	assert.Len(t, m.store.Deals(), 3)

	m.formInputs[2].SetValue("1200")
	m = press(t, m, tea.KeyMsg{Type: tea.KeyEnter})
	require.NoError(t, m.err)
	assert.Len(t, m.store.Deals(), 4)
}

func TestCustomerDetailShowsRelated(t *testing.T) {
	m := newTestModel(t)
	m = press(t, m, tab, tea.KeyMsg{Type: tea.KeyEnter})
	require.Equal(t, ViewDetail, m.viewMode)

	view := m.View()
	assert.Contains(t, view, "Acme Corporation")
	assert.Contains(t, view, "Sarah Chen")
	assert.Contains(t, view, "Enterprise Software License")
}
