// ABOUTME: Tests for locale formatting, status tags and view models
// ABOUTME: Covers fallbacks for bad currencies and unsupported locales
package present

import (
	"errors"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/harperreed/pipeline/models"
)

func newUS(t *testing.T) *Formatter {
	t.Helper()
	f, err := NewFormatter("en-US", "USD")
	require.NoError(t, err)
	return f
}

func TestCurrencyUSD(t *testing.T) {
	f := newUS(t)

	got, err := f.Currency(50000, "USD")
	require.NoError(t, err)
	assert.Equal(t, "$50,000.00", got)

	got, err = f.Currency(-1500, "USD")
	require.NoError(t, err)
	assert.Equal(t, "-$1,500.00", got)
}

func TestCurrencyWithoutMinorUnits(t *testing.T) {
	f := newUS(t)

	got, err := f.Currency(5000, "JPY")
	require.NoError(t, err)
	assert.Contains(t, got, "5,000")
	assert.NotContains(t, got, ".")
}

func TestCurrencyRoundsHalfAwayFromZero(t *testing.T) {
	f := newUS(t)

	got, err := f.Currency(1234.5, "JPY")
	require.NoError(t, err)
	assert.Contains(t, got, "1,235")

	got, err = f.Currency(0.125, "USD")
	require.NoError(t, err)
	assert.Equal(t, "$0.13", got)

	got, err = f.Currency(-0.001, "USD")
	require.NoError(t, err)
	assert.Equal(t, "$0.00", got)
}

func TestCurrencyUnknownCode(t *testing.T) {
	f := newUS(t)

	_, err := f.Currency(10, "NOPE")
	var fe *models.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "currency", fe.Kind)
	assert.Equal(t, "NOPE", fe.Value)
}

func TestNewFormatterRejects(t *testing.T) {
	tests := []struct {
		name     string
		locale   string
		currency string
		kind     string
	}{
		{"malformed locale", "not a locale!", "USD", "locale"},
		{"unsupported locale", "zh-CN", "USD", "locale"},
		{"bad base currency", "en-US", "DOLLARS", "currency"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewFormatter(tt.locale, tt.currency)
			var fe *models.FormatError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FormatError, got %v", err)
			}
			if fe.Kind != tt.kind {
				t.Errorf("expected kind %q, got %q", tt.kind, fe.Kind)
			}
		})
	}
}

func TestLocaleMatching(t *testing.T) {
	f, err := NewFormatter("en", "usd")
	require.NoError(t, err)
	assert.Equal(t, "USD", f.BaseCurrency)
}

func TestDate(t *testing.T) {
	f := newUS(t)

	got, err := f.Date("2024-01-15T10:30:00Z")
	require.NoError(t, err)
	assert.Equal(t, "1/15/2024", got)

	got, err = f.Date("2024-02-15")
	require.NoError(t, err)
	assert.Equal(t, "2/15/2024", got)

	got, err = f.Date("2024-01-15T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, "1/15/2024", got)

	_, err = f.Date("yesterday")
	var fe *models.FormatError
	require.True(t, errors.As(err, &fe))
	assert.Equal(t, "date", fe.Kind)
}

func TestDateBritish(t *testing.T) {
	f, err := NewFormatter("en-GB", "GBP")
	require.NoError(t, err)

	got, err := f.Date("2024-01-05T00:00:00Z")
	require.NoError(t, err)
	assert.Equal(t, "05/01/2024", got)
}

func TestCompactCurrency(t *testing.T) {
	f := newUS(t)

	tests := []struct {
		amount float64
		want   string
	}{
		{1250000, "$1.3M"},
		{52500, "$52.5K"},
		{999, "$999"},
		{0, "$0"},
	}
	for _, tt := range tests {
		got, err := f.CompactCurrency(tt.amount, "USD")
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestPercent(t *testing.T) {
	assert.Equal(t, "67%", Percent(66.6))
	assert.Equal(t, "0%", Percent(0))
	assert.Equal(t, "100%", Percent(100))
	assert.Equal(t, "3%", Percent(2.5))
	assert.Equal(t, Fallback, Percent(math.NaN()))
	assert.Equal(t, Fallback, Percent(math.Inf(1)))
}

func TestTags(t *testing.T) {
	assert.Equal(t, "orange", StageTag(models.StageNegotiation).Color)
	assert.Equal(t, "Closed Won", StageTag(models.StageClosedWon).Label)
	assert.Equal(t, "red", StageTag(models.StageClosedLost).Color)
	assert.Equal(t, "gray", StageTag("unknown").Color)
	assert.Equal(t, "blue", CustomerStatusTag(models.CustomerProspect).Color)
	assert.Equal(t, "green", ContactStatusTag(models.ContactActive).Color)
	assert.Equal(t, "bg-green-100 text-green-800", CustomerStatusTag(models.CustomerActive).Class())
}

func TestCustomerListSummary(t *testing.T) {
	f := newUS(t)
	customers := []models.Customer{
		{ID: "1", Name: "Acme", Status: models.CustomerActive, CreatedAt: time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)},
		{ID: "2", Name: "Tech", Status: models.CustomerProspect},
	}

	v := f.CustomerList(customers, 3, true)
	assert.Equal(t, "Showing 2 of 3 customers", v.Summary)
	assert.Empty(t, v.EmptyMessage)
	assert.Equal(t, "1/15/2024", v.Rows[0].Created)
	assert.Equal(t, Fallback, v.Rows[1].Created)
	assert.Equal(t, Fallback, v.Rows[1].Industry)

	empty := f.CustomerList(nil, 3, true)
	assert.Equal(t, "No customers found matching your search.", empty.EmptyMessage)

	none := f.CustomerList(nil, 0, false)
	assert.Equal(t, "No customers yet.", none.EmptyMessage)
}

func TestDealListFallsBackPerRecord(t *testing.T) {
	f := newUS(t)
	deals := []models.Deal{
		{ID: "good", Amount: 100, Currency: "USD", Stage: models.StageLead, Probability: 10},
		{ID: "bad", Amount: 100, Currency: "???", Stage: models.StageLead},
	}

	v, err := f.DealList(deals, 2, false)
	require.Error(t, err)
	var fe *models.FormatError
	assert.True(t, errors.As(err, &fe))

	require.Len(t, v.Rows, 2)
	assert.Equal(t, "$100.00", v.Rows[0].Amount)
	assert.Equal(t, "10%", v.Rows[0].Probability)
	assert.Equal(t, Fallback, v.Rows[1].Amount)
	assert.Equal(t, Fallback, v.Rows[1].ExpectedClose)
}

func TestPipelineView(t *testing.T) {
	f := newUS(t)
	closeDate := time.Date(2024, 2, 15, 0, 0, 0, 0, time.UTC)
	deals := []models.Deal{
		{ID: "1", Title: "License", Amount: 50000, Currency: "USD", Stage: models.StageNegotiation, Probability: 75, ExpectedCloseDate: &closeDate},
		{ID: "2", Title: "Cloud", Amount: 25000, Currency: "USD", Stage: models.StageProposal, Probability: 60},
	}

	v, err := f.Pipeline(deals)
	require.NoError(t, err)
	assert.Equal(t, "$75,000.00", v.TotalValue)
	assert.Equal(t, "$52,500.00", v.WeightedValue)
	assert.Equal(t, "0%", v.ConversionRate)
	assert.Equal(t, 2, v.ActiveDeals)

	require.Len(t, v.Columns, 6)
	neg := v.Columns[3]
	assert.Equal(t, models.StageNegotiation, neg.Stage)
	require.Len(t, neg.Cards, 1)
	assert.Equal(t, "2/15/2024", neg.Cards[0].CloseDate)
	assert.Empty(t, v.Columns[0].Cards)
}

func TestDashboardView(t *testing.T) {
	f := newUS(t)
	ts := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)
	stats := models.DashboardStats{
		TotalCustomers: 3,
		TotalContacts:  1,
		ActiveDeals:    3,
		TotalRevenue:   1250000,
		DealsByStage:   map[models.Stage]int{models.StageLead: 2},
		RecentActivity: []models.Activity{
			{ID: "a", Type: models.ActivityCustomerCreated, Description: "New customer", Timestamp: ts},
		},
	}

	v, err := f.Dashboard(stats)
	require.NoError(t, err)
	require.Len(t, v.Cards, 4)
	assert.Equal(t, "3", v.Cards[0].Value)
	assert.Equal(t, "$1.3M", v.Cards[3].Value)

	require.Len(t, v.DealsByStage, 6)
	assert.Equal(t, 2, v.DealsByStage[0].Count)
	assert.Equal(t, 0, v.DealsByStage[5].Count)

	require.Len(t, v.RecentActivity, 1)
	assert.Equal(t, "customer created", v.RecentActivity[0].Type)
	assert.Equal(t, "1/15/2024", v.RecentActivity[0].Date)
}
