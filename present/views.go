// ABOUTME: Display-ready view models for lists, the pipeline board and the dashboard
// ABOUTME: A record that fails to format shows Fallback and its error is joined into the result
package present

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
)

type CustomerRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Company  string `json:"company"`
	Industry string `json:"industry"`
	Status   Tag    `json:"status"`
	Created  string `json:"created"`
}

type DealRow struct {
	ID            string `json:"id"`
	Title         string `json:"title"`
	Description   string `json:"description"`
	Amount        string `json:"amount"`
	Stage         Tag    `json:"stage"`
	Probability   string `json:"probability"`
	ExpectedClose string `json:"expected_close"`
}

type ContactRow struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Position string `json:"position"`
	Status   Tag    `json:"status"`
}

// ListView wraps filtered rows with the "Showing N of M" summary and empty message.
type ListView[R any] struct {
	Rows         []R    `json:"rows"`
	Shown        int    `json:"shown"`
	Total        int    `json:"total"`
	Summary      string `json:"summary"`
	EmptyMessage string `json:"empty_message,omitempty"`
}

func newListView[R any](rows []R, total int, noun string, filtered bool) ListView[R] {
	v := ListView[R]{
		Rows:    rows,
		Shown:   len(rows),
		Total:   total,
		Summary: fmt.Sprintf("Showing %d of %d %s", len(rows), total, noun),
	}
	if len(rows) == 0 {
		if filtered {
			v.EmptyMessage = fmt.Sprintf("No %s found matching your search.", noun)
		} else {
			v.EmptyMessage = fmt.Sprintf("No %s yet.", noun)
		}
	}
	return v
}

func (f *Formatter) CustomerRow(c models.Customer) CustomerRow {
	row := CustomerRow{
		ID:       c.ID,
		Name:     c.Name,
		Email:    c.Email,
		Phone:    orFallback(c.Phone),
		Company:  orFallback(c.Company),
		Industry: orFallback(string(c.Industry)),
		Status:   CustomerStatusTag(c.Status),
		Created:  Fallback,
	}
	if !c.CreatedAt.IsZero() {
		row.Created = f.DateOf(c.CreatedAt)
	}
	return row
}

// CustomerList formats the filtered customers; total is the unfiltered count.
func (f *Formatter) CustomerList(shown []models.Customer, total int, filtered bool) ListView[CustomerRow] {
	rows := make([]CustomerRow, 0, len(shown))
	for _, c := range shown {
		rows = append(rows, f.CustomerRow(c))
	}
	return newListView(rows, total, "customers", filtered)
}

func (f *Formatter) DealRow(d models.Deal) (DealRow, error) {
	row := DealRow{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Stage:         StageTag(d.Stage),
		Probability:   fmt.Sprintf("%d%%", d.Probability),
		ExpectedClose: Fallback,
	}
	if d.ExpectedCloseDate != nil {
		row.ExpectedClose = f.DateOf(*d.ExpectedCloseDate)
	}

	amount, err := f.Currency(d.Amount, d.Currency)
	if err != nil {
		row.Amount = Fallback
		return row, fmt.Errorf("deal %s: %w", d.ID, err)
	}
	row.Amount = amount
	return row, nil
}

func (f *Formatter) DealList(shown []models.Deal, total int, filtered bool) (ListView[DealRow], error) {
	rows := make([]DealRow, 0, len(shown))
	var errs []error
	for _, d := range shown {
		row, err := f.DealRow(d)
		errs = append(errs, err)
		rows = append(rows, row)
	}
	return newListView(rows, total, "deals", filtered), errors.Join(errs...)
}

func (f *Formatter) ContactRow(c models.Contact) ContactRow {
	return ContactRow{
		ID:       c.ID,
		Name:     c.FullName(),
		Email:    c.Email,
		Phone:    orFallback(c.Phone),
		Position: orFallback(c.Position),
		Status:   ContactStatusTag(c.Status),
	}
}

func (f *Formatter) ContactList(shown []models.Contact, total int, filtered bool) ListView[ContactRow] {
	rows := make([]ContactRow, 0, len(shown))
	for _, c := range shown {
		rows = append(rows, f.ContactRow(c))
	}
	return newListView(rows, total, "contacts", filtered)
}

// DealCard is a deal as it appears inside a pipeline column.
type DealCard struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Amount      string `json:"amount"`
	Probability string `json:"probability"`
	CloseDate   string `json:"close_date"`
}

type StageColumn struct {
	Stage  models.Stage `json:"stage"`
	Tag    Tag          `json:"tag"`
	Count  int          `json:"count"`
	Amount string       `json:"amount"`
	Cards  []DealCard   `json:"cards"`
}

type PipelineView struct {
	DealCount       int           `json:"deal_count"`
	TotalValue      string        `json:"total_value"`
	WonValue        string        `json:"won_value"`
	WeightedValue   string        `json:"weighted_value"`
	ConversionRate  string        `json:"conversion_rate"`
	AverageDealSize string        `json:"average_deal_size"`
	ActiveDeals     int           `json:"active_deals"`
	Columns         []StageColumn `json:"columns"`
}

// Pipeline builds the board: six columns in stage order plus headline figures
// in the base currency.
func (f *Formatter) Pipeline(deals []models.Deal) (PipelineView, error) {
	sum := metrics.Summarize(deals)
	var errs []error

	money := func(v float64) string {
		s, err := f.Currency(v, f.BaseCurrency)
		if err != nil {
			errs = append(errs, err)
			return Fallback
		}
		return s
	}

	view := PipelineView{
		DealCount:       sum.DealCount,
		TotalValue:      money(sum.TotalValue),
		WonValue:        money(sum.WonValue),
		WeightedValue:   money(sum.WeightedValue),
		ConversionRate:  Percent(sum.ConversionRate),
		AverageDealSize: money(sum.AverageDealSize),
		ActiveDeals:     sum.ActiveDeals,
	}

	for _, col := range metrics.StageBreakdown(deals) {
		sc := StageColumn{
			Stage:  col.Stage,
			Tag:    StageTag(col.Stage),
			Count:  col.Count,
			Amount: money(col.Amount),
			Cards:  make([]DealCard, 0, len(col.Deals)),
		}
		for _, d := range col.Deals {
			row, err := f.DealRow(d)
			errs = append(errs, err)
			sc.Cards = append(sc.Cards, DealCard{
				ID:          d.ID,
				Title:       d.Title,
				Amount:      row.Amount,
				Probability: row.Probability,
				CloseDate:   row.ExpectedClose,
			})
		}
		view.Columns = append(view.Columns, sc)
	}

	return view, errors.Join(errs...)
}

type StatCard struct {
	Title string `json:"title"`
	Value string `json:"value"`
}

type StageCount struct {
	Tag   Tag `json:"tag"`
	Count int `json:"count"`
}

type ActivityRow struct {
	ID          string    `json:"id"`
	Type        string    `json:"type"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Timestamp   time.Time `json:"timestamp"`
}

type DashboardView struct {
	Cards          []StatCard    `json:"cards"`
	DealsByStage   []StageCount  `json:"deals_by_stage"`
	RecentActivity []ActivityRow `json:"recent_activity"`
}

func (f *Formatter) Dashboard(stats models.DashboardStats) (DashboardView, error) {
	revenue, err := f.CompactCurrency(stats.TotalRevenue, f.BaseCurrency)
	if err != nil {
		revenue = Fallback
	}

	view := DashboardView{
		Cards: []StatCard{
			{Title: "Total Customers", Value: fmt.Sprint(stats.TotalCustomers)},
			{Title: "Total Contacts", Value: fmt.Sprint(stats.TotalContacts)},
			{Title: "Active Deals", Value: fmt.Sprint(stats.ActiveDeals)},
			{Title: "Total Revenue", Value: revenue},
		},
		DealsByStage:   make([]StageCount, 0, len(models.Stages)),
		RecentActivity: make([]ActivityRow, 0, len(stats.RecentActivity)),
	}

	for _, st := range models.Stages {
		view.DealsByStage = append(view.DealsByStage, StageCount{Tag: StageTag(st), Count: stats.DealsByStage[st]})
	}
	for _, a := range stats.RecentActivity {
		view.RecentActivity = append(view.RecentActivity, ActivityRow{
			ID:          a.ID,
			Type:        strings.ReplaceAll(string(a.Type), "_", " "),
			Description: a.Description,
			Date:        f.DateOf(a.Timestamp),
			Timestamp:   a.Timestamp,
		})
	}

	return view, err
}

func orFallback(s string) string {
	if strings.TrimSpace(s) == "" {
		return Fallback
	}
	return s
}
