// ABOUTME: Demo data set with customers, contacts, deals and activities
// ABOUTME: Ships an embedded fixture and loads external YAML files of the same shape
package seed

import (
	_ "embed"
	"fmt"
	"math"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
)

//go:embed mock.yaml
var mockYAML []byte

// Data is one loaded fixture.
type Data struct {
	Customers  []models.Customer
	Contacts   []models.Contact
	Deals      []models.Deal
	Activities []models.Activity
}

// Collections hands the fixture to a store or the metrics functions.
func (d *Data) Collections() metrics.Collections {
	return metrics.Collections{
		Customers:  d.Customers,
		Contacts:   d.Contacts,
		Deals:      d.Deals,
		Activities: d.Activities,
	}
}

type fileCustomer struct {
	ID        string `yaml:"id"`
	Name      string `yaml:"name"`
	Email     string `yaml:"email"`
	Phone     string `yaml:"phone"`
	Company   string `yaml:"company"`
	Industry  string `yaml:"industry"`
	Status    string `yaml:"status"`
	CreatedAt string `yaml:"created_at"`
	UpdatedAt string `yaml:"updated_at"`
}

type fileContact struct {
	ID         string `yaml:"id"`
	FirstName  string `yaml:"first_name"`
	LastName   string `yaml:"last_name"`
	Email      string `yaml:"email"`
	Phone      string `yaml:"phone"`
	Position   string `yaml:"position"`
	CustomerID string `yaml:"customer_id"`
	Status     string `yaml:"status"`
	CreatedAt  string `yaml:"created_at"`
	UpdatedAt  string `yaml:"updated_at"`
}

type fileDeal struct {
	ID                string  `yaml:"id"`
	Title             string  `yaml:"title"`
	Description       string  `yaml:"description"`
	Amount            float64 `yaml:"amount"`
	Currency          string  `yaml:"currency"`
	Stage             string  `yaml:"stage"`
	CustomerID        string  `yaml:"customer_id"`
	ContactID         string  `yaml:"contact_id"`
	ExpectedCloseDate string  `yaml:"expected_close_date"`
	Probability       int     `yaml:"probability"`
	CreatedAt         string  `yaml:"created_at"`
	UpdatedAt         string  `yaml:"updated_at"`
}

type fileActivity struct {
	ID          string `yaml:"id"`
	Type        string `yaml:"type"`
	Description string `yaml:"description"`
	Timestamp   string `yaml:"timestamp"`
	EntityID    string `yaml:"entity_id"`
	EntityType  string `yaml:"entity_type"`
}

type file struct {
	Customers  []fileCustomer `yaml:"customers"`
	Contacts   []fileContact  `yaml:"contacts"`
	Deals      []fileDeal     `yaml:"deals"`
	Activities []fileActivity `yaml:"activities"`
}

// Mock returns the built-in demo data.
func Mock() (*Data, error) {
	return Parse(mockYAML)
}

// Load reads a fixture file. The file is never written back.
func Load(path string) (*Data, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read data file: %w", err)
	}
	data, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return data, nil
}

// Parse decodes fixture YAML, rejecting unknown statuses, stages and industries
// and ids repeated within a collection.
func Parse(raw []byte) (*Data, error) {
	var f file
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("failed to parse data file: %w", err)
	}

	data := &Data{
		Customers:  make([]models.Customer, 0, len(f.Customers)),
		Contacts:   make([]models.Contact, 0, len(f.Contacts)),
		Deals:      make([]models.Deal, 0, len(f.Deals)),
		Activities: make([]models.Activity, 0, len(f.Activities)),
	}

	ids := newIDSet()
	for _, c := range f.Customers {
		if err := ids.add(c.ID); err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.ID, err)
		}
		cust, err := c.model()
		if err != nil {
			return nil, fmt.Errorf("customer %s: %w", c.ID, err)
		}
		data.Customers = append(data.Customers, cust)
	}
	ids = newIDSet()
	for _, c := range f.Contacts {
		if err := ids.add(c.ID); err != nil {
			return nil, fmt.Errorf("contact %s: %w", c.ID, err)
		}
		contact, err := c.model()
		if err != nil {
			return nil, fmt.Errorf("contact %s: %w", c.ID, err)
		}
		data.Contacts = append(data.Contacts, contact)
	}
	ids = newIDSet()
	for _, d := range f.Deals {
		if err := ids.add(d.ID); err != nil {
			return nil, fmt.Errorf("deal %s: %w", d.ID, err)
		}
		deal, err := d.model()
		if err != nil {
			return nil, fmt.Errorf("deal %s: %w", d.ID, err)
		}
		data.Deals = append(data.Deals, deal)
	}
	ids = newIDSet()
	for _, a := range f.Activities {
		if err := ids.add(a.ID); err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		act, err := a.model()
		if err != nil {
			return nil, fmt.Errorf("activity %s: %w", a.ID, err)
		}
		data.Activities = append(data.Activities, act)
	}

	return data, nil
}

type idSet map[string]struct{}

func newIDSet() idSet { return make(idSet) }

func (s idSet) add(id string) error {
	if _, ok := s[id]; ok {
		return &models.ValidationError{Field: "id", Value: id, Reason: "already exists"}
	}
	s[id] = struct{}{}
	return nil
}

func (c fileCustomer) model() (models.Customer, error) {
	status, err := models.ParseCustomerStatus(c.Status)
	if err != nil {
		return models.Customer{}, err
	}
	industry, err := models.ParseIndustry(c.Industry)
	if err != nil {
		return models.Customer{}, err
	}
	created, updated, err := stamps(c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return models.Customer{}, err
	}
	return models.Customer{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Industry:  industry,
		Status:    status,
		CreatedAt: created,
		UpdatedAt: updated,
	}, nil
}

func (c fileContact) model() (models.Contact, error) {
	status, err := models.ParseContactStatus(c.Status)
	if err != nil {
		return models.Contact{}, err
	}
	created, updated, err := stamps(c.CreatedAt, c.UpdatedAt)
	if err != nil {
		return models.Contact{}, err
	}
	return models.Contact{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
		CustomerID: c.CustomerID,
		Status:     status,
		CreatedAt:  created,
		UpdatedAt:  updated,
	}, nil
}

func (d fileDeal) model() (models.Deal, error) {
	stage, err := models.ParseStage(d.Stage)
	if err != nil {
		return models.Deal{}, err
	}
	if d.Amount < 0 || math.IsInf(d.Amount, 0) || math.IsNaN(d.Amount) {
		return models.Deal{}, &models.ValidationError{Field: "amount", Value: fmt.Sprint(d.Amount), Reason: "must be a non-negative number"}
	}
	if d.Probability < 0 || d.Probability > 100 {
		return models.Deal{}, &models.ValidationError{Field: "probability", Value: fmt.Sprint(d.Probability), Reason: "must be between 0 and 100"}
	}
	created, updated, err := stamps(d.CreatedAt, d.UpdatedAt)
	if err != nil {
		return models.Deal{}, err
	}

	deal := models.Deal{
		ID:          d.ID,
		Title:       d.Title,
		Description: d.Description,
		Amount:      d.Amount,
		Currency:    d.Currency,
		Stage:       stage,
		CustomerID:  d.CustomerID,
		ContactID:   d.ContactID,
		Probability: d.Probability,
		CreatedAt:   created,
		UpdatedAt:   updated,
	}
	if d.ExpectedCloseDate != "" {
		t, err := time.Parse(time.DateOnly, d.ExpectedCloseDate)
		if err != nil {
			return models.Deal{}, &models.ValidationError{Field: "expected_close_date", Value: d.ExpectedCloseDate, Reason: "must be YYYY-MM-DD"}
		}
		deal.ExpectedCloseDate = &t
	}
	return deal, nil
}

func (a fileActivity) model() (models.Activity, error) {
	typ, err := models.ParseActivityType(a.Type)
	if err != nil {
		return models.Activity{}, err
	}
	entity, err := models.ParseEntityType(a.EntityType)
	if err != nil {
		return models.Activity{}, err
	}
	ts, err := stamp("timestamp", a.Timestamp)
	if err != nil {
		return models.Activity{}, err
	}
	return models.Activity{
		ID:          a.ID,
		Type:        typ,
		Description: a.Description,
		Timestamp:   ts,
		EntityID:    a.EntityID,
		EntityType:  entity,
	}, nil
}

func stamps(created, updated string) (time.Time, time.Time, error) {
	c, err := stamp("created_at", created)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if updated == "" {
		return c, c, nil
	}
	u, err := stamp("updated_at", updated)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return c, u, nil
}

func stamp(field, v string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, v)
	if err != nil {
		return time.Time{}, &models.ValidationError{Field: field, Value: v, Reason: "must be an RFC 3339 timestamp"}
	}
	return t, nil
}
