// ABOUTME: In-memory session state holding the canonical CRM collections
// ABOUTME: Thread-safe reads return copies; every write records an activity
package store

import (
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/models"
)

// ErrNotFound is returned when an id matches no record.
var ErrNotFound = errors.New("not found")

// Memory holds one session's customers, contacts, deals and activity log.
type Memory struct {
	mu         sync.RWMutex
	customers  []models.Customer
	contacts   []models.Contact
	deals      []models.Deal
	activities []models.Activity

	now     func() time.Time
	entropy *ulid.MonotonicEntropy
}

type Option func(*Memory)

// WithClock overrides time.Now for activity and record timestamps.
func WithClock(now func() time.Time) Option {
	return func(m *Memory) { m.now = now }
}

// New copies the initial collections into a fresh store.
func New(initial metrics.Collections, opts ...Option) *Memory {
	m := &Memory{
		customers:  clone(initial.Customers),
		contacts:   clone(initial.Contacts),
		deals:      clone(initial.Deals),
		activities: clone(initial.Activities),
		now:        time.Now,
		entropy:    ulid.Monotonic(rand.New(rand.NewSource(time.Now().UnixNano())), 0),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Memory) Customers() []models.Customer {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.customers)
}

func (m *Memory) Contacts() []models.Contact {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.contacts)
}

func (m *Memory) Deals() []models.Deal {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.deals)
}

func (m *Memory) Activities() []models.Activity {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return clone(m.activities)
}

// Snapshot returns a consistent copy of all four collections.
func (m *Memory) Snapshot() metrics.Collections {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return metrics.Collections{
		Customers:  clone(m.customers),
		Contacts:   clone(m.contacts),
		Deals:      clone(m.deals),
		Activities: clone(m.activities),
	}
}

func (m *Memory) Customer(id string) (models.Customer, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.customers {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Customer{}, fmt.Errorf("customer %s: %w", id, ErrNotFound)
}

func (m *Memory) Contact(id string) (models.Contact, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	for _, c := range m.contacts {
		if c.ID == id {
			return c, nil
		}
	}
	return models.Contact{}, fmt.Errorf("contact %s: %w", id, ErrNotFound)
}

func (m *Memory) Deal(id string) (models.Deal, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	i := m.dealIndex(id)
	if i < 0 {
		return models.Deal{}, fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}
	return m.deals[i], nil
}

func (m *Memory) AddCustomer(c models.Customer) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.customers {
		if existing.ID == c.ID {
			return duplicate(c.ID)
		}
	}

	m.customers = append(m.customers, c)
	label := c.Company
	if label == "" {
		label = c.Name
	}
	m.record(models.ActivityCustomerCreated, models.EntityCustomer, c.ID,
		fmt.Sprintf("New customer %q added", label))
	return nil
}

func (m *Memory) AddContact(c models.Contact) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, existing := range m.contacts {
		if existing.ID == c.ID {
			return duplicate(c.ID)
		}
	}

	m.contacts = append(m.contacts, c)
	desc := fmt.Sprintf("Contact %q added", c.FullName())
	for _, cust := range m.customers {
		if cust.ID == c.CustomerID && c.CustomerID != "" {
			desc += " to " + cust.Name
			break
		}
	}
	m.record(models.ActivityContactAdded, models.EntityContact, c.ID, desc)
	return nil
}

func (m *Memory) AddDeal(d models.Deal) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.dealIndex(d.ID) >= 0 {
		return duplicate(d.ID)
	}

	m.deals = append(m.deals, d)
	m.record(models.ActivityDealUpdated, models.EntityDeal, d.ID,
		fmt.Sprintf("Deal %q added at %s", d.Title, d.Stage))
	return nil
}

// MoveDeal sets a deal's stage. Any stage may follow any other.
func (m *Memory) MoveDeal(id string, stage models.Stage) (models.Deal, error) {
	if !stage.Valid() {
		_, err := models.ParseStage(string(stage))
		return models.Deal{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	i := m.dealIndex(id)
	if i < 0 {
		return models.Deal{}, fmt.Errorf("deal %s: %w", id, ErrNotFound)
	}

	m.deals[i].Stage = stage
	m.deals[i].UpdatedAt = m.now()
	m.record(models.ActivityDealUpdated, models.EntityDeal, id,
		fmt.Sprintf("Deal %q moved to %s", m.deals[i].Title, stage))
	return m.deals[i], nil
}

// record appends an activity. Callers hold the write lock.
func (m *Memory) record(typ models.ActivityType, entity models.EntityType, entityID, desc string) {
	ts := m.now()
	m.activities = append(m.activities, models.Activity{
		ID:          ulid.MustNew(ulid.Timestamp(ts), m.entropy).String(),
		Type:        typ,
		Description: desc,
		Timestamp:   ts,
		EntityID:    entityID,
		EntityType:  entity,
	})
}

func (m *Memory) dealIndex(id string) int {
	for i, d := range m.deals {
		if d.ID == id {
			return i
		}
	}
	return -1
}

func duplicate(id string) error {
	return &models.ValidationError{Field: "id", Value: id, Reason: "already exists"}
}

func clone[T any](in []T) []T {
	out := make([]T, len(in))
	copy(out, in)
	return out
}
