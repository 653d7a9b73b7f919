// ABOUTME: Flat output shapes returned by the MCP tools
// ABOUTME: Timestamps are RFC3339 strings so tool schemas stay plain JSON types
package handlers

import (
	"time"

	"github.com/harperreed/pipeline/models"
)

type CustomerOutput struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Company   string `json:"company,omitempty"`
	Industry  string `json:"industry,omitempty"`
	Status    string `json:"status"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

func customerToOutput(c models.Customer) CustomerOutput {
	return CustomerOutput{
		ID:        c.ID,
		Name:      c.Name,
		Email:     c.Email,
		Phone:     c.Phone,
		Company:   c.Company,
		Industry:  string(c.Industry),
		Status:    string(c.Status),
		CreatedAt: stamp(c.CreatedAt),
		UpdatedAt: stamp(c.UpdatedAt),
	}
}

type ContactOutput struct {
	ID         string `json:"id"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	Position   string `json:"position,omitempty"`
	CustomerID string `json:"customer_id,omitempty"`
	Status     string `json:"status"`
	CreatedAt  string `json:"created_at"`
	UpdatedAt  string `json:"updated_at"`
}

func contactToOutput(c models.Contact) ContactOutput {
	return ContactOutput{
		ID:         c.ID,
		FirstName:  c.FirstName,
		LastName:   c.LastName,
		Name:       c.FullName(),
		Email:      c.Email,
		Phone:      c.Phone,
		Position:   c.Position,
		CustomerID: c.CustomerID,
		Status:     string(c.Status),
		CreatedAt:  stamp(c.CreatedAt),
		UpdatedAt:  stamp(c.UpdatedAt),
	}
}

// DealOutput carries the raw amount and its locale display form.
type DealOutput struct {
	ID                string  `json:"id"`
	Title             string  `json:"title"`
	Description       string  `json:"description,omitempty"`
	Amount            float64 `json:"amount"`
	AmountDisplay     string  `json:"amount_display"`
	Currency          string  `json:"currency"`
	Stage             string  `json:"stage"`
	Probability       int     `json:"probability"`
	CustomerID        string  `json:"customer_id,omitempty"`
	ContactID         string  `json:"contact_id,omitempty"`
	ExpectedCloseDate string  `json:"expected_close_date,omitempty"`
	CreatedAt         string  `json:"created_at"`
	UpdatedAt         string  `json:"updated_at"`
}

func dealToOutput(d models.Deal, amountDisplay string) DealOutput {
	out := DealOutput{
		ID:            d.ID,
		Title:         d.Title,
		Description:   d.Description,
		Amount:        d.Amount,
		AmountDisplay: amountDisplay,
		Currency:      d.Currency,
		Stage:         string(d.Stage),
		Probability:   d.Probability,
		CustomerID:    d.CustomerID,
		ContactID:     d.ContactID,
		CreatedAt:     stamp(d.CreatedAt),
		UpdatedAt:     stamp(d.UpdatedAt),
	}
	if d.ExpectedCloseDate != nil {
		out.ExpectedCloseDate = d.ExpectedCloseDate.Format(time.DateOnly)
	}
	return out
}

type ActivityOutput struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	Description string `json:"description"`
	Timestamp   string `json:"timestamp"`
	EntityID    string `json:"entity_id"`
	EntityType  string `json:"entity_type"`
}

func activityToOutput(a models.Activity) ActivityOutput {
	return ActivityOutput{
		ID:          a.ID,
		Type:        string(a.Type),
		Description: a.Description,
		Timestamp:   stamp(a.Timestamp),
		EntityID:    a.EntityID,
		EntityType:  string(a.EntityType),
	}
}

func stamp(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.Format(time.RFC3339)
}
