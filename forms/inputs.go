// ABOUTME: CustomerInput, ContactInput and DealInput with their validation rules
// ABOUTME: Build trims, validates, applies defaults and assigns a fresh id
package forms

import (
	"time"

	"github.com/google/uuid"

	"github.com/harperreed/pipeline/models"
)

// CustomerInput is the add-customer form. Status defaults to active.
type CustomerInput struct {
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	Phone    string `json:"phone" validate:"max=30"`
	Company  string `json:"company"`
	Industry string `json:"industry" validate:"omitempty,oneof=Technology Software Manufacturing Healthcare Finance"`
	Status   string `json:"status" validate:"omitempty,oneof=active inactive prospect"`
}

func (in CustomerInput) Build(now time.Time) (models.Customer, error) {
	trim(&in.Name, &in.Email, &in.Phone, &in.Company, &in.Industry, &in.Status)
	if err := check(in); err != nil {
		return models.Customer{}, err
	}

	status := models.CustomerActive
	if in.Status != "" {
		status = models.CustomerStatus(in.Status)
	}

	return models.Customer{
		ID:        uuid.NewString(),
		Name:      in.Name,
		Email:     in.Email,
		Phone:     in.Phone,
		Company:   in.Company,
		Industry:  models.Industry(in.Industry),
		Status:    status,
		CreatedAt: now,
		UpdatedAt: now,
	}, nil
}

type ContactInput struct {
	FirstName  string `json:"first_name" validate:"required"`
	LastName   string `json:"last_name" validate:"required"`
	Email      string `json:"email" validate:"required,email"`
	Phone      string `json:"phone" validate:"max=30"`
	Position   string `json:"position"`
	CustomerID string `json:"customer_id"`
	Status     string `json:"status" validate:"omitempty,oneof=active inactive"`
}

func (in ContactInput) Build(now time.Time) (models.Contact, error) {
	trim(&in.FirstName, &in.LastName, &in.Email, &in.Phone, &in.Position, &in.CustomerID, &in.Status)
	if err := check(in); err != nil {
		return models.Contact{}, err
	}

	status := models.ContactActive
	if in.Status != "" {
		status = models.ContactStatus(in.Status)
	}

	return models.Contact{
		ID:         uuid.NewString(),
		FirstName:  in.FirstName,
		LastName:   in.LastName,
		Email:      in.Email,
		Phone:      in.Phone,
		Position:   in.Position,
		CustomerID: in.CustomerID,
		Status:     status,
		CreatedAt:  now,
		UpdatedAt:  now,
	}, nil
}

// DealInput is the add-deal form. Currency defaults to USD and stage to lead.
// ExpectedCloseDate is YYYY-MM-DD.
type DealInput struct {
	Title             string  `json:"title" validate:"required"`
	Description       string  `json:"description"`
	Amount            float64 `json:"amount" validate:"finite,gte=0"`
	Currency          string  `json:"currency" validate:"omitempty,iso4217"`
	Stage             string  `json:"stage" validate:"omitempty,oneof=lead qualified proposal negotiation closed-won closed-lost"`
	Probability       int     `json:"probability" validate:"gte=0,lte=100"`
	CustomerID        string  `json:"customer_id"`
	ContactID         string  `json:"contact_id"`
	ExpectedCloseDate string  `json:"expected_close_date" validate:"omitempty,datetime=2006-01-02"`
}

func (in DealInput) Build(now time.Time) (models.Deal, error) {
	trim(&in.Title, &in.Description, &in.Currency, &in.Stage, &in.CustomerID, &in.ContactID, &in.ExpectedCloseDate)
	if err := check(in); err != nil {
		return models.Deal{}, err
	}

	d := models.Deal{
		ID:          uuid.NewString(),
		Title:       in.Title,
		Description: in.Description,
		Amount:      in.Amount,
		Currency:    "USD",
		Stage:       models.StageLead,
		Probability: in.Probability,
		CustomerID:  in.CustomerID,
		ContactID:   in.ContactID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if in.Currency != "" {
		d.Currency = in.Currency
	}
	if in.Stage != "" {
		d.Stage = models.Stage(in.Stage)
	}
	if in.ExpectedCloseDate != "" {
		// Already checked by the datetime rule.
		t, _ := time.Parse(time.DateOnly, in.ExpectedCloseDate)
		d.ExpectedCloseDate = &t
	}
	return d, nil
}
