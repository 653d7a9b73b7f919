// ABOUTME: Data models for CRM entities
// ABOUTME: Defines Customer, Contact, Deal, Activity and DashboardStats records
package models

import (
	"time"
)

// Customer is an organisation or person the business sells to.
type Customer struct {
	ID        string         `json:"id"`
	Name      string         `json:"name"`
	Email     string         `json:"email"`
	Phone     string         `json:"phone,omitempty"`
	Company   string         `json:"company,omitempty"`
	Industry  Industry       `json:"industry,omitempty"`
	Status    CustomerStatus `json:"status"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}

// Contact is a person, optionally attached to a customer by id.
type Contact struct {
	ID         string        `json:"id"`
	FirstName  string        `json:"first_name"`
	LastName   string        `json:"last_name"`
	Email      string        `json:"email"`
	Phone      string        `json:"phone,omitempty"`
	Position   string        `json:"position,omitempty"`
	CustomerID string        `json:"customer_id,omitempty"`
	Status     ContactStatus `json:"status"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// FullName joins first and last name, skipping empty parts.
func (c Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}

type Deal struct {
	ID                string     `json:"id"`
	Title             string     `json:"title"`
	Description       string     `json:"description,omitempty"`
	Amount            float64    `json:"amount"`
	Currency          string     `json:"currency"`
	Stage             Stage      `json:"stage"`
	CustomerID        string     `json:"customer_id,omitempty"`
	ContactID         string     `json:"contact_id,omitempty"`
	ExpectedCloseDate *time.Time `json:"expected_close_date,omitempty"`
	Probability       int        `json:"probability"` // percent, 0-100
	CreatedAt         time.Time  `json:"created_at"`
	UpdatedAt         time.Time  `json:"updated_at"`
}

// Activity is a timeline entry about one entity.
type Activity struct {
	ID          string       `json:"id"`
	Type        ActivityType `json:"type"`
	Description string       `json:"description"`
	Timestamp   time.Time    `json:"timestamp"`
	EntityID    string       `json:"entity_id"`
	EntityType  EntityType   `json:"entity_type"`
}

// DashboardStats is derived from the collections and never stored.
type DashboardStats struct {
	TotalCustomers int           `json:"total_customers"`
	TotalContacts  int           `json:"total_contacts"`
	TotalDeals     int           `json:"total_deals"`
	ActiveDeals    int           `json:"active_deals"`
	TotalRevenue   float64       `json:"total_revenue"`
	DealsByStage   map[Stage]int `json:"deals_by_stage"`
	RecentActivity []Activity    `json:"recent_activity"`
}
