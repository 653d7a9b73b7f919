// ABOUTME: Filter field configuration for customers, deals and contacts
// ABOUTME: Entry points used by the list screens, web API and MCP tools
package filter

import "github.com/harperreed/pipeline/models"

// CustomerFields searches name, email and company ignoring case, and phone as typed.
var CustomerFields = Fields[models.Customer]{
	Entity: "customer",
	Folded: func(c models.Customer) []string {
		return []string{c.Name, c.Email, c.Company}
	},
	Literal: func(c models.Customer) []string {
		return []string{c.Phone}
	},
	Status:       func(c models.Customer) string { return string(c.Status) },
	Statuses:     names(models.CustomerStatuses),
	Category:     func(c models.Customer) string { return string(c.Industry) },
	CategoryName: "industry",
	Categories:   names(models.Industries),
}

// DealFields searches title and description; the status criterion is the stage.
var DealFields = Fields[models.Deal]{
	Entity: "deal",
	Folded: func(d models.Deal) []string {
		return []string{d.Title, d.Description}
	},
	Status:   func(d models.Deal) string { return string(d.Stage) },
	Statuses: names(models.Stages),
}

var ContactFields = Fields[models.Contact]{
	Entity: "contact",
	Folded: func(c models.Contact) []string {
		return []string{c.FirstName, c.LastName, c.FullName(), c.Email, c.Position}
	},
	Literal: func(c models.Contact) []string {
		return []string{c.Phone}
	},
	Status:   func(c models.Contact) string { return string(c.Status) },
	Statuses: names(models.ContactStatuses),
}

func Customers(records []models.Customer, c Criteria) ([]models.Customer, error) {
	return Apply(records, c, CustomerFields)
}

func Deals(records []models.Deal, c Criteria) ([]models.Deal, error) {
	return Apply(records, c, DealFields)
}

func Contacts(records []models.Contact, c Criteria) ([]models.Contact, error) {
	return Apply(records, c, ContactFields)
}
