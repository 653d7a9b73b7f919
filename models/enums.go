// ABOUTME: Closed enumerations for statuses, stages, industries and activity kinds
// ABOUTME: Every enum parses from its wire string and rejects unknown values
package models

import "strings"

type CustomerStatus string

const (
	CustomerActive   CustomerStatus = "active"
	CustomerInactive CustomerStatus = "inactive"
	CustomerProspect CustomerStatus = "prospect"
)

// CustomerStatuses lists every customer status in display order.
var CustomerStatuses = []CustomerStatus{CustomerActive, CustomerInactive, CustomerProspect}

func (s CustomerStatus) Valid() bool {
	switch s {
	case CustomerActive, CustomerInactive, CustomerProspect:
		return true
	}
	return false
}

func (s CustomerStatus) Label() string { return capitalize(string(s)) }

func ParseCustomerStatus(v string) (CustomerStatus, error) {
	s := CustomerStatus(v)
	if !s.Valid() {
		return "", invalid("status", v, "must be one of active, inactive, prospect")
	}
	return s, nil
}

type ContactStatus string

const (
	ContactActive   ContactStatus = "active"
	ContactInactive ContactStatus = "inactive"
)

var ContactStatuses = []ContactStatus{ContactActive, ContactInactive}

func (s ContactStatus) Valid() bool {
	return s == ContactActive || s == ContactInactive
}

func (s ContactStatus) Label() string { return capitalize(string(s)) }

func ParseContactStatus(v string) (ContactStatus, error) {
	s := ContactStatus(v)
	if !s.Valid() {
		return "", invalid("status", v, "must be one of active, inactive")
	}
	return s, nil
}

// Stage is a deal's position in the sales pipeline.
// Deals may be assigned any stage; the order is for display only.
type Stage string

const (
	StageLead        Stage = "lead"
	StageQualified   Stage = "qualified"
	StageProposal    Stage = "proposal"
	StageNegotiation Stage = "negotiation"
	StageClosedWon   Stage = "closed-won"
	StageClosedLost  Stage = "closed-lost"
)

// Stages lists the pipeline in progression order.
var Stages = []Stage{
	StageLead,
	StageQualified,
	StageProposal,
	StageNegotiation,
	StageClosedWon,
	StageClosedLost,
}

func (s Stage) Valid() bool {
	for _, st := range Stages {
		if s == st {
			return true
		}
	}
	return false
}

// Closed reports whether the deal has left the active pipeline.
func (s Stage) Closed() bool {
	return s == StageClosedWon || s == StageClosedLost
}

// Label renders "closed-won" as "Closed Won".
func (s Stage) Label() string {
	parts := strings.Split(string(s), "-")
	for i, p := range parts {
		parts[i] = capitalize(p)
	}
	return strings.Join(parts, " ")
}

// Index returns the stage's position in Stages, or -1.
func (s Stage) Index() int {
	for i, st := range Stages {
		if s == st {
			return i
		}
	}
	return -1
}

func ParseStage(v string) (Stage, error) {
	s := Stage(v)
	if !s.Valid() {
		return "", invalid("stage", v, "must be one of lead, qualified, proposal, negotiation, closed-won, closed-lost")
	}
	return s, nil
}

// Industry is the customer category. The zero value means no industry set.
type Industry string

const (
	IndustryTechnology    Industry = "Technology"
	IndustrySoftware      Industry = "Software"
	IndustryManufacturing Industry = "Manufacturing"
	IndustryHealthcare    Industry = "Healthcare"
	IndustryFinance       Industry = "Finance"
)

var Industries = []Industry{
	IndustryTechnology,
	IndustrySoftware,
	IndustryManufacturing,
	IndustryHealthcare,
	IndustryFinance,
}

func (i Industry) Valid() bool {
	for _, ind := range Industries {
		if i == ind {
			return true
		}
	}
	return false
}

// ParseIndustry accepts the empty string as "no industry".
func ParseIndustry(v string) (Industry, error) {
	if v == "" {
		return "", nil
	}
	i := Industry(v)
	if !i.Valid() {
		return "", invalid("industry", v, "must be one of Technology, Software, Manufacturing, Healthcare, Finance")
	}
	return i, nil
}

type ActivityType string

const (
	ActivityCustomerCreated ActivityType = "customer_created"
	ActivityDealUpdated     ActivityType = "deal_updated"
	ActivityContactAdded    ActivityType = "contact_added"
)

func (t ActivityType) Valid() bool {
	switch t {
	case ActivityCustomerCreated, ActivityDealUpdated, ActivityContactAdded:
		return true
	}
	return false
}

func ParseActivityType(v string) (ActivityType, error) {
	t := ActivityType(v)
	if !t.Valid() {
		return "", invalid("type", v, "must be one of customer_created, deal_updated, contact_added")
	}
	return t, nil
}

type EntityType string

const (
	EntityCustomer EntityType = "customer"
	EntityContact  EntityType = "contact"
	EntityDeal     EntityType = "deal"
)

func (t EntityType) Valid() bool {
	switch t {
	case EntityCustomer, EntityContact, EntityDeal:
		return true
	}
	return false
}

func ParseEntityType(v string) (EntityType, error) {
	t := EntityType(v)
	if !t.Valid() {
		return "", invalid("entity_type", v, "must be one of customer, contact, deal")
	}
	return t, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
