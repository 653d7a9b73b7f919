// ABOUTME: Generic predicate engine for search term, status and category filters
// ABOUTME: One engine configured per entity instead of per-screen copies
package filter

import (
	"strings"

	"github.com/harperreed/pipeline/models"
)

// All disables a status or category criterion, like the empty string.
const All = "all"

// Criteria is the user-supplied filter state for one list screen.
type Criteria struct {
	SearchTerm string `json:"search_term,omitempty"`
	Status     string `json:"status,omitempty"`
	Category   string `json:"category,omitempty"`
}

// Active reports whether any criterion narrows the result.
func (c Criteria) Active() bool {
	return c.searchActive() || enabled(c.Status) || enabled(c.Category)
}

// Clear returns criteria that match everything.
func (c Criteria) Clear() Criteria {
	return Criteria{Status: All, Category: All}
}

func (c Criteria) searchActive() bool {
	return strings.TrimSpace(c.SearchTerm) != ""
}

func enabled(v string) bool {
	return v != "" && v != All
}

// Fields describes which parts of a record each criterion looks at.
type Fields[T any] struct {
	// Entity names the record kind in error messages.
	Entity string

	// Folded fields match the search term case-insensitively.
	Folded func(T) []string
	// Literal fields match the search term as typed.
	Literal func(T) []string

	Status   func(T) string
	Statuses []string

	// Category is nil for entities without a category filter.
	Category     func(T) string
	CategoryName string
	Categories   []string
}

// Validate rejects status and category values the entity does not know.
func (f Fields[T]) Validate(c Criteria) error {
	if enabled(c.Status) {
		if f.Status == nil {
			return &models.ValidationError{Field: "status", Value: c.Status, Reason: f.Entity + " records have no status"}
		}
		if !contains(f.Statuses, c.Status) {
			return &models.ValidationError{Field: "status", Value: c.Status, Reason: "must be all or one of " + strings.Join(f.Statuses, ", ")}
		}
	}

	if enabled(c.Category) {
		name := f.CategoryName
		if name == "" {
			name = "category"
		}
		if f.Category == nil {
			return &models.ValidationError{Field: name, Value: c.Category, Reason: f.Entity + " records have no category"}
		}
		if !contains(f.Categories, c.Category) {
			return &models.ValidationError{Field: name, Value: c.Category, Reason: "must be all or one of " + strings.Join(f.Categories, ", ")}
		}
	}

	return nil
}

// Apply returns the records matching every active criterion, in input order.
// The result is always a new slice; records is never modified.
func Apply[T any](records []T, c Criteria, f Fields[T]) ([]T, error) {
	if err := f.Validate(c); err != nil {
		return nil, err
	}

	out := make([]T, 0, len(records))
	for _, r := range records {
		if f.matches(r, c) {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f Fields[T]) matches(r T, c Criteria) bool {
	if c.searchActive() && !f.matchesTerm(r, c.SearchTerm) {
		return false
	}
	if enabled(c.Status) && f.Status(r) != c.Status {
		return false
	}
	if enabled(c.Category) && f.Category(r) != c.Category {
		return false
	}
	return true
}

// matchesTerm uses the term untrimmed; only the active check trims.
func (f Fields[T]) matchesTerm(r T, term string) bool {
	if f.Folded != nil {
		lower := strings.ToLower(term)
		for _, v := range f.Folded(r) {
			if v != "" && strings.Contains(strings.ToLower(v), lower) {
				return true
			}
		}
	}
	if f.Literal != nil {
		for _, v := range f.Literal(r) {
			if v != "" && strings.Contains(v, term) {
				return true
			}
		}
	}
	return false
}

func contains(values []string, v string) bool {
	for _, s := range values {
		if s == v {
			return true
		}
	}
	return false
}

func names[E ~string](values []E) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}
