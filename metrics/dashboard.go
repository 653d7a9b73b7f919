// ABOUTME: Dashboard statistics built from the session collections
// ABOUTME: Counts, revenue, deals by stage and the recent activity feed
package metrics

import (
	"sort"

	"github.com/harperreed/pipeline/models"
)

// Collections is a read-only view of everything the dashboard summarises.
type Collections struct {
	Customers  []models.Customer
	Contacts   []models.Contact
	Deals      []models.Deal
	Activities []models.Activity
}

// Dashboard computes the dashboard stats. Revenue is the closed-won value.
func Dashboard(c Collections, recentLimit int) models.DashboardStats {
	return models.DashboardStats{
		TotalCustomers: len(c.Customers),
		TotalContacts:  len(c.Contacts),
		TotalDeals:     len(c.Deals),
		ActiveDeals:    ActiveDealsCount(c.Deals),
		TotalRevenue:   WonValue(c.Deals),
		DealsByStage:   CountByStage(c.Deals),
		RecentActivity: RecentActivity(c.Activities, recentLimit),
	}
}

// RecentActivity returns up to limit activities, newest first.
// A limit of zero or less returns them all.
func RecentActivity(activities []models.Activity, limit int) []models.Activity {
	out := make([]models.Activity, len(activities))
	copy(out, activities)

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Timestamp.After(out[j].Timestamp)
	})

	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out
}
