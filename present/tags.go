// ABOUTME: Fixed color tags for customer statuses, contact statuses and deal stages
// ABOUTME: Shared by the web templates and the terminal screens
package present

import (
	"fmt"

	"github.com/harperreed/pipeline/models"
)

// Tag is a status badge: display label plus a color name.
type Tag struct {
	Label string `json:"label"`
	Color string `json:"color"`
}

// Class is the CSS class pair used by the web templates.
func (t Tag) Class() string {
	return fmt.Sprintf("bg-%s-100 text-%s-800", t.Color, t.Color)
}

const defaultColor = "gray"

var customerStatusColors = map[models.CustomerStatus]string{
	models.CustomerActive:   "green",
	models.CustomerInactive: "gray",
	models.CustomerProspect: "blue",
}

var contactStatusColors = map[models.ContactStatus]string{
	models.ContactActive:   "green",
	models.ContactInactive: "gray",
}

var stageColors = map[models.Stage]string{
	models.StageLead:        "gray",
	models.StageQualified:   "blue",
	models.StageProposal:    "yellow",
	models.StageNegotiation: "orange",
	models.StageClosedWon:   "green",
	models.StageClosedLost:  "red",
}

func CustomerStatusTag(s models.CustomerStatus) Tag {
	return Tag{Label: string(s), Color: colorOr(customerStatusColors[s])}
}

func ContactStatusTag(s models.ContactStatus) Tag {
	return Tag{Label: string(s), Color: colorOr(contactStatusColors[s])}
}

func StageTag(s models.Stage) Tag {
	return Tag{Label: s.Label(), Color: colorOr(stageColors[s])}
}

func colorOr(c string) string {
	if c == "" {
		return defaultColor
	}
	return c
}
