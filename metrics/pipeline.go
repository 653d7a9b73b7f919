// ABOUTME: Pipeline aggregates over deals and customers
// ABOUTME: Totals, weighted value, conversion, stage counts and industries
package metrics

import (
	"sort"

	"github.com/harperreed/pipeline/models"
)

func TotalValue(deals []models.Deal) float64 {
	var total float64
	for _, d := range deals {
		total += d.Amount
	}
	return total
}

// WonValue sums the amounts of closed-won deals.
func WonValue(deals []models.Deal) float64 {
	var total float64
	for _, d := range deals {
		if d.Stage == models.StageClosedWon {
			total += d.Amount
		}
	}
	return total
}

// WeightedValue sums each amount scaled by its win probability.
func WeightedValue(deals []models.Deal) float64 {
	var total float64
	for _, d := range deals {
		total += d.Amount * float64(d.Probability) / 100
	}
	return total
}

// ConversionRate is won value as a percentage of total value, 0 for an empty pipeline.
func ConversionRate(deals []models.Deal) float64 {
	total := TotalValue(deals)
	if total == 0 {
		return 0
	}
	return WonValue(deals) / total * 100
}

func AverageDealSize(deals []models.Deal) float64 {
	if len(deals) == 0 {
		return 0
	}
	return TotalValue(deals) / float64(len(deals))
}

// CountByStage counts deals per stage. All six stages are always present.
func CountByStage(deals []models.Deal) map[models.Stage]int {
	counts := make(map[models.Stage]int, len(models.Stages))
	for _, st := range models.Stages {
		counts[st] = 0
	}
	for _, d := range deals {
		if _, ok := counts[d.Stage]; ok {
			counts[d.Stage]++
		}
	}
	return counts
}

// ActiveDealsCount counts deals not yet closed won or lost.
func ActiveDealsCount(deals []models.Deal) int {
	n := 0
	for _, d := range deals {
		if !d.Stage.Closed() {
			n++
		}
	}
	return n
}

// DistinctIndustries returns each non-empty industry once, sorted.
func DistinctIndustries(customers []models.Customer) []models.Industry {
	seen := make(map[models.Industry]struct{})
	var out []models.Industry
	for _, c := range customers {
		if c.Industry == "" {
			continue
		}
		if _, ok := seen[c.Industry]; ok {
			continue
		}
		seen[c.Industry] = struct{}{}
		out = append(out, c.Industry)
	}
	sort.Slice(out, func(i, j int) bool { return out[i] < out[j] })
	return out
}

// StageSummary is one pipeline column: its deals, count and value.
type StageSummary struct {
	Stage  models.Stage  `json:"stage"`
	Count  int           `json:"count"`
	Amount float64       `json:"amount"`
	Deals  []models.Deal `json:"deals"`
}

// StageBreakdown groups deals into the six stages in pipeline order.
// Deals keep their input order within a stage.
func StageBreakdown(deals []models.Deal) []StageSummary {
	out := make([]StageSummary, len(models.Stages))
	for i, st := range models.Stages {
		out[i] = StageSummary{Stage: st, Deals: []models.Deal{}}
	}
	for _, d := range deals {
		i := d.Stage.Index()
		if i < 0 {
			continue
		}
		out[i].Count++
		out[i].Amount += d.Amount
		out[i].Deals = append(out[i].Deals, d)
	}
	return out
}

// PipelineSummary bundles the analytics shown above and below the pipeline board.
type PipelineSummary struct {
	DealCount       int                  `json:"deal_count"`
	TotalValue      float64              `json:"total_value"`
	WonValue        float64              `json:"won_value"`
	WeightedValue   float64              `json:"weighted_value"`
	ConversionRate  float64              `json:"conversion_rate"`
	AverageDealSize float64              `json:"average_deal_size"`
	ActiveDeals     int                  `json:"active_deals"`
	ByStage         map[models.Stage]int `json:"by_stage"`
}

func Summarize(deals []models.Deal) PipelineSummary {
	return PipelineSummary{
		DealCount:       len(deals),
		TotalValue:      TotalValue(deals),
		WonValue:        WonValue(deals),
		WeightedValue:   WeightedValue(deals),
		ConversionRate:  ConversionRate(deals),
		AverageDealSize: AverageDealSize(deals),
		ActiveDeals:     ActiveDealsCount(deals),
		ByStage:         CountByStage(deals),
	}
}
