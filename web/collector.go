// ABOUTME: Prometheus collector exposing live pipeline figures from the store
// ABOUTME: Reads a fresh snapshot on every scrape
package web

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/harperreed/pipeline/metrics"
	"github.com/harperreed/pipeline/store"
)

type pipelineCollector struct {
	store    *store.Memory
	deals    *prometheus.Desc
	value    *prometheus.Desc
	weighted *prometheus.Desc
	won      *prometheus.Desc
	active   *prometheus.Desc
}

func newPipelineCollector(st *store.Memory) *pipelineCollector {
	return &pipelineCollector{
		store:    st,
		deals:    prometheus.NewDesc("crm_deals", "Deals per pipeline stage.", []string{"stage"}, nil),
		value:    prometheus.NewDesc("crm_pipeline_value", "Sum of all deal amounts.", nil, nil),
		weighted: prometheus.NewDesc("crm_pipeline_weighted_value", "Deal amounts weighted by win probability.", nil, nil),
		won:      prometheus.NewDesc("crm_pipeline_won_value", "Sum of closed-won deal amounts.", nil, nil),
		active:   prometheus.NewDesc("crm_active_deals", "Deals not yet closed.", nil, nil),
	}
}

func (c *pipelineCollector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.deals
	ch <- c.value
	ch <- c.weighted
	ch <- c.won
	ch <- c.active
}

func (c *pipelineCollector) Collect(ch chan<- prometheus.Metric) {
	s := metrics.Summarize(c.store.Deals())

	for stage, n := range s.ByStage {
		ch <- prometheus.MustNewConstMetric(c.deals, prometheus.GaugeValue, float64(n), string(stage))
	}
	ch <- prometheus.MustNewConstMetric(c.value, prometheus.GaugeValue, s.TotalValue)
	ch <- prometheus.MustNewConstMetric(c.weighted, prometheus.GaugeValue, s.WeightedValue)
	ch <- prometheus.MustNewConstMetric(c.won, prometheus.GaugeValue, s.WonValue)
	ch <- prometheus.MustNewConstMetric(c.active, prometheus.GaugeValue, float64(s.ActiveDeals))
}
