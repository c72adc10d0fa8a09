package sampler

import "github.com/montanaflynn/stats"

// TraitSummary aggregates one column of a Table.
type TraitSummary struct {
	Trait  Trait
	Count  int
	Mean   float64
	StdDev float64 // sample standard deviation
	Min    float64
	P5     float64
	Median float64
	P95    float64
	Max    float64
}

// Summarize computes per-trait statistics in canonical trait order.
// Safe for nil or empty tables (returns zero-value fields).
func Summarize(t *Table) []TraitSummary {
	out := make([]TraitSummary, NumTraits)
	for i, tr := range Traits {
		out[i].Trait = tr
		if t.Len() == 0 {
			continue
		}
		col := stats.Float64Data(t.Column(tr))
		out[i].Count = len(col)
		out[i].Mean, _ = stats.Mean(col)
		out[i].Min, _ = stats.Min(col)
		out[i].Max, _ = stats.Max(col)
		out[i].Median, _ = stats.Median(col)
		out[i].P5, _ = stats.PercentileNearestRank(col, 5)
		out[i].P95, _ = stats.PercentileNearestRank(col, 95)
		if len(col) > 1 {
			out[i].StdDev, _ = stats.StandardDeviationSample(col)
		}
	}
	return out
}
