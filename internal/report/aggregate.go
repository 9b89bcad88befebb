package report

import (
	"fmt"
	"strings"
)

// caseSeparator splits a benchmark name into its case family and variant details.
const caseSeparator = "/"

// CaseKey returns the case family of a benchmark name: everything before the
// first separator, or the whole name when there is none.
func CaseKey(name string) string {
	if i := strings.Index(name, caseSeparator); i >= 0 {
		return name[:i]
	}
	return name
}

// Results maps case family keys to their statistics, remembering the order in
// which keys were first seen.
type Results struct {
	keys  []string
	stats map[string]*CaseStats
}

func newResults() *Results {
	return &Results{stats: make(map[string]*CaseStats)}
}

// Keys returns the case family keys in first-sighting order.
func (r *Results) Keys() []string {
	out := make([]string, len(r.keys))
	copy(out, r.keys)
	return out
}

// Get returns the statistics for key.
func (r *Results) Get(key string) (*CaseStats, bool) {
	s, ok := r.stats[key]
	return s, ok
}

// Len returns the number of case families.
func (r *Results) Len() int {
	return len(r.keys)
}

func (r *Results) getOrInsert(key string) *CaseStats {
	if s, ok := r.stats[key]; ok {
		return s
	}
	s := &CaseStats{
		CPUTime:    []float64{},
		RealTime:   []float64{},
		Iterations: []int64{},
	}
	r.stats[key] = s
	r.keys = append(r.keys, key)
	return s
}

// OrphanAggregateError reports an aggregate record whose case family has no
// preceding iteration record.
type OrphanAggregateError struct {
	Key   string
	Name  string
	Index int
}

func (e *OrphanAggregateError) Error() string {
	return fmt.Sprintf("malformed report: aggregate record %d (%s) for case %q has no preceding iteration record", e.Index, e.Name, e.Key)
}

// Aggregate groups records by case family in report order. Iteration records
// contribute samples; aggregate records overwrite the matching statistic with
// their cpu_time. Unknown aggregate names and run types are ignored.
func Aggregate(records []Record) (*Results, error) {
	results := newResults()
	for i, rec := range records {
		key := CaseKey(rec.Name)
		switch rec.RunType {
		case RunTypeIteration:
			stats := results.getOrInsert(key)
			stats.CPUTime = append(stats.CPUTime, rec.CPUTime)
			stats.RealTime = append(stats.RealTime, rec.RealTime)
			stats.Iterations = append(stats.Iterations, rec.Iterations)
			if stats.TimeUnit == "" {
				stats.TimeUnit = rec.TimeUnit
			}
		case RunTypeAggregate:
			stats, ok := results.Get(key)
			if !ok {
				return nil, &OrphanAggregateError{Key: key, Name: rec.Name, Index: i}
			}
			switch rec.AggregateName {
			case AggregateMean:
				stats.Mean = rec.CPUTime
			case AggregateMedian:
				stats.Median = rec.CPUTime
			case AggregateStdDev:
				stats.StdDev = rec.CPUTime
			case AggregateCV:
				stats.CV = rec.CPUTime
			}
		}
	}
	return results, nil
}

// SummaryRow is one line of the per-case console summary.
type SummaryRow struct {
	Key     string
	Samples int
	Mean    float64
	Median  float64
	StdDev  float64
	CV      float64
	Unit    string
}

// Summary flattens results into rows in key order.
func Summary(results *Results) []SummaryRow {
	rows := make([]SummaryRow, 0, results.Len())
	for _, key := range results.keys {
		s := results.stats[key]
		rows = append(rows, SummaryRow{
			Key:     key,
			Samples: len(s.CPUTime),
			Mean:    s.Mean,
			Median:  s.Median,
			StdDev:  s.StdDev,
			CV:      s.CV,
			Unit:    s.TimeUnit,
		})
	}
	return rows
}

// TimeUnit returns the first non-empty time unit among the cases.
func (r *Results) TimeUnit() string {
	for _, key := range r.keys {
		if u := r.stats[key].TimeUnit; u != "" {
			return u
		}
	}
	return ""
}
