// Package report reads Google Benchmark JSON reports and groups their records
// into per-case statistics.
package report

// RunType distinguishes measured repetitions from summary rows.
type RunType string

const (
	RunTypeIteration RunType = "iteration"
	RunTypeAggregate RunType = "aggregate"
)

// AggregateName names the statistic an aggregate record carries.
type AggregateName string

const (
	AggregateMean   AggregateName = "mean"
	AggregateMedian AggregateName = "median"
	AggregateStdDev AggregateName = "stddev"
	AggregateCV     AggregateName = "cv"
)

// Known reports whether a is one of the four aggregates the tool tracks.
func (a AggregateName) Known() bool {
	switch a {
	case AggregateMean, AggregateMedian, AggregateStdDev, AggregateCV:
		return true
	}
	return false
}

// Record is a single entry of the report's benchmarks array.
type Record struct {
	Name            string        `json:"name"`
	RunName         string        `json:"run_name,omitempty"`
	RunType         RunType       `json:"run_type"`
	Repetitions     int           `json:"repetitions,omitempty"`
	RepetitionIndex int           `json:"repetition_index,omitempty"`
	AggregateName   AggregateName `json:"aggregate_name,omitempty"`
	Iterations      int64         `json:"iterations"`
	RealTime        float64       `json:"real_time"`
	CPUTime         float64       `json:"cpu_time"`
	TimeUnit        string        `json:"time_unit,omitempty"`
	ErrorOccurred   bool          `json:"error_occurred,omitempty"`
	ErrorMessage    string        `json:"error_message,omitempty"`
}

// Context is the report header describing the machine and binary.
type Context struct {
	Date             string `json:"date"`
	HostName         string `json:"host_name"`
	Executable       string `json:"executable"`
	NumCPUs          int    `json:"num_cpus"`
	MHzPerCPU        int    `json:"mhz_per_cpu"`
	LibraryBuildType string `json:"library_build_type"`
}

// Report is a decoded benchmark report.
type Report struct {
	Context    Context  `json:"context"`
	Benchmarks []Record `json:"benchmarks"`
}

// CaseStats holds the samples and upstream aggregates for one case family.
// Mean, Median, StdDev and CV stay zero until the matching aggregate record
// has been seen.
type CaseStats struct {
	CPUTime    []float64 `json:"cpu_time"`
	RealTime   []float64 `json:"real_time"`
	Iterations []int64   `json:"iterations"`
	Mean       float64   `json:"mean"`
	Median     float64   `json:"median"`
	StdDev     float64   `json:"stddev"`
	CV         float64   `json:"cv"`
	TimeUnit   string    `json:"time_unit,omitempty"`
}
