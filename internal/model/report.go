package model

import "fmt"

// Bucket selects the time granularity for revenue-over-time reports.
type Bucket string

const (
	BucketDaily   Bucket = "daily"
	BucketWeekly  Bucket = "weekly"
	BucketMonthly Bucket = "monthly"
)

func ParseBucket(s string) (Bucket, error) {
	switch Bucket(s) {
	case BucketDaily, BucketWeekly, BucketMonthly:
		return Bucket(s), nil
	case "":
		return BucketDaily, nil
	default:
		return "", fmt.Errorf("unsupported bucket %q (supported: daily, weekly, monthly)", s)
	}
}

// OverviewMetrics is the headline metric row of a report. Rates are
// fractions in [0,1] and are 0, not NaN, when no sessions match.
type OverviewMetrics struct {
	TotalSessions     int     `json:"total_sessions"`
	CompletedSessions int     `json:"completed_sessions"`
	CompletionRate    float64 `json:"completion_rate"`
	NoShowSessions    int     `json:"no_show_sessions"`
	NoShowRate        float64 `json:"no_show_rate"`
	TotalRevenue      float64 `json:"total_revenue"`
}

// TherapistSummary is one therapist's slice of the filtered dataset.
// Revenue counts Completed sessions only.
type TherapistSummary struct {
	TherapistName string  `json:"therapist_name"`
	SessionCount  int     `json:"session_count"`
	Revenue       float64 `json:"revenue"`
}

type StatusCount struct {
	Status SessionStatus `json:"status"`
	Count  int           `json:"count"`
}

// RevenueBucket is one point of a revenue-over-time series. Label is
// the bucket's display key ("2024-03-08", "2024-W10" or "2024-03");
// Start orders the series.
type RevenueBucket struct {
	Label   string  `json:"label"`
	Start   Date    `json:"start"`
	Revenue float64 `json:"revenue"`
}

// CrossTabTable is a dense session_type × status count grid. Every
// observed type appears as a row and every observed status as a
// column, zeros included, so externally edited data with unexpected
// categories still lands in the table instead of being dropped.
type CrossTabTable struct {
	Types    []SessionType   `json:"types"`
	Statuses []SessionStatus `json:"statuses"`
	Counts   [][]int         `json:"counts"`
}

// SessionFilter narrows a dataset before aggregation. Nil/empty
// members mean "all"; the date bounds are inclusive.
type SessionFilter struct {
	From         *Date
	To           *Date
	Therapists   []string
	SessionTypes []SessionType
	Statuses     []SessionStatus
}
