// Package report computes summary metrics over session datasets. All
// functions are pure: output depends only on the input multiset, and
// the input slice is never mutated. Every sequence-valued result has
// a stated order so row order in the input cannot leak through.
package report

import (
	"fmt"
	"sort"
	"time"

	"github.com/jwalitptl/therapy-report-api/internal/model"
)

// Overview computes the headline metrics for a record set. Rates are
// 0 when the set is empty; revenue counts Completed sessions only.
func Overview(records []model.SessionRecord) model.OverviewMetrics {
	var m model.OverviewMetrics
	m.TotalSessions = len(records)

	for _, r := range records {
		switch r.Status {
		case model.SessionStatusCompleted:
			m.CompletedSessions++
			m.TotalRevenue += r.Amount
		case model.SessionStatusNoShow:
			m.NoShowSessions++
		}
	}

	if m.TotalSessions > 0 {
		m.CompletionRate = float64(m.CompletedSessions) / float64(m.TotalSessions)
		m.NoShowRate = float64(m.NoShowSessions) / float64(m.TotalSessions)
	}
	return m
}

// TherapistSummaries groups the set by therapist name, counting
// sessions and summing Completed revenue. Sorted by revenue
// descending, then name ascending.
func TherapistSummaries(records []model.SessionRecord) []model.TherapistSummary {
	byName := make(map[string]*model.TherapistSummary)
	for _, r := range records {
		s, ok := byName[r.TherapistName]
		if !ok {
			s = &model.TherapistSummary{TherapistName: r.TherapistName}
			byName[r.TherapistName] = s
		}
		s.SessionCount++
		if r.Status == model.SessionStatusCompleted {
			s.Revenue += r.Amount
		}
	}

	out := make([]model.TherapistSummary, 0, len(byName))
	for _, s := range byName {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Revenue != out[j].Revenue {
			return out[i].Revenue > out[j].Revenue
		}
		return out[i].TherapistName < out[j].TherapistName
	})
	return out
}

// StatusDistribution counts records per status. Statuses absent from
// the input are absent from the result; unrecognized status strings
// are counted like any other. Sorted by count descending, then
// status ascending.
func StatusDistribution(records []model.SessionRecord) []model.StatusCount {
	counts := make(map[model.SessionStatus]int)
	for _, r := range records {
		counts[r.Status]++
	}

	out := make([]model.StatusCount, 0, len(counts))
	for status, n := range counts {
		out = append(out, model.StatusCount{Status: status, Count: n})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Status < out[j].Status
	})
	return out
}

// RevenueOverTime buckets Completed-session revenue by calendar day,
// ISO week or calendar month. The series is sorted ascending by
// bucket start.
func RevenueOverTime(records []model.SessionRecord, bucket model.Bucket) []model.RevenueBucket {
	type entry struct {
		start   model.Date
		revenue float64
	}
	buckets := make(map[string]*entry)

	for _, r := range records {
		if r.Status != model.SessionStatusCompleted {
			continue
		}
		label, start := bucketKey(r.SessionDate, bucket)
		e, ok := buckets[label]
		if !ok {
			e = &entry{start: start}
			buckets[label] = e
		}
		e.revenue += r.Amount
	}

	out := make([]model.RevenueBucket, 0, len(buckets))
	for label, e := range buckets {
		out = append(out, model.RevenueBucket{Label: label, Start: e.start, Revenue: e.revenue})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Start.Before(out[j].Start.Time)
	})
	return out
}

// bucketKey maps a session date to its bucket label and start date.
func bucketKey(d model.Date, bucket model.Bucket) (string, model.Date) {
	switch bucket {
	case model.BucketWeekly:
		start := isoWeekStart(d.Time)
		year, week := d.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week), model.Date{Time: start}
	case model.BucketMonthly:
		start := time.Date(d.Year(), d.Month(), 1, 0, 0, 0, 0, time.UTC)
		return d.Format("2006-01"), model.Date{Time: start}
	default:
		return d.String(), d
	}
}

// isoWeekStart returns the Monday of the ISO week containing t.
func isoWeekStart(t time.Time) time.Time {
	wd := int(t.Weekday())
	if wd == 0 {
		wd = 7
	}
	return t.AddDate(0, 0, -(wd - 1))
}

// CrossTab builds the dense session_type × status count grid. Rows
// and columns cover every observed category, sorted ascending, with
// zeros where a pair never occurs. Unexpected categories from
// externally edited data become ordinary rows/columns.
func CrossTab(records []model.SessionRecord) model.CrossTabTable {
	typeSet := make(map[model.SessionType]struct{})
	statusSet := make(map[model.SessionStatus]struct{})
	pairs := make(map[model.SessionType]map[model.SessionStatus]int)

	for _, r := range records {
		typeSet[r.SessionType] = struct{}{}
		statusSet[r.Status] = struct{}{}
		if pairs[r.SessionType] == nil {
			pairs[r.SessionType] = make(map[model.SessionStatus]int)
		}
		pairs[r.SessionType][r.Status]++
	}

	table := model.CrossTabTable{
		Types:    make([]model.SessionType, 0, len(typeSet)),
		Statuses: make([]model.SessionStatus, 0, len(statusSet)),
	}
	for t := range typeSet {
		table.Types = append(table.Types, t)
	}
	for s := range statusSet {
		table.Statuses = append(table.Statuses, s)
	}
	sort.Slice(table.Types, func(i, j int) bool { return table.Types[i] < table.Types[j] })
	sort.Slice(table.Statuses, func(i, j int) bool { return table.Statuses[i] < table.Statuses[j] })

	table.Counts = make([][]int, len(table.Types))
	for i, t := range table.Types {
		row := make([]int, len(table.Statuses))
		for j, s := range table.Statuses {
			row[j] = pairs[t][s]
		}
		table.Counts[i] = row
	}
	return table
}

// Filter returns the records matching every set member of f. Empty
// members mean "all"; date bounds are inclusive.
func Filter(records []model.SessionRecord, f model.SessionFilter) []model.SessionRecord {
	therapists := toSet(f.Therapists)
	types := toSet(f.SessionTypes)
	statuses := toSet(f.Statuses)

	out := make([]model.SessionRecord, 0, len(records))
	for _, r := range records {
		if f.From != nil && r.SessionDate.Before(f.From.Time) {
			continue
		}
		if f.To != nil && r.SessionDate.After(f.To.Time) {
			continue
		}
		if therapists != nil {
			if _, ok := therapists[r.TherapistName]; !ok {
				continue
			}
		}
		if types != nil {
			if _, ok := types[r.SessionType]; !ok {
				continue
			}
		}
		if statuses != nil {
			if _, ok := statuses[r.Status]; !ok {
				continue
			}
		}
		out = append(out, r)
	}
	return out
}

func toSet[T comparable](values []T) map[T]struct{} {
	if len(values) == 0 {
		return nil
	}
	set := make(map[T]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return set
}
