// Package export renders a filtered session dataset into the
// downloadable formats the reporting surface offers.
package export

import (
	"fmt"
	"io"

	"github.com/jwalitptl/therapy-report-api/internal/model"
)

// Report is the payload handed to an exporter: the filtered records
// plus the summaries already computed over them. Exporters only
// render; they never aggregate.
type Report struct {
	Records    []model.SessionRecord
	Overview   model.OverviewMetrics
	Therapists []model.TherapistSummary
}

// Period returns the inclusive date span covered by the records.
// ok is false for an empty report.
func (r Report) Period() (from, to model.Date, ok bool) {
	if len(r.Records) == 0 {
		return model.Date{}, model.Date{}, false
	}
	from, to = r.Records[0].SessionDate, r.Records[0].SessionDate
	for _, rec := range r.Records[1:] {
		if rec.SessionDate.Before(from.Time) {
			from = rec.SessionDate
		}
		if rec.SessionDate.After(to.Time) {
			to = rec.SessionDate
		}
	}
	return from, to, true
}

// Exporter renders a report to a writer in one output format.
type Exporter interface {
	Export(w io.Writer, report Report) error
	Extension() string
	ContentType() string
}

// NewExporter returns the exporter for a format name.
func NewExporter(format string) (Exporter, error) {
	switch format {
	case "csv":
		return &CSVExporter{}, nil
	case "xlsx":
		return &XLSXExporter{}, nil
	case "pdf":
		return &PDFExporter{}, nil
	default:
		return nil, fmt.Errorf("unsupported format: %s (supported: csv, xlsx, pdf)", format)
	}
}
