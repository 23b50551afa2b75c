package export

import (
	"io"

	"github.com/jwalitptl/therapy-report-api/internal/dataset"
)

// CSVExporter writes the filtered records in the dataset's own
// tabular format, so an export can be re-loaded as a dataset.
type CSVExporter struct{}

func (e *CSVExporter) Export(w io.Writer, report Report) error {
	return dataset.WriteCSV(w, report.Records)
}

func (e *CSVExporter) Extension() string { return "csv" }

func (e *CSVExporter) ContentType() string { return "text/csv" }
