package export

import (
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/jwalitptl/therapy-report-api/internal/dataset"
)

const (
	sessionsSheet = "Sessions"
	summarySheet  = "Therapist Summary"
)

// XLSXExporter writes a two-sheet workbook: the filtered records and
// the per-therapist summary.
type XLSXExporter struct{}

func (e *XLSXExporter) Export(w io.Writer, report Report) error {
	f := excelize.NewFile()
	defer f.Close()

	if err := f.SetSheetName("Sheet1", sessionsSheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}
	if _, err := f.NewSheet(summarySheet); err != nil {
		return fmt.Errorf("failed to set up workbook: %w", err)
	}

	if err := e.writeSessions(f, report); err != nil {
		return err
	}
	if err := e.writeSummary(f, report); err != nil {
		return err
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

func (e *XLSXExporter) writeSessions(f *excelize.File, report Report) error {
	header := make([]interface{}, len(dataset.Header))
	for i, col := range dataset.Header {
		header[i] = col
	}
	if err := f.SetSheetRow(sessionsSheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write sessions header: %w", err)
	}

	for i, r := range report.Records {
		row := []interface{}{
			r.SessionID,
			r.TherapistID,
			r.TherapistName,
			r.ClientID,
			r.SessionDate.String(),
			r.SessionTime,
			string(r.SessionType),
			r.DurationMinutes,
			string(r.Status),
			r.Amount,
			r.Notes,
		}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sessionsSheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write session row %d: %w", i+1, err)
		}
	}
	return nil
}

func (e *XLSXExporter) writeSummary(f *excelize.File, report Report) error {
	header := []interface{}{"therapist_name", "total_sessions", "total_revenue"}
	if err := f.SetSheetRow(summarySheet, "A1", &header); err != nil {
		return fmt.Errorf("failed to write summary header: %w", err)
	}

	for i, s := range report.Therapists {
		row := []interface{}{s.TherapistName, s.SessionCount, s.Revenue}
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(summarySheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write summary row %d: %w", i+1, err)
		}
	}
	return nil
}

func (e *XLSXExporter) Extension() string { return "xlsx" }

func (e *XLSXExporter) ContentType() string {
	return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
}
