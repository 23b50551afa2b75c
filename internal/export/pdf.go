package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"
)

// PDFExporter writes the short summary report: period, headline
// totals and per-therapist session counts.
type PDFExporter struct{}

func (e *PDFExporter) Export(w io.Writer, report Report) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 16)
	pdf.CellFormat(0, 10, "Therapy Session Report", "", 1, "C", false, 0, "")
	pdf.Ln(10)

	pdf.SetFont("Arial", "", 12)
	if from, to, ok := report.Period(); ok {
		pdf.CellFormat(0, 10, fmt.Sprintf("Report Period: %s to %s", from, to), "", 1, "L", false, 0, "")
	}
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Sessions: %d", report.Overview.TotalSessions), "", 1, "L", false, 0, "")
	pdf.CellFormat(0, 10, fmt.Sprintf("Total Revenue: $%.2f", report.Overview.TotalRevenue), "", 1, "L", false, 0, "")
	pdf.Ln(5)

	pdf.CellFormat(0, 10, "Sessions by Therapist:", "", 1, "L", false, 0, "")
	for _, s := range report.Therapists {
		line := fmt.Sprintf("  %s: %d sessions", s.TherapistName, s.SessionCount)
		pdf.CellFormat(0, 8, line, "", 1, "L", false, 0, "")
	}

	if err := pdf.Output(w); err != nil {
		return fmt.Errorf("failed to render report: %w", err)
	}
	return nil
}

func (e *PDFExporter) Extension() string { return "pdf" }

func (e *PDFExporter) ContentType() string { return "application/pdf" }
