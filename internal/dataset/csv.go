package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/jwalitptl/therapy-report-api/internal/model"
)

// Header is the column order of the tabular dataset format. Amounts
// are written with two decimal places so a round trip preserves them
// exactly.
var Header = []string{
	"session_id",
	"therapist_id",
	"therapist_name",
	"client_id",
	"session_date",
	"session_time",
	"session_type",
	"duration_minutes",
	"status",
	"amount",
	"notes",
}

func WriteCSV(w io.Writer, records []model.SessionRecord) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(Header); err != nil {
		return err
	}
	for _, r := range records {
		if err := cw.Write(recordToRow(r)); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func ReadCSV(r io.Reader) ([]model.SessionRecord, error) {
	cr := csv.NewReader(r)
	rows, err := cr.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("dataset: %w", ErrNoData)
	}
	if len(rows[0]) != len(Header) {
		return nil, fmt.Errorf("unexpected header: %d columns, want %d", len(rows[0]), len(Header))
	}

	records := make([]model.SessionRecord, 0, len(rows)-1)
	for i, row := range rows[1:] {
		rec, err := rowToRecord(row)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+2, err)
		}
		records = append(records, rec)
	}
	return records, nil
}

func recordToRow(r model.SessionRecord) []string {
	return []string{
		r.SessionID,
		r.TherapistID,
		r.TherapistName,
		r.ClientID,
		r.SessionDate.String(),
		r.SessionTime,
		string(r.SessionType),
		strconv.Itoa(r.DurationMinutes),
		string(r.Status),
		strconv.FormatFloat(r.Amount, 'f', 2, 64),
		r.Notes,
	}
}

// rowToRecord parses one data row. Status and session type are kept
// verbatim, even when unrecognized, so externally edited files still
// load and surface in reports.
func rowToRecord(row []string) (model.SessionRecord, error) {
	date, err := model.ParseDate(row[4])
	if err != nil {
		return model.SessionRecord{}, err
	}
	duration, err := strconv.Atoi(row[7])
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("invalid duration %q: %w", row[7], err)
	}
	amount, err := strconv.ParseFloat(row[9], 64)
	if err != nil {
		return model.SessionRecord{}, fmt.Errorf("invalid amount %q: %w", row[9], err)
	}

	return model.SessionRecord{
		SessionID:       row[0],
		TherapistID:     row[1],
		TherapistName:   row[2],
		ClientID:        row[3],
		SessionDate:     date,
		SessionTime:     row[5],
		SessionType:     model.SessionType(row[6]),
		DurationMinutes: duration,
		Status:          model.SessionStatus(row[8]),
		Amount:          amount,
		Notes:           row[10],
	}, nil
}
