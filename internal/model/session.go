package model

import (
	"fmt"
	"time"
)

type SessionStatus string

const (
	SessionStatusCompleted   SessionStatus = "Completed"
	SessionStatusCancelled   SessionStatus = "Cancelled"
	SessionStatusNoShow      SessionStatus = "No-Show"
	SessionStatusRescheduled SessionStatus = "Rescheduled"
)

// Billable reports whether a session in this status is charged.
// Cancelled and no-show sessions are never billed.
func (s SessionStatus) Billable() bool {
	return s != SessionStatusCancelled && s != SessionStatusNoShow
}

type SessionType string

const (
	SessionTypeIndividual   SessionType = "Individual Therapy"
	SessionTypeCouples      SessionType = "Couples Therapy"
	SessionTypeFamily       SessionType = "Family Therapy"
	SessionTypeGroup        SessionType = "Group Therapy"
	SessionTypeConsultation SessionType = "Initial Consultation"
)

// DurationMinutes returns the scheduled length for a session type.
// Duration depends only on the type, never on status or therapist.
func (t SessionType) DurationMinutes() int {
	switch t {
	case SessionTypeConsultation:
		return 90
	case SessionTypeCouples, SessionTypeFamily:
		return 60
	default:
		return 50
	}
}

// RateMultiplier adjusts a therapist's base rate for the session type.
func (t SessionType) RateMultiplier() float64 {
	switch t {
	case SessionTypeConsultation:
		return 1.2
	case SessionTypeGroup:
		return 0.6
	default:
		return 1.0
	}
}

// DateFormat is the wire format for session dates, ISO-8601 calendar dates.
const DateFormat = "2006-01-02"

// Date is a calendar date that marshals as an ISO-8601 date string
// rather than a full RFC3339 timestamp.
type Date struct {
	time.Time
}

func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

func ParseDate(s string) (Date, error) {
	t, err := time.Parse(DateFormat, s)
	if err != nil {
		return Date{}, fmt.Errorf("invalid date %q: %w", s, err)
	}
	return Date{t}, nil
}

func (d Date) String() string {
	return d.Format(DateFormat)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.Format(DateFormat) + `"`), nil
}

func (d *Date) UnmarshalJSON(b []byte) error {
	s := string(b)
	if len(s) < 2 || s[0] != '"' || s[len(s)-1] != '"' {
		return fmt.Errorf("invalid date %s", s)
	}
	parsed, err := ParseDate(s[1 : len(s)-1])
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Weekend reports whether the date falls on Saturday or Sunday.
func (d Date) Weekend() bool {
	wd := d.Weekday()
	return wd == time.Saturday || wd == time.Sunday
}

// SessionRecord is one therapy appointment's full set of descriptive
// and billing fields. Records are created once by the generator and
// immutable afterwards; reporting only ever reads them.
type SessionRecord struct {
	SessionID       string        `json:"session_id"`
	TherapistID     string        `json:"therapist_id"`
	TherapistName   string        `json:"therapist_name"`
	ClientID        string        `json:"client_id"`
	SessionDate     Date          `json:"session_date"`
	SessionTime     string        `json:"session_time"`
	SessionType     SessionType   `json:"session_type"`
	DurationMinutes int           `json:"duration_minutes"`
	Status          SessionStatus `json:"status"`
	Amount          float64       `json:"amount"`
	Notes           string        `json:"notes"`
}

// TherapistProfile is a fixed reference entity, read-only input to
// generation.
type TherapistProfile struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	HourlyRate float64 `json:"rate"`
}
