package generator

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"time"

	"github.com/jwalitptl/therapy-report-api/internal/model"
)

// Business-hours constants for synthesized sessions.
const (
	firstSessionHour = 9
	lastSessionHour  = 17
	clientPoolSize   = 200
)

// ErrInvalidRange is returned when a generation request's start date
// falls after its end date.
var ErrInvalidRange = errors.New("start date is after end date")

type GenerateRequest struct {
	Count     int
	StartDate model.Date
	EndDate   model.Date
}

// Service synthesizes session datasets. The random source is
// injected so tests can seed it; production callers pass nil and get
// a time-seeded source. A fresh run with a nil source is not
// reproducible, and that is intended.
type Service struct {
	rng *rand.Rand
}

func NewService(rng *rand.Rand) *Service {
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	return &Service{rng: rng}
}

// Generate synthesizes up to req.Count session records over the
// inclusive date range. Candidates that land on a weekend are
// discarded rather than resampled, so the returned count may be
// smaller than requested; callers must not assume exactly Count
// records. Session IDs stay sequential over candidate indexes, so a
// discarded candidate leaves a gap-free prefix only when no weekends
// are in range.
func (s *Service) Generate(req GenerateRequest) ([]model.SessionRecord, error) {
	if req.StartDate.After(req.EndDate.Time) {
		return nil, fmt.Errorf("generate %s..%s: %w", req.StartDate, req.EndDate, ErrInvalidRange)
	}

	rangeDays := int(req.EndDate.Sub(req.StartDate.Time).Hours() / 24)
	records := make([]model.SessionRecord, 0, req.Count)

	for i := 0; i < req.Count; i++ {
		therapist := Therapists[s.rng.Intn(len(Therapists))]
		date := model.Date{Time: req.StartDate.AddDate(0, 0, s.rng.Intn(rangeDays+1))}
		hour := firstSessionHour + s.rng.Intn(lastSessionHour-firstSessionHour+1)
		minute := 30 * s.rng.Intn(2)

		if date.Weekend() {
			continue
		}

		sessionType := sessionTypes[s.rng.Intn(len(sessionTypes))]
		status := s.randomStatus()

		amount := 0.0
		if status.Billable() {
			amount = round2(therapist.HourlyRate * sessionType.RateMultiplier())
		}

		records = append(records, model.SessionRecord{
			SessionID:       fmt.Sprintf("S%04d", i+1),
			TherapistID:     therapist.ID,
			TherapistName:   therapist.Name,
			ClientID:        fmt.Sprintf("C%03d", 1+s.rng.Intn(clientPoolSize)),
			SessionDate:     date,
			SessionTime:     fmt.Sprintf("%02d:%02d", hour, minute),
			SessionType:     sessionType,
			DurationMinutes: sessionType.DurationMinutes(),
			Status:          status,
			Amount:          amount,
			Notes:           s.note(status),
		})
	}

	return records, nil
}

// randomStatus draws a status from the weighted distribution.
func (s *Service) randomStatus() model.SessionStatus {
	r := s.rng.Float64()
	for _, sw := range statusWeights {
		if r < sw.weight {
			return sw.status
		}
		r -= sw.weight
	}
	return statusWeights[len(statusWeights)-1].status
}

func (s *Service) note(status model.SessionStatus) string {
	templates, ok := noteTemplates[status]
	if !ok {
		return genericNote
	}
	return templates[s.rng.Intn(len(templates))]
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
