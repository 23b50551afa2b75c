package generator

import "github.com/jwalitptl/therapy-report-api/internal/model"

// Reference tables for synthesis. These are immutable configuration
// data shared across calls; nothing may mutate them.

var Therapists = []model.TherapistProfile{
	{ID: "T001", Name: "Dr. Sarah Johnson", HourlyRate: 150},
	{ID: "T002", Name: "Dr. Michael Chen", HourlyRate: 175},
	{ID: "T003", Name: "Dr. Emily Rodriguez", HourlyRate: 160},
	{ID: "T004", Name: "Dr. David Thompson", HourlyRate: 180},
	{ID: "T005", Name: "Dr. Lisa Anderson", HourlyRate: 155},
	{ID: "T006", Name: "Dr. James Wilson", HourlyRate: 170},
}

var sessionTypes = []model.SessionType{
	model.SessionTypeIndividual,
	model.SessionTypeCouples,
	model.SessionTypeFamily,
	model.SessionTypeGroup,
	model.SessionTypeConsultation,
}

// statusWeights is the outcome distribution for synthesized sessions.
// Most sessions complete; weights sum to 1.
var statusWeights = []struct {
	status model.SessionStatus
	weight float64
}{
	{model.SessionStatusCompleted, 0.75},
	{model.SessionStatusCancelled, 0.15},
	{model.SessionStatusNoShow, 0.08},
	{model.SessionStatusRescheduled, 0.02},
}

// genericNote is used when a status has no template list.
const genericNote = "Standard session"

var noteTemplates = map[model.SessionStatus][]string{
	model.SessionStatusCompleted: {
		"Session completed successfully",
		"Good progress noted",
		"Client engaged throughout session",
		"Homework assigned for next week",
		"Regular session, no concerns",
	},
	model.SessionStatusCancelled: {
		"Client cancelled 24 hours in advance",
		"Cancelled due to illness",
		"Emergency cancellation",
		"Cancelled - family emergency",
		"Client requested reschedule",
	},
	model.SessionStatusNoShow: {
		"Client did not attend",
		"No advance notice given",
		"Third no-show this month",
		"Client not reachable",
		"Missed appointment",
	},
	model.SessionStatusRescheduled: {
		"Rescheduled to next week",
		"Moved to different time slot",
		"Client requested different day",
		"Therapist availability conflict",
		"Mutual agreement to reschedule",
	},
}
