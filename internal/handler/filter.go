// Package handler holds the pieces shared by the per-domain handler
// packages: filter parsing and the health endpoint.
package handler

import (
	"fmt"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/therapy-report-api/internal/model"
)

// ParseFilter reads the common filter query params. Every param is
// optional and defaults to "all":
//
//	start_date, end_date  ISO dates, inclusive
//	therapists            comma-separated therapist names
//	session_types         comma-separated session types
//	statuses              comma-separated statuses
func ParseFilter(c *gin.Context) (model.SessionFilter, error) {
	var f model.SessionFilter

	if s := c.Query("start_date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("start_date: %w", err)
		}
		f.From = &d
	}
	if s := c.Query("end_date"); s != "" {
		d, err := model.ParseDate(s)
		if err != nil {
			return f, fmt.Errorf("end_date: %w", err)
		}
		f.To = &d
	}
	if f.From != nil && f.To != nil && f.From.After(f.To.Time) {
		return f, fmt.Errorf("start_date %s is after end_date %s", f.From, f.To)
	}

	f.Therapists = splitParam(c.Query("therapists"))
	for _, t := range splitParam(c.Query("session_types")) {
		f.SessionTypes = append(f.SessionTypes, model.SessionType(t))
	}
	for _, s := range splitParam(c.Query("statuses")) {
		f.Statuses = append(f.Statuses, model.SessionStatus(s))
	}
	return f, nil
}

func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
