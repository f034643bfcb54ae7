package tracker

import (
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/errs"
	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/models"
)

// LogQuery holds the optional filters of a log request. Bounds are inclusive.
type LogQuery struct {
	From  *time.Time
	To    *time.Time
	Limit *int
}

// ParseLogQuery reads from, to and limit from the query string.
func (d *Dates) ParseLogQuery(q url.Values) (LogQuery, error) {
	var (
		lq     LogQuery
		fields []errs.FieldError
	)
	for _, bound := range []struct {
		name string
		dst  **time.Time
	}{{"from", &lq.From}, {"to", &lq.To}} {
		raw := strings.TrimSpace(q.Get(bound.name))
		if raw == "" {
			continue
		}
		t, err := d.Parse(raw)
		if err != nil {
			fields = append(fields, errs.FieldError{Field: bound.name, Error: "must be a valid date"})
			continue
		}
		*bound.dst = &t
	}

	if raw := strings.TrimSpace(q.Get("limit")); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			fields = append(fields, errs.FieldError{Field: "limit", Error: "must be a non-negative integer"})
		} else {
			lq.Limit = &n
		}
	}

	if fields != nil {
		return LogQuery{}, errs.NewBadRequestError("Invalid log query", fields)
	}
	return lq, nil
}

// BuildLog projects exercises to log entries, keeps those inside the date
// bounds and truncates to the limit. Input order is preserved.
func (d *Dates) BuildLog(exercises []models.Exercise, q LogQuery) []models.LogEntry {
	log := make([]models.LogEntry, 0, len(exercises))
	for _, ex := range exercises {
		if !d.inRange(ex.Date, q) {
			continue
		}
		log = append(log, models.LogEntry{
			Description: ex.Description,
			Duration:    ex.Duration,
			Date:        ex.Date,
		})
	}
	if q.Limit != nil && *q.Limit < len(log) {
		log = log[:*q.Limit]
	}
	return log
}

func (d *Dates) inRange(date string, q LogQuery) bool {
	if q.From == nil && q.To == nil {
		return true
	}
	t, err := d.Parse(date)
	if err != nil {
		return false
	}
	if q.From != nil && t.Before(*q.From) {
		return false
	}
	if q.To != nil && t.After(*q.To) {
		return false
	}
	return true
}
