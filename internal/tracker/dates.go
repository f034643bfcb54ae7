package tracker

import (
	"fmt"
	"strings"
	"time"

	"github.com/jinzhu/now"
)

// DateLayout renders the canonical date string, e.g. "Wed Jan 01 2020".
const DateLayout = "Mon Jan 02 2006"

// inputLayouts are the date forms accepted from clients and from storage.
var inputLayouts = []string{
	"2006-01-02",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04:05.000Z",
	time.RFC3339,
	time.RFC3339Nano,
	"2006/01/02",
	"01/02/2006",
	"2006-1-2",
	"2006/1/2",
	"1/2/2006",
	DateLayout,
	"Jan 2, 2006",
	"January 2, 2006",
	"02 Jan 2006",
	"2 January 2006",
}

// Dates parses and formats dates in a fixed location.
type Dates struct {
	cfg *now.Config
}

func NewDates(loc *time.Location) *Dates {
	if loc == nil {
		loc = time.UTC
	}
	return &Dates{cfg: &now.Config{
		WeekStartDay: time.Monday,
		TimeLocation: loc,
		TimeFormats:  inputLayouts,
	}}
}

// Parse reads s in any accepted layout and truncates it to the start of its day.
func (d *Dates) Parse(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, fmt.Errorf("empty date")
	}
	t, err := d.cfg.Parse(s)
	if err != nil {
		return time.Time{}, fmt.Errorf("unrecognized date %q", s)
	}
	return d.cfg.With(t.In(d.cfg.TimeLocation)).BeginningOfDay(), nil
}

// Format renders t as the canonical date string.
func (d *Dates) Format(t time.Time) string {
	return t.In(d.cfg.TimeLocation).Format(DateLayout)
}

// Normalize returns the canonical form of raw, or of today when raw is blank.
func (d *Dates) Normalize(raw string, today time.Time) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return d.Format(today), nil
	}
	t, err := d.Parse(raw)
	if err != nil {
		return "", err
	}
	return d.Format(t), nil
}
