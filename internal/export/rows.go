// Package export writes a computed month to CSV, XLSX or SQLite.
package export

import (
	"strconv"

	"github.com/meltforce/liftplan/internal/schedule"
)

// Line is one session row with its week and session context.
type Line struct {
	Week     int
	Phase    string
	Header   string
	Session  string
	Slot     int
	Position int
	Section  string
	Exercise string
	Scheme   string
	Weight   *float64
	Label    string
}

// Flatten lays out every row of the month in week, session, row order.
func Flatten(m schedule.Month) []Line {
	var out []Line
	for _, wp := range m.Weeks {
		for slot, s := range wp.Sessions {
			for pos, r := range s.Rows {
				out = append(out, Line{
					Week:     int(wp.Week),
					Phase:    wp.Phase,
					Header:   wp.Header,
					Session:  s.Header,
					Slot:     slot + 1,
					Position: pos + 1,
					Section:  string(r.Section),
					Exercise: r.Exercise,
					Scheme:   r.Scheme,
					Weight:   r.Weight,
					Label:    r.Label,
				})
			}
		}
	}
	return out
}

var header = []string{"Week", "Phase", "Session", "Section", "Exercise", "Scheme", "Weight"}

func (l Line) record() []string {
	weight := ""
	if l.Weight != nil {
		weight = strconv.FormatFloat(*l.Weight, 'f', -1, 64)
	}
	return []string{
		strconv.Itoa(l.Week),
		l.Phase,
		l.Session,
		l.Section,
		l.Exercise,
		l.Scheme,
		weight,
	}
}
