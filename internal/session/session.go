// Package session lays out the exercises of a single training day.
package session

import (
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/sets"
	"github.com/meltforce/liftplan/internal/weights"
)

// Section groups rows within a session.
type Section string

const (
	SectionMain      Section = "main"
	SectionSecondary Section = "secondary"
	SectionAccessory Section = "accessory"
	SectionPrehab    Section = "prehab"
	SectionDeload    Section = "deload"
)

// Row is one line of a session table.
type Row struct {
	Section  Section  `json:"section"`
	Exercise string   `json:"exercise"`
	Scheme   string   `json:"scheme"`
	Weight   *float64 `json:"weight,omitempty"`
	Label    string   `json:"weight_label,omitempty"`
}

// Session is a built training day. It is never mutated after construction.
type Session struct {
	Header string `json:"header"`
	Rows   []Row  `json:"rows"`
}

// Section returns the rows belonging to sec, in order.
func (s Session) Section(sec Section) []Row {
	var out []Row
	for _, r := range s.Rows {
		if r.Section == sec {
			out = append(out, r)
		}
	}
	return out
}

func weighted(sec Section, exercise, scheme string, w float64) Row {
	return Row{Section: sec, Exercise: exercise, Scheme: scheme, Weight: &w, Label: weights.Label(w)}
}

func unweighted(sec Section, exercise, scheme string) Row {
	return Row{Section: sec, Exercise: exercise, Scheme: scheme}
}

// pair lines up a scheme with a ladder. Warm-up descriptors take the rungs
// in order and the final working descriptor takes the working weight.
func pair(sec Section, lift models.Lift, scheme sets.Scheme, ladder weights.Ladder) []Row {
	rows := make([]Row, 0, len(scheme))
	for i, s := range scheme {
		w := ladder.Working()
		if i < len(scheme)-1 && i < len(ladder) {
			w = ladder[i]
		}
		rows = append(rows, weighted(sec, lift.Name(), s, w))
	}
	return rows
}
