package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrUnknownWeek is returned for a week outside the four-week mesocycle.
var ErrUnknownWeek = errors.New("unknown week")

// Week is a 1-based mesocycle week.
type Week int

const (
	Week1 Week = iota + 1
	Week2
	Week3
	Week4
)

// Weeks lists the mesocycle in order.
var Weeks = [4]Week{Week1, Week2, Week3, Week4}

// Valid reports whether w is within 1..4.
func (w Week) Valid() bool {
	return w >= Week1 && w <= Week4
}

// Index is the zero-based column into per-week percentage tables.
// Only meaningful for non-deload weeks.
func (w Week) Index() int { return int(w) - 1 }

// IsDeload reports whether w is the recovery week.
func (w Week) IsDeload() bool { return w == Week4 }

// Phase names the training theme of the week.
func (w Week) Phase() string {
	switch w {
	case Week1:
		return "Accumulation"
	case Week2:
		return "Intensification"
	case Week3:
		return "Peaking"
	case Week4:
		return "Deload"
	}
	panic(fmt.Sprintf("models: %v: %d", ErrUnknownWeek, int(w)))
}

func (w Week) String() string {
	return fmt.Sprintf("Week %d", int(w))
}

// ParseWeek accepts "1".."4", "week-1", "week 1" or "Week1".
func ParseWeek(s string) (Week, error) {
	v := strings.ToLower(strings.TrimSpace(s))
	v = strings.TrimPrefix(v, "week")
	v = strings.TrimLeft(v, "-_ ")
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeek, s)
	}
	w := Week(n)
	if !w.Valid() {
		return 0, fmt.Errorf("%w: %q", ErrUnknownWeek, s)
	}
	return w, nil
}
