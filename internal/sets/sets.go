// Package sets builds textual set/rep prescriptions such as "3x5".
package sets

import (
	"fmt"
	"strings"
)

// BarSet is the empty-bar warm-up prepended when StartWithBar is set.
const BarSet = "1x5"

// warmupStartReps is the rep count of the first warm-up set after the bar.
const warmupStartReps = 4

// Params describes one exercise block.
type Params struct {
	WarmupSets   int
	WorkingSets  int
	EndingReps   int
	MaxReps      int
	StartWithBar bool
}

// Scheme is an ordered list of "<sets>x<reps>" descriptors.
type Scheme []string

func (s Scheme) String() string {
	return strings.Join(s, ", ")
}

// Generate returns the scheme for p. Warm-up reps descend linearly from 4
// to EndingReps, truncated toward zero. The result always has at least the
// working descriptor.
func Generate(p Params) Scheme {
	out := make(Scheme, 0, p.WarmupSets+2)
	if p.StartWithBar {
		out = append(out, BarSet)
	}
	for _, r := range descend(warmupStartReps, p.EndingReps, p.WarmupSets) {
		out = append(out, fmt.Sprintf("1x%d", r))
	}
	return append(out, fmt.Sprintf("%dx%d", p.WorkingSets, p.MaxReps))
}

func descend(from, to, n int) []int {
	if n <= 0 {
		return nil
	}
	out := make([]int, n)
	if n == 1 {
		out[0] = from
		return out
	}
	step := float64(to-from) / float64(n-1)
	for i := range out {
		out[i] = int(float64(i)*step + float64(from))
	}
	out[n-1] = to
	return out
}
