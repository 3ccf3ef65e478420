// Package chart renders the working-weight progression of a mesocycle.
package chart

import (
	"fmt"
	"io"

	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

// Series is one lift's per-week working and deload weights.
type Series struct {
	Lift    models.Lift
	Working []float64
	Deload  float64
}

// Progression collects the plotted series from a schedule.
func Progression(s *schedule.Schedule) ([]Series, error) {
	out := make([]Series, 0, len(models.Lifts))
	for _, lift := range models.Lifts {
		l, err := s.Ladders(lift)
		if err != nil {
			return nil, err
		}
		out = append(out, Series{Lift: lift, Working: l.Working, Deload: l.Deload.Working()})
	}
	return out, nil
}

// WritePNG draws one line per lift across all four weeks, the deload week
// included, and writes the PNG to w.
func WritePNG(w io.Writer, title string, series []Series) error {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "Week"
	p.Y.Label.Text = "Working weight (kg)"
	p.X.Tick.Marker = weekTicks{}
	p.Legend.Top = true

	for i, s := range series {
		points := make(plotter.XYs, 0, len(s.Working)+1)
		for week, v := range s.Working {
			points = append(points, plotter.XY{X: float64(week + 1), Y: v})
		}
		points = append(points, plotter.XY{X: float64(len(s.Working) + 1), Y: s.Deload})

		line, scatter, err := plotter.NewLinePoints(points)
		if err != nil {
			return fmt.Errorf("plotting %s: %w", s.Lift.Key(), err)
		}
		line.Color = plotutil.Color(i)
		scatter.Color = plotutil.Color(i)
		scatter.Shape = plotutil.Shape(i)
		p.Add(line, scatter)
		p.Legend.Add(s.Lift.Name(), line, scatter)
	}

	writerTo, err := p.WriterTo(8*vg.Inch, 4*vg.Inch, "png")
	if err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	if _, err := writerTo.WriteTo(w); err != nil {
		return fmt.Errorf("writing chart: %w", err)
	}
	return nil
}

// weekTicks labels integer weeks only.
type weekTicks struct{}

func (weekTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	for w := int(min); w <= int(max); w++ {
		if w < 1 {
			continue
		}
		ticks = append(ticks, plot.Tick{Value: float64(w), Label: fmt.Sprintf("Week %d", w)})
	}
	return ticks
}
