package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/meltforce/liftplan/internal/chart"
	"github.com/meltforce/liftplan/internal/config"
	"github.com/meltforce/liftplan/internal/export"
	"github.com/meltforce/liftplan/internal/ingest/alpha"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/weights"
)

func main() {
	configPath := flag.String("config", "config.yaml", "path to config file")
	squats := flag.Float64("squats", 0, "squat one-rep max in kg (required)")
	bench := flag.Float64("bench", 0, "bench press one-rep max in kg (required)")
	deadlift := flag.Float64("deadlift", 0, "deadlift one-rep max in kg (required)")
	format := flag.String("format", "csv", "output format: csv, xlsx, sqlite or png")
	out := flag.String("out", "", "output file (csv writes to stdout when empty)")
	name := flag.String("name", "", "trainee name stored with sqlite exports")
	logPath := flag.String("log", "", "Alpha Progression CSV export to estimate missing maxes from")
	flag.Parse()

	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))

	if *logPath == "" && (*squats == 0 || *bench == 0 || *deadlift == 0) {
		fmt.Fprintf(os.Stderr, "Usage: liftplan-export {-squats 70 -bench 47.5 -deadlift 102.5 | -log export.csv} [-format csv|xlsx|sqlite|png] [-out file]\n")
		flag.PrintDefaults()
		os.Exit(1)
	}
	if *out == "" && *format != "csv" {
		log.Error("-out is required for format", "format", *format)
		os.Exit(1)
	}

	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Warn("failed to read .env", "error", err)
	}

	// Load config
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	plan, err := config.LoadPlan(cfg.Plan)
	if err != nil {
		log.Error("failed to load plan", "error", err)
		os.Exit(1)
	}
	planCtx, err := plan.Context()
	if err != nil {
		log.Error("invalid plan", "error", err)
		os.Exit(1)
	}

	maxes := make(map[models.Lift]float64)
	if *logPath != "" {
		estimated, err := estimateLog(*logPath, planCtx.Table())
		if err != nil {
			log.Error("failed to read training log", "path", *logPath, "error", err)
			os.Exit(1)
		}
		for lift, b := range estimated {
			log.Info("estimated one-rep max", "lift", lift, "set", fmt.Sprintf("%gx%d", b.Weight, b.Reps), "rounded", b.Rounded)
			maxes[lift] = b.Rounded
		}
	}
	// Flags override estimates.
	for lift, v := range map[models.Lift]float64{models.Squat: *squats, models.Bench: *bench, models.Deadlift: *deadlift} {
		if v != 0 {
			maxes[lift] = v
		}
	}
	trainee, err := planCtx.NewTrainee(maxes)
	if err != nil {
		log.Error("invalid one-rep max", "error", err)
		os.Exit(1)
	}
	sched := planCtx.Schedule(trainee)

	if err := write(context.Background(), sched, *format, *out, *name, maxes); err != nil {
		log.Error("export failed", "format", *format, "error", err)
		os.Exit(1)
	}
	if *out != "" {
		log.Info("export complete", "format", *format, "file", *out)
	}
}

func estimateLog(path string, table *weights.Table) (map[models.Lift]alpha.Best, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	sessions, err := alpha.Parse(f)
	if err != nil {
		return nil, err
	}
	return alpha.Estimate(sessions, table), nil
}

func write(ctx context.Context, sched *schedule.Schedule, format, out, name string, maxes map[models.Lift]float64) error {
	month := sched.Month()
	switch format {
	case "csv":
		if out == "" {
			return export.WriteCSV(os.Stdout, month)
		}
		return export.ToCSV(month, out)
	case "xlsx":
		return export.ToXLSX(month, out)
	case "sqlite":
		_, err := export.ToSQLite(ctx, out, name, maxes, month)
		return err
	case "png":
		series, err := chart.Progression(sched)
		if err != nil {
			return err
		}
		f, err := os.Create(out)
		if err != nil {
			return err
		}
		if err := chart.WritePNG(f, "Working weight progression", series); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	}
	return fmt.Errorf("unknown format %q", format)
}
