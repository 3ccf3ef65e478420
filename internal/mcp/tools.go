package mcp

import (
	"context"
	"fmt"
	"math"

	"github.com/google/uuid"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/meltforce/liftplan/internal/estimate"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/weights"
)

// --- Tool definitions ---

var toolListTrainees = mcp.NewTool("list_trainees",
	mcp.WithDescription("List all trainees with their ids, names and one-rep maxes."),
)

var toolCreateTrainee = mcp.NewTool("create_trainee",
	mcp.WithDescription("Create a trainee from tested one-rep maxes in kg. Maxes must sit on the plate increment (2.5 kg by default). Returns the trainee id used by the other tools."),
	mcp.WithString("name", mcp.Description("Display name")),
	mcp.WithNumber("squats", mcp.Required(), mcp.Description("Squat one-rep max in kg")),
	mcp.WithNumber("bench", mcp.Required(), mcp.Description("Bench press one-rep max in kg")),
	mcp.WithNumber("deadlift", mcp.Required(), mcp.Description("Deadlift one-rep max in kg")),
)

var toolGetWeek = mcp.NewTool("get_week",
	mcp.WithDescription("Get the three sessions of one week for a trainee. Weeks 1-3 are squat, bench and deadlift days; week 4 is the deload (full body, upper body, lower body). Each row has section, exercise, set scheme and weight."),
	mcp.WithString("trainee_id", mcp.Required(), mcp.Description("Trainee id from list_trainees or create_trainee")),
	mcp.WithNumber("week", mcp.Required(), mcp.Description("Week number 1-4")),
)

var toolGetLadders = mcp.NewTool("get_ladders",
	mcp.WithDescription("Get the warm-up ladders, working weights and deload ladder of one lift for a trainee."),
	mcp.WithString("trainee_id", mcp.Required(), mcp.Description("Trainee id")),
	mcp.WithString("lift", mcp.Required(), mcp.Description("Lift"), mcp.Enum("squats", "bench", "deadlift")),
)

var toolSetOneRepMax = mcp.NewTool("set_one_rep_max",
	mcp.WithDescription("Update one or more one-rep maxes for a trainee. Lifts not given keep their value. An invalid value rejects the whole update."),
	mcp.WithString("trainee_id", mcp.Required(), mcp.Description("Trainee id")),
	mcp.WithNumber("squats", mcp.Description("New squat one-rep max in kg")),
	mcp.WithNumber("bench", mcp.Description("New bench press one-rep max in kg")),
	mcp.WithNumber("deadlift", mcp.Description("New deadlift one-rep max in kg")),
)

var toolRoundWeight = mcp.NewTool("round_weight",
	mcp.WithDescription("Round a target weight to the nearest loadable weight using the configured plate increment."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Target weight in kg")),
)

var toolEstimateOneRepMax = mcp.NewTool("estimate_one_rep_max",
	mcp.WithDescription("Estimate a one-rep max from a set using the Epley and Brzycki formulas, and from the RPE chart when rpe is given."),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight lifted in kg")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetitions completed")),
	mcp.WithNumber("rpe", mcp.Description("Rate of perceived exertion, 6.5-10 in half steps")),
)

// --- Tool handlers ---

func (h *handlers) listTrainees(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	recs, err := h.ds.ListTrainees(ctx)
	if err != nil {
		h.log.Error("mcp list_trainees", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(recs)
}

func (h *handlers) createTrainee(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	maxes := liftArgs(req)
	if len(maxes) != len(models.Lifts) {
		return mcp.NewToolResultError("squats, bench and deadlift are required"), nil
	}

	rec, err := h.ds.CreateTrainee(ctx, req.GetString("name", ""), maxes)
	if err != nil {
		return mcp.NewToolResultError("create failed: " + err.Error()), nil
	}
	h.log.Info("mcp trainee created", "id", rec.ID)
	return toolJSON(rec)
}

func (h *handlers) getWeek(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := traineeArg(req)
	if errResult != nil {
		return errResult, nil
	}
	n, err := req.RequireFloat("week")
	if err != nil {
		return mcp.NewToolResultError("week parameter is required"), nil
	}
	week := models.Week(n)
	if n != math.Trunc(n) || !week.Valid() {
		return mcp.NewToolResultError(fmt.Sprintf("week must be 1-%d", len(models.Weeks))), nil
	}

	plan, err := h.ds.Week(ctx, id, week)
	if err != nil {
		h.log.Error("mcp get_week", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(plan)
}

func (h *handlers) getLadders(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := traineeArg(req)
	if errResult != nil {
		return errResult, nil
	}
	name, err := req.RequireString("lift")
	if err != nil {
		return mcp.NewToolResultError("lift parameter is required"), nil
	}
	lift, err := models.ParseLift(name)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	ladders, err := h.ds.Ladders(ctx, id, lift)
	if err != nil {
		h.log.Error("mcp get_ladders", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return toolJSON(ladders)
}

func (h *handlers) setOneRepMax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, errResult := traineeArg(req)
	if errResult != nil {
		return errResult, nil
	}
	update := liftArgs(req)
	if len(update) == 0 {
		return mcp.NewToolResultError("at least one of squats, bench or deadlift is required"), nil
	}

	rec, err := h.ds.SetOneRepMax(ctx, id, update)
	if err != nil {
		h.log.Warn("mcp set_one_rep_max rejected", "id", id, "error", err)
		return mcp.NewToolResultError("update failed: " + err.Error()), nil
	}
	return toolJSON(rec)
}

func (h *handlers) roundWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	v, err := req.RequireFloat("weight")
	if err != nil || v <= 0 {
		return mcp.NewToolResultError("weight must be a positive number"), nil
	}

	info, err := h.ds.Plan(ctx)
	if err != nil {
		h.log.Error("mcp round_weight", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	rounded := info.Table.Round(v)
	return toolJSON(map[string]any{
		"weight":  v,
		"rounded": rounded,
		"label":   weights.Label(rounded),
	})
}

func (h *handlers) estimateOneRepMax(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}

	res, err := estimate.All(weight, reps, req.GetFloat("rpe", 0))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return toolJSON(res)
}

// traineeArg parses the trainee_id parameter, returning a tool error result
// when it is missing or malformed.
func traineeArg(req mcp.CallToolRequest) (uuid.UUID, *mcp.CallToolResult) {
	s, err := req.RequireString("trainee_id")
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("trainee_id parameter is required")
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.Nil, mcp.NewToolResultError("invalid trainee_id: " + err.Error())
	}
	return id, nil
}

// liftArgs collects the per-lift numeric parameters that are present.
func liftArgs(req mcp.CallToolRequest) map[models.Lift]float64 {
	args := req.GetArguments()
	out := make(map[models.Lift]float64)
	for _, lift := range models.Lifts {
		if _, ok := args[lift.Key()]; !ok {
			continue
		}
		out[lift] = req.GetFloat(lift.Key(), 0)
	}
	return out
}

func toolJSON(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}
