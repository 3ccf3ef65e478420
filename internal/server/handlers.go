package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/meltforce/liftplan/internal/estimate"
	"github.com/meltforce/liftplan/internal/ingest/alpha"
	"github.com/meltforce/liftplan/internal/models"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/session"
	"github.com/meltforce/liftplan/internal/storage"
	"github.com/meltforce/liftplan/internal/weights"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMe(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, userInfoFromContext(r))
}

func (s *Server) handlePlan(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.plan.Info())
}

func (s *Server) handleRound(w http.ResponseWriter, r *http.Request) {
	v, err := strconv.ParseFloat(r.URL.Query().Get("weight"), 64)
	if err != nil || v <= 0 {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight must be a positive number"})
		return
	}
	rounded := s.plan.Table().Round(v)
	writeJSON(w, http.StatusOK, map[string]any{
		"weight":  v,
		"rounded": rounded,
		"label":   weights.Label(rounded),
	})
}

func (s *Server) handleEstimate(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	weight, err := strconv.ParseFloat(q.Get("weight"), 64)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "weight parameter required"})
		return
	}
	reps, err := strconv.Atoi(q.Get("reps"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "reps parameter required"})
		return
	}
	var rpe float64
	if v := q.Get("rpe"); v != "" {
		if rpe, err = strconv.ParseFloat(v, 64); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid rpe"})
			return
		}
	}

	res, err := estimate.All(weight, reps, rpe)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"estimate": res,
		"rounded": map[string]float64{
			"epley":   s.plan.Table().Round(res.Epley),
			"brzycki": s.plan.Table().Round(res.Brzycki),
		},
	})
}

// maxLogSize bounds uploaded training logs.
const maxLogSize = 10 << 20

// handleEstimateLog estimates one-rep maxes from an Alpha Progression CSV
// export sent as the request body.
func (s *Server) handleEstimateLog(w http.ResponseWriter, r *http.Request) {
	sessions, err := alpha.Parse(http.MaxBytesReader(w, r.Body, maxLogSize))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid training log: " + err.Error()})
		return
	}
	best := alpha.Estimate(sessions, s.plan.Table())
	s.log.Info("training log estimated", "sessions", len(sessions), "lifts", len(best))
	writeJSON(w, http.StatusOK, map[string]any{
		"sessions":    len(sessions),
		"estimates":   best,
		"one_rep_max": alpha.OneRepMax(best),
	})
}

type createTraineeRequest struct {
	Name            string                  `json:"name"`
	OneRepMax       map[models.Lift]float64 `json:"one_rep_max"`
	StartingWeights map[models.Lift]float64 `json:"starting_weights"`
}

func (s *Server) handleCreateTrainee(w http.ResponseWriter, r *http.Request) {
	var req createTraineeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	t, err := s.plan.NewTrainee(req.OneRepMax)
	if err != nil {
		writeError(w, err)
		return
	}
	if len(req.StartingWeights) > 0 {
		if t, err = s.plan.WithStartingWeights(t, req.StartingWeights); err != nil {
			writeError(w, err)
			return
		}
	}

	name := req.Name
	if name == "" {
		name = userInfoFromContext(r).DisplayName
	}
	rec, err := s.store.Create(r.Context(), name, t)
	if err != nil {
		writeError(w, err)
		return
	}
	s.log.Info("trainee created", "id", rec.ID, "name", rec.Name)
	writeJSON(w, http.StatusCreated, rec)
}

func (s *Server) handleListTrainees(w http.ResponseWriter, r *http.Request) {
	recs, err := s.store.List(r.Context())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, recs)
}

func (s *Server) handleGetTrainee(w http.ResponseWriter, r *http.Request) {
	rec, ok := s.trainee(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func (s *Server) handleDeleteTrainee(w http.ResponseWriter, r *http.Request) {
	id, ok := traineeID(w, r)
	if !ok {
		return
	}
	if err := s.store.Delete(r.Context(), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSetOneRepMax(w http.ResponseWriter, r *http.Request) {
	var update map[models.Lift]float64
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.update(w, r, func(t schedule.Trainee) (schedule.Trainee, error) {
		return s.plan.WithOneRepMax(t, update)
	})
}

func (s *Server) handleSetStartingWeights(w http.ResponseWriter, r *http.Request) {
	var update map[models.Lift]float64
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.update(w, r, func(t schedule.Trainee) (schedule.Trainee, error) {
		return s.plan.WithStartingWeights(t, update)
	})
}

func (s *Server) handleSetSelection(w http.ResponseWriter, r *http.Request) {
	var sel session.Selection
	if err := json.NewDecoder(r.Body).Decode(&sel); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	s.update(w, r, func(t schedule.Trainee) (schedule.Trainee, error) {
		return s.plan.WithSelection(t, sel)
	})
}

func (s *Server) handleMonth(w http.ResponseWriter, r *http.Request) {
	sched, _, ok := s.schedule(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, sched.Month())
}

func (s *Server) handleWeek(w http.ResponseWriter, r *http.Request) {
	week, err := models.ParseWeek(urlParam(r, "week"))
	if err != nil {
		writeError(w, err)
		return
	}
	sched, _, ok := s.schedule(w, r)
	if !ok {
		return
	}
	plan, err := sched.Plan(week)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, plan)
}

func (s *Server) handleLadders(w http.ResponseWriter, r *http.Request) {
	lift, err := models.ParseLift(urlParam(r, "lift"))
	if err != nil {
		writeError(w, err)
		return
	}
	sched, _, ok := s.schedule(w, r)
	if !ok {
		return
	}
	ladders, err := sched.Ladders(lift)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, ladders)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps domain errors to HTTP status codes.
func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, storage.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, schedule.ErrInvalidInput),
		errors.Is(err, models.ErrUnknownLift),
		errors.Is(err, models.ErrUnknownWeek),
		errors.Is(err, estimate.ErrOutOfRange):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
