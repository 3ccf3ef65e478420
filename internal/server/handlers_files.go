package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/meltforce/liftplan/internal/chart"
	"github.com/meltforce/liftplan/internal/export"
	"github.com/meltforce/liftplan/internal/schedule"
	"github.com/meltforce/liftplan/internal/storage"
)

func (s *Server) handleChart(w http.ResponseWriter, r *http.Request) {
	sched, rec, ok := s.schedule(w, r)
	if !ok {
		return
	}
	series, err := chart.Progression(sched)
	if err != nil {
		writeError(w, err)
		return
	}

	title := "Working weights"
	if rec.Name != "" {
		title += ": " + rec.Name
	}
	var buf bytes.Buffer
	if err := chart.WritePNG(&buf, title, series); err != nil {
		s.log.Error("chart render failed", "id", rec.ID, "error", err)
		writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(buf.Bytes())
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	sched, rec, ok := s.schedule(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteCSV(&buf, sched.Month()); err != nil {
		writeError(w, err)
		return
	}
	attach(w, "text/csv", rec, "csv")
	w.Write(buf.Bytes())
}

func (s *Server) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	sched, rec, ok := s.schedule(w, r)
	if !ok {
		return
	}
	var buf bytes.Buffer
	if err := export.WriteXLSX(&buf, sched.Month()); err != nil {
		s.log.Error("xlsx export failed", "id", rec.ID, "error", err)
		writeError(w, err)
		return
	}
	attach(w, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", rec, "xlsx")
	w.Write(buf.Bytes())
}

func attach(w http.ResponseWriter, contentType string, rec storage.Record, ext string) {
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="liftplan-%s.%s"`, rec.ID, ext))
}

func urlParam(r *http.Request, key string) string {
	return chi.URLParam(r, key)
}

func traineeID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(urlParam(r, "id"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid trainee ID"})
		return uuid.Nil, false
	}
	return id, true
}

// trainee loads the record named in the URL, writing the error response
// when it cannot.
func (s *Server) trainee(w http.ResponseWriter, r *http.Request) (storage.Record, bool) {
	id, ok := traineeID(w, r)
	if !ok {
		return storage.Record{}, false
	}
	rec, err := s.store.Get(r.Context(), id)
	if err != nil {
		writeError(w, err)
		return storage.Record{}, false
	}
	return rec, true
}

// schedule builds a schedule from the current trainee snapshot.
func (s *Server) schedule(w http.ResponseWriter, r *http.Request) (*schedule.Schedule, storage.Record, bool) {
	rec, ok := s.trainee(w, r)
	if !ok {
		return nil, storage.Record{}, false
	}
	return s.plan.Schedule(rec.Trainee), rec, true
}

// update applies fn atomically and answers with the new record. Rejected
// input leaves the stored trainee unchanged.
func (s *Server) update(w http.ResponseWriter, r *http.Request, fn func(schedule.Trainee) (schedule.Trainee, error)) {
	id, ok := traineeID(w, r)
	if !ok {
		return
	}
	rec, err := s.store.Update(r.Context(), id, fn)
	if err != nil {
		if errors.Is(err, schedule.ErrInvalidInput) {
			s.log.Warn("update rejected", "id", id, "error", err)
		}
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}
