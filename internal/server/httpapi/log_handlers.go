package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/pagination"
)

// Log references (symptomId, medicationId, habitId) are fixed at creation;
// update requests have no field for them.

type createSymptomLogRequest struct {
	SymptomID string     `json:"symptomId" validate:"required,uuid"`
	Severity  int        `json:"severity" validate:"required,min=1,max=10"`
	Notes     *string    `json:"notes" validate:"omitempty,max=1000"`
	LoggedAt  *time.Time `json:"loggedAt"`
}

type updateSymptomLogRequest struct {
	Severity *int       `json:"severity" validate:"omitempty,min=1,max=10"`
	Notes    *string    `json:"notes" validate:"omitempty,max=1000"`
	LoggedAt *time.Time `json:"loggedAt"`
}

type createMoodLogRequest struct {
	MoodScore   int        `json:"moodScore" validate:"required,min=1,max=10"`
	EnergyLevel *int       `json:"energyLevel" validate:"omitempty,min=1,max=10"`
	StressLevel *int       `json:"stressLevel" validate:"omitempty,min=1,max=10"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
	LoggedAt    *time.Time `json:"loggedAt"`
}

type updateMoodLogRequest struct {
	MoodScore   *int       `json:"moodScore" validate:"omitempty,min=1,max=10"`
	EnergyLevel *int       `json:"energyLevel" validate:"omitempty,min=1,max=10"`
	StressLevel *int       `json:"stressLevel" validate:"omitempty,min=1,max=10"`
	Notes       *string    `json:"notes" validate:"omitempty,max=1000"`
	LoggedAt    *time.Time `json:"loggedAt"`
}

type createMedicationLogRequest struct {
	MedicationID string     `json:"medicationId" validate:"required,uuid"`
	Taken        *bool      `json:"taken" validate:"required"`
	TakenAt      *time.Time `json:"takenAt"`
	Notes        *string    `json:"notes" validate:"omitempty,max=1000"`
}

type updateMedicationLogRequest struct {
	Taken   *bool      `json:"taken"`
	TakenAt *time.Time `json:"takenAt"`
	Notes   *string    `json:"notes" validate:"omitempty,max=1000"`
}

type createHabitLogRequest struct {
	HabitID  string     `json:"habitId" validate:"required,uuid"`
	Value    *float64   `json:"value" validate:"required,gte=0"`
	Notes    *string    `json:"notes" validate:"omitempty,max=1000"`
	LoggedAt *time.Time `json:"loggedAt"`
}

type updateHabitLogRequest struct {
	Value    *float64   `json:"value" validate:"omitempty,gte=0"`
	Notes    *string    `json:"notes" validate:"omitempty,max=1000"`
	LoggedAt *time.Time `json:"loggedAt"`
}

func derefTime(t *time.Time) time.Time {
	if t == nil {
		return time.Time{}
	}
	return *t
}

// --- shared log handlers ---

func listLogs[T any](s *Server, resourceParam string,
	list func(context.Context, string, models.LogFilter) ([]*T, int, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := s.logFilter(w, r, resourceParam)
		if !ok {
			return
		}
		items, total, err := list(r.Context(), userID(r), f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, pagination.NewPage(items, f.Params, total))
	}
}

func getLog[T any](s *Server, resource string, get func(context.Context, string, string) (*T, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, resource)
		if !ok {
			return
		}
		item, err := get(r.Context(), userID(r), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, item)
	}
}

func deleteLog(s *Server, resource string, del func(context.Context, string, string) error) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, resource)
		if !ok {
			return
		}
		if err := del(r.Context(), userID(r), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: resource + " deleted"})
	}
}

// writeResult finishes a create or update handler.
func writeResult[T any](s *Server, w http.ResponseWriter, r *http.Request, status int, item *T, err error) {
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, status, item)
}

// --- symptom logs ---

func (s *Server) listSymptomLogs(w http.ResponseWriter, r *http.Request) {
	listLogs(s, "symptomId", s.svc.Logs.ListSymptomLogs)(w, r)
}

func (s *Server) getSymptomLog(w http.ResponseWriter, r *http.Request) {
	getLog(s, "Symptom log", s.svc.Logs.GetSymptomLog)(w, r)
}

func (s *Server) deleteSymptomLog(w http.ResponseWriter, r *http.Request) {
	deleteLog(s, "Symptom log", s.svc.Logs.DeleteSymptomLog)(w, r)
}

func (s *Server) createSymptomLog(w http.ResponseWriter, r *http.Request) {
	var req createSymptomLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.CreateSymptomLog(r.Context(), userID(r), &models.SymptomLog{
		SymptomID: req.SymptomID,
		Severity:  req.Severity,
		Notes:     req.Notes,
		LoggedAt:  derefTime(req.LoggedAt),
	})
	writeResult(s, w, r, http.StatusCreated, out, err)
}

func (s *Server) updateSymptomLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Symptom log")
	if !ok {
		return
	}
	var req updateSymptomLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.UpdateSymptomLog(r.Context(), userID(r), id, models.SymptomLogUpdate{
		Severity: req.Severity,
		Notes:    req.Notes,
		LoggedAt: req.LoggedAt,
	})
	writeResult(s, w, r, http.StatusOK, out, err)
}

// --- mood logs ---

func (s *Server) listMoodLogs(w http.ResponseWriter, r *http.Request) {
	listLogs(s, "", s.svc.Logs.ListMoodLogs)(w, r)
}

func (s *Server) getMoodLog(w http.ResponseWriter, r *http.Request) {
	getLog(s, "Mood log", s.svc.Logs.GetMoodLog)(w, r)
}

func (s *Server) deleteMoodLog(w http.ResponseWriter, r *http.Request) {
	deleteLog(s, "Mood log", s.svc.Logs.DeleteMoodLog)(w, r)
}

func (s *Server) createMoodLog(w http.ResponseWriter, r *http.Request) {
	var req createMoodLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.CreateMoodLog(r.Context(), userID(r), &models.MoodLog{
		MoodScore:   req.MoodScore,
		EnergyLevel: req.EnergyLevel,
		StressLevel: req.StressLevel,
		Notes:       req.Notes,
		LoggedAt:    derefTime(req.LoggedAt),
	})
	writeResult(s, w, r, http.StatusCreated, out, err)
}

func (s *Server) updateMoodLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Mood log")
	if !ok {
		return
	}
	var req updateMoodLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.UpdateMoodLog(r.Context(), userID(r), id, models.MoodLogUpdate{
		MoodScore:   req.MoodScore,
		EnergyLevel: req.EnergyLevel,
		StressLevel: req.StressLevel,
		Notes:       req.Notes,
		LoggedAt:    req.LoggedAt,
	})
	writeResult(s, w, r, http.StatusOK, out, err)
}

// --- medication logs ---

func (s *Server) listMedicationLogs(w http.ResponseWriter, r *http.Request) {
	listLogs(s, "medicationId", s.svc.Logs.ListMedicationLogs)(w, r)
}

func (s *Server) getMedicationLog(w http.ResponseWriter, r *http.Request) {
	getLog(s, "Medication log", s.svc.Logs.GetMedicationLog)(w, r)
}

func (s *Server) deleteMedicationLog(w http.ResponseWriter, r *http.Request) {
	deleteLog(s, "Medication log", s.svc.Logs.DeleteMedicationLog)(w, r)
}

func (s *Server) createMedicationLog(w http.ResponseWriter, r *http.Request) {
	var req createMedicationLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.CreateMedicationLog(r.Context(), userID(r), &models.MedicationLog{
		MedicationID: req.MedicationID,
		Taken:        *req.Taken,
		TakenAt:      req.TakenAt,
		Notes:        req.Notes,
	})
	writeResult(s, w, r, http.StatusCreated, out, err)
}

func (s *Server) updateMedicationLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Medication log")
	if !ok {
		return
	}
	var req updateMedicationLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.UpdateMedicationLog(r.Context(), userID(r), id, models.MedicationLogUpdate{
		Taken:   req.Taken,
		TakenAt: req.TakenAt,
		Notes:   req.Notes,
	})
	writeResult(s, w, r, http.StatusOK, out, err)
}

// --- habit logs ---

func (s *Server) listHabitLogs(w http.ResponseWriter, r *http.Request) {
	listLogs(s, "habitId", s.svc.Logs.ListHabitLogs)(w, r)
}

func (s *Server) getHabitLog(w http.ResponseWriter, r *http.Request) {
	getLog(s, "Habit log", s.svc.Logs.GetHabitLog)(w, r)
}

func (s *Server) deleteHabitLog(w http.ResponseWriter, r *http.Request) {
	deleteLog(s, "Habit log", s.svc.Logs.DeleteHabitLog)(w, r)
}

func (s *Server) createHabitLog(w http.ResponseWriter, r *http.Request) {
	var req createHabitLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.CreateHabitLog(r.Context(), userID(r), &models.HabitLog{
		HabitID:  req.HabitID,
		Value:    *req.Value,
		Notes:    req.Notes,
		LoggedAt: derefTime(req.LoggedAt),
	})
	writeResult(s, w, r, http.StatusCreated, out, err)
}

func (s *Server) updateHabitLog(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Habit log")
	if !ok {
		return
	}
	var req updateHabitLogRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Logs.UpdateHabitLog(r.Context(), userID(r), id, models.HabitLogUpdate{
		Value:    req.Value,
		Notes:    req.Notes,
		LoggedAt: req.LoggedAt,
	})
	writeResult(s, w, r, http.StatusOK, out, err)
}
