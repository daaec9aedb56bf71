package httpapi

import (
	"net/http"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/ownership"
	"github.com/dmitrijs2005/healthlog/internal/server/pagination"
)

// --- views ---

// ownerFields renders the owner as the userId/isDefault pair clients see.
func ownerFields(o ownership.Owner) (*string, bool) {
	if o.IsSystem() {
		return nil, true
	}
	id := o.UserID()
	return &id, false
}

type symptomView struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	IsDefault bool      `json:"isDefault"`
	Name      string    `json:"name"`
	Category  *string   `json:"category"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func newSymptomView(m *models.Symptom) symptomView {
	uid, def := ownerFields(m.Owner)
	return symptomView{ID: m.ID, UserID: uid, IsDefault: def, Name: m.Name, Category: m.Category, Active: m.Active, CreatedAt: m.CreatedAt}
}

type habitView struct {
	ID           string              `json:"id"`
	UserID       *string             `json:"userId"`
	IsDefault    bool                `json:"isDefault"`
	Name         string              `json:"name"`
	Description  *string             `json:"description"`
	TrackingType models.TrackingType `json:"trackingType"`
	Unit         *string             `json:"unit"`
	Active       bool                `json:"active"`
	CreatedAt    time.Time           `json:"createdAt"`
}

func newHabitView(m *models.Habit) habitView {
	uid, def := ownerFields(m.Owner)
	return habitView{ID: m.ID, UserID: uid, IsDefault: def, Name: m.Name, Description: m.Description,
		TrackingType: m.TrackingType, Unit: m.Unit, Active: m.Active, CreatedAt: m.CreatedAt}
}

type medicationView struct {
	ID        string    `json:"id"`
	UserID    *string   `json:"userId"`
	Name      string    `json:"name"`
	Dosage    *string   `json:"dosage"`
	Frequency *string   `json:"frequency"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

func newMedicationView(m *models.Medication) medicationView {
	uid, _ := ownerFields(m.Owner)
	return medicationView{ID: m.ID, UserID: uid, Name: m.Name, Dosage: m.Dosage, Frequency: m.Frequency, Active: m.Active, CreatedAt: m.CreatedAt}
}

// --- requests ---

type createSymptomRequest struct {
	Name     string  `json:"name" validate:"required,min=1,max=100"`
	Category *string `json:"category" validate:"omitempty,max=50"`
	Active   *bool   `json:"active"`
}

type updateSymptomRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Category *string `json:"category" validate:"omitempty,max=50"`
	Active   *bool   `json:"active"`
}

type createHabitRequest struct {
	Name         string  `json:"name" validate:"required,min=1,max=100"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	TrackingType string  `json:"trackingType" validate:"required,oneof=boolean numeric duration"`
	Unit         *string `json:"unit" validate:"omitempty,max=50"`
	Active       *bool   `json:"active"`
}

type updateHabitRequest struct {
	Name         *string `json:"name" validate:"omitempty,min=1,max=100"`
	Description  *string `json:"description" validate:"omitempty,max=500"`
	TrackingType *string `json:"trackingType" validate:"omitempty,oneof=boolean numeric duration"`
	Unit         *string `json:"unit" validate:"omitempty,max=50"`
	Active       *bool   `json:"active"`
}

type createMedicationRequest struct {
	Name      string  `json:"name" validate:"required,min=1,max=100"`
	Dosage    *string `json:"dosage" validate:"omitempty,max=100"`
	Frequency *string `json:"frequency" validate:"omitempty,max=100"`
	Active    *bool   `json:"active"`
}

type updateMedicationRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=1,max=100"`
	Dosage    *string `json:"dosage" validate:"omitempty,max=100"`
	Frequency *string `json:"frequency" validate:"omitempty,max=100"`
	Active    *bool   `json:"active"`
}

func activeOrDefault(b *bool) bool {
	return b == nil || *b
}

// --- shared resource handlers ---

func listResources[T, U, V any](s *Server, svc ResourceService[T, U], view func(*T) V) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		f, ok := s.resourceFilter(w, r)
		if !ok {
			return
		}
		items, total, err := svc.List(r.Context(), userID(r), f)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		views := make([]V, 0, len(items))
		for _, it := range items {
			views = append(views, view(it))
		}
		writeJSON(w, http.StatusOK, pagination.NewPage(views, f.Params, total))
	}
}

func getResource[T, U, V any](s *Server, svc ResourceService[T, U], resource string, view func(*T) V) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, resource)
		if !ok {
			return
		}
		item, err := svc.Get(r.Context(), userID(r), id)
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, view(item))
	}
}

func deleteResource[T, U any](s *Server, svc ResourceService[T, U], resource string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, ok := pathID(w, r, resource)
		if !ok {
			return
		}
		if err := svc.Delete(r.Context(), userID(r), id); err != nil {
			s.writeError(w, r, err)
			return
		}
		writeJSON(w, http.StatusOK, messageResponse{Message: resource + " deleted"})
	}
}

// --- symptoms ---

func (s *Server) listSymptoms(w http.ResponseWriter, r *http.Request) {
	listResources(s, s.svc.Symptoms, newSymptomView)(w, r)
}

func (s *Server) getSymptom(w http.ResponseWriter, r *http.Request) {
	getResource(s, s.svc.Symptoms, "Symptom", newSymptomView)(w, r)
}

func (s *Server) deleteSymptom(w http.ResponseWriter, r *http.Request) {
	deleteResource(s, s.svc.Symptoms, "Symptom")(w, r)
}

func (s *Server) createSymptom(w http.ResponseWriter, r *http.Request) {
	var req createSymptomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Symptoms.Create(r.Context(), userID(r), &models.Symptom{
		Name:     req.Name,
		Category: req.Category,
		Active:   activeOrDefault(req.Active),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newSymptomView(out))
}

func (s *Server) updateSymptom(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Symptom")
	if !ok {
		return
	}
	var req updateSymptomRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Symptoms.Update(r.Context(), userID(r), id, models.SymptomUpdate{
		Name:     req.Name,
		Category: req.Category,
		Active:   req.Active,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newSymptomView(out))
}

// --- habits ---

func (s *Server) listHabits(w http.ResponseWriter, r *http.Request) {
	listResources(s, s.svc.Habits, newHabitView)(w, r)
}

func (s *Server) getHabit(w http.ResponseWriter, r *http.Request) {
	getResource(s, s.svc.Habits, "Habit", newHabitView)(w, r)
}

func (s *Server) deleteHabit(w http.ResponseWriter, r *http.Request) {
	deleteResource(s, s.svc.Habits, "Habit")(w, r)
}

func (s *Server) createHabit(w http.ResponseWriter, r *http.Request) {
	var req createHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Habits.Create(r.Context(), userID(r), &models.Habit{
		Name:         req.Name,
		Description:  req.Description,
		TrackingType: models.TrackingType(req.TrackingType),
		Unit:         req.Unit,
		Active:       activeOrDefault(req.Active),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newHabitView(out))
}

func (s *Server) updateHabit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Habit")
	if !ok {
		return
	}
	var req updateHabitRequest
	if !decodeBody(w, r, &req) {
		return
	}
	upd := models.HabitUpdate{
		Name:        req.Name,
		Description: req.Description,
		Unit:        req.Unit,
		Active:      req.Active,
	}
	if req.TrackingType != nil {
		tt := models.TrackingType(*req.TrackingType)
		upd.TrackingType = &tt
	}
	out, err := s.svc.Habits.Update(r.Context(), userID(r), id, upd)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newHabitView(out))
}

// --- medications ---

func (s *Server) listMedications(w http.ResponseWriter, r *http.Request) {
	listResources(s, s.svc.Medications, newMedicationView)(w, r)
}

func (s *Server) getMedication(w http.ResponseWriter, r *http.Request) {
	getResource(s, s.svc.Medications, "Medication", newMedicationView)(w, r)
}

func (s *Server) deleteMedication(w http.ResponseWriter, r *http.Request) {
	deleteResource(s, s.svc.Medications, "Medication")(w, r)
}

func (s *Server) createMedication(w http.ResponseWriter, r *http.Request) {
	var req createMedicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Medications.Create(r.Context(), userID(r), &models.Medication{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Active:    activeOrDefault(req.Active),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, newMedicationView(out))
}

func (s *Server) updateMedication(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(w, r, "Medication")
	if !ok {
		return
	}
	var req updateMedicationRequest
	if !decodeBody(w, r, &req) {
		return
	}
	out, err := s.svc.Medications.Update(r.Context(), userID(r), id, models.MedicationUpdate{
		Name:      req.Name,
		Dosage:    req.Dosage,
		Frequency: req.Frequency,
		Active:    req.Active,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, newMedicationView(out))
}
