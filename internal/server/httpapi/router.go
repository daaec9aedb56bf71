package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/healthlog/internal/server/metrics"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// Handler builds the routing tree.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)
	r.Use(metrics.InstrumentHandler)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	r.Get("/health", s.health)
	r.Method(http.MethodGet, "/metrics", metrics.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", s.register)
			r.Post("/login", s.login)
			r.Post("/refresh", s.refresh)
			r.Post("/logout", s.logout)
			r.Post("/forgot-password", s.forgotPassword)
			r.Post("/reset-password", s.resetPassword)
		})

		r.Group(func(r chi.Router) {
			r.Use(s.accessTokenMiddleware)

			r.Route("/users/me", func(r chi.Router) {
				r.Get("/", s.getProfile)
				r.Patch("/", s.updateProfile)
				r.Delete("/", s.deleteAccount)
			})

			r.Route("/symptoms", func(r chi.Router) {
				r.Get("/", s.listSymptoms)
				r.Post("/", s.createSymptom)
				r.Get("/{id}", s.getSymptom)
				r.Patch("/{id}", s.updateSymptom)
				r.Delete("/{id}", s.deleteSymptom)
			})
			r.Route("/habits", func(r chi.Router) {
				r.Get("/", s.listHabits)
				r.Post("/", s.createHabit)
				r.Get("/{id}", s.getHabit)
				r.Patch("/{id}", s.updateHabit)
				r.Delete("/{id}", s.deleteHabit)
			})
			r.Route("/medications", func(r chi.Router) {
				r.Get("/", s.listMedications)
				r.Post("/", s.createMedication)
				r.Get("/{id}", s.getMedication)
				r.Patch("/{id}", s.updateMedication)
				r.Delete("/{id}", s.deleteMedication)
			})

			r.Route("/symptom-logs", func(r chi.Router) {
				r.Get("/", s.listSymptomLogs)
				r.Post("/", s.createSymptomLog)
				r.Get("/{id}", s.getSymptomLog)
				r.Patch("/{id}", s.updateSymptomLog)
				r.Delete("/{id}", s.deleteSymptomLog)
			})
			r.Route("/mood-logs", func(r chi.Router) {
				r.Get("/", s.listMoodLogs)
				r.Post("/", s.createMoodLog)
				r.Get("/{id}", s.getMoodLog)
				r.Patch("/{id}", s.updateMoodLog)
				r.Delete("/{id}", s.deleteMoodLog)
			})
			r.Route("/medication-logs", func(r chi.Router) {
				r.Get("/", s.listMedicationLogs)
				r.Post("/", s.createMedicationLog)
				r.Get("/{id}", s.getMedicationLog)
				r.Patch("/{id}", s.updateMedicationLog)
				r.Delete("/{id}", s.deleteMedicationLog)
			})
			r.Route("/habit-logs", func(r chi.Router) {
				r.Get("/", s.listHabitLogs)
				r.Post("/", s.createHabitLog)
				r.Get("/{id}", s.getHabitLog)
				r.Patch("/{id}", s.updateHabitLog)
				r.Delete("/{id}", s.deleteHabitLog)
			})

			r.Get("/stats", s.stats)
		})
	})

	return r
}

func (s *Server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
