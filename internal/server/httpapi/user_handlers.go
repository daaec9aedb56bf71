package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
)

type updateProfileRequest struct {
	DisplayName *string `json:"displayName" validate:"omitempty,max=100"`
	Timezone    *string `json:"timezone" validate:"omitempty,timezone"`
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	u, err := s.svc.Users.GetProfile(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var req updateProfileRequest
	if !decodeBody(w, r, &req) {
		return
	}

	u, err := s.svc.Users.UpdateProfile(r.Context(), userID(r), models.UserUpdate{
		DisplayName: req.DisplayName,
		Timezone:    req.Timezone,
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, u)
}

func (s *Server) deleteAccount(w http.ResponseWriter, r *http.Request) {
	if err := s.svc.Users.DeleteAccount(r.Context(), userID(r)); err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, messageResponse{Message: "Account deleted"})
}
