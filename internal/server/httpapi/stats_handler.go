package httpapi

import "net/http"

func (s *Server) stats(w http.ResponseWriter, r *http.Request) {
	sum, err := s.svc.Stats.Summary(r.Context(), userID(r))
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}
