package handler

import (
	"net/http"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// GetProfile handles GET /profile. Users without a stored profile get the defaults.
func (s *Server) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	p, err := s.svc.Profiles.Get(r.Context(), userID)
	if err != nil {
		s.writeServiceError(w, r, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(p))
}

// PutProfile handles PUT /profile.
func (s *Server) PutProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	var body CostProfile
	if !decodeJSON(w, r, &body) {
		return
	}

	saved, err := s.svc.Profiles.Update(r.Context(), domain.CostProfile{
		UserID:            userID,
		CostPerKmVariable: body.CostPerKmVariable,
		CostPerKmFixed:    body.CostPerKmFixed,
		TaxRate:           body.TaxRate,
	})
	if err != nil {
		s.writeServiceError(w, r, err, "profile not found")
		return
	}
	writeJSON(w, http.StatusOK, profileToResponse(saved))
}
