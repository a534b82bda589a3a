package handler

import "net/http"

// GetTaxEstimate handles GET /tax-estimate?from=YYYY-MM-DD&to=YYYY-MM-DD.
// Either bound may be omitted.
func (s *Server) GetTaxEstimate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	rng, err := s.bindDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	est, err := s.svc.Tax.Estimate(r.Context(), userID, rng)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	writeJSON(w, http.StatusOK, TaxEstimate{
		PeriodStart: optionalDate(est.PeriodStart),
		PeriodEnd:   optionalDate(est.PeriodEnd),
		GrossProfit: est.GrossProfit,
		Rate:        est.Rate,
		Amount:      est.Amount,
	})
}
