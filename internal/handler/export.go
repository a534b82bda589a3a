package handler

import (
	"bytes"
	"net/http"
	"strconv"
)

// GetExport handles GET /trips/export.
// ?from= and ?to= bound the range; ?format=csv returns the ledger CSV, which
// imports back without creating duplicates. The default is JSON.
func (s *Server) GetExport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}
	rng, err := s.bindDateRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	var format *string
	if err := bindQuery(r, "format", &format); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	if format != nil && *format != "csv" && *format != "json" {
		writeError(w, http.StatusBadRequest, "bad_request", "format must be csv or json")
		return
	}

	trips, err := s.svc.Export.Export(r.Context(), userID, rng)
	if err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}

	if format == nil || *format == "json" {
		writeJSON(w, http.StatusOK, tripsToResponse(trips))
		return
	}

	var buf bytes.Buffer
	if err := s.ledger.Write(&buf, trips); err != nil {
		s.writeServiceError(w, r, err, "")
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="trips.csv"`)
	w.Header().Set("Content-Length", strconv.Itoa(buf.Len()))
	w.WriteHeader(http.StatusOK)
	_, _ = buf.WriteTo(w)
}
