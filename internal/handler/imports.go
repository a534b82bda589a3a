package handler

import (
	"errors"
	"io"
	"mime"
	"net/http"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// ImportRequest is the JSON body of POST /imports.
type ImportRequest struct {
	RawFileContent string `json:"rawFileContent"`
	Mode           string `json:"mode"`
}

// RejectionItem is one invalid row of an import.
type RejectionItem struct {
	Index  int    `json:"index"`
	Reason string `json:"reason"`
}

// NoValidTripsResponse is the 400 body when nothing in the file is usable.
type NoValidTripsResponse struct {
	Error      string          `json:"error"`
	Code       string          `json:"code"`
	Rejections []RejectionItem `json:"rejections"`
}

// PreviewResponse is the 200 body of a preview.
type PreviewResponse struct {
	Preview      bool            `json:"preview"`
	TotalTrips   int             `json:"totalTrips"`
	ValidTrips   int             `json:"validTrips"`
	InvalidTrips int             `json:"invalidTrips"`
	Errors       []RejectionItem `json:"errors"`
	SampleData   []Trip          `json:"sampleData"`
}

// MessageResponse is the 200 body of a commit with nothing new to store.
type MessageResponse struct {
	Message string `json:"message"`
}

// ImportedResponse is the 200 body of a successful commit.
type ImportedResponse struct {
	Success        bool   `json:"success"`
	ImportedCount  int    `json:"importedCount"`
	DuplicateCount int    `json:"duplicateCount"`
	Message        string `json:"message"`
}

// PostImport handles POST /imports.
// The file is sent either as JSON {rawFileContent, mode} or as a raw
// text/csv body with ?mode=. A mode in the JSON body wins over the query.
func (s *Server) PostImport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUser(w, r)
	if !ok {
		return
	}

	var mode *string
	if err := bindQuery(r, "mode", &mode); err != nil {
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}
	req := domain.ImportRequest{UserID: userID}
	if mode != nil {
		req.Mode = domain.ImportMode(*mode)
	}

	if isJSON(r) {
		var body ImportRequest
		if !decodeJSON(w, r, &body) {
			return
		}
		req.Raw = body.RawFileContent
		if body.Mode != "" {
			req.Mode = domain.ImportMode(body.Mode)
		}
	} else {
		raw, err := io.ReadAll(r.Body)
		if err != nil {
			if tooLarge(err) {
				writeError(w, http.StatusRequestEntityTooLarge, "payload_too_large", "request body too large")
				return
			}
			writeError(w, http.StatusBadRequest, "bad_request", "could not read request body")
			return
		}
		req.Raw = string(raw)
	}

	res, err := s.svc.Imports.Run(r.Context(), req)
	if err != nil {
		s.writeImportError(w, r, err)
		return
	}

	switch res.Outcome {
	case domain.OutcomeNoValidTrips:
		writeJSON(w, http.StatusBadRequest, NoValidTripsResponse{
			Error:      res.Message,
			Code:       "no_valid_trips",
			Rejections: rejectionsToResponse(res.Rejections),
		})
	case domain.OutcomePreview:
		writeJSON(w, http.StatusOK, PreviewResponse{
			Preview:      true,
			TotalTrips:   res.Total,
			ValidTrips:   res.Valid,
			InvalidTrips: res.Invalid,
			Errors:       rejectionsToResponse(res.Rejections),
			SampleData:   tripsToResponse(res.Sample),
		})
	case domain.OutcomeNothingNew:
		writeJSON(w, http.StatusOK, MessageResponse{Message: res.Message})
	default:
		writeJSON(w, http.StatusOK, ImportedResponse{
			Success:        true,
			ImportedCount:  res.Imported,
			DuplicateCount: res.Duplicates,
			Message:        res.Message,
		})
	}
}

// writeImportError maps import failures. Validation and persistence errors
// are 400s on this endpoint; the storage error text is passed through.
func (s *Server) writeImportError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		writeError(w, http.StatusBadRequest, "validation_error", unwrapMessage(err, domain.ErrValidation))
	case errors.Is(err, domain.ErrPersistence):
		s.log.WarnContext(r.Context(), "import commit failed", "error", err)
		writeError(w, http.StatusBadRequest, "persistence_error", unwrapMessage(err, domain.ErrPersistence))
	default:
		s.writeServiceError(w, r, err, "")
	}
}

func rejectionsToResponse(rs []domain.Rejection) []RejectionItem {
	out := make([]RejectionItem, len(rs))
	for i, rej := range rs {
		out[i] = RejectionItem{Index: rej.RowIndex, Reason: rej.Reason()}
	}
	return out
}

func isJSON(r *http.Request) bool {
	mt, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mt == "application/json"
}
