package handler

import (
	"fmt"
	"net/http"
	"time"

	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"

	"github.com/vinih2/giropro-motoristas-v2-sub000/internal/domain"
)

// bindQuery binds one optional form-style query parameter into dest.
func bindQuery(r *http.Request, name string, dest any) error {
	if err := runtime.BindQueryParameter("form", true, false, name, r.URL.Query(), dest); err != nil {
		return fmt.Errorf("invalid %s parameter", name)
	}
	return nil
}

// bindDateRange reads ?from= and ?to= (YYYY-MM-DD) as calendar days in loc.
func (s *Server) bindDateRange(r *http.Request) (domain.DateRange, error) {
	var from, to *openapi_types.Date
	if err := bindQuery(r, "from", &from); err != nil {
		return domain.DateRange{}, err
	}
	if err := bindQuery(r, "to", &to); err != nil {
		return domain.DateRange{}, err
	}
	return domain.DateRange{From: s.day(from), To: s.day(to)}, nil
}

func (s *Server) day(d *openapi_types.Date) time.Time {
	if d == nil {
		return time.Time{}
	}
	y, m, dd := d.Date()
	return time.Date(y, m, dd, 0, 0, 0, 0, s.loc)
}
