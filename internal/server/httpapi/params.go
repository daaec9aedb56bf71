package httpapi

import (
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/pagination"
	"github.com/dmitrijs2005/healthlog/internal/timex"
	"github.com/google/uuid"
)

// queryReader collects query parameter errors so they can be reported
// together.
type queryReader struct {
	q      url.Values
	errors []fieldError

	// location resolves the zone bare dates are read in. Nil means UTC.
	location func() (*time.Location, error)
	loc      *time.Location
	err      error
}

func newQueryReader(r *http.Request) *queryReader {
	return &queryReader{q: r.URL.Query()}
}

func (qr *queryReader) fail(field, msg string) {
	qr.errors = append(qr.errors, fieldError{Field: field, Message: msg})
}

func (qr *queryReader) intParam(name string) int {
	v := qr.q.Get(name)
	if v == "" {
		return 0
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 1 {
		qr.fail(name, "must be a positive integer")
		return 0
	}
	return n
}

func (qr *queryReader) boolParam(name string) *bool {
	v := qr.q.Get(name)
	if v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		qr.fail(name, "must be true or false")
		return nil
	}
	return &b
}

func (qr *queryReader) uuidParam(name string) string {
	v := qr.q.Get(name)
	if v == "" {
		return ""
	}
	if _, err := uuid.Parse(v); err != nil {
		qr.fail(name, "must be a valid UUID")
		return ""
	}
	return v
}

// dayLocation resolves the bare-date zone once per request.
func (qr *queryReader) dayLocation() (*time.Location, error) {
	if qr.loc != nil || qr.err != nil {
		return qr.loc, qr.err
	}
	if qr.location == nil {
		qr.loc = time.UTC
		return qr.loc, nil
	}
	qr.loc, qr.err = qr.location()
	return qr.loc, qr.err
}

// timeParam accepts RFC 3339 or a bare date. A bare date is a calendar day
// in the requester's timezone; used as an upper bound it covers the whole day.
func (qr *queryReader) timeParam(name string, upper bool) *time.Time {
	v := qr.q.Get(name)
	if v == "" {
		return nil
	}
	if t, err := time.Parse(time.RFC3339Nano, v); err == nil {
		return &t
	}
	if _, err := time.Parse(timex.DayKeyLayout, v); err != nil {
		qr.fail(name, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return nil
	}
	loc, err := qr.dayLocation()
	if err != nil {
		return nil
	}
	t, err := time.ParseInLocation(timex.DayKeyLayout, v, loc)
	if err != nil {
		qr.fail(name, "must be an RFC 3339 timestamp or YYYY-MM-DD date")
		return nil
	}
	if upper {
		t = timex.AddDays(t, 1).Add(-time.Nanosecond)
	}
	return &t
}

func (qr *queryReader) page(defaultLimit, maxLimit int) pagination.Params {
	p := pagination.Params{Page: qr.intParam("page"), Limit: qr.intParam("limit")}
	p = p.Normalize(defaultLimit, maxLimit)
	if !p.OffsetFits() {
		qr.fail("page", "is out of range")
	}
	return p
}

// userLocation looks up the requester's profile timezone.
func (s *Server) userLocation(r *http.Request) func() (*time.Location, error) {
	return func() (*time.Location, error) {
		u, err := s.svc.Users.GetProfile(r.Context(), userID(r))
		if err != nil {
			return nil, err
		}
		return timex.LoadLocation(u.Timezone), nil
	}
}

func (s *Server) resourceFilter(w http.ResponseWriter, r *http.Request) (models.ResourceFilter, bool) {
	qr := newQueryReader(r)
	f := models.ResourceFilter{
		Active: qr.boolParam("active"),
		Params: qr.page(s.defaultPageSize, s.maxPageSize),
	}
	if len(qr.errors) > 0 {
		writeValidation(w, qr.errors)
		return f, false
	}
	return f, true
}

// logFilter reads gte, lte, page, limit and, when resourceParam is set,
// the single-resource filter.
func (s *Server) logFilter(w http.ResponseWriter, r *http.Request, resourceParam string) (models.LogFilter, bool) {
	qr := newQueryReader(r)
	qr.location = s.userLocation(r)
	f := models.LogFilter{
		From:   qr.timeParam("gte", false),
		To:     qr.timeParam("lte", true),
		Params: qr.page(s.defaultPageSize, s.maxPageSize),
	}
	if resourceParam != "" {
		f.ResourceID = qr.uuidParam(resourceParam)
	}
	if qr.err != nil {
		s.writeError(w, r, qr.err)
		return f, false
	}
	if f.From != nil && f.To != nil && f.To.Before(*f.From) {
		qr.fail("lte", "must not be before gte")
	}
	if len(qr.errors) > 0 {
		writeValidation(w, qr.errors)
		return f, false
	}
	return f, true
}
