package httpapi

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/avelora/salesboard/internal/apisrv/dashboard"
	"github.com/avelora/salesboard/internal/auth/jwt"
	"github.com/avelora/salesboard/internal/dependency"
	"github.com/avelora/salesboard/internal/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeRunner struct {
	report *entity.Report
	err    error
}

func (f *fakeRunner) RunReport(ctx context.Context, q entity.ReportQuery) (*entity.Report, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.report, nil
}

type fakeRepo struct {
	dependency.Repository
	pingErr error
}

func (f *fakeRepo) Ping(ctx context.Context) error { return f.pingErr }

func newTestHandler(t *testing.T, runner *fakeRunner, repo *fakeRepo) (*Server, http.Handler) {
	t.Helper()
	s := New(&Config{JWTSecret: "secret"})
	return s, s.router(dashboard.New(runner), repo)
}

func testToken(t *testing.T, s *Server, req entity.Requester) string {
	t.Helper()
	tok, err := jwt.NewToken(s.jwtAuth, time.Hour, req)
	require.NoError(t, err)
	return tok
}

func TestHealthz(t *testing.T) {
	_, h := newTestHandler(t, &fakeRunner{}, &fakeRepo{})

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)

	_, h = newTestHandler(t, &fakeRunner{}, &fakeRepo{pingErr: errors.New("gone")})
	rec = httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestReportRequiresToken(t *testing.T) {
	_, h := newTestHandler(t, &fakeRunner{report: &entity.Report{}}, &fakeRepo{})

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"from":"2024-05-01","to":"2024-05-31"}`))
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestReportHappyPath(t *testing.T) {
	s, h := newTestHandler(t, &fakeRunner{report: &entity.Report{
		Rows: []entity.StaffSummary{{Team: "alpha", StaffName: "An"}},
	}}, &fakeRepo{})

	tok := testToken(t, s, entity.Requester{Name: "An", Email: "an@avelora.io", Role: "operator"})
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"from":"2024-05-01","to":"2024-05-31"}`))
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"staffName":"An"`)
}

func TestReportBadBody(t *testing.T) {
	s, h := newTestHandler(t, &fakeRunner{report: &entity.Report{}}, &fakeRepo{})

	tok := testToken(t, s, entity.Requester{Name: "An", Email: "an@avelora.io"})
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{`))
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportInvalidRequestMapsTo400(t *testing.T) {
	s, h := newTestHandler(t, &fakeRunner{report: &entity.Report{}}, &fakeRepo{})

	tok := testToken(t, s, entity.Requester{Name: "An", Email: "an@avelora.io"})
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"from":"whenever","to":"2024-05-31"}`))
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestReportRateLimited(t *testing.T) {
	s := New(&Config{JWTSecret: "secret", ReportsPerMinute: 1})
	h := s.router(dashboard.New(&fakeRunner{report: &entity.Report{}}), &fakeRepo{})

	tok := testToken(t, s, entity.Requester{Name: "An", Email: "an@avelora.io"})
	send := func() int {
		req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"from":"2024-05-01","to":"2024-05-31"}`))
		req.Header.Set("Authorization", "Bearer "+tok)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec.Code
	}

	assert.Equal(t, http.StatusOK, send())
	assert.Equal(t, http.StatusTooManyRequests, send())
}

func TestReportEngineFailureMapsTo500(t *testing.T) {
	s, h := newTestHandler(t, &fakeRunner{err: errors.New("store down")}, &fakeRepo{})

	tok := testToken(t, s, entity.Requester{Name: "An", Email: "an@avelora.io"})
	req := httptest.NewRequest(http.MethodPost, "/api/report", strings.NewReader(`{"from":"2024-05-01","to":"2024-05-31"}`))
	req.Header.Set("Authorization", "Bearer "+tok)

	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}
