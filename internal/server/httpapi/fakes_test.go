package httpapi

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/healthlog/internal/logging"
	"github.com/dmitrijs2005/healthlog/internal/server/auth"
	"github.com/dmitrijs2005/healthlog/internal/server/config"
	"github.com/dmitrijs2005/healthlog/internal/server/models"
	"github.com/dmitrijs2005/healthlog/internal/server/services"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

// Each fake embeds the interface it stands in for; calling a method the
// test did not stub panics, which Recoverer turns into a 500.

type fakeUsers struct {
	UserService
	register func(context.Context, services.RegisterInput) (*services.AuthResult, error)
	login    func(context.Context, string, string) (*services.AuthResult, error)
	refresh  func(context.Context, string) (*auth.TokenPair, error)
	forgot   func(context.Context, string) error
	reset    func(context.Context, string, string) error
	profile  func(context.Context, string) (*models.User, error)
	update   func(context.Context, string, models.UserUpdate) (*models.User, error)
	del      func(context.Context, string) error
}

func (f *fakeUsers) Register(ctx context.Context, in services.RegisterInput) (*services.AuthResult, error) {
	return f.register(ctx, in)
}
func (f *fakeUsers) Login(ctx context.Context, e, p string) (*services.AuthResult, error) {
	return f.login(ctx, e, p)
}
func (f *fakeUsers) Refresh(ctx context.Context, t string) (*auth.TokenPair, error) {
	return f.refresh(ctx, t)
}
func (f *fakeUsers) ForgotPassword(ctx context.Context, e string) error { return f.forgot(ctx, e) }
func (f *fakeUsers) ResetPassword(ctx context.Context, t, p string) error {
	return f.reset(ctx, t, p)
}
func (f *fakeUsers) GetProfile(ctx context.Context, id string) (*models.User, error) {
	return f.profile(ctx, id)
}
func (f *fakeUsers) UpdateProfile(ctx context.Context, id string, u models.UserUpdate) (*models.User, error) {
	return f.update(ctx, id, u)
}
func (f *fakeUsers) DeleteAccount(ctx context.Context, id string) error { return f.del(ctx, id) }

type fakeSymptoms struct {
	ResourceService[models.Symptom, models.SymptomUpdate]
	list   func(context.Context, string, models.ResourceFilter) ([]*models.Symptom, int, error)
	get    func(context.Context, string, string) (*models.Symptom, error)
	create func(context.Context, string, *models.Symptom) (*models.Symptom, error)
	update func(context.Context, string, string, models.SymptomUpdate) (*models.Symptom, error)
	del    func(context.Context, string, string) error
}

func (f *fakeSymptoms) List(ctx context.Context, u string, flt models.ResourceFilter) ([]*models.Symptom, int, error) {
	return f.list(ctx, u, flt)
}
func (f *fakeSymptoms) Get(ctx context.Context, u, id string) (*models.Symptom, error) {
	return f.get(ctx, u, id)
}
func (f *fakeSymptoms) Create(ctx context.Context, u string, in *models.Symptom) (*models.Symptom, error) {
	return f.create(ctx, u, in)
}
func (f *fakeSymptoms) Update(ctx context.Context, u, id string, upd models.SymptomUpdate) (*models.Symptom, error) {
	return f.update(ctx, u, id, upd)
}
func (f *fakeSymptoms) Delete(ctx context.Context, u, id string) error { return f.del(ctx, u, id) }

type fakeLogs struct {
	LogService
	createSymptomLog func(context.Context, string, *models.SymptomLog) (*models.SymptomLog, error)
	listMoodLogs     func(context.Context, string, models.LogFilter) ([]*models.MoodLog, int, error)
	updateHabitLog   func(context.Context, string, string, models.HabitLogUpdate) (*models.HabitLog, error)
}

func (f *fakeLogs) CreateSymptomLog(ctx context.Context, u string, in *models.SymptomLog) (*models.SymptomLog, error) {
	return f.createSymptomLog(ctx, u, in)
}
func (f *fakeLogs) ListMoodLogs(ctx context.Context, u string, flt models.LogFilter) ([]*models.MoodLog, int, error) {
	return f.listMoodLogs(ctx, u, flt)
}
func (f *fakeLogs) UpdateHabitLog(ctx context.Context, u, id string, upd models.HabitLogUpdate) (*models.HabitLog, error) {
	return f.updateHabitLog(ctx, u, id, upd)
}

type fakeStats struct {
	summary func(context.Context, string) (*models.Summary, error)
}

func (f *fakeStats) Summary(ctx context.Context, u string) (*models.Summary, error) {
	return f.summary(ctx, u)
}

// --- harness ---

func testConfig() *config.Config {
	return &config.Config{
		EndpointAddrHTTP:             "127.0.0.1:0",
		SecretKey:                    testSecret,
		AccessTokenValidityDuration:  time.Hour,
		RefreshTokenValidityDuration: 2 * time.Hour,
		DefaultPageSize:              20,
		MaxPageSize:                  50,
		AllowedOrigins:               []string{"http://localhost:3000"},
	}
}

func newTestServer(svc Services) (*Server, *auth.Issuer) {
	cfg := testConfig()
	issuer := auth.NewIssuer([]byte(cfg.SecretKey), cfg.AccessTokenValidityDuration, cfg.RefreshTokenValidityDuration)
	return NewServer(cfg, logging.Nop{}, issuer, svc), issuer
}

func bearer(t *testing.T, issuer *auth.Issuer, userID string) string {
	t.Helper()
	pair, err := issuer.IssueTokens(userID, userID+"@example.com")
	require.NoError(t, err)
	return "Bearer " + pair.AccessToken
}

func do(t *testing.T, h http.Handler, method, path, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func doRequest(h http.Handler, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}
