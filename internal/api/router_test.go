package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type stubTokens map[string]domain.Caller

func (s stubTokens) ParseToken(raw string) (domain.Caller, error) {
	if c, ok := s[raw]; ok {
		return c, nil
	}
	return domain.Caller{}, errors.New("unknown token")
}

type stubProviders struct {
	ports.ProviderService
}

func (stubProviders) List(_ context.Context, _ domain.Caller, page domain.PageRequest) (*domain.Page[domain.Provider], error) {
	p := domain.NewPage([]domain.Provider{{ID: 1, Name: "Salon", WorkingDays: domain.Weekdays}}, 1, page)
	return &p, nil
}

func (stubProviders) Get(_ context.Context, _ domain.Caller, id int64) (*domain.Provider, error) {
	return nil, domain.NotFound("Provider was not found!")
}

type pingOK struct{}

func (pingOK) Ping(context.Context) error { return nil }

// NewRouter registers prometheus collectors globally, so the tests share one
// instance.
var testRouter = sync.OnceValue(func() *echo.Echo {
	return NewRouter(Dependencies{
		Tokens: stubTokens{
			"admin":  {AccountID: 1, Role: domain.RoleAdmin},
			"client": {AccountID: 9, Role: domain.RoleClient},
		},
		Providers: stubProviders{},
		Postgres:  pingOK{},
		Log:       zerolog.Nop(),
	})
})

func serve(method, target, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, target, nil)
	if token != "" {
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	testRouter().ServeHTTP(rec, req)
	return rec
}

func TestRouter_Health(t *testing.T) {
	if rec := serve(http.MethodGet, "/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	rec := serve(http.MethodGet, "/health/ready", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with only postgres enabled, got %d: %s", rec.Code, rec.Body.String())
	}
}

func TestRouter_Security(t *testing.T) {
	tests := []struct {
		name   string
		method string
		target string
		token  string
		want   int
	}{
		{"no token", http.MethodGet, "/api/providers", "", http.StatusUnauthorized},
		{"bad token", http.MethodGet, "/api/providers", "forged", http.StatusUnauthorized},
		{"admin lists", http.MethodGet, "/api/providers", "admin", http.StatusOK},
		{"client lists", http.MethodGet, "/api/providers", "client", http.StatusOK},
		{"client cannot read a provider", http.MethodGet, "/api/providers/5", "client", http.StatusForbidden},
		{"client cannot read audit", http.MethodGet, "/api/audit", "client", http.StatusForbidden},
		{"not found maps to 404", http.MethodGet, "/api/providers/5", "admin", http.StatusNotFound},
		{"bad id maps to 400", http.MethodGet, "/api/providers/abc", "admin", http.StatusBadRequest},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := serve(tc.method, tc.target, tc.token)
			if rec.Code != tc.want {
				t.Fatalf("expected %d, got %d: %s", tc.want, rec.Code, rec.Body.String())
			}
		})
	}
}

func TestRouter_ErrorEnvelope(t *testing.T) {
	rec := serve(http.MethodGet, "/api/providers/5", "admin")

	var resp errorResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp.Error != "Provider was not found!" {
		t.Fatalf("unexpected message %q", resp.Error)
	}
}

func TestHTTPErrorHandler(t *testing.T) {
	tests := []struct {
		name string
		err  error
		code int
		msg  string
	}{
		{"validation", domain.Validation("Employee is busy at this time!"), http.StatusBadRequest, "Employee is busy at this time!"},
		{"unauthorized", domain.Unauthorized("Access denied!"), http.StatusForbidden, "Access denied!"},
		{"not found", domain.NotFound("Client was not found!"), http.StatusNotFound, "Client was not found!"},
		{"echo error", echo.NewHTTPError(http.StatusUnauthorized, "invalid token"), http.StatusUnauthorized, "invalid token"},
		{"wrapped domain error", errors.Join(errors.New("ctx"), domain.Validation("bad")), http.StatusBadRequest, "bad"},
		{"unexpected", errors.New("connection reset"), http.StatusInternalServerError, "internal server error"},
	}

	e := echo.New()
	handle := NewHTTPErrorHandler(zerolog.Nop())
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			rec := httptest.NewRecorder()
			c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), rec)

			handle(tc.err, c)

			if rec.Code != tc.code {
				t.Fatalf("expected %d, got %d", tc.code, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tc.msg) {
				t.Fatalf("expected %q in %s", tc.msg, rec.Body.String())
			}
		})
	}
}

func TestHTTPErrorHandler_Head(t *testing.T) {
	e := echo.New()
	rec := httptest.NewRecorder()
	c := e.NewContext(httptest.NewRequest(http.MethodHead, "/", nil), rec)

	NewHTTPErrorHandler(zerolog.Nop())(domain.NotFound("x"), c)

	if rec.Code != http.StatusNotFound || rec.Body.Len() != 0 {
		t.Fatalf("expected empty 404, got %d %q", rec.Code, rec.Body.String())
	}
}
