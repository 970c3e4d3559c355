package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/rushhour/scheduling/internal/api/middleware"
	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type stubAppointmentService struct {
	ports.AppointmentService
	createFn func(ctx context.Context, caller domain.Caller, in ports.NewAppointmentInput) (*ports.ChainResult, error)
	listFn   func(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Appointment], error)
	deleteFn func(ctx context.Context, caller domain.Caller, id int64) error
}

func (s *stubAppointmentService) Create(ctx context.Context, caller domain.Caller, in ports.NewAppointmentInput) (*ports.ChainResult, error) {
	return s.createFn(ctx, caller, in)
}

func (s *stubAppointmentService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Appointment], error) {
	return s.listFn(ctx, caller, page)
}

func (s *stubAppointmentService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	return s.deleteFn(ctx, caller, id)
}

var clientCaller = domain.Caller{AccountID: 3, Role: domain.RoleClient}

func TestAppointmentHandler_Create(t *testing.T) {
	e := echo.New()
	start := time.Date(2024, 6, 3, 9, 0, 0, 0, time.UTC)
	stub := &stubAppointmentService{
		createFn: func(ctx context.Context, caller domain.Caller, in ports.NewAppointmentInput) (*ports.ChainResult, error) {
			if !in.StartDate.Equal(start) || in.EmployeeID != 2 || in.ClientID != 5 {
				t.Fatalf("unexpected input %+v", in)
			}
			if len(in.ActivityIDs) != 2 || in.ActivityIDs[0] != 9 || in.ActivityIDs[1] != 4 {
				t.Fatalf("activity order lost: %v", in.ActivityIDs)
			}
			return &ports.ChainResult{
				Appointments: []domain.Appointment{
					{ID: 1, StartDate: start, EndDate: start.Add(30 * time.Minute), EmployeeID: 2, ClientID: 5, ActivityID: 9},
					{ID: 2, StartDate: start.Add(30 * time.Minute), EndDate: start.Add(2 * time.Hour), EmployeeID: 2, ClientID: 5, ActivityID: 4},
				},
				TotalPrice: decimal.RequireFromString("100"),
			}, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := jsonContext(e, http.MethodPost, "/api/appointments",
		`{"startDate":"2024-06-03T11:00:00+02:00","employeeId":2,"clientId":5,"activityIds":[9,4]}`)
	middleware.WithCaller(c, clientCaller)

	if err := handler.Create(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp struct {
		Appointments []domain.Appointment `json:"appointments"`
		TotalPrice   decimal.Decimal      `json:"totalPrice"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if len(resp.Appointments) != 2 {
		t.Fatalf("expected 2 appointments, got %d", len(resp.Appointments))
	}
	if !resp.TotalPrice.Equal(decimal.NewFromInt(100)) {
		t.Fatalf("unexpected total %s", resp.TotalPrice)
	}
}

func TestAppointmentHandler_Create_BadStartDate(t *testing.T) {
	e := echo.New()
	stub := &stubAppointmentService{
		createFn: func(ctx context.Context, caller domain.Caller, in ports.NewAppointmentInput) (*ports.ChainResult, error) {
			t.Fatalf("service should not be called")
			return nil, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, _ := jsonContext(e, http.MethodPost, "/api/appointments", `{"startDate":"tomorrow at nine","employeeId":2}`)
	middleware.WithCaller(c, clientCaller)

	if err := handler.Create(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAppointmentHandler_List_Paging(t *testing.T) {
	e := echo.New()
	stub := &stubAppointmentService{
		listFn: func(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Appointment], error) {
			if page.Number != 2 || page.Size != 5 {
				t.Fatalf("unexpected page %+v", page)
			}
			result := domain.NewPage([]domain.Appointment{{ID: 6}}, 6, page)
			return &result, nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := jsonContext(e, http.MethodGet, "/api/appointments?pageNumber=2&pageSize=5", "")
	middleware.WithCaller(c, clientCaller)

	if err := handler.List(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestAppointmentHandler_List_RejectsPageSize(t *testing.T) {
	e := echo.New()
	handler := NewAppointmentHandler(&stubAppointmentService{})

	c, _ := jsonContext(e, http.MethodGet, "/api/appointments?pageSize=101", "")
	middleware.WithCaller(c, clientCaller)

	if err := handler.List(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestAppointmentHandler_Delete(t *testing.T) {
	e := echo.New()
	var deleted int64
	stub := &stubAppointmentService{
		deleteFn: func(ctx context.Context, caller domain.Caller, id int64) error {
			deleted = id
			return nil
		},
	}
	handler := NewAppointmentHandler(stub)

	c, rec := jsonContext(e, http.MethodDelete, "/", "")
	c.SetPath("/api/appointments/:id")
	c.SetParamNames("id")
	c.SetParamValues("42")
	middleware.WithCaller(c, clientCaller)

	if err := handler.Delete(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusNoContent || deleted != 42 {
		t.Fatalf("expected 204 for id 42, got %d for %d", rec.Code, deleted)
	}
}

func TestAppointmentHandler_Delete_BadID(t *testing.T) {
	e := echo.New()
	handler := NewAppointmentHandler(&stubAppointmentService{})

	c, _ := jsonContext(e, http.MethodDelete, "/", "")
	c.SetParamNames("id")
	c.SetParamValues("abc")
	middleware.WithCaller(c, clientCaller)

	if err := handler.Delete(c); !errors.Is(err, domain.ErrValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}
