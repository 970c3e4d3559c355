package handler

import (
	"strings"
	"time"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

// --- Request → Service input ---

func toProviderInput(req providerRequest) (ports.ProviderInput, error) {
	var bad []string
	start, err := domain.ParseTimeOfDay(req.WorkingDayStart)
	if err != nil {
		bad = append(bad, "workingdaystart must be a time of day (HH:MM)")
	}
	end, err := domain.ParseTimeOfDay(req.WorkingDayEnd)
	if err != nil {
		bad = append(bad, "workingdayend must be a time of day (HH:MM)")
	}
	days, err := domain.ParseWorkingDays(req.WorkingDays)
	if err != nil {
		bad = append(bad, "workingdays must be weekday names")
	}
	if len(bad) > 0 {
		return ports.ProviderInput{}, domain.Validation(strings.Join(bad, "; "))
	}

	return ports.ProviderInput{
		Name:            strings.TrimSpace(req.Name),
		Website:         strings.TrimSpace(req.Website),
		BusinessDomain:  strings.TrimSpace(req.BusinessDomain),
		Phone:           strings.TrimSpace(req.Phone),
		WorkingDayStart: start,
		WorkingDayEnd:   end,
		WorkingDays:     days,
	}, nil
}

func toAccountInput(email, fullName, username string) ports.AccountInput {
	return ports.AccountInput{
		Email:    strings.TrimSpace(email),
		FullName: strings.TrimSpace(fullName),
		Username: strings.TrimSpace(username),
	}
}

func toNewEmployeeInput(req employeeRequest) (ports.NewEmployeeInput, error) {
	hired, err := parseDate("hiredate", req.HireDate)
	if err != nil {
		return ports.NewEmployeeInput{}, err
	}
	return ports.NewEmployeeInput{
		AccountInput: toAccountInput(req.Email, req.FullName, req.Username),
		Password:     req.Password,
		Role:         toRole(req.Role),
		Title:        strings.TrimSpace(req.Title),
		Phone:        strings.TrimSpace(req.Phone),
		RatePerHour:  req.RatePerHour,
		HireDate:     hired,
		ProviderID:   req.ProviderID,
	}, nil
}

func toEmployeeInput(req employeeRequest) (ports.EmployeeInput, error) {
	hired, err := parseDate("hiredate", req.HireDate)
	if err != nil {
		return ports.EmployeeInput{}, err
	}
	return ports.EmployeeInput{
		AccountInput: toAccountInput(req.Email, req.FullName, req.Username),
		Role:         toRole(req.Role),
		Title:        strings.TrimSpace(req.Title),
		Phone:        strings.TrimSpace(req.Phone),
		RatePerHour:  req.RatePerHour,
		HireDate:     hired,
		ProviderID:   req.ProviderID,
	}, nil
}

func toNewClientInput(req clientRequest) ports.NewClientInput {
	return ports.NewClientInput{
		AccountInput: toAccountInput(req.Email, req.FullName, req.Username),
		Password:     req.Password,
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
	}
}

func toClientInput(req clientRequest) ports.ClientInput {
	return ports.ClientInput{
		AccountInput: toAccountInput(req.Email, req.FullName, req.Username),
		Phone:        strings.TrimSpace(req.Phone),
		Address:      strings.TrimSpace(req.Address),
	}
}

func toActivityInput(req activityRequest) ports.ActivityInput {
	return ports.ActivityInput{
		Name:        strings.TrimSpace(req.Name),
		Price:       req.Price,
		Duration:    req.Duration,
		EmployeeIDs: req.EmployeeIDs,
		ProviderID:  req.ProviderID,
	}
}

func toNewAppointmentInput(req createAppointmentRequest) (ports.NewAppointmentInput, error) {
	start, err := parseInstant("startdate", req.StartDate)
	if err != nil {
		return ports.NewAppointmentInput{}, err
	}
	return ports.NewAppointmentInput{
		StartDate:   start,
		EmployeeID:  req.EmployeeID,
		ClientID:    req.ClientID,
		ActivityIDs: req.ActivityIDs,
	}, nil
}

func toAppointmentInput(req updateAppointmentRequest) (ports.AppointmentInput, error) {
	start, err := parseInstant("startdate", req.StartDate)
	if err != nil {
		return ports.AppointmentInput{}, err
	}
	return ports.AppointmentInput{
		StartDate:  start,
		EmployeeID: req.EmployeeID,
		ClientID:   req.ClientID,
		ActivityID: req.ActivityID,
	}, nil
}

// toRole keeps unknown names as-is so the core reports them with its own
// role messages.
func toRole(s string) domain.Role {
	if r, ok := domain.ParseRole(s); ok {
		return r
	}
	return domain.Role(strings.ToUpper(strings.TrimSpace(s)))
}

// parseDate accepts "2006-01-02" or RFC 3339. Empty yields the zero time so
// the required rule reports it.
func parseDate(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.DateOnly, s); err == nil {
		return t.UTC(), nil
	}
	return parseInstant(field, s)
}

func parseInstant(field, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, domain.Validation(field + " must be an RFC 3339 timestamp")
	}
	return t.UTC(), nil
}

// --- Service result → HTTP response ---

func toProviderResponse(p *domain.Provider) providerResponse {
	start, end := p.WorkingWindow()
	return providerResponse{
		ID:              p.ID,
		Name:            p.Name,
		Website:         p.Website,
		BusinessDomain:  p.BusinessDomain,
		Phone:           p.Phone,
		WorkingDayStart: clock(start),
		WorkingDayEnd:   clock(end),
		WorkingDays:     p.WorkingDays,
	}
}

func clock(d time.Duration) string {
	return time.Time{}.Add(d).Format("15:04")
}

func toPageResponse[T, R any](p *domain.Page[T], conv func(*T) R) pageResponse[R] {
	items := make([]R, len(p.Items))
	for i := range p.Items {
		items[i] = conv(&p.Items[i])
	}
	return pageResponse[R]{
		Items:      items,
		Total:      p.Total,
		PageNumber: p.PageNumber,
		PageSize:   p.PageSize,
		TotalPages: p.TotalPages,
	}
}
