package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/rushhour/scheduling/internal/core/domain"
	"github.com/rushhour/scheduling/internal/core/ports"
)

type appointmentService struct {
	db     ports.Database
	guard  *AuthorizationGuard
	locker ports.BookingLocker
	chain  *AppointmentOrchestrator
	audit  ports.AuditLog
	log    zerolog.Logger
}

// NewAppointmentService returns an AppointmentService. Bookings for one
// employee are serialized by locker and by a row lock inside db.
func NewAppointmentService(db ports.Database, guard *AuthorizationGuard, locker ports.BookingLocker, audit ports.AuditLog, log zerolog.Logger) ports.AppointmentService {
	if locker == nil {
		locker = ports.NopLocker{}
	}
	return &appointmentService{
		db:     db,
		guard:  guard,
		locker: locker,
		chain:  NewAppointmentOrchestrator(),
		audit:  audit,
		log:    log,
	}
}

// Create books in.ActivityIDs back to back for one employee and client.
func (s *appointmentService) Create(ctx context.Context, caller domain.Caller, in ports.NewAppointmentInput) (*ports.ChainResult, error) {
	targets := Targets{EmployeeID: in.EmployeeID, ClientID: in.ClientID}
	if err := s.guard.Authorize(ctx, caller, OpAppointmentCreate, targets); err != nil {
		return nil, err
	}
	in.StartDate = in.StartDate.UTC()

	msgs := fieldProblems(in)
	if len(msgs) == 0 {
		ok, err := s.db.Activities().EmployeeInAll(ctx, in.EmployeeID, in.ActivityIDs)
		if err != nil {
			return nil, err
		}
		msgs.addIf(!ok, domain.MsgEmployeesNotInActivity)
	}
	if err := Check(msgs); err != nil {
		return nil, err
	}

	var result *ports.ChainResult
	err := s.book(ctx, in.EmployeeID, func(tx ports.Store) error {
		free, err := NewAvailabilityChecker(tx).IsEmployeeFree(ctx, in.EmployeeID, in.StartDate, in.ActivityIDs)
		if err != nil {
			return err
		}
		if !free {
			return domain.Validation(domain.MsgEmployeeBusy)
		}
		result, err = s.chain.CreateChain(ctx, tx, in)
		return err
	})
	if err != nil {
		s.log.Debug().Err(err).Int64("employee_id", in.EmployeeID).Time("start", in.StartDate).Msg("booking rejected")
		return nil, err
	}

	ids := make([]int64, len(result.Appointments))
	for i := range result.Appointments {
		ids[i] = result.Appointments[i].ID
	}
	record(ctx, s.audit, caller, domain.AuditCreate, "appointment", ids...)
	s.log.Info().
		Ints64("appointment_ids", ids).
		Str("total_price", result.TotalPrice.StringFixed(2)).
		Int64("employee_id", in.EmployeeID).
		Msg("appointments booked")
	return result, nil
}

// Update moves or changes a single appointment.
func (s *appointmentService) Update(ctx context.Context, caller domain.Caller, id int64, in ports.AppointmentInput) (*domain.Appointment, error) {
	targets := Targets{AppointmentID: id, EmployeeID: in.EmployeeID, ClientID: in.ClientID}
	if err := s.guard.Authorize(ctx, caller, OpAppointmentUpdate, targets); err != nil {
		return nil, err
	}
	in.StartDate = in.StartDate.UTC()

	msgs := fieldProblems(in)
	if len(msgs) == 0 {
		ok, err := s.db.Activities().EmployeeInAll(ctx, in.EmployeeID, []int64{in.ActivityID})
		if err != nil {
			return nil, err
		}
		msgs.addIf(!ok, domain.MsgEmployeeNotInActivity)
	}
	if err := Check(msgs); err != nil {
		return nil, err
	}

	var appt *domain.Appointment
	err := s.book(ctx, in.EmployeeID, func(tx ports.Store) error {
		free, err := NewAvailabilityChecker(tx).IsEmployeeFreeForUpdate(ctx, id, in.EmployeeID, in.StartDate, in.ActivityID)
		if err != nil {
			return err
		}
		if !free {
			return domain.Validation(domain.MsgEmployeeBusy)
		}
		appt, err = s.chain.Update(ctx, tx, id, in)
		return err
	})
	if err != nil {
		s.log.Debug().Err(err).Int64("appointment_id", id).Msg("appointment update rejected")
		return nil, err
	}

	record(ctx, s.audit, caller, domain.AuditUpdate, "appointment", appt.ID)
	s.log.Info().Int64("appointment_id", appt.ID).Int64("employee_id", appt.EmployeeID).Msg("appointment updated")
	return appt, nil
}

func (s *appointmentService) Delete(ctx context.Context, caller domain.Caller, id int64) error {
	if err := s.guard.Authorize(ctx, caller, OpAppointmentDelete, Targets{AppointmentID: id}); err != nil {
		return err
	}
	if err := s.db.Appointments().Delete(ctx, id); err != nil {
		return err
	}

	record(ctx, s.audit, caller, domain.AuditDelete, "appointment", id)
	s.log.Info().Int64("appointment_id", id).Msg("appointment deleted")
	return nil
}

func (s *appointmentService) Get(ctx context.Context, caller domain.Caller, id int64) (*domain.Appointment, error) {
	if err := s.guard.Authorize(ctx, caller, OpAppointmentRead, Targets{AppointmentID: id}); err != nil {
		return nil, err
	}
	return s.db.Appointments().GetByID(ctx, id)
}

func (s *appointmentService) List(ctx context.Context, caller domain.Caller, page domain.PageRequest) (*domain.Page[domain.Appointment], error) {
	if err := s.guard.Authorize(ctx, caller, OpAppointmentList, Targets{}); err != nil {
		return nil, err
	}
	page = page.Normalize()
	items, total, err := s.db.Appointments().List(ctx, page)
	if err != nil {
		return nil, err
	}
	p := domain.NewPage(items, total, page)
	return &p, nil
}

// book runs fn under the employee's distributed lock and inside one
// transaction that holds the employee row lock.
func (s *appointmentService) book(ctx context.Context, employeeID int64, fn func(tx ports.Store) error) error {
	err := s.locker.WithEmployeeLock(ctx, employeeID, func(ctx context.Context) error {
		return s.db.Do(ctx, func(tx ports.Store) error {
			if _, err := tx.Employees().LockForBooking(ctx, employeeID); err != nil {
				return err
			}
			return fn(tx)
		})
	})
	if errors.Is(err, ports.ErrLockNotAcquired) {
		return domain.Validation(domain.MsgEmployeeBeingBooked)
	}
	return err
}
