package postgres

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
)

type appointmentRepository struct {
	db *gorm.DB
}

func (r *appointmentRepository) Create(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Create(a).Error
}

func (r *appointmentRepository) Update(ctx context.Context, a *domain.Appointment) error {
	return r.db.WithContext(ctx).Save(a).Error
}

func (r *appointmentRepository) Delete(ctx context.Context, id int64) error {
	res := r.db.WithContext(ctx).Delete(&domain.Appointment{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(msgAppointmentNotFound)
	}
	return nil
}

func (r *appointmentRepository) GetByID(ctx context.Context, id int64) (*domain.Appointment, error) {
	var a domain.Appointment
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, msgAppointmentNotFound, "")
	}
	return &a, nil
}

func (r *appointmentRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Appointment, int64, error) {
	var (
		appointments []domain.Appointment
		total        int64
	)
	q := r.db.WithContext(ctx).Model(&domain.Appointment{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q, page).Find(&appointments).Error; err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) ForEmployeeBetween(ctx context.Context, employeeID int64, from, to time.Time, excludeID int64) ([]domain.Appointment, error) {
	q := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("start_date < ? AND end_date > ?", to.UTC(), from.UTC())
	if excludeID != 0 {
		q = q.Where("id <> ?", excludeID)
	}

	var appointments []domain.Appointment
	if err := q.Order("start_date").Find(&appointments).Error; err != nil {
		return nil, err
	}
	return appointments, nil
}
