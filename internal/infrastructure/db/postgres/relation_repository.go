package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// relationRepository answers ownership questions with COUNT queries; no
// entity is loaded.
type relationRepository struct {
	db *gorm.DB
}

func (r *relationRepository) AccountInProvider(ctx context.Context, accountID, providerID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("account_id = ? AND provider_id = ?", accountID, providerID))
}

func (r *relationRepository) AccountSharesProviderWithEmployee(ctx context.Context, accountID, employeeID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Table("employees AS target").
		Joins("JOIN employees AS me ON me.provider_id = target.provider_id").
		Where("target.id = ? AND me.account_id = ?", employeeID, accountID))
}

// ActivityProviderID returns 0 when the activity does not exist.
func (r *relationRepository) ActivityProviderID(ctx context.Context, activityID int64) (int64, error) {
	var ids []int64
	err := r.db.WithContext(ctx).
		Model(&domain.Activity{}).
		Where("id = ?", activityID).
		Pluck("provider_id", &ids).Error
	if err != nil || len(ids) == 0 {
		return 0, err
	}
	return ids[0], nil
}

func (r *relationRepository) EmployeeMatchesAccount(ctx context.Context, employeeID, accountID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id = ? AND account_id = ?", employeeID, accountID))
}

func (r *relationRepository) ClientMatchesAccount(ctx context.Context, clientID, accountID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Model(&domain.Client{}).
		Where("id = ? AND account_id = ?", clientID, accountID))
}

func (r *relationRepository) AppointmentEmployeeMatchesAccount(ctx context.Context, appointmentID, accountID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Table("appointments").
		Joins("JOIN employees ON employees.id = appointments.employee_id").
		Where("appointments.id = ? AND employees.account_id = ?", appointmentID, accountID))
}

func (r *relationRepository) AppointmentClientMatchesAccount(ctx context.Context, appointmentID, accountID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Table("appointments").
		Joins("JOIN clients ON clients.id = appointments.client_id").
		Where("appointments.id = ? AND clients.account_id = ?", appointmentID, accountID))
}

func (r *relationRepository) AppointmentSharesProviderWithAccount(ctx context.Context, appointmentID, accountID int64) (bool, error) {
	return exists(r.db.WithContext(ctx).
		Table("appointments").
		Joins("JOIN employees AS target ON target.id = appointments.employee_id").
		Joins("JOIN employees AS me ON me.provider_id = target.provider_id").
		Where("appointments.id = ? AND me.account_id = ?", appointmentID, accountID))
}

func exists(q *gorm.DB) (bool, error) {
	var n int64
	if err := q.Count(&n).Error; err != nil {
		return false, err
	}
	return n > 0, nil
}
