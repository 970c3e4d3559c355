package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rushhour/scheduling/internal/core/domain"
)

type employeeRepository struct {
	db *gorm.DB
}

func (r *employeeRepository) Create(ctx context.Context, e *domain.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if e.Account != nil {
			if err := tx.Create(e.Account).Error; err != nil {
				return translate(err, "", domain.MsgEmailNotUnique)
			}
			e.AccountID = e.Account.ID
		}
		return tx.Omit(clause.Associations).Create(e).Error
	})
}

func (r *employeeRepository) Update(ctx context.Context, e *domain.Employee) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(e).Error; err != nil {
			return err
		}
		if e.Account == nil {
			return nil
		}
		e.Account.ID = e.AccountID
		return updateProfile(tx, e.Account)
	})
}

func (r *employeeRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var e domain.Employee
		if err := tx.Select("id", "account_id").First(&e, id).Error; err != nil {
			return translate(err, msgEmployeeNotFound, "")
		}
		return employeeDeletion(e.ID, e.AccountID).exec(tx)
	})
}

func (r *employeeRepository) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	if err := r.db.WithContext(ctx).Preload("Account").First(&e, id).Error; err != nil {
		return nil, translate(err, msgEmployeeNotFound, "")
	}
	return &e, nil
}

func (r *employeeRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Employee, int64, error) {
	var (
		employees []domain.Employee
		total     int64
	)
	q := r.db.WithContext(ctx).Model(&domain.Employee{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q, page).Preload("Account").Find(&employees).Error; err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

// LockForBooking takes a row lock on the employee. Dialects without
// SELECT ... FOR UPDATE ignore the clause.
func (r *employeeRepository) LockForBooking(ctx context.Context, id int64) (*domain.Employee, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		First(&e, id).Error
	if err != nil {
		return nil, translate(err, msgEmployeeNotFound, "")
	}
	return &e, nil
}

func (r *employeeRepository) ProviderIDByAccount(ctx context.Context, accountID int64) (int64, error) {
	var e domain.Employee
	err := r.db.WithContext(ctx).
		Select("provider_id").
		Where("account_id = ?", accountID).
		First(&e).Error
	if err != nil {
		return 0, translate(err, msgProviderNotFound, "")
	}
	return e.ProviderID, nil
}

func (r *employeeRepository) AllInProvider(ctx context.Context, employeeIDs []int64, providerID int64) (bool, error) {
	ids := distinct(employeeIDs)
	if len(ids) == 0 {
		return true, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.Employee{}).
		Where("id IN ? AND provider_id = ?", ids, providerID).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == int64(len(ids)), nil
}
