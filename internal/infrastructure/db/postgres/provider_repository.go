package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
)

type providerRepository struct {
	db *gorm.DB
}

func (r *providerRepository) Create(ctx context.Context, p *domain.Provider) error {
	err := r.db.WithContext(ctx).Create(p).Error
	return translate(err, "", domain.MsgProviderNotUnique)
}

func (r *providerRepository) Update(ctx context.Context, p *domain.Provider) error {
	err := r.db.WithContext(ctx).Save(p).Error
	return translate(err, "", domain.MsgProviderNotUnique)
}

func (r *providerRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var p domain.Provider
		if err := tx.Select("id").First(&p, id).Error; err != nil {
			return translate(err, msgProviderNotFound, "")
		}
		plan, err := providerDeletion(tx, id)
		if err != nil {
			return err
		}
		return plan.exec(tx)
	})
}

func (r *providerRepository) GetByID(ctx context.Context, id int64) (*domain.Provider, error) {
	var p domain.Provider
	if err := r.db.WithContext(ctx).First(&p, id).Error; err != nil {
		return nil, translate(err, msgProviderNotFound, "")
	}
	return &p, nil
}

func (r *providerRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Provider, int64, error) {
	var (
		providers []domain.Provider
		total     int64
	)
	q := r.db.WithContext(ctx).Model(&domain.Provider{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q, page).Find(&providers).Error; err != nil {
		return nil, 0, err
	}
	return providers, total, nil
}

func (r *providerRepository) ForEmployee(ctx context.Context, employeeID int64) (*domain.Provider, error) {
	var p domain.Provider
	err := r.db.WithContext(ctx).
		Joins("JOIN employees ON employees.provider_id = providers.id").
		Where("employees.id = ?", employeeID).
		First(&p).Error
	if err != nil {
		return nil, translate(err, msgEmployeeNotFound, "")
	}
	return &p, nil
}
