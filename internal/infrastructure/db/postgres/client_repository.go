package postgres

import (
	"context"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/rushhour/scheduling/internal/core/domain"
)

type clientRepository struct {
	db *gorm.DB
}

func (r *clientRepository) Create(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if c.Account != nil {
			if err := tx.Create(c.Account).Error; err != nil {
				return translate(err, "", domain.MsgEmailNotUnique)
			}
			c.AccountID = c.Account.ID
		}
		return tx.Omit(clause.Associations).Create(c).Error
	})
}

func (r *clientRepository) Update(ctx context.Context, c *domain.Client) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Save(c).Error; err != nil {
			return err
		}
		if c.Account == nil {
			return nil
		}
		c.Account.ID = c.AccountID
		return updateProfile(tx, c.Account)
	})
}

func (r *clientRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var c domain.Client
		if err := tx.Select("id", "account_id").First(&c, id).Error; err != nil {
			return translate(err, msgClientNotFound, "")
		}
		return clientDeletion(c.ID, c.AccountID).exec(tx)
	})
}

func (r *clientRepository) GetByID(ctx context.Context, id int64) (*domain.Client, error) {
	var c domain.Client
	if err := r.db.WithContext(ctx).Preload("Account").First(&c, id).Error; err != nil {
		return nil, translate(err, msgClientNotFound, "")
	}
	return &c, nil
}

func (r *clientRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Client, int64, error) {
	var (
		clients []domain.Client
		total   int64
	)
	q := r.db.WithContext(ctx).Model(&domain.Client{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q, page).Preload("Account").Find(&clients).Error; err != nil {
		return nil, 0, err
	}
	return clients, total, nil
}
