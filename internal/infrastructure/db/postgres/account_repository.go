package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
)

type accountRepository struct {
	db *gorm.DB
}

func (r *accountRepository) Create(ctx context.Context, a *domain.Account) error {
	err := r.db.WithContext(ctx).Create(a).Error
	return translate(err, "", domain.MsgEmailNotUnique)
}

func (r *accountRepository) GetByID(ctx context.Context, id int64) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).First(&a, id).Error; err != nil {
		return nil, translate(err, msgAccountNotFound, "")
	}
	return &a, nil
}

func (r *accountRepository) GetByEmail(ctx context.Context, email string) (*domain.Account, error) {
	var a domain.Account
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&a).Error; err != nil {
		return nil, translate(err, msgAccountNotFound, "")
	}
	return &a, nil
}

func (r *accountRepository) UpdatePassword(ctx context.Context, id int64, hash string, salt []byte) error {
	res := r.db.WithContext(ctx).
		Model(&domain.Account{}).
		Where("id = ?", id).
		Updates(map[string]any{"password_hash": hash, "salt": salt})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return domain.NotFound(msgAccountNotFound)
	}
	return nil
}

// updateProfile writes the editable account columns of a.
func updateProfile(tx *gorm.DB, a *domain.Account) error {
	err := tx.Model(&domain.Account{}).
		Where("id = ?", a.ID).
		Updates(map[string]any{
			"email":     a.Email,
			"full_name": a.FullName,
			"username":  a.Username,
			"role":      a.Role,
		}).Error
	return translate(err, "", domain.MsgEmailNotUnique)
}
