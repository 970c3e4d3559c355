package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
)

type activityRepository struct {
	db *gorm.DB
}

func (r *activityRepository) Create(ctx context.Context, a *domain.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(a).Error; err != nil {
			return err
		}
		return linkEmployees(tx, a.ID, a.EmployeeIDs)
	})
}

// Update rewrites the activity row and replaces its employee links.
func (r *activityRepository) Update(ctx context.Context, a *domain.Activity) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Save(a).Error; err != nil {
			return err
		}
		if err := tx.Where("activity_id = ?", a.ID).Delete(&domain.ActivityEmployee{}).Error; err != nil {
			return err
		}
		return linkEmployees(tx, a.ID, a.EmployeeIDs)
	})
}

func (r *activityRepository) Delete(ctx context.Context, id int64) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var a domain.Activity
		if err := tx.Select("id").First(&a, id).Error; err != nil {
			return translate(err, msgActivityNotFound, "")
		}
		return activityDeletion(id).exec(tx)
	})
}

func (r *activityRepository) GetByID(ctx context.Context, id int64) (*domain.Activity, error) {
	db := r.db.WithContext(ctx)
	var a domain.Activity
	if err := db.First(&a, id).Error; err != nil {
		return nil, translate(err, msgActivityNotFound, "")
	}
	if err := loadEmployeeIDs(db, []*domain.Activity{&a}); err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *activityRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.Activity, int64, error) {
	db := r.db.WithContext(ctx)
	var (
		activities []domain.Activity
		total      int64
	)
	q := db.Model(&domain.Activity{}).Session(&gorm.Session{})
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}
	if err := paginate(q, page).Find(&activities).Error; err != nil {
		return nil, 0, err
	}

	refs := make([]*domain.Activity, len(activities))
	for i := range activities {
		refs[i] = &activities[i]
	}
	if err := loadEmployeeIDs(db, refs); err != nil {
		return nil, 0, err
	}
	return activities, total, nil
}

func (r *activityRepository) FindByIDs(ctx context.Context, ids []int64) (map[int64]*domain.Activity, error) {
	out := make(map[int64]*domain.Activity, len(ids))
	unique := distinct(ids)
	if len(unique) == 0 {
		return out, nil
	}
	var activities []domain.Activity
	if err := r.db.WithContext(ctx).Where("id IN ?", unique).Find(&activities).Error; err != nil {
		return nil, err
	}
	for i := range activities {
		out[activities[i].ID] = &activities[i]
	}
	return out, nil
}

func (r *activityRepository) EmployeeInAll(ctx context.Context, employeeID int64, activityIDs []int64) (bool, error) {
	ids := distinct(activityIDs)
	if len(ids) == 0 {
		return false, nil
	}
	var n int64
	err := r.db.WithContext(ctx).
		Model(&domain.ActivityEmployee{}).
		Where("employee_id = ? AND activity_id IN ?", employeeID, ids).
		Count(&n).Error
	if err != nil {
		return false, err
	}
	return n == int64(len(ids)), nil
}

func linkEmployees(tx *gorm.DB, activityID int64, employeeIDs []int64) error {
	ids := distinct(employeeIDs)
	if len(ids) == 0 {
		return nil
	}
	links := make([]domain.ActivityEmployee, len(ids))
	for i, id := range ids {
		links[i] = domain.ActivityEmployee{ActivityID: activityID, EmployeeID: id}
	}
	return tx.Create(&links).Error
}

func loadEmployeeIDs(db *gorm.DB, activities []*domain.Activity) error {
	if len(activities) == 0 {
		return nil
	}
	byID := make(map[int64]*domain.Activity, len(activities))
	ids := make([]int64, len(activities))
	for i, a := range activities {
		a.EmployeeIDs = []int64{}
		byID[a.ID] = a
		ids[i] = a.ID
	}

	var links []domain.ActivityEmployee
	if err := db.Where("activity_id IN ?", ids).Order("employee_id").Find(&links).Error; err != nil {
		return err
	}
	for _, l := range links {
		a := byID[l.ActivityID]
		a.EmployeeIDs = append(a.EmployeeIDs, l.EmployeeID)
	}
	return nil
}
