package postgres

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/rushhour/scheduling/internal/core/domain"
)

// deletionPlan lists, leaf first, the rows removed together with an entity.
// The schema carries no ON DELETE CASCADE; every dependent row is named here.
type deletionPlan []deleteStep

type deleteStep struct {
	model any
	query string
	args  []any
}

func step(model any, query string, args ...any) deleteStep {
	return deleteStep{model: model, query: query, args: args}
}

func (p deletionPlan) exec(tx *gorm.DB) error {
	for _, s := range p {
		if err := tx.Where(s.query, s.args...).Delete(s.model).Error; err != nil {
			return fmt.Errorf("delete %T: %w", s.model, err)
		}
	}
	return nil
}

// providerDeletion removes the provider with its activities, employees and
// the employees' accounts, and every appointment and link touching them.
func providerDeletion(tx *gorm.DB, providerID int64) (deletionPlan, error) {
	var employees []domain.Employee
	if err := tx.Select("id", "account_id").Where("provider_id = ?", providerID).Find(&employees).Error; err != nil {
		return nil, fmt.Errorf("collect employees: %w", err)
	}
	var activityIDs []int64
	if err := tx.Model(&domain.Activity{}).Where("provider_id = ?", providerID).Pluck("id", &activityIDs).Error; err != nil {
		return nil, fmt.Errorf("collect activities: %w", err)
	}

	employeeIDs := make([]int64, len(employees))
	accountIDs := make([]int64, len(employees))
	for i, e := range employees {
		employeeIDs[i] = e.ID
		accountIDs[i] = e.AccountID
	}

	return deletionPlan{
		step(&domain.Appointment{}, "employee_id IN ? OR activity_id IN ?", employeeIDs, activityIDs),
		step(&domain.ActivityEmployee{}, "employee_id IN ? OR activity_id IN ?", employeeIDs, activityIDs),
		step(&domain.Activity{}, "provider_id = ?", providerID),
		step(&domain.Employee{}, "provider_id = ?", providerID),
		step(&domain.Account{}, "id IN ?", accountIDs),
		step(&domain.Provider{}, "id = ?", providerID),
	}, nil
}

func employeeDeletion(employeeID, accountID int64) deletionPlan {
	return deletionPlan{
		step(&domain.Appointment{}, "employee_id = ?", employeeID),
		step(&domain.ActivityEmployee{}, "employee_id = ?", employeeID),
		step(&domain.Employee{}, "id = ?", employeeID),
		step(&domain.Account{}, "id = ?", accountID),
	}
}

func clientDeletion(clientID, accountID int64) deletionPlan {
	return deletionPlan{
		step(&domain.Appointment{}, "client_id = ?", clientID),
		step(&domain.Client{}, "id = ?", clientID),
		step(&domain.Account{}, "id = ?", accountID),
	}
}

func activityDeletion(activityID int64) deletionPlan {
	return deletionPlan{
		step(&domain.Appointment{}, "activity_id = ?", activityID),
		step(&domain.ActivityEmployee{}, "activity_id = ?", activityID),
		step(&domain.Activity{}, "id = ?", activityID),
	}
}
