package repository

import (
	"context"
	"errors"

	"fittrack/internal/models"

	"gorm.io/gorm"
)

// DietRepository defines persistence operations for diet plans.
type DietRepository interface {
	SavePlan(ctx context.Context, userID uint, input models.DietPlanInput) (uint, error)
	GetPlans(ctx context.Context, userID uint) ([]models.DietPlan, error)
	GetPlanDetail(ctx context.Context, userID, planID uint) (*models.DietPlan, error)
	DeletePlan(ctx context.Context, userID, planID uint) error
	LatestCalorieTarget(ctx context.Context, userID uint) (float64, bool, error)
}

type dietRepository struct {
	db *gorm.DB
}

// NewDietRepository returns a new DietRepository implementation.
func NewDietRepository(db *gorm.DB) DietRepository {
	return &dietRepository{db: db}
}

// SavePlan persists the plan, its meals and its shopping list as one
// transaction. Meals are owned rows; no cross-plan deduplication happens.
func (r *dietRepository) SavePlan(ctx context.Context, userID uint, input models.DietPlanInput) (uint, error) {
	if input.Name == "" {
		return 0, models.NewValidationError("Plan name is required")
	}

	var planID uint
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		plan := models.DietPlan{
			UserID:              userID,
			Name:                input.Name,
			CalorieTarget:       input.CalorieTarget,
			ProteinTargetG:      input.ProteinTargetG,
			CarbTargetG:         input.CarbTargetG,
			FatTargetG:          input.FatTargetG,
			DietaryRestrictions: input.DietaryRestrictions,
			AIGenerated:         input.AIGenerated,
			GenerationPrompt:    input.GenerationPrompt,
		}
		if err := tx.Create(&plan).Error; err != nil {
			return err
		}

		for _, mealInput := range input.Meals {
			servings := mealInput.Servings
			if servings <= 0 {
				servings = 1
			}
			meal := models.MealPlan{
				DietPlanID:         plan.ID,
				DayNumber:          mealInput.DayNumber,
				MealType:           mealInput.MealType,
				RecipeName:         mealInput.RecipeName,
				Ingredients:        mealInput.Ingredients,
				Instructions:       mealInput.Instructions,
				CaloriesPerServing: mealInput.CaloriesPerServing,
				ProteinG:           mealInput.ProteinG,
				CarbsG:             mealInput.CarbsG,
				FatG:               mealInput.FatG,
				Servings:           servings,
			}
			if err := tx.Create(&meal).Error; err != nil {
				return err
			}
		}

		for _, itemInput := range input.ShoppingList {
			item := models.ShoppingListItem{
				UserID:     userID,
				DietPlanID: plan.ID,
				ItemName:   itemInput.ItemName,
				Quantity:   itemInput.Quantity,
				Unit:       itemInput.Unit,
				Category:   itemInput.Category,
			}
			if err := tx.Create(&item).Error; err != nil {
				return err
			}
		}

		planID = plan.ID
		return nil
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return 0, appErr
		}
		return 0, models.NewInternalError(err)
	}
	return planID, nil
}

func (r *dietRepository) GetPlans(ctx context.Context, userID uint) ([]models.DietPlan, error) {
	var plans []models.DietPlan
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		Find(&plans).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	return plans, nil
}

func (r *dietRepository) GetPlanDetail(ctx context.Context, userID, planID uint) (*models.DietPlan, error) {
	var plan models.DietPlan
	err := r.db.WithContext(ctx).
		Preload("Meals", func(db *gorm.DB) *gorm.DB {
			return db.Order("day_number ASC, id ASC")
		}).
		Preload("ShoppingList").
		Where("id = ? AND user_id = ?", planID, userID).
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Diet plan", planID)
		}
		return nil, models.NewInternalError(err)
	}
	return &plan, nil
}

// DeletePlan removes the plan and its owned children in dependency order
// inside one transaction.
func (r *dietRepository) DeletePlan(ctx context.Context, userID, planID uint) error {
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var plan models.DietPlan
		if err := tx.Where("id = ? AND user_id = ?", planID, userID).First(&plan).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return models.NewNotFoundError("Diet plan", planID)
			}
			return err
		}

		if err := tx.Where("diet_plan_id = ?", planID).
			Delete(&models.ShoppingListItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("diet_plan_id = ?", planID).
			Delete(&models.MealPlan{}).Error; err != nil {
			return err
		}
		return tx.Delete(&plan).Error
	})
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return appErr
		}
		return models.NewInternalError(err)
	}
	return nil
}

// LatestCalorieTarget returns the calorie target of the most recently created
// diet plan. The boolean reports whether the user has any diet plan at all.
func (r *dietRepository) LatestCalorieTarget(ctx context.Context, userID uint) (float64, bool, error) {
	var plan models.DietPlan
	err := r.db.WithContext(ctx).
		Select("calorie_target").
		Where("user_id = ?", userID).
		Order("created_at DESC, id DESC").
		First(&plan).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return 0, false, nil
		}
		return 0, false, models.NewInternalError(err)
	}
	return plan.CalorieTarget, true, nil
}
