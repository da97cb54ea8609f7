package server

import (
	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// LogMeal handles POST /api/nutrition/meals
func (s *Server) LogMeal(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var input models.MealLogInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	logID, err := s.nutritionRepo.LogMeal(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": logID})
}

// GetNutritionLogs handles GET /api/nutrition/logs?range=. The response is a
// per-day series of summed intake with the latest diet plan's calorie target
// attached to each day.
func (s *Server) GetNutritionLogs(c *fiber.Ctx) error {
	dateRange := c.Query("range", "1 Month")

	days, err := s.nutritionRepo.DailyAggregates(c.UserContext(), currentUserID(c), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"days": days})
}

// GetFoods handles GET /api/nutrition/foods
func (s *Server) GetFoods(c *fiber.Ctx) error {
	foods, err := s.nutritionRepo.ListFoods(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"foods": foods})
}

// AddFood handles POST /api/nutrition/foods. Re-adding a food the user
// already has is a no-op, not an error.
func (s *Server) AddFood(c *fiber.Ctx) error {
	var req struct {
		FoodName string `json:"food_name"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if err := s.nutritionRepo.AddFood(c.UserContext(), currentUserID(c), req.FoodName); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusCreated)
}
