package server

import (
	"fittrack/internal/ai"
	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateDietPlan handles POST /api/diet/plans
func (s *Server) CreateDietPlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var input models.DietPlanInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	planID, err := s.dietRepo.SavePlan(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	plan, err := s.dietRepo.GetPlanDetail(c.UserContext(), userID, planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// GetDietPlans handles GET /api/diet/plans
func (s *Server) GetDietPlans(c *fiber.Ctx) error {
	plans, err := s.dietRepo.GetPlans(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

// GetDietPlan handles GET /api/diet/plans/:id
func (s *Server) GetDietPlan(c *fiber.Ctx) error {
	planID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	plan, err := s.dietRepo.GetPlanDetail(c.UserContext(), currentUserID(c), planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// DeleteDietPlan handles DELETE /api/diet/plans/:id
func (s *Server) DeleteDietPlan(c *fiber.Ctx) error {
	planID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.dietRepo.DeletePlan(c.UserContext(), currentUserID(c), planID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateDietPlan handles POST /api/diet/generate. The user's food inventory
// feeds the generation request; the generated plan is persisted before
// responding.
func (s *Server) GenerateDietPlan(c *fiber.Ctx) error {
	user := currentUser(c)

	var goals ai.DietaryGoals
	if err := c.BodyParser(&goals); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	foods, err := s.nutritionRepo.ListFoods(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	input, err := s.generator.GenerateDietPlan(c.UserContext(), user.GeneratorProfile(), foods, goals)
	if err != nil {
		return respondError(c, err)
	}

	planID, err := s.dietRepo.SavePlan(c.UserContext(), user.ID, *input)
	if err != nil {
		return respondError(c, err)
	}

	plan, err := s.dietRepo.GetPlanDetail(c.UserContext(), user.ID, planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}
