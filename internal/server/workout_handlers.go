package server

import (
	"fittrack/internal/ai"
	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// CreateWorkoutPlan handles POST /api/workouts/plans
func (s *Server) CreateWorkoutPlan(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var input models.WorkoutPlanInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	planID, err := s.workoutRepo.SavePlan(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}

	plan, err := s.workoutRepo.GetPlanDetail(c.UserContext(), userID, planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// GetWorkoutPlans handles GET /api/workouts/plans
func (s *Server) GetWorkoutPlans(c *fiber.Ctx) error {
	plans, err := s.workoutRepo.GetPlans(c.UserContext(), currentUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"plans": plans})
}

// GetWorkoutPlan handles GET /api/workouts/plans/:id
func (s *Server) GetWorkoutPlan(c *fiber.Ctx) error {
	planID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	plan, err := s.workoutRepo.GetPlanDetail(c.UserContext(), currentUserID(c), planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(plan)
}

// DeleteWorkoutPlan handles DELETE /api/workouts/plans/:id
func (s *Server) DeleteWorkoutPlan(c *fiber.Ctx) error {
	planID, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	if err := s.workoutRepo.DeletePlan(c.UserContext(), currentUserID(c), planID); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GenerateWorkoutPlan handles POST /api/workouts/generate. The generated plan
// is persisted before responding; the client receives the stored plan.
func (s *Server) GenerateWorkoutPlan(c *fiber.Ctx) error {
	user := currentUser(c)

	var prefs ai.WorkoutPreferences
	if err := c.BodyParser(&prefs); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	input, err := s.generator.GenerateWorkoutPlan(c.UserContext(), user.GeneratorProfile(), prefs)
	if err != nil {
		return respondError(c, err)
	}

	planID, err := s.workoutRepo.SavePlan(c.UserContext(), user.ID, *input)
	if err != nil {
		return respondError(c, err)
	}

	plan, err := s.workoutRepo.GetPlanDetail(c.UserContext(), user.ID, planID)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(plan)
}

// LogWorkout handles POST /api/workouts/logs
func (s *Server) LogWorkout(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var input models.WorkoutLogInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}
	if input.WorkoutDayID == 0 {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("workout_day_id is required"))
	}

	logID, err := s.workoutRepo.LogWorkout(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": logID})
}

// GetWorkoutHistory handles GET /api/workouts/history?range=
func (s *Server) GetWorkoutHistory(c *fiber.Ctx) error {
	dateRange := c.Query("range", "1 Month")

	rows, err := s.workoutRepo.History(c.UserContext(), currentUserID(c), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"history": rows})
}
