package server

import (
	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AddProgressEntry handles POST /api/progress
func (s *Server) AddProgressEntry(c *fiber.Ctx) error {
	userID := currentUserID(c)

	var input models.ProgressEntryInput
	if err := c.BodyParser(&input); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	entryID, err := s.progressRepo.AddEntry(c.UserContext(), userID, input)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"id": entryID})
}

// GetProgress handles GET /api/progress?range=. Returns the body metric time
// series, oldest first.
func (s *Server) GetProgress(c *fiber.Ctx) error {
	dateRange := c.Query("range", "3 Months")

	metrics, err := s.progressRepo.GetBodyMetrics(c.UserContext(), currentUserID(c), dateRange)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"metrics": metrics})
}

// GetProgressInsights handles GET /api/progress/insights?range=. The summary
// is derived from the series; entries without height or weight carry an
// insufficient-data flag rather than a zero BMI.
func (s *Server) GetProgressInsights(c *fiber.Ctx) error {
	dateRange := c.Query("range", "3 Months")

	metrics, err := s.progressRepo.GetBodyMetrics(c.UserContext(), currentUserID(c), dateRange)
	if err != nil {
		return respondError(c, err)
	}

	insights := fiber.Map{
		"entries": len(metrics),
		"metrics": metrics,
	}

	if len(metrics) > 0 {
		first := metrics[0]
		latest := metrics[len(metrics)-1]

		insights["current_weight_kg"] = latest.WeightKg
		insights["weight_change_kg"] = latest.WeightKg - first.WeightKg
		if latest.BMI != nil {
			insights["bmi"] = *latest.BMI
		} else {
			insights["insufficient_data"] = true
		}
	}

	return c.JSON(insights)
}
