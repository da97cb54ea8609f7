package server

import (
	"strings"

	"fittrack/internal/credentials"
	"fittrack/internal/models"
	"fittrack/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// Register handles POST /api/auth/register
func (s *Server) Register(c *fiber.Ctx) error {
	var req struct {
		Username        string  `json:"username"`
		Email           string  `json:"email"`
		Password        string  `json:"password"`
		FirstName       string  `json:"first_name"`
		LastName        string  `json:"last_name"`
		Age             int     `json:"age"`
		Gender          string  `json:"gender"`
		HeightCm        float64 `json:"height_cm"`
		WeightKg        float64 `json:"weight_kg"`
		ActivityLevel   string  `json:"activity_level"`
		FitnessGoals    string  `json:"fitness_goals"`
		Injuries        string  `json:"injuries"`
		ExperienceLevel string  `json:"experience_level"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	if req.Username == "" || req.Email == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username, email, and password are required"))
	}

	if err := validation.ValidateUsername(req.Username); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidateEmail(req.Email); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}
	if err := validation.ValidatePassword(req.Password); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError(err.Error()))
	}

	hash, err := credentials.HashPassword(req.Password)
	if err != nil {
		return models.RespondWithError(c, fiber.StatusInternalServerError,
			models.NewInternalError(err))
	}

	user := &models.User{
		Username:        req.Username,
		Email:           strings.ToLower(req.Email),
		PasswordHash:    hash,
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Age:             req.Age,
		Gender:          req.Gender,
		HeightCm:        req.HeightCm,
		WeightKg:        req.WeightKg,
		ActivityLevel:   req.ActivityLevel,
		FitnessGoals:    req.FitnessGoals,
		Injuries:        req.Injuries,
		ExperienceLevel: req.ExperienceLevel,
	}

	// Uniqueness is enforced by the database; a race between two identical
	// registrations still resolves to a single winner and one Conflict.
	if createErr := s.userRepo.Create(c.UserContext(), user); createErr != nil {
		return respondError(c, createErr)
	}

	token, err := s.creds.CreateSession(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Login handles POST /api/auth/login. The identifier matches username or
// email; unknown identifier and wrong password return the same response.
func (s *Server) Login(c *fiber.Ctx) error {
	var req struct {
		Identifier string `json:"identifier"`
		Username   string `json:"username"`
		Password   string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Invalid request body"))
	}

	identifier := req.Identifier
	if identifier == "" {
		identifier = req.Username
	}
	if identifier == "" || req.Password == "" {
		return models.RespondWithError(c, fiber.StatusBadRequest,
			models.NewValidationError("Username and password are required"))
	}

	user, err := s.userRepo.GetByIdentifier(c.UserContext(), identifier)
	if err != nil {
		return respondError(c, err)
	}
	if user == nil || !credentials.VerifyPassword(req.Password, user.PasswordHash) {
		return models.RespondWithError(c, fiber.StatusUnauthorized,
			models.NewInvalidCredentialsError())
	}

	token, err := s.creds.CreateSession(c.UserContext(), user.ID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/auth/logout. Revoking an unknown or already
// revoked token still returns 204.
func (s *Server) Logout(c *fiber.Ctx) error {
	authHeader := c.Get("Authorization")
	parts := strings.Split(authHeader, " ")
	if len(parts) == 2 && parts[0] == "Bearer" {
		if err := s.creds.RevokeSession(c.UserContext(), parts[1]); err != nil {
			return respondError(c, err)
		}
	}
	return c.SendStatus(fiber.StatusNoContent)
}
