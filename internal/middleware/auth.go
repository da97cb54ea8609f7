package middleware

import (
	"context"
	"errors"
	"strings"

	"fittrack/internal/credentials"
	"fittrack/internal/models"

	"github.com/gofiber/fiber/v2"
)

// AuthRequired enforces authentication via an opaque session token carried in
// "Authorization: Bearer <token>". Every request resolves the token against
// storage; there is no in-memory session cache. On success the user ID and the
// full user record are stored in Fiber locals.
func AuthRequired(store *credentials.Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidCredentialsError())
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidCredentialsError())
		}

		user, err := store.ValidateSession(c.UserContext(), parts[1])
		if err != nil {
			// A storage failure is not an authentication verdict.
			var appErr *models.AppError
			if errors.As(err, &appErr) && appErr.Code == models.CodeInternal {
				return models.RespondWithError(c, fiber.StatusInternalServerError, err)
			}
			// Unknown and expired tokens are deliberately indistinguishable.
			return models.RespondWithError(c, fiber.StatusUnauthorized,
				models.NewInvalidCredentialsError())
		}

		c.Locals("userID", user.ID)
		c.Locals("user", user)
		ctx := context.WithValue(c.UserContext(), UserIDKey, user.ID)
		c.SetUserContext(ctx)

		return c.Next()
	}
}
