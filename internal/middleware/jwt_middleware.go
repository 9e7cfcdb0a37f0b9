package middleware

import (
	"context"
	"strings"

	"jurnal/internal/apperrors"
	"jurnal/internal/models"

	"github.com/gofiber/fiber/v2"
	"github.com/rs/zerolog"
)

const principalKey = "principal"

// Authenticator resolves a bearer token into the calling principal.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.Principal, error)
}

// AuthRequired is a Fiber middleware to check for a valid JWT token.
func AuthRequired(auth Authenticator, log zerolog.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get(fiber.HeaderAuthorization)
		if authHeader == "" {
			return unauthorized(c, "Authorization header is required", "")
		}

		// Expected format: "Bearer <token>"
		parts := strings.SplitN(authHeader, " ", 2)
		if !(len(parts) == 2 && parts[0] == "Bearer" && parts[1] != "") {
			return unauthorized(c, "Authorization header format must be 'Bearer <token>'", "")
		}

		principal, err := auth.Authenticate(c.UserContext(), parts[1])
		if err != nil {
			httpErr := apperrors.MapErrorToHTTP(err)
			if httpErr.StatusCode != fiber.StatusUnauthorized {
				log.Error().Err(err).Msg("Authentication lookup failed")
				return c.Status(httpErr.StatusCode).JSON(httpErr.Response)
			}
			log.Debug().Err(err).Msg("JWT validation failed")
			return unauthorized(c, "Invalid or expired token", err.Error())
		}

		c.Locals(principalKey, principal)
		return c.Next()
	}
}

// RequireRoles rejects principals holding none of roles with 403. It must run
// after AuthRequired.
func RequireRoles(roles ...models.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		principal, ok := PrincipalFrom(c)
		if !ok {
			return unauthorized(c, "Authentication required", "")
		}
		if !principal.HasAnyRole(roles...) {
			return c.Status(fiber.StatusForbidden).JSON(apperrors.ErrorResponse{
				Message: "Access denied",
				Error:   "role " + string(principal.Role) + " is not allowed here",
				Code:    "PERMISSION_DENIED",
			})
		}
		return c.Next()
	}
}

// PrincipalFrom returns the principal stored by AuthRequired.
func PrincipalFrom(c *fiber.Ctx) (*models.Principal, bool) {
	principal, ok := c.Locals(principalKey).(*models.Principal)
	return principal, ok && principal != nil
}

func unauthorized(c *fiber.Ctx, message, detail string) error {
	return c.Status(fiber.StatusUnauthorized).JSON(apperrors.ErrorResponse{
		Message: message,
		Error:   detail,
		Code:    "UNAUTHORIZED",
	})
}
