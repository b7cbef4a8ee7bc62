// Package identity holds the typed descriptor extracted from a verified
// bearer token. Claims are validated once at the trust boundary; the
// rest of the code never touches raw JWT claims.
package identity

import (
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/mazingira/donations-backend/internal/apperr"
	"github.com/mazingira/donations-backend/internal/models"
)

type Identity struct {
	UserID uuid.UUID
	Role   string
}

func (id Identity) IsAdmin() bool {
	return id.Role == models.RoleAdmin
}

// FromContext extracts the identity from the JWT the auth middleware
// stored in context locals.
func FromContext(c *fiber.Ctx) (Identity, error) {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil {
		return Identity{}, apperr.Auth("missing or invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return Identity{}, apperr.Auth("invalid claims")
	}

	sub, ok := claims["sub"].(string)
	if !ok {
		return Identity{}, apperr.Auth("missing sub claim")
	}

	userID, err := uuid.Parse(sub)
	if err != nil {
		return Identity{}, apperr.Auth("malformed sub claim")
	}

	role, _ := claims["role"].(string)
	if role != models.RoleDonor && role != models.RoleAdmin {
		return Identity{}, apperr.Auth("unknown role claim")
	}

	return Identity{UserID: userID, Role: role}, nil
}
