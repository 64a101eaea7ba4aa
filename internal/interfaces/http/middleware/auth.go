package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Chaves dos locals preenchidos pela autenticação
const (
	LocalTenantID = "tenant_id"
	LocalActorID  = "actor_id"
)

// JWTAuth valida o bearer token e resolve o tenant e o ator das claims.
// O motor só precisa do escopo de tenant: sessão e permissões finas são
// responsabilidade do gateway upstream.
func JWTAuth(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, "Bearer ") {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token ausente",
			})
		}

		token, err := jwt.Parse(strings.TrimPrefix(header, "Bearer "), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, jwt.ErrSignatureInvalid
			}
			return []byte(secret), nil
		})
		if err != nil || !token.Valid {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token inválido",
			})
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "token inválido",
			})
		}

		tenantID, _ := claims["tenant_id"].(string)
		if tenantID == "" {
			return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
				"error": "token sem tenant",
			})
		}
		c.Locals(LocalTenantID, tenantID)

		if sub, _ := claims["sub"].(string); sub != "" {
			c.Locals(LocalActorID, sub)
		}
		return c.Next()
	}
}
