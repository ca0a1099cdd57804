package serverutils

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// JwtMiddleware validates the bearer token issued by the external auth
// provider and stores the subject and role claims on the request context.
func JwtMiddleware(ctx *fiber.Ctx) error {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) < 7 || authHeader[:7] != "Bearer " {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Missing token"})
	}
	tokenStr := authHeader[7:]

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		return []byte(os.Getenv("JWT_SECRET")), nil
	})

	if err != nil || !token.Valid {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid token"})
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return ctx.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"message": "Invalid claims"})
	}

	ctx.Locals("user_id", claims["user_id"])
	ctx.Locals("roles", extractRoles(claims))
	return ctx.Next()
}

// extractRoles reads the provider's role claim, which may be a single string
// or a list.
func extractRoles(claims jwt.MapClaims) []string {
	switch v := claims["roles"].(type) {
	case string:
		return []string{v}
	case []interface{}:
		roles := make([]string, 0, len(v))
		for _, r := range v {
			if s, ok := r.(string); ok {
				roles = append(roles, s)
			}
		}
		return roles
	}
	return nil
}

// RequireRoles allows the request through when any of the caller's roles
// matches one of required. Runs after JwtMiddleware.
func RequireRoles(required ...string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		roles, _ := ctx.Locals("roles").([]string)
		for _, have := range roles {
			for _, want := range required {
				if have == want {
					return ctx.Next()
				}
			}
		}
		return ctx.Status(fiber.StatusForbidden).JSON(fiber.Map{"message": "Insufficient role"})
	}
}

// UserId returns the authenticated subject, empty when unauthenticated.
func UserId(ctx *fiber.Ctx) string {
	if id, ok := ctx.Locals("user_id").(string); ok {
		return id
	}
	return ""
}
