// Package middleware holds fiber middleware shared by the HTTP handlers.
package middleware

import (
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
)

const bearerPrefix = "Bearer "

// RequireToken rejects writes that lack a bearer JWT signed with secret using
// an HMAC method. Reads always pass, and every request passes when secret is
// empty.
func RequireToken(secret string) fiber.Handler {
	key := []byte(secret)
	return func(c *fiber.Ctx) error {
		if secret == "" || readOnly(c.Method()) {
			return c.Next()
		}

		header := c.Get(fiber.HeaderAuthorization)
		if !strings.HasPrefix(header, bearerPrefix) {
			return unauthorized(c, "missing bearer token")
		}

		token, err := jwt.Parse(strings.TrimSpace(strings.TrimPrefix(header, bearerPrefix)), func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
			}
			return key, nil
		})
		if err != nil || !token.Valid {
			return unauthorized(c, "invalid bearer token")
		}
		if claims, ok := token.Claims.(jwt.MapClaims); ok {
			if sub, _ := claims["sub"].(string); sub != "" {
				c.Locals("subject", sub)
			}
		}
		return c.Next()
	}
}

func readOnly(method string) bool {
	switch method {
	case fiber.MethodGet, fiber.MethodHead, fiber.MethodOptions:
		return true
	}
	return false
}

func unauthorized(c *fiber.Ctx, msg string) error {
	c.Set(fiber.HeaderWWWAuthenticate, `Bearer realm="query-advisor"`)
	return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": msg})
}
