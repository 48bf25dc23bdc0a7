package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
	"github.com/jhoicas/tienda-api/internal/domain/entity"
	"github.com/jhoicas/tienda-api/pkg/jwt"
)

// LocalCaller clave de Locals para el caller autenticado en Fiber.
const LocalCaller = "caller"

// AuthMiddleware valida el Bearer Token JWT y deja el Caller en c.Locals.
func AuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "Authorization header requerido"})
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "formato: Bearer <token>"})
		}
		tokenString := strings.TrimSpace(parts[1])
		if tokenString == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "MISSING_TOKEN", Message: "token vacío"})
		}
		claims, err := jwt.Parse(jwtSecret, tokenString)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "INVALID_TOKEN", Message: "token inválido o expirado"})
		}
		c.Locals(LocalCaller, &entity.Caller{
			ID:       claims.UserID,
			Username: claims.Username,
			IsStaff:  claims.IsStaff,
		})
		return c.Next()
	}
}

// OptionalAuthMiddleware extrae el Caller si hay un token válido, pero deja pasar
// peticiones sin token o con token inválido (el caller queda nil = anónimo).
// Se usa solo en la creación de facturas, cuyo caso de uso decide según config.
func OptionalAuthMiddleware(jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			if claims, err := jwt.Parse(jwtSecret, strings.TrimSpace(parts[1])); err == nil {
				c.Locals(LocalCaller, &entity.Caller{
					ID:       claims.UserID,
					Username: claims.Username,
					IsStaff:  claims.IsStaff,
				})
			}
		}
		return c.Next()
	}
}

// RequireStaff exige que el caller autenticado sea staff. Debe ir después de AuthMiddleware.
func RequireStaff() fiber.Handler {
	return func(c *fiber.Ctx) error {
		caller := GetCaller(c)
		if caller == nil {
			return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "autenticación requerida"})
		}
		if !caller.IsStaff {
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "requiere rol staff"})
		}
		return c.Next()
	}
}

// GetCaller devuelve el Caller del contexto, o nil si la petición es anónima.
func GetCaller(c *fiber.Ctx) *entity.Caller {
	v := c.Locals(LocalCaller)
	if v == nil {
		return nil
	}
	caller, _ := v.(*entity.Caller)
	return caller
}
