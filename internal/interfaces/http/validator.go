package http

import (
	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/tienda-api/internal/application/dto"
)

// validate instancia compartida del validador de structs (tags `validate`).
var validate = validator.New()

// validateBody valida el struct de entrada; si falla responde 400 y retorna false.
func validateBody(c *fiber.Ctx, in any) (ok bool, err error) {
	if vErr := validate.Struct(in); vErr != nil {
		return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: vErr.Error()})
	}
	return true, nil
}
