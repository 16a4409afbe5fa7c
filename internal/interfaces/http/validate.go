package http

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/stock-ledger/internal/application/dto"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		tag := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if tag == "" || tag == "-" {
			return f.Name
		}
		return tag
	})
	return v
}

// bindJSON decodifica el body en dest y aplica las reglas `validate` del DTO.
// Con ok == false la respuesta 400 ya está escrita y el handler retorna err tal cual.
func bindJSON(c *fiber.Ctx, dest any) (ok bool, err error) {
	if err := c.BodyParser(dest); err != nil {
		return false, badBody(c)
	}
	if err := validate.Struct(dest); err != nil {
		var errs validator.ValidationErrors
		if errors.As(err, &errs) && len(errs) > 0 {
			fe := errs[0]
			return false, c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Code:    "VALIDATION",
				Message: fe.Field() + " " + validationMessage(fe),
				Field:   fe.Field(),
			})
		}
		return false, badBody(c)
	}
	return true, nil
}

func validationMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "es requerido"
	case "max":
		return fmt.Sprintf("admite como máximo %s caracteres", fe.Param())
	}
	return "es inválido"
}
