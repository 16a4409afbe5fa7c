package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/domain"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

var errorStatus = map[string]int{
	"INVALID_KIND":          fiber.StatusBadRequest,
	"INVALID_QUANTITY":      fiber.StatusBadRequest,
	"INVALID_THRESHOLD":     fiber.StatusBadRequest,
	"VALIDATION":            fiber.StatusBadRequest,
	"RECORD_NOT_FOUND":      fiber.StatusNotFound,
	"NOT_FOUND":             fiber.StatusNotFound,
	"INSUFFICIENT_STOCK":    fiber.StatusConflict,
	"INSUFFICIENT_RESERVED": fiber.StatusConflict,
	"DUPLICATE":             fiber.StatusConflict,
	"UNAUTHORIZED":          fiber.StatusUnauthorized,
	"FORBIDDEN":             fiber.StatusForbidden,
}

var errorMessage = map[string]string{
	"INVALID_KIND":          "tipo de movimiento inválido (restock, sale, return, adjustment, reserve, release)",
	"INVALID_QUANTITY":      "cantidad inválida",
	"INVALID_THRESHOLD":     "los umbrales deben ser enteros no negativos",
	"VALIDATION":            "datos inválidos",
	"RECORD_NOT_FOUND":      "el SKU no tiene registro de stock",
	"NOT_FOUND":             "recurso no encontrado",
	"INSUFFICIENT_STOCK":    "stock insuficiente",
	"INSUFFICIENT_RESERVED": "stock reservado insuficiente",
	"DUPLICATE":             "el SKU ya tiene registro de stock",
	"UNAUTHORIZED":          "no autorizado",
	"FORBIDDEN":             "acceso denegado",
}

// writeError traduce un error de dominio a status HTTP y dto.ErrorResponse.
// Los errores no tipados se registran y se responden como 500 sin detalles internos.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	code := domain.Code(err)
	status, ok := errorStatus[code]
	if !ok {
		log.Error().Err(err).Str("path", c.Path()).Str("request_id", GetRequestID(c)).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{
		Code:    code,
		Message: errorMessage[code],
		Field:   domain.FieldOf(err),
	})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
