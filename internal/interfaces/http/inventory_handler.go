package http

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/stock-ledger/internal/application/dto"
	"github.com/jhoicas/stock-ledger/internal/application/inventory"
	"github.com/jhoicas/stock-ledger/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP del ledger de stock (protegido).
type InventoryHandler struct {
	ledger        *inventory.LedgerUseCase
	reports       *inventory.StockReportUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(
	ledger *inventory.LedgerUseCase,
	reports *inventory.StockReportUseCase,
	replenishment *inventory.ReplenishmentUseCase,
	log *logger.Logger,
) *InventoryHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &InventoryHandler{ledger: ledger, reports: reports, replenishment: replenishment, log: log}
}

// List godoc
// @Summary      Listar registros de stock
// @Description  Ordenados por stock actual ascendente; el resumen cubre todo el conjunto filtrado.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        low_stock     query  bool    false  "Solo SKUs en o bajo el punto de reorden"
// @Param        out_of_stock  query  bool    false  "Solo SKUs sin stock"
// @Param        sku_id        query  string  false  "SKU exacto"
// @Param        location      query  string  false  "Ubicación (contiene, sin distinguir mayúsculas)"
// @Param        page          query  int     false  "Página (desde 1)"
// @Param        limit         query  int     false  "Elementos por página (máx. 100)"
// @Success      200  {object}  dto.InventoryListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	req := dto.InventoryListRequest{
		LowStock:    c.QueryBool("low_stock"),
		OutOfStock:  c.QueryBool("out_of_stock"),
		SKU:         c.Query("sku_id"),
		Location:    c.Query("location"),
		PageRequest: pageFromQuery(c),
	}
	out, err := h.reports.ListRecords(c.Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Seed godoc
// @Summary      Dar de alta un SKU
// @Description  Crea el registro con stock inicial; si initial_stock > 0 escribe una entrada restock "stock inicial".
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body      dto.SeedRecordRequest  true  "sku_id, initial_stock, umbrales opcionales, unit_cost, supplier, location"
// @Success      201   {object}  dto.StockRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory [post]
func (h *InventoryHandler) Seed(c *fiber.Ctx) error {
	var in dto.SeedRecordRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.ledger.SeedRecord(c.Context(), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Alerts godoc
// @Summary      Alertas de inventario
// @Description  low_stock (warning), out_of_stock (critical), overstock (info); ordenadas por severidad.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.AlertsResponse
// @Router       /api/inventory/alerts [get]
func (h *InventoryHandler) Alerts(c *fiber.Ctx) error {
	out, err := h.reports.ListAlerts(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Logs godoc
// @Summary      Historial de movimientos
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku_id  query  string  false  "Filtrar por SKU"
// @Param        kind    query  string  false  "Filtrar por tipo"
// @Param        page    query  int     false  "Página (desde 1)"
// @Param        limit   query  int     false  "Elementos por página (máx. 100)"
// @Success      200  {object}  dto.LedgerHistoryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/logs [get]
func (h *InventoryHandler) Logs(c *fiber.Ctx) error {
	req := dto.LedgerHistoryRequest{
		SKU:         c.Query("sku_id"),
		Kind:        strings.ToLower(c.Query("kind")),
		PageRequest: pageFromQuery(c),
	}
	out, err := h.ledger.ListHistory(c.Context(), req)
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReorderReport godoc
// @Summary      Reporte de reposición
// @Description  SKUs en o bajo su punto de reorden con la cantidad sugerida para volver al máximo.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.ReorderReportDTO
// @Router       /api/inventory/reorder-report [get]
func (h *InventoryHandler) ReorderReport(c *fiber.Ctx) error {
	out, err := h.replenishment.ReorderReport(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ReorderReportPDF godoc
// @Summary      Reporte de reposición en PDF
// @Tags         inventory
// @Security     Bearer
// @Produce      application/pdf
// @Success      200  {file}  binary
// @Router       /api/inventory/reorder-report.pdf [get]
func (h *InventoryHandler) ReorderReportPDF(c *fiber.Ctx) error {
	pdf, err := h.replenishment.ReorderReportPDF(c.Context())
	if err != nil {
		return writeError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="reorder-report.pdf"`)
	return c.Send(pdf)
}

// Get godoc
// @Summary      Detalle de un SKU
// @Description  Registro, estado y las entradas más recientes del log.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.StockDetailResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku} [get]
func (h *InventoryHandler) Get(c *fiber.Ctx) error {
	out, err := h.ledger.GetRecord(c.Context(), c.Params("sku"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// Status godoc
// @Summary      Estado de un SKU
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        sku  path  string  true  "SKU"
// @Success      200  {object}  dto.StockStatusResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/status [get]
func (h *InventoryHandler) Status(c *fiber.Ctx) error {
	out, err := h.ledger.GetStatus(c.Context(), c.Params("sku"))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

// ApplyTransition godoc
// @Summary      Registrar movimiento de stock
// @Description  restock, sale, return, adjustment (valor absoluto), reserve, release. 201 si el movimiento creó el registro.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku   path  string                      true  "SKU"
// @Param        body  body  dto.StockTransitionRequest  true  "type, quantity, reason, unit_cost, supplier"
// @Success      200   {object}  dto.TransitionResponse
// @Success      201   {object}  dto.TransitionResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/stock [put]
func (h *InventoryHandler) ApplyTransition(c *fiber.Ctx) error {
	var in dto.StockTransitionRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.ledger.ApplyTransitionFromRequest(c.Context(), c.Params("sku"), GetUserID(c), in)
	if err != nil {
		return writeError(c, h.log, err)
	}
	status := fiber.StatusOK
	if out.Outcome == "created" {
		status = fiber.StatusCreated
	}
	return c.Status(status).JSON(out)
}

// SetThresholds godoc
// @Summary      Actualizar umbrales de un SKU
// @Description  Actualización parcial de min_stock_level, max_stock_level y reorder_point.
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        sku   path  string                 true  "SKU"
// @Param        body  body  dto.ThresholdsRequest  true  "Umbrales (omitidos = sin cambio)"
// @Success      200   {object}  dto.StockRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/reorder-levels [put]
func (h *InventoryHandler) SetThresholds(c *fiber.Ctx) error {
	var in dto.ThresholdsRequest
	if ok, err := bindJSON(c, &in); !ok {
		return err
	}
	out, err := h.ledger.SetThresholds(c.Context(), c.Params("sku"), *inventory.PatchFromRequest(in))
	if err != nil {
		return writeError(c, h.log, err)
	}
	return c.JSON(out)
}

func pageFromQuery(c *fiber.Ctx) dto.PageRequest {
	return dto.PageRequest{Page: c.QueryInt("page", 1), Limit: c.QueryInt("limit", 0)}
}
