package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventario-ai/internal/application/dto"
	"github.com/jhoicas/inventario-ai/internal/application/usecase"
	"github.com/jhoicas/inventario-ai/internal/domain"
)

// InventoryHandler maneja el CRUD de registros de inventario.
type InventoryHandler struct {
	uc     *usecase.ItemUseCase
	report *usecase.ReportUseCase
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(uc *usecase.ItemUseCase, report *usecase.ReportUseCase) *InventoryHandler {
	return &InventoryHandler{uc: uc, report: report}
}

func notFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).JSON(dto.Envelope{Success: false, Message: "Not found"})
}

func fail(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput),
		errors.Is(err, domain.ErrNegativeQuantity),
		errors.Is(err, domain.ErrNegativePrice):
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return notFound(c)
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.Envelope{Success: false, Message: err.Error()})
}

// List godoc
// @Summary      Listar registros de inventario
// @Tags         inventory
// @Produce      json
// @Success      200  {object}  dto.Envelope{data=[]dto.ItemResponse}
// @Failure      500  {object}  dto.Envelope
// @Router       /api/inventory [get]
func (h *InventoryHandler) List(c *fiber.Ctx) error {
	items, err := h.uc.List(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Data: items})
}

// Create godoc
// @Summary      Crear registro
// @Description  quantity, price y minStock ausentes o no numéricos valen 0; category ausente vale General.
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ItemRequest  true  "Datos del registro"
// @Success      201   {object}  dto.Envelope{data=dto.ItemResponse}
// @Failure      400   {object}  dto.Envelope
// @Router       /api/inventory [post]
func (h *InventoryHandler) Create(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Message: "cuerpo inválido"})
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return fail(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.Envelope{Success: true, Data: out})
}

// GetByID godoc
// @Summary      Obtener registro por ID
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.Envelope{data=dto.ItemResponse}
// @Failure      404  {object}  dto.Envelope
// @Router       /api/inventory/{id} [get]
func (h *InventoryHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.GetByID(c.UserContext(), c.Params("id"))
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.Envelope{Success: true, Data: out})
}

// Update godoc
// @Summary      Actualizar registro
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        id    path  string           true  "ID del registro"
// @Param        body  body  dto.ItemRequest  true  "Campos del registro"
// @Success      200   {object}  dto.Envelope{data=dto.ItemResponse}
// @Failure      400   {object}  dto.Envelope
// @Failure      404   {object}  dto.Envelope
// @Router       /api/inventory/{id} [put]
func (h *InventoryHandler) Update(c *fiber.Ctx) error {
	var in dto.ItemRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.Envelope{Success: false, Message: "cuerpo inválido"})
	}
	out, err := h.uc.Update(c.UserContext(), c.Params("id"), in)
	if err != nil {
		return fail(c, err)
	}
	if out == nil {
		return notFound(c)
	}
	return c.JSON(dto.Envelope{Success: true, Data: out})
}

// Delete godoc
// @Summary      Eliminar registro
// @Tags         inventory
// @Produce      json
// @Param        id   path  string  true  "ID del registro"
// @Success      200  {object}  dto.Envelope
// @Failure      404  {object}  dto.Envelope
// @Router       /api/inventory/{id} [delete]
func (h *InventoryHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return fail(c, err)
	}
	return c.JSON(dto.Envelope{Success: true, Message: "Deleted"})
}

// Report godoc
// @Summary      Reporte de existencias en PDF
// @Tags         inventory
// @Produce      application/pdf
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.Envelope
// @Router       /api/inventory/report [get]
func (h *InventoryHandler) Report(c *fiber.Ctx) error {
	doc, err := h.report.StockReport(c.UserContext())
	if err != nil {
		return fail(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="stock-report.pdf"`)
	return c.Send(doc)
}
