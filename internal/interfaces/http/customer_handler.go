package http

import (
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"

	appcustomer "github.com/jhoicas/customer-registry/internal/application/customer"
	"github.com/jhoicas/customer-registry/internal/application/dto"
	"github.com/jhoicas/customer-registry/internal/domain"
	"github.com/jhoicas/customer-registry/pkg/logger"
)

// Mensajes genéricos de las rutas que no pasan por la ranura de error del estado.
const (
	msgFindFailed   = "Failed to load customer"
	msgExportFailed = "Failed to export customers"
)

// CustomerHandler expone el estado de clientes a la UI local.
type CustomerHandler struct {
	state *appcustomer.State
	pdf   *appcustomer.PDFUseCase
	log   *logger.Logger
}

// NewCustomerHandler construye el handler. log puede ser nil.
func NewCustomerHandler(state *appcustomer.State, pdf *appcustomer.PDFUseCase, log *logger.Logger) *CustomerHandler {
	if log == nil {
		log = logger.Nop()
	}
	return &CustomerHandler{state: state, pdf: pdf, log: log.Component("customer_handler")}
}

// List recarga desde el repositorio y devuelve lista + error.
// GET /api/customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	if err := h.state.Load(c.UserContext()); err != nil {
		return stateError(c, err)
	}
	return c.JSON(dto.NewStateResponse(h.state.Snapshot()))
}

// State devuelve la lista y el error actuales sin recargar.
// GET /api/state
func (h *CustomerHandler) State(c *fiber.Ctx) error {
	return c.JSON(dto.NewStateResponse(h.state.Snapshot()))
}

// GetByID GET /api/customers/:id
func (h *CustomerHandler) GetByID(c *fiber.Ctx) error {
	id := c.Params("id")
	customer, err := h.state.Find(c.UserContext(), id)
	if err != nil {
		h.log.Error().Err(err).Str("customer_id", id).Msg("buscar cliente")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msgFindFailed})
	}
	if customer == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: domain.ErrNotFound.Error()})
	}
	return c.JSON(dto.NewCustomerResponse(*customer))
}

// Create POST /api/customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.state.Create(c.UserContext(), in.ToEntity())
	if err != nil {
		return stateError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCustomerResponse(*customer))
}

// Update PUT /api/customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	var in dto.CustomerRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	customer, err := h.state.Update(c.UserContext(), c.Params("id"), in.ToEntity())
	if err != nil {
		return stateError(c, err)
	}
	return c.JSON(dto.NewCustomerResponse(*customer))
}

// Delete DELETE /api/customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	if err := h.state.Delete(c.UserContext(), c.Params("id")); err != nil {
		return stateError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ExportPDF descarga el listado de clientes.
// GET /api/customers/export/pdf
func (h *CustomerHandler) ExportPDF(c *fiber.Ctx) error {
	pdfBytes, filename, err := h.pdf.ExportList(c.UserContext())
	if err != nil {
		h.log.Error().Err(err).Msg("exportar PDF")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msgExportFailed})
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`attachment; filename="%s"`, filename))
	return c.Send(pdfBytes)
}

// stateError responde con el mensaje de la ranura de error; el status sale del tipo de dominio.
func stateError(c *fiber.Ctx, err error) error {
	msg := err.Error()
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: msg})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: msg})
	}
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: msg})
}
