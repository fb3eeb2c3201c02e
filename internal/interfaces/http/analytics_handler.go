package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/libreta-api/internal/application/dto"
	"github.com/jhoicas/libreta-api/internal/application/forecast"
	"github.com/jhoicas/libreta-api/internal/application/scoring"
	"github.com/jhoicas/libreta-api/internal/domain"
)

// AnalyticsHandler expone los motores de scoring y forecast (protegido).
type AnalyticsHandler struct {
	scoringUC  *scoring.UseCase
	forecastUC *forecast.UseCase
}

// NewAnalyticsHandler construye el handler de analítica.
func NewAnalyticsHandler(scoringUC *scoring.UseCase, forecastUC *forecast.UseCase) *AnalyticsHandler {
	return &AnalyticsHandler{scoringUC: scoringUC, forecastUC: forecastUC}
}

// TrustScore godoc
// @Summary      Calcular trust score de un cliente (solo lectura)
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.TrustScoreDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/trust-score [get]
func (h *AnalyticsHandler) TrustScore(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.scoringUC.ComputeTrustScore(c.Context(), GetShopID(c), id)
	if err != nil {
		return scoringError(c, err)
	}
	return c.JSON(out)
}

// RefreshTrustScore godoc
// @Summary      Recalcular y persistir el trust score de un cliente
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del cliente"
// @Success      200  {object}  dto.TrustScoreDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/customers/{id}/trust-score/refresh [post]
func (h *AnalyticsHandler) RefreshTrustScore(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.scoringUC.UpdateTrustScore(c.Context(), GetShopID(c), id)
	if err != nil {
		return scoringError(c, err)
	}
	return c.JSON(out)
}

// scoringError mapea errores de dominio del motor de scoring a HTTP.
func scoringError(c *fiber.Ctx, err error) error {
	switch err {
	case domain.ErrNotFound:
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "cliente no encontrado"})
	case domain.ErrForbidden:
		return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el cliente pertenece a otra tienda"})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}

// RefreshAllTrustScores godoc
// @Summary      Recalcular el trust score de todos los clientes de la tienda
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  scoring.BatchResult
// @Router       /api/customers/trust-scores/refresh [post]
func (h *AnalyticsHandler) RefreshAllTrustScores(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "shop_id requerido"})
	}
	out, err := h.scoringUC.UpdateAllTrustScores(c.Context(), shopID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ItemForecast godoc
// @Summary      Predicción de agotamiento de un producto
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID del producto"
// @Success      200  {object}  dto.ItemForecastDTO
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/inventory/items/{id}/forecast [get]
func (h *AnalyticsHandler) ItemForecast(c *fiber.Ctx) error {
	id := c.Params("id")
	if id == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "MISSING_ID", Message: "id es requerido"})
	}
	out, err := h.forecastUC.Forecast(c.Context(), GetShopID(c), id)
	if err != nil {
		switch err {
		case domain.ErrNotFound:
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto no encontrado"})
		case domain.ErrForbidden:
			return c.Status(fiber.StatusForbidden).JSON(dto.ErrorResponse{Code: "FORBIDDEN", Message: "el producto pertenece a otra tienda"})
		case domain.ErrInvalidState:
			return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{Code: "INVALID_STATE", Message: "el producto tiene stock negativo"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// ForecastAll godoc
// @Summary      Predicciones de todos los productos de la tienda
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  forecast.BatchResult
// @Router       /api/inventory/forecast [get]
func (h *AnalyticsHandler) ForecastAll(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "shop_id requerido"})
	}
	out, err := h.forecastUC.ForecastAll(c.Context(), shopID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// CriticalItems godoc
// @Summary      Productos en urgencia crítica
// @Tags         analytics
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.ItemForecastDTO
// @Router       /api/inventory/forecast/critical [get]
func (h *AnalyticsHandler) CriticalItems(c *fiber.Ctx) error {
	shopID := GetShopID(c)
	if shopID == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "shop_id requerido"})
	}
	out, err := h.forecastUC.CriticalItems(c.Context(), shopID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
