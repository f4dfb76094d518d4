package handler

import (
	"net/http"
	"strconv"

	"app/internal/config"
	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type DeliveryZoneHandler struct {
	uc *usecase.DeliveryZoneUsecase
}

func NewDeliveryZoneHandler(uc *usecase.DeliveryZoneUsecase) *DeliveryZoneHandler {
	return &DeliveryZoneHandler{uc: uc}
}

type DeliveryZoneRequest struct {
	Name          string `json:"name"`
	Fee           int64  `json:"fee"`
	EstimatedTime string `json:"estimated_time"`
	IsActive      bool   `json:"is_active"`
}

func (h *DeliveryZoneHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.GET("/delivery-zones", h.list)

	admin := e.Group("/admin/delivery-zones")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.POST("", h.create)
	admin.PUT("/:id", h.update)
	admin.DELETE("/:id", h.delete)
}

func (h *DeliveryZoneHandler) list(c echo.Context) error {
	zones, err := h.uc.ListActive(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, zones)
}

func (h *DeliveryZoneHandler) create(c echo.Context) error {
	var req DeliveryZoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Create(c.Request().Context(), usecase.DeliveryZoneInput{
		Name:          req.Name,
		Fee:           req.Fee,
		EstimatedTime: req.EstimatedTime,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *DeliveryZoneHandler) update(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req DeliveryZoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.Update(c.Request().Context(), id, usecase.DeliveryZoneInput{
		Name:          req.Name,
		Fee:           req.Fee,
		EstimatedTime: req.EstimatedTime,
		IsActive:      req.IsActive,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *DeliveryZoneHandler) delete(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	if err := h.uc.Delete(c.Request().Context(), id); err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, SuccessResponse{Message: "deleted"})
}
