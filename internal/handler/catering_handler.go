package handler

import (
	"net/http"
	"strconv"
	"time"

	"app/internal/config"
	"app/internal/middleware"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

type CateringHandler struct {
	uc *usecase.CateringUsecase
}

func NewCateringHandler(uc *usecase.CateringUsecase) *CateringHandler {
	return &CateringHandler{uc: uc}
}

type CateringSubmitRequest struct {
	ContactName  string `json:"contact_name"`
	ContactPhone string `json:"contact_phone"`
	ContactEmail string `json:"contact_email"`
	EventDate    string `json:"event_date"` // RFC3339
	GuestCount   int64  `json:"guest_count"`
	VenueAddress string `json:"venue_address"`
	Message      string `json:"message"`
}

type CateringStatusUpdateRequest struct {
	Status string `json:"status"`
}

func (h *CateringHandler) RegisterRoutes(e *echo.Echo, cfg config.Config) {
	e.POST("/catering", h.submit)

	admin := e.Group("/admin/catering")
	admin.Use(middleware.AuthJWT(cfg))
	admin.Use(middleware.AdminRoleGuard())

	admin.GET("", h.adminList)
	admin.PUT("/:id/status", h.adminUpdateStatus)
}

func (h *CateringHandler) submit(c echo.Context) error {
	var req CateringSubmitRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	eventDate, err := time.Parse(time.RFC3339, req.EventDate)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid event_date"})
	}

	out, err := h.uc.Submit(c.Request().Context(), usecase.CateringSubmitInput{
		ContactName:  req.ContactName,
		ContactPhone: req.ContactPhone,
		ContactEmail: req.ContactEmail,
		EventDate:    eventDate,
		GuestCount:   req.GuestCount,
		VenueAddress: req.VenueAddress,
		Message:      req.Message,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CateringHandler) adminList(c echo.Context) error {
	page := 1
	if v := c.QueryParam("page"); v != "" {
		p, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid page"})
		}
		page = p
	}

	limit := 50
	if v := c.QueryParam("limit"); v != "" {
		l, err := strconv.Atoi(v)
		if err != nil {
			return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid limit"})
		}
		limit = l
	}

	out, err := h.uc.AdminList(c.Request().Context(), repo.CateringListFilter{
		Page:   page,
		Limit:  limit,
		Status: c.QueryParam("status"),
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CateringHandler) adminUpdateStatus(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req CateringStatusUpdateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AdminUpdateStatus(c.Request().Context(), id, req.Status)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
