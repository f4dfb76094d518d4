package handler

import (
	"net/http"
	"strconv"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// /cartのHTTP
type CartHandler struct {
	uc *usecase.CartUsecase
}

// DI
func NewCartHandler(uc *usecase.CartUsecase) *CartHandler {
	return &CartHandler{uc: uc}
}

type AddCartItemRequest struct {
	MenuItemID int64  `json:"menu_item_id"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes"`
}

type UpdateCartItemRequest struct {
	Quantity *int64  `json:"quantity"`
	Notes    *string `json:"notes"`
}

type SelectZoneRequest struct {
	ZoneID int64 `json:"zone_id"`
}

func (h *CartHandler) RegisterRoutes(e *echo.Echo, newKey func() string) {
	g := e.Group("/cart")
	g.Use(middleware.CartSession(newKey))

	g.GET("", h.getCart)
	g.POST("/items", h.addItem)
	g.PATCH("/items/:id", h.patchItem)
	g.DELETE("/items/:id", h.deleteItem)
	g.DELETE("", h.clear)
	g.PUT("/zone", h.selectZone)
}

func (h *CartHandler) getCart(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	out, err := h.uc.GetCart(c.Request().Context(), key)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) addItem(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	var req AddCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.AddItem(c.Request().Context(), key, usecase.AddCartItemInput{
		MenuItemID: req.MenuItemID,
		Quantity:   req.Quantity,
		Notes:      req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

// quantityとnotesはそれぞれ任意。来たものだけ更新する。
func (h *CartHandler) patchItem(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	var req UpdateCartItemRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}
	if req.Quantity == nil && req.Notes == nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "nothing to update"})
	}

	ctx := c.Request().Context()
	var out usecase.CartResponse

	if req.Quantity != nil {
		out, err = h.uc.SetQuantity(ctx, key, itemID, *req.Quantity)
		if err != nil {
			return writeError(c, err)
		}
	}
	if req.Notes != nil {
		out, err = h.uc.SetNotes(ctx, key, itemID, *req.Notes)
		if err != nil {
			return writeError(c, err)
		}
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) deleteItem(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	itemID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid id"})
	}

	out, err := h.uc.RemoveItem(c.Request().Context(), key, itemID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) clear(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	out, err := h.uc.Clear(c.Request().Context(), key)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}

func (h *CartHandler) selectZone(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	var req SelectZoneRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	out, err := h.uc.SelectZone(c.Request().Context(), key, req.ZoneID)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
