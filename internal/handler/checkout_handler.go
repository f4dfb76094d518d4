package handler

import (
	"net/http"

	"app/internal/middleware"
	"app/internal/usecase"

	"github.com/labstack/echo/v4"
)

// チェックアウトと注文照会
type CheckoutHandler struct {
	checkoutUC *usecase.CheckoutUsecase
	orderUC    *usecase.OrderUsecase
}

func NewCheckoutHandler(checkoutUC *usecase.CheckoutUsecase, orderUC *usecase.OrderUsecase) *CheckoutHandler {
	return &CheckoutHandler{checkoutUC: checkoutUC, orderUC: orderUC}
}

type CheckoutRequest struct {
	CustomerName    string `json:"customer_name"`
	CustomerPhone   string `json:"customer_phone"`
	CustomerAddress string `json:"customer_address"`
	ZoneID          int64  `json:"zone_id"`
	PaymentMethod   string `json:"payment_method"`
	Notes           string `json:"notes"`
}

func (h *CheckoutHandler) RegisterRoutes(e *echo.Echo, newKey func() string) {
	e.GET("/payment-methods", h.paymentMethods)

	g := e.Group("")
	g.Use(middleware.CartSession(newKey))
	g.POST("/checkout", h.checkout)
	g.GET("/orders", h.listMyOrders)
	g.GET("/orders/:number", h.orderDetail)
}

func (h *CheckoutHandler) paymentMethods(c echo.Context) error {
	methods, err := h.checkoutUC.ListPaymentMethods(c.Request().Context())
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(http.StatusOK, methods)
}

func (h *CheckoutHandler) checkout(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	var req CheckoutRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "invalid body"})
	}

	// ログイン済みなら注文にユーザーを紐づける（任意）
	var userID *int64
	if id, ok := getUserIDFromContext(c); ok {
		userID = &id
	}

	out, err := h.checkoutUC.Checkout(c.Request().Context(), key, userID, usecase.CheckoutInput{
		CustomerName:    req.CustomerName,
		CustomerPhone:   req.CustomerPhone,
		CustomerAddress: req.CustomerAddress,
		ZoneID:          req.ZoneID,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusCreated, out)
}

func (h *CheckoutHandler) listMyOrders(c echo.Context) error {
	key, ok := getCartKeyFromContext(c)
	if !ok {
		return c.JSON(http.StatusBadRequest, ErrorResponse{Error: "missing cart session"})
	}

	outs, total, err := h.orderUC.ListBySession(c.Request().Context(), key, 1, 50)
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, map[string]any{
		"items": outs,
		"total": total,
	})
}

func (h *CheckoutHandler) orderDetail(c echo.Context) error {
	out, err := h.orderUC.GetByNumber(c.Request().Context(), c.Param("number"))
	if err != nil {
		return writeError(c, err)
	}

	return c.JSON(http.StatusOK, out)
}
