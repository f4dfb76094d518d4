package usecase_test

import (
	"context"
	"net/http"
	"testing"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestGetByNumber_CacheHitSkipsDB(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	recent := usecase.NewRecentOrders(8)

	recent.Put(usecase.OrderOutput{Number: "ord-1", Status: "PENDING", Total: 2200})

	uc := usecase.NewOrderUsecase(orders, items, recent)

	out, err := uc.GetByNumber(ctx, "ord-1")
	assert.NoError(t, err)
	assert.Equal(t, int64(2200), out.Total)

	// キャッシュヒット時はDBに行かない
	orders.AssertNotCalled(t, "FindByNumber", mock.Anything, mock.Anything)
}

func TestGetByNumber_FallsBackToDB(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)

	orders.On("FindByNumber", ctx, "ord-2").Return(model.Order{
		ID:     20,
		Number: "ord-2",
		Status: model.OrderStatusConfirmed,
		Total:  1500,
	}, nil)
	items.On("ListByOrderID", ctx, int64(20)).Return([]model.OrderItem{
		{MenuItemID: 1, NameSnapshot: "Margherita", UnitPriceSnapshot: 1000, Quantity: 1},
	}, nil)

	uc := usecase.NewOrderUsecase(orders, items, usecase.NewRecentOrders(8))

	out, err := uc.GetByNumber(ctx, "ord-2")
	assert.NoError(t, err)
	assert.Equal(t, "CONFIRMED", out.Status)
	assert.Len(t, out.Items, 1)

	orders.AssertExpectations(t)
	items.AssertExpectations(t)
}

func TestGetByNumber_NotFound(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	orders.On("FindByNumber", ctx, "nope").Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewOrderUsecase(orders, new(OrderItemRepoMock), usecase.NewRecentOrders(8))

	_, err := uc.GetByNumber(ctx, "nope")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}
