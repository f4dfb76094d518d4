package usecase_test

import (
	"context"
	"net/http"
	"testing"
	"time"

	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func pendingOrder() model.Order {
	return model.Order{
		ID:            10,
		Number:        "ord-10",
		CustomerName:  "Taro Yamada",
		Subtotal:      2000,
		DeliveryFee:   200,
		Total:         2200,
		Status:        model.OrderStatusPending,
		PaymentStatus: model.PaymentStatusPending,
	}
}

func TestAdminUpdateStatus_ValidTransitionLogsHistory(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 8, 30, 15, 0, 0, 0, time.UTC)

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	logs := new(StatusLogRepoMock)
	pub := &capturePublisher{}
	recent := usecase.NewRecentOrders(8)

	orders.On("FindByID", ctx, int64(10)).Return(pendingOrder(), nil)
	orders.On("UpdateStatus", ctx, int64(10), model.OrderStatusConfirmed).Return(nil)
	logs.On("Append", ctx, mock.MatchedBy(func(l model.OrderStatusLog) bool {
		return l.OrderID == 10 &&
			l.FromStatus == model.OrderStatusPending &&
			l.ToStatus == model.OrderStatusConfirmed &&
			l.ChangedBy == 99
	})).Return(nil)
	items.On("ListByOrderID", ctx, int64(10)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(
		&txManagerStub{repos: txReposStub{orders: orders, items: items, logs: logs}},
		fixedClock{t: now}, pub, recent,
	)

	// 古いキャッシュが残っている状態から
	recent.Put(usecase.OrderOutput{Number: "ord-10", Status: "PENDING"})

	out, err := uc.UpdateStatus(ctx, 99, 10, "CONFIRMED")
	assert.NoError(t, err)
	assert.Equal(t, "CONFIRMED", out.Status)

	// キャッシュは無効化される
	_, hit := recent.Get("ord-10")
	assert.False(t, hit)

	assert.Len(t, pub.events, 1)
	assert.Equal(t, "status_changed", pub.events[0].Type)
	assert.Equal(t, "CONFIRMED", pub.events[0].Status)

	orders.AssertExpectations(t)
	logs.AssertExpectations(t)
}

func TestAdminUpdateStatus_InvalidTransitionIsConflict(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	pub := &capturePublisher{}

	orders.On("FindByID", ctx, int64(10)).Return(pendingOrder(), nil)

	uc := usecase.NewAdminOrderUsecase(
		&txManagerStub{repos: txReposStub{orders: orders, items: new(OrderItemRepoMock), logs: new(StatusLogRepoMock)}},
		fixedClock{t: time.Now()}, pub, usecase.NewRecentOrders(8),
	)

	// PENDINGから配達完了へは飛べない
	_, err := uc.UpdateStatus(ctx, 99, 10, "DELIVERED")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusConflict, he.Status)

	// 弾いたときは何も書かないし何も飛ばさない
	orders.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
	assert.Empty(t, pub.events)
}

func TestAdminUpdateStatus_UnknownStatusIsBadRequest(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewAdminOrderUsecase(
		&txManagerStub{repos: txReposStub{}},
		fixedClock{t: time.Now()}, &capturePublisher{}, usecase.NewRecentOrders(8),
	)

	_, err := uc.UpdateStatus(ctx, 99, 10, "SHIPPED")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestAdminUpdateStatus_NotFound(t *testing.T) {
	ctx := context.Background()

	orders := new(OrderRepoMock)
	orders.On("FindByID", ctx, int64(404)).Return(model.Order{}, repo.ErrNotFound)

	uc := usecase.NewAdminOrderUsecase(
		&txManagerStub{repos: txReposStub{orders: orders}},
		fixedClock{t: time.Now()}, &capturePublisher{}, usecase.NewRecentOrders(8),
	)

	_, err := uc.UpdateStatus(ctx, 99, 404, "CONFIRMED")
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusNotFound, he.Status)
}

func TestAdminUpdatePaymentStatus_IndependentOfOrderStatus(t *testing.T) {
	ctx := context.Background()

	// 配達完了後でも支払いステータスは別軸で動かせる
	o := pendingOrder()
	o.Status = model.OrderStatusDelivered

	orders := new(OrderRepoMock)
	items := new(OrderItemRepoMock)
	pub := &capturePublisher{}

	orders.On("FindByID", ctx, int64(10)).Return(o, nil)
	orders.On("UpdatePaymentStatus", ctx, int64(10), model.PaymentStatusFailed).Return(nil)
	items.On("ListByOrderID", ctx, int64(10)).Return([]model.OrderItem{}, nil)

	uc := usecase.NewAdminOrderUsecase(
		&txManagerStub{repos: txReposStub{orders: orders, items: items}},
		fixedClock{t: time.Now()}, pub, usecase.NewRecentOrders(8),
	)

	out, err := uc.UpdatePaymentStatus(ctx, 99, 10, "FAILED")
	assert.NoError(t, err)
	assert.Equal(t, "FAILED", out.PaymentStatus)
	assert.Equal(t, "DELIVERED", out.Status)

	assert.Len(t, pub.events, 1)
	assert.Equal(t, "payment_status_changed", pub.events[0].Type)
	assert.Equal(t, "FAILED", pub.events[0].PaymentStatus)

	orders.AssertExpectations(t)
}

func TestAdminList_InvalidFilterRejected(t *testing.T) {
	ctx := context.Background()

	uc := usecase.NewAdminOrderUsecase(
		&txManagerStub{repos: txReposStub{}},
		fixedClock{t: time.Now()}, &capturePublisher{}, usecase.NewRecentOrders(8),
	)

	_, _, err := uc.List(ctx, repo.AdminOrderListFilter{Status: "shipped"})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)

	_, _, err = uc.List(ctx, repo.AdminOrderListFilter{PaymentStatus: "REFUNDED"})
	he, ok = usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
