package model_test

import (
	"testing"

	"app/internal/domain/model"

	"github.com/stretchr/testify/assert"
)

func TestTransition_HappyPath(t *testing.T) {
	o := model.Order{Status: model.OrderStatusPending}

	path := []model.OrderStatus{
		model.OrderStatusConfirmed,
		model.OrderStatusPreparing,
		model.OrderStatusDelivering,
		model.OrderStatusDelivered,
		model.OrderStatusCompleted,
	}

	for _, next := range path {
		err := o.Transition(next)
		assert.NoError(t, err)
		assert.Equal(t, next, o.Status)
	}
}

func TestTransition_SkippingStatesIsRejected(t *testing.T) {
	o := model.Order{Status: model.OrderStatusPending}

	err := o.Transition(model.OrderStatusDelivered)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
	// 失敗しても状態は変わらない
	assert.Equal(t, model.OrderStatusPending, o.Status)
}

func TestTransition_CancelAllowedBeforeDelivered(t *testing.T) {
	for _, from := range []model.OrderStatus{
		model.OrderStatusPending,
		model.OrderStatusConfirmed,
		model.OrderStatusPreparing,
		model.OrderStatusDelivering,
	} {
		o := model.Order{Status: from}
		err := o.Transition(model.OrderStatusCancelled)
		assert.NoError(t, err, "cancel from %s", from)
	}

	// 配達完了後はキャンセルできない
	o := model.Order{Status: model.OrderStatusDelivered}
	err := o.Transition(model.OrderStatusCancelled)
	assert.ErrorIs(t, err, model.ErrInvalidTransition)
}

func TestTransition_TerminalStatesHaveNoExit(t *testing.T) {
	for _, terminal := range []model.OrderStatus{
		model.OrderStatusCompleted,
		model.OrderStatusCancelled,
	} {
		assert.True(t, terminal.IsTerminal())

		o := model.Order{Status: terminal}
		for _, to := range []model.OrderStatus{
			model.OrderStatusPending,
			model.OrderStatusConfirmed,
			model.OrderStatusCancelled,
			model.OrderStatusCompleted,
		} {
			err := o.Transition(to)
			assert.ErrorIs(t, err, model.ErrInvalidTransition, "%s -> %s", terminal, to)
		}
	}
}

func TestTransition_UnknownStatus(t *testing.T) {
	o := model.Order{Status: model.OrderStatusPending}
	err := o.Transition(model.OrderStatus("SHIPPED"))
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestParseOrderStatus(t *testing.T) {
	st, err := model.ParseOrderStatus("PREPARING")
	assert.NoError(t, err)
	assert.Equal(t, model.OrderStatusPreparing, st)

	_, err = model.ParseOrderStatus("preparing")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)

	_, err = model.ParseOrderStatus("")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}

func TestParsePaymentStatus(t *testing.T) {
	ps, err := model.ParsePaymentStatus("FAILED")
	assert.NoError(t, err)
	assert.Equal(t, model.PaymentStatusFailed, ps)

	_, err = model.ParsePaymentStatus("REFUNDED")
	assert.ErrorIs(t, err, model.ErrUnknownStatus)
}
