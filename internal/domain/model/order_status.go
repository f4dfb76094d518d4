package model

import "errors"

type OrderStatus string

const (
	OrderStatusPending    OrderStatus = "PENDING"
	OrderStatusConfirmed  OrderStatus = "CONFIRMED"
	OrderStatusPreparing  OrderStatus = "PREPARING"
	OrderStatusDelivering OrderStatus = "DELIVERING"
	OrderStatusDelivered  OrderStatus = "DELIVERED"
	OrderStatusCompleted  OrderStatus = "COMPLETED"
	OrderStatusCancelled  OrderStatus = "CANCELLED"
)

type PaymentStatus string

const (
	PaymentStatusPending   PaymentStatus = "PENDING"
	PaymentStatusCompleted PaymentStatus = "COMPLETED"
	PaymentStatusFailed    PaymentStatus = "FAILED"
	PaymentStatusCancelled PaymentStatus = "CANCELLED"
)

// 不正な遷移
var ErrInvalidTransition = errors.New("invalid status transition")

// 未知のステータス文字列
var ErrUnknownStatus = errors.New("unknown status")

// 遷移表。COMPLETED / CANCELLED からは出られない。
var orderStatusNext = map[OrderStatus][]OrderStatus{
	OrderStatusPending:    {OrderStatusConfirmed, OrderStatusCancelled},
	OrderStatusConfirmed:  {OrderStatusPreparing, OrderStatusCancelled},
	OrderStatusPreparing:  {OrderStatusDelivering, OrderStatusCancelled},
	OrderStatusDelivering: {OrderStatusDelivered, OrderStatusCancelled},
	OrderStatusDelivered:  {OrderStatusCompleted},
	OrderStatusCompleted:  {},
	OrderStatusCancelled:  {},
}

// ステータス文字列の検証
func ParseOrderStatus(s string) (OrderStatus, error) {
	st := OrderStatus(s)
	if _, ok := orderStatusNext[st]; !ok {
		return "", ErrUnknownStatus
	}
	return st, nil
}

// from から to へ遷移してよいか遷移表で判定
func CanTransition(from OrderStatus, to OrderStatus) bool {
	for _, next := range orderStatusNext[from] {
		if next == to {
			return true
		}
	}
	return false
}

// 遷移表に従ってステータスを進める。違反は ErrInvalidTransition。
func (o *Order) Transition(to OrderStatus) error {
	if _, ok := orderStatusNext[to]; !ok {
		return ErrUnknownStatus
	}
	if !CanTransition(o.Status, to) {
		return ErrInvalidTransition
	}
	o.Status = to
	return nil
}

// 支払いステータスは注文ステータスと独立（整合ルールは運用側の判断）
func ParsePaymentStatus(s string) (PaymentStatus, error) {
	switch PaymentStatus(s) {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusFailed, PaymentStatusCancelled:
		return PaymentStatus(s), nil
	}
	return "", ErrUnknownStatus
}

// 終端状態かどうか
func (s OrderStatus) IsTerminal() bool {
	return len(orderStatusNext[s]) == 0
}
