package usecase

import (
	"context"
	"errors"
	"net/http"

	"app/internal/domain/model"
	"app/internal/infra/mq"
	repo "app/internal/repository"
)

// AdminOrderUsecase は管理者の注文操作。
// ステータス遷移は遷移表（model.CanTransition）を必ず通す。
type AdminOrderUsecase struct {
	tx        repo.TransactionManager
	clock     Clock
	publisher OrderEventPublisher
	recent    *RecentOrders
}

func NewAdminOrderUsecase(
	tx repo.TransactionManager,
	clock Clock,
	publisher OrderEventPublisher,
	recent *RecentOrders,
) *AdminOrderUsecase {
	return &AdminOrderUsecase{
		tx:        tx,
		clock:     clock,
		publisher: publisher,
		recent:    recent,
	}
}

func (u *AdminOrderUsecase) List(ctx context.Context, f repo.AdminOrderListFilter) ([]OrderOutput, int64, error) {
	if f.Status != "" {
		if _, err := model.ParseOrderStatus(f.Status); err != nil {
			return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid status")
		}
	}
	if f.PaymentStatus != "" {
		if _, err := model.ParsePaymentStatus(f.PaymentStatus); err != nil {
			return []OrderOutput{}, 0, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
		}
	}

	var outs []OrderOutput
	var total int64

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		orders, n, err := r.Orders().ListAdmin(ctx, f)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}
		total = n

		outs = make([]OrderOutput, 0, len(orders))
		for _, o := range orders {
			items, err := r.OrderItems().ListByOrderID(ctx, o.ID)
			if err != nil {
				return NewHTTPError(http.StatusInternalServerError, "db error")
			}
			outs = append(outs, toOrderOutput(o, items))
		}
		return nil
	})
	if err != nil {
		return []OrderOutput{}, 0, err
	}

	return outs, total, nil
}

func (u *AdminOrderUsecase) GetDetail(ctx context.Context, orderID int64) (OrderOutput, []model.OrderStatusLog, error) {
	if orderID <= 0 {
		return OrderOutput{}, nil, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	var out OrderOutput
	var logs []model.OrderStatusLog

	err := u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		logs, err = r.StatusLogs().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, nil, err
	}

	return out, logs, nil
}

// UpdateStatus は遷移表で検証してからステータスを進め、履歴を残す。
// 不正な遷移は409で弾く（黙って上書きしない）。
func (u *AdminOrderUsecase) UpdateStatus(ctx context.Context, adminID int64, orderID int64, statusStr string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	to, err := model.ParseOrderStatus(statusStr)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid status")
	}

	var out OrderOutput
	var number string

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		from := o.Status
		if err := o.Transition(to); err != nil {
			if errors.Is(err, model.ErrInvalidTransition) {
				return NewHTTPError(http.StatusConflict, "invalid status transition")
			}
			return NewHTTPError(http.StatusBadRequest, "invalid status")
		}

		if err := r.Orders().UpdateStatus(ctx, orderID, to); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.StatusLogs().Append(ctx, model.OrderStatusLog{
			OrderID:    orderID,
			FromStatus: from,
			ToStatus:   to,
			ChangedBy:  adminID,
			CreatedAt:  u.clock.Now(),
		}); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		number = o.Number
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	// キャッシュの古い値を消してから通知
	u.recent.Invalidate(number)
	_ = u.publisher.PublishOrderEvent(ctx, mq.OrderEvent{
		Type:        "status_changed",
		OrderNumber: number,
		Status:      string(to),
		OccurredAt:  u.clock.Now(),
	})

	return out, nil
}

// UpdatePaymentStatus は支払いステータスを更新する。
// 注文ステータスとの整合は意図的に強制しない（運用ポリシーに委ねる）。
func (u *AdminOrderUsecase) UpdatePaymentStatus(ctx context.Context, adminID int64, orderID int64, statusStr string) (OrderOutput, error) {
	if orderID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid id")
	}

	ps, err := model.ParsePaymentStatus(statusStr)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_status")
	}

	var out OrderOutput
	var number string

	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		o, err := r.Orders().FindByID(ctx, orderID)
		if err == repo.ErrNotFound {
			return NewHTTPError(http.StatusNotFound, "not found")
		}
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		if err := r.Orders().UpdatePaymentStatus(ctx, orderID, ps); err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		o.PaymentStatus = ps

		items, err := r.OrderItems().ListByOrderID(ctx, orderID)
		if err != nil {
			return NewHTTPError(http.StatusInternalServerError, "db error")
		}

		number = o.Number
		out = toOrderOutput(o, items)
		return nil
	})
	if err != nil {
		return OrderOutput{}, err
	}

	u.recent.Invalidate(number)
	_ = u.publisher.PublishOrderEvent(ctx, mq.OrderEvent{
		Type:          "payment_status_changed",
		OrderNumber:   number,
		Status:        out.Status,
		PaymentStatus: string(ps),
		OccurredAt:    u.clock.Now(),
	})

	return out, nil
}
