package usecase

import (
	"context"
	"net/http"
	"strings"
	"time"

	"app/internal/cart"
	"app/internal/domain/model"
	"app/internal/infra/mq"
	repo "app/internal/repository"
)

// CheckoutUsecase はカートから注文スナップショットを作る。
// 注文と明細の保存が確定してから初めてカートを空にする。
// 保存に失敗したらカートはそのまま残り、呼び出し側は再試行できる。
type CheckoutUsecase struct {
	tx          repo.TransactionManager
	store       cart.Store
	zoneRepo    repo.DeliveryZoneRepository
	paymentRepo repo.PaymentMethodRepository
	idGen       IDGenerator
	clock       Clock
	publisher   OrderEventPublisher
	recent      *RecentOrders
}

func NewCheckoutUsecase(
	tx repo.TransactionManager,
	store cart.Store,
	zoneRepo repo.DeliveryZoneRepository,
	paymentRepo repo.PaymentMethodRepository,
	idGen IDGenerator,
	clock Clock,
	publisher OrderEventPublisher,
	recent *RecentOrders,
) *CheckoutUsecase {
	return &CheckoutUsecase{
		tx:          tx,
		store:       store,
		zoneRepo:    zoneRepo,
		paymentRepo: paymentRepo,
		idGen:       idGen,
		clock:       clock,
		publisher:   publisher,
		recent:      recent,
	}
}

type CheckoutInput struct {
	CustomerName    string
	CustomerPhone   string
	CustomerAddress string
	ZoneID          int64
	PaymentMethod   string // PaymentMethod.Code
	Notes           string
}

type OrderItemOutput struct {
	MenuItemID int64  `json:"menu_item_id"`
	Name       string `json:"name"`
	Price      int64  `json:"price"`
	Quantity   int64  `json:"quantity"`
	Notes      string `json:"notes,omitempty"`
}

type OrderOutput struct {
	ID              int64             `json:"id"`
	Number          string            `json:"number"`
	CustomerName    string            `json:"customer_name"`
	CustomerPhone   string            `json:"customer_phone"`
	CustomerAddress string            `json:"customer_address"`
	ZoneName        string            `json:"zone_name"`
	EstimatedTime   string            `json:"estimated_time,omitempty"`
	PaymentMethod   string            `json:"payment_method"`
	Subtotal        int64             `json:"subtotal"`
	DeliveryFee     int64             `json:"delivery_fee"`
	Total           int64             `json:"total"`
	Status          string            `json:"status"`
	PaymentStatus   string            `json:"payment_status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedAt       time.Time         `json:"created_at"`
	Items           []OrderItemOutput `json:"items"`
}

// 支払い方法の一覧（チェックアウト画面用）
func (u *CheckoutUsecase) ListPaymentMethods(ctx context.Context) ([]model.PaymentMethod, error) {
	methods, err := u.paymentRepo.ListActive(ctx)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return methods, nil
}

func (u *CheckoutUsecase) Checkout(ctx context.Context, sessionKey string, userID *int64, in CheckoutInput) (OrderOutput, error) {
	if sessionKey == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "missing cart session")
	}

	// 連絡先はプレースホルダで補完せず、足りなければ弾く
	if strings.TrimSpace(in.CustomerName) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer name is required")
	}
	if strings.TrimSpace(in.CustomerPhone) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer phone is required")
	}
	if strings.TrimSpace(in.CustomerAddress) == "" {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "customer address is required")
	}
	if in.ZoneID <= 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid zone_id")
	}

	zone, err := u.zoneRepo.FindByID(ctx, in.ZoneID)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid zone_id")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !zone.IsActive {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid zone_id")
	}

	method, err := u.paymentRepo.FindByCode(ctx, in.PaymentMethod)
	if err == repo.ErrNotFound {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if !method.IsActive {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "invalid payment_method")
	}

	// スナップショットはカートを消す前に確定させる。
	// カートが読めない状態で進めると空注文か保存分の消失になるので中断。
	c, err := cart.New(ctx, u.store, sessionKey)
	if err != nil {
		return OrderOutput{}, NewHTTPError(http.StatusInternalServerError, "cart load failed")
	}
	items, subtotal, _, _ := c.Snapshot()
	if len(items) == 0 {
		return OrderOutput{}, NewHTTPError(http.StatusBadRequest, "cart empty")
	}

	// 配達料はゾーンマスタの現在値を正とする
	deliveryFee := zone.Fee
	total := subtotal + deliveryFee

	now := u.clock.Now()
	number := u.idGen.NewID()

	order := model.Order{
		Number:            number,
		UserID:            userID,
		SessionKey:        sessionKey,
		CustomerName:      strings.TrimSpace(in.CustomerName),
		CustomerPhone:     strings.TrimSpace(in.CustomerPhone),
		CustomerAddress:   strings.TrimSpace(in.CustomerAddress),
		ZoneID:            zone.ID,
		ZoneName:          zone.Name,
		ZoneEstimatedTime: zone.EstimatedTime,
		PaymentMethodCode: method.Code,
		PaymentMethodName: method.Name,
		Subtotal:          subtotal,
		DeliveryFee:       deliveryFee,
		Total:             total,
		Status:            model.OrderStatusPending,
		PaymentStatus:     model.PaymentStatusPending,
		Notes:             in.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	orderItems := make([]model.OrderItem, 0, len(items))
	for _, it := range items {
		orderItems = append(orderItems, model.OrderItem{
			MenuItemID:        it.MenuItemID,
			NameSnapshot:      it.Name,
			UnitPriceSnapshot: it.UnitPrice,
			Quantity:          it.Quantity,
			Notes:             it.Notes,
			CreatedAt:         now,
		})
	}

	// 2段階: まず永続化。失敗したらカートには触らない。
	var orderID int64
	err = u.tx.WithinTx(ctx, func(r repo.TxRepos) error {
		id, err := r.Orders().Create(ctx, order)
		if err != nil {
			return err
		}
		if err := r.OrderItems().CreateBulk(ctx, id, orderItems); err != nil {
			return err
		}
		orderID = id
		return nil
	})
	if err != nil {
		return OrderOutput{}, ErrOrderSubmissionFailed
	}

	// 保存が確定したのでカートを空にする。
	// ここで失敗しても注文は成立している（次のリクエストで空にされる）。
	_ = c.Clear(ctx)

	order.ID = orderID
	out := toOrderOutput(order, orderItems)

	u.recent.Put(out)

	// 通知は注文の成立と切り離す（失敗しても注文は返す）
	_ = u.publisher.PublishOrderEvent(ctx, mq.OrderEvent{
		Type:        "created",
		OrderNumber: order.Number,
		Status:      string(order.Status),
		Total:       order.Total,
		OccurredAt:  now,
	})

	return out, nil
}

func toOrderOutput(o model.Order, items []model.OrderItem) OrderOutput {
	outItems := make([]OrderItemOutput, 0, len(items))
	for _, it := range items {
		outItems = append(outItems, OrderItemOutput{
			MenuItemID: it.MenuItemID,
			Name:       it.NameSnapshot,
			Price:      it.UnitPriceSnapshot,
			Quantity:   it.Quantity,
			Notes:      it.Notes,
		})
	}

	return OrderOutput{
		ID:              o.ID,
		Number:          o.Number,
		CustomerName:    o.CustomerName,
		CustomerPhone:   o.CustomerPhone,
		CustomerAddress: o.CustomerAddress,
		ZoneName:        o.ZoneName,
		EstimatedTime:   o.ZoneEstimatedTime,
		PaymentMethod:   o.PaymentMethodName,
		Subtotal:        o.Subtotal,
		DeliveryFee:     o.DeliveryFee,
		Total:           o.Total,
		Status:          string(o.Status),
		PaymentStatus:   string(o.PaymentStatus),
		Notes:           o.Notes,
		CreatedAt:       o.CreatedAt,
		Items:           outItems,
	}
}
