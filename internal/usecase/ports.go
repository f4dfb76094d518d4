package usecase

import (
	"context"
	"time"

	"app/internal/infra/mq"
)

// UUID 等のIDを作る約束
type IDGenerator interface {
	NewID() string
}

// 現在の時間
type Clock interface {
	Now() time.Time
}

// 注文イベントの配信先（RabbitMQ）。未設定の環境ではNoopを挿す。
type OrderEventPublisher interface {
	PublishOrderEvent(ctx context.Context, ev mq.OrderEvent) error
}

type NoopOrderEventPublisher struct{}

func (NoopOrderEventPublisher) PublishOrderEvent(ctx context.Context, ev mq.OrderEvent) error {
	return nil
}
