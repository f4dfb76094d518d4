package usecase

import "sync"

// 直近に作った注文の小さなキャッシュ。
// GetByNumber がまずここを見て、無ければDBへ落ちる。
type RecentOrders struct {
	mu    sync.Mutex
	cap   int
	order []string // 追加順（古いものから追い出す）
	byNum map[string]OrderOutput
}

func NewRecentOrders(capacity int) *RecentOrders {
	if capacity <= 0 {
		capacity = 128
	}
	return &RecentOrders{
		cap:   capacity,
		byNum: map[string]OrderOutput{},
	}
}

func (c *RecentOrders) Put(out OrderOutput) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if _, ok := c.byNum[out.Number]; !ok {
		c.order = append(c.order, out.Number)
	}
	c.byNum[out.Number] = out

	for len(c.order) > c.cap {
		oldest := c.order[0]
		c.order = c.order[1:]
		delete(c.byNum, oldest)
	}
}

func (c *RecentOrders) Get(number string) (OrderOutput, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	out, ok := c.byNum[number]
	return out, ok
}

// ステータス変更後に古い値を返さないように消す
func (c *RecentOrders) Invalidate(number string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.byNum, number)

	for i, n := range c.order {
		if n == number {
			c.order = append(c.order[:i], c.order[i+1:]...)
			break
		}
	}
}
