package usecase_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"app/internal/cart"
	"app/internal/domain/model"
	repo "app/internal/repository"
	"app/internal/usecase"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks（衝突回避の命名）
// =====================

type CartMenuRepoMock struct{ mock.Mock }

func (m *CartMenuRepoMock) ListPublic(ctx context.Context, q repo.MenuItemListQuery) ([]model.MenuItem, int64, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) FindByID(ctx context.Context, id int64) (model.MenuItem, error) {
	args := m.Called(ctx, id)
	item, _ := args.Get(0).(model.MenuItem)
	return item, args.Error(1)
}

func (m *CartMenuRepoMock) Create(ctx context.Context, mi model.MenuItem) (model.MenuItem, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) Update(ctx context.Context, mi model.MenuItem) error {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) SetAvailability(ctx context.Context, id int64, available bool) error {
	panic("not used in CartUsecase tests")
}

func (m *CartMenuRepoMock) SoftDelete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

type CartZoneRepoMock struct{ mock.Mock }

func (m *CartZoneRepoMock) ListActive(ctx context.Context) ([]model.DeliveryZone, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartZoneRepoMock) FindByID(ctx context.Context, id int64) (model.DeliveryZone, error) {
	args := m.Called(ctx, id)
	z, _ := args.Get(0).(model.DeliveryZone)
	return z, args.Error(1)
}

func (m *CartZoneRepoMock) Create(ctx context.Context, z model.DeliveryZone) (model.DeliveryZone, error) {
	panic("not used in CartUsecase tests")
}

func (m *CartZoneRepoMock) Update(ctx context.Context, z model.DeliveryZone) error {
	panic("not used in CartUsecase tests")
}

func (m *CartZoneRepoMock) Delete(ctx context.Context, id int64) error {
	panic("not used in CartUsecase tests")
}

// Loadが一定回数失敗するStore（DB障害の再現用）
type failingLoadStore struct {
	cart.Store
	loadFailures int
}

func (s *failingLoadStore) Load(ctx context.Context, key string) ([]byte, error) {
	if s.loadFailures > 0 {
		s.loadFailures--
		return nil, errors.New("store unavailable")
	}
	return s.Store.Load(ctx, key)
}

// =====================
// Tests
// =====================

func TestCartUsecase_AddItem_SnapshotsMenuPrice(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	menuRepo := new(CartMenuRepoMock)
	zoneRepo := new(CartZoneRepoMock)
	uc := usecase.NewCartUsecase(store, menuRepo, zoneRepo)

	menuRepo.On("FindByID", ctx, int64(1)).Return(model.MenuItem{
		ID:          1,
		Name:        "Margherita",
		Price:       1200,
		IsAvailable: true,
	}, nil)

	out, err := uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 1, Quantity: 2})
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, "Margherita", out.Items[0].Name)
	assert.Equal(t, int64(1200), out.Items[0].Price)
	assert.Equal(t, int64(2400), out.Subtotal)
	assert.Equal(t, int64(2), out.ItemCount)

	menuRepo.AssertExpectations(t)
}

func TestCartUsecase_AddItem_UnavailableItemRejected(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	menuRepo := new(CartMenuRepoMock)
	uc := usecase.NewCartUsecase(store, menuRepo, new(CartZoneRepoMock))

	menuRepo.On("FindByID", ctx, int64(2)).Return(model.MenuItem{
		ID:          2,
		IsAvailable: false,
	}, nil)

	_, err := uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 2, Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_AddItem_UnknownItemRejected(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	menuRepo := new(CartMenuRepoMock)
	uc := usecase.NewCartUsecase(store, menuRepo, new(CartZoneRepoMock))

	menuRepo.On("FindByID", ctx, int64(404)).Return(model.MenuItem{}, repo.ErrNotFound)

	_, err := uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 404, Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}

func TestCartUsecase_SetQuantity_ClampsThroughToContainer(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	menuRepo := new(CartMenuRepoMock)
	uc := usecase.NewCartUsecase(store, menuRepo, new(CartZoneRepoMock))

	menuRepo.On("FindByID", ctx, int64(1)).Return(model.MenuItem{
		ID: 1, Name: "Cola", Price: 300, IsAvailable: true,
	}, nil)

	_, err := uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 1, Quantity: 3})
	assert.NoError(t, err)

	out, err := uc.SetQuantity(ctx, "s1", 1, -4)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), out.Items[0].Quantity)
}

func TestCartUsecase_RemoveItem_NonexistentIsSilent(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	uc := usecase.NewCartUsecase(store, new(CartMenuRepoMock), new(CartZoneRepoMock))

	out, err := uc.RemoveItem(ctx, "s1", 12345)
	assert.NoError(t, err)
	assert.Empty(t, out.Items)
}

func TestCartUsecase_SelectZone_AppliesFee(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	menuRepo := new(CartMenuRepoMock)
	zoneRepo := new(CartZoneRepoMock)
	uc := usecase.NewCartUsecase(store, menuRepo, zoneRepo)

	menuRepo.On("FindByID", ctx, int64(1)).Return(model.MenuItem{
		ID: 1, Name: "Margherita", Price: 1000, IsAvailable: true,
	}, nil)
	zoneRepo.On("FindByID", ctx, int64(5)).Return(model.DeliveryZone{
		ID: 5, Name: "Downtown", Fee: 200, IsActive: true,
	}, nil)

	_, err := uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 1, Quantity: 2})
	assert.NoError(t, err)

	out, err := uc.SelectZone(ctx, "s1", 5)
	assert.NoError(t, err)
	assert.Equal(t, int64(200), out.DeliveryFee)
	assert.Equal(t, int64(2200), out.Total)
}

func TestCartUsecase_StoreFailureDoesNotWipeSavedCart(t *testing.T) {
	ctx := context.Background()
	mem := cart.NewMemoryStore()
	store := &failingLoadStore{Store: mem}

	menuRepo := new(CartMenuRepoMock)
	uc := usecase.NewCartUsecase(store, menuRepo, new(CartZoneRepoMock))

	menuRepo.On("FindByID", ctx, int64(1)).Return(model.MenuItem{
		ID: 1, Name: "Margherita", Price: 1000, IsAvailable: true,
	}, nil)
	menuRepo.On("FindByID", ctx, int64(2)).Return(model.MenuItem{
		ID: 2, Name: "Cola", Price: 300, IsAvailable: true,
	}, nil)

	_, err := uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 1, Quantity: 3})
	assert.NoError(t, err)

	// Store障害中の追加は500で弾く（空カートで上書きしない）
	store.loadFailures = 1
	_, err = uc.AddItem(ctx, "s1", usecase.AddCartItemInput{MenuItemID: 2, Quantity: 1})
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusInternalServerError, he.Status)

	// 障害が収まれば保存分はそのまま残っている
	out, err := uc.GetCart(ctx, "s1")
	assert.NoError(t, err)
	assert.Len(t, out.Items, 1)
	assert.Equal(t, int64(1), out.Items[0].MenuItemID)
	assert.Equal(t, int64(3), out.Items[0].Quantity)
}

func TestCartUsecase_SelectZone_InactiveZoneRejected(t *testing.T) {
	ctx := context.Background()
	store := cart.NewMemoryStore()

	zoneRepo := new(CartZoneRepoMock)
	uc := usecase.NewCartUsecase(store, new(CartMenuRepoMock), zoneRepo)

	zoneRepo.On("FindByID", ctx, int64(9)).Return(model.DeliveryZone{
		ID: 9, IsActive: false,
	}, nil)

	_, err := uc.SelectZone(ctx, "s1", 9)
	he, ok := usecase.AsHTTPError(err)
	assert.True(t, ok)
	assert.Equal(t, http.StatusBadRequest, he.Status)
}
