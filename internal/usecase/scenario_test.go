package usecase_test

import (
	"context"
	"sort"
	"testing"

	"inventory/internal/domain/model"
	"inventory/internal/loader"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

// =====================
// インメモリのストア（シナリオ検証用のフェイク）
// =====================

type memProductRepo struct {
	rows   map[int64]model.Product
	nextID int64
}

func newMemProductRepo() *memProductRepo {
	return &memProductRepo{rows: map[int64]model.Product{}, nextID: 1}
}

func (m *memProductRepo) List(_ context.Context, q repo.ListQuery) ([]model.Product, error) {
	ids := make([]int64, 0, len(m.rows))
	for id := range m.rows {
		ids = append(ids, id)
	}
	// 挿入順＝id昇順
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	out := []model.Product{}
	for _, id := range ids {
		p := m.rows[id]
		if q.Name != "" && p.Name != q.Name {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (m *memProductRepo) FindByID(_ context.Context, id int64, _ []string) (model.Product, error) {
	p, ok := m.rows[id]
	if !ok {
		return model.Product{}, repo.ErrNotFound
	}
	return p, nil
}

func (m *memProductRepo) Insert(_ context.Context, p model.Product) (model.Product, error) {
	p.ID = m.nextID
	m.nextID++
	m.rows[p.ID] = p
	return p, nil
}

func (m *memProductRepo) Update(_ context.Context, id int64, u repo.ProductUpdate) (int64, error) {
	p, ok := m.rows[id]
	if !ok {
		return 0, nil
	}
	if u.Name != nil {
		p.Name = *u.Name
	}
	if u.Price != nil {
		p.Price = *u.Price
	}
	if u.Quantity != nil {
		p.Quantity = *u.Quantity
	}
	if u.Supplier != nil {
		p.Supplier = *u.Supplier
	}
	if u.Image != nil {
		p.Image = u.Image
	}
	m.rows[id] = p
	return 1, nil
}

func (m *memProductRepo) Delete(_ context.Context, id int64) (int64, error) {
	if _, ok := m.rows[id]; !ok {
		return 0, nil
	}
	delete(m.rows, id)
	return 1, nil
}

func (m *memProductRepo) DeleteAll(_ context.Context) (int64, error) {
	n := int64(len(m.rows))
	m.rows = map[int64]model.Product{}
	return n, nil
}

type memAdjustRepo struct {
	rows []model.StockAdjustment
}

func (m *memAdjustRepo) Create(_ context.Context, adj model.StockAdjustment) error {
	adj.ID = int64(len(m.rows) + 1)
	m.rows = append(m.rows, adj)
	return nil
}

func (m *memAdjustRepo) ListByProduct(_ context.Context, productID int64) ([]model.StockAdjustment, error) {
	out := []model.StockAdjustment{}
	for _, adj := range m.rows {
		if adj.ProductID == productID {
			out = append(out, adj)
		}
	}
	return out, nil
}

// 登録→取得→販売→削除の一連の流れ
func TestScenario_JumpRope(t *testing.T) {
	ctx := context.Background()

	store := newMemProductRepo()
	adjustments := &memAdjustRepo{}
	productUC := usecase.NewProductUsecase(store, adjustments, loader.NewProductLoader(store))
	stockUC := usecase.NewStockUsecase(store, adjustments, new(OrderSenderMock))

	// 登録。最初の採番は1
	id, err := productUC.CreateProduct(ctx, usecase.CreateProductInput{
		Name:     "Jump Rope",
		Price:    decimal.NewFromFloat(13.99),
		Quantity: 33,
		Supplier: "Big 5 Sporting Goods",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)

	// 入れた値がそのまま返る
	p, err := productUC.GetProduct(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, "Jump Rope", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(13.99)))
	assert.Equal(t, int64(33), p.Quantity)
	assert.Equal(t, "Big 5 Sporting Goods", p.Supplier)
	assert.Nil(t, p.Image)

	// 1つ販売して32
	quantity, err := stockUC.RecordOneSale(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(32), quantity)

	// quantity以外のカラムは変わらない
	p, err = productUC.GetProduct(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, int64(32), p.Quantity)
	assert.Equal(t, "Jump Rope", p.Name)
	assert.True(t, p.Price.Equal(decimal.NewFromFloat(13.99)))
	assert.Equal(t, "Big 5 Sporting Goods", p.Supplier)

	// 履歴にも残っている
	history, err := productUC.ListAdjustments(ctx, id)
	assert.NoError(t, err)
	assert.Equal(t, 1, len(history))
	assert.Equal(t, int64(-1), history[0].Delta)

	// 削除後は空
	assert.NoError(t, productUC.DeleteProduct(ctx, id))
	_, err = productUC.GetProduct(ctx, id)
	assertErrContains(t, err, "not found")
}

// 採番は使い回されない
func TestScenario_IDsAreNeverReused(t *testing.T) {
	ctx := context.Background()

	store := newMemProductRepo()
	productUC := usecase.NewProductUsecase(store, &memAdjustRepo{}, loader.NewProductLoader(store))

	first, err := productUC.CreateProduct(ctx, usecase.CreateProductInput{Name: "A", Supplier: "S"})
	assert.NoError(t, err)

	assert.NoError(t, productUC.DeleteProduct(ctx, first))

	second, err := productUC.CreateProduct(ctx, usecase.CreateProductInput{Name: "B", Supplier: "S"})
	assert.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestScenario_DeleteAllLeavesEmptyList(t *testing.T) {
	ctx := context.Background()

	store := newMemProductRepo()
	productUC := usecase.NewProductUsecase(store, &memAdjustRepo{}, loader.NewProductLoader(store))

	for _, name := range []string{"A", "B", "C"} {
		_, err := productUC.CreateProduct(ctx, usecase.CreateProductInput{Name: name, Supplier: "S"})
		assert.NoError(t, err)
	}

	affected, err := productUC.DeleteAllProducts(ctx)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	items, err := productUC.ListProducts(ctx, usecase.ListProductsInput{})
	assert.NoError(t, err)
	assert.Equal(t, 0, len(items))
}
