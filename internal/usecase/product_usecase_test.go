package usecase_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"inventory/internal/domain/model"
	"inventory/internal/loader"
	repo "inventory/internal/repository"
	"inventory/internal/usecase"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

// =====================
// Mocks
// =====================

type ProductRepoMock struct{ mock.Mock }

func (m *ProductRepoMock) List(ctx context.Context, q repo.ListQuery) ([]model.Product, error) {
	args := m.Called(ctx, q)
	items, _ := args.Get(0).([]model.Product)
	return items, args.Error(1)
}

func (m *ProductRepoMock) FindByID(ctx context.Context, id int64, projection []string) (model.Product, error) {
	args := m.Called(ctx, id, projection)
	p, _ := args.Get(0).(model.Product)
	return p, args.Error(1)
}

func (m *ProductRepoMock) Insert(ctx context.Context, p model.Product) (model.Product, error) {
	args := m.Called(ctx, p)
	created, _ := args.Get(0).(model.Product)
	return created, args.Error(1)
}

func (m *ProductRepoMock) Update(ctx context.Context, id int64, u repo.ProductUpdate) (int64, error) {
	args := m.Called(ctx, id, u)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) Delete(ctx context.Context, id int64) (int64, error) {
	args := m.Called(ctx, id)
	return args.Get(0).(int64), args.Error(1)
}

func (m *ProductRepoMock) DeleteAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

type AdjustRepoMock struct{ mock.Mock }

func (m *AdjustRepoMock) Create(ctx context.Context, adj model.StockAdjustment) error {
	args := m.Called(ctx, adj)
	return args.Error(0)
}

func (m *AdjustRepoMock) ListByProduct(ctx context.Context, productID int64) ([]model.StockAdjustment, error) {
	args := m.Called(ctx, productID)
	items, _ := args.Get(0).([]model.StockAdjustment)
	return items, args.Error(1)
}

type OrderSenderMock struct{ mock.Mock }

func (m *OrderSenderMock) SendOrder(o usecase.Order) error {
	args := m.Called(o)
	return args.Error(0)
}

func assertErrContains(t *testing.T, err error, want string) {
	t.Helper()
	assert.Error(t, err)
	assert.True(t, strings.Contains(err.Error(), want), "error %q should contain %q", err, want)
}

func newProductUC(pRepo *ProductRepoMock, aRepo *AdjustRepoMock) *usecase.ProductUsecase {
	return usecase.NewProductUsecase(pRepo, aRepo, loader.NewProductLoader(pRepo))
}

// =====================
// Create
// =====================

func TestProductUsecase_CreateProduct_NameRequired(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	_, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:     "   ",
		Supplier: "Big 5 Sporting Goods",
	})
	assertErrContains(t, err, "name required")

	// ストアには一切届かない
	pRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProductUsecase_CreateProduct_SupplierRequired(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	_, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{Name: "Jump Rope"})
	assertErrContains(t, err, "supplier required")

	pRepo.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything)
}

func TestProductUsecase_CreateProduct_NegativePrice(t *testing.T) {
	uc := newProductUC(new(ProductRepoMock), new(AdjustRepoMock))

	_, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:     "Jump Rope",
		Supplier: "Big 5 Sporting Goods",
		Price:    decimal.NewFromFloat(-0.01),
	})
	assertErrContains(t, err, "price must be >= 0")
}

func TestProductUsecase_CreateProduct_Success(t *testing.T) {
	ctx := context.Background()

	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("Insert", mock.Anything, mock.MatchedBy(func(p model.Product) bool {
		return p.Name == "Jump Rope" &&
			p.Supplier == "Big 5 Sporting Goods" &&
			p.Price.Equal(decimal.NewFromFloat(13.99)) &&
			p.Quantity == 33 &&
			p.Image == nil
	})).Return(model.Product{ID: 1}, nil)

	id, err := uc.CreateProduct(ctx, usecase.CreateProductInput{
		Name:     " Jump Rope ",
		Price:    decimal.NewFromFloat(13.99),
		Quantity: 33,
		Supplier: " Big 5 Sporting Goods ",
	})
	assert.NoError(t, err)
	assert.Equal(t, int64(1), id)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_CreateProduct_StoreError(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("Insert", mock.Anything, mock.Anything).
		Return(model.Product{}, repo.WrapStoreError("insert product", errors.New("db down")))

	_, err := uc.CreateProduct(context.Background(), usecase.CreateProductInput{
		Name:     "Jump Rope",
		Supplier: "Big 5 Sporting Goods",
	})
	assertErrContains(t, err, "db error")
}

// =====================
// Get / List
// =====================

func TestProductUsecase_GetProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("FindByID", mock.Anything, int64(99), []string(nil)).Return(model.Product{}, repo.ErrNotFound)

	_, err := uc.GetProduct(context.Background(), 99)
	assertErrContains(t, err, "not found")
}

func TestProductUsecase_GetProduct_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("FindByID", mock.Anything, int64(1), []string(nil)).
		Return(model.Product{ID: 1, Name: "Jump Rope"}, nil)

	p, err := uc.GetProduct(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(1), p.ID)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_ListProducts_InvalidLimit(t *testing.T) {
	uc := newProductUC(new(ProductRepoMock), new(AdjustRepoMock))

	_, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Limit: -1})
	assertErrContains(t, err, "invalid limit")
}

func TestProductUsecase_ListProducts_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	q := repo.ListQuery{Name: "Jump Rope", Limit: 20}
	pRepo.On("List", mock.Anything, q).Return([]model.Product{{ID: 1, Name: "Jump Rope"}}, nil)

	items, err := uc.ListProducts(context.Background(), usecase.ListProductsInput{Name: "Jump Rope", Limit: 20})
	assert.NoError(t, err)
	assert.Equal(t, 1, len(items))

	pRepo.AssertExpectations(t)
}

// =====================
// Update / Delete
// =====================

func TestProductUsecase_UpdateProduct_QuantityOnly(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("Update", mock.Anything, int64(1), mock.MatchedBy(func(u repo.ProductUpdate) bool {
		// quantity以外のカラムはmapに現れない
		cols := u.Columns()
		return len(cols) == 1 && cols[model.ColumnQuantity] == int64(5)
	})).Return(int64(1), nil)

	quantity := int64(5)
	err := uc.UpdateProduct(context.Background(), 1, usecase.UpdateProductInput{Quantity: &quantity})
	assert.NoError(t, err)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_UpdateProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	// 0行更新はストアではエラーにならない。この層で404に変換する
	pRepo.On("Update", mock.Anything, int64(999), mock.Anything).Return(int64(0), nil)

	quantity := int64(5)
	err := uc.UpdateProduct(context.Background(), 999, usecase.UpdateProductInput{Quantity: &quantity})
	assertErrContains(t, err, "not found")
}

func TestProductUsecase_UpdateProduct_EmptyNameRejected(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	name := " "
	err := uc.UpdateProduct(context.Background(), 1, usecase.UpdateProductInput{Name: &name})
	assertErrContains(t, err, "name required")

	pRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductUsecase_UpdateProduct_NoFieldsRejected(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	// 全フィールドnilの更新は存在する行でも404ではなく400
	err := uc.UpdateProduct(context.Background(), 1, usecase.UpdateProductInput{})
	assertErrContains(t, err, "no fields to update")

	pRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
}

func TestProductUsecase_DeleteProduct_Success(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("Delete", mock.Anything, int64(1)).Return(int64(1), nil)

	err := uc.DeleteProduct(context.Background(), 1)
	assert.NoError(t, err)

	pRepo.AssertExpectations(t)
}

func TestProductUsecase_DeleteProduct_NotFound(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("Delete", mock.Anything, int64(42)).Return(int64(0), nil)

	err := uc.DeleteProduct(context.Background(), 42)
	assertErrContains(t, err, "not found")
}

func TestProductUsecase_DeleteAllProducts(t *testing.T) {
	pRepo := new(ProductRepoMock)
	uc := newProductUC(pRepo, new(AdjustRepoMock))

	pRepo.On("DeleteAll", mock.Anything).Return(int64(3), nil)

	affected, err := uc.DeleteAllProducts(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, int64(3), affected)

	pRepo.AssertExpectations(t)
}
