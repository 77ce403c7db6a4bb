package usecase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"inventory/internal/domain/model"
	"inventory/internal/loader"
	repo "inventory/internal/repository"

	"github.com/shopspring/decimal"
)

type HTTPError struct {
	Status  int
	Message string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

func NewHTTPError(status int, message string) error {
	return &HTTPError{
		Status:  status,
		Message: message,
	}
}

func AsHTTPError(err error) (*HTTPError, bool) {
	var he *HTTPError
	ok := errors.As(err, &he)
	return he, ok
}

type ProductUsecase struct {
	productRepo repo.ProductRepository
	adjustRepo  repo.StockAdjustmentRepository
	loader      *loader.ProductLoader
}

// DI
func NewProductUsecase(
	productRepo repo.ProductRepository,
	adjustRepo repo.StockAdjustmentRepository,
	productLoader *loader.ProductLoader,
) *ProductUsecase {
	return &ProductUsecase{
		productRepo: productRepo,
		adjustRepo:  adjustRepo,
		loader:      productLoader,
	}
}

// GET /productsの入力DTO
type ListProductsInput struct {
	Name       string
	Limit      int
	Offset     int
	Projection []string
}

func (u *ProductUsecase) ListProducts(ctx context.Context, in ListProductsInput) ([]model.Product, error) {
	if in.Limit < 0 || in.Limit > 500 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid limit")
	}
	if in.Offset < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid offset")
	}

	// 一覧はローダー経由。同条件の同時読み込みは1回の問い合わせにまとまる
	res := <-u.loader.Load(ctx, repo.ListQuery{
		Projection: in.Projection,
		Name:       strings.TrimSpace(in.Name),
		Limit:      in.Limit,
		Offset:     in.Offset,
	})
	if res.Err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return res.Products, nil
}

func (u *ProductUsecase) GetProduct(ctx context.Context, productID int64) (model.Product, error) {
	if productID < 0 {
		return model.Product{}, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	p, err := u.productRepo.FindByID(ctx, productID, nil)
	if errors.Is(err, repo.ErrNotFound) {
		return model.Product{}, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return model.Product{}, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p, nil
}

type CreateProductInput struct {
	Name     string
	Price    decimal.Decimal
	Quantity int64
	Supplier string
	Image    *string
}

// 商品の作成。nameとsupplierが空のままストアに届くことはない。
// priceとquantityは未指定なら0のまま入る。採番されたidを返す。
func (u *ProductUsecase) CreateProduct(ctx context.Context, in CreateProductInput) (int64, error) {
	if strings.TrimSpace(in.Name) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "name required")
	}
	if strings.TrimSpace(in.Supplier) == "" {
		return 0, NewHTTPError(http.StatusBadRequest, "supplier required")
	}
	if in.Price.IsNegative() {
		return 0, NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	p, err := u.productRepo.Insert(ctx, model.Product{
		Name:     strings.TrimSpace(in.Name),
		Price:    in.Price,
		Quantity: in.Quantity,
		Supplier: strings.TrimSpace(in.Supplier),
		Image:    in.Image,
	})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return p.ID, nil
}

type UpdateProductInput struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int64
	Supplier *string
	Image    *string
}

// 指定されたカラムだけを更新する。対象行がなければ404
func (u *ProductUsecase) UpdateProduct(ctx context.Context, productID int64, in UpdateProductInput) error {
	if productID < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return NewHTTPError(http.StatusBadRequest, "name required")
	}
	if in.Supplier != nil && strings.TrimSpace(*in.Supplier) == "" {
		return NewHTTPError(http.StatusBadRequest, "supplier required")
	}
	if in.Price != nil && in.Price.IsNegative() {
		return NewHTTPError(http.StatusBadRequest, "price must be >= 0")
	}
	if in.Quantity != nil && *in.Quantity < 0 {
		return NewHTTPError(http.StatusBadRequest, "quantity must be >= 0")
	}

	update := repo.ProductUpdate{
		Price:    in.Price,
		Quantity: in.Quantity,
		Image:    in.Image,
	}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		update.Name = &name
	}
	if in.Supplier != nil {
		supplier := strings.TrimSpace(*in.Supplier)
		update.Supplier = &supplier
	}

	// 空の更新はストアに出さない（0行更新を404と誤認しないため）
	if len(update.Columns()) == 0 {
		return NewHTTPError(http.StatusBadRequest, "no fields to update")
	}

	affected, err := u.productRepo.Update(ctx, productID, update)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if affected == 0 {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return nil
}

func (u *ProductUsecase) DeleteProduct(ctx context.Context, productID int64) error {
	if productID < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	affected, err := u.productRepo.Delete(ctx, productID)
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if affected == 0 {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	return nil
}

// 全件削除。確認ダイアログ等はUI側の責務で、この層では何も聞かない
func (u *ProductUsecase) DeleteAllProducts(ctx context.Context) (int64, error) {
	affected, err := u.productRepo.DeleteAll(ctx)
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return affected, nil
}

func (u *ProductUsecase) ListAdjustments(ctx context.Context, productID int64) ([]model.StockAdjustment, error) {
	if productID < 0 {
		return nil, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}

	adjustments, err := u.adjustRepo.ListByProduct(ctx, productID)
	if err != nil {
		return nil, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	return adjustments, nil
}
