package usecase

import (
	"context"
	"errors"
	"net/http"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

// 販売。在庫を下回る数が来ても0で止める（マイナス在庫は作らない）
func SaleQuantity(current, sold int64) int64 {
	if current-sold < 0 {
		return 0
	}
	return current - sold
}

// 入荷
func ShipmentQuantity(current, received int64) int64 {
	return current + received
}

// 発注メールの送信先チャネル
type OrderSender interface {
	SendOrder(o Order) error
}

// 発注内容。quantityには一切触れない読み取り専用の操作
type Order struct {
	To          string
	Supplier    string
	ProductName string
	Quantity    int64
	UnitPrice   string
}

type StockUsecase struct {
	productRepo repo.ProductRepository
	adjustRepo  repo.StockAdjustmentRepository
	sender      OrderSender
}

// DI
func NewStockUsecase(
	productRepo repo.ProductRepository,
	adjustRepo repo.StockAdjustmentRepository,
	sender OrderSender,
) *StockUsecase {
	return &StockUsecase{
		productRepo: productRepo,
		adjustRepo:  adjustRepo,
		sender:      sender,
	}
}

// 現在の行を読み、新しい数量を1カラムだけ更新し、実際の増減を履歴に残す
func (u *StockUsecase) apply(ctx context.Context, productID int64, compute func(int64) int64, reason string) (int64, error) {
	p, err := u.productRepo.FindByID(ctx, productID, nil)
	if errors.Is(err, repo.ErrNotFound) {
		return 0, NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	newQuantity := compute(p.Quantity)
	if newQuantity == p.Quantity {
		// 変化なし（在庫0への販売など）。更新も履歴も発行しない
		return newQuantity, nil
	}

	affected, err := u.productRepo.Update(ctx, productID, repo.ProductUpdate{Quantity: &newQuantity})
	if err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}
	if affected == 0 {
		return 0, NewHTTPError(http.StatusNotFound, "not found")
	}

	// 要求数ではなく実際に動いた数（クランプ後）を記録する
	adj := model.StockAdjustment{
		ProductID: productID,
		Delta:     newQuantity - p.Quantity,
		Reason:    reason,
	}
	if err := u.adjustRepo.Create(ctx, adj); err != nil {
		return 0, NewHTTPError(http.StatusInternalServerError, "db error")
	}

	return newQuantity, nil
}

// 販売。soldCountが負なら何もせず弾く。更新後の数量を返す
func (u *StockUsecase) Sale(ctx context.Context, productID int64, soldCount int64) (int64, error) {
	if productID < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if soldCount < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "count must be >= 0")
	}

	return u.apply(ctx, productID, func(q int64) int64 {
		return SaleQuantity(q, soldCount)
	}, model.AdjustReasonSale)
}

// 入荷
func (u *StockUsecase) ShipmentReceived(ctx context.Context, productID int64, receivedCount int64) (int64, error) {
	if productID < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if receivedCount < 0 {
		return 0, NewHTTPError(http.StatusBadRequest, "count must be >= 0")
	}

	return u.apply(ctx, productID, func(q int64) int64 {
		return ShipmentQuantity(q, receivedCount)
	}, model.AdjustReasonShipment)
}

// 一覧のワンタップ販売。在庫が1以上のときだけ1減らす
func (u *StockUsecase) RecordOneSale(ctx context.Context, productID int64) (int64, error) {
	return u.Sale(ctx, productID, 1)
}

// 発注。在庫には触れず、発注文面を外部チャネルに渡すだけ
func (u *StockUsecase) Reorder(ctx context.Context, productID int64, requestedCount int64, to string) error {
	if productID < 0 {
		return NewHTTPError(http.StatusBadRequest, "invalid product id")
	}
	if requestedCount < 0 {
		return NewHTTPError(http.StatusBadRequest, "count must be >= 0")
	}

	p, err := u.productRepo.FindByID(ctx, productID, nil)
	if errors.Is(err, repo.ErrNotFound) {
		return NewHTTPError(http.StatusNotFound, "not found")
	}
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "db error")
	}

	err = u.sender.SendOrder(Order{
		To:          to,
		Supplier:    p.Supplier,
		ProductName: p.Name,
		Quantity:    requestedCount,
		UnitPrice:   p.Price.StringFixed(2),
	})
	if err != nil {
		return NewHTTPError(http.StatusInternalServerError, "mail error")
	}
	return nil
}
