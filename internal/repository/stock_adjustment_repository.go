package repository

import (
	"context"

	"inventory/internal/domain/model"
)

// 在庫変動履歴の保存と参照
type StockAdjustmentRepository interface {
	Create(ctx context.Context, adj model.StockAdjustment) error
	ListByProduct(ctx context.Context, productID int64) ([]model.StockAdjustment, error)
}
