package repository

import (
	"context"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"

	"gorm.io/gorm"
)

type StockAdjustmentGormRepository struct {
	db *gorm.DB
}

// DI
func NewStockAdjustmentGormRepository(db *gorm.DB) *StockAdjustmentGormRepository {
	return &StockAdjustmentGormRepository{db: db}
}

// 履歴作成
func (r *StockAdjustmentGormRepository) Create(ctx context.Context, adj model.StockAdjustment) error {
	if err := r.db.WithContext(ctx).Create(&adj).Error; err != nil {
		return repo.WrapStoreError("insert adjustment", err)
	}
	return nil
}

// 商品ごとの履歴を新しい順で返す
func (r *StockAdjustmentGormRepository) ListByProduct(ctx context.Context, productID int64) ([]model.StockAdjustment, error) {
	adjustments := []model.StockAdjustment{}
	err := r.db.WithContext(ctx).
		Where("product_id = ?", productID).
		Order("id desc").
		Find(&adjustments).Error
	if err != nil {
		return []model.StockAdjustment{}, repo.WrapStoreError("list adjustments", err)
	}
	return adjustments, nil
}
