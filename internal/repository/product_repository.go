package repository

import (
	"context"
	"errors"
	"fmt"

	"inventory/internal/domain/model"

	"github.com/shopspring/decimal"
)

var ErrNotFound = errors.New("not found")

// ストレージ層の失敗。書き込みは黙って捨てず必ずこれで返す
func WrapStoreError(op string, err error) error {
	return fmt.Errorf("store: %s: %w", op, err)
}

// 一覧検索
type ListQuery struct {
	// 取得カラムの絞り込み（空なら全カラム）
	Projection []string
	Name       string
	Limit      int
	Offset     int
}

// 部分更新。nilのフィールドは触らない
type ProductUpdate struct {
	Name     *string
	Price    *decimal.Decimal
	Quantity *int64
	Supplier *string
	Image    *string
}

// 更新対象カラムのmapに変換（gormのUpdates用）
func (u ProductUpdate) Columns() map[string]interface{} {
	cols := map[string]interface{}{}
	if u.Name != nil {
		cols[model.ColumnName] = *u.Name
	}
	if u.Price != nil {
		cols[model.ColumnPrice] = *u.Price
	}
	if u.Quantity != nil {
		cols[model.ColumnQuantity] = *u.Quantity
	}
	if u.Supplier != nil {
		cols[model.ColumnSupplier] = *u.Supplier
	}
	if u.Image != nil {
		cols[model.ColumnImage] = *u.Image
	}
	return cols
}

// 商品の永続化（保存・取得）だけを約束。
// 更新・削除は影響行数（0か1）を返し、0行はエラーにしない（呼び出し側が判断する）。
type ProductRepository interface {
	List(ctx context.Context, q ListQuery) ([]model.Product, error)
	FindByID(ctx context.Context, id int64, projection []string) (model.Product, error)

	Insert(ctx context.Context, p model.Product) (model.Product, error)
	Update(ctx context.Context, id int64, u ProductUpdate) (int64, error)
	Delete(ctx context.Context, id int64) (int64, error)
	DeleteAll(ctx context.Context) (int64, error)
}
