package repository

import (
	"context"
	"errors"

	"inventory/internal/domain/model"
	"inventory/internal/notify"
	repo "inventory/internal/repository"

	"gorm.io/gorm"
)

type ProductGormRepository struct {
	db       *gorm.DB
	notifier notify.Notifier
}

// DI
func NewProductGormRepository(db *gorm.DB, notifier notify.Notifier) *ProductGormRepository {
	return &ProductGormRepository{db: db, notifier: notifier}
}

// 全商品を挿入順（id昇順）で返す。呼び出しごとに新しい問い合わせを発行する。
// エラー時は空スライス＋エラー（呼び出し側が表示可否を判断する）。
func (r *ProductGormRepository) List(ctx context.Context, q repo.ListQuery) ([]model.Product, error) {
	products := []model.Product{}

	tx := r.db.WithContext(ctx).Model(&model.Product{})
	if len(q.Projection) > 0 {
		tx = tx.Select(q.Projection)
	}
	if q.Name != "" {
		tx = tx.Where("name = ?", q.Name)
	}
	if q.Limit > 0 {
		tx = tx.Limit(q.Limit)
	}
	if q.Offset > 0 {
		tx = tx.Offset(q.Offset)
	}

	if err := tx.Order("id asc").Find(&products).Error; err != nil {
		return []model.Product{}, repo.WrapStoreError("list products", err)
	}
	return products, nil
}

// IDで1行取得。存在しなければErrNotFound（ストレージ障害とは区別する）。
func (r *ProductGormRepository) FindByID(ctx context.Context, id int64, projection []string) (model.Product, error) {
	var p model.Product
	tx := r.db.WithContext(ctx)
	if len(projection) > 0 {
		tx = tx.Select(projection)
	}
	err := tx.First(&p, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return model.Product{}, repo.ErrNotFound
	}
	if err != nil {
		return model.Product{}, repo.WrapStoreError("find product", err)
	}
	return p, nil
}

// 商品の作成。idはストアが採番して返す
func (r *ProductGormRepository) Insert(ctx context.Context, p model.Product) (model.Product, error) {
	if err := r.db.WithContext(ctx).Create(&p).Error; err != nil {
		return model.Product{}, repo.WrapStoreError("insert product", err)
	}
	r.notifier.ProductChanged(p.ID)
	return p, nil
}

// 指定カラムだけを差し替える。影響行数（0か1）を返し、0行はエラーにしない
func (r *ProductGormRepository) Update(ctx context.Context, id int64, u repo.ProductUpdate) (int64, error) {
	cols := u.Columns()
	if len(cols) == 0 {
		return 0, nil
	}
	res := r.db.WithContext(ctx).Model(&model.Product{}).Where("id = ?", id).Updates(cols)
	if res.Error != nil {
		return 0, repo.WrapStoreError("update product", res.Error)
	}
	if res.RowsAffected > 0 {
		r.notifier.ProductChanged(id)
	}
	return res.RowsAffected, nil
}

// 商品削除（即時・復元なし）
func (r *ProductGormRepository) Delete(ctx context.Context, id int64) (int64, error) {
	res := r.db.WithContext(ctx).Delete(&model.Product{}, id)
	if res.Error != nil {
		return 0, repo.WrapStoreError("delete product", res.Error)
	}
	if res.RowsAffected > 0 {
		r.notifier.ProductChanged(id)
	}
	return res.RowsAffected, nil
}

// 全行削除。確認は呼び出し側の責務
func (r *ProductGormRepository) DeleteAll(ctx context.Context) (int64, error) {
	res := r.db.WithContext(ctx).Where("1 = 1").Delete(&model.Product{})
	if res.Error != nil {
		return 0, repo.WrapStoreError("delete all products", res.Error)
	}
	if res.RowsAffected > 0 {
		r.notifier.CollectionChanged()
	}
	return res.RowsAffected, nil
}
