// Package loader は一覧の非同期読み込み。
// 呼び出し側のゴルーチンを塞がず、結果を一度だけチャネルで渡す。
// キャンセルされた読み込みの結果は捨てられるだけで、ストアを壊すことはない。
package loader

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/singleflight"

	"inventory/internal/domain/model"
	repo "inventory/internal/repository"
)

type Result struct {
	Products []model.Product
	Err      error
}

type ProductLoader struct {
	productRepo repo.ProductRepository
	group       singleflight.Group
}

// DI
func NewProductLoader(productRepo repo.ProductRepository) *ProductLoader {
	return &ProductLoader{productRepo: productRepo}
}

// 同じ条件の問い合わせが同時に走ったら1回にまとめる
func key(q repo.ListQuery) string {
	return fmt.Sprintf("%s|%d|%d|%s", q.Name, q.Limit, q.Offset, strings.Join(q.Projection, ","))
}

// Load は一覧問い合わせを裏で実行し、結果チャネルを即座に返す。
// ctxのキャンセルは呼び出し側ごとに独立で、キャンセルした側にだけ
// エラーが届く（同乗している他の呼び出しは巻き込まない）。
func (l *ProductLoader) Load(ctx context.Context, q repo.ListQuery) <-chan Result {
	ch := make(chan Result, 1)

	// 共有実行は特定の呼び出し側のctxに縛らない
	queryCtx := context.WithoutCancel(ctx)
	resc := l.group.DoChan(key(q), func() (interface{}, error) {
		return l.productRepo.List(queryCtx, q)
	})

	go func() {
		select {
		case <-ctx.Done():
			ch <- Result{Products: []model.Product{}, Err: ctx.Err()}
		case r := <-resc:
			products, _ := r.Val.([]model.Product)
			ch <- Result{Products: products, Err: r.Err}
		}
	}()

	return ch
}
