// Package notify は変更通知。ストアへの書き込み成功後に呼ばれ、
// 購読側（一覧の再読込など）へfire-and-forgetで伝える。
package notify

import (
	evbus "github.com/asaskevich/EventBus"

	"inventory/internal/contract"
)

type Notifier interface {
	// コレクション（全商品）が変わった
	CollectionChanged()
	// id指定の1行が変わった（コレクションにも伝播する）
	ProductChanged(id int64)
}

// EventBus実装。購読はSubscribeAsyncで登録するため、
// Publishが書き込み元の呼び出しをブロックすることはない。
type BusNotifier struct {
	bus evbus.Bus
	c   contract.Contract
}

func NewBusNotifier(c contract.Contract) *BusNotifier {
	return &BusNotifier{bus: evbus.New(), c: c}
}

func (n *BusNotifier) CollectionChanged() {
	n.bus.Publish(n.c.CollectionURI())
}

func (n *BusNotifier) ProductChanged(id int64) {
	n.bus.Publish(n.c.ItemURI(id))
	n.bus.Publish(n.c.CollectionURI())
}

// uriは CollectionURI() か ItemURI(id)
func (n *BusNotifier) Subscribe(uri string, fn func()) error {
	return n.bus.SubscribeAsync(uri, fn, false)
}

func (n *BusNotifier) Unsubscribe(uri string, fn func()) error {
	return n.bus.Unsubscribe(uri, fn)
}

// 飛行中の非同期コールバックを待つ（終了処理とテスト用）
func (n *BusNotifier) WaitAsync() {
	n.bus.WaitAsync()
}

// テストや通知不要の構成で使う
type NopNotifier struct{}

func (NopNotifier) CollectionChanged()   {}
func (NopNotifier) ProductChanged(int64) {}
