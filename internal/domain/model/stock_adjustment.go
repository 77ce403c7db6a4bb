package model

import "time"

// 在庫変動の理由
const (
	AdjustReasonSale     = "sale"
	AdjustReasonShipment = "shipment"
)

// 在庫変動の履歴
type StockAdjustment struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	ProductID int64     `gorm:"not null;index" json:"product_id"`
	Delta     int64     `gorm:"not null" json:"delta"`
	Reason    string    `gorm:"type:varchar(32);not null" json:"reason"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
}

func (StockAdjustment) TableName() string { return "stock_adjustments" }
