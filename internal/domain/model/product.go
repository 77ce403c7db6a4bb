package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// productsテーブルのカラム名（projectionやUpdatesで使う）
const (
	ProductTable = "products"

	ColumnID       = "id"
	ColumnName     = "name"
	ColumnPrice    = "price"
	ColumnQuantity = "quantity"
	ColumnSupplier = "supplier"
	ColumnImage    = "image"
)

type Product struct {
	ID       int64           `gorm:"primaryKey;autoIncrement" json:"id"`
	Name     string          `gorm:"type:varchar(255);not null" json:"name"`
	Price    decimal.Decimal `gorm:"type:numeric(12,2);not null;default:0" json:"price"`
	Quantity int64           `gorm:"not null;default:0" json:"quantity"`
	Supplier string          `gorm:"type:varchar(255);not null" json:"supplier"`
	// 画像本体は持たない。外部に置いた画像への参照文字列のみ（null可）
	Image     *string   `gorm:"type:text" json:"image,omitempty"`
	CreatedAt time.Time `gorm:"not null;autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;autoUpdateTime" json:"updated_at"`
}

func (Product) TableName() string { return ProductTable }
