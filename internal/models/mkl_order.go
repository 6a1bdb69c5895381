package models

import (
	"strconv"
	"time"
)

// MKLOrder is a contact-lens order placed for a client.
// CreatedAt is written once on insert and never updated.
type MKLOrder struct {
	ID        uint        `gorm:"primaryKey" json:"id"`
	ClientID  uint        `gorm:"index;not null" json:"client_id"`
	Client    *Client     `gorm:"foreignKey:ClientID" json:"client,omitempty"`
	Status    OrderStatus `gorm:"size:20;not null;default:'not_ordered'" json:"status"`
	CreatedAt time.Time   `gorm:"<-:create;not null" json:"created_at"`

	Items []MKLOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (MKLOrder) TableName() string { return "mkl_orders" }

// TotalQty sums item quantities.
func (o *MKLOrder) TotalQty() int {
	var total int
	for _, item := range o.Items {
		total += item.Qty
	}
	return total
}

// MKLOrderItem is one lens line of an MKL order. Lens values are copied from
// the catalog product at creation and may differ from it afterwards.
type MKLOrderItem struct {
	ID      uint      `gorm:"primaryKey" json:"id"`
	OrderID uint      `gorm:"index;not null" json:"order_id"`
	Order   *MKLOrder `gorm:"foreignKey:OrderID" json:"-"`

	// ProductID becomes nil when the catalog product is deleted.
	ProductID *uint    `gorm:"index" json:"product_id,omitempty"`
	Product   *Product `gorm:"foreignKey:ProductID;constraint:OnDelete:SET NULL" json:"-"`
	// ProductName is the catalog name: live when the product exists,
	// otherwise the snapshot taken at creation.
	ProductName string `gorm:"size:255;not null;default:''" json:"product_name"`

	LensParams `gorm:"embedded"`
	Qty        int `gorm:"not null;default:1" json:"qty"`
}

func (MKLOrderItem) TableName() string { return "mkl_order_items" }

// Summary renders "Name SPH -2.25 ... x2".
func (item *MKLOrderItem) Summary() string {
	return item.ProductName + " " + item.LensParams.Summary() + " x" + strconv.Itoa(item.Qty)
}

// MKLOrderRow is the flattened list view of an order: the order joined with
// its client and the number of item lines.
type MKLOrderRow struct {
	ID         uint        `json:"id"`
	ClientID   uint        `json:"client_id"`
	FullName   string      `json:"full_name"`
	Phone      string      `json:"phone,omitempty"`
	Status     OrderStatus `json:"status"`
	CreatedAt  time.Time   `json:"created_at"`
	ItemsCount int         `json:"items_count"`
}
