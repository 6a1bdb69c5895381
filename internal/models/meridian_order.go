package models

import (
	"strconv"
	"time"
)

// MeridianOrder is a numbered supplier order. Number is unique and never reissued.
type MeridianOrder struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Number    string    `gorm:"size:50;not null;uniqueIndex" json:"number"`
	CreatedAt time.Time `gorm:"<-:create;not null" json:"created_at"`

	Items []MeridianOrderItem `gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE" json:"items,omitempty"`
}

func (MeridianOrder) TableName() string { return "meridian_orders" }

// Status is ordered once every item is ordered, not_ordered otherwise
// (including an order without items).
func (o *MeridianOrder) Status() OrderStatus {
	if len(o.Items) == 0 {
		return OrderStatusNotOrdered
	}
	for _, item := range o.Items {
		if !item.Ordered {
			return OrderStatusNotOrdered
		}
	}
	return OrderStatusOrdered
}

// MeridianOrderItem is a free-text line of a Meridian order.
type MeridianOrderItem struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     uint           `gorm:"index;not null" json:"order_id"`
	Order       *MeridianOrder `gorm:"foreignKey:OrderID" json:"-"`
	ProductName string         `gorm:"size:255;not null" json:"product_name"`
	Sph         float64        `gorm:"not null;default:0" json:"sph"`
	Cyl         *float64       `json:"cyl,omitempty"`
	Ax          *int           `json:"ax,omitempty"`
	Qty         int            `gorm:"not null;default:1" json:"qty"`
	Ordered     bool           `gorm:"not null;default:false" json:"ordered"`
}

func (MeridianOrderItem) TableName() string { return "meridian_order_items" }

// Status maps the ordered flag onto the two-state enum.
func (item *MeridianOrderItem) Status() OrderStatus {
	if item.Ordered {
		return OrderStatusOrdered
	}
	return OrderStatusNotOrdered
}

// Params returns the item's values as LensParams (BC is never set).
func (item *MeridianOrderItem) Params() LensParams {
	return LensParams{Sph: item.Sph, Cyl: item.Cyl, Ax: item.Ax}
}

// Summary renders "Name SPH -2.25 CYL -0.75 AX 90 x2".
func (item *MeridianOrderItem) Summary() string {
	return item.ProductName + " " + item.Params().Summary() + " x" + strconv.Itoa(item.Qty)
}

// MeridianOrderRow is the list view of a Meridian order with item counters.
type MeridianOrderRow struct {
	ID           uint      `json:"id"`
	Number       string    `json:"number"`
	CreatedAt    time.Time `json:"created_at"`
	ItemsCount   int       `json:"items_count"`
	OrderedCount int       `json:"ordered_count"`
}

// Status derives the order status from the counters, same rule as MeridianOrder.Status.
func (r *MeridianOrderRow) Status() OrderStatus {
	if r.ItemsCount > 0 && r.OrderedCount == r.ItemsCount {
		return OrderStatusOrdered
	}
	return OrderStatusNotOrdered
}
