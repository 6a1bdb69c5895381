package models

// Product is an MKL catalog entry: a lens-specification template that order
// items copy their default values from. It is not tied to any order.
type Product struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null" json:"name"`

	LensParams `gorm:"embedded"`
}

func (Product) TableName() string { return "mkl_products" }

// MeridianProduct is a remembered Meridian item name, offered as a suggestion
// when typing a new item. Items copy the text and never reference this table.
type MeridianProduct struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"size:255;not null;uniqueIndex" json:"name"`
}

func (MeridianProduct) TableName() string { return "meridian_products" }
