package models

// Client is a customer placing MKL orders.
// The (FullName, Phone) pair is unique; a missing phone is stored as "".
type Client struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	FullName string `gorm:"size:255;not null;uniqueIndex:idx_clients_name_phone" json:"full_name"`
	Phone    string `gorm:"size:50;not null;default:'';uniqueIndex:idx_clients_name_phone" json:"phone,omitempty"`

	Orders []MKLOrder `gorm:"foreignKey:ClientID;constraint:OnDelete:CASCADE" json:"orders,omitempty"`
}

// DisplayName returns "Name (phone)" or just the name when there is no phone.
func (c *Client) DisplayName() string {
	if c.Phone == "" {
		return c.FullName
	}
	return c.FullName + " (" + c.Phone + ")"
}
