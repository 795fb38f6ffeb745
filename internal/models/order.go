package models

import "time"

type Order struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Reference   string    `json:"reference" gorm:"type:uuid;uniqueIndex"`
	UserID      int64     `json:"user_id" gorm:"not null;index"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	Destination string    `json:"destination" gorm:"type:text"`

	// Associations
	User  User        `json:"user,omitempty" gorm:"foreignKey:UserID"`
	Items []OrderItem `json:"items,omitempty" gorm:"foreignKey:OrderID"`
}

func (Order) TableName() string {
	return "orders"
}

// OrderItem links an order to one unit of a product. A cart line with
// quantity N becomes N rows; no quantity column is persisted.
type OrderItem struct {
	ID        int64 `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID   int64 `json:"order_id" gorm:"not null;index"`
	ProductID int64 `json:"product_id" gorm:"not null;index"`

	// Associations
	Product Product `json:"product,omitempty" gorm:"foreignKey:ProductID"`
}

func (OrderItem) TableName() string {
	return "order_items"
}
