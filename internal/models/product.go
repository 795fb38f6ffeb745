package models

type Product struct {
	ID          int64   `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string  `json:"name" gorm:"size:255;not null"`
	Description string  `json:"description" gorm:"type:text"`
	AvgRate     float64 `json:"avg_rate" gorm:"default:0"`
	Price       int     `json:"price" gorm:"not null"`
	Stock       int     `json:"stock" gorm:"not null"`
	CategoryID  int64   `json:"category_id" gorm:"index"`

	// Associations
	Category Category `json:"category,omitempty" gorm:"foreignKey:CategoryID"`
	Reviews  []Review `json:"reviews,omitempty" gorm:"foreignKey:ProductID"`
}

func (Product) TableName() string {
	return "products"
}
