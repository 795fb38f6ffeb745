package models

import "time"

type User struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"size:255"`
	Email     string    `json:"email" gorm:"uniqueIndex;size:50;not null"`
	Password  string    `json:"-" gorm:"column:password_hash;size:128;not null"`
	IsAdmin   bool      `json:"is_admin" gorm:"default:false"`
	CreatedAt time.Time `json:"created_at" gorm:"autoCreateTime"`

	// Associations
	Reviews []Review `json:"reviews,omitempty" gorm:"foreignKey:UserID"`
	Orders  []Order  `json:"orders,omitempty" gorm:"foreignKey:UserID"`
	Tasks   []Task   `json:"tasks,omitempty" gorm:"foreignKey:UserID"`
}

func (User) TableName() string {
	return "users"
}
