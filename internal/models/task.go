package models

import "time"

type Task struct {
	ID          int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name        string    `json:"name" gorm:"size:255"`
	Description string    `json:"description" gorm:"type:text;not null"`
	CreatedAt   time.Time `json:"created_at" gorm:"autoCreateTime"`
	EndDate     time.Time `json:"end_date"`
	UserID      int64     `json:"user_id" gorm:"index"`

	// Associations
	User User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}

func (Task) TableName() string {
	return "tasks"
}
