package models

import "time"

type User struct {
	ID        uint      `gorm:"primaryKey" json:"id" example:"1"`
	Username  string    `gorm:"size:50;uniqueIndex;not null" json:"username" example:"sandi"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Email     string    `gorm:"size:100;uniqueIndex;not null" json:"email" example:"sandi@example.com"`
	FullName  string    `gorm:"size:100;not null" json:"full_name" example:"Sandi Yudha"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// UserSummary is the public projection used by collection endpoints.
type UserSummary struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	FullName string `json:"full_name"`
}
