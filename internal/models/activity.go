package models

import "time"

// ActivityLog is a write-only audit trail entry.
type ActivityLog struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"index" json:"user_id"`
	Action    string    `gorm:"size:50;index;not null" json:"action"`
	Details   string    `gorm:"type:text" json:"details"`
	CreatedAt time.Time `json:"created_at"`
}

func (ActivityLog) TableName() string {
	return "activity_logs"
}

const (
	ActionRegister    = "register"
	ActionLogin       = "login"
	ActionAddMovie    = "add_movie"
	ActionUpdateMovie = "update_movie"
	ActionDeleteMovie = "delete_movie"
	ActionAddReview   = "add_review"
)

// UploadedImage records every stored poster. Nothing reads it back.
type UploadedImage struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Filename     string    `gorm:"size:255;not null" json:"filename"`
	OriginalName string    `gorm:"size:255" json:"original_name"`
	FileType     string    `gorm:"size:50" json:"file_type"`
	FileSize     int64     `json:"file_size"`
	UserID       uint      `gorm:"index" json:"user_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (UploadedImage) TableName() string {
	return "uploaded_images"
}
