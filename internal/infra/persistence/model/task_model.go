package model

import "time"

// TaskModel mirrors the 'tasks' table. UserID references users.id.
type TaskModel struct {
	ID        int64  `gorm:"primaryKey;autoIncrement"`
	Title     string `gorm:"type:varchar(200);not null"`
	IsDone    bool   `gorm:"not null;default:false"`
	UserID    int64  `gorm:"not null;index:idx_tasks_user_id"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (TaskModel) TableName() string {
	return "tasks"
}
