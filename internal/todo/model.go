package todo

import "time"

type ToDoItem struct {
	ID          int    `gorm:"primaryKey"`
	Title       string `gorm:"size:100;not null"`
	Description string `gorm:"size:500"`
	IsCompleted bool   `gorm:"default:false"`
	CreatedAt   time.Time
	UserID      string `gorm:"index;not null"`
}

func (ToDoItem) TableName() string {
	return "todo_items"
}

// Metrics aggregates a user's item counts. Total always equals
// Completed + Pending; the counts are derived, never stored.
type Metrics struct {
	TotalTasks     int64 `json:"totalTasks"`
	CompletedTasks int64 `json:"completedTasks"`
	PendingTasks   int64 `json:"pendingTasks"`
}
