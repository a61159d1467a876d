package model

import "time"

// Agent is the per-task assistant descriptor. Exactly one exists per task,
// created in the same transaction as the task and removed with it.
type Agent struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AgentName string    `gorm:"not null" json:"agent_name"`
	Purpose   string    `gorm:"not null" json:"purpose"`
	CreatedAt time.Time `json:"created_at"`
	TaskID    uint      `gorm:"not null;uniqueIndex" json:"task_id"`
}
