package models

import "gorm.io/gorm"

// PlanRecord persists one user's week as a single JSON blob. The whole
// plan is rewritten on every mutation (last-writer-wins); there are no
// partial-slot updates at the storage layer.
type PlanRecord struct {
	gorm.Model
	UserID uint   `gorm:"uniqueIndex:idx_plan_user_week;not null"`
	Week   string `gorm:"uniqueIndex:idx_plan_user_week;size:16;not null"` // ISO week, e.g. "2026-W35"
	Data   []byte `gorm:"type:jsonb"`
}
