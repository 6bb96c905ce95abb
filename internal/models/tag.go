package models

import "time"

// Tag is a reference-counting index over Task.Tags, not a source of truth.
// Its invariant: UsageCount(t) equals the number of current tasks holding t,
// once all pending accounting has settled.
type Tag struct {
	Name       string    `json:"name" gorm:"primaryKey;size:255"`
	UsageCount int       `json:"usage_count" gorm:"column:usage_count;not null;default:0"`
	CreatedAt  time.Time `json:"created_at" gorm:"column:created_at"`
}

// TableName specifies the table name for Tag Model
func (Tag) TableName() string {
	return "tags"
}
