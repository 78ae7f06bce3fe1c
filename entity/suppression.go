package entity

import "time"

// Suppression mutes anomaly publication for one pattern key. Flags are still
// stored with the run; they are only kept off the message bus.
type Suppression struct {
	ID         int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PatternKey string    `gorm:"type:text;uniqueIndex;not null" json:"pattern_key" validate:"required"`
	Reason     string    `gorm:"type:text" json:"reason"`
	CreatedAt  time.Time `gorm:"autoCreateTime" json:"created_at"`
}

func (Suppression) TableName() string {
	return "suppressions"
}
