package store

import "time"

// Preference is a single persisted user setting keyed by owner and name.
type Preference struct {
	Owner     string `gorm:"primaryKey;size:64"`
	Name      string `gorm:"primaryKey;size:64"`
	Value     string `gorm:"size:256"`
	CreatedAt time.Time
	UpdatedAt time.Time
}
