package domain

import "time"

// SeedVersion is bumped when the default roster or sprint table changes in a
// way that should re-apply to already-initialized intervals.
const SeedVersion = 1

// IntervalState is the per-interval migration record. It replaces ad-hoc
// sentinel flags: read once at the start of an operation and passed
// explicitly, never queried cell by cell.
type IntervalState struct {
	PI               string    `gorm:"column:pi;primaryKey" json:"pi"`
	SeedVersion      int       `gorm:"column:seed_version" json:"seedVersion"`
	DevelopersSeeded bool      `gorm:"column:developers_seeded" json:"developersSeeded"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

func (IntervalState) TableName() string {
	return "IntervalStates"
}
