package domain

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Improvement is one entry of the team's idea tracker.
type Improvement struct {
	ID        string    `gorm:"column:id;primaryKey" json:"id"`
	Idea      string    `gorm:"column:idea;not null" json:"idea"`
	Priority  string    `gorm:"column:priority" json:"priority"`
	Reporter  string    `gorm:"column:reporter" json:"reporter"`
	Status    string    `gorm:"column:status" json:"status"`
	Details   string    `gorm:"column:details" json:"details"`
	Date      string    `gorm:"column:date" json:"date"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (Improvement) TableName() string {
	return "Improvements"
}

// BeforeCreate assigns an ID when the client did not send one.
func (i *Improvement) BeforeCreate(tx *gorm.DB) error {
	if i.ID == "" {
		i.ID = "imp_" + uuid.New().String()
	}
	return nil
}
