package domain

import (
	"time"

	"gorm.io/datatypes"
)

// Developer is one contributor's profile within a planning interval.
// (PI, Key) is the primary key; Key is the 3-letter identifier used as the
// join key against availability rows and imported table headers.
type Developer struct {
	PI            string            `gorm:"column:pi;primaryKey" json:"pi"`
	Key           string            `gorm:"column:key;primaryKey;type:varchar(3)" json:"key"`
	Team          string            `gorm:"column:team" json:"team"`
	SpecialCase   bool              `gorm:"column:special_case" json:"specialCase"`
	DailyHours    float64           `gorm:"column:daily_hours" json:"dailyHours"`
	Load          float64           `gorm:"column:load" json:"load"`
	ManageRatio   float64           `gorm:"column:manage_ratio" json:"manageRatio"`
	DevelopRatio  float64           `gorm:"column:develop_ratio" json:"developRatio"`
	MaintainRatio float64           `gorm:"column:maintain_ratio" json:"maintainRatio"`
	Velocity      float64           `gorm:"column:velocity" json:"velocity"`
	SprintTeams   datatypes.JSONMap `gorm:"column:sprint_teams" json:"sprintTeams,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}

func (Developer) TableName() string {
	return "Developers"
}

// TeamFor resolves the developer's team for a given sprint, honoring the
// per-sprint override map for developers who move teams mid-interval.
func (d *Developer) TeamFor(sprint string) string {
	if d.SprintTeams != nil {
		if v, ok := d.SprintTeams[sprint].(string); ok && v != "" {
			return v
		}
	}
	return d.Team
}

// DailyRates are the derived per-day rates for one developer.
type DailyRates struct {
	DevelopHours  float64 `json:"developHours"`
	MaintainHours float64 `json:"maintainHours"`
	ManageHours   float64 `json:"manageHours"`
	StoryPoints   float64 `json:"storyPoints"`
}

// Rates derives the developer's per-day rates. Velocity is story points per
// 8 develop-hours, so the SP rate scales the develop-hour rate.
func (d *Developer) Rates() DailyRates {
	loaded := d.DailyHours * (d.Load / 100)
	develop := loaded * (d.DevelopRatio / 100)
	return DailyRates{
		DevelopHours:  develop,
		MaintainHours: loaded * (d.MaintainRatio / 100),
		ManageHours:   loaded * (d.ManageRatio / 100),
		StoryPoints:   develop / 8 * d.Velocity,
	}
}
