package domain

import (
	"gorm.io/datatypes"
)

// AvailabilityRow is one calendar date of the ledger. Fractions maps developer
// keys to 0, 0.5 or 1; a key absent from the map reads as 1 (fully available).
// The key set is open-ended so adding a developer needs no migration.
type AvailabilityRow struct {
	PI        string            `gorm:"column:pi;primaryKey" json:"pi"`
	Date      string            `gorm:"column:date;primaryKey" json:"date"`
	Sprint    string            `gorm:"column:sprint" json:"sprint"`
	Fractions datatypes.JSONMap `gorm:"column:fractions" json:"fractions"`
}

func (AvailabilityRow) TableName() string {
	return "Availabilities"
}

// Fraction returns the availability fraction for a developer key, defaulting
// to 1 when the key is absent or the stored value is not numeric.
func (r *AvailabilityRow) Fraction(key string) float64 {
	if r.Fractions == nil {
		return 1
	}
	switch v := r.Fractions[key].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	default:
		return 1
	}
}

// SetFraction records a developer's fraction for this date.
func (r *AvailabilityRow) SetFraction(key string, v float64) {
	if r.Fractions == nil {
		r.Fractions = datatypes.JSONMap{}
	}
	r.Fractions[key] = v
}
