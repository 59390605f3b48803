package models

import "time"

// Life stages a species target can be configured for.
const (
	StageJuvenile = "juvenile"
	StageAdult    = "adult"
)

// Pet is the profile of a tracked animal.
type Pet struct {
	ID        string     `json:"id"`
	OwnerID   int        `json:"owner_id"`
	Name      string     `json:"name"`
	Species   string     `json:"species"`    // e.g. "leopard_gecko", "bearded_dragon"
	LifeStage string     `json:"life_stage"` // juvenile | adult
	Sex       string     `json:"sex,omitempty"`
	BirthDate *time.Time `json:"birth_date,omitempty"`
	WeightG   *float64   `json:"weight_g,omitempty"`
	Note      string     `json:"note,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
	UpdatedAt time.Time  `json:"updated_at"`
}

// OtherStage returns the opposite life stage, used for target fallback.
func OtherStage(stage string) string {
	if stage == StageAdult {
		return StageJuvenile
	}
	return StageAdult
}
