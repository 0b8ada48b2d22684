package entity

import "time"

// SearchHistory is one executed search, stored in the tool's own state
// database (never in the flight dataset, which stays read-only).
type SearchHistory struct {
	ID        int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	RunID     string    `gorm:"type:text;not null" json:"run_id"`
	Operation string    `gorm:"type:text;not null" json:"operation"`
	Criteria  string    `gorm:"type:text;not null" json:"criteria"`
	Results   int       `gorm:"not null" json:"results"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
}
