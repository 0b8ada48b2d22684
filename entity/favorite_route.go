package entity

import "time"

// FavoriteRoute is a saved origin/destination pair; the map page renders all
// favorites with their current severity color.
type FavoriteRoute struct {
	ID          int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string    `gorm:"type:text;not null" json:"title"`
	Origin      string    `gorm:"type:text;not null" json:"origin"`
	Destination string    `gorm:"type:text;not null" json:"destination"`
	CreatedAt   time.Time `gorm:"autoCreateTime" json:"created_at"`
}
