package entities

import "time"

// Team represents a canonical team, created lazily on first sighting from any provider
type Team struct {
	ID           int64     `db:"id"`
	Name         string    `db:"name"`
	Abbreviation string    `db:"abbreviation"`
	CreatedAt    time.Time `db:"created_at"`
}
