package model

import "time"

// Metadata carries the audit timestamps shared by every stored entity.
type Metadata struct {
	CreatedAt time.Time `db:"created_at" json:"created_at"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}

func NewMetadata(now time.Time) Metadata {
	return Metadata{CreatedAt: now, UpdatedAt: now}
}

// Touched returns a copy with UpdatedAt moved to now.
func (m Metadata) Touched(now time.Time) Metadata {
	m.UpdatedAt = now

	return m
}
