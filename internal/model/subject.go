package model

import "time"

// Subject is a study topic that owns tasks and sessions.
// Tasks and sessions point at it through SubjectID; it holds no back-references.
type Subject struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;not null" json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
