package model

import "time"

// StudySession is a logged interval of study time. Immutable once created.
type StudySession struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Date            time.Time `gorm:"not null;index" json:"date"`
	DurationMinutes int       `gorm:"not null" json:"duration_minutes"`
	Notes           string    `gorm:"size:200" json:"notes,omitempty"`
	SubjectID       uint      `gorm:"not null;index" json:"subject_id"`
	Subject         *Subject  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"-"`
}
