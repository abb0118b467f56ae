package model

import "time"

// DateLayout is the calendar date format used for deadlines.
const DateLayout = "2006-01-02"

// Task is a deadline-bound to-do item linked to a Subject.
type Task struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Title       string    `gorm:"size:200;not null" json:"title"`
	Deadline    time.Time `gorm:"not null;index" json:"deadline"`
	IsCompleted bool      `gorm:"default:false;index" json:"is_completed"`
	SubjectID   uint      `gorm:"not null;index" json:"subject_id"`
	Subject     *Subject  `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT" json:"subject,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// DeadlineString formats the deadline as YYYY-MM-DD.
func (t Task) DeadlineString() string {
	return t.Deadline.Format(DateLayout)
}
