package models

import (
	"time"

	"github.com/google/uuid"
)

type StudentAttendance struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;uniqueIndex:idx_student_subject_date" json:"student_id"`
	Subject   string    `gorm:"size:100;not null;uniqueIndex:idx_student_subject_date" json:"subject"`
	Grade     int       `gorm:"not null" json:"grade"`
	MarkedBy  uuid.UUID `gorm:"not null" json:"marked_by"`
	Status    string    `gorm:"size:10;not null" json:"status"` // Present, Absent or Late

	// normalized to midnight so one record exists per student, subject and day
	Date time.Time `gorm:"not null;uniqueIndex:idx_student_subject_date" json:"date"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
