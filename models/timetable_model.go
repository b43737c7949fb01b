package models

import "github.com/google/uuid"

type TimetableEntry struct {
	ID     uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Grade  int       `gorm:"not null;index" json:"grade"`
	Stream *string   `gorm:"size:50" json:"stream"`
	Day    string    `gorm:"size:10;not null" json:"day"`
	Period int       `gorm:"not null" json:"period"` // 1 to 8

	SubjectID uuid.UUID `gorm:"not null" json:"subject_id"`
	TeacherID uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	Classroom *string   `gorm:"size:50" json:"classroom"`

	Subject Subject `gorm:"foreignkey:SubjectID" json:"subject,omitempty"`
	Teacher User    `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`
}
