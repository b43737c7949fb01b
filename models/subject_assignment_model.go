package models

import (
	"time"

	"github.com/google/uuid"
)

type SubjectAssignment struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID `gorm:"not null;index" json:"teacher_id"`
	Subject string    `gorm:"size:100;not null" json:"subject"`
	Grade   int       `gorm:"not null" json:"grade"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	AssignedAt time.Time `gorm:"autoCreateTime" json:"assigned_at"`
}
