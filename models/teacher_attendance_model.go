package models

import (
	"time"

	"github.com/google/uuid"
)

type TeacherAttendance struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TeacherID uuid.UUID `gorm:"not null;uniqueIndex:idx_teacher_date" json:"teacher_id"`
	Status    string    `gorm:"size:10;not null" json:"status"` // Present or Absent
	Date      time.Time `gorm:"not null;uniqueIndex:idx_teacher_date" json:"date"`

	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
