package models

import (
	"time"

	"github.com/google/uuid"
)

type Grade struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	StudentID uuid.UUID `gorm:"not null;index" json:"student_id"`
	TeacherID uuid.UUID `gorm:"not null" json:"teacher_id"`
	Subject   string    `gorm:"size:100;not null" json:"subject"`
	Grade     string    `gorm:"size:10;not null" json:"grade"` // e.g. "6", "7"
	Term      string    `gorm:"size:20;not null" json:"term"`  // Term 1, Term 2 or Final
	Score     float64   `gorm:"not null" json:"score"`
	MaxScore  float64   `gorm:"not null" json:"max_score"`
	Comment   *string   `gorm:"type:text" json:"comment"`

	Student User `gorm:"foreignkey:StudentID" json:"student,omitempty"`
	Teacher User `gorm:"foreignkey:TeacherID" json:"teacher,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
