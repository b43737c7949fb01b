package models

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceReport records a generated teacher-attendance PDF export.
type AttendanceReport struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	RequestedBy uuid.UUID `gorm:"not null" json:"requested_by"`
	RangeStart  time.Time `gorm:"not null" json:"range_start"`
	RangeEnd    time.Time `gorm:"not null" json:"range_end"`
	ReportURL   string    `gorm:"size:255;not null" json:"report_url"`

	CreatedAt time.Time `json:"created_at"`
}
