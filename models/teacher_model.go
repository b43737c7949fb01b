package models

import "github.com/google/uuid"

// TeacherProfile extends a teacher's user record with staff-only fields.
type TeacherProfile struct {
	ID             uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID         uuid.UUID `gorm:"not null;unique" json:"user_id"`
	Qualifications *string   `gorm:"type:text" json:"qualifications"`
	Experience     *string   `gorm:"type:text" json:"experience"`

	User User `gorm:"foreignkey:UserID" json:"user,omitempty"`
}
