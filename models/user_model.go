package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type User struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	FullName string    `gorm:"size:255;not null" json:"full_name"`
	Email    string    `gorm:"size:255;not null;unique" json:"email"`
	Password string    `gorm:"not null" json:"-"`
	Role     string    `gorm:"size:20;not null;default:'student'" json:"role"`

	DateOfBirth *time.Time `json:"date_of_birth"`
	Gender      *string    `gorm:"size:20" json:"gender"`
	Contact     *string    `gorm:"size:50" json:"contact"`

	ClassName  *string `gorm:"size:20" json:"class_name"`
	Stream     *string `gorm:"size:50" json:"stream"`
	ParentName *string `gorm:"size:255" json:"parent_name"`

	// parent accounts are linked to their child by email
	ChildEmail *string `gorm:"size:255" json:"child_email,omitempty"`

	ProfilePictureURL *string `gorm:"size:255" json:"profile_picture_url"`
	IsActive          bool    `gorm:"default:true" json:"is_active"`

	Subjects []UserSubject `json:"subjects,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// BeforeCreate assigns an id when the database does not, so inserts work the
// same against backends without a uuid default.
func (u *User) BeforeCreate(tx *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}

// UserSubject records a subject a student takes, common or optional.
type UserSubject struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	UserID   uuid.UUID `gorm:"not null;index" json:"user_id"`
	Subject  string    `gorm:"size:100;not null" json:"subject"`
	Optional bool      `gorm:"default:false" json:"optional"`
}
