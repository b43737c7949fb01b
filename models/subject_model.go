package models

import "github.com/google/uuid"

type Subject struct {
	ID   uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name string    `gorm:"size:100;not null;unique" json:"name"`
	Type string    `gorm:"size:20;not null" json:"type"` // common or optional

	// grades this subject applies to, e.g. "6,7,8,9"
	Grades string  `gorm:"size:50;not null" json:"grades"`
	Stream *string `gorm:"size:50" json:"stream"` // science, commerce or arts for grades 12-13
}
