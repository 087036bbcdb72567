package entities

import (
	"github.com/google/uuid"
)

type Profile struct {
	ID       uuid.UUID `gorm:"type:uuid;primary_key" json:"id"`
	Email    string    `gorm:"uniqueIndex" json:"email"`
	Name     string    `json:"name"`
	IsAdmin  bool      `json:"is_admin"`
	Language string    `gorm:"default:en" json:"language"`

	Timestamp
}

func (Profile) TableName() string {
	return "profiles"
}
