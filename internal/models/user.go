package models

import (
	"time"
)

// DefaultDescription is assigned to fresh accounts until the player edits it.
const DefaultDescription = "Hey, I'm new here!"

// User represents a registered player. Account deletion only flips Active to
// false: the row is kept so old conversations stay readable and the handle
// stays reserved.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Handle       string `gorm:"uniqueIndex;size:20;not null" json:"handle"`
	Email        string `gorm:"uniqueIndex;size:255;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"` // Hashed, never exposed in JSON

	Description   string `gorm:"size:500" json:"description,omitempty"`
	Contact       string `gorm:"size:100" json:"contact,omitempty"`
	Discord       string `gorm:"size:100" json:"discord,omitempty"`
	Telegram      string `gorm:"size:100" json:"telegram,omitempty"`
	PreferredRole string `gorm:"size:50" json:"preferred_role,omitempty"`

	Active bool `gorm:"index" json:"active"`

	Games []Game `gorm:"constraint:OnDelete:CASCADE" json:"games,omitempty"`
}

// HasContact reports whether the player published at least one way to reach them.
func (u *User) HasContact() bool {
	return u.Contact != "" || u.Discord != "" || u.Telegram != ""
}
