package entities

import "time"

type Role string

const (
	RoleStudent Role = "student"
	RoleTeacher Role = "teacher"
)

// User is the persisted user record. Email is the identity used for lookups;
// ID is the token subject.
type User struct {
	ID             string    `gorm:"primaryKey;type:text" json:"id"`
	Name           string    `gorm:"size:200;not null" json:"name"`
	Email          string    `gorm:"uniqueIndex;size:320;not null" json:"email"`
	Role           Role      `gorm:"size:20;not null" json:"role"`
	HashedPassword string    `gorm:"size:255;not null" json:"-"`
	Grade          *string   `gorm:"size:50" json:"grade,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (User) TableName() string {
	return "users"
}

// PublicUser is what callers outside the auth core get to see.
type PublicUser struct {
	ID    string  `json:"id"`
	Name  string  `json:"name"`
	Email string  `json:"email"`
	Role  Role    `json:"role"`
	Grade *string `json:"grade,omitempty"`
}

// Public strips the password digest.
func (u *User) Public() *PublicUser {
	return &PublicUser{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
		Role:  u.Role,
		Grade: u.Grade,
	}
}
