package models

import "time"

// User represents a registered member of the prediction community.
// The password column stores a bcrypt hash and is never serialized.
type User struct {
	ID          uint         `gorm:"primaryKey" json:"id"`
	Username    string       `gorm:"unique;not null" json:"username"`
	Email       string       `gorm:"unique;not null" json:"email"`
	Password    string       `gorm:"not null" json:"-"`
	CreatedAt   time.Time    `json:"created_at"`
	UpdatedAt   time.Time    `json:"updated_at"`
	Predictions []Prediction `gorm:"foreignKey:CreatedBy" json:"predictions,omitempty"`
}

// PublicUser is the caller-facing projection of a user record.
type PublicUser struct {
	ID       uint   `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Public returns the projection of u that is safe to send back to callers.
func (u *User) Public() PublicUser {
	return PublicUser{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
	}
}
