// Package models defines server-side data models persisted in the database.
package models

import "time"

// User is a registered account. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	DisplayName  *string   `json:"displayName"`
	Timezone     string    `json:"timezone"`
	CreatedAt    time.Time `json:"createdAt"`
}

// UserUpdate carries the profile fields a user may change. Nil means
// unchanged.
type UserUpdate struct {
	DisplayName *string
	Timezone    *string
}

// IsEmpty reports whether the update changes nothing.
func (u UserUpdate) IsEmpty() bool {
	return u.DisplayName == nil && u.Timezone == nil
}
