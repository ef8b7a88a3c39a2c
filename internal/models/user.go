// Package models defines the record types persisted by the Arvo store.
package models

import "time"

// User is an account record. Identity is ID; Username is unique across all
// users at registration time. The password is stored in plain form — this is
// a single-profile local app, account security is explicitly out of scope.
type User struct {
	ID          string    `json:"id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"password"`
	Name        string    `json:"name"`
	Institution string    `json:"institution"`
	Major       string    `json:"major"`
	Bio         string    `json:"bio"`
	Role        string    `json:"role"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Clone returns a copy of the user. The session pointer stores a copy, not a
// live reference, so later edits to the stored record cannot leak into an
// unsynchronized session and vice versa.
func (u *User) Clone() *User {
	c := *u
	return &c
}
