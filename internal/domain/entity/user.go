package entity

import "time"

// User is a registered account. Email is the login identity and the token subject.
// Password holds the bcrypt hash, never the plain text.
type User struct {
	ID        string
	Email     string
	Password  string
	Role      Role
	CreatedAt time.Time
}
