package model

import "time"

// Credential is a stored signup record. Records are append-only: there is
// no update or delete path, matching the original storage layout.
type Credential struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"` // bcrypt hash
}

// Session identifies the currently authenticated user. At most one session
// exists at a time; a new login overwrites the previous one.
type Session struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	LoginTime time.Time `json:"login_time"`
}
