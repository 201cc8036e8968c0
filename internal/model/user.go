package model

import "time"

// User represents an application user record as stored in the
// `users` table. Identifiers are UUID strings generated by the
// repository layer on insert. The password is never stored in
// plain text; only the bcrypt hash is persisted. Handlers define
// separate response types so the hash never leaks into JSON.
//
// Fields:
//  ID           – UUID primary key of the user.
//  Name         – display name.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password.
//  Location     – free-form home location.
//  Picture      – optional opaque picture reference (path or URL).
//  CreatedAt    – timestamp of creation.
type User struct {
	ID           string    // users.id
	Name         string    // users.name
	Username     string    // users.username
	PasswordHash string    // users.password_hash
	Location     string    // users.location
	Picture      *string   // users.picture (nullable)
	CreatedAt    time.Time // users.created_at
}

// PublicUser is the subset of User that is safe to expose on
// unauthenticated listing endpoints. It deliberately omits the
// password hash and picture reference.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Username string `json:"username"`
	Location string `json:"location"`
}
