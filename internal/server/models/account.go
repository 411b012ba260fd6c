// Package models holds the server-side domain types persisted by the
// repositories.
package models

import "time"

// Account is a username/password identity scoped to a single project.
// The same username may exist independently in different projects.
type Account struct {
	ID           string
	Username     string
	ProjectID    string
	PasswordHash string
	CreatedAt    time.Time
}
