// Package models holds the server-side persistence models. Vault records
// themselves live in the records package; here are only the identity rows.
package models

import "time"

type User struct {
	ID           string
	Email        string
	PasswordHash []byte
	CreatedAt    time.Time
}
