package user

import "time"

type User struct {
	ID           string
	Email        string
	Name         string
	PasswordHash *string
	GoogleID     *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
