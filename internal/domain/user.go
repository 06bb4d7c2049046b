package domain

import (
	"context"
	"time"
)

type User struct {
	ID        string
	Name      string
	Email     string
	CreatedAt time.Time
}

type UserRepository interface {
	GetById(ctx context.Context, id string) (*User, error)
}
