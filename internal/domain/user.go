package domain

import (
	"time"
)

// User is an account that owns routines, workouts and custom exercises.
type User struct {
	ID           string    `bson:"_id" json:"id" gorm:"primaryKey"`
	Name         string    `bson:"name" json:"name"`
	Email        string    `bson:"email" json:"email" gorm:"uniqueIndex"` // Should be unique
	PasswordHash string    `bson:"passwordHash" json:"-"`                // Never expose this via JSON
	CreatedAt    time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt    time.Time `bson:"updatedAt" json:"updatedAt"`
}
