package models

import (
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
)

// Account — каноническая запись идентичности в документном хранилище.
// Email уникален (уникальный индекс по коллекции), phone хранится
// только для роли modelo.
type Account struct {
	ID           bson.ObjectID `bson:"_id,omitempty"`
	Email        string        `bson:"email"`
	PasswordHash string        `bson:"password_hash"`
	Alias        string        `bson:"alias"`
	Role         AccountRole   `bson:"role"`
	Phone        string        `bson:"phone,omitempty"`
	CreatedAt    time.Time     `bson:"created_at"`
	UpdatedAt    time.Time     `bson:"updated_at"`
}
