package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a registered account. PasswordHash is the bcrypt hash of the
// password and never leaves the server.
type User struct {
	ID           primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name         string             `bson:"nome" json:"nome"`
	Age          int                `bson:"idade" json:"idade"`
	Email        string             `bson:"email" json:"email"`
	PasswordHash string             `bson:"senha" json:"-"`
}
