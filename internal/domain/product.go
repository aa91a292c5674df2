package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Product is a catalog entry. Prices are non-negative decimals stored as
// Mongo doubles; cart items snapshot them at add time.
type Product struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	Name        string             `bson:"nome" json:"nome"`
	Price       float64            `bson:"preco" json:"preco"`
	ImageURL    string             `bson:"urlfoto" json:"urlfoto"`
	Description string             `bson:"descricao" json:"descricao"`
}
