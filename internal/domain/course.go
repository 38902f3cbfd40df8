package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Course is a catalog entry. The business identifier is the numeric id
// field, not the store's native _id.
type Course struct {
	OID      primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	ID       int                `json:"id" bson:"id"`
	Topic    string             `json:"topic" bson:"topic"`
	Location string             `json:"location" bson:"location"`
	Price    int                `json:"price" bson:"price"`
	Spaces   int                `json:"spaces" bson:"spaces"`
	Image    string             `json:"image,omitempty" bson:"image,omitempty"`
}
