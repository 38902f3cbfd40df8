package domain

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderLesson references a course by its numeric id
type OrderLesson struct {
	CourseID int `json:"id" bson:"id"`
	Spaces   int `json:"spaces,omitempty" bson:"spaces,omitempty"`
}

// Order is identified by the store's native _id and is immutable once
// created. CreatedAt is stamped server-side at insert time.
type Order struct {
	OID         primitive.ObjectID `json:"-" bson:"_id,omitempty"`
	FirstName   string             `json:"firstName" bson:"firstName"`
	LastName    string             `json:"lastName" bson:"lastName"`
	Address     string             `json:"address" bson:"address"`
	PhoneNumber string             `json:"phoneNumber" bson:"phoneNumber"`
	Email       string             `json:"email" bson:"email"`
	Lessons     []OrderLesson      `json:"lessons" bson:"lessons"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
}
