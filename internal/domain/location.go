package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// Location is reference data a project points at. LocalName is the localized
// display name surfaced in project views.
type Location struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name      string             `bson:"name" json:"name"`
	LocalName string             `bson:"local_name" json:"localName"`
}
