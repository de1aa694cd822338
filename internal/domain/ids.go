package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// ParseID validates that raw is a well-formed entity reference and converts
// it. Malformed input is a ValidationError on the named field, raised before
// any data-store access happens.
func ParseID(field, raw string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		return primitive.NilObjectID, InvalidID(field)
	}
	return id, nil
}
