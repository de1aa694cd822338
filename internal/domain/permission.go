package domain

import "go.mongodb.org/mongo-driver/bson/primitive"

// PermissionName is the stable key of a permission level. Call sites compare
// and look up permissions by name, never by raw identity.
type PermissionName string

const (
	PermissionOwner    PermissionName = "owner"
	PermissionCanEdit  PermissionName = "can_edited"
	PermissionReadOnly PermissionName = "read_only"
)

// DefaultPermissions is the fixed catalog seeded on first startup.
var DefaultPermissions = []PermissionName{
	PermissionOwner,
	PermissionCanEdit,
	PermissionReadOnly,
}

// Permission is an immutable reference document naming a capability tier.
// There is no hierarchy between tiers; authorization compares names against
// an operation's allowed set.
type Permission struct {
	ID   primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name PermissionName     `bson:"name" json:"name"`
}
