package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// User is a document in the users collection. Usernames are not unique.
type User struct {
	ID       primitive.ObjectID `json:"_id"      bson:"_id"`
	Username string             `json:"username" bson:"username"`
}

// CreateUserRequest is the body for POST /api/users.
type CreateUserRequest struct {
	Username string `json:"username" validate:"required"`
}
