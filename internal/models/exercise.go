package models

import "go.mongodb.org/mongo-driver/bson/primitive"

// Exercise is a document in the exercises collection. Date holds the
// canonical date string, never a structured date.
type Exercise struct {
	ID          primitive.ObjectID `json:"_id"         bson:"_id"`
	Duration    float64            `json:"duration"    bson:"duration"`
	Description string             `json:"description" bson:"description"`
	Date        string             `json:"date"        bson:"date"`
	Owner       primitive.ObjectID `json:"owner"       bson:"owner"`
}

// CreateExerciseRequest is the body for POST /api/users/{_id}/exercises.
// Duration is a pointer so that a missing value and zero can be told apart.
type CreateExerciseRequest struct {
	Description string   `json:"description" validate:"required"`
	Duration    *float64 `json:"duration"    validate:"required,gte=0"`
	Date        string   `json:"date"`
}

// ExerciseResponse is returned after an exercise is created. ID carries the
// owner's id, which is what existing clients of this API read back.
type ExerciseResponse struct {
	Username    string  `json:"username"`
	Duration    float64 `json:"duration"`
	Description string  `json:"description"`
	Date        string  `json:"date"`
	ID          string  `json:"_id"`
}

// LogEntry is the projection of an Exercise shown in a user's log.
type LogEntry struct {
	Description string  `json:"description"`
	Duration    float64 `json:"duration"`
	Date        string  `json:"date"`
}

// LogResponse is the body for GET /api/users/{_id}/logs.
type LogResponse struct {
	Username string     `json:"username"`
	Count    int        `json:"count"`
	ID       string     `json:"_id"`
	Log      []LogEntry `json:"log"`
}
