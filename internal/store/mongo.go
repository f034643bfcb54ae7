package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/MiadHasan/freecodecamp-boilerplate-project-exercisetracker/internal/models"
)

var (
	// ErrNotFound is returned when no document matches the requested id.
	ErrNotFound = errors.New("not found")
	// ErrInvalidID is returned when an id is not a valid ObjectID hex string.
	ErrInvalidID = errors.New("invalid id")
)

// MongoStore handles user and exercise persistence in MongoDB.
type MongoStore struct {
	users     *mongo.Collection
	exercises *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{
		users:     db.Collection("users"),
		exercises: db.Collection("exercises"),
	}
}

// EnsureIndexes creates the owner index backing exercises-by-user lookups.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	_, err := s.exercises.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "owner", Value: 1}, {Key: "_id", Value: 1}},
		Options: options.Index().SetName("owner_1__id_1"),
	})
	if err != nil {
		return fmt.Errorf("create exercises index: %w", err)
	}
	return nil
}

// ParseID converts a hex string into an ObjectID.
func ParseID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidID, id)
	}
	return oid, nil
}

func (s *MongoStore) CreateUser(ctx context.Context, username string) (*models.User, error) {
	u := &models.User{ID: primitive.NewObjectID(), Username: username}
	if _, err := s.users.InsertOne(ctx, u); err != nil {
		return nil, fmt.Errorf("mongo insert user: %w", err)
	}
	return u, nil
}

func (s *MongoStore) ListUsers(ctx context.Context) ([]models.User, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.users.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find users: %w", err)
	}
	defer cur.Close(ctx)

	users := []models.User{}
	if err := cur.All(ctx, &users); err != nil {
		return nil, fmt.Errorf("mongo decode users: %w", err)
	}
	return users, nil
}

func (s *MongoStore) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	oid, err := ParseID(id)
	if err != nil {
		return nil, err
	}
	var u models.User
	err = s.users.FindOne(ctx, bson.M{"_id": oid}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, fmt.Errorf("user %s: %w", id, ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("mongo find user: %w", err)
	}
	return &u, nil
}

// InsertExercise stores ex, assigning it a new id.
func (s *MongoStore) InsertExercise(ctx context.Context, ex *models.Exercise) error {
	ex.ID = primitive.NewObjectID()
	if _, err := s.exercises.InsertOne(ctx, ex); err != nil {
		return fmt.Errorf("mongo insert exercise: %w", err)
	}
	return nil
}

// ListByOwner returns the exercises owned by a user in insertion order.
func (s *MongoStore) ListByOwner(ctx context.Context, owner primitive.ObjectID) ([]models.Exercise, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cur, err := s.exercises.Find(ctx, bson.M{"owner": owner}, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo find exercises: %w", err)
	}
	defer cur.Close(ctx)

	exercises := []models.Exercise{}
	if err := cur.All(ctx, &exercises); err != nil {
		return nil, fmt.Errorf("mongo decode exercises: %w", err)
	}
	return exercises, nil
}
