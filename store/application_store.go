package store

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/certportal/verification/dto"
)

// MongoApplicationStore handles MongoDB operations for applications.
type MongoApplicationStore struct {
	collection *mongo.Collection
}

func NewMongoApplicationStore(db *mongo.Database) *MongoApplicationStore {
	return &MongoApplicationStore{
		collection: db.Collection("applications"),
	}
}

func (s *MongoApplicationStore) Create(ctx context.Context, app *dto.Application) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	_, err := s.collection.InsertOne(ctx, app)
	return err
}

func (s *MongoApplicationStore) GetByID(ctx context.Context, id string) (*dto.Application, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var app dto.Application
	err := s.collection.FindOne(ctx, bson.M{"_id": id}).Decode(&app)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, dto.ErrApplicationNotFound
	}
	if err != nil {
		return nil, err
	}
	return &app, nil
}

// UpdateStatus transitions the application and appends the change to its
// audit history. Concurrent updates are last-write-wins at this layer.
func (s *MongoApplicationStore) UpdateStatus(ctx context.Context, id string, change dto.StatusChange) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	update := bson.M{
		"$set": bson.M{
			"status":     change.To,
			"updated_at": change.At,
		},
		"$push": bson.M{"history": change},
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return dto.ErrApplicationNotFound
	}
	return nil
}

// SaveVerification merges a verification run's output back onto the record:
// rejection reason (narrative or joined mismatches) and any extracted
// details gathered during OCR, so later runs reuse them.
func (s *MongoApplicationStore) SaveVerification(ctx context.Context, id string, rejectionReason string, extracted map[string]string) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	set := bson.M{
		"rejection_reason": rejectionReason,
		"updated_at":       time.Now(),
	}
	if len(extracted) > 0 {
		set["extracted_details"] = extracted
	}

	result, err := s.collection.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if result.MatchedCount == 0 {
		return dto.ErrApplicationNotFound
	}
	return nil
}
