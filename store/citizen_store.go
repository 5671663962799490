package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/certportal/verification/dto"
	"github.com/certportal/verification/utils"
)

// MongoCitizenStore reads the master citizen registry. The registry is
// seeded out-of-band with digit-only identifiers; queries arrive already
// normalized the same way.
type MongoCitizenStore struct {
	collection *mongo.Collection
}

func NewMongoCitizenStore(db *mongo.Database) *MongoCitizenStore {
	return &MongoCitizenStore{
		collection: db.Collection("citizens"),
	}
}

// FindByAadhaar looks up a citizen by exact normalized identifier.
// Returns (nil, nil) when no record matches.
func (s *MongoCitizenStore) FindByAadhaar(ctx context.Context, aadhaar string) (*dto.Citizen, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var citizen dto.Citizen
	err := s.collection.FindOne(ctx, bson.M{"aadhaar_number": utils.ExtractDigits(aadhaar)}).Decode(&citizen)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &citizen, nil
}

// FindByNameAndDOB is the compound fallback lookup. The DOB string is matched
// literally; names are compared in normalized form, so candidates are fetched
// by DOB and filtered here rather than in the query.
func (s *MongoCitizenStore) FindByNameAndDOB(ctx context.Context, firstName, lastName, dob string) (*dto.Citizen, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	cursor, err := s.collection.Find(ctx, bson.M{"dob": dob})
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	first := utils.Normalize(firstName)
	last := utils.Normalize(lastName)

	for cursor.Next(ctx) {
		var citizen dto.Citizen
		if err := cursor.Decode(&citizen); err != nil {
			continue
		}
		if utils.Normalize(citizen.FirstName) == first && utils.Normalize(citizen.LastName) == last {
			return &citizen, nil
		}
	}
	return nil, cursor.Err()
}
