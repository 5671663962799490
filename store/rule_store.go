package store

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/certportal/verification/dto"
)

// DefaultRules is the shipped checklist set. EnsureSeed upserts these so a
// fresh database serves the standard document types immediately; operators
// administer further rules directly in the collection.
var DefaultRules = []dto.DocumentRule{
	{
		DocumentType:   "Senior Citizen Certificate",
		RequiredProofs: []string{"Age Proof", "Aadhaar Card"},
		MinAge:         60,
	},
	{
		DocumentType:   "Birth Certificate",
		RequiredProofs: []string{"Parent Identity Proof", "Address Proof"},
	},
	{
		DocumentType:   "Marriage Certificate",
		RequiredProofs: []string{"Marriage Certificate", "Aadhaar Card", "Address Proof"},
	},
	{
		DocumentType:   "Income Certificate",
		RequiredProofs: []string{"Aadhaar Card", "Income Proof", "Bank Statement"},
	},
	{
		DocumentType:   "Caste Certificate",
		RequiredProofs: []string{"Aadhaar Card", "Caste Proof", "School Leaving Certificate"},
	},
	{
		DocumentType:   "Domicile Certificate",
		RequiredProofs: []string{"Aadhaar Card", "Address Proof", "School Leaving Certificate"},
	},
	{
		DocumentType:   "Land Holding Certificate",
		RequiredProofs: []string{"Aadhaar Card", "Land Ownership Proof"},
	},
	{
		DocumentType:   "Employment Certificate",
		RequiredProofs: []string{"Aadhaar Card", "Employer Details"},
	},
	{
		DocumentType:   "Factory License",
		RequiredProofs: []string{"Aadhaar Card", "Factory Layout Plan", "Manufacturer Approval"},
	},
}

// MongoRuleStore reads per-document-type checklists. Read-only at
// verification time.
type MongoRuleStore struct {
	collection *mongo.Collection
}

func NewMongoRuleStore(db *mongo.Database) *MongoRuleStore {
	return &MongoRuleStore{
		collection: db.Collection("document_rules"),
	}
}

// GetRule returns dto.ErrRuleNotFound for unconfigured document types; that
// is a configuration error, not an applicant mismatch.
func (s *MongoRuleStore) GetRule(ctx context.Context, documentType string) (*dto.DocumentRule, error) {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	var rule dto.DocumentRule
	err := s.collection.FindOne(ctx, bson.M{"_id": documentType}).Decode(&rule)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, dto.ErrRuleNotFound
	}
	if err != nil {
		return nil, err
	}
	return &rule, nil
}

// EnsureSeed upserts the default rule set.
func (s *MongoRuleStore) EnsureSeed(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, queryTimeout)
	defer cancel()

	for _, rule := range DefaultRules {
		filter := bson.M{"_id": rule.DocumentType}
		update := bson.M{"$set": bson.M{
			"required_proofs": rule.RequiredProofs,
			"min_age":         rule.MinAge,
			"max_income":      rule.MaxIncome,
		}}
		if _, err := s.collection.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true)); err != nil {
			return err
		}
	}
	return nil
}
