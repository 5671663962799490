package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/certportal/verification/dto"
)

func TestResolveByExtractedIdentifier(t *testing.T) {
	citizen := registeredCitizen()
	store := &fakeCitizenStore{byAadhaar: map[string]*dto.Citizen{"123456789012": citizen}}
	ocr := &fakeExtractor{}
	resolver := NewCitizenResolver(store, ocr, testLogger())

	app := &dto.Application{
		ID:               "app-1",
		FirstName:        "Ramesh",
		LastName:         "Kumar",
		DOB:              "15-03-1954",
		ExtractedDetails: map[string]string{"aadhaarNumber": "1234 5678 9012"},
	}

	got, err := resolver.Resolve(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, citizen, got)
	// the identifier came from extracted fields, so no OCR ran
	assert.Zero(t, ocr.calls)
	assert.Zero(t, store.nameLookups)
}

func TestResolveOCRFallbackForIdentifier(t *testing.T) {
	citizen := registeredCitizen()
	store := &fakeCitizenStore{byAadhaar: map[string]*dto.Citizen{"123456789012": citizen}}
	ocr := &fakeExtractor{responses: map[string]string{
		"digits:/uploads/aadhaar.png": "123456789012",
	}}
	resolver := NewCitizenResolver(store, ocr, testLogger())

	app := &dto.Application{
		ID:     "app-1",
		Proofs: map[string]string{"Aadhaar Card": "/uploads/aadhaar.png"},
	}

	got, err := resolver.Resolve(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, citizen, got)
	assert.Equal(t, 1, ocr.calls)
	// the OCR'd identifier is written back for later checks to reuse
	assert.Equal(t, "123456789012", app.ExtractedDetails["aadhaarNumber"])
}

func TestResolveShortIdentifierIsIgnored(t *testing.T) {
	store := &fakeCitizenStore{
		byName: map[string]*dto.Citizen{"ramesh|kumar|15-03-1954": registeredCitizen()},
	}
	resolver := NewCitizenResolver(store, &fakeExtractor{}, testLogger())

	app := &dto.Application{
		ID:               "app-1",
		FirstName:        "Ramesh",
		LastName:         "Kumar",
		DOB:              "15-03-1954",
		ExtractedDetails: map[string]string{"aadhaarNumber": "12345"},
	}

	got, err := resolver.Resolve(context.Background(), app)
	require.NoError(t, err)
	require.NotNil(t, got)
	// a non-12-digit value is treated as absent, so resolution skipped
	// straight to the name+dob path
	assert.Zero(t, store.aadhaarLookups)
	assert.Equal(t, 1, store.nameLookups)
}

func TestResolveNameAndDOBFallback(t *testing.T) {
	citizen := registeredCitizen()
	store := &fakeCitizenStore{
		byAadhaar: map[string]*dto.Citizen{},
		byName:    map[string]*dto.Citizen{"ramesh|kumar|15-03-1954": citizen},
	}
	resolver := NewCitizenResolver(store, &fakeExtractor{}, testLogger())

	app := &dto.Application{
		ID:               "app-1",
		FirstName:        " Ramesh ",
		LastName:         "KUMAR",
		DOB:              "15-03-1954",
		ExtractedDetails: map[string]string{"aadhaarNumber": "999999999999"},
	}

	got, err := resolver.Resolve(context.Background(), app)
	require.NoError(t, err)
	assert.Same(t, citizen, got)
	assert.Equal(t, 1, store.aadhaarLookups)
	assert.Equal(t, 1, store.nameLookups)
}

func TestResolveNoMatchReturnsNil(t *testing.T) {
	store := &fakeCitizenStore{}
	resolver := NewCitizenResolver(store, &fakeExtractor{}, testLogger())

	app := &dto.Application{
		ID:        "app-1",
		FirstName: "Ghost",
		LastName:  "Applicant",
		DOB:       "01-01-1990",
	}

	got, err := resolver.Resolve(context.Background(), app)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestResolveIncompleteNameSkipsFallback(t *testing.T) {
	store := &fakeCitizenStore{}
	resolver := NewCitizenResolver(store, &fakeExtractor{}, testLogger())

	app := &dto.Application{ID: "app-1", FirstName: "Ramesh"}

	got, err := resolver.Resolve(context.Background(), app)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.Zero(t, store.nameLookups)
}
