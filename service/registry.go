package service

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/certportal/verification/client"
	"github.com/certportal/verification/dto"
	"github.com/certportal/verification/utils"
)

const aadhaarLength = 12

// identifierAliasKeys is the resolution order for the several spellings the
// portal has historically used for the same extracted field.
var identifierAliasKeys = []string{
	"aadhaarNumber",
	"aadhaar_no",
	"aadhaar",
	"uid",
	"idNumber",
}

// identifierProofNames are the proof tags whose file can be OCR'd for the
// identifier when the extracted fields carry nothing usable.
var identifierProofNames = []string{"Aadhaar Card", "Identity Proof"}

// CitizenStore is the registry lookup surface. Both finders return
// (nil, nil) when no record matches; errors mean the store itself failed.
type CitizenStore interface {
	FindByAadhaar(ctx context.Context, aadhaar string) (*dto.Citizen, error)
	FindByNameAndDOB(ctx context.Context, firstName, lastName, dob string) (*dto.Citizen, error)
}

// CitizenResolver resolves an application to its master registry record:
// normalized identifier first, then name plus literal date-of-birth string.
type CitizenResolver struct {
	citizens CitizenStore
	ocr      Extractor
	log      *zap.SugaredLogger
}

func NewCitizenResolver(citizens CitizenStore, ocr Extractor, log *zap.SugaredLogger) *CitizenResolver {
	return &CitizenResolver{
		citizens: citizens,
		ocr:      ocr,
		log:      log,
	}
}

// Resolve returns nil (with nil error) when neither strategy matches; the
// caller turns that into a hard negative verdict.
func (r *CitizenResolver) Resolve(ctx context.Context, app *dto.Application) (*dto.Citizen, error) {
	if id := r.candidateIdentifier(ctx, app); id != "" {
		citizen, err := r.citizens.FindByAadhaar(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("identifier lookup failed: %w", err)
		}
		if citizen != nil {
			return citizen, nil
		}
		r.log.Debugw("no registry match for identifier, trying name+dob", "application", app.ID)
	}

	first := utils.Normalize(app.FirstName)
	last := utils.Normalize(app.LastName)
	if first == "" || last == "" || app.DOB == "" {
		return nil, nil
	}

	citizen, err := r.citizens.FindByNameAndDOB(ctx, first, last, app.DOB)
	if err != nil {
		return nil, fmt.Errorf("name+dob lookup failed: %w", err)
	}
	return citizen, nil
}

// candidateIdentifier gathers a 12-digit identifier from extracted fields in
// alias order, falling back to digits-mode OCR on the identifier proof file.
// Anything that does not normalize to exactly 12 digits is treated as absent.
func (r *CitizenResolver) candidateIdentifier(ctx context.Context, app *dto.Application) string {
	for _, key := range identifierAliasKeys {
		digits := utils.ExtractDigits(app.ExtractedDetails[key])
		if len(digits) == aadhaarLength {
			return digits
		}
	}

	for _, proof := range identifierProofNames {
		path, ok := app.Proofs[proof]
		if !ok || path == "" {
			continue
		}
		text, err := r.ocr.Extract(ctx, path, client.ModeDigits)
		if err != nil {
			r.log.Warnw("identifier OCR failed during resolution", "application", app.ID, "proof", proof, "error", err)
			continue
		}
		digits := utils.ExtractDigits(text)
		if len(digits) == aadhaarLength {
			if app.ExtractedDetails == nil {
				app.ExtractedDetails = make(map[string]string)
			}
			app.ExtractedDetails[identifierAliasKeys[0]] = digits
			return digits
		}
	}

	return ""
}
