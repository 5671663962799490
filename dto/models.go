package dto

import "time"

type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusApproved ApplicationStatus = "Approved"
	StatusRejected ApplicationStatus = "Rejected"
)

// Application is one citizen's submission for one document type.
// Proofs maps a proof name (e.g. "Aadhaar Card") to the uploaded file path.
// ExtractedDetails holds OCR'd field values keyed by field name; it is
// populated the first time OCR runs and reused on later runs.
type Application struct {
	ID               string            `bson:"_id" json:"id"`
	UserID           int64             `bson:"user_id" json:"user_id"`
	FirstName        string            `bson:"first_name" json:"first_name"`
	LastName         string            `bson:"last_name" json:"last_name"`
	Email            string            `bson:"email" json:"email,omitempty"`
	Phone            string            `bson:"phone" json:"phone,omitempty"`
	DOB              string            `bson:"dob" json:"dob,omitempty"` // DD-MM-YYYY
	DocumentType     string            `bson:"document_type" json:"document_type"`
	Proofs           map[string]string `bson:"proofs" json:"proofs"`
	ExtractedDetails map[string]string `bson:"extracted_details" json:"extracted_details,omitempty"`
	Agreement        bool              `bson:"agreement" json:"agreement"`
	Status           ApplicationStatus `bson:"status" json:"status"`
	RejectionReason  string            `bson:"rejection_reason" json:"rejection_reason,omitempty"`
	History          []StatusChange    `bson:"history" json:"history,omitempty"`
	CreatedAt        time.Time         `bson:"created_at" json:"created_at"`
	UpdatedAt        time.Time         `bson:"updated_at" json:"updated_at"`
}

// StatusChange is one audit history entry. Entries are appended on every
// admin transition, never overwritten.
type StatusChange struct {
	From ApplicationStatus `bson:"from" json:"from"`
	To   ApplicationStatus `bson:"to" json:"to"`
	By   string            `bson:"by" json:"by,omitempty"`
	Note string            `bson:"note" json:"note,omitempty"`
	At   time.Time         `bson:"at" json:"at"`
}

// Citizen is a master registry record, seeded out-of-band and read-only
// from the verification engine's perspective.
type Citizen struct {
	ID            string `bson:"_id,omitempty" json:"id,omitempty"`
	FirstName     string `bson:"first_name" json:"first_name"`
	LastName      string `bson:"last_name" json:"last_name"`
	FatherName    string `bson:"father_name" json:"father_name,omitempty"`
	MotherName    string `bson:"mother_name" json:"mother_name,omitempty"`
	SpouseName    string `bson:"spouse_name" json:"spouse_name,omitempty"`
	DOB           string `bson:"dob" json:"dob"` // DD-MM-YYYY
	AadhaarNumber string `bson:"aadhaar_number" json:"aadhaar_number"`
	PanNumber     string `bson:"pan_number" json:"pan_number,omitempty"`
	Address       string `bson:"address" json:"address,omitempty"`
	Email         string `bson:"email" json:"email,omitempty"`
	Phone         string `bson:"phone" json:"phone,omitempty"`
}

// DocumentRule is the checklist for one document type. RequiredProofs is
// ordered; the engine evaluates and reports in this order.
type DocumentRule struct {
	DocumentType   string   `bson:"_id" json:"document_type"`
	RequiredProofs []string `bson:"required_proofs" json:"required_proofs"`
	MinAge         int      `bson:"min_age,omitempty" json:"min_age,omitempty"`
	MaxIncome      float64  `bson:"max_income,omitempty" json:"max_income,omitempty"`
}

// Verdict is the outcome of one verification run. Eligible is always derived
// from MismatchReasons being empty, never set independently.
type Verdict struct {
	Eligible        bool     `json:"eligible"`
	MismatchReasons []string `json:"mismatchReasons"`
	Narrative       string   `json:"narrative,omitempty"`
}

// NewVerdict derives the eligibility flag from the accumulated mismatches.
func NewVerdict(mismatches []string) Verdict {
	if mismatches == nil {
		mismatches = []string{}
	}
	return Verdict{
		Eligible:        len(mismatches) == 0,
		MismatchReasons: mismatches,
	}
}
