package intake

import "boreal/internal/models"

// Submission is the canonical flattened form of a client payload after
// normalization. Raw retains the payload exactly as received.
type Submission struct {
	ClientApplicationID string

	RequestedAmount float64
	UseOfFunds      string
	Country         string
	ProductCategory string

	BusinessName string
	EntityType   string
	Industry     string
	Address      string
	City         string
	State        string
	PostalCode   string
	TaxID        string

	MonthsInBusiness int
	MonthlyRevenue   float64

	FirstName string
	LastName  string
	Email     string
	Phone     string

	PartnerFirstName string
	PartnerLastName  string
	PartnerEmail     string

	// DocumentsUploaded counts files attached at submission time; zero
	// triggers the missing-documents SMS after persistence.
	DocumentsUploaded int

	Raw models.JSON
}

// Result is returned once an application has been durably persisted.
type Result struct {
	ApplicationID string           `json:"applicationId"`
	ExternalID    string           `json:"externalId"`
	Status        string           `json:"status"`
	Business      *models.Business `json:"business"`
	// Reused reports that a client-supplied application id matched an
	// existing row (idempotent retry).
	Reused bool `json:"-"`
}
