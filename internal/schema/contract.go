package schema

import (
	"encoding/json"
	"fmt"

	"github.com/invopop/jsonschema"

	"docpilot/internal/domain"
)

// ContractExtraction is the shape requested from the extraction capability
// when a contract is parsed in extract mode.
type ContractExtraction struct {
	DocumentText   string               `json:"documentText" jsonschema:"required" jsonschema_description:"Complete extracted text content from the document"`
	ContractType   ContractTypeFields   `json:"contractType" jsonschema:"required"`
	Parties        []PartyFields        `json:"parties" jsonschema:"required"`
	FinancialTerms FinancialTermsFields `json:"financialTerms" jsonschema:"required"`
	ImportantDates ImportantDatesFields `json:"importantDates" jsonschema:"required"`
	KeyTerms       KeyTermsFields       `json:"keyTerms" jsonschema:"required"`
	Obligations    []ObligationFields   `json:"obligations" jsonschema:"required"`
}

type ContractTypeFields struct {
	Category    string `json:"category" jsonschema_description:"Main contract category (Real Estate, Employment, Service Agreement, Lease, Purchase, Partnership, NDA, License, Other)"`
	Subcategory string `json:"subcategory" jsonschema_description:"Specific contract subtype"`
	Description string `json:"description" jsonschema_description:"Brief description of what this contract governs"`
}

type PartyFields struct {
	Name    string `json:"name" jsonschema_description:"Full legal name of party"`
	Role    string `json:"role" jsonschema_description:"Role in contract (Landlord, Tenant, Buyer, Seller, etc.)"`
	Contact string `json:"contact" jsonschema_description:"Contact information if available"`
}

type FinancialTermsFields struct {
	TotalValue      string `json:"totalValue" jsonschema_description:"Total contract value with currency"`
	Currency        string `json:"currency" jsonschema_description:"Currency used"`
	PaymentSchedule string `json:"paymentSchedule" jsonschema_description:"Payment schedule and frequency"`
	Penalties       string `json:"penalties" jsonschema_description:"Late fees, penalties, or liquidated damages"`
	Deposits        string `json:"deposits" jsonschema_description:"Security deposits or advance payments"`
}

type ImportantDatesFields struct {
	EffectiveDate  string   `json:"effectiveDate" jsonschema_description:"Contract start date"`
	ExpirationDate string   `json:"expirationDate" jsonschema_description:"Contract end date"`
	RenewalDate    string   `json:"renewalDate" jsonschema_description:"Renewal or extension dates"`
	NoticePeriod   string   `json:"noticePeriod" jsonschema_description:"Required notice period for termination"`
	KeyMilestones  []string `json:"keyMilestones" jsonschema_description:"Important deadlines and milestones"`
}

type KeyTermsFields struct {
	TerminationClause    string `json:"terminationClause" jsonschema_description:"How the contract can be terminated"`
	LiabilityLimits      string `json:"liabilityLimits" jsonschema_description:"Liability limitations and caps"`
	IntellectualProperty string `json:"intellectualProperty" jsonschema_description:"IP ownership and usage rights"`
	Confidentiality      string `json:"confidentiality" jsonschema_description:"Confidentiality terms"`
	DisputeResolution    string `json:"disputeResolution" jsonschema_description:"How disputes will be resolved"`
	GoverningLaw         string `json:"governingLaw" jsonschema_description:"Which jurisdiction's laws apply"`
}

type ObligationFields struct {
	Party        string   `json:"party" jsonschema_description:"Party name"`
	Obligations  []string `json:"obligations" jsonschema_description:"Specific obligations and responsibilities"`
	Deliverables []string `json:"deliverables" jsonschema_description:"What must be delivered"`
	Deadlines    []string `json:"deadlines" jsonschema_description:"When deliverables are due"`
}

// ContractSchema reflects ContractExtraction into an inline JSON Schema.
func ContractSchema() (*domain.ExtractionSchema, error) {
	r := &jsonschema.Reflector{
		DoNotReference:             true,
		ExpandedStruct:             true,
		AllowAdditionalProperties:  true,
		RequiredFromJSONSchemaTags: true,
	}
	s := r.Reflect(&ContractExtraction{})
	s.Version = ""
	s.ID = ""

	raw, err := json.Marshal(s)
	if err != nil {
		return nil, fmt.Errorf("marshaling contract schema: %w", err)
	}

	parsed, err := Parse(Contract, raw)
	if err != nil {
		return nil, fmt.Errorf("contract schema: %w", err)
	}
	parsed.ResponseName = ContractResponseName
	return parsed, nil
}
