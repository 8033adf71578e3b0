package domain

import (
	"encoding/base64"
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// UploadedFile is a document accepted by the intake adapter.
// It is held for a single request and discarded after normalization.
type UploadedFile struct {
	Name        string `json:"name"`
	ContentType string `json:"content_type"`
	Size        int64  `json:"size"`
	Content     []byte `json:"-"`
	Advisory    bool   `json:"advisory"` // extension is on the advisory allow-list
}

// DataURI returns the file content as a base64 data URI.
func (f *UploadedFile) DataURI() string {
	return "data:" + f.ContentType + ";base64," + base64.StdEncoding.EncodeToString(f.Content)
}

// ExtractionSchema is a JSON Schema describing the desired extraction output.
// Immutable once a request is issued.
type ExtractionSchema struct {
	Name         string          `json:"name"`
	ResponseName string          `json:"-"` // response_format.json_schema.name on the wire
	Raw          json.RawMessage `json:"schema"`
	Properties   []string        `json:"properties"` // declared top-level keys, in declaration order
}

// NormalizedDocument is the canonical plain-text body of a parsed document.
type NormalizedDocument struct {
	PlainText string       `json:"plain_text"`
	Strategy  TextStrategy `json:"strategy"`
}

// ContractType classifies a contract.
type ContractType struct {
	Category    string `json:"category"`
	Subcategory string `json:"subcategory"`
	Description string `json:"description"`
}

// Party is a contract party.
type Party struct {
	Name    string `json:"name"`
	Role    string `json:"role"`
	Contact string `json:"contact,omitempty"`
}

// FinancialTerms holds the money-related contract terms.
type FinancialTerms struct {
	TotalValue      string `json:"totalValue"`
	Currency        string `json:"currency"`
	PaymentSchedule string `json:"paymentSchedule"`
	Penalties       string `json:"penalties"`
	Deposits        string `json:"deposits"`
}

// ImportantDates holds contract dates and milestones.
type ImportantDates struct {
	EffectiveDate  string   `json:"effectiveDate"`
	ExpirationDate string   `json:"expirationDate"`
	RenewalDate    string   `json:"renewalDate"`
	NoticePeriod   string   `json:"noticePeriod"`
	KeyMilestones  []string `json:"keyMilestones"`
}

// RiskFactor is a single identified risk.
type RiskFactor struct {
	Category    string `json:"category"`
	Description string `json:"description"`
	Severity    string `json:"severity"`
}

// RiskAssessment scores overall contract risk on a 1-100 scale.
type RiskAssessment struct {
	OverallRisk     RiskLevel    `json:"overallRisk"`
	RiskScore       int          `json:"riskScore"`
	RiskFactors     []RiskFactor `json:"riskFactors"`
	Recommendations []string     `json:"recommendations"`
	RedFlags        []string     `json:"redFlags"`
}

// KeyTerms holds the notable legal clauses.
type KeyTerms struct {
	TerminationClause    string `json:"terminationClause"`
	LiabilityLimits      string `json:"liabilityLimits"`
	IntellectualProperty string `json:"intellectualProperty"`
	Confidentiality      string `json:"confidentiality"`
	DisputeResolution    string `json:"disputeResolution"`
	GoverningLaw         string `json:"governingLaw"`
}

// Obligation lists what one party must do.
type Obligation struct {
	Party        string   `json:"party"`
	Obligations  []string `json:"obligations"`
	Deliverables []string `json:"deliverables"`
	Deadlines    []string `json:"deadlines"`
}

// AnalysisResult is the structured contract analysis produced from an LLM answer.
type AnalysisResult struct {
	DocumentText   string         `json:"documentText,omitempty"`
	ContractType   ContractType   `json:"contractType"`
	Parties        []Party        `json:"parties"`
	FinancialTerms FinancialTerms `json:"financialTerms"`
	ImportantDates ImportantDates `json:"importantDates"`
	RiskAssessment RiskAssessment `json:"riskAssessment"`
	KeyTerms       KeyTerms       `json:"keyTerms"`
	Obligations    []Obligation   `json:"obligations"`
	Summary        string         `json:"summary"`
}

// ChatTurn is one entry of a conversation transcript. Never mutated after creation.
type ChatTurn struct {
	ID        uuid.UUID `json:"id"`
	Seq       int       `json:"seq"`
	Role      ChatRole  `json:"role"`
	Content   string    `json:"content"`
	Reasoning string    `json:"reasoning,omitempty"`
	Error     bool      `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Conversation is an append-only, chronologically ordered list of chat turns.
type Conversation struct {
	ID              uuid.UUID  `json:"id"`
	DocumentContext string     `json:"document_context,omitempty"`
	Turns           []ChatTurn `json:"turns"`
	CreatedAt       time.Time  `json:"created_at"`
}

// ChatMessage is a vendor chat message. Content is a string or a list of content parts.
type ChatMessage struct {
	Role    ChatRole    `json:"role"`
	Content interface{} `json:"content"`
}

// ContentPart is one element of a multi-part chat message.
type ContentPart struct {
	Type     string    `json:"type"`
	Text     string    `json:"text,omitempty"`
	ImageURL *ImageURL `json:"image_url,omitempty"`
}

// ImageURL carries a data URI or remote URL for a document or image part.
type ImageURL struct {
	URL string `json:"url"`
}

// AnalysisSnapshot is a point-in-time copy of a contract analysis session.
type AnalysisSnapshot struct {
	SessionID uuid.UUID       `json:"session_id"`
	Stage     ProcessingStage `json:"stage"`
	Analysis  *AnalysisResult `json:"analysis,omitempty"`
	Warnings  []string        `json:"warnings,omitempty"`
	LastError string          `json:"last_error,omitempty"`
	UpdatedAt time.Time       `json:"updated_at"`
}
