package domain

// Capability is one of the vendor functions the relay fronts.
type Capability string

const (
	CapabilityDocumentParse      Capability = "document-parse"
	CapabilityInformationExtract Capability = "information-extract"
	CapabilityReasoningChat      Capability = "reasoning-chat"
)

// ChatRole identifies the author of a chat message.
type ChatRole string

const (
	RoleSystem    ChatRole = "system"
	RoleUser      ChatRole = "user"
	RoleAssistant ChatRole = "assistant"
)

// ValidChatRoles lists the roles accepted in relayed chat messages.
var ValidChatRoles = map[ChatRole]bool{
	RoleSystem:    true,
	RoleUser:      true,
	RoleAssistant: true,
}

// ReasoningEffort trades latency for depth of the model's deliberation.
type ReasoningEffort string

const (
	ReasoningLow    ReasoningEffort = "low"
	ReasoningMedium ReasoningEffort = "medium"
	ReasoningHigh   ReasoningEffort = "high"
)

// ValidReasoningEfforts lists the accepted reasoning effort hints.
var ValidReasoningEfforts = map[ReasoningEffort]bool{
	ReasoningLow:    true,
	ReasoningMedium: true,
	ReasoningHigh:   true,
}

// ProcessingStage tracks a contract analysis through the pipeline.
type ProcessingStage string

const (
	StageUpload    ProcessingStage = "upload"
	StageParsing   ProcessingStage = "parsing"
	StageAnalyzing ProcessingStage = "analyzing"
	StageComplete  ProcessingStage = "complete"
)

// RiskLevel is the contract risk band.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskMedium   RiskLevel = "medium"
	RiskHigh     RiskLevel = "high"
	RiskCritical RiskLevel = "critical"
)

// ValidRiskLevels lists the accepted risk bands.
var ValidRiskLevels = map[RiskLevel]bool{
	RiskLow:      true,
	RiskMedium:   true,
	RiskHigh:     true,
	RiskCritical: true,
}

// RiskLevelForScore derives a risk band from a 1-100 score.
func RiskLevelForScore(score int) RiskLevel {
	switch {
	case score <= 25:
		return RiskLow
	case score <= 50:
		return RiskMedium
	case score <= 75:
		return RiskHigh
	default:
		return RiskCritical
	}
}

// TextStrategy names the normalizer strategy that produced a document's text.
type TextStrategy string

const (
	StrategyElements    TextStrategy = "elements"
	StrategyContentText TextStrategy = "content.text"
	StrategyContentHTML TextStrategy = "content.html"
	StrategyHTML        TextStrategy = "html"
)

// ParseMode selects how the document-parse relay obtains text.
type ParseMode string

const (
	ParseModeDigitize ParseMode = "digitize"
	ParseModeExtract  ParseMode = "extract"
)

// AdvisoryExtensions is the UI filtering allow-list. The vendor remains the
// authority on what it accepts; intake never rejects on type.
var AdvisoryExtensions = map[string]string{
	"pdf":  "application/pdf",
	"docx": "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	"pptx": "application/vnd.openxmlformats-officedocument.presentationml.presentation",
	"xlsx": "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet",
	"png":  "image/png",
	"jpg":  "image/jpeg",
	"jpeg": "image/jpeg",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
	"heic": "image/heic",
	"hwp":  "application/x-hwp",
}
