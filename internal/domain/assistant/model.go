package assistant

import (
	"time"

	"github.com/yanqian/ai-health-assistant/pkg/metrics"
)

// InputMode selects where the report text of an analysis request comes from.
type InputMode string

const (
	ModeUploadPDF InputMode = "Upload PDF"
	ModePasteText InputMode = "Paste Text"
)

// InvalidInputMessage is returned instead of an analysis when the selected
// mode has nothing to analyze.
const InvalidInputMessage = "Please provide a valid input."

// Config configures the assistant domain.
type Config struct {
	// CompletionTimeout bounds a single backend call. Zero leaves the
	// caller's context untouched.
	CompletionTimeout time.Duration
}

// ReportInput is the analyze-report payload. Only the field matching Mode is
// consulted. Pasted text that is empty or whitespace-only counts as missing
// and yields InvalidInputMessage without calling the backend.
type ReportInput struct {
	Mode     InputMode `json:"mode"`
	FilePath string    `json:"-"`
	Text     string    `json:"reportText"`
}

// AnalyzeResponse pairs the analysis with the report text it was built from,
// so the text can be reused for the diet and exercise panels.
type AnalyzeResponse struct {
	Analysis   string              `json:"analysis"`
	ReportText string              `json:"reportText"`
	DurationMs int64               `json:"durationMs,omitempty"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// TextRequest carries the free text of the single-field panels.
type TextRequest struct {
	Text string `json:"text"`
}

// TextResponse returns the completion text unmodified.
type TextResponse struct {
	Text       string              `json:"text"`
	DurationMs int64               `json:"durationMs,omitempty"`
	TokenUsage *metrics.TokenUsage `json:"tokenUsage,omitempty"`
}

// ReminderRequest holds a medication reminder. Nothing is stored or scheduled.
type ReminderRequest struct {
	Medication string `json:"medication"`
	Time       string `json:"time"`
}

// ReminderResponse is the confirmation sentence.
type ReminderResponse struct {
	Message string `json:"message"`
}

// Completion is the raw backend answer for one prompt.
type Completion struct {
	Text  string
	Usage metrics.TokenUsage
}
