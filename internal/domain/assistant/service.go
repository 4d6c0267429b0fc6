package assistant

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/yanqian/ai-health-assistant/internal/domain/prompt"
	apperrors "github.com/yanqian/ai-health-assistant/pkg/errors"
	"github.com/yanqian/ai-health-assistant/pkg/util"
)

// Service exposes the six assistant panels. Implementations hold no
// per-request state.
type Service interface {
	AnalyzeReport(ctx context.Context, in ReportInput) (AnalyzeResponse, error)
	CheckSymptoms(ctx context.Context, req TextRequest) (TextResponse, error)
	PlanDiet(ctx context.Context, req TextRequest) (TextResponse, error)
	PlanExercise(ctx context.Context, req TextRequest) (TextResponse, error)
	SetReminder(ctx context.Context, req ReminderRequest) (ReminderResponse, error)
	EducateOnTopic(ctx context.Context, req TextRequest) (TextResponse, error)
}

// CompletionClient sends one prompt to the text-generation backend.
type CompletionClient interface {
	Complete(ctx context.Context, prompt string) (Completion, error)
}

// TextExtractor returns the concatenated page text of the PDF at path.
type TextExtractor interface {
	Extract(path string) (string, error)
}

// PromptComposer fills a template with user text.
type PromptComposer interface {
	Compose(id prompt.TemplateID, value string) (string, error)
}

type service struct {
	cfg       Config
	composer  PromptComposer
	client    CompletionClient
	extractor TextExtractor
	logger    *slog.Logger
	now       func() time.Time
}

// NewService is a wire provider for the assistant domain.
func NewService(cfg Config, composer PromptComposer, client CompletionClient, extractor TextExtractor, logger *slog.Logger) Service {
	return &service{
		cfg:       cfg,
		composer:  composer,
		client:    client,
		extractor: extractor,
		logger:    logger.With("component", "assistant.service"),
		now:       util.NowUTC,
	}
}

func (s *service) AnalyzeReport(ctx context.Context, in ReportInput) (AnalyzeResponse, error) {
	var text string
	switch {
	case in.Mode == ModeUploadPDF && strings.TrimSpace(in.FilePath) != "":
		extracted, err := s.extractor.Extract(in.FilePath)
		if err != nil {
			return AnalyzeResponse{}, apperrors.Wrap(apperrors.CodePDF, "failed to read uploaded report", err)
		}
		text = extracted
	case in.Mode == ModePasteText && strings.TrimSpace(in.Text) != "":
		text = in.Text
	default:
		s.logger.Info("report analysis skipped, no usable input", "mode", string(in.Mode))
		return AnalyzeResponse{Analysis: InvalidInputMessage, ReportText: ""}, nil
	}

	out, err := s.generate(ctx, prompt.ReportAnalysis, text)
	if err != nil {
		return AnalyzeResponse{}, err
	}
	return AnalyzeResponse{
		Analysis:   out.Text,
		ReportText: text,
		DurationMs: out.DurationMs,
		TokenUsage: out.TokenUsage,
	}, nil
}

func (s *service) CheckSymptoms(ctx context.Context, req TextRequest) (TextResponse, error) {
	return s.generate(ctx, prompt.SymptomCheck, req.Text)
}

func (s *service) PlanDiet(ctx context.Context, req TextRequest) (TextResponse, error) {
	return s.generate(ctx, prompt.DietPlan, req.Text)
}

func (s *service) PlanExercise(ctx context.Context, req TextRequest) (TextResponse, error) {
	return s.generate(ctx, prompt.ExercisePlan, req.Text)
}

func (s *service) EducateOnTopic(ctx context.Context, req TextRequest) (TextResponse, error) {
	return s.generate(ctx, prompt.HealthEducation, req.Text)
}

func (s *service) SetReminder(_ context.Context, req ReminderRequest) (ReminderResponse, error) {
	return ReminderResponse{Message: FormatReminder(req.Medication, req.Time)}, nil
}

// FormatReminder renders the reminder confirmation sentence.
func FormatReminder(medication, at string) string {
	return fmt.Sprintf("Reminder set for %s at %s.", medication, at)
}

func (s *service) generate(ctx context.Context, id prompt.TemplateID, value string) (TextResponse, error) {
	composed, err := s.composer.Compose(id, value)
	if err != nil {
		return TextResponse{}, err
	}

	if s.cfg.CompletionTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.CompletionTimeout)
		defer cancel()
	}

	start := s.now()
	s.logger.Debug("completion request", "template", string(id), "prompt", composed)
	completion, err := s.client.Complete(ctx, composed)
	if err != nil {
		return TextResponse{}, apperrors.Wrap(apperrors.CodeLLM, "completion request failed", err)
	}
	duration := util.SinceMs(start, s.now)
	s.logger.Debug("completion received", "template", string(id), "content", completion.Text)
	s.logger.Info("completion served", "template", string(id), "duration_ms", duration, "total_tokens", completion.Usage.TotalTokens)

	return TextResponse{
		Text:       completion.Text,
		DurationMs: duration,
		TokenUsage: completion.Usage.Ptr(),
	}, nil
}
