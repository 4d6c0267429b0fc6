package http

import (
	"context"
	"errors"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/yanqian/ai-health-assistant/internal/domain/assistant"
	"github.com/yanqian/ai-health-assistant/internal/infra/config"
	"github.com/yanqian/ai-health-assistant/internal/infra/pdftext"
)

const (
	multipartMemory   = 8 << 20
	multipartOverhead = 1 << 20
)

// Handler wires the HTTP transport to the assistant service.
type Handler struct {
	assistantSvc assistant.Service
	maxFileBytes int64
	logger       *slog.Logger
}

// NewHandler constructs the root HTTP handler.
func NewHandler(svc assistant.Service, cfg *config.Config, logger *slog.Logger) *Handler {
	return &Handler{
		assistantSvc: svc,
		maxFileBytes: cfg.Upload.MaxFileBytes,
		logger:       logger.With("component", "http.handler"),
	}
}

// Health reports liveness.
func (h *Handler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// ListPanels returns the panel registry so clients can render the UI.
func (h *Handler) ListPanels(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"title":  assistant.AppTitle,
		"panels": assistant.Panels(),
	})
}

// AnalyzeReport accepts either a multipart upload or a JSON paste.
func (h *Handler) AnalyzeReport(c *gin.Context) {
	in, cleanup, httpErr := h.bindReportInput(c)
	defer cleanup()
	if httpErr != nil {
		abortWithError(c, httpErr)
		return
	}

	resp, err := h.assistantSvc.AnalyzeReport(c.Request.Context(), in)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

// CheckSymptoms lists potential conditions for the given symptoms.
func (h *Handler) CheckSymptoms(c *gin.Context) {
	h.serveText(c, h.assistantSvc.CheckSymptoms)
}

// PlanDiet builds a diet plan from a medical report.
func (h *Handler) PlanDiet(c *gin.Context) {
	h.serveText(c, h.assistantSvc.PlanDiet)
}

// PlanExercise builds an exercise plan from a medical report.
func (h *Handler) PlanExercise(c *gin.Context) {
	h.serveText(c, h.assistantSvc.PlanExercise)
}

// EducateOnTopic returns learning material for a health topic.
func (h *Handler) EducateOnTopic(c *gin.Context) {
	h.serveText(c, h.assistantSvc.EducateOnTopic)
}

// SetReminder echoes the reminder confirmation.
func (h *Handler) SetReminder(c *gin.Context) {
	var req assistant.ReminderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := h.assistantSvc.SetReminder(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) serveText(c *gin.Context, op func(context.Context, assistant.TextRequest) (assistant.TextResponse, error)) {
	var req assistant.TextRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err))
		return
	}

	resp, err := op(c.Request.Context(), req)
	if err != nil {
		abortWithError(c, fromDomainError(err))
		return
	}
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) bindReportInput(c *gin.Context) (assistant.ReportInput, func(), *HTTPError) {
	noop := func() {}
	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		var in assistant.ReportInput
		if err := c.ShouldBindJSON(&in); err != nil {
			return assistant.ReportInput{}, noop, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
		}
		in.FilePath = ""
		return in, noop, nil
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxFileBytes+multipartOverhead)
	if err := c.Request.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return assistant.ReportInput{}, noop, h.uploadTooLarge(err)
		}
		return assistant.ReportInput{}, noop, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	}

	in := assistant.ReportInput{
		Mode: assistant.InputMode(c.PostForm("mode")),
		Text: c.PostForm("reportText"),
	}
	if in.Mode != assistant.ModeUploadPDF {
		return in, noop, nil
	}

	header, err := c.FormFile("file")
	if errors.Is(err, http.ErrMissingFile) {
		return in, noop, nil
	}
	if err != nil {
		return assistant.ReportInput{}, noop, NewHTTPError(http.StatusBadRequest, "invalid_request", errMessage(err), err)
	}
	path, cleanup, httpErr := h.spoolUpload(header)
	if httpErr != nil {
		return assistant.ReportInput{}, noop, httpErr
	}
	in.FilePath = path
	return in, cleanup, nil
}

func (h *Handler) spoolUpload(header *multipart.FileHeader) (string, func(), *HTTPError) {
	noop := func() {}
	if header.Size > h.maxFileBytes {
		return "", noop, h.uploadTooLarge(pdftext.ErrTooLarge)
	}
	file, err := header.Open()
	if err != nil {
		return "", noop, NewHTTPError(http.StatusBadRequest, "invalid_request", "could not read uploaded file", err)
	}
	defer file.Close()

	path, cleanup, err := pdftext.Spool(file, h.maxFileBytes)
	if errors.Is(err, pdftext.ErrTooLarge) {
		return "", noop, h.uploadTooLarge(err)
	}
	if err != nil {
		return "", noop, NewHTTPError(http.StatusInternalServerError, "upload_failed", "could not store uploaded file", err)
	}
	h.logger.Debug("report upload spooled", "filename", header.Filename, "size", header.Size)
	return path, cleanup, nil
}

func (h *Handler) uploadTooLarge(err error) *HTTPError {
	return NewHTTPError(http.StatusRequestEntityTooLarge, "payload_too_large", pdftext.ErrTooLarge.Error(), err)
}

func errMessage(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
