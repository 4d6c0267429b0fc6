package http

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/yanqian/ai-health-assistant/internal/domain/assistant"
	"github.com/yanqian/ai-health-assistant/internal/infra/config"
	apperrors "github.com/yanqian/ai-health-assistant/pkg/errors"
	"github.com/yanqian/ai-health-assistant/pkg/metrics"
)

func TestRouter_Health(t *testing.T) {
	recorder := performGet("/healthz", newRouterUnderTest(t, &stubAssistant{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"status":"ok"}`, recorder.Body.String())
	require.NotEmpty(t, recorder.Header().Get("X-Request-ID"))
}

func TestRouter_RequestIDIsEchoed(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "abc-123")
	rec := httptest.NewRecorder()
	newRouterUnderTest(t, &stubAssistant{}).Handler.ServeHTTP(rec, req)
	require.Equal(t, "abc-123", rec.Header().Get("X-Request-ID"))
}

func TestRouter_IndexRendersPanels(t *testing.T) {
	recorder := performGet("/", newRouterUnderTest(t, &stubAssistant{}))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Contains(t, recorder.Header().Get("Content-Type"), "text/html")

	body := recorder.Body.String()
	require.Contains(t, body, "<title>AI-Powered Virtual Health Assistant</title>")
	for _, panel := range assistant.Panels() {
		require.Contains(t, body, panel.Title)
		require.Contains(t, body, `data-endpoint="`+panel.Endpoint+`"`)
	}
	require.Contains(t, body, "headache, nausea, dizziness")
}

func TestRouter_ListPanels(t *testing.T) {
	recorder := performGet("/api/v1/panels", newRouterUnderTest(t, &stubAssistant{}))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got struct {
		Title  string            `json:"title"`
		Panels []assistant.Panel `json:"panels"`
	}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, assistant.AppTitle, got.Title)
	require.Equal(t, assistant.Panels(), got.Panels)
}

func TestRouter_TextEndpoints(t *testing.T) {
	usage := &metrics.TokenUsage{PromptTokens: 10, CompletionTokens: 5, TotalTokens: 15}
	svc := &stubAssistant{
		textFn: func(op string, req assistant.TextRequest) (assistant.TextResponse, error) {
			return assistant.TextResponse{Text: op + ":" + req.Text, DurationMs: 12, TokenUsage: usage}, nil
		},
	}
	server := newRouterUnderTest(t, svc)

	tests := []struct {
		path string
		op   string
	}{
		{path: "/api/v1/symptoms/check", op: "symptoms"},
		{path: "/api/v1/plans/diet", op: "diet"},
		{path: "/api/v1/plans/exercise", op: "exercise"},
		{path: "/api/v1/education", op: "education"},
	}
	for _, tc := range tests {
		t.Run(tc.op, func(t *testing.T) {
			recorder := performRequest(tc.path, `{"text":"fever, cough"}`, server)
			require.Equal(t, http.StatusOK, recorder.Code)

			var got assistant.TextResponse
			require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
			require.Equal(t, tc.op+":fever, cough", got.Text)
			require.Equal(t, int64(12), got.DurationMs)
			require.Equal(t, usage, got.TokenUsage)
		})
	}
}

func TestRouter_TextInvalidJSON(t *testing.T) {
	svc := &stubAssistant{}

	recorder := performRequest("/api/v1/symptoms/check", `{"text":123}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusBadRequest, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "invalid_request", errBody["error"]["code"])
	require.NotEmpty(t, errBody["error"]["message"])
	require.Zero(t, svc.calls)
}

func TestRouter_DomainErrorMapping(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		message string
	}{
		{name: "llm", err: apperrors.Wrap(apperrors.CodeLLM, "completion request failed", errors.New("dial tcp: network is unreachable")), status: http.StatusBadGateway, code: "llm_error", message: "completion request failed"},
		{name: "invalid input", err: apperrors.Wrap(apperrors.CodeInvalidInput, "unknown prompt template", nil), status: http.StatusBadRequest, code: "invalid_input", message: "unknown prompt template"},
		{name: "pdf", err: apperrors.Wrap(apperrors.CodePDF, "failed to read uploaded report", errors.New("bad xref")), status: http.StatusUnprocessableEntity, code: "pdf_error", message: "failed to read uploaded report"},
		{name: "unknown", err: errors.New("boom"), status: http.StatusInternalServerError, code: "internal_error", message: "something went wrong"},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			svc := &stubAssistant{
				textFn: func(string, assistant.TextRequest) (assistant.TextResponse, error) {
					return assistant.TextResponse{}, tc.err
				},
			}
			recorder := performRequest("/api/v1/education", `{"text":"sleep"}`, newRouterUnderTest(t, svc))
			require.Equal(t, tc.status, recorder.Code)
			errBody := decodeErrorBody(t, recorder.Body.Bytes())
			require.Equal(t, tc.code, errBody["error"]["code"])
			require.Equal(t, tc.message, errBody["error"]["message"])
			require.NotContains(t, recorder.Body.String(), "network is unreachable")
			require.NotContains(t, recorder.Body.String(), "bad xref")
		})
	}
}

func TestRouter_SetReminder(t *testing.T) {
	svc := &stubAssistant{
		reminderFn: func(req assistant.ReminderRequest) (assistant.ReminderResponse, error) {
			return assistant.ReminderResponse{Message: assistant.FormatReminder(req.Medication, req.Time)}, nil
		},
	}

	recorder := performRequest("/api/v1/reminders", `{"medication":"Aspirin","time":"10:00 AM"}`, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"message":"Reminder set for Aspirin at 10:00 AM."}`, recorder.Body.String())
}

func TestRouter_AnalyzeReportJSON(t *testing.T) {
	svc := &stubAssistant{
		analyzeFn: func(in assistant.ReportInput) (assistant.AnalyzeResponse, error) {
			require.Equal(t, assistant.ModePasteText, in.Mode)
			require.Equal(t, "Hemoglobin 13.5 g/dL", in.Text)
			require.Empty(t, in.FilePath)
			return assistant.AnalyzeResponse{Analysis: "normal", ReportText: in.Text}, nil
		},
	}

	body := `{"mode":"Paste Text","reportText":"Hemoglobin 13.5 g/dL"}`
	recorder := performRequest("/api/v1/reports/analyze", body, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)

	var got assistant.AnalyzeResponse
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &got))
	require.Equal(t, "normal", got.Analysis)
	require.Equal(t, "Hemoglobin 13.5 g/dL", got.ReportText)
}

func TestRouter_AnalyzeReportUpload(t *testing.T) {
	var spooled string
	svc := &stubAssistant{
		analyzeFn: func(in assistant.ReportInput) (assistant.AnalyzeResponse, error) {
			require.Equal(t, assistant.ModeUploadPDF, in.Mode)
			require.NotEmpty(t, in.FilePath)
			data, err := os.ReadFile(in.FilePath)
			require.NoError(t, err)
			require.Equal(t, "%PDF-1.4 fake", string(data))
			spooled = in.FilePath
			return assistant.AnalyzeResponse{Analysis: "ok", ReportText: "text"}, nil
		},
	}

	body, contentType := multipartBody(t, map[string]string{"mode": "Upload PDF"}, []byte("%PDF-1.4 fake"))
	recorder := performMultipart("/api/v1/reports/analyze", body, contentType, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.Equal(t, 1, svc.calls)

	_, err := os.Stat(spooled)
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestRouter_AnalyzeReportUploadModeWithoutFile(t *testing.T) {
	svc := &stubAssistant{
		analyzeFn: func(in assistant.ReportInput) (assistant.AnalyzeResponse, error) {
			require.Empty(t, in.FilePath)
			return assistant.AnalyzeResponse{Analysis: assistant.InvalidInputMessage}, nil
		},
	}

	body, contentType := multipartBody(t, map[string]string{"mode": "Upload PDF", "reportText": "ignored"}, nil)
	recorder := performMultipart("/api/v1/reports/analyze", body, contentType, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusOK, recorder.Code)
	require.JSONEq(t, `{"analysis":"Please provide a valid input.","reportText":""}`, recorder.Body.String())
}

func TestRouter_AnalyzeReportUploadTooLarge(t *testing.T) {
	svc := &stubAssistant{}

	body, contentType := multipartBody(t, map[string]string{"mode": "Upload PDF"}, bytes.Repeat([]byte("x"), 2048))
	recorder := performMultipart("/api/v1/reports/analyze", body, contentType, newRouterUnderTest(t, svc))
	require.Equal(t, http.StatusRequestEntityTooLarge, recorder.Code)

	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "payload_too_large", errBody["error"]["code"])
	require.Zero(t, svc.calls)
}

func TestRouter_RateLimitPerRoute(t *testing.T) {
	cfg := newTestConfig()
	cfg.HTTP.RateLimit = config.RateLimitConfig{Enabled: true, RequestsPerMinute: 1, Burst: 1}
	server := NewRouter(cfg, NewHandler(&stubAssistant{}, cfg, newTestLogger()))

	require.Equal(t, http.StatusOK, performRequest("/api/v1/symptoms/check", `{"text":"fever"}`, server).Code)

	recorder := performRequest("/api/v1/symptoms/check", `{"text":"fever"}`, server)
	require.Equal(t, http.StatusTooManyRequests, recorder.Code)
	errBody := decodeErrorBody(t, recorder.Body.Bytes())
	require.Equal(t, "rate_limit_exceeded", errBody["error"]["code"])

	require.Equal(t, http.StatusOK, performRequest("/api/v1/plans/diet", `{"text":"BMI 31"}`, server).Code)
	require.Equal(t, http.StatusOK, performGet("/healthz", server).Code)
	require.Equal(t, http.StatusOK, performGet("/healthz", server).Code)
}

func TestRouter_CORS(t *testing.T) {
	cfg := newTestConfig()
	cfg.HTTP.AllowedOrigins = []string{"https://clinic.example"}
	server := NewRouter(cfg, NewHandler(&stubAssistant{}, cfg, newTestLogger()))

	req := httptest.NewRequest(http.MethodOptions, "/api/v1/symptoms/check", nil)
	req.Header.Set("Origin", "https://clinic.example")
	req.Header.Set("Access-Control-Request-Method", http.MethodPost)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)

	require.Equal(t, http.StatusNoContent, rec.Code)
	require.Equal(t, "https://clinic.example", rec.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("Origin", "https://evil.example")
	rec = httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusForbidden, rec.Code)
}

func performGet(path string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performRequest(path, body string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func performMultipart(path string, body *bytes.Buffer, contentType string, server *http.Server) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, body)
	req.Header.Set("Content-Type", contentType)
	rec := httptest.NewRecorder()
	server.Handler.ServeHTTP(rec, req)
	return rec
}

func multipartBody(t *testing.T, fields map[string]string, file []byte) (*bytes.Buffer, string) {
	t.Helper()
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)
	for name, value := range fields {
		require.NoError(t, writer.WriteField(name, value))
	}
	if file != nil {
		part, err := writer.CreateFormFile("file", "report.pdf")
		require.NoError(t, err)
		_, err = part.Write(file)
		require.NoError(t, err)
	}
	require.NoError(t, writer.Close())
	return &buf, writer.FormDataContentType()
}

func decodeErrorBody(t *testing.T, body []byte) map[string]map[string]string {
	t.Helper()
	var payload map[string]map[string]string
	require.NoError(t, json.Unmarshal(body, &payload))
	return payload
}

func newTestConfig() *config.Config {
	return &config.Config{
		HTTP: config.HTTPConfig{
			Address:      ":0",
			ReadTimeout:  time.Second,
			WriteTimeout: time.Second,
		},
		Upload: config.UploadConfig{MaxFileBytes: 1024},
	}
}

func newRouterUnderTest(t *testing.T, svc assistant.Service) *http.Server {
	t.Helper()
	cfg := newTestConfig()
	return NewRouter(cfg, NewHandler(svc, cfg, newTestLogger()))
}

func newTestLogger() *slog.Logger {
	handler := slog.NewTextHandler(io.Discard, nil)
	return slog.New(handler)
}

type stubAssistant struct {
	calls      int
	analyzeFn  func(in assistant.ReportInput) (assistant.AnalyzeResponse, error)
	textFn     func(op string, req assistant.TextRequest) (assistant.TextResponse, error)
	reminderFn func(req assistant.ReminderRequest) (assistant.ReminderResponse, error)
}

func (s *stubAssistant) AnalyzeReport(_ context.Context, in assistant.ReportInput) (assistant.AnalyzeResponse, error) {
	s.calls++
	if s.analyzeFn != nil {
		return s.analyzeFn(in)
	}
	return assistant.AnalyzeResponse{}, nil
}

func (s *stubAssistant) CheckSymptoms(_ context.Context, req assistant.TextRequest) (assistant.TextResponse, error) {
	return s.text("symptoms", req)
}

func (s *stubAssistant) PlanDiet(_ context.Context, req assistant.TextRequest) (assistant.TextResponse, error) {
	return s.text("diet", req)
}

func (s *stubAssistant) PlanExercise(_ context.Context, req assistant.TextRequest) (assistant.TextResponse, error) {
	return s.text("exercise", req)
}

func (s *stubAssistant) EducateOnTopic(_ context.Context, req assistant.TextRequest) (assistant.TextResponse, error) {
	return s.text("education", req)
}

func (s *stubAssistant) SetReminder(_ context.Context, req assistant.ReminderRequest) (assistant.ReminderResponse, error) {
	s.calls++
	if s.reminderFn != nil {
		return s.reminderFn(req)
	}
	return assistant.ReminderResponse{}, nil
}

func (s *stubAssistant) text(op string, req assistant.TextRequest) (assistant.TextResponse, error) {
	s.calls++
	if s.textFn != nil {
		return s.textFn(op, req)
	}
	return assistant.TextResponse{Text: strings.ToUpper(req.Text)}, nil
}
