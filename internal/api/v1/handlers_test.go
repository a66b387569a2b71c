package apiv1

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/jarcoal/httpmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
)

func newTestApp(sender notify.Sender) *fiber.App {
	app := fiber.New()
	server := NewAPIServer(notify.NewService(sender, "", ""))
	app.Get("/ping", server.GetPing)
	app.Post("/send-report-email", server.PostSendReportEmail)
	return app
}

func newResendBackedApp(t *testing.T) *fiber.App {
	t.Helper()
	sender := notify.NewResendSender("re_test_key")
	sender.Client = &http.Client{Transport: httpmock.DefaultTransport}
	return newTestApp(sender)
}

func postJSON(t *testing.T, app *fiber.App, path string, body interface{}) *http.Response {
	t.Helper()
	payload, err := json.Marshal(body)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decodeBody(t *testing.T, resp *http.Response) map[string]interface{} {
	t.Helper()
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func TestGetPing(t *testing.T) {
	app := newTestApp(nil)

	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "pong", body["ping"])
}

func TestPostSendReportEmailSuccess(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodPost, "https://api.resend.com/emails",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{"id": "email_555"}))

	app := newResendBackedApp(t)

	resp := postJSON(t, app, "/send-report-email", SendReportEmailRequest{
		ReportID: "BM123ABC",
		ReportData: &notify.ReportSnapshot{
			Priority:   "high",
			Violations: []string{"oversized", "missing_permit"},
		},
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "Report email sent successfully to government authorities", body["message"])
	assert.Equal(t, "email_555", body["emailId"])
	assert.Equal(t, "BM123ABC", body["reportId"])
	assert.Equal(t, notify.DefaultGovEmail, body["sentTo"])
	assert.NotEmpty(t, body["timestamp"])
}

func TestPostSendReportEmailCustomRecipient(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodPost, "https://api.resend.com/emails",
		httpmock.NewJsonResponderOrPanic(200, map[string]string{"id": "email_556"}))

	app := newResendBackedApp(t)

	resp := postJSON(t, app, "/send-report-email", SendReportEmailRequest{
		ReportID:   "BM456DEF",
		ReportData: &notify.ReportSnapshot{Priority: "low"},
		GovEmail:   "inspector@city.example",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, "inspector@city.example", body["sentTo"])
}

func TestPostSendReportEmailMissingFields(t *testing.T) {
	app := newTestApp(nil)

	resp := postJSON(t, app, "/send-report-email", map[string]interface{}{})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "reportId and reportData are required", body["error"])
	assert.Equal(t, "Failed to send report email", body["message"])
}

func TestPostSendReportEmailProviderFailure(t *testing.T) {
	httpmock.Activate()
	defer httpmock.DeactivateAndReset()
	httpmock.RegisterResponder(http.MethodPost, "https://api.resend.com/emails",
		httpmock.NewJsonResponderOrPanic(500, map[string]string{"message": "internal provider error"}))

	app := newResendBackedApp(t)

	resp := postJSON(t, app, "/send-report-email", SendReportEmailRequest{
		ReportID:   "BM789GHJ",
		ReportData: &notify.ReportSnapshot{Priority: "emergency"},
	})
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.Equal(t, false, body["success"])
	assert.Contains(t, body["error"], "internal provider error")
	assert.Equal(t, "Failed to send report email", body["message"])
}
