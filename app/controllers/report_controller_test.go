package controllers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/draft"
)

func f64(v float64) *float64 { return &v }

func submittableDraft() *draft.Draft {
	return &draft.Draft{
		Image:       "https://cdn.example.com/evidence/1/abc.jpg",
		Annotations: []map[string]interface{}{{"label": "billboard"}},
		Location: models.LocationData{
			Latitude:  f64(28.6139),
			Longitude: f64(77.2090),
			Address:   "12 MG Road",
			City:      "Delhi",
		},
		Violations:  []string{"oversized"},
		Priority:    "high",
		Description: "Billboard exceeds permitted dimensions",
		Contact: draft.ContactInfo{
			Name:          "Asha Rao",
			Email:         "asha@example.com",
			Phone:         "+91 98765 43210",
			AllowFollowUp: true,
			DataConsent:   true,
		},
	}
}

func TestReportFromDraftMapsFields(t *testing.T) {
	d := submittableDraft()
	report := reportFromDraft(d, 42)

	require.NotNil(t, report.ReporterID)
	assert.Equal(t, uint(42), *report.ReporterID)
	assert.Equal(t, models.ReportStatusSubmitted, report.Status)
	assert.Equal(t, "high", report.Priority)
	assert.Equal(t, []string{"oversized"}, []string(report.Violations))
	assert.Equal(t, "12 MG Road", report.Location.Address)
	assert.Equal(t, "Asha Rao", report.ContactName)
	assert.True(t, report.AllowFollowUp)
	assert.True(t, report.DataConsent)
}

func TestReportFromDraftAnonymousScrubsOnNormalize(t *testing.T) {
	d := submittableDraft()
	d.Contact.Anonymous = true

	report := reportFromDraft(d, 7)
	report.ImageURL = "https://cdn.example.com/evidence/7/x.jpg"
	report.Normalize()

	assert.True(t, report.ContactAnonymous)
	assert.Empty(t, report.ContactName)
	assert.Empty(t, report.ContactEmail)
	assert.Empty(t, report.ContactPhone)
	assert.False(t, report.AllowFollowUp)
	require.NoError(t, report.Validate())
}

func TestReportFromDraftContentCheckedBeforeUpload(t *testing.T) {
	// a complete draft passes the pre-upload check even though no image
	// has been stored yet
	report := reportFromDraft(submittableDraft(), 7)
	report.Normalize()
	assert.NoError(t, report.ValidateContent())

	d := submittableDraft()
	d.Annotations = nil
	report = reportFromDraft(d, 7)
	report.Normalize()
	assert.Error(t, report.ValidateContent())

	d = submittableDraft()
	d.Violations = nil
	report = reportFromDraft(d, 7)
	report.Normalize()
	assert.Error(t, report.ValidateContent())

	d = submittableDraft()
	d.Contact.DataConsent = false
	report = reportFromDraft(d, 7)
	report.Normalize()
	assert.Error(t, report.ValidateContent())
}

func TestReportFromDraftValidatesAfterUpload(t *testing.T) {
	d := submittableDraft()
	report := reportFromDraft(d, 7)

	// no evidence image stored yet
	report.Normalize()
	assert.Error(t, report.Validate())

	report.ImageURL = "https://cdn.example.com/evidence/7/x.jpg"
	require.NoError(t, report.Validate())
}
