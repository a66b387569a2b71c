package notify

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

func f64(v float64) *float64 { return &v }

func sampleSnapshot() *ReportSnapshot {
	created := time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)
	return &ReportSnapshot{
		Priority:   "high",
		Violations: []string{"oversized", "missing_permit"},
		Location: LocationSnapshot{
			Latitude:  f64(28.6139),
			Longitude: f64(77.2090),
			Address:   "12 MG Road",
			City:      "Delhi",
			State:     "Delhi",
			Landmarks: []string{"Metro station", "City mall"},
		},
		Description:      "Billboard far exceeds the permitted dimensions",
		EstimatedSize:    "12m x 6m",
		DistanceFromRoad: "3m",
		ContactAnonymous: false,
		ContactName:      "Asha Rao",
		ContactEmail:     "asha@example.com",
		ContactPhone:     "+91 98765 43210",
		AllowFollowUp:    true,
		ImageURL:         "https://cdn.example.com/evidence/1/abc.jpg",
		AdditionalImages: []string{"https://cdn.example.com/evidence/1/additional/x.jpg"},
		Annotations:      []map[string]interface{}{{"label": "billboard"}},
		CreatedAt:        &created,
	}
}

func TestRenderSubjectEncodesReportAndPriority(t *testing.T) {
	rendered, err := Render("BM123ABC", sampleSnapshot())
	require.NoError(t, err)

	assert.Contains(t, rendered.Subject, "BM123ABC")
	assert.Contains(t, rendered.Subject, "High Priority")
	assert.Contains(t, rendered.Subject, "URGENT")
}

func TestRenderBodyContainsViolationLabels(t *testing.T) {
	rendered, err := Render("BM123ABC", sampleSnapshot())
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "Oversized Dimensions, Missing Permits")
	assert.Contains(t, rendered.HTML, "12 MG Road")
	assert.Contains(t, rendered.HTML, "Delhi, Delhi")
	assert.Contains(t, rendered.HTML, "28.613900, 77.209000")
	assert.Contains(t, rendered.HTML, "Metro station, City mall")
	assert.Contains(t, rendered.HTML, "Asha Rao")
	assert.Contains(t, rendered.HTML, "asha@example.com")

	// plain-text body derives from the HTML
	assert.Contains(t, rendered.Text, "Oversized Dimensions, Missing Permits")
	assert.Contains(t, rendered.Text, "BM123ABC")
}

func TestRenderAnonymousSuppressesContact(t *testing.T) {
	snap := sampleSnapshot()
	snap.ContactAnonymous = true

	rendered, err := Render("BM999XYZ", snap)
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "Anonymous Report - Contact details not available")
	assert.NotContains(t, rendered.HTML, "Asha Rao")
	assert.NotContains(t, rendered.HTML, "asha@example.com")
	assert.NotContains(t, rendered.HTML, "+91 98765 43210")
}

func TestRenderPlaceholdersForMissingOptionals(t *testing.T) {
	snap := &ReportSnapshot{
		Priority:   "low",
		Violations: nil,
	}

	rendered, err := Render("BM000AAA", snap)
	require.NoError(t, err)

	assert.Contains(t, rendered.HTML, "Not specified")
	assert.Contains(t, rendered.HTML, "Not provided")
	assert.Contains(t, rendered.HTML, "N/A")
	assert.Contains(t, rendered.HTML, "None specified")
	assert.Contains(t, rendered.HTML, "No description provided")
	assert.Contains(t, rendered.HTML, "Not measured")
}

func TestRenderUnknownPriorityRendersRawCode(t *testing.T) {
	snap := sampleSnapshot()
	snap.Priority = "critical"

	rendered, err := Render("BM777KLM", snap)
	require.NoError(t, err)

	assert.Contains(t, rendered.Subject, "critical")
	assert.Contains(t, rendered.HTML, "critical")
}

func TestSnapshotFromReport(t *testing.T) {
	report := &models.BillboardReport{
		PublicID:         "BM555QRS",
		Priority:         models.PriorityHigh,
		Violations:       models.StringList{"oversized"},
		Description:      "too big",
		ContactAnonymous: true,
		Location: models.LocationData{
			Latitude:  f64(19.0760),
			Longitude: f64(72.8777),
			City:      "Mumbai",
		},
	}

	snap := SnapshotFromReport(report)
	assert.Equal(t, "BM555QRS", snap.PublicID)
	assert.Equal(t, "high", snap.Priority)
	assert.Equal(t, []string{"oversized"}, []string(snap.Violations))
	assert.True(t, snap.ContactAnonymous)
	assert.Equal(t, "Mumbai", snap.Location.City)
	require.NotNil(t, snap.CreatedAt)
}
