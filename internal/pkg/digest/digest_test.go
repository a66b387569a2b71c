package digest

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

func TestRenderDigest(t *testing.T) {
	reports := []models.BillboardReport{
		{
			PublicID:   "BM123ABC",
			Priority:   models.PriorityHigh,
			Violations: models.StringList{"oversized", "missing_permit"},
			Status:     models.ReportStatusSubmitted,
			Location:   models.LocationData{City: "Delhi"},
		},
		{
			PublicID:   "BM456DEF",
			Priority:   models.PriorityEmergency,
			Violations: models.StringList{"structural_damage"},
			Status:     models.ReportStatusSubmitted,
			Location:   models.LocationData{City: "Mumbai"},
		},
	}

	subject, html, err := renderDigest(2, reports)
	require.NoError(t, err)

	assert.Contains(t, subject, "2 new report(s)")
	assert.Contains(t, html, "BM123ABC")
	assert.Contains(t, html, "Oversized Dimensions, Missing Permits")
	assert.Contains(t, html, "High Priority")
	assert.Contains(t, html, "Emergency")
	assert.Contains(t, html, "Delhi")
	assert.Contains(t, html, "Mumbai")
}

func TestRenderDigestEmpty(t *testing.T) {
	subject, html, err := renderDigest(0, nil)
	require.NoError(t, err)
	assert.Contains(t, subject, "0 new report(s)")
	assert.Contains(t, html, "0 new report(s)")
}
