package models

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func f64(v float64) *float64 { return &v }

func completeReport() *BillboardReport {
	return &BillboardReport{
		ImageURL:    "https://cdn.example.com/evidence/1/abc.jpg",
		Annotations: JSONList{{"label": "billboard"}},
		Location: LocationData{
			Latitude:  f64(28.6139),
			Longitude: f64(77.2090),
			Address:   "MG Road",
			City:      "Delhi",
		},
		Violations:   StringList{ViolationOversized, ViolationMissingPermit},
		Priority:     PriorityHigh,
		Description:  "Large billboard blocking traffic signal view",
		ContactName:  "Asha Rao",
		ContactEmail: "asha@example.com",
		DataConsent:  true,
	}
}

func TestGeneratePublicID(t *testing.T) {
	id, err := GeneratePublicID()
	require.NoError(t, err)
	assert.Len(t, id, 10)
	assert.Equal(t, "BM", id[:2])

	other, err := GeneratePublicID()
	require.NoError(t, err)
	assert.NotEqual(t, id, other)
}

func TestReportValidateComplete(t *testing.T) {
	r := completeReport()
	require.NoError(t, r.Validate())
}

func TestReportValidateContentSkipsUploadDerivedFields(t *testing.T) {
	r := completeReport()
	r.ImageURL = ""
	r.Location.Latitude = nil
	r.Location.Longitude = nil
	require.NoError(t, r.ValidateContent())

	r.Violations = nil
	assert.Error(t, r.ValidateContent())
}

func TestReportColumnNames(t *testing.T) {
	s, err := schema.Parse(&BillboardReport{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	assert.Equal(t, "ai_annotations", s.FieldsByName["Annotations"].DBName)
	assert.Equal(t, "location", s.FieldsByName["Location"].DBName)
	assert.Equal(t, "additional_images", s.FieldsByName["AdditionalImages"].DBName)
}

func TestReportValidateMissingFields(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*BillboardReport)
	}{
		{"no image", func(r *BillboardReport) { r.ImageURL = "" }},
		{"no annotations", func(r *BillboardReport) { r.Annotations = nil }},
		{"no violations", func(r *BillboardReport) { r.Violations = nil }},
		{"unknown violation", func(r *BillboardReport) { r.Violations = StringList{"flying_too_low"} }},
		{"unknown priority", func(r *BillboardReport) { r.Priority = "urgent" }},
		{"no latitude", func(r *BillboardReport) { r.Location.Latitude = nil }},
		{"no description", func(r *BillboardReport) { r.Description = "" }},
		{"too many extra images", func(r *BillboardReport) {
			for i := 0; i <= MaxAdditionalImages; i++ {
				r.AdditionalImages = append(r.AdditionalImages, "https://cdn.example.com/x.jpg")
			}
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := completeReport()
			tt.mutate(r)
			assert.Error(t, r.Validate())
		})
	}
}

func TestReportValidateConsentRequired(t *testing.T) {
	r := completeReport()
	r.DataConsent = false
	err := r.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "consent")
}

func TestReportValidateAnonymousSkipsContactChecks(t *testing.T) {
	r := completeReport()
	r.ContactAnonymous = true
	r.ContactName = ""
	r.ContactEmail = ""
	r.DataConsent = false
	assert.NoError(t, r.Validate())
}

func TestNormalizeScrubsContactWhenAnonymous(t *testing.T) {
	r := completeReport()
	r.ContactAnonymous = true
	r.ContactPhone = "+91-99999-11111"
	r.AllowFollowUp = true

	r.Normalize()

	assert.Empty(t, r.ContactName)
	assert.Empty(t, r.ContactEmail)
	assert.Empty(t, r.ContactPhone)
	assert.False(t, r.AllowFollowUp)
}

func TestNormalizeDefaults(t *testing.T) {
	r := &BillboardReport{}
	r.Normalize()
	assert.Equal(t, PriorityMedium, r.Priority)
	assert.Equal(t, ReportStatusSubmitted, r.Status)
}

func TestCanTransitionTo(t *testing.T) {
	r := completeReport()
	r.Status = ReportStatusSubmitted
	assert.True(t, r.CanTransitionTo(ReportStatusInvestigating))
	assert.True(t, r.CanTransitionTo(ReportStatusResolved))
	assert.False(t, r.CanTransitionTo(ReportStatusSubmitted))
	assert.False(t, r.CanTransitionTo("archived"))

	r.Status = ReportStatusResolved
	assert.False(t, r.CanTransitionTo(ReportStatusInvestigating))
}

func TestStringListScanAndValue(t *testing.T) {
	var l StringList
	require.NoError(t, l.Scan([]byte(`["oversized","missing_permit"]`)))
	assert.True(t, l.Contains("oversized"))
	assert.False(t, l.Contains("unsafe_placement"))

	v, err := l.Value()
	require.NoError(t, err)
	assert.JSONEq(t, `["oversized","missing_permit"]`, v.(string))
}

func TestLocationDataScan(t *testing.T) {
	var loc LocationData
	require.NoError(t, loc.Scan(`{"latitude":28.6,"longitude":77.2,"address":"MG Road","city":"Delhi"}`))
	require.NotNil(t, loc.Latitude)
	assert.InDelta(t, 28.6, *loc.Latitude, 0.0001)
	assert.Equal(t, "Delhi", loc.City)
}
