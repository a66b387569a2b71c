package draft

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

func f64(v float64) *float64 { return &v }

func completeDraft() *Draft {
	return &Draft{
		Image:       "https://cdn.example.com/evidence/1/abc.jpg",
		Annotations: []map[string]interface{}{{"label": "billboard", "confidence": 0.92}},
		Location: models.LocationData{
			Latitude:  f64(28.6139),
			Longitude: f64(77.2090),
			Address:   "MG Road",
			City:      "Delhi",
		},
		Violations:  []string{"oversized"},
		Priority:    "high",
		Description: "Billboard exceeds permitted dimensions",
		Contact: ContactInfo{
			Name:        "Asha Rao",
			Email:       "asha@example.com",
			DataConsent: true,
		},
	}
}

func TestStepCompleteAllSteps(t *testing.T) {
	d := completeDraft()
	for step := StepImage; step <= StepContact; step++ {
		assert.True(t, d.StepComplete(step), "step %d should be complete", step)
	}
	assert.True(t, d.Complete())
}

func TestStepImageRequiresAnnotation(t *testing.T) {
	d := completeDraft()
	d.Annotations = nil
	assert.False(t, d.StepComplete(StepImage))
	assert.False(t, d.Complete())
}

func TestStepLocationRequiresAddressAndLatitude(t *testing.T) {
	d := completeDraft()
	d.Location.Address = ""
	assert.False(t, d.StepComplete(StepLocation))

	d = completeDraft()
	d.Location.Latitude = nil
	assert.False(t, d.StepComplete(StepLocation))
}

func TestStepViolationsRequiresSetAndDescription(t *testing.T) {
	d := completeDraft()
	d.Violations = nil
	assert.False(t, d.StepComplete(StepViolations))

	d = completeDraft()
	d.Description = ""
	assert.False(t, d.StepComplete(StepViolations))
}

func TestStepEvidenceAlwaysComplete(t *testing.T) {
	d := &Draft{}
	assert.True(t, d.StepComplete(StepEvidence))
}

func TestStepContactAnonymous(t *testing.T) {
	d := completeDraft()
	d.Contact = ContactInfo{Anonymous: true}
	assert.True(t, d.StepComplete(StepContact))
}

func TestStepContactConsentGate(t *testing.T) {
	// name and email present but consent withheld: submission stays blocked
	d := completeDraft()
	d.Contact.DataConsent = false
	assert.False(t, d.StepComplete(StepContact))
	assert.False(t, d.Complete())
}

func TestStepCompleteUnknownStep(t *testing.T) {
	d := completeDraft()
	assert.False(t, d.StepComplete(0))
	assert.False(t, d.StepComplete(99))
}
