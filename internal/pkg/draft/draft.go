package draft

import (
	"time"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

// Wizard steps of the report submission flow, in order.
const (
	StepImage = iota + 1
	StepLocation
	StepViolations
	StepEvidence
	StepContact
	stepCount = StepContact
)

// ContactInfo is the contact block of an in-progress report.
type ContactInfo struct {
	Anonymous     bool            `json:"anonymous"`
	Name          string          `json:"name"`
	Email         string          `json:"email"`
	Phone         string          `json:"phone"`
	AllowFollowUp bool            `json:"allowFollowUp"`
	Notifications map[string]bool `json:"notifications,omitempty"`
	HasWitnesses  bool            `json:"hasWitnesses"`
	DataConsent   bool            `json:"dataConsent"`
}

// Draft is the client-owned, not-yet-submitted report. It is stored
// verbatim per user and overwritten on every autosave tick.
type Draft struct {
	Image            string                   `json:"image"`
	Annotations      []map[string]interface{} `json:"annotations"`
	Location         models.LocationData      `json:"location"`
	Violations       []string                 `json:"violations"`
	Priority         string                   `json:"priority"`
	Description      string                   `json:"description"`
	EstimatedSize    string                   `json:"estimatedSize"`
	DistanceFromRoad string                   `json:"distanceFromRoad"`
	TrafficImpact    map[string]interface{}   `json:"trafficImpact,omitempty"`
	AdditionalImages []string                 `json:"additionalImages"`
	Contact          ContactInfo              `json:"contact"`
	UpdatedAt        time.Time                `json:"updatedAt"`
}

// StepComplete reports whether the given wizard step has everything it
// needs. Unknown steps are never complete.
func (d *Draft) StepComplete(step int) bool {
	switch step {
	case StepImage:
		return d.Image != "" && len(d.Annotations) > 0
	case StepLocation:
		return d.Location.Address != "" && d.Location.Latitude != nil
	case StepViolations:
		return len(d.Violations) > 0 && d.Description != ""
	case StepEvidence:
		// Additional evidence is optional
		return true
	case StepContact:
		if d.Contact.Anonymous {
			return true
		}
		return d.Contact.Name != "" && d.Contact.Email != "" && d.Contact.DataConsent
	default:
		return false
	}
}

// Complete reports whether every step is satisfied and the draft may be
// submitted.
func (d *Draft) Complete() bool {
	for step := StepImage; step <= stepCount; step++ {
		if !d.StepComplete(step) {
			return false
		}
	}
	return true
}
