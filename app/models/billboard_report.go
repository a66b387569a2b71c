package models

import (
	"crypto/rand"
	"database/sql/driver"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"
)

const (
	ReportStatusSubmitted     = "submitted"
	ReportStatusInvestigating = "investigating"
	ReportStatusResolved      = "resolved"
	ReportStatusRejected      = "rejected"
)

const (
	PriorityLow       = "low"
	PriorityMedium    = "medium"
	PriorityHigh      = "high"
	PriorityEmergency = "emergency"
)

// Violation category codes, fixed enumeration.
const (
	ViolationOversized          = "oversized"
	ViolationUnsafePlacement    = "unsafe_placement"
	ViolationMissingPermit      = "missing_permit"
	ViolationTrafficObstruction = "traffic_obstruction"
	ViolationStructuralDamage   = "structural_damage"
	ViolationContentViolation   = "content_violation"
)

// MaxAdditionalImages bounds the additional evidence images per report.
const MaxAdditionalImages = 5

// MaxDescriptionLen bounds the free-text description.
const MaxDescriptionLen = 500

var validViolations = map[string]bool{
	ViolationOversized:          true,
	ViolationUnsafePlacement:    true,
	ViolationMissingPermit:      true,
	ViolationTrafficObstruction: true,
	ViolationStructuralDamage:   true,
	ViolationContentViolation:   true,
}

var validPriorities = map[string]bool{
	PriorityLow:       true,
	PriorityMedium:    true,
	PriorityHigh:      true,
	PriorityEmergency: true,
}

var validStatuses = map[string]bool{
	ReportStatusSubmitted:     true,
	ReportStatusInvestigating: true,
	ReportStatusResolved:      true,
	ReportStatusRejected:      true,
}

// IsValidViolation reports whether code is part of the fixed enumeration.
func IsValidViolation(code string) bool { return validViolations[code] }

// IsValidPriority reports whether p is a known priority level.
func IsValidPriority(p string) bool { return validPriorities[p] }

// IsValidStatus reports whether s is a known lifecycle status.
func IsValidStatus(s string) bool { return validStatuses[s] }

// LocationData describes where the billboard stands. Stored as one JSON
// column because the authority dashboard consumes it as a unit.
type LocationData struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Accuracy  float64  `json:"accuracy,omitempty"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Landmarks []string `json:"landmarks,omitempty"`
}

func (l LocationData) Value() (driver.Value, error) {
	b, err := json.Marshal(l)
	return string(b), err
}

func (l *LocationData) Scan(value interface{}) error {
	switch v := value.(type) {
	case nil:
		*l = LocationData{}
		return nil
	case []byte:
		return json.Unmarshal(v, l)
	case string:
		return json.Unmarshal([]byte(v), l)
	default:
		return fmt.Errorf("cannot scan %T into LocationData", value)
	}
}

// BillboardReport is the persisted unit of work: one citizen-reported
// billboard violation with its evidence and reporter contact block.
type BillboardReport struct {
	ID       uint   `gorm:"primaryKey" json:"id"`
	PublicID string `gorm:"uniqueIndex;type:varchar(12);not null" json:"public_id"`

	ReporterID *uint `gorm:"index" json:"reporter_id,omitempty"`
	Reporter   *User `gorm:"foreignKey:ReporterID" json:"reporter,omitempty"`

	ImageURL         string     `gorm:"type:varchar(500)" json:"image_url"`
	ThumbnailURL     string     `gorm:"type:varchar(500);default:null" json:"thumbnail_url,omitempty"`
	AdditionalImages StringList `gorm:"type:json" json:"additional_images"`
	Annotations      JSONList   `gorm:"column:ai_annotations;type:json" json:"ai_annotations"`

	Location   LocationData `gorm:"type:json" json:"location_data"`
	Violations StringList   `gorm:"type:json" json:"violations"`
	Priority   string       `gorm:"type:varchar(20);default:'medium'" json:"priority"`

	Description      string  `gorm:"type:varchar(500)" json:"description"`
	EstimatedSize    string  `gorm:"type:varchar(100)" json:"estimated_size"`
	DistanceFromRoad string  `gorm:"type:varchar(100)" json:"distance_from_road"`
	TrafficImpact    JSONMap `gorm:"type:json" json:"traffic_impact"`

	ContactAnonymous bool   `gorm:"default:false" json:"contact_anonymous"`
	ContactName      string `gorm:"type:varchar(150)" json:"contact_name,omitempty"`
	ContactEmail     string `gorm:"type:varchar(200)" json:"contact_email,omitempty"`
	ContactPhone     string `gorm:"type:varchar(30)" json:"contact_phone,omitempty"`
	AllowFollowUp    bool   `gorm:"default:false" json:"allow_follow_up"`
	HasWitnesses     bool   `gorm:"default:false" json:"has_witnesses"`
	DataConsent      bool   `gorm:"default:false" json:"data_consent"`

	Status      string `gorm:"type:varchar(20);default:'submitted';index" json:"status"`
	StatusNotes string `gorm:"type:text" json:"status_notes,omitempty"`
	ViewCount   int64  `gorm:"default:0" json:"view_count"`

	CreatedAt time.Time      `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time      `gorm:"autoUpdateTime" json:"updated_at"`
	DeletedAt gorm.DeletedAt `gorm:"index" json:"-"`
}

// publicIDAlphabet avoids 0/1/O/I lookalikes on printed notices.
const publicIDAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZ23456789"

// GeneratePublicID returns a citizen-facing reference like "BM7KQ2R8XA".
func GeneratePublicID() (string, error) {
	b := make([]byte, 8)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	for i := range b {
		b[i] = publicIDAlphabet[int(b[i])%len(publicIDAlphabet)]
	}
	return "BM" + string(b), nil
}

// Normalize enforces the anonymity invariant before persistence: an
// anonymous report never carries reporter-identifying contact fields,
// regardless of what the client sent.
func (r *BillboardReport) Normalize() {
	if r.Priority == "" {
		r.Priority = PriorityMedium
	}
	if r.Status == "" {
		r.Status = ReportStatusSubmitted
	}
	if r.ContactAnonymous {
		r.ContactName = ""
		r.ContactEmail = ""
		r.ContactPhone = ""
		r.AllowFollowUp = false
	}
}

// Validate checks the completeness invariants for a submittable report.
func (r *BillboardReport) Validate() error {
	if r.ImageURL == "" {
		return errors.New("primary evidence image is required")
	}
	if r.Location.Latitude == nil || r.Location.Longitude == nil {
		return errors.New("location coordinates are required")
	}
	return r.ValidateContent()
}

// ValidateContent checks everything Validate does except the evidence
// image URL and the coordinates, which only exist after the upload and
// EXIF steps have run. The submit pipeline calls it first so a broken
// draft is rejected before any image is stored.
func (r *BillboardReport) ValidateContent() error {
	if len(r.Annotations) == 0 {
		return errors.New("at least one image annotation is required")
	}
	if len(r.Violations) == 0 {
		return errors.New("at least one violation category is required")
	}
	for _, v := range r.Violations {
		if !IsValidViolation(v) {
			return fmt.Errorf("unknown violation category %q", v)
		}
	}
	if !IsValidPriority(r.Priority) {
		return fmt.Errorf("unknown priority %q", r.Priority)
	}
	if r.Description == "" {
		return errors.New("description is required")
	}
	if len(r.Description) > MaxDescriptionLen {
		return fmt.Errorf("description exceeds %d characters", MaxDescriptionLen)
	}
	if len(r.AdditionalImages) > MaxAdditionalImages {
		return fmt.Errorf("at most %d additional images are allowed", MaxAdditionalImages)
	}
	if !r.ContactAnonymous {
		if r.ContactName == "" || r.ContactEmail == "" {
			return errors.New("name and email are required for non-anonymous reports")
		}
		if !r.DataConsent {
			return errors.New("data processing consent is required for non-anonymous reports")
		}
	}
	return nil
}

// CanTransitionTo reports whether the authority-side workflow may move the
// report into the target status. Submitted reports may go anywhere; closed
// reports stay closed.
func (r *BillboardReport) CanTransitionTo(target string) bool {
	if !IsValidStatus(target) || target == ReportStatusSubmitted {
		return false
	}
	switch r.Status {
	case ReportStatusSubmitted, ReportStatusInvestigating:
		return true
	default:
		return false
	}
}
