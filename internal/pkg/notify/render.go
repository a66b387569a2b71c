package notify

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/k3a/html2text"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

// ReportSnapshot is the denormalized report payload the notifier renders.
// Field names mirror the persisted row so the HTTP endpoint can take the
// stored record verbatim. The snapshot is ephemeral - built right after
// persistence and discarded once the provider call returns.
type ReportSnapshot struct {
	PublicID         string                   `json:"public_id,omitempty"`
	Priority         string                   `json:"priority"`
	Violations       []string                 `json:"violations"`
	Description      string                   `json:"description"`
	EstimatedSize    string                   `json:"estimated_size"`
	DistanceFromRoad string                   `json:"distance_from_road"`
	Location         LocationSnapshot         `json:"location_data"`
	ContactAnonymous bool                     `json:"contact_anonymous"`
	ContactName      string                   `json:"contact_name"`
	ContactEmail     string                   `json:"contact_email"`
	ContactPhone     string                   `json:"contact_phone"`
	AllowFollowUp    bool                     `json:"allow_follow_up"`
	ImageURL         string                   `json:"image_url"`
	AdditionalImages []string                 `json:"additional_images"`
	Annotations      []map[string]interface{} `json:"ai_annotations"`
	CreatedAt        *time.Time               `json:"created_at"`
}

// LocationSnapshot is the location block of a report snapshot.
type LocationSnapshot struct {
	Latitude  *float64 `json:"latitude"`
	Longitude *float64 `json:"longitude"`
	Address   string   `json:"address"`
	City      string   `json:"city"`
	State     string   `json:"state"`
	Landmarks []string `json:"landmarks"`
}

// SnapshotFromReport builds the notifier payload from a persisted report.
func SnapshotFromReport(r *models.BillboardReport) *ReportSnapshot {
	created := r.CreatedAt
	return &ReportSnapshot{
		PublicID:         r.PublicID,
		Priority:         r.Priority,
		Violations:       r.Violations,
		Description:      r.Description,
		EstimatedSize:    r.EstimatedSize,
		DistanceFromRoad: r.DistanceFromRoad,
		Location: LocationSnapshot{
			Latitude:  r.Location.Latitude,
			Longitude: r.Location.Longitude,
			Address:   r.Location.Address,
			City:      r.Location.City,
			State:     r.Location.State,
			Landmarks: r.Location.Landmarks,
		},
		ContactAnonymous: r.ContactAnonymous,
		ContactName:      r.ContactName,
		ContactEmail:     r.ContactEmail,
		ContactPhone:     r.ContactPhone,
		AllowFollowUp:    r.AllowFollowUp,
		ImageURL:         r.ImageURL,
		AdditionalImages: r.AdditionalImages,
		Annotations:      r.Annotations,
		CreatedAt:        &created,
	}
}

// RenderedEmail is one fully rendered notification document.
type RenderedEmail struct {
	Subject string
	HTML    string
	Text    string
}

// emailView precomputes every rendered field so the template never sees a
// nil or empty value - missing optional fields become explicit
// placeholders instead.
type emailView struct {
	ReportID         string
	PriorityCode     string
	PriorityLabel    string
	Violations       string
	SubmittedAt      string
	Address          string
	CityState        string
	Coordinates      string
	Landmarks        string
	Description      string
	EstimatedSize    string
	DistanceFromRoad string
	Anonymous        bool
	ContactName      string
	ContactEmail     string
	ContactPhone     string
	FollowUp         string
	EvidenceImage    string
	AdditionalCount  int
	AnnotationCount  int
	GeneratedAt      string
}

const timeLayout = "02 Jan 2006, 3:04 PM MST"

func orPlaceholder(s, placeholder string) string {
	if s == "" {
		return placeholder
	}
	return s
}

func buildView(reportID string, snap *ReportSnapshot) emailView {
	v := emailView{
		ReportID:      reportID,
		PriorityCode:  snap.Priority,
		PriorityLabel: PriorityLabel(snap.Priority),
		Violations:    ViolationSummary(snap.Violations),
		Anonymous:     snap.ContactAnonymous,
		GeneratedAt:   time.Now().Format(timeLayout),
	}

	submitted := time.Now()
	if snap.CreatedAt != nil {
		submitted = *snap.CreatedAt
	}
	v.SubmittedAt = submitted.Format(timeLayout)

	v.Address = orPlaceholder(snap.Location.Address, "Not provided")
	city := orPlaceholder(snap.Location.City, "Not provided")
	if snap.Location.State != "" {
		city = city + ", " + snap.Location.State
	}
	v.CityState = city

	if snap.Location.Latitude != nil && snap.Location.Longitude != nil {
		v.Coordinates = fmt.Sprintf("%.6f, %.6f", *snap.Location.Latitude, *snap.Location.Longitude)
	} else {
		v.Coordinates = "N/A"
	}

	if len(snap.Location.Landmarks) > 0 {
		v.Landmarks = joinNonEmpty(snap.Location.Landmarks)
	} else {
		v.Landmarks = "None specified"
	}

	v.Description = orPlaceholder(snap.Description, "No description provided")
	v.EstimatedSize = orPlaceholder(snap.EstimatedSize, "Not measured")
	v.DistanceFromRoad = orPlaceholder(snap.DistanceFromRoad, "Not measured")

	if !snap.ContactAnonymous {
		v.ContactName = orPlaceholder(snap.ContactName, "Not provided")
		v.ContactEmail = orPlaceholder(snap.ContactEmail, "Not provided")
		v.ContactPhone = orPlaceholder(snap.ContactPhone, "Not provided")
		if snap.AllowFollowUp {
			v.FollowUp = "Yes"
		} else {
			v.FollowUp = "No"
		}
	}

	if snap.ImageURL != "" {
		v.EvidenceImage = "Available (linked)"
	} else {
		v.EvidenceImage = "Not provided"
	}
	v.AdditionalCount = len(snap.AdditionalImages)
	v.AnnotationCount = len(snap.Annotations)

	return v
}

func joinNonEmpty(items []string) string {
	out := ""
	for _, item := range items {
		if item == "" {
			continue
		}
		if out != "" {
			out += ", "
		}
		out += item
	}
	if out == "" {
		return "None specified"
	}
	return out
}

var emailTmpl = template.Must(template.New("report-email").Parse(`<!DOCTYPE html>
<html>
<head>
<style>
body { font-family: Arial, sans-serif; line-height: 1.6; color: #333; }
.header { background: #3B82F6; color: white; padding: 20px; text-align: center; }
.content { padding: 20px; }
.section { margin-bottom: 20px; padding: 15px; background: #f8f9fa; border-radius: 8px; }
.priority-high { border-left: 4px solid #DC2626; }
.priority-medium { border-left: 4px solid #EA580C; }
.priority-low { border-left: 4px solid #16A34A; }
.priority-emergency { border-left: 4px solid #DC2626; background: #FEF2F2; }
.details-table { width: 100%; border-collapse: collapse; }
.details-table td { padding: 8px; border-bottom: 1px solid #ddd; }
.details-table .label { font-weight: bold; background: #f1f5f9; }
.footer { background: #f8f9fa; padding: 15px; text-align: center; font-size: 12px; color: #666; }
</style>
</head>
<body>
<div class="header">
<h1>New Billboard Violation Report</h1>
<p>Report ID: {{.ReportID}}</p>
</div>
<div class="content">
<div class="section priority-{{.PriorityCode}}">
<h2>Report Summary</h2>
<table class="details-table">
<tr><td class="label">Priority Level:</td><td><strong>{{.PriorityLabel}}</strong></td></tr>
<tr><td class="label">Violations Detected:</td><td>{{.Violations}}</td></tr>
<tr><td class="label">Submitted Date:</td><td>{{.SubmittedAt}}</td></tr>
</table>
</div>
<div class="section">
<h2>Location Information</h2>
<table class="details-table">
<tr><td class="label">Address:</td><td>{{.Address}}</td></tr>
<tr><td class="label">City:</td><td>{{.CityState}}</td></tr>
<tr><td class="label">Coordinates:</td><td>{{.Coordinates}}</td></tr>
<tr><td class="label">Nearby Landmarks:</td><td>{{.Landmarks}}</td></tr>
</table>
</div>
<div class="section">
<h2>Violation Details</h2>
<table class="details-table">
<tr><td class="label">Description:</td><td>{{.Description}}</td></tr>
<tr><td class="label">Estimated Size:</td><td>{{.EstimatedSize}}</td></tr>
<tr><td class="label">Distance from Road:</td><td>{{.DistanceFromRoad}}</td></tr>
</table>
</div>
<div class="section">
<h2>Reporter Information</h2>
<table class="details-table">
{{if .Anonymous}}<tr><td colspan="2"><em>Anonymous Report - Contact details not available</em></td></tr>
{{else}}<tr><td class="label">Name:</td><td>{{.ContactName}}</td></tr>
<tr><td class="label">Email:</td><td>{{.ContactEmail}}</td></tr>
<tr><td class="label">Phone:</td><td>{{.ContactPhone}}</td></tr>
<tr><td class="label">Follow-up Allowed:</td><td>{{.FollowUp}}</td></tr>
{{end}}</table>
</div>
<div class="section">
<h2>Evidence</h2>
<p><strong>Main Evidence Image:</strong> {{.EvidenceImage}}</p>
<p><strong>Additional Images:</strong> {{.AdditionalCount}} images</p>
<p><strong>AI Analysis:</strong> {{.AnnotationCount}} annotations detected</p>
</div>
<div class="section">
<h2>Immediate Actions Required</h2>
<ul>
<li>Verify the reported location</li>
<li>Dispatch inspection team</li>
<li>Document findings</li>
<li>Issue notice if violation confirmed</li>
<li>Update report status in system</li>
</ul>
</div>
</div>
<div class="footer">
<p>This is an automated email from the Billboard Monitoring System</p>
<p>Please respond promptly to ensure public safety compliance</p>
<p>Report generated at: {{.GeneratedAt}}</p>
</div>
</body>
</html>
`))

// Render produces the full notification document for one report: subject
// line encoding report id and priority, HTML body, and a plain-text body
// derived from the HTML.
func Render(reportID string, snap *ReportSnapshot) (*RenderedEmail, error) {
	view := buildView(reportID, snap)

	var buf bytes.Buffer
	if err := emailTmpl.Execute(&buf, view); err != nil {
		return nil, fmt.Errorf("failed to render report email: %w", err)
	}

	html := buf.String()
	return &RenderedEmail{
		Subject: fmt.Sprintf("URGENT: Billboard Violation Report %s - %s", reportID, view.PriorityLabel),
		HTML:    html,
		Text:    html2text.HTML2Text(html),
	}, nil
}
