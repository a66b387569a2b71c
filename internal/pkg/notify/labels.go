package notify

import "strings"

// violationLabels maps violation category codes to the wording used in
// outbound mail. Codes outside the table render as themselves so a newer
// client never breaks an older notifier.
var violationLabels = map[string]string{
	"oversized":           "Oversized Dimensions",
	"unsafe_placement":    "Unsafe Placement",
	"missing_permit":      "Missing Permits",
	"traffic_obstruction": "Traffic Signal Proximity",
	"structural_damage":   "Structural Damage",
	"content_violation":   "Content Violation",
}

var priorityLabels = map[string]string{
	"low":       "Low Priority",
	"medium":    "Medium Priority",
	"high":      "High Priority",
	"emergency": "Emergency",
}

// ViolationLabel returns the human-readable label for a violation code,
// or the raw code when unknown.
func ViolationLabel(code string) string {
	if label, ok := violationLabels[code]; ok {
		return label
	}
	return code
}

// ViolationSummary joins the labels for a violation set. An empty set
// renders as "Not specified".
func ViolationSummary(codes []string) string {
	if len(codes) == 0 {
		return "Not specified"
	}
	labels := make([]string, 0, len(codes))
	for _, code := range codes {
		labels = append(labels, ViolationLabel(code))
	}
	return strings.Join(labels, ", ")
}

// PriorityLabel returns the human-readable label for a priority code,
// or the raw code when unknown.
func PriorityLabel(code string) string {
	if label, ok := priorityLabels[code]; ok {
		return label
	}
	return code
}
