package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestViolationLabelKnownCodes(t *testing.T) {
	assert.Equal(t, "Oversized Dimensions", ViolationLabel("oversized"))
	assert.Equal(t, "Unsafe Placement", ViolationLabel("unsafe_placement"))
	assert.Equal(t, "Missing Permits", ViolationLabel("missing_permit"))
	assert.Equal(t, "Traffic Signal Proximity", ViolationLabel("traffic_obstruction"))
	assert.Equal(t, "Structural Damage", ViolationLabel("structural_damage"))
	assert.Equal(t, "Content Violation", ViolationLabel("content_violation"))
}

func TestViolationLabelUnknownCodePassesThrough(t *testing.T) {
	assert.Equal(t, "glare_hazard", ViolationLabel("glare_hazard"))
}

func TestViolationSummary(t *testing.T) {
	assert.Equal(t, "Oversized Dimensions, Missing Permits",
		ViolationSummary([]string{"oversized", "missing_permit"}))
	assert.Equal(t, "Not specified", ViolationSummary(nil))
	assert.Equal(t, "Not specified", ViolationSummary([]string{}))
}

func TestViolationSummaryMixedKnownAndUnknown(t *testing.T) {
	assert.Equal(t, "Structural Damage, new_code",
		ViolationSummary([]string{"structural_damage", "new_code"}))
}

func TestPriorityLabel(t *testing.T) {
	assert.Equal(t, "Low Priority", PriorityLabel("low"))
	assert.Equal(t, "Medium Priority", PriorityLabel("medium"))
	assert.Equal(t, "High Priority", PriorityLabel("high"))
	assert.Equal(t, "Emergency", PriorityLabel("emergency"))
	assert.Equal(t, "critical", PriorityLabel("critical"))
}
