package constants

// Static route constants
const (
	ReportsRoute   = "/reports"
	DraftsRoute    = "/drafts"
	AuthorityRoute = "/authority"
	APIRoute       = "/api"
)
