package digest

import (
	"bytes"
	"fmt"
	"html/template"
	"time"

	"github.com/gofiber/fiber/v2/log"
	"github.com/k3a/html2text"
	"github.com/robfig/cron/v3"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
	"github.com/UrbanWatchHQ/BillboardWatch/app/repository"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/env"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/metrics/counter"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
)

// DefaultSchedule runs the digest every morning at 07:00 server time.
const DefaultSchedule = "0 7 * * *"

// Digest mails authorities a daily summary of newly submitted reports.
type Digest struct {
	reports repository.ReportRepository
	mailer  *notify.Service
	to      string
	cron    *cron.Cron
}

// New creates a digest job over the given report repository and mailer.
func New(reports repository.ReportRepository, mailer *notify.Service) *Digest {
	return &Digest{
		reports: reports,
		mailer:  mailer,
		to:      env.GetEnv("GOV_REPORT_EMAIL", notify.DefaultGovEmail),
	}
}

// Start registers the digest on its cron schedule and begins running.
// DIGEST_SCHEDULE overrides the default.
func (d *Digest) Start() error {
	schedule := env.GetEnv("DIGEST_SCHEDULE", DefaultSchedule)

	d.cron = cron.New()
	if _, err := d.cron.AddFunc(schedule, d.run); err != nil {
		return fmt.Errorf("failed to schedule daily digest: %w", err)
	}
	if _, err := d.cron.AddFunc("@every 5m", flushViewCounters); err != nil {
		return fmt.Errorf("failed to schedule counter flush: %w", err)
	}
	d.cron.Start()
	log.Infof("Daily report digest scheduled: %s", schedule)
	return nil
}

// Stop halts the cron scheduler, waiting for a running job to finish.
func (d *Digest) Stop() {
	if d.cron != nil {
		ctx := d.cron.Stop()
		<-ctx.Done()
	}
}

func flushViewCounters() {
	if err := counter.FlushAll(); err != nil {
		log.Errorf("View counter flush failed: %v", err)
	}
}

func (d *Digest) run() {
	since := time.Now().Add(-24 * time.Hour)

	count, err := d.reports.CountSince(since)
	if err != nil {
		log.Errorf("Daily digest aborted, count query failed: %v", err)
		return
	}
	if count == 0 {
		log.Info("Daily digest skipped: no new reports")
		return
	}

	entries, err := d.reports.ListSince(since, 50)
	if err != nil {
		log.Errorf("Daily digest aborted, list query failed: %v", err)
		return
	}

	subject, html, err := renderDigest(count, entries)
	if err != nil {
		log.Errorf("Daily digest aborted, render failed: %v", err)
		return
	}

	if err := d.mailer.SendRaw(d.to, subject, html, html2text.HTML2Text(html)); err != nil {
		log.Errorf("Daily digest delivery failed: %v", err)
		return
	}
	log.Infof("Daily digest sent: %d reports to %s", count, d.to)
}

type digestRow struct {
	PublicID   string
	Priority   string
	Violations string
	City       string
	Status     string
}

var digestTmpl = template.Must(template.New("digest").Parse(`<html>
<body style="font-family: Arial, sans-serif;">
<h2>Billboard Violation Reports - Daily Summary</h2>
<p>{{.Count}} new report(s) in the last 24 hours.</p>
<table border="1" cellpadding="6" cellspacing="0">
<tr><th>Report</th><th>Priority</th><th>Violations</th><th>City</th><th>Status</th></tr>
{{range .Rows}}<tr><td>{{.PublicID}}</td><td>{{.Priority}}</td><td>{{.Violations}}</td><td>{{.City}}</td><td>{{.Status}}</td></tr>
{{end}}</table>
<p style="color: #666; font-size: 12px;">Automated summary from the Billboard Monitoring System.</p>
</body>
</html>
`))

func renderDigest(count int64, reports []models.BillboardReport) (string, string, error) {
	rows := make([]digestRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, digestRow{
			PublicID:   r.PublicID,
			Priority:   notify.PriorityLabel(r.Priority),
			Violations: notify.ViolationSummary(r.Violations),
			City:       r.Location.City,
			Status:     r.Status,
		})
	}

	var buf bytes.Buffer
	err := digestTmpl.Execute(&buf, struct {
		Count int64
		Rows  []digestRow
	}{count, rows})
	if err != nil {
		return "", "", err
	}

	subject := fmt.Sprintf("Daily Billboard Report Digest: %d new report(s) - %s",
		count, time.Now().Format("02 Jan 2006"))
	return subject, buf.String(), nil
}
