package controllers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"sync"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
	"github.com/UrbanWatchHQ/BillboardWatch/app/repository"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/draft"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/evidence"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/feed"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/metrics/counter"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/notify"
	"github.com/UrbanWatchHQ/BillboardWatch/internal/pkg/usercontext"
)

// ReportDeps wires the submission pipeline. Set once during router setup.
type ReportDeps struct {
	Evidence *evidence.Store
	Drafts   *draft.Store
	Autosave *draft.Autosaver
	Notifier *notify.Service
	Feed     *feed.Publisher
}

var reportDeps ReportDeps

// InitReportController installs the pipeline dependencies.
func InitReportController(deps ReportDeps) {
	reportDeps = deps
}

// HandleSubmitReport runs the full submission pipeline: validate the
// draft, upload evidence images, persist the report, then notify the
// authority. Validation runs before the uploads so a rejected draft
// never stores an image, and uploads run before the insert so a failed
// upload never leaves a half-complete row. A failed notification after
// the insert is reported but does not fail the submission.
func HandleSubmitReport(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "authentication_missing",
			"message": "Please sign in to submit reports",
		})
	}

	if reportDeps.Evidence == nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "configuration_error",
			"message": "Evidence storage is not configured",
		})
	}

	reportJSON := c.FormValue("report")
	if reportJSON == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Missing report payload",
		})
	}

	var d draft.Draft
	if err := json.Unmarshal([]byte(reportJSON), &d); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Report payload is not valid JSON",
		})
	}

	form, err := c.MultipartForm()
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": "Expected multipart form data",
		})
	}

	primaries := form.File["image"]
	if len(primaries) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "upload_failed",
			"message": "Primary evidence image is required",
		})
	}
	additionals := form.File["additional_images"]
	if len(additionals) > models.MaxAdditionalImages {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "upload_failed",
			"message": fmt.Sprintf("At most %d additional images are allowed", models.MaxAdditionalImages),
		})
	}

	// reject a broken draft before anything is stored
	report := reportFromDraft(&d, userCtx.UserID)
	report.Normalize()
	if err := report.ValidateContent(); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	ctx := c.UserContext()

	primaryURL, thumbURL, storedKeys, capture, err := uploadPrimary(ctx, userCtx.UserID, primaries[0])
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "upload_failed",
			"message": err.Error(),
		})
	}

	additionalURLs, additionalKeys, err := uploadAdditional(ctx, userCtx.UserID, additionals)
	if err != nil {
		// abort before any database write
		discardEvidence(storedKeys)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "upload_failed",
			"message": err.Error(),
		})
	}
	storedKeys = append(storedKeys, additionalKeys...)

	report.ImageURL = primaryURL
	report.ThumbnailURL = thumbURL
	report.AdditionalImages = additionalURLs

	// backfill coordinates from EXIF when the client sent none
	if report.Location.Latitude == nil && capture.HasGPS {
		lat, lng := capture.Latitude, capture.Longitude
		report.Location.Latitude = &lat
		report.Location.Longitude = &lng
	}

	// coordinates can only be checked once the EXIF backfill has run;
	// a failure here must not leave the uploaded images behind
	if err := report.Validate(); err != nil {
		discardEvidence(storedKeys)
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":   "invalid_request",
			"message": err.Error(),
		})
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	if err := repo.Create(report); err != nil {
		log.Errorf("Report insert failed for user %d: %v", userCtx.UserID, err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error":   "persistence_failed",
			"message": "Failed to save the report, please try again",
		})
	}
	log.Infof("Report %s submitted by user %d from %s", report.PublicID, userCtx.UserID, GetClientIP(c))

	reportDeps.Feed.Publish(ctx, feed.Event{
		Event:    feed.EventInsert,
		ReportID: report.ID,
		PublicID: report.PublicID,
		Status:   report.Status,
		Priority: report.Priority,
	})

	// the report is saved - a failed notification must not undo that
	response := fiber.Map{
		"id":         report.ID,
		"public_id":  report.PublicID,
		"status":     report.Status,
		"priority":   report.Priority,
		"email_sent": false,
	}
	if reportDeps.Notifier != nil {
		receipt, err := reportDeps.Notifier.SendReportEmail(report.PublicID, notify.SnapshotFromReport(report), "")
		if err != nil {
			log.Warnf("Notification for report %s failed: %v", report.PublicID, err)
			response["notification_error"] = "notification_failed"
		} else {
			response["email_sent"] = true
			response["email_id"] = receipt.EmailID
		}
	}

	// the stored draft is spent
	if reportDeps.Autosave != nil {
		reportDeps.Autosave.Cancel(userCtx.UserID)
	}
	if reportDeps.Drafts != nil {
		if err := reportDeps.Drafts.Delete(ctx, userCtx.UserID); err != nil {
			log.Warnf("Failed to clear draft for user %d: %v", userCtx.UserID, err)
		}
	}

	return c.Status(fiber.StatusCreated).JSON(response)
}

// HandleGetMyReports lists the authenticated user's own reports.
func HandleGetMyReports(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	offset := c.QueryInt("offset", 0)
	limit := c.QueryInt("limit", 20)
	if limit < 1 || limit > 100 {
		limit = 20
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	reports, err := repo.GetByReporterID(userCtx.UserID, offset, limit)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load reports"})
	}

	return c.JSON(fiber.Map{"reports": reports, "offset": offset, "limit": limit})
}

// HandleGetReport returns one report by its citizen-facing id. Citizens
// only see their own reports, authorities see all.
func HandleGetReport(c *fiber.Ctx) error {
	userCtx := usercontext.GetUserContext(c)
	if !userCtx.IsLoggedIn {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "authentication_missing", "message": "login required"})
	}

	repo := repository.GetGlobalFactory().GetReportRepository()
	report, err := repo.GetByPublicID(c.Params("publicID"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Report not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to load report"})
	}

	if !userCtx.IsAuthority && (report.ReporterID == nil || *report.ReporterID != userCtx.UserID) {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "not_found", "message": "Report not found"})
	}

	if userCtx.IsAuthority {
		if err := counter.AddReportView(report.ID); err != nil {
			log.Warnf("Failed to count view for report %s: %v", report.PublicID, err)
		}
	}

	return c.JSON(report)
}

func uploadPrimary(ctx context.Context, userID uint, fh *multipart.FileHeader) (string, string, []string, evidence.CaptureInfo, error) {
	var capture evidence.CaptureInfo

	data, err := readMultipartFile(fh)
	if err != nil {
		return "", "", nil, capture, err
	}

	contentType, err := evidence.ValidateImageBySniff(fh.Filename, data)
	if err != nil {
		return "", "", nil, capture, err
	}

	capture = evidence.ExtractCapture(data)

	key := evidence.ObjectKey(userID, fh.Filename)
	url, err := reportDeps.Evidence.Put(ctx, key, data, contentType)
	if err != nil {
		return "", "", nil, capture, fmt.Errorf("failed to store evidence image: %w", err)
	}
	keys := []string{key}

	// the thumbnail is a dashboard nicety, its failure is not the citizen's problem
	thumbURL := ""
	if thumb, err := evidence.Thumbnail(data); err == nil {
		thumbKey := evidence.ThumbnailKey(key)
		if u, err := reportDeps.Evidence.Put(ctx, thumbKey, thumb, "image/jpeg"); err == nil {
			thumbURL = u
			keys = append(keys, thumbKey)
		} else {
			log.Warnf("Thumbnail upload failed for %s: %v", key, err)
		}
	}

	return url, thumbURL, keys, capture, nil
}

// uploadAdditional stores the optional evidence images concurrently.
// Any failure aborts the submission; images already stored are removed
// so nothing orphaned stays behind.
func uploadAdditional(ctx context.Context, userID uint, files []*multipart.FileHeader) ([]string, []string, error) {
	if len(files) == 0 {
		return nil, nil, nil
	}

	urls := make([]string, len(files))
	keys := make([]string, len(files))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(3)
	for i, fh := range files {
		i, fh := i, fh
		g.Go(func() error {
			data, err := readMultipartFile(fh)
			if err != nil {
				return err
			}
			contentType, err := evidence.ValidateImageBySniff(fh.Filename, data)
			if err != nil {
				return err
			}

			key := evidence.AdditionalObjectKey(userID, fh.Filename)
			url, err := reportDeps.Evidence.Put(gctx, key, data, contentType)
			if err != nil {
				return fmt.Errorf("failed to store additional image %s: %w", fh.Filename, err)
			}

			mu.Lock()
			urls[i] = url
			keys[i] = key
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		mu.Lock()
		stored := append([]string(nil), keys...)
		mu.Unlock()
		discardEvidence(stored)
		return nil, nil, err
	}

	return urls, keys, nil
}

// discardEvidence removes stored objects for a submission that will not
// be persisted.
func discardEvidence(keys []string) {
	for _, key := range keys {
		if key == "" {
			continue
		}
		if err := reportDeps.Evidence.Delete(context.Background(), key); err != nil {
			log.Warnf("Failed to clean up orphaned upload %s: %v", key, err)
		}
	}
}

func readMultipartFile(fh *multipart.FileHeader) ([]byte, error) {
	f, err := fh.Open()
	if err != nil {
		return nil, fmt.Errorf("failed to open uploaded file %s: %w", fh.Filename, err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("failed to read uploaded file %s: %w", fh.Filename, err)
	}
	return data, nil
}

func reportFromDraft(d *draft.Draft, reporterID uint) *models.BillboardReport {
	rid := reporterID
	return &models.BillboardReport{
		ReporterID:       &rid,
		Annotations:      d.Annotations,
		Location:         d.Location,
		Violations:       d.Violations,
		Priority:         d.Priority,
		Description:      d.Description,
		EstimatedSize:    d.EstimatedSize,
		DistanceFromRoad: d.DistanceFromRoad,
		TrafficImpact:    d.TrafficImpact,
		ContactAnonymous: d.Contact.Anonymous,
		ContactName:      d.Contact.Name,
		ContactEmail:     d.Contact.Email,
		ContactPhone:     d.Contact.Phone,
		AllowFollowUp:    d.Contact.AllowFollowUp,
		HasWitnesses:     d.Contact.HasWitnesses,
		DataConsent:      d.Contact.DataConsent,
		Status:           models.ReportStatusSubmitted,
	}
}
