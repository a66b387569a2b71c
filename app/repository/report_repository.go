package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

// reportRepository implements the ReportRepository interface
type reportRepository struct {
	db *gorm.DB
}

// NewReportRepository creates a new report repository instance
func NewReportRepository(db *gorm.DB) ReportRepository {
	return &reportRepository{db: db}
}

// Create inserts a new report, assigning the public reference id if the
// caller did not set one.
func (r *reportRepository) Create(report *models.BillboardReport) error {
	if report.PublicID == "" {
		publicID, err := models.GeneratePublicID()
		if err != nil {
			return err
		}
		report.PublicID = publicID
	}
	return r.db.Create(report).Error
}

// GetByID retrieves a report by its ID
func (r *reportRepository) GetByID(id uint) (*models.BillboardReport, error) {
	var report models.BillboardReport
	err := r.db.Preload("Reporter").First(&report, id).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetByPublicID retrieves a report by its citizen-facing reference
func (r *reportRepository) GetByPublicID(publicID string) (*models.BillboardReport, error) {
	var report models.BillboardReport
	err := r.db.Preload("Reporter").Where("public_id = ?", publicID).First(&report).Error
	if err != nil {
		return nil, err
	}
	return &report, nil
}

// GetByReporterID retrieves a reporter's own reports, newest first
func (r *reportRepository) GetByReporterID(reporterID uint, offset, limit int) ([]models.BillboardReport, error) {
	var reports []models.BillboardReport
	err := r.db.Where("reporter_id = ?", reporterID).
		Order("created_at DESC").Offset(offset).Limit(limit).Find(&reports).Error
	return reports, err
}

// List retrieves reports for the authority dashboard with optional filters
func (r *reportRepository) List(filter ReportFilter) ([]models.BillboardReport, error) {
	query := r.db.Model(&models.BillboardReport{}).Preload("Reporter")

	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Priority != "" {
		query = query.Where("priority = ?", filter.Priority)
	}
	if filter.City != "" {
		// location is a JSON column, match on the extracted city field
		query = query.Where("JSON_UNQUOTE(JSON_EXTRACT(location, '$.city')) LIKE ?", "%"+filter.City+"%")
	}
	if filter.DateFrom != nil {
		query = query.Where("created_at >= ?", *filter.DateFrom)
	}
	if filter.DateTo != nil {
		query = query.Where("created_at <= ?", *filter.DateTo)
	}

	limit := filter.Limit
	if limit <= 0 || limit > 100 {
		limit = 50
	}

	var reports []models.BillboardReport
	err := query.Order("created_at DESC").Offset(filter.Offset).Limit(limit).Find(&reports).Error
	return reports, err
}

// UpdateStatus moves a report into a new lifecycle status with optional notes
func (r *reportRepository) UpdateStatus(id uint, status, notes string) error {
	return r.db.Model(&models.BillboardReport{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"status":       status,
			"status_notes": notes,
		}).Error
}

// Count returns the total number of reports
func (r *reportRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.BillboardReport{}).Count(&count).Error
	return count, err
}

// CountSince returns the number of reports created after the given time
func (r *reportRepository) CountSince(since time.Time) (int64, error) {
	var count int64
	err := r.db.Model(&models.BillboardReport{}).Where("created_at >= ?", since).Count(&count).Error
	return count, err
}

// ListSince returns reports created after the given time, newest first
func (r *reportRepository) ListSince(since time.Time, limit int) ([]models.BillboardReport, error) {
	var reports []models.BillboardReport
	err := r.db.Where("created_at >= ?", since).
		Order("created_at DESC").Limit(limit).Find(&reports).Error
	return reports, err
}

// Statistics aggregates report counts by status and priority
func (r *reportRepository) Statistics() (*ReportStatistics, error) {
	stats := &ReportStatistics{
		ByStatus:   make(map[string]int64),
		ByPriority: make(map[string]int64),
	}

	if err := r.db.Model(&models.BillboardReport{}).Count(&stats.Total).Error; err != nil {
		return nil, err
	}

	type bucket struct {
		Key   string
		Count int64
	}

	var byStatus []bucket
	if err := r.db.Model(&models.BillboardReport{}).
		Select("status AS `key`, COUNT(*) AS count").Group("status").Scan(&byStatus).Error; err != nil {
		return nil, err
	}
	for _, b := range byStatus {
		stats.ByStatus[b.Key] = b.Count
	}

	var byPriority []bucket
	if err := r.db.Model(&models.BillboardReport{}).
		Select("priority AS `key`, COUNT(*) AS count").Group("priority").Scan(&byPriority).Error; err != nil {
		return nil, err
	}
	for _, b := range byPriority {
		stats.ByPriority[b.Key] = b.Count
	}

	return stats, nil
}
