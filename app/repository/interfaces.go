package repository

import (
	"time"

	"gorm.io/gorm"

	"github.com/UrbanWatchHQ/BillboardWatch/app/models"
)

// UserRepository defines the interface for user-related database operations
type UserRepository interface {
	Create(user *models.User) error
	GetByID(id uint) (*models.User, error)
	GetByEmail(email string) (*models.User, error)
	Update(user *models.User) error
	Delete(id uint) error
	Count() (int64, error)
}

// ReportFilter narrows the authority-side report listing.
type ReportFilter struct {
	Status   string
	Priority string
	City     string
	DateFrom *time.Time
	DateTo   *time.Time
	Offset   int
	Limit    int
}

// ReportStatistics aggregates report counts for the dashboard.
type ReportStatistics struct {
	Total      int64            `json:"total"`
	ByStatus   map[string]int64 `json:"by_status"`
	ByPriority map[string]int64 `json:"by_priority"`
}

// ReportRepository defines the interface for billboard report operations
type ReportRepository interface {
	Create(report *models.BillboardReport) error
	GetByID(id uint) (*models.BillboardReport, error)
	GetByPublicID(publicID string) (*models.BillboardReport, error)
	GetByReporterID(reporterID uint, offset, limit int) ([]models.BillboardReport, error)
	List(filter ReportFilter) ([]models.BillboardReport, error)
	UpdateStatus(id uint, status, notes string) error
	Count() (int64, error)
	CountSince(since time.Time) (int64, error)
	ListSince(since time.Time, limit int) ([]models.BillboardReport, error)
	Statistics() (*ReportStatistics, error)
}

// NotificationRepository defines the interface for in-app notifications
type NotificationRepository interface {
	Create(notification *models.Notification) error
	GetByUserID(userID uint, offset, limit int) ([]models.Notification, error)
	MarkAsRead(id uint, userID uint) error
	CountUnread(userID uint) (int64, error)
}

// Repositories struct holds all repository instances
type Repositories struct {
	User         UserRepository
	Report       ReportRepository
	Notification NotificationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		Report:       NewReportRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
