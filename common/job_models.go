package common

import (
	"time"

	"gorm.io/gorm"
)

// Job statuses
const (
	JobStatusPending    = "pending"
	JobStatusProcessing = "processing"
	JobStatusCompleted  = "completed"
	JobStatusFailed     = "failed"
)

// ConversionJob tracks one CSV to JSON conversion
type ConversionJob struct {
	ID             string     `gorm:"primaryKey;type:text" json:"id"`
	Source         string     `gorm:"not null" json:"source"`
	Destination    string     `json:"destination,omitempty"`
	Lowercase      bool       `gorm:"not null" json:"lowercase"`
	Pretty         bool       `gorm:"not null" json:"pretty"`
	Shape          string     `json:"shape,omitempty"` // object, array
	Status         string     `gorm:"not null;index" json:"status"` // pending, processing, completed, failed
	TotalRecords   int        `gorm:"default:0" json:"total_records"`
	ProcessedCount int        `gorm:"default:0" json:"processed_count"`
	Error          string     `gorm:"type:text" json:"error,omitempty"`
	Warnings       string     `gorm:"type:text" json:"warnings,omitempty"` // JSON array of header warnings
	CreatedAt      time.Time  `gorm:"not null;index" json:"created_at"`
	UpdatedAt      time.Time  `gorm:"not null" json:"updated_at"`
	CompletedAt    *time.Time `json:"completed_at,omitempty"`
}

// ApiMetric tracks API performance metrics
type ApiMetric struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	RequestID     string    `gorm:"index" json:"request_id"`
	Endpoint      string    `gorm:"not null" json:"endpoint"`
	Method        string    `gorm:"not null" json:"method"`
	StatusCode    int       `gorm:"not null" json:"status_code"`
	DurationMs    int       `gorm:"not null" json:"duration_ms"`
	RowsProcessed int       `gorm:"default:0" json:"rows_processed"`
	Errors        string    `gorm:"type:text" json:"errors,omitempty"`
	Timestamp     time.Time `gorm:"not null" json:"timestamp"`
}

func (ConversionJob) TableName() string { return "conversion_jobs" }
func (ApiMetric) TableName() string     { return "api_metrics" }

// AutoMigrateJobs creates job tracking tables
func AutoMigrateJobs(db *gorm.DB) error {
	return db.AutoMigrate(&ConversionJob{}, &ApiMetric{})
}
