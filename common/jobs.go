package common

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// DefaultHistoryLimit is the number of jobs returned when no limit is given
const DefaultHistoryLimit = 20

// JobStore records conversion jobs. A nil *JobStore accepts every call and
// records nothing, so callers do not need to check whether history is enabled.
type JobStore struct {
	db *gorm.DB
}

// NewJobStore wraps an opened database
func NewJobStore(db *gorm.DB) *JobStore {
	return &JobStore{db: db}
}

// DB returns the underlying database, nil for a nil store
func (s *JobStore) DB() *gorm.DB {
	if s == nil {
		return nil
	}
	return s.db
}

// Start creates a pending job for source
func (s *JobStore) Start(source, destination string, lowercase, pretty bool) (*ConversionJob, error) {
	now := time.Now()
	job := &ConversionJob{
		ID:          uuid.New().String(),
		Source:      source,
		Destination: destination,
		Lowercase:   lowercase,
		Pretty:      pretty,
		Status:      JobStatusPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if s == nil {
		return job, nil
	}
	if err := s.db.Create(job).Error; err != nil {
		return job, err
	}
	return job, nil
}

// Processing marks the job as running with the pre-scanned record count
func (s *JobStore) Processing(job *ConversionJob, total int, shape string) error {
	job.Status = JobStatusProcessing
	job.TotalRecords = total
	job.Shape = shape
	job.UpdatedAt = time.Now()
	if s == nil {
		return nil
	}
	return s.db.Save(job).Error
}

// Complete marks the job as completed
func (s *JobStore) Complete(job *ConversionJob, processed int, warnings string) error {
	now := time.Now()
	job.Status = JobStatusCompleted
	job.ProcessedCount = processed
	job.Warnings = warnings
	job.UpdatedAt = now
	job.CompletedAt = &now
	if s == nil {
		return nil
	}
	return s.db.Save(job).Error
}

// Fail marks the job as failed with cause
func (s *JobStore) Fail(job *ConversionJob, cause error) error {
	now := time.Now()
	job.Status = JobStatusFailed
	if cause != nil {
		job.Error = cause.Error()
	}
	job.UpdatedAt = now
	job.CompletedAt = &now
	if s == nil {
		return nil
	}
	return s.db.Save(job).Error
}

// Get fetches a job by ID
func (s *JobStore) Get(id string) (*ConversionJob, error) {
	if s == nil {
		return nil, gorm.ErrRecordNotFound
	}
	var job ConversionJob
	if err := s.db.Where("id = ?", id).First(&job).Error; err != nil {
		return nil, err
	}
	return &job, nil
}

// List returns the most recent jobs, newest first
func (s *JobStore) List(limit int) ([]ConversionJob, error) {
	if s == nil {
		return nil, nil
	}
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	var jobs []ConversionJob
	err := s.db.Order("created_at desc").Limit(limit).Find(&jobs).Error
	return jobs, err
}

// RecordMetric stores one API metric
func (s *JobStore) RecordMetric(metric *ApiMetric) error {
	if s == nil {
		return nil
	}
	return s.db.Create(metric).Error
}
