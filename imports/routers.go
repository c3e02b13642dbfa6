package imports

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"csv-to-json/common"
	"csv-to-json/exports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gosimple/slug"
	"gorm.io/gorm"
)

// UploadFormField is the multipart field holding the CSV file
const UploadFormField = "file"

// Handler serves the conversion endpoints
type Handler struct {
	Jobs           *common.JobStore
	UploadsDir     string
	MaxUploadBytes int64
}

// GetConversionResponse represents the response for a conversion job
type GetConversionResponse struct {
	JobID          string                   `json:"job_id"`
	Source         string                   `json:"source"`
	Status         string                   `json:"status"`
	Shape          string                   `json:"shape,omitempty"`
	Lowercase      bool                     `json:"lowercase"`
	Pretty         bool                     `json:"pretty"`
	TotalRecords   int                      `json:"total_records"`
	ProcessedCount int                      `json:"processed_count"`
	Error          string                   `json:"error,omitempty"`
	Warnings       []common.ValidationError `json:"warnings,omitempty"`
	CreatedAt      string                   `json:"created_at"`
	UpdatedAt      string                   `json:"updated_at"`
	CompletedAt    *string                  `json:"completed_at,omitempty"`
}

// NewRouter builds the HTTP service
func NewRouter(cfg common.ServerConfig, store *common.JobStore) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery(), common.MetricsMiddleware(store))
	r.RedirectTrailingSlash = false

	// Health check endpoint
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	h := &Handler{
		Jobs:           store,
		UploadsDir:     cfg.UploadsDir,
		MaxUploadBytes: cfg.MaxUploadMB << 20,
	}

	v1 := r.Group("/api/v1", common.AuthMiddleware(cfg.JWTSecret))
	RegisterRoutes(v1.Group("/conversions"), h)
	return r
}

// RegisterRoutes attaches the conversion endpoints to group
func RegisterRoutes(group *gin.RouterGroup, h *Handler) {
	group.POST("", h.CreateConversion)
	group.GET("", h.ListConversions)
	group.GET("/:job_id", h.GetConversion)
}

// CreateConversion godoc
// @Summary Convert an uploaded CSV file
// @Description Converts a CSV file to a JSON object (one data row) or array of objects (several rows)
// @Tags conversions
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "CSV file to convert"
// @Param lowercase formData bool false "Lower-case header keys"
// @Param pretty formData bool false "Indent output with 4 spaces"
// @Success 200 {file} file "Converted JSON document"
// @Failure 400 {object} map[string]string "Bad request"
// @Failure 422 {object} map[string]string "CSV could not be parsed"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /conversions [post]
func (h *Handler) CreateConversion(c *gin.Context) {
	if h.MaxUploadBytes > 0 {
		if c.Request.ContentLength > h.MaxUploadBytes {
			c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds %d bytes", h.MaxUploadBytes)})
			return
		}
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.MaxUploadBytes)
	}

	file, header, err := c.Request.FormFile(UploadFormField)
	var tooLarge *http.MaxBytesError
	if errors.As(err, &tooLarge) {
		c.JSON(http.StatusRequestEntityTooLarge, gin.H{"error": fmt.Sprintf("File exceeds %d bytes", tooLarge.Limit)})
		return
	}
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File is required"})
		return
	}
	defer file.Close()

	ext := filepath.Ext(header.Filename)
	if !strings.EqualFold(ext, ".csv") {
		c.JSON(http.StatusBadRequest, gin.H{"error": "File must be .csv"})
		return
	}

	lowercase, err := formBool(c, "lowercase")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	pretty, err := formBool(c, "pretty")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filePath, err := h.saveUpload(file)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to save file"})
		return
	}
	defer os.Remove(filePath)

	downloadName := slug.Make(strings.TrimSuffix(filepath.Base(header.Filename), ext))
	if downloadName == "" {
		downloadName = "conversion"
	}
	downloadName += ".json"

	job, err := h.Jobs.Start(header.Filename, downloadName, lowercase, pretty)
	if err != nil {
		log.Printf("failed to record conversion job: %v", err)
	}

	converter := &exports.Converter{Lowercase: lowercase, Pretty: pretty, Jobs: h.Jobs}
	doc, report, err := converter.Build(filePath, job)
	if err == nil {
		var data []byte
		data, err = exports.Encode(doc, pretty)
		if err == nil {
			if jobErr := h.Jobs.Complete(job, report.Processed, report.Headers.ToJSON()); jobErr != nil {
				log.Printf("failed to update job %s: %v", job.ID, jobErr)
			}

			c.Set("rows_processed", report.Processed)
			c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", downloadName))
			c.Header("X-Job-ID", job.ID)
			c.Header("X-Header-Warnings", strconv.Itoa(len(report.Headers.Warnings)))
			c.Data(http.StatusOK, "application/json; charset=utf-8", data)
			return
		}
	}

	if jobErr := h.Jobs.Fail(job, err); jobErr != nil {
		log.Printf("failed to update job %s: %v", job.ID, jobErr)
	}
	c.Error(err)
	status, body := conversionErrorResponse(err)
	body["job_id"] = job.ID
	c.JSON(status, body)
}

// ListConversions godoc
// @Summary List conversion jobs
// @Description Lists the most recent conversion jobs, newest first
// @Tags conversions
// @Produce json
// @Param limit query int false "Maximum number of jobs"
// @Success 200 {object} map[string]interface{} "Conversion jobs"
// @Failure 503 {object} map[string]string "History not enabled"
// @Router /conversions [get]
func (h *Handler) ListConversions(c *gin.Context) {
	if h.Jobs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Conversion history is not enabled"})
		return
	}

	limit := common.DefaultHistoryLimit
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a positive integer"})
			return
		}
		limit = n
	}

	jobs, err := h.Jobs.List(limit)
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list conversion jobs"})
		return
	}

	response := make([]GetConversionResponse, 0, len(jobs))
	for i := range jobs {
		response = append(response, toResponse(&jobs[i]))
	}
	c.JSON(http.StatusOK, gin.H{"jobs": response})
}

// GetConversion godoc
// @Summary Get conversion job
// @Description Retrieves the status and header warnings of a conversion job
// @Tags conversions
// @Produce json
// @Param job_id path string true "Conversion Job ID"
// @Success 200 {object} GetConversionResponse "Conversion job details"
// @Failure 404 {object} map[string]string "Job not found"
// @Failure 503 {object} map[string]string "History not enabled"
// @Router /conversions/{job_id} [get]
func (h *Handler) GetConversion(c *gin.Context) {
	if h.Jobs == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Conversion history is not enabled"})
		return
	}

	job, err := h.Jobs.Get(c.Param("job_id"))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		c.JSON(http.StatusNotFound, gin.H{"error": "Conversion job not found"})
		return
	}
	if err != nil {
		c.Error(err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to load conversion job"})
		return
	}

	// Set rows processed for metrics
	c.Set("rows_processed", job.ProcessedCount)
	c.JSON(http.StatusOK, toResponse(job))
}

func toResponse(job *common.ConversionJob) GetConversionResponse {
	response := GetConversionResponse{
		JobID:          job.ID,
		Source:         job.Source,
		Status:         job.Status,
		Shape:          job.Shape,
		Lowercase:      job.Lowercase,
		Pretty:         job.Pretty,
		TotalRecords:   job.TotalRecords,
		ProcessedCount: job.ProcessedCount,
		Error:          job.Error,
		CreatedAt:      job.CreatedAt.Format(time.RFC3339),
		UpdatedAt:      job.UpdatedAt.Format(time.RFC3339),
	}

	if job.CompletedAt != nil {
		completedStr := job.CompletedAt.Format(time.RFC3339)
		response.CompletedAt = &completedStr
	}

	// Parse warnings JSON
	if job.Warnings != "" {
		var warnings []common.ValidationError
		if err := json.Unmarshal([]byte(job.Warnings), &warnings); err == nil {
			response.Warnings = warnings
		}
	}
	return response
}

// conversionErrorResponse maps a pipeline error to a status and body.
// Only parse errors carry a detail; file system causes name server paths.
func conversionErrorResponse(err error) (int, gin.H) {
	var convErr *common.ConversionError
	if !errors.As(err, &convErr) {
		return http.StatusInternalServerError, gin.H{"error": "Conversion failed"}
	}

	body := gin.H{"error": fmt.Sprintf("%s failed", convErr.Kind)}
	switch convErr.Kind {
	case common.KindHeaderParse:
		body["detail"] = convErr.Err.Error()
		return http.StatusUnprocessableEntity, body
	case common.KindRecordRead:
		body["detail"] = convErr.Err.Error()
		body["record"] = convErr.Record
		return http.StatusUnprocessableEntity, body
	}
	return http.StatusInternalServerError, body
}

// saveUpload copies the uploaded file into the uploads directory
func (h *Handler) saveUpload(src io.Reader) (string, error) {
	if err := os.MkdirAll(h.UploadsDir, 0750); err != nil {
		return "", err
	}

	fileName := fmt.Sprintf("%s_%s.csv", time.Now().Format("20060102_150405"), uuid.New().String()[:8])
	filePath := filepath.Join(h.UploadsDir, fileName)

	out, err := os.Create(filePath)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(filePath)
		return "", err
	}
	return filePath, nil
}

func formBool(c *gin.Context, field string) (bool, error) {
	raw := c.PostForm(field)
	if raw == "" {
		return false, nil
	}
	value, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("%s must be a boolean", field)
	}
	return value, nil
}
