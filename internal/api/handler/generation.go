package handler

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/questgen-flow/backend/internal/domain"
	"github.com/questgen-flow/backend/internal/logger"
	"github.com/questgen-flow/backend/internal/service"
	"github.com/questgen-flow/backend/internal/storage"
)

// timeNow is swapped out in tests for deterministic ETA values.
var timeNow = time.Now

// previewSize is how many questions the status endpoint includes as a
// preview before the client fetches the full list.
const previewSize = 3

// GenerationHandler handles question generation endpoints.
type GenerationHandler struct {
	generation   *service.GenerationService
	store        storage.ArtifactStorage
	maxQuestions int
}

// NewGenerationHandler creates a new generation handler.
func NewGenerationHandler(generation *service.GenerationService, store storage.ArtifactStorage, maxQuestions int) *GenerationHandler {
	if maxQuestions <= 0 {
		maxQuestions = 200
	}
	return &GenerationHandler{
		generation:   generation,
		store:        store,
		maxQuestions: maxQuestions,
	}
}

// SubmitRequest represents the generation API request.
type SubmitRequest struct {
	Text                string `json:"text" binding:"required"`
	QuestionLanguage    string `json:"question_language" binding:"required"`
	ExplanationLanguage string `json:"explanation_language" binding:"required"`
	NumberOfQuestions   int    `json:"number_of_questions" binding:"required,min=1"`
	OutputFormat        string `json:"output_format" binding:"required,oneof=json excel"`
}

// SubmitResponse represents the generation API response.
type SubmitResponse struct {
	JobID         string `json:"job_id"`
	RawTextLength int    `json:"raw_text_length"`
	Message       string `json:"message"`
}

// StatusResponse represents the job status payload.
type StatusResponse struct {
	Status             domain.JobStatus  `json:"status"`
	Progress           int               `json:"progress"`
	Step               int               `json:"step"`
	Logs               []string          `json:"logs"`
	QuestionsGenerated int               `json:"questions_generated"`
	TopicsDetected     int               `json:"topics_detected"`
	QuestionsPreview   []domain.Question `json:"questions_preview"`
	ETA                int               `json:"eta"`
	Error              *string           `json:"error"`
	Questions          []domain.Question `json:"questions"`
	Topics             []string          `json:"topics"`
}

// Submit handles POST /api/v1/generations.
func (h *GenerationHandler) Submit(c *gin.Context) {
	ctx := c.Request.Context()

	var req SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.CtxWarn(ctx, "Invalid generation request: client_ip=%s, error=%v", c.ClientIP(), err)
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if req.NumberOfQuestions > h.maxQuestions {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": fmt.Sprintf("number_of_questions must not exceed %d", h.maxQuestions),
		})
		return
	}

	jobID, err := h.generation.Submit(&service.GenerateRequest{
		RawText:             req.Text,
		QuestionLanguage:    req.QuestionLanguage,
		ExplanationLanguage: req.ExplanationLanguage,
		NumQuestions:        req.NumberOfQuestions,
		OutputFormat:        req.OutputFormat,
	})
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger.CtxInfo(ctx, "Generation job submitted: job_id=%s, questions=%d, format=%s",
		jobID, req.NumberOfQuestions, req.OutputFormat)

	c.JSON(http.StatusAccepted, SubmitResponse{
		JobID:         jobID,
		RawTextLength: len(req.Text),
		Message:       "Text received and processing started",
	})
}

// Status handles GET /api/v1/generations/:id.
func (h *GenerationHandler) Status(c *gin.Context) {
	jobID := c.Param("id")

	job, err := h.generation.Registry().Snapshot(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}

	preview := job.Questions
	if len(preview) > previewSize {
		preview = preview[:previewSize]
	}

	resp := StatusResponse{
		Status:             job.Status,
		Progress:           job.Progress,
		Step:               job.Step,
		Logs:               job.Logs,
		QuestionsGenerated: len(job.Questions),
		TopicsDetected:     len(job.Topics),
		QuestionsPreview:   preview,
		ETA:                job.ETA(timeNow()),
		Questions:          job.Questions,
		Topics:             job.Topics,
	}
	if job.Status == domain.JobStatusError {
		resp.Error = &job.Error
	}

	c.JSON(http.StatusOK, resp)
}

// DownloadExport handles GET /api/v1/generations/:id/export, streaming
// the xlsx artifact of a completed excel-format job.
func (h *GenerationHandler) DownloadExport(c *gin.Context) {
	ctx := c.Request.Context()
	jobID := c.Param("id")

	job, err := h.generation.Registry().Snapshot(jobID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "Job not found"})
		return
	}
	if job.ExcelFile == "" {
		c.JSON(http.StatusNotFound, gin.H{"error": "No export available for this job"})
		return
	}

	reader, err := h.store.Download(ctx, job.ExcelFile)
	if err != nil {
		logger.CtxError(ctx, "Failed to download export: job_id=%s, error=%v", jobID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve export"})
		return
	}
	defer reader.Close()

	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=questions_%s.xlsx", jobID))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	if _, err := io.Copy(c.Writer, reader); err != nil && !errors.Is(err, io.EOF) {
		logger.CtxError(ctx, "Failed to stream export: job_id=%s, error=%v", jobID, err)
	}
}
