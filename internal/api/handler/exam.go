package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/questgen-flow/backend/internal/repository"
	"gorm.io/gorm"
)

// ExamHandler serves the persisted archive of completed exams.
type ExamHandler struct {
	exams *repository.ExamRepository
}

// NewExamHandler creates a new exam handler.
func NewExamHandler(exams *repository.ExamRepository) *ExamHandler {
	return &ExamHandler{exams: exams}
}

// ListExams handles GET /api/v1/exams.
func (h *ExamHandler) ListExams(c *gin.Context) {
	ctx := c.Request.Context()

	limit := 20
	if raw := c.Query("limit"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed > 0 && parsed <= 100 {
			limit = parsed
		}
	}
	offset := 0
	if raw := c.Query("offset"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil && parsed >= 0 {
			offset = parsed
		}
	}

	exams, err := h.exams.List(ctx, limit, offset)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list exams: " + err.Error()})
		return
	}

	total, err := h.exams.Count(ctx)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count exams: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"exams": exams,
		"total": total,
	})
}

// GetExam handles GET /api/v1/exams/:job_id.
func (h *ExamHandler) GetExam(c *gin.Context) {
	exam, err := h.exams.GetByJobID(c.Request.Context(), c.Param("job_id"))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Exam not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to get exam: " + err.Error()})
		return
	}

	c.JSON(http.StatusOK, exam)
}
