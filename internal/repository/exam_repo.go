package repository

import (
	"context"

	"github.com/questgen-flow/backend/internal/domain"
	"gorm.io/gorm"
)

// ExamRepository handles the persisted archive of completed exams.
type ExamRepository struct {
	db *gorm.DB
}

// NewExamRepository creates a new ExamRepository.
func NewExamRepository(db *gorm.DB) *ExamRepository {
	return &ExamRepository{db: db}
}

// Create inserts a new exam record.
func (r *ExamRepository) Create(ctx context.Context, exam *domain.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

// GetByJobID retrieves the exam produced by a generation job.
func (r *ExamRepository) GetByJobID(ctx context.Context, jobID string) (*domain.Exam, error) {
	var exam domain.Exam
	if err := r.db.WithContext(ctx).First(&exam, "job_id = ?", jobID).Error; err != nil {
		return nil, err
	}
	return &exam, nil
}

// List returns exams newest first.
func (r *ExamRepository) List(ctx context.Context, limit, offset int) ([]domain.Exam, error) {
	var exams []domain.Exam
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

// Count returns the total number of archived exams.
func (r *ExamRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&domain.Exam{}).Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}
