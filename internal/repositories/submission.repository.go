package repositories

import (
	"collector/internal/database"
	"collector/internal/logger"
	"collector/internal/services"
	"context"

	. "collector/internal/models"

	"gorm.io/gorm"
)

type SubmissionRepository interface {
	Create(ctx context.Context, submission *Submission) error
	GetByID(ctx context.Context, id string) (*Submission, error)
	CountByProjectName(ctx context.Context, projectName string) (int64, error)
}

type submissionRepository struct {
	db  database.DB
	log logger.Logger
}

func NewSubmission(db database.DB) SubmissionRepository {
	return &submissionRepository{
		db:  db,
		log: logger.New("submissionRepository"),
	}
}

func (r *submissionRepository) getDB(ctx context.Context) *gorm.DB {
	if tx, ok := services.GetTransaction(ctx); ok {
		return tx
	}
	return r.db.SQLWithContext(ctx)
}

// Create inserts the submission. A duplicate ID surfaces as
// gorm.ErrDuplicatedKey in the returned chain; the row written first stays
// untouched.
func (r *submissionRepository) Create(ctx context.Context, submission *Submission) error {
	log := r.log.Function("Create")

	if submission.ID == "" {
		return log.Error("submission id is empty")
	}

	if err := r.getDB(ctx).Create(submission).Error; err != nil {
		return log.Err("failed to create submission", err,
			"id", submission.ID, "projectName", submission.ProjectName)
	}

	return nil
}

func (r *submissionRepository) GetByID(ctx context.Context, id string) (*Submission, error) {
	log := r.log.Function("GetByID")

	var submission Submission
	if err := r.getDB(ctx).First(&submission, "id = ?", id).Error; err != nil {
		return nil, log.Err("failed to get submission by id", err, "id", id)
	}

	return &submission, nil
}

func (r *submissionRepository) CountByProjectName(
	ctx context.Context,
	projectName string,
) (int64, error) {
	log := r.log.Function("CountByProjectName")

	var count int64
	err := r.getDB(ctx).Model(&Submission{}).
		Where("project_name = ?", projectName).
		Count(&count).Error
	if err != nil {
		return 0, log.Err("failed to count submissions", err, "projectName", projectName)
	}

	return count, nil
}
