package repository

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"skillmatrix/models"
)

// AnswerRecordRepository is the Answer Record Store: denormalized write-once
// audit rows, one per answered question per submission.
type AnswerRecordRepository interface {
	CreateBatch(records []models.AnswerRecord) error
	FindBySubmission(submissionID string) ([]models.AnswerRecord, error)
}

type answerRecordRepository struct {
	db *gorm.DB
}

// NewAnswerRecordRepository creates a new instance of AnswerRecordRepository.
func NewAnswerRecordRepository(db *gorm.DB) AnswerRecordRepository {
	return &answerRecordRepository{db: db}
}

// CreateBatch inserts the audit rows for one submission in a single statement.
func (r *answerRecordRepository) CreateBatch(records []models.AnswerRecord) error {
	if len(records) == 0 {
		return nil
	}
	if err := r.db.Create(&records).Error; err != nil {
		log.Printf("ERROR: [AnswerRecordRepository] Failed to batch-insert %d answer records: %v", len(records), err)
		return fmt.Errorf("failed to batch-insert %d answer records: %w", len(records), err)
	}
	log.Printf("INFO: [AnswerRecordRepository] Batch-inserted %d answer records for submission %s.", len(records), records[0].SubmissionID)
	return nil
}

func (r *answerRecordRepository) FindBySubmission(submissionID string) ([]models.AnswerRecord, error) {
	var records []models.AnswerRecord
	err := r.db.Where("submission_id = ?", submissionID).Order("id asc").Find(&records).Error
	if err != nil {
		log.Printf("ERROR: [AnswerRecordRepository] Failed to retrieve answer records for submission %s: %v", submissionID, err)
		return nil, fmt.Errorf("failed to retrieve answer records for submission %s: %w", submissionID, err)
	}
	return records, nil
}
