package repository

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"skillmatrix/models"
)

// SubmissionRepository is the Submission Aggregate Store: one row per scored
// questionnaire, exclusively owning that submission's score matrix and
// narrative cache.
type SubmissionRepository interface {
	Create(submission *models.Submission) error
	GetByID(id string) (*models.Submission, error)
	UpdateNarratives(id string, strengths, improvements models.NarrativeMap) error
}

type submissionRepository struct {
	db *gorm.DB
}

// NewSubmissionRepository creates a new instance of SubmissionRepository.
func NewSubmissionRepository(db *gorm.DB) SubmissionRepository {
	return &submissionRepository{db: db}
}

func (r *submissionRepository) Create(submission *models.Submission) error {
	if submission == nil {
		log.Printf("ERROR: [SubmissionRepository] Create: submission cannot be nil")
		return errors.New("submission cannot be nil")
	}
	if err := r.db.Create(submission).Error; err != nil {
		log.Printf("ERROR: [SubmissionRepository] Failed to create submission %s: %v", submission.ID, err)
		return fmt.Errorf("failed to create submission %s: %w", submission.ID, err)
	}
	log.Printf("INFO: [SubmissionRepository] Created submission %s for profession %s.", submission.ID, submission.ProfessionID)
	return nil
}

// GetByID retrieves a submission aggregate. Returns (nil, nil) when no row
// exists.
func (r *submissionRepository) GetByID(id string) (*models.Submission, error) {
	var submission models.Submission
	err := r.db.Where("id = ?", id).First(&submission).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [SubmissionRepository] Failed to retrieve submission %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve submission %s: %w", id, err)
	}
	return &submission, nil
}

// UpdateNarratives persists the full narrative cache for the submission in a
// single write. Enrichment merges before calling, so both maps always arrive
// complete.
func (r *submissionRepository) UpdateNarratives(id string, strengths, improvements models.NarrativeMap) error {
	err := r.db.Model(&models.Submission{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"strengths":    datatypes.NewJSONType(strengths),
			"improvements": datatypes.NewJSONType(improvements),
		}).Error
	if err != nil {
		log.Printf("ERROR: [SubmissionRepository] Failed to update narratives for submission %s: %v", id, err)
		return fmt.Errorf("failed to update narratives for submission %s: %w", id, err)
	}
	log.Printf("INFO: [SubmissionRepository] Updated narrative cache for submission %s.", id)
	return nil
}
