package repository

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"skillmatrix/models"
)

// QuestionRepository defines the interface for interacting with question data.
// It is CRUD only; score aggregation lives in the services layer.
type QuestionRepository interface {
	FindActiveByProfession(professionID string) ([]models.Question, error)
	FindByID(id string) (*models.Question, error)
	FindActiveByID(id string) (*models.Question, error)
	Create(question *models.Question) error
	CreateBatch(questions []models.Question) error
	Update(question *models.Question) error
	SoftDelete(id string) error
	DeactivateByProfession(professionID string) error
}

type questionRepository struct {
	db *gorm.DB
}

// NewQuestionRepository creates a new instance of QuestionRepository.
func NewQuestionRepository(db *gorm.DB) QuestionRepository {
	return &questionRepository{db: db}
}

// FindActiveByProfession returns the profession's active question set in
// creation order. This is the immutable-per-submission questionnaire.
func (r *questionRepository) FindActiveByProfession(professionID string) ([]models.Question, error) {
	var questions []models.Question
	err := r.db.Where("profession_id = ? AND status = ?", professionID, models.StatusActive).
		Order("created_at asc").
		Find(&questions).Error
	if err != nil {
		log.Printf("ERROR: [QuestionRepository] Failed to retrieve active questions for profession %s: %v", professionID, err)
		return nil, fmt.Errorf("failed to retrieve active questions for profession %s: %w", professionID, err)
	}
	return questions, nil
}

// FindByID retrieves a question regardless of status. Returns (nil, nil) when
// no row exists.
func (r *questionRepository) FindByID(id string) (*models.Question, error) {
	var question models.Question
	err := r.db.Where("id = ?", id).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [QuestionRepository] Failed to retrieve question ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve question ID %s: %w", id, err)
	}
	return &question, nil
}

// FindActiveByID retrieves an Active question. Returns (nil, nil) when the
// question is absent or Inactive.
func (r *questionRepository) FindActiveByID(id string) (*models.Question, error) {
	var question models.Question
	err := r.db.Where("id = ? AND status = ?", id, models.StatusActive).First(&question).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [QuestionRepository] Failed to retrieve active question ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve active question ID %s: %w", id, err)
	}
	return &question, nil
}

func (r *questionRepository) Create(question *models.Question) error {
	if question == nil {
		log.Printf("ERROR: [QuestionRepository] Create: question cannot be nil")
		return errors.New("question cannot be nil")
	}
	if err := r.db.Create(question).Error; err != nil {
		log.Printf("ERROR: [QuestionRepository] Failed to create question for profession %s: %v", question.ProfessionID, err)
		return fmt.Errorf("failed to create question for profession %s: %w", question.ProfessionID, err)
	}
	log.Printf("INFO: [QuestionRepository] Created question ID %s for profession %s.", question.ID, question.ProfessionID)
	return nil
}

// CreateBatch inserts a set of questions in one statement. Used by the CSV
// import after the profession's previous set is deactivated.
func (r *questionRepository) CreateBatch(questions []models.Question) error {
	if len(questions) == 0 {
		return nil
	}
	if err := r.db.Create(&questions).Error; err != nil {
		log.Printf("ERROR: [QuestionRepository] Failed to batch-insert %d questions: %v", len(questions), err)
		return fmt.Errorf("failed to batch-insert %d questions: %w", len(questions), err)
	}
	log.Printf("INFO: [QuestionRepository] Batch-inserted %d questions.", len(questions))
	return nil
}

func (r *questionRepository) Update(question *models.Question) error {
	if question == nil {
		log.Printf("ERROR: [QuestionRepository] Update: question cannot be nil")
		return errors.New("question cannot be nil")
	}
	if question.ID == "" {
		log.Printf("ERROR: [QuestionRepository] Update: question ID must be provided")
		return errors.New("question ID must be provided for update")
	}
	if err := r.db.Save(question).Error; err != nil {
		log.Printf("ERROR: [QuestionRepository] Failed to update question ID %s: %v", question.ID, err)
		return fmt.Errorf("failed to update question ID %s: %w", question.ID, err)
	}
	log.Printf("INFO: [QuestionRepository] Updated question ID %s.", question.ID)
	return nil
}

// SoftDelete flips the question's status to Inactive.
func (r *questionRepository) SoftDelete(id string) error {
	err := r.db.Model(&models.Question{}).Where("id = ?", id).
		Update("status", models.StatusInactive).Error
	if err != nil {
		log.Printf("ERROR: [QuestionRepository] Failed to soft-delete question ID %s: %v", id, err)
		return fmt.Errorf("failed to soft-delete question ID %s: %w", id, err)
	}
	log.Printf("INFO: [QuestionRepository] Soft-deleted question ID %s.", id)
	return nil
}

// DeactivateByProfession flips every question of the profession to Inactive.
// Used by the CSV import to replace a questionnaire wholesale.
func (r *questionRepository) DeactivateByProfession(professionID string) error {
	err := r.db.Model(&models.Question{}).
		Where("profession_id = ?", professionID).
		Update("status", models.StatusInactive).Error
	if err != nil {
		log.Printf("ERROR: [QuestionRepository] Failed to deactivate questions for profession %s: %v", professionID, err)
		return fmt.Errorf("failed to deactivate questions for profession %s: %w", professionID, err)
	}
	log.Printf("INFO: [QuestionRepository] Deactivated questions for profession %s.", professionID)
	return nil
}
