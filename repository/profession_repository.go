package repository

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"skillmatrix/models"
)

// ProfessionRepository defines the interface for interacting with profession data.
type ProfessionRepository interface {
	Create(profession *models.Profession) error
	GetByID(id string) (*models.Profession, error)
	GetActiveByID(id string) (*models.Profession, error)
	ListActive() ([]*models.Profession, error)
	ExistsActiveByName(name string) (bool, error)
	Update(profession *models.Profession) error
	SoftDelete(id string) error
}

type professionRepository struct {
	db *gorm.DB
}

// NewProfessionRepository creates a new instance of ProfessionRepository.
func NewProfessionRepository(db *gorm.DB) ProfessionRepository {
	return &professionRepository{db: db}
}

func (r *professionRepository) Create(profession *models.Profession) error {
	if profession == nil {
		log.Printf("ERROR: [ProfessionRepository] Create: profession cannot be nil")
		return errors.New("profession cannot be nil")
	}
	if err := r.db.Create(profession).Error; err != nil {
		log.Printf("ERROR: [ProfessionRepository] Failed to create profession '%s': %v", profession.ProfessionName, err)
		return fmt.Errorf("failed to create profession '%s': %w", profession.ProfessionName, err)
	}
	log.Printf("INFO: [ProfessionRepository] Created profession ID %s ('%s').", profession.ID, profession.ProfessionName)
	return nil
}

// GetByID retrieves a profession regardless of status. Returns (nil, nil) when
// no row exists.
func (r *professionRepository) GetByID(id string) (*models.Profession, error) {
	var profession models.Profession
	err := r.db.Where("id = ?", id).First(&profession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [ProfessionRepository] Failed to retrieve profession ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve profession ID %s: %w", id, err)
	}
	return &profession, nil
}

// GetActiveByID retrieves an Active profession. Returns (nil, nil) when the
// profession is absent or Inactive.
func (r *professionRepository) GetActiveByID(id string) (*models.Profession, error) {
	var profession models.Profession
	err := r.db.Where("id = ? AND status = ?", id, models.StatusActive).First(&profession).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [ProfessionRepository] Failed to retrieve active profession ID %s: %v", id, err)
		return nil, fmt.Errorf("failed to retrieve active profession ID %s: %w", id, err)
	}
	return &profession, nil
}

func (r *professionRepository) ListActive() ([]*models.Profession, error) {
	var professions []*models.Profession
	err := r.db.Where("status = ?", models.StatusActive).Order("created_at asc").Find(&professions).Error
	if err != nil {
		log.Printf("ERROR: [ProfessionRepository] Failed to list active professions: %v", err)
		return nil, fmt.Errorf("failed to list active professions: %w", err)
	}
	return professions, nil
}

func (r *professionRepository) ExistsActiveByName(name string) (bool, error) {
	var count int64
	err := r.db.Model(&models.Profession{}).
		Where("profession_name = ? AND status = ?", name, models.StatusActive).
		Count(&count).Error
	if err != nil {
		log.Printf("ERROR: [ProfessionRepository] Failed to check profession name '%s': %v", name, err)
		return false, fmt.Errorf("failed to check profession name '%s': %w", name, err)
	}
	return count > 0, nil
}

func (r *professionRepository) Update(profession *models.Profession) error {
	if profession == nil {
		log.Printf("ERROR: [ProfessionRepository] Update: profession cannot be nil")
		return errors.New("profession cannot be nil")
	}
	if profession.ID == "" {
		log.Printf("ERROR: [ProfessionRepository] Update: profession ID must be provided")
		return errors.New("profession ID must be provided for update")
	}
	if err := r.db.Save(profession).Error; err != nil {
		log.Printf("ERROR: [ProfessionRepository] Failed to update profession ID %s: %v", profession.ID, err)
		return fmt.Errorf("failed to update profession ID %s: %w", profession.ID, err)
	}
	log.Printf("INFO: [ProfessionRepository] Updated profession ID %s.", profession.ID)
	return nil
}

// SoftDelete flips the profession's status to Inactive. Historical submissions
// keep referencing the row.
func (r *professionRepository) SoftDelete(id string) error {
	err := r.db.Model(&models.Profession{}).Where("id = ?", id).
		Update("status", models.StatusInactive).Error
	if err != nil {
		log.Printf("ERROR: [ProfessionRepository] Failed to soft-delete profession ID %s: %v", id, err)
		return fmt.Errorf("failed to soft-delete profession ID %s: %w", id, err)
	}
	log.Printf("INFO: [ProfessionRepository] Soft-deleted profession ID %s.", id)
	return nil
}
