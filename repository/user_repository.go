package repository

import (
	"errors"
	"fmt"
	"log"

	"gorm.io/gorm"

	"skillmatrix/models"
)

// UserRepository defines the interface for admin user lookups. Auth is a
// static token check, so this stays deliberately small.
type UserRepository interface {
	GetByCredentials(username, passwordMD5 string) (*models.User, error)
	GetByToken(token string) (*models.User, error)
	UpdateToken(userID uint, token string) error
}

type userRepository struct {
	db *gorm.DB
}

// NewUserRepository creates a new instance of UserRepository.
func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

// GetByCredentials looks a user up by username and stored password digest.
// Returns (nil, nil) when the pair does not match any row.
func (r *userRepository) GetByCredentials(username, passwordMD5 string) (*models.User, error) {
	var user models.User
	err := r.db.Where("username = ? AND password = ?", username, passwordMD5).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [UserRepository] Failed to look up user '%s': %v", username, err)
		return nil, fmt.Errorf("failed to look up user '%s': %w", username, err)
	}
	return &user, nil
}

// GetByToken looks a user up by their current bearer token. Returns (nil, nil)
// when the token matches no row.
func (r *userRepository) GetByToken(token string) (*models.User, error) {
	var user models.User
	err := r.db.Where("token = ?", token).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		log.Printf("ERROR: [UserRepository] Failed to look up token: %v", err)
		return nil, fmt.Errorf("failed to look up token: %w", err)
	}
	return &user, nil
}

// UpdateToken stores a freshly issued token on the user row, replacing any
// previous one.
func (r *userRepository) UpdateToken(userID uint, token string) error {
	err := r.db.Model(&models.User{}).Where("id = ?", userID).Update("token", token).Error
	if err != nil {
		log.Printf("ERROR: [UserRepository] Failed to update token for user ID %d: %v", userID, err)
		return fmt.Errorf("failed to update token for user ID %d: %w", userID, err)
	}
	log.Printf("INFO: [UserRepository] Updated token for user ID %d.", userID)
	return nil
}
