package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"gorm.io/datatypes"

	"skillmatrix/config"
	"skillmatrix/models"
)

func testNarrativeConfig() config.NarrativeConfig {
	return config.NarrativeConfig{
		MaxBullets:    15,
		DefaultPrompt: "Assess the {category} skills of a {profession}:\n{skill_set}",
	}
}

func testSubmission(matrix models.ScoreMatrix, strengths, improvements models.NarrativeMap) *models.Submission {
	return &models.Submission{
		ID:           "sub-1",
		ProfessionID: "prof-1",
		GraphData:    datatypes.NewJSONType(matrix),
		Strengths:    datatypes.NewJSONType(strengths),
		Improvements: datatypes.NewJSONType(improvements),
	}
}

func TestNarrativeService_Enrich(t *testing.T) {
	profession := &models.Profession{ID: "prof-1", ProfessionName: "UX Designer", Status: models.StatusActive}
	matrix := models.ScoreMatrix{
		models.OverviewCategory: {"UX": 4},
		"UX":                    {"Research": 3, "Visual Design": 5},
	}
	response := "1. Solid research habits.\nAreas for Improvement:\n1. Push visual polish further.\n"

	t.Run("Fully cached submission makes no calls and no writes", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		filled := models.NarrativeMap{
			models.OverviewCategory: {"1. Balanced profile."},
			"UX":                    {"1. Strong researcher."},
		}
		submission := testSubmission(matrix, filled, filled)

		strengths, improvements, generated, err := service.Enrich(context.Background(), submission, profession)

		assert.NoError(t, err)
		assert.False(t, generated)
		assert.Equal(t, filled, strengths)
		assert.Equal(t, filled, improvements)
		assert.Zero(t, generator.callCount())
		mockRepo.AssertNotCalled(t, "UpdateNarratives", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("Backfills every category of a fresh submission in one write", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		mockRepo.On("UpdateNarratives", "sub-1", mock.Anything, mock.Anything).Return(nil).Once()
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		submission := testSubmission(matrix, models.NarrativeMap{}, models.NarrativeMap{})

		strengths, improvements, generated, err := service.Enrich(context.Background(), submission, profession)

		assert.NoError(t, err)
		assert.True(t, generated)
		assert.Equal(t, 2, generator.callCount()) // one per matrix category
		assert.Equal(t, []string{"1. Solid research habits."}, strengths["UX"])
		assert.Equal(t, []string{"1. Push visual polish further."}, improvements["UX"])
		assert.Equal(t, []string{"1. Solid research habits."}, strengths[models.OverviewCategory])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Regenerates only the missing categories", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		mockRepo.On("UpdateNarratives", "sub-1", mock.Anything, mock.Anything).Return(nil).Once()
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		cached := models.NarrativeMap{"UX": {"1. Cached strength."}}
		submission := testSubmission(matrix, cached, models.NarrativeMap{"UX": {"1. Cached improvement."}})

		strengths, improvements, generated, err := service.Enrich(context.Background(), submission, profession)

		assert.NoError(t, err)
		assert.True(t, generated)
		assert.Equal(t, 1, generator.callCount())
		// The cached category is untouched, the missing one is filled.
		assert.Equal(t, []string{"1. Cached strength."}, strengths["UX"])
		assert.Equal(t, []string{"1. Cached improvement."}, improvements["UX"])
		assert.Equal(t, []string{"1. Solid research habits."}, strengths[models.OverviewCategory])
		mockRepo.AssertExpectations(t)
	})

	t.Run("A half-filled category is regenerated whole", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		mockRepo.On("UpdateNarratives", "sub-1", mock.Anything, mock.Anything).Return(nil).Once()
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		// Strengths filled for both categories, improvements only for UX.
		strengthsCache := models.NarrativeMap{
			models.OverviewCategory: {"1. Balanced."},
			"UX":                    {"1. Strong."},
		}
		submission := testSubmission(matrix, strengthsCache, models.NarrativeMap{"UX": {"1. Polish."}})

		_, improvements, generated, err := service.Enrich(context.Background(), submission, profession)

		assert.NoError(t, err)
		assert.True(t, generated)
		assert.Equal(t, 1, generator.callCount())
		assert.Equal(t, []string{"1. Push visual polish further."}, improvements[models.OverviewCategory])
		mockRepo.AssertExpectations(t)
	})

	t.Run("One failed generation fails the pass and skips the write", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(prompt string) (string, error) {
			if strings.Contains(prompt, models.OverviewCategory) {
				return "", errors.New("upstream timeout")
			}
			return response, nil
		}}
		mockRepo := new(MockSubmissionRepository)
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		cached := models.NarrativeMap{"UX": {"1. Cached."}}
		submission := testSubmission(matrix, cached, cached)

		strengths, improvements, generated, err := service.Enrich(context.Background(), submission, profession)

		assert.ErrorIs(t, err, ErrEnrichmentFailed)
		assert.False(t, generated)
		// The cached entries are still handed back for a partial result.
		assert.Equal(t, []string{"1. Cached."}, strengths["UX"])
		assert.Equal(t, []string{"1. Cached."}, improvements["UX"])
		mockRepo.AssertNotCalled(t, "UpdateNarratives", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("A failed cache write is reported as a failed pass", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		mockRepo.On("UpdateNarratives", "sub-1", mock.Anything, mock.Anything).Return(errors.New("database locked")).Once()
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		submission := testSubmission(matrix, models.NarrativeMap{}, models.NarrativeMap{})

		strengths, improvements, generated, err := service.Enrich(context.Background(), submission, profession)

		assert.ErrorIs(t, err, ErrEnrichmentFailed)
		assert.True(t, generated)
		// The fresh maps are still handed back; only the cache write failed.
		assert.Equal(t, []string{"1. Solid research habits."}, strengths["UX"])
		assert.Equal(t, []string{"1. Push visual polish further."}, improvements["UX"])
		mockRepo.AssertExpectations(t)
	})

	t.Run("Prompts carry the category, profession and percentage scores", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		mockRepo.On("UpdateNarratives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		narrow := models.ScoreMatrix{"UX": {"Research": 3.5}}
		submission := testSubmission(narrow, models.NarrativeMap{}, models.NarrativeMap{})

		_, _, _, err := service.Enrich(context.Background(), submission, profession)

		assert.NoError(t, err)
		assert.Len(t, generator.prompts, 1)
		prompt := generator.prompts[0]
		assert.Contains(t, prompt, "UX")
		assert.Contains(t, prompt, "UX Designer")
		assert.Contains(t, prompt, "Research: 70%") // 3.5 on the 1-5 scale, x20
		assert.NotContains(t, prompt, "{category}")
		assert.NotContains(t, prompt, "{skill_set}")
	})

	t.Run("A profession-specific prompt template wins over the default", func(t *testing.T) {
		generator := &stubTextGenerator{generate: func(string) (string, error) { return response, nil }}
		mockRepo := new(MockSubmissionRepository)
		mockRepo.On("UpdateNarratives", mock.Anything, mock.Anything, mock.Anything).Return(nil)
		service := NewNarrativeService(generator, mockRepo, testNarrativeConfig())

		custom := &models.Profession{
			ID:             "prof-1",
			ProfessionName: "UX Designer",
			Prompt:         "Custom review of {category}: {skill_set}",
		}
		narrow := models.ScoreMatrix{"UX": {"Research": 5}}
		submission := testSubmission(narrow, models.NarrativeMap{}, models.NarrativeMap{})

		_, _, _, err := service.Enrich(context.Background(), submission, custom)

		assert.NoError(t, err)
		assert.Len(t, generator.prompts, 1)
		assert.True(t, strings.HasPrefix(generator.prompts[0], "Custom review of UX:"))
	})
}
