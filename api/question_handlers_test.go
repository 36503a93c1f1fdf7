package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"skillmatrix/models"
	"skillmatrix/services"
)

// MockSubmissionService is a mock type for the SubmissionService interface
type MockSubmissionService struct {
	mock.Mock
}

func (m *MockSubmissionService) SubmitAnswers(professionID string, answers map[string]int, requesterIP string) (*models.SubmitAnswersResponse, error) {
	args := m.Called(professionID, answers, requesterIP)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.SubmitAnswersResponse), args.Error(1)
}

func (m *MockSubmissionService) FetchResult(ctx context.Context, submissionID string) (*models.ResultResponse, error) {
	args := m.Called(ctx, submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.ResultResponse), args.Error(1)
}

func newFetchRouter(service services.SubmissionService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewAPIHandler(nil, nil, nil, service, nil)
	r := gin.New()
	r.GET("/questions/answer", handler.FetchResultHandler)
	return r
}

func fetchResultBody(t *testing.T, r *gin.Engine, submissionID string) (int, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	req, err := http.NewRequest(http.MethodGet, "/questions/answer?answerId="+submissionID, nil)
	assert.NoError(t, err)
	r.ServeHTTP(w, req)

	var body map[string]interface{}
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w.Code, body
}

func TestFetchResultHandler(t *testing.T) {
	submissionID := "4a3c2f9e-8a61-4c2e-9f7d-1b2c3d4e5f60"
	result := &models.ResultResponse{
		Data:         models.ScoreMatrix{"UX": {"Research": 3}},
		Strengths:    models.NarrativeMap{"UX": {"1. Strong researcher."}},
		Improvements: models.NarrativeMap{"UX": {"1. Go deeper on metrics."}},
		Profession:   models.ProfessionSummary{ID: "prof-1", ProfessionName: "UX Designer"},
	}

	t.Run("Complete result reports a plain success", func(t *testing.T) {
		service := new(MockSubmissionService)
		service.On("FetchResult", mock.Anything, submissionID).Return(result, nil).Once()

		code, body := fetchResultBody(t, newFetchRouter(service), submissionID)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "Fetched successfully", body["message"])
		assert.NotNil(t, body["data"])
		service.AssertExpectations(t)
	})

	t.Run("Failed enrichment still serves scores under a distinct message", func(t *testing.T) {
		service := new(MockSubmissionService)
		enrichErr := fmt.Errorf("%w: generation for category 'UX' failed", services.ErrEnrichmentFailed)
		service.On("FetchResult", mock.Anything, submissionID).Return(result, enrichErr).Once()

		code, body := fetchResultBody(t, newFetchRouter(service), submissionID)

		assert.Equal(t, http.StatusOK, code)
		// A partial result must not masquerade as a complete one.
		assert.NotEqual(t, "Fetched successfully", body["message"])
		assert.Contains(t, body["message"], "narrative generation incomplete")
		assert.NotNil(t, body["data"])
		assert.NotNil(t, body["strengths"])
		service.AssertExpectations(t)
	})

	t.Run("Unknown submission maps to 404", func(t *testing.T) {
		service := new(MockSubmissionService)
		service.On("FetchResult", mock.Anything, submissionID).Return(nil, fmt.Errorf("submission %s: %w", submissionID, services.ErrNotFound)).Once()

		code, body := fetchResultBody(t, newFetchRouter(service), submissionID)

		assert.Equal(t, http.StatusNotFound, code)
		assert.Equal(t, "Invalid Id, Answer not found", body["message"])
	})

	t.Run("Malformed submission id maps to 400", func(t *testing.T) {
		service := new(MockSubmissionService)
		service.On("FetchResult", mock.Anything, "oops").Return(nil, fmt.Errorf("submission id 'oops': %w", services.ErrInvalidID)).Once()

		code, body := fetchResultBody(t, newFetchRouter(service), "oops")

		assert.Equal(t, http.StatusBadRequest, code)
		assert.Equal(t, "Please provide a valid Id", body["message"])
	})
}
