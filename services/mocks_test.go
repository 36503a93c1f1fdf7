package services

import (
	"context"
	"sync"

	"github.com/stretchr/testify/mock"

	"skillmatrix/models"
)

// MockProfessionRepository is a mock type for the ProfessionRepository interface
type MockProfessionRepository struct {
	mock.Mock
}

func (m *MockProfessionRepository) Create(profession *models.Profession) error {
	args := m.Called(profession)
	return args.Error(0)
}

func (m *MockProfessionRepository) GetByID(id string) (*models.Profession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profession), args.Error(1)
}

func (m *MockProfessionRepository) GetActiveByID(id string) (*models.Profession, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Profession), args.Error(1)
}

func (m *MockProfessionRepository) ListActive() ([]*models.Profession, error) {
	args := m.Called()
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Profession), args.Error(1)
}

func (m *MockProfessionRepository) ExistsActiveByName(name string) (bool, error) {
	args := m.Called(name)
	return args.Bool(0), args.Error(1)
}

func (m *MockProfessionRepository) Update(profession *models.Profession) error {
	args := m.Called(profession)
	return args.Error(0)
}

func (m *MockProfessionRepository) SoftDelete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

// MockQuestionRepository is a mock type for the QuestionRepository interface
type MockQuestionRepository struct {
	mock.Mock
}

func (m *MockQuestionRepository) FindActiveByProfession(professionID string) ([]models.Question, error) {
	args := m.Called(professionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindByID(id string) (*models.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) FindActiveByID(id string) (*models.Question, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Question), args.Error(1)
}

func (m *MockQuestionRepository) Create(question *models.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) CreateBatch(questions []models.Question) error {
	args := m.Called(questions)
	return args.Error(0)
}

func (m *MockQuestionRepository) Update(question *models.Question) error {
	args := m.Called(question)
	return args.Error(0)
}

func (m *MockQuestionRepository) SoftDelete(id string) error {
	args := m.Called(id)
	return args.Error(0)
}

func (m *MockQuestionRepository) DeactivateByProfession(professionID string) error {
	args := m.Called(professionID)
	return args.Error(0)
}

// MockSubmissionRepository is a mock type for the SubmissionRepository interface
type MockSubmissionRepository struct {
	mock.Mock
}

func (m *MockSubmissionRepository) Create(submission *models.Submission) error {
	args := m.Called(submission)
	return args.Error(0)
}

func (m *MockSubmissionRepository) GetByID(id string) (*models.Submission, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Submission), args.Error(1)
}

func (m *MockSubmissionRepository) UpdateNarratives(id string, strengths, improvements models.NarrativeMap) error {
	args := m.Called(id, strengths, improvements)
	return args.Error(0)
}

// MockAnswerRecordRepository is a mock type for the AnswerRecordRepository interface
type MockAnswerRecordRepository struct {
	mock.Mock
}

func (m *MockAnswerRecordRepository) CreateBatch(records []models.AnswerRecord) error {
	args := m.Called(records)
	return args.Error(0)
}

func (m *MockAnswerRecordRepository) FindBySubmission(submissionID string) ([]models.AnswerRecord, error) {
	args := m.Called(submissionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.AnswerRecord), args.Error(1)
}

// MockNarrativeService is a mock type for the NarrativeService interface
type MockNarrativeService struct {
	mock.Mock
}

func (m *MockNarrativeService) Enrich(ctx context.Context, submission *models.Submission, profession *models.Profession) (models.NarrativeMap, models.NarrativeMap, bool, error) {
	args := m.Called(ctx, submission, profession)
	strengths, _ := args.Get(0).(models.NarrativeMap)
	improvements, _ := args.Get(1).(models.NarrativeMap)
	return strengths, improvements, args.Bool(2), args.Error(3)
}

// stubTextGenerator is a concurrency-safe TextGenerator stand-in. Enrich
// dispatches one goroutine per category, so both the call counter and the
// prompt log are guarded.
type stubTextGenerator struct {
	mu       sync.Mutex
	calls    int
	prompts  []string
	generate func(prompt string) (string, error)
}

func (g *stubTextGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	g.mu.Lock()
	g.calls++
	g.prompts = append(g.prompts, prompt)
	g.mu.Unlock()
	return g.generate(prompt)
}

func (g *stubTextGenerator) callCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.calls
}
