package services

import (
	"context"
	"fmt"
	"log"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skillmatrix/metrics"
	"skillmatrix/models"
	"skillmatrix/repository"
)

// SubmissionService orchestrates the submit-answers and fetch-result
// operations over the scoring engine, the stores and the narrative engine.
type SubmissionService interface {
	// SubmitAnswers validates the answer set against the profession's active
	// questionnaire, computes the score matrix and persists the submission
	// aggregate plus the audit records.
	SubmitAnswers(professionID string, answers map[string]int, requesterIP string) (*models.SubmitAnswersResponse, error)
	// FetchResult loads a submission, runs narrative enrichment and returns
	// the matrix with the narrative maps. When enrichment fails
	// (ErrEnrichmentFailed), the returned response is still non-nil and
	// carries the matrix plus whatever narrative entries were already
	// cached; narrative is an enhancement, not the primary data.
	FetchResult(ctx context.Context, submissionID string) (*models.ResultResponse, error)
}

type submissionService struct {
	professions   repository.ProfessionRepository
	questions     repository.QuestionRepository
	submissions   repository.SubmissionRepository
	answerRecords repository.AnswerRecordRepository
	narrative     NarrativeService
}

// NewSubmissionService creates a new SubmissionService.
func NewSubmissionService(
	professions repository.ProfessionRepository,
	questions repository.QuestionRepository,
	submissions repository.SubmissionRepository,
	answerRecords repository.AnswerRecordRepository,
	narrative NarrativeService,
) SubmissionService {
	return &submissionService{
		professions:   professions,
		questions:     questions,
		submissions:   submissions,
		answerRecords: answerRecords,
		narrative:     narrative,
	}
}

func (s *submissionService) SubmitAnswers(professionID string, answers map[string]int, requesterIP string) (*models.SubmitAnswersResponse, error) {
	if professionID == "" {
		return nil, NewValidationError("Please provide the profession Id")
	}
	if len(answers) == 0 {
		return nil, NewValidationError("Please provide the answers")
	}

	profession, err := s.professions.GetActiveByID(professionID)
	if err != nil {
		return nil, err
	}
	if profession == nil {
		return nil, fmt.Errorf("profession %s: %w", professionID, ErrNotFound)
	}

	questions, err := s.questions.FindActiveByProfession(professionID)
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, NewValidationError("The profession has no active questions")
	}

	matrix, _, err := ComputeScoreMatrix(questions, answers)
	if err != nil {
		return nil, err
	}

	submission := &models.Submission{
		ID:           uuid.NewString(),
		ProfessionID: professionID,
		GraphData:    datatypes.NewJSONType(matrix),
		Strengths:    datatypes.NewJSONType(models.NarrativeMap{}),
		Improvements: datatypes.NewJSONType(models.NarrativeMap{}),
	}

	// The aggregate is written first: it is the row the fetch-result path
	// reads back. The audit batch below is best-effort.
	if err := s.submissions.Create(submission); err != nil {
		return nil, err
	}

	records := buildAnswerRecords(submission.ID, questions, answers, requesterIP)
	if err := s.answerRecords.CreateBatch(records); err != nil {
		// The audit trail is best-effort: the submission is already scored
		// and stored, so the caller still gets a success.
		log.Printf("WARN: [SubmissionService] Audit record write failed for submission %s (submission kept): %v", submission.ID, err)
	}

	metrics.SubmissionsTotal.Inc()
	log.Printf("INFO: [SubmissionService] Scored and stored submission %s for profession %s (%d questions).", submission.ID, professionID, len(questions))

	return &models.SubmitAnswersResponse{
		SubmissionID: submission.ID,
		Data:         matrix,
		Profession:   profession.Summary(),
	}, nil
}

// buildAnswerRecords snapshots every answered question into a denormalized
// audit row. The selected option label resolves via the 1-based index; an
// invalid index stores an empty selection.
func buildAnswerRecords(submissionID string, questions []models.Question, answers map[string]int, requesterIP string) []models.AnswerRecord {
	records := make([]models.AnswerRecord, 0, len(questions))
	for i := range questions {
		question := &questions[i]
		records = append(records, models.AnswerRecord{
			SubmissionID:   submissionID,
			QuestionID:     question.ID,
			Question:       question.Question,
			AnswerOptions:  question.AnswerOptions,
			SelectedAnswer: question.OptionForSelection(answers[question.ID]),
			Description:    question.Description,
			Categories:     question.Categories,
			Skills:         question.Skills,
			ProfessionID:   question.ProfessionID,
			IP:             requesterIP,
		})
	}
	return records
}

func (s *submissionService) FetchResult(ctx context.Context, submissionID string) (*models.ResultResponse, error) {
	if _, err := uuid.Parse(submissionID); err != nil {
		return nil, fmt.Errorf("submission id '%s': %w", submissionID, ErrInvalidID)
	}

	submission, err := s.submissions.GetByID(submissionID)
	if err != nil {
		return nil, err
	}
	if submission == nil {
		return nil, fmt.Errorf("submission %s: %w", submissionID, ErrNotFound)
	}

	profession, err := s.professions.GetByID(submission.ProfessionID)
	if err != nil {
		return nil, err
	}
	if profession == nil {
		return nil, fmt.Errorf("profession %s: %w", submission.ProfessionID, ErrNotFound)
	}

	strengths, improvements, _, enrichErr := s.narrative.Enrich(ctx, submission, profession)

	response := &models.ResultResponse{
		Data:         submission.GraphData.Data(),
		Strengths:    strengths,
		Improvements: improvements,
		Profession:   profession.Summary(),
	}
	if enrichErr != nil {
		// Partial narrative beats no result: hand back the matrix and the
		// cached entries alongside the error.
		return response, enrichErr
	}
	return response, nil
}
