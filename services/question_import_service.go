package services

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"strings"

	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skillmatrix/models"
	"skillmatrix/repository"
)

// csvColumns are the required header columns of a questionnaire CSV, in the
// order the import reports them when missing.
var csvColumns = []string{
	"Question", "Answer 1", "Answer 2", "Answer 3", "Answer 4", "Answer 5",
	"Description", "Categories", "Skills",
}

// QuestionImportService replaces a profession's questionnaire from an
// uploaded CSV: the current active set is deactivated, the parsed rows are
// inserted as the new active set.
type QuestionImportService interface {
	ImportCSV(professionID string, r io.Reader) (int, error)
}

type questionImportService struct {
	professions repository.ProfessionRepository
	questions   repository.QuestionRepository
}

// NewQuestionImportService creates a new QuestionImportService.
func NewQuestionImportService(professions repository.ProfessionRepository, questions repository.QuestionRepository) QuestionImportService {
	return &questionImportService{professions: professions, questions: questions}
}

func (s *questionImportService) ImportCSV(professionID string, r io.Reader) (int, error) {
	if professionID == "" {
		return 0, NewValidationError("Please provide the profession Id")
	}
	profession, err := s.professions.GetActiveByID(professionID)
	if err != nil {
		return 0, err
	}
	if profession == nil {
		return 0, fmt.Errorf("profession %s: %w", professionID, ErrNotFound)
	}

	questions, err := parseQuestionCSV(r, professionID)
	if err != nil {
		return 0, err
	}
	if len(questions) == 0 {
		return 0, NewValidationError("The uploaded file contains no questions")
	}

	// The whole questionnaire is replaced: the previous set goes Inactive so
	// historical submissions keep their snapshots, the new set goes in
	// Active.
	if err := s.questions.DeactivateByProfession(professionID); err != nil {
		return 0, err
	}
	if err := s.questions.CreateBatch(questions); err != nil {
		return 0, err
	}

	log.Printf("INFO: [QuestionImportService] Imported %d questions for profession %s ('%s').", len(questions), professionID, profession.ProfessionName)
	return len(questions), nil
}

// parseQuestionCSV reads the uploaded file into question rows. Categories and
// Skills cells hold comma-separated label lists.
func parseQuestionCSV(r io.Reader, professionID string) ([]models.Question, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, NewValidationError("The uploaded file is not a readable CSV: %v", err)
	}
	columnIndex := make(map[string]int, len(header))
	for i, name := range header {
		columnIndex[strings.TrimSpace(name)] = i
	}
	for _, column := range csvColumns {
		if _, ok := columnIndex[column]; !ok {
			return nil, NewValidationError("The uploaded file is missing the '%s' column", column)
		}
	}

	var questions []models.Question
	row := 1
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, NewValidationError("Row %d of the uploaded file is malformed: %v", row+1, err)
		}
		row++

		cell := func(column string) string {
			return strings.TrimSpace(record[columnIndex[column]])
		}

		questionText := cell("Question")
		description := cell("Description")
		if questionText == "" {
			return nil, NewValidationError("Row %d has an empty question", row)
		}
		if description == "" {
			return nil, NewValidationError("Row %d has an empty description", row)
		}

		options := make([]string, 0, models.QuestionOptionCount)
		for n := 1; n <= models.QuestionOptionCount; n++ {
			option := cell(fmt.Sprintf("Answer %d", n))
			if option == "" {
				return nil, NewValidationError("Row %d is missing answer option %d", row, n)
			}
			options = append(options, option)
		}

		categories := splitLabels(cell("Categories"))
		skills := splitLabels(cell("Skills"))
		if len(categories) == 0 {
			return nil, NewValidationError("Row %d has no categories", row)
		}
		if len(skills) == 0 {
			return nil, NewValidationError("Row %d has no skills", row)
		}

		questions = append(questions, models.Question{
			ID:            uuid.NewString(),
			Question:      questionText,
			AnswerOptions: datatypes.NewJSONSlice(options),
			Description:   description,
			Categories:    datatypes.NewJSONSlice(categories),
			Skills:        datatypes.NewJSONSlice(skills),
			ProfessionID:  professionID,
			Status:        models.StatusActive,
		})
	}
	return questions, nil
}

// splitLabels splits a comma-separated label cell, trimming entries and
// dropping empties. Duplicates are kept; the scoring engine treats tags as
// multisets.
func splitLabels(cell string) []string {
	var labels []string
	for _, label := range strings.Split(cell, ",") {
		label = strings.TrimSpace(label)
		if label != "" {
			labels = append(labels, label)
		}
	}
	return labels
}
