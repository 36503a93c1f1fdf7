package api

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"gorm.io/datatypes"

	"skillmatrix/models"
	"skillmatrix/services"
	"skillmatrix/utils"
)

// ListQuestionsHandler returns all active questions of a profession.
// GET /questions/all?professionId=
func (h *APIHandler) ListQuestionsHandler(c *gin.Context) {
	professionID := c.Query("professionId")
	if professionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide the profession Id", nil)
		return
	}

	profession, err := h.professionRepo.GetActiveByID(professionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while fetching questions", err)
		return
	}
	if profession == nil {
		utils.SendJSONError(c, http.StatusNotFound, "The profession doesn't exist", nil)
		return
	}

	questions, err := h.questionRepo.FindActiveByProfession(professionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while fetching questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Questions Fetched",
		"profession": profession.ProfessionName,
		"questions":  questions,
	})
}

// ListCategoriesSkillsHandler returns the distinct category and skill labels
// used by a profession's active questions.
// GET /questions/all-categories-skills?professionId=
func (h *APIHandler) ListCategoriesSkillsHandler(c *gin.Context) {
	professionID := c.Query("professionId")
	if professionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide the profession Id", nil)
		return
	}

	questions, err := h.questionRepo.FindActiveByProfession(professionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while fetching categories and skills", err)
		return
	}

	labels := models.CategorySkillLabels{AllCategories: []string{}, AllSkills: []string{}}
	seenCategories := make(map[string]bool)
	seenSkills := make(map[string]bool)
	for _, question := range questions {
		for _, category := range question.Categories {
			if !seenCategories[category] {
				seenCategories[category] = true
				labels.AllCategories = append(labels.AllCategories, category)
			}
		}
		for _, skill := range question.Skills {
			if !seenSkills[skill] {
				seenSkills[skill] = true
				labels.AllSkills = append(labels.AllSkills, skill)
			}
		}
	}
	c.JSON(http.StatusOK, gin.H{"message": "Fetched successfully", "data": labels})
}

type questionRequest struct {
	Question      string   `json:"question"`
	AnswerOptions []string `json:"answerOptions"`
	Description   string   `json:"description"`
	Categories    []string `json:"categories"`
	Skills        []string `json:"skills"`
	ProfessionID  string   `json:"professionId"`
}

func (r *questionRequest) validate() error {
	if strings.TrimSpace(r.Question) == "" {
		return fmt.Errorf("please provide the question text")
	}
	if len(r.AnswerOptions) != models.QuestionOptionCount {
		return fmt.Errorf("please provide exactly %d answer options", models.QuestionOptionCount)
	}
	for _, option := range r.AnswerOptions {
		if strings.TrimSpace(option) == "" {
			return fmt.Errorf("answer options must not be empty")
		}
	}
	if len(r.Categories) == 0 {
		return fmt.Errorf("please provide at least one category")
	}
	if len(r.Skills) == 0 {
		return fmt.Errorf("please provide at least one skill")
	}
	return nil
}

// AddQuestionHandler creates a question under a profession.
// POST /questions/add (auth)
func (h *APIHandler) AddQuestionHandler(c *gin.Context) {
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if req.ProfessionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide the profession Id", nil)
		return
	}
	if err := req.validate(); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	profession, err := h.professionRepo.GetActiveByID(req.ProfessionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while inserting questions", err)
		return
	}
	if profession == nil {
		utils.SendJSONError(c, http.StatusNotFound, "The profession doesn't exist", nil)
		return
	}

	question := &models.Question{
		ID:            uuid.NewString(),
		Question:      strings.TrimSpace(req.Question),
		AnswerOptions: datatypes.NewJSONSlice(req.AnswerOptions),
		Description:   req.Description,
		Categories:    datatypes.NewJSONSlice(req.Categories),
		Skills:        datatypes.NewJSONSlice(req.Skills),
		ProfessionID:  req.ProfessionID,
		Status:        models.StatusActive,
	}
	if err := h.questionRepo.Create(question); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while inserting questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added successfully", "id": question.ID})
}

// UpdateQuestionHandler updates an active question in place.
// PUT /questions/:questionId (auth)
func (h *APIHandler) UpdateQuestionHandler(c *gin.Context) {
	questionID := c.Param("questionId")
	var req questionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if err := req.validate(); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	question, err := h.questionRepo.FindActiveByID(questionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while updating questions", err)
		return
	}
	if question == nil {
		utils.SendJSONError(c, http.StatusNotFound, "The question doesn't exist", nil)
		return
	}

	question.Question = strings.TrimSpace(req.Question)
	question.AnswerOptions = datatypes.NewJSONSlice(req.AnswerOptions)
	question.Description = req.Description
	question.Categories = datatypes.NewJSONSlice(req.Categories)
	question.Skills = datatypes.NewJSONSlice(req.Skills)
	if err := h.questionRepo.Update(question); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while updating questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated successfully"})
}

// DeleteQuestionHandler soft-deletes a question.
// DELETE /questions/:questionId (auth)
func (h *APIHandler) DeleteQuestionHandler(c *gin.Context) {
	questionID := c.Param("questionId")
	if questionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide the question Id", nil)
		return
	}
	if err := h.questionRepo.SoftDelete(questionID); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while deleting questions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}

// UploadQuestionsHandler replaces a profession's question set from a CSV file.
// POST /questions/upload (auth, multipart form: professionId, file)
func (h *APIHandler) UploadQuestionsHandler(c *gin.Context) {
	professionID := c.PostForm("professionId")
	if professionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide the profession Id", nil)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Please attach a CSV file", err)
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while reading the uploaded file", err)
		return
	}
	defer file.Close()

	imported, err := h.importService.ImportCSV(professionID, file)
	if err != nil {
		respondDomainError(c, err, "The profession doesn't exist")
		return
	}

	log.Printf("INFO: [API] imported %d questions for profession %s", imported, professionID)
	c.JSON(http.StatusOK, gin.H{"message": "Questions uploaded successfully", "count": imported})
}

// SubmitAnswersHandler scores a questionnaire submission and persists it.
// POST /questions/answer
func (h *APIHandler) SubmitAnswersHandler(c *gin.Context) {
	var req struct {
		ProfessionID string         `json:"professionId"`
		Answers      map[string]int `json:"answers"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	result, err := h.submissionService.SubmitAnswers(req.ProfessionID, req.Answers, c.ClientIP())
	if err != nil {
		respondDomainError(c, err, "Invalid profession")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":    "Answers Submitted",
		"answerId":   result.SubmissionID,
		"data":       result.Data,
		"profession": result.Profession,
	})
}

// FetchResultHandler returns a stored result, backfilling narratives on demand.
// Generation keeps running to completion even if the caller disconnects, so the
// service is handed a fresh context rather than the request's.
// GET /questions/answer?answerId=
func (h *APIHandler) FetchResultHandler(c *gin.Context) {
	submissionID := c.Query("answerId")
	if submissionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide a valid Id", nil)
		return
	}

	result, err := h.submissionService.FetchResult(context.Background(), submissionID)
	if err != nil {
		if errors.Is(err, services.ErrEnrichmentFailed) && result != nil {
			// Scores are still served; narrative stays partial until a retry
			// succeeds. The message tells the caller this is not a full result.
			log.Printf("WARN: [API] narrative generation incomplete for submission %s: %v", submissionID, err)
			c.JSON(http.StatusOK, gin.H{
				"message":      "Fetched successfully, narrative generation incomplete",
				"data":         result.Data,
				"strengths":    result.Strengths,
				"improvements": result.Improvements,
				"profession":   result.Profession,
			})
			return
		}
		respondDomainError(c, err, "Invalid Id, Answer not found")
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message":      "Fetched successfully",
		"data":         result.Data,
		"strengths":    result.Strengths,
		"improvements": result.Improvements,
		"profession":   result.Profession,
	})
}
