package api

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"skillmatrix/models"
	"skillmatrix/repository"
	"skillmatrix/services"
	"skillmatrix/utils"
)

// APIHandler holds all dependencies for API handlers, such as repositories and services.
type APIHandler struct {
	professionRepo    repository.ProfessionRepository
	questionRepo      repository.QuestionRepository
	userRepo          repository.UserRepository
	submissionService services.SubmissionService
	importService     services.QuestionImportService
}

// NewAPIHandler creates a new APIHandler with necessary dependencies.
func NewAPIHandler(
	professionRepo repository.ProfessionRepository,
	questionRepo repository.QuestionRepository,
	userRepo repository.UserRepository,
	submissionService services.SubmissionService,
	importService services.QuestionImportService,
) *APIHandler {
	return &APIHandler{
		professionRepo:    professionRepo,
		questionRepo:      questionRepo,
		userRepo:          userRepo,
		submissionService: submissionService,
		importService:     importService,
	}
}

// respondDomainError maps domain error kinds onto HTTP statuses.
// notFoundMsg is the public message for the NotFound case, which is the only
// kind whose wording depends on what was being looked up.
func respondDomainError(c *gin.Context, err error, notFoundMsg string) {
	var validationErr *services.ValidationError
	switch {
	case errors.As(err, &validationErr):
		utils.SendJSONError(c, http.StatusBadRequest, validationErr.Message, nil)
	case errors.Is(err, services.ErrIncompleteSubmission):
		utils.SendJSONError(c, http.StatusBadRequest, "Please answer all the questions", nil)
	case errors.Is(err, services.ErrInvalidID):
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide a valid Id", nil)
	case errors.Is(err, services.ErrNotFound):
		utils.SendJSONError(c, http.StatusNotFound, notFoundMsg, err)
	default:
		utils.SendJSONError(c, http.StatusInternalServerError, "An unexpected error occurred. Please try again later.", err)
	}
}

// --- Auth ---

// TokenHandler issues a fresh bearer token for an admin user.
// POST /user/token
func (h *APIHandler) TokenHandler(c *gin.Context) {
	var req struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}

	user, err := h.userRepo.GetByCredentials(req.Username, utils.MD5Hex(req.Password))
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while saving token", err)
		return
	}
	if user == nil {
		utils.SendJSONError(c, http.StatusUnauthorized, "Username/Password did not match, please try again.", nil)
		return
	}

	token := utils.GenerateToken(16)
	if err := h.userRepo.UpdateToken(user.ID, token); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while saving token", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Token created successfully", "token": token})
}

// --- Profession management ---

// ListProfessionsHandler returns all active professions.
// GET /professions/all
func (h *APIHandler) ListProfessionsHandler(c *gin.Context) {
	professions, err := h.professionRepo.ListActive()
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while fetching professions", err)
		return
	}
	summaries := make([]models.ProfessionSummary, 0, len(professions))
	for _, profession := range professions {
		summaries = append(summaries, profession.Summary())
	}
	c.JSON(http.StatusOK, gin.H{"message": "Professions Fetched", "professions": summaries})
}

// AddProfessionHandler creates a profession.
// POST /professions/add (auth)
func (h *APIHandler) AddProfessionHandler(c *gin.Context) {
	var req struct {
		ProfessionName string `json:"professionName"`
		Description    string `json:"description"`
		Prompt         string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(req.ProfessionName) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide a valid profession name", nil)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide a valid profession description", nil)
		return
	}

	exists, err := h.professionRepo.ExistsActiveByName(req.ProfessionName)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while inserting professions", err)
		return
	}
	if exists {
		utils.SendJSONError(c, http.StatusBadRequest, "The profession name already exists", nil)
		return
	}

	profession := &models.Profession{
		ID:             uuid.NewString(),
		ProfessionName: strings.TrimSpace(req.ProfessionName),
		Description:    strings.TrimSpace(req.Description),
		Prompt:         req.Prompt,
		Status:         models.StatusActive,
	}
	if err := h.professionRepo.Create(profession); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while inserting professions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Added successfully", "id": profession.ID})
}

// UpdateProfessionHandler updates an active profession's name/description/prompt.
// PUT /professions/:professionId (auth)
func (h *APIHandler) UpdateProfessionHandler(c *gin.Context) {
	professionID := c.Param("professionId")
	var req struct {
		ProfessionName string `json:"professionName"`
		Description    string `json:"description"`
		Prompt         string `json:"prompt"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.SendJSONError(c, http.StatusBadRequest, "Invalid request format.", err)
		return
	}
	if strings.TrimSpace(req.ProfessionName) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide a valid profession name", nil)
		return
	}
	if strings.TrimSpace(req.Description) == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide a valid profession description", nil)
		return
	}

	profession, err := h.professionRepo.GetActiveByID(professionID)
	if err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while updating professions", err)
		return
	}
	if profession == nil {
		utils.SendJSONError(c, http.StatusNotFound, "The profession doesn't exist", nil)
		return
	}

	profession.ProfessionName = strings.TrimSpace(req.ProfessionName)
	profession.Description = strings.TrimSpace(req.Description)
	profession.Prompt = req.Prompt
	if err := h.professionRepo.Update(profession); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while updating professions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Updated successfully"})
}

// DeleteProfessionHandler soft-deletes a profession.
// DELETE /professions/:professionId (auth)
func (h *APIHandler) DeleteProfessionHandler(c *gin.Context) {
	professionID := c.Param("professionId")
	if professionID == "" {
		utils.SendJSONError(c, http.StatusBadRequest, "Please provide the profession Id", nil)
		return
	}
	if err := h.professionRepo.SoftDelete(professionID); err != nil {
		utils.SendJSONError(c, http.StatusInternalServerError, "Error while deleting professions", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Deleted successfully"})
}
