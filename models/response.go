package models

// SubmitAnswersResponse is the payload returned after a questionnaire is
// scored and persisted.
type SubmitAnswersResponse struct {
	SubmissionID string            `json:"answerId"`
	Data         ScoreMatrix       `json:"data"`
	Profession   ProfessionSummary `json:"profession"`
}

// ResultResponse is the payload for a fetch-result call: the score matrix and
// the (possibly partially filled) narrative maps.
type ResultResponse struct {
	Data         ScoreMatrix       `json:"data"`
	Strengths    NarrativeMap      `json:"strengths"`
	Improvements NarrativeMap      `json:"improvements"`
	Profession   ProfessionSummary `json:"profession"`
}

// CategorySkillLabels lists the deduplicated category and skill labels in use
// across a profession's active questions.
type CategorySkillLabels struct {
	AllCategories []string `json:"allCategories"`
	AllSkills     []string `json:"allSkills"`
}
