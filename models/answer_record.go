package models

import (
	"time"

	"gorm.io/datatypes"
)

// AnswerRecord is the write-once audit row kept for every answered question in
// a submission. Question content is copied, not referenced, so later edits to
// the question never change what the respondent actually saw. SelectedAnswer
// is empty when the submitted option index resolved to no option.
type AnswerRecord struct {
	ID             uint                        `json:"id" gorm:"primaryKey"`
	SubmissionID   string                      `json:"submissionId" gorm:"type:varchar(36);index;not null"`
	QuestionID     string                      `json:"questionId" gorm:"type:varchar(36);not null"`
	Question       string                      `json:"question" gorm:"type:text;not null"`
	AnswerOptions  datatypes.JSONSlice[string] `json:"answerOptions" gorm:"not null"`
	SelectedAnswer string                      `json:"selectedAnswer"`
	Description    string                      `json:"description" gorm:"type:text"`
	Categories     datatypes.JSONSlice[string] `json:"categories" gorm:"not null"`
	Skills         datatypes.JSONSlice[string] `json:"skills" gorm:"not null"`
	ProfessionID   string                      `json:"professionId" gorm:"type:varchar(36);index"`
	IP             string                      `json:"ip" gorm:"type:varchar(64)"`
	CreatedAt      time.Time                   `json:"created_at" gorm:"autoCreateTime"`
}

// TableName specifies the table name for the AnswerRecord model.
func (AnswerRecord) TableName() string {
	return "answer_records"
}
