package models

import (
	"time"

	"gorm.io/datatypes"
)

// QuestionOptionCount is the fixed number of answer options per question.
// Option index i (0-based) maps to marks i+1, so the five options span
// marks 1 through 5.
const QuestionOptionCount = 5

// Question is one questionnaire entry for a profession. Categories and Skills
// are label multisets: a label listed twice makes the question contribute
// twice to that label's scores. Edits never rewrite history, because answer
// records snapshot the question content at submission time.
type Question struct {
	ID            string                      `json:"id" gorm:"primaryKey;type:varchar(36)"`
	Question      string                      `json:"question" gorm:"type:text;not null"`
	AnswerOptions datatypes.JSONSlice[string] `json:"answerOptions" gorm:"not null"`
	Description   string                      `json:"description" gorm:"type:text;not null"`
	Categories    datatypes.JSONSlice[string] `json:"categories" gorm:"not null"`
	Skills        datatypes.JSONSlice[string] `json:"skills" gorm:"not null"`
	ProfessionID  string                      `json:"professionId" gorm:"type:varchar(36);index;not null"`
	Status        EntityStatus                `json:"status" gorm:"type:varchar(20);default:'Active';not null;index"`
	CreatedAt     time.Time                   `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt     time.Time                   `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Question model.
func (Question) TableName() string {
	return "questions"
}

// OptionForSelection resolves a 1-based selected option index to its label.
// Selections outside 1..QuestionOptionCount resolve to the empty string, which
// is what the audit record stores for an undefined selection.
func (q *Question) OptionForSelection(selected int) string {
	if selected < 1 || selected > len(q.AnswerOptions) {
		return ""
	}
	return q.AnswerOptions[selected-1]
}
