package models

import "time"

// EntityStatus is the lifecycle status shared by professions and questions.
// Deleting either is a soft delete: the status flips to Inactive and the row
// stays behind for historical submissions.
type EntityStatus string

const (
	StatusActive   EntityStatus = "Active"
	StatusInactive EntityStatus = "Inactive"
)

// Profession is an administrator-defined discipline with its own questionnaire.
// Prompt optionally overrides the default narrative-generation template for
// this profession; it may contain the {category}, {profession} and
// {skill_set} tokens.
type Profession struct {
	ID             string       `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProfessionName string       `json:"professionName" gorm:"not null;index"`
	Description    string       `json:"description" gorm:"type:text;not null"`
	Prompt         string       `json:"prompt,omitempty" gorm:"type:text"`
	Status         EntityStatus `json:"status" gorm:"type:varchar(20);default:'Active';not null;index"`
	CreatedAt      time.Time    `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt      time.Time    `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Profession model.
func (Profession) TableName() string {
	return "professions"
}

// ProfessionSummary is the slimmed-down profession shape embedded in
// questionnaire and result responses.
type ProfessionSummary struct {
	ID             string `json:"id"`
	ProfessionName string `json:"professionName"`
	Description    string `json:"description"`
}

// Summary projects the profession onto its response shape.
func (p *Profession) Summary() ProfessionSummary {
	return ProfessionSummary{
		ID:             p.ID,
		ProfessionName: p.ProfessionName,
		Description:    p.Description,
	}
}
