package models

import (
	"time"

	"gorm.io/datatypes"
)

// OverviewCategory is the synthetic category whose "skills" are the real
// categories, each scored across every contribution under that category.
const OverviewCategory = "Overview"

// ScoreMatrix maps category -> skill -> normalized score. Scores are stored as
// the 1-5 marks average; presentation layers multiply by 20 to show a
// percentage out of 100.
type ScoreMatrix map[string]map[string]float64

// NarrativeMap holds per-category bullet lists (strengths or improvements),
// keyed by category name including OverviewCategory.
type NarrativeMap map[string][]string

// Filled reports whether the category has a non-empty bullet list. A category
// is only skipped by enrichment when both its strengths and improvements are
// filled.
func (n NarrativeMap) Filled(category string) bool {
	return len(n[category]) > 0
}

// Submission is the aggregate row produced by one completed questionnaire:
// the score matrix plus the lazily backfilled narrative cache. The narrative
// maps grow monotonically; entries are only ever added, never removed.
type Submission struct {
	ID           string                           `json:"id" gorm:"primaryKey;type:varchar(36)"`
	ProfessionID string                           `json:"professionId" gorm:"type:varchar(36);index;not null"`
	GraphData    datatypes.JSONType[ScoreMatrix]  `json:"graphData"`
	Strengths    datatypes.JSONType[NarrativeMap] `json:"strengths"`
	Improvements datatypes.JSONType[NarrativeMap] `json:"improvements"`
	CreatedAt    time.Time                        `json:"created_at" gorm:"autoCreateTime"`
	UpdatedAt    time.Time                        `json:"updated_at" gorm:"autoUpdateTime"`
}

// TableName specifies the table name for the Submission model.
func (Submission) TableName() string {
	return "submissions"
}
