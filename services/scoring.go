package services

import (
	"skillmatrix/models"
)

// scoreCell accumulates one (category, skill) pair: total marks and the number
// of contributions feeding it.
type scoreCell struct {
	marksAssigned     float64
	numberOfQuestions int
}

// matrixAccumulator is a two-level ordered map of score cells. Keys are
// initialized lazily but deterministically: iteration order is first-seen
// order, so the same question set and answers always produce the same
// traversal. The synthetic Overview category always exists and always comes
// first.
type matrixAccumulator struct {
	categoryOrder []string
	skillOrder    map[string][]string
	cells         map[string]map[string]*scoreCell
}

func newMatrixAccumulator() *matrixAccumulator {
	a := &matrixAccumulator{
		skillOrder: make(map[string][]string),
		cells:      make(map[string]map[string]*scoreCell),
	}
	a.ensureCategory(models.OverviewCategory)
	return a
}

func (a *matrixAccumulator) ensureCategory(category string) {
	if _, ok := a.cells[category]; ok {
		return
	}
	a.cells[category] = make(map[string]*scoreCell)
	a.categoryOrder = append(a.categoryOrder, category)
}

func (a *matrixAccumulator) cell(category, skill string) *scoreCell {
	a.ensureCategory(category)
	c, ok := a.cells[category][skill]
	if !ok {
		c = &scoreCell{}
		a.cells[category][skill] = c
		a.skillOrder[category] = append(a.skillOrder[category], skill)
	}
	return c
}

func (a *matrixAccumulator) add(category, skill string, marks int) {
	c := a.cell(category, skill)
	c.marksAssigned += float64(marks)
	c.numberOfQuestions++
}

// finalize replaces every accumulator with its marks average and returns the
// plain nested map form.
func (a *matrixAccumulator) finalize() models.ScoreMatrix {
	matrix := make(models.ScoreMatrix, len(a.cells))
	for _, category := range a.categoryOrder {
		row := make(map[string]float64, len(a.cells[category]))
		for _, skill := range a.skillOrder[category] {
			c := a.cells[category][skill]
			row[skill] = c.marksAssigned / float64(c.numberOfQuestions)
		}
		matrix[category] = row
	}
	return matrix
}

// marksForSelection maps a submitted 1-based option index to marks. The five
// valid selections score their own value; anything else scores 0 but still
// counts as a contribution.
func marksForSelection(selected int) int {
	if selected >= 1 && selected <= models.QuestionOptionCount {
		return selected
	}
	return 0
}

// ComputeScoreMatrix turns raw answer selections into the nested score matrix.
//
// Every question contributes once per (category, skill) pair it is tagged
// with, and the Overview category gains one contribution per (category, skill)
// iteration. Category and skill tags are multisets: a duplicated label
// contributes multiple times on purpose, so tagging a question "UX","UX"
// doubles its weight under UX.
//
// The answers map must cover every supplied question, otherwise
// ErrIncompleteSubmission is returned and nothing is computed. The returned
// category slice is the deterministic first-seen category order (Overview
// first).
func ComputeScoreMatrix(questions []models.Question, answers map[string]int) (models.ScoreMatrix, []string, error) {
	for i := range questions {
		if _, ok := answers[questions[i].ID]; !ok {
			return nil, nil, ErrIncompleteSubmission
		}
	}

	acc := newMatrixAccumulator()
	for i := range questions {
		question := &questions[i]
		marks := marksForSelection(answers[question.ID])
		for _, category := range question.Categories {
			acc.ensureCategory(category)
			for _, skill := range question.Skills {
				acc.add(category, skill, marks)
				acc.add(models.OverviewCategory, category, marks)
			}
		}
	}

	return acc.finalize(), acc.categoryOrder, nil
}
