package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNarrative(t *testing.T) {
	t.Run("Splits a two-section response into ordered bullet lists", func(t *testing.T) {
		raw := "Strengths:\n" +
			"1. Strong grasp of user interviews.\n" +
			"2. Reliable synthesis of findings.\n" +
			"3. Clear reporting.\n" +
			"\n" +
			"Areas for Improvement:\n" +
			"1. Broaden quantitative methods.\n" +
			"2. Practice stakeholder workshops.\n"

		strengths, improvements := parseNarrative(raw, 15)

		assert.Equal(t, []string{
			"1. Strong grasp of user interviews.",
			"2. Reliable synthesis of findings.",
			"3. Clear reporting.",
		}, strengths)
		assert.Equal(t, []string{
			"1. Broaden quantitative methods.",
			"2. Practice stakeholder workshops.",
		}, improvements)
	})

	t.Run("No improvements section yields empty improvements", func(t *testing.T) {
		raw := "1. Great communicator.\n2. Dependable under pressure.\n"

		strengths, improvements := parseNarrative(raw, 15)

		assert.Len(t, strengths, 2)
		assert.NotNil(t, improvements)
		assert.Empty(t, improvements)
	})

	t.Run("Recognizes common section label phrasings", func(t *testing.T) {
		labels := []string{
			"Areas for Improvement:",
			"Areas of improvement",
			"Area to improvement:",
			"Improvement Areas:",
			"Points to improve:",
			"Things to improve",
			"**Areas to improve:**",
			"Improvements:",
		}
		for _, label := range labels {
			raw := "1. Solid fundamentals.\n" + label + "\n1. Needs deeper practice.\n"

			strengths, improvements := parseNarrative(raw, 15)

			assert.Equal(t, []string{"1. Solid fundamentals."}, strengths, "label %q", label)
			assert.Equal(t, []string{"1. Needs deeper practice."}, improvements, "label %q", label)
		}
	})

	t.Run("Discards bullets numbered beyond the limit", func(t *testing.T) {
		raw := "1. Kept.\n2. Kept too.\n16. Dropped.\n100. Also dropped.\n"

		strengths, _ := parseNarrative(raw, 15)

		assert.Equal(t, []string{"1. Kept.", "2. Kept too."}, strengths)
	})

	t.Run("Ignores prose, headers and blank lines between bullets", func(t *testing.T) {
		raw := "Here is my assessment.\n" +
			"\n" +
			"1. First bullet.\n" +
			"Some interleaved commentary.\n" +
			"  2. Indented second bullet.\n" +
			"3.\n"

		strengths, _ := parseNarrative(raw, 15)

		// "3." has no content after the period and is not a bullet.
		assert.Equal(t, []string{"1. First bullet.", "2. Indented second bullet."}, strengths)
	})

	t.Run("Empty response yields two empty lists", func(t *testing.T) {
		strengths, improvements := parseNarrative("", 15)

		assert.Empty(t, strengths)
		assert.Empty(t, improvements)
	})
}
