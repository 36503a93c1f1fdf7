package services

import (
	"context"
	"fmt"
	"log"
	"sort"
	"strconv"
	"strings"

	"golang.org/x/sync/errgroup"

	"skillmatrix/config"
	"skillmatrix/llm"
	"skillmatrix/metrics"
	"skillmatrix/models"
	"skillmatrix/repository"
)

// NarrativeService is the Narrative Enrichment Engine: it lazily backfills the
// per-category strengths/improvements bullet lists of a submission by calling
// the external text-generation client once per missing category.
type NarrativeService interface {
	// Enrich fills the narrative gaps of the submission and persists the
	// updated cache. It returns the (possibly updated) strengths and
	// improvements maps and whether any generation happened. Any failed
	// pass returns an error matching ErrEnrichmentFailed: a failed
	// generation hands back the previously cached entries, a failed cache
	// write hands back the freshly generated maps. Neither persists.
	Enrich(ctx context.Context, submission *models.Submission, profession *models.Profession) (models.NarrativeMap, models.NarrativeMap, bool, error)
}

type narrativeService struct {
	generator     llm.TextGenerator
	submissions   repository.SubmissionRepository
	maxBullets    int
	defaultPrompt string
}

// NewNarrativeService creates a new NarrativeService. The generator is
// injected so tests can substitute a fake.
func NewNarrativeService(generator llm.TextGenerator, submissions repository.SubmissionRepository, cfg config.NarrativeConfig) NarrativeService {
	maxBullets := cfg.MaxBullets
	if maxBullets <= 0 {
		maxBullets = 15
	}
	defaultPrompt := cfg.DefaultPrompt
	if defaultPrompt == "" {
		defaultPrompt = config.DefaultNarrativePrompt
	}
	return &narrativeService{
		generator:     generator,
		submissions:   submissions,
		maxBullets:    maxBullets,
		defaultPrompt: defaultPrompt,
	}
}

type narrativeResult struct {
	strengths    []string
	improvements []string
}

func (s *narrativeService) Enrich(ctx context.Context, submission *models.Submission, profession *models.Profession) (models.NarrativeMap, models.NarrativeMap, bool, error) {
	matrix := submission.GraphData.Data()
	strengths := submission.Strengths.Data()
	if strengths == nil {
		strengths = models.NarrativeMap{}
	}
	improvements := submission.Improvements.Data()
	if improvements == nil {
		improvements = models.NarrativeMap{}
	}

	// A category is missing unless both of its lists are filled; an
	// asymmetric partial fill is regenerated whole. Sorted for a
	// deterministic dispatch order.
	var missing []string
	for category := range matrix {
		if !strengths.Filled(category) || !improvements.Filled(category) {
			missing = append(missing, category)
		}
	}
	sort.Strings(missing)

	// Steady-state cache hit: no external call, no write.
	if len(missing) == 0 {
		return strengths, improvements, false, nil
	}

	log.Printf("INFO: [NarrativeService] Submission %s is missing narrative text for %d categories: %v", submission.ID, len(missing), missing)

	results := make([]narrativeResult, len(missing))
	g, gctx := errgroup.WithContext(ctx)
	for i, category := range missing {
		i, category := i, category
		g.Go(func() error {
			prompt := s.buildPrompt(category, matrix[category], profession)
			metrics.GenerationCalls.Inc()
			raw, err := s.generator.Generate(gctx, prompt)
			if err != nil {
				metrics.GenerationFailures.Inc()
				return fmt.Errorf("generation for category '%s' failed: %w", category, err)
			}
			st, im := parseNarrative(raw, s.maxBullets)
			results[i] = narrativeResult{strengths: st, improvements: im}
			return nil
		})
	}

	// All pending generations are awaited together; one failure fails the
	// pass so the cache is never partially written. The still-missing
	// categories are retried deterministically on the next fetch.
	if err := g.Wait(); err != nil {
		log.Printf("ERROR: [NarrativeService] Enrichment pass for submission %s failed: %v", submission.ID, err)
		return strengths, improvements, false, fmt.Errorf("%w: %v", ErrEnrichmentFailed, err)
	}

	// Merge only the categories that were missing; filled entries are
	// untouched, so the cache grows monotonically.
	for i, category := range missing {
		strengths[category] = results[i].strengths
		improvements[category] = results[i].improvements
	}

	if err := s.submissions.UpdateNarratives(submission.ID, strengths, improvements); err != nil {
		// A failed cache write is a failed backfill pass: the caller still
		// gets the freshly generated maps, and the next fetch regenerates
		// and retries the write.
		log.Printf("ERROR: [NarrativeService] Failed to persist narrative backfill for submission %s: %v", submission.ID, err)
		return strengths, improvements, true, fmt.Errorf("%w: persisting backfill for submission %s: %v", ErrEnrichmentFailed, submission.ID, err)
	}

	log.Printf("INFO: [NarrativeService] Backfilled narrative text for %d categories of submission %s.", len(missing), submission.ID)
	return strengths, improvements, true, nil
}

// buildPrompt renders the generation prompt for one category. Scores are
// rescaled x20 so the prompt presents percentages out of 100. A
// profession-specific template wins over the configured default; templates
// may use the {category}, {profession} and {skill_set} tokens, each replaced
// once.
func (s *narrativeService) buildPrompt(category string, skillScores map[string]float64, profession *models.Profession) string {
	var skillSet strings.Builder
	// Sorted for reproducible prompts.
	skills := make([]string, 0, len(skillScores))
	for skill := range skillScores {
		skills = append(skills, skill)
	}
	sort.Strings(skills)
	for _, skill := range skills {
		percentage := strconv.FormatFloat(skillScores[skill]*20, 'f', -1, 64)
		skillSet.WriteString(" " + skill + ": " + percentage + "% \n")
	}

	template := s.defaultPrompt
	if profession.Prompt != "" {
		template = profession.Prompt
	}
	prompt := strings.Replace(template, "{category}", category, 1)
	prompt = strings.Replace(prompt, "{profession}", profession.ProfessionName, 1)
	prompt = strings.Replace(prompt, "{skill_set}", skillSet.String(), 1)
	return prompt
}
