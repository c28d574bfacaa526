package analyzer

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"skillgap/internal/models"
	"skillgap/internal/store"
)

// BuildQuery derives the retrieval query from the target role.
// Deterministic: the same role always embeds to the same vector.
func BuildQuery(role string) string {
	return fmt.Sprintf(models.RetrievalQueryTemplate, strings.TrimSpace(role))
}

// FormatContext concatenates retrieved chunks with source attribution. Zero
// results yield the explicit no-market-data note rather than an empty block.
// The output is truncated to maxChars.
func FormatContext(results []store.Result, maxChars int) string {
	if len(results) == 0 {
		return models.NoMarketDataNote
	}

	parts := make([]string, len(results))
	for i, r := range results {
		parts[i] = fmt.Sprintf("**Source:** %s\n\n%s", r.Source, strings.TrimSpace(r.Content))
	}
	return truncate(strings.Join(parts, "\n\n---\n\n"), maxChars)
}

// AssemblePrompt is the pure (retrieved chunks, resume, role) → prompt
// function. Truncation order is fixed: the job context is capped first, then
// the resume, so an oversized input always produces the same prompt.
func AssemblePrompt(role, resume string, results []store.Result, maxContextChars, maxResumeChars int) string {
	jobContext := FormatContext(results, maxContextChars)
	return fmt.Sprintf(models.UserPromptTemplate,
		strings.TrimSpace(role),
		jobContext,
		truncate(strings.TrimSpace(resume), maxResumeChars),
	)
}

func truncate(s string, maxChars int) string {
	if maxChars <= 0 || len(s) <= maxChars {
		return s
	}
	// Back up to a rune boundary; Arabic resume text must not be cut
	// mid-rune into invalid UTF-8.
	cut := maxChars
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
